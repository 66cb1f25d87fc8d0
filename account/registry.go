package account

import (
	"github.com/NethermindEth/juno/core/felt"
	"github.com/vitwit/paradex/utils"
)

// Strategy is the positional layout used to pull the seed out of a
// wallet signature.
type Strategy int

const (
	// StrategyUnknown marks a class hash missing from the registry.
	StrategyUnknown Strategy = iota
	// StrategyFlatPair accepts exactly [r, s].
	StrategyFlatPair
	// StrategyFlatPairOrTaggedPair accepts [r, s] or [signerType, r, s].
	StrategyFlatPairOrTaggedPair
	// StrategyTaggedMultiSigner accepts [1, starknetTag, pubkey, r, s].
	StrategyTaggedMultiSigner
	// StrategyFlatPairOrMultiSigner accepts [r, s] or the owner-first
	// multi signer list [n, (signerType, pubkey, r, s){n}] with n of 1 or 2.
	StrategyFlatPairOrMultiSigner
	// StrategyConditionalStark needs an on-chain signer probe before a
	// layout can be chosen.
	StrategyConditionalStark
	// StrategyAlwaysUnsupported is recognised but never able to derive.
	StrategyAlwaysUnsupported
)

func (s Strategy) String() string {
	switch s {
	case StrategyFlatPair:
		return "flat_pair"
	case StrategyFlatPairOrTaggedPair:
		return "flat_pair_or_tagged_pair"
	case StrategyTaggedMultiSigner:
		return "tagged_multi_signer"
	case StrategyFlatPairOrMultiSigner:
		return "flat_pair_or_multi_signer"
	case StrategyConditionalStark:
		return "conditional_stark"
	case StrategyAlwaysUnsupported:
		return "always_unsupported"
	default:
		return "unknown"
	}
}

// Probe selects the contract read used by a ConditionalStark variant.
type Probe int

const (
	ProbeNone Probe = iota
	// ProbeOwnerType reads a single signer descriptor (get_owner_type).
	ProbeOwnerType
	// ProbeSignerList reads the lists of configured signers (get_signers).
	ProbeSignerList
)

// Variant is one registry row.
type Variant struct {
	Name     string
	Strategy Strategy
	// Probe and Resolved apply to StrategyConditionalStark only.
	Probe    Probe
	Resolved Strategy
}

// Registry maps class hashes to wallet variants.
type Registry struct {
	variants map[felt.Felt]Variant
}

// NewRegistry builds a registry from hex class hashes. It panics on a
// malformed hash, so it is meant for static tables.
func NewRegistry(rows map[string]Variant) *Registry {
	r := &Registry{variants: make(map[felt.Felt]Variant, len(rows))}
	for hash, v := range rows {
		r.variants[*utils.MustHexToFelt(hash)] = v
	}
	return r
}

// Lookup is a pure mapping: an unregistered hash yields StrategyUnknown.
func (r *Registry) Lookup(classHash *felt.Felt) Variant {
	if v, ok := r.variants[*classHash]; ok {
		return v
	}
	return Variant{Name: "unknown", Strategy: StrategyUnknown}
}

// Known Argent and Braavos class hashes.
const (
	ArgentV030          = "0x1a736d6ed154502257f02b1ccdf4d9d1089f80811cd6acad48e6b6a9d1f2003"
	ArgentV031          = "0x29927c8af6bccf3f6fda035981e765a7bdbf18a2dc0d630494f8758aa908e2b"
	ArgentV040          = "0x036078334509b514626504edc9fb252328d1a240e4e948bef8d0c08dff45927f"
	ArgentMulticall     = "0x0381f14e5e0db5889c981bf050fb034c0fbe0c4f070ee79346a05dbe2bf2af90"
	ArgentMultisig      = "0x737ee2f87ce571a58c6c8da558ec18a07ceb64a6172d5ec46171fbc80077a48"
	BraavosV100         = "0x00816dd0297efc55dc1e7559020a3a825e81ef734b558f03c83325d4da7e6253"
	BraavosV110         = "0x02c8c7e6fbcfb3e8e15a46648e8914c6aa1fc506fc1e7fb3d1e19630716174bc"
	BraavosV120         = "0x03957f9f5a1cbfe918cedc2015c85200ca51a5f7506ecb6de98a5207b759bf8a"
	BraavosMultiOwnerV1 = "0x041bf1e71792aecb9df3e9d04e1540091c5e13122a731e02bec588f71dc1a5c3"
)

var defaultRegistry = NewRegistry(map[string]Variant{
	ArgentV030: {Name: "argent_v0.3.0", Strategy: StrategyFlatPair},
	ArgentV031: {Name: "argent_v0.3.1", Strategy: StrategyFlatPair},
	ArgentV040: {
		Name:     "argent_v0.4.0",
		Strategy: StrategyConditionalStark,
		Probe:    ProbeOwnerType,
		Resolved: StrategyFlatPairOrMultiSigner,
	},
	ArgentMulticall: {Name: "argent_multicall", Strategy: StrategyAlwaysUnsupported},
	ArgentMultisig:  {Name: "argent_multisig", Strategy: StrategyAlwaysUnsupported},
	BraavosV100: {
		Name:     "braavos_v1.0.0",
		Strategy: StrategyConditionalStark,
		Probe:    ProbeSignerList,
		Resolved: StrategyFlatPairOrTaggedPair,
	},
	BraavosV110: {
		Name:     "braavos_v1.1.0",
		Strategy: StrategyConditionalStark,
		Probe:    ProbeSignerList,
		Resolved: StrategyFlatPairOrTaggedPair,
	},
	BraavosV120: {
		Name:     "braavos_v1.2.0",
		Strategy: StrategyConditionalStark,
		Probe:    ProbeSignerList,
		Resolved: StrategyFlatPairOrTaggedPair,
	},
	// Rejected outright even when only one stark signer is configured.
	BraavosMultiOwnerV1: {Name: "braavos_multi_owner_v1.0.0", Strategy: StrategyAlwaysUnsupported},
})

// DefaultRegistry returns the built-in table of supported wallets.
func DefaultRegistry() *Registry {
	return defaultRegistry
}
