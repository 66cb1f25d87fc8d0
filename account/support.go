package account

import (
	"context"
	"sync"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/vitwit/paradex/clients"
	"github.com/vitwit/paradex/logger"
	"github.com/vitwit/paradex/types"
)

// SupportResult tells whether seeds can be derived from this wallet.
type SupportResult struct {
	OK      bool
	Variant string
}

type checked struct {
	result   SupportResult
	strategy Strategy
}

// AccountSupport classifies one Starknet wallet by class hash and decodes
// seeds from its signatures. The classification is computed once and
// cached on the value; a failed probe read leaves it unchecked.
type AccountSupport struct {
	address   *felt.Felt
	classHash *felt.Felt
	reader    clients.ContractReader
	registry  *Registry
	logger    logger.Logger

	mu    sync.Mutex
	state *checked
}

// NewAccountSupport prepares the classification of the wallet deployed at
// address. reader is only used by variants that probe their signer.
func NewAccountSupport(address, classHash *felt.Felt, reader clients.ContractReader, opts ...Option) *AccountSupport {
	o := buildOptions(opts)
	return &AccountSupport{
		address:   address,
		classHash: classHash,
		reader:    reader,
		registry:  o.registry,
		logger:    o.logger,
	}
}

func (a *AccountSupport) ClassHash() *felt.Felt {
	return a.classHash
}

// Check classifies the wallet. At most one contract read is made over the
// lifetime of a, however often Check is called.
func (a *AccountSupport) Check(ctx context.Context) (SupportResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.state != nil {
		return a.state.result, nil
	}

	variant := a.registry.Lookup(a.classHash)
	fields := map[string]any{"class_hash": a.classHash.String(), "variant": variant.Name}

	state := &checked{result: SupportResult{Variant: variant.Name}, strategy: variant.Strategy}
	switch variant.Strategy {
	case StrategyUnknown, StrategyAlwaysUnsupported:
		state.result.OK = false

	case StrategyConditionalStark:
		if a.reader == nil {
			return SupportResult{}, types.NewError(types.CodePreconditionViolated, "wallet needs a contract reader to be classified", fields)
		}
		desc, err := probe(ctx, a.reader, a.address, variant.Probe)
		if err != nil {
			a.logger.Warn("signer probe failed", map[string]any{"class_hash": a.classHash.String(), "error": err})
			return SupportResult{}, err
		}
		for k, v := range desc.detail {
			fields[k] = v
		}
		state.result.OK = desc.accepted
		if desc.accepted {
			state.strategy = variant.Resolved
		} else {
			state.strategy = StrategyAlwaysUnsupported
		}

	default:
		state.result.OK = true
	}

	fields["ok"] = state.result.OK
	fields["strategy"] = state.strategy.String()
	a.logger.Debug("wallet classified", fields)

	a.state = state
	return state.result, nil
}

// SeedFromSignature extracts the seed from a signature. Check must have
// returned ok first; calling it on an unsupported wallet is a precondition
// violation. The signature is never modified.
func (a *AccountSupport) SeedFromSignature(sig types.Signature) (*felt.Felt, error) {
	a.mu.Lock()
	state := a.state
	a.mu.Unlock()

	if state == nil {
		return nil, types.NewError(types.CodePreconditionViolated, "check account contract support first", nil)
	}
	if !state.result.OK {
		return nil, types.NewError(types.CodePreconditionViolated, "wallet did not pass the support check", a.classHash.String())
	}
	return decodeSeed(state.strategy, sig.Values())
}
