package account

import (
	"context"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/NethermindEth/starknet.go/rpc"
	"github.com/vitwit/paradex/clients"
	"github.com/vitwit/paradex/utils"
)

// SignerKind is the tag of an Argent signer descriptor.
type SignerKind uint64

const (
	SignerStarknet SignerKind = iota
	SignerSecp256k1
	SignerSecp256r1
	SignerEip191
	SignerWebauthn
)

func (k SignerKind) String() string {
	switch k {
	case SignerStarknet:
		return "starknet"
	case SignerSecp256k1:
		return "secp256k1"
	case SignerSecp256r1:
		return "secp256r1"
	case SignerEip191:
		return "eip191"
	case SignerWebauthn:
		return "webauthn"
	default:
		return "unknown"
	}
}

// SignerList is the decoded answer of Braavos get_signers.
type SignerList struct {
	Stark     []*felt.Felt
	Secp256r1 []*felt.Felt
	Webauthn  []*felt.Felt
}

// descriptorResult is the outcome of a probe: whether the wallet's
// configured signer allows derivation, and what was seen for logs.
type descriptorResult struct {
	accepted bool
	detail   map[string]any
}

func probe(ctx context.Context, reader clients.ContractReader, address *felt.Felt, p Probe) (descriptorResult, error) {
	switch p {
	case ProbeOwnerType:
		out, err := reader.Call(ctx, rpc.FunctionCall{
			ContractAddress:    address,
			EntryPointSelector: utils.Selector("get_owner_type"),
			Calldata:           []*felt.Felt{},
		}, clients.LatestBlock())
		if err != nil {
			return descriptorResult{}, err
		}
		return ownerTypeResult(out), nil

	case ProbeSignerList:
		out, err := reader.Call(ctx, rpc.FunctionCall{
			ContractAddress:    address,
			EntryPointSelector: utils.Selector("get_signers"),
			Calldata:           []*felt.Felt{},
		}, clients.LatestBlock())
		if err != nil {
			return descriptorResult{}, err
		}
		return signerListResult(out), nil
	}
	return descriptorResult{detail: map[string]any{"probe": "none"}}, nil
}

func ownerTypeResult(out []*felt.Felt) descriptorResult {
	if len(out) != 1 {
		return descriptorResult{detail: map[string]any{"owner_type": "malformed", "length": len(out)}}
	}
	tag, ok := utils.FeltToUint64(out[0])
	if !ok {
		return descriptorResult{detail: map[string]any{"owner_type": "malformed", "length": len(out)}}
	}
	kind := SignerKind(tag)
	return descriptorResult{
		accepted: kind == SignerStarknet,
		detail:   map[string]any{"owner_type": kind.String()},
	}
}

func signerListResult(out []*felt.Felt) descriptorResult {
	list, ok := DecodeSignerList(out)
	if !ok {
		return descriptorResult{detail: map[string]any{"signers": "malformed", "length": len(out)}}
	}
	return descriptorResult{
		accepted: len(list.Stark) == 1 && len(list.Secp256r1) == 0 && len(list.Webauthn) == 0,
		detail: map[string]any{
			"stark":     len(list.Stark),
			"secp256r1": len(list.Secp256r1),
			"webauthn":  len(list.Webauthn),
		},
	}
}

// DecodeSignerList parses [n, stark..., m, secp256r1..., k, webauthn...].
func DecodeSignerList(out []*felt.Felt) (SignerList, bool) {
	var lists [3][]*felt.Felt
	pos := 0
	for i := range lists {
		if pos >= len(out) {
			return SignerList{}, false
		}
		n, ok := utils.FeltToUint64(out[pos])
		if !ok {
			return SignerList{}, false
		}
		pos++
		if n > uint64(len(out)-pos) {
			return SignerList{}, false
		}
		lists[i] = out[pos : pos+int(n)]
		pos += int(n)
	}
	if pos != len(out) {
		return SignerList{}, false
	}
	return SignerList{Stark: lists[0], Secp256r1: lists[1], Webauthn: lists[2]}, true
}
