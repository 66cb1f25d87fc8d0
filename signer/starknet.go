package signer

import (
	"context"
	"fmt"
	"math/big"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/NethermindEth/starknet.go/curve"
	"github.com/vitwit/paradex/types"
	"github.com/vitwit/paradex/utils"
	"github.com/vitwit/paradex/utils/snip12"
)

// StarknetSigner is a deployed Starknet account able to sign typed data.
// Wallets may answer with either signature form.
type StarknetSigner interface {
	Address() *felt.Felt
	SignMessage(ctx context.Context, typedData snip12.TypedData) (types.Signature, error)
}

var _ StarknetSigner = (*StarkKeySigner)(nil)

// StarkKeySigner signs with a raw stark curve private key, the way a single
// signer account does.
type StarkKeySigner struct {
	address    *felt.Felt
	privateKey *big.Int
	publicKey  *big.Int
}

func NewStarkKeySigner(address *felt.Felt, privateKey *big.Int) (*StarkKeySigner, error) {
	pub, err := PublicKey(privateKey)
	if err != nil {
		return nil, err
	}
	return &StarkKeySigner{
		address:    address,
		privateKey: new(big.Int).Set(privateKey),
		publicKey:  pub,
	}, nil
}

func (s *StarkKeySigner) Address() *felt.Felt {
	return s.address
}

func (s *StarkKeySigner) PublicKey() *big.Int {
	return new(big.Int).Set(s.publicKey)
}

// SignMessage implements StarknetSigner and returns the [r, s] array form.
func (s *StarkKeySigner) SignMessage(ctx context.Context, typedData snip12.TypedData) (types.Signature, error) {
	if err := ctx.Err(); err != nil {
		return types.Signature{}, err
	}
	hash, err := typedData.MessageHash(s.address)
	if err != nil {
		return types.Signature{}, err
	}
	r, sig, err := SignHash(hash, s.privateKey)
	if err != nil {
		return types.Signature{}, err
	}
	return types.ArraySignature(r.String(), sig.String()), nil
}

// SignHash signs a felt with the stark curve.
func SignHash(hash *felt.Felt, privateKey *big.Int) (r, s *felt.Felt, err error) {
	rb, sb, err := curve.Curve.Sign(utils.FeltToBig(hash), privateKey)
	if err != nil {
		return nil, nil, fmt.Errorf("stark sign: %w", err)
	}
	return utils.BigToFelt(rb), utils.BigToFelt(sb), nil
}
