package account

import (
	"context"
	"math/big"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/vitwit/paradex/clients"
	"github.com/vitwit/paradex/signer"
	"github.com/vitwit/paradex/types"
	"github.com/vitwit/paradex/utils"
)

var _ clients.HashSigner = (*Account)(nil)

// Account is a derived Paraclear account. The library keeps no reference
// to it once returned.
type Account struct {
	address    *felt.Felt
	publicKey  *felt.Felt
	privateKey *big.Int
	invoker    clients.Invoker
}

// NewAccount builds the account owned by privateKey under cfg's class
// hashes. invoker may be nil for an account that only signs.
func NewAccount(privateKey *big.Int, cfg *types.ParadexConfig, invoker clients.Invoker) (*Account, error) {
	pub, err := signer.PublicKey(privateKey)
	if err != nil {
		return nil, err
	}
	accountHash, err := utils.HexToFelt(cfg.ParaclearAccountHash)
	if err != nil {
		return nil, types.NewError(types.CodeConfig, "invalid paraclearAccountHash", cfg.ParaclearAccountHash)
	}
	proxyHash, err := utils.HexToFelt(cfg.ParaclearAccountProxyHash)
	if err != nil {
		return nil, types.NewError(types.CodeConfig, "invalid paraclearAccountProxyHash", cfg.ParaclearAccountProxyHash)
	}

	publicKey := utils.BigToFelt(pub)
	return &Account{
		address:    ComputeAddress(publicKey, accountHash, proxyHash),
		publicKey:  publicKey,
		privateKey: privateKey,
		invoker:    invoker,
	}, nil
}

func (a *Account) Address() *felt.Felt {
	return a.address
}

func (a *Account) PublicKey() *felt.Felt {
	return a.publicKey
}

// SignHash signs a transaction or message hash with the account key.
func (a *Account) SignHash(hash *felt.Felt) (*felt.Felt, *felt.Felt, error) {
	return signer.SignHash(hash, a.privateKey)
}

// Execute submits calls in a single transaction.
func (a *Account) Execute(ctx context.Context, calls []types.Call) (*types.TxResult, error) {
	if a.invoker == nil {
		return nil, types.NewError(types.CodePreconditionViolated, "account has no transaction invoker", a.address.String())
	}
	return a.invoker.Invoke(ctx, a.address, calls, a)
}
