package account

import (
	"context"
	"time"

	"github.com/vitwit/paradex/clients"
	"github.com/vitwit/paradex/metrics"
	"github.com/vitwit/paradex/signer"
	"github.com/vitwit/paradex/types"
	"github.com/vitwit/paradex/utils/eip712"
	"github.com/vitwit/paradex/utils/snip12"
	"github.com/vitwit/paradex/verification"
)

// FromEthSignerParams are the inputs of FromEthSigner.
type FromEthSignerParams struct {
	Config  *types.ParadexConfig
	Signer  signer.EthereumSigner
	Invoker clients.Invoker
}

// FromEthSigner derives the Paradex account of an Ethereum wallet from its
// signature over the STARK Key typed data.
func FromEthSigner(ctx context.Context, p FromEthSignerParams, opts ...Option) (*Account, error) {
	if p.Config == nil || p.Signer == nil {
		return nil, types.NewError(types.CodePreconditionViolated, "config and signer are required", nil)
	}
	o := buildOptions(opts)
	start := time.Now()
	labels := map[string]string{"source": "ethereum"}
	defer func() { o.metrics.ObserveLatency(metrics.DeriveAccount, time.Since(start), labels) }()

	typedData, err := eip712.StarkKeyTypedData(p.Config.EthereumChainID)
	if err != nil {
		return nil, types.NewError(types.CodeConfig, "invalid ethereumChainId", p.Config.EthereumChainID)
	}

	sig, err := verification.NewVerificationService(o.logger, o.metrics).VerifyEthereumSigner(ctx, p.Signer, typedData)
	if err != nil {
		return nil, err
	}

	privateKey, err := signer.PrivateKeyFromEthSignature(sig)
	if err != nil {
		return nil, types.NewError(types.CodeMalformedSignature, "unsupported signature format", err.Error())
	}
	acc, err := NewAccount(privateKey, p.Config, p.Invoker)
	if err != nil {
		return nil, err
	}

	o.metrics.IncCounter(metrics.AccountDerived, labels)
	o.logger.Info("account derived", map[string]any{"source": "ethereum", "address": acc.Address().String()})
	return acc, nil
}

// FromStarknetAccountParams are the inputs of FromStarknetAccount.
// StarknetReader defaults to the public node of Config.StarknetChainID.
type FromStarknetAccountParams struct {
	Config         *types.ParadexConfig
	Signer         signer.StarknetSigner
	StarknetReader clients.StarknetReader
	Invoker        clients.Invoker
}

// FromStarknetAccount derives the Paradex account of a Starknet wallet.
// The wallet is classified before anything is signed.
func FromStarknetAccount(ctx context.Context, p FromStarknetAccountParams, opts ...Option) (*Account, error) {
	if p.Config == nil || p.Signer == nil {
		return nil, types.NewError(types.CodePreconditionViolated, "config and signer are required", nil)
	}
	o := buildOptions(opts)
	start := time.Now()
	labels := map[string]string{"source": "starknet"}
	defer func() { o.metrics.ObserveLatency(metrics.DeriveAccount, time.Since(start), labels) }()

	reader := p.StarknetReader
	if reader == nil {
		provider, err := clients.PublicStarknetProvider(p.Config.StarknetChainID)
		if err != nil {
			return nil, err
		}
		reader = provider
	}

	typedData := snip12.StarkKeyTypedData(p.Config.StarknetChainID)

	address := p.Signer.Address()
	classHash, err := reader.ClassHashAt(ctx, clients.LatestBlock(), address)
	if err != nil {
		return nil, err
	}

	support := NewAccountSupport(address, classHash, reader, opts...)
	result, err := support.Check(ctx)
	if err != nil {
		return nil, err
	}
	if !result.OK {
		o.metrics.IncCounter(metrics.WalletUnsupported, map[string]string{"source": "starknet"})
		o.logger.Warn("wallet not supported", map[string]any{"class_hash": classHash.String(), "variant": result.Variant})
		return nil, types.UnsupportedWallet(classHash.String())
	}

	sig, err := verification.NewVerificationService(o.logger, o.metrics).VerifyStarknetSigner(ctx, p.Signer, typedData)
	if err != nil {
		return nil, err
	}

	seed, err := support.SeedFromSignature(sig)
	if err != nil {
		return nil, err
	}
	privateKey, _, err := signer.Keypair(seed)
	if err != nil {
		return nil, err
	}
	acc, err := NewAccount(privateKey, p.Config, p.Invoker)
	if err != nil {
		return nil, err
	}

	o.metrics.IncCounter(metrics.AccountDerived, labels)
	o.logger.Info("account derived", map[string]any{"source": "starknet", "variant": result.Variant, "address": acc.Address().String()})
	return acc, nil
}
