// Package paradex derives Paradex accounts from Ethereum and Starknet
// wallets and moves funds out of Paraclear.
package paradex

import (
	"context"
	"net/http"
	"time"

	"github.com/vitwit/paradex/account"
	"github.com/vitwit/paradex/clients"
	"github.com/vitwit/paradex/config"
	"github.com/vitwit/paradex/logger"
	"github.com/vitwit/paradex/metrics"
	"github.com/vitwit/paradex/settlement"
	"github.com/vitwit/paradex/signer"
	"github.com/vitwit/paradex/types"
)

// Version of the library.
const Version = "0.3.0"

// Paraclear is the node access the facade needs: contract reads and
// INVOKE submission.
type Paraclear interface {
	clients.Caller
	clients.Invoker
}

// Paradex is the main entry point. It holds the network config of one
// environment and the clients derived from it.
type Paradex struct {
	config     *types.Config
	network    *types.ParadexConfig
	paraclear  Paraclear
	reader     clients.StarknetReader
	registry   *account.Registry
	settlement *settlement.SettlementService

	logger     logger.Logger
	metrics    metrics.Recorder
	timeout    time.Duration
	httpClient *http.Client

	closers []func()
}

// New fetches the network config of cfg.Environment (or cfg.ConfigURL) and
// connects to the Paraclear node. A nil cfg uses testnet defaults.
func New(ctx context.Context, cfg *types.Config, opts ...Option) (*Paradex, error) {
	if cfg == nil {
		cfg = &types.Config{Environment: types.EnvironmentTestnet}
	}

	p := &Paradex{
		config:  cfg,
		timeout: 30 * time.Second,
	}
	if cfg.DefaultTimeout > 0 {
		p.timeout = cfg.DefaultTimeout
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = logger.NewZapLogger(cfg.LogLevel)
	}
	if p.metrics == nil {
		if cfg.EnableMetrics {
			p.metrics = metrics.NewPrometheusRecorder(nil)
		} else {
			p.metrics = metrics.NoopRecorder{}
		}
	}

	if err := p.loadNetwork(ctx); err != nil {
		return nil, err
	}
	if err := p.connect(ctx); err != nil {
		p.Close()
		return nil, err
	}

	p.settlement = settlement.NewSettlementService(p.network, p.paraclear, p.logger, p.metrics)
	p.logger.Info("paradex client ready", map[string]any{
		"environment": cfg.Environment.String(),
		"chain_id":    p.network.ParadexChainID,
	})
	return p, nil
}

func (p *Paradex) loadNetwork(ctx context.Context) error {
	if p.network != nil {
		return nil
	}
	url := p.config.ConfigURL
	if url == "" {
		url = config.URL(p.config.Environment)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	network, err := config.Fetch(ctx, p.httpClient, url)
	if err != nil {
		p.logger.Error("failed to fetch paradex config", map[string]any{"url": url, "error": err.Error()})
		return err
	}
	p.network = network
	return nil
}

func (p *Paradex) connect(ctx context.Context) error {
	if p.paraclear == nil {
		url := p.config.ParaclearRPCURL
		if url == "" {
			url = p.network.ParadexFullNodeRPCURL
		}
		c, err := clients.DialParaclear(ctx, url, p.network.ParadexChainID,
			clients.WithMaxFee(p.config.MaxFee),
			clients.WithClientLogger(p.logger),
		)
		if err != nil {
			return err
		}
		p.paraclear = c
		p.closers = append(p.closers, c.Close)
	}

	if p.reader == nil && p.config.StarknetRPCURL != "" {
		provider, err := clients.NewStarknetProvider(p.config.StarknetRPCURL)
		if err != nil {
			return err
		}
		p.reader = provider
	}
	return nil
}

// Config returns the network config in use.
func (p *Paradex) Config() *types.ParadexConfig {
	return p.network
}

func (p *Paradex) accountOptions() []account.Option {
	opts := []account.Option{account.WithLogger(p.logger), account.WithMetrics(p.metrics)}
	if p.registry != nil {
		opts = append(opts, account.WithRegistry(p.registry))
	}
	return opts
}

// AccountFromEthSigner derives the Paradex account controlled by an
// Ethereum wallet.
func (p *Paradex) AccountFromEthSigner(ctx context.Context, es signer.EthereumSigner) (*account.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	return account.FromEthSigner(ctx, account.FromEthSignerParams{
		Config:  p.network,
		Signer:  es,
		Invoker: p.paraclear,
	}, p.accountOptions()...)
}

// AccountFromStarknetAccount derives the Paradex account controlled by a
// Starknet wallet. Unsupported wallets are rejected before signing.
func (p *Paradex) AccountFromStarknetAccount(ctx context.Context, ss signer.StarknetSigner) (*account.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	return account.FromStarknetAccount(ctx, account.FromStarknetAccountParams{
		Config:         p.network,
		Signer:         ss,
		StarknetReader: p.reader,
		Invoker:        p.paraclear,
	}, p.accountOptions()...)
}

// TokenBalance returns the Paraclear balance of token held by the account.
func (p *Paradex) TokenBalance(ctx context.Context, acc *account.Account, token string) (*settlement.TokenBalance, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	return p.settlement.TokenBalance(ctx, acc.Address().String(), token)
}

func (p *Paradex) SocializedLossFactor(ctx context.Context) (*settlement.SocializedLoss, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	return p.settlement.SocializedLossFactor(ctx)
}

// ReceivableAmount is amount of token after the socialized loss is applied.
func (p *Paradex) ReceivableAmount(ctx context.Context, token, amount string) (*settlement.ReceivableAmount, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	return p.settlement.ReceivableAmount(ctx, token, amount)
}

// Withdraw withdraws amount of token from Paraclear, followed by bridgeCalls
// in the same transaction.
func (p *Paradex) Withdraw(ctx context.Context, acc *account.Account, token, amount string, bridgeCalls ...types.Call) (*settlement.WithdrawResult, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	return p.settlement.Withdraw(ctx, acc, token, amount, bridgeCalls...)
}

// Close releases the connections opened by New.
func (p *Paradex) Close() {
	for _, c := range p.closers {
		c()
	}
	p.closers = nil
	if s, ok := p.logger.(interface{ Sync() error }); ok {
		_ = s.Sync()
	}
}
