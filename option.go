package paradex

import (
	"net/http"
	"time"

	"github.com/vitwit/paradex/account"
	"github.com/vitwit/paradex/clients"
	"github.com/vitwit/paradex/logger"
	"github.com/vitwit/paradex/metrics"
	"github.com/vitwit/paradex/types"
)

type Option func(*Paradex)

func WithLogger(l logger.Logger) Option {
	return func(p *Paradex) {
		p.logger = l
	}
}

func WithMetrics(r metrics.Recorder) Option {
	return func(p *Paradex) {
		p.metrics = r
	}
}

func WithTimeout(t time.Duration) Option {
	return func(p *Paradex) {
		if t > 0 {
			p.timeout = t
		}
	}
}

// WithHTTPClient sets the client used to fetch the network config.
func WithHTTPClient(c *http.Client) Option {
	return func(p *Paradex) {
		p.httpClient = c
	}
}

// WithNetworkConfig skips the config fetch.
func WithNetworkConfig(cfg *types.ParadexConfig) Option {
	return func(p *Paradex) {
		p.network = cfg
	}
}

// WithParaclear replaces the JSON-RPC client dialed by New.
func WithParaclear(c Paraclear) Option {
	return func(p *Paradex) {
		p.paraclear = c
	}
}

func WithStarknetReader(r clients.StarknetReader) Option {
	return func(p *Paradex) {
		p.reader = r
	}
}

// WithRegistry classifies Starknet wallets with r instead of the built-in
// class hash table.
func WithRegistry(r *account.Registry) Option {
	return func(p *Paradex) {
		p.registry = r
	}
}
