package account

import (
	"github.com/vitwit/paradex/logger"
	"github.com/vitwit/paradex/metrics"
)

type options struct {
	registry *Registry
	logger   logger.Logger
	metrics  metrics.Recorder
}

type Option func(*options)

// WithRegistry replaces the built-in wallet registry.
func WithRegistry(r *Registry) Option {
	return func(o *options) {
		o.registry = r
	}
}

func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func WithMetrics(r metrics.Recorder) Option {
	return func(o *options) {
		o.metrics = r
	}
}

func buildOptions(opts []Option) options {
	o := options{
		registry: DefaultRegistry(),
		logger:   logger.NoopLogger{},
		metrics:  metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	o.logger = logger.OrNoop(o.logger)
	if o.registry == nil {
		o.registry = DefaultRegistry()
	}
	if o.metrics == nil {
		o.metrics = metrics.NoopRecorder{}
	}
	return o
}
