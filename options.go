package jobassigner

import "math/rand/v2"

// Option configures an Engine with optional dependencies.
type Option func(*engineOptions)

type engineOptions struct {
	selector JobSelector
	rng      *rand.Rand
	hooks    *Hooks
	metrics  MetricsCollector
	logger   Logger
}

// WithSelector overrides the selection strategy named in Config.Strategy.
//
// Example:
//
//	eng, err := jobassigner.NewEngine(&cfg, jobassigner.WithSelector(strategy.NewLinearProbe()))
func WithSelector(selector JobSelector) Option {
	return func(o *engineOptions) {
		o.selector = selector
	}
}

// WithRand sets the random source used for selection.
//
// The engine owns the generator afterwards; it must not be shared with other
// goroutines. Config.Seed is ignored for the random source when set.
func WithRand(rng *rand.Rand) Option {
	return func(o *engineOptions) {
		o.rng = rng
	}
}

// WithHooks sets lifecycle hooks.
func WithHooks(hooks *Hooks) Option {
	return func(o *engineOptions) {
		o.hooks = hooks
	}
}

// WithMetrics sets a metrics collector.
func WithMetrics(metrics MetricsCollector) Option {
	return func(o *engineOptions) {
		o.metrics = metrics
	}
}

// WithLogger sets a logger.
func WithLogger(logger Logger) Option {
	return func(o *engineOptions) {
		o.logger = logger
	}
}
