package store

import (
	"time"

	"github.com/hakkd/job-assigner/internal/logger"
	"github.com/hakkd/job-assigner/internal/metrics"
	"github.com/hakkd/job-assigner/types"
)

// Backend names reported to StoreMetrics.
const (
	backendFile = "file"
	backendKV   = "kv"
)

// Option configures a state store.
type Option func(*options)

type options struct {
	metrics types.StoreMetrics
	logger  types.Logger
}

// WithMetrics sets the collector for store operation metrics.
func WithMetrics(m types.StoreMetrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithLogger sets a logger.
func WithLogger(l types.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func buildOptions(opts []Option) options {
	o := options{
		metrics: metrics.NewNop(),
		logger:  logger.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// observe records one operation and passes err through.
func (o options) observe(backend, operation string, start time.Time, err error) error {
	o.metrics.RecordStoreOperation(backend, operation, time.Since(start).Seconds(), err == nil)
	if err != nil {
		o.logger.Warn("state store operation failed", "backend", backend, "operation", operation, "error", err)
	} else {
		o.logger.Debug("state store operation", "backend", backend, "operation", operation,
			"duration", time.Since(start))
	}

	return err
}
