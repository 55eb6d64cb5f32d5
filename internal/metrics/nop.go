// Package metrics provides types.MetricsCollector implementations.
package metrics

import "github.com/hakkd/job-assigner/types"

// NopMetrics discards all metrics.
//
// It is the engine default when no metrics option is given.
type NopMetrics struct{}

var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNop creates a new no-op metrics collector.
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

// RecordRound discards the round metric.
func (n *NopMetrics) RecordRound(_ /* outcome */ string, _ /* duration */ float64) {}

// RecordSelection discards the selection metric.
func (n *NopMetrics) RecordSelection(_ /* strategy */ string, _ /* success */ bool) {}

// RecordOccupancy discards the occupancy metric.
func (n *NopMetrics) RecordOccupancy(_ /* job */ string, _ /* occupancy */, _ /* capacity */ int) {}

// RecordReset discards the reset metric.
func (n *NopMetrics) RecordReset() {}

// RecordStoreOperation discards the store metric.
func (n *NopMetrics) RecordStoreOperation(_ /* backend */, _ /* operation */ string, _ /* duration */ float64, _ /* success */ bool) {
}
