package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hakkd/job-assigner/types"
)

// PrometheusCollector implements types.MetricsCollector backed by Prometheus.
//
// Collectors are created and registered lazily on first use.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	rounds         *prometheus.CounterVec
	roundDuration  prometheus.Histogram
	selections     *prometheus.CounterVec
	occupancy      *prometheus.GaugeVec
	capacity       *prometheus.GaugeVec
	resets         prometheus.Counter
	storeOps       *prometheus.CounterVec
	storeDurations *prometheus.HistogramVec
}

var _ types.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheus creates a new Prometheus-backed metrics collector.
//
// Parameters:
//   - reg: Prometheus registerer (prometheus.DefaultRegisterer if nil)
//   - namespace: Metrics namespace ("job_assigner" if empty)
//
// Returns:
//   - *PrometheusCollector: Collector instance
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "job_assigner"
	}

	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.rounds = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "engine",
			Name:      "rounds_total",
			Help:      "Assignment rounds by outcome.",
		}, []string{"outcome"})

		p.roundDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "engine",
			Name:      "round_duration_seconds",
			Help:      "Duration of assignment rounds in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8), // 100µs .. ~1.6s
		})

		p.selections = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "engine",
			Name:      "selections_total",
			Help:      "Job selections by strategy and result.",
		}, []string{"strategy", "result"})

		p.occupancy = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "job",
			Name:      "occupancy",
			Help:      "Current number of people holding the job.",
		}, []string{"job"})

		p.capacity = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "job",
			Name:      "capacity",
			Help:      "Number of slots of the job.",
		}, []string{"job"})

		p.resets = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "engine",
			Name:      "resets_total",
			Help:      "Total full engine resets.",
		})

		p.storeOps = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "store",
			Name:      "operations_total",
			Help:      "State store operations by backend, operation and success.",
		}, []string{"backend", "operation", "success"})

		p.storeDurations = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "store",
			Name:      "operation_duration_seconds",
			Help:      "State store operation latency in seconds.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"backend", "operation"})

		p.reg.MustRegister(p.rounds)
		p.reg.MustRegister(p.roundDuration)
		p.reg.MustRegister(p.selections)
		p.reg.MustRegister(p.occupancy)
		p.reg.MustRegister(p.capacity)
		p.reg.MustRegister(p.resets)
		p.reg.MustRegister(p.storeOps)
		p.reg.MustRegister(p.storeDurations)
	})
}

// RecordRound increments the round counter and observes its duration.
func (p *PrometheusCollector) RecordRound(outcome string, duration float64) {
	p.ensureRegistered()
	p.rounds.WithLabelValues(outcome).Inc()
	p.roundDuration.Observe(duration)
}

// RecordSelection increments the selection counter.
func (p *PrometheusCollector) RecordSelection(strategy string, success bool) {
	p.ensureRegistered()
	result := "success"
	if !success {
		result = "unsatisfiable"
	}
	p.selections.WithLabelValues(strategy, result).Inc()
}

// RecordOccupancy sets the occupancy and capacity gauges for a job.
func (p *PrometheusCollector) RecordOccupancy(job string, occupancy, capacity int) {
	p.ensureRegistered()
	p.occupancy.WithLabelValues(job).Set(float64(occupancy))
	p.capacity.WithLabelValues(job).Set(float64(capacity))
}

// RecordReset increments the reset counter.
func (p *PrometheusCollector) RecordReset() {
	p.ensureRegistered()
	p.resets.Inc()
}

// RecordStoreOperation counts a store operation and observes its latency.
func (p *PrometheusCollector) RecordStoreOperation(backend, operation string, duration float64, success bool) {
	p.ensureRegistered()
	p.storeOps.WithLabelValues(backend, operation, strconv.FormatBool(success)).Inc()
	p.storeDurations.WithLabelValues(backend, operation).Observe(duration)
}
