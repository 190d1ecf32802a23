// Package metrics exposes benchmark progress as Prometheus collectors.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pff"

// OutcomeSuccess labels trials that factored and verified.
const OutcomeSuccess = "success"

// BenchMetrics holds the collectors updated by the harness.
type BenchMetrics struct {
	registry *prometheus.Registry

	// TrialsTotal counts finished trials.
	// Labels: algorithm, size_bits, outcome (success or an error kind)
	TrialsTotal *prometheus.CounterVec

	// TrialDuration observes factorization wall time in seconds.
	// Labels: algorithm, size_bits
	TrialDuration *prometheus.HistogramVec

	// PFF is the latest PFF of each algorithm and size.
	// Labels: algorithm, size_bits
	PFF *prometheus.GaugeVec

	// SuccessRate is the latest success rate of each algorithm and size.
	// Labels: algorithm, size_bits
	SuccessRate *prometheus.GaugeVec
}

// New creates the collectors on a private registry.
func New() *BenchMetrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &BenchMetrics{
		registry: reg,
		TrialsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trials_total",
			Help:      "Factorization trials by algorithm, size and outcome",
		}, []string{"algorithm", "size_bits", "outcome"}),

		TrialDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "trial_duration_seconds",
			Help:      "Factorization wall time in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 14), // 10µs to ~11min
		}, []string{"algorithm", "size_bits"}),

		PFF: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "factorizations_per_year",
			Help:      "Prime factorization frequency of the latest run",
		}, []string{"algorithm", "size_bits"}),

		SuccessRate: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "success_rate",
			Help:      "Fraction of trials that succeeded in the latest run",
		}, []string{"algorithm", "size_bits"}),
	}
}

// Registry returns the registry holding the collectors.
func (m *BenchMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveTrial records one finished trial. An empty kind means success.
func (m *BenchMetrics) ObserveTrial(algorithm string, sizeBits int, elapsed time.Duration, kind string) {
	size := strconv.Itoa(sizeBits)
	outcome := kind
	if outcome == "" {
		outcome = OutcomeSuccess
	}
	m.TrialsTotal.WithLabelValues(algorithm, size, outcome).Inc()
	m.TrialDuration.WithLabelValues(algorithm, size).Observe(elapsed.Seconds())
}

// ObserveRun records the aggregate of a finished run. pff is nil when no
// trial succeeded, in which case the gauge is removed.
func (m *BenchMetrics) ObserveRun(algorithm string, sizeBits int, successRate float64, pff *float64) {
	size := strconv.Itoa(sizeBits)
	m.SuccessRate.WithLabelValues(algorithm, size).Set(successRate)
	if pff == nil {
		m.PFF.DeleteLabelValues(algorithm, size)
		return
	}
	m.PFF.WithLabelValues(algorithm, size).Set(*pff)
}

// WriteTextfile writes every collector in the text exposition format.
func (m *BenchMetrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
