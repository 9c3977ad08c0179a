// Package metrics holds the Prometheus collectors for engine operations.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "jobfit"

// Metrics groups the engine collectors. Create one per registry.
type Metrics struct {
	Operations      *prometheus.CounterVec
	OperationErrors *prometheus.CounterVec
	Duration        *prometheus.HistogramVec
	FitScore        prometheus.Histogram
	SelectionShort  prometheus.Counter
	SpinFallbacks   *prometheus.CounterVec
	Verifications   *prometheus.CounterVec
	HTTPRequests    *prometheus.CounterVec
}

// New creates the collectors and registers them with reg. A nil registerer
// leaves them unregistered, which is convenient in tests.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Engine operations by name.",
		}, []string{"operation"}),
		OperationErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operation_errors_total",
			Help:      "Engine operations that returned an error, by name and class.",
		}, []string{"operation", "class"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Engine operation latency.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"operation"}),
		FitScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fit_score",
			Help:      "Distribution of fit scores.",
			Buckets:   []float64{50, 70, 75, 85, 100},
		}),
		SelectionShort: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "selection_shortfall_items_total",
			Help:      "Items requested but not available across selections.",
		}),
		SpinFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "spin_fallbacks_total",
			Help:      "Model-augmented spins that fell back to rule-based output, by reason.",
		}, []string{"reason"}),
		Verifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "verifications_total",
			Help:      "Verification reports by document type and overall status.",
		}, []string{"document_type", "status"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
	}

	if reg != nil {
		reg.MustRegister(
			m.Operations, m.OperationErrors, m.Duration, m.FitScore,
			m.SelectionShort, m.SpinFallbacks, m.Verifications, m.HTTPRequests,
		)
	}
	return m
}

// Observe records one operation call
func (m *Metrics) Observe(operation string, start time.Time, errClass string) {
	if m == nil {
		return
	}
	m.Operations.WithLabelValues(operation).Inc()
	m.Duration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if errClass != "" {
		m.OperationErrors.WithLabelValues(operation, errClass).Inc()
	}
}
