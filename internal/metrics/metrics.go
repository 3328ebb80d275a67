// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "prodwriter"

// Description outcome labels.
const (
	OutcomeSuccess    = "success"
	OutcomeEmpty      = "empty"
	OutcomeBlocked    = "blocked"
	OutcomeValidation = "validation_error"
	OutcomeFailed     = "failed"
)

var (
	// HTTP
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.005, .01, .05, .1, .5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"method", "path"},
	)

	// LLM attempts, one observation per call to the provider.
	LLMCallTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "llm",
			Name:      "call_total",
			Help:      "Total number of LLM call attempts",
		},
		[]string{"model", "status"},
	)

	LLMCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "llm",
			Name:      "call_duration_seconds",
			Help:      "LLM call attempt duration in seconds",
			Buckets:   []float64{.25, .5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"model"},
	)

	// Descriptions
	DescriptionTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "description",
			Name:      "generation_total",
			Help:      "Total number of description requests by outcome",
		},
		[]string{"status"},
	)

	DescriptionAttempts = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "description",
			Name:      "attempts",
			Help:      "LLM attempts needed per description",
			Buckets:   []float64{1, 2, 3, 4, 5, 6},
		},
	)

	DescriptionWordCount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "description",
			Name:      "word_count",
			Help:      "Generated description word count",
			Buckets:   []float64{25, 50, 100, 150, 200, 300, 500, 1000},
		},
	)
)

// AttemptObserver returns a callback recording each LLM attempt for model.
// It matches generation.WithAttemptObserver.
func AttemptObserver(model string) func(outcome string, elapsed time.Duration) {
	return func(outcome string, elapsed time.Duration) {
		LLMCallTotal.WithLabelValues(model, outcome).Inc()
		LLMCallDuration.WithLabelValues(model).Observe(elapsed.Seconds())
	}
}

// ObserveDescription records the outcome of one description request.
// attempts and words are ignored when zero.
func ObserveDescription(outcome string, attempts, words int) {
	DescriptionTotal.WithLabelValues(outcome).Inc()
	if attempts > 0 {
		DescriptionAttempts.Observe(float64(attempts))
	}
	if words > 0 {
		DescriptionWordCount.Observe(float64(words))
	}
}
