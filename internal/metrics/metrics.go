// Package metrics holds the Prometheus collectors for the recommender.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values.
const (
	OutcomeSuccess  = "success"
	OutcomeEmpty    = "empty"
	OutcomeError    = "error"
	OutcomeRejected = "rejected"
)

var (
	StrategyResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "soundalike_strategy_results_total",
			Help: "Candidate retrieval strategy runs by outcome",
		},
		[]string{"strategy", "outcome"},
	)

	CatalogRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "soundalike_catalog_requests_total",
			Help: "Catalog API requests by endpoint and outcome",
		},
		[]string{"endpoint", "outcome"},
	)

	DroppedRecords = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "soundalike_dropped_records_total",
			Help: "Catalog records dropped during normalization",
		},
		[]string{"reason"},
	)

	RecommendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "soundalike_recommend_duration_seconds",
			Help:    "End-to-end recommendation latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"entrypoint"},
	)

	// 0 closed, 1 half-open, 2 open
	CatalogBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "soundalike_catalog_breaker_state",
			Help: "Catalog circuit breaker state (0 closed, 1 half-open, 2 open)",
		},
	)
)

// RecordStrategy counts one strategy run.
func RecordStrategy(strategy, outcome string) {
	StrategyResults.WithLabelValues(strategy, outcome).Inc()
}

// RecordCatalogRequest counts one catalog call.
func RecordCatalogRequest(endpoint string, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	CatalogRequests.WithLabelValues(endpoint, outcome).Inc()
}

// RecordCatalogOutcome counts one catalog call with an explicit outcome,
// for callers that tell rejections apart from errors.
func RecordCatalogOutcome(endpoint, outcome string) {
	CatalogRequests.WithLabelValues(endpoint, outcome).Inc()
}

// RecordDropped counts a record dropped for reason.
func RecordDropped(reason string) {
	DroppedRecords.WithLabelValues(reason).Inc()
}

// ObserveRecommend records the latency of one entrypoint call since start.
func ObserveRecommend(entrypoint string, start time.Time) {
	RecommendDuration.WithLabelValues(entrypoint).Observe(time.Since(start).Seconds())
}
