// Package metrics holds the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ReviewsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reviews_created_total",
			Help: "Reviews persisted, by flagged state",
		},
		[]string{"flagged"},
	)

	ReviewsFlagged = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reviews_flagged_total",
			Help: "Reviews flagged at submission, by reason",
		},
		[]string{"reason"},
	)

	AdapterFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adapter_failures_total",
			Help: "Failed calls to external content-analysis adapters",
		},
		[]string{"adapter"},
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Time spent building the sentiment recommendation list",
			Buckets: []float64{.05, .1, .5, 1, 5, 10, 30, 60},
		},
	)

	// 0 = closed, 1 = open, 2 = half-open
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state per external adapter",
		},
		[]string{"name"},
	)

	ModerationClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "moderation_ws_clients",
			Help: "Connected moderation feed websocket clients",
		},
	)
)
