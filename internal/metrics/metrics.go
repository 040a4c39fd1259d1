// ArtSwipe - Swipe-based Artwork Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/artswipe

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Recommendation Engine Metrics
	SwipesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "artswipe_swipes_total",
			Help: "Total number of recorded swipes",
		},
		[]string{"outcome"}, // "like", "dislike"
	)

	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "artswipe_recommendations_total",
			Help: "Total number of recommendation requests served",
		},
		[]string{"mode"}, // "random", "similarity", "classifier"
	)

	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "artswipe_recommendation_duration_seconds",
			Help:    "Time to rank recommendations in seconds",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5},
		},
		[]string{"mode"},
	)

	TrainingTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "artswipe_training_total",
			Help: "Total number of per-user training attempts",
		},
		[]string{"result"}, // "success", "failure", "skipped"
	)

	TrainingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "artswipe_training_duration_seconds",
			Help:    "Per-user classifier fit duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)

	PersistenceFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "artswipe_persistence_failures_total",
			Help: "Total number of failed preference ledger writes",
		},
	)

	CatalogueArtworks = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "artswipe_catalogue_artworks",
			Help: "Number of artworks in the processed catalogue",
		},
	)

	CatalogueDimensions = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "artswipe_catalogue_dimensions",
			Help: "Feature vector dimension before and after reduction",
		},
		[]string{"stage"}, // "raw", "reduced"
	)

	EngineUsers = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "artswipe_users",
			Help: "Number of users with a swipe ledger",
		},
		[]string{"state"}, // "known", "trained"
	)

	CatalogueReloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "artswipe_catalogue_reloads_total",
			Help: "Total number of catalogue loads",
		},
		[]string{"result"}, // "success", "failure"
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit counts a request rejected by the rate limiter.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordCatalogueReload counts a catalogue load attempt.
func RecordCatalogueReload(err error) {
	if err != nil {
		CatalogueReloads.WithLabelValues("failure").Inc()
		return
	}
	CatalogueReloads.WithLabelValues("success").Inc()
}

// SetAppInfo publishes build information and starts the uptime clock.
func SetAppInfo(version, goVersion string, start time.Time) {
	AppInfo.WithLabelValues(version, goVersion).Set(1)
	AppUptime.Set(time.Since(start).Seconds())
}

// RecordEngineStats publishes user gauges and refreshes the uptime gauge.
func RecordEngineStats(users, trained int, start time.Time) {
	EngineUsers.WithLabelValues("known").Set(float64(users))
	EngineUsers.WithLabelValues("trained").Set(float64(trained))
	AppUptime.Set(time.Since(start).Seconds())
}
