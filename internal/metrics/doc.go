// ArtSwipe - Swipe-based Artwork Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/artswipe

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry through promauto and
are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8080/metrics

# Available Metrics

API Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: In-flight requests (gauge)
  - api_rate_limit_hits_total: Rate limiter rejections (counter)
    Labels: endpoint

Recommendation Metrics:
  - artswipe_swipes_total: Recorded swipes (counter)
    Labels: outcome (like, dislike)
  - artswipe_recommendations_total: Served recommendation lists (counter)
    Labels: mode (random, similarity, classifier)
  - artswipe_recommendation_duration_seconds: Ranking latency (histogram)
    Labels: mode
  - artswipe_training_total: Per-user training attempts (counter)
    Labels: result (success, failure, skipped)
  - artswipe_training_duration_seconds: Classifier fit time (histogram)
  - artswipe_persistence_failures_total: Failed ledger writes (counter)

Catalogue Metrics:
  - artswipe_catalogue_artworks: Artworks in the feature store (gauge)
  - artswipe_catalogue_dimensions: Raw and reduced dimension (gauge)
    Labels: stage (raw, reduced)
  - artswipe_catalogue_reloads_total: Catalogue load attempts (counter)
    Labels: result

Circuit Breaker Metrics:
  - circuit_breaker_state: 0=closed, 1=half-open, 2=open (gauge)
  - circuit_breaker_requests_total: Labels name, result (counter)
  - circuit_breaker_consecutive_failures (gauge)
  - circuit_breaker_state_transitions_total: Labels name, from_state, to_state (counter)

# Engine Integration

RecommendObserver implements recommend.Observer and is passed to the engine
with recommend.WithObserver. The engine itself never imports this package.

# Example Alerts

	groups:
	  - name: artswipe
	    rules:
	      - alert: PreferenceWritesFailing
	        expr: rate(artswipe_persistence_failures_total[5m]) > 0
	        for: 5m
	      - alert: LedgerStoreCircuitOpen
	        expr: circuit_breaker_state{name="ledger-store"} == 2
	        for: 1m
*/
package metrics
