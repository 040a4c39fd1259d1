// ArtSwipe - Swipe-based Artwork Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/artswipe

package metrics

import (
	"time"

	"github.com/tomtom215/artswipe/internal/recommend"
)

// RecommendObserver publishes recommendation engine events to Prometheus.
type RecommendObserver struct{}

var _ recommend.Observer = RecommendObserver{}

// SwipeRecorded counts a like or dislike.
func (RecommendObserver) SwipeRecorded(liked bool) {
	if liked {
		SwipesTotal.WithLabelValues("like").Inc()
		return
	}
	SwipesTotal.WithLabelValues("dislike").Inc()
}

// RecommendationServed counts a request and its latency by mode.
func (RecommendObserver) RecommendationServed(mode recommend.Mode, latency time.Duration) {
	RecommendationsTotal.WithLabelValues(string(mode)).Inc()
	RecommendationDuration.WithLabelValues(string(mode)).Observe(latency.Seconds())
}

// ModelTrained counts a training attempt. Skipped attempts have no duration.
func (RecommendObserver) ModelTrained(outcome recommend.TrainOutcome, duration time.Duration) {
	TrainingTotal.WithLabelValues(string(outcome)).Inc()
	if outcome != recommend.TrainSkipped {
		TrainingDuration.Observe(duration.Seconds())
	}
}

// PersistenceFailed counts a failed ledger write.
func (RecommendObserver) PersistenceFailed() {
	PersistenceFailures.Inc()
}

// CatalogueProcessed updates the catalogue gauges.
//
//nolint:gocritic // info passed by value to satisfy the interface
func (RecommendObserver) CatalogueProcessed(info recommend.CatalogueInfo) {
	CatalogueArtworks.Set(float64(info.Artworks))
	CatalogueDimensions.WithLabelValues("raw").Set(float64(info.RawDimension))
	CatalogueDimensions.WithLabelValues("reduced").Set(float64(info.ReducedDimension))
}
