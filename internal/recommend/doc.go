// ArtSwipe - Swipe-based Artwork Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/artswipe

// Package recommend implements the per-user personalization engine behind
// swipe-based artwork recommendations.
//
// # Architecture
//
// The engine owns three pieces of state:
//
//   - Feature store: the catalogue's standardized and PCA-reduced vectors
//   - Preference ledger: per-user append-only liked/disliked lists
//   - Per-user models: random forest classifiers trained once a user has
//     at least TrainThreshold likes and dislikes
//
// # Recommendation Modes
//
// A request is served by exactly one of three paths:
//
//   - random: the user has no usable likes, so unswiped artworks are shuffled
//   - similarity: cosine similarity to the mean of the liked vectors
//   - classifier: the user's model ranks unswiped artworks by like probability
//
// Swiped artworks are never recommended back to the same user.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logger,
//	    recommend.WithStore(store))
//	if err != nil {
//	    return err
//	}
//	if err := engine.ProcessCatalogue(ctx, cat); err != nil {
//	    return err
//	}
//	_ = engine.RecordSwipe(ctx, "user-1", "image_12.jpg", true)
//	res, err := engine.Recommend(ctx, "user-1", 10)
//
// # Thread Safety
//
// The engine is safe for concurrent use. Swipes for the same user are
// serialized by a per-user lock held across ledger append, persistence and
// training. Swipes for different users proceed independently. The feature
// store is immutable once built and is swapped atomically on reprocessing.
package recommend
