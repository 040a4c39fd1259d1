// ArtSwipe - Swipe-based Artwork Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/artswipe

package validation

// SwipeRequest is the body of POST /api/v1/swipes.
//
// Liked is a pointer so that a missing field is rejected instead of being
// read as a dislike.
type SwipeRequest struct {
	UserID    string `json:"user_id" validate:"required,max=256,identifier"`
	ArtworkID string `json:"artwork_id" validate:"required,max=1024,identifier"`
	Liked     *bool  `json:"liked" validate:"required"`
}

// RecommendationsQuery holds the query parameters of the recommendations
// endpoint after parsing. N of zero selects the engine default.
type RecommendationsQuery struct {
	UserID string `query:"user_id" validate:"required,max=256,identifier"`
	N      int    `query:"n" validate:"gte=0"`
	Enrich bool   `query:"enrich"`
}

// UserPath holds a user ID taken from the URL path.
type UserPath struct {
	UserID string `query:"user_id" validate:"required,max=256,identifier"`
}
