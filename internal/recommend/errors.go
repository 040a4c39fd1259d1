// ArtSwipe - Swipe-based Artwork Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/artswipe

package recommend

import "errors"

// Sentinel errors returned by the engine. Callers match them with errors.Is;
// the returned error usually wraps one of these with request detail.
var (
	// ErrInvalidInput reports an empty or malformed catalogue, or bad training data.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotReady reports an operation attempted before the catalogue was processed.
	ErrNotReady = errors.New("catalogue not processed")

	// ErrUnknownArtwork reports a swipe on an artwork outside the catalogue.
	ErrUnknownArtwork = errors.New("unknown artwork")

	// ErrPersistenceWrite reports a failed ledger save. It is logged and
	// counted by the engine but never returned from RecordSwipe.
	ErrPersistenceWrite = errors.New("persistence write failed")

	// ErrSingleClass reports training data that holds only likes or only dislikes.
	ErrSingleClass = errors.New("training data contains a single class")
)
