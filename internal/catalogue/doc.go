// ArtSwipe - Swipe-based Artwork Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/artswipe

// Package catalogue loads the artwork catalogue from disk and watches it for
// changes.
//
// Two files describe the catalogue:
//
//   - a features file, a JSON object mapping artwork ID to a numeric feature
//     vector, produced by the offline image feature extraction pipeline;
//   - an optional metadata CSV with at least the columns filename, artist,
//     genre and style, used to enrich recommendation responses.
//
// Artwork order is the order of keys in the features file. The recommendation
// engine breaks score ties by this order, so the loader never goes through a
// Go map.
//
// Watcher re-runs a reload callback when the features file changes, debouncing
// bursts of filesystem events and rate limiting reloads.
package catalogue
