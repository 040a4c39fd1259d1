// ArtSwipe - Swipe-based Artwork Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/artswipe

// Package storage provides preference ledger persistence for the
// recommendation engine.
//
// Every store implements recommend.LedgerStore. The engine hands a store the
// full ledger after every swipe; there is no append log and no partial update.
//
// # Backends
//
//   - FileStore: a human-readable JSON document on disk, rewritten atomically
//     via temp file, fsync and rename.
//   - BadgerStore: the same JSON document in an embedded BadgerDB, plus one
//     key per user for inspection.
//   - BreakerStore: wraps another store in a circuit breaker so that a failing
//     backend fails fast instead of stalling every swipe.
//
// # Document Format
//
// The ledger is a JSON object keyed by user ID:
//
//	{
//	  "alice": {
//	    "liked": ["starry_night.jpg"],
//	    "disliked": ["the_scream.jpg"]
//	  }
//	}
//
// # Ordering
//
// Snapshots carry a monotonically increasing version. FileStore and
// BadgerStore remember the last version they wrote and skip older snapshots,
// so concurrent saves from different users can never roll the ledger back.
//
// # Usage Example
//
//	store := storage.NewFileStore("./data/user_preferences.json", logger)
//	engine, err := recommend.NewEngine(cfg, logger,
//	    recommend.WithStore(storage.NewBreakerStore(store, storage.DefaultBreakerConfig(), logger)),
//	)
package storage
