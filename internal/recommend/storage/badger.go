// ArtSwipe - Swipe-based Artwork Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/artswipe

package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/artswipe/internal/recommend"
)

// Key layout for BadgerDB storage
const (
	ledgerKey     = "ledger:v1"
	userKeyPrefix = "ledger:user:"
)

// BadgerStore persists the ledger in an embedded BadgerDB.
type BadgerStore struct {
	db     *badger.DB
	owned  bool
	logger zerolog.Logger

	mu          sync.Mutex
	lastVersion uint64
}

var _ recommend.LedgerStore = (*BadgerStore)(nil)

// OpenBadgerStore opens (or creates) a BadgerDB at path. Close releases it.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func OpenBadgerStore(path string, logger zerolog.Logger) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	opts.SyncWrites = true
	opts.Logger = nil // Suppress BadgerDB logs

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for preferences: %w", err)
	}

	s := NewBadgerStore(db, logger)
	s.owned = true

	s.logger.Info().Str("path", path).Msg("preference database opened")
	return s, nil
}

// NewBadgerStore wraps an already open database. The caller keeps ownership.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewBadgerStore(db *badger.DB, logger zerolog.Logger) *BadgerStore {
	return &BadgerStore{
		db:     db,
		logger: logger.With().Str("component", "ledger_store").Str("backend", "badger").Logger(),
	}
}

// Load reads the ledger document. A database without one is an empty ledger.
func (s *BadgerStore) Load(ctx context.Context) (recommend.Ledger, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var ledger recommend.Ledger
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(ledgerKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			ledger = recommend.Ledger{}
			return nil
		}
		if err != nil {
			return fmt.Errorf("get ledger: %w", err)
		}

		return item.Value(func(val []byte) error {
			decoded, err := decodeLedger(val)
			if err != nil {
				return err
			}
			ledger = decoded
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return ledger, nil
}

// Save rewrites the ledger document and the per-user keys in one
// transaction. Users no longer in the ledger lose their key.
//
//nolint:gocritic // snapshot passed by value, it is copied by the engine
func (s *BadgerStore) Save(ctx context.Context, snap recommend.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if snap.Version != 0 && snap.Version <= s.lastVersion {
		return nil
	}

	doc, err := encodeLedger(snap.Ledger)
	if err != nil {
		return err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(ledgerKey), doc); err != nil {
			return fmt.Errorf("set ledger: %w", err)
		}

		stale := userKeys(txn)

		for id, pref := range snap.Ledger {
			data, err := json.Marshal(pref)
			if err != nil {
				return fmt.Errorf("marshal user %q: %w", id, err)
			}
			if err := txn.Set([]byte(userKeyPrefix+id), data); err != nil {
				return fmt.Errorf("set user %q: %w", id, err)
			}
			delete(stale, id)
		}

		for id := range stale {
			if err := txn.Delete([]byte(userKeyPrefix + id)); err != nil {
				return fmt.Errorf("delete user %q: %w", id, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.lastVersion = snap.Version
	return nil
}

// User returns one user's stored preferences.
func (s *BadgerStore) User(ctx context.Context, userID string) (recommend.UserPreference, bool, error) {
	if err := ctx.Err(); err != nil {
		return recommend.UserPreference{}, false, err
	}

	var pref recommend.UserPreference
	found := false

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(userKeyPrefix + userID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("get user: %w", err)
		}

		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &pref)
		})
	})
	if err != nil {
		return recommend.UserPreference{}, false, err
	}
	return pref, found, nil
}

// Close closes the database if this store opened it.
func (s *BadgerStore) Close() error {
	if s.owned {
		return s.db.Close()
	}
	return nil
}

// userKeys lists the user IDs that currently have a per-user key.
func userKeys(txn *badger.Txn) map[string]struct{} {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	it := txn.NewIterator(opts)
	defer it.Close()

	ids := make(map[string]struct{})
	prefix := []byte(userKeyPrefix)
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		id := strings.TrimPrefix(string(it.Item().Key()), userKeyPrefix)
		ids[id] = struct{}{}
	}
	return ids
}
