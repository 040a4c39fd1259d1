// ArtSwipe - Swipe-based Artwork Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/artswipe

package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/artswipe/internal/recommend"
)

// FileStore persists the ledger as an indented JSON file.
type FileStore struct {
	path   string
	logger zerolog.Logger

	mu          sync.Mutex
	lastVersion uint64
}

var _ recommend.LedgerStore = (*FileStore)(nil)

// NewFileStore creates a store writing to path. The parent directory is
// created on first save.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewFileStore(path string, logger zerolog.Logger) *FileStore {
	return &FileStore{
		path:   path,
		logger: logger.With().Str("component", "ledger_store").Str("backend", "file").Logger(),
	}
}

// Path returns the ledger file location.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the ledger. A missing file is an empty ledger.
func (s *FileStore) Load(ctx context.Context) (recommend.Ledger, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Info().Str("path", s.path).Msg("no preference file, starting empty")
		return recommend.Ledger{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read preference file: %w", err)
	}

	return decodeLedger(data)
}

// Save rewrites the whole file. Snapshots not newer than the last one written
// are skipped.
//
//nolint:gocritic // snapshot passed by value, it is copied by the engine
func (s *FileStore) Save(ctx context.Context, snap recommend.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if snap.Version != 0 && snap.Version <= s.lastVersion {
		s.logger.Debug().
			Uint64("version", snap.Version).
			Uint64("last_version", s.lastVersion).
			Msg("skipping stale preference snapshot")
		return nil
	}

	data, err := encodeLedger(snap.Ledger)
	if err != nil {
		return err
	}

	if err := writeFileAtomic(s.path, data); err != nil {
		return err
	}

	s.lastVersion = snap.Version
	return nil
}

// writeFileAtomic writes data to a temp file in the target directory, syncs
// it and renames it over path.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create preference directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }() //nolint:errcheck // removal fails harmlessly after a successful rename

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close() //nolint:errcheck // write error takes precedence
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close() //nolint:errcheck // sync error takes precedence
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace preference file: %w", err)
	}
	return nil
}

// encodeLedger renders the ledger with two-space indentation. Nil lists are
// written as empty arrays.
func encodeLedger(ledger recommend.Ledger) ([]byte, error) {
	out := make(recommend.Ledger, len(ledger))
	for id, pref := range ledger {
		if pref.Liked == nil {
			pref.Liked = []string{}
		}
		if pref.Disliked == nil {
			pref.Disliked = []string{}
		}
		out[id] = pref
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode preferences: %w", err)
	}
	return data, nil
}

func decodeLedger(data []byte) (recommend.Ledger, error) {
	ledger := recommend.Ledger{}
	if err := json.Unmarshal(data, &ledger); err != nil {
		return nil, fmt.Errorf("decode preferences: %w", err)
	}
	return ledger, nil
}
