// ArtSwipe - Swipe-based Artwork Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/artswipe

package storage

import (
	"context"
	"reflect"
	"testing"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/artswipe/internal/recommend"
)

func setupBadgerDB(t *testing.T) *badger.DB {
	t.Helper()

	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		t.Fatalf("open badger: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestBadgerStore_LoadEmpty(t *testing.T) {
	t.Parallel()

	store := NewBadgerStore(setupBadgerDB(t), testLogger())
	ledger, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(ledger) != 0 {
		t.Errorf("Load() = %v, want empty", ledger)
	}
}

func TestBadgerStore_SaveAndLoad(t *testing.T) {
	t.Parallel()

	store := NewBadgerStore(setupBadgerDB(t), testLogger())
	ctx := context.Background()

	if err := store.Save(ctx, recommend.Snapshot{Version: 1, Ledger: sampleLedger()}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(got, sampleLedger()) {
		t.Errorf("Load() = %+v, want %+v", got, sampleLedger())
	}

	pref, ok, err := store.User(ctx, "alice")
	if err != nil {
		t.Fatalf("User() error = %v", err)
	}
	if !ok || !reflect.DeepEqual(pref, sampleLedger()["alice"]) {
		t.Errorf("User(alice) = %+v, %v", pref, ok)
	}

	if _, ok, err := store.User(ctx, "nobody"); err != nil || ok {
		t.Errorf("User(nobody) ok = %v, err = %v; want not found", ok, err)
	}
}

func TestBadgerStore_RemovesDroppedUsers(t *testing.T) {
	t.Parallel()

	store := NewBadgerStore(setupBadgerDB(t), testLogger())
	ctx := context.Background()

	if err := store.Save(ctx, recommend.Snapshot{Version: 1, Ledger: sampleLedger()}); err != nil {
		t.Fatalf("Save(v1) error = %v", err)
	}

	onlyAlice := recommend.Ledger{"alice": sampleLedger()["alice"]}
	if err := store.Save(ctx, recommend.Snapshot{Version: 2, Ledger: onlyAlice}); err != nil {
		t.Fatalf("Save(v2) error = %v", err)
	}

	if _, ok, err := store.User(ctx, "bob"); err != nil || ok {
		t.Errorf("User(bob) ok = %v, err = %v; want removed", ok, err)
	}
}

func TestBadgerStore_SkipsStaleSnapshots(t *testing.T) {
	t.Parallel()

	store := NewBadgerStore(setupBadgerDB(t), testLogger())
	ctx := context.Background()

	if err := store.Save(ctx, recommend.Snapshot{Version: 5, Ledger: sampleLedger()}); err != nil {
		t.Fatalf("Save(v5) error = %v", err)
	}
	if err := store.Save(ctx, recommend.Snapshot{Version: 4, Ledger: recommend.Ledger{}}); err != nil {
		t.Fatalf("Save(v4) error = %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Load() has %d users, want 2 from the newer snapshot", len(got))
	}
}

func TestOpenBadgerStore(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ctx := context.Background()

	store, err := OpenBadgerStore(dir, testLogger())
	if err != nil {
		t.Fatalf("OpenBadgerStore() error = %v", err)
	}
	if err := store.Save(ctx, recommend.Snapshot{Version: 1, Ledger: sampleLedger()}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := OpenBadgerStore(dir, testLogger())
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer func() { _ = reopened.Close() }()

	got, err := reopened.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(got, sampleLedger()) {
		t.Errorf("Load() after reopen = %+v, want %+v", got, sampleLedger())
	}
}
