// ArtSwipe - Swipe-based Artwork Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/artswipe

package storage

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/artswipe/internal/recommend"
)

// flakyStore fails while failing is set and counts calls.
type flakyStore struct {
	mu      sync.Mutex
	failing bool
	calls   int
}

var errBackend = errors.New("backend unavailable")

func (f *flakyStore) Load(context.Context) (recommend.Ledger, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.failing {
		return nil, errBackend
	}
	return sampleLedger(), nil
}

func (f *flakyStore) Save(context.Context, recommend.Snapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.failing {
		return errBackend
	}
	return nil
}

func (f *flakyStore) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func testBreakerConfig(name string) BreakerConfig {
	return BreakerConfig{
		Name:         name,
		MaxRequests:  1,
		Timeout:      time.Hour,
		MinRequests:  3,
		FailureRatio: 0.5,
	}
}

func TestBreakerStore_PassesThrough(t *testing.T) {
	t.Parallel()

	next := &flakyStore{}
	store := NewBreakerStore(next, testBreakerConfig("test-pass"), testLogger())
	ctx := context.Background()

	ledger, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(ledger) != 2 {
		t.Errorf("Load() = %v, want sample ledger", ledger)
	}
	if err := store.Save(ctx, recommend.Snapshot{Version: 1, Ledger: ledger}); err != nil {
		t.Errorf("Save() error = %v", err)
	}
	if store.State() != gobreaker.StateClosed {
		t.Errorf("State() = %v, want closed", store.State())
	}
}

func TestBreakerStore_OpensAndFailsFast(t *testing.T) {
	t.Parallel()

	next := &flakyStore{failing: true}
	store := NewBreakerStore(next, testBreakerConfig("test-open"), testLogger())
	ctx := context.Background()
	snap := recommend.Snapshot{Version: 1, Ledger: sampleLedger()}

	for i := 0; i < 3; i++ {
		err := store.Save(ctx, snap)
		if !errors.Is(err, errBackend) {
			t.Fatalf("Save() #%d error = %v, want backend error", i, err)
		}
	}

	if store.State() != gobreaker.StateOpen {
		t.Fatalf("State() = %v, want open", store.State())
	}

	calls := next.Calls()
	err := store.Save(ctx, snap)
	if !errors.Is(err, ErrBreakerOpen) {
		t.Errorf("Save() error = %v, want ErrBreakerOpen", err)
	}
	if next.Calls() != calls {
		t.Error("open breaker called the wrapped store")
	}
}

func TestBreakerStore_CancellationIsNotAFailure(t *testing.T) {
	t.Parallel()

	store := NewBreakerStore(NewFileStore(t.TempDir()+"/prefs.json", testLogger()), testBreakerConfig("test-cancel"), testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for i := 0; i < 5; i++ {
		if err := store.Save(ctx, recommend.Snapshot{Version: uint64(i + 1)}); !errors.Is(err, context.Canceled) {
			t.Fatalf("Save() error = %v, want context.Canceled", err)
		}
	}
	if store.State() != gobreaker.StateClosed {
		t.Errorf("State() = %v, want closed after canceled calls", store.State())
	}
}

func TestStateToFloat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		state gobreaker.State
		want  float64
	}{
		{gobreaker.StateClosed, 0},
		{gobreaker.StateHalfOpen, 1},
		{gobreaker.StateOpen, 2},
	}
	for _, tt := range tests {
		if got := stateToFloat(tt.state); got != tt.want {
			t.Errorf("stateToFloat(%v) = %v, want %v", tt.state, got, tt.want)
		}
	}
}
