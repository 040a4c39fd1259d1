// ArtSwipe - Swipe-based Artwork Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/artswipe

package recommend

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// Note: This package has no dependencies on other internal packages. The
// LedgerStore and Observer interfaces let storage and metrics plug in from
// outside without circular imports.

// Engine holds the feature store, the preference ledger and the per-user
// models. It is safe for concurrent use.
type Engine struct {
	// Configuration
	config *Config
	logger zerolog.Logger

	// Feature store, replaced wholesale on reprocessing
	features atomic.Pointer[featureStore]

	// restored is set once RestoreLedger has loaded the persisted ledger.
	// With a store configured, swipes and recommendations wait for it so a
	// write-through save cannot replace the persisted ledger first.
	restored atomic.Bool

	// Preference ledger. ledgerMu guards appends to any user's lists and the
	// ledger version; usersMu guards the users map itself.
	users         map[string]*userState
	usersMu       sync.RWMutex
	ledgerMu      sync.Mutex
	ledgerVersion uint64

	// Collaborators
	store    LedgerStore
	trainer  Trainer
	observer Observer

	// Random source for shuffling (protected by rngMu for concurrent access)
	rng   *rand.Rand
	rngMu sync.Mutex

	// Metrics
	swipeCount        atomic.Int64
	requestCount      atomic.Int64
	trainCount        atomic.Int64
	trainFailures     atomic.Int64
	persistenceErrors atomic.Int64
}

// Option configures optional engine collaborators.
type Option func(*Engine)

// WithStore enables write-through persistence of the preference ledger.
func WithStore(store LedgerStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithTrainer replaces the default random forest trainer.
func WithTrainer(trainer Trainer) Option {
	return func(e *Engine) {
		e.trainer = trainer
	}
}

// WithRand replaces the random source used for new-user shuffles.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		e.rng = rng
	}
}

// WithObserver registers an observer for engine events.
func WithObserver(observer Observer) Option {
	return func(e *Engine) {
		e.observer = observer
	}
}

// NewEngine creates a new recommendation engine. The catalogue must be
// processed before swipes or recommendations are accepted.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger, opts ...Option) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	seed := cfg.resolveSeed()

	e := &Engine{
		config:   cfg.Clone(),
		logger:   logger.With().Str("component", "recommend").Logger(),
		users:    make(map[string]*userState),
		trainer:  NewForestTrainer(cfg.Forest, seed),
		observer: nopObserver{},
		rng:      rand.New(rand.NewSource(seed)), //nolint:gosec // math/rand is fine for recommendation shuffling
	}

	for _, opt := range opts {
		opt(e)
	}

	return e, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// ProcessCatalogue standardizes and reduces the raw catalogue and replaces
// the feature store. Existing ledgers and models are kept; they are keyed by
// artwork ID, so callers must keep IDs stable across reloads.
func (e *Engine) ProcessCatalogue(ctx context.Context, cat *Catalogue) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	fs, err := reduceCatalogue(cat, e.config.MaxComponents)
	if err != nil {
		return fmt.Errorf("process catalogue: %w", err)
	}

	e.installFeatures(fs)
	return nil
}

// LoadReducedFeatures installs already-reduced vectors as the feature store
// without standardization or PCA. The catalogue is validated like raw input.
func (e *Engine) LoadReducedFeatures(cat *Catalogue) error {
	if err := cat.Validate(); err != nil {
		return fmt.Errorf("load reduced features: %w", err)
	}

	ids := make([]string, cat.Len())
	copy(ids, cat.IDs)
	dim := cat.Dim()

	e.installFeatures(newFeatureStore(ids, copyVectors(cat.Vectors), dim, nil))
	return nil
}

func (e *Engine) installFeatures(fs *featureStore) {
	e.features.Store(fs)

	info := fs.info()
	e.observer.CatalogueProcessed(info)
	e.logger.Info().
		Int("artworks", info.Artworks).
		Int("raw_dim", info.RawDimension).
		Int("reduced_dim", info.ReducedDimension).
		Msg("catalogue processed")
}

// currentFeatures returns the current feature store or ErrNotReady.
func (e *Engine) currentFeatures() (*featureStore, error) {
	fs := e.features.Load()
	if fs == nil {
		return nil, ErrNotReady
	}
	return fs, nil
}

// servingFeatures is currentFeatures for swipes and recommendations. It also
// returns ErrNotReady while a configured store has not been restored.
func (e *Engine) servingFeatures() (*featureStore, error) {
	fs, err := e.currentFeatures()
	if err != nil {
		return nil, err
	}
	if e.store != nil && !e.restored.Load() {
		return nil, fmt.Errorf("%w: ledger not restored", ErrNotReady)
	}
	return fs, nil
}

// Ready reports whether the engine accepts swipes and recommendation
// requests: a catalogue has been processed and, when a store is configured,
// the persisted ledger has been restored.
func (e *Engine) Ready() bool {
	return e.features.Load() != nil && (e.store == nil || e.restored.Load())
}

// CatalogueInfo describes the current feature store.
func (e *Engine) CatalogueInfo() CatalogueInfo {
	fs := e.features.Load()
	if fs == nil {
		return CatalogueInfo{}
	}
	return fs.info()
}

// ArtworkIDs returns the catalogue's artwork IDs in catalogue order.
func (e *Engine) ArtworkIDs() []string {
	fs := e.features.Load()
	if fs == nil {
		return nil
	}
	ids := make([]string, len(fs.ids))
	copy(ids, fs.ids)
	return ids
}

// Metrics returns current engine counters.
func (e *Engine) Metrics() Metrics {
	e.usersMu.RLock()
	users := make([]*userState, 0, len(e.users))
	for _, u := range e.users {
		users = append(users, u)
	}
	e.usersMu.RUnlock()

	fs := e.features.Load()
	trained := 0
	for _, u := range users {
		u.mu.RLock()
		if u.hasModelFor(fs) {
			trained++
		}
		u.mu.RUnlock()
	}

	return Metrics{
		Users:               len(users),
		TrainedUsers:        trained,
		Swipes:              e.swipeCount.Load(),
		Recommendations:     e.requestCount.Load(),
		TrainingRuns:        e.trainCount.Load(),
		TrainingFailures:    e.trainFailures.Load(),
		PersistenceFailures: e.persistenceErrors.Load(),
	}
}

// shuffle permutes ids in place using the engine's random source.
func (e *Engine) shuffle(ids []string) {
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	e.rng.Shuffle(len(ids), func(i, j int) {
		ids[i], ids[j] = ids[j], ids[i]
	})
}
