// ArtSwipe - Swipe-based Artwork Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/artswipe

package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/artswipe/internal/catalogue"
	"github.com/tomtom215/artswipe/internal/metrics"
	"github.com/tomtom215/artswipe/internal/recommend"
)

// CatalogueEngine is the engine surface the catalogue service drives.
type CatalogueEngine interface {
	ProcessCatalogue(ctx context.Context, cat *recommend.Catalogue) error
	RestoreLedger(ctx context.Context) error
	RetrainAll(ctx context.Context) (int, error)
}

// CatalogueServiceConfig holds catalogue service configuration.
type CatalogueServiceConfig struct {
	// FeaturesPath is the JSON features file.
	FeaturesPath string

	// MetadataPath is the optional metadata CSV. Empty disables enrichment.
	MetadataPath string

	// Watch reloads the catalogue when the features file changes.
	Watch bool

	// Watcher tunes debounce and reload rate.
	Watcher catalogue.WatcherConfig
}

// CatalogueService loads the catalogue into the engine and keeps it current.
//
// The first successful load also restores the persisted ledger. Restarts
// after that reload the catalogue but keep the in-memory ledger, which is
// never older than the persisted one.
type CatalogueService struct {
	engine   CatalogueEngine
	config   CatalogueServiceConfig
	logger   zerolog.Logger
	metadata atomic.Pointer[catalogue.Metadata]
	restored atomic.Bool
	loaded   chan struct{}
	name     string
}

// NewCatalogueService creates a catalogue service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCatalogueService(engine CatalogueEngine, cfg CatalogueServiceConfig, logger zerolog.Logger) *CatalogueService {
	return &CatalogueService{
		engine: engine,
		config: cfg,
		logger: logger.With().Str("service", "catalogue").Logger(),
		loaded: make(chan struct{}),
		name:   "catalogue-service",
	}
}

// Metadata returns the current artwork metadata, nil before the first load
// or when no metadata file is configured.
func (s *CatalogueService) Metadata() *catalogue.Metadata {
	return s.metadata.Load()
}

// Loaded is closed after the first successful load and ledger restore.
func (s *CatalogueService) Loaded() <-chan struct{} {
	return s.loaded
}

// Serve implements suture.Service. A failed initial load is returned so the
// supervisor retries with backoff.
func (s *CatalogueService) Serve(ctx context.Context) error {
	if s.restored.Load() {
		if err := s.reload(ctx); err != nil {
			return err
		}
	} else {
		if err := s.Load(ctx); err != nil {
			return err
		}
		if err := s.engine.RestoreLedger(ctx); err != nil {
			return fmt.Errorf("restore ledger: %w", err)
		}
		s.restored.Store(true)
		close(s.loaded)
	}

	if !s.config.Watch {
		<-ctx.Done()
		return ctx.Err()
	}

	// A Watcher registers its watch once, so each Serve gets a new one.
	watcher := catalogue.NewWatcher(s.config.FeaturesPath, s.config.Watcher, s.reload, s.logger)
	return watcher.Run(ctx)
}

// Load reads the features and metadata files and installs them.
func (s *CatalogueService) Load(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { metrics.RecordCatalogueReload(err) }()

	cat, err := catalogue.LoadFeatures(s.config.FeaturesPath)
	if err != nil {
		return fmt.Errorf("load features: %w", err)
	}

	var md *catalogue.Metadata
	if s.config.MetadataPath != "" {
		md, err = catalogue.LoadMetadata(s.config.MetadataPath)
		if err != nil {
			return fmt.Errorf("load metadata: %w", err)
		}
	}

	if err := s.engine.ProcessCatalogue(ctx, cat); err != nil {
		return err
	}
	s.metadata.Store(md)

	s.logger.Info().
		Int("artworks", cat.Len()).
		Int("metadata_entries", md.Len()).
		Dur("duration", time.Since(start)).
		Msg("catalogue loaded")
	return nil
}

// reload installs a changed catalogue and retrains existing models against
// the new feature space.
func (s *CatalogueService) reload(ctx context.Context) error {
	if err := s.Load(ctx); err != nil {
		return err
	}

	retrained, err := s.engine.RetrainAll(ctx)
	if err != nil {
		return fmt.Errorf("retrain after reload: %w", err)
	}
	s.logger.Info().Int("retrained", retrained).Msg("models retrained for new catalogue")
	return nil
}

// String implements fmt.Stringer for suture's event log.
func (s *CatalogueService) String() string {
	return s.name
}
