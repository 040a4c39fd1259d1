// ArtSwipe - Swipe-based Artwork Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/artswipe

package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/artswipe/internal/config"
	"github.com/tomtom215/artswipe/internal/metrics"
	"github.com/tomtom215/artswipe/internal/recommend"
	"github.com/tomtom215/artswipe/internal/recommend/storage"
	"github.com/tomtom215/artswipe/internal/supervisor/services"
)

// app is the engine and its ledger store, built from configuration.
type app struct {
	engine *recommend.Engine
	close  func() error
}

// openStore returns the configured ledger store, or nil for the none backend.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func openStore(cfg *config.Config, logger zerolog.Logger) (recommend.LedgerStore, func() error, error) {
	noop := func() error { return nil }

	var (
		store  recommend.LedgerStore
		closer = noop
	)
	switch cfg.Persistence.Backend {
	case config.BackendNone:
		logger.Warn().Msg("persistence disabled, swipes are lost on restart")
		return nil, noop, nil
	case config.BackendFile:
		store = storage.NewFileStore(cfg.Persistence.Path, logger)
	case config.BackendBadger:
		bs, err := storage.OpenBadgerStore(cfg.Persistence.Path, logger)
		if err != nil {
			return nil, noop, fmt.Errorf("open badger store: %w", err)
		}
		store, closer = bs, bs.Close
	default:
		return nil, noop, fmt.Errorf("unknown persistence backend %q", cfg.Persistence.Backend)
	}

	if cfg.Persistence.Breaker.Enabled {
		store = storage.NewBreakerStore(store, cfg.StoreBreakerConfig(), logger)
	}

	logger.Info().
		Str("backend", cfg.Persistence.Backend).
		Str("path", cfg.Persistence.Path).
		Bool("breaker", cfg.Persistence.Breaker.Enabled).
		Msg("ledger store opened")
	return store, closer, nil
}

// newRuntime wires the engine to the configured store and the Prometheus
// observer.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func newRuntime(cfg *config.Config, logger zerolog.Logger) (*app, error) {
	store, closer, err := openStore(cfg, logger)
	if err != nil {
		return nil, err
	}

	opts := []recommend.Option{recommend.WithObserver(metrics.RecommendObserver{})}
	if store != nil {
		opts = append(opts, recommend.WithStore(store))
	}

	engine, err := recommend.NewEngine(cfg.EngineConfig(), logger, opts...)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("create engine: %w", err), closer())
	}
	return &app{engine: engine, close: closer}, nil
}

// catalogueServiceConfig maps configuration onto the catalogue service.
func catalogueServiceConfig(cfg *config.Config) services.CatalogueServiceConfig {
	return services.CatalogueServiceConfig{
		FeaturesPath: cfg.Catalogue.FeaturesPath,
		MetadataPath: cfg.Catalogue.MetadataPath,
		Watch:        cfg.Catalogue.Watch,
		Watcher:      cfg.WatcherConfig(),
	}
}

// loadOnce loads the catalogue and restores the ledger without supervision.
// One-shot commands use it in place of the long-running catalogue service.
func (rt *app) loadOnce(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*services.CatalogueService, error) { //nolint:gocritic // zerolog by value
	svcCfg := catalogueServiceConfig(cfg)
	svcCfg.Watch = false

	svc := services.NewCatalogueService(rt.engine, svcCfg, logger)
	if err := svc.Load(ctx); err != nil {
		return nil, err
	}
	if err := rt.engine.RestoreLedger(ctx); err != nil {
		return nil, fmt.Errorf("restore ledger: %w", err)
	}
	return svc, nil
}
