// ArtSwipe - Swipe-based Artwork Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/artswipe

package catalogue

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// ReloadFunc is invoked after the watched file settles.
type ReloadFunc func(ctx context.Context) error

// WatcherConfig configures a Watcher.
type WatcherConfig struct {
	// Debounce is how long the file must be quiet before a reload.
	// Default: 500ms.
	Debounce time.Duration

	// MinInterval is the minimum time between two reloads.
	// Default: 5s.
	MinInterval time.Duration
}

// DefaultWatcherConfig returns production defaults.
func DefaultWatcherConfig() WatcherConfig {
	return WatcherConfig{
		Debounce:    500 * time.Millisecond,
		MinInterval: 5 * time.Second,
	}
}

// Watcher reloads the catalogue when its features file changes.
//
// The file's parent directory is watched rather than the file itself, so
// editors and tools that replace the file by rename are picked up.
type Watcher struct {
	path     string
	name     string
	cfg      WatcherConfig
	limiter  *rate.Limiter
	onChange ReloadFunc
	logger   zerolog.Logger
	ready    chan struct{}
}

// NewWatcher creates a watcher for path that calls onChange after changes.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewWatcher(path string, cfg WatcherConfig, onChange ReloadFunc, logger zerolog.Logger) *Watcher {
	defaults := DefaultWatcherConfig()
	if cfg.Debounce <= 0 {
		cfg.Debounce = defaults.Debounce
	}
	if cfg.MinInterval <= 0 {
		cfg.MinInterval = defaults.MinInterval
	}

	path = filepath.Clean(path)
	return &Watcher{
		path:     path,
		name:     filepath.Base(path),
		cfg:      cfg,
		limiter:  rate.NewLimiter(rate.Every(cfg.MinInterval), 1),
		onChange: onChange,
		logger:   logger.With().Str("component", "catalogue_watcher").Str("path", path).Logger(),
		ready:    make(chan struct{}),
	}
}

// Ready is closed once the watch is registered.
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// Run watches until ctx is done. Reload errors are logged and do not stop
// the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	defer func() { _ = fw.Close() }() //nolint:errcheck // shutdown path

	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}
	close(w.ready)
	w.logger.Info().Dur("debounce", w.cfg.Debounce).Msg("watching catalogue for changes")

	timer := time.NewTimer(w.cfg.Debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fw.Events:
			if !ok {
				return errors.New("fsnotify event channel closed")
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug().Str("op", event.Op.String()).Msg("catalogue file changed")
			timer.Reset(w.cfg.Debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return errors.New("fsnotify error channel closed")
			}
			w.logger.Warn().Err(err).Msg("catalogue watcher error")

		case <-timer.C:
			if err := w.limiter.Wait(ctx); err != nil {
				return ctx.Err()
			}
			w.reload(ctx)
		}
	}
}

// relevant reports whether event may have changed the watched file.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Base(event.Name) != w.name {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

func (w *Watcher) reload(ctx context.Context) {
	start := time.Now()
	if err := w.onChange(ctx); err != nil {
		w.logger.Error().Err(err).Msg("catalogue reload failed")
		return
	}
	w.logger.Info().Dur("duration", time.Since(start)).Msg("catalogue reloaded")
}
