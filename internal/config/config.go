// ArtSwipe - Swipe-based Artwork Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/artswipe

package config

import (
	"time"

	"github.com/tomtom215/artswipe/internal/catalogue"
	"github.com/tomtom215/artswipe/internal/recommend"
	"github.com/tomtom215/artswipe/internal/recommend/storage"
)

// Persistence backends.
const (
	BackendFile   = "file"
	BackendBadger = "badger"
	BackendNone   = "none"
)

// Config holds all application configuration
type Config struct {
	Server      ServerConfig      `koanf:"server"`
	Catalogue   CatalogueConfig   `koanf:"catalogue"`
	Recommend   RecommendConfig   `koanf:"recommend"`
	Persistence PersistenceConfig `koanf:"persistence"`
	Logging     LoggingConfig     `koanf:"logging"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port    int           `koanf:"port"`
	Host    string        `koanf:"host"`
	Timeout time.Duration `koanf:"timeout"`

	// RateLimit is the number of requests allowed per client IP per minute.
	// Zero disables rate limiting.
	RateLimit int `koanf:"rate_limit"`

	CORSOrigins []string `koanf:"cors_origins"`
}

// CatalogueConfig locates the artwork catalogue on disk.
//
// Environment Variables:
//   - FEATURES_PATH: JSON object of filename to feature vector
//   - METADATA_PATH: optional CSV with filename, artist, genre, style
//   - CATALOGUE_WATCH: reload when the features file changes (default: false)
//   - CATALOGUE_DEBOUNCE: quiet period before a reload (default: 500ms)
type CatalogueConfig struct {
	FeaturesPath string        `koanf:"features_path"`
	MetadataPath string        `koanf:"metadata_path"`
	Watch        bool          `koanf:"watch"`
	Debounce     time.Duration `koanf:"debounce"`
	MinInterval  time.Duration `koanf:"min_interval"`
}

// RecommendConfig holds recommendation engine settings.
type RecommendConfig struct {
	// TrainThreshold is the number of likes and of dislikes a user needs
	// before their classifier is trained.
	TrainThreshold int `koanf:"train_threshold"`

	DefaultLimit int `koanf:"default_limit"`

	// MaxLimit caps n on the HTTP API.
	MaxLimit int `koanf:"max_limit"`

	MaxComponents int   `koanf:"max_components"`
	Trees         int   `koanf:"trees"`
	MaxDepth      int   `koanf:"max_depth"`
	MinLeaf       int   `koanf:"min_leaf"`
	MaxFeatures   int   `koanf:"max_features"`
	Seed          int64 `koanf:"seed"`

	// ScoreWorkers is the number of goroutines used for classifier
	// scoring. Zero means GOMAXPROCS.
	ScoreWorkers           int `koanf:"score_workers"`
	ScoreParallelThreshold int `koanf:"score_parallel_threshold"`
}

// PersistenceConfig selects where the preference ledger is stored.
type PersistenceConfig struct {
	// Backend is one of file, badger or none.
	Backend string        `koanf:"backend"`
	Path    string        `koanf:"path"`
	Timeout time.Duration `koanf:"timeout"`
	Breaker BreakerConfig `koanf:"breaker"`
}

// BreakerConfig configures the circuit breaker in front of the ledger store.
type BreakerConfig struct {
	Enabled      bool          `koanf:"enabled"`
	MaxRequests  uint32        `koanf:"max_requests"`
	Interval     time.Duration `koanf:"interval"`
	Timeout      time.Duration `koanf:"timeout"`
	MinRequests  uint32        `koanf:"min_requests"`
	FailureRatio float64       `koanf:"failure_ratio"`
}

// LoggingConfig holds logging settings for zerolog.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// EngineConfig converts the recommend section into engine configuration.
func (c *Config) EngineConfig() *recommend.Config {
	rc := recommend.DefaultConfig()
	rc.TrainThreshold = c.Recommend.TrainThreshold
	rc.DefaultLimit = c.Recommend.DefaultLimit
	rc.MaxComponents = c.Recommend.MaxComponents
	rc.Forest.Trees = c.Recommend.Trees
	rc.Forest.MaxDepth = c.Recommend.MaxDepth
	rc.Forest.MaxFeatures = c.Recommend.MaxFeatures
	if c.Recommend.MinLeaf > 0 {
		rc.Forest.MinLeaf = c.Recommend.MinLeaf
	}
	rc.Scoring.Workers = c.Recommend.ScoreWorkers
	if c.Recommend.ScoreParallelThreshold > 0 {
		rc.Scoring.ParallelThreshold = c.Recommend.ScoreParallelThreshold
	}
	if c.Persistence.Timeout > 0 {
		rc.PersistTimeout = c.Persistence.Timeout
	}
	rc.Seed = c.Recommend.Seed
	return rc
}

// StoreBreakerConfig converts the breaker section for storage.BreakerStore.
func (c *Config) StoreBreakerConfig() storage.BreakerConfig {
	bc := storage.DefaultBreakerConfig()
	b := c.Persistence.Breaker
	if b.MaxRequests > 0 {
		bc.MaxRequests = b.MaxRequests
	}
	if b.Interval > 0 {
		bc.Interval = b.Interval
	}
	if b.Timeout > 0 {
		bc.Timeout = b.Timeout
	}
	if b.MinRequests > 0 {
		bc.MinRequests = b.MinRequests
	}
	if b.FailureRatio > 0 {
		bc.FailureRatio = b.FailureRatio
	}
	return bc
}

// WatcherConfig converts the catalogue section for catalogue.Watcher.
func (c *Config) WatcherConfig() catalogue.WatcherConfig {
	return catalogue.WatcherConfig{
		Debounce:    c.Catalogue.Debounce,
		MinInterval: c.Catalogue.MinInterval,
	}
}
