// ArtSwipe - Swipe-based Artwork Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/artswipe

package config

import (
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "rate limit disabled", mutate: func(c *Config) { c.Server.RateLimit = 0 }},
		{name: "negative rate limit", mutate: func(c *Config) { c.Server.RateLimit = -1 }, wantErr: true},
		{name: "zero timeout", mutate: func(c *Config) { c.Server.Timeout = 0 }, wantErr: true},
		{name: "no features path", mutate: func(c *Config) { c.Catalogue.FeaturesPath = " " }, wantErr: true},
		{name: "watch without debounce", mutate: func(c *Config) {
			c.Catalogue.Watch = true
			c.Catalogue.Debounce = 0
		}, wantErr: true},
		{name: "threshold one", mutate: func(c *Config) { c.Recommend.TrainThreshold = 1 }},
		{name: "threshold zero", mutate: func(c *Config) { c.Recommend.TrainThreshold = 0 }, wantErr: true},
		{name: "max limit zero", mutate: func(c *Config) { c.Recommend.MaxLimit = 0 }, wantErr: true},
		{name: "default above max", mutate: func(c *Config) { c.Recommend.DefaultLimit = 200 }, wantErr: true},
		{name: "zero trees", mutate: func(c *Config) { c.Recommend.Trees = 0 }, wantErr: true},
		{name: "negative workers", mutate: func(c *Config) { c.Recommend.ScoreWorkers = -2 }, wantErr: true},
		{name: "badger backend", mutate: func(c *Config) { c.Persistence.Backend = BackendBadger }},
		{name: "none backend without path", mutate: func(c *Config) {
			c.Persistence.Backend = BackendNone
			c.Persistence.Path = ""
		}},
		{name: "file backend without path", mutate: func(c *Config) { c.Persistence.Path = "" }, wantErr: true},
		{name: "unknown backend", mutate: func(c *Config) { c.Persistence.Backend = "redis" }, wantErr: true},
		{name: "failure ratio above one", mutate: func(c *Config) { c.Persistence.Breaker.FailureRatio = 1.5 }, wantErr: true},
		{name: "unknown log level", mutate: func(c *Config) { c.Logging.Level = "loud" }, wantErr: true},
		{name: "unknown log format", mutate: func(c *Config) { c.Logging.Format = "xml" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEngineConfig(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.Recommend.TrainThreshold = 3
	cfg.Recommend.Trees = 40
	cfg.Recommend.MaxDepth = 8
	cfg.Recommend.ScoreWorkers = 4
	cfg.Recommend.Seed = 7
	cfg.Persistence.Timeout = 2 * time.Second

	rc := cfg.EngineConfig()
	if rc.TrainThreshold != 3 || rc.DefaultLimit != 10 || rc.MaxComponents != 64 {
		t.Errorf("EngineConfig() = %+v", rc)
	}
	if rc.Forest.Trees != 40 || rc.Forest.MaxDepth != 8 || rc.Forest.MinLeaf != 1 {
		t.Errorf("Forest = %+v", rc.Forest)
	}
	if rc.Scoring.Workers != 4 || rc.Scoring.ParallelThreshold != 256 {
		t.Errorf("Scoring = %+v", rc.Scoring)
	}
	if rc.PersistTimeout != 2*time.Second || rc.Seed != 7 {
		t.Errorf("PersistTimeout = %v, Seed = %d", rc.PersistTimeout, rc.Seed)
	}
	if err := rc.Validate(); err != nil {
		t.Errorf("EngineConfig().Validate() error = %v", err)
	}
}

func TestStoreBreakerConfig(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.Persistence.Breaker.MinRequests = 10
	cfg.Persistence.Breaker.Timeout = 0

	bc := cfg.StoreBreakerConfig()
	if bc.MinRequests != 10 {
		t.Errorf("MinRequests = %d, want 10", bc.MinRequests)
	}
	if bc.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want default 30s", bc.Timeout)
	}
	if bc.Name == "" {
		t.Error("Name should keep the default")
	}
}

func TestWatcherConfig(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	wc := cfg.WatcherConfig()
	if wc.Debounce != 500*time.Millisecond || wc.MinInterval != 5*time.Second {
		t.Errorf("WatcherConfig() = %+v", wc)
	}
}

func TestShouldWarnAboutCORS(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	if !cfg.ShouldWarnAboutCORS() {
		t.Error("wildcard origin should warn")
	}
	cfg.Server.CORSOrigins = []string{"https://gallery.example"}
	if cfg.ShouldWarnAboutCORS() {
		t.Error("explicit origin should not warn")
	}
}
