// ArtSwipe - Swipe-based Artwork Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/artswipe

package recommend

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() error = %v", err)
	}

	if cfg.TrainThreshold != 5 {
		t.Errorf("TrainThreshold = %d, want 5", cfg.TrainThreshold)
	}
	if cfg.DefaultLimit != 10 {
		t.Errorf("DefaultLimit = %d, want 10", cfg.DefaultLimit)
	}
	if cfg.MaxComponents != 64 {
		t.Errorf("MaxComponents = %d, want 64", cfg.MaxComponents)
	}
	if cfg.Forest.Trees != 100 {
		t.Errorf("Forest.Trees = %d, want 100", cfg.Forest.Trees)
	}
	if cfg.Seed != DefaultSeed {
		t.Errorf("Seed = %d, want %d", cfg.Seed, DefaultSeed)
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}, wantErr: false},
		{name: "threshold of one", mutate: func(c *Config) { c.TrainThreshold = 1 }, wantErr: false},
		{name: "zero threshold", mutate: func(c *Config) { c.TrainThreshold = 0 }, wantErr: true},
		{name: "zero default limit", mutate: func(c *Config) { c.DefaultLimit = 0 }, wantErr: true},
		{name: "zero components", mutate: func(c *Config) { c.MaxComponents = 0 }, wantErr: true},
		{name: "zero trees", mutate: func(c *Config) { c.Forest.Trees = 0 }, wantErr: true},
		{name: "negative depth", mutate: func(c *Config) { c.Forest.MaxDepth = -1 }, wantErr: true},
		{name: "zero min leaf", mutate: func(c *Config) { c.Forest.MinLeaf = 0 }, wantErr: true},
		{name: "negative max features", mutate: func(c *Config) { c.Forest.MaxFeatures = -1 }, wantErr: true},
		{name: "negative workers", mutate: func(c *Config) { c.Scoring.Workers = -1 }, wantErr: true},
		{name: "zero parallel threshold", mutate: func(c *Config) { c.Scoring.ParallelThreshold = 0 }, wantErr: true},
		{name: "zero persist timeout", mutate: func(c *Config) { c.PersistTimeout = 0 }, wantErr: true},
		{name: "negative seed", mutate: func(c *Config) { c.Seed = -1 }, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Clone(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	clone := cfg.Clone()
	clone.TrainThreshold = 9
	clone.Forest.Trees = 3
	clone.PersistTimeout = time.Minute

	if cfg.TrainThreshold != 5 || cfg.Forest.Trees != 100 || cfg.PersistTimeout != 5*time.Second {
		t.Errorf("modifying clone changed original: %+v", cfg)
	}
}

func TestConfig_ResolveSeed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		seed int64
		want int64
	}{
		{seed: 0, want: DefaultSeed},
		{seed: 7, want: 7},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		cfg.Seed = tt.seed
		if got := cfg.resolveSeed(); got != tt.want {
			t.Errorf("resolveSeed() with seed %d = %d, want %d", tt.seed, got, tt.want)
		}
	}

	cfg := DefaultConfig()
	cfg.Seed = -1
	if got := cfg.resolveSeed(); got == -1 {
		t.Error("resolveSeed() with negative seed returned the sentinel")
	}
}
