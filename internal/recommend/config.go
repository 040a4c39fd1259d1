// ArtSwipe - Swipe-based Artwork Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/artswipe

package recommend

import (
	"fmt"
	"time"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// TrainThreshold is the minimum number of likes AND dislikes a user needs
	// before a per-user classifier is trained.
	// Default: 5.
	TrainThreshold int `json:"train_threshold"`

	// DefaultLimit is the number of recommendations returned when the caller
	// passes a non-positive n.
	// Default: 10.
	DefaultLimit int `json:"default_limit"`

	// MaxComponents caps the number of principal components kept.
	// Default: 64.
	MaxComponents int `json:"max_components"`

	// Forest contains random forest parameters.
	Forest ForestConfig `json:"forest"`

	// Scoring contains classifier scoring parameters.
	Scoring ScoringConfig `json:"scoring"`

	// PersistTimeout bounds each ledger save.
	// Default: 5s.
	PersistTimeout time.Duration `json:"persist_timeout"`

	// Seed is the random seed for shuffling and forest training.
	// Zero selects the fixed default seed, a negative value seeds from the clock.
	Seed int64 `json:"seed"`
}

// ForestConfig contains parameters for the per-user random forest.
type ForestConfig struct {
	// Trees is the number of trees in each forest.
	// Default: 100.
	Trees int `json:"trees"`

	// MaxDepth limits tree depth. Zero means unbounded.
	MaxDepth int `json:"max_depth"`

	// MinLeaf is the minimum number of samples in a leaf.
	// Default: 1.
	MinLeaf int `json:"min_leaf"`

	// MaxFeatures is the number of features considered per split.
	// Zero means round(sqrt(dimensions)).
	MaxFeatures int `json:"max_features"`
}

// ScoringConfig controls how classifier scores are computed.
type ScoringConfig struct {
	// Workers is the number of goroutines used to score candidates.
	// Zero means GOMAXPROCS.
	Workers int `json:"workers"`

	// ParallelThreshold is the candidate count above which scoring fans out.
	// Default: 256.
	ParallelThreshold int `json:"parallel_threshold"`
}

// DefaultSeed is used when Config.Seed is zero.
const DefaultSeed int64 = 42

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() *Config {
	return &Config{
		TrainThreshold: 5,
		DefaultLimit:   10,
		MaxComponents:  64,
		Forest: ForestConfig{
			Trees:   100,
			MinLeaf: 1,
		},
		Scoring: ScoringConfig{
			ParallelThreshold: 256,
		},
		PersistTimeout: 5 * time.Second,
		Seed:           DefaultSeed,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.TrainThreshold < 1 {
		return fmt.Errorf("train_threshold must be positive, got %d", c.TrainThreshold)
	}
	if c.DefaultLimit < 1 {
		return fmt.Errorf("default_limit must be positive, got %d", c.DefaultLimit)
	}
	if c.MaxComponents < 1 {
		return fmt.Errorf("max_components must be positive, got %d", c.MaxComponents)
	}
	if c.Forest.Trees < 1 {
		return fmt.Errorf("forest.trees must be positive, got %d", c.Forest.Trees)
	}
	if c.Forest.MaxDepth < 0 {
		return fmt.Errorf("forest.max_depth must be non-negative, got %d", c.Forest.MaxDepth)
	}
	if c.Forest.MinLeaf < 1 {
		return fmt.Errorf("forest.min_leaf must be positive, got %d", c.Forest.MinLeaf)
	}
	if c.Forest.MaxFeatures < 0 {
		return fmt.Errorf("forest.max_features must be non-negative, got %d", c.Forest.MaxFeatures)
	}
	if c.Scoring.Workers < 0 {
		return fmt.Errorf("scoring.workers must be non-negative, got %d", c.Scoring.Workers)
	}
	if c.Scoring.ParallelThreshold < 1 {
		return fmt.Errorf("scoring.parallel_threshold must be positive, got %d", c.Scoring.ParallelThreshold)
	}
	if c.PersistTimeout <= 0 {
		return fmt.Errorf("persist_timeout must be positive, got %v", c.PersistTimeout)
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// resolveSeed maps the configured seed onto the value used by the engine.
func (c *Config) resolveSeed() int64 {
	switch {
	case c.Seed == 0:
		return DefaultSeed
	case c.Seed < 0:
		return time.Now().UnixNano()
	default:
		return c.Seed
	}
}
