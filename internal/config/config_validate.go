// ArtSwipe - Swipe-based Artwork Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/artswipe

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tomtom215/artswipe/internal/logging"
)

// Validate validates the configuration
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateCatalogue,
		c.validateRecommend,
		c.validatePersistence,
		c.validateLogging,
	}

	for _, validate := range validators {
		if err := validate(); err != nil {
			return err
		}
	}

	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("SERVER_TIMEOUT must be positive, got %v", c.Server.Timeout)
	}
	if c.Server.RateLimit < 0 {
		return fmt.Errorf("RATE_LIMIT must be non-negative, got %d", c.Server.RateLimit)
	}
	return nil
}

func (c *Config) validateCatalogue() error {
	if strings.TrimSpace(c.Catalogue.FeaturesPath) == "" {
		return errors.New("FEATURES_PATH is required")
	}
	if c.Catalogue.Watch && c.Catalogue.Debounce <= 0 {
		return fmt.Errorf("CATALOGUE_DEBOUNCE must be positive when watching, got %v", c.Catalogue.Debounce)
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := c.Recommend
	if r.TrainThreshold < 1 {
		return fmt.Errorf("TRAIN_THRESHOLD must be at least 1, got %d", r.TrainThreshold)
	}
	if r.DefaultLimit < 1 {
		return fmt.Errorf("DEFAULT_LIMIT must be at least 1, got %d", r.DefaultLimit)
	}
	if r.MaxLimit < 1 {
		return fmt.Errorf("MAX_LIMIT must be at least 1, got %d", r.MaxLimit)
	}
	if r.DefaultLimit > r.MaxLimit {
		return fmt.Errorf("DEFAULT_LIMIT (%d) must not exceed MAX_LIMIT (%d)", r.DefaultLimit, r.MaxLimit)
	}
	if r.ScoreWorkers < 0 {
		return fmt.Errorf("SCORE_WORKERS must be non-negative, got %d", r.ScoreWorkers)
	}
	if err := c.EngineConfig().Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}
	return nil
}

func (c *Config) validatePersistence() error {
	switch c.Persistence.Backend {
	case BackendFile, BackendBadger:
		if strings.TrimSpace(c.Persistence.Path) == "" {
			return fmt.Errorf("PERSISTENCE_PATH is required for the %s backend", c.Persistence.Backend)
		}
	case BackendNone:
	default:
		return fmt.Errorf("PERSISTENCE_BACKEND must be one of %s, %s, %s; got %q",
			BackendFile, BackendBadger, BackendNone, c.Persistence.Backend)
	}

	if c.Persistence.Timeout <= 0 {
		return fmt.Errorf("PERSISTENCE_TIMEOUT must be positive, got %v", c.Persistence.Timeout)
	}
	if ratio := c.Persistence.Breaker.FailureRatio; ratio < 0 || ratio > 1 {
		return fmt.Errorf("persistence.breaker.failure_ratio must be between 0 and 1, got %v", ratio)
	}
	return nil
}

func (c *Config) validateLogging() error {
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

// ShouldWarnAboutCORS reports whether every origin is allowed.
func (c *Config) ShouldWarnAboutCORS() bool {
	for _, origin := range c.Server.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}
