// ArtSwipe - Swipe-based Artwork Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/artswipe

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/artswipe/config.yaml",
	"/etc/artswipe/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        8080,
			Host:        "0.0.0.0",
			Timeout:     30 * time.Second,
			RateLimit:   100,
			CORSOrigins: []string{"*"},
		},
		Catalogue: CatalogueConfig{
			FeaturesPath: "./data/artwork_features.json",
			MetadataPath: "",
			Watch:        false,
			Debounce:     500 * time.Millisecond,
			MinInterval:  5 * time.Second,
		},
		Recommend: RecommendConfig{
			TrainThreshold:         5,
			DefaultLimit:           10,
			MaxLimit:               100,
			MaxComponents:          64,
			Trees:                  100,
			MaxDepth:               0, // unbounded
			MinLeaf:                1,
			MaxFeatures:            0, // sqrt(dimensions)
			Seed:                   42,
			ScoreWorkers:           0, // GOMAXPROCS
			ScoreParallelThreshold: 256,
		},
		Persistence: PersistenceConfig{
			Backend: BackendFile,
			Path:    "./data/user_preferences.json",
			Timeout: 5 * time.Second,
			Breaker: BreakerConfig{
				Enabled:      true,
				MaxRequests:  1,
				Interval:     time.Minute,
				Timeout:      30 * time.Second,
				MinRequests:  5,
				FailureRatio: 0.6,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load reads configuration from defaults, the config file and environment
// variables, in increasing order of priority, and validates the result.
func Load() (*Config, error) {
	return LoadFile(findConfigFile())
}

// LoadFile is Load with an explicit config file. An empty path skips the
// file layer.
func LoadFile(configPath string) (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// Transform environment variable names to koanf paths:
	// HTTP_PORT -> server.port
	// TRAIN_THRESHOLD -> recommend.train_threshold
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Post-process slice fields from comma-separated strings
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"server.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars come in as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
var envMappings = map[string]string{
	// Server mappings
	"http_host":      "server.host",
	"http_port":      "server.port",
	"server_timeout": "server.timeout",
	"rate_limit":     "server.rate_limit",
	"cors_origins":   "server.cors_origins",

	// Catalogue mappings
	"features_path":          "catalogue.features_path",
	"metadata_path":          "catalogue.metadata_path",
	"catalogue_watch":        "catalogue.watch",
	"catalogue_debounce":     "catalogue.debounce",
	"catalogue_min_interval": "catalogue.min_interval",

	// Recommendation engine mappings
	"train_threshold": "recommend.train_threshold",
	"default_limit":   "recommend.default_limit",
	"max_limit":       "recommend.max_limit",
	"max_components":  "recommend.max_components",
	"forest_trees":    "recommend.trees",
	"forest_depth":    "recommend.max_depth",
	"recommend_seed":  "recommend.seed",
	"score_workers":   "recommend.score_workers",

	// Persistence mappings
	"persistence_backend":         "persistence.backend",
	"persistence_path":            "persistence.path",
	"persistence_timeout":         "persistence.timeout",
	"persistence_breaker_enabled": "persistence.breaker.enabled",

	// Logging mappings
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - FEATURES_PATH -> catalogue.features_path
//   - FOREST_TREES -> recommend.trees
//   - PERSISTENCE_BACKEND -> persistence.backend
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}

	// For unmapped keys, return empty string to skip them
	// This prevents random environment variables from polluting config
	return ""
}
