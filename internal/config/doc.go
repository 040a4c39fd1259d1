// ArtSwipe - Swipe-based Artwork Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/artswipe

/*
Package config loads ArtSwipe configuration with Koanf.

Configuration is layered, lowest priority first:

 1. Struct defaults from defaultConfig()
 2. A YAML file: $CONFIG_PATH, ./config.yaml, ./config.yml,
    /etc/artswipe/config.yaml or /etc/artswipe/config.yml
 3. Environment variables with an explicit name mapping

Unmapped environment variables are ignored.

# Example File

	server:
	  port: 8080
	  rate_limit: 100
	  cors_origins: ["https://gallery.example.com"]
	catalogue:
	  features_path: /data/artwork_features.json
	  metadata_path: /data/artwork_metadata.csv
	  watch: true
	recommend:
	  train_threshold: 5
	  trees: 100
	persistence:
	  backend: badger
	  path: /data/ledger
	logging:
	  level: info
	  format: json

# Environment Variables

	HTTP_HOST, HTTP_PORT, SERVER_TIMEOUT, RATE_LIMIT, CORS_ORIGINS
	FEATURES_PATH, METADATA_PATH, CATALOGUE_WATCH, CATALOGUE_DEBOUNCE
	TRAIN_THRESHOLD, DEFAULT_LIMIT, MAX_LIMIT, MAX_COMPONENTS,
	FOREST_TREES, FOREST_DEPTH, RECOMMEND_SEED, SCORE_WORKERS
	PERSISTENCE_BACKEND, PERSISTENCE_PATH, PERSISTENCE_TIMEOUT
	LOG_LEVEL, LOG_FORMAT, LOG_CALLER

CORS_ORIGINS is comma-separated.

# Conversion

EngineConfig, StoreBreakerConfig and WatcherConfig translate the loaded
sections into the configuration types of the packages that consume them.
*/
package config
