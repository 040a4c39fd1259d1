// ArtSwipe - Swipe-based Artwork Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/artswipe

// Package main is the entry point for the artswipe binary.
//
// ArtSwipe learns per-user artwork taste from like/dislike swipes and
// recommends unseen artworks from a catalogue of precomputed feature vectors.
//
// # Commands
//
//	artswipe serve       # run the HTTP API under the supervisor tree
//	artswipe recommend   # one-shot recommendations from the command line
//	artswipe catalogue   # load the catalogue and print its summary
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest priority wins):
//   - Environment variables (HTTP_PORT, FEATURES_PATH, PERSISTENCE_BACKEND, ...)
//   - Config file (--config, CONFIG_PATH, or ./config.yaml)
//   - Built-in defaults
//
// # Signal Handling
//
// serve shuts down gracefully on SIGINT and SIGTERM: the HTTP server drains
// in-flight requests and the ledger store is closed.
package main

import (
	"fmt"
	"os"

	"github.com/tomtom215/artswipe/cmd/artswipe/commands"
)

// Set by -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)

	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
