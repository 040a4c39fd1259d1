// ArtSwipe - Swipe-based Artwork Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/artswipe

/*
Package logging provides centralized zerolog-based logging for ArtSwipe.

# Quick Start

	logging.Init(logging.Config{
	    Level:   "info",
	    Format:  "json",
	    Version: version,
	})

	logger := logging.Logger()
	logger.Info().Msg("Server starting")
	logging.Err(err).Msg("Operation failed")

	// With request context
	logging.Ctx(ctx).Info().Str("artwork_id", id).Msg("Swipe recorded")

Every event carries "service" and, when configured, "version".

Components receive a zerolog.Logger by value and derive their own child
logger with a "component" field; the global logger is only used by the
entry points.

# Context Fields

The request ID middleware stores a request ID in the context, and the API
handlers add the user ID. Ctx copies both into every event.

# slog Bridge

SlogHandler adapts zerolog to log/slog for libraries that only accept an
*slog.Logger, such as the sutureslog event hook used by the supervisor.

# Configuration

Environment Variables:
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json, console (default: json)
  - LOG_CALLER: true/false - include caller info (default: false)
*/
package logging
