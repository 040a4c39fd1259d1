// ArtSwipe - Swipe-based Artwork Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/artswipe

/*
Package middleware provides HTTP middleware for the ArtSwipe API.

All middleware has the chi signature func(http.Handler) http.Handler.

Key Components:

  - RequestID: UUID request IDs in the X-Request-ID header and the logging context
  - AccessLog: per-request debug log and slow-request warnings through zerolog
  - PrometheusMetrics: request count, latency and in-flight gauge, labelled by route pattern
  - Compression: gzip for clients that send Accept-Encoding: gzip

Usage:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(logger, time.Second))
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.Compression)
*/
package middleware
