// ArtSwipe - Swipe-based Artwork Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/artswipe

/*
Package api provides the HTTP REST API layer for ArtSwipe.

Key Components:

  - Router: chi route configuration and middleware stack
  - Handler: swipe, recommendation, preference, status and catalogue endpoints
  - Response formatting: a JSON envelope with success flag, data, error and metadata
  - ChiMiddleware: go-chi/cors and go-chi/httprate factories

Endpoints:

	POST /api/v1/swipes                                 record a like or dislike (201)
	GET  /api/v1/users/{userID}/recommendations?n=&enrich=
	GET  /api/v1/users/{userID}/preferences             404 for a user without swipes
	GET  /api/v1/users/{userID}/status
	GET  /api/v1/catalogue
	GET  /api/v1/stats
	GET  /health/live, /health/ready
	GET  /metrics

Response envelope:

	{
	  "success": true,
	  "data": {...},
	  "metadata": {"timestamp": "...", "query_time_ms": 3, "request_id": "..."}
	}

Errors carry {"code", "message", "details"} under "error". Engine errors map
to status codes as follows: invalid input 400, unknown artwork 404, catalogue
not processed 503, anything else 500 with a generic message.

Usage Example:

	handler := api.NewHandler(engine, metadataSource, cfg.Recommend.MaxLimit)
	router := api.NewRouter(handler, &api.ChiMiddlewareConfig{...}, logger)
	http.ListenAndServe(":8080", router.SetupChi())
*/
package api
