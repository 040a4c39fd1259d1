// ArtSwipe - Swipe-based Artwork Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/artswipe

package api

import (
	"net/http"
	"time"
)

// HealthLive handles liveness probe requests (Kubernetes-style)
// Returns 200 OK if the process is alive, regardless of the catalogue.
//
// GET /health/live
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, http.StatusOK, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	}, time.Now())
}

// HealthReady handles readiness probe requests (Kubernetes-style)
// Returns 200 OK once the catalogue has been processed and the persisted
// ledger restored, 503 before that.
//
// GET /health/ready
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if !h.engine.Ready() {
		respondJSON(w, http.StatusServiceUnavailable, &APIResponse{
			Success: false,
			Data: map[string]interface{}{
				"ready": false,
			},
			Error: &APIError{
				Code:    CodeNotReady,
				Message: "Catalogue or swipe ledger not loaded yet",
			},
			Metadata: newMetadata(r.Context(), start),
		})
		return
	}

	info := h.engine.CatalogueInfo()
	respondSuccess(w, r, http.StatusOK, map[string]interface{}{
		"ready":    true,
		"artworks": info.Artworks,
	}, start)
}
