// ArtSwipe - Swipe-based Artwork Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/artswipe

package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/artswipe/internal/catalogue"
	"github.com/tomtom215/artswipe/internal/logging"
	"github.com/tomtom215/artswipe/internal/recommend"
	"github.com/tomtom215/artswipe/internal/validation"
)

// maxSwipeBodyBytes caps the swipe request body.
const maxSwipeBodyBytes = 64 << 10

// DefaultMaxLimit caps the n parameter when the handler is built without one.
const DefaultMaxLimit = 100

// Recommender is the engine surface the handlers depend on.
type Recommender interface {
	Ready() bool
	RecordSwipe(ctx context.Context, userID, artworkID string, liked bool) error
	Recommend(ctx context.Context, userID string, n int) (*recommend.Result, error)
	Preferences(userID string) (recommend.UserPreference, bool)
	Status(userID string) recommend.UserStatus
	CatalogueInfo() recommend.CatalogueInfo
	Metrics() recommend.Metrics
}

// MetadataSource returns the current artwork metadata, or nil when none is loaded.
type MetadataSource interface {
	Metadata() *catalogue.Metadata
}

// Handler serves the ArtSwipe REST endpoints.
type Handler struct {
	engine    Recommender
	metadata  MetadataSource
	maxLimit  int
	startTime time.Time
}

// NewHandler creates a handler. metadata may be nil, in which case enriched
// recommendations carry no artwork details. A non-positive maxLimit selects
// DefaultMaxLimit.
func NewHandler(engine Recommender, metadata MetadataSource, maxLimit int) *Handler {
	if maxLimit <= 0 {
		maxLimit = DefaultMaxLimit
	}
	return &Handler{
		engine:    engine,
		metadata:  metadata,
		maxLimit:  maxLimit,
		startTime: time.Now(),
	}
}

// SwipeResponse acknowledges a recorded swipe with the user's updated status.
type SwipeResponse struct {
	ArtworkID string               `json:"artwork_id"`
	Liked     bool                 `json:"liked"`
	User      recommend.UserStatus `json:"user"`
}

// RecommendationsResponse is a ranked list, optionally with artwork metadata.
type RecommendationsResponse struct {
	recommend.Result
	Artworks []catalogue.Artwork `json:"artworks,omitempty"`
}

// PreferencesResponse is a user's swipe history.
type PreferencesResponse struct {
	UserID string `json:"user_id"`
	recommend.UserPreference
}

// CatalogueResponse describes the loaded catalogue.
type CatalogueResponse struct {
	recommend.CatalogueInfo
	MetadataEntries int `json:"metadata_entries"`
}

// Swipe records a like or dislike.
//
// POST /api/v1/swipes
func (h *Handler) Swipe(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req validation.SwipeRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSwipeBodyBytes))
	if err := decoder.Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, &APIError{
			Code:    CodeValidation,
			Message: "Request body must be a JSON object",
		}, err)
		return
	}

	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	ctx := logging.ContextWithUserID(r.Context(), req.UserID)
	if err := h.engine.RecordSwipe(ctx, req.UserID, req.ArtworkID, *req.Liked); err != nil {
		respondEngineError(w, r.WithContext(ctx), err)
		return
	}

	respondSuccess(w, r, http.StatusCreated, SwipeResponse{
		ArtworkID: req.ArtworkID,
		Liked:     *req.Liked,
		User:      h.engine.Status(req.UserID),
	}, start)
}

// Recommendations returns the user's ranked artworks.
//
// GET /api/v1/users/{userID}/recommendations?n=10&enrich=true
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	query, apiErr := h.parseRecommendationsQuery(r)
	if apiErr != nil {
		respondError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	ctx := logging.ContextWithUserID(r.Context(), query.UserID)
	result, err := h.engine.Recommend(ctx, query.UserID, query.N)
	if err != nil {
		respondEngineError(w, r.WithContext(ctx), err)
		return
	}

	resp := RecommendationsResponse{Result: *result}
	if query.Enrich {
		resp.Artworks = h.enrich(result.Items)
	}

	respondSuccess(w, r, http.StatusOK, resp, start)
}

func (h *Handler) parseRecommendationsQuery(r *http.Request) (*validation.RecommendationsQuery, *APIError) {
	query := &validation.RecommendationsQuery{UserID: chi.URLParam(r, "userID")}
	params := r.URL.Query()

	if raw := params.Get("n"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, invalidParam("n", "n must be an integer")
		}
		query.N = n
	}
	if raw := params.Get("enrich"); raw != "" {
		enrich, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, invalidParam("enrich", "enrich must be a boolean")
		}
		query.Enrich = enrich
	}

	if apiErr := validateRequest(query); apiErr != nil {
		return nil, apiErr
	}
	if query.N > h.maxLimit {
		return nil, &APIError{
			Code:    CodeValidation,
			Message: "n must be less than or equal to " + strconv.Itoa(h.maxLimit),
			Details: map[string]interface{}{"field": "n", "max": h.maxLimit},
		}
	}
	return query, nil
}

func (h *Handler) enrich(ids []string) []catalogue.Artwork {
	if h.metadata == nil {
		return nil
	}
	return h.metadata.Metadata().Enrich(ids)
}

// Preferences returns the user's liked and disliked artworks.
//
// GET /api/v1/users/{userID}/preferences
func (h *Handler) Preferences(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	path := validation.UserPath{UserID: chi.URLParam(r, "userID")}
	if apiErr := validateRequest(&path); apiErr != nil {
		respondError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	pref, ok := h.engine.Preferences(path.UserID)
	if !ok {
		respondError(w, r, http.StatusNotFound, &APIError{
			Code:    CodeNotFound,
			Message: "User has no recorded swipes",
		}, nil)
		return
	}

	respondSuccess(w, r, http.StatusOK, PreferencesResponse{
		UserID:         path.UserID,
		UserPreference: pref,
	}, start)
}

// Status returns the user's swipe counts and model state. Unknown users get
// a zero status rather than a 404.
//
// GET /api/v1/users/{userID}/status
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	path := validation.UserPath{UserID: chi.URLParam(r, "userID")}
	if apiErr := validateRequest(&path); apiErr != nil {
		respondError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	respondSuccess(w, r, http.StatusOK, h.engine.Status(path.UserID), start)
}

// Catalogue describes the processed catalogue.
//
// GET /api/v1/catalogue
func (h *Handler) Catalogue(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	resp := CatalogueResponse{CatalogueInfo: h.engine.CatalogueInfo()}
	if h.metadata != nil {
		resp.MetadataEntries = h.metadata.Metadata().Len()
	}

	respondSuccess(w, r, http.StatusOK, resp, start)
}

// Stats returns engine counters.
//
// GET /api/v1/stats
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, http.StatusOK, h.engine.Metrics(), time.Now())
}

// NotFound answers unmatched routes with the JSON envelope.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusNotFound, &APIError{
		Code:    CodeNotFound,
		Message: "Route not found",
	}, nil)
}

// MethodNotAllowed answers a known route called with the wrong method.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusMethodNotAllowed, &APIError{
		Code:    CodeMethodNotAllowed,
		Message: "Method not allowed",
	}, nil)
}
