// ArtSwipe - Swipe-based Artwork Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/artswipe

package commands

import (
	"bytes"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/artswipe/internal/recommend"
)

func TestWriteJSON_RecommendOutputWithoutScoresOrArtworks(t *testing.T) {
	t.Parallel()

	res := &recommend.Result{
		UserID:      "alice",
		Items:       []string{"a.jpg", "b.jpg"},
		Mode:        recommend.ModeRandom,
		GeneratedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	out := newRecommendOutput(res, recommend.UserStatus{UserID: "alice"})

	var buf bytes.Buffer
	if err := writeJSON(&buf, out); err != nil {
		t.Fatalf("writeJSON() error = %v", err)
	}

	var got map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if got["user_id"] != "alice" || got["mode"] != "random" {
		t.Errorf("user_id/mode = %v/%v", got["user_id"], got["mode"])
	}
	if items, ok := got["items"].([]interface{}); !ok || len(items) != 2 {
		t.Errorf("items = %v, want 2 entries", got["items"])
	}
	for _, key := range []string{"scores", "artworks"} {
		if _, ok := got[key]; ok {
			t.Errorf("%s should be omitted when empty", key)
		}
	}
	if _, ok := got["status"].(map[string]interface{}); !ok {
		t.Errorf("status = %v, want an object", got["status"])
	}
}

func TestWriteJSON_CatalogueOutputWithoutVariance(t *testing.T) {
	t.Parallel()

	out := newCatalogueOutput(
		recommend.CatalogueInfo{Ready: true, Artworks: 4, RawDimension: 3, ReducedDimension: 2},
		0,
		recommend.Metrics{Users: 1},
	)

	var buf bytes.Buffer
	if err := writeJSON(&buf, out); err != nil {
		t.Fatalf("writeJSON() error = %v", err)
	}

	var got map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if got["artworks"] != float64(4) || got["reduced_dimension"] != float64(2) || got["users"] != float64(1) {
		t.Errorf("output = %v", got)
	}
	if _, ok := got["explained_variance"]; ok {
		t.Error("explained_variance should be omitted when empty")
	}
}
