// ArtSwipe - Swipe-based Artwork Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/artswipe

package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

const (
	testFeatures = `{
  "a.jpg": [1.0, 0.0, 2.0],
  "b.jpg": [0.0, 1.0, 3.0],
  "c.jpg": [1.0, 1.0, 1.0],
  "d.jpg": [2.0, 0.5, 0.0],
  "e.jpg": [0.5, 2.0, 1.5],
  "f.jpg": [3.0, 0.0, 1.0],
  "g.jpg": [0.0, 3.0, 0.5],
  "h.jpg": [1.5, 1.5, 2.5]
}`
	testMetadata = "filename,artist,genre,style\na.jpg,Monet,landscape,impressionism\nb.jpg,Hokusai,landscape,ukiyo-e\nc.jpg,Vermeer,genre painting,baroque\n"
)

// writeTestConfig writes a catalogue and a config file pointing at it.
// extra is appended to the YAML document.
func writeTestConfig(t *testing.T, backend string, extra ...string) string {
	t.Helper()

	dir := t.TempDir()
	features := filepath.Join(dir, "artwork_features.json")
	metadata := filepath.Join(dir, "artwork_metadata.csv")
	ledger := filepath.Join(dir, "ledger")
	if backend == "file" {
		ledger += ".json"
	}

	files := map[string]string{features: testFeatures, metadata: testMetadata}
	for path, content := range files {
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("WriteFile(%s) error = %v", path, err)
		}
	}

	cfg := fmt.Sprintf(`catalogue:
  features_path: %q
  metadata_path: %q
persistence:
  backend: %s
  path: %q
logging:
  level: error
`, features, metadata, backend, ledger) + strings.Join(extra, "\n")

	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(cfg), 0o600); err != nil {
		t.Fatalf("WriteFile(config) error = %v", err)
	}
	return path
}

// runCommand executes a fresh command tree and returns stdout.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := newRootCmd()
	root.SilenceUsage = true
	root.SilenceErrors = true

	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), err
}

type testRecommendOutput struct {
	UserID   string    `json:"user_id"`
	Items    []string  `json:"items"`
	Scores   []float64 `json:"scores"`
	Mode     string    `json:"mode"`
	Artworks []struct {
		Filename string `json:"filename"`
		Artist   string `json:"artist"`
	} `json:"artworks"`
	Status struct {
		Likes    int  `json:"likes"`
		Dislikes int  `json:"dislikes"`
		Trained  bool `json:"trained"`
	} `json:"status"`
}

func decodeRecommend(t *testing.T, out string) testRecommendOutput {
	t.Helper()
	var got testRecommendOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	return got
}

func TestRootCommand_ShowsHelpWhenNoSubcommand(t *testing.T) {
	out, err := runCommand(t)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "Usage:") {
		t.Errorf("help not shown:\n%s", out)
	}
	for _, sub := range []string{"serve", "recommend", "catalogue"} {
		if !strings.Contains(out, sub) {
			t.Errorf("help does not list %q", sub)
		}
	}
}

func TestRootCommand_RejectsUnknownFlags(t *testing.T) {
	_, err := runCommand(t, "--unknown-flag", "value")
	if err == nil || !strings.Contains(err.Error(), "unknown flag") {
		t.Errorf("Execute() error = %v, want unknown flag", err)
	}
}

func TestSetVersionInfo(t *testing.T) {
	SetVersionInfo("1.2.3", "abc123", "2026-01-01")
	t.Cleanup(func() { SetVersionInfo("dev", "none", "unknown") })

	out, err := runCommand(t, "--version")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "1.2.3 (commit: abc123, built: 2026-01-01)") {
		t.Errorf("version output = %q", out)
	}
}

func TestRecommend_RequiresUser(t *testing.T) {
	cfg := writeTestConfig(t, "none")
	_, err := runCommand(t, "recommend", "--config", cfg)
	if err == nil || !strings.Contains(err.Error(), "--user") {
		t.Errorf("Execute() error = %v, want missing --user", err)
	}
}

func TestRecommend_InvalidConfig(t *testing.T) {
	_, err := runCommand(t, "recommend", "--user", "alice", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}

func TestRecommend_NewUserGetsRandomList(t *testing.T) {
	cfg := writeTestConfig(t, "none")

	out, err := runCommand(t, "recommend", "--config", cfg, "--user", "alice", "-n", "4")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	got := decodeRecommend(t, out)
	if got.Mode != "random" {
		t.Errorf("mode = %q, want random", got.Mode)
	}
	if got.UserID != "alice" || len(got.Items) != 4 {
		t.Errorf("user = %q items = %v, want alice and 4 items", got.UserID, got.Items)
	}
	if got.Scores != nil {
		t.Errorf("random mode should not carry scores, got %v", got.Scores)
	}
}

func TestRecommend_SwipesAndEnrich(t *testing.T) {
	cfg := writeTestConfig(t, "none")

	out, err := runCommand(t, "recommend", "--config", cfg,
		"--user", "bob",
		"--like", "d.jpg", "--like", "e.jpg",
		"--dislike", "f.jpg",
		"--enrich")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	got := decodeRecommend(t, out)
	if got.Mode != "similarity" {
		t.Errorf("mode = %q, want similarity below the train threshold", got.Mode)
	}
	if got.Status.Likes != 2 || got.Status.Dislikes != 1 || got.Status.Trained {
		t.Errorf("status = %+v", got.Status)
	}
	if len(got.Items) != 5 {
		t.Errorf("items = %v, want the 5 unswiped artworks", got.Items)
	}
	for _, id := range got.Items {
		if id == "d.jpg" || id == "e.jpg" || id == "f.jpg" {
			t.Errorf("swiped artwork %s was recommended", id)
		}
	}
	// Only a, b and c have metadata rows.
	if len(got.Artworks) != 3 {
		t.Errorf("enriched %d artworks, want 3", len(got.Artworks))
	}
}

func TestRecommend_TrainsAfterThreshold(t *testing.T) {
	cfg := writeTestConfig(t, "none", "recommend:\n  train_threshold: 2\n")

	out, err := runCommand(t, "recommend", "--config", cfg,
		"--user", "carol",
		"--like", "a.jpg", "--like", "d.jpg", "--like", "f.jpg",
		"--dislike", "b.jpg", "--dislike", "g.jpg")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	got := decodeRecommend(t, out)
	if got.Mode != "classifier" || !got.Status.Trained {
		t.Errorf("mode = %q trained = %v, want a trained classifier", got.Mode, got.Status.Trained)
	}
	if len(got.Scores) != len(got.Items) {
		t.Errorf("scores = %v for items %v", got.Scores, got.Items)
	}
}

func TestRecommend_UnknownArtwork(t *testing.T) {
	cfg := writeTestConfig(t, "none")
	_, err := runCommand(t, "recommend", "--config", cfg, "--user", "dave", "--like", "nope.jpg")
	if err == nil || !strings.Contains(err.Error(), "nope.jpg") {
		t.Errorf("Execute() error = %v, want unknown artwork", err)
	}
}

func TestRecommend_LimitAboveMax(t *testing.T) {
	cfg := writeTestConfig(t, "none")
	_, err := runCommand(t, "recommend", "--config", cfg, "--user", "erin", "-n", "1000")
	if err == nil || !strings.Contains(err.Error(), "must not exceed") {
		t.Errorf("Execute() error = %v, want limit error", err)
	}
}

func TestRecommend_LedgerPersistsBetweenRuns(t *testing.T) {
	for _, backend := range []string{"file", "badger"} {
		t.Run(backend, func(t *testing.T) {
			cfg := writeTestConfig(t, backend)

			if _, err := runCommand(t, "recommend", "--config", cfg, "--user", "frank", "--like", "a.jpg"); err != nil {
				t.Fatalf("first run error = %v", err)
			}

			out, err := runCommand(t, "recommend", "--config", cfg, "--user", "frank")
			if err != nil {
				t.Fatalf("second run error = %v", err)
			}
			got := decodeRecommend(t, out)
			if got.Status.Likes != 1 {
				t.Errorf("likes after restart = %d, want 1", got.Status.Likes)
			}
			if got.Mode != "similarity" {
				t.Errorf("mode after restart = %q, want similarity", got.Mode)
			}
		})
	}
}

func TestCatalogue(t *testing.T) {
	cfg := writeTestConfig(t, "none")

	out, err := runCommand(t, "catalogue", "--config", cfg, "--ids")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	var got struct {
		Ready           bool     `json:"ready"`
		Artworks        int      `json:"artworks"`
		RawDimension    int      `json:"raw_dimension"`
		MetadataEntries int      `json:"metadata_entries"`
		IDs             []string `json:"artwork_ids"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if !got.Ready || got.Artworks != 8 || got.RawDimension != 3 {
		t.Errorf("catalogue = %+v", got)
	}
	if got.MetadataEntries != 3 {
		t.Errorf("metadata entries = %d, want 3", got.MetadataEntries)
	}
	if len(got.IDs) != 8 {
		t.Errorf("ids = %v, want 8", got.IDs)
	}
}

func TestCatalogue_MissingFeatures(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	cfg := fmt.Sprintf("catalogue:\n  features_path: %q\npersistence:\n  backend: none\n", filepath.Join(dir, "missing.json"))
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, err := runCommand(t, "catalogue", "--config", cfgPath); err == nil {
		t.Fatal("expected an error for a missing features file")
	}
}
