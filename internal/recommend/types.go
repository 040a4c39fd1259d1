// ArtSwipe - Swipe-based Artwork Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/artswipe

package recommend

import (
	"context"
	"fmt"
	"math"
	"time"
)

// Catalogue is an ordered set of artworks with raw feature vectors.
// Iteration order is insertion order and is preserved through reduction.
type Catalogue struct {
	// IDs holds artwork identifiers in catalogue order.
	IDs []string

	// Vectors holds the raw feature vector for IDs[i] at Vectors[i].
	Vectors [][]float64
}

// NewCatalogue creates an empty catalogue with room for capacity artworks.
func NewCatalogue(capacity int) *Catalogue {
	return &Catalogue{
		IDs:     make([]string, 0, capacity),
		Vectors: make([][]float64, 0, capacity),
	}
}

// Add appends an artwork to the catalogue.
func (c *Catalogue) Add(id string, vector []float64) {
	c.IDs = append(c.IDs, id)
	c.Vectors = append(c.Vectors, vector)
}

// Len returns the number of artworks.
func (c *Catalogue) Len() int {
	if c == nil {
		return 0
	}
	return len(c.IDs)
}

// Dim returns the vector length of the first artwork, or zero when empty.
func (c *Catalogue) Dim() int {
	if c.Len() == 0 {
		return 0
	}
	return len(c.Vectors[0])
}

// Validate checks that the catalogue is non-empty, that every vector has the
// same non-zero length with finite values, and that IDs are unique.
func (c *Catalogue) Validate() error {
	if c.Len() == 0 {
		return fmt.Errorf("%w: empty catalogue", ErrInvalidInput)
	}
	if len(c.IDs) != len(c.Vectors) {
		return fmt.Errorf("%w: %d ids but %d vectors", ErrInvalidInput, len(c.IDs), len(c.Vectors))
	}

	dim := c.Dim()
	if dim == 0 {
		return fmt.Errorf("%w: artwork %q has an empty feature vector", ErrInvalidInput, c.IDs[0])
	}

	seen := make(map[string]struct{}, len(c.IDs))
	for i, id := range c.IDs {
		if id == "" {
			return fmt.Errorf("%w: artwork at position %d has an empty id", ErrInvalidInput, i)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: duplicate artwork id %q", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}

		if len(c.Vectors[i]) != dim {
			return fmt.Errorf("%w: artwork %q has %d features, want %d", ErrInvalidInput, id, len(c.Vectors[i]), dim)
		}
		for _, v := range c.Vectors[i] {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: artwork %q has a non-finite feature", ErrInvalidInput, id)
			}
		}
	}
	return nil
}

// UserPreference is one user's swipe history. Both lists are append-only and
// keep duplicates.
type UserPreference struct {
	Liked    []string `json:"liked"`
	Disliked []string `json:"disliked"`
}

// Ledger maps user IDs to their swipe history.
type Ledger map[string]UserPreference

// Snapshot is a full copy of the ledger at a given mutation version.
// Versions increase with every recorded swipe.
type Snapshot struct {
	Version uint64
	Ledger  Ledger
}

// LedgerStore persists the preference ledger. Save always receives the full
// ledger; implementations must not overwrite a newer version with an older one.
type LedgerStore interface {
	// Load returns the persisted ledger, or an empty ledger when none exists.
	Load(ctx context.Context) (Ledger, error)

	// Save replaces the persisted ledger with the snapshot.
	Save(ctx context.Context, snap Snapshot) error
}

// Classifier scores a reduced feature vector.
type Classifier interface {
	// PredictProba returns the probability that the user likes the artwork.
	PredictProba(x []float64) float64
}

// Trainer fits a classifier on labeled vectors. Labels are 1 for liked and 0
// for disliked.
type Trainer interface {
	Fit(x [][]float64, y []int) (Classifier, error)
}

// TrainerFunc adapts a function to the Trainer interface.
type TrainerFunc func(x [][]float64, y []int) (Classifier, error)

// Fit calls f(x, y).
func (f TrainerFunc) Fit(x [][]float64, y []int) (Classifier, error) {
	return f(x, y)
}

// Mode identifies which path produced a recommendation list.
type Mode string

const (
	// ModeRandom shuffles unswiped artworks for users without usable likes.
	ModeRandom Mode = "random"

	// ModeSimilarity ranks by cosine similarity to the liked centroid.
	ModeSimilarity Mode = "similarity"

	// ModeClassifier ranks by the user's trained model.
	ModeClassifier Mode = "classifier"
)

// Result is a ranked recommendation list.
type Result struct {
	// UserID is the user the list was produced for.
	UserID string `json:"user_id"`

	// Items holds artwork IDs, best first.
	Items []string `json:"items"`

	// Scores holds the score for each item. Nil in random mode.
	Scores []float64 `json:"scores,omitempty"`

	// Mode is the path that produced the list.
	Mode Mode `json:"mode"`

	// GeneratedAt is when the list was produced.
	GeneratedAt time.Time `json:"generated_at"`
}

// UserStatus summarizes a user's ledger and model.
type UserStatus struct {
	UserID        string    `json:"user_id"`
	Known         bool      `json:"known"`
	Likes         int       `json:"likes"`
	Dislikes      int       `json:"dislikes"`
	Trained       bool      `json:"trained"`
	Samples       int       `json:"samples"`
	LastTrainedAt time.Time `json:"last_trained_at,omitempty"`
}

// CatalogueInfo describes the current feature store.
type CatalogueInfo struct {
	Ready             bool      `json:"ready"`
	Artworks          int       `json:"artworks"`
	RawDimension      int       `json:"raw_dimension"`
	ReducedDimension  int       `json:"reduced_dimension"`
	ExplainedVariance []float64 `json:"explained_variance,omitempty"`
	ProcessedAt       time.Time `json:"processed_at,omitempty"`
}

// Metrics contains engine counters.
type Metrics struct {
	Users               int   `json:"users"`
	TrainedUsers        int   `json:"trained_users"`
	Swipes              int64 `json:"swipes"`
	Recommendations     int64 `json:"recommendations"`
	TrainingRuns        int64 `json:"training_runs"`
	TrainingFailures    int64 `json:"training_failures"`
	PersistenceFailures int64 `json:"persistence_failures"`
}

// TrainOutcome labels the result of a training attempt.
type TrainOutcome string

const (
	TrainSucceeded TrainOutcome = "success"
	TrainFailed    TrainOutcome = "failure"
	TrainSkipped   TrainOutcome = "skipped"
)

// Observer receives engine events, typically to export metrics.
type Observer interface {
	SwipeRecorded(liked bool)
	RecommendationServed(mode Mode, duration time.Duration)
	ModelTrained(outcome TrainOutcome, duration time.Duration)
	PersistenceFailed()
	CatalogueProcessed(info CatalogueInfo)
}

type nopObserver struct{}

func (nopObserver) SwipeRecorded(bool) {}
func (nopObserver) RecommendationServed(Mode, time.Duration) {}
func (nopObserver) ModelTrained(TrainOutcome, time.Duration) {}
func (nopObserver) PersistenceFailed() {}
func (nopObserver) CatalogueProcessed(CatalogueInfo) {}
