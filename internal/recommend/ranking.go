// ArtSwipe - Swipe-based Artwork Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/artswipe

package recommend

import (
	"context"
	"runtime"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
)

// userView is a point-in-time copy of the state needed to rank for a user.
type userView struct {
	liked    []string
	disliked []string
	trained  bool
	model    Classifier
}

// scoredItem is a candidate with its ranking score.
type scoredItem struct {
	index int
	score float64
}

// Recommend ranks artworks the user has not swiped yet and returns at most n
// of them. A non-positive n selects Config.DefaultLimit.
//
// Untrained and unknown users get the similarity path, which degrades to a
// uniform shuffle when the user has no usable likes. Trained users are ranked
// by their classifier. Fewer than n eligible artworks yields a shorter list.
func (e *Engine) Recommend(ctx context.Context, userID string, n int) (*Result, error) {
	start := time.Now()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fs, err := e.servingFeatures()
	if err != nil {
		return nil, err
	}

	if n <= 0 {
		n = e.config.DefaultLimit
	}
	e.requestCount.Add(1)

	view := e.userView(userID, fs)
	candidates := eligible(fs, view)

	var res *Result
	if view.trained && view.model != nil {
		res = e.rankByClassifier(fs, view.model, candidates, n)
	} else {
		res = e.rankBySimilarity(fs, view, candidates, n)
	}
	res.UserID = userID
	res.GeneratedAt = time.Now()

	elapsed := time.Since(start)
	e.observer.RecommendationServed(res.Mode, elapsed)
	e.logger.Debug().
		Str("user_id", userID).
		Str("mode", string(res.Mode)).
		Int("candidates", len(candidates)).
		Int("returned", len(res.Items)).
		Dur("latency", elapsed).
		Msg("recommendation complete")

	return res, nil
}

// userView copies the user's lists and model under the user's read lock.
func (e *Engine) userView(userID string, fs *featureStore) userView {
	u, ok := e.lookupUser(userID)
	if !ok {
		return userView{}
	}

	u.mu.RLock()
	defer u.mu.RUnlock()
	return userView{
		liked:    cloneIDs(u.liked),
		disliked: cloneIDs(u.disliked),
		trained:  u.hasModelFor(fs),
		model:    u.model,
	}
}

// eligible returns catalogue indices of artworks the user has not swiped,
// in catalogue order.
func eligible(fs *featureStore, view userView) []int {
	swiped := make(map[string]struct{}, len(view.liked)+len(view.disliked))
	for _, id := range view.liked {
		swiped[id] = struct{}{}
	}
	for _, id := range view.disliked {
		swiped[id] = struct{}{}
	}

	out := make([]int, 0, len(fs.ids))
	for i, id := range fs.ids {
		if _, ok := swiped[id]; !ok {
			out = append(out, i)
		}
	}
	return out
}

// rankBySimilarity scores candidates by cosine similarity to the mean of the
// liked vectors. Without any liked artwork in the feature store it shuffles.
func (e *Engine) rankBySimilarity(fs *featureStore, view userView, candidates []int, n int) *Result {
	profile, ok := meanVector(fs, view.liked)
	if !ok {
		return e.randomSample(fs, candidates, n)
	}

	scores := make([]float64, len(candidates))
	for j, i := range candidates {
		scores[j] = cosineSimilarity(fs.vectors[i], profile)
	}
	return topN(fs, candidates, scores, n, ModeSimilarity)
}

// randomSample returns up to n candidates in uniformly random order.
func (e *Engine) randomSample(fs *featureStore, candidates []int, n int) *Result {
	ids := make([]string, len(candidates))
	for j, i := range candidates {
		ids[j] = fs.ids[i]
	}
	e.shuffle(ids)

	if len(ids) > n {
		ids = ids[:n]
	}
	return &Result{Items: ids, Mode: ModeRandom}
}

// rankByClassifier scores candidates by the model's like probability.
func (e *Engine) rankByClassifier(fs *featureStore, model Classifier, candidates []int, n int) *Result {
	scores := e.scoreCandidates(fs, model, candidates)
	return topN(fs, candidates, scores, n, ModeClassifier)
}

// scoreCandidates predicts every candidate. Large candidate sets are split
// into contiguous chunks scored concurrently; each chunk writes only its own
// slice of the result.
func (e *Engine) scoreCandidates(fs *featureStore, model Classifier, candidates []int) []float64 {
	scores := make([]float64, len(candidates))

	if len(candidates) <= e.config.Scoring.ParallelThreshold {
		for j, i := range candidates {
			scores[j] = model.PredictProba(fs.vectors[i])
		}
		return scores
	}

	workers := e.config.Scoring.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	chunk := (len(candidates) + workers - 1) / workers

	var g errgroup.Group
	g.SetLimit(workers)
	for lo := 0; lo < len(candidates); lo += chunk {
		hi := min(lo+chunk, len(candidates))
		g.Go(func() error {
			for j := lo; j < hi; j++ {
				scores[j] = model.PredictProba(fs.vectors[candidates[j]])
			}
			return nil
		})
	}
	_ = g.Wait() //nolint:errcheck // scoring goroutines never return errors

	return scores
}

// topN sorts candidates by score descending and keeps the first n. The sort
// is stable and candidates arrive in catalogue order, so ties keep catalogue
// order.
func topN(fs *featureStore, candidates []int, scores []float64, n int, mode Mode) *Result {
	items := make([]scoredItem, len(candidates))
	for j, i := range candidates {
		items[j] = scoredItem{index: i, score: scores[j]}
	}

	sort.SliceStable(items, func(a, b int) bool {
		return items[a].score > items[b].score
	})

	if len(items) > n {
		items = items[:n]
	}

	res := &Result{
		Items:  make([]string, len(items)),
		Scores: make([]float64, len(items)),
		Mode:   mode,
	}
	for j, it := range items {
		res.Items[j] = fs.ids[it.index]
		res.Scores[j] = it.score
	}
	return res
}

// meanVector averages the reduced vectors of ids that exist in the store.
func meanVector(fs *featureStore, ids []string) ([]float64, bool) {
	mean := make([]float64, fs.dim)
	count := 0
	for _, id := range ids {
		if v, ok := fs.vector(id); ok {
			floats.Add(mean, v)
			count++
		}
	}
	if count == 0 {
		return nil, false
	}
	floats.Scale(1/float64(count), mean)
	return mean, true
}

// cosineSimilarity returns 0 when the vectors differ in length or either has
// zero norm.
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	normA, normB := floats.Norm(a, 2), floats.Norm(b, 2)
	if normA == 0 || normB == 0 {
		return 0
	}

	return floats.Dot(a, b) / (normA * normB)
}
