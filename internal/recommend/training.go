// ArtSwipe - Swipe-based Artwork Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/artswipe

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"
)

var errNilModel = errors.New("trainer returned no model")

// train refits the user's classifier from scratch. Below the threshold the
// user is marked untrained. A failed fit keeps the previous model only when
// it was fit on the same feature store; a model from an older catalogue is
// dropped so ranking falls back to similarity. Caller must hold u.mu.
func (e *Engine) train(u *userState, fs *featureStore) {
	likes, dislikes := len(u.liked), len(u.disliked)
	threshold := e.config.TrainThreshold

	if likes < threshold || dislikes < threshold {
		u.trained = false
		e.observer.ModelTrained(TrainSkipped, 0)
		return
	}

	x, y := trainingSet(u, fs)

	e.trainCount.Add(1)
	start := time.Now()
	model, err := e.fit(x, y)
	elapsed := time.Since(start)

	if err != nil {
		e.trainFailures.Add(1)
		e.observer.ModelTrained(TrainFailed, elapsed)
		e.logger.Warn().
			Err(err).
			Str("user_id", u.id).
			Int("samples", len(x)).
			Bool("previously_trained", u.trained).
			Msg("user model training failed")
		if u.modelFeatures != fs {
			u.model, u.modelFeatures, u.trained = nil, nil, false
		}
		return
	}

	u.model = model
	u.modelFeatures = fs
	u.trained = true
	u.samples = len(x)
	u.lastTrainedAt = time.Now()

	e.observer.ModelTrained(TrainSucceeded, elapsed)
	e.logger.Info().
		Str("user_id", u.id).
		Int("samples", len(x)).
		Int("likes", likes).
		Int("dislikes", dislikes).
		Dur("duration", elapsed).
		Msg("user model trained")
}

// trainingSet labels liked artworks 1 and disliked artworks 0, skipping any
// artwork absent from the feature store.
func trainingSet(u *userState, fs *featureStore) ([][]float64, []int) {
	x := make([][]float64, 0, len(u.liked)+len(u.disliked))
	y := make([]int, 0, len(u.liked)+len(u.disliked))

	for _, id := range u.liked {
		if v, ok := fs.vector(id); ok {
			x = append(x, v)
			y = append(y, 1)
		}
	}
	for _, id := range u.disliked {
		if v, ok := fs.vector(id); ok {
			x = append(x, v)
			y = append(y, 0)
		}
	}
	return x, y
}

// fit runs the trainer and converts a panic into an error.
func (e *Engine) fit(x [][]float64, y []int) (model Classifier, err error) {
	defer func() {
		if r := recover(); r != nil {
			model = nil
			err = fmt.Errorf("trainer panic: %v", r)
		}
	}()

	if len(x) == 0 {
		return nil, fmt.Errorf("%w: no known artworks in ledger", ErrInvalidInput)
	}

	model, err = e.trainer.Fit(x, y)
	if err == nil && model == nil {
		err = errNilModel
	}
	return model, err
}

// RetrainAll refits every user against the current feature store and returns
// how many users are trained afterwards. It is used after the catalogue is
// reprocessed, when reduced vectors may have changed.
func (e *Engine) RetrainAll(ctx context.Context) (int, error) {
	fs, err := e.currentFeatures()
	if err != nil {
		return 0, err
	}

	e.usersMu.RLock()
	users := make([]*userState, 0, len(e.users))
	for _, u := range e.users {
		users = append(users, u)
	}
	e.usersMu.RUnlock()

	sort.Slice(users, func(i, j int) bool {
		return users[i].id < users[j].id
	})

	trained := 0
	for _, u := range users {
		if err := ctx.Err(); err != nil {
			return trained, err
		}

		u.mu.Lock()
		e.train(u, fs)
		if u.hasModelFor(fs) {
			trained++
		}
		u.mu.Unlock()
	}

	e.logger.Info().
		Int("users", len(users)).
		Int("trained", trained).
		Msg("user models retrained")

	return trained, nil
}
