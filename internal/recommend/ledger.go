// ArtSwipe - Swipe-based Artwork Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/artswipe

package recommend

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// userState is one user's ledger entry and model.
//
// liked and disliked are only written with both mu and Engine.ledgerMu held,
// so either lock is enough to read them. The model fields are guarded by mu.
type userState struct {
	mu sync.RWMutex
	id string

	liked    []string
	disliked []string

	trained       bool
	model         Classifier
	modelFeatures *featureStore
	samples       int
	lastTrainedAt time.Time
}

// hasModelFor reports whether the user's model was fit in fs's feature space.
// After a catalogue reload, older models stay unused until retrained.
// Caller must hold u.mu.
func (u *userState) hasModelFor(fs *featureStore) bool {
	return u.trained && u.model != nil && fs != nil && u.modelFeatures == fs
}

// getOrCreateUser returns the user's state, creating an empty untrained
// entry on first access.
func (e *Engine) getOrCreateUser(userID string) *userState {
	e.usersMu.RLock()
	u, ok := e.users[userID]
	e.usersMu.RUnlock()
	if ok {
		return u
	}

	e.usersMu.Lock()
	defer e.usersMu.Unlock()

	if u, ok := e.users[userID]; ok {
		return u
	}
	u = &userState{id: userID}
	e.users[userID] = u
	return u
}

// lookupUser returns the user's state without creating it.
func (e *Engine) lookupUser(userID string) (*userState, bool) {
	e.usersMu.RLock()
	defer e.usersMu.RUnlock()
	u, ok := e.users[userID]
	return u, ok
}

// RecordSwipe appends a like or dislike to the user's ledger, writes the full
// ledger through to the store and retrains the user's model.
//
// Validation happens before any mutation: an unprocessed catalogue or an
// unrestored store returns ErrNotReady and an artwork outside the catalogue
// returns ErrUnknownArtwork.
// Persistence and training failures are logged and never returned.
func (e *Engine) RecordSwipe(ctx context.Context, userID, artworkID string, liked bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if userID == "" {
		return fmt.Errorf("%w: empty user id", ErrInvalidInput)
	}

	fs, err := e.servingFeatures()
	if err != nil {
		return err
	}
	if !fs.contains(artworkID) {
		return fmt.Errorf("%w: %q", ErrUnknownArtwork, artworkID)
	}

	u := e.getOrCreateUser(userID)
	u.mu.Lock()
	defer u.mu.Unlock()

	snap, ok := e.appendSwipe(u, artworkID, liked)
	e.swipeCount.Add(1)
	e.observer.SwipeRecorded(liked)

	e.logger.Debug().
		Str("user_id", userID).
		Str("artwork_id", artworkID).
		Bool("liked", liked).
		Int("likes", len(u.liked)).
		Int("dislikes", len(u.disliked)).
		Msg("swipe recorded")

	if ok {
		e.persist(ctx, snap)
	}

	e.train(u, fs)
	return nil
}

// appendSwipe records the swipe and, when a store is configured, captures the
// full ledger at the new version. Caller must hold u.mu.
func (e *Engine) appendSwipe(u *userState, artworkID string, liked bool) (Snapshot, bool) {
	e.ledgerMu.Lock()
	defer e.ledgerMu.Unlock()

	if liked {
		u.liked = append(u.liked, artworkID)
	} else {
		u.disliked = append(u.disliked, artworkID)
	}
	e.ledgerVersion++

	if e.store == nil {
		return Snapshot{}, false
	}
	return Snapshot{Version: e.ledgerVersion, Ledger: e.snapshotLocked()}, true
}

// snapshotLocked copies every user with at least one swipe. Caller must hold ledgerMu.
func (e *Engine) snapshotLocked() Ledger {
	e.usersMu.RLock()
	defer e.usersMu.RUnlock()

	ledger := make(Ledger, len(e.users))
	for id, u := range e.users {
		if len(u.liked) == 0 && len(u.disliked) == 0 {
			continue
		}
		ledger[id] = UserPreference{
			Liked:    cloneIDs(u.liked),
			Disliked: cloneIDs(u.disliked),
		}
	}
	return ledger
}

// persist saves the snapshot. The save outlives caller cancellation but is
// bounded by PersistTimeout; failures are reported and swallowed.
func (e *Engine) persist(ctx context.Context, snap Snapshot) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.config.PersistTimeout)
	defer cancel()

	if err := e.store.Save(ctx, snap); err != nil {
		err = fmt.Errorf("%w: %w", ErrPersistenceWrite, err)
		e.persistenceErrors.Add(1)
		e.observer.PersistenceFailed()
		e.logger.Warn().
			Err(err).
			Uint64("version", snap.Version).
			Int("users", len(snap.Ledger)).
			Msg("failed to persist preferences")
	}
}

// Snapshot returns a copy of the full ledger and its current version.
func (e *Engine) Snapshot() Snapshot {
	e.ledgerMu.Lock()
	defer e.ledgerMu.Unlock()
	return Snapshot{Version: e.ledgerVersion, Ledger: e.snapshotLocked()}
}

// Preferences returns a copy of the user's swipe history.
func (e *Engine) Preferences(userID string) (UserPreference, bool) {
	u, ok := e.lookupUser(userID)
	if !ok {
		return UserPreference{}, false
	}

	e.ledgerMu.Lock()
	defer e.ledgerMu.Unlock()
	return UserPreference{
		Liked:    cloneIDs(u.liked),
		Disliked: cloneIDs(u.disliked),
	}, true
}

// Status summarizes the user's ledger and model state.
func (e *Engine) Status(userID string) UserStatus {
	u, ok := e.lookupUser(userID)
	if !ok {
		return UserStatus{UserID: userID}
	}

	fs := e.features.Load()

	u.mu.RLock()
	defer u.mu.RUnlock()
	return UserStatus{
		UserID:        userID,
		Known:         true,
		Likes:         len(u.liked),
		Dislikes:      len(u.disliked),
		Trained:       u.hasModelFor(fs),
		Samples:       u.samples,
		LastTrainedAt: u.lastTrainedAt,
	}
}

// RestoreLedger loads the persisted ledger, replaces the in-memory history of
// every stored user and retrains those that meet the threshold. It is a no-op
// without a store and requires a processed catalogue.
//
// Artworks missing from the current catalogue are kept in the ledger and
// skipped by training, matching how live swipes are treated. With a store
// configured the engine is not Ready until a restore has succeeded.
func (e *Engine) RestoreLedger(ctx context.Context) error {
	if e.store == nil {
		return nil
	}

	fs, err := e.currentFeatures()
	if err != nil {
		return err
	}

	ledger, err := e.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load preferences: %w", err)
	}

	userIDs := make([]string, 0, len(ledger))
	for id := range ledger {
		userIDs = append(userIDs, id)
	}
	sort.Strings(userIDs)

	unknown := 0
	for _, id := range userIDs {
		if err := ctx.Err(); err != nil {
			return err
		}

		pref := ledger[id]
		unknown += countUnknown(fs, pref.Liked) + countUnknown(fs, pref.Disliked)

		u := e.getOrCreateUser(id)
		u.mu.Lock()
		e.ledgerMu.Lock()
		u.liked = cloneIDs(pref.Liked)
		u.disliked = cloneIDs(pref.Disliked)
		e.ledgerMu.Unlock()
		e.train(u, fs)
		u.mu.Unlock()
	}

	level := zerolog.InfoLevel
	if unknown > 0 {
		level = zerolog.WarnLevel
	}
	e.logger.WithLevel(level).
		Int("users", len(userIDs)).
		Int("unknown_artworks", unknown).
		Msg("preferences restored")

	e.restored.Store(true)
	return nil
}

func countUnknown(fs *featureStore, ids []string) int {
	n := 0
	for _, id := range ids {
		if !fs.contains(id) {
			n++
		}
	}
	return n
}

func cloneIDs(ids []string) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}
