// ArtSwipe - Swipe-based Artwork Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/artswipe

package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/artswipe/internal/metrics"
	"github.com/tomtom215/artswipe/internal/recommend"
)

// ErrBreakerOpen is returned when the circuit is open and the wrapped store
// is not called.
var ErrBreakerOpen = errors.New("ledger store circuit open")

// BreakerConfig configures the circuit breaker around a ledger store.
type BreakerConfig struct {
	// Name labels the breaker in logs and metrics.
	Name string

	// MaxRequests is the number of trial requests allowed while half-open.
	MaxRequests uint32

	// Interval resets the failure counts while closed. Zero never resets.
	Interval time.Duration

	// Timeout is how long the breaker stays open before going half-open.
	Timeout time.Duration

	// MinRequests is the request count needed before the breaker may trip.
	MinRequests uint32

	// FailureRatio trips the breaker once this share of requests failed.
	FailureRatio float64
}

// DefaultBreakerConfig returns production defaults.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Name:         "ledger-store",
		MaxRequests:  1,
		Interval:     time.Minute,
		Timeout:      30 * time.Second,
		MinRequests:  5,
		FailureRatio: 0.6,
	}
}

// BreakerStore wraps a LedgerStore with circuit breaker protection.
//
// The breaker uses real time for its interval and timeout. Tests should drive
// it with failure counts rather than waiting on the clock.
type BreakerStore struct {
	next   recommend.LedgerStore
	cb     *gobreaker.CircuitBreaker[recommend.Ledger]
	name   string
	logger zerolog.Logger
}

var _ recommend.LedgerStore = (*BreakerStore)(nil)

// NewBreakerStore wraps next.
//
//nolint:gocritic // config and logger passed by value are acceptable here
func NewBreakerStore(next recommend.LedgerStore, cfg BreakerConfig, logger zerolog.Logger) *BreakerStore {
	if cfg.Name == "" {
		cfg.Name = DefaultBreakerConfig().Name
	}

	s := &BreakerStore{
		next:   next,
		name:   cfg.Name,
		logger: logger.With().Str("component", "ledger_store").Str("breaker", cfg.Name).Logger(),
	}

	// Initialize circuit breaker state metrics
	metrics.CircuitBreakerState.WithLabelValues(cfg.Name).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(cfg.Name).Set(0)

	s.cb = gobreaker.NewCircuitBreaker[recommend.Ledger](gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}

			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= cfg.FailureRatio
			if shouldTrip {
				s.logger.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("opening ledger store circuit")
			}
			return shouldTrip
		},

		// Caller cancellation says nothing about the store's health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr, toStr := from.String(), to.String()
			s.logger.Info().Str("from", fromStr).Str("to", toStr).Msg("ledger store circuit state transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})

	return s
}

// Load reads through the breaker.
func (s *BreakerStore) Load(ctx context.Context) (recommend.Ledger, error) {
	return s.execute(func() (recommend.Ledger, error) {
		return s.next.Load(ctx)
	})
}

// Save writes through the breaker.
//
//nolint:gocritic // snapshot passed by value, it is copied by the engine
func (s *BreakerStore) Save(ctx context.Context, snap recommend.Snapshot) error {
	_, err := s.execute(func() (recommend.Ledger, error) {
		return nil, s.next.Save(ctx, snap)
	})
	return err
}

// State returns the current breaker state.
func (s *BreakerStore) State() gobreaker.State {
	return s.cb.State()
}

func (s *BreakerStore) execute(fn func() (recommend.Ledger, error)) (recommend.Ledger, error) {
	result, err := s.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(s.name, "rejected").Inc()
			return nil, fmt.Errorf("%w: %w", ErrBreakerOpen, err)
		}

		metrics.CircuitBreakerRequests.WithLabelValues(s.name, "failure").Inc()
		counts := s.cb.Counts()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(s.name).Set(float64(counts.ConsecutiveFailures))
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(s.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(s.name).Set(0)
	return result, nil
}

// stateToFloat converts circuit breaker state to a gauge value.
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
