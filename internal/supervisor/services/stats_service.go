// ArtSwipe - Swipe-based Artwork Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/artswipe

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/artswipe/internal/metrics"
	"github.com/tomtom215/artswipe/internal/recommend"
)

// DefaultStatsInterval is how often engine stats are published.
const DefaultStatsInterval = 15 * time.Second

// StatsSource reports engine counters.
type StatsSource interface {
	Metrics() recommend.Metrics
}

// StatsService periodically publishes engine gauges and the uptime gauge.
type StatsService struct {
	engine    StatsSource
	interval  time.Duration
	startTime time.Time
	logger    zerolog.Logger
	name      string
}

// NewStatsService creates a stats publisher. startTime anchors the uptime gauge.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewStatsService(engine StatsSource, interval time.Duration, startTime time.Time, logger zerolog.Logger) *StatsService {
	if interval <= 0 {
		interval = DefaultStatsInterval
	}
	return &StatsService{
		engine:    engine,
		interval:  interval,
		startTime: startTime,
		logger:    logger.With().Str("service", "stats").Logger(),
		name:      "stats-service",
	}
}

// Serve implements suture.Service.
func (s *StatsService) Serve(ctx context.Context) error {
	s.publish()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.publish()
		}
	}
}

func (s *StatsService) publish() {
	m := s.engine.Metrics()
	metrics.RecordEngineStats(m.Users, m.TrainedUsers, s.startTime)

	s.logger.Debug().
		Int("users", m.Users).
		Int("trained_users", m.TrainedUsers).
		Int64("swipes", m.Swipes).
		Int64("recommendations", m.Recommendations).
		Int64("training_failures", m.TrainingFailures).
		Int64("persistence_failures", m.PersistenceFailures).
		Msg("engine stats")
}

// String implements fmt.Stringer for suture's event log.
func (s *StatsService) String() string {
	return s.name
}
