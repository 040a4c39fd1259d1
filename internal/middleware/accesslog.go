// ArtSwipe - Swipe-based Artwork Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/artswipe

package middleware

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/artswipe/internal/logging"
)

// DefaultSlowRequestThreshold is the latency above which a request is logged
// at warn level.
const DefaultSlowRequestThreshold = time.Second

// AccessLog logs every request at debug level and slow requests at warn.
// The logger is also stored in the request context, so handlers reach it
// through logging.Ctx with the request ID already attached.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func AccessLog(logger zerolog.Logger, slowThreshold time.Duration) func(http.Handler) http.Handler {
	if slowThreshold <= 0 {
		slowThreshold = DefaultSlowRequestThreshold
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapper := newStatusRecorder(w)

			ctx := logging.ContextWithLogger(r.Context(), logger)
			r = r.WithContext(ctx)

			next.ServeHTTP(wrapper, r)

			duration := time.Since(start)
			event := logging.Ctx(ctx).Debug()
			msg := "request served"
			if duration > slowThreshold {
				event = logging.Ctx(ctx).Warn().Dur("threshold", slowThreshold)
				msg = "slow request detected"
			}
			event.
				Str("method", r.Method).
				Str("route", routePattern(r)).
				Int("status", wrapper.statusCode).
				Dur("duration", duration).
				Msg(msg)
		})
	}
}
