// ArtSwipe - Swipe-based Artwork Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/artswipe

package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestNewSlogHandler(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	slogger := slog.New(NewSlogHandler(zerolog.New(&buf)))
	slogger.Info("test message")

	if !strings.Contains(buf.String(), "test message") {
		t.Errorf("expected 'test message' in output: %s", buf.String())
	}
	if !strings.Contains(buf.String(), `"level":"info"`) {
		t.Errorf("expected info level in output: %s", buf.String())
	}
}

func TestSlogHandler_Levels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		level slog.Level
		want  string
	}{
		{name: "info", level: slog.LevelInfo, want: `"level":"info"`},
		{name: "warn", level: slog.LevelWarn, want: `"level":"warn"`},
		{name: "error", level: slog.LevelError, want: `"level":"error"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			h := NewSlogHandler(zerolog.New(&buf))

			if !h.Enabled(context.Background(), tt.level) {
				t.Fatalf("Enabled(%v) = false", tt.level)
			}
			if err := h.Handle(context.Background(), slog.NewRecord(time.Now(), tt.level, "msg", 0)); err != nil {
				t.Fatalf("Handle() error = %v", err)
			}
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output = %s, want %s", buf.String(), tt.want)
			}
		})
	}
}

func TestSlogHandler_EnabledRespectsLoggerLevel(t *testing.T) {
	t.Parallel()

	h := NewSlogHandler(zerolog.New(&bytes.Buffer{}).Level(zerolog.WarnLevel))

	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info should be disabled for a warn-level logger")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("error should be enabled for a warn-level logger")
	}
}

func TestSlogHandler_Attributes(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	slogger := slog.New(NewSlogHandler(zerolog.New(&buf)))

	slogger.With("supervisor", "artswipe").
		WithGroup("service").
		Info("service restarted",
			"name", "http",
			"attempt", 3,
			"backoff", time.Second,
			"healthy", false,
			"err", errors.New("listen failed"),
			slog.Group("limits", "max", 5),
		)

	output := buf.String()
	for _, want := range []string{
		`"supervisor":"artswipe"`,
		`"service.name":"http"`,
		`"service.attempt":3`,
		`"service.healthy":false`,
		`"service.err":"listen failed"`,
		`"service.limits.max":5`,
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %s: %s", want, output)
		}
	}
}

func TestSlogHandler_NestedGroupsKeepOrder(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	slogger := slog.New(NewSlogHandler(zerolog.New(&buf)))

	slogger.WithGroup("outer").WithGroup("inner").Info("msg", "key", "v")

	if !strings.Contains(buf.String(), `"outer.inner.key":"v"`) {
		t.Errorf("expected outer.inner.key, got: %s", buf.String())
	}
}

func TestSlogHandler_EmptyGroupName(t *testing.T) {
	t.Parallel()

	h := NewSlogHandler(zerolog.Nop())
	if got := h.WithGroup(""); got != h {
		t.Error("WithGroup(\"\") should return the same handler")
	}
}

func TestNewSlogLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	NewSlogLogger(zerolog.New(&buf)).Warn("from slog")

	if !strings.Contains(buf.String(), "from slog") {
		t.Errorf("expected output, got: %s", buf.String())
	}
}
