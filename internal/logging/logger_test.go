// Anchorr - Media Request and Notification Bridge for Discord
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/anchorr

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{" error ", zerolog.ErrorLevel},
		{"disabled", zerolog.Disabled},
		{"bogus", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidLevel(t *testing.T) {
	if !ValidLevel("warn") {
		t.Error("ValidLevel(warn) = false, want true")
	}
	if ValidLevel("loud") {
		t.Error("ValidLevel(loud) = true, want false")
	}
}

func TestInitWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})
	defer Init(DefaultConfig())

	Info().Str("guild_id", "123").Msg("hello")

	out := buf.String()
	if !strings.Contains(out, `"message":"hello"`) {
		t.Errorf("output missing message: %s", out)
	}
	if !strings.Contains(out, `"guild_id":"123"`) {
		t.Errorf("output missing field: %s", out)
	}
}

func TestCtxAddsContextIDs(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(NewTestLogger(&buf))
	defer Init(DefaultConfig())

	ctx := context.Background()
	ctx = ContextWithRequestID(ctx, "req-1")
	ctx = ContextWithCorrelationID(ctx, "corr-1")
	ctx = ContextWithGuildID(ctx, "guild-1")
	ctx = ContextWithInteractionID(ctx, "int-1")

	Ctx(ctx).Info().Msg("with context")

	out := buf.String()
	for _, want := range []string{`"request_id":"req-1"`, `"correlation_id":"corr-1"`, `"guild_id":"guild-1"`, `"interaction_id":"int-1"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s: %s", want, out)
		}
	}
}

func TestContextAccessorsEmpty(t *testing.T) {
	ctx := context.Background()
	if got := GuildIDFromContext(ctx); got != "" {
		t.Errorf("GuildIDFromContext() = %q, want empty", got)
	}
	if got := InteractionIDFromContext(ctx); got != "" {
		t.Errorf("InteractionIDFromContext() = %q, want empty", got)
	}
	if got := len(GenerateCorrelationID()); got != 8 {
		t.Errorf("len(GenerateCorrelationID()) = %d, want 8", got)
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"clean", "The Expanse", "The Expanse"},
		{"newline", "a\nb", `a\x0ab`},
		{"unicode kept", "Amélie 🎬", "Amélie 🎬"},
		{"delete char", "x\x7f", `x\x7f`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.input); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSlogHandlerRoutesToZerolog(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewSlogHandlerWithLogger(NewTestLogger(&buf)))

	logger.WithGroup("supervisor").Warn("service restarted", "service", "discord-gateway", "attempt", 2)

	out := buf.String()
	if !strings.Contains(out, `"level":"warn"`) {
		t.Errorf("output missing warn level: %s", out)
	}
	if !strings.Contains(out, `"supervisor.service":"discord-gateway"`) {
		t.Errorf("output missing grouped attr: %s", out)
	}
	if !strings.Contains(out, `"supervisor.attempt":2`) {
		t.Errorf("output missing int attr: %s", out)
	}
}
