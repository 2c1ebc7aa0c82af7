// Anchorr - Media Request and Notification Bridge for Discord
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/anchorr

package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type contextKey string

const (
	correlationIDKey contextKey = "correlation_id"
	requestIDKey     contextKey = "request_id"
	guildIDKey       contextKey = "guild_id"
	interactionIDKey contextKey = "interaction_id"
)

// GenerateCorrelationID returns the first 8 characters of a fresh UUID.
func GenerateCorrelationID() string {
	return uuid.New().String()[:8]
}

// GenerateRequestID returns a full UUID.
func GenerateRequestID() string {
	return uuid.New().String()
}

// ContextWithCorrelationID returns a copy of ctx carrying id.
func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey, id)
}

// ContextWithNewCorrelationID returns a copy of ctx carrying a new correlation ID.
func ContextWithNewCorrelationID(ctx context.Context) context.Context {
	return ContextWithCorrelationID(ctx, GenerateCorrelationID())
}

// CorrelationIDFromContext returns the correlation ID or "".
func CorrelationIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(correlationIDKey).(string)
	return id
}

// ContextWithRequestID returns a copy of ctx carrying an HTTP request ID.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext returns the request ID or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// ContextWithGuildID returns a copy of ctx tagged with a Discord guild ID.
func ContextWithGuildID(ctx context.Context, guildID string) context.Context {
	return context.WithValue(ctx, guildIDKey, guildID)
}

// GuildIDFromContext returns the guild ID or "".
func GuildIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(guildIDKey).(string)
	return id
}

// ContextWithInteractionID returns a copy of ctx tagged with a Discord interaction ID.
func ContextWithInteractionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, interactionIDKey, id)
}

// InteractionIDFromContext returns the interaction ID or "".
func InteractionIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(interactionIDKey).(string)
	return id
}

// Ctx returns the global logger enriched with every ID found in ctx.
//
//	logging.Ctx(ctx).Info().Msg("Processing interaction")
func Ctx(ctx context.Context) *zerolog.Logger {
	logger := CtxWith(ctx).Logger()
	return &logger
}

// CtxWith returns a logger context builder with the context IDs pre-populated.
func CtxWith(ctx context.Context) zerolog.Context {
	logCtx := Logger().With()

	if id := CorrelationIDFromContext(ctx); id != "" {
		logCtx = logCtx.Str("correlation_id", id)
	}
	if id := RequestIDFromContext(ctx); id != "" {
		logCtx = logCtx.Str("request_id", id)
	}
	if id := GuildIDFromContext(ctx); id != "" {
		logCtx = logCtx.Str("guild_id", id)
	}
	if id := InteractionIDFromContext(ctx); id != "" {
		logCtx = logCtx.Str("interaction_id", id)
	}

	return logCtx
}
