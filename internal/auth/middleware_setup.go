// Anchorr - Media Request and Notification Bridge for Discord
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/anchorr

package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/tomtom215/anchorr/internal/logging"
)

type contextKey string

const setupClaimsKey contextKey = "setup_claims"

// ClaimsFromContext returns the claims stored by RequireSetupToken.
func ClaimsFromContext(ctx context.Context) (*SetupClaims, bool) {
	claims, ok := ctx.Value(setupClaimsKey).(*SetupClaims)
	return claims, ok
}

// ContextWithClaims stores claims in ctx.
func ContextWithClaims(ctx context.Context, claims *SetupClaims) context.Context {
	return context.WithValue(ctx, setupClaimsKey, claims)
}

// ExtractBearerToken reads "Authorization: Bearer <token>", falling back to
// the ?token= query parameter used by the setup link.
func ExtractBearerToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		scheme, token, ok := strings.Cut(header, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	return r.URL.Query().Get("token")
}

// RequireSetupToken rejects requests without a valid setup token for the
// guild returned by guildID. onError writes the rejection.
func RequireSetupToken(m *SetupTokenManager, guildID func(*http.Request) string, onError func(http.ResponseWriter, *http.Request, int, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractBearerToken(r)
			if token == "" {
				onError(w, r, http.StatusUnauthorized, errors.New("setup token required"))
				return
			}

			claims, err := m.ValidateForGuild(token, guildID(r))
			if err != nil {
				status := http.StatusUnauthorized
				if errors.Is(err, ErrGuildMismatch) {
					status = http.StatusForbidden
				}
				logging.Ctx(r.Context()).Warn().
					Str("path", r.URL.Path).
					Err(err).
					Msg("Setup token rejected")
				onError(w, r, status, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithClaims(r.Context(), claims)))
		})
	}
}
