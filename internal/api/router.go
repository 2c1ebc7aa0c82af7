// Anchorr - Media Request and Notification Bridge for Discord
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/anchorr

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/anchorr/internal/auth"
	"github.com/tomtom215/anchorr/internal/middleware"
)

// Router sets up HTTP routes using Chi router.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	tokens        *auth.SetupTokenManager
}

// NewRouter creates a Router. A nil chiMw uses DefaultChiMiddlewareConfig.
func NewRouter(handler *Handler, chiMw *ChiMiddleware, tokens *auth.SetupTokenManager) *Router {
	if chiMw == nil {
		chiMw = NewChiMiddleware(nil)
	}
	return &Router{
		handler:       handler,
		chiMiddleware: chiMw,
		tokens:        tokens,
	}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// Applied to every route, in order.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // global so OPTIONS preflight is answered
	r.Use(middleware.PrometheusMetrics)

	r.Handle("/metrics", promhttp.Handler())

	// The Jellyfin plugin cannot send custom auth; the guild id in the path
	// is the only routing key.
	r.With(router.chiMiddleware.RateLimitWebhook()).
		Post("/jellyfin-webhook/{guildId}", router.handler.JellyfinWebhook)

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/", router.handler.Health)
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	r.Route("/api/v1/guilds/{guildId}", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(auth.RequireSetupToken(router.tokens, guildIDParam, authError))

		r.Get("/config", router.handler.GetGuildConfig)
		r.Put("/config", router.handler.PutGuildConfig)
		r.Delete("/config", router.handler.DeleteGuildConfig)
		r.With(router.chiMiddleware.RateLimitConnectionTest()).
			Post("/test-connection", router.handler.TestConnection)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, codeNotFound, "Not found", nil)
	})

	return r
}

func guildIDParam(r *http.Request) string {
	return chi.URLParam(r, "guildId")
}

// authError renders setup token rejections in the JSON envelope.
func authError(w http.ResponseWriter, _ *http.Request, status int, err error) {
	code, message := codeUnauthorized, "A valid setup link is required. Run /setup in Discord to get a new one."
	if status == http.StatusForbidden || errors.Is(err, auth.ErrGuildMismatch) {
		code, message = codeForbidden, "This setup link belongs to a different server."
	}
	respondError(w, status, code, message, nil)
}
