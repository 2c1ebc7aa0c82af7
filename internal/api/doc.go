// Anchorr - Media Request and Notification Bridge for Discord
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/anchorr

/*
Package api provides Anchorr's HTTP surface on a chi router.

Routes:

	POST   /jellyfin-webhook/{guildId}                 Jellyfin webhook plugin (plain text replies)
	GET    /api/v1/health                              component status
	GET    /api/v1/health/live                         liveness probe
	GET    /api/v1/health/ready                        readiness probe (store + Discord gateway)
	GET    /api/v1/guilds/{guildId}/config             guild settings, API key redacted
	PUT    /api/v1/guilds/{guildId}/config             validate and save guild settings
	DELETE /api/v1/guilds/{guildId}/config             forget a guild
	POST   /api/v1/guilds/{guildId}/test-connection    probe Jellyseerr or Jellyfin
	GET    /metrics                                    Prometheus

Guild routes require the setup token issued by /setup, either as a bearer
token or a ?token= query parameter, and the token's guild must match the
path.

JSON endpoints share the models.APIResponse envelope:

	{"status":"error","data":null,"metadata":{...},"error":{"code":"NOT_FOUND","message":"..."}}

The webhook route keeps the plain-text replies the Jellyfin plugin logs.

Usage:

	handler := api.NewHandler(api.HandlerDeps{Guilds: store, Ingester: coalescer, ...})
	router := api.NewRouter(handler, api.NewChiMiddlewareFromConfig(cfg.Security), tokens)
	srv := &http.Server{Handler: router.SetupChi()}
*/
package api
