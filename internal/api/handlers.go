// Anchorr - Media Request and Notification Bridge for Discord
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/anchorr

package api

import (
	"context"
	"time"

	"github.com/tomtom215/anchorr/internal/coalescer"
	"github.com/tomtom215/anchorr/internal/guildstore"
	"github.com/tomtom215/anchorr/internal/jellyfin"
	"github.com/tomtom215/anchorr/internal/jellyseerr"
)

// GuildStore is the guild store as seen by the API.
type GuildStore interface {
	guildstore.Store
	Ping(ctx context.Context) error
}

// Ingester accepts Jellyfin events. *coalescer.Coalescer satisfies it.
type Ingester interface {
	Ingest(ev coalescer.Event) coalescer.Decision
	Pending() int
}

// JellyseerrTester probes a Jellyseerr server. *jellyseerr.Client satisfies it.
type JellyseerrTester interface {
	TestConnection(ctx context.Context, rawURL, apiKey string) (*jellyseerr.Status, error)
}

// GatewayStatus reports whether the Discord gateway session is up.
type GatewayStatus interface {
	Connected() bool
}

// HandlerDeps lists the collaborators of Handler. Gateway may be nil, in
// which case readiness ignores Discord.
type HandlerDeps struct {
	Guilds     GuildStore
	Ingester   Ingester
	Jellyseerr JellyseerrTester
	Jellyfin   jellyfin.Prober
	Gateway    GatewayStatus
	Version    string
}

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers_webhook.go: Jellyfin webhook ingestion
//   - handlers_guild_config.go: guild configuration CRUD
//   - handlers_connection.go: connection tests
//   - handlers_health.go: health probes
type Handler struct {
	guilds     GuildStore
	ingester   Ingester
	jellyseerr JellyseerrTester
	jellyfin   jellyfin.Prober
	gateway    GatewayStatus
	version    string
	startTime  time.Time
}

// NewHandler creates a Handler.
func NewHandler(deps HandlerDeps) *Handler {
	version := deps.Version
	if version == "" {
		version = "dev"
	}
	return &Handler{
		guilds:     deps.Guilds,
		ingester:   deps.Ingester,
		jellyseerr: deps.Jellyseerr,
		jellyfin:   deps.Jellyfin,
		gateway:    deps.Gateway,
		version:    version,
		startTime:  time.Now(),
	}
}
