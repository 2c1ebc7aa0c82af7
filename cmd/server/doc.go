// Anchorr - Media Request and Notification Bridge for Discord
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/anchorr

/*
Command server runs Anchorr, a Discord bot that lets guild members search
for and request movies and TV shows through Jellyseerr, and announces new
Jellyfin library items in a guild channel.

# Architecture

	RootSupervisor ("anchorr")
	├── DataSupervisor ("data-layer")
	│   └── guild-store-gc
	├── MessagingSupervisor ("messaging-layer")
	│   ├── discord-gateway        (slash commands, autocomplete, buttons)
	│   └── notification-coalescer (quiet-period debounce per series/item)
	└── APISupervisor ("api-layer")
	    └── http-server
	        ├── POST /jellyfin-webhook/{guildId}
	        ├── /api/v1/guilds/{guildId}/config  (setup link auth)
	        ├── /api/v1/health
	        └── /metrics

Initialization order:

 1. Configuration: koanf (defaults, config.yaml, environment)
 2. Logging: zerolog, JSON or console
 3. Guild store: BadgerDB, on disk or in memory
 4. Upstream clients: TMDB (with search cache), OMDb, Jellyseerr, Jellyfin
 5. Discord session, setup token manager, notification publisher
 6. Coalescer, interaction dispatcher, gateway service
 7. HTTP router and server
 8. Supervisor tree

# Configuration

	DISCORD_TOKEN=<bot token>              # required
	BOT_ID=<application id>                # required
	TMDB_API_KEY=<key>                     # required
	SETUP_TOKEN_SECRET=<32+ chars>         # required, signs /setup links
	PUBLIC_BOT_URL=https://anchorr.example.com
	OMDB_API_KEY=<key>                     # optional, adds IMDb ratings
	NOTIFICATION_QUIET_PERIOD=10s
	PORT=8282
	STORE_PATH=/data/anchorr
	LOG_LEVEL=info
	LOG_FORMAT=json

Per-guild settings (Jellyseerr URL and key, notification channel, Jellyfin
URL, colors) are stored in the guild store and edited through the setup
link that /setup returns to guild administrators.

# Jellyfin

Configure the Jellyfin webhook plugin with a Generic destination pointing
at {PUBLIC_BOT_URL}/jellyfin-webhook/{guildId}, notification type
"Item Added", and the default JSON template.

# Signals

SIGINT and SIGTERM cancel the supervisor tree. The HTTP server drains for
up to 10 seconds, pending notifications are dropped, and in-flight
Discord publishes get the coalescer drain timeout.
*/
package main
