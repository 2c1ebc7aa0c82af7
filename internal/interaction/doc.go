// Anchorr - Media Request and Notification Bridge for Discord
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/anchorr

/*
Package interaction handles Discord slash commands, autocomplete and button
presses.

Every interaction is wrapped in a Session, a small state machine that
enforces Discord's response rules:

	Received ──Reply/Autocomplete──▶ Terminal
	Received ──Defer/DeferUpdate──▶ Acknowledged ──Finish──▶ Terminal

Exactly one terminal response is sent per interaction. Work that may take
longer than Discord's three second acknowledgment deadline (TMDB details,
Jellyseerr requests) always runs after Defer, and Finish drops its edit
once the 15 minute response window has closed.

The Dispatcher routes interactions by type, rejects unconfigured guilds and
invalid selections before acknowledging, and turns any handler error or
panic into a generic message for the user.
*/
package interaction
