// Anchorr - Media Request and Notification Bridge for Discord
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/anchorr

/*
Package presentation renders Anchorr's Discord cards.

Every function is pure: it turns enrichment results, Jellyfin events and
guild colors into discordgo embeds, buttons and autocomplete choices.
Missing data renders as a placeholder ("N/A", "No description available.")
and never as an empty embed field, which Discord rejects.
*/
package presentation
