// Anchorr - Media Request and Notification Bridge for Discord
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/anchorr

/*
Package models defines the data structures shared across Anchorr.

Key types:

  - MediaKind and MediaReference: the (TMDB id, movie|tv) pair that flows from
    autocomplete selection and request buttons into the enrichment pipeline
  - GuildConfig: per-guild settings persisted by the guild store
  - JellyfinItemAdded: the Jellyfin webhook plugin payload for new library items
  - APIResponse: the JSON envelope of the configuration API

Wire encodings:

	autocomplete value   {id}|{movie|tv}
	request button id    request|{id}|{movie|tv}
*/
package models
