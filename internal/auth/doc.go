// Anchorr - Media Request and Notification Bridge for Discord
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/anchorr

// Package auth issues and checks the setup tokens that gate the guild
// configuration API.
//
// /setup in Discord (administrators only) calls Generate and returns a
// link of the form {PUBLIC_BOT_URL}/setup?guild_id={id}&token={jwt}. The
// token is an HS256 JWT with the guild id, the Discord user as subject and
// a short expiry. RequireSetupToken accepts it as a bearer token or as the
// token query parameter and rejects tokens issued for another guild with
// 403.
package auth
