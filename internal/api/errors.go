// Anchorr - Media Request and Notification Bridge for Discord
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/anchorr

package api

import "errors"

// Error codes of the JSON envelope.
const (
	codeValidation  = "VALIDATION_ERROR"
	codeInvalidBody = "INVALID_REQUEST"
	codeUnauthorized = "UNAUTHORIZED"
	codeForbidden   = "FORBIDDEN"
	codeNotFound    = "NOT_FOUND"
	codeUpstream    = "UPSTREAM_ERROR"
	codeStorage     = "STORAGE_ERROR"
	codeRateLimit   = "RATE_LIMIT_EXCEEDED"
	codeNotReady    = "NOT_READY"
)

var (
	// ErrBodyTooLarge is returned when a request body exceeds maxBodyBytes.
	ErrBodyTooLarge = errors.New("request body too large")

	// ErrGuildMismatch is returned when a body names a different guild than
	// the path.
	ErrGuildMismatch = errors.New("guild_id does not match the request path")
)
