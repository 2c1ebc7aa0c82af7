// Anchorr - Media Request and Notification Bridge for Discord
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/anchorr

package models

import (
	"time"
)

// APIResponse is the envelope used by every JSON endpoint of the setup API.
//
// Status is "success" or "error". On error, Error carries the details and
// Data is null.
//
//	{
//	  "status": "success",
//	  "data": {"guild_id": "123", "jellyseerr_url": "https://requests.example.com/api/v1"},
//	  "metadata": {"timestamp": "2026-01-28T12:00:00Z", "query_time_ms": 3}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response timing information.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
}

// APIError is a machine-readable error code plus a human message.
//
// Codes in use: VALIDATION_ERROR, UNAUTHORIZED, NOT_FOUND, UPSTREAM_ERROR,
// STORAGE_ERROR, RATE_LIMIT_EXCEEDED, INTERNAL_ERROR.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ConnectionTestTarget selects the service probed by a connection test.
type ConnectionTestTarget string

const (
	ConnectionTestJellyseerr ConnectionTestTarget = "jellyseerr"
	ConnectionTestJellyfin   ConnectionTestTarget = "jellyfin"
)

// ConnectionTestRequest is the body of POST /api/v1/guilds/{guildId}/test-connection.
type ConnectionTestRequest struct {
	Type   ConnectionTestTarget `json:"type" validate:"required,oneof=jellyseerr jellyfin"`
	URL    string               `json:"url" validate:"required,http_url"`
	APIKey string               `json:"api_key" validate:"required_if=Type jellyseerr,max=256"`
}

// ConnectionTestResult reports a successful probe.
type ConnectionTestResult struct {
	Message string `json:"message"`
	Version string `json:"version,omitempty"`
}

// HealthStatus is returned by the health endpoints.
type HealthStatus struct {
	Status        string            `json:"status"`
	Version       string            `json:"version"`
	Uptime        float64           `json:"uptime_seconds"`
	Components    map[string]string `json:"components,omitempty"`
	PendingNotifs int               `json:"pending_notifications"`
}
