// Anchorr - Media Request and Notification Bridge for Discord
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/anchorr

package models

import "time"

// Default embed colors, used when a guild has not chosen its own.
const (
	DefaultSearchColor       = "#ef9f76"
	DefaultSuccessColor      = "#a6d189"
	DefaultNotificationColor = "#cba6f7"
)

// RedactedSecret replaces the Jellyseerr API key in API responses.
const RedactedSecret = "********"

// GuildConfig holds the settings one Discord guild configured for Anchorr.
//
// A guild can use commands once JellyseerrURL is set, and receives
// notifications once NotificationChannelID and JellyfinServerURL are set.
type GuildConfig struct {
	GuildID               string    `json:"guild_id" validate:"required,numeric"`
	JellyseerrURL         string    `json:"jellyseerr_url" validate:"omitempty,http_url"`
	JellyseerrAPIKey      string    `json:"jellyseerr_api_key" validate:"omitempty,max=256"`
	NotificationChannelID string    `json:"notification_channel_id" validate:"omitempty,numeric"`
	JellyfinServerURL     string    `json:"jellyfin_server_url" validate:"omitempty,http_url"`
	ColorSearch           string    `json:"color_search" validate:"omitempty,hexcolor"`
	ColorSuccess          string    `json:"color_success" validate:"omitempty,hexcolor"`
	ColorNotification     string    `json:"color_notification" validate:"omitempty,hexcolor"`
	EphemeralResponses    bool      `json:"ephemeral_responses"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// RequestsConfigured reports whether search and request commands may run.
func (c *GuildConfig) RequestsConfigured() bool {
	return c != nil && c.JellyseerrURL != ""
}

// NotificationsConfigured reports whether new-media notifications may be sent.
func (c *GuildConfig) NotificationsConfigured() bool {
	return c != nil && c.NotificationChannelID != "" && c.JellyfinServerURL != ""
}

// SearchColor returns the configured search color or the default.
func (c *GuildConfig) SearchColor() string {
	return colorOr(c, func(g *GuildConfig) string { return g.ColorSearch }, DefaultSearchColor)
}

// SuccessColor returns the configured success color or the default.
func (c *GuildConfig) SuccessColor() string {
	return colorOr(c, func(g *GuildConfig) string { return g.ColorSuccess }, DefaultSuccessColor)
}

// NotificationColor returns the configured notification color or the default.
func (c *GuildConfig) NotificationColor() string {
	return colorOr(c, func(g *GuildConfig) string { return g.ColorNotification }, DefaultNotificationColor)
}

// Redacted returns a copy safe to return over the API.
func (c *GuildConfig) Redacted() GuildConfig {
	out := *c
	if out.JellyseerrAPIKey != "" {
		out.JellyseerrAPIKey = RedactedSecret
	}
	return out
}

func colorOr(c *GuildConfig, pick func(*GuildConfig) string, fallback string) string {
	if c == nil {
		return fallback
	}
	if v := pick(c); v != "" {
		return v
	}
	return fallback
}
