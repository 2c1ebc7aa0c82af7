// Anchorr - Media Request and Notification Bridge for Discord
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/anchorr

// Package config loads Anchorr's process configuration.
//
// Loading order (later layers win):
//  1. Defaults from defaultConfig()
//  2. Optional YAML file (CONFIG_PATH, config.yaml, /etc/anchorr/config.yaml)
//  3. Mapped environment variables (DISCORD_TOKEN, TMDB_API_KEY, ...)
//
// Per-guild settings (Jellyseerr URL, notification channel, colors) are not
// part of this configuration; they live in the guild store and are edited
// through the configuration API.
//
// Config is immutable after Load and safe for concurrent reads.
package config

import "time"

// Config is the root configuration.
type Config struct {
	Discord       DiscordConfig       `koanf:"discord"`
	TMDB          TMDBConfig          `koanf:"tmdb"`
	OMDb          OMDbConfig          `koanf:"omdb"`
	Jellyseerr    JellyseerrConfig    `koanf:"jellyseerr"`
	Jellyfin      JellyfinConfig      `koanf:"jellyfin"`
	Notifications NotificationsConfig `koanf:"notifications"`
	Interactions  InteractionsConfig  `koanf:"interactions"`
	Store         StoreConfig         `koanf:"store"`
	Server        ServerConfig        `koanf:"server"`
	Security      SecurityConfig      `koanf:"security"`
	Logging       LoggingConfig       `koanf:"logging"`
}

// DiscordConfig configures the bot session.
type DiscordConfig struct {
	Token            string `koanf:"token"`
	ApplicationID    string `koanf:"application_id"`
	PublicURL        string `koanf:"public_url"` // base of the /setup link
	RegisterCommands bool   `koanf:"register_commands"`
}

// TMDBConfig configures the metadata client.
type TMDBConfig struct {
	APIKey         string        `koanf:"api_key"`
	BaseURL        string        `koanf:"base_url"`
	Timeout        time.Duration `koanf:"timeout"`
	SearchCacheTTL time.Duration `koanf:"search_cache_ttl"`
}

// OMDbConfig configures the rating client. An empty APIKey disables lookups.
type OMDbConfig struct {
	APIKey  string        `koanf:"api_key"`
	BaseURL string        `koanf:"base_url"`
	Timeout time.Duration `koanf:"timeout"`
}

// JellyseerrConfig holds settings shared by every guild's Jellyseerr client.
type JellyseerrConfig struct {
	Timeout time.Duration `koanf:"timeout"`
}

// JellyfinConfig holds settings for Jellyfin connection tests.
type JellyfinConfig struct {
	Timeout time.Duration `koanf:"timeout"`
}

// NotificationsConfig controls coalescing and channel sends.
type NotificationsConfig struct {
	QuietPeriod    time.Duration `koanf:"quiet_period"`
	SendRate       float64       `koanf:"send_rate"` // messages per second across all channels
	SendBurst      int           `koanf:"send_burst"`
	PublishTimeout time.Duration `koanf:"publish_timeout"`
}

// InteractionsConfig bounds the work done for one Discord interaction.
type InteractionsConfig struct {
	PipelineTimeout     time.Duration `koanf:"pipeline_timeout"`
	AutocompleteTimeout time.Duration `koanf:"autocomplete_timeout"`
	AutocompleteLimit   int           `koanf:"autocomplete_limit"`
}

// StoreConfig configures the badger guild store.
type StoreConfig struct {
	Path       string        `koanf:"path"`
	InMemory   bool          `koanf:"in_memory"`
	GCInterval time.Duration `koanf:"gc_interval"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`
}

// SecurityConfig covers setup tokens and HTTP protections.
type SecurityConfig struct {
	SetupTokenSecret  string        `koanf:"setup_token_secret"`
	SetupTokenTTL     time.Duration `koanf:"setup_token_ttl"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load reads the configuration. It is an alias for LoadWithKoanf.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
