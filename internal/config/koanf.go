// Anchorr - Media Request and Notification Bridge for Discord
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/anchorr

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are searched in order; the first existing file is used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/anchorr/config.yaml",
	"/etc/anchorr/config.yml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Discord: DiscordConfig{
			RegisterCommands: true,
		},
		TMDB: TMDBConfig{
			BaseURL:        "https://api.themoviedb.org/3",
			Timeout:        10 * time.Second,
			SearchCacheTTL: 5 * time.Minute,
		},
		OMDb: OMDbConfig{
			BaseURL: "https://www.omdbapi.com/",
			Timeout: 5 * time.Second,
		},
		Jellyseerr: JellyseerrConfig{
			Timeout: 10 * time.Second,
		},
		Jellyfin: JellyfinConfig{
			Timeout: 10 * time.Second,
		},
		Notifications: NotificationsConfig{
			QuietPeriod:    10 * time.Second,
			SendRate:       5,
			SendBurst:      5,
			PublishTimeout: 30 * time.Second,
		},
		Interactions: InteractionsConfig{
			// Discord allows edits for 15 minutes after a deferred reply.
			PipelineTimeout:     30 * time.Second,
			AutocompleteTimeout: 2500 * time.Millisecond,
			AutocompleteLimit:   10,
		},
		Store: StoreConfig{
			Path:       "/data/anchorr",
			InMemory:   false,
			GCInterval: 10 * time.Minute,
		},
		Server: ServerConfig{
			Host:    "0.0.0.0",
			Port:    8282,
			Timeout: 30 * time.Second,
		},
		Security: SecurityConfig{
			SetupTokenTTL:     30 * time.Minute,
			RateLimitReqs:     60,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads defaults, then the optional YAML file, then mapped
// environment variables, and validates the result.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields splits comma-separated env values for slice fields.
// Values that came from YAML are already slices and are left alone.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
// The first block keeps the variable names Anchorr has always used.
var envMappings = map[string]string{
	"discord_token":             "discord.token",
	"bot_id":                    "discord.application_id",
	"public_bot_url":            "discord.public_url",
	"tmdb_api_key":              "tmdb.api_key",
	"omdb_api_key":              "omdb.api_key",
	"notification_quiet_period": "notifications.quiet_period",
	"port":                      "server.port",

	"discord_register_commands":         "discord.register_commands",
	"tmdb_base_url":                     "tmdb.base_url",
	"tmdb_timeout":                      "tmdb.timeout",
	"tmdb_search_cache_ttl":             "tmdb.search_cache_ttl",
	"omdb_base_url":                     "omdb.base_url",
	"omdb_timeout":                      "omdb.timeout",
	"jellyseerr_timeout":                "jellyseerr.timeout",
	"jellyfin_timeout":                  "jellyfin.timeout",
	"notification_send_rate":            "notifications.send_rate",
	"notification_send_burst":           "notifications.send_burst",
	"notification_publish_timeout":      "notifications.publish_timeout",
	"interaction_pipeline_timeout":      "interactions.pipeline_timeout",
	"interaction_autocomplete_timeout":  "interactions.autocomplete_timeout",
	"interaction_autocomplete_limit":    "interactions.autocomplete_limit",
	"store_path":                        "store.path",
	"store_in_memory":                   "store.in_memory",
	"store_gc_interval":                 "store.gc_interval",
	"http_host":                         "server.host",
	"http_port":                         "server.port",
	"http_timeout":                      "server.timeout",
	"setup_token_secret":                "security.setup_token_secret",
	"setup_token_ttl":                   "security.setup_token_ttl",
	"rate_limit_requests":               "security.rate_limit_reqs",
	"rate_limit_window":                 "security.rate_limit_window",
	"disable_rate_limit":                "security.rate_limit_disabled",
	"cors_origins":                      "security.cors_origins",
	"log_level":                         "logging.level",
	"log_format":                        "logging.format",
	"log_caller":                        "logging.caller",
}

// envTransformFunc returns the koanf path for a mapped variable, or "" so
// that unrelated environment variables are ignored.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
