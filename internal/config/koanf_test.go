// Anchorr - Media Request and Notification Bridge for Discord
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/anchorr

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// setRequiredEnv sets the variables without which Validate fails.
func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("DISCORD_TOKEN", "bot-token")
	t.Setenv("BOT_ID", "123456789012345678")
	t.Setenv("TMDB_API_KEY", "tmdb-key")
	t.Setenv("SETUP_TOKEN_SECRET", testSecret)
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Notifications.QuietPeriod != 10*time.Second {
		t.Errorf("Notifications.QuietPeriod = %v, want 10s", cfg.Notifications.QuietPeriod)
	}
	if cfg.Server.Port != 8282 {
		t.Errorf("Server.Port = %d, want 8282", cfg.Server.Port)
	}
	if cfg.Interactions.AutocompleteLimit != 10 {
		t.Errorf("Interactions.AutocompleteLimit = %d, want 10", cfg.Interactions.AutocompleteLimit)
	}
	if cfg.Security.SetupTokenTTL != 30*time.Minute {
		t.Errorf("Security.SetupTokenTTL = %v, want 30m", cfg.Security.SetupTokenTTL)
	}
	if !cfg.Discord.RegisterCommands {
		t.Error("Discord.RegisterCommands should default to true")
	}
}

func TestLoadWithKoanf_EnvOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("NOTIFICATION_QUIET_PERIOD", "3s")
	t.Setenv("PORT", "9000")
	t.Setenv("PUBLIC_BOT_URL", "https://anchorr.example.com")
	t.Setenv("OMDB_API_KEY", "omdb-key")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("UNRELATED_VARIABLE", "ignored")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error: %v", err)
	}

	if cfg.Discord.Token != "bot-token" {
		t.Errorf("Discord.Token = %q", cfg.Discord.Token)
	}
	if cfg.Discord.ApplicationID != "123456789012345678" {
		t.Errorf("Discord.ApplicationID = %q", cfg.Discord.ApplicationID)
	}
	if cfg.Notifications.QuietPeriod != 3*time.Second {
		t.Errorf("Notifications.QuietPeriod = %v, want 3s", cfg.Notifications.QuietPeriod)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.OMDb.APIKey != "omdb-key" {
		t.Errorf("OMDb.APIKey = %q", cfg.OMDb.APIKey)
	}
	if len(cfg.Security.CORSOrigins) != 2 || cfg.Security.CORSOrigins[1] != "https://b.example.com" {
		t.Errorf("Security.CORSOrigins = %v", cfg.Security.CORSOrigins)
	}
}

func TestLoadWithKoanf_YAMLFile(t *testing.T) {
	setRequiredEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
notifications:
  quiet_period: 20s
  send_rate: 2
store:
  in_memory: true
logging:
  level: debug
  format: console
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error: %v", err)
	}
	if cfg.Notifications.QuietPeriod != 20*time.Second {
		t.Errorf("Notifications.QuietPeriod = %v, want 20s from file", cfg.Notifications.QuietPeriod)
	}
	if cfg.Notifications.SendRate != 2 {
		t.Errorf("Notifications.SendRate = %v, want 2", cfg.Notifications.SendRate)
	}
	if !cfg.Store.InMemory {
		t.Error("Store.InMemory = false, want true from file")
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want env to win over file", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("Logging.Format = %q, want console", cfg.Logging.Format)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := defaultConfig()
		cfg.Discord.Token = "t"
		cfg.Discord.ApplicationID = "1"
		cfg.TMDB.APIKey = "k"
		cfg.Security.SetupTokenSecret = testSecret
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"missing token", func(c *Config) { c.Discord.Token = "" }, "DISCORD_TOKEN"},
		{"missing bot id", func(c *Config) { c.Discord.ApplicationID = "" }, "BOT_ID"},
		{"missing tmdb key", func(c *Config) { c.TMDB.APIKey = "" }, "TMDB_API_KEY"},
		{"short secret", func(c *Config) { c.Security.SetupTokenSecret = "short" }, "SETUP_TOKEN_SECRET"},
		{"zero quiet period", func(c *Config) { c.Notifications.QuietPeriod = 0 }, "NOTIFICATION_QUIET_PERIOD"},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, "PORT"},
		{"bad public url", func(c *Config) { c.Discord.PublicURL = "anchorr.local" }, "PUBLIC_BOT_URL"},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "LOG_LEVEL"},
		{"autocomplete limit", func(c *Config) { c.Interactions.AutocompleteLimit = 30 }, "AUTOCOMPLETE_LIMIT"},
		{"store path", func(c *Config) { c.Store.Path = "" }, "STORE_PATH"},
		{"in-memory store needs no path", func(c *Config) { c.Store.Path = ""; c.Store.InMemory = true }, ""},
		{"rate limit disabled skips checks", func(c *Config) { c.Security.RateLimitDisabled = true; c.Security.RateLimitReqs = 0 }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"DISCORD_TOKEN", "discord.token"},
		{"BOT_ID", "discord.application_id"},
		{"NOTIFICATION_QUIET_PERIOD", "notifications.quiet_period"},
		{"STORE_PATH", "store.path"},
		{"HOME", ""},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := envTransformFunc(tt.key); got != tt.want {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}
