// Anchorr - Media Request and Notification Bridge for Discord
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/anchorr

package config

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/tomtom215/anchorr/internal/logging"
)

// MinSetupTokenSecretLength is the minimum HS256 secret length.
const MinSetupTokenSecretLength = 32

// Validate checks required settings and value ranges.
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateDiscord,
		c.validateUpstreams,
		c.validateNotifications,
		c.validateInteractions,
		c.validateStore,
		c.validateServer,
		c.validateSecurity,
		c.validateLogging,
	}
	for _, v := range validators {
		if err := v(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateDiscord() error {
	if c.Discord.Token == "" {
		return errors.New("DISCORD_TOKEN is required")
	}
	if c.Discord.ApplicationID == "" {
		return errors.New("BOT_ID is required")
	}
	if c.Discord.PublicURL != "" {
		if err := validateHTTPURL(c.Discord.PublicURL, "PUBLIC_BOT_URL"); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateUpstreams() error {
	if c.TMDB.APIKey == "" {
		return errors.New("TMDB_API_KEY is required")
	}
	if err := validateHTTPURL(c.TMDB.BaseURL, "TMDB_BASE_URL"); err != nil {
		return err
	}
	if err := validateHTTPURL(c.OMDb.BaseURL, "OMDB_BASE_URL"); err != nil {
		return err
	}

	timeouts := map[string]int64{
		"TMDB_TIMEOUT":       int64(c.TMDB.Timeout),
		"OMDB_TIMEOUT":       int64(c.OMDb.Timeout),
		"JELLYSEERR_TIMEOUT": int64(c.Jellyseerr.Timeout),
		"JELLYFIN_TIMEOUT":   int64(c.Jellyfin.Timeout),
	}
	for name, v := range timeouts {
		if v <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}
	if c.TMDB.SearchCacheTTL < 0 {
		return errors.New("TMDB_SEARCH_CACHE_TTL must not be negative")
	}
	return nil
}

func (c *Config) validateNotifications() error {
	n := c.Notifications
	if n.QuietPeriod <= 0 {
		return fmt.Errorf("NOTIFICATION_QUIET_PERIOD must be positive, got %v", n.QuietPeriod)
	}
	if n.SendRate <= 0 {
		return fmt.Errorf("NOTIFICATION_SEND_RATE must be positive, got %v", n.SendRate)
	}
	if n.SendBurst < 1 {
		return fmt.Errorf("NOTIFICATION_SEND_BURST must be at least 1, got %d", n.SendBurst)
	}
	if n.PublishTimeout <= 0 {
		return errors.New("NOTIFICATION_PUBLISH_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateInteractions() error {
	i := c.Interactions
	if i.PipelineTimeout <= 0 || i.AutocompleteTimeout <= 0 {
		return errors.New("interaction timeouts must be positive")
	}
	if i.AutocompleteLimit < 1 || i.AutocompleteLimit > 25 {
		return fmt.Errorf("INTERACTION_AUTOCOMPLETE_LIMIT must be between 1 and 25, got %d", i.AutocompleteLimit)
	}
	return nil
}

func (c *Config) validateStore() error {
	if !c.Store.InMemory && c.Store.Path == "" {
		return errors.New("STORE_PATH is required unless STORE_IN_MEMORY is set")
	}
	if c.Store.GCInterval <= 0 {
		return errors.New("STORE_GC_INTERVAL must be positive")
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return errors.New("HTTP_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	s := c.Security
	if len(s.SetupTokenSecret) < MinSetupTokenSecretLength {
		return fmt.Errorf("SETUP_TOKEN_SECRET must be at least %d characters", MinSetupTokenSecretLength)
	}
	if s.SetupTokenTTL <= 0 {
		return errors.New("SETUP_TOKEN_TTL must be positive")
	}
	if !s.RateLimitDisabled {
		if s.RateLimitReqs < 1 {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1, got %d", s.RateLimitReqs)
		}
		if s.RateLimitWindow <= 0 {
			return errors.New("RATE_LIMIT_WINDOW must be positive")
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL %q is not a valid level", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
		return nil
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
}

// validateHTTPURL requires an http(s) scheme and a host.
func validateHTTPURL(rawURL, fieldName string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %q", fieldName, parsedURL.Scheme)
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}
	if parsedURL.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters, remove: ?%s", fieldName, parsedURL.RawQuery)
	}
	return nil
}
