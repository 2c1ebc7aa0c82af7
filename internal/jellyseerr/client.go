// Anchorr - Media Request and Notification Bridge for Discord
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/anchorr

// Package jellyseerr submits media requests to a guild's Jellyseerr instance
// and probes connectivity for the configuration API.
//
// Each guild brings its own Jellyseerr URL and API key, so the client is
// shared and the target is passed per call. Circuit breakers are kept per
// host.
package jellyseerr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/anchorr/internal/models"
	"github.com/tomtom215/anchorr/internal/upstream"
)

// ServiceName labels Jellyseerr calls in metrics and errors.
const ServiceName = "jellyseerr"

// ErrNotConfigured is returned when the target has no URL.
var ErrNotConfigured = errors.New("jellyseerr: url not configured")

// Target is one guild's Jellyseerr endpoint. URL is the API base as entered
// by the admin, e.g. https://requests.example.com/api/v1.
type Target struct {
	URL    string
	APIKey string
}

// TargetFor returns the Jellyseerr target of a guild configuration.
func TargetFor(cfg *models.GuildConfig) Target {
	return Target{URL: cfg.JellyseerrURL, APIKey: cfg.JellyseerrAPIKey}
}

// Submitter creates media requests.
type Submitter interface {
	Submit(ctx context.Context, target Target, ref models.MediaReference) error
}

var _ Submitter = (*Client)(nil)

// requestPayload is the body of POST /request.
type requestPayload struct {
	MediaID   int    `json:"mediaId"`
	MediaType string `json:"mediaType"`
	Seasons   string `json:"seasons,omitempty"`
}

// Status is the public /api/v1/status response.
type Status struct {
	Version         string `json:"version"`
	CommitTag       string `json:"commitTag,omitempty"`
	UpdateAvailable bool   `json:"updateAvailable"`
}

// Client talks to any number of Jellyseerr instances.
type Client struct {
	http     *upstream.Client
	breakers *upstream.BreakerSet
}

// NewClient creates a client with a per-call timeout. doer may be nil.
func NewClient(timeout time.Duration, doer upstream.Doer) *Client {
	return &Client{
		http:     upstream.NewClient(ServiceName, timeout, doer),
		breakers: upstream.NewBreakerSet("jellyseerr-api"),
	}
}

// Submit requests ref on target. TV requests ask for all seasons.
func (c *Client) Submit(ctx context.Context, target Target, ref models.MediaReference) error {
	base := strings.TrimRight(target.URL, "/")
	if base == "" {
		return ErrNotConfigured
	}
	id, err := ref.TMDBID()
	if err != nil {
		return err
	}

	payload := requestPayload{MediaID: id, MediaType: string(ref.Kind)}
	if ref.Kind == models.MediaKindTV {
		payload.Seasons = "all"
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, base+"/request", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", target.APIKey)

	breaker, err := c.breakerFor(base)
	if err != nil {
		return err
	}
	return c.http.DoJSON(ctx, breaker, "submit", req, nil)
}

// TestConnection checks that the API key is accepted by fetching
// /api/v1/settings/main, then reads the version from the public
// /api/v1/status. Both paths are resolved against the origin of rawURL.
func (c *Client) TestConnection(ctx context.Context, rawURL, apiKey string) (*Status, error) {
	origin, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || origin.Host == "" {
		return nil, fmt.Errorf("invalid jellyseerr url %q", rawURL)
	}
	breaker := c.breakers.For(origin.Host)

	settingsURL := origin.ResolveReference(&url.URL{Path: "/api/v1/settings/main"})
	req, err := http.NewRequest(http.MethodGet, settingsURL.String(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Api-Key", apiKey)
	if err := c.http.DoJSON(ctx, breaker, "settings", req, nil); err != nil {
		return nil, err
	}

	statusURL := origin.ResolveReference(&url.URL{Path: "/api/v1/status"})
	req, err = http.NewRequest(http.MethodGet, statusURL.String(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	var status Status
	if err := c.http.DoJSON(ctx, breaker, "status", req, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Message renders a connection test result.
func (s *Status) Message() string {
	if s == nil || s.Version == "" {
		return "Successfully connected to Jellyseerr!"
	}
	return fmt.Sprintf("Successfully connected to Jellyseerr v%s!", s.Version)
}

// ErrorMessage extracts Jellyseerr's {"message": "..."} from a status error,
// falling back to err's text.
func ErrorMessage(err error) string {
	var ue *upstream.Error
	if errors.As(err, &ue) && ue.Kind == upstream.KindStatus && ue.Body != "" {
		var body struct {
			Message string `json:"message"`
		}
		if json.Unmarshal([]byte(ue.Body), &body) == nil && body.Message != "" {
			return body.Message
		}
	}
	return err.Error()
}

func (c *Client) breakerFor(base string) (*upstream.Breaker, error) {
	u, err := url.Parse(base)
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("invalid jellyseerr url %q", base)
	}
	return c.breakers.For(u.Host), nil
}
