// Anchorr - Media Request and Notification Bridge for Discord
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/anchorr

/*
Package jellyfin probes a Jellyfin server for the configuration API.

Anchorr never authenticates against Jellyfin: new items arrive through the
webhook plugin, and the only outbound call is the unauthenticated
/System/Info/Public endpoint used to test a server URL.

API Reference: https://api.jellyfin.org/
*/
package jellyfin

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tomtom215/anchorr/internal/upstream"
)

// ServiceName labels Jellyfin calls in metrics and errors.
const ServiceName = "jellyfin"

// ErrInvalidResponse is returned when the server answers without a version.
var ErrInvalidResponse = errors.New("invalid response from jellyfin")

// Prober checks that a Jellyfin server is reachable.
type Prober interface {
	PublicSystemInfo(ctx context.Context, baseURL string) (*PublicSystemInfo, error)
}

var _ Prober = (*Client)(nil)

// PublicSystemInfo is the unauthenticated server summary.
type PublicSystemInfo struct {
	ServerName      string `json:"ServerName"`
	Version         string `json:"Version"`
	ID              string `json:"Id"`
	ProductName     string `json:"ProductName,omitempty"`
	LocalAddress    string `json:"LocalAddress,omitempty"`
	StartupComplete bool   `json:"StartupWizardCompleted"`
}

// Message renders a connection test result.
func (i *PublicSystemInfo) Message() string {
	return fmt.Sprintf("Connected to Jellyfin v%s", i.Version)
}

// Client talks to arbitrary Jellyfin servers, one breaker per host.
type Client struct {
	http     *upstream.Client
	breakers *upstream.BreakerSet
}

// NewClient creates a client. doer may be nil.
func NewClient(timeout time.Duration, doer upstream.Doer) *Client {
	return &Client{
		http:     upstream.NewClient(ServiceName, timeout, doer),
		breakers: upstream.NewBreakerSet("jellyfin-api"),
	}
}

// PublicSystemInfo fetches {baseURL}/System/Info/Public.
func (c *Client) PublicSystemInfo(ctx context.Context, baseURL string) (*PublicSystemInfo, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("invalid jellyfin url %q", baseURL)
	}

	req, err := http.NewRequest(http.MethodGet, baseURL+"/System/Info/Public", http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var info PublicSystemInfo
	if err := c.http.DoJSON(ctx, c.breakers.For(u.Host), "system_info", req, &info); err != nil {
		return nil, err
	}
	if info.Version == "" {
		return nil, ErrInvalidResponse
	}
	return &info, nil
}
