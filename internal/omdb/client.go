// Anchorr - Media Request and Notification Bridge for Discord
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/anchorr

// Package omdb looks up IMDb ratings, directors and plots from the OMDb API.
// All data it returns is optional decoration: callers treat every failure as
// "no data".
package omdb

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

// ServiceName labels OMDb calls in metrics and errors.
const ServiceName = "omdb"

// notAvailable is OMDb's placeholder for missing fields.
const notAvailable = "N/A"

// ErrDisabled is returned when no API key is configured.
var ErrDisabled = errors.New("omdb: no API key configured")

// ErrNotFound is returned when OMDb answers Response=False.
var ErrNotFound = errors.New("omdb: title not found")

// Title is the subset of an OMDb title response Anchorr displays.
type Title struct {
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Director   string `json:"Director"`
	Plot       string `json:"Plot"`
	Genre      string `json:"Genre"`
	IMDbRating string `json:"imdbRating"`
	IMDbID     string `json:"imdbID"`
	Response   string `json:"Response"`
	Error      string `json:"Error,omitempty"`
}

// DirectorName returns the director, or "" when OMDb has none. The
// accessors are safe on a nil *Title.
func (t *Title) DirectorName() string {
	if t == nil {
		return ""
	}
	return known(t.Director)
}

// Rating returns the IMDb rating such as "8.8", or "".
func (t *Title) Rating() string {
	if t == nil {
		return ""
	}
	return known(t.IMDbRating)
}

// PlotText returns the plot, or "".
func (t *Title) PlotText() string {
	if t == nil {
		return ""
	}
	return known(t.Plot)
}

// GenreText returns the comma separated genres, or "".
func (t *Title) GenreText() string {
	if t == nil {
		return ""
	}
	return known(t.Genre)
}

func known(s string) string {
	s = strings.TrimSpace(s)
	if s == notAvailable {
		return ""
	}
	return s
}

// Looker fetches supplementary data by IMDb id.
type Looker interface {
	Lookup(ctx context.Context, imdbID string) (*Title, error)
}

var _ Looker = (*Client)(nil)

// Config configures a Client.
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Client calls the OMDb API.
type Client struct {
	baseURL string
	apiKey  string
	http    *upstream.Client
	breaker *upstream.Breaker
}

// NewClient creates an OMDb client. doer may be nil.
func NewClient(cfg Config, doer upstream.Doer) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		http:    upstream.NewClient(ServiceName, cfg.Timeout, doer),
		breaker: upstream.NewBreaker("omdb-api"),
	}
}

// Enabled reports whether lookups will be attempted.
func (c *Client) Enabled() bool {
	return c != nil && c.apiKey != ""
}

// Lookup fetches the title for imdbID. It returns ErrDisabled without a
// network call when no key is set or imdbID is empty.
func (c *Client) Lookup(ctx context.Context, imdbID string) (*Title, error) {
	if !c.Enabled() || imdbID == "" {
		return nil, ErrDisabled
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid omdb base url: %w", err)
	}
	q := u.Query()
	q.Set("i", imdbID)
	q.Set("apikey", c.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequest(http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var t Title
	if err := c.http.DoJSON(ctx, c.breaker, "lookup", req, &t); err != nil {
		return nil, err
	}
	if t.Response != "True" {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, imdbID)
	}
	return &t, nil
}
