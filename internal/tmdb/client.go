// Anchorr - Media Request and Notification Bridge for Discord
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/anchorr

// Package tmdb is a client for the parts of The Movie Database v3 API that
// Anchorr uses: multi search and movie/tv details.
//
// API Reference: https://developer.themoviedb.org/reference
package tmdb

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/anchorr/internal/models"
	"github.com/tomtom215/anchorr/internal/upstream"
)

// ServiceName labels TMDB calls in metrics and errors.
const ServiceName = "tmdb"

// Searcher finds titles for autocomplete.
type Searcher interface {
	Search(ctx context.Context, query string) ([]SearchResult, error)
}

// API is the full TMDB surface used by Anchorr.
type API interface {
	Searcher
	Details(ctx context.Context, ref models.MediaReference) (*Details, error)
}

var _ API = (*Client)(nil)

// Config configures a Client.
type Config struct {
	APIKey  string
	BaseURL string // e.g. https://api.themoviedb.org/3
	Timeout time.Duration
}

// Client calls the TMDB API.
type Client struct {
	baseURL string
	apiKey  string
	http    *upstream.Client
	breaker *upstream.Breaker
}

// NewClient creates a TMDB client. doer may be nil.
func NewClient(cfg Config, doer upstream.Doer) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    upstream.NewClient(ServiceName, cfg.Timeout, doer),
		breaker: upstream.NewBreaker("tmdb-api"),
	}
}

// Search calls /search/multi. Results include people; filter by Kind.
func (c *Client) Search(ctx context.Context, query string) ([]SearchResult, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("include_adult", "false")

	var resp searchResponse
	if err := c.get(ctx, "search", "/search/multi", params, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// Details fetches a movie or show with external ids and images appended.
func (c *Client) Details(ctx context.Context, ref models.MediaReference) (*Details, error) {
	id, err := ref.TMDBID()
	if err != nil {
		return nil, err
	}
	if _, err := models.ParseMediaKind(string(ref.Kind)); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("append_to_response", "external_ids,images")

	var d Details
	endpoint := "/" + string(ref.Kind) + "/" + strconv.Itoa(id)
	if err := c.get(ctx, "details", endpoint, params, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (c *Client) get(ctx context.Context, operation, endpoint string, params url.Values, out interface{}) error {
	params.Set("api_key", c.apiKey)
	fullURL := c.baseURL + endpoint + "?" + params.Encode()

	req, err := http.NewRequest(http.MethodGet, fullURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return c.http.DoJSON(ctx, c.breaker, operation, req, out)
}
