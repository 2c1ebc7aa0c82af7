// Anchorr - Media Request and Notification Bridge for Discord
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/anchorr

// Package upstream executes outbound HTTP calls to TMDB, OMDb, Jellyseerr and
// Jellyfin. Every call runs under a deadline, passes through a circuit
// breaker, is recorded in Prometheus and fails with a classified *Error.
package upstream

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/anchorr/internal/logging"
	"github.com/tomtom215/anchorr/internal/metrics"
)

// UserAgent is sent on every outbound request.
const UserAgent = "Anchorr/1.0 (+https://github.com/tomtom215/anchorr)"

// Doer is satisfied by *http.Client.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client performs JSON requests for one service.
type Client struct {
	service string
	timeout time.Duration
	http    Doer
}

// NewClient creates a client for service with a per-call timeout.
func NewClient(service string, timeout time.Duration, doer Doer) *Client {
	if doer == nil {
		doer = &http.Client{}
	}
	return &Client{service: service, timeout: timeout, http: doer}
}

// Service returns the service label.
func (c *Client) Service() string { return c.service }

// DoJSON sends req through breaker and decodes a 2xx JSON body into out.
// out may be nil when the body is not needed.
//
// req must have been created without a context; DoJSON attaches ctx bounded
// by the client timeout.
func (c *Client) DoJSON(ctx context.Context, breaker *Breaker, operation string, req *http.Request, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	req = req.WithContext(ctx)

	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	_, err := breaker.Execute(func() (interface{}, error) {
		return nil, c.roundTrip(operation, req, out)
	})
	uerr := Classify(c.service, operation, err)

	kind := ""
	if uerr != nil {
		kind = string(uerr.Kind)
	}
	metrics.RecordUpstreamCall(c.service, operation, kind, time.Since(start))

	if uerr != nil {
		logging.Ctx(ctx).Debug().
			Str("service", c.service).
			Str("operation", operation).
			Str("kind", kind).
			Dur("elapsed", time.Since(start)).
			Err(uerr).
			Msg("Upstream call failed")
		return uerr
	}
	return nil
}

func (c *Client) roundTrip(operation string, req *http.Request, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return Classify(c.service, operation, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return StatusError(c.service, operation, resp.StatusCode, body)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return Classify(c.service, operation, ctxErr)
		}
		return DecodeError(c.service, operation, err)
	}
	return nil
}
