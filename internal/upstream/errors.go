// Anchorr - Media Request and Notification Bridge for Discord
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/anchorr

package upstream

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"

	gobreaker "github.com/sony/gobreaker/v2"
)

// Kind classifies an upstream failure.
type Kind string

const (
	KindTimeout     Kind = "timeout"
	KindCanceled    Kind = "canceled"
	KindTransport   Kind = "transport"
	KindStatus      Kind = "status"
	KindDecode      Kind = "decode"
	KindCircuitOpen Kind = "circuit_open"
)

// maxErrorBody bounds how much of an error response body is kept.
const maxErrorBody = 512

// Error is a classified failure from an external API.
type Error struct {
	Service    string // tmdb, omdb, jellyseerr, jellyfin
	Operation  string
	Kind       Kind
	StatusCode int    // set for KindStatus
	Body       string // truncated response body, set for KindStatus
	Err        error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindStatus:
		if e.Body != "" {
			return fmt.Sprintf("%s %s: status %d: %s", e.Service, e.Operation, e.StatusCode, e.Body)
		}
		return fmt.Sprintf("%s %s: status %d", e.Service, e.Operation, e.StatusCode)
	default:
		if e.Err != nil {
			return fmt.Sprintf("%s %s: %s: %v", e.Service, e.Operation, e.Kind, e.Err)
		}
		return fmt.Sprintf("%s %s: %s", e.Service, e.Operation, e.Kind)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Temporary reports whether retrying later could succeed.
func (e *Error) Temporary() bool {
	switch e.Kind {
	case KindTimeout, KindTransport, KindCircuitOpen:
		return true
	case KindStatus:
		return e.StatusCode >= 500 || e.StatusCode == 429
	default:
		return false
	}
}

// Classify wraps a transport-level error from an HTTP call.
func Classify(service, operation string, err error) *Error {
	if err == nil {
		return nil
	}
	var ue *Error
	if errors.As(err, &ue) {
		return ue
	}

	// Query strings may carry API keys (TMDB, OMDb).
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if i := strings.IndexByte(urlErr.URL, '?'); i >= 0 {
			urlErr.URL = urlErr.URL[:i]
		}
	}

	kind := KindTransport
	var netErr net.Error
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		kind = KindCircuitOpen
	case errors.Is(err, context.DeadlineExceeded):
		kind = KindTimeout
	case errors.Is(err, context.Canceled):
		kind = KindCanceled
	case errors.As(err, &netErr) && netErr.Timeout():
		kind = KindTimeout
	}
	return &Error{Service: service, Operation: operation, Kind: kind, Err: err}
}

// StatusError builds a KindStatus error from a non-2xx response.
func StatusError(service, operation string, statusCode int, body []byte) *Error {
	b := string(body)
	if len(b) > maxErrorBody {
		b = b[:maxErrorBody]
	}
	return &Error{Service: service, Operation: operation, Kind: KindStatus, StatusCode: statusCode, Body: b}
}

// DecodeError builds a KindDecode error.
func DecodeError(service, operation string, err error) *Error {
	return &Error{Service: service, Operation: operation, Kind: KindDecode, Err: err}
}

// KindOf returns the classification of err, or "" when err is not an *Error.
func KindOf(err error) Kind {
	var ue *Error
	if errors.As(err, &ue) {
		return ue.Kind
	}
	return ""
}

// IsStatus reports whether err is an upstream status error with code.
func IsStatus(err error, code int) bool {
	var ue *Error
	return errors.As(err, &ue) && ue.Kind == KindStatus && ue.StatusCode == code
}
