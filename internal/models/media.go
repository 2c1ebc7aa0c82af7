// Anchorr - Media Request and Notification Bridge for Discord
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/anchorr

package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrUnrecognizedMediaKind is returned for any kind other than movie or tv.
	ErrUnrecognizedMediaKind = errors.New("unrecognized media kind")

	// ErrInvalidSelection is returned when an autocomplete value or button id
	// does not follow the expected encoding.
	ErrInvalidSelection = errors.New("invalid media selection")
)

// MediaKind is the TMDB media type of a requestable title.
type MediaKind string

const (
	MediaKindMovie MediaKind = "movie"
	MediaKindTV    MediaKind = "tv"
)

// RequestButtonPrefix prefixes the custom id of a "Request" button.
const RequestButtonPrefix = "request"

// RequestedButtonID is the custom id of the disabled "Requested" button.
const RequestedButtonID = "requested"

// ParseMediaKind accepts exactly "movie" or "tv".
func ParseMediaKind(s string) (MediaKind, error) {
	switch MediaKind(s) {
	case MediaKindMovie, MediaKindTV:
		return MediaKind(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnrecognizedMediaKind, s)
	}
}

// Emoji returns the label prefix used in autocomplete and embeds.
func (k MediaKind) Emoji() string {
	if k == MediaKindMovie {
		return "🎬"
	}
	return "📺"
}

// MediaReference identifies one requestable title.
type MediaReference struct {
	ExternalID string    `json:"external_id"`
	Kind       MediaKind `json:"kind"`
}

// TMDBID returns the numeric TMDB id.
func (r MediaReference) TMDBID() (int, error) {
	id, err := strconv.Atoi(r.ExternalID)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: external id %q is not a positive integer", ErrInvalidSelection, r.ExternalID)
	}
	return id, nil
}

// SelectionValue encodes the reference as an autocomplete choice value.
func (r MediaReference) SelectionValue() string {
	return r.ExternalID + "|" + string(r.Kind)
}

// RequestButtonID encodes the reference as a "Request" button custom id.
func (r MediaReference) RequestButtonID() string {
	return RequestButtonPrefix + "|" + r.SelectionValue()
}

func (r MediaReference) String() string {
	return r.SelectionValue()
}

// ParseSelection decodes an autocomplete value of the form "{id}|{kind}".
// Free text typed without picking a suggestion fails with ErrInvalidSelection.
func ParseSelection(value string) (MediaReference, error) {
	parts := strings.Split(value, "|")
	if len(parts) != 2 {
		return MediaReference{}, fmt.Errorf("%w: %q", ErrInvalidSelection, value)
	}
	return newReference(parts[0], parts[1])
}

// ParseRequestButtonID decodes a button custom id of the form
// "request|{id}|{kind}".
func ParseRequestButtonID(customID string) (MediaReference, error) {
	parts := strings.Split(customID, "|")
	if len(parts) != 3 || parts[0] != RequestButtonPrefix {
		return MediaReference{}, fmt.Errorf("%w: %q", ErrInvalidSelection, customID)
	}
	return newReference(parts[1], parts[2])
}

// IsRequestButtonID reports whether customID belongs to a "Request" button.
func IsRequestButtonID(customID string) bool {
	return strings.HasPrefix(customID, RequestButtonPrefix+"|")
}

func newReference(id, kind string) (MediaReference, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return MediaReference{}, fmt.Errorf("%w: empty external id", ErrInvalidSelection)
	}
	mk, err := ParseMediaKind(strings.TrimSpace(kind))
	if err != nil {
		return MediaReference{}, err
	}
	ref := MediaReference{ExternalID: id, Kind: mk}
	if _, err := ref.TMDBID(); err != nil {
		return MediaReference{}, err
	}
	return ref, nil
}
