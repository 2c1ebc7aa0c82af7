// Anchorr - Media Request and Notification Bridge for Discord
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/anchorr

package models

import (
	"fmt"
	"net/url"
	"strings"
)

// Jellyfin webhook values Anchorr reacts to.
const (
	NotificationTypeItemAdded = "ItemAdded"
	ItemTypeMovie             = "Movie"
	ItemTypeEpisode           = "Episode"
)

// ticksPerSecond converts Jellyfin RunTimeTicks (100ns units) to seconds.
const ticksPerSecond = 10_000_000

// JellyfinItemAdded is the payload posted by the Jellyfin webhook plugin
// (https://github.com/jellyfin/jellyfin-plugin-webhook) when an item is added
// to a library. Only fields used for notifications are decoded.
type JellyfinItemAdded struct {
	NotificationType string `json:"NotificationType"`

	ServerID  string `json:"ServerId,omitempty"`
	ServerURL string `json:"ServerUrl,omitempty"`

	ItemID   string `json:"ItemId,omitempty"`
	ItemType string `json:"ItemType,omitempty"` // "Movie", "Episode", "Series", "Audio", ...
	Name     string `json:"Name,omitempty"`
	Year     int    `json:"Year,omitempty"`
	Overview string `json:"Overview,omitempty"`
	Genres   string `json:"Genres,omitempty"` // comma separated in the default template

	// TV episode specific
	SeriesID          string `json:"SeriesId,omitempty"`
	SeriesName        string `json:"SeriesName,omitempty"`
	IndexNumber       *int   `json:"IndexNumber,omitempty"`       // episode number
	ParentIndexNumber *int   `json:"ParentIndexNumber,omitempty"` // season number

	RunTimeTicks int64 `json:"RunTimeTicks,omitempty"`

	ProviderImdb string `json:"Provider_imdb,omitempty"`
	ProviderTmdb string `json:"Provider_tmdb,omitempty"`
}

// IsItemAdded reports whether the event is a library addition.
func (w *JellyfinItemAdded) IsItemAdded() bool {
	return w.NotificationType == NotificationTypeItemAdded
}

// IsTrackedItemType reports whether the item is a movie or an episode.
func (w *JellyfinItemAdded) IsTrackedItemType() bool {
	return w.ItemType == ItemTypeMovie || w.ItemType == ItemTypeEpisode
}

// IsTracked reports whether the event should produce a notification at all.
func (w *JellyfinItemAdded) IsTracked() bool {
	return w.IsItemAdded() && w.IsTrackedItemType()
}

// IsEpisode reports whether the item is a TV episode.
func (w *JellyfinItemAdded) IsEpisode() bool {
	return w.ItemType == ItemTypeEpisode
}

// GroupingID returns the series id when present, else the item id. Episodes
// of one series share it, so a season import collapses into one notification.
func (w *JellyfinItemAdded) GroupingID() string {
	if w.SeriesID != "" {
		return w.SeriesID
	}
	return w.ItemID
}

// Title renders "Name (Year)" for movies and
// "Series - S01E02 - Name" for episodes. Missing parts become placeholders.
func (w *JellyfinItemAdded) Title() string {
	name := w.Name
	if name == "" {
		name = "Unknown title"
	}

	if !w.IsEpisode() {
		if w.Year > 0 {
			return fmt.Sprintf("%s (%d)", name, w.Year)
		}
		return name
	}

	series := w.SeriesName
	if series == "" {
		series = "Unknown series"
	}
	return fmt.Sprintf("%s - S%sE%s - %s", series, padIndex(w.ParentIndexNumber), padIndex(w.IndexNumber), name)
}

// RuntimeMinutes converts RunTimeTicks to whole minutes, rounded.
func (w *JellyfinItemAdded) RuntimeMinutes() int {
	if w.RunTimeTicks <= 0 {
		return 0
	}
	seconds := float64(w.RunTimeTicks) / ticksPerSecond
	return int(seconds/60 + 0.5)
}

// BaseURL returns the server URL from the payload, falling back to the
// guild's configured Jellyfin URL. Trailing slashes are removed.
func (w *JellyfinItemAdded) BaseURL(fallback string) string {
	base := w.ServerURL
	if base == "" {
		base = fallback
	}
	return strings.TrimRight(base, "/")
}

// WatchURL is the Jellyfin web client deep link for the item, or "" when
// no server URL or item id is known.
func (w *JellyfinItemAdded) WatchURL(fallbackBase string) string {
	base := w.BaseURL(fallbackBase)
	if base == "" || w.ItemID == "" {
		return ""
	}
	return fmt.Sprintf("%s/web/index.html#!/details?id=%s&serverId=%s",
		base, url.QueryEscape(w.ItemID), url.QueryEscape(w.ServerID))
}

// ThumbnailURL is the item's Thumb image on the Jellyfin server, or "".
func (w *JellyfinItemAdded) ThumbnailURL(fallbackBase string) string {
	base := w.BaseURL(fallbackBase)
	if base == "" || w.ItemID == "" {
		return ""
	}
	return fmt.Sprintf("%s/Items/%s/Images/Thumb", base, url.PathEscape(w.ItemID))
}

func padIndex(n *int) string {
	if n == nil || *n < 0 {
		return "??"
	}
	return fmt.Sprintf("%02d", *n)
}
