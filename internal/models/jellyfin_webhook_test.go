// Anchorr - Media Request and Notification Bridge for Discord
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/anchorr

package models

import (
	"testing"

	"github.com/goccy/go-json"
)

func intPtr(n int) *int { return &n }

func TestJellyfinItemAddedDecode(t *testing.T) {
	payload := []byte(`{
		"NotificationType": "ItemAdded",
		"ServerId": "srv1",
		"ServerUrl": "https://jf.example.com/",
		"ItemId": "ep9",
		"ItemType": "Episode",
		"Name": "Pilot",
		"SeriesId": "series1",
		"SeriesName": "The Expanse",
		"IndexNumber": 1,
		"ParentIndexNumber": 1,
		"RunTimeTicks": 27000000000,
		"Provider_imdb": "tt3230854"
	}`)

	var w JellyfinItemAdded
	if err := json.Unmarshal(payload, &w); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if !w.IsTracked() {
		t.Error("IsTracked() = false, want true")
	}
	if got := w.GroupingID(); got != "series1" {
		t.Errorf("GroupingID() = %q, want series1", got)
	}
	if got := w.Title(); got != "The Expanse - S01E01 - Pilot" {
		t.Errorf("Title() = %q", got)
	}
	if got := w.RuntimeMinutes(); got != 45 {
		t.Errorf("RuntimeMinutes() = %d, want 45", got)
	}
	if w.ProviderImdb != "tt3230854" {
		t.Errorf("ProviderImdb = %q", w.ProviderImdb)
	}
}

func TestJellyfinItemAddedTracking(t *testing.T) {
	tests := []struct {
		name string
		in   JellyfinItemAdded
		want bool
	}{
		{"movie added", JellyfinItemAdded{NotificationType: "ItemAdded", ItemType: "Movie"}, true},
		{"episode added", JellyfinItemAdded{NotificationType: "ItemAdded", ItemType: "Episode"}, true},
		{"series added", JellyfinItemAdded{NotificationType: "ItemAdded", ItemType: "Series"}, false},
		{"playback", JellyfinItemAdded{NotificationType: "PlaybackStart", ItemType: "Movie"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.IsTracked(); got != tt.want {
				t.Errorf("IsTracked() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestJellyfinItemAddedTitle(t *testing.T) {
	tests := []struct {
		name string
		in   JellyfinItemAdded
		want string
	}{
		{"movie with year", JellyfinItemAdded{ItemType: "Movie", Name: "Dune", Year: 2021}, "Dune (2021)"},
		{"movie no year", JellyfinItemAdded{ItemType: "Movie", Name: "Dune"}, "Dune"},
		{"episode padded", JellyfinItemAdded{ItemType: "Episode", SeriesName: "Andor", Name: "Rix Road", ParentIndexNumber: intPtr(1), IndexNumber: intPtr(12)}, "Andor - S01E12 - Rix Road"},
		{"episode missing numbers", JellyfinItemAdded{ItemType: "Episode", SeriesName: "Andor", Name: "X"}, "Andor - S??E?? - X"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Title(); got != tt.want {
				t.Errorf("Title() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestJellyfinItemAddedLinks(t *testing.T) {
	w := JellyfinItemAdded{ItemID: "abc", ServerID: "s1"}

	if got := w.WatchURL(""); got != "" {
		t.Errorf("WatchURL() with no base = %q, want empty", got)
	}
	want := "https://jf.example.com/web/index.html#!/details?id=abc&serverId=s1"
	if got := w.WatchURL("https://jf.example.com/"); got != want {
		t.Errorf("WatchURL() = %q, want %q", got, want)
	}

	w.ServerURL = "https://payload.example.com"
	if got := w.WatchURL("https://jf.example.com"); got != "https://payload.example.com/web/index.html#!/details?id=abc&serverId=s1" {
		t.Errorf("WatchURL() = %q, want payload server preferred", got)
	}
	if got := w.ThumbnailURL("https://jf.example.com"); got != "https://payload.example.com/Items/abc/Images/Thumb" {
		t.Errorf("ThumbnailURL() = %q", got)
	}
}
