// Anchorr - Media Request and Notification Bridge for Discord
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/anchorr

package models

import (
	"errors"
	"testing"
)

func TestParseSelection(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    MediaReference
		wantErr error
	}{
		{"movie", "27205|movie", MediaReference{ExternalID: "27205", Kind: MediaKindMovie}, nil},
		{"tv", "1399|tv", MediaReference{ExternalID: "1399", Kind: MediaKindTV}, nil},
		{"free text", "Inception", MediaReference{}, ErrInvalidSelection},
		{"too many parts", "1|movie|x", MediaReference{}, ErrInvalidSelection},
		{"empty id", "|movie", MediaReference{}, ErrInvalidSelection},
		{"non numeric id", "abc|movie", MediaReference{}, ErrInvalidSelection},
		{"zero id", "0|tv", MediaReference{}, ErrInvalidSelection},
		{"unknown kind", "12|person", MediaReference{}, ErrUnrecognizedMediaKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSelection(tt.value)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ParseSelection(%q) error = %v, want %v", tt.value, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSelection(%q) unexpected error: %v", tt.value, err)
			}
			if got != tt.want {
				t.Errorf("ParseSelection(%q) = %+v, want %+v", tt.value, got, tt.want)
			}
		})
	}
}

func TestParseRequestButtonID(t *testing.T) {
	ref, err := ParseRequestButtonID("request|603|movie")
	if err != nil {
		t.Fatalf("ParseRequestButtonID() unexpected error: %v", err)
	}
	if ref.ExternalID != "603" || ref.Kind != MediaKindMovie {
		t.Errorf("ParseRequestButtonID() = %+v, want 603/movie", ref)
	}

	for _, bad := range []string{"requested", "603|movie", "req|603|movie", "request|603"} {
		if _, err := ParseRequestButtonID(bad); !errors.Is(err, ErrInvalidSelection) {
			t.Errorf("ParseRequestButtonID(%q) error = %v, want ErrInvalidSelection", bad, err)
		}
	}
}

func TestMediaReferenceEncodingsRoundTrip(t *testing.T) {
	ref := MediaReference{ExternalID: "1399", Kind: MediaKindTV}

	if got := ref.SelectionValue(); got != "1399|tv" {
		t.Errorf("SelectionValue() = %q, want %q", got, "1399|tv")
	}
	if got := ref.RequestButtonID(); got != "request|1399|tv" {
		t.Errorf("RequestButtonID() = %q, want %q", got, "request|1399|tv")
	}
	if !IsRequestButtonID(ref.RequestButtonID()) {
		t.Error("IsRequestButtonID() = false for a request button id")
	}
	if IsRequestButtonID(RequestedButtonID) {
		t.Error("IsRequestButtonID(requested) = true, want false")
	}

	back, err := ParseRequestButtonID(ref.RequestButtonID())
	if err != nil || back != ref {
		t.Errorf("ParseRequestButtonID(RequestButtonID()) = %+v, %v; want %+v", back, err, ref)
	}
}

func TestMediaKindEmoji(t *testing.T) {
	if got := MediaKindMovie.Emoji(); got != "🎬" {
		t.Errorf("movie Emoji() = %q", got)
	}
	if got := MediaKindTV.Emoji(); got != "📺" {
		t.Errorf("tv Emoji() = %q", got)
	}
}

func TestGuildConfigReadiness(t *testing.T) {
	var nilCfg *GuildConfig
	if nilCfg.RequestsConfigured() || nilCfg.NotificationsConfigured() {
		t.Error("nil config reported as configured")
	}
	if got := nilCfg.SearchColor(); got != DefaultSearchColor {
		t.Errorf("nil SearchColor() = %q, want default", got)
	}

	cfg := &GuildConfig{
		GuildID:               "42",
		JellyseerrURL:         "https://requests.example.com/api/v1",
		JellyseerrAPIKey:      "secret",
		NotificationChannelID: "99",
		ColorSuccess:          "#112233",
	}
	if !cfg.RequestsConfigured() {
		t.Error("RequestsConfigured() = false, want true")
	}
	if cfg.NotificationsConfigured() {
		t.Error("NotificationsConfigured() = true without Jellyfin URL")
	}
	cfg.JellyfinServerURL = "https://jf.example.com"
	if !cfg.NotificationsConfigured() {
		t.Error("NotificationsConfigured() = false, want true")
	}
	if got := cfg.SuccessColor(); got != "#112233" {
		t.Errorf("SuccessColor() = %q, want #112233", got)
	}
	if got := cfg.NotificationColor(); got != DefaultNotificationColor {
		t.Errorf("NotificationColor() = %q, want default", got)
	}

	red := cfg.Redacted()
	if red.JellyseerrAPIKey != RedactedSecret {
		t.Errorf("Redacted().JellyseerrAPIKey = %q", red.JellyseerrAPIKey)
	}
	if cfg.JellyseerrAPIKey != "secret" {
		t.Error("Redacted() modified the receiver")
	}
}
