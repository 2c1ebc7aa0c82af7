// Anchorr - Media Request and Notification Bridge for Discord
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/anchorr

package validation

import (
	"strings"
	"testing"

	"github.com/tomtom215/anchorr/internal/models"
)

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()
	if v1 == nil || v1 != v2 {
		t.Error("GetValidator() should return one non-nil instance")
	}
}

func TestValidateStruct_GuildConfig(t *testing.T) {
	tests := []struct {
		name      string
		cfg       models.GuildConfig
		wantField string
	}{
		{
			name: "fully configured",
			cfg: models.GuildConfig{
				GuildID:               "123456789012345678",
				JellyseerrURL:         "https://requests.example.com/api/v1",
				JellyseerrAPIKey:      "key",
				NotificationChannelID: "223456789012345678",
				JellyfinServerURL:     "http://jellyfin.lan:8096",
				ColorSearch:           "#ef9f76",
			},
		},
		{name: "empty optional fields", cfg: models.GuildConfig{GuildID: "123456789012345678"}},
		{name: "missing guild", cfg: models.GuildConfig{}, wantField: "guild_id"},
		{name: "bad url", cfg: models.GuildConfig{GuildID: "1", JellyseerrURL: "ftp://x"}, wantField: "jellyseerr_url"},
		{name: "bad color", cfg: models.GuildConfig{GuildID: "1", ColorSuccess: "green"}, wantField: "color_success"},
		{name: "bad channel", cfg: models.GuildConfig{GuildID: "1", NotificationChannelID: "general"}, wantField: "notification_channel_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := ValidateStruct(&tt.cfg)
			if tt.wantField == "" {
				if verr != nil {
					t.Errorf("ValidateStruct() = %v, want nil", verr)
				}
				return
			}
			if verr == nil {
				t.Fatalf("ValidateStruct() = nil, want error on %s", tt.wantField)
			}
			if got := verr.Errors()[0].Field(); got != tt.wantField {
				t.Errorf("field = %q, want %q", got, tt.wantField)
			}
		})
	}
}

func TestValidateStruct_ConnectionTest(t *testing.T) {
	req := models.ConnectionTestRequest{Type: models.ConnectionTestJellyseerr, URL: "https://js.example.com"}
	verr := ValidateStruct(&req)
	if verr == nil {
		t.Fatal("ValidateStruct() = nil, want api_key required for jellyseerr")
	}
	if got := verr.Errors()[0].Field(); got != "api_key" {
		t.Errorf("field = %q, want api_key", got)
	}

	req = models.ConnectionTestRequest{Type: models.ConnectionTestJellyfin, URL: "https://jf.example.com"}
	if verr := ValidateStruct(&req); verr != nil {
		t.Errorf("ValidateStruct(jellyfin) = %v, want nil", verr)
	}

	req = models.ConnectionTestRequest{Type: "plex", URL: "https://x.example.com"}
	verr = ValidateStruct(&req)
	if verr == nil || !strings.Contains(verr.Error(), "must be one of") {
		t.Errorf("ValidateStruct(plex) = %v, want oneof failure", verr)
	}
}

type snowflakeHolder struct {
	ID string `json:"id" validate:"snowflake"`
}

func TestSnowflakeValidator(t *testing.T) {
	tests := []struct {
		id    string
		valid bool
	}{
		{"81384788765712384", true},
		{"1234567890123456789", true},
		{"123", false},
		{"12345678901234567a", false},
		{"123456789012345678901", false},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			verr := ValidateStruct(&snowflakeHolder{ID: tt.id})
			if (verr == nil) != tt.valid {
				t.Errorf("ValidateStruct(%q) = %v, want valid=%v", tt.id, verr, tt.valid)
			}
		})
	}
}

func TestToAPIError(t *testing.T) {
	verr := ValidateStruct(&models.GuildConfig{ColorSearch: "nope", JellyfinServerURL: "x"})
	if verr == nil {
		t.Fatal("expected validation errors")
	}
	apiErr := verr.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %q, want VALIDATION_ERROR", apiErr.Code)
	}
	if _, ok := apiErr.Details["fields"]; !ok {
		t.Errorf("Details = %v, want fields list for multiple errors", apiErr.Details)
	}
	if !strings.Contains(apiErr.Message, "guild_id: guild_id is required") {
		t.Errorf("Message = %q", apiErr.Message)
	}

	single := (&RequestValidationError{errors: []ValidationError{{field: "url", tag: "required", message: "url is required"}}}).ToAPIError()
	if single.Message != "url is required" || single.Details["field"] != "url" {
		t.Errorf("single ToAPIError() = %+v", single)
	}
}
