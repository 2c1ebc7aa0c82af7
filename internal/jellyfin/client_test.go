// Anchorr - Media Request and Notification Bridge for Discord
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/anchorr

package jellyfin

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tomtom215/anchorr/internal/upstream"
)

func TestPublicSystemInfo(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantErr     error
		wantKind    upstream.Kind
		wantMessage string
	}{
		{
			name:        "ok",
			status:      http.StatusOK,
			body:        `{"ServerName":"den","Version":"10.9.11","Id":"abc"}`,
			wantMessage: "Connected to Jellyfin v10.9.11",
		},
		{
			name:    "no version",
			status:  http.StatusOK,
			body:    `{"ServerName":"den"}`,
			wantErr: ErrInvalidResponse,
		},
		{
			name:     "server error",
			status:   http.StatusBadGateway,
			body:     `bad gateway`,
			wantKind: upstream.KindStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/jellyfin/System/Info/Public" {
					t.Errorf("path = %q", r.URL.Path)
				}
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			c := NewClient(time.Second, nil)
			info, err := c.PublicSystemInfo(context.Background(), server.URL+"/jellyfin/")

			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("PublicSystemInfo() error = %v, want %v", err, tt.wantErr)
				}
			case tt.wantKind != "":
				if got := upstream.KindOf(err); got != tt.wantKind {
					t.Errorf("KindOf() = %q, want %q", got, tt.wantKind)
				}
			default:
				if err != nil {
					t.Fatalf("PublicSystemInfo() error: %v", err)
				}
				if got := info.Message(); got != tt.wantMessage {
					t.Errorf("Message() = %q, want %q", got, tt.wantMessage)
				}
			}
		})
	}
}

func TestPublicSystemInfoInvalidURL(t *testing.T) {
	c := NewClient(time.Second, nil)
	if _, err := c.PublicSystemInfo(context.Background(), "not a url"); err == nil {
		t.Error("PublicSystemInfo() error = nil, want error")
	}
}
