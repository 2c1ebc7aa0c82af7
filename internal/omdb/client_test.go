// Anchorr - Media Request and Notification Bridge for Discord
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/anchorr

package omdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestLookup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("i") != "tt1375666" || q.Get("apikey") != "k" {
			t.Errorf("query = %v", q)
		}
		_, _ = w.Write([]byte(`{"Title":"Inception","Director":"Christopher Nolan","imdbRating":"8.8","Plot":"N/A","Genre":"Action, Sci-Fi","Response":"True"}`))
	}))
	defer server.Close()

	c := NewClient(Config{APIKey: "k", BaseURL: server.URL + "/", Timeout: time.Second}, nil)
	title, err := c.Lookup(context.Background(), "tt1375666")
	if err != nil {
		t.Fatalf("Lookup() error: %v", err)
	}
	if got := title.DirectorName(); got != "Christopher Nolan" {
		t.Errorf("DirectorName() = %q", got)
	}
	if got := title.Rating(); got != "8.8" {
		t.Errorf("Rating() = %q", got)
	}
	if got := title.PlotText(); got != "" {
		t.Errorf("PlotText() = %q, want empty for N/A", got)
	}
	if got := title.GenreText(); got != "Action, Sci-Fi" {
		t.Errorf("GenreText() = %q", got)
	}
}

func TestLookupResponseFalse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"Response":"False","Error":"Incorrect IMDb ID."}`))
	}))
	defer server.Close()

	c := NewClient(Config{APIKey: "k", BaseURL: server.URL, Timeout: time.Second}, nil)
	if _, err := c.Lookup(context.Background(), "tt0"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Lookup() error = %v, want ErrNotFound", err)
	}
}

func TestLookupDisabledMakesNoCall(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	tests := []struct {
		name   string
		apiKey string
		imdbID string
	}{
		{"no key", "", "tt1"},
		{"no imdb id", "k", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClient(Config{APIKey: tt.apiKey, BaseURL: server.URL, Timeout: time.Second}, nil)
			if _, err := c.Lookup(context.Background(), tt.imdbID); !errors.Is(err, ErrDisabled) {
				t.Errorf("Lookup() error = %v, want ErrDisabled", err)
			}
		})
	}
	if calls.Load() != 0 {
		t.Errorf("server called %d times, want 0", calls.Load())
	}
}
