// Anchorr - Media Request and Notification Bridge for Discord
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/anchorr

package guildstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tomtom215/anchorr/internal/models"
)

func openTestStore(t *testing.T) *BadgerStore {
	t.Helper()
	s, err := Open(Config{InMemory: true})
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSetGetDelete(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	if _, err := s.Get(ctx, "123"); !errors.Is(err, ErrGuildNotFound) {
		t.Fatalf("Get() on empty store error = %v, want ErrGuildNotFound", err)
	}

	cfg := &models.GuildConfig{
		GuildID:               "123",
		JellyseerrURL:         "https://requests.example.com/api/v1",
		JellyseerrAPIKey:      "key",
		NotificationChannelID: "456",
		EphemeralResponses:    true,
	}
	if err := s.Set(ctx, cfg); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if !cfg.UpdatedAt.Equal(fixed) {
		t.Errorf("UpdatedAt = %v, want %v", cfg.UpdatedAt, fixed)
	}

	got, err := s.Get(ctx, "123")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.JellyseerrAPIKey != "key" || got.NotificationChannelID != "456" || !got.EphemeralResponses {
		t.Errorf("Get() = %+v", got)
	}

	got.JellyseerrAPIKey = "mutated"
	again, _ := s.Get(ctx, "123")
	if again.JellyseerrAPIKey != "key" {
		t.Error("Get() returned shared state")
	}

	n, err := s.Count(ctx)
	if err != nil || n != 1 {
		t.Errorf("Count() = %d, %v, want 1", n, err)
	}

	if err := s.Delete(ctx, "123"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if err := s.Delete(ctx, "123"); !errors.Is(err, ErrGuildNotFound) {
		t.Errorf("second Delete() error = %v, want ErrGuildNotFound", err)
	}
}

func TestSetRequiresGuildID(t *testing.T) {
	s := openTestStore(t)
	if err := s.Set(context.Background(), &models.GuildConfig{}); err == nil {
		t.Error("Set() without guild id error = nil")
	}
}

func TestClosedStore(t *testing.T) {
	s, err := Open(Config{InMemory: true})
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() error: %v", err)
	}
	if _, err := s.Get(context.Background(), "1"); !errors.Is(err, ErrClosed) {
		t.Errorf("Get() after Close error = %v, want ErrClosed", err)
	}
	if err := s.RunGC(); !errors.Is(err, ErrClosed) {
		t.Errorf("RunGC() after Close error = %v, want ErrClosed", err)
	}
}

func TestCanceledContext(t *testing.T) {
	s := openTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Get(ctx, "1"); !errors.Is(err, context.Canceled) {
		t.Errorf("Get() error = %v, want context.Canceled", err)
	}
}

func TestOnDiskReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := Open(Config{Path: dir})
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if err := s.Set(ctx, &models.GuildConfig{GuildID: "9", ColorSearch: "#112233"}); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if err := s.RunGC(); err != nil {
		t.Errorf("RunGC() error: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	s, err = Open(Config{Path: dir})
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	defer func() { _ = s.Close() }()
	got, err := s.Get(ctx, "9")
	if err != nil {
		t.Fatalf("Get() after reopen error: %v", err)
	}
	if got.SearchColor() != "#112233" {
		t.Errorf("SearchColor() = %q", got.SearchColor())
	}
}
