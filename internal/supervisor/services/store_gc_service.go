// Anchorr - Media Request and Notification Bridge for Discord
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/anchorr

package services

import (
	"context"
	"time"

	"github.com/tomtom215/anchorr/internal/logging"
)

// GarbageCollector is satisfied by *guildstore.BadgerStore.
type GarbageCollector interface {
	RunGC() error
}

// StoreGCService periodically reclaims value log space in the guild store.
// GC errors are logged and do not stop the service.
type StoreGCService struct {
	store    GarbageCollector
	interval time.Duration
}

// NewStoreGCService creates the service. A non-positive interval becomes
// 10 minutes.
func NewStoreGCService(store GarbageCollector, interval time.Duration) *StoreGCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &StoreGCService{store: store, interval: interval}
}

// Serve implements suture.Service.
func (s *StoreGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			start := time.Now()
			if err := s.store.RunGC(); err != nil {
				logging.Warn().Err(err).Msg("Guild store GC failed")
				continue
			}
			logging.Debug().Dur("duration", time.Since(start)).Msg("Guild store GC complete")
		}
	}
}

// String implements fmt.Stringer for suture logs.
func (s *StoreGCService) String() string {
	return "guild-store-gc"
}
