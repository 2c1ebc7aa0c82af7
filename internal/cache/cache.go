// Anchorr - Media Request and Notification Bridge for Discord
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/anchorr

// Package cache provides a small thread-safe TTL cache whose hits, misses,
// size and evictions are exported to Prometheus under a cache_type label.
package cache

import (
	"sync"
	"time"

	"github.com/tomtom215/anchorr/internal/metrics"
)

// DefaultCleanupInterval is how often expired entries are swept.
const DefaultCleanupInterval = time.Minute

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Cache is a TTL cache. When maxEntries is reached, Set drops expired
// entries first and then the entry closest to expiry.
type Cache[V any] struct {
	name       string
	ttl        time.Duration
	maxEntries int
	now        func() time.Time

	mu      sync.RWMutex
	entries map[string]entry[V]
	stats   Stats

	stop     chan struct{}
	stopOnce sync.Once
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Hits        int64
	Misses      int64
	Evictions   int64
	TotalKeys   int64
	LastCleanup time.Time
}

// New creates a cache and starts its cleanup goroutine. Call Close to stop it.
// maxEntries <= 0 means unbounded.
func New[V any](name string, ttl time.Duration, maxEntries int) *Cache[V] {
	c := newCache[V](name, ttl, maxEntries, time.Now)
	go c.cleanupLoop(DefaultCleanupInterval)
	return c
}

func newCache[V any](name string, ttl time.Duration, maxEntries int, now func() time.Time) *Cache[V] {
	return &Cache[V]{
		name:       name,
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        now,
		entries:    make(map[string]entry[V]),
		stats:      Stats{LastCleanup: now()},
		stop:       make(chan struct{}),
	}
}

// Get returns the value for key when present and not expired.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if ok && c.now().Before(e.expiresAt) {
		c.mu.Lock()
		c.stats.Hits++
		c.mu.Unlock()
		metrics.CacheHits.WithLabelValues(c.name).Inc()
		return e.value, true
	}

	c.mu.Lock()
	if ok {
		// Re-check: a concurrent Set may have refreshed it.
		if cur, still := c.entries[key]; still && !c.now().Before(cur.expiresAt) {
			delete(c.entries, key)
			c.evicted(1)
		}
	}
	c.stats.Misses++
	c.mu.Unlock()
	metrics.CacheMisses.WithLabelValues(c.name).Inc()

	var zero V
	return zero, false
}

// Set stores value under key with the default TTL.
func (c *Cache[V]) Set(key string, value V) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores value under key with a custom TTL.
func (c *Cache[V]) SetWithTTL(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		c.makeRoomLocked()
	}
	c.entries[key] = entry[V]{value: value, expiresAt: c.now().Add(ttl)}
	c.sizeChangedLocked()
}

// Delete removes key.
func (c *Cache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; ok {
		delete(c.entries, key)
		c.evicted(1)
	}
}

// Len returns the number of stored entries, including expired ones not yet swept.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// GetStats returns a copy of the counters.
func (c *Cache[V]) GetStats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}

// HitRate returns hits as a percentage of lookups.
func (c *Cache[V]) HitRate() float64 {
	s := c.GetStats()
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

// Close stops the cleanup goroutine. It is safe to call more than once.
func (c *Cache[V]) Close() {
	c.stopOnce.Do(func() { close(c.stop) })
}

func (c *Cache[V]) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

func (c *Cache[V]) cleanup() {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	c.evicted(removed)
	c.stats.LastCleanup = now
}

func (c *Cache[V]) makeRoomLocked() {
	now := c.now()
	removed := 0
	var oldestKey string
	var oldest time.Time
	for key, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, key)
			removed++
			continue
		}
		if oldestKey == "" || e.expiresAt.Before(oldest) {
			oldestKey, oldest = key, e.expiresAt
		}
	}
	if removed == 0 && oldestKey != "" {
		delete(c.entries, oldestKey)
		removed = 1
	}
	c.evicted(removed)
}

// evicted must be called with mu held.
func (c *Cache[V]) evicted(n int) {
	if n == 0 {
		return
	}
	c.stats.Evictions += int64(n)
	metrics.CacheEvictions.WithLabelValues(c.name).Add(float64(n))
	c.sizeChangedLocked()
}

func (c *Cache[V]) sizeChangedLocked() {
	c.stats.TotalKeys = int64(len(c.entries))
	metrics.CacheSize.WithLabelValues(c.name).Set(float64(len(c.entries)))
}
