// Anchorr - Media Request and Notification Bridge for Discord
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/anchorr

package tmdb

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/anchorr/internal/cache"
)

// CachedSearcher wraps a Searcher for autocomplete. Concurrent identical
// queries share one upstream call and results are reused for the TTL.
type CachedSearcher struct {
	next  Searcher
	cache *cache.Cache[[]SearchResult]
	group singleflight.Group
}

var _ Searcher = (*CachedSearcher)(nil)

// NewCachedSearcher caches results for ttl, holding at most maxEntries queries.
func NewCachedSearcher(next Searcher, ttl time.Duration, maxEntries int) *CachedSearcher {
	return &CachedSearcher{
		next:  next,
		cache: cache.New[[]SearchResult]("tmdb_search", ttl, maxEntries),
	}
}

// Search returns cached results for the normalized query or calls through.
// Failures are not cached.
func (s *CachedSearcher) Search(ctx context.Context, query string) ([]SearchResult, error) {
	key := normalizeQuery(query)
	if results, ok := s.cache.Get(key); ok {
		return results, nil
	}

	ch := s.group.DoChan(key, func() (interface{}, error) {
		// The shared call outlives any single caller's deadline; the
		// upstream client applies its own timeout.
		results, err := s.next.Search(context.WithoutCancel(ctx), query)
		if err != nil {
			return nil, err
		}
		s.cache.Set(key, results)
		return results, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		results, _ := res.Val.([]SearchResult)
		return results, nil
	}
}

// Close releases the cache's cleanup goroutine.
func (s *CachedSearcher) Close() {
	s.cache.Close()
}

func normalizeQuery(q string) string {
	return strings.ToLower(strings.Join(strings.Fields(q), " "))
}
