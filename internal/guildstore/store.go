// Anchorr - Media Request and Notification Bridge for Discord
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/anchorr

// Package guildstore persists per-guild configuration in BadgerDB.
//
// Keys are "guild:{guildID}" and values are JSON-encoded
// models.GuildConfig. Readers always receive a private copy, so a config
// captured for a pending notification is unaffected by later edits.
package guildstore

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/anchorr/internal/logging"
	"github.com/tomtom215/anchorr/internal/metrics"
	"github.com/tomtom215/anchorr/internal/models"
)

const prefixGuild = "guild:"

// gcDiscardRatio is passed to RunValueLogGC.
const gcDiscardRatio = 0.5

var (
	// ErrGuildNotFound is returned when a guild has no stored configuration.
	ErrGuildNotFound = errors.New("guild configuration not found")

	// ErrClosed is returned after Close.
	ErrClosed = errors.New("guild store is closed")
)

// Reader resolves a guild's configuration.
type Reader interface {
	Get(ctx context.Context, guildID string) (*models.GuildConfig, error)
}

// Store reads and writes guild configurations.
type Store interface {
	Reader
	Set(ctx context.Context, cfg *models.GuildConfig) error
	Delete(ctx context.Context, guildID string) error
}

var _ Store = (*BadgerStore)(nil)

// Config configures the badger database.
type Config struct {
	Path     string
	InMemory bool
}

// BadgerStore is the badger-backed Store.
type BadgerStore struct {
	db       *badger.DB
	inMemory bool
	closed   atomic.Bool
	now      func() time.Time
}

// Open opens (or creates) the store.
func Open(cfg Config) (*BadgerStore, error) {
	opts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.SyncWrites = true
	// Guild configs are tiny; keep the footprint small.
	opts.MemTableSize = 8 << 20
	opts.ValueLogFileSize = 16 << 20
	opts.BlockCacheSize = 8 << 20
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	logging.Info().
		Str("path", cfg.Path).
		Bool("in_memory", cfg.InMemory).
		Msg("Guild store opened")

	return &BadgerStore{db: db, inMemory: cfg.InMemory, now: time.Now}, nil
}

func guildKey(guildID string) []byte {
	return []byte(prefixGuild + guildID)
}

// Get returns the stored configuration or ErrGuildNotFound.
func (s *BadgerStore) Get(ctx context.Context, guildID string) (cfg *models.GuildConfig, err error) {
	start := time.Now()
	defer func() { s.record("get", start, err) }()

	if err := s.check(ctx); err != nil {
		return nil, err
	}

	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(guildKey(guildID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrGuildNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			cfg = &models.GuildConfig{}
			return json.Unmarshal(val, cfg)
		})
	})
	if err != nil {
		if errors.Is(err, ErrGuildNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get guild %s: %w", guildID, err)
	}
	return cfg, nil
}

// Set replaces the configuration of cfg.GuildID and stamps UpdatedAt.
func (s *BadgerStore) Set(ctx context.Context, cfg *models.GuildConfig) (err error) {
	start := time.Now()
	defer func() { s.record("set", start, err) }()

	if err := s.check(ctx); err != nil {
		return err
	}
	if cfg == nil || cfg.GuildID == "" {
		return errors.New("guild id is required")
	}

	stored := *cfg
	stored.UpdatedAt = s.now().UTC()
	data, err := json.Marshal(&stored)
	if err != nil {
		return fmt.Errorf("marshal guild config: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry(guildKey(cfg.GuildID), data))
	})
	if err != nil {
		return fmt.Errorf("set guild %s: %w", cfg.GuildID, err)
	}
	cfg.UpdatedAt = stored.UpdatedAt
	return nil
}

// Delete removes a guild's configuration. Deleting a missing guild returns
// ErrGuildNotFound.
func (s *BadgerStore) Delete(ctx context.Context, guildID string) (err error) {
	start := time.Now()
	defer func() { s.record("delete", start, err) }()

	if err := s.check(ctx); err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		key := guildKey(guildID)
		if _, err := txn.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrGuildNotFound
			}
			return err
		}
		return txn.Delete(key)
	})
}

// Count returns the number of configured guilds.
func (s *BadgerStore) Count(ctx context.Context) (n int, err error) {
	start := time.Now()
	defer func() { s.record("count", start, err) }()

	if err := s.check(ctx); err != nil {
		return 0, err
	}

	err = s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(prefixGuild)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}

// Ping reports whether the store is usable, for readiness checks.
func (s *BadgerStore) Ping(ctx context.Context) error {
	if err := s.check(ctx); err != nil {
		return err
	}
	if s.db.IsClosed() {
		return ErrClosed
	}
	return nil
}

// RunGC reclaims value log space. It is a no-op for in-memory stores.
func (s *BadgerStore) RunGC() error {
	if s.closed.Load() {
		return ErrClosed
	}
	if s.inMemory {
		return nil
	}
	for {
		err := s.db.RunValueLogGC(gcDiscardRatio)
		if errors.Is(err, badger.ErrNoRewrite) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("run GC: %w", err)
		}
	}
}

// Close closes the database. It is safe to call more than once.
func (s *BadgerStore) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close BadgerDB: %w", err)
	}
	logging.Info().Msg("Guild store closed")
	return nil
}

func (s *BadgerStore) check(ctx context.Context) error {
	if s.closed.Load() {
		return ErrClosed
	}
	return ctx.Err()
}

// record reports the operation to metrics. A miss is not an error.
func (s *BadgerStore) record(op string, start time.Time, err error) {
	if errors.Is(err, ErrGuildNotFound) {
		err = nil
	}
	metrics.RecordStoreOperation(op, time.Since(start), err)
}
