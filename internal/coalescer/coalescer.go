// Anchorr - Media Request and Notification Bridge for Discord
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/anchorr

/*
Package coalescer collapses bursts of Jellyfin "item added" events into one
notification per movie or series.

Events are keyed by guild and grouping id (series id, else item id). Each
event for a key replaces the stored payload and restarts the quiet period,
so only the last event of a burst is published. When the quiet period
passes without a new event, the entry is removed from the table and handed
to the Publisher on the timer goroutine.

Every scheduled timer carries a generation number. A callback whose
generation no longer matches the table entry lost a race with a superseding
event and returns without doing anything.

Pending entries live only in memory and are dropped on shutdown.
*/
package coalescer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/anchorr/internal/logging"
	"github.com/tomtom215/anchorr/internal/metrics"
	"github.com/tomtom215/anchorr/internal/models"
)

// DefaultQuietPeriod is the delay after the last event for a key.
const DefaultQuietPeriod = 10 * time.Second

// defaultDrainTimeout bounds how long Stop waits for in-flight publishes.
const defaultDrainTimeout = 30 * time.Second

// Decision is the outcome of Ingest.
type Decision string

const (
	DecisionIgnoredType  Decision = "ignored_type"
	DecisionIgnoredItem  Decision = "ignored_item"
	DecisionUnconfigured Decision = "unconfigured"
	DecisionScheduled    Decision = "scheduled"
	DecisionSuperseded   Decision = "superseded"
	DecisionStopped      Decision = "stopped"
)

// Accepted reports whether the event now has a timer.
func (d Decision) Accepted() bool {
	return d == DecisionScheduled || d == DecisionSuperseded
}

// Key identifies one coalescing unit.
type Key struct {
	GuildID    string
	GroupingID string
}

func (k Key) String() string {
	return k.GuildID + "/" + k.GroupingID
}

// Event is one webhook delivery together with the guild configuration read
// when it arrived.
type Event struct {
	GuildID string
	Config  *models.GuildConfig
	Item    *models.JellyfinItemAdded
}

// Publisher delivers a coalesced notification.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// Config configures a Coalescer.
type Config struct {
	QuietPeriod  time.Duration
	DrainTimeout time.Duration
	Clock        Clock // nil uses the wall clock
}

type pending struct {
	event       Event
	timer       Timer
	generation  uint64
	scheduledAt time.Time
}

// Coalescer owns the key to pending-notification table.
type Coalescer struct {
	quiet     time.Duration
	drain     time.Duration
	clock     Clock
	publisher Publisher
	logger    zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu         sync.Mutex
	pending    map[Key]*pending
	generation uint64
	stopped    bool
	inflight   sync.WaitGroup
}

// New creates a Coalescer.
func New(cfg Config, publisher Publisher) *Coalescer {
	if cfg.QuietPeriod <= 0 {
		cfg.QuietPeriod = DefaultQuietPeriod
	}
	if cfg.DrainTimeout <= 0 {
		cfg.DrainTimeout = defaultDrainTimeout
	}
	if cfg.Clock == nil {
		cfg.Clock = realClock{}
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Coalescer{
		quiet:     cfg.QuietPeriod,
		drain:     cfg.DrainTimeout,
		clock:     cfg.Clock,
		publisher: publisher,
		logger:    logging.WithComponent("coalescer"),
		ctx:       ctx,
		cancel:    cancel,
		pending:   make(map[Key]*pending),
	}
}

// Ingest classifies ev and, when it qualifies, schedules or reschedules the
// notification for its key. It never blocks on I/O.
func (c *Coalescer) Ingest(ev Event) Decision {
	decision := c.ingest(ev)
	metrics.RecordWebhookDecision(string(decision))
	return decision
}

func (c *Coalescer) ingest(ev Event) Decision {
	item := ev.Item
	if item == nil || !item.IsItemAdded() {
		return DecisionIgnoredType
	}
	if !item.IsTrackedItemType() {
		return DecisionIgnoredItem
	}
	if !ev.Config.NotificationsConfigured() {
		return DecisionUnconfigured
	}

	key := Key{GuildID: ev.GuildID, GroupingID: item.GroupingID()}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped {
		return DecisionStopped
	}

	decision := DecisionScheduled
	if prev, ok := c.pending[key]; ok {
		prev.timer.Stop()
		decision = DecisionSuperseded
	}

	c.generation++
	gen := c.generation
	c.pending[key] = &pending{
		event:       ev,
		generation:  gen,
		scheduledAt: c.clock.Now(),
		timer:       c.clock.AfterFunc(c.quiet, func() { c.fire(key, gen) }),
	}
	metrics.PendingNotifications.Set(float64(len(c.pending)))

	c.logger.Debug().
		Str("key", key.String()).
		Str("decision", string(decision)).
		Str("title", logging.Sanitize(item.Title())).
		Msg("Notification scheduled")

	return decision
}

// fire runs on the timer goroutine.
func (c *Coalescer) fire(key Key, gen uint64) {
	c.mu.Lock()
	p, ok := c.pending[key]
	if !ok || p.generation != gen || c.stopped {
		c.mu.Unlock()
		return
	}
	delete(c.pending, key)
	metrics.PendingNotifications.Set(float64(len(c.pending)))
	c.inflight.Add(1)
	c.mu.Unlock()

	defer c.inflight.Done()
	metrics.NotificationsFired.Inc()
	c.publish(key, p)
}

// publish never lets an error or panic escape the timer goroutine.
func (c *Coalescer) publish(key Key, p *pending) {
	ctx := logging.ContextWithGuildID(logging.ContextWithNewCorrelationID(c.ctx), key.GuildID)

	defer func() {
		if r := recover(); r != nil {
			metrics.NotificationsPublished.WithLabelValues("panic").Inc()
			logging.Ctx(ctx).Error().
				Str("key", key.String()).
				Str("panic", fmt.Sprint(r)).
				Msg("Recovered from panic while publishing notification")
		}
	}()

	if err := c.publisher.Publish(ctx, p.event); err != nil {
		logging.Ctx(ctx).Error().
			Err(err).
			Str("key", key.String()).
			Str("title", logging.Sanitize(p.event.Item.Title())).
			Msg("Failed to publish notification")
		return
	}

	logging.Ctx(ctx).Info().
		Str("key", key.String()).
		Str("title", logging.Sanitize(p.event.Item.Title())).
		Dur("since_first_scheduled", c.clock.Now().Sub(p.scheduledAt)).
		Msg("Notification published")
}

// Pending returns the number of scheduled notifications.
func (c *Coalescer) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// Serve blocks until ctx is done, then stops the coalescer. It implements
// suture.Service.
func (c *Coalescer) Serve(ctx context.Context) error {
	<-ctx.Done()
	c.Stop()
	return ctx.Err()
}

// Stop cancels all pending timers, waits up to the drain timeout for
// in-flight publishes and then cancels them. It is idempotent.
func (c *Coalescer) Stop() {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	c.stopped = true
	dropped := len(c.pending)
	for key, p := range c.pending {
		p.timer.Stop()
		delete(c.pending, key)
	}
	metrics.PendingNotifications.Set(0)
	c.mu.Unlock()

	if dropped > 0 {
		c.logger.Warn().Int("dropped", dropped).Msg("Dropped pending notifications on shutdown")
	}

	done := make(chan struct{})
	go func() {
		c.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(c.drain):
		c.logger.Warn().Dur("timeout", c.drain).Msg("Timed out waiting for in-flight notifications")
	}
	c.cancel()
}

// String implements fmt.Stringer for suture logs.
func (c *Coalescer) String() string {
	return "notification-coalescer"
}
