// Anchorr - Media Request and Notification Bridge for Discord
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/anchorr

// Package notify delivers coalesced "new item added" notifications to the
// guild's Discord channel. It is the coalescer's Publisher.
package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/time/rate"

	"github.com/tomtom215/anchorr/internal/coalescer"
	"github.com/tomtom215/anchorr/internal/enrichment"
	"github.com/tomtom215/anchorr/internal/metrics"
	"github.com/tomtom215/anchorr/internal/models"
	"github.com/tomtom215/anchorr/internal/presentation"
)

// ErrNoChannel is returned when the snapshot has no notification channel.
var ErrNoChannel = errors.New("notification channel not configured")

// ChannelSender is satisfied by *discordgo.Session.
type ChannelSender interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Enricher is satisfied by *enrichment.Pipeline.
type Enricher interface {
	Notification(ctx context.Context, event *models.JellyfinItemAdded) *enrichment.Notification
}

// Config controls send pacing.
type Config struct {
	RatePerSec float64
	Burst      int
	Timeout    time.Duration
}

// Publisher renders and sends notifications.
type Publisher struct {
	sender   ChannelSender
	enricher Enricher
	limiter  *rate.Limiter
	timeout  time.Duration
}

var _ coalescer.Publisher = (*Publisher)(nil)

// NewPublisher creates a Publisher.
func NewPublisher(cfg Config, sender ChannelSender, enricher Enricher) *Publisher {
	if cfg.RatePerSec <= 0 {
		cfg.RatePerSec = 5
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 5
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Publisher{
		sender:   sender,
		enricher: enricher,
		// Token bucket across all guilds, below Discord's global limit.
		limiter: rate.NewLimiter(rate.Limit(cfg.RatePerSec), cfg.Burst),
		timeout: cfg.Timeout,
	}
}

// Publish enriches ev, renders it and sends it. No retry is attempted.
func (p *Publisher) Publish(ctx context.Context, ev coalescer.Event) (err error) {
	start := time.Now()
	defer func() {
		result := "success"
		if err != nil {
			result = "failure"
		}
		metrics.RecordNotificationPublish(result, time.Since(start))
	}()

	if !ev.Config.NotificationsConfigured() {
		return ErrNoChannel
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	n := p.enricher.Notification(ctx, ev.Item)
	msg := &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{presentation.NotificationEmbed(n, ev.Config)},
		Components: presentation.NotificationButtons(ev.Item.ProviderImdb, ev.Item.WatchURL(ev.Config.JellyfinServerURL)),
	}

	if err := p.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("waiting for send slot: %w", err)
	}

	if _, err := p.sender.ChannelMessageSendComplex(ev.Config.NotificationChannelID, msg, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("send to channel %s: %w", ev.Config.NotificationChannelID, err)
	}
	return nil
}
