// Anchorr - Media Request and Notification Bridge for Discord
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/anchorr

package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/tomtom215/anchorr/internal/interaction"
	"github.com/tomtom215/anchorr/internal/logging"
	"github.com/tomtom215/anchorr/internal/metrics"
)

// GatewaySession is the part of *discordgo.Session the gateway service
// drives.
type GatewaySession interface {
	Open() error
	Close() error
	AddHandler(handler interface{}) func()
	ApplicationCommandBulkOverwrite(appID, guildID string, commands []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
}

// InteractionHandler is satisfied by *interaction.Dispatcher.
type InteractionHandler interface {
	Handle(ctx context.Context, i *discordgo.Interaction) interaction.Outcome
}

// GatewayConfig configures DiscordGatewayService.
type GatewayConfig struct {
	ApplicationID    string
	RegisterCommands bool
	// DrainTimeout bounds how long Serve waits for running interaction
	// handlers after ctx is canceled. Default: 5s
	DrainTimeout time.Duration
}

// DiscordGatewayService holds the Discord gateway connection open and
// feeds interactions to the dispatcher. discordgo runs each event handler
// in its own goroutine, so interactions are handled concurrently.
//
// Open failures are returned so that suture restarts the service with
// backoff. Reconnects after a successful Open are handled by discordgo.
type DiscordGatewayService struct {
	session  GatewaySession
	handler  InteractionHandler
	cfg      GatewayConfig
	commands func() []*discordgo.ApplicationCommand

	connected  atomic.Bool
	registered atomic.Bool
	inflight   sync.WaitGroup
}

// NewDiscordGatewayService creates the gateway service.
func NewDiscordGatewayService(session GatewaySession, handler InteractionHandler, cfg GatewayConfig) *DiscordGatewayService {
	if cfg.DrainTimeout <= 0 {
		cfg.DrainTimeout = 5 * time.Second
	}
	return &DiscordGatewayService{
		session:  session,
		handler:  handler,
		cfg:      cfg,
		commands: interaction.Commands,
	}
}

// Connected reports whether the gateway session is currently up.
func (g *DiscordGatewayService) Connected() bool {
	return g.connected.Load()
}

// Serve implements suture.Service.
func (g *DiscordGatewayService) Serve(ctx context.Context) error {
	logger := logging.WithComponent("gateway")

	// Handlers outlive ctx so their final edits can land while draining.
	handlerCtx, cancelHandlers := context.WithCancel(context.WithoutCancel(ctx))
	defer cancelHandlers()

	removers := []func(){
		g.session.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) {
			g.onReady(r)
		}),
		g.session.AddHandler(func(_ *discordgo.Session, _ *discordgo.Resumed) {
			g.setConnected(true)
			logger.Info().Msg("Discord gateway session resumed")
		}),
		g.session.AddHandler(func(_ *discordgo.Session, _ *discordgo.Disconnect) {
			g.setConnected(false)
			logger.Warn().Msg("Discord gateway disconnected")
		}),
		g.session.AddHandler(func(_ *discordgo.Session, ic *discordgo.InteractionCreate) {
			g.onInteraction(ctx, handlerCtx, ic)
		}),
	}
	defer func() {
		for _, remove := range removers {
			remove()
		}
	}()

	if err := g.session.Open(); err != nil {
		_ = g.session.Close()
		return fmt.Errorf("open discord gateway: %w", err)
	}
	logger.Info().Msg("Discord gateway connection opened")

	<-ctx.Done()

	if err := g.session.Close(); err != nil {
		logger.Warn().Err(err).Msg("Error closing Discord gateway")
	}
	g.setConnected(false)
	g.drain(cancelHandlers)
	return ctx.Err()
}

// String implements fmt.Stringer for suture logs.
func (g *DiscordGatewayService) String() string {
	return "discord-gateway"
}

func (g *DiscordGatewayService) onReady(r *discordgo.Ready) {
	g.setConnected(true)

	event := logging.Info().Int("guilds", len(r.Guilds))
	if r.User != nil {
		event = event.Str("user", r.User.Username)
	}
	event.Msg("Discord gateway ready")

	if !g.cfg.RegisterCommands || g.registered.Load() {
		return
	}
	cmds, err := g.session.ApplicationCommandBulkOverwrite(g.cfg.ApplicationID, "", g.commands())
	if err != nil {
		// Retried on the next Ready.
		logging.Error().Err(err).Msg("Failed to register slash commands")
		return
	}
	g.registered.Store(true)
	logging.Info().Int("commands", len(cmds)).Msg("Registered slash commands")
}

// onInteraction rejects new work once serveCtx is done and runs the handler
// under handlerCtx.
func (g *DiscordGatewayService) onInteraction(serveCtx, handlerCtx context.Context, ic *discordgo.InteractionCreate) {
	if ic == nil || ic.Interaction == nil || serveCtx.Err() != nil {
		return
	}
	g.inflight.Add(1)
	defer g.inflight.Done()
	g.handler.Handle(handlerCtx, ic.Interaction)
}

func (g *DiscordGatewayService) setConnected(up bool) {
	g.connected.Store(up)
	metrics.SetGatewayConnected(up)
}

// drain waits for in-flight handlers and cancels them after DrainTimeout.
func (g *DiscordGatewayService) drain(cancel context.CancelFunc) {
	done := make(chan struct{})
	go func() {
		g.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(g.cfg.DrainTimeout):
		logging.Warn().Dur("timeout", g.cfg.DrainTimeout).Msg("Timed out waiting for interaction handlers")
		cancel()
	}
}
