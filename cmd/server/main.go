// Anchorr - Media Request and Notification Bridge for Discord
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/anchorr

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/tomtom215/anchorr/internal/api"
	"github.com/tomtom215/anchorr/internal/auth"
	"github.com/tomtom215/anchorr/internal/coalescer"
	"github.com/tomtom215/anchorr/internal/config"
	"github.com/tomtom215/anchorr/internal/enrichment"
	"github.com/tomtom215/anchorr/internal/guildstore"
	"github.com/tomtom215/anchorr/internal/interaction"
	"github.com/tomtom215/anchorr/internal/jellyfin"
	"github.com/tomtom215/anchorr/internal/jellyseerr"
	"github.com/tomtom215/anchorr/internal/logging"
	"github.com/tomtom215/anchorr/internal/notify"
	"github.com/tomtom215/anchorr/internal/omdb"
	"github.com/tomtom215/anchorr/internal/supervisor"
	"github.com/tomtom215/anchorr/internal/supervisor/services"
	"github.com/tomtom215/anchorr/internal/tmdb"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// searchCacheEntries bounds the TMDB autocomplete cache.
const searchCacheEntries = 1000

//nolint:gocyclo // sequential wiring
func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
		Output: os.Stderr,
	})

	logging.Info().
		Str("version", version).
		Bool("store_in_memory", cfg.Store.InMemory).
		Dur("quiet_period", cfg.Notifications.QuietPeriod).
		Bool("omdb_enabled", cfg.OMDb.APIKey != "").
		Bool("public_url_set", cfg.Discord.PublicURL != "").
		Msg("Starting Anchorr")

	// === STORAGE ===
	store, err := guildstore.Open(guildstore.Config{Path: cfg.Store.Path, InMemory: cfg.Store.InMemory})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open guild store")
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing guild store")
		}
	}()

	// === UPSTREAM CLIENTS ===
	tmdbClient := tmdb.NewClient(tmdb.Config{
		APIKey:  cfg.TMDB.APIKey,
		BaseURL: cfg.TMDB.BaseURL,
		Timeout: cfg.TMDB.Timeout,
	}, nil)

	var searcher tmdb.Searcher = tmdbClient
	if cfg.TMDB.SearchCacheTTL > 0 {
		cached := tmdb.NewCachedSearcher(tmdbClient, cfg.TMDB.SearchCacheTTL, searchCacheEntries)
		defer cached.Close()
		searcher = cached
	}

	var ratings omdb.Looker
	if omdbClient := omdb.NewClient(omdb.Config{
		APIKey:  cfg.OMDb.APIKey,
		BaseURL: cfg.OMDb.BaseURL,
		Timeout: cfg.OMDb.Timeout,
	}, nil); omdbClient.Enabled() {
		ratings = omdbClient
	} else {
		logging.Info().Msg("OMDB_API_KEY not set, IMDb ratings disabled")
	}

	jellyseerrClient := jellyseerr.NewClient(cfg.Jellyseerr.Timeout, nil)
	jellyfinClient := jellyfin.NewClient(cfg.Jellyfin.Timeout, nil)

	pipeline := enrichment.NewPipeline(tmdbClient, ratings, jellyseerrClient)

	// === DISCORD ===
	session, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create Discord session")
	}
	session.Identify.Intents = discordgo.IntentsGuilds

	tokens, err := auth.NewSetupTokenManager(cfg.Security.SetupTokenSecret, cfg.Security.SetupTokenTTL)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create setup token manager")
	}

	publisher := notify.NewPublisher(notify.Config{
		RatePerSec: cfg.Notifications.SendRate,
		Burst:      cfg.Notifications.SendBurst,
		Timeout:    cfg.Notifications.PublishTimeout,
	}, session, pipeline)

	coal := coalescer.New(coalescer.Config{
		QuietPeriod:  cfg.Notifications.QuietPeriod,
		DrainTimeout: 5 * time.Second,
	}, publisher)

	dispatcher := interaction.NewDispatcher(interaction.Config{
		PublicURL:           cfg.Discord.PublicURL,
		PipelineTimeout:     cfg.Interactions.PipelineTimeout,
		AutocompleteTimeout: cfg.Interactions.AutocompleteTimeout,
		AutocompleteLimit:   cfg.Interactions.AutocompleteLimit,
	}, session, store, searcher, pipeline, tokens)

	gateway := services.NewDiscordGatewayService(session, dispatcher, services.GatewayConfig{
		ApplicationID:    cfg.Discord.ApplicationID,
		RegisterCommands: cfg.Discord.RegisterCommands,
	})

	// === HTTP ===
	handler := api.NewHandler(api.HandlerDeps{
		Guilds:     store,
		Ingester:   coal,
		Jellyseerr: jellyseerrClient,
		Jellyfin:   jellyfinClient,
		Gateway:    gateway,
		Version:    version,
	})
	router := api.NewRouter(handler, api.NewChiMiddlewareFromConfig(cfg.Security), tokens)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	if cfg.Discord.PublicURL == "" {
		logging.Warn().Msg("PUBLIC_BOT_URL not set, /setup cannot issue dashboard links")
	} else {
		logging.Info().
			Str("webhook_url", strings.TrimRight(cfg.Discord.PublicURL, "/")+"/jellyfin-webhook/{guildId}").
			Msg("Point the Jellyfin webhook plugin at this address")
	}

	// === SUPERVISOR TREE ===
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddDataService(services.NewStoreGCService(store, cfg.Store.GCInterval))
	tree.AddMessagingService(gateway)
	tree.AddMessagingService(coal)
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	var treeErr error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
		treeErr = <-errCh
	case treeErr = <-errCh:
	}
	if treeErr != nil && !errors.Is(treeErr, context.Canceled) {
		logging.Error().Err(treeErr).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Anchorr stopped")
}
