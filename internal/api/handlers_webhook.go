// Anchorr - Media Request and Notification Bridge for Discord
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/anchorr

package api

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/anchorr/internal/coalescer"
	"github.com/tomtom215/anchorr/internal/guildstore"
	"github.com/tomtom215/anchorr/internal/logging"
	"github.com/tomtom215/anchorr/internal/models"
)

// Plain-text replies of the webhook route. The Jellyfin plugin logs them
// verbatim.
const (
	webhookTypeIgnored  = "OK: Notification type ignored."
	webhookItemIgnored  = "OK: ItemType ignored."
	webhookUnconfigured = "Error: Guild configuration incomplete for notifications."
	webhookDebounced    = "OK: Notification received and debounced."
	webhookBadRequest   = "Bad Request: invalid JSON payload."
	webhookTooLarge     = "Request Entity Too Large"
	webhookInternal     = "Internal Server Error"
)

// JellyfinWebhook ingests one event from the Jellyfin webhook plugin.
// POST /jellyfin-webhook/{guildId}
//
// The reply is sent as soon as the event has been scheduled; enrichment and
// the Discord send happen after the quiet period.
func (h *Handler) JellyfinWebhook(w http.ResponseWriter, r *http.Request) {
	guildID := chi.URLParam(r, "guildId")
	ctx := logging.ContextWithGuildID(r.Context(), guildID)

	defer func() {
		if rec := recover(); rec != nil {
			logging.Ctx(ctx).Error().
				Str("panic", fmt.Sprint(rec)).
				Str("stack", string(debug.Stack())).
				Msg("Recovered from panic in Jellyfin webhook")
			respondText(w, http.StatusInternalServerError, webhookInternal)
		}
	}()

	var item models.JellyfinItemAdded
	if err := decodeJSON(w, r, &item); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("Rejected Jellyfin webhook body")
		if decodeStatus(err) == http.StatusRequestEntityTooLarge {
			respondText(w, http.StatusRequestEntityTooLarge, webhookTooLarge)
			return
		}
		respondText(w, http.StatusBadRequest, webhookBadRequest)
		return
	}

	// Only events that could produce a notification cost a store read.
	var cfg *models.GuildConfig
	if item.IsTracked() {
		var err error
		cfg, err = h.guilds.Get(ctx, guildID)
		if err != nil && !errors.Is(err, guildstore.ErrGuildNotFound) {
			logging.Ctx(ctx).Error().Err(err).Msg("Failed to load guild configuration for webhook")
			respondText(w, http.StatusInternalServerError, webhookInternal)
			return
		}
	}

	decision := h.ingester.Ingest(coalescer.Event{GuildID: guildID, Config: cfg, Item: &item})

	logging.Ctx(ctx).Debug().
		Str("decision", string(decision)).
		Str("notification_type", logging.Sanitize(item.NotificationType)).
		Str("item_type", logging.Sanitize(item.ItemType)).
		Str("item", logging.Sanitize(item.Title())).
		Msg("Jellyfin webhook received")

	status, body := webhookReply(decision)
	respondText(w, status, body)
}

// webhookReply maps an ingest decision to the plugin-facing reply.
func webhookReply(d coalescer.Decision) (int, string) {
	switch d {
	case coalescer.DecisionIgnoredType:
		return http.StatusOK, webhookTypeIgnored
	case coalescer.DecisionIgnoredItem:
		return http.StatusOK, webhookItemIgnored
	case coalescer.DecisionUnconfigured:
		return http.StatusNotFound, webhookUnconfigured
	case coalescer.DecisionScheduled, coalescer.DecisionSuperseded:
		return http.StatusOK, webhookDebounced
	default:
		return http.StatusInternalServerError, webhookInternal
	}
}
