// Anchorr - Media Request and Notification Bridge for Discord
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/anchorr

package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/anchorr/internal/guildstore"
	"github.com/tomtom215/anchorr/internal/logging"
	"github.com/tomtom215/anchorr/internal/models"
)

const msgGuildNotFound = "This server has not been configured yet."

// GetGuildConfig returns the guild's settings with the API key redacted.
// GET /api/v1/guilds/{guildId}/config
func (h *Handler) GetGuildConfig(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	guildID := chi.URLParam(r, "guildId")

	cfg, err := h.guilds.Get(r.Context(), guildID)
	if errors.Is(err, guildstore.ErrGuildNotFound) {
		respondError(w, http.StatusNotFound, codeNotFound, msgGuildNotFound, nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, codeStorage, "Failed to load configuration", err)
		return
	}

	respondSuccess(w, http.StatusOK, cfg.Redacted(), start)
}

// PutGuildConfig validates and saves the guild's settings. An empty or
// redacted jellyseerr_api_key keeps the stored key, so a dashboard can
// round-trip the GET response unchanged.
// PUT /api/v1/guilds/{guildId}/config
func (h *Handler) PutGuildConfig(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	guildID := chi.URLParam(r, "guildId")

	var req models.GuildConfig
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, decodeStatus(err), codeInvalidBody, "Request body must be a JSON guild configuration", nil)
		return
	}
	if req.GuildID != "" && req.GuildID != guildID {
		respondError(w, http.StatusBadRequest, codeValidation, ErrGuildMismatch.Error(), nil)
		return
	}
	req.GuildID = guildID
	normalizeGuildConfig(&req)

	if apiErr := validateRequest(&req); apiErr != nil {
		respondJSON(w, http.StatusBadRequest, &models.APIResponse{
			Status:   "error",
			Metadata: models.Metadata{Timestamp: time.Now().UTC()},
			Error:    apiErr,
		})
		return
	}

	if req.JellyseerrAPIKey == "" || req.JellyseerrAPIKey == models.RedactedSecret {
		existing, err := h.guilds.Get(r.Context(), guildID)
		switch {
		case err == nil:
			req.JellyseerrAPIKey = existing.JellyseerrAPIKey
		case errors.Is(err, guildstore.ErrGuildNotFound):
			req.JellyseerrAPIKey = ""
		default:
			respondError(w, http.StatusInternalServerError, codeStorage, "Failed to load configuration", err)
			return
		}
	}

	if err := h.guilds.Set(r.Context(), &req); err != nil {
		respondError(w, http.StatusInternalServerError, codeStorage, "Failed to save configuration", err)
		return
	}

	logging.Ctx(logging.ContextWithGuildID(r.Context(), guildID)).Info().
		Bool("requests_configured", req.RequestsConfigured()).
		Bool("notifications_configured", req.NotificationsConfigured()).
		Msg("Guild configuration saved")

	respondSuccess(w, http.StatusOK, req.Redacted(), start)
}

// DeleteGuildConfig forgets a guild.
// DELETE /api/v1/guilds/{guildId}/config
func (h *Handler) DeleteGuildConfig(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	guildID := chi.URLParam(r, "guildId")

	err := h.guilds.Delete(r.Context(), guildID)
	if errors.Is(err, guildstore.ErrGuildNotFound) {
		respondError(w, http.StatusNotFound, codeNotFound, msgGuildNotFound, nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, codeStorage, "Failed to delete configuration", err)
		return
	}

	logging.Ctx(logging.ContextWithGuildID(r.Context(), guildID)).Info().Msg("Guild configuration deleted")
	respondSuccess(w, http.StatusOK, map[string]interface{}{"guild_id": guildID, "deleted": true}, start)
}

// normalizeGuildConfig trims whitespace and trailing slashes users paste
// along with URLs.
func normalizeGuildConfig(c *models.GuildConfig) {
	c.JellyseerrURL = strings.TrimRight(strings.TrimSpace(c.JellyseerrURL), "/")
	c.JellyfinServerURL = strings.TrimRight(strings.TrimSpace(c.JellyfinServerURL), "/")
	c.JellyseerrAPIKey = strings.TrimSpace(c.JellyseerrAPIKey)
	c.NotificationChannelID = strings.TrimSpace(c.NotificationChannelID)
	c.ColorSearch = strings.TrimSpace(c.ColorSearch)
	c.ColorSuccess = strings.TrimSpace(c.ColorSuccess)
	c.ColorNotification = strings.TrimSpace(c.ColorNotification)
}
