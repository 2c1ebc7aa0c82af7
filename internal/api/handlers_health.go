// Anchorr - Media Request and Notification Bridge for Discord
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/anchorr

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/anchorr/internal/models"
)

// pingTimeout bounds the store check of the readiness probe.
const pingTimeout = 2 * time.Second

const (
	componentUp   = "up"
	componentDown = "down"
)

// Health reports component status without failing the request.
// GET /api/v1/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status, _ := h.healthStatus(r.Context())
	respondSuccess(w, http.StatusOK, status, start)
}

// HealthLive handles liveness probe requests (Kubernetes-style)
// Returns 200 OK if the process is alive, regardless of dependencies
// GET /api/v1/health/live
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	}, time.Now())
}

// HealthReady returns 200 only when the guild store answers and the Discord
// gateway is connected, 503 otherwise.
// GET /api/v1/health/ready
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status, ready := h.healthStatus(r.Context())
	if !ready {
		respondJSON(w, http.StatusServiceUnavailable, &models.APIResponse{
			Status:   "error",
			Data:     status,
			Metadata: models.Metadata{Timestamp: time.Now().UTC()},
			Error:    &models.APIError{Code: codeNotReady, Message: "Service is not ready"},
		})
		return
	}
	respondSuccess(w, http.StatusOK, status, start)
}

func (h *Handler) healthStatus(ctx context.Context) (models.HealthStatus, bool) {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	components := map[string]string{"store": componentUp}
	ready := true
	if h.guilds == nil || h.guilds.Ping(ctx) != nil {
		components["store"] = componentDown
		ready = false
	}
	if h.gateway != nil {
		components["discord"] = componentUp
		if !h.gateway.Connected() {
			components["discord"] = componentDown
			ready = false
		}
	}

	status := models.HealthStatus{
		Status:     "healthy",
		Version:    h.version,
		Uptime:     time.Since(h.startTime).Seconds(),
		Components: components,
	}
	if h.ingester != nil {
		status.PendingNotifs = h.ingester.Pending()
	}
	if !ready {
		status.Status = "degraded"
	}
	return status, ready
}
