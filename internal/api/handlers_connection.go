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

	"github.com/tomtom215/anchorr/internal/jellyfin"
	"github.com/tomtom215/anchorr/internal/jellyseerr"
	"github.com/tomtom215/anchorr/internal/logging"
	"github.com/tomtom215/anchorr/internal/models"
)

// msgJellyfinInvalid is shown when a server answers without a version.
const msgJellyfinInvalid = "Invalid response from Jellyfin."

// TestConnection probes a Jellyseerr or Jellyfin server with the settings
// the user is about to save.
// POST /api/v1/guilds/{guildId}/test-connection
func (h *Handler) TestConnection(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.ConnectionTestRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, decodeStatus(err), codeInvalidBody, "Request body must be a JSON connection test", nil)
		return
	}
	req.URL = strings.TrimRight(strings.TrimSpace(req.URL), "/")
	req.APIKey = strings.TrimSpace(req.APIKey)

	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	var (
		result models.ConnectionTestResult
		err    error
	)
	switch req.Type {
	case models.ConnectionTestJellyseerr:
		var status *jellyseerr.Status
		status, err = h.jellyseerr.TestConnection(r.Context(), req.URL, req.APIKey)
		if err == nil {
			result = models.ConnectionTestResult{Message: status.Message(), Version: status.Version}
		} else {
			err = upstreamFailure{message: jellyseerr.ErrorMessage(err), cause: err}
		}
	case models.ConnectionTestJellyfin:
		var info *jellyfin.PublicSystemInfo
		info, err = h.jellyfin.PublicSystemInfo(r.Context(), req.URL)
		if err == nil {
			result = models.ConnectionTestResult{Message: info.Message(), Version: info.Version}
		} else if errors.Is(err, jellyfin.ErrInvalidResponse) {
			err = upstreamFailure{message: msgJellyfinInvalid, cause: err}
		} else {
			err = upstreamFailure{message: err.Error(), cause: err}
		}
	}

	if err != nil {
		var uf upstreamFailure
		errors.As(err, &uf)
		logging.Ctx(r.Context()).Warn().
			Str("type", string(req.Type)).
			Err(uf.cause).
			Msg("Connection test failed")
		respondError(w, http.StatusBadGateway, codeUpstream, uf.message, nil)
		return
	}

	respondSuccess(w, http.StatusOK, result, start)
}

// upstreamFailure pairs the message shown to the user with the cause that
// is logged.
type upstreamFailure struct {
	message string
	cause   error
}

func (u upstreamFailure) Error() string { return u.message }

func (u upstreamFailure) Unwrap() error { return u.cause }
