// Screenpick - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/screenpick

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/tomtom215/screenpick/internal/logging"
	"github.com/tomtom215/screenpick/internal/models"
)

// Reload rebuilds the snapshot from the configured data files.
// The previous snapshot keeps serving if the reload fails.
//
// @Summary Reload data
// @Description Re-imports the CSV files and swaps in a new snapshot. Fails fast while the reload circuit breaker is open.
// @Tags Admin
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.ReloadResult}
// @Failure 500 {object} models.APIResponse "Reload failed, previous snapshot still serving"
// @Failure 503 {object} models.APIResponse "Reload unavailable or circuit open"
// @Router /admin/reload [post]
func (h *Handler) Reload(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if h.reloader == nil {
		respondError(w, http.StatusServiceUnavailable, CodeReloadUnavailable, "reload is not configured", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.config.ReloadTimeout)
	defer cancel()

	logging.Ctx(ctx).Info().Msg("Admin reload requested")

	if err := h.reloader.ReloadNow(ctx); err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			respondAPIError(w, http.StatusServiceUnavailable, &models.APIError{
				Code:    CodeReloadUnavailable,
				Message: "reload circuit is open, retry later",
				Details: map[string]interface{}{"breaker_state": h.reloader.BreakerState()},
			}, err)
			return
		}
		respondAPIError(w, http.StatusInternalServerError, &models.APIError{
			Code:    CodeReloadFailed,
			Message: "reload failed, previous snapshot is still serving",
			Details: map[string]interface{}{"breaker_state": h.reloader.BreakerState()},
		}, err)
		return
	}

	result := models.ReloadResult{
		DurationMS: time.Since(start).Milliseconds(),
		Breaker:    h.reloader.BreakerState(),
	}
	if snap := h.engine.Snapshot(); snap != nil {
		result.SnapshotVersion = snap.Version
		result.Movies = snap.Catalog.Len()
		result.Ratings = snap.Ratings.Len()
		result.Users = len(snap.Ratings.UserIDs())
		result.LoadedAt = snap.LoadedAt
	}
	respondSuccess(w, r, result, start)
}
