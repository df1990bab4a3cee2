// Screenpick - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/screenpick

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/screenpick/internal/models"
)

const pingTimeout = 2 * time.Second

func (h *Handler) databaseConnected(ctx context.Context) bool {
	if h.db == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return h.db.Ping(ctx) == nil
}

// Health reports overall service health.
//
// @Summary Get service health
// @Description Reports database connectivity, the loaded snapshot and uptime. Degraded means no snapshot is loaded or the database is unreachable.
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.HealthStatus}
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	dbConnected := h.databaseConnected(r.Context())

	health := models.HealthStatus{
		Status:            "healthy",
		Version:           Version,
		DatabaseConnected: dbConnected,
		Uptime:            time.Since(h.startTime).Seconds(),
	}

	if snap := h.engine.Snapshot(); snap != nil {
		loadedAt := snap.LoadedAt
		health.SnapshotLoaded = true
		health.SnapshotVersion = snap.Version
		health.LastLoad = &loadedAt
		health.Movies = snap.Catalog.Len()
		health.Ratings = snap.Ratings.Len()
		health.Users = len(snap.Ratings.UserIDs())
	}

	if !health.SnapshotLoaded || (h.db != nil && !dbConnected) {
		health.Status = "degraded"
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   models.StatusSuccess,
		Data:     health,
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// HealthLive answers liveness probes.
//
// @Summary Liveness probe
// @Description Returns 200 while the process is running, regardless of data state.
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse
// @Router /health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: models.StatusSuccess,
		Data: map[string]interface{}{
			"alive":  true,
			"uptime": time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// HealthReady answers readiness probes. The service is ready once a
// snapshot is loaded.
//
// @Summary Readiness probe
// @Description Returns 200 once a data snapshot is loaded, 503 before.
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse "Service is ready"
// @Failure 503 {object} models.APIResponse "No snapshot loaded"
// @Router /health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ready := h.engine.Ready()

	statusCode := http.StatusOK
	status := "ready"
	if !ready {
		statusCode = http.StatusServiceUnavailable
		status = "not_ready"
	}

	respondJSON(w, statusCode, &models.APIResponse{
		Status: status,
		Data: map[string]interface{}{
			"snapshot_loaded": ready,
			"ready_to_serve":  ready,
			"uptime":          time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}
