// Screenpick - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/screenpick

package models

import "time"

// HealthStatus is the payload of GET /api/v1/health.
type HealthStatus struct {
	Status            string     `json:"status"` // healthy or degraded
	Version           string     `json:"version"`
	DatabaseConnected bool       `json:"database_connected"`
	SnapshotLoaded    bool       `json:"snapshot_loaded"`
	SnapshotVersion   int64      `json:"snapshot_version,omitempty"`
	LastLoad          *time.Time `json:"last_load,omitempty"`
	Movies            int        `json:"movies"`
	Ratings           int        `json:"ratings"`
	Users             int        `json:"users"`
	Uptime            float64    `json:"uptime"`
}

// MethodInfo describes one available recommendation method.
type MethodInfo struct {
	Name        string   `json:"name"`
	Aliases     []string `json:"aliases"`
	Description string   `json:"description"`
}

// MovieSummary is a catalog entry as listed by the API.
type MovieSummary struct {
	ID     int      `json:"id"`
	Title  string   `json:"title"`
	Year   int      `json:"year,omitempty"`
	Genres []string `json:"genres"`
	Tags   []string `json:"tags,omitempty"`
}

// MovieList is a page of catalog entries.
type MovieList struct {
	Movies []MovieSummary `json:"movies"`
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// ReloadResult is returned by POST /api/v1/admin/reload.
type ReloadResult struct {
	SnapshotVersion int64     `json:"snapshot_version"`
	Movies          int       `json:"movies"`
	Ratings         int       `json:"ratings"`
	Users           int       `json:"users"`
	DurationMS      int64     `json:"duration_ms"`
	Breaker         string    `json:"breaker_state,omitempty"`
	LoadedAt        time.Time `json:"loaded_at"`
}
