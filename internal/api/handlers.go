// Screenpick - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/screenpick

package api

import (
	"context"
	"time"

	"github.com/tomtom215/screenpick/internal/events"
	"github.com/tomtom215/screenpick/internal/insights"
	"github.com/tomtom215/screenpick/internal/recommend"
)

// Version is reported by the health endpoint. Overridden at build time.
var Version = "dev"

// Recommender is the engine surface the handlers need.
// *recommend.Engine satisfies it.
type Recommender interface {
	Recommend(ctx context.Context, req recommend.Request) (*recommend.Response, error)
	Methods() []recommend.Method
	Snapshot() *recommend.Snapshot
	Ready() bool
}

// EventPublisher publishes served recommendations.
// *events.Bus satisfies it.
type EventPublisher interface {
	Publish(ctx context.Context, evt *events.RecommendationServed) error
}

// SeedRanker reports the most requested seed titles.
// *events.SeedTally satisfies it.
type SeedRanker interface {
	Top(limit int) []events.SeedCount
}

// Reloader rebuilds the snapshot on demand.
type Reloader interface {
	ReloadNow(ctx context.Context) error
	BreakerState() string
}

// Pinger checks a backing store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HandlerConfig holds request handling limits.
type HandlerConfig struct {
	// RequestTimeout bounds a single recommendation or insight request.
	RequestTimeout time.Duration

	// ReloadTimeout bounds an admin-triggered reload.
	ReloadTimeout time.Duration

	// DefaultLimit and MaxLimit bound list endpoints.
	DefaultLimit int
	MaxLimit     int
}

// DefaultHandlerConfig returns the default request limits.
func DefaultHandlerConfig() HandlerConfig {
	return HandlerConfig{
		RequestTimeout: 10 * time.Second,
		ReloadTimeout:  5 * time.Minute,
		DefaultLimit:   20,
		MaxLimit:       500,
	}
}

// Handler serves the HTTP API.
type Handler struct {
	engine    Recommender
	insights  *insights.Service
	publisher EventPublisher // optional
	seeds     SeedRanker     // optional
	reloader  Reloader       // optional
	db        Pinger         // optional
	config    HandlerConfig
	startTime time.Time
}

// NewHandler creates a handler over the engine and insights service.
// Optional dependencies are attached with the Set methods before the
// router is built.
//
// Example:
//
//	handler := api.NewHandler(engine, insights.NewService(engine, cfg), api.DefaultHandlerConfig())
//	handler.SetEventPublisher(bus)
//	router := api.NewRouter(handler, api.DefaultChiMiddlewareConfig())
//	http.ListenAndServe(":8501", router.SetupChi())
func NewHandler(engine Recommender, svc *insights.Service, cfg HandlerConfig) *Handler {
	def := DefaultHandlerConfig()
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = def.RequestTimeout
	}
	if cfg.ReloadTimeout <= 0 {
		cfg.ReloadTimeout = def.ReloadTimeout
	}
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = def.DefaultLimit
	}
	if cfg.MaxLimit <= 0 {
		cfg.MaxLimit = def.MaxLimit
	}
	if svc == nil {
		svc = insights.NewService(engine, insights.DefaultConfig())
	}
	return &Handler{
		engine:    engine,
		insights:  svc,
		config:    cfg,
		startTime: time.Now(),
	}
}

// SetEventPublisher attaches the bus served recommendations are published to.
func (h *Handler) SetEventPublisher(p EventPublisher) {
	h.publisher = p
}

// SetSeedRanker attaches the seed popularity source.
func (h *Handler) SetSeedRanker(s SeedRanker) {
	h.seeds = s
}

// SetReloader attaches the reload service used by the admin endpoint.
func (h *Handler) SetReloader(r Reloader) {
	h.reloader = r
}

// SetDatabase attaches the store checked by the health endpoint.
func (h *Handler) SetDatabase(db Pinger) {
	h.db = db
}

// limit clamps a requested list size.
func (h *Handler) limit(requested int) int {
	if requested <= 0 {
		return h.config.DefaultLimit
	}
	if requested > h.config.MaxLimit {
		return h.config.MaxLimit
	}
	return requested
}
