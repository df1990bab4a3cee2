// Screenpick - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/screenpick

package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// EventRouter is satisfied by *events.Bus.
type EventRouter interface {
	Run(ctx context.Context) error
}

// EventRouterService runs the event bus router under supervision.
type EventRouterService struct {
	router EventRouter
	logger zerolog.Logger
	name   string
}

// NewEventRouterService wraps router for suture.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEventRouterService(router EventRouter, logger zerolog.Logger) *EventRouterService {
	return &EventRouterService{
		router: router,
		logger: logger.With().Str("service", "event-router").Logger(),
		name:   "event-router",
	}
}

// Serve implements suture.Service. A router that stops while ctx is still
// live is reported as a failure so the supervisor restarts it.
func (s *EventRouterService) Serve(ctx context.Context) error {
	err := s.router.Run(ctx)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		return fmt.Errorf("event router failed: %w", err)
	}
	s.logger.Warn().Msg("event router stopped unexpectedly")
	return fmt.Errorf("event router stopped")
}

// String returns the service name for logging.
func (s *EventRouterService) String() string {
	return s.name
}
