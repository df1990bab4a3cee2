// Screenpick - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/screenpick

package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/screenpick/internal/metrics"
	"github.com/tomtom215/screenpick/internal/recommend"
)

// breakerName labels the reload circuit breaker in logs and metrics.
const breakerName = "snapshot-reload"

// SnapshotLoader is the part of the recommendation engine the reload
// service drives.
type SnapshotLoader interface {
	Reload(ctx context.Context) error
	Snapshot() *recommend.Snapshot
}

// ReloadServiceConfig holds configuration for the reload service.
type ReloadServiceConfig struct {
	// LoadOnStartup loads a snapshot as soon as the service starts.
	LoadOnStartup bool

	// Interval between scheduled reloads. Zero disables them.
	Interval time.Duration

	// Timeout bounds a single reload.
	Timeout time.Duration

	// BreakerFailures consecutive failures open the circuit.
	BreakerFailures uint32

	// BreakerTimeout is how long the circuit stays open before a trial reload.
	BreakerTimeout time.Duration
}

// ReloadService owns snapshot loading: the initial load, scheduled reloads
// and on-demand reloads from the admin API. Every reload runs through a
// circuit breaker so a broken data directory is not hammered.
type ReloadService struct {
	loader SnapshotLoader
	config ReloadServiceConfig
	logger zerolog.Logger
	cb     *gobreaker.CircuitBreaker[struct{}]
	mu     sync.Mutex // serializes reloads
	name   string
}

// NewReloadService creates a reload service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewReloadService(loader SnapshotLoader, cfg ReloadServiceConfig, logger zerolog.Logger) *ReloadService {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Minute
	}
	if cfg.BreakerFailures == 0 {
		cfg.BreakerFailures = 3
	}
	if cfg.BreakerTimeout <= 0 {
		cfg.BreakerTimeout = time.Minute
	}

	s := &ReloadService{
		loader: loader,
		config: cfg,
		logger: logger.With().Str("service", "reload").Logger(),
		name:   "reload-service",
	}

	metrics.SetCircuitBreakerState(breakerName, 0)
	s.cb = gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			trip := counts.ConsecutiveFailures >= cfg.BreakerFailures
			if trip {
				s.logger.Warn().Uint32("consecutive_failures", counts.ConsecutiveFailures).Msg("opening reload circuit")
			}
			return trip
		},
		// Shutdown is not a data failure.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			s.logger.Info().Str("from", from.String()).Str("to", to.String()).Msg("reload circuit state change")
			metrics.SetCircuitBreakerState(name, stateValue(to))
			metrics.RecordCircuitBreakerTransition(name, from.String(), to.String())
		},
	})
	return s
}

// Serve implements suture.Service.
//
// When LoadOnStartup is set and the first load fails, Serve returns the
// error so the supervisor retries with backoff. Once a snapshot exists,
// failed scheduled reloads are logged and the previous snapshot keeps
// serving.
func (s *ReloadService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("load_on_startup", s.config.LoadOnStartup).
		Dur("interval", s.config.Interval).
		Msg("reload service starting")

	if s.config.LoadOnStartup && s.loader.Snapshot() == nil {
		if err := s.ReloadNow(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("initial snapshot load: %w", err)
		}
	}

	if s.config.Interval <= 0 {
		<-ctx.Done()
		s.logger.Info().Msg("reload service shutting down")
		return ctx.Err()
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("reload service shutting down")
			return ctx.Err()

		case <-ticker.C:
			s.logger.Debug().Msg("scheduled reload triggered")
			if err := s.ReloadNow(ctx); err != nil {
				s.logger.Warn().Err(err).Msg("scheduled reload failed, keeping previous snapshot")
			}
		}
	}
}

// ReloadNow reloads the snapshot through the circuit breaker. It returns
// gobreaker.ErrOpenState while the circuit is open.
func (s *ReloadService) ReloadNow(ctx context.Context) error {
	_, err := s.cb.Execute(func() (struct{}, error) {
		return struct{}{}, s.reload(ctx)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		s.logger.Warn().Err(err).Msg("reload rejected by circuit breaker")
	}
	return err
}

// BreakerState returns the circuit state: closed, half-open or open.
func (s *ReloadService) BreakerState() string {
	return s.cb.State().String()
}

func (s *ReloadService) reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	reloadCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	start := time.Now()
	err := s.loader.Reload(reloadCtx)
	duration := time.Since(start)
	metrics.RecordSnapshotReload(duration, err)
	if err != nil {
		return err
	}

	snap := s.loader.Snapshot()
	if snap != nil {
		metrics.SetSnapshotStats(
			snap.Version,
			snap.Catalog.Len(),
			snap.Ratings.Len(),
			len(snap.Ratings.UserIDs()),
			len(snap.Catalog.Genres()),
		)
		s.logger.Info().
			Int64("version", snap.Version).
			Dur("duration", duration).
			Msg("snapshot reloaded")
	}
	return nil
}

// String returns the service name for logging.
func (s *ReloadService) String() string {
	return s.name
}

func stateValue(state gobreaker.State) int {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
