// Screenpick - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/screenpick

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/tomtom215/screenpick/docs" // registers the swagger document
	"github.com/tomtom215/screenpick/internal/api"
	"github.com/tomtom215/screenpick/internal/config"
	"github.com/tomtom215/screenpick/internal/database"
	"github.com/tomtom215/screenpick/internal/events"
	"github.com/tomtom215/screenpick/internal/insights"
	"github.com/tomtom215/screenpick/internal/logging"
	"github.com/tomtom215/screenpick/internal/ratings"
	"github.com/tomtom215/screenpick/internal/supervisor"
	"github.com/tomtom215/screenpick/internal/supervisor/services"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

func main() {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})
	api.Version = Version

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Screenpick stopped with an error")
	}
	logging.Info().Msg("Application stopped gracefully")
}

//nolint:gocyclo // sequential setup steps
func run(cfg *config.Config) error {
	logging.Info().
		Str("version", Version).
		Str("movies", cfg.Data.MoviesPath).
		Str("ratings", cfg.Data.RatingsPath).
		Str("tags", cfg.Data.TagsPath).
		Str("db_path", cfg.Database.Path).
		Msg("Starting Screenpick with supervisor tree")

	store, err := database.New(
		&cfg.Database,
		database.Files{
			Movies:  cfg.Data.MoviesPath,
			Ratings: cfg.Data.RatingsPath,
			Tags:    cfg.Data.TagsPath,
		},
		ratings.Scale{Min: cfg.Data.RatingMin, Max: cfg.Data.RatingMax},
		logging.WithComponent("database"),
	)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	engine, err := initEngine(cfg, store, logging.WithComponent("recommend"))
	if err != nil {
		return err
	}

	insightsSvc := insights.NewService(engine, insights.Config{
		MinRatings:   cfg.Insights.MinRatings,
		DefaultLimit: cfg.Insights.DefaultLimit,
		MaxLimit:     cfg.Insights.MaxLimit,
	})

	handler := api.NewHandler(engine, insightsSvc, api.HandlerConfig{
		RequestTimeout: cfg.Recommend.RequestTimeout,
		ReloadTimeout:  cfg.Data.ReloadTimeout,
		DefaultLimit:   cfg.Insights.DefaultLimit,
		MaxLimit:       cfg.Insights.MaxLimit,
	})
	handler.SetDatabase(store)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLoggerWithComponent("supervisor"), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return err
	}

	// Data layer
	reloadSvc := services.NewReloadService(engine, buildReloadConfig(cfg), logging.WithComponent("reload"))
	handler.SetReloader(reloadSvc)
	tree.AddDataService(reloadSvc)

	// Messaging layer
	if cfg.Events.Enabled {
		bus, err := events.NewBus(events.Config{
			Enabled:              true,
			BufferSize:           cfg.Events.BufferSize,
			CloseTimeout:         cfg.Events.CloseTimeout,
			RetryMaxRetries:      cfg.Events.RetryMaxRetries,
			RetryInitialInterval: cfg.Events.RetryInitialInterval,
		}, logging.WithComponent("events"))
		if err != nil {
			return err
		}
		defer func() {
			if err := bus.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing event bus")
			}
		}()

		tally := events.NewSeedTally(logging.WithComponent("seed-tally"))
		bus.AddConsumer("seed-tally", events.TopicRecommendationServed, tally.Handle)

		handler.SetEventPublisher(bus)
		handler.SetSeedRanker(tally)
		tree.AddMessagingService(services.NewEventRouterService(bus, logging.WithComponent("events")))
		logging.Info().Msg("Event bus added to supervisor tree")
	} else {
		logging.Info().Msg("Event bus disabled (EVENTS_ENABLED=false)")
	}

	// API layer
	router := api.NewRouter(handler, &api.ChiMiddlewareConfig{
		CORSAllowedOrigins:     cfg.Security.CORSOrigins,
		CORSAllowedMethods:     []string{"GET", "POST", "OPTIONS"},
		CORSAllowedHeaders:     []string{"Content-Type", "X-Request-ID"},
		CORSMaxAge:             86400,
		RateLimitRequests:      cfg.Security.RateLimitReqs,
		RateLimitWindow:        cfg.Security.RateLimitWindow,
		RateLimitDisabled:      cfg.Security.RateLimitDisabled,
		AdminRateLimitRequests: cfg.Security.AdminRateLimitReqs,
	})
	router.SetSwaggerEnabled(cfg.Server.SwaggerEnabled)

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logging.WithComponent("http")))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	// errCh delivers exactly one value and is never closed.
	var runErr error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
		if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			runErr = err
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}
	return runErr
}
