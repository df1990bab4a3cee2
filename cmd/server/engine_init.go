// Screenpick - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/screenpick

package main

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/screenpick/internal/config"
	"github.com/tomtom215/screenpick/internal/recommend"
	"github.com/tomtom215/screenpick/internal/recommend/algorithms"
	"github.com/tomtom215/screenpick/internal/supervisor/services"
)

// initEngine creates the recommendation engine with both ranking methods
// registered. It does not load data; the reload service does.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initEngine(cfg *config.Config, src recommend.Source, logger zerolog.Logger) (*recommend.Engine, error) {
	engineCfg := buildEngineConfig(cfg)

	engine, err := recommend.NewEngine(engineCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}
	engine.Register(algorithms.NewContentBased(engineCfg.Content))
	engine.Register(algorithms.NewCollaborative(engineCfg.Collaborative))
	engine.SetSource(src)

	logger.Info().
		Int("default_top_n", engineCfg.DefaultTopN).
		Int("max_top_n", engineCfg.MaxTopN).
		Str("truncation", string(engineCfg.Truncation)).
		Str("content_weighting", string(engineCfg.Content.Weighting)).
		Str("seed_weighting", string(engineCfg.Collaborative.SeedWeighting)).
		Bool("cache", engineCfg.Cache.Enabled).
		Msg("recommendation engine initialized")

	return engine, nil
}

// buildEngineConfig maps application config onto the engine config.
func buildEngineConfig(cfg *config.Config) *recommend.Config {
	rc := cfg.Recommend
	return &recommend.Config{
		DefaultTopN: rc.DefaultTopN,
		MaxTopN:     rc.MaxTopN,
		Truncation:  recommend.TruncationPolicy(rc.Truncation),
		Content: recommend.ContentConfig{
			Weighting:          recommend.Weighting(rc.ContentWeighting),
			TagWeight:          rc.TagWeight,
			MaxCandidates:      rc.MaxCandidates,
			DropUnvectorizable: rc.DropUnvectorizable,
		},
		Collaborative: recommend.CollaborativeConfig{
			LikedFraction: rc.LikedFraction,
			SeedWeighting: recommend.SeedWeighting(rc.SeedWeighting),
			MinSupporters: rc.MinSupporters,
		},
		Cache: recommend.CacheConfig{
			Enabled:    rc.CacheEnabled,
			MaxEntries: rc.CacheSize,
			TTL:        rc.CacheTTL,
		},
	}
}

// buildReloadConfig maps the data section onto the reload service config.
func buildReloadConfig(cfg *config.Config) services.ReloadServiceConfig {
	return services.ReloadServiceConfig{
		LoadOnStartup:   true,
		Interval:        cfg.Data.ReloadInterval,
		Timeout:         cfg.Data.ReloadTimeout,
		BreakerFailures: cfg.Data.BreakerFailures,
		BreakerTimeout:  cfg.Data.BreakerTimeout,
	}
}
