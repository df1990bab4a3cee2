// Screenpick - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/screenpick

package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/screenpick/internal/catalog"
	"github.com/tomtom215/screenpick/internal/config"
	"github.com/tomtom215/screenpick/internal/ratings"
	"github.com/tomtom215/screenpick/internal/recommend"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	return cfg
}

func TestBuildEngineConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Recommend.Truncation = "fail"
	cfg.Recommend.ContentWeighting = "idf"
	cfg.Recommend.SeedWeighting = "seed_weighted"
	cfg.Recommend.CacheTTL = time.Minute

	got := buildEngineConfig(cfg)
	if err := got.Validate(); err != nil {
		t.Fatalf("engine config invalid: %v", err)
	}
	if got.Truncation != recommend.TruncateFail {
		t.Errorf("Truncation = %q", got.Truncation)
	}
	if got.Content.Weighting != recommend.WeightingIDF {
		t.Errorf("Content.Weighting = %q", got.Content.Weighting)
	}
	if got.Collaborative.SeedWeighting != recommend.SeedWeightingSeedRating {
		t.Errorf("Collaborative.SeedWeighting = %q", got.Collaborative.SeedWeighting)
	}
	if !got.Content.DropUnvectorizable {
		t.Error("DropUnvectorizable = false, want the service default true")
	}
	if got.Cache.MaxEntries != cfg.Recommend.CacheSize || got.Cache.TTL != time.Minute {
		t.Errorf("Cache = %+v", got.Cache)
	}
}

func TestBuildReloadConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Data.ReloadInterval = time.Hour

	got := buildReloadConfig(cfg)
	if !got.LoadOnStartup {
		t.Error("LoadOnStartup = false")
	}
	if got.Interval != time.Hour || got.BreakerFailures != cfg.Data.BreakerFailures {
		t.Errorf("reload config = %+v", got)
	}
}

type staticSource struct {
	cat *catalog.Catalog
	idx *ratings.Index
}

func (s staticSource) Load(ctx context.Context) (*catalog.Catalog, *ratings.Index, error) {
	return s.cat, s.idx, nil
}

func TestInitEngine(t *testing.T) {
	cat, err := catalog.New([]catalog.Movie{
		{ID: 1, Title: "Heat (1995)", Genres: []string{"Action", "Crime"}},
		{ID: 2, Title: "Casino (1995)", Genres: []string{"Crime", "Drama"}},
		{ID: 3, Title: "Se7en (1995)", Genres: []string{"Mystery", "Thriller"}},
		{ID: 4, Title: "Ronin (1998)", Genres: []string{"Action", "Crime", "Thriller"}},
	})
	if err != nil {
		t.Fatalf("catalog.New() error = %v", err)
	}
	idx, err := ratings.NewIndex(ratings.DefaultScale, []ratings.Rating{
		{UserID: 1, MovieID: 1, Score: 5},
		{UserID: 1, MovieID: 4, Score: 4.5},
	})
	if err != nil {
		t.Fatalf("ratings.NewIndex() error = %v", err)
	}

	engine, err := initEngine(testConfig(t), staticSource{cat: cat, idx: idx}, zerolog.Nop())
	if err != nil {
		t.Fatalf("initEngine() error = %v", err)
	}
	if got := len(engine.Methods()); got != 2 {
		t.Errorf("methods = %d, want 2", got)
	}
	if engine.Ready() {
		t.Error("engine ready before the first reload")
	}
	if err := engine.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if !engine.Ready() {
		t.Error("engine not ready after reload")
	}
}
