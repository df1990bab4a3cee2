// Screenpick - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/screenpick

package algorithms

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/screenpick/internal/catalog"
	"github.com/tomtom215/screenpick/internal/ratings"
	"github.com/tomtom215/screenpick/internal/recommend"
)

// fixtureMovies is a small catalog with three clear seeds (1, 2, 3).
func fixtureMovies() []catalog.Movie {
	return []catalog.Movie{
		{ID: 1, Title: "Heat (1995)", Genres: []string{"Action", "Crime"}},
		{ID: 2, Title: "Casino (1995)", Genres: []string{"Crime", "Drama"}},
		{ID: 3, Title: "Se7en (1995)", Genres: []string{"Mystery", "Thriller"}},
		{ID: 4, Title: "Toy Story (1995)", Genres: []string{"Animation", "Comedy"}},
		{ID: 5, Title: "Goodfellas (1990)", Genres: []string{"Crime", "Drama"}},
		{ID: 6, Title: "Ronin (1998)", Genres: []string{"Action", "Crime", "Thriller"}},
		{ID: 7, Title: "Fargo (1996)", Genres: []string{"Comedy", "Crime", "Drama", "Thriller"}},
		{ID: 8, Title: "Babe (1995)", Genres: []string{"Children", "Drama"}},
		{ID: 9, Title: "Jumanji (1995)", Genres: []string{"Adventure", "Children"}},
		{ID: 10, Title: "Zodiac (2007)", Genres: []string{"Crime", "Mystery", "Thriller"}},
		{ID: 11, Title: "Clueless (1995)", Genres: []string{"Comedy", "Romance"}},
		{ID: 12, Title: "Sabrina (1995)", Genres: []string{"Comedy", "Romance"}},
		{ID: 13, Title: "Balto (1995)", Genres: []string{"Animation", "Children"}},
	}
}

// fixtureRatings: users 1-3 like the crime seeds, user 4 only rates low,
// user 5 likes movie 4 only.
func fixtureRatings() []ratings.Rating {
	return []ratings.Rating{
		{UserID: 1, MovieID: 1, Score: 5},
		{UserID: 1, MovieID: 5, Score: 4.5},
		{UserID: 1, MovieID: 6, Score: 4},
		{UserID: 1, MovieID: 9, Score: 2},
		{UserID: 2, MovieID: 2, Score: 4},
		{UserID: 2, MovieID: 5, Score: 5},
		{UserID: 2, MovieID: 10, Score: 4},
		{UserID: 2, MovieID: 11, Score: 1},
		{UserID: 3, MovieID: 3, Score: 4.5},
		{UserID: 3, MovieID: 6, Score: 3},
		{UserID: 3, MovieID: 10, Score: 5},
		{UserID: 3, MovieID: 7, Score: 4},
		{UserID: 4, MovieID: 1, Score: 3.5},
		{UserID: 4, MovieID: 12, Score: 5},
		{UserID: 5, MovieID: 4, Score: 5},
		{UserID: 5, MovieID: 13, Score: 4},
	}
}

func fixtureSnapshot(t *testing.T, movies []catalog.Movie, rs []ratings.Rating) *recommend.Snapshot {
	t.Helper()
	cat, err := catalog.New(movies)
	if err != nil {
		t.Fatalf("catalog.New() error = %v", err)
	}
	idx, err := ratings.NewIndex(ratings.DefaultScale, rs)
	if err != nil {
		t.Fatalf("ratings.NewIndex() error = %v", err)
	}
	return &recommend.Snapshot{Catalog: cat, Ratings: idx, Version: 1}
}

func fixtureEngine(t *testing.T, cfg *recommend.Config, movies []catalog.Movie, rs []ratings.Rating) *recommend.Engine {
	t.Helper()
	if cfg == nil {
		cfg = recommend.DefaultConfig()
	}
	e, err := recommend.NewEngine(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	e.Register(NewContentBased(cfg.Content))
	e.Register(NewCollaborative(cfg.Collaborative))

	snap := fixtureSnapshot(t, movies, rs)
	if err := e.Load(context.Background(), snap.Catalog, snap.Ratings); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return e
}

var crimeSeeds = []string{"Heat (1995)", "Casino (1995)", "Se7en (1995)"}
