// Screenpick - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/screenpick

package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/screenpick/internal/catalog"
	"github.com/tomtom215/screenpick/internal/metrics"
	"github.com/tomtom215/screenpick/internal/ratings"
)

// noGenres is the MovieLens placeholder for a movie without genres.
const noGenres = "(no genres listed)"

// Skip reasons, also used as metric labels.
const (
	ReasonDuplicateTitle = "duplicate_title"
	ReasonUnknownMovie   = "unknown_movie"
	ReasonOutOfScale     = "out_of_scale"
	ReasonDuplicate      = "duplicate"
	ReasonInvalid        = "invalid"
)

// LoadStats counts what one Load kept and dropped.
type LoadStats struct {
	Movies         int            `json:"movies"`
	Ratings        int            `json:"ratings"`
	Tags           int            `json:"tags"`
	SkippedMovies  map[string]int `json:"skipped_movies,omitempty"`
	SkippedRatings map[string]int `json:"skipped_ratings,omitempty"`
	SkippedTags    map[string]int `json:"skipped_tags,omitempty"`
	Duration       time.Duration  `json:"duration"`
}

// Load imports the CSV files and builds a catalog and rating index.
// Movies sharing a title keep the lowest id. Ratings and tags of movies not
// in the catalog are skipped, as are ratings outside the scale.
func (s *Store) Load(ctx context.Context) (*catalog.Catalog, *ratings.Index, error) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	start := time.Now()
	if _, err := s.importCSV(ctx, "movies", s.files.Movies, moviesProjection); err != nil {
		return nil, nil, err
	}
	if _, err := s.importCSV(ctx, "ratings", s.files.Ratings, ratingsProjection); err != nil {
		return nil, nil, err
	}
	withTags := s.optionalTags()
	if withTags {
		if _, err := s.importCSV(ctx, "tags", s.files.Tags, tagsProjection); err != nil {
			return nil, nil, err
		}
	}

	movies, stats, err := s.readMovies(ctx)
	if err != nil {
		return nil, nil, err
	}

	byID := make(map[int]int, len(movies))
	for i := range movies {
		byID[movies[i].ID] = i
	}

	if withTags {
		if err := s.readTags(ctx, movies, byID, &stats); err != nil {
			return nil, nil, err
		}
	}

	cat, err := catalog.New(movies)
	if err != nil {
		return nil, nil, fmt.Errorf("build catalog: %w", err)
	}

	rs, err := s.readRatings(ctx, byID, &stats)
	if err != nil {
		return nil, nil, err
	}
	idx, err := ratings.NewIndex(s.scale, rs)
	if err != nil {
		return nil, nil, fmt.Errorf("build rating index: %w", err)
	}

	stats.Duration = time.Since(start)
	metrics.RecordRowsLoaded("movies", stats.Movies, stats.SkippedMovies)
	metrics.RecordRowsLoaded("ratings", stats.Ratings, stats.SkippedRatings)
	metrics.RecordRowsLoaded("tags", stats.Tags, stats.SkippedTags)

	s.statsMu.Lock()
	s.stats = stats
	s.statsMu.Unlock()

	s.logger.Info().
		Int("movies", stats.Movies).
		Int("ratings", stats.Ratings).
		Int("tags", stats.Tags).
		Interface("skipped_movies", stats.SkippedMovies).
		Interface("skipped_ratings", stats.SkippedRatings).
		Dur("duration", stats.Duration).
		Msg("Data loaded")

	return cat, idx, nil
}

func (s *Store) query(ctx context.Context, table, stmt string) (*sql.Rows, error) {
	start := time.Now()
	rows, err := s.conn.QueryContext(ctx, stmt)
	metrics.RecordDBQuery("select", table, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	return rows, nil
}

func (s *Store) readMovies(ctx context.Context) ([]catalog.Movie, LoadStats, error) {
	stats := LoadStats{
		SkippedMovies:  map[string]int{},
		SkippedRatings: map[string]int{},
		SkippedTags:    map[string]int{},
	}

	rows, err := s.query(ctx, "movies", "SELECT movie_id, title, genres FROM movies ORDER BY movie_id NULLS LAST")
	if err != nil {
		return nil, stats, err
	}
	defer closeWithLog(rows, s.logger, "movies rows")

	var movies []catalog.Movie
	keptTitle := make(map[string]int)
	for rows.Next() {
		var (
			id     sql.NullInt64
			title  sql.NullString
			genres sql.NullString
		)
		if err := rows.Scan(&id, &title, &genres); err != nil {
			return nil, stats, fmt.Errorf("scan movie: %w", err)
		}
		if !id.Valid || !title.Valid || title.String == "" {
			stats.SkippedMovies[ReasonInvalid]++
			continue
		}
		if first, dup := keptTitle[title.String]; dup {
			stats.SkippedMovies[ReasonDuplicateTitle]++
			s.logger.Debug().Str("title", title.String).Int("kept_id", first).Int64("dropped_id", id.Int64).
				Msg("Duplicate movie title dropped")
			continue
		}
		keptTitle[title.String] = int(id.Int64)
		movies = append(movies, catalog.Movie{
			ID:     int(id.Int64),
			Title:  title.String,
			Genres: splitGenres(genres.String),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, stats, fmt.Errorf("read movies: %w", err)
	}

	if n := stats.SkippedMovies[ReasonDuplicateTitle]; n > 0 {
		s.logger.Info().Int("count", n).Msg("Duplicate movie titles dropped, lowest id kept")
	}
	stats.Movies = len(movies)
	return movies, stats, nil
}

// splitGenres splits a pipe-separated genre list.
func splitGenres(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == noGenres {
		return nil
	}
	return strings.Split(raw, "|")
}

func (s *Store) readTags(ctx context.Context, movies []catalog.Movie, byID map[int]int, stats *LoadStats) error {
	rows, err := s.query(ctx, "tags",
		"SELECT movie_id, tag FROM tags WHERE movie_id IS NOT NULL AND tag IS NOT NULL AND tag <> '' ORDER BY movie_id, tag")
	if err != nil {
		return err
	}
	defer closeWithLog(rows, s.logger, "tags rows")

	for rows.Next() {
		var (
			movieID int
			tag     string
		)
		if err := rows.Scan(&movieID, &tag); err != nil {
			return fmt.Errorf("scan tag: %w", err)
		}
		i, ok := byID[movieID]
		if !ok {
			stats.SkippedTags[ReasonUnknownMovie]++
			continue
		}
		movies[i].Tags = append(movies[i].Tags, tag)
		stats.Tags++
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("read tags: %w", err)
	}
	return nil
}

func (s *Store) readRatings(ctx context.Context, byID map[int]int, stats *LoadStats) ([]ratings.Rating, error) {
	// Highest score first so that the kept duplicate is deterministic.
	rows, err := s.query(ctx, "ratings",
		"SELECT user_id, movie_id, rating FROM ratings ORDER BY user_id NULLS LAST, movie_id NULLS LAST, rating DESC")
	if err != nil {
		return nil, err
	}
	defer closeWithLog(rows, s.logger, "ratings rows")

	var (
		out  []ratings.Rating
		last ratings.Rating
		have bool
	)
	for rows.Next() {
		var (
			userID, movieID sql.NullInt64
			score           sql.NullFloat64
		)
		if err := rows.Scan(&userID, &movieID, &score); err != nil {
			return nil, fmt.Errorf("scan rating: %w", err)
		}
		if !userID.Valid || !movieID.Valid || !score.Valid {
			stats.SkippedRatings[ReasonInvalid]++
			continue
		}
		r := ratings.Rating{UserID: int(userID.Int64), MovieID: int(movieID.Int64), Score: score.Float64}

		if _, ok := byID[r.MovieID]; !ok {
			stats.SkippedRatings[ReasonUnknownMovie]++
			continue
		}
		if !s.scale.Contains(r.Score) {
			stats.SkippedRatings[ReasonOutOfScale]++
			continue
		}
		if have && last.UserID == r.UserID && last.MovieID == r.MovieID {
			stats.SkippedRatings[ReasonDuplicate]++
			continue
		}
		out = append(out, r)
		last, have = r, true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read ratings: %w", err)
	}

	stats.Ratings = len(out)
	return out, nil
}
