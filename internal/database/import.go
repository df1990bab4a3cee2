// Screenpick - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/screenpick

package database

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/tomtom215/screenpick/internal/metrics"
)

// Table projections. Every source column is read as VARCHAR and cast with
// TRY_CAST, so a malformed cell becomes NULL and is counted as invalid
// instead of aborting the import.
const (
	moviesProjection = `TRY_CAST(movieId AS INTEGER) AS movie_id,
		trim(title) AS title,
		genres`

	ratingsProjection = `TRY_CAST(userId AS INTEGER) AS user_id,
		TRY_CAST(movieId AS INTEGER) AS movie_id,
		TRY_CAST(rating AS DOUBLE) AS rating`

	tagsProjection = `TRY_CAST(movieId AS INTEGER) AS movie_id,
		lower(trim(tag)) AS tag`
)

// quoteLiteral renders s as a SQL string literal.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func csvSource(path string) string {
	return fmt.Sprintf("read_csv_auto(%s, header = true, all_varchar = true)", quoteLiteral(path))
}

// importCSV replaces table with the projected contents of the CSV at path
// and returns the number of imported rows.
func (s *Store) importCSV(ctx context.Context, table, path, projection string) (int, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, fmt.Errorf("%s: %s: %w", table, path, ErrMissingFile)
		}
		return 0, fmt.Errorf("%s: %w", table, err)
	}

	start := time.Now()
	stmt := fmt.Sprintf("CREATE OR REPLACE TABLE %s AS SELECT %s FROM %s", table, projection, csvSource(path))
	_, err := s.conn.ExecContext(ctx, stmt)
	metrics.RecordDBQuery("import", table, time.Since(start), err)
	if err != nil {
		return 0, fmt.Errorf("import %s from %s: %w", table, path, err)
	}

	var n int
	if err := s.conn.QueryRowContext(ctx, "SELECT count(*) FROM "+table).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}

	s.logger.Debug().Str("table", table).Str("path", path).Int("rows", n).
		Dur("duration", time.Since(start)).Msg("CSV imported")
	return n, nil
}

// optionalTags reports whether the tags file should be imported. A
// configured but missing file is logged and skipped.
func (s *Store) optionalTags() bool {
	if s.files.Tags == "" {
		return false
	}
	if _, err := os.Stat(s.files.Tags); err != nil {
		s.logger.Warn().Err(err).Str("path", s.files.Tags).Msg("Tags file unavailable, continuing without tags")
		return false
	}
	return true
}
