// Screenpick - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/screenpick

package recommend

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotReady is returned when no snapshot has been loaded yet.
	ErrNotReady = errors.New("recommendation engine not ready")

	// ErrInvalidTopN is returned for a non-positive or too large result size.
	ErrInvalidTopN = errors.New("invalid top_n")

	// ErrInvalidSeeds is returned when the request does not carry exactly
	// three distinct, non-empty titles.
	ErrInvalidSeeds = errors.New("invalid seed titles")

	// ErrUnknownMethod is returned for a method no algorithm is registered for.
	ErrUnknownMethod = errors.New("unknown recommendation method")
)

// UnknownMovieError names the first seed title missing from the catalog,
// or the movie ID of a failed lookup.
type UnknownMovieError struct {
	Title string
	ID    int
}

func (e *UnknownMovieError) Error() string {
	if e.Title == "" && e.ID != 0 {
		return fmt.Sprintf("unknown movie id %d", e.ID)
	}
	return fmt.Sprintf("unknown movie %q", e.Title)
}

// EmptyFeatureError reports a movie with neither genres nor tags.
// It surfaces while a snapshot is prepared, never at request time.
type EmptyFeatureError struct {
	MovieID int
	Title   string
}

func (e *EmptyFeatureError) Error() string {
	return fmt.Sprintf("movie %d %q has no genres or tags to vectorize", e.MovieID, e.Title)
}

// NoAffinityUsersError reports that no user rated any seed at or above the
// liked threshold.
type NoAffinityUsersError struct {
	Seeds     []string
	Threshold float64
}

func (e *NoAffinityUsersError) Error() string {
	return fmt.Sprintf("no user rated any of [%s] at or above %g",
		strings.Join(e.Seeds, ", "), e.Threshold)
}

// InsufficientCatalogError reports fewer candidates than requested under
// the fail truncation policy.
type InsufficientCatalogError struct {
	Requested int
	Available int
}

func (e *InsufficientCatalogError) Error() string {
	return fmt.Sprintf("requested %d recommendations but only %d candidates exist", e.Requested, e.Available)
}

// EmptyResultError reports that no candidate remained to rank.
type EmptyResultError struct {
	Excluded int
}

func (e *EmptyResultError) Error() string {
	if e.Excluded > 0 {
		return fmt.Sprintf("no candidates left after excluding %d movies", e.Excluded)
	}
	return "no candidates to rank"
}
