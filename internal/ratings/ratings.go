// Screenpick - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/screenpick

// Package ratings provides the read-only index of user ratings.
//
// The index answers two questions in deterministic order: who rated a movie
// (ratings ordered by user ID) and what a user rated (ratings ordered by
// movie ID). It is built once per snapshot and shared without locks.
package ratings

import (
	"errors"
	"fmt"
	"sort"
)

// ErrScoreOutOfRange is returned when a rating falls outside the scale.
var ErrScoreOutOfRange = errors.New("rating score out of range")

// ErrDuplicateRating is returned when a user rated the same movie twice.
var ErrDuplicateRating = errors.New("duplicate rating")

// Rating is a single observation of a user scoring a movie.
type Rating struct {
	UserID  int     `json:"user_id"`
	MovieID int     `json:"movie_id"`
	Score   float64 `json:"score"`
}

// Scale bounds valid rating scores, inclusive on both ends.
type Scale struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// DefaultScale is the MovieLens half-star scale.
var DefaultScale = Scale{Min: 0.5, Max: 5.0}

// Validate checks that the scale is a non-empty positive interval.
func (s Scale) Validate() error {
	if s.Max <= 0 {
		return fmt.Errorf("scale max must be positive, got %g", s.Max)
	}
	if s.Min > s.Max {
		return fmt.Errorf("scale min %g exceeds max %g", s.Min, s.Max)
	}
	return nil
}

// Contains reports whether score lies within the scale.
func (s Scale) Contains(score float64) bool {
	return score >= s.Min && score <= s.Max
}

// Stats summarizes the ratings of one movie.
type Stats struct {
	Count   int     `json:"count"`
	Average float64 `json:"average"`
}

// Index is an immutable two-way index of ratings.
type Index struct {
	scale   Scale
	byMovie map[int][]Rating
	byUser  map[int][]Rating
	movies  []int
	users   []int
	total   int
}

// NewIndex validates and indexes ratings. The input slice is not retained.
func NewIndex(scale Scale, rs []Rating) (*Index, error) {
	if err := scale.Validate(); err != nil {
		return nil, err
	}

	idx := &Index{
		scale:   scale,
		byMovie: make(map[int][]Rating),
		byUser:  make(map[int][]Rating),
		total:   len(rs),
	}

	seen := make(map[[2]int]struct{}, len(rs))
	for _, r := range rs {
		if !scale.Contains(r.Score) {
			return nil, fmt.Errorf("user %d movie %d score %g: %w", r.UserID, r.MovieID, r.Score, ErrScoreOutOfRange)
		}
		key := [2]int{r.UserID, r.MovieID}
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("user %d movie %d: %w", r.UserID, r.MovieID, ErrDuplicateRating)
		}
		seen[key] = struct{}{}
		idx.byMovie[r.MovieID] = append(idx.byMovie[r.MovieID], r)
		idx.byUser[r.UserID] = append(idx.byUser[r.UserID], r)
	}

	idx.movies = make([]int, 0, len(idx.byMovie))
	for id, list := range idx.byMovie {
		sort.Slice(list, func(i, j int) bool { return list[i].UserID < list[j].UserID })
		idx.movies = append(idx.movies, id)
	}
	sort.Ints(idx.movies)

	idx.users = make([]int, 0, len(idx.byUser))
	for id, list := range idx.byUser {
		sort.Slice(list, func(i, j int) bool { return list[i].MovieID < list[j].MovieID })
		idx.users = append(idx.users, id)
	}
	sort.Ints(idx.users)

	return idx, nil
}

// Scale returns the rating scale of the index.
func (x *Index) Scale() Scale {
	return x.scale
}

// Len returns the number of ratings.
func (x *Index) Len() int {
	return x.total
}

// ByMovie returns the ratings of a movie ordered by user ID.
// The returned slice is shared and must not be modified.
func (x *Index) ByMovie(movieID int) []Rating {
	return x.byMovie[movieID]
}

// ByUser returns the ratings of a user ordered by movie ID.
// The returned slice is shared and must not be modified.
func (x *Index) ByUser(userID int) []Rating {
	return x.byUser[userID]
}

// MovieIDs returns the rated movie IDs in ascending order.
func (x *Index) MovieIDs() []int {
	out := make([]int, len(x.movies))
	copy(out, x.movies)
	return out
}

// UserIDs returns the user IDs in ascending order.
func (x *Index) UserIDs() []int {
	out := make([]int, len(x.users))
	copy(out, x.users)
	return out
}

// Stats returns the rating count and mean score of a movie.
// A movie without ratings has a zero Stats.
func (x *Index) Stats(movieID int) Stats {
	list := x.byMovie[movieID]
	if len(list) == 0 {
		return Stats{}
	}
	var sum float64
	for _, r := range list {
		sum += r.Score
	}
	return Stats{Count: len(list), Average: sum / float64(len(list))}
}
