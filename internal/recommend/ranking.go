// Screenpick - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/screenpick

package recommend

import (
	"fmt"
	"sort"
)

// ScoredMovie pairs a movie ID with its ranking score.
type ScoredMovie struct {
	MovieID int
	Score   float64
}

// SelectTopN ranks candidates by score descending with ties broken by
// movie ID ascending, drops excluded IDs and returns at most n IDs.
//
// Fewer than n survivors is not an error; an empty survivor set is
// reported as *EmptyResultError.
func SelectTopN(candidates map[int]float64, n int, exclude map[int]struct{}) ([]int, error) {
	ranked, err := rankTopN(candidates, n, exclude)
	if err != nil {
		return nil, err
	}
	ids := make([]int, len(ranked))
	for i, s := range ranked {
		ids[i] = s.MovieID
	}
	return ids, nil
}

// rankTopN is SelectTopN keeping the scores.
func rankTopN(candidates map[int]float64, n int, exclude map[int]struct{}) ([]ScoredMovie, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTopN, n)
	}

	scored := make([]ScoredMovie, 0, len(candidates))
	excluded := 0
	for id, score := range candidates {
		if _, skip := exclude[id]; skip {
			excluded++
			continue
		}
		scored = append(scored, ScoredMovie{MovieID: id, Score: score})
	}
	if len(scored) == 0 {
		return nil, &EmptyResultError{Excluded: excluded}
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].MovieID < scored[j].MovieID
	})

	if len(scored) > n {
		scored = scored[:n]
	}
	return scored, nil
}
