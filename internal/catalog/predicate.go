// Screenpick - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/screenpick

package catalog

import (
	"fmt"
	"strings"
)

// Predicate is a pure filter over movies.
type Predicate func(m *Movie) bool

// Match selects how several predicates are combined.
type Match string

const (
	// MatchAll keeps movies accepted by every predicate (logical AND).
	MatchAll Match = "all"

	// MatchAny keeps movies accepted by at least one predicate (logical OR).
	MatchAny Match = "any"
)

// ParseMatch converts a query value to a Match. Empty selects MatchAll.
func ParseMatch(s string) (Match, error) {
	switch Match(strings.ToLower(strings.TrimSpace(s))) {
	case "", MatchAll:
		return MatchAll, nil
	case MatchAny:
		return MatchAny, nil
	default:
		return "", fmt.Errorf("match must be one of: all, any (got %q)", s)
	}
}

// UnknownGenreError is returned when a filter names a genre the catalog
// does not contain.
type UnknownGenreError struct {
	Name string
}

func (e *UnknownGenreError) Error() string {
	return fmt.Sprintf("unknown genre %q", e.Name)
}

// MatchEverything accepts every movie.
func MatchEverything(*Movie) bool { return true }

// All returns the conjunction of ps. With no predicates it accepts everything.
func All(ps ...Predicate) Predicate {
	return func(m *Movie) bool {
		for _, p := range ps {
			if !p(m) {
				return false
			}
		}
		return true
	}
}

// Any returns the disjunction of ps. With no predicates it accepts nothing.
func Any(ps ...Predicate) Predicate {
	return func(m *Movie) bool {
		for _, p := range ps {
			if p(m) {
				return true
			}
		}
		return false
	}
}

// GenreIs returns a predicate accepting movies labelled with genre.
func GenreIs(genre string) Predicate {
	return func(m *Movie) bool {
		return m.HasGenre(genre)
	}
}

// Registry maps genre names to predicates. Lookups are case-insensitive.
type Registry struct {
	preds map[string]Predicate
}

func newRegistry(genres []string) *Registry {
	r := &Registry{preds: make(map[string]Predicate, len(genres))}
	for _, g := range genres {
		r.preds[strings.ToLower(g)] = GenreIs(g)
	}
	return r
}

// Lookup returns the predicate registered for a genre name.
func (r *Registry) Lookup(name string) (Predicate, bool) {
	p, ok := r.preds[strings.ToLower(strings.TrimSpace(name))]
	return p, ok
}

// Compose combines the predicates of the named genres with match.
// An empty name list yields MatchEverything, so "no genre selected" means
// "no filter". The first unknown name fails with *UnknownGenreError.
func (r *Registry) Compose(names []string, match Match) (Predicate, error) {
	if len(names) == 0 {
		return MatchEverything, nil
	}

	ps := make([]Predicate, 0, len(names))
	for _, name := range names {
		p, ok := r.Lookup(name)
		if !ok {
			return nil, &UnknownGenreError{Name: name}
		}
		ps = append(ps, p)
	}

	if match == MatchAny {
		return Any(ps...), nil
	}
	return All(ps...), nil
}
