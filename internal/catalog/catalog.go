// Screenpick - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/screenpick

// Package catalog provides the immutable in-memory movie catalog.
//
// A Catalog is built once from already-parsed movie rows and is read-only
// afterwards, so a single instance can be shared by any number of concurrent
// requests without locking. Movies are kept in ascending ID order; every
// accessor that returns more than one movie preserves that order so callers
// never depend on map iteration. Suggest is the exception and returns title
// order.
//
//	cat, err := catalog.New([]catalog.Movie{
//	    {ID: 1, Title: "Toy Story (1995)", Genres: []string{"Animation", "Comedy"}},
//	})
//	m, ok := cat.ByTitle("Toy Story (1995)")
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/tomtom215/screenpick/internal/cache"
)

var (
	// ErrDuplicateID is returned when two movies share an ID.
	ErrDuplicateID = errors.New("duplicate movie id")

	// ErrDuplicateTitle is returned when two movies share a title.
	ErrDuplicateTitle = errors.New("duplicate movie title")

	// ErrEmptyTitle is returned for a movie without a title.
	ErrEmptyTitle = errors.New("empty movie title")
)

// Movie is a single catalog entry. Genres and Tags are de-duplicated and
// sorted when the catalog is built.
type Movie struct {
	// ID is the stable movie identity.
	ID int `json:"id"`

	// Title is unique within a catalog and is the external lookup key.
	Title string `json:"title"`

	// Genres lists the genre names of the movie.
	Genres []string `json:"genres"`

	// Tags lists free-form metadata keywords.
	Tags []string `json:"tags,omitempty"`

	// Year is the release year parsed from the title, 0 when unknown.
	Year int `json:"year,omitempty"`
}

// HasGenre reports whether the movie is labelled with the given genre.
// The comparison is case-insensitive.
func (m *Movie) HasGenre(name string) bool {
	for _, g := range m.Genres {
		if strings.EqualFold(g, name) {
			return true
		}
	}
	return false
}

// Catalog indexes movies by ID and by title.
type Catalog struct {
	movies   []Movie
	byID     map[int]int
	byTitle  map[string]int
	genres   []string
	registry *Registry
	titles   *cache.Trie[int] // title prefix -> index into movies
}

// New builds a catalog from the given movies. The input slice is copied;
// later changes to it do not affect the catalog.
func New(movies []Movie) (*Catalog, error) {
	sorted := make([]Movie, len(movies))
	for i := range movies {
		sorted[i] = normalize(movies[i])
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	c := &Catalog{
		movies:  sorted,
		byID:    make(map[int]int, len(sorted)),
		byTitle: make(map[string]int, len(sorted)),
		titles:  cache.NewTrie[int](),
	}

	genreSet := make(map[string]struct{})
	for i := range c.movies {
		m := &c.movies[i]
		if m.Title == "" {
			return nil, fmt.Errorf("movie %d: %w", m.ID, ErrEmptyTitle)
		}
		if _, exists := c.byID[m.ID]; exists {
			return nil, fmt.Errorf("movie %d: %w", m.ID, ErrDuplicateID)
		}
		if prev, exists := c.byTitle[m.Title]; exists {
			return nil, fmt.Errorf("%q (ids %d and %d): %w", m.Title, c.movies[prev].ID, m.ID, ErrDuplicateTitle)
		}
		c.byID[m.ID] = i
		c.byTitle[m.Title] = i
		c.titles.Insert(m.Title, i)
		for _, g := range m.Genres {
			genreSet[g] = struct{}{}
		}
	}

	c.genres = make([]string, 0, len(genreSet))
	for g := range genreSet {
		c.genres = append(c.genres, g)
	}
	sort.Strings(c.genres)
	c.registry = newRegistry(c.genres)

	return c, nil
}

// normalize trims and de-duplicates the set-valued fields and fills Year.
func normalize(m Movie) Movie {
	m.Title = strings.TrimSpace(m.Title)
	m.Genres = sortedSet(m.Genres)
	m.Tags = sortedSet(m.Tags)
	if m.Year == 0 {
		m.Year = ParseYear(m.Title)
	}
	return m
}

func sortedSet(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil
	}
	sort.Strings(out)
	return out
}

// Len returns the number of movies.
func (c *Catalog) Len() int {
	return len(c.movies)
}

// Movies returns all movies in ascending ID order.
// The returned slice is shared and must not be modified.
func (c *Catalog) Movies() []Movie {
	return c.movies
}

// ByID looks up a movie by ID.
func (c *Catalog) ByID(id int) (*Movie, bool) {
	i, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	return &c.movies[i], true
}

// ByTitle looks up a movie by its exact title.
func (c *Catalog) ByTitle(title string) (*Movie, bool) {
	i, ok := c.byTitle[title]
	if !ok {
		return nil, false
	}
	return &c.movies[i], true
}

// Genres returns the sorted distinct genres of the catalog.
func (c *Catalog) Genres() []string {
	out := make([]string, len(c.genres))
	copy(out, c.genres)
	return out
}

// GenreFilter composes a predicate from genre names, see Registry.Compose.
func (c *Catalog) GenreFilter(names []string, match Match) (Predicate, error) {
	return c.registry.Compose(names, match)
}

// Filter returns the movies accepted by pred in ascending ID order.
func (c *Catalog) Filter(pred Predicate) []*Movie {
	var out []*Movie
	for i := range c.movies {
		if pred(&c.movies[i]) {
			out = append(out, &c.movies[i])
		}
	}
	return out
}

// Search returns movies whose title contains q (case-insensitive),
// in ascending ID order. An empty q matches every movie.
func (c *Catalog) Search(q string) []*Movie {
	q = strings.ToLower(strings.TrimSpace(q))
	return c.Filter(func(m *Movie) bool {
		return q == "" || strings.Contains(strings.ToLower(m.Title), q)
	})
}

// Suggest returns up to limit movies whose title starts with prefix,
// ignoring case, in title order. A non-positive limit returns every match.
func (c *Catalog) Suggest(prefix string, limit int) []*Movie {
	idx := c.titles.Complete(prefix, limit)
	out := make([]*Movie, len(idx))
	for i, j := range idx {
		out[i] = &c.movies[j]
	}
	return out
}
