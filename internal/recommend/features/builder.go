// Screenpick - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/screenpick

// Package features turns movie genres and tags into sparse vectors.
//
// The vocabulary is fixed when a Builder is created from a catalog: the
// sorted "genre:<name>" tokens followed by the sorted "tag:<name>" tokens.
// Coordinate i of every vector refers to vocabulary token i, so movies
// with the same genre and tag sets always produce the same vector.
package features

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/tomtom215/screenpick/internal/catalog"
	"github.com/tomtom215/screenpick/internal/recommend"
)

const (
	genrePrefix = "genre:"
	tagPrefix   = "tag:"
)

// Builder maps movies to vectors over a catalog vocabulary.
// It is read-only after construction and safe for concurrent use.
type Builder struct {
	tokens    []string
	index     map[string]int
	numGenres int
	weights   []float64 // per-token coordinate value
	dropEmpty bool
}

// NewBuilder fixes the vocabulary and weights for cat.
func NewBuilder(cat *catalog.Catalog, cfg recommend.ContentConfig) (*Builder, error) {
	if cat == nil {
		return nil, errors.New("catalog is required")
	}
	if cfg.Weighting == "" {
		cfg.Weighting = recommend.WeightingBinary
	}
	if cfg.TagWeight == 0 {
		cfg.TagWeight = 1.0
	}
	if cfg.TagWeight < 0 {
		return nil, fmt.Errorf("tag weight must be positive, got %f", cfg.TagWeight)
	}

	genreDF := make(map[string]int)
	tagDF := make(map[string]int)
	for i := range cat.Movies() {
		m := &cat.Movies()[i]
		for _, g := range m.Genres {
			genreDF[g]++
		}
		for _, t := range m.Tags {
			tagDF[t]++
		}
	}

	genres := sortedKeys(genreDF)
	tags := sortedKeys(tagDF)

	b := &Builder{
		tokens:    make([]string, 0, len(genres)+len(tags)),
		index:     make(map[string]int, len(genres)+len(tags)),
		numGenres: len(genres),
		dropEmpty: cfg.DropUnvectorizable,
	}
	for _, g := range genres {
		b.add(genrePrefix + g)
	}
	for _, t := range tags {
		b.add(tagPrefix + t)
	}

	n := float64(cat.Len())
	b.weights = make([]float64, len(b.tokens))
	for i, tok := range b.tokens {
		var df int
		if i < b.numGenres {
			df = genreDF[tok[len(genrePrefix):]]
		} else {
			df = tagDF[tok[len(tagPrefix):]]
		}

		w := 1.0
		switch cfg.Weighting {
		case recommend.WeightingBinary:
		case recommend.WeightingIDF:
			w = 1 + math.Log(n/float64(df))
		default:
			return nil, fmt.Errorf("unknown weighting %q", cfg.Weighting)
		}
		if i >= b.numGenres {
			w *= cfg.TagWeight
		}
		b.weights[i] = w
	}

	return b, nil
}

func (b *Builder) add(token string) {
	b.index[token] = len(b.tokens)
	b.tokens = append(b.tokens, token)
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Dimension returns the vocabulary size.
func (b *Builder) Dimension() int {
	return len(b.tokens)
}

// Tokens returns the vocabulary in coordinate order.
func (b *Builder) Tokens() []string {
	out := make([]string, len(b.tokens))
	copy(out, b.tokens)
	return out
}

// Build returns the vector of m. A movie with neither genres nor tags
// fails with *recommend.EmptyFeatureError. Tokens outside the vocabulary
// are ignored.
func (b *Builder) Build(m *catalog.Movie) (Vector, error) {
	if len(m.Genres) == 0 && len(m.Tags) == 0 {
		return Vector{}, &recommend.EmptyFeatureError{MovieID: m.ID, Title: m.Title}
	}

	indices := make([]int, 0, len(m.Genres)+len(m.Tags))
	for _, g := range m.Genres {
		if i, ok := b.index[genrePrefix+g]; ok {
			indices = append(indices, i)
		}
	}
	for _, t := range m.Tags {
		if i, ok := b.index[tagPrefix+t]; ok {
			indices = append(indices, i)
		}
	}
	sort.Ints(indices)
	indices = dedupe(indices)

	values := make([]float64, len(indices))
	for k, i := range indices {
		values[k] = b.weights[i]
	}
	return newVector(indices, values), nil
}

func dedupe(sorted []int) []int {
	if len(sorted) < 2 {
		return sorted
	}
	out := sorted[:1]
	for _, v := range sorted[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

// Table holds the precomputed vectors of a catalog.
type Table struct {
	vectors map[int]Vector
	ids     []int
	dropped []int
}

// BuildAll vectorizes every movie of cat in ID order. The first
// *recommend.EmptyFeatureError aborts the build unless DropUnvectorizable
// is configured, in which case such movies are skipped and listed by
// Dropped.
func (b *Builder) BuildAll(cat *catalog.Catalog) (*Table, error) {
	movies := cat.Movies()
	t := &Table{
		vectors: make(map[int]Vector, len(movies)),
		ids:     make([]int, 0, len(movies)),
	}

	for i := range movies {
		m := &movies[i]
		v, err := b.Build(m)
		if err != nil {
			var empty *recommend.EmptyFeatureError
			if b.dropEmpty && errors.As(err, &empty) {
				t.dropped = append(t.dropped, m.ID)
				continue
			}
			return nil, err
		}
		t.vectors[m.ID] = v
		t.ids = append(t.ids, m.ID)
	}
	return t, nil
}

// Get returns the vector of a movie.
func (t *Table) Get(movieID int) (Vector, bool) {
	v, ok := t.vectors[movieID]
	return v, ok
}

// Len returns the number of vectorized movies.
func (t *Table) Len() int {
	return len(t.ids)
}

// IDs returns the vectorized movie IDs in ascending order.
// The returned slice is shared and must not be modified.
func (t *Table) IDs() []int {
	return t.ids
}

// Dropped returns the IDs left out because they had no features.
func (t *Table) Dropped() []int {
	out := make([]int, len(t.dropped))
	copy(out, t.dropped)
	return out
}
