// Screenpick - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/screenpick

package algorithms

import (
	"context"
	"fmt"

	"github.com/tomtom215/screenpick/internal/catalog"
	"github.com/tomtom215/screenpick/internal/recommend"
	"github.com/tomtom215/screenpick/internal/recommend/features"
)

// ContentBased ranks movies by metadata similarity to the seeds.
//
// Every movie is mapped to a genre/tag vector. The query is the
// coordinate-wise average of the three seed vectors and each candidate is
// scored by cosine similarity to it:
//
//	query    = (v_seed1 + v_seed2 + v_seed3) / 3
//	score(c) = (query . v_c) / (|query| * |v_c|)
//
// Vectors are precomputed per snapshot, so scoring is a single read-only
// pass over the feature table.
type ContentBased struct {
	BaseAlgorithm

	cfg recommend.ContentConfig
}

// NewContentBased creates a content-based algorithm.
func NewContentBased(cfg recommend.ContentConfig) *ContentBased {
	// Apply defaults
	if cfg.Weighting == "" {
		cfg.Weighting = recommend.WeightingBinary
	}
	if cfg.TagWeight == 0 {
		cfg.TagWeight = 1.0
	}

	return &ContentBased{
		BaseAlgorithm: NewBaseAlgorithm(recommend.MethodContent),
		cfg:           cfg,
	}
}

// Prepare vectorizes the snapshot catalog. A movie without genres and tags
// fails preparation with *recommend.EmptyFeatureError unless
// DropUnvectorizable is set.
func (c *ContentBased) Prepare(ctx context.Context, snap *recommend.Snapshot) (recommend.Model, error) {
	builder, err := features.NewBuilder(snap.Catalog, c.cfg)
	if err != nil {
		return nil, fmt.Errorf("feature builder: %w", err)
	}
	if ContextCancelled(ctx) {
		return nil, ctx.Err()
	}

	table, err := builder.BuildAll(snap.Catalog)
	if err != nil {
		return nil, err
	}

	c.markPrepared()
	return &contentModel{
		table:         table,
		maxCandidates: c.cfg.MaxCandidates,
	}, nil
}

// contentModel is the read-only scoring state for one snapshot.
type contentModel struct {
	table         *features.Table
	maxCandidates int
}

// Score returns the cosine similarity of every vectorized movie to the
// averaged seed vector. Seeds without a vector (dropped at build time)
// contribute a zero vector so the remaining seeds keep their 1/3 weight.
func (m *contentModel) Score(ctx context.Context, seeds []*catalog.Movie) (map[int]float64, error) {
	seedVectors := make([]features.Vector, len(seeds))
	for i, s := range seeds {
		seedVectors[i], _ = m.table.Get(s.ID)
	}
	query := features.Average(seedVectors...)

	ids := m.table.IDs()
	if m.maxCandidates > 0 && len(ids) > m.maxCandidates {
		ids = ids[:m.maxCandidates]
	}

	scores := make(map[int]float64, len(ids))
	for i, id := range ids {
		if i%cancelCheckInterval == 0 && ContextCancelled(ctx) {
			return nil, ctx.Err()
		}
		v, _ := m.table.Get(id)
		scores[id] = features.Cosine(query, v)
	}
	return scores, nil
}
