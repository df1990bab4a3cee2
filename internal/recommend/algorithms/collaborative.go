// Screenpick - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/screenpick

package algorithms

import (
	"context"
	"sort"

	"github.com/tomtom215/screenpick/internal/catalog"
	"github.com/tomtom215/screenpick/internal/ratings"
	"github.com/tomtom215/screenpick/internal/recommend"
)

// Collaborative ranks movies by the ratings of users who liked the seeds.
//
// An affinity user rated at least one seed at or above
// LikedFraction * scale max. Every affinity user contributes their rating
// of each other movie, and a candidate's score is the weighted mean over
// the users who rated it:
//
//	score(c) = sum_u(w_u * r_u(c)) / |{u : u rated c}|
//
// Dividing by the number of supporters keeps a movie from winning just
// because many affinity users happened to rate it. w_u is 1 for mean
// weighting, or the user's best liked seed rating over the scale max for
// seed_weighted.
type Collaborative struct {
	BaseAlgorithm

	cfg recommend.CollaborativeConfig
}

// NewCollaborative creates a collaborative algorithm.
func NewCollaborative(cfg recommend.CollaborativeConfig) *Collaborative {
	// Apply defaults
	if cfg.LikedFraction == 0 {
		cfg.LikedFraction = 0.8
	}
	if cfg.SeedWeighting == "" {
		cfg.SeedWeighting = recommend.SeedWeightingMean
	}
	if cfg.MinSupporters == 0 {
		cfg.MinSupporters = 1
	}

	return &Collaborative{
		BaseAlgorithm: NewBaseAlgorithm(recommend.MethodCollaborative),
		cfg:           cfg,
	}
}

// Threshold returns the liked threshold for a rating scale.
func (c *Collaborative) Threshold(scale ratings.Scale) float64 {
	return c.cfg.LikedFraction * scale.Max
}

// Prepare binds the model to the snapshot's rating index.
func (c *Collaborative) Prepare(ctx context.Context, snap *recommend.Snapshot) (recommend.Model, error) {
	if ContextCancelled(ctx) {
		return nil, ctx.Err()
	}

	scale := snap.Ratings.Scale()
	c.markPrepared()
	return &collaborativeModel{
		catalog:       snap.Catalog,
		ratings:       snap.Ratings,
		threshold:     c.Threshold(scale),
		scaleMax:      scale.Max,
		seedWeighted:  c.cfg.SeedWeighting == recommend.SeedWeightingSeedRating,
		minSupporters: c.cfg.MinSupporters,
	}, nil
}

type collaborativeModel struct {
	catalog       *catalog.Catalog
	ratings       *ratings.Index
	threshold     float64
	scaleMax      float64
	seedWeighted  bool
	minSupporters int
}

// Score aggregates the ratings of affinity users. Users are visited in
// ascending ID order and each user's ratings in ascending movie ID order,
// so floating point sums come out identical on every call.
func (m *collaborativeModel) Score(ctx context.Context, seeds []*catalog.Movie) (map[int]float64, error) {
	seedIDs := make(map[int]struct{}, len(seeds))
	for _, s := range seeds {
		seedIDs[s.ID] = struct{}{}
	}

	affinity := m.affinityUsers(seeds)
	if len(affinity) == 0 {
		return nil, &recommend.NoAffinityUsersError{Seeds: seedTitles(seeds), Threshold: m.threshold}
	}

	users := make([]int, 0, len(affinity))
	for u := range affinity {
		users = append(users, u)
	}
	sort.Ints(users)

	sums := make(map[int]float64)
	supporters := make(map[int]int)
	for i, u := range users {
		if i%cancelCheckInterval == 0 && ContextCancelled(ctx) {
			return nil, ctx.Err()
		}

		weight := 1.0
		if m.seedWeighted {
			weight = affinity[u] / m.scaleMax
		}
		for _, r := range m.ratings.ByUser(u) {
			if _, isSeed := seedIDs[r.MovieID]; isSeed {
				continue
			}
			if _, ok := m.catalog.ByID(r.MovieID); !ok {
				continue
			}
			sums[r.MovieID] += weight * r.Score
			supporters[r.MovieID]++
		}
	}

	scores := make(map[int]float64, len(sums))
	for id, n := range supporters {
		if n < m.minSupporters {
			continue
		}
		scores[id] = sums[id] / float64(n)
	}
	return scores, nil
}

// affinityUsers maps each user who liked a seed to their highest liked
// seed rating.
func (m *collaborativeModel) affinityUsers(seeds []*catalog.Movie) map[int]float64 {
	best := make(map[int]float64)
	for _, s := range seeds {
		for _, r := range m.ratings.ByMovie(s.ID) {
			if r.Score < m.threshold {
				continue
			}
			if r.Score > best[r.UserID] {
				best[r.UserID] = r.Score
			}
		}
	}
	return best
}
