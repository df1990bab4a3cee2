// Screenpick - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/screenpick

package recommend

import (
	"fmt"
	"time"
)

// Weighting selects how feature coordinates are valued.
type Weighting string

const (
	// WeightingBinary sets 1 for every present token (multi-hot).
	WeightingBinary Weighting = "binary"

	// WeightingIDF sets 1 + ln(N/df) so rare tokens count more.
	WeightingIDF Weighting = "idf"
)

// SeedWeighting selects how affinity users contribute to collaborative scores.
type SeedWeighting string

const (
	// SeedWeightingMean gives every affinity user weight 1.
	SeedWeightingMean SeedWeighting = "mean"

	// SeedWeightingSeedRating weights a user by their highest liked seed
	// rating divided by the scale maximum.
	SeedWeightingSeedRating SeedWeighting = "seed_weighted"
)

// TruncationPolicy decides what happens when fewer candidates than
// requested remain.
type TruncationPolicy string

const (
	// TruncateShorter returns the shorter list.
	TruncateShorter TruncationPolicy = "shorter"

	// TruncateFail returns *InsufficientCatalogError.
	TruncateFail TruncationPolicy = "fail"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// DefaultTopN is used when a request leaves TopN unset.
	// Default: 10.
	DefaultTopN int `json:"default_top_n"`

	// MaxTopN caps the requested result size. Zero means no cap, so any
	// top_n up to the catalog size minus the seeds is served in full.
	// Default: 0.
	MaxTopN int `json:"max_top_n"`

	// Truncation decides between a shorter list and an error.
	// Default: shorter.
	Truncation TruncationPolicy `json:"truncation"`

	// Content contains parameters for content-based ranking.
	Content ContentConfig `json:"content"`

	// Collaborative contains parameters for collaborative ranking.
	Collaborative CollaborativeConfig `json:"collaborative"`

	// Cache contains response cache parameters.
	Cache CacheConfig `json:"cache"`
}

// ContentConfig contains parameters for content-based ranking.
type ContentConfig struct {
	// Weighting is binary or idf.
	// Default: binary.
	Weighting Weighting `json:"weighting"`

	// TagWeight multiplies tag coordinates relative to genres.
	// Default: 1.0.
	TagWeight float64 `json:"tag_weight"`

	// MaxCandidates caps how many catalog movies are scanned, in ID order.
	// Zero means the whole catalog.
	MaxCandidates int `json:"max_candidates"`

	// DropUnvectorizable leaves movies without genres and tags out of the
	// feature table instead of failing the snapshot.
	DropUnvectorizable bool `json:"drop_unvectorizable"`
}

// CollaborativeConfig contains parameters for collaborative ranking.
type CollaborativeConfig struct {
	// LikedFraction of the scale maximum is the liked threshold.
	// Default: 0.8 (4.0 on a 5 star scale).
	LikedFraction float64 `json:"liked_fraction"`

	// SeedWeighting is mean or seed_weighted.
	// Default: mean.
	SeedWeighting SeedWeighting `json:"seed_weighting"`

	// MinSupporters drops candidates rated by fewer affinity users.
	// Default: 1 (no cutoff).
	MinSupporters int `json:"min_supporters"`
}

// CacheConfig contains response cache parameters.
type CacheConfig struct {
	// Enabled controls whether responses are cached.
	// Default: true.
	Enabled bool `json:"enabled"`

	// MaxEntries bounds the cache.
	// Default: 1024.
	MaxEntries int `json:"max_entries"`

	// TTL expires entries; zero keeps them until evicted or a reload.
	TTL time.Duration `json:"ttl"`
}

// DefaultConfig returns a Config with the documented defaults.
func DefaultConfig() *Config {
	return &Config{
		DefaultTopN: 10,
		Truncation:  TruncateShorter,
		Content: ContentConfig{
			Weighting: WeightingBinary,
			TagWeight: 1.0,
		},
		Collaborative: CollaborativeConfig{
			LikedFraction: 0.8,
			SeedWeighting: SeedWeightingMean,
			MinSupporters: 1,
		},
		Cache: CacheConfig{
			Enabled:    true,
			MaxEntries: 1024,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.DefaultTopN < 1 {
		return fmt.Errorf("default_top_n must be positive, got %d", c.DefaultTopN)
	}
	if c.MaxTopN < 0 {
		return fmt.Errorf("max_top_n must be non-negative, got %d", c.MaxTopN)
	}
	if c.MaxTopN > 0 && c.MaxTopN < c.DefaultTopN {
		return fmt.Errorf("max_top_n must be 0 or >= default_top_n, got %d < %d", c.MaxTopN, c.DefaultTopN)
	}
	switch c.Truncation {
	case TruncateShorter, TruncateFail:
	default:
		return fmt.Errorf("truncation must be shorter or fail, got %q", c.Truncation)
	}

	switch c.Content.Weighting {
	case WeightingBinary, WeightingIDF:
	default:
		return fmt.Errorf("content.weighting must be binary or idf, got %q", c.Content.Weighting)
	}
	if c.Content.TagWeight <= 0 {
		return fmt.Errorf("content.tag_weight must be positive, got %f", c.Content.TagWeight)
	}
	if c.Content.MaxCandidates < 0 {
		return fmt.Errorf("content.max_candidates must be non-negative, got %d", c.Content.MaxCandidates)
	}

	if c.Collaborative.LikedFraction <= 0 || c.Collaborative.LikedFraction > 1 {
		return fmt.Errorf("collaborative.liked_fraction must be in (0, 1], got %f", c.Collaborative.LikedFraction)
	}
	switch c.Collaborative.SeedWeighting {
	case SeedWeightingMean, SeedWeightingSeedRating:
	default:
		return fmt.Errorf("collaborative.seed_weighting must be mean or seed_weighted, got %q", c.Collaborative.SeedWeighting)
	}
	if c.Collaborative.MinSupporters < 1 {
		return fmt.Errorf("collaborative.min_supporters must be positive, got %d", c.Collaborative.MinSupporters)
	}

	if c.Cache.Enabled && c.Cache.MaxEntries < 1 {
		return fmt.Errorf("cache.max_entries must be positive, got %d", c.Cache.MaxEntries)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must be non-negative, got %v", c.Cache.TTL)
	}

	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	// All nested structs hold value types only.
	clone := *c
	return &clone
}
