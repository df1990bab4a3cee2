// Screenpick - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/screenpick

package recommend

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/screenpick/internal/catalog"
	"github.com/tomtom215/screenpick/internal/ratings"
)

// SeedCount is the number of favorite titles a request must carry.
const SeedCount = 3

// Method names a recommendation strategy.
type Method string

const (
	// MethodContent ranks by genre and tag similarity to the seeds.
	MethodContent Method = "content"

	// MethodCollaborative ranks by ratings of users who liked the seeds.
	MethodCollaborative Method = "collaborative"
)

// String returns the method name.
func (m Method) String() string {
	return string(m)
}

// ParseMethod resolves a method name or one of its aliases.
// Matching is case-insensitive.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "content", "content_based":
		return MethodContent, nil
	case "collaborative", "collaborative_based":
		return MethodCollaborative, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMethod, s)
	}
}

// Snapshot is the immutable data set requests are served from.
// A reload swaps in a new Snapshot; existing ones are never modified.
type Snapshot struct {
	Catalog  *catalog.Catalog
	Ratings  *ratings.Index
	Version  int64
	LoadedAt time.Time
}

// Algorithm prepares a Model for a snapshot. Preparation does all
// per-snapshot precomputation so that scoring is read-only.
type Algorithm interface {
	// Method returns the strategy the algorithm implements.
	Method() Method

	// Prepare builds a model for the snapshot.
	Prepare(ctx context.Context, snap *Snapshot) (Model, error)
}

// Model scores candidate movies for a resolved seed set.
// Implementations must be safe for concurrent use and deterministic.
type Model interface {
	// Score returns a score per candidate movie ID. Seeds may appear in the
	// result; the engine excludes them before ranking.
	Score(ctx context.Context, seeds []*catalog.Movie) (map[int]float64, error)
}

// Source produces fresh data for a snapshot reload.
type Source interface {
	Load(ctx context.Context) (*catalog.Catalog, *ratings.Index, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) (*catalog.Catalog, *ratings.Index, error)

// Load calls f(ctx).
func (f SourceFunc) Load(ctx context.Context) (*catalog.Catalog, *ratings.Index, error) {
	return f(ctx)
}

// Request asks for recommendations from three favorite titles.
type Request struct {
	// Method selects the strategy.
	Method Method `json:"method"`

	// Titles are the seed titles; exactly SeedCount distinct entries.
	Titles []string `json:"titles"`

	// TopN is the maximum number of results.
	// Defaults to Config.DefaultTopN if zero.
	TopN int `json:"top_n,omitempty"`

	// RequestID is propagated to logs.
	RequestID string `json:"request_id,omitempty"`
}

// Recommendation is one ranked result.
type Recommendation struct {
	MovieID int     `json:"movie_id"`
	Title   string  `json:"title"`
	Score   float64 `json:"score"`
}

// Response is an ordered recommendation list.
type Response struct {
	Items    []Recommendation `json:"items"`
	Metadata ResponseMetadata `json:"metadata"`
}

// clone copies r including its slices.
func (r *Response) clone() *Response {
	out := *r
	out.Items = append([]Recommendation(nil), r.Items...)
	out.Metadata.Seeds = append([]string(nil), r.Metadata.Seeds...)
	return &out
}

// Titles returns the recommended titles in rank order.
func (r *Response) Titles() []string {
	out := make([]string, len(r.Items))
	for i, it := range r.Items {
		out[i] = it.Title
	}
	return out
}

// ResponseMetadata describes how a response was produced.
type ResponseMetadata struct {
	RequestID       string    `json:"request_id,omitempty"`
	Method          Method    `json:"method"`
	Seeds           []string  `json:"seeds"`
	TopN            int       `json:"top_n"`
	Candidates      int       `json:"candidates"`
	Truncated       bool      `json:"truncated"`
	CacheHit        bool      `json:"cache_hit"`
	SnapshotVersion int64     `json:"snapshot_version"`
	LatencyMS       int64     `json:"latency_ms"`
	Timestamp       time.Time `json:"timestamp"`
}
