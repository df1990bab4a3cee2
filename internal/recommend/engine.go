// Screenpick - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/screenpick

package recommend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/screenpick/internal/cache"
	"github.com/tomtom215/screenpick/internal/catalog"
	"github.com/tomtom215/screenpick/internal/metrics"
	"github.com/tomtom215/screenpick/internal/ratings"
)

// Engine serves recommendations from the current snapshot.
// It is safe for concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger

	// Registered algorithms, in registration order
	algorithms []Algorithm
	algMu      sync.RWMutex

	// Current snapshot and prepared models, swapped as a unit
	state  atomic.Pointer[engineState]
	loadMu sync.Mutex
	source Source

	cache *cache.LRU[*Response]

	// Counters
	requestCount atomic.Int64
	cacheHits    atomic.Int64
	cacheMisses  atomic.Int64
	errorCount   atomic.Int64

	now func() time.Time
}

// engineState is immutable once published.
type engineState struct {
	snapshot *Snapshot
	models   map[Method]Model
}

// Stats is a point-in-time view of the engine counters.
type Stats struct {
	Requests        int64     `json:"requests"`
	CacheHits       int64     `json:"cache_hits"`
	CacheMisses     int64     `json:"cache_misses"`
	Errors          int64     `json:"errors"`
	SnapshotVersion int64     `json:"snapshot_version"`
	LoadedAt        time.Time `json:"loaded_at"`
}

// NewEngine creates a recommendation engine. A nil cfg uses DefaultConfig.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	e := &Engine{
		config: cfg.Clone(),
		logger: logger.With().Str("component", "recommend").Logger(),
		now:    time.Now,
	}
	if cfg.Cache.Enabled {
		e.cache = cache.NewLRU[*Response](cfg.Cache.MaxEntries, cfg.Cache.TTL)
	}
	return e, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// Register adds an algorithm. A later registration for the same method
// replaces the earlier one. Models are prepared on the next Load.
func (e *Engine) Register(alg Algorithm) {
	e.algMu.Lock()
	defer e.algMu.Unlock()

	for i, existing := range e.algorithms {
		if existing.Method() == alg.Method() {
			e.algorithms[i] = alg
			e.logger.Info().Str("method", alg.Method().String()).Msg("replaced algorithm")
			return
		}
	}
	e.algorithms = append(e.algorithms, alg)
	e.logger.Info().Str("method", alg.Method().String()).Msg("registered algorithm")
}

// Methods returns the registered methods in registration order.
func (e *Engine) Methods() []Method {
	e.algMu.RLock()
	defer e.algMu.RUnlock()

	out := make([]Method, len(e.algorithms))
	for i, alg := range e.algorithms {
		out[i] = alg.Method()
	}
	return out
}

// SetSource sets the data source used by Reload.
func (e *Engine) SetSource(src Source) {
	e.loadMu.Lock()
	defer e.loadMu.Unlock()
	e.source = src
}

// Reload pulls fresh data from the source and loads it.
func (e *Engine) Reload(ctx context.Context) error {
	e.loadMu.Lock()
	src := e.source
	e.loadMu.Unlock()

	if src == nil {
		return errors.New("no data source configured")
	}

	cat, idx, err := src.Load(ctx)
	if err != nil {
		return fmt.Errorf("load data: %w", err)
	}
	return e.Load(ctx, cat, idx)
}

// Load builds a snapshot from cat and idx and prepares every registered
// algorithm for it. The snapshot becomes current only if every algorithm
// prepared successfully; otherwise the previous snapshot keeps serving.
func (e *Engine) Load(ctx context.Context, cat *catalog.Catalog, idx *ratings.Index) error {
	if cat == nil || idx == nil {
		return errors.New("catalog and ratings are required")
	}

	e.loadMu.Lock()
	defer e.loadMu.Unlock()

	start := e.now()
	var version int64 = 1
	if prev := e.state.Load(); prev != nil {
		version = prev.snapshot.Version + 1
	}

	snap := &Snapshot{
		Catalog:  cat,
		Ratings:  idx,
		Version:  version,
		LoadedAt: start,
	}

	e.algMu.RLock()
	algorithms := make([]Algorithm, len(e.algorithms))
	copy(algorithms, e.algorithms)
	e.algMu.RUnlock()

	models := make(map[Method]Model, len(algorithms))
	for _, alg := range algorithms {
		if err := ctx.Err(); err != nil {
			return err
		}
		model, err := alg.Prepare(ctx, snap)
		if err != nil {
			return fmt.Errorf("prepare %s: %w", alg.Method(), err)
		}
		models[alg.Method()] = model
	}

	e.state.Store(&engineState{snapshot: snap, models: models})
	if e.cache != nil {
		e.cache.Clear()
		metrics.SetCacheEntries(0)
	}

	e.logger.Info().
		Int64("version", version).
		Int("movies", cat.Len()).
		Int("ratings", idx.Len()).
		Int("methods", len(models)).
		Dur("duration", e.now().Sub(start)).
		Msg("snapshot loaded")

	return nil
}

// Snapshot returns the current snapshot, or nil before the first load.
func (e *Engine) Snapshot() *Snapshot {
	st := e.state.Load()
	if st == nil {
		return nil
	}
	return st.snapshot
}

// Ready reports whether a snapshot is loaded.
func (e *Engine) Ready() bool {
	return e.state.Load() != nil
}

// Stats returns the engine counters.
func (e *Engine) Stats() Stats {
	s := Stats{
		Requests:    e.requestCount.Load(),
		CacheHits:   e.cacheHits.Load(),
		CacheMisses: e.cacheMisses.Load(),
		Errors:      e.errorCount.Load(),
	}
	if snap := e.Snapshot(); snap != nil {
		s.SnapshotVersion = snap.Version
		s.LoadedAt = snap.LoadedAt
	}
	return s
}

// Recommend ranks movies for three seed titles with the requested method.
//
// Failures are returned as ErrNotReady, ErrInvalidSeeds, ErrInvalidTopN,
// ErrUnknownMethod, *UnknownMovieError, *NoAffinityUsersError,
// *InsufficientCatalogError or *EmptyResultError.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := e.now()
	e.requestCount.Add(1)

	resp, err := e.recommend(ctx, req, start)
	if err != nil {
		e.errorCount.Add(1)
		return nil, err
	}
	return resp, nil
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) recommend(ctx context.Context, req Request, start time.Time) (*Response, error) {
	st := e.state.Load()
	if st == nil {
		return nil, ErrNotReady
	}

	req, err := e.prepareRequest(req)
	if err != nil {
		return nil, err
	}

	model, ok := st.models[req.Method]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, req.Method)
	}

	logger := e.logger.With().
		Str("request_id", req.RequestID).
		Str("method", req.Method.String()).
		Int("top_n", req.TopN).
		Logger()

	key := cacheKey(st.snapshot.Version, req)
	if resp := e.tryGetCachedResponse(key, req, start); resp != nil {
		logger.Debug().Msg("cache hit")
		return resp, nil
	}

	seeds, err := resolveSeeds(st.snapshot.Catalog, req.Titles)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	scores, err := model.Score(ctx, seeds)
	if err != nil {
		return nil, err
	}

	exclude := make(map[int]struct{}, len(seeds))
	for _, s := range seeds {
		exclude[s.ID] = struct{}{}
	}

	ranked, err := rankTopN(scores, req.TopN, exclude)
	if err != nil {
		return nil, err
	}

	truncated := len(ranked) < req.TopN
	if truncated && e.config.Truncation == TruncateFail {
		return nil, &InsufficientCatalogError{Requested: req.TopN, Available: len(ranked)}
	}

	resp := e.buildResponse(st.snapshot, req, ranked, countCandidates(scores, exclude), truncated, start)
	if e.cache != nil {
		// Callers own the returned response
		e.cache.Add(key, resp.clone())
		metrics.SetCacheEntries(e.cache.Len())
	}

	logger.Debug().
		Int("candidates", resp.Metadata.Candidates).
		Int("returned", len(resp.Items)).
		Bool("truncated", truncated).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("recommendation complete")

	return resp, nil
}

// prepareRequest normalizes and validates a request.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) prepareRequest(req Request) (Request, error) {
	method, err := ParseMethod(string(req.Method))
	if err != nil {
		return req, err
	}
	req.Method = method

	if len(req.Titles) != SeedCount {
		return req, fmt.Errorf("%w: need exactly %d titles, got %d", ErrInvalidSeeds, SeedCount, len(req.Titles))
	}
	titles := make([]string, len(req.Titles))
	seen := make(map[string]struct{}, len(req.Titles))
	for i, t := range req.Titles {
		t = strings.TrimSpace(t)
		if t == "" {
			return req, fmt.Errorf("%w: title %d is empty", ErrInvalidSeeds, i+1)
		}
		if _, dup := seen[t]; dup {
			return req, fmt.Errorf("%w: %q given more than once", ErrInvalidSeeds, t)
		}
		seen[t] = struct{}{}
		titles[i] = t
	}
	req.Titles = titles

	if req.TopN == 0 {
		req.TopN = e.config.DefaultTopN
	}
	if req.TopN < 0 {
		return req, fmt.Errorf("%w: must be positive, got %d", ErrInvalidTopN, req.TopN)
	}
	if e.config.MaxTopN > 0 && req.TopN > e.config.MaxTopN {
		return req, fmt.Errorf("%w: must be between 1 and %d, got %d", ErrInvalidTopN, e.config.MaxTopN, req.TopN)
	}

	return req, nil
}

// tryGetCachedResponse returns a deep copy of a cached response with fresh
// request metadata, or nil on a miss.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) tryGetCachedResponse(key string, req Request, start time.Time) *Response {
	if e.cache == nil {
		return nil
	}

	cached, ok := e.cache.Get(key)
	if !ok {
		e.cacheMisses.Add(1)
		return nil
	}

	e.cacheHits.Add(1)
	resp := cached.clone()
	resp.Metadata.RequestID = req.RequestID
	resp.Metadata.CacheHit = true
	resp.Metadata.LatencyMS = e.now().Sub(start).Milliseconds()
	resp.Metadata.Timestamp = e.now()
	return resp
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) buildResponse(snap *Snapshot, req Request, ranked []ScoredMovie, candidates int, truncated bool, start time.Time) *Response {
	items := make([]Recommendation, len(ranked))
	for i, s := range ranked {
		items[i] = Recommendation{MovieID: s.MovieID, Score: s.Score}
		if m, ok := snap.Catalog.ByID(s.MovieID); ok {
			items[i].Title = m.Title
		}
	}

	return &Response{
		Items: items,
		Metadata: ResponseMetadata{
			RequestID:       req.RequestID,
			Method:          req.Method,
			Seeds:           req.Titles,
			TopN:            req.TopN,
			Candidates:      candidates,
			Truncated:       truncated,
			SnapshotVersion: snap.Version,
			LatencyMS:       e.now().Sub(start).Milliseconds(),
			Timestamp:       e.now(),
		},
	}
}

// resolveSeeds maps titles to catalog movies, failing on the first
// unknown title.
func resolveSeeds(cat *catalog.Catalog, titles []string) ([]*catalog.Movie, error) {
	seeds := make([]*catalog.Movie, 0, len(titles))
	for _, t := range titles {
		m, ok := cat.ByTitle(t)
		if !ok {
			return nil, &UnknownMovieError{Title: t}
		}
		seeds = append(seeds, m)
	}
	return seeds, nil
}

func countCandidates(scores map[int]float64, exclude map[int]struct{}) int {
	n := 0
	for id := range scores {
		if _, skip := exclude[id]; !skip {
			n++
		}
	}
	return n
}

// cacheKey identifies a request within a snapshot version. Titles keep
// their request order because the response echoes them.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func cacheKey(version int64, req Request) string {
	return fmt.Sprintf("rec:%d:%s:%d:%s", version, req.Method, req.TopN, strings.Join(req.Titles, "\x1f"))
}
