// Screenpick - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/screenpick

package recommend

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/tomtom215/screenpick/internal/catalog"
	"github.com/tomtom215/screenpick/internal/metrics"
	"github.com/tomtom215/screenpick/internal/ratings"
)

// mockAlgorithm implements Algorithm with fixed scores.
type mockAlgorithm struct {
	method     Method
	scores     map[int]float64
	prepareErr error
	scoreErr   error
	prepared   atomic.Int32
	scored     atomic.Int32
}

func (m *mockAlgorithm) Method() Method { return m.method }

func (m *mockAlgorithm) Prepare(ctx context.Context, snap *Snapshot) (Model, error) {
	if m.prepareErr != nil {
		return nil, m.prepareErr
	}
	m.prepared.Add(1)
	return m, nil
}

func (m *mockAlgorithm) Score(ctx context.Context, seeds []*catalog.Movie) (map[int]float64, error) {
	m.scored.Add(1)
	if m.scoreErr != nil {
		return nil, m.scoreErr
	}
	out := make(map[int]float64, len(m.scores))
	for id, s := range m.scores {
		out[id] = s
	}
	return out, nil
}

func testData(t *testing.T) (*catalog.Catalog, *ratings.Index) {
	t.Helper()
	cat, err := catalog.New([]catalog.Movie{
		{ID: 1, Title: "One", Genres: []string{"Drama"}},
		{ID: 2, Title: "Two", Genres: []string{"Drama"}},
		{ID: 3, Title: "Three", Genres: []string{"Drama"}},
		{ID: 4, Title: "Four", Genres: []string{"Drama"}},
		{ID: 5, Title: "Five", Genres: []string{"Drama"}},
		{ID: 6, Title: "Six", Genres: []string{"Drama"}},
	})
	if err != nil {
		t.Fatalf("catalog.New() error = %v", err)
	}
	idx, err := ratings.NewIndex(ratings.DefaultScale, []ratings.Rating{{UserID: 1, MovieID: 1, Score: 5}})
	if err != nil {
		t.Fatalf("ratings.NewIndex() error = %v", err)
	}
	return cat, idx
}

func newTestEngine(t *testing.T, cfg *Config, algs ...Algorithm) *Engine {
	t.Helper()
	e, err := NewEngine(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	for _, a := range algs {
		e.Register(a)
	}
	cat, idx := testData(t)
	if err := e.Load(context.Background(), cat, idx); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return e
}

func seedRequest(topN int) Request {
	return Request{Method: MethodContent, Titles: []string{"One", "Two", "Three"}, TopN: topN}
}

func TestNewEngine_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DefaultTopN = 0
	if _, err := NewEngine(cfg, zerolog.Nop()); err == nil {
		t.Error("expected error for invalid config")
	}
}

func TestEngine_NotReady(t *testing.T) {
	e, err := NewEngine(nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	if e.Ready() {
		t.Error("Ready() = true before Load")
	}
	if e.Snapshot() != nil {
		t.Error("Snapshot() should be nil before Load")
	}
	if _, err := e.Recommend(context.Background(), seedRequest(3)); !errors.Is(err, ErrNotReady) {
		t.Errorf("Recommend() error = %v, want ErrNotReady", err)
	}
}

func TestEngine_Recommend(t *testing.T) {
	alg := &mockAlgorithm{
		method: MethodContent,
		scores: map[int]float64{1: 1, 2: 1, 3: 1, 4: 0.2, 5: 0.7, 6: 0.7},
	}
	e := newTestEngine(t, nil, alg)

	resp, err := e.Recommend(context.Background(), seedRequest(3))
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	if got := resp.Titles(); !reflect.DeepEqual(got, []string{"Five", "Six", "Four"}) {
		t.Errorf("Titles() = %v, want [Five Six Four]", got)
	}
	if resp.Metadata.Candidates != 3 {
		t.Errorf("Candidates = %d, want 3", resp.Metadata.Candidates)
	}
	if resp.Metadata.Truncated {
		t.Error("Truncated = true, want false")
	}
	if resp.Metadata.SnapshotVersion != 1 {
		t.Errorf("SnapshotVersion = %d, want 1", resp.Metadata.SnapshotVersion)
	}
}

func TestEngine_RecommendValidation(t *testing.T) {
	alg := &mockAlgorithm{method: MethodContent, scores: map[int]float64{4: 1}}
	e := newTestEngine(t, nil, alg)

	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{
			name:    "two titles",
			req:     Request{Method: MethodContent, Titles: []string{"One", "Two"}},
			wantErr: ErrInvalidSeeds,
		},
		{
			name:    "duplicate titles",
			req:     Request{Method: MethodContent, Titles: []string{"One", "One", "Two"}},
			wantErr: ErrInvalidSeeds,
		},
		{
			name:    "blank title",
			req:     Request{Method: MethodContent, Titles: []string{"One", " ", "Two"}},
			wantErr: ErrInvalidSeeds,
		},
		{
			name:    "negative top_n",
			req:     Request{Method: MethodContent, Titles: []string{"One", "Two", "Three"}, TopN: -1},
			wantErr: ErrInvalidTopN,
		},
		{
			name:    "unknown method",
			req:     Request{Method: "hybrid", Titles: []string{"One", "Two", "Three"}},
			wantErr: ErrUnknownMethod,
		},
		{
			name:    "method not registered",
			req:     Request{Method: MethodCollaborative, Titles: []string{"One", "Two", "Three"}},
			wantErr: ErrUnknownMethod,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := e.Recommend(context.Background(), tt.req); !errors.Is(err, tt.wantErr) {
				t.Errorf("Recommend() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestEngine_UnknownMovie(t *testing.T) {
	alg := &mockAlgorithm{method: MethodContent, scores: map[int]float64{4: 1}}
	e := newTestEngine(t, nil, alg)

	req := Request{Method: MethodContent, Titles: []string{"Nonexistent Movie 12345", "One", "Missing Too"}}
	_, err := e.Recommend(context.Background(), req)

	var unknown *UnknownMovieError
	if !errors.As(err, &unknown) {
		t.Fatalf("Recommend() error = %v, want *UnknownMovieError", err)
	}
	if unknown.Title != "Nonexistent Movie 12345" {
		t.Errorf("Title = %q, want the first unresolved title", unknown.Title)
	}
	if alg.scored.Load() != 0 {
		t.Error("model should not be scored for unresolved seeds")
	}
}

func TestEngine_DefaultTopN(t *testing.T) {
	scores := make(map[int]float64)
	for id := 1; id <= 6; id++ {
		scores[id] = float64(id)
	}
	cfg := DefaultConfig()
	cfg.DefaultTopN = 2
	e := newTestEngine(t, cfg, &mockAlgorithm{method: MethodContent, scores: scores})

	resp, err := e.Recommend(context.Background(), seedRequest(0))
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(resp.Items) != 2 || resp.Metadata.TopN != 2 {
		t.Errorf("got %d items with TopN %d, want 2 and 2", len(resp.Items), resp.Metadata.TopN)
	}
}

func TestEngine_Truncation(t *testing.T) {
	scores := map[int]float64{4: 0.5, 5: 0.4}

	t.Run("shorter policy returns available", func(t *testing.T) {
		e := newTestEngine(t, nil, &mockAlgorithm{method: MethodContent, scores: scores})
		resp, err := e.Recommend(context.Background(), seedRequest(10))
		if err != nil {
			t.Fatalf("Recommend() error = %v", err)
		}
		if len(resp.Items) != 2 || !resp.Metadata.Truncated {
			t.Errorf("got %d items truncated=%v, want 2 and true", len(resp.Items), resp.Metadata.Truncated)
		}
	})

	t.Run("fail policy returns error", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Truncation = TruncateFail
		e := newTestEngine(t, cfg, &mockAlgorithm{method: MethodContent, scores: scores})

		_, err := e.Recommend(context.Background(), seedRequest(10))
		var insufficient *InsufficientCatalogError
		if !errors.As(err, &insufficient) {
			t.Fatalf("Recommend() error = %v, want *InsufficientCatalogError", err)
		}
		if insufficient.Requested != 10 || insufficient.Available != 2 {
			t.Errorf("got %+v, want Requested 10 Available 2", insufficient)
		}
	})

	t.Run("only seeds scored", func(t *testing.T) {
		e := newTestEngine(t, nil, &mockAlgorithm{method: MethodContent, scores: map[int]float64{1: 1, 2: 1}})
		_, err := e.Recommend(context.Background(), seedRequest(10))
		var empty *EmptyResultError
		if !errors.As(err, &empty) {
			t.Errorf("Recommend() error = %v, want *EmptyResultError", err)
		}
	})
}

func TestEngine_ModelErrorPropagates(t *testing.T) {
	want := &NoAffinityUsersError{Seeds: []string{"One"}, Threshold: 4}
	e := newTestEngine(t, nil, &mockAlgorithm{method: MethodCollaborative, scoreErr: want})

	req := seedRequest(3)
	req.Method = MethodCollaborative
	_, err := e.Recommend(context.Background(), req)

	var got *NoAffinityUsersError
	if !errors.As(err, &got) {
		t.Fatalf("Recommend() error = %v, want *NoAffinityUsersError", err)
	}
	if e.Stats().Errors != 1 {
		t.Errorf("Stats().Errors = %d, want 1", e.Stats().Errors)
	}
}

func TestEngine_Cache(t *testing.T) {
	alg := &mockAlgorithm{method: MethodContent, scores: map[int]float64{4: 0.3, 5: 0.2, 6: 0.1}}
	e := newTestEngine(t, nil, alg)

	first, err := e.Recommend(context.Background(), seedRequest(3))
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	second, err := e.Recommend(context.Background(), seedRequest(3))
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	if alg.scored.Load() != 1 {
		t.Errorf("model scored %d times, want 1", alg.scored.Load())
	}
	if !second.Metadata.CacheHit || first.Metadata.CacheHit {
		t.Error("expected only the second response to be a cache hit")
	}
	if !reflect.DeepEqual(first.Items, second.Items) {
		t.Error("cached items differ from computed items")
	}

	stats := e.Stats()
	if stats.CacheHits != 1 || stats.CacheMisses != 1 {
		t.Errorf("Stats() = %+v, want 1 hit and 1 miss", stats)
	}

	// A reload bumps the snapshot version, so the next request recomputes.
	cat, idx := testData(t)
	if err := e.Load(context.Background(), cat, idx); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	third, err := e.Recommend(context.Background(), seedRequest(3))
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if third.Metadata.CacheHit || third.Metadata.SnapshotVersion != 2 {
		t.Errorf("after reload CacheHit=%v version=%d, want false and 2", third.Metadata.CacheHit, third.Metadata.SnapshotVersion)
	}
}

func TestEngine_CachedResponseIsolated(t *testing.T) {
	alg := &mockAlgorithm{method: MethodContent, scores: map[int]float64{4: 0.3, 5: 0.2, 6: 0.1}}
	e := newTestEngine(t, nil, alg)

	first, err := e.Recommend(context.Background(), seedRequest(3))
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	want := first.Titles()
	first.Items[0].Title = "edited"
	first.Metadata.Seeds[0] = "edited"

	second, err := e.Recommend(context.Background(), seedRequest(3))
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if !second.Metadata.CacheHit {
		t.Fatal("second response is not a cache hit")
	}
	if got := second.Titles(); !reflect.DeepEqual(got, want) {
		t.Errorf("cached Titles() = %v, want %v", got, want)
	}
	if second.Metadata.Seeds[0] != "One" {
		t.Errorf("cached Seeds[0] = %q, want One", second.Metadata.Seeds[0])
	}

	second.Items[1].Score = -1
	third, err := e.Recommend(context.Background(), seedRequest(3))
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if third.Items[1].Score != 0.2 {
		t.Errorf("third Items[1].Score = %v, want 0.2", third.Items[1].Score)
	}
}

func TestEngine_CacheEntriesGauge(t *testing.T) {
	alg := &mockAlgorithm{method: MethodContent, scores: map[int]float64{4: 0.3, 5: 0.2, 6: 0.1}}
	e := newTestEngine(t, nil, alg)

	for _, n := range []int{1, 2, 2} {
		if _, err := e.Recommend(context.Background(), seedRequest(n)); err != nil {
			t.Fatalf("Recommend() error = %v", err)
		}
	}
	if got := testutil.ToFloat64(metrics.RecommendCacheEntries); got != 2 {
		t.Errorf("cache entries gauge = %v, want 2", got)
	}

	cat, idx := testData(t)
	if err := e.Load(context.Background(), cat, idx); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := testutil.ToFloat64(metrics.RecommendCacheEntries); got != 0 {
		t.Errorf("cache entries gauge after reload = %v, want 0", got)
	}
}

func TestEngine_LargeTopN(t *testing.T) {
	const size = 150
	movies := make([]catalog.Movie, size)
	scores := make(map[int]float64, size)
	for i := range movies {
		id := i + 1
		movies[i] = catalog.Movie{ID: id, Title: fmt.Sprintf("Movie %03d", id), Genres: []string{"Drama"}}
		scores[id] = float64(size-id) / size
	}
	cat, err := catalog.New(movies)
	if err != nil {
		t.Fatalf("catalog.New() error = %v", err)
	}
	idx, err := ratings.NewIndex(ratings.DefaultScale, []ratings.Rating{{UserID: 1, MovieID: 1, Score: 5}})
	if err != nil {
		t.Fatalf("ratings.NewIndex() error = %v", err)
	}

	e, err := NewEngine(nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	e.Register(&mockAlgorithm{method: MethodContent, scores: scores})
	if err := e.Load(context.Background(), cat, idx); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	seeds := []string{"Movie 001", "Movie 002", "Movie 003"}
	tests := []struct {
		topN          int
		wantLen       int
		wantTruncated bool
	}{
		{topN: 101, wantLen: 101},
		{topN: 120, wantLen: 120},
		{topN: size - 3, wantLen: size - 3},
		{topN: size, wantLen: size - 3, wantTruncated: true},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("top_n=%d", tt.topN), func(t *testing.T) {
			resp, err := e.Recommend(context.Background(), Request{Method: MethodContent, Titles: seeds, TopN: tt.topN})
			if err != nil {
				t.Fatalf("Recommend() error = %v", err)
			}
			if len(resp.Items) != tt.wantLen || resp.Metadata.Truncated != tt.wantTruncated {
				t.Errorf("len = %d truncated = %v, want %d %v", len(resp.Items), resp.Metadata.Truncated, tt.wantLen, tt.wantTruncated)
			}
			if resp.Items[0].Title != "Movie 004" {
				t.Errorf("first = %q, want Movie 004", resp.Items[0].Title)
			}
		})
	}
}

func TestEngine_ConfiguredMaxTopN(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxTopN = 10
	alg := &mockAlgorithm{method: MethodContent, scores: map[int]float64{4: 1}}
	e := newTestEngine(t, cfg, alg)

	if _, err := e.Recommend(context.Background(), seedRequest(11)); !errors.Is(err, ErrInvalidTopN) {
		t.Errorf("Recommend(11) error = %v, want ErrInvalidTopN", err)
	}
	if _, err := e.Recommend(context.Background(), seedRequest(10)); err != nil {
		t.Errorf("Recommend(10) error = %v", err)
	}
}

func TestEngine_CacheDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Cache.Enabled = false
	alg := &mockAlgorithm{method: MethodContent, scores: map[int]float64{4: 1}}
	e := newTestEngine(t, cfg, alg)

	for i := 0; i < 3; i++ {
		if _, err := e.Recommend(context.Background(), seedRequest(1)); err != nil {
			t.Fatalf("Recommend() error = %v", err)
		}
	}
	if alg.scored.Load() != 3 {
		t.Errorf("model scored %d times, want 3", alg.scored.Load())
	}
}

func TestEngine_LoadFailureKeepsPreviousSnapshot(t *testing.T) {
	good := &mockAlgorithm{method: MethodContent, scores: map[int]float64{4: 1}}
	e := newTestEngine(t, nil, good)

	bad := &mockAlgorithm{method: MethodCollaborative, prepareErr: &EmptyFeatureError{MovieID: 9, Title: "Blank"}}
	e.Register(bad)

	cat, idx := testData(t)
	err := e.Load(context.Background(), cat, idx)
	var featErr *EmptyFeatureError
	if !errors.As(err, &featErr) {
		t.Fatalf("Load() error = %v, want *EmptyFeatureError", err)
	}

	if snap := e.Snapshot(); snap == nil || snap.Version != 1 {
		t.Error("failed load replaced the current snapshot")
	}
	if _, err := e.Recommend(context.Background(), seedRequest(1)); err != nil {
		t.Errorf("Recommend() after failed load error = %v", err)
	}
}

func TestEngine_LoadRequiresData(t *testing.T) {
	e, err := NewEngine(nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	if err := e.Load(context.Background(), nil, nil); err == nil {
		t.Error("expected error for nil data")
	}
}

func TestEngine_Reload(t *testing.T) {
	e, err := NewEngine(nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	e.Register(&mockAlgorithm{method: MethodContent, scores: map[int]float64{4: 1}})

	if err := e.Reload(context.Background()); err == nil {
		t.Error("Reload() without source should fail")
	}

	var calls atomic.Int32
	e.SetSource(SourceFunc(func(ctx context.Context) (*catalog.Catalog, *ratings.Index, error) {
		calls.Add(1)
		cat, idx := testData(t)
		return cat, idx, nil
	}))

	for i := 0; i < 2; i++ {
		if err := e.Reload(context.Background()); err != nil {
			t.Fatalf("Reload() error = %v", err)
		}
	}
	if calls.Load() != 2 {
		t.Errorf("source called %d times, want 2", calls.Load())
	}
	if e.Snapshot().Version != 2 {
		t.Errorf("Version = %d, want 2", e.Snapshot().Version)
	}

	wantErr := errors.New("disk gone")
	e.SetSource(SourceFunc(func(ctx context.Context) (*catalog.Catalog, *ratings.Index, error) {
		return nil, nil, wantErr
	}))
	if err := e.Reload(context.Background()); !errors.Is(err, wantErr) {
		t.Errorf("Reload() error = %v, want %v", err, wantErr)
	}
	if e.Snapshot().Version != 2 {
		t.Error("failed reload changed the snapshot")
	}
}

func TestEngine_RegisterReplacesMethod(t *testing.T) {
	e, err := NewEngine(nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	e.Register(&mockAlgorithm{method: MethodContent})
	e.Register(&mockAlgorithm{method: MethodCollaborative})
	e.Register(&mockAlgorithm{method: MethodContent})

	if got := e.Methods(); !reflect.DeepEqual(got, []Method{MethodContent, MethodCollaborative}) {
		t.Errorf("Methods() = %v", got)
	}
}

func TestEngine_CanceledContext(t *testing.T) {
	alg := &mockAlgorithm{method: MethodContent, scores: map[int]float64{4: 1}}
	e := newTestEngine(t, nil, alg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := e.Recommend(ctx, seedRequest(1)); !errors.Is(err, context.Canceled) {
		t.Errorf("Recommend() error = %v, want context.Canceled", err)
	}
}

func TestEngine_ConcurrentRecommendAndLoad(t *testing.T) {
	alg := &mockAlgorithm{method: MethodContent, scores: map[int]float64{4: 0.9, 5: 0.8, 6: 0.7}}
	e := newTestEngine(t, nil, alg)
	cat, idx := testData(t)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				resp, err := e.Recommend(context.Background(), seedRequest(3))
				if err != nil {
					t.Errorf("Recommend() error = %v", err)
					return
				}
				if got := resp.Titles(); !reflect.DeepEqual(got, []string{"Four", "Five", "Six"}) {
					t.Errorf("Titles() = %v", got)
					return
				}
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 10; i++ {
			if err := e.Load(context.Background(), cat, idx); err != nil {
				t.Errorf("Load() error = %v", err)
				return
			}
		}
	}()
	wg.Wait()
}
