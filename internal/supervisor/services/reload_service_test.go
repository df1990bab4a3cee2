// Screenpick - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/screenpick

package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/screenpick/internal/catalog"
	"github.com/tomtom215/screenpick/internal/metrics"
	"github.com/tomtom215/screenpick/internal/ratings"
	"github.com/tomtom215/screenpick/internal/recommend"
)

// fakeLoader fails while err is set and otherwise bumps the snapshot version.
type fakeLoader struct {
	mu    sync.Mutex
	err   error
	calls int
	snap  *recommend.Snapshot
	cat   *catalog.Catalog
	idx   *ratings.Index
}

func newFakeLoader(t *testing.T) *fakeLoader {
	t.Helper()
	cat, err := catalog.New([]catalog.Movie{
		{ID: 1, Title: "Heat (1995)", Genres: []string{"Action", "Crime"}},
		{ID: 2, Title: "Casino (1995)", Genres: []string{"Crime", "Drama"}},
	})
	if err != nil {
		t.Fatalf("catalog.New() error = %v", err)
	}
	idx, err := ratings.NewIndex(ratings.DefaultScale, []ratings.Rating{
		{UserID: 1, MovieID: 1, Score: 4},
		{UserID: 2, MovieID: 2, Score: 5},
	})
	if err != nil {
		t.Fatalf("ratings.NewIndex() error = %v", err)
	}
	return &fakeLoader{cat: cat, idx: idx}
}

func (f *fakeLoader) Reload(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return f.err
	}
	var version int64 = 1
	if f.snap != nil {
		version = f.snap.Version + 1
	}
	f.snap = &recommend.Snapshot{Catalog: f.cat, Ratings: f.idx, Version: version, LoadedAt: time.Now()}
	return nil
}

func (f *fakeLoader) Snapshot() *recommend.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snap
}

func (f *fakeLoader) setErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *fakeLoader) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

var _ suture.Service = (*ReloadService)(nil)

func TestReloadService_ReloadNow(t *testing.T) {
	loader := newFakeLoader(t)
	svc := NewReloadService(loader, ReloadServiceConfig{}, zerolog.Nop())

	if err := svc.ReloadNow(context.Background()); err != nil {
		t.Fatalf("ReloadNow() error = %v", err)
	}
	if got := loader.Snapshot().Version; got != 1 {
		t.Errorf("version = %d, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.SnapshotVersion); got != 1 {
		t.Errorf("snapshot_version = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.SnapshotSize.WithLabelValues("movies")); got != 2 {
		t.Errorf("snapshot_size{movies} = %v, want 2", got)
	}
	if svc.BreakerState() != "closed" {
		t.Errorf("BreakerState() = %q, want closed", svc.BreakerState())
	}
}

func TestReloadService_BreakerOpens(t *testing.T) {
	loader := newFakeLoader(t)
	loader.setErr(errors.New("ratings.csv: no such file"))
	svc := NewReloadService(loader, ReloadServiceConfig{
		BreakerFailures: 2,
		BreakerTimeout:  50 * time.Millisecond,
	}, zerolog.Nop())

	for i := 0; i < 2; i++ {
		if err := svc.ReloadNow(context.Background()); err == nil {
			t.Fatalf("reload %d succeeded, want failure", i+1)
		}
	}
	if svc.BreakerState() != "open" {
		t.Fatalf("BreakerState() = %q, want open", svc.BreakerState())
	}
	if got := testutil.ToFloat64(metrics.CircuitBreakerState.WithLabelValues(breakerName)); got != 2 {
		t.Errorf("circuit_breaker_state = %v, want 2", got)
	}

	// Rejected without touching the loader
	err := svc.ReloadNow(context.Background())
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("ReloadNow() = %v, want ErrOpenState", err)
	}
	if loader.callCount() != 2 {
		t.Errorf("loader calls = %d, want 2", loader.callCount())
	}

	// Trial reload after the timeout closes the circuit
	loader.setErr(nil)
	time.Sleep(80 * time.Millisecond)
	if err := svc.ReloadNow(context.Background()); err != nil {
		t.Fatalf("trial reload error = %v", err)
	}
	if svc.BreakerState() != "closed" {
		t.Errorf("BreakerState() = %q, want closed", svc.BreakerState())
	}
}

func TestReloadService_CanceledReloadDoesNotTrip(t *testing.T) {
	loader := newFakeLoader(t)
	loader.setErr(context.Canceled)
	svc := NewReloadService(loader, ReloadServiceConfig{BreakerFailures: 1}, zerolog.Nop())

	_ = svc.ReloadNow(context.Background())
	if svc.BreakerState() != "closed" {
		t.Errorf("BreakerState() = %q, want closed", svc.BreakerState())
	}
}

func TestReloadService_Serve(t *testing.T) {
	t.Run("loads on startup and on schedule", func(t *testing.T) {
		loader := newFakeLoader(t)
		svc := NewReloadService(loader, ReloadServiceConfig{
			LoadOnStartup: true,
			Interval:      20 * time.Millisecond,
		}, zerolog.Nop())

		ctx, cancel := context.WithTimeout(context.Background(), 110*time.Millisecond)
		defer cancel()

		if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("Serve() = %v, want context.DeadlineExceeded", err)
		}
		if loader.callCount() < 3 {
			t.Errorf("loader calls = %d, want >= 3", loader.callCount())
		}
	})

	t.Run("failed startup load is returned for restart", func(t *testing.T) {
		loader := newFakeLoader(t)
		loader.setErr(errors.New("movies.csv: permission denied"))
		svc := NewReloadService(loader, ReloadServiceConfig{LoadOnStartup: true}, zerolog.Nop())

		err := svc.Serve(context.Background())
		if err == nil {
			t.Fatal("Serve() = nil, want startup error")
		}
	})

	t.Run("existing snapshot skips the startup load", func(t *testing.T) {
		loader := newFakeLoader(t)
		_ = loader.Reload(context.Background())
		svc := NewReloadService(loader, ReloadServiceConfig{LoadOnStartup: true}, zerolog.Nop())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
		defer cancel()
		_ = svc.Serve(ctx)

		if loader.callCount() != 1 {
			t.Errorf("loader calls = %d, want 1", loader.callCount())
		}
	})
}
