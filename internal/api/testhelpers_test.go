// Screenpick - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/screenpick

package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/screenpick/internal/catalog"
	"github.com/tomtom215/screenpick/internal/events"
	"github.com/tomtom215/screenpick/internal/insights"
	"github.com/tomtom215/screenpick/internal/models"
	"github.com/tomtom215/screenpick/internal/ratings"
	"github.com/tomtom215/screenpick/internal/recommend"
)

// stubEngine is a Recommender with canned results.
type stubEngine struct {
	mu      sync.Mutex
	snap    *recommend.Snapshot
	resp    *recommend.Response
	err     error
	lastReq recommend.Request
	calls   int
}

func (s *stubEngine) Recommend(ctx context.Context, req recommend.Request) (*recommend.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	resp := *s.resp
	resp.Metadata.Method = req.Method
	resp.Metadata.Seeds = req.Titles
	resp.Metadata.RequestID = req.RequestID
	return &resp, nil
}

func (s *stubEngine) Methods() []recommend.Method {
	return []recommend.Method{recommend.MethodContent, recommend.MethodCollaborative}
}

func (s *stubEngine) Snapshot() *recommend.Snapshot { return s.snap }

func (s *stubEngine) Ready() bool { return s.snap != nil }

// stubPublisher records published events.
type stubPublisher struct {
	mu     sync.Mutex
	events []*events.RecommendationServed
	err    error
}

func (p *stubPublisher) Publish(ctx context.Context, evt *events.RecommendationServed) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, evt)
	return nil
}

type stubReloader struct {
	err   error
	state string
	calls int
}

func (r *stubReloader) ReloadNow(ctx context.Context) error {
	r.calls++
	return r.err
}

func (r *stubReloader) BreakerState() string { return r.state }

type stubPinger struct{ err error }

func (p stubPinger) Ping(ctx context.Context) error { return p.err }

func testMovies() []catalog.Movie {
	return []catalog.Movie{
		{ID: 1, Title: "Heat (1995)", Genres: []string{"Action", "Crime"}},
		{ID: 2, Title: "Casino (1995)", Genres: []string{"Crime", "Drama"}},
		{ID: 3, Title: "Se7en (1995)", Genres: []string{"Mystery", "Thriller"}},
		{ID: 4, Title: "Toy Story (1995)", Genres: []string{"Animation", "Comedy"}},
		{ID: 5, Title: "Goodfellas (1990)", Genres: []string{"Crime", "Drama"}},
		{ID: 6, Title: "Ronin (1998)", Genres: []string{"Action", "Crime", "Thriller"}},
		{ID: 7, Title: "Fargo (1996)", Genres: []string{"Comedy", "Crime", "Drama", "Thriller"}},
		{ID: 8, Title: "Zodiac (2007)", Genres: []string{"Crime", "Mystery", "Thriller"}},
	}
}

func testRatings() []ratings.Rating {
	return []ratings.Rating{
		{UserID: 1, MovieID: 1, Score: 5},
		{UserID: 1, MovieID: 5, Score: 4.5},
		{UserID: 1, MovieID: 6, Score: 4},
		{UserID: 2, MovieID: 2, Score: 4},
		{UserID: 2, MovieID: 5, Score: 5},
		{UserID: 2, MovieID: 8, Score: 4},
		{UserID: 3, MovieID: 3, Score: 4.5},
		{UserID: 3, MovieID: 7, Score: 4},
		{UserID: 3, MovieID: 8, Score: 5},
	}
}

func testSnapshot(t *testing.T) *recommend.Snapshot {
	t.Helper()
	cat, err := catalog.New(testMovies())
	if err != nil {
		t.Fatalf("catalog.New() error = %v", err)
	}
	idx, err := ratings.NewIndex(ratings.DefaultScale, testRatings())
	if err != nil {
		t.Fatalf("ratings.NewIndex() error = %v", err)
	}
	return &recommend.Snapshot{
		Catalog:  cat,
		Ratings:  idx,
		Version:  1,
		LoadedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func cannedResponse() *recommend.Response {
	return &recommend.Response{
		Items: []recommend.Recommendation{
			{MovieID: 5, Title: "Goodfellas (1990)", Score: 0.9},
			{MovieID: 8, Title: "Zodiac (2007)", Score: 0.7},
		},
		Metadata: recommend.ResponseMetadata{TopN: 2, SnapshotVersion: 1},
	}
}

func newTestHandler(t *testing.T, engine *stubEngine) *Handler {
	t.Helper()
	return NewHandler(engine, insights.NewService(engine, insights.DefaultConfig()), DefaultHandlerConfig())
}

// testEnvelope decodes the response envelope with raw data.
type testEnvelope struct {
	Status   string           `json:"status"`
	Data     json.RawMessage  `json:"data"`
	Metadata models.Metadata  `json:"metadata"`
	Error    *models.APIError `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) testEnvelope {
	t.Helper()
	var env testEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response: %v (body %s)", err, rec.Body.String())
	}
	return env
}

func decodeData(t *testing.T, env testEnvelope, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, v); err != nil {
		t.Fatalf("decode data: %v (data %s)", err, env.Data)
	}
}

func serve(h http.Handler, method, target string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		data, _ := json.Marshal(b)
		buf.Write(data)
	}
	req := httptest.NewRequest(method, target, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
