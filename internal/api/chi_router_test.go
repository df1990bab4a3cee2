// Screenpick - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/screenpick

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/screenpick/internal/catalog"
	"github.com/tomtom215/screenpick/internal/insights"
	"github.com/tomtom215/screenpick/internal/ratings"
	"github.com/tomtom215/screenpick/internal/recommend"
	"github.com/tomtom215/screenpick/internal/recommend/algorithms"
)

func TestNewChiMiddleware_DefaultConfig(t *testing.T) {
	m := NewChiMiddleware(nil)
	if m.config == nil {
		t.Fatal("config is nil")
	}
	if len(m.config.CORSAllowedOrigins) != 0 {
		t.Errorf("CORSAllowedOrigins = %v, want []", m.config.CORSAllowedOrigins)
	}
	if m.config.RateLimitRequests != 100 || m.config.RateLimitWindow != time.Minute {
		t.Errorf("rate limit = %d/%v, want 100/1m", m.config.RateLimitRequests, m.config.RateLimitWindow)
	}
}

func TestRouter_RateLimit(t *testing.T) {
	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitRequests = 2
	cfg.AdminRateLimitRequests = 1
	router := NewRouter(newTestHandler(t, &stubEngine{snap: testSnapshot(t)}), cfg).SetupChi()

	for i := 0; i < 2; i++ {
		if rec := serve(router, http.MethodGet, "/api/v1/genres", nil); rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d, want 200", i+1, rec.Code)
		}
	}
	rec := serve(router, http.MethodGet, "/api/v1/genres", nil)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Error == nil || env.Error.Code != CodeRateLimited {
		t.Errorf("error = %+v, want RATE_LIMITED", env.Error)
	}

	// Health probes are exempt
	for i := 0; i < 5; i++ {
		if rec := serve(router, http.MethodGet, "/api/v1/health/live", nil); rec.Code != http.StatusOK {
			t.Fatalf("health probe %d status = %d", i+1, rec.Code)
		}
	}
}

func TestRouter_AdminRateLimit(t *testing.T) {
	cfg := DefaultChiMiddlewareConfig()
	cfg.AdminRateLimitRequests = 1
	h := newTestHandler(t, &stubEngine{snap: testSnapshot(t)})
	h.SetReloader(&stubReloader{state: "closed"})
	router := NewRouter(h, cfg).SetupChi()

	if rec := serve(router, http.MethodPost, "/api/v1/admin/reload", nil); rec.Code != http.StatusOK {
		t.Fatalf("first reload status = %d", rec.Code)
	}
	if rec := serve(router, http.MethodPost, "/api/v1/admin/reload", nil); rec.Code != http.StatusTooManyRequests {
		t.Errorf("second reload status = %d, want 429", rec.Code)
	}
}

func TestRouter_RateLimitDisabled(t *testing.T) {
	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitRequests = 1
	cfg.RateLimitDisabled = true
	router := NewRouter(newTestHandler(t, &stubEngine{snap: testSnapshot(t)}), cfg).SetupChi()

	for i := 0; i < 5; i++ {
		if rec := serve(router, http.MethodGet, "/api/v1/genres", nil); rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d, want 200", i+1, rec.Code)
		}
	}
}

func TestRouter_CORS(t *testing.T) {
	cfg := noLimitConfig()
	cfg.CORSAllowedOrigins = []string{"https://app.example.com"}
	router := NewRouter(newTestHandler(t, &stubEngine{snap: testSnapshot(t)}), cfg).SetupChi()

	tests := []struct {
		origin string
		want   string
	}{
		{origin: "https://app.example.com", want: "https://app.example.com"},
		{origin: "https://evil.example.com", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, "/api/v1/recommendations", nil)
			req.Header.Set("Origin", tt.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.want {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRouter_SecurityHeadersAndNotFound(t *testing.T) {
	router := testRouter(newTestHandler(t, &stubEngine{snap: testSnapshot(t)}))

	rec := serve(router, http.MethodGet, "/api/v1/genres", nil)
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" || rec.Header().Get("X-Frame-Options") != "DENY" {
		t.Errorf("security headers missing: %v", rec.Header())
	}
	if rec.Header().Get("ETag") == "" {
		t.Error("ETag missing")
	}

	rec = serve(router, http.MethodGet, "/api/v1/nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Error == nil || env.Error.Code != "NOT_FOUND" {
		t.Errorf("error = %+v", env.Error)
	}

	rec = serve(router, http.MethodGet, "/api/v1/recommendations", nil)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET recommendations status = %d, want 405", rec.Code)
	}
}

func TestRouter_Metrics(t *testing.T) {
	router := testRouter(newTestHandler(t, &stubEngine{snap: testSnapshot(t)}))
	_ = serve(router, http.MethodGet, "/api/v1/genres", nil)

	rec := serve(router, http.MethodGet, "/metrics", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `api_requests_total{endpoint="/api/v1/genres"`) {
		t.Error("metrics output lacks the genres route")
	}
}

func TestRouter_SwaggerToggle(t *testing.T) {
	r := NewRouter(newTestHandler(t, &stubEngine{}), noLimitConfig())
	r.SetSwaggerEnabled(false)

	rec := serve(r.SetupChi(), http.MethodGet, "/swagger/index.html", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 with swagger disabled", rec.Code)
	}
}

// TestRouter_EndToEnd runs a request through the real engine and
// algorithms.
func TestRouter_EndToEnd(t *testing.T) {
	engine, err := recommend.NewEngine(nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	cfg := engine.Config()
	engine.Register(algorithms.NewContentBased(cfg.Content))
	engine.Register(algorithms.NewCollaborative(cfg.Collaborative))

	cat, err := catalog.New(testMovies())
	if err != nil {
		t.Fatalf("catalog.New() error = %v", err)
	}
	idx, err := ratings.NewIndex(ratings.DefaultScale, testRatings())
	if err != nil {
		t.Fatalf("ratings.NewIndex() error = %v", err)
	}
	if err := engine.Load(context.Background(), cat, idx); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	h := NewHandler(engine, insights.NewService(engine, insights.DefaultConfig()), DefaultHandlerConfig())
	router := testRouter(h)
	seeds := []string{"Heat (1995)", "Casino (1995)", "Se7en (1995)"}

	for _, method := range []string{"content", "collaborative"} {
		t.Run(method, func(t *testing.T) {
			body := map[string]interface{}{"method": method, "titles": seeds, "top_n": 3}
			rec := serve(router, http.MethodPost, "/api/v1/recommendations", body)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d (body %s)", rec.Code, rec.Body.String())
			}

			var resp recommend.Response
			decodeData(t, decodeEnvelope(t, rec), &resp)
			if len(resp.Items) == 0 || len(resp.Items) > 3 {
				t.Fatalf("items = %d, want 1..3", len(resp.Items))
			}
			for _, item := range resp.Items {
				for _, s := range seeds {
					if item.Title == s {
						t.Errorf("seed %q returned as a recommendation", s)
					}
				}
			}

			// Same request again is served identically
			again := serve(router, http.MethodPost, "/api/v1/recommendations", body)
			var second recommend.Response
			decodeData(t, decodeEnvelope(t, again), &second)
			if strings.Join(second.Titles(), "|") != strings.Join(resp.Titles(), "|") {
				t.Errorf("second response %v differs from %v", second.Titles(), resp.Titles())
			}
		})
	}

	rec := serve(router, http.MethodPost, "/api/v1/recommendations", map[string]interface{}{
		"method": "content",
		"titles": []string{"Heat (1995)", "Casino (1995)", "Missing (2001)"},
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown seed status = %d, want 404", rec.Code)
	}
}
