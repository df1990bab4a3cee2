// Screenpick - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/screenpick

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

var (
	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table"},
	)

	DBRowsLoaded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_rows_loaded_total",
			Help: "Total number of rows read from imported CSV tables",
		},
		[]string{"table"},
	)

	DBRowsSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_rows_skipped_total",
			Help: "Rows dropped during load (duplicate titles, unknown movies)",
		},
		[]string{"table", "reason"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Recommendation Metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_total",
			Help: "Total number of recommendation requests",
		},
		[]string{"method", "outcome"}, // outcome: success, or the error code
	)

	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Time to compute or serve a recommendation list",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"method"},
	)

	RecommendationResultSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_result_size",
			Help:    "Number of movies returned per recommendation",
			Buckets: []float64{0, 1, 5, 10, 20, 50, 100},
		},
		[]string{"method"},
	)

	RecommendCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_cache_hits_total",
			Help: "Total number of recommendation cache hits",
		},
		[]string{"method"},
	)

	RecommendCacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_cache_misses_total",
			Help: "Total number of recommendation cache misses",
		},
		[]string{"method"},
	)

	RecommendCacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_cache_entries",
			Help: "Current number of cached recommendation lists",
		},
	)

	// Snapshot Metrics
	SnapshotReloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snapshot_reloads_total",
			Help: "Total number of snapshot reload attempts",
		},
		[]string{"outcome"},
	)

	SnapshotReloadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "snapshot_reload_duration_seconds",
			Help:    "Duration of snapshot reloads including CSV import and model preparation",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
	)

	SnapshotVersion = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "snapshot_version",
			Help: "Version of the currently loaded snapshot",
		},
	)

	SnapshotSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "snapshot_size",
			Help: "Entity counts of the loaded snapshot",
		},
		[]string{"entity"}, // movies, ratings, users, genres
	)

	SnapshotLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "snapshot_last_success_timestamp",
			Help: "Unix timestamp of the last successful snapshot load",
		},
	)

	// Event Metrics
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_published_total",
			Help: "Total number of events published to the in-process bus",
		},
		[]string{"topic", "outcome"},
	)

	EventsConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_consumed_total",
			Help: "Total number of events handled by router consumers",
		},
		[]string{"topic", "handler", "outcome"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)
)

func outcome(ok bool) string {
	if ok {
		return OutcomeSuccess
	}
	return OutcomeError
}

// RecordDBQuery records a database query metric
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table).Inc()
	}
}

// RecordRowsLoaded records rows read from a table and rows dropped by reason.
func RecordRowsLoaded(table string, loaded int, skipped map[string]int) {
	DBRowsLoaded.WithLabelValues(table).Add(float64(loaded))
	for reason, n := range skipped {
		if n > 0 {
			DBRowsSkipped.WithLabelValues(table, reason).Add(float64(n))
		}
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit counts a rejected request.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordRecommendation records one recommendation request. outcome is
// OutcomeSuccess or an error code; results is only observed on success.
func RecordRecommendation(method, outcome string, duration time.Duration, results int) {
	RecommendationsTotal.WithLabelValues(method, outcome).Inc()
	RecommendationDuration.WithLabelValues(method).Observe(duration.Seconds())
	if outcome == OutcomeSuccess {
		RecommendationResultSize.WithLabelValues(method).Observe(float64(results))
	}
}

// RecordCacheLookup records a recommendation cache hit or miss.
func RecordCacheLookup(method string, hit bool) {
	if hit {
		RecommendCacheHits.WithLabelValues(method).Inc()
	} else {
		RecommendCacheMisses.WithLabelValues(method).Inc()
	}
}

// SetCacheEntries updates the cache size gauge.
func SetCacheEntries(n int) {
	RecommendCacheEntries.Set(float64(n))
}

// RecordSnapshotReload records a reload attempt.
func RecordSnapshotReload(duration time.Duration, err error) {
	SnapshotReloads.WithLabelValues(outcome(err == nil)).Inc()
	SnapshotReloadDuration.Observe(duration.Seconds())
	if err == nil {
		SnapshotLastSuccess.Set(float64(time.Now().Unix()))
	}
}

// SetSnapshotStats publishes the size of the loaded snapshot.
func SetSnapshotStats(version int64, movies, ratings, users, genres int) {
	SnapshotVersion.Set(float64(version))
	SnapshotSize.WithLabelValues("movies").Set(float64(movies))
	SnapshotSize.WithLabelValues("ratings").Set(float64(ratings))
	SnapshotSize.WithLabelValues("users").Set(float64(users))
	SnapshotSize.WithLabelValues("genres").Set(float64(genres))
}

// RecordEventPublished records a publish attempt on the event bus.
func RecordEventPublished(topic string, ok bool) {
	EventsPublished.WithLabelValues(topic, outcome(ok)).Inc()
}

// RecordEventConsumed records a handled event.
func RecordEventConsumed(topic, handler string, ok bool) {
	EventsConsumed.WithLabelValues(topic, handler, outcome(ok)).Inc()
}

// SetCircuitBreakerState sets the state gauge (0=closed, 1=half-open, 2=open).
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// RecordCircuitBreakerTransition counts a state change.
func RecordCircuitBreakerTransition(name, from, to string) {
	CircuitBreakerTransitions.WithLabelValues(name, from, to).Inc()
}

// StatusLabel converts an HTTP status code to a label value.
func StatusLabel(code int) string {
	return strconv.Itoa(code)
}
