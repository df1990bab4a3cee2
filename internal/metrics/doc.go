// Screenpick - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/screenpick

/*
Package metrics provides Prometheus metrics collection and export.

Collectors are package-level promauto values registered with the default
registry; callers use the RecordX and SetX helpers instead of touching the
collectors directly.

# Available Metrics

Recommendation Metrics:
  - recommendations_total: Requests by method and outcome (counter)
    Labels: method, outcome (success or an API error code)
  - recommendation_duration_seconds: Serve latency (histogram)
    Labels: method
  - recommendation_result_size: Movies returned (histogram)
    Labels: method
  - recommend_cache_hits_total, recommend_cache_misses_total (counter)
    Labels: method
  - recommend_cache_entries: Cached lists (gauge)

Snapshot Metrics:
  - snapshot_reloads_total: Reload attempts (counter)
    Labels: outcome
  - snapshot_reload_duration_seconds (histogram)
  - snapshot_version, snapshot_last_success_timestamp (gauge)
  - snapshot_size: Entity counts (gauge)
    Labels: entity (movies, ratings, users, genres)

Database Metrics:
  - duckdb_query_duration_seconds, duckdb_query_errors_total
    Labels: operation, table
  - duckdb_rows_loaded_total, duckdb_rows_skipped_total
    Labels: table, reason

API Metrics:
  - api_requests_total, api_request_duration_seconds
    Labels: method, endpoint (chi route pattern), status_code
  - api_active_requests (gauge)
  - api_rate_limit_hits_total
    Labels: endpoint

Event Metrics:
  - events_published_total: Labels: topic, outcome
  - events_consumed_total: Labels: topic, handler, outcome

Circuit Breaker Metrics:
  - circuit_breaker_state: 0=closed, 1=half-open, 2=open
  - circuit_breaker_transitions_total: Labels: name, from, to

# Cardinality

Endpoint labels use the chi route pattern, never the raw path. Method
labels come from the closed set of registered algorithms.

# Thread Safety

All helpers are safe for concurrent use.
*/
package metrics
