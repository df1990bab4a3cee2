// Screenpick - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/screenpick

/*
Package middleware provides HTTP middleware for the API server.

Middleware here has the http.HandlerFunc shape and is adapted to chi with
a small wrapper in the api package.

# Available Middleware

  - RequestID: assigns X-Request-ID and seeds the logging context with
    request_id and correlation_id
  - PrometheusMetrics: request count, latency and in-flight gauge labelled
    by chi route pattern
  - AccessLog: one structured log line per request

# Ordering

RequestID must run before AccessLog so log lines carry the request ID:

	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chiMiddleware(middleware.AccessLog))
	r.Use(chiMiddleware(middleware.PrometheusMetrics))
*/
package middleware
