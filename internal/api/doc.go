// Screenpick - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/screenpick

/*
Package api provides the HTTP REST API of Screenpick.

Routes (all JSON in the models.APIResponse envelope):

	GET  /api/v1/health, /api/v1/health/live, /api/v1/health/ready
	POST /api/v1/recommendations
	GET  /api/v1/recommendations/methods
	GET  /api/v1/movies?q=&genres=&match=&limit=&offset=
	GET  /api/v1/movies/suggest?prefix=&limit=
	GET  /api/v1/movies/{id}
	GET  /api/v1/genres
	GET  /api/v1/insights/top-rated?genres=&match=&year=&sort=&limit=
	GET  /api/v1/insights/releases?genres=&match=
	GET  /api/v1/insights/genre-shares
	GET  /api/v1/insights/popular-seeds?limit=
	GET  /api/v1/insights/summary
	POST /api/v1/admin/reload
	GET  /metrics, /swagger/*

Domain errors are mapped to status codes in one place (classifyError):

	UNKNOWN_MOVIE         404
	NO_AFFINITY_USERS     422
	INSUFFICIENT_CATALOG  422
	EMPTY_RESULT          422
	VALIDATION_ERROR      400
	UNKNOWN_GENRE         400
	NOT_READY             503

Middleware comes from the chi ecosystem (RealIP, Recoverer, go-chi/cors,
go-chi/httprate) plus the request ID, access log and Prometheus
middleware of the internal/middleware package.

Every successful recommendation is published to the event bus when one is
attached with SetEventPublisher. A publish failure is logged and never
fails the request.
*/
package api
