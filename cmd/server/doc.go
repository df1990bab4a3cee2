// Screenpick - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/screenpick

/*
Package main is the entry point for the Screenpick server.

Screenpick recommends movies from exactly three seed titles, either by
content similarity (genre and tag vectors) or collaboratively (what users
who liked the seeds also liked). Data comes from MovieLens-style CSV files
imported through an in-process DuckDB.

# Application Architecture

	RootSupervisor ("screenpick")
	├── DataSupervisor ("data-layer")
	│   └── ReloadService (initial load, scheduled reloads, circuit breaker)
	├── MessagingSupervisor ("messaging-layer")
	│   └── EventRouterService (optional, EVENTS_ENABLED)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Initialization order:

 1. Configuration: koanf defaults, config.yaml, environment
 2. Logging: zerolog, json or console
 3. Database: DuckDB store over the CSV files
 4. Engine: content and collaborative methods registered
 5. Insights, event bus and seed tally
 6. Supervisor tree and HTTP server

The HTTP server starts right away. Until the first snapshot is loaded,
/api/v1/health/ready answers 503 and recommendation requests fail with
NOT_READY.

# Configuration

	MOVIES_CSV=data/movies.csv
	RATINGS_CSV=data/ratings.csv
	TAGS_CSV=data/tags.csv         # optional
	RELOAD_INTERVAL=0              # 0 disables scheduled reloads
	HTTP_PORT=8501
	LOG_LEVEL=info
	LOG_FORMAT=json

See internal/config for the full list.

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains
in-flight requests for SHUTDOWN_TIMEOUT, the event router stops,
then the event bus and DuckDB are closed.
*/
package main
