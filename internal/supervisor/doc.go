// Screenpick - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/screenpick

/*
Package supervisor runs the long-lived parts of Screenpick under a suture v4
supervisor tree.

	RootSupervisor ("screenpick")
	├── DataSupervisor ("data-layer")
	│   └── ReloadService (initial load, periodic reloads, circuit breaker)
	├── MessagingSupervisor ("messaging-layer")
	│   └── EventRouterService (watermill router for served recommendations)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Each layer counts failures on its own. A reload that panics or an event
router that dies is restarted without touching the HTTP server, which keeps
answering from the last loaded snapshot.

Supervisor events (start, stop, restart, backoff) are logged through
sutureslog, which writes into the zerolog logger via the slog adapter in
internal/logging.

Service return values follow suture:

	nil / ctx.Err()  stopped, not restarted
	other error      crashed, restarted after backoff

DuckDB is not supervised. It is an embedded library owned by the database
package and is only touched during a reload.
*/
package supervisor
