// Screenpick - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/screenpick

// Package logging provides zerolog-based structured logging for Screenpick.
//
// JSON output is the default; console output is available for local
// development. The global logger is configured once at startup:
//
//	logging.Init(logging.Config{Level: "info", Format: "json", Timestamp: true})
//	logging.Info().Int("movies", n).Msg("Catalog loaded")
//
// # Request-scoped logging
//
// The HTTP request ID middleware stores a request ID and a short correlation
// ID in the request context. Ctx returns a logger carrying both:
//
//	logging.Ctx(r.Context()).Warn().Err(err).Msg("Recommendation failed")
//
// # slog bridge
//
// SlogHandler forwards slog records to zerolog so that the supervisor tree
// (sutureslog) and the event router (watermill) write to the same stream.
package logging
