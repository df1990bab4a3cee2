// Screenpick - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/screenpick

/*
Package services provides suture.Service wrappers for Screenpick components.

  - ReloadService: initial snapshot load, scheduled reloads and the admin
    reload, all behind a gobreaker circuit ("snapshot-reload"). It satisfies
    api.Reloader.
  - EventRouterService: runs the watermill router of the event bus.
  - HTTPServerService: ListenAndServe with graceful Shutdown.

Return values follow suture: ctx.Err() on shutdown, any other error asks
for a restart.
*/
package services
