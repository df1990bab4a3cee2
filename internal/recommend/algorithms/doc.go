// Screenpick - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/screenpick

// Package algorithms implements the recommendation strategies.
//
// Each algorithm implements the recommend.Algorithm interface and is
// registered with the engine, which calls Prepare once per snapshot and
// then scores requests against the returned model.
//
// # Algorithms
//
//   - ContentBased: cosine similarity of genre/tag vectors to the averaged
//     seed vector
//   - Collaborative: mean rating of candidates among users who liked at
//     least one seed
//
// # Thread Safety
//
// Prepared models only read the snapshot they were built from and are safe
// for concurrent use.
package algorithms
