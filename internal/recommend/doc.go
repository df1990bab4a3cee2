// Screenpick - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/screenpick

// Package recommend ranks movies from three favorite titles.
//
// # Architecture
//
// The engine owns an immutable Snapshot (catalog plus rating index) and one
// prepared Model per registered method:
//
//   - content: cosine similarity between genre/tag vectors and the average
//     of the three seed vectors
//   - collaborative: mean rating given by users who liked at least one seed
//
// Both methods hand their candidate scores to SelectTopN, which orders by
// score descending and movie ID ascending, so equal inputs always produce
// the same list.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logger)
//	engine.Register(algorithms.NewContentBased(cfg.Content))
//	engine.Register(algorithms.NewCollaborative(cfg.Collaborative))
//	if err := engine.Load(ctx, cat, idx); err != nil { ... }
//
//	resp, err := engine.Recommend(ctx, recommend.Request{
//	    Method: recommend.MethodContent,
//	    Titles: []string{"Heat (1995)", "Casino (1995)", "Se7en (1995)"},
//	    TopN:   10,
//	})
//
// # Thread Safety
//
// Snapshots and models are read-only once published. Load swaps the pair
// through an atomic pointer, so requests in flight keep the snapshot they
// started with and never see a partially prepared state.
package recommend
