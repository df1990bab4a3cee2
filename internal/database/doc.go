// Screenpick - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/screenpick

// Package database loads the movie catalog and ratings through DuckDB.
//
// Store imports MovieLens-style CSV files with read_csv_auto into three
// tables and reads them back as typed rows:
//
//	movies   movie_id, title, genres   (genres separated by "|")
//	ratings  user_id, movie_id, rating
//	tags     movie_id, tag             (optional)
//
// The database is in-memory unless a path is configured. Each Load replaces
// the tables, so a reload always reflects the current files.
//
// Store implements recommend.Source:
//
//	store, err := database.New(&cfg.Database, database.Files{
//		Movies:  cfg.Data.MoviesPath,
//		Ratings: cfg.Data.RatingsPath,
//		Tags:    cfg.Data.TagsPath,
//	}, scale, logger)
//	engine.SetSource(store)
//	err = engine.Reload(ctx)
package database
