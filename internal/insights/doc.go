// Screenpick - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/screenpick

// Package insights provides read-only catalog analytics: top rated movies
// by genre, releases per year and the genre distribution.
//
// Genre filters are composed from catalog.Predicate values looked up by
// name, combined with catalog.MatchAll or catalog.MatchAny.
package insights
