// Screenpick - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/screenpick

package models

// RecommendRequest is the body of POST /api/v1/recommendations.
//
// top_n has no upper bound here; the engine applies the configured maximum
// and shortens the list when the catalog runs out.
type RecommendRequest struct {
	Method string   `json:"method" validate:"required,rec_method" example:"content"`
	Titles []string `json:"titles" validate:"required,len=3,unique,dive,required,max=500"`
	TopN   int      `json:"top_n,omitempty" validate:"omitempty,min=1" example:"10"`
}

// MovieQuery holds the query parameters of GET /api/v1/movies.
type MovieQuery struct {
	Query  string   `query:"q" validate:"max=200"`
	Genres []string `query:"genres" validate:"dive,required,max=100"`
	Match  string   `query:"match" validate:"genre_match"`
	Limit  int      `query:"limit" validate:"gte=0,lte=1000"`
	Offset int      `query:"offset" validate:"gte=0"`
}

// InsightsQuery holds the query parameters of the genre-filtered insight
// endpoints.
type InsightsQuery struct {
	Genres []string `query:"genres" validate:"dive,required,max=100"`
	Match  string   `query:"match" validate:"genre_match"`
	Limit  int      `query:"limit" validate:"gte=0,lte=10000"`
	Year   int      `query:"year" validate:"gte=0,lte=9999"`
	Sort   string   `query:"sort" validate:"omitempty,oneof=rating count"`
}

// SuggestQuery holds the query parameters of GET /api/v1/movies/suggest.
type SuggestQuery struct {
	Prefix string `query:"prefix" validate:"required,max=200"`
	Limit  int    `query:"limit" validate:"gte=0,lte=100"`
}
