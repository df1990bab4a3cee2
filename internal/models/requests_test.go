// Screenpick - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/screenpick

package models

import (
	"testing"

	"github.com/tomtom215/screenpick/internal/validation"
)

func TestRecommendRequest_Validation(t *testing.T) {
	seeds := []string{"Heat (1995)", "Casino (1995)", "Se7en (1995)"}

	tests := []struct {
		name      string
		req       RecommendRequest
		wantField string
	}{
		{name: "valid", req: RecommendRequest{Method: "content", Titles: seeds, TopN: 5}},
		{name: "large top_n", req: RecommendRequest{Method: "content", Titles: seeds, TopN: 5000}},
		{name: "alias", req: RecommendRequest{Method: "collaborative_based", Titles: seeds}},
		{name: "missing method", req: RecommendRequest{Titles: seeds}, wantField: "method"},
		{name: "bad method", req: RecommendRequest{Method: "hybrid", Titles: seeds}, wantField: "method"},
		{name: "two titles", req: RecommendRequest{Method: "content", Titles: seeds[:2]}, wantField: "titles"},
		{
			name:      "duplicate titles",
			req:       RecommendRequest{Method: "content", Titles: []string{"Heat (1995)", "Heat (1995)", "Se7en (1995)"}},
			wantField: "titles",
		},
		{name: "negative top_n", req: RecommendRequest{Method: "content", Titles: seeds, TopN: -1}, wantField: "top_n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := validation.ValidateStruct(&tt.req)
			if tt.wantField == "" {
				if verr != nil {
					t.Fatalf("ValidateStruct() = %v, want nil", verr)
				}
				return
			}
			if verr == nil {
				t.Fatalf("ValidateStruct() = nil, want error on %s", tt.wantField)
			}
			if got := verr.Errors()[0].Field(); got != tt.wantField {
				t.Errorf("field = %q, want %q", got, tt.wantField)
			}
		})
	}
}

func TestMovieQuery_Validation(t *testing.T) {
	tests := []struct {
		name    string
		query   MovieQuery
		wantErr bool
	}{
		{name: "empty", query: MovieQuery{}},
		{name: "any match", query: MovieQuery{Genres: []string{"Drama"}, Match: "any"}},
		{name: "bad match", query: MovieQuery{Match: "some"}, wantErr: true},
		{name: "negative offset", query: MovieQuery{Offset: -1}, wantErr: true},
		{name: "empty genre", query: MovieQuery{Genres: []string{""}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := validation.ValidateStruct(&tt.query)
			if (verr != nil) != tt.wantErr {
				t.Errorf("ValidateStruct() = %v, wantErr %v", verr, tt.wantErr)
			}
		})
	}
}
