// Screenpick - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/screenpick

package validation

import (
	"strings"
	"sync"
	"testing"
)

type testRecommendRequest struct {
	Method string   `json:"method" validate:"required,rec_method"`
	Titles []string `json:"titles" validate:"required,len=3,unique,dive,required,max=20"`
	TopN   int      `json:"top_n,omitempty" validate:"omitempty,min=1,max=100"`
}

type testMovieQuery struct {
	Query string `query:"q" validate:"max=10"`
	Match string `query:"match" validate:"genre_match"`
	Limit int    `query:"limit" validate:"gte=0,lte=500"`
}

var validTitles = []string{"Heat (1995)", "Casino (1995)", "Se7en (1995)"}

func TestValidateStruct_RecommendRequest(t *testing.T) {
	tests := []struct {
		name      string
		req       testRecommendRequest
		wantField string
		wantTag   string
		wantMsg   string
	}{
		{
			name: "valid",
			req:  testRecommendRequest{Method: "content", Titles: validTitles, TopN: 10},
		},
		{
			name: "alias method and default top_n",
			req:  testRecommendRequest{Method: "Collaborative_Based", Titles: validTitles},
		},
		{
			name:      "missing method",
			req:       testRecommendRequest{Titles: validTitles},
			wantField: "method",
			wantTag:   "required",
			wantMsg:   "method is required",
		},
		{
			name:      "unknown method",
			req:       testRecommendRequest{Method: "hybrid", Titles: validTitles},
			wantField: "method",
			wantTag:   "rec_method",
			wantMsg:   "method must be one of: content, collaborative",
		},
		{
			name:      "two titles",
			req:       testRecommendRequest{Method: "content", Titles: validTitles[:2]},
			wantField: "titles",
			wantTag:   "len",
			wantMsg:   "titles must contain exactly 3 items",
		},
		{
			name:      "duplicate titles",
			req:       testRecommendRequest{Method: "content", Titles: []string{"Heat (1995)", "Heat (1995)", "Se7en (1995)"}},
			wantField: "titles",
			wantTag:   "unique",
			wantMsg:   "titles must not contain duplicates",
		},
		{
			name:      "empty title",
			req:       testRecommendRequest{Method: "content", Titles: []string{"Heat (1995)", "", "Se7en (1995)"}},
			wantField: "titles[1]",
			wantTag:   "required",
		},
		{
			name:      "top_n too large",
			req:       testRecommendRequest{Method: "content", Titles: validTitles, TopN: 101},
			wantField: "top_n",
			wantTag:   "max",
			wantMsg:   "top_n must be at most 100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := ValidateStruct(&tt.req)
			if tt.wantField == "" {
				if verr != nil {
					t.Fatalf("ValidateStruct() = %v, want nil", verr)
				}
				return
			}
			if verr == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}
			if len(verr.Errors()) != 1 {
				t.Fatalf("got %d errors, want 1: %v", len(verr.Errors()), verr)
			}
			fe := verr.Errors()[0]
			if fe.Field() != tt.wantField || fe.Tag() != tt.wantTag {
				t.Errorf("field/tag = %s/%s, want %s/%s", fe.Field(), fe.Tag(), tt.wantField, tt.wantTag)
			}
			if tt.wantMsg != "" && fe.Error() != tt.wantMsg {
				t.Errorf("message = %q, want %q", fe.Error(), tt.wantMsg)
			}
		})
	}
}

func TestValidateStruct_QueryTags(t *testing.T) {
	tests := []struct {
		name      string
		q         testMovieQuery
		wantField string
		wantMsg   string
	}{
		{name: "valid", q: testMovieQuery{Query: "heat", Match: "any", Limit: 20}},
		{name: "empty match", q: testMovieQuery{}},
		{name: "bad match", q: testMovieQuery{Match: "some"}, wantField: "match", wantMsg: "match must be all or any"},
		{name: "long query", q: testMovieQuery{Query: "a very long query"}, wantField: "q", wantMsg: "q must be at most 10 characters"},
		{name: "limit", q: testMovieQuery{Limit: 501}, wantField: "limit", wantMsg: "limit must be less than or equal to 500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := ValidateStruct(&tt.q)
			if tt.wantField == "" {
				if verr != nil {
					t.Fatalf("ValidateStruct() = %v, want nil", verr)
				}
				return
			}
			if verr == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}
			fe := verr.Errors()[0]
			if fe.Field() != tt.wantField || fe.Error() != tt.wantMsg {
				t.Errorf("got %s: %q, want %s: %q", fe.Field(), fe.Error(), tt.wantField, tt.wantMsg)
			}
		})
	}
}

func TestRequestValidationError_ToAPIError(t *testing.T) {
	t.Run("single", func(t *testing.T) {
		verr := ValidateStruct(&testRecommendRequest{Method: "hybrid", Titles: validTitles})
		apiErr := verr.ToAPIError()
		if apiErr.Code != ErrorCode {
			t.Errorf("Code = %q", apiErr.Code)
		}
		if apiErr.Details["field"] != "method" || apiErr.Details["value"] != "hybrid" {
			t.Errorf("Details = %v", apiErr.Details)
		}
	})

	t.Run("multiple", func(t *testing.T) {
		verr := ValidateStruct(&testRecommendRequest{Titles: validTitles[:1], TopN: 500})
		apiErr := verr.ToAPIError()
		fields, ok := apiErr.Details["fields"].([]map[string]interface{})
		if !ok || len(fields) != 3 {
			t.Fatalf("Details[fields] = %v", apiErr.Details["fields"])
		}
		for _, name := range []string{"method", "titles", "top_n"} {
			if !strings.Contains(apiErr.Message, name) {
				t.Errorf("Message %q does not mention %s", apiErr.Message, name)
			}
		}
	})

	t.Run("empty", func(t *testing.T) {
		apiErr := (&RequestValidationError{}).ToAPIError()
		if apiErr.Message != "Validation failed" {
			t.Errorf("Message = %q", apiErr.Message)
		}
	})
}

func TestValidateStruct_NotAStruct(t *testing.T) {
	verr := ValidateStruct("not a struct")
	if verr == nil || verr.Errors()[0].Field() != "request" {
		t.Errorf("ValidateStruct(string) = %v", verr)
	}
}

func TestGetValidator_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ValidateStruct(&testRecommendRequest{Method: "content", Titles: validTitles}) != nil {
				t.Error("valid request rejected")
			}
		}()
	}
	wg.Wait()

	if GetValidator() != GetValidator() {
		t.Error("GetValidator() returned different instances")
	}
}
