// Screenpick - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/screenpick

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/screenpick/internal/catalog"
	"github.com/tomtom215/screenpick/internal/events"
	"github.com/tomtom215/screenpick/internal/insights"
	"github.com/tomtom215/screenpick/internal/models"
)

// parseInsightsQuery reads genres, match, limit, year and sort from the URL.
func parseInsightsQuery(r *http.Request) (insights.Query, *models.APIError) {
	values := r.URL.Query()
	raw := models.InsightsQuery{
		Genres: parseCommaSeparated(values["genres"]),
		Match:  values.Get("match"),
		Sort:   values.Get("sort"),
	}

	var err error
	if raw.Limit, err = getIntParam(r, "limit", 0); err != nil {
		return insights.Query{}, paramError("limit", err)
	}
	if raw.Year, err = getIntParam(r, "year", 0); err != nil {
		return insights.Query{}, paramError("year", err)
	}
	if apiErr := validateRequest(&raw); apiErr != nil {
		return insights.Query{}, apiErr
	}

	match, err := catalog.ParseMatch(raw.Match)
	if err != nil {
		return insights.Query{}, paramError("match", err)
	}
	order, err := insights.ParseSort(raw.Sort)
	if err != nil {
		return insights.Query{}, paramError("sort", err)
	}
	return insights.Query{Genres: raw.Genres, Match: match, Limit: raw.Limit, Year: raw.Year, Sort: order}, nil
}

// TopRated lists the highest rated movies matching a genre filter.
//
// @Summary Top rated movies
// @Description Movies matching the genre and year filters ordered by average rating, then rating count, then id. sort=count puts rating count first.
// @Tags Insights
// @Produce json
// @Param genres query string false "Comma-separated genre names"
// @Param match query string false "all (default) or any"
// @Param year query int false "Release year"
// @Param sort query string false "rating (default) or count"
// @Param limit query int false "Maximum rows"
// @Success 200 {object} models.APIResponse{data=[]insights.RatedMovie}
// @Failure 400 {object} models.APIResponse "Invalid parameter or unknown genre"
// @Failure 503 {object} models.APIResponse "No snapshot loaded"
// @Router /insights/top-rated [get]
func (h *Handler) TopRated(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	q, apiErr := parseInsightsQuery(r)
	if apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr, nil)
		return
	}

	rows, err := h.insights.TopRated(q)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if rows == nil {
		rows = []insights.RatedMovie{}
	}
	respondSuccess(w, r, rows, start)
}

// Releases counts matching movies per release year.
//
// @Summary Releases per year
// @Tags Insights
// @Produce json
// @Param genres query string false "Comma-separated genre names"
// @Param match query string false "all (default) or any"
// @Success 200 {object} models.APIResponse{data=[]insights.YearCount}
// @Failure 400 {object} models.APIResponse "Invalid parameter or unknown genre"
// @Failure 503 {object} models.APIResponse "No snapshot loaded"
// @Router /insights/releases [get]
func (h *Handler) Releases(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	q, apiErr := parseInsightsQuery(r)
	if apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr, nil)
		return
	}

	years, err := h.insights.ReleasesByYear(q)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondSuccess(w, r, years, start)
}

// GenreShares reports the genre distribution of the catalog.
//
// @Summary Genre distribution
// @Tags Insights
// @Produce json
// @Success 200 {object} models.APIResponse{data=[]insights.GenreShare}
// @Failure 503 {object} models.APIResponse "No snapshot loaded"
// @Router /insights/genre-shares [get]
func (h *Handler) GenreShares(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	shares, err := h.insights.GenreShares()
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondSuccess(w, r, shares, start)
}

// Summary reports the size of the loaded snapshot.
//
// @Summary Snapshot summary
// @Tags Insights
// @Produce json
// @Success 200 {object} models.APIResponse{data=insights.Summary}
// @Failure 503 {object} models.APIResponse "No snapshot loaded"
// @Router /insights/summary [get]
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	summary, err := h.insights.Summary()
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondSuccess(w, r, summary, start)
}

// PopularSeeds lists the seed titles requested most often since start.
//
// @Summary Most requested seed titles
// @Tags Insights
// @Produce json
// @Param limit query int false "Maximum rows"
// @Success 200 {object} models.APIResponse{data=[]events.SeedCount}
// @Router /insights/popular-seeds [get]
func (h *Handler) PopularSeeds(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	limit, err := getIntParam(r, "limit", 0)
	if err != nil || limit < 0 {
		if err == nil {
			err = errNegativeLimit
		}
		respondAPIError(w, http.StatusBadRequest, paramError("limit", err), nil)
		return
	}

	out := []events.SeedCount{}
	if h.seeds != nil {
		if top := h.seeds.Top(h.limit(limit)); top != nil {
			out = top
		}
	}
	respondSuccess(w, r, out, start)
}
