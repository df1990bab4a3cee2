// Screenpick - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/screenpick

package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/screenpick/internal/catalog"
	"github.com/tomtom215/screenpick/internal/models"
	"github.com/tomtom215/screenpick/internal/recommend"
)

const defaultSuggestLimit = 10

var errInvalidMovieID = errors.New("id must be a positive integer")

// Movies lists catalog entries, optionally filtered by title substring
// and genres.
//
// @Summary Search the catalog
// @Description Lists movies in ascending id order. Use the returned titles as recommendation seeds.
// @Tags Catalog
// @Produce json
// @Param q query string false "Case-insensitive title substring"
// @Param genres query string false "Comma-separated genre names"
// @Param match query string false "all (default) or any"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} models.APIResponse{data=models.MovieList}
// @Failure 400 {object} models.APIResponse "Invalid parameter or unknown genre"
// @Failure 503 {object} models.APIResponse "No snapshot loaded"
// @Router /movies [get]
func (h *Handler) Movies(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	query, apiErr := h.parseMovieQuery(r)
	if apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr, nil)
		return
	}

	snap := h.engine.Snapshot()
	if snap == nil {
		respondDomainError(w, recommend.ErrNotReady)
		return
	}

	match, err := catalog.ParseMatch(query.Match)
	if err != nil {
		respondAPIError(w, http.StatusBadRequest, paramError("match", err), nil)
		return
	}
	pred, err := snap.Catalog.GenreFilter(query.Genres, match)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	q := strings.ToLower(strings.TrimSpace(query.Query))
	matched := snap.Catalog.Filter(func(m *catalog.Movie) bool {
		if q != "" && !strings.Contains(strings.ToLower(m.Title), q) {
			return false
		}
		return pred(m)
	})

	limit := h.limit(query.Limit)
	list := models.MovieList{
		Movies: []models.MovieSummary{},
		Total:  len(matched),
		Limit:  limit,
		Offset: query.Offset,
	}
	if query.Offset < len(matched) {
		end := query.Offset + limit
		if end > len(matched) {
			end = len(matched)
		}
		for _, m := range matched[query.Offset:end] {
			list.Movies = append(list.Movies, movieSummary(m))
		}
	}

	respondSuccess(w, r, list, start)
}

func (h *Handler) parseMovieQuery(r *http.Request) (*models.MovieQuery, *models.APIError) {
	values := r.URL.Query()
	query := &models.MovieQuery{
		Query:  values.Get("q"),
		Genres: parseCommaSeparated(values["genres"]),
		Match:  values.Get("match"),
	}

	var err error
	if query.Limit, err = getIntParam(r, "limit", 0); err != nil {
		return nil, paramError("limit", err)
	}
	if query.Offset, err = getIntParam(r, "offset", 0); err != nil {
		return nil, paramError("offset", err)
	}
	if apiErr := validateRequest(query); apiErr != nil {
		return nil, apiErr
	}
	return query, nil
}

func movieSummary(m *catalog.Movie) models.MovieSummary {
	return models.MovieSummary{
		ID:     m.ID,
		Title:  m.Title,
		Year:   m.Year,
		Genres: m.Genres,
		Tags:   m.Tags,
	}
}

// SuggestTitles completes a title prefix so clients can pick exact seed
// titles.
//
// @Summary Complete a movie title
// @Tags Catalog
// @Produce json
// @Param prefix query string true "Case-insensitive title prefix"
// @Param limit query int false "Maximum suggestions (default 10, max 100)"
// @Success 200 {object} models.APIResponse{data=[]models.MovieSummary}
// @Failure 400 {object} models.APIResponse "Missing prefix or invalid limit"
// @Failure 503 {object} models.APIResponse "No snapshot loaded"
// @Router /movies/suggest [get]
func (h *Handler) SuggestTitles(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	query := &models.SuggestQuery{Prefix: strings.TrimSpace(r.URL.Query().Get("prefix"))}
	var err error
	if query.Limit, err = getIntParam(r, "limit", defaultSuggestLimit); err != nil {
		respondAPIError(w, http.StatusBadRequest, paramError("limit", err), nil)
		return
	}
	if apiErr := validateRequest(query); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr, nil)
		return
	}
	if query.Limit == 0 {
		query.Limit = defaultSuggestLimit
	}

	snap := h.engine.Snapshot()
	if snap == nil {
		respondDomainError(w, recommend.ErrNotReady)
		return
	}

	movies := snap.Catalog.Suggest(query.Prefix, query.Limit)
	out := make([]models.MovieSummary, 0, len(movies))
	for _, m := range movies {
		out = append(out, movieSummary(m))
	}
	respondSuccess(w, r, out, start)
}

// MovieDetail returns one movie with its rating statistics and tags.
//
// @Summary Movie detail
// @Tags Catalog
// @Produce json
// @Param id path int true "Movie ID"
// @Success 200 {object} models.APIResponse{data=insights.MovieDetail}
// @Failure 400 {object} models.APIResponse "Invalid id"
// @Failure 404 {object} models.APIResponse "Unknown movie"
// @Failure 503 {object} models.APIResponse "No snapshot loaded"
// @Router /movies/{id} [get]
func (h *Handler) MovieDetail(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		respondAPIError(w, http.StatusBadRequest, paramError("id", errInvalidMovieID), nil)
		return
	}

	detail, err := h.insights.MovieDetail(id)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondSuccess(w, r, detail, start)
}

// Genres lists the distinct genres of the catalog.
//
// @Summary List genres
// @Tags Catalog
// @Produce json
// @Success 200 {object} models.APIResponse{data=[]string}
// @Failure 503 {object} models.APIResponse "No snapshot loaded"
// @Router /genres [get]
func (h *Handler) Genres(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	genres, err := h.insights.Genres()
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondSuccess(w, r, genres, start)
}
