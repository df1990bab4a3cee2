// Screenpick - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/screenpick

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/screenpick/internal/catalog"
	"github.com/tomtom215/screenpick/internal/models"
	"github.com/tomtom215/screenpick/internal/recommend"
	"github.com/tomtom215/screenpick/internal/validation"
)

// Error codes returned in APIError.Code.
const (
	CodeUnknownMovie        = "UNKNOWN_MOVIE"
	CodeNoAffinityUsers     = "NO_AFFINITY_USERS"
	CodeInsufficientCatalog = "INSUFFICIENT_CATALOG"
	CodeEmptyResult         = "EMPTY_RESULT"
	CodeUnknownGenre        = "UNKNOWN_GENRE"
	CodeNotReady            = "NOT_READY"
	CodeTimeout             = "TIMEOUT"
	CodeReloadFailed        = "RELOAD_FAILED"
	CodeReloadUnavailable   = "RELOAD_UNAVAILABLE"
	CodeInternal            = "INTERNAL_ERROR"
	CodeRateLimited         = "RATE_LIMITED"
)

var errNegativeLimit = errors.New("limit must not be negative")

// classifyError maps a domain error to an HTTP status and error body.
// The body names the failure kind; unexpected errors become a generic 500
// so internals are not exposed.
func classifyError(err error) (int, *models.APIError) {
	var (
		unknownMovie *recommend.UnknownMovieError
		noAffinity   *recommend.NoAffinityUsersError
		insufficient *recommend.InsufficientCatalogError
		emptyResult  *recommend.EmptyResultError
		unknownGenre *catalog.UnknownGenreError
	)

	switch {
	case errors.As(err, &unknownMovie):
		details := map[string]interface{}{"title": unknownMovie.Title}
		if unknownMovie.ID != 0 {
			details = map[string]interface{}{"movie_id": unknownMovie.ID}
		}
		return http.StatusNotFound, &models.APIError{
			Code:    CodeUnknownMovie,
			Message: unknownMovie.Error(),
			Details: details,
		}
	case errors.As(err, &noAffinity):
		return http.StatusUnprocessableEntity, &models.APIError{
			Code:    CodeNoAffinityUsers,
			Message: noAffinity.Error(),
			Details: map[string]interface{}{"seeds": noAffinity.Seeds, "threshold": noAffinity.Threshold},
		}
	case errors.As(err, &insufficient):
		return http.StatusUnprocessableEntity, &models.APIError{
			Code:    CodeInsufficientCatalog,
			Message: insufficient.Error(),
			Details: map[string]interface{}{"requested": insufficient.Requested, "available": insufficient.Available},
		}
	case errors.As(err, &emptyResult):
		return http.StatusUnprocessableEntity, &models.APIError{
			Code:    CodeEmptyResult,
			Message: emptyResult.Error(),
		}
	case errors.As(err, &unknownGenre):
		return http.StatusBadRequest, &models.APIError{
			Code:    CodeUnknownGenre,
			Message: unknownGenre.Error(),
			Details: map[string]interface{}{"genre": unknownGenre.Name},
		}
	case errors.Is(err, recommend.ErrInvalidTopN),
		errors.Is(err, recommend.ErrInvalidSeeds),
		errors.Is(err, recommend.ErrUnknownMethod):
		return http.StatusBadRequest, &models.APIError{
			Code:    validation.ErrorCode,
			Message: err.Error(),
		}
	case errors.Is(err, recommend.ErrNotReady):
		return http.StatusServiceUnavailable, &models.APIError{
			Code:    CodeNotReady,
			Message: "no data snapshot is loaded yet",
		}
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, &models.APIError{
			Code:    CodeTimeout,
			Message: "request timed out",
		}
	default:
		return http.StatusInternalServerError, &models.APIError{
			Code:    CodeInternal,
			Message: "internal error",
		}
	}
}

// respondDomainError classifies err and writes the matching error response.
// It returns the error code for metrics.
func respondDomainError(w http.ResponseWriter, err error) string {
	status, apiErr := classifyError(err)
	respondAPIError(w, status, apiErr, err)
	return apiErr.Code
}
