// Screenpick - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/screenpick

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/screenpick/internal/events"
	"github.com/tomtom215/screenpick/internal/logging"
	"github.com/tomtom215/screenpick/internal/metrics"
	"github.com/tomtom215/screenpick/internal/models"
	"github.com/tomtom215/screenpick/internal/recommend"
	"github.com/tomtom215/screenpick/internal/validation"
)

// methodDescriptions documents the built-in methods.
var methodDescriptions = map[recommend.Method]models.MethodInfo{
	recommend.MethodContent: {
		Name:        "content",
		Aliases:     []string{"content_based"},
		Description: "Ranks movies by cosine similarity of genre and tag features to the seed titles",
	},
	recommend.MethodCollaborative: {
		Name:        "collaborative",
		Aliases:     []string{"collaborative_based"},
		Description: "Ranks movies by the average rating of users who liked at least one seed title",
	},
}

// Recommend returns an ordered list of movies for three favorite titles.
//
// @Summary Recommend movies
// @Description Ranks the catalog against three seed titles with the chosen method. Seeds never appear in the result.
// @Tags Recommendations
// @Accept json
// @Produce json
// @Param request body models.RecommendRequest true "Method, three seed titles and result size"
// @Success 200 {object} models.APIResponse{data=recommend.Response} "Ordered recommendations"
// @Failure 400 {object} models.APIResponse "Invalid request or unknown method"
// @Failure 404 {object} models.APIResponse "A seed title is not in the catalog"
// @Failure 422 {object} models.APIResponse "No affinity users, empty result or insufficient catalog"
// @Failure 503 {object} models.APIResponse "No snapshot loaded"
// @Router /recommendations [post]
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var body models.RecommendRequest
	if err := decodeJSON(w, r, &body); err != nil {
		respondAPIError(w, http.StatusBadRequest, &models.APIError{
			Code:    validation.ErrorCode,
			Message: err.Error(),
		}, nil)
		return
	}
	if apiErr := validateRequest(&body); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr, nil)
		return
	}

	method, err := recommend.ParseMethod(body.Method)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.config.RequestTimeout)
	defer cancel()

	resp, err := h.engine.Recommend(ctx, recommend.Request{
		Method:    method,
		Titles:    body.Titles,
		TopN:      body.TopN,
		RequestID: logging.RequestIDFromContext(r.Context()),
	})
	if err != nil {
		code := respondDomainError(w, err)
		metrics.RecordRecommendation(method.String(), code, time.Since(start), 0)
		return
	}

	metrics.RecordRecommendation(method.String(), metrics.OutcomeSuccess, time.Since(start), len(resp.Items))
	metrics.RecordCacheLookup(method.String(), resp.Metadata.CacheHit)
	h.publishServed(r.Context(), resp)

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: models.StatusSuccess,
		Data:   resp,
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: resp.Metadata.LatencyMS,
			Cached:      resp.Metadata.CacheHit,
			RequestID:   resp.Metadata.RequestID,
		},
	})
}

// publishServed emits the served event. Failures are logged only.
func (h *Handler) publishServed(ctx context.Context, resp *recommend.Response) {
	if h.publisher == nil {
		return
	}
	if err := h.publisher.Publish(ctx, events.NewRecommendationServed(resp)); err != nil {
		logging.Ctx(ctx).Warn().Err(err).
			Str("method", resp.Metadata.Method.String()).
			Msg("Failed to publish served recommendation")
	}
}

// Methods lists the registered recommendation methods.
//
// @Summary List recommendation methods
// @Tags Recommendations
// @Produce json
// @Success 200 {object} models.APIResponse{data=[]models.MethodInfo}
// @Router /recommendations/methods [get]
func (h *Handler) Methods(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	registered := h.engine.Methods()
	out := make([]models.MethodInfo, 0, len(registered))
	for _, m := range registered {
		info, ok := methodDescriptions[m]
		if !ok {
			info = models.MethodInfo{Name: m.String(), Aliases: []string{}}
		}
		out = append(out, info)
	}
	respondSuccess(w, r, out, start)
}
