// Screenpick - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/screenpick

// Package validation validates API request structs with
// go-playground/validator v10.
//
// A single validator instance is shared process-wide; it caches struct
// metadata, so the first validation of a type is the only expensive one.
// Errors name fields by their json or query tag and convert to the API's
// VALIDATION_ERROR envelope:
//
//	type RecommendRequest struct {
//		Method string   `json:"method" validate:"required,rec_method"`
//		Titles []string `json:"titles" validate:"required,len=3,unique,dive,required"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//		apiErr := verr.ToAPIError()
//		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, verr)
//		return
//	}
//
// Custom tags:
//
//	rec_method   content, collaborative, or an accepted alias
//	genre_match  all, any, or empty
package validation
