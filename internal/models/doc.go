// Screenpick - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/screenpick

/*
Package models defines the HTTP request and response shapes of Screenpick.

Every endpoint answers with an APIResponse envelope:

	{"status": "success", "data": ..., "metadata": {"timestamp": ...}}

Request structs carry go-playground/validator tags and are checked with
validation.ValidateStruct before they reach the engine. Query structs use
the `query` tag so validation errors name the URL parameter.

Domain types that are returned unchanged (recommend.Response,
insights.RatedMovie and friends) are not duplicated here.
*/
package models
