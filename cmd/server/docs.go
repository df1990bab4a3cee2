// Screenpick - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/screenpick

// General API information for swag.
//
// @title Screenpick API
// @version 1.0
// @description Movie recommendations from three seed titles.
// @description
// @description ## Methods
// @description
// @description - **content**: cosine similarity over genre and tag vectors (alias `content_based`)
// @description - **collaborative**: mean rating among users who liked the seeds (alias `collab`)
// @description
// @description ## Rate Limiting
// @description
// @description Default rate limit: 100 requests per minute per IP address, 5 per minute on /admin.
// @description
// @description ## Error Responses
// @description
// @description All error responses follow this format:
// @description ```json
// @description {
// @description   "status": "error",
// @description   "data": null,
// @description   "error": {
// @description     "code": "UNKNOWN_MOVIE",
// @description     "message": "unknown movie title: \"Heat (1994)\"",
// @description     "details": {"title": "Heat (1994)"}
// @description   },
// @description   "metadata": {
// @description     "timestamp": "2026-01-02T03:04:05Z"
// @description   }
// @description }
// @description ```
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/screenpick/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:8501
// @BasePath /api/v1
// @schemes http https
//
// @tag.name Recommendations
// @tag.description Seed-based movie recommendations
//
// @tag.name Catalog
// @tag.description Movie and genre lookup
//
// @tag.name Insights
// @tag.description Catalog and rating statistics
//
// @tag.name Core
// @tag.description Health and readiness
//
// @tag.name Admin
// @tag.description Snapshot reloads
package main
