// Screenpick - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/screenpick

// Package docs registers the OpenAPI document served under /swagger.
// Regenerate with: swag init -g cmd/server/main.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "GitHub Repository",
            "url": "https://github.com/tomtom215/screenpick/issues"
        },
        "license": {
            "name": "AGPL-3.0-or-later",
            "url": "https://www.gnu.org/licenses/agpl-3.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/recommendations": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Recommendations"],
                "summary": "Recommend movies for three seed titles",
                "parameters": [
                    {
                        "description": "method, three seed titles and optional top_n",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/models.RecommendRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "400": {"description": "VALIDATION_ERROR or UNKNOWN_GENRE", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "404": {"description": "UNKNOWN_MOVIE", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "422": {"description": "NO_AFFINITY_USERS, INSUFFICIENT_CATALOG or EMPTY_RESULT", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "503": {"description": "NOT_READY", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            }
        },
        "/recommendations/methods": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Recommendations"],
                "summary": "List recommendation methods",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.APIResponse"}}}
            }
        },
        "/movies": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Catalog"],
                "summary": "Search the movie catalog",
                "parameters": [
                    {"type": "string", "name": "q", "in": "query", "description": "title substring"},
                    {"type": "string", "name": "genres", "in": "query", "description": "comma-separated genres"},
                    {"type": "string", "name": "match", "in": "query", "description": "all or any"},
                    {"type": "integer", "name": "limit", "in": "query"},
                    {"type": "integer", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            }
        },
        "/movies/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Catalog"],
                "summary": "Movie detail with rating statistics",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            }
        },
        "/movies/suggest": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Catalog"],
                "summary": "Complete a movie title",
                "parameters": [
                    {"type": "string", "name": "prefix", "in": "query", "required": true},
                    {"type": "integer", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            }
        },
        "/genres": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Catalog"],
                "summary": "List catalog genres",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.APIResponse"}}}
            }
        },
        "/insights/top-rated": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Insights"],
                "summary": "Highest rated movies, optionally by genre and release year",
                "parameters": [
                    {"type": "string", "name": "genres", "in": "query"},
                    {"type": "string", "name": "match", "in": "query"},
                    {"type": "integer", "name": "year", "in": "query"},
                    {"type": "string", "name": "sort", "in": "query", "enum": ["rating", "count"]},
                    {"type": "integer", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.APIResponse"}}}
            }
        },
        "/insights/releases": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Insights"],
                "summary": "Release counts by year",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.APIResponse"}}}
            }
        },
        "/insights/genre-shares": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Insights"],
                "summary": "Share of the catalog per genre",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.APIResponse"}}}
            }
        },
        "/insights/popular-seeds": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Insights"],
                "summary": "Most requested seed titles",
                "parameters": [{"type": "integer", "name": "limit", "in": "query"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.APIResponse"}}}
            }
        },
        "/insights/summary": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Insights"],
                "summary": "Snapshot summary",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.APIResponse"}}}
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Core"],
                "summary": "Service health",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.APIResponse"}}}
            }
        },
        "/health/live": {
            "get": {
                "tags": ["Core"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/health/ready": {
            "get": {
                "tags": ["Core"],
                "summary": "Readiness probe, ready once a snapshot is loaded",
                "responses": {"200": {"description": "OK"}, "503": {"description": "not ready"}}
            }
        },
        "/admin/reload": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "Reload the data snapshot now",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "500": {"description": "RELOAD_FAILED", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "503": {"description": "circuit open or reload unavailable", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            }
        }
    },
    "definitions": {
        "models.APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "details": {"type": "object", "additionalProperties": true}
            }
        },
        "models.APIResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "success"},
                "data": {},
                "metadata": {"$ref": "#/definitions/models.Metadata"},
                "error": {"$ref": "#/definitions/models.APIError"}
            }
        },
        "models.Metadata": {
            "type": "object",
            "properties": {
                "timestamp": {"type": "string"},
                "query_time_ms": {"type": "integer"},
                "cached": {"type": "boolean"},
                "request_id": {"type": "string"}
            }
        },
        "models.RecommendRequest": {
            "type": "object",
            "required": ["method", "titles"],
            "properties": {
                "method": {"type": "string", "example": "content"},
                "titles": {
                    "type": "array",
                    "minItems": 3,
                    "maxItems": 3,
                    "items": {"type": "string"},
                    "example": ["Heat (1995)", "Casino (1995)", "Se7en (1995)"]
                },
                "top_n": {"type": "integer", "example": 10}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8501",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "Screenpick API",
	Description:      "Movie recommendations from three seed titles, content-based or collaborative.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
