// Screenpick - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/screenpick

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Data      DataConfig      `koanf:"data"`
	Database  DatabaseConfig  `koanf:"database"`
	Recommend RecommendConfig `koanf:"recommend"`
	Insights  InsightsConfig  `koanf:"insights"`
	Events    EventsConfig    `koanf:"events"`
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// DataConfig locates the MovieLens-style CSV files and controls snapshot
// reloads.
//
// Environment Variables:
//   - MOVIES_CSV: movies file, columns movieId,title,genres (default: data/movies.csv)
//   - RATINGS_CSV: ratings file, columns userId,movieId,rating,timestamp (default: data/ratings.csv)
//   - TAGS_CSV: optional tags file, columns userId,movieId,tag,timestamp (default: empty)
//   - RATING_SCALE_MIN / RATING_SCALE_MAX: inclusive rating bounds (default: 0.5 / 5.0)
//   - RELOAD_INTERVAL: periodic reload, 0 disables (default: 0)
//   - RELOAD_TIMEOUT: upper bound for one reload (default: 5m)
type DataConfig struct {
	MoviesPath     string        `koanf:"movies_path"`
	RatingsPath    string        `koanf:"ratings_path"`
	TagsPath       string        `koanf:"tags_path"`
	RatingMin      float64       `koanf:"rating_min"`
	RatingMax      float64       `koanf:"rating_max"`
	ReloadInterval time.Duration `koanf:"reload_interval"`
	ReloadTimeout  time.Duration `koanf:"reload_timeout"`

	// BreakerFailures consecutive reload failures open the reload circuit.
	BreakerFailures uint32 `koanf:"breaker_failures"`

	// BreakerTimeout is how long the circuit stays open before a trial reload.
	BreakerTimeout time.Duration `koanf:"breaker_timeout"`
}

// DatabaseConfig holds DuckDB settings. An empty Path runs fully in memory.
type DatabaseConfig struct {
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"`
}

// RecommendConfig holds recommendation engine configuration.
//
// Environment Variables:
//   - RECOMMEND_DEFAULT_TOP_N: results when a request omits top_n (default: 10)
//   - RECOMMEND_MAX_TOP_N: largest accepted top_n, 0 is no cap (default: 0)
//   - RECOMMEND_TRUNCATION: shorter or fail (default: shorter)
//   - RECOMMEND_CONTENT_WEIGHTING: binary or idf (default: binary)
//   - RECOMMEND_TAG_WEIGHT: tag coordinate multiplier (default: 1.0)
//   - RECOMMEND_MAX_CANDIDATES: content scan limit, 0 is unlimited (default: 0)
//   - RECOMMEND_DROP_UNVECTORIZABLE: skip movies without genres and tags (default: false)
//   - RECOMMEND_LIKED_FRACTION: liked threshold as a fraction of the scale max (default: 0.8)
//   - RECOMMEND_SEED_WEIGHTING: mean or seed_weighted (default: mean)
//   - RECOMMEND_MIN_SUPPORTERS: minimum contributing users (default: 1)
//   - RECOMMEND_CACHE_ENABLED / RECOMMEND_CACHE_SIZE / RECOMMEND_CACHE_TTL
//   - RECOMMEND_REQUEST_TIMEOUT: per-request compute bound (default: 10s)
type RecommendConfig struct {
	DefaultTopN        int           `koanf:"default_top_n"`
	MaxTopN            int           `koanf:"max_top_n"`
	Truncation         string        `koanf:"truncation"`
	ContentWeighting   string        `koanf:"content_weighting"`
	TagWeight          float64       `koanf:"tag_weight"`
	MaxCandidates      int           `koanf:"max_candidates"`
	DropUnvectorizable bool          `koanf:"drop_unvectorizable"`
	LikedFraction      float64       `koanf:"liked_fraction"`
	SeedWeighting      string        `koanf:"seed_weighting"`
	MinSupporters      int           `koanf:"min_supporters"`
	CacheEnabled       bool          `koanf:"cache_enabled"`
	CacheSize          int           `koanf:"cache_size"`
	CacheTTL           time.Duration `koanf:"cache_ttl"`
	RequestTimeout     time.Duration `koanf:"request_timeout"`
}

// InsightsConfig holds defaults for the insights endpoints.
type InsightsConfig struct {
	MinRatings   int `koanf:"min_ratings"`
	DefaultLimit int `koanf:"default_limit"`
	MaxLimit     int `koanf:"max_limit"`
}

// EventsConfig configures the in-process event bus.
type EventsConfig struct {
	Enabled              bool          `koanf:"enabled"`
	BufferSize           int64         `koanf:"buffer_size"`
	CloseTimeout         time.Duration `koanf:"close_timeout"`
	RetryMaxRetries      int           `koanf:"retry_max_retries"`
	RetryInitialInterval time.Duration `koanf:"retry_initial_interval"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"`
	SwaggerEnabled  bool          `koanf:"swagger_enabled"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SecurityConfig holds CORS and rate limit settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`

	// AdminRateLimitReqs applies to /api/v1/admin/* per window.
	AdminRateLimitReqs int `koanf:"admin_rate_limit_reqs"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
