// Screenpick - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/screenpick

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists config file locations in priority order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/screenpick/config.yaml",
	"/etc/screenpick/config.yml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			MoviesPath:      "data/movies.csv",
			RatingsPath:     "data/ratings.csv",
			RatingMin:       0.5,
			RatingMax:       5.0,
			ReloadTimeout:   5 * time.Minute,
			BreakerFailures: 3,
			BreakerTimeout:  time.Minute,
		},
		Database: DatabaseConfig{
			MaxMemory: "1GB",
		},
		Recommend: RecommendConfig{
			DefaultTopN:      10,
			MaxTopN:          0,
			Truncation:       "shorter",
			ContentWeighting: "binary",
			TagWeight:        1.0,
			// MovieLens has movies with neither genres nor tags.
			DropUnvectorizable: true,
			LikedFraction:      0.8,
			SeedWeighting:      "mean",
			MinSupporters:      1,
			CacheEnabled:       true,
			CacheSize:          1024,
			RequestTimeout:     10 * time.Second,
		},
		Insights: InsightsConfig{
			MinRatings:   1,
			DefaultLimit: 20,
			MaxLimit:     500,
		},
		Events: EventsConfig{
			Enabled:              true,
			BufferSize:           256,
			CloseTimeout:         10 * time.Second,
			RetryMaxRetries:      3,
			RetryInitialInterval: 100 * time.Millisecond,
		},
		Server: ServerConfig{
			Port:            8501,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			Environment:     "development",
			SwaggerEnabled:  true,
		},
		Security: SecurityConfig{
			CORSOrigins:        []string{"*"},
			RateLimitReqs:      100,
			RateLimitWindow:    time.Minute,
			AdminRateLimitReqs: 5,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadWithKoanf loads configuration from three layers, later ones winning:
//  1. built-in defaults
//  2. an optional YAML file (CONFIG_PATH, then DefaultConfigPaths)
//  3. environment variables listed in envMappings
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// findConfigFile returns the first existing config file, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are split on commas when they arrive as strings.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok {
			// Missing, or already a list from YAML or defaults.
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps lower-cased environment variable names to config paths.
var envMappings = map[string]string{
	// Data
	"movies_csv":              "data.movies_path",
	"ratings_csv":             "data.ratings_path",
	"tags_csv":                "data.tags_path",
	"rating_scale_min":        "data.rating_min",
	"rating_scale_max":        "data.rating_max",
	"reload_interval":         "data.reload_interval",
	"reload_timeout":          "data.reload_timeout",
	"reload_breaker_failures": "data.breaker_failures",
	"reload_breaker_timeout":  "data.breaker_timeout",

	// Database
	"duckdb_path":       "database.path",
	"duckdb_max_memory": "database.max_memory",
	"duckdb_threads":    "database.threads",

	// Recommend
	"recommend_default_top_n":       "recommend.default_top_n",
	"recommend_max_top_n":           "recommend.max_top_n",
	"recommend_truncation":          "recommend.truncation",
	"recommend_content_weighting":   "recommend.content_weighting",
	"recommend_tag_weight":          "recommend.tag_weight",
	"recommend_max_candidates":      "recommend.max_candidates",
	"recommend_drop_unvectorizable": "recommend.drop_unvectorizable",
	"recommend_liked_fraction":      "recommend.liked_fraction",
	"recommend_seed_weighting":      "recommend.seed_weighting",
	"recommend_min_supporters":      "recommend.min_supporters",
	"recommend_cache_enabled":       "recommend.cache_enabled",
	"recommend_cache_size":          "recommend.cache_size",
	"recommend_cache_ttl":           "recommend.cache_ttl",
	"recommend_request_timeout":     "recommend.request_timeout",

	// Insights
	"insights_min_ratings":   "insights.min_ratings",
	"insights_default_limit": "insights.default_limit",
	"insights_max_limit":     "insights.max_limit",

	// Events
	"events_enabled":                "events.enabled",
	"events_buffer_size":            "events.buffer_size",
	"events_close_timeout":          "events.close_timeout",
	"events_retry_max_retries":      "events.retry_max_retries",
	"events_retry_initial_interval": "events.retry_initial_interval",

	// Server
	"http_port":        "server.port",
	"http_host":        "server.host",
	"http_timeout":     "server.timeout",
	"shutdown_timeout": "server.shutdown_timeout",
	"environment":      "server.environment",
	"swagger_enabled":  "server.swagger_enabled",

	// Security
	"cors_origins":          "security.cors_origins",
	"rate_limit_requests":   "security.rate_limit_reqs",
	"rate_limit_window":     "security.rate_limit_window",
	"disable_rate_limit":    "security.rate_limit_disabled",
	"admin_rate_limit_reqs": "security.admin_rate_limit_reqs",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps an environment variable to a config path.
// Unknown variables return "" and are ignored.
//
//   - MOVIES_CSV -> data.movies_path
//   - HTTP_PORT -> server.port
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
