// Screenpick - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/screenpick

package config

import (
	"fmt"
	"strings"

	"github.com/tomtom215/screenpick/internal/logging"
)

// Validate checks that the configuration is complete and consistent.
func (c *Config) Validate() error {
	if err := c.validateData(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	if err := c.validateInsights(); err != nil {
		return err
	}
	if err := c.validateEvents(); err != nil {
		return err
	}
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateData() error {
	if strings.TrimSpace(c.Data.MoviesPath) == "" {
		return fmt.Errorf("MOVIES_CSV is required")
	}
	if strings.TrimSpace(c.Data.RatingsPath) == "" {
		return fmt.Errorf("RATINGS_CSV is required")
	}
	if c.Data.RatingMax <= 0 {
		return fmt.Errorf("RATING_SCALE_MAX must be positive, got %g", c.Data.RatingMax)
	}
	if c.Data.RatingMin > c.Data.RatingMax {
		return fmt.Errorf("RATING_SCALE_MIN (%g) must not exceed RATING_SCALE_MAX (%g)", c.Data.RatingMin, c.Data.RatingMax)
	}
	if c.Data.ReloadInterval < 0 {
		return fmt.Errorf("RELOAD_INTERVAL must be non-negative, got %v", c.Data.ReloadInterval)
	}
	if c.Data.ReloadTimeout <= 0 {
		return fmt.Errorf("RELOAD_TIMEOUT must be positive, got %v", c.Data.ReloadTimeout)
	}
	if c.Data.BreakerFailures == 0 {
		return fmt.Errorf("RELOAD_BREAKER_FAILURES must be at least 1")
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := c.Recommend
	if r.DefaultTopN < 1 {
		return fmt.Errorf("RECOMMEND_DEFAULT_TOP_N must be at least 1, got %d", r.DefaultTopN)
	}
	if r.MaxTopN < 0 {
		return fmt.Errorf("RECOMMEND_MAX_TOP_N must be 0 (no cap) or positive, got %d", r.MaxTopN)
	}
	if r.MaxTopN > 0 && r.MaxTopN < r.DefaultTopN {
		return fmt.Errorf("RECOMMEND_MAX_TOP_N (%d) must be 0 or >= RECOMMEND_DEFAULT_TOP_N (%d)", r.MaxTopN, r.DefaultTopN)
	}
	if err := oneOf("RECOMMEND_TRUNCATION", r.Truncation, "shorter", "fail"); err != nil {
		return err
	}
	if err := oneOf("RECOMMEND_CONTENT_WEIGHTING", r.ContentWeighting, "binary", "idf"); err != nil {
		return err
	}
	if err := oneOf("RECOMMEND_SEED_WEIGHTING", r.SeedWeighting, "mean", "seed_weighted"); err != nil {
		return err
	}
	if r.TagWeight <= 0 {
		return fmt.Errorf("RECOMMEND_TAG_WEIGHT must be positive, got %g", r.TagWeight)
	}
	if r.LikedFraction <= 0 || r.LikedFraction > 1 {
		return fmt.Errorf("RECOMMEND_LIKED_FRACTION must be in (0, 1], got %g", r.LikedFraction)
	}
	if r.MinSupporters < 1 {
		return fmt.Errorf("RECOMMEND_MIN_SUPPORTERS must be at least 1, got %d", r.MinSupporters)
	}
	if r.MaxCandidates < 0 {
		return fmt.Errorf("RECOMMEND_MAX_CANDIDATES must be non-negative, got %d", r.MaxCandidates)
	}
	if r.CacheEnabled && r.CacheSize < 1 {
		return fmt.Errorf("RECOMMEND_CACHE_SIZE must be at least 1 when the cache is enabled, got %d", r.CacheSize)
	}
	if r.RequestTimeout <= 0 {
		return fmt.Errorf("RECOMMEND_REQUEST_TIMEOUT must be positive, got %v", r.RequestTimeout)
	}
	return nil
}

func (c *Config) validateInsights() error {
	if c.Insights.MinRatings < 0 {
		return fmt.Errorf("INSIGHTS_MIN_RATINGS must be non-negative, got %d", c.Insights.MinRatings)
	}
	if c.Insights.DefaultLimit < 1 || c.Insights.MaxLimit < c.Insights.DefaultLimit {
		return fmt.Errorf("INSIGHTS_DEFAULT_LIMIT (%d) must be between 1 and INSIGHTS_MAX_LIMIT (%d)",
			c.Insights.DefaultLimit, c.Insights.MaxLimit)
	}
	return nil
}

func (c *Config) validateEvents() error {
	if !c.Events.Enabled {
		return nil
	}
	if c.Events.BufferSize < 0 {
		return fmt.Errorf("EVENTS_BUFFER_SIZE must be non-negative, got %d", c.Events.BufferSize)
	}
	if c.Events.RetryMaxRetries < 0 {
		return fmt.Errorf("EVENTS_RETRY_MAX_RETRIES must be non-negative, got %d", c.Events.RetryMaxRetries)
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %v", c.Server.Timeout)
	}
	return oneOf("ENVIRONMENT", c.Server.Environment, "development", "production")
}

func (c *Config) validateSecurity() error {
	if err := c.validateCORS(); err != nil {
		return err
	}
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1, got %d", c.Security.RateLimitReqs)
	}
	if c.Security.AdminRateLimitReqs < 1 {
		return fmt.Errorf("ADMIN_RATE_LIMIT_REQS must be at least 1, got %d", c.Security.AdminRateLimitReqs)
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %v", c.Security.RateLimitWindow)
	}
	return nil
}

func (c *Config) validateCORS() error {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			if c.IsProduction() {
				return fmt.Errorf("CORS_ORIGINS must not contain * when ENVIRONMENT=production")
			}
			continue
		}
		if err := validateOrigin(origin); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return oneOf("LOG_FORMAT", c.Logging.Format, "json", "console")
}

func oneOf(name, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("%s must be one of %s, got %q", name, strings.Join(allowed, ", "), value)
}
