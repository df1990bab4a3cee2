// Screenpick - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/screenpick

package config

import (
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaultConfig().Validate() error = %v", err)
	}
	if cfg.Server.Port != 8501 {
		t.Errorf("Server.Port = %d, want 8501", cfg.Server.Port)
	}
	if cfg.Recommend.LikedFraction != 0.8 || cfg.Recommend.SeedWeighting != "mean" || cfg.Recommend.MinSupporters != 1 {
		t.Errorf("unexpected collaborative defaults: %+v", cfg.Recommend)
	}
	if cfg.Recommend.Truncation != "shorter" || cfg.Recommend.ContentWeighting != "binary" {
		t.Errorf("unexpected content defaults: %+v", cfg.Recommend)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{name: "defaults", modify: func(*Config) {}},
		{
			name:    "missing movies path",
			modify:  func(c *Config) { c.Data.MoviesPath = " " },
			wantErr: "MOVIES_CSV",
		},
		{
			name:    "inverted scale",
			modify:  func(c *Config) { c.Data.RatingMin = 6 },
			wantErr: "RATING_SCALE_MIN",
		},
		{
			name:    "negative reload interval",
			modify:  func(c *Config) { c.Data.ReloadInterval = -time.Second },
			wantErr: "RELOAD_INTERVAL",
		},
		{
			name:    "max top_n below default",
			modify:  func(c *Config) { c.Recommend.MaxTopN = 5 },
			wantErr: "RECOMMEND_MAX_TOP_N",
		},
		{
			name:    "negative max top_n",
			modify:  func(c *Config) { c.Recommend.MaxTopN = -1 },
			wantErr: "RECOMMEND_MAX_TOP_N",
		},
		{
			name:    "unknown truncation",
			modify:  func(c *Config) { c.Recommend.Truncation = "pad" },
			wantErr: "RECOMMEND_TRUNCATION",
		},
		{
			name:    "liked fraction above one",
			modify:  func(c *Config) { c.Recommend.LikedFraction = 1.5 },
			wantErr: "RECOMMEND_LIKED_FRACTION",
		},
		{
			name:    "zero min supporters",
			modify:  func(c *Config) { c.Recommend.MinSupporters = 0 },
			wantErr: "RECOMMEND_MIN_SUPPORTERS",
		},
		{
			name:   "cache size ignored when disabled",
			modify: func(c *Config) { c.Recommend.CacheEnabled = false; c.Recommend.CacheSize = 0 },
		},
		{
			name:    "insights limits",
			modify:  func(c *Config) { c.Insights.DefaultLimit = 1000 },
			wantErr: "INSIGHTS_DEFAULT_LIMIT",
		},
		{
			name:    "port out of range",
			modify:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: "HTTP_PORT",
		},
		{
			name:    "wildcard CORS in production",
			modify:  func(c *Config) { c.Server.Environment = "production" },
			wantErr: "CORS_ORIGINS",
		},
		{
			name: "explicit CORS in production",
			modify: func(c *Config) {
				c.Server.Environment = "production"
				c.Security.CORSOrigins = []string{"https://movies.example.com"}
			},
		},
		{
			name:    "CORS origin with path",
			modify:  func(c *Config) { c.Security.CORSOrigins = []string{"https://movies.example.com/app"} },
			wantErr: "path",
		},
		{
			name:    "CORS origin without scheme",
			modify:  func(c *Config) { c.Security.CORSOrigins = []string{"ftp://movies.example.com"} },
			wantErr: "scheme",
		},
		{
			name:    "rate limit",
			modify:  func(c *Config) { c.Security.RateLimitReqs = 0 },
			wantErr: "RATE_LIMIT_REQUESTS",
		},
		{
			name:   "rate limit disabled",
			modify: func(c *Config) { c.Security.RateLimitDisabled = true; c.Security.RateLimitReqs = 0 },
		},
		{
			name:    "log level",
			modify:  func(c *Config) { c.Logging.Level = "loud" },
			wantErr: "LOG_LEVEL",
		},
		{
			name:    "log format",
			modify:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "LOG_FORMAT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestServerConfig_Addr(t *testing.T) {
	s := ServerConfig{Host: "127.0.0.1", Port: 8501}
	if got := s.Addr(); got != "127.0.0.1:8501" {
		t.Errorf("Addr() = %q", got)
	}
}
