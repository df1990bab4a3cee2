// Screenpick - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/screenpick

package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/rs/zerolog"

	"github.com/tomtom215/screenpick/internal/config"
	"github.com/tomtom215/screenpick/internal/ratings"
	"github.com/tomtom215/screenpick/internal/recommend"
)

var _ recommend.Source = (*Store)(nil)

// Files locates the CSV inputs. Tags is optional.
type Files struct {
	Movies  string
	Ratings string
	Tags    string
}

// Store imports MovieLens-style CSV files into DuckDB and reads them back as
// a catalog and a rating index.
type Store struct {
	conn   *sql.DB
	cfg    *config.DatabaseConfig
	files  Files
	scale  ratings.Scale
	logger zerolog.Logger

	// loadMu serializes imports; they replace shared tables.
	loadMu sync.Mutex

	statsMu sync.RWMutex
	stats   LoadStats
}

// New opens DuckDB. An empty cfg.Path keeps the database in memory.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func New(cfg *config.DatabaseConfig, files Files, scale ratings.Scale, logger zerolog.Logger) (*Store, error) {
	if err := scale.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rating scale: %w", err)
	}

	if dir := filepath.Dir(cfg.Path); cfg.Path != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
		}
	}

	conn, err := sql.Open("duckdb", connString(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	configureConnectionPool(conn)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{
		conn:   conn,
		cfg:    cfg,
		files:  files,
		scale:  scale,
		logger: logger.With().Str("component", "database").Logger(),
	}, nil
}

func connString(cfg *config.DatabaseConfig) string {
	threads := cfg.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	params := []string{fmt.Sprintf("threads=%d", threads)}
	if cfg.MaxMemory != "" {
		params = append(params, "max_memory="+cfg.MaxMemory)
	}
	path := cfg.Path
	if path == ":memory:" {
		path = ""
	}
	return path + "?" + strings.Join(params, "&")
}

// configureConnectionPool sizes the pool for short analytical reads.
func configureConnectionPool(conn *sql.DB) {
	conn.SetMaxOpenConns(runtime.NumCPU())
	conn.SetMaxIdleConns(2)
	conn.SetConnMaxLifetime(time.Hour)
	conn.SetConnMaxIdleTime(5 * time.Minute)
}

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.conn.PingContext(ctx)
}

// Close closes the database.
func (s *Store) Close() error {
	return s.conn.Close()
}

// Stats returns the counters of the last successful Load.
func (s *Store) Stats() LoadStats {
	s.statsMu.RLock()
	defer s.statsMu.RUnlock()
	return s.stats
}
