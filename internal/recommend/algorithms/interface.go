// Screenpick - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/screenpick

package algorithms

import (
	"context"
	"sync"
	"time"

	"github.com/tomtom215/screenpick/internal/catalog"
	"github.com/tomtom215/screenpick/internal/recommend"
)

// cancelCheckInterval is how many candidates are scored between context
// checks.
const cancelCheckInterval = 1024

// BaseAlgorithm provides common bookkeeping for all algorithms.
type BaseAlgorithm struct {
	method         recommend.Method
	version        int
	lastPreparedAt time.Time
	mu             sync.RWMutex
}

// NewBaseAlgorithm creates a new base algorithm for the given method.
func NewBaseAlgorithm(method recommend.Method) BaseAlgorithm {
	return BaseAlgorithm{method: method}
}

// Method returns the strategy identifier.
func (b *BaseAlgorithm) Method() recommend.Method {
	return b.method
}

// Version returns how many models have been prepared.
func (b *BaseAlgorithm) Version() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.version
}

// LastPreparedAt returns when the last model was prepared.
func (b *BaseAlgorithm) LastPreparedAt() time.Time {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastPreparedAt
}

// markPrepared records a successful Prepare.
func (b *BaseAlgorithm) markPrepared() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.version++
	b.lastPreparedAt = time.Now()
}

// seedTitles returns the titles of the seeds in request order.
func seedTitles(seeds []*catalog.Movie) []string {
	out := make([]string, len(seeds))
	for i, s := range seeds {
		out[i] = s.Title
	}
	return out
}

// Ensure all algorithms implement the interface.
var (
	_ recommend.Algorithm = (*ContentBased)(nil)
	_ recommend.Algorithm = (*Collaborative)(nil)
)

// ContextCancelled checks if the context has been canceled.
func ContextCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}
