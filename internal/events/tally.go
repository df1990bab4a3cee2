// Screenpick - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/screenpick

package events

import (
	"sort"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/rs/zerolog"
)

// SeedCount is how often a title was used as a seed.
type SeedCount struct {
	Title string `json:"title"`
	Count int    `json:"count"`
}

// SeedTally counts seed titles across served recommendations.
type SeedTally struct {
	logger zerolog.Logger

	mu     sync.RWMutex
	counts map[string]int
	events int64
}

// NewSeedTally creates an empty tally.
func NewSeedTally(logger zerolog.Logger) *SeedTally {
	return &SeedTally{
		logger: logger.With().Str("component", "seed_tally").Logger(),
		counts: make(map[string]int),
	}
}

// Handle is a router consumer for TopicRecommendationServed. Undecodable
// messages are logged and acknowledged since redelivery cannot fix them.
func (t *SeedTally) Handle(msg *message.Message) error {
	evt, err := ParseRecommendationServed(msg)
	if err != nil {
		t.logger.Warn().Err(err).Str("message_id", msg.UUID).Msg("dropping malformed event")
		return nil
	}
	t.Record(evt)
	return nil
}

// Record adds the seeds of one event.
func (t *SeedTally) Record(evt *RecommendationServed) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, s := range evt.Seeds {
		t.counts[s]++
	}
	t.events++
}

// Top returns the most used seeds, count desc then title asc.
// A limit <= 0 returns every title.
func (t *SeedTally) Top(limit int) []SeedCount {
	t.mu.RLock()
	out := make([]SeedCount, 0, len(t.counts))
	for title, n := range t.counts {
		out = append(out, SeedCount{Title: title, Count: n})
	}
	t.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Title < out[j].Title
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Events returns the number of events recorded.
func (t *SeedTally) Events() int64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.events
}

// Reset clears all counts.
func (t *SeedTally) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.counts = make(map[string]int)
	t.events = 0
}
