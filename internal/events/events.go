// Screenpick - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/screenpick

package events

import (
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/screenpick/internal/recommend"
)

// TopicRecommendationServed carries one message per successful
// recommendation response.
const TopicRecommendationServed = "recommendation.served"

// Metadata keys set on every message.
const (
	MetadataEventType = "event_type"
	MetadataRequestID = "request_id"
	MetadataMethod    = "method"
)

// ErrInvalidEvent is returned when an event is missing required fields.
var ErrInvalidEvent = errors.New("invalid event")

// RecommendationServed describes a recommendation that was returned to a
// client.
type RecommendationServed struct {
	EventID         string    `json:"event_id"`
	RequestID       string    `json:"request_id"`
	Method          string    `json:"method"`
	Seeds           []string  `json:"seeds"`
	Results         []string  `json:"results"`
	TopN            int       `json:"top_n"`
	CacheHit        bool      `json:"cache_hit"`
	SnapshotVersion int64     `json:"snapshot_version"`
	ServedAt        time.Time `json:"served_at"`
}

// NewRecommendationServed builds an event from an engine response.
func NewRecommendationServed(resp *recommend.Response) *RecommendationServed {
	md := resp.Metadata
	seeds := make([]string, len(md.Seeds))
	copy(seeds, md.Seeds)
	return &RecommendationServed{
		EventID:         uuid.New().String(),
		RequestID:       md.RequestID,
		Method:          md.Method.String(),
		Seeds:           seeds,
		Results:         resp.Titles(),
		TopN:            md.TopN,
		CacheHit:        md.CacheHit,
		SnapshotVersion: md.SnapshotVersion,
		ServedAt:        md.Timestamp,
	}
}

// Validate checks the fields consumers rely on.
func (e *RecommendationServed) Validate() error {
	if e.EventID == "" {
		return fmt.Errorf("%w: event_id is required", ErrInvalidEvent)
	}
	if e.Method == "" {
		return fmt.Errorf("%w: method is required", ErrInvalidEvent)
	}
	if len(e.Seeds) == 0 {
		return fmt.Errorf("%w: seeds are required", ErrInvalidEvent)
	}
	return nil
}

// ToMessage serializes the event into a watermill message. The event ID
// becomes the message UUID.
func (e *RecommendationServed) ToMessage() (*message.Message, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	payload, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}

	msg := message.NewMessage(e.EventID, payload)
	msg.Metadata.Set(MetadataEventType, TopicRecommendationServed)
	msg.Metadata.Set(MetadataRequestID, e.RequestID)
	msg.Metadata.Set(MetadataMethod, e.Method)
	return msg, nil
}

// ParseRecommendationServed decodes a message payload.
func ParseRecommendationServed(msg *message.Message) (*RecommendationServed, error) {
	var e RecommendationServed
	if err := json.Unmarshal(msg.Payload, &e); err != nil {
		return nil, fmt.Errorf("unmarshal event %s: %w", msg.UUID, err)
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return &e, nil
}
