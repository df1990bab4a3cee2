// Screenpick - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/screenpick

// Package events publishes served recommendations on an in-process
// watermill pub/sub and consumes them through a watermill router.
//
// # Topics
//
//   - recommendation.served: one RecommendationServed per response
//
// # Consumers
//
// SeedTally counts how often each title is used as a seed. It backs the
// popular-seeds insight.
//
// # Usage
//
//	bus, err := events.NewBus(events.DefaultConfig(), logger)
//	tally := events.NewSeedTally(logger)
//	bus.AddConsumer("seed-tally", events.TopicRecommendationServed, tally.Handle)
//	go bus.Run(ctx)
//	err = bus.Publish(ctx, events.NewRecommendationServed(resp))
package events
