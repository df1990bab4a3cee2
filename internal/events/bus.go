// Screenpick - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/screenpick

package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/rs/zerolog"

	"github.com/tomtom215/screenpick/internal/logging"
	"github.com/tomtom215/screenpick/internal/metrics"
)

// ErrBusClosed is returned when publishing to a closed bus.
var ErrBusClosed = errors.New("event bus closed")

// Config holds event bus settings.
type Config struct {
	// Enabled turns event publishing on. A disabled bus is never created.
	Enabled bool `json:"enabled"`

	// BufferSize is the per-subscriber output channel buffer.
	BufferSize int64 `json:"buffer_size"`

	// CloseTimeout bounds how long Close waits for in-flight handlers.
	CloseTimeout time.Duration `json:"close_timeout"`

	// RetryMaxRetries and RetryInitialInterval configure handler retries.
	RetryMaxRetries      int           `json:"retry_max_retries"`
	RetryInitialInterval time.Duration `json:"retry_initial_interval"`
}

// DefaultConfig returns the default bus settings.
func DefaultConfig() Config {
	return Config{
		Enabled:              true,
		BufferSize:           256,
		CloseTimeout:         10 * time.Second,
		RetryMaxRetries:      3,
		RetryInitialInterval: 100 * time.Millisecond,
	}
}

type consumer struct {
	name    string
	topic   string
	handler message.NoPublishHandlerFunc
}

// Bus is an in-process publish/subscribe channel with a watermill router
// delivering messages to registered consumers.
//
// The router is rebuilt after every Run so the bus can be restarted by a
// supervisor. Consumers must be registered before Run.
type Bus struct {
	cfg      Config
	logger   zerolog.Logger
	wmLogger watermill.LoggerAdapter
	pubsub   *gochannel.GoChannel

	mu        sync.Mutex
	router    *message.Router
	consumers []consumer
	closed    bool
}

// NewBus creates an event bus. Nothing is delivered until Run is called.
func NewBus(cfg Config, logger zerolog.Logger) (*Bus, error) {
	def := DefaultConfig()
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = def.BufferSize
	}
	if cfg.CloseTimeout <= 0 {
		cfg.CloseTimeout = def.CloseTimeout
	}
	if cfg.RetryInitialInterval <= 0 {
		cfg.RetryInitialInterval = def.RetryInitialInterval
	}

	logger = logger.With().Str("component", "events").Logger()
	wmLogger := watermill.NewSlogLogger(slog.New(logging.NewSlogHandlerWithLogger(logger)))

	b := &Bus{
		cfg:      cfg,
		logger:   logger,
		wmLogger: wmLogger,
		pubsub: gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer: cfg.BufferSize,
		}, wmLogger),
	}

	router, err := b.newRouter()
	if err != nil {
		return nil, err
	}
	b.router = router
	return b, nil
}

// newRouter builds a router with the middleware stack:
// Recoverer turns handler panics into errors, Retry re-delivers failures.
func (b *Bus) newRouter() (*message.Router, error) {
	router, err := message.NewRouter(message.RouterConfig{CloseTimeout: b.cfg.CloseTimeout}, b.wmLogger)
	if err != nil {
		return nil, fmt.Errorf("create watermill router: %w", err)
	}

	router.AddMiddleware(middleware.Recoverer)
	retry := middleware.Retry{
		MaxRetries:      b.cfg.RetryMaxRetries,
		InitialInterval: b.cfg.RetryInitialInterval,
		Multiplier:      2.0,
		Logger:          b.wmLogger,
	}
	router.AddMiddleware(retry.Middleware)

	for _, c := range b.consumers {
		router.AddConsumerHandler(c.name, c.topic, routerSubscriber{b.pubsub}, b.instrument(c))
	}
	return router, nil
}

// routerSubscriber hands the shared pub/sub to a router. The router closes
// its subscribers when it stops; the pub/sub outlives routers and is only
// closed by Bus.Close.
type routerSubscriber struct {
	message.Subscriber
}

func (routerSubscriber) Close() error { return nil }

// instrument wraps a handler with consumed-message metrics.
func (b *Bus) instrument(c consumer) message.NoPublishHandlerFunc {
	return func(msg *message.Message) error {
		err := c.handler(msg)
		metrics.RecordEventConsumed(c.topic, c.name, err == nil)
		return err
	}
}

// AddConsumer registers a handler for a topic.
func (b *Bus) AddConsumer(name, topic string, handler message.NoPublishHandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()

	c := consumer{name: name, topic: topic, handler: handler}
	b.consumers = append(b.consumers, c)
	b.router.AddConsumerHandler(c.name, c.topic, routerSubscriber{b.pubsub}, b.instrument(c))
}

// Run delivers messages to consumers until ctx is canceled or the router
// stops. It blocks.
func (b *Bus) Run(ctx context.Context) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrBusClosed
	}
	router := b.router
	consumers := len(b.consumers)
	b.mu.Unlock()

	b.logger.Info().Int("consumers", consumers).Msg("event router starting")
	err := router.Run(ctx)
	b.logger.Info().Msg("event router stopped")

	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.closed {
		next, rerr := b.newRouter()
		if rerr != nil {
			return errors.Join(err, rerr)
		}
		b.router = next
	}
	return err
}

// Running returns a channel that is closed once the current router has
// subscribed all consumers.
func (b *Bus) Running() <-chan struct{} {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.router.Running()
}

// Publish sends a served recommendation to the bus.
func (b *Bus) Publish(ctx context.Context, evt *RecommendationServed) error {
	b.mu.Lock()
	closed := b.closed
	b.mu.Unlock()
	if closed {
		return ErrBusClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg, err := evt.ToMessage()
	if err != nil {
		metrics.RecordEventPublished(TopicRecommendationServed, false)
		return err
	}
	if err := b.pubsub.Publish(TopicRecommendationServed, msg); err != nil {
		metrics.RecordEventPublished(TopicRecommendationServed, false)
		return fmt.Errorf("publish %s: %w", TopicRecommendationServed, err)
	}
	metrics.RecordEventPublished(TopicRecommendationServed, true)
	return nil
}

// Close stops the router and the underlying pub/sub.
func (b *Bus) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	router := b.router
	b.mu.Unlock()

	var errs []error
	if err := router.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close router: %w", err))
	}
	if err := b.pubsub.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close pubsub: %w", err))
	}
	return errors.Join(errs...)
}
