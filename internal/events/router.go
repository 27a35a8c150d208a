// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

package events

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"

	"github.com/SaphalKatuwal/SilverScreened/internal/logging"
	"github.com/SaphalKatuwal/SilverScreened/internal/models"
)

// HandlerFunc processes one decoded activity.
type HandlerFunc func(ctx context.Context, activity *models.Activity) error

// RouterConfig holds configuration for the Router.
type RouterConfig struct {
	// CloseTimeout is how long to wait for handlers to finish when closing.
	CloseTimeout time.Duration

	RetryMaxRetries      int
	RetryInitialInterval time.Duration
	RetryMaxInterval     time.Duration
}

// DefaultRouterConfig returns production defaults.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		CloseTimeout:         10 * time.Second,
		RetryMaxRetries:      3,
		RetryInitialInterval: 100 * time.Millisecond,
		RetryMaxInterval:     2 * time.Second,
	}
}

// Router consumes the activity topic and runs a handler for every event.
// It implements suture.Service; each Serve call builds a fresh watermill
// router so the supervisor can restart it.
type Router struct {
	bus     *Bus
	handler HandlerFunc
	config  RouterConfig
	logger  watermill.LoggerAdapter
	name    string

	readyOnce sync.Once
	ready     chan struct{}
}

// NewRouter creates a router for bus.
func NewRouter(bus *Bus, handler HandlerFunc) *Router {
	return NewRouterWithConfig(bus, handler, DefaultRouterConfig())
}

// NewRouterWithConfig creates a router with explicit settings.
func NewRouterWithConfig(bus *Bus, handler HandlerFunc, cfg RouterConfig) *Router {
	return &Router{
		bus:     bus,
		handler: handler,
		config:  cfg,
		logger:  bus.logger,
		name:    "activity-router",
		ready:   make(chan struct{}),
	}
}

// Running is closed once the first router run has subscribed.
func (r *Router) Running() <-chan struct{} {
	return r.ready
}

// Serve runs until ctx is cancelled.
func (r *Router) Serve(ctx context.Context) error {
	router, err := message.NewRouter(message.RouterConfig{CloseTimeout: r.config.CloseTimeout}, r.logger)
	if err != nil {
		return fmt.Errorf("create watermill router: %w", err)
	}

	router.AddMiddleware(
		middleware.Recoverer,
		middleware.Retry{
			MaxRetries:      r.config.RetryMaxRetries,
			InitialInterval: r.config.RetryInitialInterval,
			MaxInterval:     r.config.RetryMaxInterval,
			Multiplier:      2.0,
			Logger:          r.logger,
		}.Middleware,
	)

	router.AddConsumerHandler(
		"activity-fanout",
		r.bus.Topic(),
		r.bus.Subscriber(),
		r.handle,
	)

	go func() {
		select {
		case <-router.Running():
			r.readyOnce.Do(func() { close(r.ready) })
		case <-ctx.Done():
		}
	}()

	if err := router.Run(ctx); err != nil {
		return fmt.Errorf("activity router: %w", err)
	}
	return ctx.Err()
}

func (r *Router) handle(msg *message.Message) error {
	activity, err := Decode(msg)
	if err != nil {
		// Malformed payloads are dropped rather than retried.
		logging.Warn().Err(err).Msg("Dropping malformed activity event")
		return nil
	}

	ctx := msg.Context()
	if requestID := msg.Metadata.Get("request_id"); requestID != "" {
		ctx = logging.ContextWithRequestID(ctx, requestID)
	}
	return r.handler(ctx, activity)
}

func (r *Router) String() string {
	return r.name
}
