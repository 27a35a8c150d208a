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
	wmNats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	natsgo "github.com/nats-io/nats.go"

	"github.com/SaphalKatuwal/SilverScreened/internal/config"
	"github.com/SaphalKatuwal/SilverScreened/internal/logging"
	"github.com/SaphalKatuwal/SilverScreened/internal/metrics"
	"github.com/SaphalKatuwal/SilverScreened/internal/models"
)

// DefaultTopic is used when events.topic is empty.
const DefaultTopic = "silverscreened.activity"

// Publisher is what the services depend on.
type Publisher interface {
	Publish(ctx context.Context, activity *models.Activity) error
}

// Bus publishes activity events and hands out its subscriber to the Router.
type Bus struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	topic      string
	logger     watermill.LoggerAdapter

	mu     sync.RWMutex
	closed bool
}

// NewLogger returns a watermill logger backed by the global zerolog logger.
func NewLogger() watermill.LoggerAdapter {
	return watermill.NewSlogLogger(logging.NewSlogLogger())
}

// NewBus creates the bus selected by cfg.
func NewBus(cfg *config.EventsConfig, logger watermill.LoggerAdapter) (*Bus, error) {
	if logger == nil {
		logger = watermill.NopLogger{}
	}

	topic := cfg.Topic
	if topic == "" {
		topic = DefaultTopic
	}

	if cfg.NATSURL == "" {
		ch := gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer: cfg.Buffer,
		}, logger)
		return &Bus{publisher: ch, subscriber: ch, topic: topic, logger: logger}, nil
	}

	pub, sub, err := newNATS(cfg.NATSURL, logger)
	if err != nil {
		return nil, err
	}
	return &Bus{publisher: pub, subscriber: sub, topic: topic, logger: logger}, nil
}

func newNATS(url string, logger watermill.LoggerAdapter) (message.Publisher, message.Subscriber, error) {
	natsOpts := []natsgo.Option{
		natsgo.Name("silverscreened"),
		natsgo.RetryOnFailedConnect(true),
		natsgo.MaxReconnects(-1),
		natsgo.ReconnectWait(2 * time.Second),
		natsgo.DisconnectErrHandler(func(_ *natsgo.Conn, err error) {
			if err != nil {
				logger.Error("NATS disconnected", err, nil)
			}
		}),
		natsgo.ReconnectHandler(func(nc *natsgo.Conn) {
			logger.Info("NATS reconnected", watermill.LogFields{"url": nc.ConnectedUrl()})
		}),
	}
	marshaler := &wmNats.NATSMarshaler{}
	jetStream := wmNats.JetStreamConfig{Disabled: true}

	pub, err := wmNats.NewPublisher(wmNats.PublisherConfig{
		URL:         url,
		NatsOptions: natsOpts,
		Marshaler:   marshaler,
		JetStream:   jetStream,
	}, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("create nats publisher: %w", err)
	}

	sub, err := wmNats.NewSubscriber(wmNats.SubscriberConfig{
		URL:              url,
		SubscribersCount: 1,
		CloseTimeout:     10 * time.Second,
		AckWaitTimeout:   30 * time.Second,
		NatsOptions:      natsOpts,
		Unmarshaler:      marshaler,
		JetStream:        jetStream,
	}, logger)
	if err != nil {
		_ = pub.Close()
		return nil, nil, fmt.Errorf("create nats subscriber: %w", err)
	}
	return pub, sub, nil
}

// Topic returns the topic events are published on.
func (b *Bus) Topic() string {
	return b.topic
}

// Subscriber returns the subscriber the Router consumes from.
func (b *Bus) Subscriber() message.Subscriber {
	return b.subscriber
}

// Publish serializes activity and publishes it. Missing IDs and
// timestamps are filled in. Failures are logged and counted.
func (b *Bus) Publish(ctx context.Context, activity *models.Activity) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		err := fmt.Errorf("event bus is closed")
		metrics.RecordEventPublish(err)
		return err
	}

	if activity.ID == "" {
		activity.ID = uuid.NewString()
	}
	if activity.OccurredAt.IsZero() {
		activity.OccurredAt = time.Now().UTC()
	}

	data, err := json.Marshal(activity)
	if err != nil {
		metrics.RecordEventPublish(err)
		return fmt.Errorf("serialize activity: %w", err)
	}

	msg := message.NewMessage(activity.ID, data)
	msg.Metadata.Set("type", string(activity.Type))
	msg.Metadata.Set("user_id", activity.UserID)
	if requestID := logging.RequestIDFromContext(ctx); requestID != "" {
		msg.Metadata.Set("request_id", requestID)
	}
	msg.SetContext(ctx)

	err = b.publisher.Publish(b.topic, msg)
	metrics.RecordEventPublish(err)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).
			Str("type", string(activity.Type)).
			Str("user_id", activity.UserID).
			Msg("Failed to publish activity event")
		return fmt.Errorf("publish activity: %w", err)
	}
	return nil
}

// Close closes the publisher and subscriber. Safe to call more than once.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true

	var firstErr error
	if err := b.publisher.Close(); err != nil {
		firstErr = err
	}
	// gochannel uses one value for both sides.
	if any(b.subscriber) != any(b.publisher) {
		if err := b.subscriber.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Decode parses an activity from a message payload.
func Decode(msg *message.Message) (*models.Activity, error) {
	var activity models.Activity
	if err := json.Unmarshal(msg.Payload, &activity); err != nil {
		return nil, fmt.Errorf("decode activity %s: %w", msg.UUID, err)
	}
	return &activity, nil
}
