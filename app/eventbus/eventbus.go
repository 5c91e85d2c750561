package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	nc "github.com/nats-io/nats.go"
	"github.com/nats-io/nkeys"
)

// MetadataEventType carries the topic on every published message.
const MetadataEventType = "event_type"

// Publisher publishes domain events. Payloads are JSON encoded.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload any) error
}

// Config selects the transport. An empty URL selects the in-process channel bus.
type Config struct {
	URL      string
	NKeySeed string
}

// EventBus wraps a watermill publisher/subscriber pair.
type EventBus struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	logger     *slog.Logger
}

var _ Publisher = (*EventBus)(nil)

// New returns a NATS-backed bus when cfg.URL is set, otherwise an in-process one.
func New(cfg Config, logger *slog.Logger) (*EventBus, error) {
	if cfg.URL == "" {
		return NewInMemory(logger), nil
	}

	natsOptions := []nc.Option{
		nc.RetryOnFailedConnect(true),
		nc.MaxReconnects(-1),
	}
	if cfg.NKeySeed != "" {
		opt, err := nkeyOption(cfg.NKeySeed)
		if err != nil {
			return nil, err
		}
		natsOptions = append(natsOptions, opt)
	}

	// Create a Watermill logger that wraps slog
	watermillLogger := watermill.NewSlogLogger(logger)
	marshaler := &nats.NATSMarshaler{}
	jsConfig := nats.JetStreamConfig{Disabled: true}

	publisher, err := nats.NewPublisher(
		nats.PublisherConfig{
			URL:         cfg.URL,
			Marshaler:   marshaler,
			NatsOptions: natsOptions,
			JetStream:   jsConfig,
		},
		watermillLogger,
	)
	if err != nil {
		logger.Error("Failed to create Watermill publisher", slog.Any("error", err))
		return nil, fmt.Errorf("failed to create Watermill publisher: %w", err)
	}

	subscriber, err := nats.NewSubscriber(
		nats.SubscriberConfig{
			URL:         cfg.URL,
			Unmarshaler: marshaler,
			NatsOptions: natsOptions,
			JetStream:   jsConfig,
		},
		watermillLogger,
	)
	if err != nil {
		_ = publisher.Close()
		logger.Error("Failed to create Watermill subscriber", slog.Any("error", err))
		return nil, fmt.Errorf("failed to create Watermill subscriber: %w", err)
	}

	logger.Info("Event bus connected to NATS", slog.String("url", cfg.URL))
	return &EventBus{publisher: publisher, subscriber: subscriber, logger: logger}, nil
}

// NewInMemory returns a bus backed by a watermill Go channel.
func NewInMemory(logger *slog.Logger) *EventBus {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewSlogLogger(logger))
	return &EventBus{publisher: pubSub, subscriber: pubSub, logger: logger}
}

func nkeyOption(seed string) (nc.Option, error) {
	kp, err := nkeys.FromSeed([]byte(seed))
	if err != nil {
		return nil, fmt.Errorf("failed to parse NATS nkey seed: %w", err)
	}
	pub, err := kp.PublicKey()
	if err != nil {
		return nil, fmt.Errorf("failed to derive NATS nkey public key: %w", err)
	}
	return nc.Nkey(pub, kp.Sign), nil
}

// Publish JSON-encodes payload and publishes it on topic.
func (b *EventBus) Publish(ctx context.Context, topic string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", topic, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.Metadata.Set(MetadataEventType, topic)
	msg.SetContext(ctx)

	if err := b.publisher.Publish(topic, msg); err != nil {
		return fmt.Errorf("failed to publish %s: %w", topic, err)
	}
	return nil
}

// Subscribe returns the message stream for topic until ctx is done.
func (b *EventBus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return b.subscriber.Subscribe(ctx, topic)
}

// Close shuts down the publisher and subscriber.
func (b *EventBus) Close() error {
	pubErr := b.publisher.Close()
	subErr := b.subscriber.Close()
	if pubErr != nil {
		return pubErr
	}
	return subErr
}
