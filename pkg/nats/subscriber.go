package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"adorder-be/pkg/events"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// EventHandler is a function that processes an event.
type EventHandler func(ctx context.Context, event events.Event) error

// Subscriber handles listening for events from NATS.
type Subscriber struct {
	nc  *nats.Conn
	js  jetstream.JetStream
	ctx jetstream.ConsumeContext
}

func NewSubscriber(url string) (*Subscriber, error) {
	nc, js, err := connect(url)
	if err != nil {
		return nil, err
	}
	return &Subscriber{nc: nc, js: js}, nil
}

// Subscribe registers a handler behind a durable consumer. Handler errors
// NAK the message so JetStream redelivers it.
func (s *Subscriber) Subscribe(ctx context.Context, subject, durableName string, handler EventHandler) error {
	consumer, err := s.js.CreateOrUpdateConsumer(ctx, streamName, jetstream.ConsumerConfig{
		Durable:       durableName,
		FilterSubject: subject,
		AckPolicy:     jetstream.AckExplicitPolicy,
		DeliverPolicy: jetstream.DeliverNewPolicy,
	})
	if err != nil {
		return fmt.Errorf("failed to create consumer: %w", err)
	}

	cc, err := consumer.Consume(func(msg jetstream.Msg) {
		var payload map[string]interface{}
		if err := json.Unmarshal(msg.Data(), &payload); err != nil {
			log.Printf("Error unmarshalling event data: %v", err)
			// Poison message, redelivery cannot fix it.
			_ = msg.Term()
			return
		}

		occurredAt := time.Now()
		if meta, err := msg.Metadata(); err == nil {
			occurredAt = meta.Timestamp
		}

		event := events.BaseEvent{
			Type:       strings.TrimPrefix(msg.Subject(), subjectPrefix),
			Data:       payload,
			OccurredAt: occurredAt,
		}

		if err := handler(ctx, event); err != nil {
			log.Printf("Handler failed for event %s: %v", msg.Subject(), err)
			_ = msg.Nak()
			return
		}
		_ = msg.Ack()
	})
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}
	s.ctx = cc

	log.Printf("Subscribed to %s with durable %s", subject, durableName)
	return nil
}

func (s *Subscriber) Close() {
	if s.ctx != nil {
		s.ctx.Stop()
	}
	if s.nc != nil {
		s.nc.Close()
	}
}
