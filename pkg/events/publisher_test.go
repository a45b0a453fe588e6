package events

import (
	"context"
	"errors"
	"testing"

	"adorder-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingBus struct {
	events []Event
	err    error
}

func (b *recordingBus) Publish(_ context.Context, event Event) error {
	b.events = append(b.events, event)
	return b.err
}

func TestNatsPublisher_PublishOrderConfirmed(t *testing.T) {
	bus := &recordingBus{}
	p := NewNatsPublisher(bus, logger.NewNopLogger())

	orderID, userID := uuid.New(), uuid.New()
	p.PublishOrderConfirmed(context.Background(), orderID, userID, 70000, 2)

	require.Len(t, bus.events, 1)
	evt := bus.events[0]
	assert.Equal(t, OrderConfirmed, evt.EventType())
	assert.Equal(t, orderID.String(), evt.Payload()["order_id"])
	assert.Equal(t, userID.String(), evt.Payload()["user_id"])
	assert.EqualValues(t, 70000, evt.Payload()["total_price"])
	assert.False(t, evt.Timestamp().IsZero())
}

func TestNatsPublisher_BusErrorIsSwallowed(t *testing.T) {
	bus := &recordingBus{err: errors.New("nats down")}
	p := NewNatsPublisher(bus, logger.NewNopLogger())

	assert.NotPanics(t, func() {
		p.PublishMessageDeleted(context.Background(), uuid.New(), uuid.New(), uuid.New())
	})
	assert.Len(t, bus.events, 1)
}

func TestNatsPublisher_NilBus(t *testing.T) {
	p := NewNatsPublisher(nil, logger.NewNopLogger())
	assert.NotPanics(t, func() {
		p.PublishUserRegistered(context.Background(), uuid.New(), "a@b.c", "T1")
	})
}
