package events

import (
	"context"
	"time"
)

// Event types published on the bus. The NATS subject is "events.<TYPE>".
const (
	OrderConfirmed         = "ORDER_CONFIRMED"
	OrderStatusChanged     = "ORDER_STATUS_CHANGED"
	CancellationRequested  = "CANCELLATION_REQUESTED"
	CancellationProcessed  = "CANCELLATION_PROCESSED"
	OrderItemMessageNew    = "ORDER_ITEM_MESSAGE_CREATED"
	OrderItemMessagesRead  = "ORDER_ITEM_MESSAGES_READ"
	OrderItemMessageDelete = "ORDER_ITEM_MESSAGE_DELETED"
	PaymentCompleted       = "PAYMENT_COMPLETED"
	BalanceAdjusted        = "BALANCE_ADJUSTED"
	UserRegistered         = "USER_REGISTERED"
)

// Event defines the contract for all system events.
type Event interface {
	EventType() string
	Payload() map[string]interface{}
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Bus is the transport events are written to. *nats.Publisher implements it.
type Bus interface {
	Publish(ctx context.Context, event Event) error
}
