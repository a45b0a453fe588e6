package events

import (
	"context"
	"time"

	"adorder-be/internal/pkg/logger"

	"github.com/google/uuid"
)

// Publisher emits domain events after a state change has been committed.
// Publishing is best effort: failures are logged, never returned.
type Publisher interface {
	PublishOrderConfirmed(ctx context.Context, orderId, userId uuid.UUID, totalPrice int64, itemCount int)
	PublishOrderStatusChanged(ctx context.Context, orderId, userId uuid.UUID, from, to string)
	PublishCancellationRequested(ctx context.Context, requestId, orderItemId, userId uuid.UUID, requestType string)
	PublishCancellationProcessed(ctx context.Context, requestId, orderItemId, userId uuid.UUID, requestType, status string)
	PublishMessageCreated(ctx context.Context, messageId, orderItemId, ownerId, authorId uuid.UUID, authorRole, message string)
	PublishMessagesRead(ctx context.Context, orderItemId, ownerId, readerId uuid.UUID, count int)
	PublishMessageDeleted(ctx context.Context, messageId, orderItemId, ownerId uuid.UUID)
	PublishPaymentCompleted(ctx context.Context, paymentId, userId uuid.UUID, pointAmount, newBalance int64)
	PublishBalanceAdjusted(ctx context.Context, userId, adminId uuid.UUID, amount, newBalance int64, memo string)
	PublishUserRegistered(ctx context.Context, userId uuid.UUID, email, tier string)
}

// NatsPublisher implements Publisher on top of a Bus. A nil bus turns every
// call into a no-op.
type NatsPublisher struct {
	bus    Bus
	logger logger.ILogger
}

func NewNatsPublisher(bus Bus, logger logger.ILogger) *NatsPublisher {
	return &NatsPublisher{
		bus:    bus,
		logger: logger,
	}
}

func (p *NatsPublisher) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if p.bus == nil {
		return
	}
	now := time.Now()
	data["occurred_at"] = now
	evt := BaseEvent{Type: eventType, Data: data, OccurredAt: now}
	if err := p.bus.Publish(ctx, evt); err != nil {
		p.logger.Error("EVENTS", "Failed to publish "+eventType+" event", map[string]interface{}{"error": err.Error()})
	}
}

func (p *NatsPublisher) PublishOrderConfirmed(ctx context.Context, orderId, userId uuid.UUID, totalPrice int64, itemCount int) {
	p.publish(ctx, OrderConfirmed, map[string]interface{}{
		"order_id":    orderId.String(),
		"user_id":     userId.String(),
		"total_price": totalPrice,
		"item_count":  itemCount,
		"entity_type": "order",
		"entity_id":   orderId.String(),
	})
}

func (p *NatsPublisher) PublishOrderStatusChanged(ctx context.Context, orderId, userId uuid.UUID, from, to string) {
	p.publish(ctx, OrderStatusChanged, map[string]interface{}{
		"order_id":    orderId.String(),
		"user_id":     userId.String(),
		"from_status": from,
		"to_status":   to,
		"entity_type": "order",
		"entity_id":   orderId.String(),
	})
}

func (p *NatsPublisher) PublishCancellationRequested(ctx context.Context, requestId, orderItemId, userId uuid.UUID, requestType string) {
	p.publish(ctx, CancellationRequested, map[string]interface{}{
		"request_id":    requestId.String(),
		"order_item_id": orderItemId.String(),
		"user_id":       userId.String(),
		"request_type":  requestType,
		"entity_type":   "cancellation_request",
		"entity_id":     requestId.String(),
	})
}

func (p *NatsPublisher) PublishCancellationProcessed(ctx context.Context, requestId, orderItemId, userId uuid.UUID, requestType, status string) {
	p.publish(ctx, CancellationProcessed, map[string]interface{}{
		"request_id":    requestId.String(),
		"order_item_id": orderItemId.String(),
		"user_id":       userId.String(),
		"request_type":  requestType,
		"status":        status,
		"entity_type":   "cancellation_request",
		"entity_id":     requestId.String(),
	})
}

func (p *NatsPublisher) PublishMessageCreated(ctx context.Context, messageId, orderItemId, ownerId, authorId uuid.UUID, authorRole, message string) {
	p.publish(ctx, OrderItemMessageNew, map[string]interface{}{
		"message_id":    messageId.String(),
		"order_item_id": orderItemId.String(),
		"user_id":       ownerId.String(),
		"author_id":     authorId.String(),
		"author_role":   authorRole,
		"message":       message,
	})
}

func (p *NatsPublisher) PublishMessagesRead(ctx context.Context, orderItemId, ownerId, readerId uuid.UUID, count int) {
	p.publish(ctx, OrderItemMessagesRead, map[string]interface{}{
		"order_item_id": orderItemId.String(),
		"user_id":       ownerId.String(),
		"reader_id":     readerId.String(),
		"count":         count,
	})
}

func (p *NatsPublisher) PublishMessageDeleted(ctx context.Context, messageId, orderItemId, ownerId uuid.UUID) {
	p.publish(ctx, OrderItemMessageDelete, map[string]interface{}{
		"message_id":    messageId.String(),
		"order_item_id": orderItemId.String(),
		"user_id":       ownerId.String(),
	})
}

func (p *NatsPublisher) PublishPaymentCompleted(ctx context.Context, paymentId, userId uuid.UUID, pointAmount, newBalance int64) {
	p.publish(ctx, PaymentCompleted, map[string]interface{}{
		"payment_id":   paymentId.String(),
		"user_id":      userId.String(),
		"point_amount": pointAmount,
		"new_balance":  newBalance,
		"entity_type":  "payment",
		"entity_id":    paymentId.String(),
	})
}

func (p *NatsPublisher) PublishBalanceAdjusted(ctx context.Context, userId, adminId uuid.UUID, amount, newBalance int64, memo string) {
	p.publish(ctx, BalanceAdjusted, map[string]interface{}{
		"user_id":     userId.String(),
		"actor_id":    adminId.String(),
		"amount":      amount,
		"new_balance": newBalance,
		"memo":        memo,
	})
}

func (p *NatsPublisher) PublishUserRegistered(ctx context.Context, userId uuid.UUID, email, tier string) {
	p.publish(ctx, UserRegistered, map[string]interface{}{
		"user_id": userId.String(),
		"email":   email,
		"tier":    tier,
		"source":  "admin",
	})
}
