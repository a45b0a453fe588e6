package service

import (
	"context"

	"adorder-be/internal/pkg/logger"
	"adorder-be/internal/websocket"
	"adorder-be/pkg/events"
	pktNats "adorder-be/pkg/nats"

	"github.com/google/uuid"
)

// RealtimeDelivery pushes frames to connected websocket clients.
// Implemented by *websocket.Hub.
type RealtimeDelivery interface {
	SendToUser(userID uuid.UUID, env websocket.Envelope)
	SendToAdmins(env websocket.Envelope)
}

// NotificationService relays bus events to the websocket hub. Delivery is
// best effort; nothing is persisted.
type NotificationService struct {
	subscriber *pktNats.Subscriber
	delivery   RealtimeDelivery
	logger     logger.ILogger
}

func NewNotificationService(sub *pktNats.Subscriber, delivery RealtimeDelivery, log logger.ILogger) *NotificationService {
	return &NotificationService{
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins listening to the event bus.
func (s *NotificationService) Start(ctx context.Context) {
	if s.subscriber == nil {
		return
	}
	err := s.subscriber.Subscribe(ctx, pktNats.Subject(">"), "realtime-relay", s.HandleEvent)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to start realtime subscriber", map[string]interface{}{"error": err.Error()})
		return
	}
	s.logger.Info("NotificationService", "Realtime relay started", nil)
}

// adminAudience lists events every connected admin also receives.
var adminAudience = map[string]bool{
	events.OrderConfirmed:         true,
	events.CancellationRequested:  true,
	events.OrderItemMessageNew:    true,
	events.OrderItemMessagesRead:  true,
	events.OrderItemMessageDelete: true,
}

func (s *NotificationService) HandleEvent(ctx context.Context, event events.Event) error {
	if s.delivery == nil {
		return nil
	}
	payload := event.Payload()
	env := websocket.Envelope{Type: event.EventType(), Data: payload}

	if raw, ok := payload["user_id"].(string); ok {
		if userID, err := uuid.Parse(raw); err == nil {
			s.delivery.SendToUser(userID, env)
		}
	}
	if adminAudience[event.EventType()] {
		s.delivery.SendToAdmins(env)
	}

	s.logger.Debug("NotificationService", "Event relayed", map[string]interface{}{"type": event.EventType()})
	return nil
}
