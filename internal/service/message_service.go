package service

import (
	"context"
	"strings"
	"time"

	"adorder-be/internal/dto"
	"adorder-be/internal/entity"
	"adorder-be/internal/pkg/apperror"
	"adorder-be/internal/repository/specification"
	"adorder-be/internal/repository/unitofwork"
	"adorder-be/pkg/events"

	"github.com/google/uuid"
)

type IMessageService interface {
	ListMessages(ctx context.Context, principal entity.Principal, itemId uuid.UUID) ([]*dto.MessageResponse, error)
	PostMessage(ctx context.Context, principal entity.Principal, itemId uuid.UUID, req *dto.PostMessageRequest) (*dto.MessageResponse, error)
	DeleteMessage(ctx context.Context, principal entity.Principal, itemId, messageId uuid.UUID) error
}

type messageService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher events.Publisher
}

func NewMessageService(uowFactory unitofwork.RepositoryFactory, eventPublisher events.Publisher) IMessageService {
	return &messageService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
	}
}

// authorizeItem returns the item when the caller owns it or may post as admin.
func (s *messageService) authorizeItem(ctx context.Context, uow unitofwork.UnitOfWork, principal entity.Principal, itemId uuid.UUID) (*entity.OrderItem, error) {
	item, err := uow.OrderRepository().FindItem(ctx, specification.ByID{ID: itemId})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if item == nil || item.Order == nil {
		return nil, apperror.NotFound("order item not found")
	}
	if item.Order.UserId != principal.UserID && !principal.Can(entity.CapPostAsAdmin) {
		return nil, apperror.Forbidden("you do not have access to this order item")
	}
	return item, nil
}

func (s *messageService) ListMessages(ctx context.Context, principal entity.Principal, itemId uuid.UUID) ([]*dto.MessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	item, err := s.authorizeItem(ctx, uow, principal, itemId)
	if err != nil {
		return nil, err
	}

	messages, err := uow.MessageRepository().FindAll(ctx,
		specification.ByOrderItemID{OrderItemID: itemId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	now := time.Now()
	unread := []uuid.UUID{}
	for _, m := range messages {
		if !m.IsRead && m.AuthorId != principal.UserID {
			unread = append(unread, m.Id)
			m.IsRead = true
			m.ReadAt = &now
		}
	}
	if len(unread) > 0 {
		if err := uow.MessageRepository().MarkRead(ctx, unread, now); err != nil {
			return nil, apperror.Internal(err)
		}
		s.eventPublisher.PublishMessagesRead(ctx, itemId, item.Order.UserId, principal.UserID, len(unread))
	}

	res := make([]*dto.MessageResponse, 0, len(messages))
	for _, m := range messages {
		r := toMessageResponse(m)
		res = append(res, &r)
	}
	return res, nil
}

func (s *messageService) PostMessage(ctx context.Context, principal entity.Principal, itemId uuid.UUID, req *dto.PostMessageRequest) (*dto.MessageResponse, error) {
	text := strings.TrimSpace(req.Message)
	if text == "" {
		return nil, apperror.InvalidArgument("message is required")
	}
	messageType := strings.TrimSpace(req.MessageType)
	if messageType == "" {
		messageType = entity.DefaultMessageType
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	item, err := s.authorizeItem(ctx, uow, principal, itemId)
	if err != nil {
		return nil, err
	}

	msg := &entity.OrderItemMessage{
		OrderItemId: itemId,
		AuthorId:    principal.UserID,
		AuthorRole:  principal.Role(),
		Message:     text,
		MessageType: messageType,
	}
	if err := uow.MessageRepository().Create(ctx, msg); err != nil {
		return nil, apperror.Internal(err)
	}

	s.eventPublisher.PublishMessageCreated(ctx, msg.Id, itemId, item.Order.UserId, principal.UserID, string(msg.AuthorRole), msg.Message)
	res := toMessageResponse(msg)
	return &res, nil
}

func (s *messageService) DeleteMessage(ctx context.Context, principal entity.Principal, itemId, messageId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	item, err := s.authorizeItem(ctx, uow, principal, itemId)
	if err != nil {
		return err
	}

	msg, err := uow.MessageRepository().FindOne(ctx,
		specification.ByID{ID: messageId},
		specification.ByOrderItemID{OrderItemID: itemId},
	)
	if err != nil {
		return apperror.Internal(err)
	}
	if msg == nil {
		return apperror.NotFound("message not found")
	}
	if msg.AuthorId != principal.UserID {
		return apperror.Forbidden("only the author can delete this message")
	}

	if err := uow.MessageRepository().Delete(ctx, messageId); err != nil {
		return apperror.Internal(err)
	}
	s.eventPublisher.PublishMessageDeleted(ctx, messageId, itemId, item.Order.UserId)
	return nil
}

func toMessageResponse(m *entity.OrderItemMessage) dto.MessageResponse {
	return dto.MessageResponse{
		Id:          m.Id,
		OrderItemId: m.OrderItemId,
		AuthorId:    m.AuthorId,
		AuthorRole:  string(m.AuthorRole),
		AuthorEmail: m.AuthorEmail,
		Message:     m.Message,
		MessageType: m.MessageType,
		IsRead:      m.IsRead,
		ReadAt:      m.ReadAt,
		CreatedAt:   m.CreatedAt,
	}
}
