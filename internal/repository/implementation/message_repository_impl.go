package implementation

import (
	"context"
	"errors"
	"time"

	"adorder-be/internal/entity"
	"adorder-be/internal/model"
	"adorder-be/internal/repository/contract"
	"adorder-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type messageRepositoryImpl struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) contract.MessageRepository {
	return &messageRepositoryImpl{db: db}
}

func (r *messageRepositoryImpl) Create(ctx context.Context, message *entity.OrderItemMessage) error {
	if message.Id == uuid.Nil {
		message.Id = uuid.New()
	}
	m := &model.OrderItemMessage{
		Id:          message.Id,
		OrderItemId: message.OrderItemId,
		AuthorId:    message.AuthorId,
		AuthorRole:  string(message.AuthorRole),
		Message:     message.Message,
		MessageType: message.MessageType,
		IsRead:      message.IsRead,
		ReadAt:      message.ReadAt,
	}
	if err := r.db.WithContext(ctx).Omit("Author").Create(m).Error; err != nil {
		return err
	}
	message.CreatedAt = m.CreatedAt
	return nil
}

func (r *messageRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.OrderItemMessage, error) {
	var m model.OrderItemMessage
	query := specification.ApplyAll(r.db.WithContext(ctx).Preload("Author"), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapToEntity(&m), nil
}

func (r *messageRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.OrderItemMessage, error) {
	var rows []*model.OrderItemMessage
	query := specification.ApplyAll(r.db.WithContext(ctx).Preload("Author"), specs...)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	messages := make([]*entity.OrderItemMessage, 0, len(rows))
	for _, m := range rows {
		messages = append(messages, r.mapToEntity(m))
	}
	return messages, nil
}

func (r *messageRepositoryImpl) MarkRead(ctx context.Context, ids []uuid.UUID, readAt time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&model.OrderItemMessage{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": readAt,
		}).Error
}

func (r *messageRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.OrderItemMessage{}).Error
}

func (r *messageRepositoryImpl) mapToEntity(m *model.OrderItemMessage) *entity.OrderItemMessage {
	msg := &entity.OrderItemMessage{
		Id:          m.Id,
		OrderItemId: m.OrderItemId,
		AuthorId:    m.AuthorId,
		AuthorRole:  entity.UserRole(m.AuthorRole),
		Message:     m.Message,
		MessageType: m.MessageType,
		IsRead:      m.IsRead,
		ReadAt:      m.ReadAt,
		CreatedAt:   m.CreatedAt,
	}
	if m.Author != nil {
		msg.AuthorEmail = m.Author.Email
	}
	return msg
}
