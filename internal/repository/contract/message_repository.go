package contract

import (
	"context"
	"time"

	"adorder-be/internal/entity"
	"adorder-be/internal/repository/specification"

	"github.com/google/uuid"
)

type MessageRepository interface {
	Create(ctx context.Context, message *entity.OrderItemMessage) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.OrderItemMessage, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.OrderItemMessage, error)
	MarkRead(ctx context.Context, ids []uuid.UUID, readAt time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
}
