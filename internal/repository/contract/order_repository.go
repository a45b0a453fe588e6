package contract

import (
	"context"

	"adorder-be/internal/entity"
	"adorder-be/internal/repository/specification"

	"github.com/google/uuid"
)

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Order, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Order, error)
	// FindAllWithItems preloads each order's items ordered by creation.
	FindAllWithItems(ctx context.Context, specs ...specification.Specification) ([]*entity.Order, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error

	CreateItems(ctx context.Context, items []*entity.OrderItem) error
	// FindItem returns the item with its parent order populated.
	FindItem(ctx context.Context, specs ...specification.Specification) (*entity.OrderItem, error)
	FindItems(ctx context.Context, specs ...specification.Specification) ([]*entity.OrderItem, error)
	UpdateItemStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) (int64, error)
	// UpdateItemsStatusByOrder leaves cancelled and refunded items untouched.
	UpdateItemsStatusByOrder(ctx context.Context, orderId uuid.UUID, status entity.OrderStatus) error
}
