package contract

import (
	"context"

	"adorder-be/internal/entity"
	"adorder-be/internal/repository/specification"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.PaymentTransaction) error
	Update(ctx context.Context, payment *entity.PaymentTransaction) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PaymentTransaction, error)
	// FindOneForUpdate locks the row until the surrounding transaction ends.
	FindOneForUpdate(ctx context.Context, specs ...specification.Specification) (*entity.PaymentTransaction, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PaymentTransaction, error)
}
