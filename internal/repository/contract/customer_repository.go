package contract

import (
	"context"

	"adorder-be/internal/entity"
	"adorder-be/internal/repository/specification"

	"github.com/google/uuid"
)

type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Customer, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Customer, error)

	CreateKeywords(ctx context.Context, keywords []*entity.CustomerKeyword) error
	FindKeywords(ctx context.Context, specs ...specification.Specification) ([]*entity.CustomerKeyword, error)
	DeleteKeyword(ctx context.Context, customerId, keywordId uuid.UUID) (int64, error)
}
