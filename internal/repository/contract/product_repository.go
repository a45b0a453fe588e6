package contract

import (
	"context"

	"adorder-be/internal/entity"
	"adorder-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	Update(ctx context.Context, product *entity.Product) error
	// FindOne preloads input definitions and their templates.
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Product, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Product, error)

	ReplaceInputDefs(ctx context.Context, productId uuid.UUID, defs []*entity.ProductInputDef) error
	CreateTemplate(ctx context.Context, template *entity.InputFieldTemplate) error
	FindTemplates(ctx context.Context, specs ...specification.Specification) ([]*entity.InputFieldTemplate, error)

	FindPricingRule(ctx context.Context, tier entity.UserTier) (*entity.TierPricingRule, error)
	FindPricingRules(ctx context.Context) ([]*entity.TierPricingRule, error)
	UpsertPricingRule(ctx context.Context, rule *entity.TierPricingRule) error
}
