package implementation

import (
	"context"
	"errors"

	"adorder-be/internal/entity"
	"adorder-be/internal/mapper"
	"adorder-be/internal/model"
	"adorder-be/internal/repository/contract"
	"adorder-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type productRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ProductMapper
}

func NewProductRepository(db *gorm.DB) contract.ProductRepository {
	return &productRepositoryImpl{
		db:     db,
		mapper: mapper.NewProductMapper(),
	}
}

func (r *productRepositoryImpl) Create(ctx context.Context, product *entity.Product) error {
	if product.Id == uuid.Nil {
		product.Id = uuid.New()
	}
	if product.Unit == "" {
		product.Unit = entity.DefaultProductUnit
	}
	m := r.mapper.ToModel(product)
	db := r.db.WithContext(ctx)
	if err := db.Omit("InputDefs").Create(m).Error; err != nil {
		return err
	}
	// is_active has a column default, so an explicit false needs a second write.
	if !product.IsActive {
		if err := db.Model(&model.Product{}).Where("id = ?", m.Id).Update("is_active", false).Error; err != nil {
			return err
		}
	}
	product.CreatedAt = m.CreatedAt
	product.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *productRepositoryImpl) Update(ctx context.Context, product *entity.Product) error {
	m := r.mapper.ToModel(product)
	return r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", product.Id).
		Updates(map[string]interface{}{
			"name":        m.Name,
			"description": m.Description,
			"base_price":  m.BasePrice,
			"unit":        m.Unit,
			"category":    m.Category,
			"tags":        m.Tags,
			"is_active":   m.IsActive,
		}).Error
}

func (r *productRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Product, error) {
	var m model.Product
	query := r.db.WithContext(ctx).
		Preload("InputDefs", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("InputDefs.Template")
	if err := specification.ApplyAll(query, specs...).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *productRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Product, error) {
	var rows []*model.Product
	if err := specification.ApplyAll(r.db.WithContext(ctx), specs...).Find(&rows).Error; err != nil {
		return nil, err
	}
	products := make([]*entity.Product, 0, len(rows))
	for _, m := range rows {
		products = append(products, r.mapper.ToEntity(m))
	}
	return products, nil
}

func (r *productRepositoryImpl) ReplaceInputDefs(ctx context.Context, productId uuid.UUID, defs []*entity.ProductInputDef) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("product_id = ?", productId).Delete(&model.ProductInputDef{}).Error; err != nil {
		return err
	}
	if len(defs) == 0 {
		return nil
	}
	rows := make([]*model.ProductInputDef, 0, len(defs))
	for _, def := range defs {
		if def.Id == uuid.Nil {
			def.Id = uuid.New()
		}
		def.ProductId = productId
		rows = append(rows, r.mapper.InputDefToModel(def))
	}
	return db.Omit("Template").Create(&rows).Error
}

func (r *productRepositoryImpl) CreateTemplate(ctx context.Context, template *entity.InputFieldTemplate) error {
	if template.Id == uuid.Nil {
		template.Id = uuid.New()
	}
	return r.db.WithContext(ctx).Create(r.mapper.TemplateToModel(template)).Error
}

func (r *productRepositoryImpl) FindTemplates(ctx context.Context, specs ...specification.Specification) ([]*entity.InputFieldTemplate, error) {
	var rows []*model.InputFieldTemplate
	if err := specification.ApplyAll(r.db.WithContext(ctx), specs...).Find(&rows).Error; err != nil {
		return nil, err
	}
	templates := make([]*entity.InputFieldTemplate, 0, len(rows))
	for _, m := range rows {
		templates = append(templates, r.mapper.TemplateToEntity(m))
	}
	return templates, nil
}

func (r *productRepositoryImpl) FindPricingRule(ctx context.Context, tier entity.UserTier) (*entity.TierPricingRule, error) {
	var m model.TierPricingRule
	if err := r.db.WithContext(ctx).Where("tier = ?", string(tier)).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return pricingRuleToEntity(&m), nil
}

func (r *productRepositoryImpl) FindPricingRules(ctx context.Context) ([]*entity.TierPricingRule, error) {
	var rows []*model.TierPricingRule
	if err := r.db.WithContext(ctx).Order("tier ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	rules := make([]*entity.TierPricingRule, 0, len(rows))
	for _, m := range rows {
		rules = append(rules, pricingRuleToEntity(m))
	}
	return rules, nil
}

func (r *productRepositoryImpl) UpsertPricingRule(ctx context.Context, rule *entity.TierPricingRule) error {
	m := &model.TierPricingRule{
		Tier:       string(rule.Tier),
		Multiplier: rule.Multiplier,
		Active:     rule.Active,
	}
	db := r.db.WithContext(ctx)
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tier"}},
		DoUpdates: clause.AssignmentColumns([]string{"multiplier", "active", "updated_at"}),
	}).Create(m).Error; err != nil {
		return err
	}
	if !rule.Active {
		return db.Model(&model.TierPricingRule{}).Where("tier = ?", m.Tier).Update("active", false).Error
	}
	return nil
}

func pricingRuleToEntity(m *model.TierPricingRule) *entity.TierPricingRule {
	return &entity.TierPricingRule{
		Tier:       entity.UserTier(m.Tier),
		Multiplier: m.Multiplier,
		Active:     m.Active,
		UpdatedAt:  m.UpdatedAt,
	}
}
