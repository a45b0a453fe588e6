package service

import (
	"context"
	"fmt"
	"strings"

	"adorder-be/internal/dto"
	"adorder-be/internal/entity"
	"adorder-be/internal/pkg/apperror"
	"adorder-be/internal/repository/memory"
	"adorder-be/internal/repository/specification"
	"adorder-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type IProductService interface {
	ListProducts(ctx context.Context, principal entity.Principal, req *dto.ProductListRequest) ([]*dto.ProductResponse, error)
	GetProduct(ctx context.Context, principal entity.Principal, id uuid.UUID) (*dto.ProductResponse, error)
	// LoadProduct returns the catalog entry with its input definitions, or
	// NotFound. Served from the catalog cache when warm.
	LoadProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	UnitPrice(ctx context.Context, product *entity.Product, tier entity.UserTier) (int64, error)

	CreateProduct(ctx context.Context, req *dto.ProductRequest) (*dto.ProductResponse, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req *dto.ProductRequest) (*dto.ProductResponse, error)
	SetInputDefs(ctx context.Context, id uuid.UUID, req *dto.SetInputDefsRequest) (*dto.ProductResponse, error)
	CreateTemplate(ctx context.Context, req *dto.TemplateRequest) (*dto.InputDefResponse, error)
	ListTemplates(ctx context.Context) ([]*dto.InputDefResponse, error)
	UpsertPricingRule(ctx context.Context, tier string, req *dto.PricingRuleRequest) (*dto.PricingRuleResponse, error)
	ListPricingRules(ctx context.Context) ([]*dto.PricingRuleResponse, error)
}

type productService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *memory.CatalogCache
}

func NewProductService(uowFactory unitofwork.RepositoryFactory, cache *memory.CatalogCache) IProductService {
	return &productService{
		uowFactory: uowFactory,
		cache:      cache,
	}
}

// ComputeUnitPrice is round(base × multiplier) to whole points.
func ComputeUnitPrice(basePrice int64, multiplier decimal.Decimal) int64 {
	return decimal.NewFromInt(basePrice).Mul(multiplier).Round(0).IntPart()
}

// ValidateItemDetails checks that every required input field of the product
// has a non-empty value in details.
func ValidateItemDetails(product *entity.Product, details map[string]interface{}) error {
	missing := []string{}
	for _, def := range product.InputDefs {
		if !def.Required || def.Template == nil {
			continue
		}
		v, ok := details[def.Template.FieldKey]
		if !ok || v == nil {
			missing = append(missing, def.Template.FieldKey)
			continue
		}
		if s, isString := v.(string); isString && strings.TrimSpace(s) == "" {
			missing = append(missing, def.Template.FieldKey)
		}
	}
	if len(missing) > 0 {
		err := apperror.InvalidArgument("missing required item details")
		err.Details = map[string]interface{}{"fields": missing}
		return err
	}
	return nil
}

func (s *productService) multiplier(ctx context.Context, tier entity.UserTier) (decimal.Decimal, error) {
	rule, cached := s.cache.GetPricingRule(tier)
	if !cached {
		uow := s.uowFactory.NewUnitOfWork(ctx)
		found, err := uow.ProductRepository().FindPricingRule(ctx, tier)
		if err != nil {
			return decimal.Zero, apperror.Internal(err)
		}
		rule = found
		s.cache.SavePricingRule(tier, rule)
	}
	if rule != nil && rule.Active {
		return rule.Multiplier, nil
	}
	if m, ok := entity.DefaultTierMultipliers[tier]; ok {
		return m, nil
	}
	return decimal.NewFromInt(1), nil
}

func (s *productService) UnitPrice(ctx context.Context, product *entity.Product, tier entity.UserTier) (int64, error) {
	m, err := s.multiplier(ctx, tier)
	if err != nil {
		return 0, err
	}
	return ComputeUnitPrice(product.BasePrice, m), nil
}

func (s *productService) LoadProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	if p, ok := s.cache.GetProduct(id.String()); ok {
		return p, nil
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	product, err := uow.ProductRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if product == nil {
		return nil, apperror.NotFound("product not found")
	}
	s.cache.SaveProduct(product)
	return product, nil
}

func (s *productService) ListProducts(ctx context.Context, principal entity.Principal, req *dto.ProductListRequest) ([]*dto.ProductResponse, error) {
	includeInactive := principal.Can(entity.CapManageCatalog)
	cacheKey := req.Category
	if includeInactive {
		cacheKey = "*" + req.Category
	}

	products, ok := s.cache.GetProducts(cacheKey)
	if !ok {
		specs := []specification.Specification{
			specification.ByCategory{Category: req.Category},
			specification.OrderBy{Field: "name"},
		}
		if !includeInactive {
			specs = append(specs, specification.ActiveProducts{})
		}
		uow := s.uowFactory.NewUnitOfWork(ctx)
		found, err := uow.ProductRepository().FindAll(ctx, specs...)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		products = found
		s.cache.SaveProducts(cacheKey, products)
	}

	m, err := s.multiplier(ctx, principal.Tier)
	if err != nil {
		return nil, err
	}
	res := make([]*dto.ProductResponse, 0, len(products))
	for _, p := range products {
		res = append(res, toProductResponse(p, ComputeUnitPrice(p.BasePrice, m)))
	}
	return res, nil
}

func (s *productService) GetProduct(ctx context.Context, principal entity.Principal, id uuid.UUID) (*dto.ProductResponse, error) {
	product, err := s.LoadProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if !product.IsActive && !principal.Can(entity.CapManageCatalog) {
		return nil, apperror.NotFound("product not found")
	}
	price, err := s.UnitPrice(ctx, product, principal.Tier)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product, price), nil
}

func (s *productService) CreateProduct(ctx context.Context, req *dto.ProductRequest) (*dto.ProductResponse, error) {
	product := &entity.Product{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		BasePrice:   req.BasePrice,
		Unit:        req.Unit,
		Category:    req.Category,
		Tags:        req.Tags,
		IsActive:    true,
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ProductRepository().Create(ctx, product); err != nil {
		return nil, apperror.Internal(err)
	}
	s.cache.Invalidate()
	return toProductResponse(product, product.BasePrice), nil
}

func (s *productService) UpdateProduct(ctx context.Context, id uuid.UUID, req *dto.ProductRequest) (*dto.ProductResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	product, err := uow.ProductRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if product == nil {
		return nil, apperror.NotFound("product not found")
	}

	product.Name = strings.TrimSpace(req.Name)
	product.Description = req.Description
	product.BasePrice = req.BasePrice
	if req.Unit != "" {
		product.Unit = req.Unit
	}
	product.Category = req.Category
	product.Tags = req.Tags
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := uow.ProductRepository().Update(ctx, product); err != nil {
		return nil, apperror.Internal(err)
	}
	s.cache.Invalidate()
	return toProductResponse(product, product.BasePrice), nil
}

func (s *productService) SetInputDefs(ctx context.Context, id uuid.UUID, req *dto.SetInputDefsRequest) (*dto.ProductResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Internal(err)
	}
	defer uow.Rollback()

	product, err := uow.ProductRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if product == nil {
		return nil, apperror.NotFound("product not found")
	}

	templateIds := make([]uuid.UUID, 0, len(req.InputDefs))
	for _, d := range req.InputDefs {
		templateIds = append(templateIds, d.TemplateId)
	}
	if len(templateIds) > 0 {
		templates, err := uow.ProductRepository().FindTemplates(ctx, specification.ByIDs{IDs: templateIds})
		if err != nil {
			return nil, apperror.Internal(err)
		}
		known := make(map[uuid.UUID]bool, len(templates))
		for _, t := range templates {
			known[t.Id] = true
		}
		for _, tid := range templateIds {
			if !known[tid] {
				return nil, apperror.InvalidArgument(fmt.Sprintf("unknown input field template %s", tid))
			}
		}
	}

	defs := make([]*entity.ProductInputDef, 0, len(req.InputDefs))
	for _, d := range req.InputDefs {
		if d.MinSelect != nil && d.MaxSelect != nil && *d.MinSelect > *d.MaxSelect {
			return nil, apperror.InvalidArgument("min_select cannot exceed max_select")
		}
		defs = append(defs, &entity.ProductInputDef{
			TemplateId: d.TemplateId,
			Required:   d.Required,
			SortOrder:  d.SortOrder,
			Validation: d.Validation,
			MinSelect:  d.MinSelect,
			MaxSelect:  d.MaxSelect,
		})
	}
	if err := uow.ProductRepository().ReplaceInputDefs(ctx, id, defs); err != nil {
		return nil, apperror.Internal(err)
	}

	updated, err := uow.ProductRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if err := uow.Commit(); err != nil {
		return nil, apperror.Internal(err)
	}
	s.cache.Invalidate()
	return toProductResponse(updated, updated.BasePrice), nil
}

func (s *productService) CreateTemplate(ctx context.Context, req *dto.TemplateRequest) (*dto.InputDefResponse, error) {
	template := &entity.InputFieldTemplate{
		FieldKey:    strings.TrimSpace(req.FieldKey),
		Label:       req.Label,
		FieldType:   entity.FieldType(req.FieldType),
		HelpText:    req.HelpText,
		Description: req.Description,
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ProductRepository().CreateTemplate(ctx, template); err != nil {
		return nil, mapUniqueViolation(err, "field_key already exists")
	}
	res := toTemplateResponse(template)
	return &res, nil
}

func (s *productService) ListTemplates(ctx context.Context) ([]*dto.InputDefResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	templates, err := uow.ProductRepository().FindTemplates(ctx, specification.OrderBy{Field: "field_key"})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	res := make([]*dto.InputDefResponse, 0, len(templates))
	for _, t := range templates {
		r := toTemplateResponse(t)
		res = append(res, &r)
	}
	return res, nil
}

func (s *productService) UpsertPricingRule(ctx context.Context, tier string, req *dto.PricingRuleRequest) (*dto.PricingRuleResponse, error) {
	t := entity.UserTier(tier)
	if !t.Valid() {
		return nil, apperror.InvalidArgument("invalid tier")
	}
	multiplier, err := decimal.NewFromString(req.Multiplier)
	if err != nil || !multiplier.IsPositive() {
		return nil, apperror.InvalidArgument("multiplier must be a positive decimal")
	}
	rule := &entity.TierPricingRule{Tier: t, Multiplier: multiplier, Active: true}
	if req.Active != nil {
		rule.Active = *req.Active
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ProductRepository().UpsertPricingRule(ctx, rule); err != nil {
		return nil, apperror.Internal(err)
	}
	saved, err := uow.ProductRepository().FindPricingRule(ctx, t)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	s.cache.Invalidate()
	return toPricingRuleResponse(saved), nil
}

func (s *productService) ListPricingRules(ctx context.Context) ([]*dto.PricingRuleResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	rules, err := uow.ProductRepository().FindPricingRules(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	res := make([]*dto.PricingRuleResponse, 0, len(rules))
	for _, r := range rules {
		res = append(res, toPricingRuleResponse(r))
	}
	return res, nil
}

func toPricingRuleResponse(r *entity.TierPricingRule) *dto.PricingRuleResponse {
	return &dto.PricingRuleResponse{
		Tier:       string(r.Tier),
		Multiplier: r.Multiplier.String(),
		Active:     r.Active,
		UpdatedAt:  r.UpdatedAt,
	}
}

func toTemplateResponse(t *entity.InputFieldTemplate) dto.InputDefResponse {
	return dto.InputDefResponse{
		TemplateId: t.Id,
		FieldKey:   t.FieldKey,
		Label:      t.Label,
		FieldType:  string(t.FieldType),
		HelpText:   t.HelpText,
	}
}

func toInputDefResponses(defs []*entity.ProductInputDef) []dto.InputDefResponse {
	res := make([]dto.InputDefResponse, 0, len(defs))
	for _, d := range defs {
		r := dto.InputDefResponse{
			Id:         d.Id,
			TemplateId: d.TemplateId,
			Required:   d.Required,
			SortOrder:  d.SortOrder,
			Validation: d.Validation,
			MinSelect:  d.MinSelect,
			MaxSelect:  d.MaxSelect,
		}
		if d.Template != nil {
			r.FieldKey = d.Template.FieldKey
			r.Label = d.Template.Label
			r.FieldType = string(d.Template.FieldType)
			r.HelpText = d.Template.HelpText
		}
		res = append(res, r)
	}
	return res
}

func toProductResponse(p *entity.Product, unitPrice int64) *dto.ProductResponse {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return &dto.ProductResponse{
		Id:          p.Id,
		Name:        p.Name,
		Description: p.Description,
		BasePrice:   p.BasePrice,
		UnitPrice:   unitPrice,
		Unit:        p.Unit,
		Category:    p.Category,
		Tags:        tags,
		IsActive:    p.IsActive,
		InputDefs:   toInputDefResponses(p.InputDefs),
		CreatedAt:   p.CreatedAt,
	}
}
