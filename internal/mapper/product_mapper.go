package mapper

import (
	"adorder-be/internal/entity"
	"adorder-be/internal/model"

	"gorm.io/datatypes"
)

type ProductMapper struct{}

func NewProductMapper() *ProductMapper {
	return &ProductMapper{}
}

func (m *ProductMapper) ToEntity(p *model.Product) *entity.Product {
	if p == nil {
		return nil
	}
	product := &entity.Product{
		Id:          p.Id,
		Name:        p.Name,
		Description: p.Description,
		BasePrice:   p.BasePrice,
		Unit:        p.Unit,
		Category:    p.Category,
		Tags:        []string(p.Tags),
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	for i := range p.InputDefs {
		product.InputDefs = append(product.InputDefs, m.InputDefToEntity(&p.InputDefs[i]))
	}
	return product
}

func (m *ProductMapper) ToModel(p *entity.Product) *model.Product {
	if p == nil {
		return nil
	}
	return &model.Product{
		Id:          p.Id,
		Name:        p.Name,
		Description: p.Description,
		BasePrice:   p.BasePrice,
		Unit:        p.Unit,
		Category:    p.Category,
		Tags:        datatypes.JSONSlice[string](p.Tags),
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (m *ProductMapper) InputDefToEntity(d *model.ProductInputDef) *entity.ProductInputDef {
	if d == nil {
		return nil
	}
	def := &entity.ProductInputDef{
		Id:         d.Id,
		ProductId:  d.ProductId,
		TemplateId: d.TemplateId,
		Required:   d.Required,
		SortOrder:  d.SortOrder,
		Validation: FromJSON(d.Validation),
		MinSelect:  d.MinSelect,
		MaxSelect:  d.MaxSelect,
	}
	if d.Template != nil {
		def.Template = m.TemplateToEntity(d.Template)
	}
	return def
}

func (m *ProductMapper) InputDefToModel(d *entity.ProductInputDef) *model.ProductInputDef {
	if d == nil {
		return nil
	}
	return &model.ProductInputDef{
		Id:         d.Id,
		ProductId:  d.ProductId,
		TemplateId: d.TemplateId,
		Required:   d.Required,
		SortOrder:  d.SortOrder,
		Validation: ToJSON(d.Validation),
		MinSelect:  d.MinSelect,
		MaxSelect:  d.MaxSelect,
	}
}

func (m *ProductMapper) TemplateToEntity(t *model.InputFieldTemplate) *entity.InputFieldTemplate {
	if t == nil {
		return nil
	}
	return &entity.InputFieldTemplate{
		Id:          t.Id,
		FieldKey:    t.FieldKey,
		Label:       t.Label,
		FieldType:   entity.FieldType(t.FieldType),
		HelpText:    t.HelpText,
		Description: t.Description,
	}
}

func (m *ProductMapper) TemplateToModel(t *entity.InputFieldTemplate) *model.InputFieldTemplate {
	if t == nil {
		return nil
	}
	return &model.InputFieldTemplate{
		Id:          t.Id,
		FieldKey:    t.FieldKey,
		Label:       t.Label,
		FieldType:   string(t.FieldType),
		HelpText:    t.HelpText,
		Description: t.Description,
	}
}
