package dto

import (
	"time"

	"github.com/google/uuid"
)

type ProductListRequest struct {
	Category string `query:"category"`
}

type InputDefResponse struct {
	Id          uuid.UUID              `json:"id"`
	TemplateId  uuid.UUID              `json:"template_id"`
	FieldKey    string                 `json:"field_key"`
	Label       string                 `json:"label"`
	FieldType   string                 `json:"field_type"`
	HelpText    string                 `json:"help_text,omitempty"`
	Required    bool                   `json:"required"`
	SortOrder   int                    `json:"sort_order"`
	Validation  map[string]interface{} `json:"validation,omitempty"`
	MinSelect   *int                   `json:"min_select,omitempty"`
	MaxSelect   *int                   `json:"max_select,omitempty"`
}

type ProductResponse struct {
	Id          uuid.UUID          `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	BasePrice   int64              `json:"base_price"`
	UnitPrice   int64              `json:"unit_price"`
	Unit        string             `json:"unit"`
	Category    string             `json:"category"`
	Tags        []string           `json:"tags"`
	IsActive    bool               `json:"is_active"`
	InputDefs   []InputDefResponse `json:"input_defs,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

type ProductRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	BasePrice   int64    `json:"base_price" validate:"gte=0"`
	Unit        string   `json:"unit"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	IsActive    *bool    `json:"is_active"`
}

type InputDefRequest struct {
	TemplateId uuid.UUID              `json:"template_id" validate:"required"`
	Required   bool                   `json:"required"`
	SortOrder  int                    `json:"sort_order"`
	Validation map[string]interface{} `json:"validation"`
	MinSelect  *int                   `json:"min_select"`
	MaxSelect  *int                   `json:"max_select"`
}

type SetInputDefsRequest struct {
	InputDefs []InputDefRequest `json:"input_defs" validate:"dive"`
}

type TemplateRequest struct {
	FieldKey    string `json:"field_key" validate:"required"`
	Label       string `json:"label" validate:"required"`
	FieldType   string `json:"field_type" validate:"required,oneof=TEXT NUMBER URL DATE SELECT KEYWORDS"`
	HelpText    string `json:"help_text"`
	Description string `json:"description"`
}

type PricingRuleRequest struct {
	Multiplier string `json:"multiplier" validate:"required,numeric"`
	Active     *bool  `json:"active"`
}

type PricingRuleResponse struct {
	Tier       string    `json:"tier"`
	Multiplier string    `json:"multiplier"`
	Active     bool      `json:"active"`
	UpdatedAt  time.Time `json:"updated_at"`
}
