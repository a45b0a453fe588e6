package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type FieldType string

const (
	FieldTypeText     FieldType = "TEXT"
	FieldTypeNumber   FieldType = "NUMBER"
	FieldTypeURL      FieldType = "URL"
	FieldTypeDate     FieldType = "DATE"
	FieldTypeSelect   FieldType = "SELECT"
	FieldTypeKeywords FieldType = "KEYWORDS"

	DefaultProductUnit = "건"
)

type Product struct {
	Id          uuid.UUID
	Name        string
	Description string
	BasePrice   int64
	Unit        string
	Category    string
	Tags        []string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time

	InputDefs []*ProductInputDef
}

type InputFieldTemplate struct {
	Id          uuid.UUID
	FieldKey    string
	Label       string
	FieldType   FieldType
	HelpText    string
	Description string
}

// ProductInputDef binds a field template to a product with per-product rules.
type ProductInputDef struct {
	Id         uuid.UUID
	ProductId  uuid.UUID
	TemplateId uuid.UUID
	Required   bool
	SortOrder  int
	Validation map[string]interface{}
	MinSelect  *int
	MaxSelect  *int

	Template *InputFieldTemplate
}

type TierPricingRule struct {
	Tier       UserTier
	Multiplier decimal.Decimal
	Active     bool
	UpdatedAt  time.Time
}

// DefaultTierMultipliers apply when no active pricing rule exists for a tier.
var DefaultTierMultipliers = map[UserTier]decimal.Decimal{
	UserTierT1:    decimal.RequireFromString("1.10"),
	UserTierT2:    decimal.RequireFromString("1.30"),
	UserTierT3:    decimal.RequireFromString("1.50"),
	UserTierT4:    decimal.RequireFromString("1.70"),
	UserTierAdmin: decimal.NewFromInt(1),
}
