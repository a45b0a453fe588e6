package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type Product struct {
	Id          uuid.UUID                   `gorm:"type:uuid;primaryKey"`
	Name        string                      `gorm:"type:varchar(255);not null"`
	Description string                      `gorm:"type:text"`
	BasePrice   int64                       `gorm:"type:bigint;not null"`
	Unit        string                      `gorm:"type:varchar(20);not null;default:'건'"`
	Category    string                      `gorm:"type:varchar(100);index"`
	Tags        datatypes.JSONSlice[string] `json:"tags"`
	IsActive    bool                        `gorm:"default:true"`
	CreatedAt   time.Time                   `gorm:"autoCreateTime"`
	UpdatedAt   time.Time                   `gorm:"autoUpdateTime"`

	// Relations
	InputDefs []ProductInputDef `gorm:"foreignKey:ProductId"`
}

func (Product) TableName() string {
	return "products"
}

type InputFieldTemplate struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey"`
	FieldKey    string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	Label       string    `gorm:"type:varchar(255);not null"`
	FieldType   string    `gorm:"type:varchar(20);not null;default:'TEXT'"`
	HelpText    string    `gorm:"type:text"`
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (InputFieldTemplate) TableName() string {
	return "input_field_templates"
}

type ProductInputDef struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey"`
	ProductId  uuid.UUID      `gorm:"type:uuid;not null;index"`
	TemplateId uuid.UUID      `gorm:"type:uuid;not null"`
	Required   bool           `gorm:"default:false"`
	SortOrder  int            `gorm:"default:0"`
	Validation datatypes.JSON `json:"validation"`
	MinSelect  *int
	MaxSelect  *int

	// Relations
	Template *InputFieldTemplate `gorm:"foreignKey:TemplateId"`
}

func (ProductInputDef) TableName() string {
	return "product_input_defs"
}

type TierPricingRule struct {
	Tier       string          `gorm:"type:varchar(20);primaryKey"`
	Multiplier decimal.Decimal `gorm:"type:numeric(6,3);not null"`
	Active     bool            `gorm:"default:true"`
	UpdatedAt  time.Time       `gorm:"autoUpdateTime"`
}

func (TierPricingRule) TableName() string {
	return "tier_pricing_rules"
}
