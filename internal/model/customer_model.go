package model

import (
	"time"

	"github.com/google/uuid"
)

type Customer struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId       uuid.UUID `gorm:"type:uuid;not null;index"`
	BusinessName string    `gorm:"type:varchar(255);not null"`
	PlaceId      *string   `gorm:"type:varchar(100)"`
	PlaceUrl     *string   `gorm:"type:text"`
	Contact      *string   `gorm:"type:varchar(100)"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`

	// Relations
	Keywords []CustomerKeyword `gorm:"foreignKey:CustomerId;constraint:OnDelete:CASCADE"`
}

func (Customer) TableName() string {
	return "customers"
}

type CustomerKeyword struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerId uuid.UUID `gorm:"type:uuid;not null;index"`
	Keyword    string    `gorm:"type:varchar(255);not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (CustomerKeyword) TableName() string {
	return "customer_keywords"
}
