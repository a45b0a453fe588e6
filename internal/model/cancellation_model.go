// FILE: internal/model/cancellation_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// CancellationRequest GORM model. At most one pending row may exist per order item.
type CancellationRequest struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderItemID uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:idx_cancellation_requests_pending_item,where:status = 'pending'"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	RequestType string     `gorm:"type:varchar(20);not null"`
	Status      string     `gorm:"type:varchar(20);not null;default:'pending';index"` // pending, approved, rejected, completed
	Reason      string     `gorm:"type:text;not null"`
	Details     *string    `gorm:"type:text"`
	AdminNote   *string    `gorm:"type:text"`
	ProcessedAt *time.Time
	ProcessedBy *uuid.UUID `gorm:"type:uuid"`
	CreatedAt   time.Time  `gorm:"autoCreateTime;index"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime"`

	// Relations
	OrderItem *OrderItem `gorm:"foreignKey:OrderItemID"`
	User      *User      `gorm:"foreignKey:UserID"`
	Processor *User      `gorm:"foreignKey:ProcessedBy"`
}

func (CancellationRequest) TableName() string {
	return "cancellation_requests"
}
