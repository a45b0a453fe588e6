package model

import (
	"time"

	"github.com/google/uuid"
)

type OrderItemMessage struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderItemId uuid.UUID `gorm:"type:uuid;not null;index:idx_order_item_messages_item_created,priority:1"`
	AuthorId    uuid.UUID `gorm:"type:uuid;not null;index"`
	AuthorRole  string    `gorm:"type:varchar(20);not null"`
	Message     string    `gorm:"type:text;not null"`
	MessageType string    `gorm:"type:varchar(30);not null;default:'general'"`
	IsRead      bool      `gorm:"default:false"`
	ReadAt      *time.Time
	CreatedAt   time.Time `gorm:"autoCreateTime;index:idx_order_item_messages_item_created,priority:2"`

	// Relations
	Author *User `gorm:"foreignKey:AuthorId"`
}

func (OrderItemMessage) TableName() string {
	return "order_item_messages"
}
