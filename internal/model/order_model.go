package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Order struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserId       uuid.UUID      `gorm:"type:uuid;not null;index:idx_orders_user_created,priority:1"`
	ProductId    uuid.UUID      `gorm:"type:uuid;not null;index"`
	ProductName  string         `gorm:"type:varchar(255);not null"`
	UnitPrice    int64          `gorm:"type:bigint;not null"`
	Quantity     int64          `gorm:"type:bigint;not null"`
	TotalPrice   int64          `gorm:"type:bigint;not null"`
	OrderDetails datatypes.JSON `json:"order_details"`
	UserTier     string         `gorm:"type:varchar(20)"`
	Status       string         `gorm:"type:varchar(20);not null;default:'received';index"`
	ConfirmedAt  *time.Time
	CreatedAt    time.Time `gorm:"autoCreateTime;index:idx_orders_user_created,priority:2"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`

	// Relations
	Items   []OrderItem `gorm:"foreignKey:OrderId"`
	Product *Product    `gorm:"foreignKey:ProductId"`
}

func (Order) TableName() string {
	return "orders"
}

type OrderItem struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	OrderId     uuid.UUID      `gorm:"type:uuid;not null;index"`
	ClientName  string         `gorm:"type:varchar(255);not null"`
	DailyQty    int64          `gorm:"not null"`
	Weeks       int64          `gorm:"not null"`
	TotalQty    int64          `gorm:"not null"`
	UnitPrice   int64          `gorm:"type:bigint;not null"`
	ItemPrice   int64          `gorm:"type:bigint;not null"`
	ItemDetails datatypes.JSON `json:"item_details"`
	Status      string         `gorm:"type:varchar(20);not null;default:'received'"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`

	// Relations
	Order *Order `gorm:"foreignKey:OrderId"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
