package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type PaymentTransaction struct {
	Id              uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserId          uuid.UUID      `gorm:"type:uuid;not null;index:idx_payment_transactions_user_created,priority:1"`
	Amount          int64          `gorm:"type:bigint;not null"`
	PointAmount     int64          `gorm:"type:bigint;not null"`
	Status          string         `gorm:"type:varchar(20);not null;default:'pending';index"`
	PaymentMethod   string         `gorm:"type:varchar(30);not null"`
	PgProvider      *string        `gorm:"type:varchar(30)"`
	PgOrderId       string         `gorm:"type:varchar(64);uniqueIndex;not null"`
	PgTransactionId *string        `gorm:"type:varchar(128)"`
	PgResponse      datatypes.JSON `json:"pg_response"`
	IpAddress       string         `gorm:"type:varchar(64)"`
	UserAgent       string         `gorm:"type:text"`
	ErrorMessage    *string        `gorm:"type:text"`
	CompletedAt     *time.Time
	FailedAt        *time.Time
	CreatedAt       time.Time `gorm:"autoCreateTime;index:idx_payment_transactions_user_created,priority:2"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

func (PaymentTransaction) TableName() string {
	return "payment_transactions"
}
