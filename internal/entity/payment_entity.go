package entity

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"

	PaymentMethodTest = "test"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed:
		return true
	}
	return false
}

type PaymentTransaction struct {
	Id              uuid.UUID
	UserId          uuid.UUID
	Amount          int64
	PointAmount     int64
	Status          PaymentStatus
	PaymentMethod   string
	PgProvider      *string
	PgOrderId       string
	PgTransactionId *string
	PgResponse      map[string]interface{}
	IpAddress       string
	UserAgent       string
	ErrorMessage    *string
	CompletedAt     *time.Time
	FailedAt        *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
