package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreatePaymentRequest struct {
	Amount        int64  `json:"amount" validate:"required,gt=0"`
	PaymentMethod string `json:"payment_method"`
}

type CreatePaymentResponse struct {
	TransactionId uuid.UUID `json:"transaction_id"`
	PgOrderId     string    `json:"pg_order_id"`
	Amount        int64     `json:"amount"`
	PointAmount   int64     `json:"point_amount"`
	Status        string    `json:"status"`
	NewBalance    *int64    `json:"new_balance,omitempty"`
}

// PaymentCallbackRequest is the generic signed notification a gateway posts back.
type PaymentCallbackRequest struct {
	TransactionId   uuid.UUID              `json:"transaction_id" validate:"required"`
	PgTransactionId string                 `json:"pg_transaction_id"`
	Status          string                 `json:"status" validate:"required,oneof=completed failed"`
	Amount          int64                  `json:"amount" validate:"required,gt=0"`
	PgResponse      map[string]interface{} `json:"pg_response"`
	Signature       string                 `json:"signature"`
}

type PaymentListRequest struct {
	Status string `query:"status"`
	Limit  int    `query:"limit"`
}

type PaymentResponse struct {
	Id              uuid.UUID  `json:"id"`
	Amount          int64      `json:"amount"`
	PointAmount     int64      `json:"point_amount"`
	Status          string     `json:"status"`
	PaymentMethod   string     `json:"payment_method"`
	PgOrderId       string     `json:"pg_order_id"`
	PgTransactionId *string    `json:"pg_transaction_id,omitempty"`
	ErrorMessage    *string    `json:"error_message,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	FailedAt        *time.Time `json:"failed_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}
