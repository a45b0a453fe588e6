// FILE: internal/dto/cancellation_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

// --- User-Side Cancellation Request ---

type CreateCancellationRequest struct {
	OrderItemId uuid.UUID `json:"order_item_id" validate:"required"`
	RequestType string    `json:"request_type" validate:"required,oneof=pause cancel refund"`
	Reason      string    `json:"reason" validate:"required"`
	Details     *string   `json:"details"`
}

type ListMyCancellationsRequest struct {
	OrderItemId string `query:"order_item_id"`
}

type CancellationResponse struct {
	Id          uuid.UUID  `json:"id"`
	OrderItemId uuid.UUID  `json:"order_item_id"`
	UserId      uuid.UUID  `json:"user_id"`
	RequestType string     `json:"request_type"`
	Status      string     `json:"status"`
	Reason      string     `json:"reason"`
	Details     *string    `json:"details,omitempty"`
	AdminNote   *string    `json:"admin_note,omitempty"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
	ProcessedBy *uuid.UUID `json:"processed_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// --- Admin-Side Cancellation Management ---

type AdminCancellationListRequest struct {
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
	Status string `query:"status"`
	Type   string `query:"type"`
}

type CancellationUserInfo struct {
	Id          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	CompanyName string    `json:"company_name"`
}

type CancellationItemInfo struct {
	Id          uuid.UUID `json:"id"`
	ClientName  string    `json:"client_name"`
	Status      string    `json:"status"`
	ItemPrice   int64     `json:"item_price"`
	OrderId     uuid.UUID `json:"order_id"`
	ProductName string    `json:"product_name"`
}

type AdminCancellationResponse struct {
	CancellationResponse
	OrderItem *CancellationItemInfo `json:"order_item,omitempty"`
	User      *CancellationUserInfo `json:"user,omitempty"`
	Processor *CancellationUserInfo `json:"processor,omitempty"`
}

type ProcessCancellationRequest struct {
	Action     string  `json:"action" validate:"required,oneof=approve reject"`
	AdminNotes *string `json:"admin_notes"`
}

type ProcessCancellationResponse struct {
	Request CancellationResponse `json:"request"`
	Message string               `json:"message"`
}
