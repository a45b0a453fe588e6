package dto

import (
	"time"

	"github.com/google/uuid"
)

// --- Order Confirmation ---

type ConfirmOrderItem struct {
	ClientName     string                 `json:"clientName" validate:"required"`
	DailyCount     int64                  `json:"dailyCount" validate:"gte=0,lte=1000000"`
	Weeks          int64                  `json:"weeks" validate:"gte=0,lte=520"`
	TotalCount     int64                  `json:"totalCount"`
	EstimatedPrice int64                  `json:"estimatedPrice"`
	Details        map[string]interface{} `json:"details"`
}

type ConfirmOrderRequest struct {
	ProductId   uuid.UUID          `json:"productId" validate:"required"`
	ProductName string             `json:"productName"`
	UnitPrice   int64              `json:"unitPrice" validate:"gte=0,lte=100000000"`
	Items       []ConfirmOrderItem `json:"items" validate:"dive"`
}

type ConfirmOrderResponse struct {
	OrderId       uuid.UUID `json:"orderId"`
	TotalQuantity int64     `json:"totalQuantity"`
	TotalPrice    int64     `json:"totalPrice"`
	ItemCount     int       `json:"itemCount"`
	NewBalance    int64     `json:"newBalance"`
}

// --- Order Reads ---

type OrderItemResponse struct {
	Id          uuid.UUID              `json:"id"`
	OrderId     uuid.UUID              `json:"order_id"`
	ClientName  string                 `json:"client_name"`
	DailyQty    int64                  `json:"daily_qty"`
	Weeks       int64                  `json:"weeks"`
	TotalQty    int64                  `json:"total_qty"`
	UnitPrice   int64                  `json:"unit_price"`
	ItemPrice   int64                  `json:"item_price"`
	ItemDetails map[string]interface{} `json:"item_details"`
	Status      string                 `json:"status"`
	CreatedAt   time.Time              `json:"created_at"`
}

type OrderResponse struct {
	Id          uuid.UUID           `json:"id"`
	UserId      uuid.UUID           `json:"user_id"`
	ProductId   uuid.UUID           `json:"product_id"`
	ProductName string              `json:"product_name"`
	UnitPrice   int64               `json:"unit_price"`
	Quantity    int64               `json:"quantity"`
	TotalPrice  int64               `json:"total_price"`
	UserTier    string              `json:"user_tier"`
	Status      string              `json:"status"`
	ConfirmedAt *time.Time          `json:"confirmed_at,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	Items       []OrderItemResponse `json:"items"`
}

type OrderDetailResponse struct {
	OrderResponse
	InputDefs []InputDefResponse `json:"input_defs"`
	StartDate time.Time          `json:"start_date"`
	EndDate   time.Time          `json:"end_date"`
}

type OrderSummary struct {
	Id          uuid.UUID `json:"id"`
	ProductId   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type OrderItemDetailResponse struct {
	OrderItemResponse
	Order     OrderSummary       `json:"order"`
	InputDefs []InputDefResponse `json:"input_defs"`
	StartDate time.Time          `json:"start_date"`
	EndDate   time.Time          `json:"end_date"`
}

// --- Admin ---

type AdminOrderListRequest struct {
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
	Status string `query:"status"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=received pause running done cancelled refunded"`
}

type PaginatedResponse[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}
