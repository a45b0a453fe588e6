package entity

import (
	"math"
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusReceived  OrderStatus = "received"
	OrderStatusPause     OrderStatus = "pause"
	OrderStatusRunning   OrderStatus = "running"
	OrderStatusDone      OrderStatus = "done"
	OrderStatusCancelled OrderStatus = "cancelled"
	OrderStatusRefunded  OrderStatus = "refunded"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusReceived, OrderStatusPause, OrderStatusRunning, OrderStatusDone, OrderStatusCancelled, OrderStatusRefunded:
		return true
	}
	return false
}

var allowedOrderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusReceived: {OrderStatusRunning, OrderStatusPause, OrderStatusCancelled},
	OrderStatusRunning:  {OrderStatusPause, OrderStatusDone, OrderStatusCancelled},
	OrderStatusPause:    {OrderStatusRunning, OrderStatusCancelled},
}

// CanTransitionTo reports whether an admin may move an order from s to next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range allowedOrderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// DaysPerWeek scales a daily quantity to a weekly one.
const DaysPerWeek = 7

// Upper bounds accepted for a single cart line.
const (
	MaxDailyCount = 1_000_000
	MaxWeeks      = 520
	MaxUnitPrice  = 100_000_000
)

// TotalQuantity is daily_qty × 7 × weeks. ok is false for negative inputs or
// when the product does not fit in an int64.
func TotalQuantity(dailyQty, weeks int64) (int64, bool) {
	weekly, ok := mulInt64(dailyQty, DaysPerWeek)
	if !ok {
		return 0, false
	}
	return mulInt64(weekly, weeks)
}

// ItemPrice is total_qty × unit_price, with the same overflow reporting as
// TotalQuantity.
func ItemPrice(totalQty, unitPrice int64) (int64, bool) {
	return mulInt64(totalQty, unitPrice)
}

// AddAmount sums two non-negative amounts, reporting overflow.
func AddAmount(a, b int64) (int64, bool) {
	if a < 0 || b < 0 || a > math.MaxInt64-b {
		return 0, false
	}
	return a + b, true
}

func mulInt64(a, b int64) (int64, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if a != 0 && b > math.MaxInt64/a {
		return 0, false
	}
	return a * b, true
}

type Order struct {
	Id           uuid.UUID
	UserId       uuid.UUID
	ProductId    uuid.UUID
	ProductName  string
	UnitPrice    int64
	Quantity     int64
	TotalPrice   int64
	OrderDetails OrderDetails
	UserTier     UserTier
	Status       OrderStatus
	ConfirmedAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Items []*OrderItem
}

// OrderDetails is the snapshot of the submitted cart stored on the order.
type OrderDetails struct {
	Items []OrderDetailLine `json:"items"`
}

type OrderDetailLine struct {
	ClientName     string `json:"clientName"`
	DailyCount     int64  `json:"dailyCount"`
	Weeks          int64  `json:"weeks"`
	TotalCount     int64  `json:"totalCount"`
	EstimatedPrice int64  `json:"estimatedPrice"`
}

type OrderItem struct {
	Id          uuid.UUID
	OrderId     uuid.UUID
	ClientName  string
	DailyQty    int64
	Weeks       int64
	TotalQty    int64
	UnitPrice   int64
	ItemPrice   int64
	ItemDetails map[string]interface{}
	Status      OrderStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Order is populated by detail lookups only.
	Order *Order
}
