package dto

import (
	"time"

	"github.com/google/uuid"
)

// --- Auth DTOs ---

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        UserResponse `json:"user"`
}

type UserResponse struct {
	Id          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	CompanyName string    `json:"company_name"`
	AccountCode string    `json:"account_code"`
	Tier        string    `json:"tier"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

type DashboardResponse struct {
	User                 UserResponse    `json:"user"`
	Balance              int64           `json:"balance"`
	RecentOrders         []OrderResponse `json:"recent_orders"`
	PendingRequestsCount int64           `json:"pending_requests_count"`
}
