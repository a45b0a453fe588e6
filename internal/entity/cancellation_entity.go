// FILE: internal/entity/cancellation_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

// CancellationStatus represents the status of a cancellation request
type CancellationStatus string

// CancellationRequestType is what the owner asks to happen to an order item
type CancellationRequestType string

const (
	CancellationStatusPending   CancellationStatus = "pending"
	CancellationStatusApproved  CancellationStatus = "approved"
	CancellationStatusRejected  CancellationStatus = "rejected"
	CancellationStatusCompleted CancellationStatus = "completed"

	CancellationTypePause  CancellationRequestType = "pause"
	CancellationTypeCancel CancellationRequestType = "cancel"
	CancellationTypeRefund CancellationRequestType = "refund"

	CancellationActionApprove = "approve"
	CancellationActionReject  = "reject"
)

func (s CancellationStatus) Valid() bool {
	switch s {
	case CancellationStatusPending, CancellationStatusApproved, CancellationStatusRejected, CancellationStatusCompleted:
		return true
	}
	return false
}

func (t CancellationRequestType) Valid() bool {
	switch t {
	case CancellationTypePause, CancellationTypeCancel, CancellationTypeRefund:
		return true
	}
	return false
}

// TargetItemStatus is the order item status an approved request moves the item to.
func (t CancellationRequestType) TargetItemStatus() OrderStatus {
	switch t {
	case CancellationTypePause:
		return OrderStatusPause
	case CancellationTypeCancel:
		return OrderStatusCancelled
	default:
		return OrderStatusRefunded
	}
}

// CancellationRequest is a user's pause/cancel/refund request against one order item
type CancellationRequest struct {
	ID          uuid.UUID
	OrderItemID uuid.UUID
	UserID      uuid.UUID
	RequestType CancellationRequestType
	Status      CancellationStatus
	Reason      string
	Details     *string
	AdminNote   *string
	ProcessedAt *time.Time
	ProcessedBy *uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Populated by FindAllWithDetails
	OrderItem *OrderItem
	User      *User
	Processor *User
}
