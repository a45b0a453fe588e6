package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByOrderID struct {
	OrderID uuid.UUID
}

func (s ByOrderID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("order_id = ?", s.OrderID)
}

type ByOrderIDs struct {
	OrderIDs []uuid.UUID
}

func (s ByOrderIDs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("order_id IN ?", s.OrderIDs)
}

type ByOrderItemID struct {
	OrderItemID uuid.UUID
}

func (s ByOrderItemID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("order_item_id = ?", s.OrderItemID)
}

// ByStatus filters on the status column; an empty status matches everything.
type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	if s.Status == "" {
		return db
	}
	return db.Where("status = ?", s.Status)
}

type ByRequestType struct {
	RequestType string
}

func (s ByRequestType) Apply(db *gorm.DB) *gorm.DB {
	if s.RequestType == "" {
		return db
	}
	return db.Where("request_type = ?", s.RequestType)
}

type ByTransactionType struct {
	TransactionType string
}

func (s ByTransactionType) Apply(db *gorm.DB) *gorm.DB {
	if s.TransactionType == "" {
		return db
	}
	return db.Where("transaction_type = ?", s.TransactionType)
}

type UnreadNotAuthoredBy struct {
	AuthorID uuid.UUID
}

func (s UnreadNotAuthoredBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_read = ? AND author_id <> ?", false, s.AuthorID)
}
