package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActiveProducts struct{}

func (s ActiveProducts) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}

type ByCategory struct {
	Category string
}

func (s ByCategory) Apply(db *gorm.DB) *gorm.DB {
	if s.Category == "" {
		return db
	}
	return db.Where("category = ?", s.Category)
}

type ByProductID struct {
	ProductID uuid.UUID
}

func (s ByProductID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("product_id = ?", s.ProductID)
}

type ByCustomerID struct {
	CustomerID uuid.UUID
}

func (s ByCustomerID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("customer_id = ?", s.CustomerID)
}

type ByPgOrderID struct {
	PgOrderID string
}

func (s ByPgOrderID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("pg_order_id = ?", s.PgOrderID)
}
