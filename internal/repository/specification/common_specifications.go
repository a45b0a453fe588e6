package specification

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByID struct {
	ID uuid.UUID
}

func (s ByID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id = ?", s.ID)
}

// ByIDs matches any of IDs. An empty list matches nothing.
type ByIDs struct {
	IDs []uuid.UUID
}

func (s ByIDs) Apply(db *gorm.DB) *gorm.DB {
	if len(s.IDs) == 0 {
		return db.Where("1 = 0")
	}
	return db.Where("id IN ?", s.IDs)
}

// OrderBy sorts on a trusted column name; never pass user input as Field.
type OrderBy struct {
	Field string
	Desc  bool
}

func (s OrderBy) Apply(db *gorm.DB) *gorm.DB {
	direction := "ASC"
	if s.Desc {
		direction = "DESC"
	}
	return db.Order(fmt.Sprintf("%s %s", s.Field, direction))
}

type Pagination struct {
	Limit  int
	Offset int
}

// Page converts a 1-based page number into a limit/offset window.
func Page(page, limit int) Pagination {
	if page < 1 {
		page = 1
	}
	return Pagination{Limit: limit, Offset: (page - 1) * limit}
}

func (s Pagination) Apply(db *gorm.DB) *gorm.DB {
	if s.Limit > 0 {
		db = db.Limit(s.Limit)
	}
	if s.Offset > 0 {
		db = db.Offset(s.Offset)
	}
	return db
}
