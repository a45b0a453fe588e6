package specification

import (
	"gorm.io/gorm"

	"github.com/google/uuid"
)

type ByEmail struct {
	Email string
}

func (s ByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("email = ?", s.Email)
}

type ByAccountCode struct {
	Code string
}

func (s ByAccountCode) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("account_code = ?", s.Code)
}

type UserOwnedBy struct {
	UserID uuid.UUID
}

func (s UserOwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

type ByTier struct {
	Tier string
}

func (s ByTier) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("tier = ?", s.Tier)
}
