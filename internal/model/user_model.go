package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Email        string         `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash *string        `gorm:"type:varchar(255)"`
	DisplayName  string         `gorm:"type:varchar(255);not null"`
	CompanyName  string         `gorm:"type:varchar(255)"`
	AccountCode  string         `gorm:"type:varchar(32);uniqueIndex;not null"`
	Tier         string         `gorm:"type:varchar(20);not null;default:'T1'"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (User) TableName() string {
	return "users"
}
