package model

import (
	"time"

	"github.com/google/uuid"
)

// Wallet holds the maintained running balance; point_ledger stays the audit log.
type Wallet struct {
	UserId    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Balance   int64     `gorm:"type:bigint;not null;default:0"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Wallet) TableName() string {
	return "wallets"
}

type LedgerEntry struct {
	Id                   uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserId               uuid.UUID  `gorm:"type:uuid;not null;index:idx_point_ledger_user_created,priority:1"`
	TransactionType      string     `gorm:"type:varchar(20);not null"`
	Amount               int64      `gorm:"type:bigint;not null"`
	BalanceAfter         int64      `gorm:"type:bigint;not null"`
	OrderId              *uuid.UUID `gorm:"type:uuid;index"`
	PaymentTransactionId *uuid.UUID `gorm:"type:uuid;index"`
	Memo                 string     `gorm:"type:text"`
	CreatedAt            time.Time  `gorm:"autoCreateTime;index:idx_point_ledger_user_created,priority:2"`
}

func (LedgerEntry) TableName() string {
	return "point_ledger"
}
