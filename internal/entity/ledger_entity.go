package entity

import (
	"time"

	"github.com/google/uuid"
)

type TransactionType string

const (
	TransactionTypeCharge      TransactionType = "charge"
	TransactionTypeDeduct      TransactionType = "deduct"
	TransactionTypeRefund      TransactionType = "refund"
	TransactionTypeAdminAdjust TransactionType = "admin_adjust"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeCharge, TransactionTypeDeduct, TransactionTypeRefund, TransactionTypeAdminAdjust:
		return true
	}
	return false
}

// LedgerEntry is immutable once written. Amount is signed.
type LedgerEntry struct {
	Id                   uuid.UUID
	UserId               uuid.UUID
	TransactionType      TransactionType
	Amount               int64
	BalanceAfter         int64
	OrderId              *uuid.UUID
	PaymentTransactionId *uuid.UUID
	Memo                 string
	CreatedAt            time.Time
}

type Wallet struct {
	UserId    uuid.UUID
	Balance   int64
	UpdatedAt time.Time
}
