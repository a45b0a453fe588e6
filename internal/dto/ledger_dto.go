package dto

import (
	"time"

	"github.com/google/uuid"
)

type LedgerEntryResponse struct {
	Id                   uuid.UUID  `json:"id"`
	TransactionType      string     `json:"transaction_type"`
	Amount               int64      `json:"amount"`
	BalanceAfter         int64      `json:"balance_after"`
	OrderId              *uuid.UUID `json:"order_id,omitempty"`
	PaymentTransactionId *uuid.UUID `json:"payment_transaction_id,omitempty"`
	Memo                 string     `json:"memo"`
	CreatedAt            time.Time  `json:"created_at"`
}

type WalletRequest struct {
	Type   string `query:"type"`
	Limit  int    `query:"limit"`
	Offset int    `query:"offset"`
}

type WalletResponse struct {
	UserId  uuid.UUID             `json:"user_id"`
	Balance int64                 `json:"balance"`
	Entries []LedgerEntryResponse `json:"entries"`
	Total   int64                 `json:"total"`
}

type ReconcileResponse struct {
	UserId     uuid.UUID `json:"user_id"`
	Maintained int64     `json:"maintained"`
	LedgerSum  int64     `json:"ledger_sum"`
	Consistent bool      `json:"consistent"`
}

type AdjustBalanceRequest struct {
	Amount int64  `json:"amount" validate:"required"`
	Memo   string `json:"memo" validate:"required"`
}

type AdjustBalanceResponse struct {
	Entry      LedgerEntryResponse `json:"entry"`
	NewBalance int64               `json:"new_balance"`
}
