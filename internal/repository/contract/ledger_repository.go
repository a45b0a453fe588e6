package contract

import (
	"context"

	"adorder-be/internal/entity"
	"adorder-be/internal/repository/specification"

	"github.com/google/uuid"
)

// LedgerRepository owns the point_ledger audit log and the wallets balance table.
type LedgerRepository interface {
	// LockWallet creates the wallet row on first use and returns it locked
	// for update until the surrounding transaction ends.
	LockWallet(ctx context.Context, userId uuid.UUID) (*entity.Wallet, error)
	FindWallet(ctx context.Context, userId uuid.UUID) (*entity.Wallet, error)
	SetWalletBalance(ctx context.Context, userId uuid.UUID, balance int64) error

	CreateEntry(ctx context.Context, entry *entity.LedgerEntry) error
	FindEntries(ctx context.Context, specs ...specification.Specification) ([]*entity.LedgerEntry, error)
	CountEntries(ctx context.Context, specs ...specification.Specification) (int64, error)
	SumAmounts(ctx context.Context, userId uuid.UUID) (int64, error)
}
