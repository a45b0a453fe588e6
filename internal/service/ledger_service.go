package service

import (
	"context"

	"adorder-be/internal/dto"
	"adorder-be/internal/entity"
	"adorder-be/internal/pkg/apperror"
	"adorder-be/internal/repository/contract"
	"adorder-be/internal/repository/specification"
	"adorder-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

const (
	defaultLedgerPageSize = 20
	maxLedgerPageSize     = 100
)

type ILedgerService interface {
	ComputeBalance(ctx context.Context, userId uuid.UUID) (int64, error)
	LedgerSum(ctx context.Context, userId uuid.UUID) (int64, error)
	Reconcile(ctx context.Context, userId uuid.UUID) (*dto.ReconcileResponse, error)
	GetWallet(ctx context.Context, userId uuid.UUID, req *dto.WalletRequest) (*dto.WalletResponse, error)
}

type ledgerService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewLedgerService(uowFactory unitofwork.RepositoryFactory) ILedgerService {
	return &ledgerService{
		uowFactory: uowFactory,
	}
}

// LedgerWrite describes one entry to append. Amount follows the sign rules of
// normalizeAmount.
type LedgerWrite struct {
	UserId               uuid.UUID
	Type                 entity.TransactionType
	Amount               int64
	OrderId              *uuid.UUID
	PaymentTransactionId *uuid.UUID
	Memo                 string
}

// normalizeAmount enforces the sign convention per transaction type:
// charge and refund are credits, deduct is a debit, admin_adjust keeps the
// caller's sign. Zero is never a valid amount.
func normalizeAmount(t entity.TransactionType, amount int64) (int64, error) {
	if !t.Valid() {
		return 0, apperror.InvalidArgument("invalid transaction type")
	}
	if amount == 0 {
		return 0, apperror.InvalidArgument("amount must be non-zero")
	}
	switch t {
	case entity.TransactionTypeCharge, entity.TransactionTypeRefund:
		if amount < 0 {
			return 0, apperror.InvalidArgument(string(t) + " amount must be positive")
		}
	case entity.TransactionTypeDeduct:
		if amount > 0 {
			amount = -amount
		}
	}
	return amount, nil
}

// AppendEntry locks the wallet, applies the entry and records it. It must run
// inside the caller's transaction so the wallet lock is held until commit.
// A deduct that would take the balance below zero fails with
// InsufficientBalance; admin adjustments may go negative.
func AppendEntry(ctx context.Context, repo contract.LedgerRepository, w LedgerWrite) (*entity.LedgerEntry, error) {
	amount, err := normalizeAmount(w.Type, w.Amount)
	if err != nil {
		return nil, err
	}

	wallet, err := repo.LockWallet(ctx, w.UserId)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	newBalance := wallet.Balance + amount
	if w.Type == entity.TransactionTypeDeduct && newBalance < 0 {
		return nil, apperror.InsufficientBalance(-amount, wallet.Balance)
	}

	if err := repo.SetWalletBalance(ctx, w.UserId, newBalance); err != nil {
		return nil, apperror.Internal(err)
	}

	entry := &entity.LedgerEntry{
		UserId:               w.UserId,
		TransactionType:      w.Type,
		Amount:               amount,
		BalanceAfter:         newBalance,
		OrderId:              w.OrderId,
		PaymentTransactionId: w.PaymentTransactionId,
		Memo:                 w.Memo,
	}
	if err := repo.CreateEntry(ctx, entry); err != nil {
		return nil, apperror.Internal(err)
	}
	return entry, nil
}

func (s *ledgerService) ComputeBalance(ctx context.Context, userId uuid.UUID) (int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	wallet, err := uow.LedgerRepository().FindWallet(ctx, userId)
	if err != nil {
		return 0, apperror.Internal(err)
	}
	if wallet == nil {
		return 0, nil
	}
	return wallet.Balance, nil
}

func (s *ledgerService) LedgerSum(ctx context.Context, userId uuid.UUID) (int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	sum, err := uow.LedgerRepository().SumAmounts(ctx, userId)
	if err != nil {
		return 0, apperror.Internal(err)
	}
	return sum, nil
}

func (s *ledgerService) Reconcile(ctx context.Context, userId uuid.UUID) (*dto.ReconcileResponse, error) {
	maintained, err := s.ComputeBalance(ctx, userId)
	if err != nil {
		return nil, err
	}
	sum, err := s.LedgerSum(ctx, userId)
	if err != nil {
		return nil, err
	}
	return &dto.ReconcileResponse{
		UserId:     userId,
		Maintained: maintained,
		LedgerSum:  sum,
		Consistent: maintained == sum,
	}, nil
}

func (s *ledgerService) GetWallet(ctx context.Context, userId uuid.UUID, req *dto.WalletRequest) (*dto.WalletResponse, error) {
	if req.Type != "" && !entity.TransactionType(req.Type).Valid() {
		return nil, apperror.InvalidArgument("invalid transaction type filter")
	}
	limit := req.Limit
	if limit <= 0 {
		limit = defaultLedgerPageSize
	}
	if limit > maxLedgerPageSize {
		limit = maxLedgerPageSize
	}
	offset := req.Offset
	if offset < 0 {
		offset = 0
	}

	balance, err := s.ComputeBalance(ctx, userId)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	filters := []specification.Specification{
		specification.UserOwnedBy{UserID: userId},
		specification.ByTransactionType{TransactionType: req.Type},
	}
	total, err := uow.LedgerRepository().CountEntries(ctx, filters...)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	entries, err := uow.LedgerRepository().FindEntries(ctx, append(filters,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)...)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	res := &dto.WalletResponse{
		UserId:  userId,
		Balance: balance,
		Entries: make([]dto.LedgerEntryResponse, 0, len(entries)),
		Total:   total,
	}
	for _, e := range entries {
		res.Entries = append(res.Entries, toLedgerEntryResponse(e))
	}
	return res, nil
}

func toLedgerEntryResponse(e *entity.LedgerEntry) dto.LedgerEntryResponse {
	return dto.LedgerEntryResponse{
		Id:                   e.Id,
		TransactionType:      string(e.TransactionType),
		Amount:               e.Amount,
		BalanceAfter:         e.BalanceAfter,
		OrderId:              e.OrderId,
		PaymentTransactionId: e.PaymentTransactionId,
		Memo:                 e.Memo,
		CreatedAt:            e.CreatedAt,
	}
}
