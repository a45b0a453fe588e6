package implementation

import (
	"context"
	"errors"

	"adorder-be/internal/entity"
	"adorder-be/internal/model"
	"adorder-be/internal/repository/contract"
	"adorder-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ledgerRepositoryImpl struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) contract.LedgerRepository {
	return &ledgerRepositoryImpl{db: db}
}

func (r *ledgerRepositoryImpl) LockWallet(ctx context.Context, userId uuid.UUID) (*entity.Wallet, error) {
	db := r.db.WithContext(ctx)

	seed := &model.Wallet{UserId: userId, Balance: 0}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(seed).Error; err != nil {
		return nil, err
	}

	var w model.Wallet
	if err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userId).
		First(&w).Error; err != nil {
		return nil, err
	}
	return walletToEntity(&w), nil
}

func (r *ledgerRepositoryImpl) FindWallet(ctx context.Context, userId uuid.UUID) (*entity.Wallet, error) {
	var w model.Wallet
	if err := r.db.WithContext(ctx).Where("user_id = ?", userId).First(&w).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return walletToEntity(&w), nil
}

func (r *ledgerRepositoryImpl) SetWalletBalance(ctx context.Context, userId uuid.UUID, balance int64) error {
	return r.db.WithContext(ctx).Model(&model.Wallet{}).
		Where("user_id = ?", userId).
		Update("balance", balance).Error
}

func (r *ledgerRepositoryImpl) CreateEntry(ctx context.Context, entry *entity.LedgerEntry) error {
	if entry.Id == uuid.Nil {
		entry.Id = uuid.New()
	}
	m := &model.LedgerEntry{
		Id:                   entry.Id,
		UserId:               entry.UserId,
		TransactionType:      string(entry.TransactionType),
		Amount:               entry.Amount,
		BalanceAfter:         entry.BalanceAfter,
		OrderId:              entry.OrderId,
		PaymentTransactionId: entry.PaymentTransactionId,
		Memo:                 entry.Memo,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	entry.CreatedAt = m.CreatedAt
	return nil
}

func (r *ledgerRepositoryImpl) FindEntries(ctx context.Context, specs ...specification.Specification) ([]*entity.LedgerEntry, error) {
	var rows []*model.LedgerEntry
	if err := specification.ApplyAll(r.db.WithContext(ctx), specs...).Find(&rows).Error; err != nil {
		return nil, err
	}
	entries := make([]*entity.LedgerEntry, 0, len(rows))
	for _, m := range rows {
		entries = append(entries, &entity.LedgerEntry{
			Id:                   m.Id,
			UserId:               m.UserId,
			TransactionType:      entity.TransactionType(m.TransactionType),
			Amount:               m.Amount,
			BalanceAfter:         m.BalanceAfter,
			OrderId:              m.OrderId,
			PaymentTransactionId: m.PaymentTransactionId,
			Memo:                 m.Memo,
			CreatedAt:            m.CreatedAt,
		})
	}
	return entries, nil
}

func (r *ledgerRepositoryImpl) CountEntries(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := specification.ApplyAll(r.db.WithContext(ctx).Model(&model.LedgerEntry{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ledgerRepositoryImpl) SumAmounts(ctx context.Context, userId uuid.UUID) (int64, error) {
	var sum int64
	err := r.db.WithContext(ctx).Model(&model.LedgerEntry{}).
		Where("user_id = ?", userId).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error
	return sum, err
}

func walletToEntity(w *model.Wallet) *entity.Wallet {
	return &entity.Wallet{
		UserId:    w.UserId,
		Balance:   w.Balance,
		UpdatedAt: w.UpdatedAt,
	}
}
