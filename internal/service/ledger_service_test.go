package service

import (
	"context"
	"testing"

	"adorder-be/internal/dto"
	"adorder-be/internal/entity"
	"adorder-be/internal/pkg/apperror"
	"adorder-be/internal/pkg/testdb"
	"adorder-be/internal/repository/unitofwork"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAmount(t *testing.T) {
	cases := []struct {
		name    string
		typ     entity.TransactionType
		amount  int64
		want    int64
		wantErr bool
	}{
		{"charge positive", entity.TransactionTypeCharge, 500, 500, false},
		{"charge negative", entity.TransactionTypeCharge, -500, 0, true},
		{"refund positive", entity.TransactionTypeRefund, 700, 700, false},
		{"refund negative", entity.TransactionTypeRefund, -700, 0, true},
		{"deduct positive is negated", entity.TransactionTypeDeduct, 300, -300, false},
		{"deduct negative kept", entity.TransactionTypeDeduct, -300, -300, false},
		{"admin adjust keeps sign", entity.TransactionTypeAdminAdjust, -50, -50, false},
		{"zero", entity.TransactionTypeAdminAdjust, 0, 0, true},
		{"unknown type", entity.TransactionType("gift"), 10, 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := normalizeAmount(tc.typ, tc.amount)
			if tc.wantErr {
				assert.ErrorIs(t, err, apperror.ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestAppendEntry(t *testing.T) {
	db := testdb.New(t)
	factory := unitofwork.NewRepositoryFactory(db)
	user := testdb.SeedUser(t, db, entity.UserTierT1, 1000)

	t.Run("deduct below zero is rejected", func(t *testing.T) {
		uow := factory.NewUnitOfWork(context.Background())
		_, err := AppendEntry(context.Background(), uow.LedgerRepository(), LedgerWrite{
			UserId: user.Id, Type: entity.TransactionTypeDeduct, Amount: 1500,
		})
		assert.ErrorIs(t, err, apperror.ErrInsufficientBalance)
		assert.Equal(t, int64(1000), testdb.Balance(t, db, user.Id))
	})

	t.Run("admin adjust may go negative", func(t *testing.T) {
		uow := factory.NewUnitOfWork(context.Background())
		entry, err := AppendEntry(context.Background(), uow.LedgerRepository(), LedgerWrite{
			UserId: user.Id, Type: entity.TransactionTypeAdminAdjust, Amount: -1500, Memo: "chargeback",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(-500), entry.BalanceAfter)
		assert.Equal(t, int64(-500), testdb.Balance(t, db, user.Id))
	})

	t.Run("wallet is created on first write", func(t *testing.T) {
		fresh := testdb.SeedUser(t, db, entity.UserTierT2, 0)
		require.NoError(t, db.Exec("DELETE FROM wallets WHERE user_id = ?", fresh.Id).Error)

		uow := factory.NewUnitOfWork(context.Background())
		entry, err := AppendEntry(context.Background(), uow.LedgerRepository(), LedgerWrite{
			UserId: fresh.Id, Type: entity.TransactionTypeCharge, Amount: 250,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(250), entry.BalanceAfter)
	})
}

func TestLedgerService_WalletAndReconcile(t *testing.T) {
	db := testdb.New(t)
	factory := unitofwork.NewRepositoryFactory(db)
	svc := NewLedgerService(factory)
	user := testdb.SeedUser(t, db, entity.UserTierT1, 10000)

	uow := factory.NewUnitOfWork(context.Background())
	for _, amount := range []int64{2000, 3000} {
		_, err := AppendEntry(context.Background(), uow.LedgerRepository(), LedgerWrite{
			UserId: user.Id, Type: entity.TransactionTypeDeduct, Amount: amount,
		})
		require.NoError(t, err)
	}

	wallet, err := svc.GetWallet(context.Background(), user.Id, &dto.WalletRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(5000), wallet.Balance)
	assert.Equal(t, int64(3), wallet.Total)
	require.Len(t, wallet.Entries, 3)

	deducts, err := svc.GetWallet(context.Background(), user.Id, &dto.WalletRequest{Type: "deduct", Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), deducts.Total)
	assert.Len(t, deducts.Entries, 1)

	_, err = svc.GetWallet(context.Background(), user.Id, &dto.WalletRequest{Type: "gift"})
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)

	rec, err := svc.Reconcile(context.Background(), user.Id)
	require.NoError(t, err)
	assert.True(t, rec.Consistent)
	assert.Equal(t, int64(5000), rec.LedgerSum)

	// Drift is reported, not repaired.
	require.NoError(t, db.Exec("UPDATE wallets SET balance = 1 WHERE user_id = ?", user.Id).Error)
	rec, err = svc.Reconcile(context.Background(), user.Id)
	require.NoError(t, err)
	assert.False(t, rec.Consistent)
	assert.Equal(t, int64(1), rec.Maintained)
}
