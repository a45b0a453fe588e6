package service

import (
	"context"
	"regexp"
	"testing"

	"adorder-be/internal/dto"
	"adorder-be/internal/entity"
	"adorder-be/internal/pkg/apperror"
	"adorder-be/internal/pkg/logger"
	"adorder-be/internal/pkg/testdb"
	"adorder-be/internal/repository/unitofwork"
	"adorder-be/pkg/admin/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAdminService_Users(t *testing.T) {
	db := testdb.New(t)
	pub := newMockPublisher()
	svc := NewAdminService(unitofwork.NewRepositoryFactory(db), logger.NewNopLogger(), user.NewManager(logger.NewNopLogger(), pub), pub)
	ctx := context.Background()
	admin := testdb.Principal(testdb.SeedUser(t, db, entity.UserTierAdmin, 0))
	member := testdb.Principal(testdb.SeedUser(t, db, entity.UserTierT1, 0))

	req := dto.AdminCreateUserRequest{
		Email:       "Agency@Example.com",
		Password:    "password123",
		Tier:        "T3",
		DisplayName: "Agency",
	}
	created, err := svc.CreateUser(ctx, admin, req)
	require.NoError(t, err)
	assert.Equal(t, "agency@example.com", created.Email)
	assert.Regexp(t, regexp.MustCompile(`^AD\d{6}$`), created.AccountCode)
	assert.Equal(t, "T3", created.Tier)
	pub.AssertCalled(t, "PublishUserRegistered", mock.Anything, created.Id, "agency@example.com", "T3")

	_, err = svc.CreateUser(ctx, admin, req)
	assert.ErrorIs(t, err, &apperror.Error{Kind: apperror.KindConflict, Reason: apperror.ReasonDuplicate})

	_, err = svc.CreateUser(ctx, member, req)
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	bad := req
	bad.Email = "other@example.com"
	bad.Tier = "T7"
	_, err = svc.CreateUser(ctx, admin, bad)
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)

	all, err := svc.ListUsers(ctx, admin, 0, 0, "")
	require.NoError(t, err)
	assert.Equal(t, int64(3), all.Total)
	assert.Equal(t, 1, all.Page)
	assert.Equal(t, 20, all.Limit)

	t3, err := svc.ListUsers(ctx, admin, 1, 10, "T3")
	require.NoError(t, err)
	require.Len(t, t3.Items, 1)
	assert.Equal(t, created.Id, t3.Items[0].Id)

	_, err = svc.ListUsers(ctx, admin, 1, 10, "gold")
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)
	_, err = svc.ListUsers(ctx, member, 1, 10, "")
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestAdminService_AdjustBalance(t *testing.T) {
	db := testdb.New(t)
	pub := newMockPublisher()
	svc := NewAdminService(unitofwork.NewRepositoryFactory(db), logger.NewNopLogger(), user.NewManager(logger.NewNopLogger(), pub), pub)
	ctx := context.Background()
	admin := testdb.Principal(testdb.SeedUser(t, db, entity.UserTierAdmin, 0))
	target := testdb.SeedUser(t, db, entity.UserTierT2, 1000)

	res, err := svc.AdjustBalance(ctx, admin, target.Id, dto.AdjustBalanceRequest{Amount: -3000, Memo: "chargeback"})
	require.NoError(t, err)
	assert.Equal(t, int64(-2000), res.NewBalance)
	assert.Equal(t, "admin_adjust", res.Entry.TransactionType)
	assert.Equal(t, int64(-2000), testdb.Balance(t, db, target.Id))
	pub.AssertCalled(t, "PublishBalanceAdjusted", mock.Anything, target.Id, admin.UserID, int64(-3000), int64(-2000), "chargeback")

	_, err = svc.AdjustBalance(ctx, admin, target.Id, dto.AdjustBalanceRequest{Amount: 100, Memo: " "})
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)
	_, err = svc.AdjustBalance(ctx, admin, target.Id, dto.AdjustBalanceRequest{Amount: 0, Memo: "noop"})
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)
	_, err = svc.AdjustBalance(ctx, admin, uuid.New(), dto.AdjustBalanceRequest{Amount: 100, Memo: "bonus"})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	_, err = svc.AdjustBalance(ctx, testdb.Principal(target), target.Id, dto.AdjustBalanceRequest{Amount: 100, Memo: "self"})
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	ledger := NewLedgerService(unitofwork.NewRepositoryFactory(db))
	rec, err := ledger.Reconcile(ctx, target.Id)
	require.NoError(t, err)
	assert.True(t, rec.Consistent)
}
