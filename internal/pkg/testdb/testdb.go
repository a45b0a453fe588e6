// Package testdb opens an isolated in-memory SQLite database with the full
// schema migrated, for repository, service and controller tests.
package testdb

import (
	"context"
	"testing"

	"adorder-be/internal/entity"
	"adorder-be/internal/model"
	"adorder-be/pkg/database"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New returns a migrated database private to the calling test. A single
// connection keeps every statement on the same in-memory database.
func New(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=off"
	db, err := gorm.Open(sqlite.Open(dsn), database.Config(logger.Silent))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(model.All()...))
	return db
}

// SeedUser inserts a user with the given tier and a wallet holding balance.
// The balance is backed by a matching charge entry so reconciliation holds.
func SeedUser(t *testing.T, db *gorm.DB, tier entity.UserTier, balance int64) *model.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	hashStr := string(hash)

	id := uuid.New()
	u := &model.User{
		Id:           id,
		Email:        id.String()[:8] + "@example.com",
		PasswordHash: &hashStr,
		DisplayName:  "Test " + string(tier),
		AccountCode:  "AD" + id.String()[:6],
		Tier:         string(tier),
	}
	require.NoError(t, db.Create(u).Error)
	require.NoError(t, db.Create(&model.Wallet{UserId: id, Balance: balance}).Error)

	if balance != 0 {
		require.NoError(t, db.Create(&model.LedgerEntry{
			Id:              uuid.New(),
			UserId:          id,
			TransactionType: string(entity.TransactionTypeCharge),
			Amount:          balance,
			BalanceAfter:    balance,
			Memo:            "seed",
		}).Error)
	}
	return u
}

// SeedProduct inserts an active product with the given base price.
func SeedProduct(t *testing.T, db *gorm.DB, name string, basePrice int64) *model.Product {
	t.Helper()

	p := &model.Product{
		Id:        uuid.New(),
		Name:      name,
		BasePrice: basePrice,
		Unit:      "건",
		Category:  "traffic",
		IsActive:  true,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

// SeedPricingRule stores an active multiplier for a tier.
func SeedPricingRule(t *testing.T, db *gorm.DB, tier entity.UserTier, multiplier string) {
	t.Helper()
	require.NoError(t, db.Create(&model.TierPricingRule{
		Tier:       string(tier),
		Multiplier: decimal.RequireFromString(multiplier),
		Active:     true,
	}).Error)
}

// Balance reads the maintained wallet balance.
func Balance(t *testing.T, db *gorm.DB, userId uuid.UUID) int64 {
	t.Helper()
	var w model.Wallet
	require.NoError(t, db.WithContext(context.Background()).Where("user_id = ?", userId).First(&w).Error)
	return w.Balance
}

func Principal(u *model.User) entity.Principal {
	return entity.Principal{UserID: u.Id, Tier: entity.UserTier(u.Tier)}
}
