package unitofwork

import (
	"context"
	"fmt"

	"adorder-be/internal/repository/contract"
	"adorder-be/internal/repository/implementation"

	"gorm.io/gorm"
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	u.tx = tx
	return nil
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

// Rollback is a no-op after Commit so it can always be deferred.
func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return nil
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// Repository Accessors

func (u *UnitOfWorkImpl) UserRepository() contract.UserRepository {
	return implementation.NewUserRepository(u.getDB())
}

func (u *UnitOfWorkImpl) LedgerRepository() contract.LedgerRepository {
	return implementation.NewLedgerRepository(u.getDB())
}

func (u *UnitOfWorkImpl) OrderRepository() contract.OrderRepository {
	return implementation.NewOrderRepository(u.getDB())
}

func (u *UnitOfWorkImpl) CancellationRepository() contract.CancellationRepository {
	return implementation.NewCancellationRepository(u.getDB())
}

func (u *UnitOfWorkImpl) MessageRepository() contract.MessageRepository {
	return implementation.NewMessageRepository(u.getDB())
}

func (u *UnitOfWorkImpl) PaymentRepository() contract.PaymentRepository {
	return implementation.NewPaymentRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ProductRepository() contract.ProductRepository {
	return implementation.NewProductRepository(u.getDB())
}

func (u *UnitOfWorkImpl) CustomerRepository() contract.CustomerRepository {
	return implementation.NewCustomerRepository(u.getDB())
}
