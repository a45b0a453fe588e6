package unitofwork

import (
	"context"

	"adorder-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	LedgerRepository() contract.LedgerRepository
	OrderRepository() contract.OrderRepository
	CancellationRepository() contract.CancellationRepository
	MessageRepository() contract.MessageRepository
	PaymentRepository() contract.PaymentRepository
	ProductRepository() contract.ProductRepository
	CustomerRepository() contract.CustomerRepository
}
