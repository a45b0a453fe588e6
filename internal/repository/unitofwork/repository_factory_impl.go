package unitofwork

import (
	"context"

	"gorm.io/gorm"
)

// RepositoryFactory hands out one UnitOfWork per service call.
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}

type RepositoryFactoryImpl struct {
	db *gorm.DB
}

func NewRepositoryFactory(db *gorm.DB) RepositoryFactory {
	return &RepositoryFactoryImpl{db: db}
}

// NewUnitOfWork binds ctx to non-transactional reads; Begin rebinds the
// transaction to its own context.
func (f *RepositoryFactoryImpl) NewUnitOfWork(ctx context.Context) UnitOfWork {
	return NewUnitOfWork(f.db.WithContext(ctx))
}
