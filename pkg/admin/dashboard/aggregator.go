package dashboard

import (
	"context"

	"adorder-be/internal/entity"
	"adorder-be/internal/pkg/logger"
	"adorder-be/internal/repository/specification"
	"adorder-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

const recentOrderLimit = 5

// Summary is the raw material of a user's dashboard.
type Summary struct {
	User                 *entity.User
	Balance              int64
	RecentOrders         []*entity.Order
	PendingRequestsCount int64
}

// Aggregator handles dashboard statistics
type Aggregator struct {
	logger logger.ILogger
}

// NewAggregator creates a new dashboard aggregator
func NewAggregator(logger logger.ILogger) *Aggregator {
	return &Aggregator{
		logger: logger,
	}
}

// GetSummary collects profile, balance, recent orders and the pending request
// count for one user. A nil User means the account does not exist.
func (a *Aggregator) GetSummary(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (*Summary, error) {
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return &Summary{}, nil
	}

	var balance int64
	wallet, err := uow.LedgerRepository().FindWallet(ctx, userId)
	if err != nil {
		return nil, err
	}
	if wallet != nil {
		balance = wallet.Balance
	}

	orders, err := uow.OrderRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: recentOrderLimit},
	)
	if err != nil {
		return nil, err
	}

	pending, err := uow.CancellationRepository().Count(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ByStatus{Status: string(entity.CancellationStatusPending)},
	)
	if err != nil {
		// The dashboard still renders without the counter.
		a.logger.Warn("DASHBOARD", "Failed to count pending requests", map[string]interface{}{"error": err.Error()})
		pending = 0
	}

	return &Summary{
		User:                 user,
		Balance:              balance,
		RecentOrders:         orders,
		PendingRequestsCount: pending,
	}, nil
}
