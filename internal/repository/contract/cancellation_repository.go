// FILE: internal/repository/contract/cancellation_repository.go
package contract

import (
	"context"
	"time"

	"adorder-be/internal/entity"
	"adorder-be/internal/repository/specification"

	"github.com/google/uuid"
)

// CancellationRepository defines operations for order item cancellation requests
type CancellationRepository interface {
	Create(ctx context.Context, request *entity.CancellationRequest) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CancellationRequest, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CancellationRequest, error)
	FindAllWithDetails(ctx context.Context, specs ...specification.Specification) ([]*entity.CancellationRequest, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// MarkProcessed moves a pending request to a terminal status. It returns the
	// number of rows changed, which is zero when the request was no longer pending.
	MarkProcessed(ctx context.Context, id uuid.UUID, status entity.CancellationStatus, adminNote *string, processedBy uuid.UUID, processedAt time.Time) (int64, error)
}
