// FILE: internal/repository/implementation/cancellation_repository_impl.go
package implementation

import (
	"context"
	"errors"
	"time"

	"adorder-be/internal/entity"
	"adorder-be/internal/mapper"
	"adorder-be/internal/model"
	"adorder-be/internal/repository/contract"
	"adorder-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type cancellationRepositoryImpl struct {
	db          *gorm.DB
	userMapper  *mapper.UserMapper
	orderMapper *mapper.OrderMapper
}

// NewCancellationRepository creates a new cancellation repository
func NewCancellationRepository(db *gorm.DB) contract.CancellationRepository {
	return &cancellationRepositoryImpl{
		db:          db,
		userMapper:  mapper.NewUserMapper(),
		orderMapper: mapper.NewOrderMapper(),
	}
}

func (r *cancellationRepositoryImpl) Create(ctx context.Context, request *entity.CancellationRequest) error {
	if request.ID == uuid.Nil {
		request.ID = uuid.New()
	}
	m := &model.CancellationRequest{
		ID:          request.ID,
		OrderItemID: request.OrderItemID,
		UserID:      request.UserID,
		RequestType: string(request.RequestType),
		Status:      string(request.Status),
		Reason:      request.Reason,
		Details:     request.Details,
		AdminNote:   request.AdminNote,
		ProcessedAt: request.ProcessedAt,
		ProcessedBy: request.ProcessedBy,
	}
	if err := r.db.WithContext(ctx).Omit("OrderItem", "User", "Processor").Create(m).Error; err != nil {
		return err
	}
	request.CreatedAt = m.CreatedAt
	request.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *cancellationRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CancellationRequest, error) {
	var m model.CancellationRequest
	query := specification.ApplyAll(r.db.WithContext(ctx), specs...)

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapToEntity(&m), nil
}

func (r *cancellationRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CancellationRequest, error) {
	var rows []*model.CancellationRequest
	query := specification.ApplyAll(r.db.WithContext(ctx), specs...)

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	requests := make([]*entity.CancellationRequest, 0, len(rows))
	for _, m := range rows {
		requests = append(requests, r.mapToEntity(m))
	}
	return requests, nil
}

// FindAllWithDetails returns requests with the order item, its order, the
// requester and the processing admin preloaded.
func (r *cancellationRepositoryImpl) FindAllWithDetails(ctx context.Context, specs ...specification.Specification) ([]*entity.CancellationRequest, error) {
	var rows []*model.CancellationRequest
	query := r.db.WithContext(ctx).
		Preload("OrderItem").
		Preload("OrderItem.Order").
		Preload("User").
		Preload("Processor")
	query = specification.ApplyAll(query, specs...)

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	requests := make([]*entity.CancellationRequest, 0, len(rows))
	for _, m := range rows {
		req := r.mapToEntity(m)
		req.OrderItem = r.orderMapper.ItemToEntity(m.OrderItem)
		req.User = r.userMapper.ToEntity(m.User)
		req.Processor = r.userMapper.ToEntity(m.Processor)
		requests = append(requests, req)
	}
	return requests, nil
}

func (r *cancellationRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := specification.ApplyAll(r.db.WithContext(ctx).Model(&model.CancellationRequest{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *cancellationRepositoryImpl) MarkProcessed(ctx context.Context, id uuid.UUID, status entity.CancellationStatus, adminNote *string, processedBy uuid.UUID, processedAt time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.CancellationRequest{}).
		Where("id = ? AND status = ?", id, string(entity.CancellationStatusPending)).
		Updates(map[string]interface{}{
			"status":       string(status),
			"admin_note":   adminNote,
			"processed_by": processedBy,
			"processed_at": processedAt,
		})
	return res.RowsAffected, res.Error
}

func (r *cancellationRepositoryImpl) mapToEntity(m *model.CancellationRequest) *entity.CancellationRequest {
	return &entity.CancellationRequest{
		ID:          m.ID,
		OrderItemID: m.OrderItemID,
		UserID:      m.UserID,
		RequestType: entity.CancellationRequestType(m.RequestType),
		Status:      entity.CancellationStatus(m.Status),
		Reason:      m.Reason,
		Details:     m.Details,
		AdminNote:   m.AdminNote,
		ProcessedAt: m.ProcessedAt,
		ProcessedBy: m.ProcessedBy,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
