package implementation

import (
	"context"
	"errors"

	"adorder-be/internal/entity"
	"adorder-be/internal/mapper"
	"adorder-be/internal/model"
	"adorder-be/internal/repository/contract"
	"adorder-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type paymentRepositoryImpl struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) contract.PaymentRepository {
	return &paymentRepositoryImpl{db: db}
}

func (r *paymentRepositoryImpl) Create(ctx context.Context, payment *entity.PaymentTransaction) error {
	if payment.Id == uuid.Nil {
		payment.Id = uuid.New()
	}
	m := r.toModel(payment)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	payment.CreatedAt = m.CreatedAt
	payment.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *paymentRepositoryImpl) Update(ctx context.Context, payment *entity.PaymentTransaction) error {
	return r.db.WithContext(ctx).Model(&model.PaymentTransaction{}).
		Where("id = ?", payment.Id).
		Updates(map[string]interface{}{
			"status":            string(payment.Status),
			"pg_transaction_id": payment.PgTransactionId,
			"pg_response":       mapper.ToJSON(payment.PgResponse),
			"error_message":     payment.ErrorMessage,
			"completed_at":      payment.CompletedAt,
			"failed_at":         payment.FailedAt,
		}).Error
}

func (r *paymentRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PaymentTransaction, error) {
	return r.findOne(r.db.WithContext(ctx), specs...)
}

func (r *paymentRepositoryImpl) FindOneForUpdate(ctx context.Context, specs ...specification.Specification) (*entity.PaymentTransaction, error) {
	return r.findOne(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), specs...)
}

func (r *paymentRepositoryImpl) findOne(db *gorm.DB, specs ...specification.Specification) (*entity.PaymentTransaction, error) {
	var m model.PaymentTransaction
	if err := specification.ApplyAll(db, specs...).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapToEntity(&m), nil
}

func (r *paymentRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PaymentTransaction, error) {
	var rows []*model.PaymentTransaction
	if err := specification.ApplyAll(r.db.WithContext(ctx), specs...).Find(&rows).Error; err != nil {
		return nil, err
	}
	payments := make([]*entity.PaymentTransaction, 0, len(rows))
	for _, m := range rows {
		payments = append(payments, r.mapToEntity(m))
	}
	return payments, nil
}

func (r *paymentRepositoryImpl) toModel(p *entity.PaymentTransaction) *model.PaymentTransaction {
	return &model.PaymentTransaction{
		Id:              p.Id,
		UserId:          p.UserId,
		Amount:          p.Amount,
		PointAmount:     p.PointAmount,
		Status:          string(p.Status),
		PaymentMethod:   p.PaymentMethod,
		PgProvider:      p.PgProvider,
		PgOrderId:       p.PgOrderId,
		PgTransactionId: p.PgTransactionId,
		PgResponse:      mapper.ToJSON(p.PgResponse),
		IpAddress:       p.IpAddress,
		UserAgent:       p.UserAgent,
		ErrorMessage:    p.ErrorMessage,
		CompletedAt:     p.CompletedAt,
		FailedAt:        p.FailedAt,
	}
}

func (r *paymentRepositoryImpl) mapToEntity(m *model.PaymentTransaction) *entity.PaymentTransaction {
	return &entity.PaymentTransaction{
		Id:              m.Id,
		UserId:          m.UserId,
		Amount:          m.Amount,
		PointAmount:     m.PointAmount,
		Status:          entity.PaymentStatus(m.Status),
		PaymentMethod:   m.PaymentMethod,
		PgProvider:      m.PgProvider,
		PgOrderId:       m.PgOrderId,
		PgTransactionId: m.PgTransactionId,
		PgResponse:      mapper.FromJSON(m.PgResponse),
		IpAddress:       m.IpAddress,
		UserAgent:       m.UserAgent,
		ErrorMessage:    m.ErrorMessage,
		CompletedAt:     m.CompletedAt,
		FailedAt:        m.FailedAt,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
