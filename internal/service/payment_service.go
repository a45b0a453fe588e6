// FILE: internal/service/payment_service.go
package service

import (
	"context"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"adorder-be/internal/dto"
	"adorder-be/internal/entity"
	"adorder-be/internal/pkg/apperror"
	"adorder-be/internal/pkg/logger"
	"adorder-be/internal/repository/contract"
	"adorder-be/internal/repository/specification"
	"adorder-be/internal/repository/unitofwork"
	"adorder-be/pkg/events"

	"github.com/google/uuid"
)

const (
	defaultPaymentListLimit = 50
	maxPaymentListLimit     = 100
)

type IPaymentService interface {
	CreatePayment(ctx context.Context, principal entity.Principal, req *dto.CreatePaymentRequest, ipAddress, userAgent string) (*dto.CreatePaymentResponse, error)
	HandleCallback(ctx context.Context, req *dto.PaymentCallbackRequest) (*dto.PaymentResponse, error)
	ListPayments(ctx context.Context, principal entity.Principal, req *dto.PaymentListRequest) ([]*dto.PaymentResponse, error)
}

type PaymentConfig struct {
	CallbackSecret string
	MinAmount      int64
}

type paymentService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher events.Publisher
	mailPublisher  IPublisherService
	logger         logger.ILogger
	cfg            PaymentConfig
}

func NewPaymentService(
	uowFactory unitofwork.RepositoryFactory,
	eventPublisher events.Publisher,
	mailPublisher IPublisherService,
	log logger.ILogger,
	cfg PaymentConfig,
) IPaymentService {
	return &paymentService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		mailPublisher:  mailPublisher,
		logger:         log,
		cfg:            cfg,
	}
}

// CallbackSignature is hex(SHA512(transactionId + status + amount + secret)).
func CallbackSignature(transactionId uuid.UUID, status string, amount int64, secret string) string {
	input := transactionId.String() + status + fmt.Sprintf("%d", amount) + secret
	hash := sha512.Sum512([]byte(input))
	return hex.EncodeToString(hash[:])
}

func newPgOrderId(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("ORDER-%d-%s", now.UnixMilli(), suffix)
}

func (s *paymentService) CreatePayment(ctx context.Context, principal entity.Principal, req *dto.CreatePaymentRequest, ipAddress, userAgent string) (*dto.CreatePaymentResponse, error) {
	if req.Amount < s.cfg.MinAmount {
		return nil, apperror.InvalidArgument(fmt.Sprintf("minimum payment amount is %d", s.cfg.MinAmount))
	}
	method := strings.TrimSpace(req.PaymentMethod)
	if method == "" {
		method = entity.PaymentMethodTest
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Internal(err)
	}
	defer uow.Rollback()

	now := time.Now()
	payment := &entity.PaymentTransaction{
		UserId:        principal.UserID,
		Amount:        req.Amount,
		PointAmount:   req.Amount,
		Status:        entity.PaymentStatusPending,
		PaymentMethod: method,
		PgOrderId:     newPgOrderId(now),
		PgResponse:    map[string]interface{}{},
		IpAddress:     ipAddress,
		UserAgent:     userAgent,
	}
	if err := uow.PaymentRepository().Create(ctx, payment); err != nil {
		return nil, apperror.Internal(err)
	}

	res := &dto.CreatePaymentResponse{
		TransactionId: payment.Id,
		PgOrderId:     payment.PgOrderId,
		Amount:        payment.Amount,
		PointAmount:   payment.PointAmount,
		Status:        string(payment.Status),
	}

	if method != entity.PaymentMethodTest {
		if err := uow.Commit(); err != nil {
			return nil, apperror.Internal(err)
		}
		return res, nil
	}

	// Test payments settle immediately.
	pgTxId := "TEST-" + payment.Id.String()
	payment.PgTransactionId = &pgTxId
	payment.PgResponse = map[string]interface{}{"mode": "test"}
	entry, err := s.complete(ctx, uow, payment, now)
	if err != nil {
		return nil, err
	}
	email := s.userEmail(ctx, uow.UserRepository(), payment.UserId)
	if err := uow.Commit(); err != nil {
		return nil, apperror.Internal(err)
	}

	s.afterCompleted(ctx, payment, entry.BalanceAfter, email)
	res.Status = string(payment.Status)
	res.NewBalance = &entry.BalanceAfter
	return res, nil
}

func (s *paymentService) HandleCallback(ctx context.Context, req *dto.PaymentCallbackRequest) (*dto.PaymentResponse, error) {
	// 1. Signature
	if s.cfg.CallbackSecret != "" {
		expected := CallbackSignature(req.TransactionId, req.Status, req.Amount, s.cfg.CallbackSecret)
		if subtle.ConstantTimeCompare([]byte(expected), []byte(strings.ToLower(req.Signature))) != 1 {
			s.logger.Warn("PAYMENT", "Callback signature mismatch", map[string]interface{}{"transaction_id": req.TransactionId.String()})
			return nil, apperror.Unauthenticated("invalid callback signature")
		}
	}
	status := entity.PaymentStatus(req.Status)
	if status != entity.PaymentStatusCompleted && status != entity.PaymentStatusFailed {
		return nil, apperror.InvalidArgument("status must be completed or failed")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Internal(err)
	}
	defer uow.Rollback()

	// 2. Transaction must exist and still be pending
	payment, err := uow.PaymentRepository().FindOneForUpdate(ctx, specification.ByID{ID: req.TransactionId})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if payment == nil {
		return nil, apperror.NotFound("payment transaction not found")
	}
	if payment.Status != entity.PaymentStatusPending {
		if payment.Status == status {
			// Repeated notification for the settled status.
			res := toPaymentResponse(payment)
			return &res, nil
		}
		return nil, apperror.Conflict(apperror.ReasonAlreadyProcessed, "payment has already been settled")
	}
	if req.Amount != payment.Amount {
		return nil, apperror.InvalidArgument("amount does not match the payment transaction")
	}

	// 3. Settle
	now := time.Now()
	if req.PgTransactionId != "" {
		pgTxId := req.PgTransactionId
		payment.PgTransactionId = &pgTxId
	}
	if req.PgResponse != nil {
		payment.PgResponse = req.PgResponse
	}

	if status == entity.PaymentStatusFailed {
		msg := "payment failed"
		if m, ok := req.PgResponse["message"].(string); ok && m != "" {
			msg = m
		}
		payment.Status = entity.PaymentStatusFailed
		payment.FailedAt = &now
		payment.ErrorMessage = &msg
		if err := uow.PaymentRepository().Update(ctx, payment); err != nil {
			return nil, apperror.Internal(err)
		}
		if err := uow.Commit(); err != nil {
			return nil, apperror.Internal(err)
		}
		s.logger.Info("PAYMENT", "Payment failed", map[string]interface{}{"transaction_id": payment.Id.String()})
		res := toPaymentResponse(payment)
		return &res, nil
	}

	entry, err := s.complete(ctx, uow, payment, now)
	if err != nil {
		return nil, err
	}
	email := s.userEmail(ctx, uow.UserRepository(), payment.UserId)
	if err := uow.Commit(); err != nil {
		return nil, apperror.Internal(err)
	}
	s.afterCompleted(ctx, payment, entry.BalanceAfter, email)

	res := toPaymentResponse(payment)
	return &res, nil
}

// complete marks the payment completed and credits the points in uow's transaction.
func (s *paymentService) complete(ctx context.Context, uow unitofwork.UnitOfWork, payment *entity.PaymentTransaction, now time.Time) (*entity.LedgerEntry, error) {
	payment.Status = entity.PaymentStatusCompleted
	payment.CompletedAt = &now
	if err := uow.PaymentRepository().Update(ctx, payment); err != nil {
		return nil, apperror.Internal(err)
	}
	paymentId := payment.Id
	entry, err := AppendEntry(ctx, uow.LedgerRepository(), LedgerWrite{
		UserId:               payment.UserId,
		Type:                 entity.TransactionTypeCharge,
		Amount:               payment.PointAmount,
		PaymentTransactionId: &paymentId,
		Memo:                 "Point charge " + payment.PgOrderId,
	})
	if err != nil {
		return nil, apperror.InternalReason(apperror.ReasonLedgerWriteFailed, err)
	}
	return entry, nil
}

func (s *paymentService) userEmail(ctx context.Context, repo contract.UserRepository, userId uuid.UUID) string {
	user, err := repo.FindOne(ctx, specification.ByID{ID: userId})
	if err != nil || user == nil {
		return ""
	}
	return user.Email
}

func (s *paymentService) afterCompleted(ctx context.Context, payment *entity.PaymentTransaction, newBalance int64, email string) {
	s.logger.Info("PAYMENT", "Payment completed", map[string]interface{}{
		"transaction_id": payment.Id.String(),
		"user_id":        payment.UserId.String(),
		"points":         payment.PointAmount,
	})
	s.eventPublisher.PublishPaymentCompleted(ctx, payment.Id, payment.UserId, payment.PointAmount, newBalance)
	enqueueMail(ctx, s.mailPublisher, s.logger, dto.MailJob{
		Kind:        dto.MailKindPaymentReceipt,
		ToEmail:     email,
		PgOrderId:   payment.PgOrderId,
		Amount:      payment.Amount,
		PointAmount: payment.PointAmount,
		NewBalance:  newBalance,
	})
}

func (s *paymentService) ListPayments(ctx context.Context, principal entity.Principal, req *dto.PaymentListRequest) ([]*dto.PaymentResponse, error) {
	if req.Status != "" && !entity.PaymentStatus(req.Status).Valid() {
		return nil, apperror.InvalidArgument("invalid status filter")
	}
	limit := req.Limit
	if limit <= 0 {
		limit = defaultPaymentListLimit
	}
	if limit > maxPaymentListLimit {
		limit = maxPaymentListLimit
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	payments, err := uow.PaymentRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: principal.UserID},
		specification.ByStatus{Status: req.Status},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit},
	)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	res := make([]*dto.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		r := toPaymentResponse(p)
		res = append(res, &r)
	}
	return res, nil
}

func toPaymentResponse(p *entity.PaymentTransaction) dto.PaymentResponse {
	return dto.PaymentResponse{
		Id:              p.Id,
		Amount:          p.Amount,
		PointAmount:     p.PointAmount,
		Status:          string(p.Status),
		PaymentMethod:   p.PaymentMethod,
		PgOrderId:       p.PgOrderId,
		PgTransactionId: p.PgTransactionId,
		ErrorMessage:    p.ErrorMessage,
		CompletedAt:     p.CompletedAt,
		FailedAt:        p.FailedAt,
		CreatedAt:       p.CreatedAt,
	}
}
