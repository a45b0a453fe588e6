package service

import (
	"context"

	"adorder-be/internal/pkg/logger"
	"adorder-be/internal/repository/memory"
	"adorder-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// mockPublisher records published events. Every method is optional so a
// test only asserts on the events it cares about.
type mockPublisher struct {
	mock.Mock
}

func newMockPublisher() *mockPublisher {
	m := &mockPublisher{}
	for method, argc := range map[string]int{
		"PublishOrderConfirmed":        5,
		"PublishOrderStatusChanged":    5,
		"PublishCancellationRequested": 5,
		"PublishCancellationProcessed": 6,
		"PublishMessageCreated":        7,
		"PublishMessagesRead":          5,
		"PublishMessageDeleted":        4,
		"PublishPaymentCompleted":      5,
		"PublishBalanceAdjusted":       6,
		"PublishUserRegistered":        4,
	} {
		args := make([]interface{}, argc)
		for i := range args {
			args[i] = mock.Anything
		}
		m.On(method, args...).Return().Maybe()
	}
	return m
}

func (m *mockPublisher) PublishOrderConfirmed(ctx context.Context, orderId, userId uuid.UUID, totalPrice int64, itemCount int) {
	m.Called(ctx, orderId, userId, totalPrice, itemCount)
}

func (m *mockPublisher) PublishOrderStatusChanged(ctx context.Context, orderId, userId uuid.UUID, from, to string) {
	m.Called(ctx, orderId, userId, from, to)
}

func (m *mockPublisher) PublishCancellationRequested(ctx context.Context, requestId, orderItemId, userId uuid.UUID, requestType string) {
	m.Called(ctx, requestId, orderItemId, userId, requestType)
}

func (m *mockPublisher) PublishCancellationProcessed(ctx context.Context, requestId, orderItemId, userId uuid.UUID, requestType, status string) {
	m.Called(ctx, requestId, orderItemId, userId, requestType, status)
}

func (m *mockPublisher) PublishMessageCreated(ctx context.Context, messageId, orderItemId, ownerId, authorId uuid.UUID, authorRole, message string) {
	m.Called(ctx, messageId, orderItemId, ownerId, authorId, authorRole, message)
}

func (m *mockPublisher) PublishMessagesRead(ctx context.Context, orderItemId, ownerId, readerId uuid.UUID, count int) {
	m.Called(ctx, orderItemId, ownerId, readerId, count)
}

func (m *mockPublisher) PublishMessageDeleted(ctx context.Context, messageId, orderItemId, ownerId uuid.UUID) {
	m.Called(ctx, messageId, orderItemId, ownerId)
}

func (m *mockPublisher) PublishPaymentCompleted(ctx context.Context, paymentId, userId uuid.UUID, pointAmount, newBalance int64) {
	m.Called(ctx, paymentId, userId, pointAmount, newBalance)
}

func (m *mockPublisher) PublishBalanceAdjusted(ctx context.Context, userId, adminId uuid.UUID, amount, newBalance int64, memo string) {
	m.Called(ctx, userId, adminId, amount, newBalance, memo)
}

func (m *mockPublisher) PublishUserRegistered(ctx context.Context, userId uuid.UUID, email, tier string) {
	m.Called(ctx, userId, email, tier)
}

// recordingMail captures outbox payloads instead of handing them to watermill.
type recordingMail struct {
	payloads [][]byte
}

func (r *recordingMail) Publish(_ context.Context, payload []byte) error {
	r.payloads = append(r.payloads, payload)
	return nil
}

func newTestProductService(db *gorm.DB) IProductService {
	return NewProductService(unitofwork.NewRepositoryFactory(db), memory.NewCatalogCache(0))
}

func newTestOrderService(db *gorm.DB, pub *mockPublisher) IOrderService {
	factory := unitofwork.NewRepositoryFactory(db)
	return NewOrderService(factory, newTestProductService(db), pub, logger.NewNopLogger())
}

