package service

import (
	"context"
	"encoding/json"
	"testing"

	"adorder-be/internal/dto"
	"adorder-be/internal/entity"
	"adorder-be/internal/model"
	"adorder-be/internal/pkg/apperror"
	"adorder-be/internal/pkg/logger"
	"adorder-be/internal/pkg/testdb"
	"adorder-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testCallbackSecret = "callback-secret"

func newTestPaymentService(db *gorm.DB, pub *mockPublisher, mail *recordingMail) IPaymentService {
	return NewPaymentService(unitofwork.NewRepositoryFactory(db), pub, mail, logger.NewNopLogger(), PaymentConfig{
		CallbackSecret: testCallbackSecret,
		MinAmount:      1000,
	})
}

func signed(txId uuid.UUID, status string, amount int64) *dto.PaymentCallbackRequest {
	return &dto.PaymentCallbackRequest{
		TransactionId:   txId,
		PgTransactionId: "PG-" + txId.String()[:8],
		Status:          status,
		Amount:          amount,
		Signature:       CallbackSignature(txId, status, amount, testCallbackSecret),
	}
}

func TestCallbackSignature(t *testing.T) {
	id := uuid.MustParse("8a6e0804-2bd0-4672-b79d-d97027f9071a")
	sig := CallbackSignature(id, "completed", 50000, "s3cret")

	assert.Len(t, sig, 128)
	assert.Equal(t, sig, CallbackSignature(id, "completed", 50000, "s3cret"))
	assert.NotEqual(t, sig, CallbackSignature(id, "completed", 50001, "s3cret"))
	assert.NotEqual(t, sig, CallbackSignature(id, "failed", 50000, "s3cret"))
}

func TestCreatePayment_TestMethodSettlesImmediately(t *testing.T) {
	db := testdb.New(t)
	pub, mail := newMockPublisher(), &recordingMail{}
	svc := newTestPaymentService(db, pub, mail)
	user := testdb.SeedUser(t, db, entity.UserTierT1, 0)

	res, err := svc.CreatePayment(context.Background(), testdb.Principal(user), &dto.CreatePaymentRequest{Amount: 50000}, "127.0.0.1", "go-test")
	require.NoError(t, err)
	assert.Equal(t, "completed", res.Status)
	assert.Regexp(t, `^ORDER-\d+-[0-9A-F]{8}$`, res.PgOrderId)
	require.NotNil(t, res.NewBalance)
	assert.Equal(t, int64(50000), *res.NewBalance)
	assert.Equal(t, int64(50000), testdb.Balance(t, db, user.Id))

	var entry model.LedgerEntry
	require.NoError(t, db.Where("user_id = ? AND transaction_type = ?", user.Id, "charge").First(&entry).Error)
	require.NotNil(t, entry.PaymentTransactionId)
	assert.Equal(t, res.TransactionId, *entry.PaymentTransactionId)

	pub.AssertCalled(t, "PublishPaymentCompleted", mock.Anything, res.TransactionId, user.Id, int64(50000), int64(50000))
	require.Len(t, mail.payloads, 1)
	var job dto.MailJob
	require.NoError(t, json.Unmarshal(mail.payloads[0], &job))
	assert.Equal(t, dto.MailKindPaymentReceipt, job.Kind)
	assert.Equal(t, res.PgOrderId, job.PgOrderId)
}

func TestCreatePayment_BelowMinimum(t *testing.T) {
	db := testdb.New(t)
	svc := newTestPaymentService(db, newMockPublisher(), &recordingMail{})
	user := testdb.SeedUser(t, db, entity.UserTierT1, 0)

	_, err := svc.CreatePayment(context.Background(), testdb.Principal(user), &dto.CreatePaymentRequest{Amount: 999}, "", "")
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)
}

func TestHandleCallback(t *testing.T) {
	db := testdb.New(t)
	pub, mail := newMockPublisher(), &recordingMail{}
	svc := newTestPaymentService(db, pub, mail)
	user := testdb.SeedUser(t, db, entity.UserTierT1, 0)
	principal := testdb.Principal(user)

	pending := func(t *testing.T) *dto.CreatePaymentResponse {
		res, err := svc.CreatePayment(context.Background(), principal, &dto.CreatePaymentRequest{Amount: 20000, PaymentMethod: "card"}, "", "")
		require.NoError(t, err)
		require.Equal(t, "pending", res.Status)
		require.Nil(t, res.NewBalance)
		return res
	}

	t.Run("bad signature", func(t *testing.T) {
		p := pending(t)
		req := signed(p.TransactionId, "completed", 20000)
		req.Signature = CallbackSignature(p.TransactionId, "completed", 20000, "wrong")
		_, err := svc.HandleCallback(context.Background(), req)
		assert.ErrorIs(t, err, apperror.ErrUnauthenticated)
	})

	t.Run("unknown transaction", func(t *testing.T) {
		_, err := svc.HandleCallback(context.Background(), signed(uuid.New(), "completed", 20000))
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})

	t.Run("amount mismatch", func(t *testing.T) {
		p := pending(t)
		_, err := svc.HandleCallback(context.Background(), signed(p.TransactionId, "completed", 19999))
		assert.ErrorIs(t, err, apperror.ErrInvalidArgument)
	})

	t.Run("completed credits once", func(t *testing.T) {
		before := testdb.Balance(t, db, user.Id)
		p := pending(t)

		res, err := svc.HandleCallback(context.Background(), signed(p.TransactionId, "completed", 20000))
		require.NoError(t, err)
		assert.Equal(t, "completed", res.Status)
		require.NotNil(t, res.CompletedAt)
		assert.Equal(t, before+20000, testdb.Balance(t, db, user.Id))

		// Gateway retry of the same notification
		res, err = svc.HandleCallback(context.Background(), signed(p.TransactionId, "completed", 20000))
		require.NoError(t, err)
		assert.Equal(t, "completed", res.Status)
		assert.Equal(t, before+20000, testdb.Balance(t, db, user.Id))

		_, err = svc.HandleCallback(context.Background(), signed(p.TransactionId, "failed", 20000))
		assert.ErrorIs(t, err, &apperror.Error{Kind: apperror.KindConflict, Reason: apperror.ReasonAlreadyProcessed})
	})

	t.Run("failed records the gateway message", func(t *testing.T) {
		before := testdb.Balance(t, db, user.Id)
		p := pending(t)
		req := signed(p.TransactionId, "failed", 20000)
		req.PgResponse = map[string]interface{}{"message": "card declined"}

		res, err := svc.HandleCallback(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "failed", res.Status)
		require.NotNil(t, res.ErrorMessage)
		assert.Equal(t, "card declined", *res.ErrorMessage)
		assert.Equal(t, before, testdb.Balance(t, db, user.Id))
	})

	list, err := svc.ListPayments(context.Background(), principal, &dto.PaymentListRequest{Status: "completed"})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = svc.ListPayments(context.Background(), principal, &dto.PaymentListRequest{Status: "bogus"})
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)
}
