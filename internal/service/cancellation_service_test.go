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
)

type cancellationFixture struct {
	*orderFixture
	mail   *recordingMail
	svc    ICancellationService
	owner  entity.Principal
	admin  entity.Principal
	itemId uuid.UUID
}

func newCancellationFixture(t *testing.T, refundCredit bool) *cancellationFixture {
	of := newOrderFixture(t, 100000)
	owner := testdb.Principal(of.user)
	res, err := of.svc.ConfirmOrder(context.Background(), owner, of.cart(line("Cafe Moon", 5, 2)))
	require.NoError(t, err)

	var item model.OrderItem
	require.NoError(t, of.db.Where("order_id = ?", res.OrderId).First(&item).Error)

	mail := &recordingMail{}
	return &cancellationFixture{
		orderFixture: of,
		mail:         mail,
		svc: NewCancellationService(
			unitofwork.NewRepositoryFactory(of.db),
			of.pub,
			mail,
			logger.NewNopLogger(),
			refundCredit,
		),
		owner:  owner,
		admin:  testdb.Principal(testdb.SeedUser(t, of.db, entity.UserTierAdmin, 0)),
		itemId: item.Id,
	}
}

func (f *cancellationFixture) request(t *testing.T, requestType string) *dto.CancellationResponse {
	res, err := f.svc.CreateRequest(context.Background(), f.owner, &dto.CreateCancellationRequest{
		OrderItemId: f.itemId,
		RequestType: requestType,
		Reason:      "campaign ended early",
	})
	require.NoError(t, err)
	return res
}

func (f *cancellationFixture) stored(t *testing.T, id uuid.UUID) model.CancellationRequest {
	var row model.CancellationRequest
	require.NoError(t, f.db.Where("id = ?", id).First(&row).Error)
	return row
}

func (f *cancellationFixture) requestCount(t *testing.T) int64 {
	var n int64
	require.NoError(t, f.db.Model(&model.CancellationRequest{}).Where("order_item_id = ?", f.itemId).Count(&n).Error)
	return n
}

func (f *cancellationFixture) itemStatus(t *testing.T) string {
	var item model.OrderItem
	require.NoError(t, f.db.Where("id = ?", f.itemId).First(&item).Error)
	return item.Status
}

func TestCreateRequest(t *testing.T) {
	f := newCancellationFixture(t, true)

	t.Run("invalid type", func(t *testing.T) {
		_, err := f.svc.CreateRequest(context.Background(), f.owner, &dto.CreateCancellationRequest{
			OrderItemId: f.itemId, RequestType: "delete", Reason: "x",
		})
		assert.ErrorIs(t, err, apperror.ErrInvalidArgument)
	})

	t.Run("unknown item", func(t *testing.T) {
		_, err := f.svc.CreateRequest(context.Background(), f.owner, &dto.CreateCancellationRequest{
			OrderItemId: uuid.New(), RequestType: "pause", Reason: "x",
		})
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})

	t.Run("not the owner", func(t *testing.T) {
		other := testdb.Principal(testdb.SeedUser(t, f.db, entity.UserTierT1, 0))
		_, err := f.svc.CreateRequest(context.Background(), other, &dto.CreateCancellationRequest{
			OrderItemId: f.itemId, RequestType: "pause", Reason: "x",
		})
		assert.ErrorIs(t, err, apperror.ErrForbidden)
		assert.Zero(t, f.requestCount(t))
	})

	t.Run("single pending request per item", func(t *testing.T) {
		first := f.request(t, "pause")
		assert.Equal(t, "pending", first.Status)
		f.pub.AssertCalled(t, "PublishCancellationRequested", mock.Anything, first.Id, f.itemId, f.owner.UserID, "pause")

		_, err := f.svc.CreateRequest(context.Background(), f.owner, &dto.CreateCancellationRequest{
			OrderItemId: f.itemId, RequestType: "cancel", Reason: "changed my mind",
		})
		assert.ErrorIs(t, err, &apperror.Error{Kind: apperror.KindConflict, Reason: apperror.ReasonAlreadyPending})

		mine, err := f.svc.ListMyRequests(context.Background(), f.owner, &f.itemId)
		require.NoError(t, err)
		assert.Len(t, mine, 1)
	})
}

func TestProcessRequest_ApproveRefundCreditsWallet(t *testing.T) {
	f := newCancellationFixture(t, true)
	req := f.request(t, "refund")
	note := "approved by ops"

	res, err := f.svc.ProcessRequest(context.Background(), f.admin, req.Id, &dto.ProcessCancellationRequest{Action: "approve", AdminNotes: &note})
	require.NoError(t, err)
	assert.Equal(t, "Request approved", res.Message)
	assert.Equal(t, "approved", res.Request.Status)
	require.NotNil(t, res.Request.ProcessedBy)
	assert.Equal(t, f.admin.UserID, *res.Request.ProcessedBy)
	require.NotNil(t, res.Request.AdminNote)
	assert.Equal(t, note, *res.Request.AdminNote)

	assert.Equal(t, "refunded", f.itemStatus(t))
	assert.Equal(t, int64(100000), testdb.Balance(t, f.db, f.user.Id))

	var refund model.LedgerEntry
	require.NoError(t, f.db.Where("user_id = ? AND transaction_type = ?", f.user.Id, "refund").First(&refund).Error)
	assert.Equal(t, int64(70000), refund.Amount)

	f.pub.AssertCalled(t, "PublishCancellationProcessed", mock.Anything, req.Id, f.itemId, f.user.Id, "refund", "approved")

	require.Len(t, f.mail.payloads, 1)
	var job dto.MailJob
	require.NoError(t, json.Unmarshal(f.mail.payloads[0], &job))
	assert.Equal(t, dto.MailKindCancellationProcessed, job.Kind)
	assert.Equal(t, f.user.Email, job.ToEmail)
	assert.Equal(t, "approved", job.Status)

	other := testdb.Principal(testdb.SeedUser(t, f.db, entity.UserTierAdmin, 0))
	overwrite := "second opinion"
	_, err = f.svc.ProcessRequest(context.Background(), other, req.Id, &dto.ProcessCancellationRequest{Action: "reject", AdminNotes: &overwrite})
	assert.ErrorIs(t, err, &apperror.Error{Kind: apperror.KindConflict, Reason: apperror.ReasonAlreadyProcessed})

	row := f.stored(t, req.Id)
	assert.Equal(t, "approved", row.Status)
	require.NotNil(t, row.AdminNote)
	assert.Equal(t, note, *row.AdminNote)
	require.NotNil(t, row.ProcessedBy)
	assert.Equal(t, f.admin.UserID, *row.ProcessedBy)
	assert.NotNil(t, row.ProcessedAt)
	assert.Equal(t, "refunded", f.itemStatus(t))
	assert.Equal(t, int64(100000), testdb.Balance(t, f.db, f.user.Id))
}

func TestProcessRequest_ApproveCancelMarksItemCancelled(t *testing.T) {
	f := newCancellationFixture(t, true)
	req := f.request(t, "cancel")

	res, err := f.svc.ProcessRequest(context.Background(), f.admin, req.Id, &dto.ProcessCancellationRequest{Action: "approve"})
	require.NoError(t, err)
	assert.Equal(t, "approved", res.Request.Status)
	assert.Equal(t, "cancelled", f.itemStatus(t))

	var refunds int64
	require.NoError(t, f.db.Model(&model.LedgerEntry{}).Where("user_id = ? AND transaction_type = ?", f.user.Id, "refund").Count(&refunds).Error)
	assert.Zero(t, refunds)
	assert.Equal(t, int64(30000), testdb.Balance(t, f.db, f.user.Id))
}

func TestProcessRequest_MissingItemLeavesRequestPending(t *testing.T) {
	f := newCancellationFixture(t, true)
	req := f.request(t, "refund")
	require.NoError(t, f.db.Where("id = ?", f.itemId).Delete(&model.OrderItem{}).Error)

	_, err := f.svc.ProcessRequest(context.Background(), f.admin, req.Id, &dto.ProcessCancellationRequest{Action: "approve"})
	assert.ErrorIs(t, err, &apperror.Error{Kind: apperror.KindPartialFailure, Reason: apperror.ReasonItemUpdateFailed})

	row := f.stored(t, req.Id)
	assert.Equal(t, "pending", row.Status)
	assert.Nil(t, row.ProcessedAt)
	assert.Nil(t, row.ProcessedBy)
	assert.Equal(t, int64(30000), testdb.Balance(t, f.db, f.user.Id))
	f.pub.AssertNotCalled(t, "PublishCancellationProcessed", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestProcessRequest_RefundWithoutCredit(t *testing.T) {
	f := newCancellationFixture(t, false)
	req := f.request(t, "refund")

	_, err := f.svc.ProcessRequest(context.Background(), f.admin, req.Id, &dto.ProcessCancellationRequest{Action: "approve"})
	require.NoError(t, err)

	assert.Equal(t, "refunded", f.itemStatus(t))
	assert.Equal(t, int64(30000), testdb.Balance(t, f.db, f.user.Id))
}

func TestProcessRequest_RejectLeavesItemAlone(t *testing.T) {
	f := newCancellationFixture(t, true)
	req := f.request(t, "cancel")

	res, err := f.svc.ProcessRequest(context.Background(), f.admin, req.Id, &dto.ProcessCancellationRequest{Action: "reject"})
	require.NoError(t, err)
	assert.Equal(t, "Request rejected", res.Message)
	assert.Equal(t, "rejected", res.Request.Status)
	assert.Equal(t, "received", f.itemStatus(t))

	// A new request is allowed once nothing is pending.
	again := f.request(t, "pause")
	assert.Equal(t, "pending", again.Status)
}

func TestProcessRequest_Guards(t *testing.T) {
	f := newCancellationFixture(t, true)
	req := f.request(t, "pause")

	_, err := f.svc.ProcessRequest(context.Background(), f.owner, req.Id, &dto.ProcessCancellationRequest{Action: "approve"})
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	_, err = f.svc.ProcessRequest(context.Background(), f.admin, req.Id, &dto.ProcessCancellationRequest{Action: "maybe"})
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)

	_, err = f.svc.ProcessRequest(context.Background(), f.admin, uuid.New(), &dto.ProcessCancellationRequest{Action: "approve"})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = f.svc.ListRequests(context.Background(), f.owner, &dto.AdminCancellationListRequest{})
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	page, err := f.svc.ListRequests(context.Background(), f.admin, &dto.AdminCancellationListRequest{Status: "pending", Type: "pause"})
	require.NoError(t, err)
	require.Equal(t, int64(1), page.Total)
	require.NotNil(t, page.Items[0].OrderItem)
	assert.Equal(t, "Cafe Moon", page.Items[0].OrderItem.ClientName)
	assert.Equal(t, "Place Traffic", page.Items[0].OrderItem.ProductName)

	_, err = f.svc.ListRequests(context.Background(), f.admin, &dto.AdminCancellationListRequest{Type: "delete"})
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)

	_, err = f.svc.ProcessRequest(context.Background(), f.admin, req.Id, &dto.ProcessCancellationRequest{Action: "approve"})
	require.NoError(t, err)
	assert.Equal(t, "pause", f.itemStatus(t))
}
