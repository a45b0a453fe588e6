package service

import (
	"context"
	"testing"

	"adorder-be/internal/dto"
	"adorder-be/internal/entity"
	"adorder-be/internal/model"
	"adorder-be/internal/pkg/apperror"
	"adorder-be/internal/pkg/testdb"
	"adorder-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type messageFixture struct {
	*orderFixture
	svc      IMessageService
	owner    entity.Principal
	admin    entity.Principal
	stranger entity.Principal
	itemId   uuid.UUID
}

func newMessageFixture(t *testing.T) *messageFixture {
	of := newOrderFixture(t, 100000)
	owner := testdb.Principal(of.user)
	res, err := of.svc.ConfirmOrder(context.Background(), owner, of.cart(line("Cafe Moon", 1, 1)))
	require.NoError(t, err)

	var item model.OrderItem
	require.NoError(t, of.db.Where("order_id = ?", res.OrderId).First(&item).Error)

	return &messageFixture{
		orderFixture: of,
		svc:          NewMessageService(unitofwork.NewRepositoryFactory(of.db), of.pub),
		owner:        owner,
		admin:        testdb.Principal(testdb.SeedUser(t, of.db, entity.UserTierAdmin, 0)),
		stranger:     testdb.Principal(testdb.SeedUser(t, of.db, entity.UserTierT2, 0)),
		itemId:       item.Id,
	}
}

func TestMessageService_Thread(t *testing.T) {
	f := newMessageFixture(t)
	ctx := context.Background()

	posted, err := f.svc.PostMessage(ctx, f.owner, f.itemId, &dto.PostMessageRequest{Message: "  please start on monday  "})
	require.NoError(t, err)
	assert.Equal(t, "please start on monday", posted.Message)
	assert.Equal(t, entity.DefaultMessageType, posted.MessageType)
	assert.Equal(t, string(entity.UserRoleUser), posted.AuthorRole)
	f.pub.AssertCalled(t, "PublishMessageCreated", mock.Anything, posted.Id, f.itemId, f.user.Id, f.user.Id, "user", "please start on monday")

	reply, err := f.svc.PostMessage(ctx, f.admin, f.itemId, &dto.PostMessageRequest{Message: "scheduled", MessageType: "status"})
	require.NoError(t, err)
	assert.Equal(t, "admin", reply.AuthorRole)
	assert.Equal(t, "status", reply.MessageType)

	// The owner reading the thread marks only the admin's reply as read.
	thread, err := f.svc.ListMessages(ctx, f.owner, f.itemId)
	require.NoError(t, err)
	require.Len(t, thread, 2)
	for _, m := range thread {
		if m.Id == reply.Id {
			assert.True(t, m.IsRead)
			assert.NotNil(t, m.ReadAt)
		} else {
			assert.False(t, m.IsRead)
		}
	}
	f.pub.AssertCalled(t, "PublishMessagesRead", mock.Anything, f.itemId, f.user.Id, f.user.Id, 1)

	var stored model.OrderItemMessage
	require.NoError(t, f.db.Where("id = ?", reply.Id).First(&stored).Error)
	assert.True(t, stored.IsRead)

	t.Run("empty message", func(t *testing.T) {
		_, err := f.svc.PostMessage(ctx, f.owner, f.itemId, &dto.PostMessageRequest{Message: "   "})
		assert.ErrorIs(t, err, apperror.ErrInvalidArgument)
	})

	t.Run("stranger is forbidden", func(t *testing.T) {
		_, err := f.svc.ListMessages(ctx, f.stranger, f.itemId)
		assert.ErrorIs(t, err, apperror.ErrForbidden)
		_, err = f.svc.PostMessage(ctx, f.stranger, f.itemId, &dto.PostMessageRequest{Message: "hi"})
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})

	t.Run("unknown item", func(t *testing.T) {
		_, err := f.svc.ListMessages(ctx, f.owner, uuid.New())
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})

	t.Run("only the author deletes", func(t *testing.T) {
		err := f.svc.DeleteMessage(ctx, f.owner, f.itemId, reply.Id)
		assert.ErrorIs(t, err, apperror.ErrForbidden)

		require.NoError(t, f.svc.DeleteMessage(ctx, f.owner, f.itemId, posted.Id))
		f.pub.AssertCalled(t, "PublishMessageDeleted", mock.Anything, posted.Id, f.itemId, f.user.Id)

		err = f.svc.DeleteMessage(ctx, f.owner, f.itemId, posted.Id)
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})
}
