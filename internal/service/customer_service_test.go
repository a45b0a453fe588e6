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
	"github.com/stretchr/testify/require"
)

func TestCustomerService_CRUD(t *testing.T) {
	db := testdb.New(t)
	svc := NewCustomerService(unitofwork.NewRepositoryFactory(db))
	ctx := context.Background()
	owner := testdb.Principal(testdb.SeedUser(t, db, entity.UserTierT1, 0))
	other := testdb.Principal(testdb.SeedUser(t, db, entity.UserTierT1, 0))

	placeUrl := "https://map.example.com/place/1"
	created, err := svc.Create(ctx, owner, &dto.CustomerRequest{BusinessName: " Cafe Moon ", PlaceUrl: &placeUrl})
	require.NoError(t, err)
	assert.Equal(t, "Cafe Moon", created.BusinessName)

	_, err = svc.Create(ctx, owner, &dto.CustomerRequest{BusinessName: "  "})
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)

	list, err := svc.List(ctx, owner)
	require.NoError(t, err)
	require.Len(t, list, 1)

	list, err = svc.List(ctx, other)
	require.NoError(t, err)
	assert.Empty(t, list)

	// Another user's customer reads as missing.
	_, err = svc.Get(ctx, other, created.Id)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	_, err = svc.Update(ctx, other, created.Id, &dto.CustomerRequest{BusinessName: "Hijack"})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	updated, err := svc.Update(ctx, owner, created.Id, &dto.CustomerRequest{BusinessName: "Cafe Sun"})
	require.NoError(t, err)
	assert.Equal(t, "Cafe Sun", updated.BusinessName)
	assert.Nil(t, updated.PlaceUrl)

	_, err = svc.AddKeywords(ctx, owner, created.Id, &dto.AddKeywordsRequest{Keywords: []string{"latte"}})
	require.NoError(t, err)

	require.ErrorIs(t, svc.Delete(ctx, other, created.Id), apperror.ErrNotFound)
	require.NoError(t, svc.Delete(ctx, owner, created.Id))

	var keywords int64
	require.NoError(t, db.Model(&model.CustomerKeyword{}).Where("customer_id = ?", created.Id).Count(&keywords).Error)
	assert.Zero(t, keywords)
	_, err = svc.Get(ctx, owner, created.Id)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestCustomerService_Keywords(t *testing.T) {
	db := testdb.New(t)
	svc := NewCustomerService(unitofwork.NewRepositoryFactory(db))
	ctx := context.Background()
	owner := testdb.Principal(testdb.SeedUser(t, db, entity.UserTierT1, 0))

	customer, err := svc.Create(ctx, owner, &dto.CustomerRequest{BusinessName: "Cafe Moon"})
	require.NoError(t, err)

	res, err := svc.AddKeywords(ctx, owner, customer.Id, &dto.AddKeywordsRequest{
		Keywords: []string{"Gangnam Cafe", " ", "gangnam cafe", "brunch"},
	})
	require.NoError(t, err)
	require.Len(t, res.Added, 2)
	assert.Equal(t, "Gangnam Cafe", res.Added[0].Keyword)
	assert.Equal(t, "brunch", res.Added[1].Keyword)
	assert.Equal(t, []string{"gangnam cafe"}, res.Duplicates)

	res, err = svc.AddKeywords(ctx, owner, customer.Id, &dto.AddKeywordsRequest{Keywords: []string{"BRUNCH"}})
	require.NoError(t, err)
	assert.Empty(t, res.Added)
	assert.Equal(t, []string{"BRUNCH"}, res.Duplicates)

	keywords, err := svc.ListKeywords(ctx, owner, customer.Id)
	require.NoError(t, err)
	require.Len(t, keywords, 2)

	detail, err := svc.Get(ctx, owner, customer.Id)
	require.NoError(t, err)
	assert.Len(t, detail.Keywords, 2)

	require.NoError(t, svc.DeleteKeyword(ctx, owner, customer.Id, keywords[0].Id))
	assert.ErrorIs(t, svc.DeleteKeyword(ctx, owner, customer.Id, keywords[0].Id), apperror.ErrNotFound)
	assert.ErrorIs(t, svc.DeleteKeyword(ctx, owner, customer.Id, uuid.New()), apperror.ErrNotFound)

	stranger := testdb.Principal(testdb.SeedUser(t, db, entity.UserTierT3, 0))
	_, err = svc.ListKeywords(ctx, stranger, customer.Id)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
