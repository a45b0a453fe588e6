package service

import (
	"context"
	"testing"

	"adorder-be/internal/dto"
	"adorder-be/internal/entity"
	"adorder-be/internal/pkg/apperror"
	"adorder-be/internal/pkg/testdb"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeUnitPrice(t *testing.T) {
	cases := []struct {
		base       int64
		multiplier string
		want       int64
	}{
		{1000, "1.10", 1100},
		{1000, "1.7", 1700},
		{333, "1.5", 500},
		{335, "1.3", 436},
		{999, "1", 999},
		{0, "1.5", 0},
	}
	for _, tc := range cases {
		got := ComputeUnitPrice(tc.base, decimal.RequireFromString(tc.multiplier))
		assert.Equal(t, tc.want, got, "%d x %s", tc.base, tc.multiplier)
	}
}

func TestValidateItemDetails(t *testing.T) {
	product := &entity.Product{
		InputDefs: []*entity.ProductInputDef{
			{Required: true, Template: &entity.InputFieldTemplate{FieldKey: "place_url"}},
			{Required: true, Template: &entity.InputFieldTemplate{FieldKey: "keyword"}},
			{Required: false, Template: &entity.InputFieldTemplate{FieldKey: "memo"}},
		},
	}

	require.NoError(t, ValidateItemDetails(product, map[string]interface{}{
		"place_url": "https://map.example.com/1",
		"keyword":   "brunch",
	}))

	err := ValidateItemDetails(product, map[string]interface{}{"place_url": "  ", "memo": "x"})
	require.ErrorIs(t, err, apperror.ErrInvalidArgument)
	assert.Equal(t, []string{"place_url", "keyword"}, apperror.As(err).Details["fields"])
}

func TestProductService_PricingAndVisibility(t *testing.T) {
	db := testdb.New(t)
	svc := newTestProductService(db)
	ctx := context.Background()
	admin := testdb.Principal(testdb.SeedUser(t, db, entity.UserTierAdmin, 0))
	t2 := testdb.Principal(testdb.SeedUser(t, db, entity.UserTierT2, 0))

	active := testdb.SeedProduct(t, db, "Place Traffic", 1000)
	inactive := false
	hidden, err := svc.CreateProduct(ctx, &dto.ProductRequest{Name: "Blog Review", BasePrice: 2000, IsActive: &inactive})
	require.NoError(t, err)

	// No stored rule: the built-in tier default applies.
	product, err := svc.GetProduct(ctx, t2, active.Id)
	require.NoError(t, err)
	assert.Equal(t, int64(1300), product.UnitPrice)

	_, err = svc.UpsertPricingRule(ctx, "T2", &dto.PricingRuleRequest{Multiplier: "1.25"})
	require.NoError(t, err)
	product, err = svc.GetProduct(ctx, t2, active.Id)
	require.NoError(t, err)
	assert.Equal(t, int64(1250), product.UnitPrice)

	off := false
	_, err = svc.UpsertPricingRule(ctx, "T2", &dto.PricingRuleRequest{Multiplier: "1.25", Active: &off})
	require.NoError(t, err)
	product, err = svc.GetProduct(ctx, t2, active.Id)
	require.NoError(t, err)
	assert.Equal(t, int64(1300), product.UnitPrice)

	_, err = svc.UpsertPricingRule(ctx, "T9", &dto.PricingRuleRequest{Multiplier: "1.1"})
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)
	_, err = svc.UpsertPricingRule(ctx, "T3", &dto.PricingRuleRequest{Multiplier: "-1"})
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)

	rules, err := svc.ListPricingRules(ctx)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.False(t, rules[0].Active)

	list, err := svc.ListProducts(ctx, t2, &dto.ProductListRequest{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, active.Id, list[0].Id)

	list, err = svc.ListProducts(ctx, admin, &dto.ProductListRequest{})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = svc.GetProduct(ctx, t2, hidden.Id)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	_, err = svc.GetProduct(ctx, admin, hidden.Id)
	assert.NoError(t, err)

	// Writes invalidate cached listings.
	on := true
	_, err = svc.UpdateProduct(ctx, hidden.Id, &dto.ProductRequest{Name: "Blog Review", BasePrice: 2000, IsActive: &on})
	require.NoError(t, err)
	list, err = svc.ListProducts(ctx, t2, &dto.ProductListRequest{})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = svc.UpdateProduct(ctx, uuid.New(), &dto.ProductRequest{Name: "x"})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestProductService_InputDefs(t *testing.T) {
	db := testdb.New(t)
	svc := newTestProductService(db)
	ctx := context.Background()
	product := testdb.SeedProduct(t, db, "Place Traffic", 1000)

	placeUrl, err := svc.CreateTemplate(ctx, &dto.TemplateRequest{FieldKey: "place_url", Label: "Place URL", FieldType: "URL"})
	require.NoError(t, err)
	keyword, err := svc.CreateTemplate(ctx, &dto.TemplateRequest{FieldKey: "keyword", Label: "Keyword", FieldType: "TEXT"})
	require.NoError(t, err)

	_, err = svc.CreateTemplate(ctx, &dto.TemplateRequest{FieldKey: "keyword", Label: "Again", FieldType: "TEXT"})
	assert.ErrorIs(t, err, apperror.ErrConflict)

	templates, err := svc.ListTemplates(ctx)
	require.NoError(t, err)
	require.Len(t, templates, 2)
	assert.Equal(t, "keyword", templates[0].FieldKey)

	res, err := svc.SetInputDefs(ctx, product.Id, &dto.SetInputDefsRequest{InputDefs: []dto.InputDefRequest{
		{TemplateId: placeUrl.TemplateId, Required: true, SortOrder: 1},
		{TemplateId: keyword.TemplateId, Required: false, SortOrder: 2},
	}})
	require.NoError(t, err)
	require.Len(t, res.InputDefs, 2)

	loaded, err := svc.LoadProduct(ctx, product.Id)
	require.NoError(t, err)
	require.Len(t, loaded.InputDefs, 2)
	assert.Error(t, ValidateItemDetails(loaded, map[string]interface{}{"keyword": "brunch"}))
	assert.NoError(t, ValidateItemDetails(loaded, map[string]interface{}{"place_url": "https://map.example.com/1"}))

	t.Run("unknown template", func(t *testing.T) {
		_, err := svc.SetInputDefs(ctx, product.Id, &dto.SetInputDefsRequest{InputDefs: []dto.InputDefRequest{
			{TemplateId: uuid.New()},
		}})
		assert.ErrorIs(t, err, apperror.ErrInvalidArgument)
	})

	t.Run("min above max", func(t *testing.T) {
		lo, hi := 3, 1
		_, err := svc.SetInputDefs(ctx, product.Id, &dto.SetInputDefsRequest{InputDefs: []dto.InputDefRequest{
			{TemplateId: keyword.TemplateId, MinSelect: &lo, MaxSelect: &hi},
		}})
		assert.ErrorIs(t, err, apperror.ErrInvalidArgument)
	})

	t.Run("unknown product", func(t *testing.T) {
		_, err := svc.SetInputDefs(ctx, uuid.New(), &dto.SetInputDefsRequest{})
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})
}
