package memory

import (
	"testing"
	"time"

	"adorder-be/internal/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCatalogCache_ProductsRoundTrip(t *testing.T) {
	c := NewCatalogCache(time.Minute)
	p := &entity.Product{Id: uuid.New(), Name: "Blog review"}

	c.SaveProducts("", []*entity.Product{p})
	c.SaveProduct(p)

	list, ok := c.GetProducts("")
	assert.True(t, ok)
	assert.Len(t, list, 1)

	got, ok := c.GetProduct(p.Id.String())
	assert.True(t, ok)
	assert.Equal(t, "Blog review", got.Name)

	_, ok = c.GetProducts("other")
	assert.False(t, ok)
}

func TestCatalogCache_NilPricingRuleIsCached(t *testing.T) {
	c := NewCatalogCache(time.Minute)
	c.SavePricingRule(entity.UserTierT2, nil)

	rule, ok := c.GetPricingRule(entity.UserTierT2)
	assert.True(t, ok)
	assert.Nil(t, rule)

	c.SavePricingRule(entity.UserTierT1, &entity.TierPricingRule{Tier: entity.UserTierT1, Multiplier: decimal.NewFromFloat(1.2)})
	rule, ok = c.GetPricingRule(entity.UserTierT1)
	assert.True(t, ok)
	assert.Equal(t, "1.2", rule.Multiplier.String())
}

func TestCatalogCache_Invalidate(t *testing.T) {
	c := NewCatalogCache(time.Minute)
	p := &entity.Product{Id: uuid.New()}
	c.SaveProduct(p)

	c.Invalidate()

	_, ok := c.GetProduct(p.Id.String())
	assert.False(t, ok)
}
