package memory

import (
	"time"

	"adorder-be/internal/entity"

	"github.com/patrickmn/go-cache"
)

const (
	productListPrefix = "products:"
	productPrefix     = "product:"
	pricingRulePrefix = "pricing:"
)

// CatalogCache holds catalog reads in-process. Admin writes call Invalidate.
type CatalogCache struct {
	cache *cache.Cache
}

func NewCatalogCache(ttl time.Duration) *CatalogCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	c := cache.New(ttl, 2*ttl)
	return &CatalogCache{
		cache: c,
	}
}

func (r *CatalogCache) SaveProducts(category string, products []*entity.Product) {
	r.cache.Set(productListPrefix+category, products, cache.DefaultExpiration)
}

func (r *CatalogCache) GetProducts(category string) ([]*entity.Product, bool) {
	if x, found := r.cache.Get(productListPrefix + category); found {
		return x.([]*entity.Product), true
	}
	return nil, false
}

func (r *CatalogCache) SaveProduct(product *entity.Product) {
	r.cache.Set(productPrefix+product.Id.String(), product, cache.DefaultExpiration)
}

func (r *CatalogCache) GetProduct(id string) (*entity.Product, bool) {
	if x, found := r.cache.Get(productPrefix + id); found {
		return x.(*entity.Product), true
	}
	return nil, false
}

// SavePricingRule caches a tier lookup. A nil rule records "no active rule".
func (r *CatalogCache) SavePricingRule(tier entity.UserTier, rule *entity.TierPricingRule) {
	r.cache.Set(pricingRulePrefix+string(tier), rule, cache.DefaultExpiration)
}

func (r *CatalogCache) GetPricingRule(tier entity.UserTier) (*entity.TierPricingRule, bool) {
	if x, found := r.cache.Get(pricingRulePrefix + string(tier)); found {
		return x.(*entity.TierPricingRule), true
	}
	return nil, false
}

func (r *CatalogCache) Invalidate() {
	r.cache.Flush()
}
