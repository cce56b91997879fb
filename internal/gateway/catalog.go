package gateway

import (
	"context"
	"slices"
	"time"

	"github.com/alexanderramin/pinboard/internal/domain"
	"github.com/patrickmn/go-cache"
)

const catalogKey = "tags"

// CachedCatalog serves ListTags from a TTL cache. Tag writes made through
// it drop the cached catalog; writes made elsewhere show up after the TTL.
type CachedCatalog struct {
	Gateway
	cache *cache.Cache
	ttl   time.Duration
}

// NewCachedCatalog wraps g. A non-positive ttl disables caching.
func NewCachedCatalog(g Gateway, ttl time.Duration) *CachedCatalog {
	return &CachedCatalog{
		Gateway: g,
		cache:   cache.New(ttl, 2*ttl),
		ttl:     ttl,
	}
}

func (c *CachedCatalog) ListTags(ctx context.Context) ([]domain.Tag, error) {
	if c.ttl > 0 {
		if v, ok := c.cache.Get(catalogKey); ok {
			return slices.Clone(v.([]domain.Tag)), nil
		}
	}
	tags, err := c.Gateway.ListTags(ctx)
	if err != nil {
		return nil, err
	}
	if c.ttl > 0 {
		c.cache.Set(catalogKey, slices.Clone(tags), c.ttl)
	}
	return tags, nil
}

func (c *CachedCatalog) CreateTag(ctx context.Context, t *domain.Tag) (*domain.Tag, error) {
	defer c.Invalidate()
	return c.Gateway.CreateTag(ctx, t)
}

func (c *CachedCatalog) DeleteTag(ctx context.Context, id string) error {
	defer c.Invalidate()
	return c.Gateway.DeleteTag(ctx, id)
}

// Invalidate forces the next ListTags to hit the wrapped gateway.
func (c *CachedCatalog) Invalidate() {
	c.cache.Delete(catalogKey)
}
