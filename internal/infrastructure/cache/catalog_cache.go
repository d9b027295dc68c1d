package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/catalog"
	"github.com/Bhargav2112/Flipcart-Clone/internal/infrastructure/persistence/models"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ProductLoader loads the approved catalog from the database
type ProductLoader func(ctx context.Context) ([]*catalog.Product, error)

// CatalogCache caches the approved-product snapshot that backs the home page
// and product listings. Cache failures degrade to direct loads.
type CatalogCache struct {
	store  Store
	key    string
	ttl    time.Duration
	logger *zap.Logger
	group  singleflight.Group
}

// NewCatalogCache creates a catalog cache under keyPrefix + "catalog:approved"
func NewCatalogCache(store Store, keyPrefix string, ttl time.Duration, logger *zap.Logger) *CatalogCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &CatalogCache{
		store:  store,
		key:    keyPrefix + "catalog:approved",
		ttl:    ttl,
		logger: logger,
	}
}

// ApprovedProducts returns the cached snapshot, loading and storing it on a miss.
// Concurrent misses share a single load.
func (c *CatalogCache) ApprovedProducts(ctx context.Context, load ProductLoader) ([]*catalog.Product, error) {
	raw, err := c.store.Get(ctx, c.key)
	if err == nil {
		products, decodeErr := decodeProducts(raw)
		if decodeErr == nil {
			return products, nil
		}
		c.logger.Warn("Discarding unreadable catalog snapshot", zap.Error(decodeErr))
	} else if !errors.Is(err, ErrCacheMiss) {
		c.logger.Warn("Catalog cache read failed", zap.Error(err))
	}

	v, err, _ := c.group.Do(c.key, func() (any, error) {
		return c.refresh(ctx, load)
	})
	if err != nil {
		return nil, err
	}
	return v.([]*catalog.Product), nil
}

// Warm reloads the snapshot unconditionally and returns the product count
func (c *CatalogCache) Warm(ctx context.Context, load ProductLoader) (int, error) {
	products, err := c.refresh(ctx, load)
	if err != nil {
		return 0, err
	}
	return len(products), nil
}

// Invalidate drops the snapshot so the next read reloads it
func (c *CatalogCache) Invalidate(ctx context.Context) error {
	return c.store.Delete(ctx, c.key)
}

func (c *CatalogCache) refresh(ctx context.Context, load ProductLoader) ([]*catalog.Product, error) {
	products, err := load(ctx)
	if err != nil {
		return nil, err
	}
	raw, err := encodeProducts(products)
	if err != nil {
		c.logger.Warn("Catalog snapshot not cached", zap.Error(err))
		return products, nil
	}
	if err := c.store.Set(ctx, c.key, raw, c.ttl); err != nil {
		c.logger.Warn("Catalog cache write failed", zap.Error(err))
	}
	return products, nil
}

func encodeProducts(products []*catalog.Product) ([]byte, error) {
	rows := make([]*models.ProductModel, len(products))
	for i, p := range products {
		rows[i] = models.ProductModelFromDomain(p)
	}
	return json.Marshal(rows)
}

func decodeProducts(raw []byte) ([]*catalog.Product, error) {
	var rows []models.ProductModel
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, err
	}
	products := make([]*catalog.Product, len(rows))
	for i := range rows {
		products[i] = rows[i].ToDomain()
	}
	return products, nil
}
