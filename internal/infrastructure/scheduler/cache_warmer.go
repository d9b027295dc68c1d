package scheduler

import (
	"context"

	"github.com/Bhargav2112/Flipcart-Clone/internal/infrastructure/cache"
	"go.uber.org/zap"
)

// CacheWarmJobName identifies the catalog cache warmer
const CacheWarmJobName = "catalog-cache-warm"

// CatalogWarmer rebuilds the approved-catalog snapshot
type CatalogWarmer interface {
	Warm(ctx context.Context, load cache.ProductLoader) (int, error)
}

// CacheWarmJob reloads the approved catalog into the cache so storefront
// reads rarely hit the database
type CacheWarmJob struct {
	warmer CatalogWarmer
	load   cache.ProductLoader
	logger *zap.Logger
}

// NewCacheWarmJob creates the job
func NewCacheWarmJob(warmer CatalogWarmer, load cache.ProductLoader, logger *zap.Logger) *CacheWarmJob {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheWarmJob{warmer: warmer, load: load, logger: logger}
}

// Name implements Job
func (j *CacheWarmJob) Name() string { return CacheWarmJobName }

// Run implements Job
func (j *CacheWarmJob) Run(ctx context.Context) error {
	n, err := j.warmer.Warm(ctx, j.load)
	if err != nil {
		return err
	}
	j.logger.Info("Catalog cache warmed", zap.Int("products", n))
	return nil
}
