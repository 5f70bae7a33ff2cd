package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/Shyngys777/temporun/internal/catalog"
	jobmetrics "github.com/Shyngys777/temporun/internal/jobs"
)

var defaultJobMetrics = jobmetrics.NewMetrics(nil)

// CatalogWarmupJob pre-populates the cache entries the storefront hits
// on every landing page render, so shoppers never pay the cold-cache
// cost after an invalidation. It writes through the same key builders
// the HTTP handlers read from.
type CatalogWarmupJob struct {
	Catalog *catalog.Service
	Cache   *catalog.Cache
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
}

// NewCatalogWarmupJob wires dependencies for the warmup handler.
func NewCatalogWarmupJob(catalogSvc *catalog.Service, cache *catalog.Cache, logger *slog.Logger, metrics *jobmetrics.Metrics) *CatalogWarmupJob {
	return &CatalogWarmupJob{Catalog: catalogSvc, Cache: cache, Logger: logger, Metrics: metrics}
}

// Handle processes catalog warmup tasks.
func (j *CatalogWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Catalog == nil {
		return errors.New("catalog warmup: handler not configured")
	}
	var payload CatalogWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if payload.FeaturedLimit <= 0 {
		payload.FeaturedLimit = 8
	}
	if payload.NewArrivalsLimit <= 0 {
		payload.NewArrivalsLimit = 8
	}

	tracker := j.metrics().Track(TaskCatalogWarmup)
	var resultErr error
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := j.logger()
	logger.Info("starting catalog warmup")
	start := time.Now()

	entries := []struct {
		name   string
		key    []string
		loader func(context.Context) (interface{}, error)
	}{
		{"category tree", catalog.KeyCategoryTree(), func(ctx context.Context) (interface{}, error) {
			return j.Catalog.CategoryTree(ctx)
		}},
		{"featured products", catalog.KeyFeaturedProducts(payload.FeaturedLimit), func(ctx context.Context) (interface{}, error) {
			return j.Catalog.FeaturedProducts(ctx, payload.FeaturedLimit)
		}},
		{"new arrivals", catalog.KeyNewArrivals(payload.NewArrivalsLimit), func(ctx context.Context) (interface{}, error) {
			return j.Catalog.NewArrivals(ctx, payload.NewArrivalsLimit)
		}},
		{"brands", catalog.KeyBrands(), func(ctx context.Context) (interface{}, error) {
			return j.Catalog.Brands(ctx, false)
		}},
		{"brand counts", catalog.KeyBrandCounts(), func(ctx context.Context) (interface{}, error) {
			return j.Catalog.BrandsWithProductCount(ctx)
		}},
	}

	for _, entry := range entries {
		if err := j.warmEntry(ctx, entry.key, entry.loader); err != nil {
			resultErr = err
			logger.Error("warm entry", slog.String("entry", entry.name), slog.Any("error", err))
			return resultErr
		}
	}

	logger.Info("completed catalog warmup", slog.Int("entries", len(entries)), slog.Duration("duration", time.Since(start)))
	return resultErr
}

func (j *CatalogWarmupJob) warmEntry(ctx context.Context, keyParts []string, loader func(context.Context) (interface{}, error)) error {
	// A single slow entry must not stall the whole run.
	entryCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	key, err := j.Cache.BuildKey(entryCtx, keyParts...)
	if err != nil {
		return err
	}
	var discard json.RawMessage
	return j.Cache.FetchJSON(entryCtx, key, &discard, loader)
}

// HandleCacheBump invalidates the versioned catalog cache.
func (j *CatalogWarmupJob) HandleCacheBump(ctx context.Context, t *asynq.Task) error {
	if j == nil {
		return errors.New("catalog warmup: handler not configured")
	}
	tracker := j.metrics().Track(TaskCatalogCacheBump)
	err := j.Cache.Bump(ctx)
	if err != nil {
		j.logger().Error("cache bump", slog.Any("error", err))
	}
	return tracker.End(err)
}

func (j *CatalogWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskCatalogWarmup))
	}
	return slog.Default().With(slog.String("job", TaskCatalogWarmup))
}

func (j *CatalogWarmupJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return defaultJobMetrics
}
