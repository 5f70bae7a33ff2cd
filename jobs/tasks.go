// Package jobs hosts the background task definitions and the Asynq
// worker that runs them.
package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskCatalogWarmup pre-populates the hot catalog cache entries.
	TaskCatalogWarmup = "catalog:warmup"
	// TaskCatalogCacheBump invalidates every cached catalog response.
	TaskCatalogCacheBump = "catalog:cache_bump"
)

// CatalogWarmupPayload configures one warmup run. Zero limits fall back
// to the storefront's landing page sizes.
type CatalogWarmupPayload struct {
	FeaturedLimit    int `json:"featured_limit"`
	NewArrivalsLimit int `json:"new_arrivals_limit"`
}

// NewCatalogWarmupTask constructs an Asynq task.
func NewCatalogWarmupTask(payload CatalogWarmupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCatalogWarmup, data), nil
}

// NewCatalogCacheBumpTask constructs a cache invalidation task.
func NewCatalogCacheBumpTask() *asynq.Task {
	return asynq.NewTask(TaskCatalogCacheBump, nil)
}
