// Package cache defines the run cache contract shared by the in-memory and Redis stores.
package cache

import (
	"context"

	"github.com/guttosm/pool-flow-service/internal/domain/model"
)

// Cache stores calculation runs by fingerprint.
type Cache interface {
	Get(ctx context.Context, key string) (model.CalculationRun, bool)
	Set(ctx context.Context, key string, value model.CalculationRun)
	Stop()
}

// Metrics provides cache performance metrics.
type Metrics struct {
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
	Size      int   `json:"size"`
	Capacity  int   `json:"capacity"`
}

// CacheWithMetrics extends Cache with metrics reporting. Readiness probes publish it.
type CacheWithMetrics interface {
	Cache
	Metrics() Metrics
}
