package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/guttosm/pool-flow-service/internal/domain/model"
	"github.com/guttosm/pool-flow-service/internal/logger"
	"github.com/guttosm/pool-flow-service/internal/metrics"
)

// DefaultRedisKeyPrefix namespaces run keys in a shared Redis.
const DefaultRedisKeyPrefix = "poolflow:run:"

// RedisCache stores runs as JSON in Redis so replicas share the same last runs.
// Redis failures degrade to cache misses.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedisClient parses a redis:// URL into a client.
func NewRedisClient(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return redis.NewClient(opts), nil
}

// NewRedisCache wraps client. An empty prefix uses DefaultRedisKeyPrefix.
func NewRedisCache(client *redis.Client, ttl time.Duration, prefix string) *RedisCache {
	if prefix == "" {
		prefix = DefaultRedisKeyPrefix
	}
	return &RedisCache{client: client, ttl: ttl, prefix: prefix}
}

// Get loads and decodes a run.
func (r *RedisCache) Get(ctx context.Context, key string) (model.CalculationRun, bool) {
	raw, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log := logger.Logger()
			log.Warn().Err(err).Str("key", key).Msg("redis get failed")
			metrics.RecordCacheOperation("get", "error")
		} else {
			metrics.RecordCacheOperation("get", "miss")
		}
		return model.CalculationRun{}, false
	}

	var run model.CalculationRun
	if err := json.Unmarshal(raw, &run); err != nil {
		log := logger.Logger()
		log.Warn().Err(err).Str("key", key).Msg("discarding undecodable cached run")
		metrics.RecordCacheOperation("get", "error")
		return model.CalculationRun{}, false
	}
	metrics.RecordCacheOperation("get", "hit")
	return run, true
}

// Set encodes and stores a run with the configured TTL.
func (r *RedisCache) Set(ctx context.Context, key string, value model.CalculationRun) {
	raw, err := json.Marshal(value)
	if err == nil {
		err = r.client.Set(ctx, r.prefix+key, raw, r.ttl).Err()
	}
	if err != nil {
		log := logger.Logger()
		log.Warn().Err(err).Str("key", key).Msg("redis set failed")
		metrics.RecordCacheOperation("set", "error")
		return
	}
	metrics.RecordCacheOperation("set", "success")
}

// Ping checks connectivity for readiness probes.
func (r *RedisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Stop closes the underlying client.
func (r *RedisCache) Stop() {
	_ = r.client.Close()
}
