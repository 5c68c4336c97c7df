// Package app provides service initialization.
package app

import (
	"context"
	"time"

	"github.com/guttosm/pool-flow-service/config"
	"github.com/guttosm/pool-flow-service/internal/service"
	"github.com/guttosm/pool-flow-service/internal/service/cache"
	"github.com/rs/zerolog/log"
)

const redisPingTimeout = 2 * time.Second

// ServiceComponents holds service-related components.
type ServiceComponents struct {
	Calculator service.FlowCalculator
	Runs       service.RunService
	RunCache   cache.Cache
	// Redis is set when runs are shared through Redis.
	Redis *service.RedisCache
}

// Close stops the run cache.
func (s *ServiceComponents) Close() {
	if s.RunCache != nil {
		s.RunCache.Stop()
	}
}

// InitializeServices creates the flow calculator and the run store.
// An unreachable Redis falls back to the in-memory cache.
func InitializeServices(cfg config.CacheConfig) *ServiceComponents {
	calculator := service.NewFlowCalculatorService()
	components := &ServiceComponents{Calculator: calculator}

	if cfg.RedisURL != "" {
		if rc := connectRedis(cfg); rc != nil {
			components.Redis = rc
			components.RunCache = rc
		}
	}

	if components.RunCache == nil && cfg.Size > 0 {
		components.RunCache = service.NewShardedCache(cfg.Size, cfg.TTL, cfg.Shards)
	}

	components.Runs = service.NewRunService(calculator, components.RunCache)
	return components
}

func connectRedis(cfg config.CacheConfig) *service.RedisCache {
	client, err := service.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Error().Err(err).Msg("Invalid REDIS_URL - using in-memory run cache")
		return nil
	}

	rc := service.NewRedisCache(client, cfg.TTL, "")
	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if err := rc.Ping(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to reach Redis - using in-memory run cache")
		rc.Stop()
		return nil
	}

	log.Info().Msg("Connected to Redis")
	return rc
}
