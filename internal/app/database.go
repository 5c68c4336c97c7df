// Package app provides database initialization and setup.
package app

import (
	"context"
	"time"

	"github.com/guttosm/pool-flow-service/config"
	"github.com/guttosm/pool-flow-service/internal/circuitbreaker"
	"github.com/guttosm/pool-flow-service/internal/domain/model"
	"github.com/guttosm/pool-flow-service/internal/metrics"
	"github.com/guttosm/pool-flow-service/internal/repository"
	"github.com/guttosm/pool-flow-service/internal/service"
	"github.com/rs/zerolog/log"
)

const seedTimeout = 5 * time.Second

// DatabaseComponents holds database-related components.
type DatabaseComponents struct {
	DB                      *repository.MongoDB
	ConstantsRepo           repository.ConstantsProfilesRepositoryInterface
	LoggingService          service.LoggingService
	ConstantsCircuitBreaker *circuitbreaker.CircuitBreaker
	LogsCircuitBreaker      *circuitbreaker.CircuitBreaker
}

// Close disconnects from MongoDB.
func (d *DatabaseComponents) Close(ctx context.Context) error {
	if d == nil || d.DB == nil {
		return nil
	}
	return d.DB.Close(ctx)
}

// InitializeDatabase connects to MongoDB and builds the repositories behind circuit breakers.
// Returns nil if database is disabled or connection fails.
func InitializeDatabase(cfg config.DatabaseConfig) *DatabaseComponents {
	if !cfg.Enabled {
		return nil
	}

	db, err := repository.NewMongoDB(cfg.URI, cfg.DatabaseName)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to MongoDB - continuing without database")
		return nil
	}

	log.Info().Str("database", cfg.DatabaseName).Msg("Connected to MongoDB")

	ttlDays := int(cfg.LogsTTL.Hours() / 24)
	if err := db.SetLogsTTL(context.Background(), ttlDays); err != nil {
		log.Warn().Err(err).Msg("Failed to set logs TTL index (may already exist)")
	}

	constantsCB := newCircuitBreaker(cfg, "mongodb-constants-profiles")
	logsCB := newCircuitBreaker(cfg, "mongodb-logs")

	logsRepo := repository.NewLogsRepositoryWithCircuitBreaker(repository.NewLogsRepository(db), logsCB)
	constantsRepo := repository.NewConstantsProfilesRepositoryWithCircuitBreaker(
		repository.NewConstantsProfilesRepository(db), constantsCB)

	return &DatabaseComponents{
		DB:                      db,
		ConstantsRepo:           constantsRepo,
		LoggingService:          service.NewLoggingService(logsRepo),
		ConstantsCircuitBreaker: constantsCB,
		LogsCircuitBreaker:      logsCB,
	}
}

func newCircuitBreaker(cfg config.DatabaseConfig, name string) *circuitbreaker.CircuitBreaker {
	return circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: cfg.CircuitBreakerFailureThreshold,
		SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
		Timeout:          cfg.CircuitBreakerTimeout,
		Name:             name,
		OnStateChange: func(name string, state circuitbreaker.State) {
			metrics.SetCircuitBreakerState(name, int(state))
		},
	})
}

// InitializeConstants builds the constants service and seeds the defaults as the first profile.
func InitializeConstants(dbComponents *DatabaseComponents, defaults model.GlobalConstants) service.ConstantsService {
	var repo repository.ConstantsProfilesRepositoryInterface
	if dbComponents != nil {
		repo = dbComponents.ConstantsRepo
	}

	constants := service.NewConstantsService(repo, defaults)

	ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
	defer cancel()
	if err := constants.EnsureSeeded(ctx, "system"); err != nil {
		log.Warn().Err(err).Msg("Failed to seed default constants profile")
	}

	return constants
}
