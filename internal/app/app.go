// Package app provides application initialization and dependency injection.
package app

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/pool-flow-service/config"
	"github.com/guttosm/pool-flow-service/internal/http"
	"github.com/guttosm/pool-flow-service/internal/middleware"
	"github.com/rs/zerolog/log"
)

// App is the wired application: the router plus the resources it holds open.
type App struct {
	Router   *gin.Engine
	services *ServiceComponents
	database *DatabaseComponents
}

// InitializeApp creates and wires all application dependencies.
func InitializeApp(cfg config.Config) *App {
	// Logger first, every other component logs during startup
	InitializeLogger(cfg.Log)

	services := InitializeServices(cfg.Cache)
	dbComponents := InitializeDatabase(cfg.Database)
	constants := InitializeConstants(dbComponents, cfg.Pool.Constants())

	if dbComponents != nil {
		middleware.InitAsyncLogger(dbComponents.LoggingService, middleware.DefaultAsyncLoggerConfig())
	}

	routerComponents := InitializeRouter(services, dbComponents, constants, cfg)

	return &App{
		Router:   http.NewRouter(routerComponents.Handler, routerComponents.HealthHandler, routerComponents.Config),
		services: services,
		database: dbComponents,
	}
}

// Close flushes pending audit entries and releases the cache and database.
func (a *App) Close(ctx context.Context) error {
	middleware.StopAsyncLogger()

	if a.services != nil {
		a.services.Close()
	}

	if err := a.database.Close(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to disconnect from MongoDB")
		return err
	}
	return nil
}
