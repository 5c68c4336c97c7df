// Package app provides router configuration.
package app

import (
	"github.com/guttosm/pool-flow-service/config"
	"github.com/guttosm/pool-flow-service/internal/http"
	"github.com/guttosm/pool-flow-service/internal/middleware"
	"github.com/guttosm/pool-flow-service/internal/service"
	"github.com/guttosm/pool-flow-service/internal/service/cache"
)

// RouterComponents holds router-related components.
type RouterComponents struct {
	Handler       *http.Handler
	HealthHandler *http.HealthHandler
	Config        http.RouterConfig
}

// InitializeRouter initializes HTTP handlers, health checks and router configuration.
func InitializeRouter(
	services *ServiceComponents,
	dbComponents *DatabaseComponents,
	constants service.ConstantsService,
	cfg config.Config,
) *RouterComponents {
	var loggingService service.LoggingService
	if dbComponents != nil {
		loggingService = dbComponents.LoggingService
	}

	handler := http.NewHandler(services.Runs, constants,
		http.WithDefaults(cfg.Pool.Constants()),
		http.WithProjectName(cfg.Pool.ProjectName),
	)

	healthHandler := http.NewHealthHandler()
	if dbComponents != nil {
		if dbComponents.DB != nil {
			healthHandler.RegisterChecker("mongodb", http.CheckerFunc(dbComponents.DB.HealthCheck))
		}
		healthHandler.RegisterCircuitBreaker("mongodb_constants_profiles", dbComponents.ConstantsCircuitBreaker)
		healthHandler.RegisterCircuitBreaker("mongodb_logs", dbComponents.LogsCircuitBreaker)
	}
	if services.Redis != nil {
		healthHandler.RegisterChecker("redis", http.CheckerFunc(services.Redis.Ping))
	}
	if rc, ok := services.RunCache.(cache.CacheWithMetrics); ok {
		healthHandler.RegisterCache("run_cache", rc)
	}

	routerCfg := http.RouterConfig{
		RateLimit:         cfg.Server.RateLimit,
		RateWindow:        cfg.Server.RateWindow,
		RequestTimeout:    cfg.Server.RequestTimeout,
		EnableAuth:        cfg.Auth.Enabled,
		APIKeys:           cfg.Auth.APIKeys,
		EnableIdempotency: true,
		CORSOrigins:       cfg.Server.CORSOrigins,
		SwaggerUser:       cfg.Server.SwaggerUser,
		SwaggerPass:       cfg.Server.SwaggerPass,
		LoggingService:    loggingService,
		ConstantsService:  constants,
	}
	if cfg.Auth.JWTEnabled() {
		routerCfg.JWT = &middleware.JWTConfig{
			Secret: []byte(cfg.Auth.JWTSecretKey),
			Issuer: cfg.Auth.JWTIssuer,
		}
	}

	return &RouterComponents{
		Handler:       handler,
		HealthHandler: healthHandler,
		Config:        routerCfg,
	}
}
