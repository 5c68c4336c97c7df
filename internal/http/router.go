package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/pool-flow-service/internal/metrics"
	"github.com/guttosm/pool-flow-service/internal/middleware"
	"github.com/guttosm/pool-flow-service/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RouterConfig holds router configuration options.
type RouterConfig struct {
	RateLimit         int
	RateWindow        time.Duration
	RequestTimeout    time.Duration
	APIKeys           map[string]bool
	JWT               *middleware.JWTConfig
	EnableAuth        bool
	EnableIdempotency bool
	CORSOrigins       []string
	SwaggerUser       string
	SwaggerPass       string
	LoggingService    service.LoggingService
	ConstantsService  service.ConstantsService
}

// DefaultRouterConfig returns the default router configuration.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		RateLimit:      100,
		RateWindow:     time.Minute,
		RequestTimeout: 30 * time.Second,
		EnableAuth:     false,
	}
}

// authRequired reports whether API routes sit behind authentication.
func (cfg *RouterConfig) authRequired() bool {
	return cfg.EnableAuth && (len(cfg.APIKeys) > 0 || cfg.JWT != nil)
}

// NewRouter creates and configures the Gin router for the flow service.
func NewRouter(handler *Handler, healthHandler *HealthHandler, cfg RouterConfig) *gin.Engine {
	router := gin.New()

	// Configure global middleware
	configureGlobalMiddleware(router, &cfg)

	// Register infrastructure routes (health, metrics, swagger)
	registerInfrastructureRoutes(router, healthHandler, &cfg)

	if handler == nil {
		return router
	}

	// Configure API routes
	api := router.Group("/api")
	configureAPIMiddleware(api, &cfg)

	var constantsHandler *ConstantsHandler
	if cfg.ConstantsService != nil {
		constantsHandler = NewConstantsHandler(cfg.ConstantsService)
	}
	flowRoutes := NewFlowRoutes(handler, constantsHandler)

	if cfg.authRequired() {
		flowRoutes.RegisterProtectedRoutes(api, &cfg)
	} else {
		flowRoutes.RegisterPublicRoutes(api)
	}

	return router
}

// configureGlobalMiddleware sets up middleware applied to all routes.
func configureGlobalMiddleware(router *gin.Engine, cfg *RouterConfig) {
	router.Use(middleware.CORS(cfg.CORSOrigins))

	// Core middleware stack
	router.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		metrics.PrometheusMiddleware(),
		middleware.Compression(),
		middleware.RequestLogger(cfg.LoggingService),
		middleware.ErrorHandler(),
	)

	// Context setup middleware
	router.Use(func(c *gin.Context) {
		if cfg.LoggingService != nil {
			c.Set("logging_service", cfg.LoggingService)
		}
		c.Next()
	})
}

// registerInfrastructureRoutes registers health, metrics, and documentation routes.
func registerInfrastructureRoutes(router *gin.Engine, healthHandler *HealthHandler, cfg *RouterConfig) {
	if healthHandler != nil {
		healthHandler.Register(router)
	}
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger with optional basic auth
	if cfg.SwaggerUser != "" && cfg.SwaggerPass != "" {
		authorized := router.Group("/swagger", gin.BasicAuth(gin.Accounts{
			cfg.SwaggerUser: cfg.SwaggerPass,
		}))
		authorized.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	} else {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}

// configureAPIMiddleware sets up middleware for the API group.
// Authentication runs before rate limiting so limits apply per subject.
func configureAPIMiddleware(api *gin.RouterGroup, cfg *RouterConfig) {
	if cfg.RequestTimeout > 0 {
		api.Use(middleware.TimeoutWithDuration(cfg.RequestTimeout))
	}

	if cfg.authRequired() {
		api.Use(middleware.Authenticate(middleware.AuthOptions{
			APIKeys: cfg.APIKeys,
			JWT:     cfg.JWT,
		}))
	}

	if cfg.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		api.Use(limiter.Middleware())
	}

	// Idempotency middleware
	if cfg.EnableIdempotency {
		api.Use(middleware.Idempotency(middleware.DefaultIdempotencyConfig()))
	}
}
