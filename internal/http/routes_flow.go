package http

import (
	"github.com/gin-gonic/gin"
	"github.com/guttosm/pool-flow-service/internal/middleware"
)

// FlowRoutes handles flow calculation, run and constants route registration.
type FlowRoutes struct {
	handler          *Handler
	constantsHandler *ConstantsHandler
}

// NewFlowRoutes creates a new FlowRoutes instance. constantsHandler may be nil.
func NewFlowRoutes(handler *Handler, constantsHandler *ConstantsHandler) *FlowRoutes {
	return &FlowRoutes{
		handler:          handler,
		constantsHandler: constantsHandler,
	}
}

// RegisterPublicRoutes registers flow routes when auth is disabled.
func (r *FlowRoutes) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/calculate", r.handler.Calculate)
	rg.POST("/export", r.handler.Export)
	rg.GET("/runs/:id", r.handler.GetRun)
	rg.GET("/runs/:id/export", r.handler.ExportRun)

	if r.constantsHandler != nil {
		rg.GET("/constants", r.constantsHandler.GetActiveConstants)
		rg.PUT("/constants", r.constantsHandler.UpdateConstants)
		rg.GET("/constants/history", r.constantsHandler.ListConstantsHistory)
	}
}

// RegisterProtectedRoutes registers flow routes behind scope checks.
// The group must already carry an authentication middleware.
func (r *FlowRoutes) RegisterProtectedRoutes(protected *gin.RouterGroup, _ *RouterConfig) {
	calculate := middleware.RequireScopes(middleware.ScopeCalculate)

	protected.POST("/calculate", calculate, r.handler.Calculate)
	protected.POST("/export", calculate, r.handler.Export)
	protected.GET("/runs/:id", r.handler.GetRun)
	protected.GET("/runs/:id/export", calculate, r.handler.ExportRun)

	if r.constantsHandler != nil {
		protected.GET("/constants", r.constantsHandler.GetActiveConstants)
		protected.GET("/constants/history", r.constantsHandler.ListConstantsHistory)
		protected.PUT("/constants", middleware.RequireScopes(middleware.ScopeConstantsWrite), r.constantsHandler.UpdateConstants)
	}
}
