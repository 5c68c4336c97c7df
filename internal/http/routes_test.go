package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/pool-flow-service/internal/middleware"
	"github.com/guttosm/pool-flow-service/internal/mocks"
	"github.com/stretchr/testify/assert"
)

func routeStatus(router *gin.Engine, method, path string) int {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w.Code
}

func TestNewFlowRoutes(t *testing.T) {
	handler := NewHandler(new(mocks.MockRunService), nil)

	routes := NewFlowRoutes(handler, nil)

	assert.NotNil(t, routes)
	assert.Same(t, handler, routes.handler)
	assert.Nil(t, routes.constantsHandler)
}

func TestFlowRoutes_RegisterPublicRoutes(t *testing.T) {
	tests := []struct {
		name             string
		constantsHandler *ConstantsHandler
		constantsStatus  func(int) bool
	}{
		{
			name:             "with constants service",
			constantsHandler: NewConstantsHandler(new(mocks.MockConstantsService)),
			constantsStatus:  func(code int) bool { return code != http.StatusNotFound },
		},
		{
			name:            "without constants service",
			constantsStatus: func(code int) bool { return code == http.StatusNotFound },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			routes := NewFlowRoutes(NewHandler(new(mocks.MockRunService), nil), tt.constantsHandler)

			router := gin.New()
			routes.RegisterPublicRoutes(router.Group("/api"))

			// body-less requests fail binding before reaching the mocks
			assert.Equal(t, http.StatusBadRequest, routeStatus(router, http.MethodPost, "/api/calculate"))
			assert.Equal(t, http.StatusBadRequest, routeStatus(router, http.MethodPost, "/api/export"))
			assert.Equal(t, http.StatusBadRequest, routeStatus(router, http.MethodGet, "/api/runs/abc/export?format=pdf"))
			assert.True(t, tt.constantsStatus(routeStatus(router, http.MethodPut, "/api/constants")))
		})
	}
}

func TestFlowRoutes_RegisterProtectedRoutes(t *testing.T) {
	routes := NewFlowRoutes(NewHandler(new(mocks.MockRunService), nil), NewConstantsHandler(new(mocks.MockConstantsService)))

	withScopes := func(scopes ...string) *gin.Engine {
		router := gin.New()
		api := router.Group("/api")
		api.Use(func(c *gin.Context) {
			c.Set(middleware.ContextKeySubject, "tester")
			c.Set(middleware.ContextKeyScopes, scopes)
			c.Next()
		})
		routes.RegisterProtectedRoutes(api, &RouterConfig{})
		return router
	}

	readOnly := withScopes()
	assert.Equal(t, http.StatusForbidden, routeStatus(readOnly, http.MethodPost, "/api/calculate"))
	assert.Equal(t, http.StatusForbidden, routeStatus(readOnly, http.MethodPost, "/api/export"))
	assert.Equal(t, http.StatusForbidden, routeStatus(readOnly, http.MethodPut, "/api/constants"))

	calculator := withScopes(middleware.ScopeCalculate)
	assert.Equal(t, http.StatusBadRequest, routeStatus(calculator, http.MethodPost, "/api/calculate"))
	assert.Equal(t, http.StatusForbidden, routeStatus(calculator, http.MethodPut, "/api/constants"))

	writer := withScopes(middleware.ScopeConstantsWrite)
	assert.Equal(t, http.StatusBadRequest, routeStatus(writer, http.MethodPut, "/api/constants"))
}
