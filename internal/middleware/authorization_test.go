package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/pool-flow-service/internal/domain/dto"
)

func TestRequireScopes(t *testing.T) {
	tests := []struct {
		name           string
		subject        string
		scopes         []string
		required       []string
		expectedStatus int
	}{
		{name: "anonymous is unauthorized", required: []string{ScopeCalculate}, expectedStatus: http.StatusUnauthorized},
		{name: "has required scope", subject: "ops", scopes: []string{ScopeCalculate}, required: []string{ScopeCalculate}, expectedStatus: http.StatusOK},
		{name: "missing scope is forbidden", subject: "ops", scopes: []string{ScopeCalculate}, required: []string{ScopeConstantsWrite}, expectedStatus: http.StatusForbidden},
		{name: "needs all scopes", subject: "ops", scopes: []string{ScopeConstantsWrite}, required: []string{ScopeCalculate, ScopeConstantsWrite}, expectedStatus: http.StatusForbidden},
		{name: "all scopes granted", subject: APIKeySubject, scopes: AllScopes(), required: []string{ScopeCalculate, ScopeConstantsWrite}, expectedStatus: http.StatusOK},
		{name: "no scopes required", subject: "ops", expectedStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			router := gin.New()
			router.Use(func(c *gin.Context) {
				if tt.subject != "" {
					c.Set(ContextKeySubject, tt.subject)
					c.Set(ContextKeyScopes, tt.scopes)
				}
				c.Next()
			})
			router.GET("/test", RequireScopes(tt.required...), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestRequireScopes_ReportsMissingScope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(ContextKeySubject, "ops")
		c.Set(ContextKeyScopes, []string{ScopeCalculate})
	})
	router.PUT("/constants", RequireScopes(ScopeConstantsWrite), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/constants", nil))

	require.Equal(t, http.StatusForbidden, w.Code)
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrCodeForbidden, resp.Error)
	assert.Equal(t, ScopeConstantsWrite, resp.Details["required_scope"])
}
