// Package middleware provides scope-based authorization middleware.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/pool-flow-service/internal/domain/dto"
	"github.com/guttosm/pool-flow-service/internal/i18n"
)

// Token scopes.
const (
	ScopeCalculate      = "flow:calculate"
	ScopeConstantsWrite = "constants:write"
)

// AllScopes lists every scope the service checks.
func AllScopes() []string {
	return []string{ScopeCalculate, ScopeConstantsWrite}
}

// RequireScopes returns a middleware that rejects requests missing any of scopes.
// It must run after Authenticate.
func RequireScopes(scopes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetSubject(c) == "" {
			abortUnauthorized(c, i18n.ErrKeyUnauthorized)
			return
		}

		granted := make(map[string]bool)
		for _, s := range GetScopes(c) {
			granted[s] = true
		}
		for _, required := range scopes {
			if !granted[required] {
				message := i18n.GetTranslator().Translate(i18n.ErrKeyForbidden, i18n.GetLocale(c))
				errorResp := dto.NewError(dto.ErrCodeForbidden, message).
					WithRequestID(GetRequestID(c)).
					WithDetails(map[string]string{"required_scope": required})
				c.AbortWithStatusJSON(http.StatusForbidden, errorResp)
				return
			}
		}

		c.Next()
	}
}
