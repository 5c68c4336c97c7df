package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/pool-flow-service/internal/domain/dto"
	"github.com/guttosm/pool-flow-service/internal/i18n"
)

const (
	// APIKeyHeader is the HTTP header name for API key authentication.
	APIKeyHeader = "X-API-Key"
	// APIKeyQuery is the query parameter name for API key authentication.
	APIKeyQuery = "api_key"
)

// Context keys set by the authentication middlewares.
const (
	ContextKeySubject = "auth_subject"
	ContextKeyScopes  = "auth_scopes"
)

// APIKeySubject is the subject recorded for requests authenticated by API key.
const APIKeySubject = "api-key"

// checkAPIKey aborts the request and returns false when the key is missing or unknown.
func checkAPIKey(c *gin.Context, validKeys map[string]bool) bool {
	key := c.GetHeader(APIKeyHeader)
	if key == "" {
		key = c.Query(APIKeyQuery)
	}

	if key == "" {
		abortUnauthorized(c, i18n.ErrKeyAPIKeyRequired)
		return false
	}
	if !validKeys[key] {
		abortUnauthorized(c, i18n.ErrKeyInvalidAPIKey)
		return false
	}

	c.Set(ContextKeySubject, APIKeySubject)
	c.Set(ContextKeyScopes, AllScopes())
	return true
}

// AuthOptions selects the accepted credentials.
type AuthOptions struct {
	APIKeys map[string]bool
	JWT     *JWTConfig
}

// Authenticate accepts a bearer token when JWT is configured and an API key
// otherwise. A request carrying a bearer token is never checked against the API keys.
func Authenticate(opts AuthOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		if opts.JWT != nil && (c.GetHeader(AuthorizationHeader) != "" || len(opts.APIKeys) == 0) {
			if !checkBearer(c, *opts.JWT) {
				return
			}
			c.Next()
			return
		}

		if len(opts.APIKeys) > 0 && !checkAPIKey(c, opts.APIKeys) {
			return
		}
		c.Next()
	}
}

// GetSubject returns the authenticated subject, or "" for anonymous requests.
func GetSubject(c *gin.Context) string {
	if v, ok := c.Get(ContextKeySubject); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetScopes returns the scopes granted to the request.
func GetScopes(c *gin.Context) []string {
	if v, ok := c.Get(ContextKeyScopes); ok {
		if s, ok := v.([]string); ok {
			return s
		}
	}
	return nil
}

func abortUnauthorized(c *gin.Context, key string) {
	message := i18n.GetTranslator().Translate(key, i18n.GetLocale(c))
	errorResp := dto.NewError(dto.ErrCodeUnauthorized, message).
		WithRequestID(GetRequestID(c))
	c.AbortWithStatusJSON(http.StatusUnauthorized, errorResp)
}
