// Package middleware provides JWT authentication middleware.
package middleware

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/guttosm/pool-flow-service/internal/i18n"
)

// AuthorizationHeader carries the bearer token.
const AuthorizationHeader = "Authorization"

var (
	// ErrInvalidToken is returned when a token fails signature, issuer or expiry checks.
	ErrInvalidToken = errors.New("invalid token")
	// ErrMissingSubject is returned for tokens without a sub claim.
	ErrMissingSubject = errors.New("token has no subject")
)

// JWTConfig holds the HS256 signing secret and expected issuer.
type JWTConfig struct {
	Secret []byte
	Issuer string
}

// Claims are the bearer token claims. Scope is space separated.
type Claims struct {
	Scope string `json:"scope,omitempty"`
	jwt.RegisteredClaims
}

// Scopes splits the scope claim.
func (c *Claims) Scopes() []string {
	return strings.Fields(c.Scope)
}

// IssueToken signs a token for subject with the given scopes.
func IssueToken(cfg JWTConfig, subject string, scopes []string, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", ErrMissingSubject
	}
	now := time.Now()
	claims := Claims{
		Scope: strings.Join(scopes, " "),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(cfg.Secret)
}

// ParseToken validates tokenString and returns its claims.
func ParseToken(cfg JWTConfig, tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return cfg.Secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return nil, ErrMissingSubject
	}
	return claims, nil
}

// checkBearer aborts the request and returns false when the token is missing or invalid.
func checkBearer(c *gin.Context, cfg JWTConfig) bool {
	authHeader := c.GetHeader(AuthorizationHeader)
	if authHeader == "" {
		abortUnauthorized(c, i18n.ErrKeyTokenRequired)
		return false
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		abortUnauthorized(c, i18n.ErrKeyInvalidToken)
		return false
	}

	tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if tokenString == "" {
		abortUnauthorized(c, i18n.ErrKeyTokenRequired)
		return false
	}

	claims, err := ParseToken(cfg, tokenString)
	if err != nil {
		abortUnauthorized(c, i18n.ErrKeyInvalidToken)
		return false
	}

	c.Set(ContextKeySubject, claims.Subject)
	c.Set(ContextKeyScopes, claims.Scopes())
	return true
}
