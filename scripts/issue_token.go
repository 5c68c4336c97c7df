//go:build ignore

// This script mints a bearer token for local use.
// Run with: JWT_SECRET_KEY=... go run scripts/issue_token.go -sub ops@example.com -scope "flow:calculate constants:write"
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/guttosm/pool-flow-service/config"
	"github.com/guttosm/pool-flow-service/internal/middleware"
)

func main() {
	subject := flag.String("sub", "", "token subject")
	scope := flag.String("scope", middleware.ScopeCalculate, "space separated scopes")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	cfg := config.Load()
	if !cfg.Auth.JWTEnabled() {
		fmt.Fprintln(os.Stderr, "JWT_SECRET_KEY is not set")
		os.Exit(1)
	}

	token, err := middleware.IssueToken(middleware.JWTConfig{
		Secret: []byte(cfg.Auth.JWTSecretKey),
		Issuer: cfg.Auth.JWTIssuer,
	}, *subject, strings.Fields(*scope), *ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error issuing token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(token)
}
