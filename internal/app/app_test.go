//go:build !integration

package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/guttosm/pool-flow-service/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseConfig() config.Config {
	return config.Config{
		Server: config.ServerConfig{
			Port:       "8080",
			RateLimit:  100,
			RateWindow: time.Minute,
		},
		Log: config.LogConfig{Level: "error"},
		Cache: config.CacheConfig{
			Size:   100,
			TTL:    5 * time.Minute,
			Shards: 4,
		},
		Pool: config.PoolConfig{
			ProjectName:         "Summerlit",
			GallonsPerCubicFoot: 7.48,
			UnitsPerLivingRatio: 4.5,
			GPMPerUnitFactor:    0.75,
		},
	}
}

func TestInitializeApp(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*config.Config)
		wantStatus int
	}{
		{
			name:       "calculates with default config",
			mutate:     func(*config.Config) {},
			wantStatus: http.StatusOK,
		},
		{
			name: "requires credentials when auth is enabled",
			mutate: func(c *config.Config) {
				c.Auth = config.AuthConfig{Enabled: true, APIKeys: map[string]bool{"test-key": true}}
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "requires a bearer token when jwt is enabled",
			mutate: func(c *config.Config) {
				c.Auth = config.AuthConfig{Enabled: true, JWTSecretKey: "secret", JWTIssuer: "pool-flow-service"}
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "calculates with run cache disabled",
			mutate: func(c *config.Config) {
				c.Cache.Size = 0
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "falls back to memory when redis url is invalid",
			mutate: func(c *config.Config) {
				c.Cache.RedisURL = "not-a-url"
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig()
			tt.mutate(&cfg)

			application := InitializeApp(cfg)
			require.NotNil(t, application)
			require.NotNil(t, application.Router)
			defer func() {
				assert.NoError(t, application.Close(context.Background()))
			}()

			body := `{"zones": [{"name": "Spa", "area": 100, "average_depth": 3.5, "turnover_minutes": 30}]}`
			req := httptest.NewRequest(http.MethodPost, "/api/calculate", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			application.Router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantStatus == http.StatusOK {
				assert.Contains(t, w.Body.String(), `"project_name":"Summerlit"`)
			}
		})
	}
}

func TestInitializeApp_ConstantsFromConfig(t *testing.T) {
	cfg := baseConfig()
	cfg.Pool.GallonsPerCubicFoot = 10

	application := InitializeApp(cfg)
	defer func() { _ = application.Close(context.Background()) }()

	req := httptest.NewRequest(http.MethodGet, "/api/constants", nil)
	w := httptest.NewRecorder()
	application.Router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"gallons_per_cubic_foot":10`)
	assert.Contains(t, w.Body.String(), `"source":"defaults"`)
}

func TestApp_Close_Twice(t *testing.T) {
	application := InitializeApp(baseConfig())

	assert.NoError(t, application.Close(context.Background()))
	assert.NoError(t, application.Close(context.Background()))
}

func TestInitializeApp_ReadinessReportsRunCache(t *testing.T) {
	application := InitializeApp(baseConfig())
	defer func() { _ = application.Close(context.Background()) }()

	body := `{"zones": [{"name": "Spa", "area": 100, "average_depth": 3.5, "turnover_minutes": 30}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/calculate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	application.Router.ServeHTTP(httptest.NewRecorder(), req)

	w := httptest.NewRecorder()
	application.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"run_cache":{`)
	assert.Contains(t, w.Body.String(), `"size":1`)
}
