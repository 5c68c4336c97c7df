//go:build integration

package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/guttosm/pool-flow-service/config"
	"github.com/guttosm/pool-flow-service/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestInitializeApp_Integration(t *testing.T) {
	ctx := context.Background()

	t.Run("mongodb enabled", func(t *testing.T) {
		cfg := baseIntegrationConfig()
		cfg.Database = databaseConfig(t)

		application := InitializeApp(cfg)
		require.NotNil(t, application)
		defer func() { assert.NoError(t, application.Close(ctx)) }()

		w := serve(application.Router, http.MethodGet, "/readyz", "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), `"mongodb"`)

		w = serve(application.Router, http.MethodGet, "/api/constants", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"source":"profile"`)

		w = serve(application.Router, http.MethodPut, "/api/constants",
			`{"gallons_per_cubic_foot": 7.5, "units_per_living_ratio": 4.5, "gpm_per_unit_factor": 0.75}`)
		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})

	t.Run("redis run cache", func(t *testing.T) {
		redisContainer, err := testutil.SetupRedis(ctx)
		require.NoError(t, err)
		defer func() { _ = redisContainer.Cleanup(ctx) }()

		cfg := baseIntegrationConfig()
		cfg.Cache.RedisURL = redisContainer.URL

		application := InitializeApp(cfg)
		defer func() { assert.NoError(t, application.Close(ctx)) }()

		body := `{"zones": [{"name": "Spa", "area": 100, "average_depth": 3.5, "turnover_minutes": 30}]}`
		first := serve(application.Router, http.MethodPost, "/api/calculate", body)
		require.Equal(t, http.StatusOK, first.Code)
		second := serve(application.Router, http.MethodPost, "/api/calculate", body)
		require.Equal(t, http.StatusOK, second.Code)
		assert.Contains(t, second.Body.String(), `"cached":true`)

		w := serve(application.Router, http.MethodGet, "/readyz", "")
		assert.Contains(t, w.Body.String(), `"redis"`)
	})

	t.Run("mongodb disabled", func(t *testing.T) {
		application := InitializeApp(baseIntegrationConfig())
		defer func() { assert.NoError(t, application.Close(ctx)) }()

		w := serve(application.Router, http.MethodPut, "/api/constants", `{"gallons_per_cubic_foot": 7.5}`)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func baseIntegrationConfig() config.Config {
	return config.Config{
		Server: config.ServerConfig{
			Port:       "8080",
			RateLimit:  100,
			RateWindow: time.Minute,
		},
		Log:   config.LogConfig{Level: "error"},
		Cache: config.CacheConfig{Size: 100, TTL: 5 * time.Minute, Shards: 4},
		Pool: config.PoolConfig{
			GallonsPerCubicFoot: 7.48,
			UnitsPerLivingRatio: 4.5,
			GPMPerUnitFactor:    0.75,
		},
	}
}
