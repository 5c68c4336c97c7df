package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/pool-flow-service/internal/domain/dto"
	"github.com/guttosm/pool-flow-service/internal/i18n"
	"github.com/guttosm/pool-flow-service/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const summerlitBody = `{"project_name": "Summerlit", "unit_count": 242, "zones": [
	{"name": "Pool Deep", "area": 2067, "average_depth": 4, "turnover_minutes": 180},
	{"name": "Spa", "area": 100, "average_depth": 3.5, "turnover_minutes": 30}
]}`

type zoneBody struct {
	Zones []struct {
		Name            string  `json:"name"`
		Area            float64 `json:"area"`
		TurnoverMinutes float64 `json:"turnover_minutes"`
	} `json:"zones"`
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	logger.InitWithWriter(&buf, "debug", false)
	t.Cleanup(func() { logger.Init("info", false) })
	return &buf
}

func TestRecovery_CalculateRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		acceptLanguage string
		handler        gin.HandlerFunc
		expectedStatus int
		expectedLocale string
		wantPanicLog   string
	}{
		{
			name: "panic while reading zones",
			handler: func(c *gin.Context) {
				var body zoneBody
				_ = c.ShouldBindJSON(&body)
				// reads past the two submitted zones
				_ = body.Zones[len(body.Zones)].Area
			},
			expectedStatus: http.StatusInternalServerError,
			expectedLocale: "en",
			wantPanicLog:   "index out of range",
		},
		{
			name:           "panic message is translated",
			acceptLanguage: "pt-BR",
			handler: func(c *gin.Context) {
				panic("zone report writer is nil")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedLocale: "pt",
			wantPanicLog:   "zone report writer is nil",
		},
		{
			name: "calculation without panic passes through",
			handler: func(c *gin.Context) {
				var body zoneBody
				require.NoError(t, c.ShouldBindJSON(&body))
				c.JSON(http.StatusOK, gin.H{"zones": len(body.Zones), "total_flow_rate_gpm": 371.54})
			},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := captureLogs(t)

			router := gin.New()
			router.Use(RequestID(), Recovery())
			router.POST("/api/calculate", tt.handler)

			req := httptest.NewRequest(http.MethodPost, "/api/calculate", strings.NewReader(summerlitBody))
			req.Header.Set("Content-Type", "application/json")
			if tt.acceptLanguage != "" {
				req.Header.Set("Accept-Language", tt.acceptLanguage)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.wantPanicLog == "" {
				assert.Contains(t, w.Body.String(), "371.54")
				assert.NotContains(t, logs.String(), "PANIC recovered")
				return
			}

			var resp dto.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, dto.ErrCodeInternal, resp.Error)
			assert.Equal(t, i18n.GetTranslator().Translate(i18n.ErrKeyInternalError, tt.expectedLocale), resp.Message)
			assert.Equal(t, w.Header().Get(RequestIDHeader), resp.RequestID)
			assert.NotContains(t, w.Body.String(), tt.wantPanicLog, "panic detail stays in the log")

			assert.Contains(t, logs.String(), "PANIC recovered")
			assert.Contains(t, logs.String(), `"path":"/api/calculate"`)
			assert.Contains(t, logs.String(), tt.wantPanicLog)
			assert.Contains(t, logs.String(), resp.RequestID)
		})
	}
}
