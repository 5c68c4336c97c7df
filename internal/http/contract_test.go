//go:build contract

package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/pool-flow-service/internal/domain/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAPI_ContractCompliance validates that API responses match the documented contract.
func TestAPI_ContractCompliance(t *testing.T) {
	router := setupRouter(t)

	tests := []struct {
		name             string
		method           string
		path             string
		body             string
		expectedStatus   int
		validateResponse func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:           "POST /api/calculate - Success 200",
			method:         http.MethodPost,
			path:           "/api/calculate",
			body:           summerlitBody,
			expectedStatus: http.StatusOK,
			validateResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp dto.SuccessResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

				assert.NotEmpty(t, resp.RequestID, "Response must include request_id")
				assert.NotZero(t, resp.Timestamp, "Response must include timestamp")

				data, ok := resp.Data.(map[string]interface{})
				require.True(t, ok, "Data must be an object")
				for _, field := range []string{"run_id", "project_name", "constants", "aggregate", "rows", "cached"} {
					assert.Contains(t, data, field)
				}

				aggregate, ok := data["aggregate"].(map[string]interface{})
				require.True(t, ok)
				for _, field := range []string{"zones", "total_area", "total_volume_gallons", "total_flow_rate_gpm", "min_area_required", "min_flow_rate_required", "unit_count"} {
					assert.Contains(t, aggregate, field)
				}

				rows, ok := data["rows"].([]interface{})
				require.True(t, ok)
				require.NotEmpty(t, rows)
				for _, r := range rows {
					row, ok := r.(map[string]interface{})
					require.True(t, ok)
					assert.Contains(t, row, "key")
					assert.Contains(t, row, "label")
					assert.Contains(t, row, "value")
				}
			},
		},
		{
			name:           "POST /api/calculate - Error 400 Invalid JSON",
			method:         http.MethodPost,
			path:           "/api/calculate",
			body:           `invalid json`,
			expectedStatus: http.StatusBadRequest,
			validateResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				resp := decodeError(t, w)
				assert.Equal(t, dto.ErrCodeInvalidRequest, resp.Error)
				assert.NotEmpty(t, resp.Message)
				assert.NotEmpty(t, resp.RequestID)
				assert.NotZero(t, resp.Timestamp)
			},
		},
		{
			name:           "POST /api/calculate - Error 422 Zero Turnover",
			method:         http.MethodPost,
			path:           "/api/calculate",
			body:           `{"zones": [{"name": "Spa", "area": 100, "average_depth": 3.5, "turnover_minutes": 0}]}`,
			expectedStatus: http.StatusUnprocessableEntity,
			validateResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				resp := decodeError(t, w)
				assert.Equal(t, dto.ErrCodeUnprocessable, resp.Error)
				assert.NotEmpty(t, resp.Message)
				assert.Contains(t, resp.Details, "zone_index")
				assert.Contains(t, resp.Details, "zone_name")
			},
		},
		{
			name:           "GET /api/runs/:id - Error 404",
			method:         http.MethodGet,
			path:           "/api/runs/unknown",
			expectedStatus: http.StatusNotFound,
			validateResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert.Equal(t, dto.ErrCodeNotFound, decodeError(t, w).Error)
			},
		},
		{
			name:           "GET /healthz - Success 200",
			method:         http.MethodGet,
			path:           "/healthz",
			expectedStatus: http.StatusOK,
			validateResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp map[string]interface{}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, "ok", resp["status"])
			},
		},
		{
			name:           "GET /readyz - Success 200",
			method:         http.MethodGet,
			path:           "/readyz",
			expectedStatus: http.StatusOK,
			validateResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp map[string]interface{}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Contains(t, resp, "checks")
				assert.Equal(t, "ok", resp["status"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(router, tt.method, tt.path, tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code, "Status code mismatch")
			assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"), "Response must include X-Request-ID header")

			if tt.validateResponse != nil {
				tt.validateResponse(t, w)
			}
		})
	}
}

// TestAPI_ExportHeaders validates download headers for every export format.
func TestAPI_ExportHeaders(t *testing.T) {
	router := setupRouter(t)

	for _, format := range []string{"csv", "xlsx", "json"} {
		t.Run(format, func(t *testing.T) {
			w := doJSON(router, http.MethodPost, "/api/export?format="+format, summerlitBody)

			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, `attachment; filename="summerlit-flow-report.`+format+`"`, w.Header().Get("Content-Disposition"))
			assert.NotEmpty(t, w.Header().Get("X-Run-ID"))
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
			assert.NotEmpty(t, w.Body.Bytes())
		})
	}
}

// TestAPI_CORS validates the preflight contract for browser clients.
func TestAPI_CORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := setupRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/calculate", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}
