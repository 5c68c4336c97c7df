package http

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/pool-flow-service/internal/domain/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJSONContext(body string) *gin.Context {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodPost, "/api/calculate", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c
}

func TestBindCalculation(t *testing.T) {
	tests := []struct {
		name            string
		body            string
		wantProject     string
		wantZones       int
		wantErr         bool
		validationField string
	}{
		{
			name:        "summerlit zone keeps its project name",
			body:        `{"project_name": "Summerlit", "unit_count": 242, "zones": [{"name": "Pool Deep", "area": 2067, "average_depth": 4, "turnover_minutes": 180}]}`,
			wantProject: "Summerlit",
			wantZones:   1,
		},
		{
			name:        "missing project name uses default",
			body:        `{"unit_count": 10, "zones": [{"name": "Spa", "area": 100, "average_depth": 3.5, "turnover_minutes": 30}]}`,
			wantProject: "Resort",
			wantZones:   1,
		},
		{
			name:        "zero zones is accepted",
			body:        `{"zones": []}`,
			wantProject: "Resort",
		},
		{
			name:            "negative unit count",
			body:            `{"unit_count": -1, "zones": []}`,
			wantErr:         true,
			validationField: "unit_count",
		},
		{
			name:            "negative depth",
			body:            `{"zones": [{"name": "Spa", "area": 100, "average_depth": -1, "turnover_minutes": 30}]}`,
			wantErr:         true,
			validationField: "zones[0].average_depth",
		},
		{
			name:            "negative constant override",
			body:            `{"zones": [], "constants": {"gpm_per_unit_factor": -0.5}}`,
			wantErr:         true,
			validationField: "constants.gpm_per_unit_factor",
		},
		{
			name:    "malformed body",
			body:    `{"zones": [}`,
			wantErr: true,
		},
		{
			name:    "empty body",
			body:    ``,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := bindCalculation(newJSONContext(tt.body), "Resort")

			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, tt.wantProject, req.ProjectName)
				assert.Len(t, req.Zones, tt.wantZones)
				return
			}

			assert.Error(t, err)
			assert.Nil(t, req)
			var verr *dto.ValidationError
			if tt.validationField == "" {
				assert.False(t, errors.As(err, &verr), "malformed body is not a field error")
				return
			}
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.validationField, verr.Field)
		})
	}
}

func TestBindJSON_ConstantsBody(t *testing.T) {
	req, err := bindJSON[dto.UpdateConstantsRequest](newJSONContext(`{"gallons_per_cubic_foot": 7.48, "units_per_living_ratio": 4.5, "gpm_per_unit_factor": 0.75, "created_by": "ops"}`))
	require.NoError(t, err)
	assert.Equal(t, 7.48, req.GallonsPerCubicFoot)
	assert.Equal(t, "ops", req.CreatedBy)

	req, err = bindJSON[dto.UpdateConstantsRequest](newJSONContext(`{"gallons_per_cubic_foot": 0}`))
	assert.Error(t, err, "gallons per cubic foot is required and positive")
	assert.Nil(t, req)
}
