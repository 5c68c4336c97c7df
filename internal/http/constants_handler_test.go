package http

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/guttosm/pool-flow-service/internal/domain/model"
	"github.com/guttosm/pool-flow-service/internal/middleware"
	"github.com/guttosm/pool-flow-service/internal/mocks"
	"github.com/guttosm/pool-flow-service/internal/repository"
)

func TestConstantsHandler_UpdateConstants_CreatedBy(t *testing.T) {
	const body = `{"gallons_per_cubic_foot": 7.5, "units_per_living_ratio": 4.5, "gpm_per_unit_factor": 0.75, "created_by": "someone-else"}`

	tests := []struct {
		name          string
		subject       string
		wantCreatedBy string
	}{
		{name: "authenticated subject overrides body", subject: "ops@summerlit", wantCreatedBy: "ops@summerlit"},
		{name: "api key subject overrides body", subject: middleware.APIKeySubject, wantCreatedBy: middleware.APIKeySubject},
		{name: "body label used without auth", wantCreatedBy: "someone-else"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			constants := new(mocks.MockConstantsService)
			constants.On("Update", mock.Anything, model.GlobalConstants{
				GallonsPerCubicFoot: 7.5,
				UnitsPerLivingRatio: 4.5,
				GPMPerUnitFactor:    0.75,
			}, tt.wantCreatedBy).Return(&repository.ConstantsProfile{
				GallonsPerCubicFoot: 7.5,
				UnitsPerLivingRatio: 4.5,
				GPMPerUnitFactor:    0.75,
				Active:              true,
				Version:             2,
				CreatedBy:           tt.wantCreatedBy,
			}, nil)

			router := gin.New()
			router.Use(middleware.RequestID())
			router.Use(func(c *gin.Context) {
				if tt.subject != "" {
					c.Set(middleware.ContextKeySubject, tt.subject)
				}
				c.Next()
			})
			router.PUT("/api/constants", NewConstantsHandler(constants).UpdateConstants)

			w := doJSON(router, http.MethodPut, "/api/constants", body)

			assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.Contains(t, w.Body.String(), `"created_by":"`+tt.wantCreatedBy+`"`)
			constants.AssertExpectations(t)
		})
	}
}
