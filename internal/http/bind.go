package http

import (
	"github.com/gin-gonic/gin"
	"github.com/guttosm/pool-flow-service/internal/domain/dto"
)

// checkable is implemented by request bodies that validate their own fields.
type checkable interface {
	Validate() error
}

// bindJSON decodes the JSON body into a fresh T and runs its Validate method
// when it has one. Binding errors come back untouched so callers can tell a
// malformed body apart from a *dto.ValidationError.
func bindJSON[T any](c *gin.Context) (*T, error) {
	var body T
	if err := c.ShouldBindJSON(&body); err != nil {
		return nil, err
	}
	if v, ok := any(&body).(checkable); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}
	return &body, nil
}

// bindCalculation reads a calculate or export body. A missing project name
// falls back to the configured default.
func bindCalculation(c *gin.Context, defaultProject string) (*dto.CalculateFlowRequest, error) {
	req, err := bindJSON[dto.CalculateFlowRequest](c)
	if err != nil {
		return nil, err
	}
	if req.ProjectName == "" {
		req.ProjectName = defaultProject
	}
	return req, nil
}
