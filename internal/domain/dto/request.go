// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs are used to decouple the HTTP layer from the domain model,
// providing validation and serialization for API communication.
package dto

import (
	"fmt"
	"math"

	"github.com/guttosm/pool-flow-service/internal/domain/model"
)

// ZoneRequest is one pool zone in a calculation request.
//
// @Description Pool zone dimensions and turnover target
type ZoneRequest struct {
	// Name labels the zone in the report.
	Name string `json:"name" yaml:"name" binding:"required" example:"Pool Deep"`
	// Area is the water surface in square feet.
	Area float64 `json:"area" yaml:"area" example:"2067" minimum:"0"`
	// AverageDepth is the mean depth in feet.
	AverageDepth float64 `json:"average_depth" yaml:"average_depth" example:"4" minimum:"0"`
	// TurnoverMinutes is the target circulation time. Must be greater than 0.
	TurnoverMinutes float64 `json:"turnover_minutes" yaml:"turnover_minutes" example:"180"`
	// Mandatory requires a non-zero area and depth.
	Mandatory bool `json:"mandatory,omitempty" yaml:"mandatory,omitempty" example:"true"`
} // @name ZoneRequest

// ConstantsRequest overrides global constants field by field.
// Nil fields fall back to the active constants profile.
//
// @Description Optional global constant overrides
type ConstantsRequest struct {
	GallonsPerCubicFoot *float64 `json:"gallons_per_cubic_foot,omitempty" yaml:"gallons_per_cubic_foot,omitempty" example:"7.48"`
	UnitsPerLivingRatio *float64 `json:"units_per_living_ratio,omitempty" yaml:"units_per_living_ratio,omitempty" example:"4.5"`
	GPMPerUnitFactor    *float64 `json:"gpm_per_unit_factor,omitempty" yaml:"gpm_per_unit_factor,omitempty" example:"0.75"`
} // @name ConstantsRequest

// CalculateFlowRequest represents the JSON request body for the flow calculation endpoint.
// The same shape is read from YAML parameter files by the poolcalc CLI.
//
// @Description Request to calculate circulation flow rates for a pool
// @Example {"project_name": "Summerlit", "unit_count": 242, "zones": [{"name": "Pool Deep", "area": 2067, "average_depth": 4, "turnover_minutes": 180, "mandatory": true}]}
type CalculateFlowRequest struct {
	// ProjectName is echoed at the head of the export. Defaults to the configured project name.
	ProjectName string `json:"project_name" yaml:"project_name" example:"Summerlit"`
	// UnitCount is the number of residential units served by the pool.
	UnitCount int `json:"unit_count" yaml:"unit_count" example:"242" minimum:"0"`
	// Zones lists the pool zones in report order.
	Zones []ZoneRequest `json:"zones" yaml:"zones"`
	// Constants optionally overrides the active constants profile.
	Constants *ConstantsRequest `json:"constants,omitempty" yaml:"constants,omitempty"`
} // @name CalculateFlowRequest

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

var (
	// ErrInvalidUnitCount is returned when unit_count is negative.
	ErrInvalidUnitCount = &ValidationError{
		Field:   "unit_count",
		Message: "must not be negative",
	}
	// ErrTooManyZones is returned when a request exceeds MaxZones.
	ErrTooManyZones = &ValidationError{
		Field:   "zones",
		Message: fmt.Sprintf("must contain at most %d zones", MaxZones),
	}
)

// MaxZones bounds the number of zones accepted in one request.
const MaxZones = 64

// Validate performs custom validation on the request.
// Returns an error if validation fails, nil otherwise.
func (r *CalculateFlowRequest) Validate() error {
	if r.UnitCount < 0 {
		return ErrInvalidUnitCount
	}
	if len(r.Zones) > MaxZones {
		return ErrTooManyZones
	}
	for i, z := range r.Zones {
		field := fmt.Sprintf("zones[%d]", i)
		if err := nonNegative(field+".area", z.Area); err != nil {
			return err
		}
		if err := nonNegative(field+".average_depth", z.AverageDepth); err != nil {
			return err
		}
		if err := nonNegative(field+".turnover_minutes", z.TurnoverMinutes); err != nil {
			return err
		}
	}
	if r.Constants != nil {
		return r.Constants.Validate()
	}
	return nil
}

// Validate rejects negative or non-finite overrides.
func (c *ConstantsRequest) Validate() error {
	if c.GallonsPerCubicFoot != nil {
		if err := nonNegative("constants.gallons_per_cubic_foot", *c.GallonsPerCubicFoot); err != nil {
			return err
		}
	}
	if c.UnitsPerLivingRatio != nil {
		if err := nonNegative("constants.units_per_living_ratio", *c.UnitsPerLivingRatio); err != nil {
			return err
		}
	}
	if c.GPMPerUnitFactor != nil {
		if err := nonNegative("constants.gpm_per_unit_factor", *c.GPMPerUnitFactor); err != nil {
			return err
		}
	}
	return nil
}

// ZoneInputs converts the request zones into domain inputs, preserving order.
func (r *CalculateFlowRequest) ZoneInputs() []model.ZoneInput {
	inputs := make([]model.ZoneInput, len(r.Zones))
	for i, z := range r.Zones {
		inputs[i] = model.ZoneInput{
			Name:            z.Name,
			Area:            z.Area,
			AverageDepth:    z.AverageDepth,
			TurnoverMinutes: z.TurnoverMinutes,
			Mandatory:       z.Mandatory,
		}
	}
	return inputs
}

// ApplyTo overlays the non-nil overrides onto base.
func (c *ConstantsRequest) ApplyTo(base model.GlobalConstants) model.GlobalConstants {
	if c == nil {
		return base
	}
	if c.GallonsPerCubicFoot != nil {
		base.GallonsPerCubicFoot = *c.GallonsPerCubicFoot
	}
	if c.UnitsPerLivingRatio != nil {
		base.UnitsPerLivingRatio = *c.UnitsPerLivingRatio
	}
	if c.GPMPerUnitFactor != nil {
		base.GPMPerUnitFactor = *c.GPMPerUnitFactor
	}
	return base
}

func nonNegative(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &ValidationError{Field: field, Message: "must be a finite number"}
	}
	if v < 0 {
		return &ValidationError{Field: field, Message: "must not be negative"}
	}
	return nil
}

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// UpdateConstantsRequest represents the JSON request body for creating a new constants profile.
//
// @Description Request to replace the active constants profile
type UpdateConstantsRequest struct {
	GallonsPerCubicFoot float64 `json:"gallons_per_cubic_foot" binding:"required,gt=0" example:"7.48"`
	UnitsPerLivingRatio float64 `json:"units_per_living_ratio" binding:"gte=0" example:"4.5"`
	GPMPerUnitFactor    float64 `json:"gpm_per_unit_factor" binding:"gte=0" example:"0.75"`
	// CreatedBy labels the profile when auth is disabled. It is ignored for authenticated requests.
	CreatedBy string `json:"created_by,omitempty" example:"ops"`
} // @name UpdateConstantsRequest
