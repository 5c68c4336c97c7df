// Package model defines the core domain entities for the pool flow service.
package model

import (
	"errors"
	"fmt"
)

// Default values for GlobalConstants. They seed configuration and profiles only;
// the calculation always receives the constants explicitly.
const (
	DefaultGallonsPerCubicFoot = 7.48
	DefaultUnitsPerLivingRatio = 4.5
	DefaultGPMPerUnitFactor    = 0.75
)

var (
	// ErrInvalidZoneInput is returned when a zone carries a negative, NaN or infinite value.
	ErrInvalidZoneInput = errors.New("invalid zone input")
	// ErrZeroTurnover is returned when a zone has a turnover time of zero minutes.
	ErrZeroTurnover = errors.New("division by zero: turnover minutes must be greater than zero")
	// ErrEmptyMandatoryZone is returned when a zone marked mandatory has no area or depth.
	ErrEmptyMandatoryZone = errors.New("mandatory zone is empty")
	// ErrInvalidConstants is returned when a global constant is negative, NaN or infinite.
	ErrInvalidConstants = errors.New("invalid global constants")
	// ErrNonFiniteResult is returned when finite inputs overflow to an infinite or NaN value.
	ErrNonFiniteResult = errors.New("calculation result is not finite")
)

// ZoneInput describes one physically distinct section of a pool.
//
// @Description Pool zone dimensions and turnover target
type ZoneInput struct {
	// Name labels the zone in reports, e.g. "Pool Deep" or "Sun Shelves"
	Name string `json:"name" yaml:"name" example:"Pool Deep"`
	// Area is the water surface in square feet
	Area float64 `json:"area" yaml:"area" example:"2067"`
	// AverageDepth is the mean depth in feet
	AverageDepth float64 `json:"average_depth" yaml:"average_depth" example:"4"`
	// TurnoverMinutes is the target time to circulate the zone's volume once
	TurnoverMinutes float64 `json:"turnover_minutes" yaml:"turnover_minutes" example:"180"`
	// Mandatory marks a zone that must have a non-zero area and depth
	Mandatory bool `json:"mandatory,omitempty" yaml:"mandatory,omitempty"`
}

// GlobalConstants are shared by every zone in one calculation run.
//
// @Description Conversion and occupancy constants for a calculation run
type GlobalConstants struct {
	GallonsPerCubicFoot float64 `json:"gallons_per_cubic_foot" yaml:"gallons_per_cubic_foot" example:"7.48"`
	UnitsPerLivingRatio float64 `json:"units_per_living_ratio" yaml:"units_per_living_ratio" example:"4.5"`
	GPMPerUnitFactor    float64 `json:"gpm_per_unit_factor" yaml:"gpm_per_unit_factor" example:"0.75"`
	UnitCount           int     `json:"unit_count" yaml:"unit_count" example:"242"`
}

// DefaultConstants returns the US-gallon defaults with no units.
func DefaultConstants() GlobalConstants {
	return GlobalConstants{
		GallonsPerCubicFoot: DefaultGallonsPerCubicFoot,
		UnitsPerLivingRatio: DefaultUnitsPerLivingRatio,
		GPMPerUnitFactor:    DefaultGPMPerUnitFactor,
	}
}

// ZoneResult holds the derived quantities for one zone.
//
// @Description Cubic feet, gallons and required flow rate for a zone
type ZoneResult struct {
	Zone          ZoneInput `json:"zone"`
	CubicFeet     float64   `json:"cubic_feet" example:"8268"`
	VolumeGallons float64   `json:"volume_gallons" example:"61844.64"`
	FlowRateGPM   float64   `json:"flow_rate_gpm" example:"343.58"`
}

// AggregateResult combines every zone of a run with the occupancy advisories.
//
// @Description Totals across all zones plus occupancy-based advisory minimums
type AggregateResult struct {
	Zones               []ZoneResult `json:"zones"`
	TotalArea           float64      `json:"total_area" example:"2366"`
	TotalVolumeGallons  float64      `json:"total_volume_gallons" example:"63522.03"`
	TotalFlowRateGPM    float64      `json:"total_flow_rate_gpm" example:"371.54"`
	MinAreaRequired     float64      `json:"min_area_required" example:"1089"`
	MinFlowRateRequired float64      `json:"min_flow_rate_required" example:"181.5"`
	UnitCount           int          `json:"unit_count" example:"242"`
}

// ZoneError reports which zone aborted a run.
type ZoneError struct {
	Index int
	Name  string
	Err   error
}

// Error implements the error interface.
func (e *ZoneError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("zone %d (%s): %v", e.Index+1, e.Name, e.Err)
	}
	return fmt.Sprintf("zone %d: %v", e.Index+1, e.Err)
}

// Unwrap exposes the underlying sentinel to errors.Is.
func (e *ZoneError) Unwrap() error {
	return e.Err
}
