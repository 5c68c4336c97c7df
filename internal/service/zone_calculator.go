package service

import (
	"math"

	"github.com/guttosm/pool-flow-service/internal/domain/model"
)

// ComputeZone derives cubic feet, gallons and the required flow rate for one zone.
// Values keep full float64 precision; rounding happens only at export.
func ComputeZone(in model.ZoneInput, c model.GlobalConstants) (model.ZoneResult, error) {
	if !validMeasure(in.Area) || !validMeasure(in.AverageDepth) || !validMeasure(in.TurnoverMinutes) {
		return model.ZoneResult{}, model.ErrInvalidZoneInput
	}
	if in.Mandatory && (in.Area == 0 || in.AverageDepth == 0) {
		return model.ZoneResult{}, model.ErrEmptyMandatoryZone
	}
	if in.TurnoverMinutes == 0 {
		return model.ZoneResult{}, model.ErrZeroTurnover
	}

	cubicFeet := in.Area * in.AverageDepth
	volume := cubicFeet * c.GallonsPerCubicFoot
	flow := volume / in.TurnoverMinutes

	if !finite(cubicFeet, volume, flow) {
		return model.ZoneResult{}, model.ErrNonFiniteResult
	}

	return model.ZoneResult{
		Zone:          in,
		CubicFeet:     cubicFeet,
		VolumeGallons: volume,
		FlowRateGPM:   flow,
	}, nil
}

// validateConstants rejects constants that would poison every zone.
func validateConstants(c model.GlobalConstants) error {
	if !validMeasure(c.GallonsPerCubicFoot) ||
		!validMeasure(c.UnitsPerLivingRatio) ||
		!validMeasure(c.GPMPerUnitFactor) ||
		c.UnitCount < 0 {
		return model.ErrInvalidConstants
	}
	return nil
}

func validMeasure(v float64) bool {
	return v >= 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
