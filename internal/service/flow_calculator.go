package service

import (
	"time"

	"github.com/guttosm/pool-flow-service/internal/domain/model"
	"github.com/guttosm/pool-flow-service/internal/metrics"
)

// FlowCalculator defines the interface for flow rate calculation runs.
type FlowCalculator interface {
	Run(zones []model.ZoneInput, constants model.GlobalConstants) (model.AggregateResult, model.Report, error)
}

// Option configures a FlowCalculatorService.
type Option func(*FlowCalculatorService)

// FlowCalculatorService computes every zone in caller order, sums the totals
// and assembles the ordered report. It holds no state between runs.
type FlowCalculatorService struct {
	recordMetrics bool
	now           func() time.Time
}

// NewFlowCalculatorService creates a new FlowCalculatorService with the given options.
func NewFlowCalculatorService(opts ...Option) *FlowCalculatorService {
	s := &FlowCalculatorService{
		recordMetrics: true,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithoutMetrics disables Prometheus recording, for CLI use.
func WithoutMetrics() Option {
	return func(s *FlowCalculatorService) {
		s.recordMetrics = false
	}
}

// Run computes all zones and the advisory minimums. Any zone failure aborts
// the run and is returned as a *model.ZoneError; no partial result is produced.
func (s *FlowCalculatorService) Run(zones []model.ZoneInput, c model.GlobalConstants) (model.AggregateResult, model.Report, error) {
	start := s.now()
	agg, report, err := s.run(zones, c)
	if s.recordMetrics {
		status := "success"
		if err != nil {
			status = "error"
		}
		metrics.RecordFlowCalculation(s.now().Sub(start), len(zones), status)
	}
	return agg, report, err
}

func (s *FlowCalculatorService) run(zones []model.ZoneInput, c model.GlobalConstants) (model.AggregateResult, model.Report, error) {
	if err := validateConstants(c); err != nil {
		return model.AggregateResult{}, model.Report{}, err
	}

	agg := model.AggregateResult{
		Zones:               make([]model.ZoneResult, 0, len(zones)),
		MinAreaRequired:     float64(c.UnitCount) * c.UnitsPerLivingRatio,
		MinFlowRateRequired: float64(c.UnitCount) * c.GPMPerUnitFactor,
		UnitCount:           c.UnitCount,
	}

	// Summation order is the input order so results are reproducible bit for bit.
	for i, z := range zones {
		res, err := ComputeZone(z, c)
		if err != nil {
			return model.AggregateResult{}, model.Report{}, &model.ZoneError{Index: i, Name: z.Name, Err: err}
		}
		agg.Zones = append(agg.Zones, res)
		agg.TotalArea += z.Area
		agg.TotalVolumeGallons += res.VolumeGallons
		agg.TotalFlowRateGPM += res.FlowRateGPM
	}

	// Each zone is finite on its own, but the sums can still overflow.
	if !finite(agg.TotalArea, agg.TotalVolumeGallons, agg.TotalFlowRateGPM, agg.MinAreaRequired, agg.MinFlowRateRequired) {
		return model.AggregateResult{}, model.Report{}, model.ErrNonFiniteResult
	}

	return agg, BuildReport(agg, c), nil
}
