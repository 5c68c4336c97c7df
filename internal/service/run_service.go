package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"

	"github.com/guttosm/pool-flow-service/internal/domain/model"
	"github.com/guttosm/pool-flow-service/internal/service/cache"
)

// ErrRunNotFound is returned when a run ID is not in the run cache.
var ErrRunNotFound = errors.New("calculation run not found")

// RunService computes runs and keeps the last result per parameter set.
type RunService interface {
	Calculate(ctx context.Context, projectName string, zones []model.ZoneInput, constants model.GlobalConstants) (*model.CalculationRun, bool, error)
	Get(ctx context.Context, id string) (*model.CalculationRun, error)
}

// RunServiceImpl implements RunService on a FlowCalculator and a run cache.
type RunServiceImpl struct {
	calc  FlowCalculator
	cache cache.Cache
}

// NewRunService creates a run service. A nil cache disables run storage.
func NewRunService(calc FlowCalculator, c cache.Cache) *RunServiceImpl {
	return &RunServiceImpl{calc: calc, cache: c}
}

// Calculate returns the run for the given parameters. The boolean reports a cache hit.
// Identical parameters always map to the same run ID, so a changed input never
// serves a stale result.
func (s *RunServiceImpl) Calculate(ctx context.Context, projectName string, zones []model.ZoneInput, constants model.GlobalConstants) (*model.CalculationRun, bool, error) {
	id, err := Fingerprint(projectName, zones, constants)
	if err != nil {
		return nil, false, err
	}

	if s.cache != nil {
		if run, ok := s.cache.Get(ctx, id); ok {
			return &run, true, nil
		}
	}

	agg, report, err := s.calc.Run(zones, constants)
	if err != nil {
		return nil, false, err
	}
	report.ProjectName = projectName

	run := model.CalculationRun{
		ID:          id,
		ProjectName: projectName,
		Zones:       zones,
		Constants:   constants,
		Aggregate:   agg,
		Report:      report,
	}
	if s.cache != nil {
		s.cache.Set(ctx, id, run)
	}
	return &run, false, nil
}

// Get loads a stored run.
func (s *RunServiceImpl) Get(ctx context.Context, id string) (*model.CalculationRun, error) {
	if s.cache == nil {
		return nil, ErrRunNotFound
	}
	run, ok := s.cache.Get(ctx, id)
	if !ok {
		return nil, ErrRunNotFound
	}
	return &run, nil
}

type fingerprintInput struct {
	ProjectName string                `json:"project_name"`
	Zones       []model.ZoneInput     `json:"zones"`
	Constants   model.GlobalConstants `json:"constants"`
}

// Fingerprint is the hex SHA-256 of the canonical JSON of the run parameters.
func Fingerprint(projectName string, zones []model.ZoneInput, constants model.GlobalConstants) (string, error) {
	if zones == nil {
		zones = []model.ZoneInput{}
	}
	raw, err := json.Marshal(fingerprintInput{
		ProjectName: projectName,
		Zones:       zones,
		Constants:   constants,
	})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}
