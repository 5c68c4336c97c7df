package service

import (
	"context"
	"errors"

	"github.com/guttosm/pool-flow-service/internal/domain/model"
	"github.com/guttosm/pool-flow-service/internal/logger"
	"github.com/guttosm/pool-flow-service/internal/repository"
)

// ErrRepositoryNotConfigured is returned when profile storage is disabled.
var ErrRepositoryNotConfigured = errors.New("repository not configured")

// Constants sources reported by ActiveConstants.
const (
	SourceProfile  = "profile"
	SourceDefaults = "defaults"
)

// ActiveConstants is the resolved set of constants for new runs.
type ActiveConstants struct {
	Constants model.GlobalConstants
	// Profile is nil when Constants came from configuration defaults.
	Profile *repository.ConstantsProfile
}

// Source reports where the constants came from.
func (a ActiveConstants) Source() string {
	if a.Profile != nil {
		return SourceProfile
	}
	return SourceDefaults
}

// ConstantsService resolves and manages the active constants profile.
type ConstantsService interface {
	Active(ctx context.Context) ActiveConstants
	Update(ctx context.Context, values model.GlobalConstants, createdBy string) (*repository.ConstantsProfile, error)
	History(ctx context.Context, limit int) ([]repository.ConstantsProfile, error)
	EnsureSeeded(ctx context.Context, createdBy string) error
}

// ConstantsServiceImpl implements ConstantsService.
type ConstantsServiceImpl struct {
	repo     repository.ConstantsProfilesRepositoryInterface
	defaults model.GlobalConstants
}

// NewConstantsService creates a constants service. repo may be nil, in which
// case defaults are always served and writes fail with ErrRepositoryNotConfigured.
func NewConstantsService(repo repository.ConstantsProfilesRepositoryInterface, defaults model.GlobalConstants) *ConstantsServiceImpl {
	defaults.UnitCount = 0
	return &ConstantsServiceImpl{
		repo:     repo,
		defaults: defaults,
	}
}

// Active returns the active profile, falling back to defaults when storage
// is disabled, empty, or failing. It never returns an error so calculations
// keep working while MongoDB is down.
func (s *ConstantsServiceImpl) Active(ctx context.Context) ActiveConstants {
	if s.repo == nil {
		return ActiveConstants{Constants: s.defaults}
	}

	profile, err := s.repo.GetActive(ctx)
	if err != nil {
		log := logger.Logger()
		log.Warn().Err(err).Msg("failed to load active constants profile, using defaults")
		return ActiveConstants{Constants: s.defaults}
	}
	if profile == nil {
		return ActiveConstants{Constants: s.defaults}
	}

	return ActiveConstants{
		Constants: model.GlobalConstants{
			GallonsPerCubicFoot: profile.GallonsPerCubicFoot,
			UnitsPerLivingRatio: profile.UnitsPerLivingRatio,
			GPMPerUnitFactor:    profile.GPMPerUnitFactor,
		},
		Profile: profile,
	}
}

// Update stores values as the new active profile.
func (s *ConstantsServiceImpl) Update(ctx context.Context, values model.GlobalConstants, createdBy string) (*repository.ConstantsProfile, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	if err := validateConstants(values); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, repository.ConstantsValues{
		GallonsPerCubicFoot: values.GallonsPerCubicFoot,
		UnitsPerLivingRatio: values.UnitsPerLivingRatio,
		GPMPerUnitFactor:    values.GPMPerUnitFactor,
	}, createdBy)
}

// History lists stored profiles, newest first.
func (s *ConstantsServiceImpl) History(ctx context.Context, limit int) ([]repository.ConstantsProfile, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.repo.List(ctx, limit)
}

// EnsureSeeded stores the defaults as version 1 when no profile is active.
func (s *ConstantsServiceImpl) EnsureSeeded(ctx context.Context, createdBy string) error {
	if s.repo == nil {
		return nil
	}

	active, err := s.repo.GetActive(ctx)
	if err != nil || active != nil {
		return err
	}

	_, err = s.Update(ctx, s.defaults, createdBy)
	if errors.Is(err, repository.ErrProfileConflict) {
		// Another replica seeded first.
		return nil
	}
	return err
}
