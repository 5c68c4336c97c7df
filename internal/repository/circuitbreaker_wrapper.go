package repository

import (
	"context"
	"errors"

	"github.com/guttosm/pool-flow-service/internal/circuitbreaker"
)

// ConstantsProfilesRepositoryWithCircuitBreaker guards profile storage with a circuit breaker.
type ConstantsProfilesRepositoryWithCircuitBreaker struct {
	repo           ConstantsProfilesRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewConstantsProfilesRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewConstantsProfilesRepositoryWithCircuitBreaker(repo ConstantsProfilesRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *ConstantsProfilesRepositoryWithCircuitBreaker {
	return &ConstantsProfilesRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

// GetActive returns the active profile. An open circuit yields (nil, nil)
// so callers fall back to configured defaults.
func (r *ConstantsProfilesRepositoryWithCircuitBreaker) GetActive(ctx context.Context) (*ConstantsProfile, error) {
	var result *ConstantsProfile
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.GetActive(ctx)
		return cbErr
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil, nil
	}
	return result, err
}

// Create stores a new active profile. Writes are never silently dropped.
// A lost activation race does not count as a database failure.
func (r *ConstantsProfilesRepositoryWithCircuitBreaker) Create(ctx context.Context, values ConstantsValues, createdBy string) (*ConstantsProfile, error) {
	var (
		result   *ConstantsProfile
		conflict bool
	)
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Create(ctx, values, createdBy)
		if errors.Is(cbErr, ErrProfileConflict) {
			conflict = true
			return nil
		}
		return cbErr
	})
	if conflict {
		return nil, ErrProfileConflict
	}
	return result, err
}

// List returns profile history.
func (r *ConstantsProfilesRepositoryWithCircuitBreaker) List(ctx context.Context, limit int) ([]ConstantsProfile, error) {
	var result []ConstantsProfile
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.List(ctx, limit)
		return cbErr
	})
	return result, err
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *ConstantsProfilesRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

// LogsRepositoryWithCircuitBreaker wraps LogsRepository with circuit breaker protection.
type LogsRepositoryWithCircuitBreaker struct {
	repo           LogsRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewLogsRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewLogsRepositoryWithCircuitBreaker(repo LogsRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *LogsRepositoryWithCircuitBreaker {
	return &LogsRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

// Create stores a single log entry. Entries are dropped while the circuit is open.
func (r *LogsRepositoryWithCircuitBreaker) Create(ctx context.Context, entry *LogEntryDocument) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Create(ctx, entry)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

// CreateMany stores log entries in bulk. Entries are dropped while the circuit is open.
func (r *LogsRepositoryWithCircuitBreaker) CreateMany(ctx context.Context, entries []*LogEntryDocument) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.CreateMany(ctx, entries)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

// Query retrieves log entries with circuit breaker protection.
func (r *LogsRepositoryWithCircuitBreaker) Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error) {
	var result []*LogEntryDocument
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Query(ctx, opts)
		return cbErr
	})
	return result, err
}

// Count returns the count of log entries with circuit breaker protection.
func (r *LogsRepositoryWithCircuitBreaker) Count(ctx context.Context, opts LogQueryOptions) (int64, error) {
	var result int64
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Count(ctx, opts)
		return cbErr
	})
	return result, err
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *LogsRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}
