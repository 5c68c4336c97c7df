package repository

import (
	"context"
)

// ConstantsProfilesRepositoryInterface defines the constants profile store.
type ConstantsProfilesRepositoryInterface interface {
	GetActive(ctx context.Context) (*ConstantsProfile, error)
	Create(ctx context.Context, values ConstantsValues, createdBy string) (*ConstantsProfile, error)
	List(ctx context.Context, limit int) ([]ConstantsProfile, error)
}

// LogsRepositoryInterface defines the interface for logs repository operations.
type LogsRepositoryInterface interface {
	Create(ctx context.Context, entry *LogEntryDocument) error
	CreateMany(ctx context.Context, entries []*LogEntryDocument) error
	Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error)
	Count(ctx context.Context, opts LogQueryOptions) (int64, error)
}
