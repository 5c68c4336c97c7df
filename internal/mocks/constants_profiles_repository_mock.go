// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/guttosm/pool-flow-service/internal/repository"
)

type MockConstantsProfilesRepositoryInterface struct {
	mock.Mock
}

func (m *MockConstantsProfilesRepositoryInterface) GetActive(ctx context.Context) (*repository.ConstantsProfile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.ConstantsProfile), args.Error(1)
}

func (m *MockConstantsProfilesRepositoryInterface) Create(ctx context.Context, values repository.ConstantsValues, createdBy string) (*repository.ConstantsProfile, error) {
	args := m.Called(ctx, values, createdBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.ConstantsProfile), args.Error(1)
}

func (m *MockConstantsProfilesRepositoryInterface) List(ctx context.Context, limit int) ([]repository.ConstantsProfile, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.ConstantsProfile), args.Error(1)
}
