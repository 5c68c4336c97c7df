// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/guttosm/pool-flow-service/internal/domain/model"
	"github.com/guttosm/pool-flow-service/internal/repository"
	"github.com/guttosm/pool-flow-service/internal/service"
)

type MockConstantsService struct {
	mock.Mock
}

func (m *MockConstantsService) Active(ctx context.Context) service.ActiveConstants {
	args := m.Called(ctx)
	return args.Get(0).(service.ActiveConstants)
}

func (m *MockConstantsService) Update(ctx context.Context, values model.GlobalConstants, createdBy string) (*repository.ConstantsProfile, error) {
	args := m.Called(ctx, values, createdBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.ConstantsProfile), args.Error(1)
}

func (m *MockConstantsService) History(ctx context.Context, limit int) ([]repository.ConstantsProfile, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.ConstantsProfile), args.Error(1)
}

func (m *MockConstantsService) EnsureSeeded(ctx context.Context, createdBy string) error {
	args := m.Called(ctx, createdBy)
	return args.Error(0)
}
