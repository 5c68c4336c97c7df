// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/guttosm/pool-flow-service/internal/domain/model"
)

type MockRunService struct {
	mock.Mock
}

func (m *MockRunService) Calculate(ctx context.Context, projectName string, zones []model.ZoneInput, constants model.GlobalConstants) (*model.CalculationRun, bool, error) {
	args := m.Called(ctx, projectName, zones, constants)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*model.CalculationRun), args.Bool(1), args.Error(2)
}

func (m *MockRunService) Get(ctx context.Context, id string) (*model.CalculationRun, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CalculationRun), args.Error(1)
}
