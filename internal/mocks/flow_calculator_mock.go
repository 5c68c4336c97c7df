// Code generated manually. DO NOT EDIT.

package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/guttosm/pool-flow-service/internal/domain/model"
)

type MockFlowCalculator struct {
	mock.Mock
}

func (m *MockFlowCalculator) Run(zones []model.ZoneInput, constants model.GlobalConstants) (model.AggregateResult, model.Report, error) {
	args := m.Called(zones, constants)
	return args.Get(0).(model.AggregateResult), args.Get(1).(model.Report), args.Error(2)
}
