package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/pool-flow-service/internal/domain/model"
	"github.com/guttosm/pool-flow-service/internal/mocks"
	"github.com/guttosm/pool-flow-service/internal/service"
)

var testZones = []model.ZoneInput{
	{Name: "Pool Deep", Area: 2067, AverageDepth: 4, TurnoverMinutes: 180, Mandatory: true},
	{Name: "Sun Shelves", Area: 299, AverageDepth: 0.75, TurnoverMinutes: 60},
}

func TestFingerprint(t *testing.T) {
	c := model.DefaultConstants()
	c.UnitCount = 242

	base, err := service.Fingerprint("Summerlit", testZones, c)
	require.NoError(t, err)
	assert.Len(t, base, 64)

	again, err := service.Fingerprint("Summerlit", testZones, c)
	require.NoError(t, err)
	assert.Equal(t, base, again)

	changed := c
	changed.UnitCount = 243
	other, err := service.Fingerprint("Summerlit", testZones, changed)
	require.NoError(t, err)
	assert.NotEqual(t, base, other)

	reordered, err := service.Fingerprint("Summerlit", []model.ZoneInput{testZones[1], testZones[0]}, c)
	require.NoError(t, err)
	assert.NotEqual(t, base, reordered)

	empty, err := service.Fingerprint("Summerlit", nil, c)
	require.NoError(t, err)
	emptySlice, err := service.Fingerprint("Summerlit", []model.ZoneInput{}, c)
	require.NoError(t, err)
	assert.Equal(t, empty, emptySlice)
}

func TestRunService_Calculate(t *testing.T) {
	ctx := context.Background()
	c := model.DefaultConstants()
	runCache := service.NewShardedCache(16, time.Minute, 2)
	defer runCache.Stop()

	calc := new(mocks.MockFlowCalculator)
	calc.On("Run", testZones, c).Return(
		model.AggregateResult{TotalFlowRateGPM: 371.54},
		model.Report{Rows: []model.ReportRow{{Key: model.KeyTotalFlowRate, Value: 371.54}}},
		nil,
	).Once()

	svc := service.NewRunService(calc, runCache)

	first, cached, err := svc.Calculate(ctx, "Summerlit", testZones, c)
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, "Summerlit", first.Report.ProjectName)

	second, cached, err := svc.Calculate(ctx, "Summerlit", testZones, c)
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Equal(t, first.ID, second.ID)

	stored, err := svc.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, 371.54, stored.Aggregate.TotalFlowRateGPM)

	calc.AssertExpectations(t)
}

func TestRunService_Calculate_Error(t *testing.T) {
	ctx := context.Background()
	runCache := service.NewShardedCache(16, time.Minute, 2)
	defer runCache.Stop()

	zoneErr := &model.ZoneError{Index: 0, Name: "Pool Deep", Err: model.ErrZeroTurnover}
	calc := new(mocks.MockFlowCalculator)
	calc.On("Run", mock.Anything, mock.Anything).Return(model.AggregateResult{}, model.Report{}, zoneErr)

	svc := service.NewRunService(calc, runCache)
	run, _, err := svc.Calculate(ctx, "Summerlit", testZones, model.DefaultConstants())

	assert.Nil(t, run)
	assert.True(t, errors.Is(err, model.ErrZeroTurnover))
	assert.Equal(t, 0, runCache.Metrics().Size)
}

func TestRunService_Get(t *testing.T) {
	tests := []struct {
		name string
		svc  *service.RunServiceImpl
	}{
		{name: "without cache", svc: service.NewRunService(service.NewFlowCalculatorService(service.WithoutMetrics()), nil)},
		{name: "unknown id", svc: service.NewRunService(service.NewFlowCalculatorService(service.WithoutMetrics()), service.NewShardedCache(4, time.Minute, 1))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.svc.Get(context.Background(), "missing")
			assert.ErrorIs(t, err, service.ErrRunNotFound)
		})
	}
}

func TestRunService_WithoutCache(t *testing.T) {
	svc := service.NewRunService(service.NewFlowCalculatorService(service.WithoutMetrics()), nil)

	run, cached, err := svc.Calculate(context.Background(), "Summerlit", testZones, model.DefaultConstants())

	require.NoError(t, err)
	assert.False(t, cached)
	assert.InDelta(t, 63522.03, run.Aggregate.TotalVolumeGallons, 1e-6)
}
