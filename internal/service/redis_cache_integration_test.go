//go:build integration

package service

import (
	"context"
	"testing"
	"time"

	"github.com/guttosm/pool-flow-service/internal/domain/model"
	"github.com/guttosm/pool-flow-service/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisCache_Integration(t *testing.T) {
	ctx := context.Background()

	redisContainer, err := testutil.SetupRedis(ctx)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, redisContainer.Cleanup(ctx))
	}()

	client, err := NewRedisClient(redisContainer.URL)
	require.NoError(t, err)
	c := NewRedisCache(client, time.Minute, "")
	defer c.Stop()

	require.NoError(t, c.Ping(ctx))

	calc := NewFlowCalculatorService(WithoutMetrics())
	agg, report, err := calc.Run([]model.ZoneInput{poolDeep, sunShelves}, summerlitConstants())
	require.NoError(t, err)
	run := model.CalculationRun{ID: "abc", ProjectName: "Summerlit", Aggregate: agg, Report: report}

	_, ok := c.Get(ctx, "abc")
	assert.False(t, ok)

	c.Set(ctx, "abc", run)
	got, ok := c.Get(ctx, "abc")
	require.True(t, ok)
	assert.Equal(t, run.Aggregate.TotalFlowRateGPM, got.Aggregate.TotalFlowRateGPM)
	assert.Equal(t, len(run.Report.Rows), len(got.Report.Rows))
}
