package aggregators

import (
	"testing"

	"serverlog-analyser/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestComputeTimings_Empty(t *testing.T) {
	t.Parallel()

	assert.Equal(t, models.Timings{}, ComputeTimings(nil))
	assert.Equal(t, models.Timings{}, ComputeTimings([]float64{}))
}

func TestComputeTimings_OddSample(t *testing.T) {
	t.Parallel()

	timings := ComputeTimings([]float64{0.1, 0.3, 0.2})

	assert.Equal(t, 0.1, timings.Min)
	assert.InDelta(t, 0.2, timings.Mean, 1e-9)
	assert.Equal(t, 0.2, timings.Median)
	// floor(0.95*3) = 2, floor(0.99*3) = 2
	assert.Equal(t, 0.3, timings.P95)
	assert.Equal(t, 0.3, timings.P99)
}

func TestComputeTimings_EvenSampleMedianIsMidpoint(t *testing.T) {
	t.Parallel()

	timings := ComputeTimings([]float64{4, 1, 3, 2})

	assert.Equal(t, 1.0, timings.Min)
	assert.Equal(t, 2.5, timings.Mean)
	assert.Equal(t, 2.5, timings.Median)
	assert.Equal(t, 4.0, timings.P95)
}

func TestComputeTimings_NearestRankWithoutInterpolation(t *testing.T) {
	t.Parallel()

	sample := make([]float64, 0, 100)
	for i := 100; i >= 1; i-- {
		sample = append(sample, float64(i))
	}

	timings := ComputeTimings(sample)

	// sorted[95] and sorted[99] of 1..100
	assert.Equal(t, 96.0, timings.P95)
	assert.Equal(t, 100.0, timings.P99)
	assert.Equal(t, 50.5, timings.Median)
}

func TestComputeTimings_PercentilesAreOrdered(t *testing.T) {
	t.Parallel()

	samples := [][]float64{
		{0.5},
		{0.2, 0.1},
		{9, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 30},
		{0.01, 0.02, 0.5, 0.7, 2.5, 0.03, 0.04},
	}

	for _, s := range samples {
		timings := ComputeTimings(s)
		assert.LessOrEqual(t, timings.Min, timings.P95)
		assert.LessOrEqual(t, timings.P95, timings.P99)
	}
}

func TestComputeTimings_DoesNotReorderInput(t *testing.T) {
	t.Parallel()

	sample := []float64{3, 1, 2}
	ComputeTimings(sample)
	assert.Equal(t, []float64{3, 1, 2}, sample)
}
