package hydration

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeGoalBelowThirtyIsUnadjusted(t *testing.T) {
	for _, temp := range []float64{-10, 0, 24.9, 25, 29.99} {
		require.Equal(t, 8, ComputeGoal(8, &temp), "temp %v", temp)
	}
}

func TestComputeGoalThirtyToThirtyFive(t *testing.T) {
	for _, temp := range []float64{30, 32.5, 34.99} {
		require.Equal(t, 9, ComputeGoal(8, &temp), "temp %v", temp)
	}
}

func TestComputeGoalMonotonic(t *testing.T) {
	prev := 0
	for temp := -20.0; temp <= 60; temp += 0.5 {
		tc := temp
		goal := ComputeGoal(8, &tc)
		require.GreaterOrEqual(t, goal, prev)
		prev = goal
	}
}

func TestComputeGoalAbsentOrNonFinite(t *testing.T) {
	require.Equal(t, 8, ComputeGoal(8, nil))
	nan := math.NaN()
	require.Equal(t, 8, ComputeGoal(8, &nan))
	inf := math.Inf(1)
	require.Equal(t, 8, ComputeGoal(8, &inf))
}

func TestComputeGoalHotDay(t *testing.T) {
	temp := 36.0
	goal := ComputeGoal(8, &temp)
	require.Equal(t, 10, goal)
	require.True(t, IsHotWeatherGoal(goal, 10))
	require.False(t, IsHotWeatherGoal(9, 10))
	require.True(t, IsHotWeatherGoal(10, 0))
}

func TestComputeGoalExtremeTemperaturesStayMonotonic(t *testing.T) {
	prev := 0
	for _, temp := range []float64{1e6, 1e12, 1e19, 1e20, math.MaxFloat64} {
		tc := temp
		goal := ComputeGoal(8, &tc)
		require.Positive(t, goal, "temp %v", temp)
		require.GreaterOrEqual(t, goal, prev, "temp %v", temp)
		prev = goal
	}
	require.Equal(t, 8+math.MaxInt32, prev)
}
