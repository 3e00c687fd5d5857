package hydration

import "math"

const (
	// BaselineTemperature is the temperature at or below which the goal is not adjusted.
	BaselineTemperature = 25.0
	// DegreesPerGlass is the temperature step that adds one glass.
	DegreesPerGlass = 5.0
	// DefaultHotWeatherGoal is the adjusted goal at which the heat alert fires.
	DefaultHotWeatherGoal = 10

	// maxAdjustment bounds the float to int conversion for absurd readings.
	maxAdjustment = math.MaxInt32
)

// ComputeGoal adds one glass per full 5°C above 25°C to baseGoal. A nil or
// non-finite temperature leaves the goal unadjusted.
func ComputeGoal(baseGoal int, temperatureC *float64) int {
	if temperatureC == nil {
		return baseGoal
	}
	t := *temperatureC
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return baseGoal
	}
	adjustment := math.Floor((t - BaselineTemperature) / DegreesPerGlass)
	adjustment = math.Max(0, math.Min(adjustment, maxAdjustment))
	return baseGoal + int(adjustment)
}

// IsHotWeatherGoal reports whether an adjusted goal warrants the heat alert.
func IsHotWeatherGoal(goal, threshold int) bool {
	if threshold <= 0 {
		threshold = DefaultHotWeatherGoal
	}
	return goal >= threshold
}
