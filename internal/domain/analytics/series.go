package analytics

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/yanqian/moodsip/internal/domain/hydration"
	"github.com/yanqian/moodsip/internal/domain/meal"
	"github.com/yanqian/moodsip/pkg/util"
)

// Metric selects the per-day value charted by a Series.
type Metric string

const (
	MetricHydration Metric = "hydration"
	MetricMood      Metric = "mood"
	MetricEnergy    Metric = "energy"
)

const labelLayout = "Jan 2"

// ParseMetric resolves a metric name, case-insensitively.
func ParseMetric(value string) (Metric, error) {
	switch Metric(strings.ToLower(strings.TrimSpace(value))) {
	case MetricHydration:
		return MetricHydration, nil
	case MetricMood:
		return MetricMood, nil
	case MetricEnergy:
		return MetricEnergy, nil
	}
	return "", fmt.Errorf("unknown metric %q", value)
}

// Series is a chart-ready trailing window, oldest day first. Rolling is set only
// when a smoothing window was requested.
type Series struct {
	Metric        Metric    `json:"metric"`
	Days          int       `json:"days"`
	Values        []float64 `json:"values"`
	Labels        []string  `json:"labels"`
	Dates         []string  `json:"dates"`
	RollingWindow int       `json:"rollingWindow,omitempty"`
	Rolling       []float64 `json:"rolling,omitempty"`
}

// BuildSeries computes one value per day for the days ending at today. Index i holds
// today-(days-1-i), so the last element is today.
func BuildSeries(today string, days int, metric Metric, recordsByDate map[string]hydration.Record, mealsByDate map[string][]meal.Entry) Series {
	if days < 0 {
		days = 0
	}
	series := Series{
		Metric: metric,
		Days:   days,
		Values: make([]float64, days),
		Labels: make([]string, days),
		Dates:  make([]string, days),
	}
	for i := 0; i < days; i++ {
		date := util.ShiftDate(today, -(days - 1 - i))
		series.Dates[i] = date
		series.Labels[i] = label(i, days, date)
		series.Values[i] = finite(dayValue(metric, recordsByDate[date], mealsByDate[date]))
	}
	return series
}

func dayValue(metric Metric, record hydration.Record, meals []meal.Entry) float64 {
	switch metric {
	case MetricHydration:
		return float64(record.GlassCount())
	case MetricMood:
		return meanOf(meals, meal.Entry.MoodAverage)
	case MetricEnergy:
		return meanOf(meals, meal.Entry.EnergyAverage)
	}
	return 0
}

func meanOf(meals []meal.Entry, value func(meal.Entry) float64) float64 {
	if len(meals) == 0 {
		return 0
	}
	sum := 0.0
	for _, m := range meals {
		sum += value(m)
	}
	return sum / float64(len(meals))
}

// label thins axis labels: every day up to a week, every other day up to two weeks,
// otherwise every fourth day plus the final one.
func label(i, days int, date string) string {
	var show bool
	switch {
	case days <= 7:
		show = true
	case days <= 14:
		show = i%2 == 0
	default:
		show = i%4 == 0 || i == days-1
	}
	if !show {
		return ""
	}
	ts, err := time.Parse(util.DateLayout, date)
	if err != nil {
		return date
	}
	return ts.Format(labelLayout)
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// RollingAverage returns the trailing mean of up to window values ending at each index.
func RollingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 0 {
		return out
	}
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		n := i + 1
		if n > window {
			n = window
		}
		out[i] = finite(sum / float64(n))
	}
	return out
}
