package insight

import "github.com/yanqian/moodsip/internal/domain/meal"

// MealFallbackMessage is returned when no meal insight could be produced.
const MealFallbackMessage = "No strong insights today - keep logging meals!"

// trendMessage turns a meal's trend verdict into a message, or "" when the trend is unremarkable.
func trendMessage(entry meal.Entry, trend MealTrend) string {
	switch {
	case trend.MoodTrend == TrendIncrease && trend.EnergyTrend == TrendDecrease:
		return entry.MealName + " boosted mood but left you tired later."
	case trend.MoodTrend == TrendDecrease && trend.EnergyTrend == TrendDecrease:
		return entry.MealName + " didn't go well. Consider lighter options."
	}
	return ""
}
