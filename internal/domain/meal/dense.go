package meal

import (
	"github.com/yanqian/moodsip/internal/domain/streak"
	"github.com/yanqian/moodsip/pkg/util"
)

// GroupByDate buckets entries by their date key, preserving input order.
func GroupByDate(entries []Entry) map[string][]Entry {
	out := make(map[string][]Entry)
	for _, entry := range entries {
		out[entry.Date] = append(out[entry.Date], entry)
	}
	return out
}

// DenseRun lays meals onto consecutive days ending at today, most recent first.
func DenseRun(today string, days int, entries []Entry) []Day {
	byDate := GroupByDate(entries)
	keys := util.DaysBack(today, days)
	out := make([]Day, 0, len(keys))
	for _, key := range keys {
		out = append(out, Day{Date: key, Meals: byDate[key]})
	}
	return out
}

// AllMealTypesLogged qualifies a day on which every meal type was logged.
func AllMealTypesLogged(d Day) bool {
	seen := make(map[Type]bool, len(AllTypes))
	for _, m := range d.Meals {
		seen[m.MealType] = true
	}
	for _, t := range AllTypes {
		if !seen[t] {
			return false
		}
	}
	return true
}

// Streak counts consecutive days ending at today on which all meal types were logged.
func Streak(today string, lookback int, entries []Entry) int {
	if lookback <= 0 {
		lookback = streak.DefaultLookback
	}
	return streak.Evaluate(DenseRun(today, lookback, entries), today, lookback, AllMealTypesLogged)
}
