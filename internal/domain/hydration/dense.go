package hydration

import (
	"github.com/yanqian/moodsip/internal/domain/streak"
	"github.com/yanqian/moodsip/pkg/util"
)

// DenseRun lays records onto consecutive days ending at today, most recent first.
// Days without a stored record become empty records.
func DenseRun(today string, days int, records []Record) []Record {
	byDate := make(map[string]Record, len(records))
	for _, record := range records {
		byDate[record.Date] = record
	}
	keys := util.DaysBack(today, days)
	out := make([]Record, 0, len(keys))
	for _, key := range keys {
		record, ok := byDate[key]
		if !ok {
			record = Record{Date: key}
		}
		out = append(out, record)
	}
	return out
}

// GoalMet qualifies a day whose glass count reached its effective goal.
func GoalMet(defaultGoal int) func(Record) bool {
	return func(r Record) bool {
		return r.GlassCount() >= r.EffectiveGoal(defaultGoal)
	}
}

// Streak counts consecutive goal-met days ending at today.
func Streak(today string, lookback, defaultGoal int, records []Record) int {
	if lookback <= 0 {
		lookback = streak.DefaultLookback
	}
	return streak.Evaluate(DenseRun(today, lookback, records), today, lookback, GoalMet(defaultGoal))
}
