package analytics

import (
	"github.com/yanqian/moodsip/internal/domain/hydration"
	"github.com/yanqian/moodsip/internal/domain/meal"
	"github.com/yanqian/moodsip/pkg/util"
)

// Window aggregates the days trailing today. Days without data count as zero glasses.
func Window(today string, days, defaultGoal int, recordsByDate map[string]hydration.Record, mealsByDate map[string][]meal.Entry) WindowStats {
	stats := WindowStats{Days: days}
	if days <= 0 {
		return stats
	}
	glasses := 0
	moodDelta, energyDelta := 0, 0
	for _, date := range util.DaysBack(today, days) {
		record := recordsByDate[date]
		record.Date = date
		glasses += record.GlassCount()
		if hydration.GoalMet(defaultGoal)(record) {
			stats.GoalMetDays++
		}
		for _, m := range mealsByDate[date] {
			stats.MealsLogged++
			moodDelta += m.MoodAfter - m.MoodBefore
			energyDelta += m.EnergyAfter - m.EnergyBefore
		}
	}
	stats.AverageGlasses = finite(float64(glasses) / float64(days))
	if stats.MealsLogged > 0 {
		stats.AverageMoodDelta = finite(float64(moodDelta) / float64(stats.MealsLogged))
		stats.AverageEnergyDelta = finite(float64(energyDelta) / float64(stats.MealsLogged))
	}
	return stats
}
