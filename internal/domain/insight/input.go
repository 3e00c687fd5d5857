package insight

import (
	"github.com/yanqian/moodsip/internal/domain/hydration"
	"github.com/yanqian/moodsip/internal/domain/meal"
)

// BuildInput summarizes a day for the behavioral model. Averages are truncated to
// integers. It reports false when no meals were logged.
func BuildInput(record hydration.Record, meals []meal.Entry, defaultGoal int) (Input, bool) {
	if len(meals) == 0 {
		return Input{}, false
	}
	var moodBefore, moodAfter, energyBefore, energyAfter int
	inputs := make([]MealInput, 0, len(meals))
	for _, m := range meals {
		moodBefore += m.MoodBefore
		moodAfter += m.MoodAfter
		energyBefore += m.EnergyBefore
		energyAfter += m.EnergyAfter
		inputs = append(inputs, MealInput{
			MealType:     string(m.MealType),
			FoodCategory: string(m.FoodCategory),
			Time:         m.Time,
		})
	}
	n := len(meals)
	return Input{
		MoodBefore:    moodBefore / n,
		MoodAfter:     moodAfter / n,
		EnergyBefore:  energyBefore / n,
		EnergyAfter:   energyAfter / n,
		GlassesLogged: record.GlassCount(),
		HydrationGoal: record.EffectiveGoal(defaultGoal),
		Timestamps:    record.Timestamps(),
		Meals:         inputs,
	}, true
}
