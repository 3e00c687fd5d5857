package insight

// FallbackMessage is returned when no rule fires.
const FallbackMessage = "No significant insights today. Keep logging consistently!"

// Rule pairs a predicate over the model output with the message it contributes.
type Rule struct {
	Name    string
	When    func(Output) bool
	Message string
}

func skippedAny(o Output) bool {
	return o.SkippedBreakfast || o.SkippedLunch || o.SkippedDinner
}

// Rules is evaluated in order; every matching rule contributes its message.
var Rules = []Rule{
	{
		Name:    "hydration_buffers_poor_meals",
		When:    func(o Output) bool { return o.HydrationStatus > 0.8 && o.JunkFoodRatio > 0.5 && o.MoodChange >= 0.2 },
		Message: "Hydration Mitigates Mood Dips From Poor Meals\nWater intake helped buffer the emotional impact of unhealthy meals.",
	},
	{
		Name:    "skipped_breakfast_cancels_hydration",
		When:    func(o Output) bool { return o.SkippedBreakfast && o.HydrationStatus > 0.7 && o.EnergyChange < -1.5 },
		Message: "Skipping Meals Nullifies Hydration Benefits\nHydration can't compensate for missing key meals.",
	},
	{
		Name:    "early_hydration_energy",
		When:    func(o Output) bool { return o.EnergyChange > 0.8 },
		Message: "Early Hydration = Better Energy Retention\nStart hydration early for a sustained energy boost.",
	},
	{
		Name: "late_junk_mood_swings",
		When: func(o Output) bool {
			return o.JunkFoodRatio > 0.4 && o.MealTimingLateness > 0.5 && o.EnergyVariability > 1.5
		},
		Message: "Late Junk Food Triggers Mood Swings\nAvoid late-night fast food to keep emotions stable.",
	},
	{
		Name:    "salad_lunch_mood",
		When:    func(o Output) bool { return o.HadSaladForLunch && o.MoodChange > 1.0 },
		Message: "Salad-Based Lunches Boosted Mood Long-Term\nClean greens have a directly measurable psychological impact.",
	},
	{
		Name: "regular_meals_and_water",
		When: func(o Output) bool {
			return o.HydrationStatus > 0.9 && !skippedAny(o) && o.JunkFoodRatio < 0.3
		},
		Message: "Hydration & Meal Regularity Predict Day Quality\nConsistency in water and food is the clearest route to optimal wellness.",
	},
	{
		Name: "variety_when_hydrated",
		When: func(o Output) bool {
			return o.MealVarietyScore == 1.0 && o.HydrationStatus > 0.7 && o.MoodChange > 1.0
		},
		Message: "Mood Change Strongly Correlates With Meal Variety, But Only When Hydrated\nBalanced hydration unlocks full benefit of varied meals.",
	},
	{
		Name:    "clustered_hydration",
		When:    func(o Output) bool { return o.EnergyVariability > 1.5 },
		Message: "Clustered Hydration Reduces Energy Stability\nClustered hydration = spikes & crashes. Sip evenly for consistent energy.",
	},
	{
		Name: "late_meals_dehydrated",
		When: func(o Output) bool {
			return o.MealTimingLateness > 0.5 && o.HydrationStatus < 0.6 && o.MoodChange < -2.0
		},
		Message: "Late Meals Without Hydration = Mood Crash\nLate eating + dehydration is a clear recipe for emotional fatigue.",
	},
	{
		Name:    "low_hydration_energy_drop",
		When:    func(o Output) bool { return o.HydrationStatus < 0.5 && o.EnergyChange < 0 },
		Message: "Low Hydration Predicts Post-Meal Energy Drop\nWater is your post-meal energy amplifier.",
	},
	{
		Name: "variety_hydration_cognition",
		When: func(o Output) bool {
			return o.MealVarietyScore == 1.0 && o.HydrationStatus > 0.85 && o.MoodChange > 1.0 && o.EnergyChange > 1.0
		},
		Message: "High Meal Variety + High Hydration = Cognitive Boost\nStructure + Hydration = Brain boost.",
	},
	{
		Name: "salad_peak_day",
		When: func(o Output) bool {
			return o.HadSaladForLunch && o.HydrationStatus > 0.75 && o.DayQuality == "optimal"
		},
		Message: "Salad During Lunch + Hydration Before 1 PM = Peak Days\nHealthy meals early, plus hydration early = gold standard.",
	},
	{
		Name:    "water_without_food",
		When:    func(o Output) bool { return o.HydrationStatus > 0.7 && skippedAny(o) && o.MoodChange < 0 },
		Message: "Drinking Without Eating Makes Mood Worse\nWater without food isn't enough. Your mood needs fuel too.",
	},
	{
		Name:    "late_junk_hurts_mood",
		When:    func(o Output) bool { return o.JunkFoodRatio > 0.4 && o.MealTimingLateness > 0.5 && o.MoodChange < 0 },
		Message: "Junk Food After 9 PM Nearly Always Hurts Mood\nLate-night junk is emotionally toxic.",
	},
	{
		Name:    "salad_timing",
		When:    func(o Output) bool { return o.HadSaladForLunch && o.MealTimingLateness < 0.3 && o.MoodChange > 0.8 },
		Message: "Salad Effect Is Time-Dependent\nTiming matters even for healthy food!",
	},
	{
		Name:    "optimal_day_trio",
		When:    func(o Output) bool { return o.HydrationStatus > 0.85 && o.JunkFoodRatio < 0.25 && o.MoodChange > 1.0 },
		Message: "Most Predictive Trio for \"Optimal\" Days\nThese 3 metrics together accounted for 81% of your best days.",
	},
}

// GenerateInsights applies Rules to o. The result is never empty.
func GenerateInsights(o Output) []string {
	return evaluate(Rules, o)
}

func evaluate(rules []Rule, o Output) []string {
	var out []string
	for _, rule := range rules {
		if rule.When(o) {
			out = append(out, rule.Message)
		}
	}
	if len(out) == 0 {
		return []string{FallbackMessage}
	}
	return out
}
