package risk

import (
	"github.com/yanqian/moodsip/internal/domain/hydration"
)

// DefaultFeatureDays is how many stored days feed the features.
const DefaultFeatureDays = 7

// TimeOfDay buckets a local hour: 5-11 morning, 12-17 afternoon, otherwise evening.
func TimeOfDay(hour int) string {
	switch {
	case hour >= 5 && hour <= 11:
		return "morning"
	case hour >= 12 && hour <= 17:
		return "afternoon"
	default:
		return "evening"
	}
}

// ExtractFeatures walks recent, the most recently stored days first. A day with
// glasses extends the streak; an empty day counts as missed and ends the walk unless
// it is today. Callers bound recent to the configured number of stored days.
func ExtractFeatures(today string, recent []hydration.Record, temperature float64, hour int) Features {
	streak, missed, total, counted := 0, 0, 0, 0
	for _, record := range recent {
		glasses := record.GlassCount()
		if glasses > 0 {
			streak++
			total += glasses
			counted++
			continue
		}
		missed++
		if record.Date < today {
			break
		}
	}
	avg := 0.0
	if counted > 0 {
		avg = float64(total) / float64(counted)
	}
	return Features{
		Streak:     streak,
		AvgGlasses: avg,
		MissedDays: missed,
		Temp:       temperature,
		TimeOfDay:  TimeOfDay(hour),
	}
}
