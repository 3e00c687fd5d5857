package analytics

import (
	"context"

	"github.com/yanqian/moodsip/internal/domain/auth"
)

// DefaultWindows are the trailing windows offered to clients.
var DefaultWindows = []int{5, 7, 14, 28}

// Config holds runtime knobs for the analytics service.
type Config struct {
	Windows            []int
	StreakLookbackDays int
	DefaultTimezone    string
}

// WindowStats aggregates one trailing window.
type WindowStats struct {
	Days               int     `json:"days"`
	AverageGlasses     float64 `json:"averageGlasses"`
	GoalMetDays        int     `json:"goalMetDays"`
	MealsLogged        int     `json:"mealsLogged"`
	AverageMoodDelta   float64 `json:"averageMoodDelta"`
	AverageEnergyDelta float64 `json:"averageEnergyDelta"`
}

// Summary is the analytics overview for the user's current day.
type Summary struct {
	Date            string        `json:"date"`
	HydrationStreak int           `json:"hydrationStreak"`
	MealStreak      int           `json:"mealStreak"`
	Windows         []WindowStats `json:"windows"`
}

// SettingsProvider resolves per-user settings.
type SettingsProvider interface {
	Settings(ctx context.Context, userID int64) (auth.Settings, error)
}
