package insight

import (
	"context"
	"time"

	"github.com/yanqian/moodsip/internal/domain/auth"
	"github.com/yanqian/moodsip/internal/domain/meal"
	"github.com/yanqian/moodsip/pkg/metrics"
)

// Output is the behavioral model's prediction for one day.
type Output struct {
	HydrationStatus    float64 `json:"hydrationStatus"`
	MoodChange         float64 `json:"moodChange"`
	EnergyChange       float64 `json:"energyChange"`
	EnergyVariability  float64 `json:"energyVariability"`
	MealTimingLateness float64 `json:"mealTimingLateness"`
	JunkFoodRatio      float64 `json:"junkFoodRatio"`
	MealVarietyScore   float64 `json:"mealVarietyScore"`
	SkippedBreakfast   bool    `json:"skippedBreakfast"`
	SkippedLunch       bool    `json:"skippedLunch"`
	SkippedDinner      bool    `json:"skippedDinner"`
	HadSaladForLunch   bool    `json:"hadSaladForLunch"`
	DayQuality         string  `json:"dayQuality"`
}

// MealInput is the per-meal slice of Input.
type MealInput struct {
	MealType     string `json:"mealType"`
	FoodCategory string `json:"foodCategory"`
	Time         string `json:"time"`
}

// Input is the day summary sent to the behavioral model.
type Input struct {
	MoodBefore    int         `json:"moodBefore"`
	MoodAfter     int         `json:"moodAfter"`
	EnergyBefore  int         `json:"energyBefore"`
	EnergyAfter   int         `json:"energyAfter"`
	GlassesLogged int         `json:"glassesLogged"`
	HydrationGoal int         `json:"hydrationGoal"`
	Timestamps    []string    `json:"timestamps"`
	Meals         []MealInput `json:"meals"`
}

// Trend directions reported by the meal trend model.
const (
	TrendIncrease = "increase"
	TrendDecrease = "decrease"
)

// MealTrend is the trend model's verdict for a single meal.
type MealTrend struct {
	MoodTrend   string `json:"mood_trend"`
	EnergyTrend string `json:"energy_trend"`
}

// LLMResult carries the LLM generated insights and the tokens spent.
type LLMResult struct {
	Insights []string
	Usage    metrics.TokenUsage
}

// DailyReport is the rule engine output for one day.
type DailyReport struct {
	Date       string   `json:"date"`
	Insights   []string `json:"insights"`
	DayQuality string   `json:"dayQuality,omitempty"`
	// Degraded is set when the predictor failed and Insights is empty.
	Degraded bool `json:"degraded"`
}

// MealReport is the per-meal and LLM insight report over recent meals.
type MealReport struct {
	GeneratedAt time.Time          `json:"generatedAt"`
	Meals       []meal.Entry       `json:"meals"`
	Insights    []string           `json:"insights"`
	Usage       metrics.TokenUsage `json:"usage"`
	ArchiveKey  string             `json:"archiveKey,omitempty"`
}

// Config holds runtime knobs for the insight service.
type Config struct {
	DefaultTimezone  string
	MealLookbackDays int
	MealSampleSize   int
	ArchivePrefix    string
}

// Predictor returns the behavioral model's output for a day.
type Predictor interface {
	Predict(ctx context.Context, in Input) (Output, error)
}

// TrendPredictor classifies the mood and energy trend of one meal.
type TrendPredictor interface {
	Trend(ctx context.Context, entry meal.Entry) (MealTrend, error)
}

// LLM writes free-form insights about recent meals.
type LLM interface {
	MealInsights(ctx context.Context, meals []meal.Entry) (LLMResult, error)
}

// Archive keeps a copy of generated reports.
type Archive interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
}

// SettingsProvider resolves per-user settings.
type SettingsProvider interface {
	Settings(ctx context.Context, userID int64) (auth.Settings, error)
}
