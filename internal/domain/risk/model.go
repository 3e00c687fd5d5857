package risk

import (
	"context"
	"time"

	"github.com/yanqian/moodsip/internal/domain/auth"
)

// Level is the hydration risk reported to the user.
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// LevelFromScore maps the predictor's score: 2 is high, 1 is medium, anything else low.
func LevelFromScore(score int) Level {
	switch score {
	case 2:
		return LevelHigh
	case 1:
		return LevelMedium
	default:
		return LevelLow
	}
}

// Features is the request body of the risk predictor.
type Features struct {
	Streak     int     `json:"streak"`
	AvgGlasses float64 `json:"avg_glasses"`
	MissedDays int     `json:"missed_days"`
	Temp       float64 `json:"temp"`
	TimeOfDay  string  `json:"time_of_day"`
}

// DefaultTemperature is used when a job carries no temperature.
const DefaultTemperature = 25.0

// JobInput is passed by value into every run.
type JobInput struct {
	// Temperature overrides the per-user lookup when set.
	Temperature *float64
}

// Outcome tells the external scheduler what to do with a run.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeRetry   Outcome = "retry"
	OutcomeFailure Outcome = "failure"
	// OutcomeSkipped marks a run coalesced into one already holding the user's guard.
	OutcomeSkipped Outcome = "skipped"
)

// Result describes a single user's run.
type Result struct {
	UserID   int64    `json:"userId"`
	Outcome  Outcome  `json:"outcome"`
	Level    Level    `json:"level,omitempty"`
	Features Features `json:"features"`
	Attempts int      `json:"attempts"`
	Error    string   `json:"error,omitempty"`
}

// Report aggregates a scheduler pass.
type Report struct {
	StartedAt time.Time `json:"startedAt"`
	Results   []Result  `json:"results"`
}

// Outcome folds per-user outcomes: any failure wins, then any retry, otherwise success.
func (r Report) Outcome() Outcome {
	out := OutcomeSuccess
	for _, res := range r.Results {
		switch res.Outcome {
		case OutcomeFailure:
			return OutcomeFailure
		case OutcomeRetry:
			out = OutcomeRetry
		}
	}
	return out
}

// Config holds runtime knobs for the risk job.
type Config struct {
	Interval        time.Duration
	FeatureDays     int
	MaxAttempts     int
	RetryBackoff    time.Duration
	DefaultTimezone string
}

// Predictor scores hydration risk.
type Predictor interface {
	Predict(ctx context.Context, features Features) (int, error)
}

// Guard coalesces overlapping runs for the same user.
type Guard interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

// UserLister enumerates the users the scheduler visits.
type UserLister interface {
	ListIDs(ctx context.Context) ([]int64, error)
}

// SettingsProvider resolves per-user settings.
type SettingsProvider interface {
	Settings(ctx context.Context, userID int64) (auth.Settings, error)
}

// WeatherClient resolves the temperature of a user's city.
type WeatherClient interface {
	Temperature(ctx context.Context, city string) (float64, error)
}
