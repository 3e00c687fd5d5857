package hydration

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/yanqian/moodsip/internal/domain/auth"
)

// LogEntry is one logged glass.
type LogEntry struct {
	ID       uuid.UUID `json:"id"`
	Date     string    `json:"date"`
	Time     string    `json:"time"`
	LoggedAt time.Time `json:"loggedAt"`
}

// Record is the per-day hydration snapshot. The glass count is always len(Logs).
type Record struct {
	Date string
	// Goal is the goal persisted for the day, 0 when none was recorded.
	Goal int
	Logs []LogEntry
}

// DateKey implements streak.Dated.
func (r Record) DateKey() string { return r.Date }

// GlassCount returns the number of glasses logged that day.
func (r Record) GlassCount() int { return len(r.Logs) }

// EffectiveGoal falls back to def when the day has no recorded goal.
func (r Record) EffectiveGoal(def int) int {
	if r.Goal > 0 {
		return r.Goal
	}
	return def
}

// Timestamps returns the time-of-day values in insertion order.
func (r Record) Timestamps() []string {
	out := make([]string, 0, len(r.Logs))
	for _, entry := range r.Logs {
		out = append(out, entry.Time)
	}
	return out
}

// DayView is the serialized form of a Record.
type DayView struct {
	Date       string   `json:"date"`
	Glasses    int      `json:"glasses"`
	Goal       int      `json:"goal"`
	GoalMet    bool     `json:"goalMet"`
	Timestamps []string `json:"timestamps"`
}

// Summary is returned for the current day.
type Summary struct {
	Date         string   `json:"date"`
	Glasses      int      `json:"glasses"`
	Goal         int      `json:"goal"`
	BaseGoal     int      `json:"baseGoal"`
	TemperatureC *float64 `json:"temperatureC,omitempty"`
	GoalMet      bool     `json:"goalMet"`
	Remaining    int      `json:"remaining"`
	Progress     float64  `json:"progress"`
	Streak       int      `json:"streak"`
	Timestamps   []string `json:"timestamps"`
}

// Config holds runtime knobs for the hydration service.
type Config struct {
	HotWeatherGoal     int
	StreakLookbackDays int
	MaxGlassesPerDay   int
	DefaultTimezone    string
	HotWeatherAlertTTL time.Duration
}

// ErrDailyCapReached is returned by Store.AppendLog when the day already holds limit glasses.
var ErrDailyCapReached = errors.New("daily glass cap reached")

// Store persists per-day hydration data. Records for days without data are empty, not errors.
type Store interface {
	// AppendLog adds entry to its day unless the day already holds limit glasses.
	// The check and the write are atomic. A limit <= 0 disables the cap.
	AppendLog(ctx context.Context, userID int64, entry LogEntry, limit int) (Record, error)
	RemoveLastLog(ctx context.Context, userID int64, date string) (Record, error)
	SaveGoal(ctx context.Context, userID int64, date string, goal int) error
	GetRecord(ctx context.Context, userID int64, date string) (Record, error)
	// ListRecords returns days with data in [from, to], ascending.
	ListRecords(ctx context.Context, userID int64, from, to string) ([]Record, error)
	// RecentRecords returns up to limit days with data on or before until, most recent first.
	RecentRecords(ctx context.Context, userID int64, until string, limit int) ([]Record, error)
}

// WeatherClient resolves the temperature that drives the goal adjustment.
type WeatherClient interface {
	Temperature(ctx context.Context, city string) (float64, error)
}

// SettingsProvider resolves the per-user settings.
type SettingsProvider interface {
	Settings(ctx context.Context, userID int64) (auth.Settings, error)
}

// Guard hands out a key once per TTL.
type Guard interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

func toDayView(record Record, defaultGoal int) DayView {
	goal := record.EffectiveGoal(defaultGoal)
	return DayView{
		Date:       record.Date,
		Glasses:    record.GlassCount(),
		Goal:       goal,
		GoalMet:    record.GlassCount() >= goal,
		Timestamps: record.Timestamps(),
	}
}
