package hydration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/yanqian/moodsip/internal/domain/notification"
	"github.com/yanqian/moodsip/internal/domain/streak"
	apperrors "github.com/yanqian/moodsip/pkg/errors"
	"github.com/yanqian/moodsip/pkg/util"
)

const timeOfDayLayout = "15:04:05"

// Service exposes glass logging and the daily hydration projections.
type Service interface {
	Today(ctx context.Context, userID int64) (Summary, error)
	LogGlass(ctx context.Context, userID int64) (DayView, error)
	UndoGlass(ctx context.Context, userID int64) (DayView, error)
	Day(ctx context.Context, userID int64, date string) (DayView, error)
}

type service struct {
	cfg      Config
	store    Store
	weather  WeatherClient
	settings SettingsProvider
	notifier notification.Notifier
	guard    Guard
	logger   *slog.Logger
	now      func() time.Time
	newID    func() uuid.UUID
}

// NewService wires up the hydration domain.
func NewService(cfg Config, store Store, weather WeatherClient, settings SettingsProvider, notifier notification.Notifier, guard Guard, logger *slog.Logger) Service {
	return &service{
		cfg:      cfg,
		store:    store,
		weather:  weather,
		settings: settings,
		notifier: notifier,
		guard:    guard,
		logger:   logger.With("component", "hydration.service"),
		now:      time.Now,
		newID:    uuid.New,
	}
}

func (s *service) Today(ctx context.Context, userID int64) (Summary, error) {
	settings, err := s.settings.Settings(ctx, userID)
	if err != nil {
		return Summary{}, err
	}
	local := s.localNow(settings.Timezone)
	today := util.DateKey(local)

	temperature := s.temperature(ctx, settings.City)
	goal := ComputeGoal(settings.BaseGoal, temperature)
	if err := s.store.SaveGoal(ctx, userID, today, goal); err != nil {
		return Summary{}, apperrors.Wrap(apperrors.CodeStorage, "failed to save daily goal", err)
	}
	if IsHotWeatherGoal(goal, s.cfg.HotWeatherGoal) {
		s.dispatchHotWeather(ctx, userID, today)
	}

	lookback := s.cfg.StreakLookbackDays
	if lookback <= 0 {
		lookback = streak.DefaultLookback
	}
	records, err := s.store.ListRecords(ctx, userID, util.ShiftDate(today, -(lookback-1)), today)
	if err != nil {
		return Summary{}, apperrors.Wrap(apperrors.CodeStorage, "failed to load hydration history", err)
	}
	record := Record{Date: today, Goal: goal}
	for _, r := range records {
		if r.Date == today {
			record.Logs = r.Logs
		}
	}

	glasses := record.GlassCount()
	remaining := goal - glasses
	if remaining < 0 {
		remaining = 0
	}
	return Summary{
		Date:         today,
		Glasses:      glasses,
		Goal:         goal,
		BaseGoal:     settings.BaseGoal,
		TemperatureC: temperature,
		GoalMet:      glasses >= goal,
		Remaining:    remaining,
		Progress:     progress(glasses, goal),
		Streak:       Streak(today, lookback, settings.BaseGoal, records),
		Timestamps:   record.Timestamps(),
	}, nil
}

func (s *service) LogGlass(ctx context.Context, userID int64) (DayView, error) {
	settings, err := s.settings.Settings(ctx, userID)
	if err != nil {
		return DayView{}, err
	}
	local := s.localNow(settings.Timezone)
	today := util.DateKey(local)

	record, err := s.store.AppendLog(ctx, userID, LogEntry{
		ID:       s.newID(),
		Date:     today,
		Time:     local.Format(timeOfDayLayout),
		LoggedAt: local.UTC(),
	}, s.cfg.MaxGlassesPerDay)
	if errors.Is(err, ErrDailyCapReached) {
		return DayView{}, apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("daily limit of %d glasses reached", s.cfg.MaxGlassesPerDay), err)
	}
	if err != nil {
		return DayView{}, apperrors.Wrap(apperrors.CodeStorage, "failed to log glass", err)
	}

	goal := record.EffectiveGoal(settings.BaseGoal)
	for _, n := range milestonesFor(record.GlassCount(), goal) {
		s.notify(ctx, userID, n)
	}
	s.logger.Info("glass logged", "user_id", userID, "date", today, "glasses", record.GlassCount(), "goal", goal)
	return toDayView(record, settings.BaseGoal), nil
}

func (s *service) UndoGlass(ctx context.Context, userID int64) (DayView, error) {
	settings, err := s.settings.Settings(ctx, userID)
	if err != nil {
		return DayView{}, err
	}
	today := util.DateKey(s.localNow(settings.Timezone))
	record, err := s.store.RemoveLastLog(ctx, userID, today)
	if err != nil {
		return DayView{}, apperrors.Wrap(apperrors.CodeStorage, "failed to remove glass", err)
	}
	return toDayView(record, settings.BaseGoal), nil
}

func (s *service) Day(ctx context.Context, userID int64, date string) (DayView, error) {
	settings, err := s.settings.Settings(ctx, userID)
	if err != nil {
		return DayView{}, err
	}
	parsed, err := util.ParseDate(date)
	if err != nil {
		return DayView{}, apperrors.Wrap(apperrors.CodeInvalidInput, "date must be formatted as YYYY-MM-DD", err)
	}
	key := util.DateKey(parsed)
	if key > util.DateKey(s.localNow(settings.Timezone)) {
		return DayView{}, apperrors.Wrap(apperrors.CodeInvalidInput, "date cannot be in the future", nil)
	}
	record, err := s.store.GetRecord(ctx, userID, key)
	if err != nil {
		return DayView{}, apperrors.Wrap(apperrors.CodeStorage, "failed to load record", err)
	}
	return toDayView(record, settings.BaseGoal), nil
}

// temperature degrades to nil when the provider fails, which leaves the goal unadjusted.
func (s *service) temperature(ctx context.Context, city string) *float64 {
	if s.weather == nil {
		return nil
	}
	t, err := s.weather.Temperature(ctx, city)
	if err != nil {
		s.logger.Warn("temperature unavailable, using base goal", "city", city, "error", err)
		return nil
	}
	return &t
}

func (s *service) dispatchHotWeather(ctx context.Context, userID int64, date string) {
	if s.guard != nil {
		key := fmt.Sprintf("hydration:hot-weather:%d:%s", userID, date)
		acquired, err := s.guard.Acquire(ctx, key, s.cfg.HotWeatherAlertTTL)
		if err != nil {
			s.logger.Warn("hot weather guard failed, notifying anyway", "user_id", userID, "error", err)
		} else if !acquired {
			return
		}
	}
	s.notify(ctx, userID, notification.HotWeather())
}

func (s *service) notify(ctx context.Context, userID int64, n notification.Notification) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, userID, n); err != nil {
		s.logger.Warn("notification failed", "user_id", userID, "kind", n.Kind, "error", err)
	}
}

func (s *service) localNow(timezone string) time.Time {
	fallback := util.LoadLocation(s.cfg.DefaultTimezone, time.UTC)
	return s.now().In(util.LoadLocation(timezone, fallback))
}

func progress(glasses, goal int) float64 {
	if goal <= 0 {
		return 0
	}
	p := float64(glasses) / float64(goal)
	return math.Min(1, p)
}
