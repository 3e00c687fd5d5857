package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/yanqian/moodsip/internal/domain/hydration"
	"github.com/yanqian/moodsip/internal/domain/meal"
	"github.com/yanqian/moodsip/internal/domain/streak"
	apperrors "github.com/yanqian/moodsip/pkg/errors"
	"github.com/yanqian/moodsip/pkg/util"
)

// Service serves chart series and the rolling summary.
type Service interface {
	// Series charts metric over days; rolling > 0 adds a trailing average of that width.
	Series(ctx context.Context, userID int64, days int, metric string, rolling int) (Series, error)
	Summary(ctx context.Context, userID int64) (Summary, error)
}

type service struct {
	cfg       Config
	hydration hydration.Store
	meals     meal.Store
	settings  SettingsProvider
	logger    *slog.Logger
	now       func() time.Time
}

// NewService wires up the analytics domain.
func NewService(cfg Config, hydrationStore hydration.Store, mealStore meal.Store, settings SettingsProvider, logger *slog.Logger) Service {
	if len(cfg.Windows) == 0 {
		cfg.Windows = DefaultWindows
	}
	if cfg.StreakLookbackDays <= 0 {
		cfg.StreakLookbackDays = streak.DefaultLookback
	}
	return &service{
		cfg:       cfg,
		hydration: hydrationStore,
		meals:     mealStore,
		settings:  settings,
		logger:    logger.With("component", "analytics.service"),
		now:       time.Now,
	}
}

func (s *service) Series(ctx context.Context, userID int64, days int, metric string, rolling int) (Series, error) {
	if !slices.Contains(s.cfg.Windows, days) {
		return Series{}, apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("days must be one of %v", s.cfg.Windows), nil)
	}
	if rolling < 0 || rolling > days {
		return Series{}, apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("rolling must be between 0 and %d", days), nil)
	}
	m, err := ParseMetric(metric)
	if err != nil {
		return Series{}, apperrors.Wrap(apperrors.CodeInvalidInput, err.Error(), nil)
	}
	settings, err := s.settings.Settings(ctx, userID)
	if err != nil {
		return Series{}, err
	}
	today := s.today(settings.Timezone)
	records, meals, err := s.snapshot(ctx, userID, today, days)
	if err != nil {
		return Series{}, err
	}
	series := BuildSeries(today, days, m, records, meals)
	if rolling > 0 {
		series.RollingWindow = rolling
		series.Rolling = RollingAverage(series.Values, rolling)
	}
	return series, nil
}

func (s *service) Summary(ctx context.Context, userID int64) (Summary, error) {
	settings, err := s.settings.Settings(ctx, userID)
	if err != nil {
		return Summary{}, err
	}
	today := s.today(settings.Timezone)

	span := s.cfg.StreakLookbackDays
	for _, w := range s.cfg.Windows {
		span = max(span, w)
	}
	records, meals, err := s.snapshot(ctx, userID, today, span)
	if err != nil {
		return Summary{}, err
	}

	recordList := make([]hydration.Record, 0, len(records))
	for _, r := range records {
		recordList = append(recordList, r)
	}
	var mealList []meal.Entry
	for _, entries := range meals {
		mealList = append(mealList, entries...)
	}

	summary := Summary{
		Date:            today,
		HydrationStreak: hydration.Streak(today, s.cfg.StreakLookbackDays, settings.BaseGoal, recordList),
		MealStreak:      meal.Streak(today, s.cfg.StreakLookbackDays, mealList),
		Windows:         make([]WindowStats, 0, len(s.cfg.Windows)),
	}
	for _, w := range s.cfg.Windows {
		summary.Windows = append(summary.Windows, Window(today, w, settings.BaseGoal, records, meals))
	}
	return summary, nil
}

func (s *service) snapshot(ctx context.Context, userID int64, today string, days int) (map[string]hydration.Record, map[string][]meal.Entry, error) {
	from := util.ShiftDate(today, -(days - 1))
	records, err := s.hydration.ListRecords(ctx, userID, from, today)
	if err != nil {
		return nil, nil, apperrors.Wrap(apperrors.CodeStorage, "failed to load hydration history", err)
	}
	entries, err := s.meals.ListRange(ctx, userID, from, today)
	if err != nil {
		return nil, nil, apperrors.Wrap(apperrors.CodeStorage, "failed to load meal history", err)
	}
	byDate := make(map[string]hydration.Record, len(records))
	for _, r := range records {
		byDate[r.Date] = r
	}
	return byDate, meal.GroupByDate(entries), nil
}

func (s *service) today(timezone string) string {
	fallback := util.LoadLocation(s.cfg.DefaultTimezone, time.UTC)
	return util.DateKey(s.now().In(util.LoadLocation(timezone, fallback)))
}
