package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yanqian/moodsip/internal/domain/hydration"
	"github.com/yanqian/moodsip/internal/domain/meal"
	apperrors "github.com/yanqian/moodsip/pkg/errors"
	"github.com/yanqian/moodsip/pkg/util"
)

// PlaceholderMessage is returned for a day without meals.
const PlaceholderMessage = "Log a few meals and hydration data first."

const (
	defaultMealLookbackDays = 7
	defaultMealSampleSize   = 5
	defaultArchivePrefix    = "meal-insights"
)

// Service produces daily and meal-level insights.
type Service interface {
	Daily(ctx context.Context, userID int64, date string) (DailyReport, error)
	Meals(ctx context.Context, userID int64) (MealReport, error)
}

type service struct {
	cfg       Config
	hydration hydration.Store
	meals     meal.Store
	settings  SettingsProvider
	predictor Predictor
	trends    TrendPredictor
	llm       LLM
	archive   Archive
	logger    *slog.Logger
	now       func() time.Time
	newID     func() uuid.UUID
}

// NewService wires up the insight domain. trends, llm and archive may be nil.
func NewService(
	cfg Config,
	hydrationStore hydration.Store,
	mealStore meal.Store,
	settings SettingsProvider,
	predictor Predictor,
	trends TrendPredictor,
	llm LLM,
	archive Archive,
	logger *slog.Logger,
) Service {
	if cfg.MealLookbackDays <= 0 {
		cfg.MealLookbackDays = defaultMealLookbackDays
	}
	if cfg.MealSampleSize <= 0 {
		cfg.MealSampleSize = defaultMealSampleSize
	}
	if strings.TrimSpace(cfg.ArchivePrefix) == "" {
		cfg.ArchivePrefix = defaultArchivePrefix
	}
	return &service{
		cfg:       cfg,
		hydration: hydrationStore,
		meals:     mealStore,
		settings:  settings,
		predictor: predictor,
		trends:    trends,
		llm:       llm,
		archive:   archive,
		logger:    logger.With("component", "insight.service"),
		now:       time.Now,
		newID:     uuid.New,
	}
}

func (s *service) Daily(ctx context.Context, userID int64, date string) (DailyReport, error) {
	settings, err := s.settings.Settings(ctx, userID)
	if err != nil {
		return DailyReport{}, err
	}
	today := s.today(settings.Timezone)
	key := today
	if strings.TrimSpace(date) != "" {
		parsed, err := util.ParseDate(date)
		if err != nil {
			return DailyReport{}, apperrors.Wrap(apperrors.CodeInvalidInput, "date must be formatted as YYYY-MM-DD", err)
		}
		key = util.DateKey(parsed)
		if key > today {
			return DailyReport{}, apperrors.Wrap(apperrors.CodeInvalidInput, "date cannot be in the future", nil)
		}
	}

	meals, err := s.meals.ListByDate(ctx, userID, key)
	if err != nil {
		return DailyReport{}, apperrors.Wrap(apperrors.CodeStorage, "failed to load meals", err)
	}
	record, err := s.hydration.GetRecord(ctx, userID, key)
	if err != nil {
		return DailyReport{}, apperrors.Wrap(apperrors.CodeStorage, "failed to load hydration record", err)
	}
	input, ok := BuildInput(record, meals, settings.BaseGoal)
	if !ok {
		return DailyReport{Date: key, Insights: []string{PlaceholderMessage}}, nil
	}
	if s.predictor == nil {
		return DailyReport{Date: key, Insights: []string{}, Degraded: true}, nil
	}

	output, err := s.predictor.Predict(ctx, input)
	if err != nil {
		s.logger.Warn("insight predictor failed", "user_id", userID, "date", key, "error", err)
		return DailyReport{Date: key, Insights: []string{}, Degraded: true}, nil
	}
	return DailyReport{
		Date:       key,
		Insights:   GenerateInsights(output),
		DayQuality: output.DayQuality,
	}, nil
}

func (s *service) Meals(ctx context.Context, userID int64) (MealReport, error) {
	settings, err := s.settings.Settings(ctx, userID)
	if err != nil {
		return MealReport{}, err
	}
	today := s.today(settings.Timezone)
	entries, err := s.meals.ListRange(ctx, userID, util.ShiftDate(today, -(s.cfg.MealLookbackDays-1)), today)
	if err != nil {
		return MealReport{}, apperrors.Wrap(apperrors.CodeStorage, "failed to load meals", err)
	}
	if len(entries) > s.cfg.MealSampleSize {
		entries = entries[len(entries)-s.cfg.MealSampleSize:]
	}

	report := MealReport{
		GeneratedAt: s.now().UTC(),
		Meals:       entries,
		Insights:    []string{},
	}
	if len(entries) > 0 {
		report.Insights = append(report.Insights, s.trendInsights(ctx, userID, entries)...)
		if s.llm != nil {
			result, err := s.llm.MealInsights(ctx, entries)
			if err != nil {
				s.logger.Warn("llm meal insights failed", "user_id", userID, "error", err)
			} else {
				report.Usage = report.Usage.Add(result.Usage)
				for _, msg := range result.Insights {
					if trimmed := strings.TrimSpace(msg); trimmed != "" {
						report.Insights = append(report.Insights, trimmed)
					}
				}
			}
		}
	}
	if len(report.Insights) == 0 {
		report.Insights = []string{MealFallbackMessage}
	}

	report.ArchiveKey = s.archiveReport(ctx, userID, today, report)
	s.logger.Info("meal insights generated", "user_id", userID, "meals", len(entries), "insights", len(report.Insights), "total_tokens", report.Usage.TotalTokens)
	return report, nil
}

func (s *service) trendInsights(ctx context.Context, userID int64, entries []meal.Entry) []string {
	if s.trends == nil {
		return nil
	}
	var out []string
	for _, entry := range entries {
		trend, err := s.trends.Trend(ctx, entry)
		if err != nil {
			s.logger.Warn("meal trend failed", "user_id", userID, "meal_id", entry.ID, "error", err)
			continue
		}
		if msg := trendMessage(entry, trend); msg != "" {
			out = append(out, msg)
		}
	}
	return out
}

// archiveReport stores the report and returns its key, or "" when archiving is off or failed.
func (s *service) archiveReport(ctx context.Context, userID int64, date string, report MealReport) string {
	if s.archive == nil {
		return ""
	}
	payload, err := json.Marshal(report)
	if err != nil {
		s.logger.Warn("encode meal report failed", "user_id", userID, "error", err)
		return ""
	}
	key := fmt.Sprintf("%s/%d/%s/%s.json", s.cfg.ArchivePrefix, userID, date, s.newID())
	if err := s.archive.Put(ctx, key, payload, "application/json"); err != nil {
		s.logger.Warn("archive meal report failed", "user_id", userID, "key", key, "error", err)
		return ""
	}
	return key
}

func (s *service) today(timezone string) string {
	fallback := util.LoadLocation(s.cfg.DefaultTimezone, time.UTC)
	return util.DateKey(s.now().In(util.LoadLocation(timezone, fallback)))
}
