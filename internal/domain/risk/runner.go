package risk

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/yanqian/moodsip/internal/domain/hydration"
	"github.com/yanqian/moodsip/internal/domain/notification"
	apperrors "github.com/yanqian/moodsip/pkg/errors"
	"github.com/yanqian/moodsip/pkg/util"
)

// Runner executes the risk check for one user.
type Runner struct {
	cfg       Config
	store     hydration.Store
	predictor Predictor
	notifier  notification.Notifier
	guard     Guard
	settings  SettingsProvider
	logger    *slog.Logger
	now       func() time.Time
}

// NewRunner constructs a Runner.
func NewRunner(cfg Config, store hydration.Store, predictor Predictor, notifier notification.Notifier, guard Guard, settings SettingsProvider, logger *slog.Logger) *Runner {
	if cfg.FeatureDays <= 0 {
		cfg.FeatureDays = DefaultFeatureDays
	}
	return &Runner{
		cfg:       cfg,
		store:     store,
		predictor: predictor,
		notifier:  notifier,
		guard:     guard,
		settings:  settings,
		logger:    logger.With("component", "risk.runner"),
		now:       time.Now,
	}
}

func guardKey(userID int64) string {
	return fmt.Sprintf("risk:check:%d", userID)
}

// Run performs one check. The guard stays held for the job interval after a
// success and is released after a retry or failure so the next attempt can run.
func (r *Runner) Run(ctx context.Context, userID int64, input JobInput) Result {
	result := Result{UserID: userID}
	key := guardKey(userID)
	if r.guard != nil {
		acquired, err := r.guard.Acquire(ctx, key, r.cfg.Interval)
		if err != nil {
			r.logger.Warn("risk guard unavailable", "user_id", userID, "error", err)
			return r.fail(result, OutcomeRetry, err)
		}
		if !acquired {
			result.Outcome = OutcomeSkipped
			return result
		}
	}

	result = r.check(ctx, userID, input, result)
	if result.Outcome != OutcomeSuccess && r.guard != nil {
		if err := r.guard.Release(ctx, key); err != nil {
			r.logger.Warn("risk guard release failed", "user_id", userID, "error", err)
		}
	}
	return result
}

func (r *Runner) check(ctx context.Context, userID int64, input JobInput, result Result) Result {
	timezone := r.cfg.DefaultTimezone
	if r.settings != nil {
		settings, err := r.settings.Settings(ctx, userID)
		if apperrors.IsCode(err, apperrors.CodeNotFound) {
			return r.fail(result, OutcomeFailure, err)
		}
		if err != nil {
			return r.fail(result, OutcomeRetry, err)
		}
		timezone = settings.Timezone
	}
	local := r.now().In(util.LoadLocation(timezone, util.LoadLocation(r.cfg.DefaultTimezone, time.UTC)))
	today := util.DateKey(local)

	recent, err := r.store.RecentRecords(ctx, userID, today, r.cfg.FeatureDays)
	if err != nil {
		return r.fail(result, OutcomeRetry, err)
	}
	temperature := DefaultTemperature
	if input.Temperature != nil {
		temperature = *input.Temperature
	}
	result.Features = ExtractFeatures(today, recent, temperature, local.Hour())

	score, err := r.predictor.Predict(ctx, result.Features)
	if err != nil {
		if apperrors.IsCode(err, apperrors.CodePredictorUnavailable) {
			return r.fail(result, OutcomeRetry, err)
		}
		return r.fail(result, OutcomeFailure, err)
	}
	result.Level = LevelFromScore(score)

	if r.notifier != nil {
		if err := r.notifier.Notify(ctx, userID, notification.RiskReminder(string(result.Level))); err != nil {
			r.logger.Warn("risk reminder not delivered", "user_id", userID, "error", err)
		}
	}
	result.Outcome = OutcomeSuccess
	r.logger.Info("risk check complete", "user_id", userID, "level", result.Level, "streak", result.Features.Streak, "missed_days", result.Features.MissedDays)
	return result
}

func (r *Runner) fail(result Result, outcome Outcome, err error) Result {
	result.Outcome = outcome
	result.Error = err.Error()
	r.logger.Warn("risk check did not complete", "user_id", result.UserID, "outcome", outcome, "error", err)
	return result
}
