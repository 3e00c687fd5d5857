package risk

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Scheduler runs the risk check over every user, retrying transient outcomes.
type Scheduler struct {
	cfg      Config
	runner   *Runner
	users    UserLister
	settings SettingsProvider
	weather  WeatherClient
	logger   *slog.Logger
	sleep    func(ctx context.Context, d time.Duration) error
}

// NewScheduler constructs a Scheduler. weather may be nil, in which case jobs without
// an explicit temperature use DefaultTemperature.
func NewScheduler(cfg Config, runner *Runner, users UserLister, settings SettingsProvider, weather WeatherClient, logger *slog.Logger) *Scheduler {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	return &Scheduler{
		cfg:      cfg,
		runner:   runner,
		users:    users,
		settings: settings,
		weather:  weather,
		logger:   logger.With("component", "risk.scheduler"),
		sleep:    sleepContext,
	}
}

// RunAll checks every user once.
func (s *Scheduler) RunAll(ctx context.Context, input JobInput) (Report, error) {
	report := Report{StartedAt: time.Now().UTC()}
	ids, err := s.users.ListIDs(ctx)
	if err != nil {
		return report, fmt.Errorf("list users: %w", err)
	}
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Results = append(report.Results, s.runUser(ctx, id, s.jobInput(ctx, id, input)))
	}
	s.logger.Info("risk pass finished", "users", len(ids), "outcome", report.Outcome())
	return report, nil
}

// RunUser checks a single user with the same retry and temperature rules as RunAll.
func (s *Scheduler) RunUser(ctx context.Context, userID int64, input JobInput) Result {
	return s.runUser(ctx, userID, s.jobInput(ctx, userID, input))
}

// Start runs RunAll on every interval tick until ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	if s.cfg.Interval <= 0 {
		return
	}
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()
	for {
		if _, err := s.RunAll(ctx, JobInput{}); err != nil && ctx.Err() == nil {
			s.logger.Error("risk pass failed", "error", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *Scheduler) runUser(ctx context.Context, userID int64, input JobInput) Result {
	var result Result
	for attempt := 1; attempt <= s.cfg.MaxAttempts; attempt++ {
		result = s.runner.Run(ctx, userID, input)
		result.Attempts = attempt
		if result.Outcome != OutcomeRetry || attempt == s.cfg.MaxAttempts {
			return result
		}
		if err := s.sleep(ctx, s.cfg.RetryBackoff*time.Duration(attempt)); err != nil {
			return result
		}
	}
	return result
}

func (s *Scheduler) jobInput(ctx context.Context, userID int64, input JobInput) JobInput {
	if input.Temperature != nil || s.weather == nil || s.settings == nil {
		return input
	}
	settings, err := s.settings.Settings(ctx, userID)
	if err != nil {
		return input
	}
	t, err := s.weather.Temperature(ctx, settings.City)
	if err != nil {
		s.logger.Warn("temperature unavailable, using default", "user_id", userID, "city", settings.City, "error", err)
		return input
	}
	return JobInput{Temperature: &t}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
