package risk

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/moodsip/internal/domain/auth"
	"github.com/yanqian/moodsip/internal/domain/hydration"
	"github.com/yanqian/moodsip/internal/domain/notification"
	apperrors "github.com/yanqian/moodsip/pkg/errors"
)

func TestRunnerSuccessNotifiesAndHoldsGuard(t *testing.T) {
	predictor := &stubPredictor{scores: []int{2}}
	notifier := &recordingNotifier{}
	guard := newStubGuard()
	runner := newRunnerUnderTest(predictor, notifier, guard)
	temp := 33.0

	result := runner.Run(context.Background(), 7, JobInput{Temperature: &temp})
	require.Equal(t, OutcomeSuccess, result.Outcome)
	require.Equal(t, LevelHigh, result.Level)
	require.Equal(t, 33.0, predictor.got.Temp)
	require.Equal(t, "morning", predictor.got.TimeOfDay)
	require.Equal(t, 2, predictor.got.Streak)
	require.Len(t, notifier.sent, 1)
	require.Equal(t, notification.RiskReminder("high"), notifier.sent[0])

	again := runner.Run(context.Background(), 7, JobInput{})
	require.Equal(t, OutcomeSkipped, again.Outcome)
	require.Equal(t, 1, predictor.calls)
}

func TestRunnerDefaultsTemperature(t *testing.T) {
	predictor := &stubPredictor{scores: []int{0}}
	runner := newRunnerUnderTest(predictor, &recordingNotifier{}, nil)

	result := runner.Run(context.Background(), 7, JobInput{})
	require.Equal(t, OutcomeSuccess, result.Outcome)
	require.Equal(t, DefaultTemperature, predictor.got.Temp)
	require.Equal(t, LevelLow, result.Level)
}

func TestRunnerClassifiesPredictorErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Outcome
	}{
		{"unavailable", apperrors.Wrap(apperrors.CodePredictorUnavailable, "risk predictor returned 503", nil), OutcomeRetry},
		{"bad response", apperrors.Wrap(apperrors.CodePredictor, "decode risk response", errors.New("eof")), OutcomeFailure},
		{"unexpected", errors.New("boom"), OutcomeFailure},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			guard := newStubGuard()
			notifier := &recordingNotifier{}
			runner := newRunnerUnderTest(&stubPredictor{err: tc.err}, notifier, guard)

			result := runner.Run(context.Background(), 7, JobInput{})
			require.Equal(t, tc.want, result.Outcome)
			require.NotEmpty(t, result.Error)
			require.Empty(t, notifier.sent)
			require.Empty(t, guard.held, "guard must be released")
		})
	}
}

func TestSchedulerRetriesTransientOutcomes(t *testing.T) {
	predictor := &stubPredictor{
		errs:   []error{apperrors.Wrap(apperrors.CodePredictorUnavailable, "timeout", nil)},
		scores: []int{1},
	}
	notifier := &recordingNotifier{}
	runner := newRunnerUnderTest(predictor, notifier, newStubGuard())
	scheduler := NewScheduler(Config{MaxAttempts: 3, RetryBackoff: time.Second}, runner, stubUsers{7}, nil, nil, discardLogger())
	var slept []time.Duration
	scheduler.sleep = func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}

	report, err := scheduler.RunAll(context.Background(), JobInput{})
	require.NoError(t, err)
	require.Len(t, report.Results, 1)
	require.Equal(t, OutcomeSuccess, report.Results[0].Outcome)
	require.Equal(t, 2, report.Results[0].Attempts)
	require.Equal(t, LevelMedium, report.Results[0].Level)
	require.Equal(t, []time.Duration{time.Second}, slept)
	require.Equal(t, OutcomeSuccess, report.Outcome())
}

func TestSchedulerGivesUpAfterMaxAttempts(t *testing.T) {
	unavailable := apperrors.Wrap(apperrors.CodePredictorUnavailable, "down", nil)
	predictor := &stubPredictor{errs: []error{unavailable, unavailable, unavailable}}
	runner := newRunnerUnderTest(predictor, &recordingNotifier{}, newStubGuard())
	scheduler := NewScheduler(Config{MaxAttempts: 2}, runner, stubUsers{7, 8}, nil, nil, discardLogger())
	scheduler.sleep = func(context.Context, time.Duration) error { return nil }

	report, err := scheduler.RunAll(context.Background(), JobInput{})
	require.NoError(t, err)
	require.Equal(t, OutcomeRetry, report.Results[0].Outcome)
	require.Equal(t, 2, report.Results[0].Attempts)
	require.Equal(t, OutcomeRetry, report.Outcome())
}

func TestSchedulerResolvesTemperaturePerUser(t *testing.T) {
	predictor := &stubPredictor{scores: []int{1}}
	runner := newRunnerUnderTest(predictor, &recordingNotifier{}, nil)
	scheduler := NewScheduler(Config{}, runner, stubUsers{7}, stubSettings{}, stubWeather{temp: 29}, discardLogger())

	_, err := scheduler.RunAll(context.Background(), JobInput{})
	require.NoError(t, err)
	require.Equal(t, 29.0, predictor.got.Temp)

	explicit := 12.0
	_, err = scheduler.RunAll(context.Background(), JobInput{Temperature: &explicit})
	require.NoError(t, err)
	require.Equal(t, 12.0, predictor.got.Temp)
}

func TestRunnerClassifiesSettingsErrors(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		outcome Outcome
	}{
		{name: "missing user", err: apperrors.Wrap(apperrors.CodeNotFound, "user not found", nil), outcome: OutcomeFailure},
		{name: "user store down", err: apperrors.Wrap("auth_error", "failed to load user", errors.New("conn refused")), outcome: OutcomeRetry},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			predictor := &stubPredictor{scores: []int{1}}
			guard := newStubGuard()
			runner := newRunnerUnderTest(predictor, &recordingNotifier{}, guard)
			runner.settings = stubSettings{err: tc.err}

			result := runner.Run(context.Background(), 7, JobInput{})
			require.Equal(t, tc.outcome, result.Outcome)
			require.Zero(t, predictor.calls)
			require.Empty(t, guard.held)
		})
	}
}

func newRunnerUnderTest(predictor Predictor, notifier notification.Notifier, guard Guard) *Runner {
	store := &stubStore{records: []hydration.Record{
		day("2024-07-10", 3),
		day("2024-07-09", 7),
		day("2024-07-07", 0),
	}}
	runner := NewRunner(Config{Interval: 6 * time.Hour, DefaultTimezone: "UTC"}, store, predictor, notifier, guard, stubSettings{}, discardLogger())
	runner.now = func() time.Time { return time.Date(2024, 7, 10, 9, 0, 0, 0, time.UTC) }
	return runner
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubStore struct {
	hydration.Store
	records []hydration.Record
}

func (s *stubStore) RecentRecords(_ context.Context, _ int64, until string, limit int) ([]hydration.Record, error) {
	var out []hydration.Record
	for _, r := range s.records {
		if r.Date <= until && len(out) < limit {
			out = append(out, r)
		}
	}
	return out, nil
}

type stubPredictor struct {
	scores []int
	errs   []error
	err    error
	calls  int
	got    Features
}

func (p *stubPredictor) Predict(_ context.Context, features Features) (int, error) {
	p.got = features
	p.calls++
	if p.err != nil {
		return 0, p.err
	}
	if len(p.errs) > 0 {
		err := p.errs[0]
		p.errs = p.errs[1:]
		if err != nil {
			return 0, err
		}
	}
	if len(p.scores) == 0 {
		return 0, nil
	}
	score := p.scores[0]
	if len(p.scores) > 1 {
		p.scores = p.scores[1:]
	}
	return score, nil
}

type recordingNotifier struct {
	sent []notification.Notification
}

func (r *recordingNotifier) Notify(_ context.Context, _ int64, n notification.Notification) error {
	r.sent = append(r.sent, n)
	return nil
}

type stubGuard struct {
	held map[string]bool
}

func newStubGuard() *stubGuard {
	return &stubGuard{held: make(map[string]bool)}
}

func (g *stubGuard) Acquire(_ context.Context, key string, _ time.Duration) (bool, error) {
	if g.held[key] {
		return false, nil
	}
	g.held[key] = true
	return true, nil
}

func (g *stubGuard) Release(_ context.Context, key string) error {
	delete(g.held, key)
	return nil
}

type stubUsers []int64

func (u stubUsers) ListIDs(context.Context) ([]int64, error) {
	return u, nil
}

type stubSettings struct {
	err error
}

func (s stubSettings) Settings(context.Context, int64) (auth.Settings, error) {
	if s.err != nil {
		return auth.Settings{}, s.err
	}
	return auth.Settings{BaseGoal: 8, City: "Lisbon", Timezone: "UTC"}, nil
}

type stubWeather struct {
	temp float64
}

func (w stubWeather) Temperature(context.Context, string) (float64, error) {
	return w.temp, nil
}
