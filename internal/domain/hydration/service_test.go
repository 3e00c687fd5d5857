package hydration

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/yanqian/moodsip/internal/domain/auth"
	"github.com/yanqian/moodsip/internal/domain/notification"
	apperrors "github.com/yanqian/moodsip/pkg/errors"
)

func TestServiceTodayHotWeatherFiresOncePerDay(t *testing.T) {
	store := newStubStore()
	notifier := &recordingNotifier{}
	svc := newServiceUnderTest(store, &stubWeather{temp: 36}, notifier)

	summary, err := svc.Today(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, "2024-07-10", summary.Date)
	require.Equal(t, 10, summary.Goal)
	require.Equal(t, 8, summary.BaseGoal)
	require.NotNil(t, summary.TemperatureC)
	require.Equal(t, 10, store.records["2024-07-10"].Goal)
	require.Equal(t, []notification.Kind{notification.KindHotWeather}, notifier.kinds())

	_, err = svc.Today(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, notifier.sent, 1)
}

func TestServiceTodayWeatherFailureUsesBaseGoal(t *testing.T) {
	store := newStubStore()
	notifier := &recordingNotifier{}
	svc := newServiceUnderTest(store, &stubWeather{err: errors.New("timeout")}, notifier)

	summary, err := svc.Today(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 8, summary.Goal)
	require.Nil(t, summary.TemperatureC)
	require.Empty(t, notifier.sent)
}

func TestServiceTodayStreakAndProgress(t *testing.T) {
	store := newStubStore()
	store.records["2024-07-09"] = Record{Date: "2024-07-09", Goal: 8, Logs: glasses(8)}
	store.records["2024-07-08"] = Record{Date: "2024-07-08", Goal: 8, Logs: glasses(9)}
	store.records["2024-07-10"] = Record{Date: "2024-07-10", Logs: glasses(2)}
	svc := newServiceUnderTest(store, &stubWeather{temp: 20}, &recordingNotifier{})

	summary, err := svc.Today(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 2, summary.Glasses)
	require.Equal(t, 6, summary.Remaining)
	require.InDelta(t, 0.25, summary.Progress, 1e-9)
	require.Equal(t, 2, summary.Streak)
	require.False(t, summary.GoalMet)
}

func TestServiceLogAndUndoGlass(t *testing.T) {
	store := newStubStore()
	notifier := &recordingNotifier{}
	svc := newServiceUnderTest(store, &stubWeather{temp: 20}, notifier)

	day, err := svc.LogGlass(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 1, day.Glasses)
	require.Equal(t, []string{"09:30:00"}, day.Timestamps)
	require.Equal(t, []notification.Kind{notification.KindFirstGlass}, notifier.kinds())

	_, err = svc.LogGlass(context.Background(), 1)
	require.NoError(t, err)

	day, err = svc.UndoGlass(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 1, day.Glasses)

	_, err = svc.UndoGlass(context.Background(), 1)
	require.NoError(t, err)
	day, err = svc.UndoGlass(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 0, day.Glasses)
}

func TestServiceLogGlassCap(t *testing.T) {
	store := newStubStore()
	store.records["2024-07-10"] = Record{Date: "2024-07-10", Logs: glasses(3)}
	svc := newServiceUnderTest(store, &stubWeather{temp: 20}, &recordingNotifier{})
	svc.cfg.MaxGlassesPerDay = 3

	_, err := svc.LogGlass(context.Background(), 1)
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
	require.ErrorIs(t, err, ErrDailyCapReached)
	require.Len(t, store.records["2024-07-10"].Logs, 3)
}

func TestServiceDayRejectsFuture(t *testing.T) {
	svc := newServiceUnderTest(newStubStore(), &stubWeather{}, &recordingNotifier{})

	_, err := svc.Day(context.Background(), 1, "2024-07-11")
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	_, err = svc.Day(context.Background(), 1, "2024/07/01")
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	day, err := svc.Day(context.Background(), 1, "2024-07-01")
	require.NoError(t, err)
	require.Equal(t, 8, day.Goal)
	require.Equal(t, 0, day.Glasses)
}

func newServiceUnderTest(store *stubStore, weather WeatherClient, notifier notification.Notifier) *service {
	return &service{
		cfg: Config{
			HotWeatherGoal:     10,
			StreakLookbackDays: 30,
			MaxGlassesPerDay:   30,
			DefaultTimezone:    "UTC",
			HotWeatherAlertTTL: 36 * time.Hour,
		},
		store:    store,
		weather:  weather,
		settings: stubSettings{settings: auth.Settings{BaseGoal: 8, City: "London", Timezone: "UTC"}},
		notifier: notifier,
		guard:    newStubGuard(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		now: func() time.Time {
			return time.Date(2024, 7, 10, 9, 30, 0, 0, time.UTC)
		},
		newID: uuid.New,
	}
}

type stubSettings struct {
	settings auth.Settings
}

func (s stubSettings) Settings(context.Context, int64) (auth.Settings, error) {
	return s.settings, nil
}

type stubWeather struct {
	temp float64
	err  error
}

func (s *stubWeather) Temperature(context.Context, string) (float64, error) {
	return s.temp, s.err
}

type recordingNotifier struct {
	sent []notification.Notification
}

func (r *recordingNotifier) Notify(_ context.Context, _ int64, n notification.Notification) error {
	r.sent = append(r.sent, n)
	return nil
}

func (r *recordingNotifier) kinds() []notification.Kind {
	out := make([]notification.Kind, 0, len(r.sent))
	for _, n := range r.sent {
		out = append(out, n.Kind)
	}
	return out
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

type stubStore struct {
	records map[string]Record
}

func newStubStore() *stubStore {
	return &stubStore{records: make(map[string]Record)}
}

func (s *stubStore) AppendLog(_ context.Context, _ int64, entry LogEntry, limit int) (Record, error) {
	record := s.records[entry.Date]
	if limit > 0 && len(record.Logs) >= limit {
		return Record{}, ErrDailyCapReached
	}
	record.Date = entry.Date
	record.Logs = append(record.Logs, entry)
	s.records[entry.Date] = record
	return record, nil
}

func (s *stubStore) RemoveLastLog(_ context.Context, _ int64, date string) (Record, error) {
	record, ok := s.records[date]
	if !ok {
		return Record{Date: date}, nil
	}
	if len(record.Logs) > 0 {
		record.Logs = record.Logs[:len(record.Logs)-1]
	}
	s.records[date] = record
	return record, nil
}

func (s *stubStore) SaveGoal(_ context.Context, _ int64, date string, goal int) error {
	record := s.records[date]
	record.Date = date
	record.Goal = goal
	s.records[date] = record
	return nil
}

func (s *stubStore) GetRecord(_ context.Context, _ int64, date string) (Record, error) {
	record, ok := s.records[date]
	if !ok {
		return Record{Date: date}, nil
	}
	return record, nil
}

func (s *stubStore) ListRecords(_ context.Context, _ int64, from, to string) ([]Record, error) {
	var out []Record
	for date, record := range s.records {
		if date >= from && date <= to {
			out = append(out, record)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (s *stubStore) RecentRecords(_ context.Context, _ int64, until string, limit int) ([]Record, error) {
	var out []Record
	for date, record := range s.records {
		if date <= until {
			out = append(out, record)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
