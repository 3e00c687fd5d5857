package diary

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/moodsip/internal/domain/hydration"
)

// PostgresHydrationStore persists hydration logs and goals in Postgres.
type PostgresHydrationStore struct {
	pool *pgxpool.Pool
}

// NewPostgresHydrationStore creates a new store.
func NewPostgresHydrationStore(pool *pgxpool.Pool) *PostgresHydrationStore {
	return &PostgresHydrationStore{pool: pool}
}

// AppendLog inserts entry and returns the updated day. The day row is locked
// while the glasses are counted so concurrent appends cannot overrun limit.
func (s *PostgresHydrationStore) AppendLog(ctx context.Context, userID int64, entry hydration.LogEntry, limit int) (hydration.Record, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return hydration.Record{}, fmt.Errorf("begin hydration log: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
		INSERT INTO hydration_days (user_id, day)
		VALUES ($1, $2)
		ON CONFLICT (user_id, day) DO NOTHING
	`, userID, entry.Date); err != nil {
		return hydration.Record{}, fmt.Errorf("ensure hydration day: %w", err)
	}
	if _, err := tx.Exec(ctx, `
		SELECT 1 FROM hydration_days
		WHERE user_id = $1 AND day = $2
		FOR UPDATE
	`, userID, entry.Date); err != nil {
		return hydration.Record{}, fmt.Errorf("lock hydration day: %w", err)
	}
	if limit > 0 {
		var count int
		if err := tx.QueryRow(ctx, `
			SELECT count(*) FROM hydration_logs
			WHERE user_id = $1 AND day = $2
		`, userID, entry.Date).Scan(&count); err != nil {
			return hydration.Record{}, fmt.Errorf("count hydration logs: %w", err)
		}
		if count >= limit {
			return hydration.Record{}, hydration.ErrDailyCapReached
		}
	}
	if _, err := tx.Exec(ctx, `
		INSERT INTO hydration_logs (id, user_id, day, time_of_day, logged_at)
		VALUES ($1, $2, $3, $4, $5)
	`, entry.ID, userID, entry.Date, entry.Time, entry.LoggedAt); err != nil {
		return hydration.Record{}, fmt.Errorf("insert hydration log: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return hydration.Record{}, fmt.Errorf("commit hydration log: %w", err)
	}
	return s.GetRecord(ctx, userID, entry.Date)
}

// RemoveLastLog deletes the most recently inserted entry of date, if any.
func (s *PostgresHydrationStore) RemoveLastLog(ctx context.Context, userID int64, date string) (hydration.Record, error) {
	_, err := s.pool.Exec(ctx, `
		DELETE FROM hydration_logs
		WHERE seq = (
			SELECT seq FROM hydration_logs
			WHERE user_id = $1 AND day = $2
			ORDER BY seq DESC
			LIMIT 1
		)
	`, userID, date)
	if err != nil {
		return hydration.Record{}, fmt.Errorf("delete hydration log: %w", err)
	}
	return s.GetRecord(ctx, userID, date)
}

// SaveGoal upserts the goal of date.
func (s *PostgresHydrationStore) SaveGoal(ctx context.Context, userID int64, date string, goal int) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO hydration_days (user_id, day, goal)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, day) DO UPDATE SET goal = EXCLUDED.goal
	`, userID, date, goal)
	if err != nil {
		return fmt.Errorf("save hydration goal: %w", err)
	}
	return nil
}

// GetRecord loads one day.
func (s *PostgresHydrationStore) GetRecord(ctx context.Context, userID int64, date string) (hydration.Record, error) {
	records, err := s.ListRecords(ctx, userID, date, date)
	if err != nil {
		return hydration.Record{}, err
	}
	if len(records) == 0 {
		return hydration.Record{Date: date}, nil
	}
	return records[0], nil
}

// ListRecords returns stored days in [from, to], ascending.
func (s *PostgresHydrationStore) ListRecords(ctx context.Context, userID int64, from, to string) ([]hydration.Record, error) {
	byDate := make(map[string]*hydration.Record)
	get := func(date string) *hydration.Record {
		r, ok := byDate[date]
		if !ok {
			r = &hydration.Record{Date: date}
			byDate[date] = r
		}
		return r
	}

	goalRows, err := s.pool.Query(ctx, `
		SELECT day, goal FROM hydration_days
		WHERE user_id = $1 AND day BETWEEN $2 AND $3
	`, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("query hydration goals: %w", err)
	}
	var (
		date string
		goal int
	)
	_, err = pgx.ForEachRow(goalRows, []any{&date, &goal}, func() error {
		get(date).Goal = goal
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan hydration goals: %w", err)
	}

	logRows, err := s.pool.Query(ctx, `
		SELECT id, day, time_of_day, logged_at FROM hydration_logs
		WHERE user_id = $1 AND day BETWEEN $2 AND $3
		ORDER BY day, seq
	`, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("query hydration logs: %w", err)
	}
	var (
		id       uuid.UUID
		clock    string
		loggedAt time.Time
	)
	_, err = pgx.ForEachRow(logRows, []any{&id, &date, &clock, &loggedAt}, func() error {
		r := get(date)
		r.Logs = append(r.Logs, hydration.LogEntry{ID: id, Date: date, Time: clock, LoggedAt: loggedAt.UTC()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan hydration logs: %w", err)
	}

	out := make([]hydration.Record, 0, len(byDate))
	for _, r := range byDate {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

// RecentRecords returns up to limit stored days on or before until, most recent first.
func (s *PostgresHydrationStore) RecentRecords(ctx context.Context, userID int64, until string, limit int) ([]hydration.Record, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT day FROM (
			SELECT day FROM hydration_days WHERE user_id = $1 AND day <= $2
			UNION
			SELECT day FROM hydration_logs WHERE user_id = $1 AND day <= $2
		) d
		ORDER BY day DESC
		LIMIT $3
	`, userID, until, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent hydration days: %w", err)
	}
	days, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan recent hydration days: %w", err)
	}
	if len(days) == 0 {
		return nil, nil
	}
	records, err := s.ListRecords(ctx, userID, days[len(days)-1], days[0])
	if err != nil {
		return nil, err
	}
	wanted := make(map[string]bool, len(days))
	for _, d := range days {
		wanted[d] = true
	}
	out := make([]hydration.Record, 0, len(days))
	for i := len(records) - 1; i >= 0; i-- {
		if wanted[records[i].Date] {
			out = append(out, records[i])
		}
	}
	return out, nil
}

var _ hydration.Store = (*PostgresHydrationStore)(nil)
