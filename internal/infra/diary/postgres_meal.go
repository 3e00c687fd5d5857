package diary

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/moodsip/internal/domain/meal"
)

// PostgresMealStore persists meal entries in Postgres.
type PostgresMealStore struct {
	pool *pgxpool.Pool
}

// NewPostgresMealStore creates a new store.
func NewPostgresMealStore(pool *pgxpool.Pool) *PostgresMealStore {
	return &PostgresMealStore{pool: pool}
}

// Save inserts entry.
func (s *PostgresMealStore) Save(ctx context.Context, userID int64, entry meal.Entry) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO meals (id, user_id, day, time_of_day, meal_type, meal_name, food_category,
			mood_before, mood_after, energy_before, energy_after, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, entry.ID, userID, entry.Date, entry.Time, string(entry.MealType), entry.MealName, string(entry.FoodCategory),
		entry.MoodBefore, entry.MoodAfter, entry.EnergyBefore, entry.EnergyAfter, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert meal: %w", err)
	}
	return nil
}

// Delete removes the entry with id.
func (s *PostgresMealStore) Delete(ctx context.Context, userID int64, id uuid.UUID) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM meals WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return false, fmt.Errorf("delete meal: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListByDate returns the day's meals ordered by time.
func (s *PostgresMealStore) ListByDate(ctx context.Context, userID int64, date string) ([]meal.Entry, error) {
	return s.ListRange(ctx, userID, date, date)
}

// ListRange returns meals in [from, to] ordered by date then time.
func (s *PostgresMealStore) ListRange(ctx context.Context, userID int64, from, to string) ([]meal.Entry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, day, time_of_day, meal_type, meal_name, food_category,
			mood_before, mood_after, energy_before, energy_after, created_at
		FROM meals
		WHERE user_id = $1 AND day BETWEEN $2 AND $3
		ORDER BY day, time_of_day, created_at
	`, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("query meals: %w", err)
	}
	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (meal.Entry, error) {
		var (
			e                  meal.Entry
			mealType, category string
			created            time.Time
		)
		err := row.Scan(&e.ID, &e.Date, &e.Time, &mealType, &e.MealName, &category,
			&e.MoodBefore, &e.MoodAfter, &e.EnergyBefore, &e.EnergyAfter, &created)
		e.MealType = meal.Type(mealType)
		e.FoodCategory = meal.Category(category)
		e.CreatedAt = created.UTC()
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan meals: %w", err)
	}
	return entries, nil
}

var _ meal.Store = (*PostgresMealStore)(nil)
