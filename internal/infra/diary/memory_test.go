package diary

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/yanqian/moodsip/internal/domain/hydration"
	"github.com/yanqian/moodsip/internal/domain/meal"
)

func TestMemoryHydrationRoundTrip(t *testing.T) {
	store := NewMemoryHydrationStore()
	ctx := context.Background()

	for _, clock := range []string{"08:00:00", "09:15:00", "11:40:00"} {
		_, err := store.AppendLog(ctx, 1, hydration.LogEntry{ID: uuid.New(), Date: "2024-07-10", Time: clock}, 0)
		require.NoError(t, err)
	}
	record, err := store.GetRecord(ctx, 1, "2024-07-10")
	require.NoError(t, err)
	require.Equal(t, []string{"08:00:00", "09:15:00", "11:40:00"}, record.Timestamps())

	record, err = store.RemoveLastLog(ctx, 1, "2024-07-10")
	require.NoError(t, err)
	require.Equal(t, []string{"08:00:00", "09:15:00"}, record.Timestamps())

	empty, err := store.RemoveLastLog(ctx, 1, "2024-07-01")
	require.NoError(t, err)
	require.Equal(t, 0, empty.GlassCount())

	other, err := store.GetRecord(ctx, 2, "2024-07-10")
	require.NoError(t, err)
	require.Equal(t, 0, other.GlassCount())
}

func TestMemoryHydrationReturnsCopies(t *testing.T) {
	store := NewMemoryHydrationStore()
	ctx := context.Background()
	record, err := store.AppendLog(ctx, 1, hydration.LogEntry{Date: "2024-07-10", Time: "08:00:00"}, 0)
	require.NoError(t, err)
	record.Logs[0].Time = "mutated"

	stored, err := store.GetRecord(ctx, 1, "2024-07-10")
	require.NoError(t, err)
	require.Equal(t, "08:00:00", stored.Logs[0].Time)
}

func TestMemoryHydrationListings(t *testing.T) {
	store := NewMemoryHydrationStore()
	ctx := context.Background()
	require.NoError(t, store.SaveGoal(ctx, 1, "2024-07-08", 9))
	_, err := store.AppendLog(ctx, 1, hydration.LogEntry{Date: "2024-07-10", Time: "08:00:00"}, 0)
	require.NoError(t, err)
	_, err = store.AppendLog(ctx, 1, hydration.LogEntry{Date: "2024-07-05", Time: "08:00:00"}, 0)
	require.NoError(t, err)
	_, err = store.AppendLog(ctx, 1, hydration.LogEntry{Date: "2024-07-12", Time: "08:00:00"}, 0)
	require.NoError(t, err)

	listed, err := store.ListRecords(ctx, 1, "2024-07-06", "2024-07-10")
	require.NoError(t, err)
	require.Len(t, listed, 2)
	require.Equal(t, "2024-07-08", listed[0].Date)
	require.Equal(t, 9, listed[0].Goal)
	require.Equal(t, "2024-07-10", listed[1].Date)

	recent, err := store.RecentRecords(ctx, 1, "2024-07-10", 2)
	require.NoError(t, err)
	require.Equal(t, []string{"2024-07-10", "2024-07-08"}, []string{recent[0].Date, recent[1].Date})
}

func TestMemoryMealStore(t *testing.T) {
	store := NewMemoryMealStore()
	ctx := context.Background()
	lunch := meal.Entry{ID: uuid.New(), Date: "2024-07-10", Time: "12:30", MealType: meal.TypeLunch}
	breakfast := meal.Entry{ID: uuid.New(), Date: "2024-07-10", Time: "07:45", MealType: meal.TypeBreakfast}
	dinner := meal.Entry{ID: uuid.New(), Date: "2024-07-09", Time: "19:00", MealType: meal.TypeDinner}
	for _, e := range []meal.Entry{lunch, breakfast, dinner} {
		require.NoError(t, store.Save(ctx, 1, e))
	}

	day, err := store.ListByDate(ctx, 1, "2024-07-10")
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{breakfast.ID, lunch.ID}, []uuid.UUID{day[0].ID, day[1].ID})

	all, err := store.ListRange(ctx, 1, "2024-07-01", "2024-07-10")
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, dinner.ID, all[0].ID)

	removed, err := store.Delete(ctx, 1, lunch.ID)
	require.NoError(t, err)
	require.True(t, removed)
	removed, err = store.Delete(ctx, 1, lunch.ID)
	require.NoError(t, err)
	require.False(t, removed)

	day, err = store.ListByDate(ctx, 1, "2024-07-10")
	require.NoError(t, err)
	require.Len(t, day, 1)
}

func TestMemoryHydrationAppendHonoursCapUnderConcurrency(t *testing.T) {
	store := NewMemoryHydrationStore()
	ctx := context.Background()

	var (
		wg       sync.WaitGroup
		accepted atomic.Int32
		capped   atomic.Int32
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.AppendLog(ctx, 1, hydration.LogEntry{ID: uuid.New(), Date: "2024-07-10", Time: "08:00:00"}, 3)
			switch {
			case err == nil:
				accepted.Add(1)
			case errors.Is(err, hydration.ErrDailyCapReached):
				capped.Add(1)
			}
		}()
	}
	wg.Wait()

	require.EqualValues(t, 3, accepted.Load())
	require.EqualValues(t, 7, capped.Load())
	record, err := store.GetRecord(ctx, 1, "2024-07-10")
	require.NoError(t, err)
	require.Equal(t, 3, record.GlassCount())
}
