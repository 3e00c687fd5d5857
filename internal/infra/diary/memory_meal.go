package diary

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/yanqian/moodsip/internal/domain/meal"
)

// MemoryMealStore keeps meal entries in process memory.
type MemoryMealStore struct {
	mu      sync.RWMutex
	entries map[int64][]meal.Entry
}

// NewMemoryMealStore constructs an empty store.
func NewMemoryMealStore() *MemoryMealStore {
	return &MemoryMealStore{entries: make(map[int64][]meal.Entry)}
}

// Save appends entry.
func (s *MemoryMealStore) Save(_ context.Context, userID int64, entry meal.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[userID] = append(s.entries[userID], entry)
	return nil
}

// Delete removes the entry with id.
func (s *MemoryMealStore) Delete(_ context.Context, userID int64, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := s.entries[userID]
	for i, entry := range entries {
		if entry.ID == id {
			s.entries[userID] = append(entries[:i:i], entries[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// ListByDate returns the day's meals ordered by time.
func (s *MemoryMealStore) ListByDate(ctx context.Context, userID int64, date string) ([]meal.Entry, error) {
	return s.ListRange(ctx, userID, date, date)
}

// ListRange returns meals in [from, to] ordered by date then time.
func (s *MemoryMealStore) ListRange(_ context.Context, userID int64, from, to string) ([]meal.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []meal.Entry
	for _, entry := range s.entries[userID] {
		if entry.Date >= from && entry.Date <= to {
			out = append(out, entry)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})
	return out, nil
}

var _ meal.Store = (*MemoryMealStore)(nil)
