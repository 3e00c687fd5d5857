package diary

import (
	"context"
	"sort"
	"sync"

	"github.com/yanqian/moodsip/internal/domain/hydration"
)

// MemoryHydrationStore keeps hydration records in process memory.
type MemoryHydrationStore struct {
	mu      sync.RWMutex
	records map[int64]map[string]hydration.Record
}

// NewMemoryHydrationStore constructs an empty store.
func NewMemoryHydrationStore() *MemoryHydrationStore {
	return &MemoryHydrationStore{records: make(map[int64]map[string]hydration.Record)}
}

// AppendLog adds entry to its day unless the day already holds limit glasses.
func (s *MemoryHydrationStore) AppendLog(_ context.Context, userID int64, entry hydration.LogEntry, limit int) (hydration.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	days := s.userDays(userID)
	record := days[entry.Date]
	if limit > 0 && len(record.Logs) >= limit {
		return hydration.Record{}, hydration.ErrDailyCapReached
	}
	record.Date = entry.Date
	record.Logs = append(cloneLogs(record.Logs), entry)
	days[entry.Date] = record
	return copyRecord(record), nil
}

// RemoveLastLog drops the most recent entry of date; empty days are left untouched.
func (s *MemoryHydrationStore) RemoveLastLog(_ context.Context, userID int64, date string) (hydration.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	days := s.userDays(userID)
	record, ok := days[date]
	if !ok {
		return hydration.Record{Date: date}, nil
	}
	if n := len(record.Logs); n > 0 {
		record.Logs = cloneLogs(record.Logs[:n-1])
		days[date] = record
	}
	return copyRecord(record), nil
}

// SaveGoal records the goal computed for date.
func (s *MemoryHydrationStore) SaveGoal(_ context.Context, userID int64, date string, goal int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	days := s.userDays(userID)
	record := days[date]
	record.Date = date
	record.Goal = goal
	days[date] = record
	return nil
}

// GetRecord returns the day's record, empty when nothing was stored.
func (s *MemoryHydrationStore) GetRecord(_ context.Context, userID int64, date string) (hydration.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[userID][date]
	if !ok {
		return hydration.Record{Date: date}, nil
	}
	return copyRecord(record), nil
}

// ListRecords returns stored days in [from, to], ascending.
func (s *MemoryHydrationStore) ListRecords(_ context.Context, userID int64, from, to string) ([]hydration.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []hydration.Record
	for date, record := range s.records[userID] {
		if date >= from && date <= to {
			out = append(out, copyRecord(record))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

// RecentRecords returns up to limit stored days on or before until, most recent first.
func (s *MemoryHydrationStore) RecentRecords(_ context.Context, userID int64, until string, limit int) ([]hydration.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []hydration.Record
	for date, record := range s.records[userID] {
		if date <= until {
			out = append(out, copyRecord(record))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemoryHydrationStore) userDays(userID int64) map[string]hydration.Record {
	days, ok := s.records[userID]
	if !ok {
		days = make(map[string]hydration.Record)
		s.records[userID] = days
	}
	return days
}

func cloneLogs(logs []hydration.LogEntry) []hydration.LogEntry {
	out := make([]hydration.LogEntry, len(logs))
	copy(out, logs)
	return out
}

func copyRecord(r hydration.Record) hydration.Record {
	r.Logs = cloneLogs(r.Logs)
	return r
}

var _ hydration.Store = (*MemoryHydrationStore)(nil)
