// Package streak counts consecutive qualifying days.
package streak

// DefaultLookback bounds the walk when callers pass a non-positive lookback.
const DefaultLookback = 30

// Dated is implemented by per-day snapshots keyed by an ISO date.
type Dated interface {
	DateKey() string
}

// Evaluate walks days most recent first and counts the consecutive days for which
// qualifies holds. A non-qualifying today is skipped rather than counted; the walk
// stops at the first non-qualifying day strictly before today. Days after today are
// ignored and at most lookback entries are inspected.
func Evaluate[T Dated](days []T, today string, lookback int, qualifies func(T) bool) int {
	if lookback <= 0 {
		lookback = DefaultLookback
	}
	count := 0
	inspected := 0
	for _, day := range days {
		if inspected >= lookback {
			break
		}
		key := day.DateKey()
		if key > today {
			continue
		}
		inspected++
		if qualifies(day) {
			count++
			continue
		}
		if key < today {
			break
		}
	}
	return count
}
