package util

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the ISO calendar-day key used by every store.
const DateLayout = "2006-01-02"

// DateKey formats t as a calendar-day key in t's own location.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate validates a YYYY-MM-DD key.
func ParseDate(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	ts, err := time.Parse(DateLayout, trimmed)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be formatted as YYYY-MM-DD: %w", err)
	}
	return ts, nil
}

// ShiftDate moves a date key by n calendar days. Invalid keys are returned unchanged.
func ShiftDate(date string, n int) string {
	ts, err := time.Parse(DateLayout, date)
	if err != nil {
		return date
	}
	return ts.AddDate(0, 0, n).Format(DateLayout)
}

// DaysBack lists count date keys ending at today, most recent first.
func DaysBack(today string, count int) []string {
	if count <= 0 {
		return nil
	}
	out := make([]string, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, ShiftDate(today, -i))
	}
	return out
}

// LoadLocation resolves an IANA zone name, falling back when it is empty or unknown.
func LoadLocation(name string, fallback *time.Location) *time.Location {
	if fallback == nil {
		fallback = time.UTC
	}
	if strings.TrimSpace(name) == "" {
		return fallback
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return fallback
	}
	return loc
}
