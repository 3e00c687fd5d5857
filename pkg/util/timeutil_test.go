package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDaysBackCrossesMonthBoundary(t *testing.T) {
	days := DaysBack("2024-03-02", 4)
	require.Equal(t, []string{"2024-03-02", "2024-03-01", "2024-02-29", "2024-02-28"}, days)
	require.Nil(t, DaysBack("2024-03-02", 0))
}

func TestParseDateRejectsSlashes(t *testing.T) {
	_, err := ParseDate("2024/01/01")
	require.Error(t, err)

	ts, err := ParseDate(" 2024-01-01 ")
	require.NoError(t, err)
	require.Equal(t, 2024, ts.Year())
}

func TestLoadLocationFallback(t *testing.T) {
	require.Equal(t, time.UTC, LoadLocation("", nil))
	require.Equal(t, time.UTC, LoadLocation("Not/AZone", time.UTC))
}
