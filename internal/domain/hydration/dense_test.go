package hydration

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDenseRunFillsMissingDays(t *testing.T) {
	records := []Record{
		{Date: "2024-07-10", Logs: glasses(2)},
		{Date: "2024-07-08", Logs: glasses(8)},
	}
	run := DenseRun("2024-07-10", 4, records)
	require.Len(t, run, 4)
	require.Equal(t, []string{"2024-07-10", "2024-07-09", "2024-07-08", "2024-07-07"}, []string{run[0].Date, run[1].Date, run[2].Date, run[3].Date})
	require.Equal(t, 2, run[0].GlassCount())
	require.Equal(t, 0, run[1].GlassCount())
}

func TestStreakUsesPerDayGoal(t *testing.T) {
	records := []Record{
		{Date: "2024-07-08", Goal: 10, Logs: glasses(9)},
		{Date: "2024-07-09", Goal: 9, Logs: glasses(9)},
		{Date: "2024-07-10", Logs: glasses(8)},
	}
	require.Equal(t, 2, Streak("2024-07-10", 30, 8, records))
}

func TestStreakMissingYesterdayBreaks(t *testing.T) {
	records := []Record{
		{Date: "2024-07-10", Logs: glasses(8)},
		{Date: "2024-07-08", Logs: glasses(8)},
	}
	require.Equal(t, 1, Streak("2024-07-10", 30, 8, records))
}

func TestMilestones(t *testing.T) {
	require.Len(t, milestonesFor(1, 8), 1)
	require.Equal(t, "Good morning!", milestonesFor(1, 8)[0].Title)
	require.Equal(t, "Halfway there!", milestonesFor(4, 8)[0].Title)
	require.Equal(t, "Almost there!", milestonesFor(7, 8)[0].Title)
	require.Equal(t, "Goal Reached!", milestonesFor(8, 8)[0].Title)
	require.Empty(t, milestonesFor(5, 8))
}

func glasses(n int) []LogEntry {
	out := make([]LogEntry, n)
	for i := range out {
		out[i] = LogEntry{Time: "08:00:00"}
	}
	return out
}
