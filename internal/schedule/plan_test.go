package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextOccurrenceTable(t *testing.T) {
	// 2024-01-01 is a Monday.
	ref := date(2024, time.January, 1)

	for _, tc := range []struct {
		weekday time.Weekday
		weeks   int
		want    time.Time
	}{
		{time.Monday, 1, date(2024, time.January, 1)}, // same day counts
		{time.Monday, 2, date(2024, time.January, 8)},
		{time.Thursday, 1, date(2024, time.January, 4)},
		{time.Thursday, 2, date(2024, time.January, 11)},
		{time.Sunday, 1, date(2024, time.January, 7)},
		{time.Sunday, 2, date(2024, time.January, 14)},
		{time.Tuesday, 3, date(2024, time.January, 16)},
	} {
		got := NextOccurrence(ref, tc.weekday, tc.weeks)
		require.Equal(t, tc.want, got, "weekday=%s weeks=%d", tc.weekday, tc.weeks)
	}
}

func TestNextOccurrenceSameDayBoundary(t *testing.T) {
	// With a horizon of one week, a reference date already on the target
	// weekday resolves to itself, not a week later.
	ref := time.Date(2024, time.June, 14, 18, 30, 0, 0, time.UTC) // a Friday, with time-of-day
	got := NextOccurrence(ref, time.Friday, 1)
	require.Equal(t, date(2024, time.June, 14), got)
}

func TestNextOccurrenceProperties(t *testing.T) {
	refs := []time.Time{
		date(2024, time.January, 1),
		date(2024, time.February, 29),
		date(2024, time.December, 31),
		time.Date(2025, time.July, 9, 23, 59, 59, 0, time.UTC),
	}
	for _, ref := range refs {
		for wd := time.Sunday; wd <= time.Saturday; wd++ {
			for weeks := 1; weeks <= 4; weeks++ {
				got := NextOccurrence(ref, wd, weeks)
				require.Equal(t, wd, got.Weekday())

				base := date(ref.Year(), ref.Month(), ref.Day())
				offset := int(got.Sub(base).Hours() / 24)
				require.GreaterOrEqual(t, offset, 0)
				require.Less(t, offset, 7*weeks)
			}
		}
	}
}

func TestBuildPlanPreservesOrder(t *testing.T) {
	ref := date(2024, time.January, 1)
	targets := []Target{
		{Weekday: time.Sunday, Start: "14:00"},
		{Weekday: time.Monday, Start: "20:00"},
	}
	plan := BuildPlan(ref, targets, 2)
	require.Len(t, plan, 2)
	require.Equal(t, targets[0], plan[0].Target)
	require.Equal(t, targets[1], plan[1].Target)
	require.Equal(t, date(2024, time.January, 14), plan[0].Date)
	require.Equal(t, date(2024, time.January, 8), plan[1].Date)
}

func TestParseWeekday(t *testing.T) {
	wd, err := ParseWeekday("Thu")
	require.NoError(t, err)
	require.Equal(t, time.Thursday, wd)
	require.Equal(t, "Thu", WeekdayLabel(wd))

	_, err = ParseWeekday("Thursday")
	require.Error(t, err)
}
