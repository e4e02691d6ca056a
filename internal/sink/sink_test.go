package sink

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/example/hallcheck/internal/schedule"
)

var runTS = time.Date(2024, time.January, 1, 9, 30, 0, 0, time.UTC)

func sampleResults() []schedule.Result {
	return []schedule.Result{
		{
			Date:         time.Date(2024, time.January, 8, 0, 0, 0, 0, time.UTC),
			Weekday:      "Mon",
			Start:        "20:00",
			Availability: schedule.AvailabilityYes,
			Label:        "20:00 - 21:30",
		},
		{
			Date:         time.Date(2024, time.January, 11, 0, 0, 0, 0, time.UTC),
			Weekday:      "Thu",
			Start:        "20:00",
			Availability: schedule.AvailabilityNo,
		},
		{
			Date:         time.Date(2024, time.January, 14, 0, 0, 0, 0, time.UTC),
			Weekday:      "Sun",
			Start:        "14:00",
			Availability: schedule.AvailabilityError,
			ErrorDetail:  "calendar popup did not become visible",
		},
	}
}

func TestConsoleWrite(t *testing.T) {
	var buf bytes.Buffer
	err := Console{Out: &buf}.Write(context.Background(), runTS, sampleResults())
	require.NoError(t, err)

	want := "2024-01-08 (Mon) 20:00 → Available ✅ [20:00 - 21:30]\n" +
		"2024-01-11 (Thu) 20:00 → Not available ❌\n" +
		"2024-01-14 (Sun) 14:00 → ERROR ⚠️ [calendar popup did not become visible]\n"
	require.Equal(t, want, buf.String())
}

func TestCSVWriteHeaderOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	s := CSV{Path: path}

	require.NoError(t, s.Write(context.Background(), runTS, sampleResults()))
	require.NoError(t, s.Write(context.Background(), runTS.Add(time.Hour), sampleResults()[:1]))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 5, "one header plus four data rows across two runs")
	require.Equal(t, []string{"run_ts", "date", "weekday", "start", "available", "slot_label"}, rows[0])
	require.Equal(t, []string{
		"2024-01-01T09:30:00", "2024-01-08", "Mon", "20:00", "YES", "20:00 - 21:30",
	}, rows[1])
	require.Equal(t, "NO", rows[2][4])
	require.Empty(t, rows[2][5])
	require.Equal(t, "ERROR", rows[3][4])
	require.Equal(t, "calendar popup did not become visible", rows[3][5],
		"error detail lands in the slot_label column")
	require.Equal(t, "2024-01-01T10:30:00", rows[4][0])
}

func TestCSVWriteCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "nested", "results.csv")
	require.NoError(t, CSV{Path: path}.Write(context.Background(), runTS, sampleResults()))
	_, err := os.Stat(path)
	require.NoError(t, err)
}
