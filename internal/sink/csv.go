package sink

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"time"

	"github.com/example/hallcheck/internal/schedule"
)

var csvHeader = []string{"run_ts", "date", "weekday", "start", "available", "slot_label"}

// CSV appends one row per result to a history file, writing the header
// only when the file does not exist yet.
type CSV struct {
	Path string
}

func (c CSV) Write(ctx context.Context, runTS time.Time, results []schedule.Result) error {
	writeHeader := false
	if _, err := os.Stat(c.Path); os.IsNotExist(err) {
		if dir := filepath.Dir(c.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		writeHeader = true
	}

	f, err := os.OpenFile(c.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(csvHeader); err != nil {
			return err
		}
	}
	ts := runTS.Format("2006-01-02T15:04:05")
	for _, r := range results {
		row := []string{
			ts,
			r.Date.Format("2006-01-02"),
			r.Weekday,
			r.Start,
			string(r.Availability),
			labelColumn(r),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
