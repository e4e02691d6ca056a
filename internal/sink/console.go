package sink

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/example/hallcheck/internal/schedule"
)

// Console prints one human-readable line per result.
type Console struct {
	Out io.Writer
}

func (c Console) Write(ctx context.Context, runTS time.Time, results []schedule.Result) error {
	for _, r := range results {
		var status string
		switch r.Availability {
		case schedule.AvailabilityYes:
			status = "Available ✅"
		case schedule.AvailabilityNo:
			status = "Not available ❌"
		default:
			status = "ERROR ⚠️"
		}
		extra := ""
		if label := labelColumn(r); label != "" {
			extra = fmt.Sprintf(" [%s]", label)
		}
		if _, err := fmt.Fprintf(c.Out, "%s (%s) %s → %s%s\n",
			r.Date.Format("2006-01-02"), r.Weekday, r.Start, status, extra); err != nil {
			return err
		}
	}
	return nil
}
