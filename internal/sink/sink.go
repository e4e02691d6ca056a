// Package sink persists run results. Every sink receives the full batch of
// one run tagged with the run timestamp; sinks are append-only.
package sink

import (
	"context"
	"time"

	"github.com/example/hallcheck/internal/schedule"
)

// Sink consumes one run's results. Implementations must not mutate them.
type Sink interface {
	Write(ctx context.Context, runTS time.Time, results []schedule.Result) error
}

// labelColumn is what goes into the single label column of line-oriented
// sinks: the matched slot label normally, the error detail for failed
// targets.
func labelColumn(r schedule.Result) string {
	if r.Availability == schedule.AvailabilityError && r.Label == "" {
		return r.ErrorDetail
	}
	return r.Label
}
