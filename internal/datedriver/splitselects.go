package datedriver

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/example/hallcheck/internal/browser"
	"github.com/example/hallcheck/internal/resolver"
)

// MonthsFullNL are the full Dutch month names the split-select variant
// renders as option text.
var MonthsFullNL = []string{
	"januari", "februari", "maart", "april", "mei", "juni",
	"juli", "augustus", "september", "oktober", "november", "december",
}

// splitSelects drives the day/month/year select triple. Year and month
// failures are tolerated individually; the date only converges when the
// day select accepts the target day.
type splitSelects struct{}

func (splitSelects) Kind() resolver.DateEntryKind { return resolver.DateEntrySplitSelects }

func (splitSelects) SetDate(ctx context.Context, page browser.Page, entry resolver.DateEntry, date time.Time) error {
	if entry.Day == nil || entry.Month == nil || entry.Year == nil {
		return ErrNoDateEntry
	}

	_ = entry.Year.El.SelectValue(strconv.Itoa(date.Year()), false)

	// Month options carry full Dutch names as text; the value attribute
	// is whatever the site generates, so match on text and select by
	// value.
	want := MonthsFullNL[date.Month()-1]
	for _, opt := range entry.Month.El.Options() {
		if strings.EqualFold(opt.Label, want) {
			_ = entry.Month.El.SelectValue(opt.Value, false)
			break
		}
	}

	// Day values have shipped both plain ("2") and zero-padded ("02").
	day := strconv.Itoa(date.Day())
	if err := entry.Day.El.SelectValue(day, false); err != nil {
		padded := fmt.Sprintf("%02d", date.Day())
		if err := entry.Day.El.SelectValue(padded, false); err != nil {
			return fmt.Errorf("select day %s: %w", day, err)
		}
	}
	return nil
}
