package datedriver

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/example/hallcheck/internal/browser"
	"github.com/example/hallcheck/internal/browser/browsertest"
	"github.com/example/hallcheck/internal/resolver"
)

func splitEntry(day, month, year *browsertest.Element) resolver.DateEntry {
	h := func(el *browsertest.Element) *resolver.Handle {
		return &resolver.Handle{El: el, Strategy: resolver.StrategyByContent}
	}
	return resolver.DateEntry{
		Kind:  resolver.DateEntrySplitSelects,
		Day:   h(day),
		Month: h(month),
		Year:  h(year),
	}
}

func splitSelectElements(paddedDays bool) (day, month, year *browsertest.Element) {
	var dayOpts []browser.Option
	for d := 1; d <= 31; d++ {
		v := fmt.Sprintf("%d", d)
		if paddedDays {
			v = fmt.Sprintf("%02d", d)
		}
		dayOpts = append(dayOpts, browser.Option{Label: v, Value: v})
	}
	day = &browsertest.Element{Opts: dayOpts}

	var monthOpts []browser.Option
	for i, name := range MonthsFullNL {
		monthOpts = append(monthOpts, browser.Option{Label: name, Value: fmt.Sprintf("m%d", i+1)})
	}
	month = &browsertest.Element{Opts: monthOpts}

	year = &browsertest.Element{Opts: []browser.Option{
		{Label: "2025", Value: "2025"},
		{Label: "2026", Value: "2026"},
	}}
	return day, month, year
}

func TestSplitSelectsSetDate(t *testing.T) {
	day, month, year := splitSelectElements(false)
	drv := splitSelects{}

	err := drv.SetDate(context.Background(), browsertest.NewPage(),
		splitEntry(day, month, year),
		time.Date(2026, time.September, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	require.Equal(t, "2026", year.Selected)
	require.Equal(t, "m9", month.Selected, "month matched by Dutch name, selected by value")
	require.Equal(t, "2", day.Selected)
}

func TestSplitSelectsZeroPaddedDayFallback(t *testing.T) {
	day, month, year := splitSelectElements(true)
	drv := splitSelects{}

	err := drv.SetDate(context.Background(), browsertest.NewPage(),
		splitEntry(day, month, year),
		time.Date(2026, time.September, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Equal(t, "02", day.Selected)
}

func TestSplitSelectsDayRejected(t *testing.T) {
	day, month, year := splitSelectElements(false)
	day.Rejected = map[string]bool{"2": true, "02": true}
	drv := splitSelects{}

	err := drv.SetDate(context.Background(), browsertest.NewPage(),
		splitEntry(day, month, year),
		time.Date(2026, time.September, 2, 0, 0, 0, 0, time.UTC))
	require.Error(t, err)
}

func TestAwaitRefresh(t *testing.T) {
	changed := &browsertest.Element{InnerText: "new"}
	require.True(t, AwaitRefresh(changed, "old", 500*time.Millisecond))

	stale := &browsertest.Element{InnerText: "old"}
	require.False(t, AwaitRefresh(stale, "old", 100*time.Millisecond))
}
