package datedriver

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/example/hallcheck/internal/browser"
	"github.com/example/hallcheck/internal/browser/browsertest"
	"github.com/example/hallcheck/internal/resolver"
)

func newDateEntry(trigger *browsertest.Element) resolver.DateEntry {
	return resolver.DateEntry{
		Kind:    resolver.DateEntryCalendarWidget,
		Trigger: &resolver.Handle{El: trigger, Strategy: resolver.StrategyByContent},
	}
}

func monthOptions(zeroBased bool) []browser.Option {
	opts := make([]browser.Option, 12)
	for i := 0; i < 12; i++ {
		v := strconv.Itoa(i)
		if !zeroBased {
			v = strconv.Itoa(i + 1)
		}
		opts[i] = browser.Option{Label: MonthsAbbrNL[i], Value: v}
	}
	return opts
}

func yearOptions() []browser.Option {
	return []browser.Option{
		{Label: "2025", Value: "2025"},
		{Label: "2026", Value: "2026"},
		{Label: "2027", Value: "2027"},
	}
}

type widgetFixture struct {
	page    *browsertest.Page
	trigger *browsertest.Element
	popup   *browsertest.Element
	month   *browsertest.Element
	year    *browsertest.Element
}

func newWidgetFixture(zeroBasedMonths bool, cells ...*browsertest.Element) *widgetFixture {
	f := &widgetFixture{
		page:    browsertest.NewPage(),
		trigger: &browsertest.Element{},
		popup:   &browsertest.Element{Hidden: true},
		month:   &browsertest.Element{Opts: monthOptions(zeroBasedMonths)},
		year:    &browsertest.Element{Opts: yearOptions()},
	}
	f.trigger.OnClick = func() error {
		f.popup.Hidden = false
		return nil
	}
	f.page.Selectors[popupSelector] = []*browsertest.Element{f.popup}
	f.page.Selectors[popupMonthSelect] = []*browsertest.Element{f.month}
	f.page.Selectors[popupYearSelect] = []*browsertest.Element{f.year}
	f.page.Selectors[popupCalendarCell] = cells
	return f
}

func (f *widgetFixture) setDate(t *testing.T, date time.Time) error {
	t.Helper()
	drv := calendarWidget{}
	entry := newDateEntry(f.trigger)
	return drv.SetDate(context.Background(), f.page, entry, date)
}

func TestCalendarWidgetSetDate(t *testing.T) {
	padding := &browsertest.Element{InnerText: "14", Unselectable: true}
	target := &browsertest.Element{InnerText: "14"}
	other := &browsertest.Element{InnerText: "15"}
	f := newWidgetFixture(true, padding, target, other)

	err := f.setDate(t, time.Date(2026, time.October, 14, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	require.Equal(t, "2026", f.year.Selected)
	require.Equal(t, "9", f.month.Selected, "October in a zero-based month select")
	require.Equal(t, 1, target.Clicks)
	require.Zero(t, padding.Clicks, "unselectable cells must never be clicked")
	require.Zero(t, other.Clicks)
}

func TestCalendarWidgetMonthConventionFallbacks(t *testing.T) {
	day := &browsertest.Element{InnerText: "3"}

	t.Run("one-based values", func(t *testing.T) {
		f := newWidgetFixture(false, day)
		// The widget refuses the zero-based index; one-based "10" works.
		f.month.Rejected = map[string]bool{"9": true}
		err := f.setDate(t, time.Date(2026, time.October, 3, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		require.Equal(t, "10", f.month.Selected)
	})

	t.Run("abbreviation match", func(t *testing.T) {
		f := newWidgetFixture(false, day)
		f.month.Opts = []browser.Option{
			{Label: "sep", Value: "m-sep"},
			{Label: "okt", Value: "m-okt"},
		}
		err := f.setDate(t, time.Date(2026, time.October, 3, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		require.Equal(t, "m-okt", f.month.Selected)
	})
}

func TestCalendarWidgetPopupRetry(t *testing.T) {
	day := &browsertest.Element{InnerText: "5"}
	f := newWidgetFixture(true, day)
	clicks := 0
	f.trigger.OnClick = func() error {
		clicks++
		// First open attempt does nothing; the retry succeeds.
		if clicks >= 2 {
			f.popup.Hidden = false
		}
		return nil
	}

	err := f.setDate(t, time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Equal(t, 2, clicks)
}

func TestCalendarWidgetPopupNeverOpens(t *testing.T) {
	f := newWidgetFixture(true)
	f.trigger.OnClick = func() error { return nil }

	err := f.setDate(t, time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC))
	require.ErrorIs(t, err, ErrPopupNotVisible)
}

func TestCalendarWidgetNoDayCell(t *testing.T) {
	// Only an unselectable cell carries the target digits.
	blocked := &browsertest.Element{InnerText: "21", Unselectable: true}
	f := newWidgetFixture(true, blocked)

	err := f.setDate(t, time.Date(2026, time.March, 21, 0, 0, 0, 0, time.UTC))
	require.ErrorIs(t, err, ErrNoDayCell)
	require.Zero(t, blocked.Clicks)
}

func TestIsApplyError(t *testing.T) {
	require.True(t, IsApplyError(ErrNoDayCell))
	require.True(t, IsApplyError(ErrPopupNotVisible))
	require.True(t, IsApplyError(ErrNoDateEntry))
	require.False(t, IsApplyError(errors.New("boom")))
}
