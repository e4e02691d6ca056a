package datedriver

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/example/hallcheck/internal/browser"
	"github.com/example/hallcheck/internal/resolver"
)

// Selectors inside the jQuery-UI style calendar popup the site ships.
const (
	popupSelector     = ".ui-datepicker"
	popupMonthSelect  = ".ui-datepicker select.ui-datepicker-month"
	popupYearSelect   = ".ui-datepicker select.ui-datepicker-year"
	popupCalendarCell = ".ui-datepicker .ui-datepicker-calendar td"
)

const (
	popupOpenBudget = 2 * time.Second
	dayCellBudget   = 1 * time.Second
)

// MonthsAbbrNL are the site's three-letter month labels, used when the
// month select encodes options by localized abbreviation instead of index.
var MonthsAbbrNL = []string{
	"jan", "feb", "mrt", "apr", "mei", "jun",
	"jul", "aug", "sep", "okt", "nov", "dec",
}

// calendarWidget drives the popup calendar: open, align month/year, click
// the target day among selectable cells.
type calendarWidget struct{}

func (calendarWidget) Kind() resolver.DateEntryKind { return resolver.DateEntryCalendarWidget }

func (calendarWidget) SetDate(ctx context.Context, page browser.Page, entry resolver.DateEntry, date time.Time) error {
	if entry.Trigger == nil {
		return ErrNoDateEntry
	}
	if err := OpenPopup(page, entry.Trigger.El); err != nil {
		return err
	}
	SetPopupMonthYear(page, date)

	cell, ok := findDayCell(page, date.Day())
	if !ok {
		return ErrNoDayCell
	}
	if err := cell.Click(); err != nil {
		return ErrNoDayCell
	}
	return nil
}

// OpenPopup clicks the trigger until the calendar popup is visible, with a
// single retry. An already-open popup is left as is.
func OpenPopup(page browser.Page, trigger browser.Element) error {
	if popupVisible(page) {
		return nil
	}
	for attempt := 0; attempt < 2; attempt++ {
		_ = trigger.Click()
		if pollUntil(popupOpenBudget, func() bool { return popupVisible(page) }) {
			return nil
		}
	}
	return ErrPopupNotVisible
}

func popupVisible(page browser.Page) bool {
	popup, ok := page.Query(popupSelector)
	return ok && popup.Visible()
}

// SetPopupMonthYear aligns the popup's year and month selects to the target
// date. The month select's value encoding varies between widget builds, so
// index conventions are tried in order: zero-based numeric, one-based
// numeric, then the localized abbreviation against option text or value.
// Both selects may be hidden behind widget chrome; selection is forced.
func SetPopupMonthYear(page browser.Page, date time.Time) {
	if year, ok := page.Query(popupYearSelect); ok {
		_ = year.SelectValue(strconv.Itoa(date.Year()), true)
	}

	month, ok := page.Query(popupMonthSelect)
	if !ok {
		return
	}
	zeroBased := strconv.Itoa(int(date.Month()) - 1)
	oneBased := strconv.Itoa(int(date.Month()))
	for _, val := range []string{zeroBased, oneBased} {
		if err := month.SelectValue(val, true); err == nil {
			return
		}
	}
	want := MonthsAbbrNL[date.Month()-1]
	for _, opt := range month.Options() {
		if strings.EqualFold(opt.Label, want) || strings.EqualFold(opt.Value, want) {
			_ = month.SelectValue(opt.Value, true)
			return
		}
	}
}

// findDayCell waits for a selectable cell whose rendered day number equals
// day. Unselectable cells are calendar padding or blocked dates and are
// never considered, even when their digits match.
func findDayCell(page browser.Page, day int) (browser.Element, bool) {
	want := strconv.Itoa(day)
	var found browser.Element
	ok := pollUntil(dayCellBudget, func() bool {
		for _, cell := range page.QueryAll(popupCalendarCell) {
			if !cell.Selectable() {
				continue
			}
			if cell.Text() == want {
				found = cell
				return true
			}
		}
		return false
	})
	return found, ok
}

// MonthAvailability reads the open popup's calendar and splits its day
// numbers into selectable and unselectable sets.
func MonthAvailability(page browser.Page) (selectable, unselectable []int) {
	for _, cell := range page.QueryAll(popupCalendarCell) {
		day, err := strconv.Atoi(cell.Text())
		if err != nil {
			continue
		}
		if cell.Selectable() {
			selectable = append(selectable, day)
		} else {
			unselectable = append(unselectable, day)
		}
	}
	return selectable, unselectable
}
