// Package datedriver drives whichever date-entry mechanism the booking form
// exposes to a target date. One strategy exists per resolved DateEntryKind;
// the orchestrator picks the strategy once per run and may escalate a native
// field to event dispatch when the page ignores plain value writes.
package datedriver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/example/hallcheck/internal/browser"
	"github.com/example/hallcheck/internal/resolver"
)

var (
	// ErrNoDateEntry means the resolver found no date-entry mechanism.
	ErrNoDateEntry = errors.New("no date entry mechanism resolved")
	// ErrPopupNotVisible means the calendar popup did not open after the
	// trigger was clicked, including one retry.
	ErrPopupNotVisible = errors.New("calendar popup did not become visible")
	// ErrNoDayCell means no selectable calendar cell carried the target
	// day number, which normally indicates month/year failed to apply.
	ErrNoDayCell = errors.New("no selectable day cell matched target day")
)

// IsApplyError reports whether err is an expected date-apply failure, to be
// recorded as "not available" rather than a run error.
func IsApplyError(err error) bool {
	return errors.Is(err, ErrNoDateEntry) ||
		errors.Is(err, ErrPopupNotVisible) ||
		errors.Is(err, ErrNoDayCell)
}

// Driver sets the resolved date-entry mechanism to a target date.
type Driver interface {
	Kind() resolver.DateEntryKind
	SetDate(ctx context.Context, page browser.Page, entry resolver.DateEntry, date time.Time) error
}

// New returns the strategy for a resolved kind.
func New(kind resolver.DateEntryKind) (Driver, error) {
	switch kind {
	case resolver.DateEntryNativeField:
		return nativeField{}, nil
	case resolver.DateEntryEventDispatch:
		return eventDispatchField{}, nil
	case resolver.DateEntryCalendarWidget:
		return calendarWidget{}, nil
	case resolver.DateEntrySplitSelects:
		return splitSelects{}, nil
	default:
		return nil, ErrNoDateEntry
	}
}

const isoDate = "2006-01-02"

// nativeField writes the ISO date straight into the field's value.
type nativeField struct{}

func (nativeField) Kind() resolver.DateEntryKind { return resolver.DateEntryNativeField }

func (nativeField) SetDate(ctx context.Context, page browser.Page, entry resolver.DateEntry, date time.Time) error {
	if entry.Field == nil {
		return ErrNoDateEntry
	}
	if err := entry.Field.El.Fill(date.Format(isoDate)); err != nil {
		return fmt.Errorf("fill date field: %w", err)
	}
	return nil
}

// eventDispatchField writes the value and synthesizes input/change events,
// for pages that listen for events instead of polling the field.
type eventDispatchField struct{}

func (eventDispatchField) Kind() resolver.DateEntryKind { return resolver.DateEntryEventDispatch }

func (eventDispatchField) SetDate(ctx context.Context, page browser.Page, entry resolver.DateEntry, date time.Time) error {
	if entry.Field == nil {
		return ErrNoDateEntry
	}
	if err := entry.Field.El.FillWithEvents(date.Format(isoDate)); err != nil {
		return fmt.Errorf("fill date field with events: %w", err)
	}
	return nil
}

const pollInterval = 25 * time.Millisecond

// AwaitRefresh polls an element's rendered text until it differs from prev
// or the budget elapses, reporting whether a change was observed. This
// replaces the fixed settle sleeps the form needs after a date change.
func AwaitRefresh(el browser.Element, prev string, budget time.Duration) bool {
	deadline := time.Now().Add(budget)
	for {
		if el.Text() != prev {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(pollInterval)
	}
}

// pollUntil retries cond every poll interval until it succeeds or the
// budget elapses.
func pollUntil(budget time.Duration, cond func() bool) bool {
	deadline := time.Now().Add(budget)
	for {
		if cond() {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(pollInterval)
	}
}
