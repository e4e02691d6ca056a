package schedule

import (
	"fmt"
	"time"
)

// Target is one desired weekly slot: a weekday plus a start time in "HH:MM".
type Target struct {
	Weekday time.Weekday
	Start   string
}

// PlanEntry binds a target to the concrete calendar date it should be
// checked on.
type PlanEntry struct {
	Date   time.Time
	Target Target
}

type Availability string

const (
	AvailabilityYes   Availability = "YES"
	AvailabilityNo    Availability = "NO"
	AvailabilityError Availability = "ERROR"
)

// Result is the outcome of checking a single plan entry. Exactly one is
// produced per entry and it is never mutated after creation.
type Result struct {
	Date         time.Time
	Weekday      string // three-letter label, e.g. "Mon"
	Start        string
	Availability Availability
	Label        string // matched option text, e.g. "20:00 - 21:30"
	ErrorDetail  string
}

var weekdayLabels = map[string]time.Weekday{
	"Mon": time.Monday,
	"Tue": time.Tuesday,
	"Wed": time.Wednesday,
	"Thu": time.Thursday,
	"Fri": time.Friday,
	"Sat": time.Saturday,
	"Sun": time.Sunday,
}

// ParseWeekday converts a three-letter label ("Mon".."Sun") to a time.Weekday.
func ParseWeekday(label string) (time.Weekday, error) {
	wd, ok := weekdayLabels[label]
	if !ok {
		return 0, fmt.Errorf("unknown weekday label %q", label)
	}
	return wd, nil
}

// WeekdayLabel is the inverse of ParseWeekday.
func WeekdayLabel(wd time.Weekday) string {
	return wd.String()[:3]
}
