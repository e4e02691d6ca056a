package schedule

import "time"

// NextOccurrence returns the date of the weeksAhead-th upcoming occurrence of
// wd, counted from ref. weeksAhead == 1 means the soonest occurrence on or
// after ref: if ref itself falls on wd the result is ref's date.
//
// Arithmetic is date-only; the time component of ref is dropped and no
// time-zone conversion happens.
func NextOccurrence(ref time.Time, wd time.Weekday, weeksAhead int) time.Time {
	base := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())
	delta := (int(wd) - int(base.Weekday()) + 7) % 7
	if weeksAhead > 1 {
		delta += 7 * (weeksAhead - 1)
	}
	return base.AddDate(0, 0, delta)
}

// BuildPlan maps each target to its concrete date, preserving target order.
func BuildPlan(ref time.Time, targets []Target, weeksAhead int) []PlanEntry {
	plan := make([]PlanEntry, 0, len(targets))
	for _, t := range targets {
		plan = append(plan, PlanEntry{
			Date:   NextOccurrence(ref, t.Weekday, weeksAhead),
			Target: t,
		})
	}
	return plan
}
