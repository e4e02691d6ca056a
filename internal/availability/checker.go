// Package availability decides whether a desired start time is bookable
// given the resolved time-slot control.
package availability

import (
	"strings"

	"github.com/example/hallcheck/internal/browser"
)

// Check enumerates the time-slot control's options, whose display text has
// the form "HH:MM - HH:MM", and matches the desired start as a prefix so
// trailing-range variation is tolerated. Only the first lexical match is
// consulted. The matched option is then actually selected: the site lists
// fully-booked slots as non-selectable options, so a match that rejects
// selection is reported as unavailable with an empty label, same as no
// match at all.
func Check(timeSlot browser.Element, start string) (available bool, label string) {
	if timeSlot == nil {
		return false, ""
	}
	for _, opt := range timeSlot.Options() {
		text := strings.TrimSpace(opt.Label)
		if !strings.HasPrefix(text, start) {
			continue
		}
		value := opt.Value
		if value == "" {
			value = text
		}
		if err := timeSlot.SelectValue(value, false); err != nil {
			return false, ""
		}
		return true, text
	}
	return false, ""
}
