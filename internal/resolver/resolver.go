// Package resolver locates the logical form controls of the booking form
// without relying on a single fixed selector. The form's markup changes
// between site revisions: labels are not always associated with controls,
// and the date entry has shipped as a native date field, a jQuery-style
// calendar widget and a day/month/year select triple at different times.
// Each control role is resolved through an ordered chain of matchers; the
// first hit wins and later strategies never run.
package resolver

import (
	"regexp"
	"strings"

	"github.com/example/hallcheck/internal/browser"
)

// Strategy identifies which matcher produced a handle.
type Strategy string

const (
	StrategyByLabel    Strategy = "by-label"
	StrategyByContent  Strategy = "by-content"
	StrategyByPosition Strategy = "by-position"
)

// Known label strings on the booking form. These are the most stable
// anchors when the site associates them with controls, which it does not
// always do.
const (
	LabelDuration = "Hoe lang wilt u reserveren?"
	LabelDate     = "Voor wanneer?"
	LabelTime     = "Welke tijd"
	LabelActivity = "Activiteit"
)

// Handle is a discovered control plus the strategy that found it.
type Handle struct {
	El       browser.Element
	Strategy Strategy
}

// DateEntryKind tags which date-entry mechanism the live document exposes.
type DateEntryKind int

const (
	DateEntryAbsent DateEntryKind = iota
	// DateEntryNativeField is an input[type=date] that accepts an ISO
	// date written into its value.
	DateEntryNativeField
	// DateEntryEventDispatch is a native field whose page listens for
	// input/change events instead of polling the value. The resolver
	// never produces this kind; the orchestrator escalates to it when a
	// plain value write leaves the time-slot control stale.
	DateEntryEventDispatch
	// DateEntryCalendarWidget is a popup calendar opened by a trigger
	// element, with month/year selects inside the popup.
	DateEntryCalendarWidget
	// DateEntrySplitSelects is a day/month/year triple of selects.
	DateEntrySplitSelects
)

func (k DateEntryKind) String() string {
	switch k {
	case DateEntryNativeField:
		return "native-field"
	case DateEntryEventDispatch:
		return "event-dispatch"
	case DateEntryCalendarWidget:
		return "calendar-widget"
	case DateEntrySplitSelects:
		return "split-selects"
	default:
		return "absent"
	}
}

// DateEntry is the resolved date-entry mechanism. Which handles are set
// depends on Kind: Field for native/event-dispatch, Trigger for the
// calendar widget (its month/year selects live inside the popup and are
// located after opening), Day/Month/Year for split selects.
type DateEntry struct {
	Kind    DateEntryKind
	Field   *Handle
	Trigger *Handle
	Day     *Handle
	Month   *Handle
	Year    *Handle
}

// Controls holds zero-or-one handle per control role. A nil handle means
// the role could not be resolved; callers degrade instead of failing.
type Controls struct {
	Duration *Handle
	Time     *Handle
	Date     DateEntry
}

// Matcher is one resolution strategy for a control role.
type Matcher interface {
	Strategy() Strategy
	Find(p browser.Page) (browser.Element, bool)
}

// ByLabel matches the control associated with an accessible label.
type ByLabel struct{ Label string }

func (m ByLabel) Strategy() Strategy { return StrategyByLabel }

func (m ByLabel) Find(p browser.Page) (browser.Element, bool) {
	return p.ByLabel(m.Label)
}

// ByContent scans the page's visible selection controls in document order
// and picks the first whose rendered option text satisfies the predicate.
type ByContent struct {
	Match func(text string) bool
}

func (m ByContent) Strategy() Strategy { return StrategyByContent }

func (m ByContent) Find(p browser.Page) (browser.Element, bool) {
	for _, el := range p.QueryAll("select") {
		if !el.Visible() {
			continue
		}
		if m.Match(el.Text()) {
			return el, true
		}
	}
	return nil, false
}

// ByPosition picks a selection control by ordinal index; negative indexes
// count from the end. Last resort only.
type ByPosition struct{ Index int }

func (m ByPosition) Strategy() Strategy { return StrategyByPosition }

func (m ByPosition) Find(p browser.Page) (browser.Element, bool) {
	els := p.QueryAll("select")
	i := m.Index
	if i < 0 {
		i += len(els)
	}
	if i < 0 || i >= len(els) {
		return nil, false
	}
	return els[i], true
}

var (
	durationTokenRe = regexp.MustCompile(`\b\d+(,\d+)?\s*uur\b`)
	timeRangeRe     = regexp.MustCompile(`\b\d{2}:\d{2}\b`)
	yearTokenRe     = regexp.MustCompile(`\b20\d{2}\b`)
)

// DurationSignature reports whether option text looks like a duration list:
// it must contain at least two distinct duration tokens ("1 uur" .. "8 uur").
func DurationSignature(text string) bool {
	seen := map[string]bool{}
	for _, tok := range durationTokenRe.FindAllString(strings.ToLower(text), -1) {
		seen[tok] = true
	}
	return len(seen) >= 2
}

// TimeSignature reports whether option text contains HH:MM time ranges.
func TimeSignature(text string) bool {
	return timeRangeRe.MatchString(text)
}

// monthSignature matches a select listing full Dutch month names.
func monthSignature(text string) bool {
	text = strings.ToLower(text)
	for _, m := range monthsFullNL {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}

// yearSignature matches a select listing multiple four-digit years.
func yearSignature(text string) bool {
	seen := map[string]bool{}
	for _, tok := range yearTokenRe.FindAllString(text, -1) {
		seen[tok] = true
	}
	return len(seen) >= 2
}

// daySignature matches a select listing the numerals characteristic of a
// day-of-month range.
func daySignature(text string) bool {
	for _, d := range []string{"1", "2", "3", "10", "20", "31"} {
		if !strings.Contains(text, d) {
			return false
		}
	}
	return true
}

var monthsFullNL = []string{
	"januari", "februari", "maart", "april", "mei", "juni",
	"juli", "augustus", "september", "oktober", "november", "december",
}

// Fixed ordinal fallbacks, from the last known good form layout: the
// duration question was the third select; the time list renders last.
const (
	durationPosition = 2
	timePosition     = -1
)

var durationChain = []Matcher{
	ByLabel{Label: LabelDuration},
	ByContent{Match: DurationSignature},
	ByPosition{Index: durationPosition},
}

var timeChain = []Matcher{
	ByLabel{Label: LabelTime},
	ByContent{Match: TimeSignature},
	ByPosition{Index: timePosition},
}

func resolveChain(p browser.Page, chain []Matcher) *Handle {
	for _, m := range chain {
		if el, ok := m.Find(p); ok {
			return &Handle{El: el, Strategy: m.Strategy()}
		}
	}
	return nil
}

// Resolve locates the duration control, the date-entry mechanism and the
// time-slot control. It never fails: unresolved roles come back nil (or
// DateEntryAbsent) and the caller degrades per role.
func Resolve(p browser.Page) Controls {
	return Controls{
		Duration: resolveChain(p, durationChain),
		Time:     resolveChain(p, timeChain),
		Date:     resolveDateEntry(p),
	}
}

// Trigger candidates for the calendar-widget variant, most specific first.
var calendarTriggerSelectors = []string{
	".ui-datepicker-trigger",
	"input.hasDatepicker",
}

// Loose date-input selectors, tried only after everything else.
var looseDateSelectors = []string{
	"input[id*='date']",
	"input[name*='date']",
}

func resolveDateEntry(p browser.Page) DateEntry {
	// A labelled control is the strongest anchor. Its input type decides
	// between a native field and a widget trigger.
	if el, ok := p.ByLabel(LabelDate); ok {
		h := &Handle{El: el, Strategy: StrategyByLabel}
		if el.Attr("type") == "date" {
			return DateEntry{Kind: DateEntryNativeField, Field: h}
		}
		return DateEntry{Kind: DateEntryCalendarWidget, Trigger: h}
	}

	if el, ok := p.Query("input[type='date']"); ok {
		return DateEntry{
			Kind:  DateEntryNativeField,
			Field: &Handle{El: el, Strategy: StrategyByContent},
		}
	}

	for _, sel := range calendarTriggerSelectors {
		if el, ok := p.Query(sel); ok {
			return DateEntry{
				Kind:    DateEntryCalendarWidget,
				Trigger: &Handle{El: el, Strategy: StrategyByContent},
			}
		}
	}

	if entry, ok := resolveSplitSelects(p); ok {
		return entry
	}

	for _, sel := range looseDateSelectors {
		if el, ok := p.Query(sel); ok {
			return DateEntry{
				Kind:    DateEntryCalendarWidget,
				Trigger: &Handle{El: el, Strategy: StrategyByPosition},
			}
		}
	}

	return DateEntry{Kind: DateEntryAbsent}
}

// resolveSplitSelects classifies the day/month/year triple by content. All
// three must be present; a partial match is treated as no match so a later
// strategy (or graceful degradation) takes over.
func resolveSplitSelects(p browser.Page) (DateEntry, bool) {
	entry := DateEntry{Kind: DateEntrySplitSelects}
	for _, el := range p.QueryAll("select") {
		text := el.Text()
		switch {
		case entry.Month == nil && monthSignature(text):
			entry.Month = &Handle{El: el, Strategy: StrategyByContent}
		case entry.Year == nil && yearSignature(text):
			entry.Year = &Handle{El: el, Strategy: StrategyByContent}
		case entry.Day == nil && daySignature(text):
			entry.Day = &Handle{El: el, Strategy: StrategyByContent}
		}
	}
	if entry.Day == nil || entry.Month == nil || entry.Year == nil {
		return DateEntry{}, false
	}
	return entry, true
}
