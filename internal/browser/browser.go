// Package browser defines the capability surface the availability checker
// needs from a browser-automation substrate. Production code runs against
// the Playwright adapter in this package; tests run against the scriptable
// fake in browsertest.
package browser

import (
	"context"
	"time"
)

// Option is one entry of a selection control as rendered to the user.
type Option struct {
	Label string
	Value string
}

// Element is a live handle to one element in the document. Like a Playwright
// locator it is a query, not a snapshot: reading it reflects current state.
type Element interface {
	// Text returns the element's rendered inner text, trimmed.
	Text() string
	// Attr returns the named attribute, or "" if absent.
	Attr(name string) string
	Visible() bool
	Click() error
	// Fill writes a value into an input element.
	Fill(value string) error
	// FillWithEvents writes a value and dispatches synthetic input/change
	// events so listeners that do not poll the field still react.
	FillWithEvents(value string) error
	// SelectValue selects an option of a selection control by value.
	// It returns an error when the option does not exist or cannot be
	// selected (disabled options reject selection).
	SelectValue(value string, force bool) error
	// Options enumerates a selection control's options. Empty for
	// non-select elements.
	Options() []Option
	// Selectable reports whether the element accepts interaction; calendar
	// padding cells and blocked dates report false.
	Selectable() bool
}

// Page is the single live document a run operates on.
type Page interface {
	Goto(ctx context.Context, url string) error
	Reload(ctx context.Context) error
	// ByLabel finds the form control associated with an accessible label.
	ByLabel(label string) (Element, bool)
	// Query returns the first element matching a CSS selector.
	Query(selector string) (Element, bool)
	// QueryAll returns all elements matching a CSS selector in document
	// order.
	QueryAll(selector string) []Element
	Title() (string, error)
	Content() (string, error)
	Screenshot(path string, fullPage bool) error
	// Settle blocks for a fixed duration. Prefer polling element state;
	// this exists for waits with no observable post-condition.
	Settle(d time.Duration)
}

// Session owns the browser process backing a Page. The orchestrator must
// close it on every exit path.
type Session interface {
	Page() Page
	StartTracing() error
	StopTracing(path string) error
	Close() error
}
