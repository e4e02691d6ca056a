// Package browsertest provides a scriptable in-memory implementation of the
// browser capability surface for tests. Elements are registered under the
// exact selector strings and labels production code queries with; hooks let
// a test simulate the document reacting to interaction.
package browsertest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/example/hallcheck/internal/browser"
)

// Element is a fake form control.
type Element struct {
	InnerText    string // rendered text for non-select elements
	Opts         []browser.Option
	ID           string
	Class        string
	Type         string // input type attribute
	Hidden       bool
	Unselectable bool
	Rejected     map[string]bool // option values that refuse selection

	// Hooks override the default behavior when set.
	OnClick  func() error
	OnSelect func(value string, force bool) error
	OnFill   func(value string, withEvents bool) error

	Clicks   int
	Selected string
	Filled   string
}

func (e *Element) Text() string {
	if len(e.Opts) > 0 {
		labels := make([]string, len(e.Opts))
		for i, o := range e.Opts {
			labels[i] = o.Label
		}
		return strings.Join(labels, "\n")
	}
	return e.InnerText
}

func (e *Element) Attr(name string) string {
	switch name {
	case "id":
		return e.ID
	case "class":
		return e.Class
	case "type":
		return e.Type
	default:
		return ""
	}
}

func (e *Element) Visible() bool { return !e.Hidden }

func (e *Element) Click() error {
	if e.OnClick != nil {
		return e.OnClick()
	}
	e.Clicks++
	return nil
}

func (e *Element) Fill(value string) error {
	if e.OnFill != nil {
		return e.OnFill(value, false)
	}
	e.Filled = value
	return nil
}

func (e *Element) FillWithEvents(value string) error {
	if e.OnFill != nil {
		return e.OnFill(value, true)
	}
	e.Filled = value
	return nil
}

func (e *Element) SelectValue(value string, force bool) error {
	if e.OnSelect != nil {
		return e.OnSelect(value, force)
	}
	if e.Rejected[value] {
		return fmt.Errorf("option %q is not selectable", value)
	}
	for _, o := range e.Opts {
		if o.Value == value {
			e.Selected = value
			return nil
		}
	}
	return fmt.Errorf("no option with value %q", value)
}

func (e *Element) Options() []browser.Option { return e.Opts }

func (e *Element) Selectable() bool { return !e.Unselectable }

// Page is a fake document. Selectors maps CSS selector strings to the
// elements they match, in document order.
type Page struct {
	Labels    map[string]*Element
	Selectors map[string][]*Element

	// GotoErrs are consumed one per Goto call; nil entries mean success.
	// Once exhausted, Goto succeeds.
	GotoErrs  []error
	Gotos     int
	Reloads   int
	ReloadErr error

	TitleText   string
	ContentHTML string
	Screenshots []string
}

func NewPage() *Page {
	return &Page{
		Labels:    map[string]*Element{},
		Selectors: map[string][]*Element{},
	}
}

func (p *Page) Goto(ctx context.Context, url string) error {
	p.Gotos++
	if len(p.GotoErrs) > 0 {
		err := p.GotoErrs[0]
		p.GotoErrs = p.GotoErrs[1:]
		return err
	}
	return nil
}

func (p *Page) Reload(ctx context.Context) error {
	p.Reloads++
	return p.ReloadErr
}

func (p *Page) ByLabel(label string) (browser.Element, bool) {
	el, ok := p.Labels[label]
	if !ok {
		return nil, false
	}
	return el, true
}

func (p *Page) Query(selector string) (browser.Element, bool) {
	els := p.Selectors[selector]
	if len(els) == 0 {
		return nil, false
	}
	return els[0], true
}

func (p *Page) QueryAll(selector string) []browser.Element {
	els := p.Selectors[selector]
	out := make([]browser.Element, len(els))
	for i, el := range els {
		out[i] = el
	}
	return out
}

func (p *Page) Title() (string, error)   { return p.TitleText, nil }
func (p *Page) Content() (string, error) { return p.ContentHTML, nil }

func (p *Page) Screenshot(path string, fullPage bool) error {
	p.Screenshots = append(p.Screenshots, path)
	return nil
}

func (p *Page) Settle(d time.Duration) {}

// Session is a fake browser session wrapping a Page.
type Session struct {
	P            *Page
	Closed       bool
	TracingOn    bool
	TracePath    string
	TracStartErr error
}

func (s *Session) Page() browser.Page { return s.P }

func (s *Session) StartTracing() error {
	if s.TracStartErr != nil {
		return s.TracStartErr
	}
	s.TracingOn = true
	return nil
}

func (s *Session) StopTracing(path string) error {
	s.TracePath = path
	return nil
}

func (s *Session) Close() error {
	s.Closed = true
	return nil
}
