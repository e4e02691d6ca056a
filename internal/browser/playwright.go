package browser

import (
	"context"
	"fmt"
	"strings"
	"time"

	pw "github.com/playwright-community/playwright-go"
)

const (
	defaultTimeoutMS    = 8000
	navigationTimeoutMS = 45000
)

// PlaywrightSession drives a real Chromium instance through playwright-go.
type PlaywrightSession struct {
	pw      *pw.Playwright
	browser pw.Browser
	ctx     pw.BrowserContext
	page    *playwrightPage
}

// Launch starts Chromium and opens a fresh page. The caller owns the session
// and must Close it.
func Launch(headless bool) (*PlaywrightSession, error) {
	runner, err := pw.Run()
	if err != nil {
		return nil, fmt.Errorf("start playwright: %w", err)
	}
	browser, err := runner.Chromium.Launch(pw.BrowserTypeLaunchOptions{
		Headless: pw.Bool(headless),
	})
	if err != nil {
		_ = runner.Stop()
		return nil, fmt.Errorf("launch chromium: %w", err)
	}
	bctx, err := browser.NewContext()
	if err != nil {
		_ = browser.Close()
		_ = runner.Stop()
		return nil, fmt.Errorf("new browser context: %w", err)
	}
	page, err := bctx.NewPage()
	if err != nil {
		_ = browser.Close()
		_ = runner.Stop()
		return nil, fmt.Errorf("new page: %w", err)
	}
	page.SetDefaultTimeout(defaultTimeoutMS)

	return &PlaywrightSession{
		pw:      runner,
		browser: browser,
		ctx:     bctx,
		page:    &playwrightPage{page: page},
	}, nil
}

func (s *PlaywrightSession) Page() Page { return s.page }

func (s *PlaywrightSession) StartTracing() error {
	return s.ctx.Tracing().Start(pw.TracingStartOptions{
		Screenshots: pw.Bool(true),
		Snapshots:   pw.Bool(true),
		Sources:     pw.Bool(true),
	})
}

func (s *PlaywrightSession) StopTracing(path string) error {
	return s.ctx.Tracing().Stop(path)
}

func (s *PlaywrightSession) Close() error {
	err := s.browser.Close()
	if serr := s.pw.Stop(); err == nil {
		err = serr
	}
	return err
}

type playwrightPage struct {
	page pw.Page
}

func (p *playwrightPage) Goto(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := p.page.Goto(url, pw.PageGotoOptions{
		WaitUntil: pw.WaitUntilStateNetworkidle,
		Timeout:   pw.Float(navigationTimeoutMS),
	})
	return err
}

func (p *playwrightPage) Reload(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := p.page.Reload(pw.PageReloadOptions{
		WaitUntil: pw.WaitUntilStateNetworkidle,
		Timeout:   pw.Float(navigationTimeoutMS),
	})
	return err
}

func (p *playwrightPage) ByLabel(label string) (Element, bool) {
	loc := p.page.GetByLabel(label)
	n, err := loc.Count()
	if err != nil || n == 0 {
		return nil, false
	}
	return &playwrightElement{loc: loc.First()}, true
}

func (p *playwrightPage) Query(selector string) (Element, bool) {
	loc := p.page.Locator(selector)
	n, err := loc.Count()
	if err != nil || n == 0 {
		return nil, false
	}
	return &playwrightElement{loc: loc.First()}, true
}

func (p *playwrightPage) QueryAll(selector string) []Element {
	loc := p.page.Locator(selector)
	n, err := loc.Count()
	if err != nil {
		return nil
	}
	els := make([]Element, 0, n)
	for i := 0; i < n; i++ {
		els = append(els, &playwrightElement{loc: loc.Nth(i)})
	}
	return els
}

func (p *playwrightPage) Title() (string, error)   { return p.page.Title() }
func (p *playwrightPage) Content() (string, error) { return p.page.Content() }

func (p *playwrightPage) Screenshot(path string, fullPage bool) error {
	_, err := p.page.Screenshot(pw.PageScreenshotOptions{
		Path:     pw.String(path),
		FullPage: pw.Bool(fullPage),
	})
	return err
}

func (p *playwrightPage) Settle(d time.Duration) {
	p.page.WaitForTimeout(float64(d.Milliseconds()))
}

type playwrightElement struct {
	loc pw.Locator
}

func (e *playwrightElement) Text() string {
	txt, err := e.loc.InnerText(pw.LocatorInnerTextOptions{Timeout: pw.Float(1000)})
	if err != nil {
		return ""
	}
	return strings.TrimSpace(txt)
}

func (e *playwrightElement) Attr(name string) string {
	v, err := e.loc.GetAttribute(name, pw.LocatorGetAttributeOptions{Timeout: pw.Float(1000)})
	if err != nil {
		return ""
	}
	return v
}

func (e *playwrightElement) Visible() bool {
	ok, err := e.loc.IsVisible()
	return err == nil && ok
}

func (e *playwrightElement) Click() error { return e.loc.Click() }

func (e *playwrightElement) Fill(value string) error { return e.loc.Fill(value) }

// FillWithEvents writes the value from inside the page and fires the events
// a change listener would expect. Some booking UIs ignore a plain value
// write because they never poll the field.
func (e *playwrightElement) FillWithEvents(value string) error {
	_, err := e.loc.Evaluate(`(el, val) => {
		el.value = val;
		el.dispatchEvent(new Event('input', {bubbles: true}));
		el.dispatchEvent(new Event('change', {bubbles: true}));
	}`, value)
	return err
}

func (e *playwrightElement) SelectValue(value string, force bool) error {
	values := []string{value}
	_, err := e.loc.SelectOption(pw.SelectOptionValues{Values: &values},
		pw.LocatorSelectOptionOptions{Force: pw.Bool(force)})
	return err
}

func (e *playwrightElement) Options() []Option {
	loc := e.loc.Locator("option")
	n, err := loc.Count()
	if err != nil {
		return nil
	}
	opts := make([]Option, 0, n)
	for i := 0; i < n; i++ {
		opt := loc.Nth(i)
		label, err := opt.InnerText(pw.LocatorInnerTextOptions{Timeout: pw.Float(1000)})
		if err != nil {
			continue
		}
		label = strings.TrimSpace(label)
		value, err := opt.GetAttribute("value", pw.LocatorGetAttributeOptions{Timeout: pw.Float(1000)})
		if err != nil || value == "" {
			value = label
		}
		opts = append(opts, Option{Label: label, Value: value})
	}
	return opts
}

func (e *playwrightElement) Selectable() bool {
	if e.Attr("disabled") != "" || e.Attr("aria-disabled") == "true" {
		return false
	}
	class := e.Attr("class")
	return !strings.Contains(class, "disabled") && !strings.Contains(class, "unselectable")
}
