// Package runner sequences one availability run: navigate, set duration,
// resolve controls once, then drive the date and read availability per
// target. A single browser session and document carry the whole run; date
// driving for each target starts from whatever state the previous target
// left behind, which is what makes a multi-target run cheap.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/example/hallcheck/internal/availability"
	"github.com/example/hallcheck/internal/browser"
	"github.com/example/hallcheck/internal/config"
	"github.com/example/hallcheck/internal/datedriver"
	"github.com/example/hallcheck/internal/resolver"
	"github.com/example/hallcheck/internal/schedule"
)

// ErrNavigation is the only fatal run error: the page never reached a
// usable state within the retry budget. Everything else is contained to
// its target.
var ErrNavigation = errors.New("navigation failed")

const (
	navAttempts   = 3
	navBackoff    = 1500 * time.Millisecond
	refreshBudget = 1200 * time.Millisecond

	fallbackDuration = "1 uur"
	errorDetailMax   = 120
)

// Runner owns the browser session for exactly one run and releases it on
// every exit path.
type Runner struct {
	Session browser.Session
	Config  config.Config

	// Now is overridable for tests; defaults to time.Now.
	Now func() time.Time
}

// Run checks every configured target and returns one result per target in
// input order. Individual target failures are recorded in their result;
// only a navigation failure aborts the run.
func (r *Runner) Run(ctx context.Context) ([]schedule.Result, error) {
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	plan := schedule.BuildPlan(now(), r.Config.Targets, r.Config.WeeksAhead)

	page := r.Session.Page()
	defer func() {
		if r.Config.TracePath != "" {
			if err := r.Session.StopTracing(r.Config.TracePath); err != nil {
				slog.Warn("stopping trace failed", "path", r.Config.TracePath, "err", err)
			}
		}
		if err := r.Session.Close(); err != nil {
			slog.Warn("closing browser session failed", "err", err)
		}
	}()

	if r.Config.TracePath != "" {
		if err := r.Session.StartTracing(); err != nil {
			slog.Warn("starting trace failed", "err", err)
		}
	}

	if err := r.navigate(ctx, page); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNavigation, err)
	}

	controls := resolver.Resolve(page)
	slog.Info("controls resolved",
		"duration", strategyOf(controls.Duration),
		"time", strategyOf(controls.Time),
		"date_entry", controls.Date.Kind.String())

	r.setDuration(controls.Duration)
	r.selectActivity(page)

	kind := controls.Date.Kind
	results := make([]schedule.Result, 0, len(plan))
	for _, entry := range plan {
		res := r.checkTarget(ctx, page, controls, &kind, entry)
		results = append(results, res)

		if res.Availability == schedule.AvailabilityError {
			// Best-effort recovery so later targets get a clean page.
			if err := page.Reload(ctx); err != nil {
				slog.Warn("reload after target failure failed", "err", err)
			}
		}
	}
	return results, nil
}

func (r *Runner) navigate(ctx context.Context, page browser.Page) error {
	var last error
	for attempt := 1; attempt <= navAttempts; attempt++ {
		if err := page.Goto(ctx, r.Config.BookURL); err != nil {
			last = err
			slog.Warn("navigation attempt failed", "attempt", attempt, "err", err)
			page.Settle(navBackoff)
			continue
		}
		return nil
	}
	return last
}

// setDuration applies the preferred duration when the control resolved and
// offers it, falling back to the shortest duration, else leaving the site
// default in place.
func (r *Runner) setDuration(h *resolver.Handle) {
	if h == nil {
		slog.Warn("duration control not resolved, keeping site default")
		return
	}
	text := h.El.Text()
	want := r.Config.Duration
	if !strings.Contains(text, want) {
		want = fallbackDuration
	}
	for _, opt := range h.El.Options() {
		if opt.Label != want {
			continue
		}
		if err := h.El.SelectValue(opt.Value, false); err != nil {
			slog.Warn("duration selection failed", "label", want, "err", err)
			return
		}
		slog.Info("duration selected", "label", want)
		return
	}
	slog.Warn("duration option not offered", "label", want)
}

// selectActivity picks the configured activity when the form has the
// optional activity select. Absence is normal and skipped silently.
func (r *Runner) selectActivity(page browser.Page) {
	if r.Config.Activity == "" {
		return
	}
	sel, ok := page.ByLabel(resolver.LabelActivity)
	if !ok {
		return
	}
	want := strings.ToLower(r.Config.Activity)
	for _, opt := range sel.Options() {
		if strings.Contains(strings.ToLower(opt.Label), want) {
			if err := sel.SelectValue(opt.Value, false); err != nil {
				slog.Warn("activity selection failed", "label", opt.Label, "err", err)
			}
			return
		}
	}
}

// checkTarget is the per-target failure boundary: whatever goes wrong
// inside it ends up in the result, never past it.
func (r *Runner) checkTarget(ctx context.Context, page browser.Page, controls resolver.Controls, kind *resolver.DateEntryKind, entry schedule.PlanEntry) (res schedule.Result) {
	res = schedule.Result{
		Date:         entry.Date,
		Weekday:      schedule.WeekdayLabel(entry.Target.Weekday),
		Start:        entry.Target.Start,
		Availability: schedule.AvailabilityNo,
	}
	defer func() {
		if p := recover(); p != nil {
			res.Availability = schedule.AvailabilityError
			res.Label = ""
			res.ErrorDetail = truncate(fmt.Sprint(p), errorDetailMax)
		}
	}()

	iso := entry.Date.Format("2006-01-02")
	slog.Info("checking target", "date", iso, "weekday", res.Weekday, "start", res.Start)

	if *kind == resolver.DateEntryAbsent || controls.Time == nil {
		return res
	}

	if err := r.applyDate(ctx, page, controls, kind, entry.Date); err != nil {
		if datedriver.IsApplyError(err) {
			slog.Warn("date did not apply", "date", iso, "err", err)
			return res
		}
		res.Availability = schedule.AvailabilityError
		res.ErrorDetail = truncate(err.Error(), errorDetailMax)
		return res
	}

	ok, label := availability.Check(controls.Time.El, entry.Target.Start)
	if !ok {
		return res
	}
	res.Availability = schedule.AvailabilityYes
	res.Label = label
	slog.Info("slot available", "date", iso, "label", label)
	r.captureScreenshot(page, res)
	return res
}

// applyDate drives the date-entry mechanism and waits for the dependent
// time-slot control to refresh. A native field whose write leaves the
// time-slot control stale is escalated to the event-dispatch strategy for
// the remainder of the run.
func (r *Runner) applyDate(ctx context.Context, page browser.Page, controls resolver.Controls, kind *resolver.DateEntryKind, date time.Time) error {
	before := controls.Time.El.Text()

	drv, err := datedriver.New(*kind)
	if err != nil {
		return err
	}
	if err := drv.SetDate(ctx, page, controls.Date, date); err != nil {
		return err
	}

	refreshed := datedriver.AwaitRefresh(controls.Time.El, before, refreshBudget)
	if refreshed || *kind != resolver.DateEntryNativeField {
		return nil
	}

	slog.Info("time options stale after native date write, escalating to event dispatch")
	*kind = resolver.DateEntryEventDispatch
	drv, err = datedriver.New(*kind)
	if err != nil {
		return err
	}
	if err := drv.SetDate(ctx, page, controls.Date, date); err != nil {
		return err
	}
	datedriver.AwaitRefresh(controls.Time.El, before, refreshBudget)
	return nil
}

func (r *Runner) captureScreenshot(page browser.Page, res schedule.Result) {
	if r.Config.ScreenshotDir == "" {
		return
	}
	if err := os.MkdirAll(r.Config.ScreenshotDir, 0o755); err != nil {
		slog.Warn("creating screenshot dir failed", "dir", r.Config.ScreenshotDir, "err", err)
		return
	}
	name := fmt.Sprintf("%s_%s_%s.png",
		res.Date.Format("20060102"), res.Weekday, strings.ReplaceAll(res.Start, ":", ""))
	path := filepath.Join(r.Config.ScreenshotDir, name)
	if err := page.Screenshot(path, true); err != nil {
		slog.Warn("screenshot failed", "path", path, "err", err)
	}
}

func strategyOf(h *resolver.Handle) string {
	if h == nil {
		return "unresolved"
	}
	return string(h.Strategy)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
