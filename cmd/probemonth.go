package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/hallcheck/internal/browser"
	"github.com/example/hallcheck/internal/config"
	"github.com/example/hallcheck/internal/datedriver"
	"github.com/example/hallcheck/internal/resolver"
)

// probe-month opens the calendar widget on the month the horizon lands in
// and prints which day numbers are selectable, for debugging blocked dates.
func newProbeMonthCmd() *cobra.Command {
	var screenshot string

	cmd := &cobra.Command{
		Use:   "probe-month",
		Short: "List selectable and blocked days of the target month's calendar",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			target := time.Now().AddDate(0, 0, 7*cfg.WeeksAhead)

			sess, err := browser.Launch(cfg.Headless)
			if err != nil {
				return err
			}
			defer sess.Close()

			page := sess.Page()
			if err := page.Goto(ctx, cfg.BookURL); err != nil {
				return err
			}

			controls := resolver.Resolve(page)
			if controls.Date.Kind != resolver.DateEntryCalendarWidget {
				return fmt.Errorf("date entry is %s, not a calendar widget", controls.Date.Kind)
			}
			if err := datedriver.OpenPopup(page, controls.Date.Trigger.El); err != nil {
				return err
			}
			datedriver.SetPopupMonthYear(page, target)

			selectable, blocked := datedriver.MonthAvailability(page)
			fmt.Printf("=== %s ===\n", target.Format("2006-01"))
			fmt.Printf("selectable days: %v\n", selectable)
			fmt.Printf("blocked days:    %v\n", blocked)

			if screenshot != "" {
				if err := page.Screenshot(screenshot, true); err != nil {
					slog.Warn("screenshot failed", "path", screenshot, "err", err)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&screenshot, "screenshot", "calendar_month_probe.png", "screenshot path, empty to skip")
	return cmd
}
