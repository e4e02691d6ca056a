package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/example/hallcheck/internal/browser"
	"github.com/example/hallcheck/internal/config"
)

// inspect dumps the booking form's controls so heuristics can be updated
// when the site ships a new revision.
func newInspectCmd() *cobra.Command {
	var url string
	var screenshot string

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Dump the booking form's selects, labels and buttons",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			if url == "" {
				url = cfg.BookURL
			}

			sess, err := browser.Launch(cfg.Headless)
			if err != nil {
				return err
			}
			defer sess.Close()

			page := sess.Page()
			if err := page.Goto(ctx, url); err != nil {
				return err
			}

			if screenshot != "" {
				if err := page.Screenshot(screenshot, true); err != nil {
					slog.Warn("screenshot failed", "path", screenshot, "err", err)
				} else {
					fmt.Printf("screenshot saved -> %s\n", screenshot)
				}
			}

			selects := page.QueryAll("select")
			fmt.Printf("found %d <select> elements\n", len(selects))
			for i, sel := range selects {
				label := "(label not found)"
				if id := sel.Attr("id"); id != "" {
					if lab, ok := page.Query(fmt.Sprintf("label[for='%s']", id)); ok {
						label = lab.Text()
					}
				}
				fmt.Printf("\n== SELECT #%d | label: %s | visible: %v ==\n", i+1, label, sel.Visible())
				for _, opt := range sel.Options() {
					fmt.Printf(" - option: %q (value=%q)\n", opt.Label, opt.Value)
				}
			}

			var buttons []string
			for _, b := range page.QueryAll("button, input[type=submit], a[role=button]") {
				if t := b.Text(); t != "" {
					buttons = append(buttons, t)
				}
			}
			fmt.Printf("\nbuttons found: %v\n", buttons)
			return nil
		},
	}
	cmd.Flags().StringVar(&url, "url", "", "page to inspect (defaults to BOOK_URL)")
	cmd.Flags().StringVar(&screenshot, "screenshot", "snap_form.png", "screenshot path, empty to skip")
	return cmd
}
