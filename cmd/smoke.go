package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/hallcheck/internal/browser"
	"github.com/example/hallcheck/internal/config"
)

// Copy the booking form is expected to render; missing labels usually mean
// a site revision that needs new resolver heuristics.
var expectedFormLabels = []string{"Selecteer dag", "Welk dagdeel", "Hoe lang", "Activiteit"}

func newSmokeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "smoke",
		Short: "Verify the booking page loads and still carries the known form copy",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}

			sess, err := browser.Launch(cfg.Headless)
			if err != nil {
				return err
			}
			defer sess.Close()

			page := sess.Page()
			if err := page.Goto(ctx, cfg.BookURL); err != nil {
				return err
			}

			title, err := page.Title()
			if err != nil {
				return err
			}
			fmt.Printf("page title: %s\n", title)

			body := ""
			if el, ok := page.Query("body"); ok {
				body = el.Text()
			}
			allPresent := true
			for _, label := range expectedFormLabels {
				if !strings.Contains(body, label) {
					allPresent = false
					fmt.Printf("missing form label: %q\n", label)
				}
			}
			fmt.Printf("form labels present: %v\n", allPresent)
			fmt.Printf("has 'Beschikbare tijdvakken': %v\n", strings.Contains(body, "Beschikbare tijdvakken"))
			return nil
		},
	}
}
