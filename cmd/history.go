package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/hallcheck/internal/config"
	"github.com/example/hallcheck/internal/history"
)

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent check results from the history database",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			if cfg.DatabaseURL == "" {
				return fmt.Errorf("DATABASE_URL is not set")
			}

			repo, err := history.Open(ctx, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer repo.Close()

			records, err := repo.Recent(ctx, limit)
			if err != nil {
				return err
			}
			for _, r := range records {
				label := r.SlotLabel
				if label == "" {
					label = r.ErrorDetail
				}
				fmt.Printf("%s  %s (%s) %s  %-5s  %s\n",
					r.RunTS.Format("2006-01-02 15:04"),
					r.Date.Format("2006-01-02"), r.Weekday, r.Start,
					r.Available, label)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "max records to show")
	return cmd
}
