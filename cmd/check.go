package cmd

import (
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/hallcheck/internal/browser"
	"github.com/example/hallcheck/internal/config"
	"github.com/example/hallcheck/internal/history"
	"github.com/example/hallcheck/internal/runner"
	"github.com/example/hallcheck/internal/sink"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check availability for the configured weekly slots",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}

			sinks := []sink.Sink{
				sink.Console{Out: os.Stdout},
				sink.CSV{Path: cfg.ResultsCSV},
			}
			if cfg.DatabaseURL != "" {
				repo, err := history.Open(ctx, cfg.DatabaseURL)
				if err != nil {
					slog.Warn("history database unavailable, continuing without it", "err", err)
				} else {
					defer repo.Close()
					sinks = append(sinks, repo)
				}
			}

			sess, err := browser.Launch(cfg.Headless)
			if err != nil {
				return err
			}

			run := &runner.Runner{Session: sess, Config: cfg}
			results, err := run.Run(ctx)
			if err != nil {
				return err
			}

			runTS := time.Now()
			for _, s := range sinks {
				if err := s.Write(ctx, runTS, results); err != nil {
					slog.Warn("result sink failed", "err", err)
				}
			}
			return nil
		},
	}
}
