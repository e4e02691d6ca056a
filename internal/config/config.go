package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/example/hallcheck/internal/schedule"
)

type Config struct {
	BookURL  string
	Headless bool

	WeeksAhead int
	Duration   string
	Activity   string
	Targets    []schedule.Target

	ResultsCSV    string
	ScreenshotDir string
	TracePath     string

	// DatabaseURL enables the Postgres check-history sink when set.
	DatabaseURL string

	SlotsFile string
}

func defaultTargets() []schedule.Target {
	return []schedule.Target{
		{Weekday: time.Monday, Start: "20:00"},
		{Weekday: time.Thursday, Start: "20:00"},
		{Weekday: time.Sunday, Start: "14:00"},
	}
}

// FromEnv builds the configuration from environment variables, applying
// defaults where unset, then overlays the slots file when one exists.
func FromEnv() (Config, error) {
	cfg := Config{
		BookURL:       getenv("BOOK_URL", "https://avo.hta.nl/uithoorn/Accommodation/Book/106"),
		Headless:      strings.ToLower(getenv("HEADLESS", "true")) == "true",
		Duration:      getenv("DURATION", "1,5 uur"),
		Activity:      os.Getenv("ACTIVITY"),
		Targets:       defaultTargets(),
		ResultsCSV:    getenv("RESULTS_CSV", "results.csv"),
		ScreenshotDir: getenv("SCREENSHOT_DIR", "screenshots"),
		TracePath:     getenv("TRACE_PATH", "trace.zip"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		SlotsFile:     getenv("SLOTS_FILE", "slots.json"),
	}

	weeks, err := strconv.Atoi(getenv("WEEKS_AHEAD", "2"))
	if err != nil || weeks < 1 {
		return Config{}, fmt.Errorf("invalid WEEKS_AHEAD")
	}
	cfg.WeeksAhead = weeks

	// A malformed or missing slots file leaves the defaults in place.
	_ = cfg.ApplySlotsFile(cfg.SlotsFile)

	return cfg, nil
}

type slotsFile struct {
	WeeksAhead int    `json:"weeks_ahead"`
	Duration   string `json:"duration"`
	Targets    []struct {
		Weekday string `json:"weekday"`
		Start   string `json:"start"`
	} `json:"targets"`
}

// ApplySlotsFile overlays weeks_ahead, duration and targets from a JSON
// file. The config is only modified when the whole file parses cleanly.
func (c *Config) ApplySlotsFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var sf slotsFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	var targets []schedule.Target
	for _, t := range sf.Targets {
		wd, err := schedule.ParseWeekday(t.Weekday)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		targets = append(targets, schedule.Target{Weekday: wd, Start: t.Start})
	}

	if sf.WeeksAhead > 0 {
		c.WeeksAhead = sf.WeeksAhead
	}
	if sf.Duration != "" {
		c.Duration = sf.Duration
	}
	if len(targets) > 0 {
		c.Targets = targets
	}
	return nil
}

func getenv(k, def string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	return v
}
