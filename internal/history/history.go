// Package history stores check results in Postgres so availability can be
// tracked across runs. It is optional: the repo is only opened when a
// database URL is configured.
package history

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/example/hallcheck/internal/schedule"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS availability_checks (
	id           BIGSERIAL PRIMARY KEY,
	run_ts       TIMESTAMPTZ NOT NULL,
	check_date   DATE        NOT NULL,
	weekday      TEXT        NOT NULL,
	start_time   TEXT        NOT NULL,
	available    TEXT        NOT NULL,
	slot_label   TEXT        NOT NULL DEFAULT '',
	error_detail TEXT        NOT NULL DEFAULT '',
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
)`

type Record struct {
	RunTS       time.Time
	Date        time.Time
	Weekday     string
	Start       string
	Available   string
	SlotLabel   string
	ErrorDetail string
}

type Repo struct {
	pool *pgxpool.Pool
}

// Open connects to Postgres and ensures the history table exists.
func Open(ctx context.Context, databaseURL string) (*Repo, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	cfg.MaxConnLifetime = 5 * time.Minute
	cfg.MaxConnIdleTime = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	r := &Repo{pool: pool}
	if err := r.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return r, nil
}

func (r *Repo) Close() { r.pool.Close() }

func (r *Repo) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return r.pool.Ping(ctx)
}

func (r *Repo) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, schemaSQL)
	return err
}

// Write appends one run's batch of results. It satisfies the result-sink
// contract so the repo can be wired alongside the console and CSV sinks.
func (r *Repo) Write(ctx context.Context, runTS time.Time, results []schedule.Result) error {
	for _, res := range results {
		_, err := r.pool.Exec(ctx, `
INSERT INTO availability_checks(run_ts, check_date, weekday, start_time, available, slot_label, error_detail)
VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			runTS, res.Date, res.Weekday, res.Start, string(res.Availability), res.Label, res.ErrorDetail)
		if err != nil {
			return err
		}
	}
	return nil
}

// Recent returns the newest records, most recent run first.
func (r *Repo) Recent(ctx context.Context, limit int) ([]Record, error) {
	rows, err := r.pool.Query(ctx, `
SELECT run_ts, check_date, weekday, start_time, available, slot_label, error_detail
FROM availability_checks
ORDER BY run_ts DESC, id DESC
LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.RunTS, &rec.Date, &rec.Weekday, &rec.Start,
			&rec.Available, &rec.SlotLabel, &rec.ErrorDetail); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
