package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mcaimi/tmux-filmroll/internal/importer"
)

// Run summarizes one recorded import.
type Run struct {
	ID          string    `json:"id"`
	Source      string    `json:"source"`
	Destination string    `json:"destination"`
	DryRun      bool      `json:"dry_run"`
	Interrupted bool      `json:"interrupted"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
	Copied      int       `json:"copied"`
	Skipped     int       `json:"skipped"`
	WouldCopy   int       `json:"would_copy"`
	Failed      int       `json:"failed"`
	BytesCopied int64     `json:"bytes_copied"`
}

// Entry is one recorded per-file outcome.
type Entry struct {
	Seq         int    `json:"seq"`
	SourcePath  string `json:"source_path"`
	Class       string `json:"class"`
	CaptureDate string `json:"capture_date,omitempty"`
	DateOrigin  string `json:"date_origin,omitempty"`
	Destination string `json:"destination,omitempty"`
	Action      string `json:"action"`
	Bytes       int64  `json:"bytes"`
	Error       string `json:"error,omitempty"`
}

// SaveReport records report and all of its outcomes atomically.
func (s *Store) SaveReport(ctx context.Context, report importer.Report) error {
	return retryOnBusy(ctx, func() error {
		return s.saveReport(ctx, report)
	})
}

func (s *Store) saveReport(ctx context.Context, report importer.Report) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin journal tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (
            id, source, destination, dry_run, interrupted, started_at, finished_at,
            copied, skipped, would_copy, failed, bytes_copied
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		report.RunID,
		report.Source,
		report.Destination,
		boolToInt(report.DryRun),
		boolToInt(report.Interrupted),
		report.StartedAt.UTC().Format(time.RFC3339Nano),
		report.FinishedAt.UTC().Format(time.RFC3339Nano),
		report.Count(importer.ActionCopied),
		report.Count(importer.ActionSkipped),
		report.Count(importer.ActionWouldCopy),
		report.Failed(),
		report.BytesCopied(),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO outcomes (
            run_id, seq, source_path, class, capture_date, date_origin,
            destination, action, bytes, error
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare outcome insert: %w", err)
	}
	defer stmt.Close()

	for i, outcome := range report.Outcomes {
		var date, origin sql.NullString
		if !outcome.Date.IsZero() {
			date = sql.NullString{String: outcome.Date.String(), Valid: true}
			origin = sql.NullString{String: string(outcome.Date.Origin), Valid: true}
		}
		var errText sql.NullString
		if outcome.Err != nil {
			errText = sql.NullString{String: outcome.Err.Error(), Valid: true}
		}
		if _, err := stmt.ExecContext(ctx,
			report.RunID,
			i,
			outcome.File.Path,
			outcome.File.Class.String(),
			date,
			origin,
			nullableString(outcome.Destination),
			string(outcome.Action),
			outcome.Bytes,
			errText,
		); err != nil {
			return fmt.Errorf("insert outcome %s: %w", outcome.File.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit journal: %w", err)
	}
	return nil
}

const runColumns = "id, source, destination, dry_run, interrupted, started_at, finished_at, copied, skipped, would_copy, failed, bytes_copied"

// RecentRuns returns up to limit runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs ORDER BY started_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Entries returns the outcomes recorded for runID in processing order.
func (s *Store) Entries(ctx context.Context, runID string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT seq, source_path, class, capture_date, date_origin, destination, action, bytes, error
         FROM outcomes WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("query outcomes: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			entry                              Entry
			date, origin, destination, errText sql.NullString
		)
		if err := rows.Scan(&entry.Seq, &entry.SourcePath, &entry.Class, &date, &origin,
			&destination, &entry.Action, &entry.Bytes, &errText); err != nil {
			return nil, fmt.Errorf("scan outcome: %w", err)
		}
		entry.CaptureDate = date.String
		entry.DateOrigin = origin.String
		entry.Destination = destination.String
		entry.Error = errText.String
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func scanRun(scanner interface{ Scan(dest ...any) error }) (Run, error) {
	var (
		run                  Run
		dryRun, interrupted  int
		startedRaw, finished string
	)
	if err := scanner.Scan(
		&run.ID,
		&run.Source,
		&run.Destination,
		&dryRun,
		&interrupted,
		&startedRaw,
		&finished,
		&run.Copied,
		&run.Skipped,
		&run.WouldCopy,
		&run.Failed,
		&run.BytesCopied,
	); err != nil {
		return Run{}, err
	}
	run.DryRun = dryRun != 0
	run.Interrupted = interrupted != 0
	run.StartedAt = parseTime(startedRaw)
	run.FinishedAt = parseTime(finished)
	return run, nil
}

func parseTime(raw string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
