package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/mcaimi/tmux-filmroll/internal/importer"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type countJSON struct {
	Raw          int   `json:"raw"`
	Raster       int   `json:"raster"`
	Video        int   `json:"video"`
	Total        int   `json:"total"`
	PendingBytes int64 `json:"pending_bytes"`
}

type failureJSON struct {
	Path        string `json:"path"`
	Destination string `json:"destination,omitempty"`
	Error       string `json:"error"`
}

type summaryJSON struct {
	RunID       string        `json:"run_id"`
	Source      string        `json:"source"`
	Destination string        `json:"destination"`
	DryRun      bool          `json:"dry_run"`
	Interrupted bool          `json:"interrupted"`
	Copied      int           `json:"copied"`
	Skipped     int           `json:"skipped"`
	WouldCopy   int           `json:"would_copy"`
	Failed      int           `json:"failed"`
	BytesCopied int64         `json:"bytes_copied"`
	DurationMS  int64         `json:"duration_ms"`
	Failures    []failureJSON `json:"failures"`
}

func newSummaryJSON(report importer.Report) summaryJSON {
	summary := summaryJSON{
		RunID:       report.RunID,
		Source:      report.Source,
		Destination: report.Destination,
		DryRun:      report.DryRun,
		Interrupted: report.Interrupted,
		Copied:      report.Count(importer.ActionCopied),
		Skipped:     report.Count(importer.ActionSkipped),
		WouldCopy:   report.Count(importer.ActionWouldCopy),
		Failed:      report.Failed(),
		BytesCopied: report.BytesCopied(),
		DurationMS:  report.Duration().Milliseconds(),
		Failures:    []failureJSON{},
	}
	for _, failure := range report.Failures() {
		entry := failureJSON{Path: failure.File.Path, Destination: failure.Destination}
		if failure.Err != nil {
			entry.Error = failure.Err.Error()
		}
		summary.Failures = append(summary.Failures, entry)
	}
	return summary
}
