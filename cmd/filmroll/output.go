package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/mcaimi/tmux-filmroll/internal/importer"
	"github.com/mcaimi/tmux-filmroll/internal/media"
)

func renderCount(cmd *cobra.Command, session *importer.Session, asJSON bool) error {
	counts := session.Count()
	if asJSON {
		return writeJSON(cmd, countJSON{
			Raw:          counts.Raw,
			Raster:       counts.Raster,
			Video:        counts.Video,
			Total:        counts.Total(),
			PendingBytes: session.PendingBytes(),
		})
	}

	rows := make([][]string, 0, len(media.TransferOrder)+1)
	for _, class := range media.TransferOrder {
		rows = append(rows, []string{class.String(), strconv.Itoa(counts.Of(class))})
	}
	rows = append(rows, []string{"total", strconv.Itoa(counts.Total())})

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderTable([]string{"Class", "Files"}, rows, []columnAlignment{alignLeft, alignRight}))
	fmt.Fprintf(out, "Need to import [%d] raster files, [%d] raw files and [%d] video files.\n",
		counts.Raster, counts.Raw, counts.Video)
	return nil
}

func renderSummary(out io.Writer, report importer.Report, colorize bool) {
	rows := [][]string{
		{"copied", strconv.Itoa(report.Count(importer.ActionCopied))},
		{"skipped", strconv.Itoa(report.Count(importer.ActionSkipped))},
	}
	if report.DryRun {
		rows = append(rows, []string{"would copy", strconv.Itoa(report.Count(importer.ActionWouldCopy))})
	}
	rows = append(rows, []string{"failed", strconv.Itoa(report.Failed())})

	fmt.Fprintln(out)
	fmt.Fprintln(out, renderTable([]string{"Result", "Files"}, rows, []columnAlignment{alignLeft, alignRight}))
	if report.DryRun {
		fmt.Fprintln(out, "Dry run: nothing was created or copied.")
	} else {
		fmt.Fprintf(out, "Copied %s in %s.\n", humanize.IBytes(uint64(report.BytesCopied())), report.Duration().Round(time.Millisecond))
	}
	if report.Interrupted {
		fmt.Fprintln(out, paint(colorize, ansiYellow, "Import interrupted before every file was processed."))
	}

	failures := report.Failures()
	if len(failures) == 0 {
		return
	}
	fmt.Fprintln(out, paint(colorize, ansiRed, fmt.Sprintf("%d %s could not be imported:", len(failures), plural(len(failures), "file", "files"))))
	for _, failure := range failures {
		fmt.Fprintf(out, "  %s: %v\n", failure.File.Path, failure.Err)
	}
}

func paint(colorize bool, color, text string) string {
	if !colorize {
		return text
	}
	return color + text + ansiReset
}
