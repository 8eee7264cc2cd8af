package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/mcaimi/tmux-filmroll/internal/config"
	"github.com/mcaimi/tmux-filmroll/internal/journal"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var journalPath string
	var runID string
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List imports recorded in the journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path := strings.TrimSpace(journalPath)
			if path == "" {
				path = cfg.Transfer.JournalPath
			}
			if path == "" {
				return &syntaxError{msg: "no journal configured; pass --journal or set transfer.journal_path"}
			}
			if path, err = config.ExpandPath(path); err != nil {
				return fmt.Errorf("resolve journal path: %w", err)
			}

			store, err := journal.Open(cmd.Context(), path)
			if err != nil {
				return err
			}
			defer store.Close()

			if id := strings.TrimSpace(runID); id != "" {
				entries, err := store.Entries(cmd.Context(), id)
				if err != nil {
					return err
				}
				if len(entries) == 0 {
					return errors.New("no entries recorded for run " + id)
				}
				if asJSON {
					return writeJSON(cmd, entries)
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderEntries(entries))
				return nil
			}

			runs, err := store.RecentRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, runs)
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No imports recorded yet.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderRuns(runs))
			return nil
		},
	}

	cmd.Flags().StringVar(&journalPath, "journal", "", "Journal database (defaults to transfer.journal_path)")
	cmd.Flags().StringVar(&runID, "run", "", "Show the per-file entries of one run")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of runs to list")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	return cmd
}

func renderRuns(runs []journal.Run) string {
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		mode := "import"
		if run.Interrupted {
			mode += " (interrupted)"
		}
		rows = append(rows, []string{
			run.ID,
			run.StartedAt.Local().Format(time.DateTime),
			mode,
			run.Source,
			run.Destination,
			strconv.Itoa(run.Copied),
			strconv.Itoa(run.Skipped),
			strconv.Itoa(run.Failed),
			humanize.IBytes(uint64(run.BytesCopied)),
		})
	}
	return renderTable(
		[]string{"Run", "Started", "Mode", "Source", "Destination", "Copied", "Skipped", "Failed", "Size"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight},
	)
}

func renderEntries(entries []journal.Entry) string {
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		detail := entry.Destination
		if entry.Error != "" {
			detail = entry.Error
		}
		rows = append(rows, []string{
			strconv.Itoa(entry.Seq),
			entry.Class,
			entry.CaptureDate,
			entry.DateOrigin,
			entry.Action,
			entry.SourcePath,
			detail,
		})
	}
	return renderTable(
		[]string{"#", "Class", "Date", "Origin", "Action", "Source", "Destination / error"},
		rows,
		[]columnAlignment{alignRight},
	)
}
