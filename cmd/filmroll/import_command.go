package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mcaimi/tmux-filmroll/internal/config"
	"github.com/mcaimi/tmux-filmroll/internal/importer"
	"github.com/mcaimi/tmux-filmroll/internal/journal"
	"github.com/mcaimi/tmux-filmroll/internal/logging"
	"github.com/mcaimi/tmux-filmroll/internal/media"
	"github.com/mcaimi/tmux-filmroll/internal/preflight"
)

type importFlags struct {
	source      string
	destination string
	count       bool
	dryRun      bool
	workers     int
	journal     string
	sniff       bool
	jsonOutput  bool
}

func (f importFlags) validate() error {
	source := strings.TrimSpace(f.source)
	destination := strings.TrimSpace(f.destination)
	switch {
	case source == "" && destination == "":
		return &syntaxError{msg: "--source and --destination are required"}
	case source == "":
		return &syntaxError{msg: "--source is required"}
	case destination == "":
		return &syntaxError{msg: "--destination is required"}
	case f.workers < 0:
		return &syntaxError{msg: fmt.Sprintf("--workers must be positive, got %d", f.workers)}
	}
	return nil
}

// applyTo folds the import flags into cfg and revalidates it.
func (f importFlags) applyTo(cfg *config.Config) error {
	if f.workers > 0 {
		cfg.Transfer.Workers = f.workers
	}
	if path := strings.TrimSpace(f.journal); path != "" {
		expanded, err := config.ExpandPath(path)
		if err != nil {
			return fmt.Errorf("%w: journal: %w", config.ErrConfig, err)
		}
		cfg.Transfer.JournalPath = expanded
	}
	if f.sniff {
		cfg.Media.SniffExtensionless = true
	}
	return cfg.Validate()
}

func runImport(cmd *cobra.Command, ctx *commandContext, flags importFlags) error {
	if err := flags.validate(); err != nil {
		return err
	}
	baseCfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	cfg := *baseCfg
	if err := flags.applyTo(&cfg); err != nil {
		return err
	}

	logger, err := ctx.logger(&cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	var classifierOpts []media.ClassifierOption
	if cfg.Media.SniffExtensionless {
		classifierOpts = append(classifierOpts, media.WithSniffer(media.ContentSniffer{}))
	}
	classifier, err := media.NewClassifier(cfg.ExtensionSets(), classifierOpts...)
	if err != nil {
		return fmt.Errorf("%w: %w", config.ErrConfig, err)
	}

	out := cmd.OutOrStdout()
	var observer importer.Observer
	if !flags.jsonOutput && !flags.count {
		observer = newProgressPrinter(out, shouldColorize(out))
	}

	session, err := importer.New(importer.Options{
		Source:      flags.source,
		Destination: flags.destination,
		DryRun:      flags.dryRun,
		Workers:     cfg.Transfer.Workers,
		Classifier:  classifier,
		Logger:      logger,
		Observer:    observer,
	})
	if err != nil {
		return err
	}

	runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := scanWithSpinner(runCtx, cmd.ErrOrStderr(), session); err != nil {
		return err
	}

	if flags.count {
		return renderCount(cmd, session, flags.jsonOutput)
	}

	for _, result := range preflight.Failed(preflight.RunAll(preflight.Request{
		Source:       session.Source(),
		Destination:  session.Destination(),
		PendingBytes: session.PendingBytes(),
		DryRun:       session.DryRun(),
	})) {
		logging.WarnWithContext(logger, "preflight check failed", "preflight_failed",
			logging.String("check", result.Name),
			logging.String("detail", result.Detail),
			logging.String(logging.FieldImpact, "import continues; individual files may fail"),
		)
	}

	if !flags.jsonOutput {
		fmt.Fprintf(out, "Transferring from %s to %s....\n", session.Source(), session.Destination())
	}

	lock, err := session.PrepareDestination(runCtx)
	if err != nil {
		return err
	}
	defer releaseLock(lock, logger)
	if printer, ok := observer.(*progressPrinter); ok && session.RootCreated() {
		printer.createdDir(session.Destination())
	}

	report := session.TransferAll(runCtx)

	// A dry run leaves the filesystem untouched, journal included.
	if path := cfg.Transfer.JournalPath; path != "" && !report.DryRun {
		if err := saveJournal(runCtx, path, report); err != nil {
			logging.WarnWithContext(logger, "journal not updated", "journal_write_failed",
				logging.String(logging.FieldPath, path),
				logging.Error(err),
				logging.String(logging.FieldImpact, "this import is missing from 'filmroll history'"),
			)
		}
	}

	if flags.jsonOutput {
		if err := writeJSON(cmd, newSummaryJSON(report)); err != nil {
			return err
		}
	} else {
		renderSummary(out, report, shouldColorize(out))
	}

	if report.Interrupted {
		return context.Canceled
	}
	return nil
}

func releaseLock(lock *importer.Lock, logger *slog.Logger) {
	if err := lock.Release(); err != nil {
		logging.WarnWithContext(logger, "destination lock not released", "lock_release_failed",
			logging.String(logging.FieldPath, lock.Path()),
			logging.Error(err),
			logging.String(logging.FieldImpact, "remove the lock file before the next import"),
		)
	}
}

func saveJournal(ctx context.Context, path string, report importer.Report) error {
	// A cancelled import is still recorded.
	ctx = context.WithoutCancel(ctx)
	store, err := journal.Open(ctx, path)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.SaveReport(ctx, report)
}
