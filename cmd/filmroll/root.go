package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var opts importFlags
	var configFlag string

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:   "filmroll",
		Short: "Import photos and videos into a dated library",
		Long: "filmroll copies raw, raster and video files from a source tree into\n" +
			"{destination}/{year}/{month}/{day}/{raw|rasters|video}/, dated by their\n" +
			"capture metadata or, when that is missing, their modification time.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, ctx, opts)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVar(&opts.source, "source", "", "Directory to import from (required)")
	flags.StringVar(&opts.destination, "destination", "", "Library root to import into (required)")
	flags.BoolVar(&opts.count, "count", false, "Only count the files that would be imported")
	flags.BoolVar(&opts.dryRun, "dryrun", false, "Report every action without creating directories or copying")
	flags.IntVar(&opts.workers, "workers", 0, "Number of parallel transfers (overrides config)")
	flags.StringVar(&opts.journal, "journal", "", "Record the import in this SQLite journal (overrides config)")
	flags.BoolVar(&opts.sniff, "sniff", false, "Detect the type of files without an extension from their content")
	flags.BoolVar(&opts.jsonOutput, "json", false, "Print counts and the summary as JSON")

	persistent := rootCmd.PersistentFlags()
	persistent.StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	persistent.StringVar(&ctx.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	persistent.StringVar(&ctx.logFormat, "log-format", "", "Log format: console or json (overrides config)")

	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))

	return rootCmd
}
