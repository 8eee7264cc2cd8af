package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcaimi/tmux-filmroll/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create or inspect the filmroll configuration",
	}
	cmd.AddCommand(newConfigInitCommand(), newConfigShowCommand(ctx))
	return cmd
}

func newConfigInitCommand() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a commented sample configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			target, err := initTarget(path)
			if err != nil {
				return err
			}
			if err := config.CreateSample(target); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "sample configuration written to %s\nuse it with: filmroll --config %s --source DIR --destination DIR\n", target, target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", "", "where to write the file (default ~/.config/filmroll/config.toml)")
	return cmd
}

func initTarget(path string) (string, error) {
	resolve := config.DefaultConfigPath
	if path = strings.TrimSpace(path); path != "" {
		resolve = func() (string, error) { return config.ExpandPath(path) }
	}
	target, err := resolve()
	if err != nil {
		return "", fmt.Errorf("%w: config path: %w", config.ErrConfig, err)
	}
	return target, nil
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			data, err := config.Marshal(cfg)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if ctx.configPath != "" {
				fmt.Fprintf(out, "# loaded from %s\n", ctx.configPath)
			} else {
				fmt.Fprintln(out, "# built-in defaults")
			}
			_, err = out.Write(data)
			return err
		},
	}
}
