package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/tilegrid/internal/config"
)

// NewConfigValidateCmd creates the config validate command for validating
// a configuration file.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a configuration file",
		Long: `Validates a configuration file for syntax and semantic correctness.

Without an argument the file selected by --config, $TILEGRID_CONFIG or
~/.tilegrid/config.yaml is checked. Every problem is reported, not only
the first one.`,
		Example: `  # Validate the current configuration
  tilegrid config validate

  # Validate a file and show the effective layout
  tilegrid config validate ./tilegrid.yaml --verbose`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return reportValid(cmd, configFrom(cmd), verbose)
			}
			return runConfigValidate(cmd, args[0], verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

// runConfigValidate loads path over the defaults and validates the result.
func runConfigValidate(cmd *cobra.Command, path string, verbose bool) error {
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	if err = cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return reportValid(cmd, cfg, verbose)
}

func reportValid(cmd *cobra.Command, cfg *config.Config, verbose bool) error {
	if cfg.List.DefaultSort != "" {
		if _, _, err := ParseSortExpression(cfg.List.DefaultSort); err != nil {
			return fmt.Errorf("configuration validation failed: list.default_sort: %w", err)
		}
	}
	cmd.Printf("Configuration is valid\n")

	if verbose {
		printVerboseDetails(cmd, cfg)
	}
	return nil
}

func printVerboseDetails(cmd *cobra.Command, cfg *config.Config) {
	l := cfg.Layout
	cmd.Printf("  tiles:   %dx%d, margins %d/%d, columns %s, trim %s\n",
		l.ItemWidth, l.ItemHeight, l.MarginX, l.MarginY, columnsLabel(l.FixedColumns), orDefault(l.TrimPolicy))
	cmd.Printf("  list:    row height %d, delete %s, track offscreen %t, sort %s\n",
		cfg.List.RowHeight, orDefault(cfg.List.DeletePolicy), cfg.List.TrackOffscreen, orDefault(cfg.List.DefaultSort))
	cmd.Printf("  display: dpi %d%%, strict %t\n", cfg.Display.DPIScale, cfg.Display.Strict)
	cmd.Printf("  logging: %s/%s %s\n", cfg.Logging.Level, cfg.Logging.Format, orDefault(cfg.Logging.File))
}

func columnsLabel(n int) string {
	if n == 0 {
		return "auto"
	}
	return fmt.Sprintf("%d", n)
}

func orDefault(s string) string {
	if s == "" {
		return "(default)"
	}
	return s
}
