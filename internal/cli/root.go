// Package cli implements the tilegrid command line: interactive list and
// tile demos, a headless scroll benchmark, and configuration inspection.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/tilegrid/internal/config"
	"github.com/rshade/tilegrid/internal/logging"
)

// Fallback terminal size when the output is not a terminal.
const (
	defaultTermWidth  = 100
	defaultTermHeight = 30
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// isWriterTerminal reports whether w is an *os.File attached to a terminal.
func isWriterTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return isTerminal(f)
	}
	return false
}

// terminalSize returns the size of w when it is a terminal, or the
// fallback size.
//
//nolint:nonamedreturns // Named returns document the pair.
func terminalSize(w io.Writer) (width, height int) {
	if f, ok := w.(*os.File); ok {
		if tw, th, err := term.GetSize(int(f.Fd())); err == nil && tw > 0 && th > 0 {
			return tw, th
		}
	}
	return defaultTermWidth, defaultTermHeight
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

type configKey struct{}

// contextWithConfig stores the effective configuration on ctx.
func contextWithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// configFrom returns the configuration loaded by the root command, or the
// defaults when the command runs outside the root.
func configFrom(cmd *cobra.Command) *config.Config {
	if ctx := cmd.Context(); ctx != nil {
		if cfg, ok := ctx.Value(configKey{}).(*config.Config); ok && cfg != nil {
			return cfg
		}
	}
	return config.New()
}

// NewRootCmd creates the root Cobra command for the tilegrid CLI.
// It loads the configuration, wires up logging and tracing, and registers
// the subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult
	var configPath string

	cmd := &cobra.Command{
		Use:           "tilegrid",
		Short:         "Virtualized list and tile views",
		Long:          "tilegrid: a recycling list control and tile box for the terminal",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			cfg, err := config.LoadResolved(ctx, configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if strict, _ := cmd.Flags().GetBool("strict"); strict {
				cfg.Display.Strict = true
			}
			if err = cfg.Validate(); err != nil {
				return fmt.Errorf("validating config: %w", err)
			}
			cmd.SetContext(contextWithConfig(ctx, cfg))

			result := setupLogging(cmd, cfg)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "",
		"config file (default $TILEGRID_CONFIG or ~/.tilegrid/config.yaml)")
	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().Bool("strict", false, "panic on geometry contract violations")
	cmd.AddCommand(
		NewDemoCmd(), NewTilesCmd(), NewBenchCmd(),
		newConfigCmd(), NewVersionCmd(ver),
	)

	return cmd
}

const rootCmdExample = `  # Browse a generated 10,000 row table
  tilegrid demo --rows 10000 --columns 5

  # Browse 500 tiles, 24 cells wide
  tilegrid tiles --items 500 --tile-width 24

  # Simulate scrolling in four parallel lists
  tilegrid bench --rows 100000 --steps 2000 --parallel 4

  # Print the effective configuration
  tilegrid config show`

// newConfigCmd creates the config command group.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration commands"}
	cmd.AddCommand(NewConfigShowCmd(), NewConfigValidateCmd())
	return cmd
}
