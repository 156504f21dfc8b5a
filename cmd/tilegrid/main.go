package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rshade/tilegrid/internal/cli"
	"github.com/rshade/tilegrid/internal/config"
	"github.com/rshade/tilegrid/pkg/version"
)

// Process exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func run(ctx context.Context, args []string) error {
	root := cli.NewRootCmd(version.GetVersion())
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// exitCodeFor maps an execution error to the process exit code. Invalid
// flags, sort expressions and configuration are usage errors.
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, cli.ErrInvalidFlag),
		errors.Is(err, cli.ErrInvalidSort),
		errors.Is(err, config.ErrInvalidConfig),
		errors.Is(err, config.ErrInvalidLayout):
		return exitUsage
	default:
		return exitError
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:])
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(exitCodeFor(err))
}
