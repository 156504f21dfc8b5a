package cli

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/tilegrid/internal/config"
	"github.com/rshade/tilegrid/internal/layout"
	"github.com/rshade/tilegrid/internal/window"
)

const (
	defaultBenchRows  = 100000
	defaultBenchSteps = 1000
	benchColumns      = 4
	// benchJumpEvery is the step interval of a long jump in the scroll
	// pattern.
	benchJumpEvery = 97
	tabPadding     = 2
)

type benchOptions struct {
	rows     int
	steps    int
	parallel int
	height   int
}

// benchResult is the outcome of one simulated list.
type benchResult struct {
	Worker  int
	Rows    int
	Steps   int
	Pool    int
	Stats   window.Stats
	Elapsed time.Duration
}

// NewBenchCmd creates the bench command: a headless scroll simulation over
// independent list controls.
func NewBenchCmd() *cobra.Command {
	var opts benchOptions

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Simulate scrolling and report item recycling counters",
		Example: `  tilegrid bench --rows 1000000 --steps 5000
  tilegrid bench --parallel 8`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBench(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.rows, "rows", defaultBenchRows, "rows per simulated list")
	cmd.Flags().IntVar(&opts.steps, "steps", defaultBenchSteps, "scroll steps per list")
	cmd.Flags().IntVar(&opts.parallel, "parallel", 1, "number of independent lists simulated concurrently")
	cmd.Flags().IntVar(&opts.height, "height", 0, "viewport height in rows (0 = terminal height)")
	return cmd
}

func runBench(cmd *cobra.Command, opts benchOptions) error {
	switch {
	case opts.rows < 1:
		return fmt.Errorf("%w: --rows must be >= 1, got %d", ErrInvalidFlag, opts.rows)
	case opts.steps < 0:
		return fmt.Errorf("%w: --steps must be >= 0, got %d", ErrInvalidFlag, opts.steps)
	case opts.parallel < 1:
		return fmt.Errorf("%w: --parallel must be >= 1, got %d", ErrInvalidFlag, opts.parallel)
	case opts.height < 0:
		return fmt.Errorf("%w: --height must be >= 0, got %d", ErrInvalidFlag, opts.height)
	}

	width, height := terminalSize(cmd.OutOrStdout())
	if opts.height > 0 {
		height = opts.height
	}
	cfg := configFrom(cmd)
	viewport := layout.Rect{Width: int32(width), Height: int32(height) * cfg.List.RowHeight}

	results, err := simulateParallel(cmd.Context(), cfg, opts, viewport)
	if err != nil {
		return err
	}
	return writeBenchReport(cmd.OutOrStdout(), results)
}

// simulateParallel runs opts.parallel simulations. Every goroutine owns its
// own control; nothing is shared between them.
func simulateParallel(
	ctx context.Context,
	cfg *config.Config,
	opts benchOptions,
	viewport layout.Rect,
) ([]benchResult, error) {
	results := make([]benchResult, opts.parallel)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for worker := range opts.parallel {
		g.Go(func() error {
			res, err := simulate(gCtx, cfg, worker, opts, viewport)
			if err != nil {
				return fmt.Errorf("worker %d: %w", worker, err)
			}
			results[worker] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// simulate scrolls one list through a deterministic pattern: mostly single
// rows down, an occasional step back, a page down, and a long jump every
// benchJumpEvery steps.
func simulate(
	ctx context.Context,
	cfg *config.Config,
	worker int,
	opts benchOptions,
	viewport layout.Rect,
) (benchResult, error) {
	start := time.Now()
	ctrl := buildDemoControl(cfg, opts.rows, benchColumns)
	ctrl.SetViewport(viewport)

	win := ctrl.Window()
	win.ResetStats()
	rowHeight := win.Layout().RowHeight()
	span := max(win.ContentHeight()-int64(viewport.Height), 1)

	for step := range opts.steps {
		if err := ctx.Err(); err != nil {
			return benchResult{}, err
		}
		switch {
		case step%benchJumpEvery == benchJumpEvery-1:
			ctrl.SetScrollPosition(int64(step*7919+worker*104729) % span)
		case step%7 == 6:
			ctrl.ScrollBy(-rowHeight)
		case step%13 == 12:
			ctrl.ScrollBy(int64(viewport.Height))
		default:
			ctrl.ScrollBy(rowHeight)
		}
	}

	return benchResult{
		Worker:  worker,
		Rows:    opts.rows,
		Steps:   opts.steps,
		Pool:    win.ItemCount(),
		Stats:   win.Stats(),
		Elapsed: time.Since(start),
	}, nil
}

func writeBenchReport(out io.Writer, results []benchResult) error {
	p := message.NewPrinter(language.English)
	w := tabwriter.NewWriter(out, 0, 0, tabPadding, ' ', 0)

	fmt.Fprintln(w, "Worker\tRows\tSteps\tPool\tFills\tRebinds\tCreates\tReleases\tElapsed")
	fmt.Fprintln(w, "------\t----\t-----\t----\t-----\t-------\t-------\t--------\t-------")

	var total window.Stats
	for _, r := range results {
		p.Fprintf(w, "%d\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%s\n",
			r.Worker, r.Rows, r.Steps, r.Pool,
			r.Stats.Fills, r.Stats.Rebinds, r.Stats.Creates, r.Stats.Releases,
			r.Elapsed.Round(time.Millisecond))
		total.Fills += r.Stats.Fills
		total.Rebinds += r.Stats.Rebinds
	}
	if err := w.Flush(); err != nil {
		return err
	}

	_, err := p.Fprintf(out, "total fills %d, rebinds %d\n", total.Fills, total.Rebinds)
	return err
}
