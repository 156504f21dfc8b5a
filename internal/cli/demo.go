package cli

import (
	"errors"
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/rshade/tilegrid/internal/config"
	"github.com/rshade/tilegrid/internal/listctrl"
	"github.com/rshade/tilegrid/internal/store"
	"github.com/rshade/tilegrid/internal/tui/grid"
)

// ErrInvalidFlag is returned for out-of-range numeric flags.
var ErrInvalidFlag = errors.New("invalid flag value")

const (
	defaultDemoRows    = 10000
	defaultDemoColumns = 5
	maxDemoColumns     = 24
)

//nolint:gochecknoglobals // Fixed demo vocabularies.
var (
	demoKinds   = []string{"volume", "instance", "bucket", "queue", "table", "function", "gateway"}
	demoOwners  = []string{"ana", "Bo", "émile", "Zoë", "chen", "Dmitri", "olu", "Øystein"}
	demoRegions = []string{"us-east", "us-west", "eu-central", "ap-south", "sa-east"}
	demoTiers   = []string{"gold", "silver", "bronze"}
)

type demoOptions struct {
	rows    int
	columns int
	plain   bool
}

// NewDemoCmd creates the demo command: an interactive list control over a
// generated table.
func NewDemoCmd() *cobra.Command {
	var opts demoOptions

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Browse a generated table in the list control",
		Example: `  tilegrid demo --rows 50000
  tilegrid demo --columns 3 --plain`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDemo(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.rows, "rows", defaultDemoRows, "number of generated rows")
	cmd.Flags().IntVar(&opts.columns, "columns", defaultDemoColumns, "number of columns")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "print one frame instead of starting the interactive view")
	return cmd
}

func runDemo(cmd *cobra.Command, opts demoOptions) error {
	if opts.rows < 0 {
		return fmt.Errorf("%w: --rows must be >= 0, got %d", ErrInvalidFlag, opts.rows)
	}
	if opts.columns < 1 || opts.columns > maxDemoColumns {
		return fmt.Errorf("%w: --columns must be in [1, %d], got %d", ErrInvalidFlag, maxDemoColumns, opts.columns)
	}

	cfg := configFrom(cmd)
	ctrl := buildDemoControl(cfg, opts.rows, opts.columns)
	if err := applySort(ctrl, cfg.List.DefaultSort); err != nil {
		return err
	}

	logger.Info().Ctx(cmd.Context()).
		Int("rows", opts.rows).
		Int("columns", opts.columns).
		Msg("starting list demo")

	return runModel(cmd, grid.NewListModel(ctrl, logger), opts.plain)
}

// buildDemoControl creates a list control filled with generated rows.
func buildDemoControl(cfg *config.Config, rows, columns int) *listctrl.Control {
	ctx := cfg.Display.Context(logger, grid.CellWidthFactory{})
	ctrl := listctrl.New(ctx,
		listctrl.WithLayout(cfg.List.Options()),
		listctrl.WithWindowOptions(cfg.Layout.WindowOptions()...),
		listctrl.WithSelectionOptions(cfg.List.SelectionOptions()...),
	)
	for _, col := range grid.DemoColumns(columns) {
		ctrl.AppendColumn(col)
	}
	for i := range ctrl.Header().ColumnCount() {
		switch i % demoColumnKinds {
		case sizeColumn:
			ctrl.SetComparator(i, numericComparator)
		case ownerColumn:
			ctrl.SetComparator(i, store.CollatorComparator(language.English))
		}
	}
	for i := range rows {
		ctrl.AppendRow(demoRow(i, columns)...)
	}
	return ctrl
}

// Positions of the generated columns, repeating every demoColumnKinds.
const (
	nameColumn = iota
	kindColumn
	sizeColumn
	ownerColumn
	regionColumn
	tierColumn
	demoColumnKinds
)

// demoRow returns the generated texts of row i. Every eleventh row has an
// empty owner.
func demoRow(i, columns int) []string {
	texts := make([]string, columns)
	for c := range columns {
		switch c % demoColumnKinds {
		case nameColumn:
			texts[c] = fmt.Sprintf("item-%05d", i)
		case kindColumn:
			texts[c] = demoKinds[(i*7+c)%len(demoKinds)]
		case sizeColumn:
			texts[c] = strconv.Itoa((i*7919 + c*104729) % 100000)
		case ownerColumn:
			if i%11 != 0 {
				texts[c] = demoOwners[(i*5+c)%len(demoOwners)]
			}
		case regionColumn:
			texts[c] = demoRegions[(i*3+c)%len(demoRegions)]
		case tierColumn:
			texts[c] = demoTiers[(i+c)%len(demoTiers)]
		}
	}
	return texts
}

// numericComparator orders cells by their integer text; unparsable text
// sorts after numbers, lexically.
func numericComparator(a, b *store.Cell) int {
	na, errA := strconv.Atoi(a.Text)
	nb, errB := strconv.Atoi(b.Text)
	switch {
	case errA == nil && errB == nil:
		return na - nb
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	default:
		return store.TextComparator(a, b)
	}
}

// runModel starts the interactive program, or prints a single frame when
// plain output was requested or stdout is not a terminal.
func runModel(cmd *cobra.Command, model tea.Model, plain bool) error {
	out := cmd.OutOrStdout()
	if plain || !isWriterTerminal(out) {
		width, height := terminalSize(out)
		model, _ = model.Update(tea.WindowSizeMsg{Width: width, Height: height})
		_, err := fmt.Fprintln(out, model.View())
		return err
	}

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(out),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running interactive view: %w", err)
	}
	return nil
}
