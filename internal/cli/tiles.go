package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/tilegrid/internal/tui/grid"
)

const defaultTileItems = 500

type tilesOptions struct {
	items     int
	tileWidth int
	plain     bool
}

// NewTilesCmd creates the tiles command: an interactive tile box.
func NewTilesCmd() *cobra.Command {
	var opts tilesOptions

	cmd := &cobra.Command{
		Use:   "tiles",
		Short: "Browse generated tiles in the tile box",
		Example: `  tilegrid tiles --items 2000
  tilegrid tiles --tile-width 30 --plain`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTiles(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.items, "items", defaultTileItems, "number of generated tiles")
	cmd.Flags().IntVar(&opts.tileWidth, "tile-width", 0, "tile width in cells (0 = config layout.item_width)")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "print one frame instead of starting the interactive view")
	return cmd
}

func runTiles(cmd *cobra.Command, opts tilesOptions) error {
	if opts.items < 0 {
		return fmt.Errorf("%w: --items must be >= 0, got %d", ErrInvalidFlag, opts.items)
	}
	if opts.tileWidth < 0 {
		return fmt.Errorf("%w: --tile-width must be >= 0, got %d", ErrInvalidFlag, opts.tileWidth)
	}

	cfg := configFrom(cmd)
	layoutOpts := cfg.Layout.Options()
	if opts.tileWidth > 0 {
		layoutOpts.ItemWidth = int32(opts.tileWidth)
	}

	ctx := cfg.Display.Context(logger, grid.CellWidthFactory{})
	model := grid.NewTileModel(ctx, layoutOpts,
		cfg.Layout.WindowOptions(), cfg.List.SelectionOptions(),
		demoTiles(opts.items)...)

	logger.Info().Ctx(cmd.Context()).
		Int("items", opts.items).
		Int32("tile_width", layoutOpts.ItemWidth).
		Msg("starting tile demo")

	return runModel(cmd, model, opts.plain)
}

// demoTiles generates n tiles. Every ninth tile is disabled.
func demoTiles(n int) []grid.Tile {
	tiles := make([]grid.Tile, n)
	for i := range tiles {
		tiles[i] = grid.Tile{
			Title:    fmt.Sprintf("%s %d", demoKinds[i%len(demoKinds)], i),
			Detail:   demoRegions[i%len(demoRegions)],
			Disabled: i%9 == 8,
		}
	}
	return tiles
}
