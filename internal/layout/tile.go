// Package layout implements the tile/column geometry of the virtualized list:
// column count for a width, virtual content height for N elements, the
// number of items worth materializing for a viewport, and row-major
// placement of pooled items relative to a 64-bit scroll offset.
//
// TileLayout keeps no state beyond its configured item size and margins.
package layout

import (
	"github.com/rs/zerolog"

	"github.com/rshade/tilegrid/internal/uictx"
)

const component = "layout"

// Options configures a TileLayout. Sizes are unscaled; the layout applies
// the context's DPI scale once at construction.
type Options struct {
	// ItemWidth is the tile width. Zero stretches items across the viewport
	// (list mode, or evenly split when FixedColumns > 1).
	ItemWidth int32
	// ItemHeight is the tile height; it must be positive.
	ItemHeight int32
	// MarginX is the horizontal gap between tiles.
	MarginX int32
	// MarginY is the vertical gap between rows.
	MarginY int32
	// FixedColumns forces the column count when positive.
	FixedColumns int
}

// ListOptions returns options for a single-column list with rows of the
// given height.
func ListOptions(itemHeight, marginY int32) Options {
	return Options{ItemHeight: itemHeight, MarginY: marginY, FixedColumns: 1}
}

// Placeable is the slice of the control capability used for placement.
type Placeable interface {
	SetPos(r Rect)
	SetVisible(visible bool)
}

// Pool gives PlaceItems slot-ordered access to pooled items.
type Pool interface {
	Len() int
	At(slot int) Placeable
}

// Placement describes one placement pass.
type Placement struct {
	Top      int
	Count    int
	Columns  int
	ScrollY  int64
	Viewport Rect
}

// TileLayout computes tile geometry.
type TileLayout struct {
	ctx    *uictx.Context
	opts   Options
	logger zerolog.Logger
}

// New creates a TileLayout. Non-positive item sizes are reported through the
// context's Assert and degrade to a one-unit item.
func New(ctx *uictx.Context, opts Options) *TileLayout {
	if ctx == nil {
		ctx = uictx.Default()
	}
	scaled := Options{
		ItemWidth:    ctx.Scale(opts.ItemWidth),
		ItemHeight:   ctx.Scale(opts.ItemHeight),
		MarginX:      ctx.Scale(max(opts.MarginX, 0)),
		MarginY:      ctx.Scale(max(opts.MarginY, 0)),
		FixedColumns: max(opts.FixedColumns, 0),
	}
	l := &TileLayout{ctx: ctx, opts: scaled, logger: ctx.Logger(component)}
	ctx.Assert(scaled.ItemHeight > 0, component, "item height must be positive, got %d", scaled.ItemHeight)
	if scaled.FixedColumns == 0 {
		ctx.Assert(scaled.ItemWidth > 0, component, "item width must be positive in tile mode, got %d", scaled.ItemWidth)
	}
	l.logger.Debug().
		Int32("item_width", scaled.ItemWidth).
		Int32("item_height", scaled.ItemHeight).
		Int("fixed_columns", scaled.FixedColumns).
		Msg("tile layout created")
	return l
}

// Options returns the scaled options in effect.
func (l *TileLayout) Options() Options { return l.opts }

func (l *TileLayout) itemHeight() int64 {
	if l.opts.ItemHeight <= 0 {
		return 1
	}
	return int64(l.opts.ItemHeight)
}

// RowHeight is the vertical pitch of one row: item height plus margin.
func (l *TileLayout) RowHeight() int64 {
	return l.itemHeight() + int64(l.opts.MarginY)
}

// CalcColumns returns how many tiles fit side by side in availableWidth.
// Tiles are accumulated left to right and the accumulated width never
// exceeds availableWidth; the closed form
// floor((availableWidth + marginX) / (itemWidth + marginX)) is the same
// count. The result is at least 1.
func (l *TileLayout) CalcColumns(availableWidth int32) int {
	if l.opts.FixedColumns > 0 {
		return l.opts.FixedColumns
	}
	if !l.ctx.Assert(l.opts.ItemWidth > 0, component, "CalcColumns with item width %d", l.opts.ItemWidth) {
		return 1
	}
	if availableWidth <= 0 {
		return 1
	}
	pitch := int64(l.opts.ItemWidth) + int64(l.opts.MarginX)
	cols := (int64(availableWidth) + int64(l.opts.MarginX)) / pitch
	return int(max(cols, 1))
}

// ContentHeight returns the virtual height of totalElements tiles laid out
// in columns. An incomplete last row reserves one extra row of height so
// that scroll-range rounding can never clip the last real row.
func (l *TileLayout) ContentHeight(totalElements, columns int) int64 {
	if totalElements <= 0 {
		return 0
	}
	columns = max(columns, 1)
	h := l.itemHeight()
	my := int64(l.opts.MarginY)

	rows := int64((totalElements + columns - 1) / columns)
	height := rows*h + (rows-1)*my
	if totalElements%columns != 0 {
		height += h + my
	}
	return height
}

// MaxMaterializableItems returns the pool upper bound for a viewport of the
// given height: enough rows to cover it plus one row of slack, times the
// column count.
func (l *TileLayout) MaxMaterializableItems(viewportHeight int32, columns int) int {
	columns = max(columns, 1)
	den := l.itemHeight() + int64(l.opts.MarginY)/2
	vh := int64(max(viewportHeight, 0))
	rows := (vh+den-1)/den + 1
	return int(rows) * columns
}

// ElementTop returns the virtual top edge of an element's row.
func (l *TileLayout) ElementTop(elementIndex, columns int) int64 {
	columns = max(columns, 1)
	return int64(elementIndex/columns) * l.RowHeight()
}

// ElementBottom returns the virtual bottom edge of an element's row.
func (l *TileLayout) ElementBottom(elementIndex, columns int) int64 {
	return l.ElementTop(elementIndex, columns) + l.itemHeight()
}

// TopElementIndex maps a scroll offset onto the first element of the row
// under the viewport top. The result is in [0, count) when count > 0.
func (l *TileLayout) TopElementIndex(scrollY int64, columns, count int) int {
	if count <= 0 {
		return 0
	}
	columns = max(columns, 1)
	row := max(scrollY, 0) / l.RowHeight()
	top := int(row) * columns
	if top >= count {
		top = ((count - 1) / columns) * columns
	}
	return top
}

// ItemWidth returns the width an item gets inside viewport for columns.
func (l *TileLayout) ItemWidth(viewport Rect, columns int) int32 {
	if l.opts.ItemWidth > 0 {
		return l.opts.ItemWidth
	}
	columns = max(columns, 1)
	avail := viewport.Width - int32(columns-1)*l.opts.MarginX
	return max(avail/int32(columns), 1)
}

// ElementRect returns the on-screen rectangle of an element for the given
// scroll offset and viewport.
func (l *TileLayout) ElementRect(elementIndex int, p Placement) Rect {
	columns := max(p.Columns, 1)
	w := l.ItemWidth(p.Viewport, columns)
	col := int32(elementIndex % columns)
	y := l.ElementTop(elementIndex, columns) - p.ScrollY
	return Rect{
		X:      p.Viewport.X + col*(w+l.opts.MarginX),
		Y:      p.Viewport.Y + int32(y),
		Width:  w,
		Height: int32(l.itemHeight()),
	}
}

// PlaceItems walks the pool in row-major order starting at p.Top and gives
// each item its rectangle. Slots mapped past p.Count are hidden rather than
// removed so the pool can be reused.
func (l *TileLayout) PlaceItems(pool Pool, p Placement) {
	n := pool.Len()
	for slot := 0; slot < n; slot++ {
		item := pool.At(slot)
		if item == nil {
			continue
		}
		elem := p.Top + slot
		if elem >= p.Count {
			item.SetVisible(false)
			continue
		}
		item.SetPos(l.ElementRect(elem, p))
		item.SetVisible(true)
	}
}
