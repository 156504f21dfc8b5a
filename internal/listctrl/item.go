package listctrl

import (
	"github.com/rshade/tilegrid/internal/header"
	"github.com/rshade/tilegrid/internal/layout"
	"github.com/rshade/tilegrid/internal/store"
	"github.com/rshade/tilegrid/internal/window"
)

// CellData is one cell of a bound row, in display order.
type CellData struct {
	Column  header.Column
	Cell    store.Cell
	Present bool
}

// RowData is the snapshot a row item is bound to.
type RowData struct {
	Index    int
	Cells    []CellData
	Selected bool
	Checked  bool
}

// ItemView is the capability of a pooled row view.
type ItemView interface {
	window.Item
	IsEnabled() bool
	Bind(row RowData)
}

// RowItem is the default ItemView. It keeps the last bound row for the
// renderer to draw.
type RowItem struct {
	rect     layout.Rect
	visible  bool
	disabled bool
	data     RowData
	binds    int
}

var _ ItemView = (*RowItem)(nil)

// NewRowItem returns an enabled, hidden row item.
func NewRowItem() ItemView { return &RowItem{} }

// Pos implements window.Item.
func (r *RowItem) Pos() layout.Rect { return r.rect }

// SetPos implements window.Item.
func (r *RowItem) SetPos(rect layout.Rect) { r.rect = rect }

// IsVisible implements window.Item.
func (r *RowItem) IsVisible() bool { return r.visible }

// SetVisible implements window.Item.
func (r *RowItem) SetVisible(v bool) { r.visible = v }

// IsEnabled implements ItemView.
func (r *RowItem) IsEnabled() bool { return !r.disabled }

// SetEnabled enables or disables the item.
func (r *RowItem) SetEnabled(enabled bool) { r.disabled = !enabled }

// Bind implements ItemView.
func (r *RowItem) Bind(row RowData) {
	r.data = row
	r.binds++
}

// Data returns the bound row.
func (r *RowItem) Data() RowData { return r.data }

// Binds returns how often the item was bound.
func (r *RowItem) Binds() int { return r.binds }
