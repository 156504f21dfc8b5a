// Package header holds the column header of the list control: display
// order, widths, flags and the sort indicator. Columns keep a stable
// store.ColumnID while their display index changes on insert, remove and
// move.
package header

import (
	"slices"

	"github.com/rs/zerolog"

	"github.com/rshade/tilegrid/internal/store"
	"github.com/rshade/tilegrid/internal/uictx"
)

const component = "header"

// DefaultColumnWidth is used when a column is added without a width.
const DefaultColumnWidth int32 = 12

// Column describes one header column.
type Column struct {
	ID       store.ColumnID
	Title    string
	Width    int32
	Sortable bool
	Checkbox bool
}

// SortState is the sort indicator. A zero Column means unsorted.
type SortState struct {
	Column    store.ColumnID
	Ascending bool
}

// Sorted reports whether a sort column is set.
func (s SortState) Sorted() bool { return s.Column != store.MetaColumn }

// Header is the ordered column set. It implements store.ColumnOwner.
type Header struct {
	logger  zerolog.Logger
	columns []Column
	nextID  store.ColumnID
	sort    SortState
}

var _ store.ColumnOwner = (*Header)(nil)

// New creates an empty header.
func New(ctx *uictx.Context) *Header {
	if ctx == nil {
		ctx = uictx.Default()
	}
	return &Header{logger: ctx.Logger(component), nextID: 1}
}

// InsertColumn inserts c at index and returns the id it was assigned; c.ID
// is ignored. An out-of-range index appends.
func (h *Header) InsertColumn(index int, c Column) store.ColumnID {
	if index < 0 || index > len(h.columns) {
		index = len(h.columns)
	}
	if c.Width <= 0 {
		c.Width = DefaultColumnWidth
	}
	c.ID = h.nextID
	h.nextID++
	h.columns = slices.Insert(h.columns, index, c)
	h.logger.Debug().Int("column", int(c.ID)).Int("index", index).Msg("column inserted")
	return c.ID
}

// AppendColumn adds c after the last column.
func (h *Header) AppendColumn(c Column) store.ColumnID {
	return h.InsertColumn(len(h.columns), c)
}

// RemoveColumn removes the column at index and returns its id. Removing the
// sort column clears the sort indicator.
func (h *Header) RemoveColumn(index int) (store.ColumnID, bool) {
	if index < 0 || index >= len(h.columns) {
		return store.MetaColumn, false
	}
	id := h.columns[index].ID
	h.columns = slices.Delete(h.columns, index, index+1)
	if h.sort.Column == id {
		h.sort = SortState{}
	}
	return id, true
}

// MoveColumn moves the column at from to display position to. Ids do not
// change.
func (h *Header) MoveColumn(from, to int) bool {
	n := len(h.columns)
	if from < 0 || from >= n || to < 0 || to >= n {
		return false
	}
	if from == to {
		return true
	}
	c := h.columns[from]
	h.columns = slices.Delete(h.columns, from, from+1)
	h.columns = slices.Insert(h.columns, to, c)
	return true
}

// ColumnCount implements store.ColumnOwner.
func (h *Header) ColumnCount() int { return len(h.columns) }

// ColumnID implements store.ColumnOwner. It returns store.MetaColumn for an
// invalid index.
func (h *Header) ColumnID(columnIndex int) store.ColumnID {
	if columnIndex < 0 || columnIndex >= len(h.columns) {
		return store.MetaColumn
	}
	return h.columns[columnIndex].ID
}

// ColumnIndex implements store.ColumnOwner. It returns -1 for unknown ids.
func (h *Header) ColumnIndex(id store.ColumnID) int {
	return slices.IndexFunc(h.columns, func(c Column) bool { return c.ID == id })
}

// ColumnWidth implements store.ColumnOwner.
func (h *Header) ColumnWidth(columnIndex int) int32 {
	if columnIndex < 0 || columnIndex >= len(h.columns) {
		return 0
	}
	return h.columns[columnIndex].Width
}

// SetColumnWidth sets the width of the column at index.
func (h *Header) SetColumnWidth(columnIndex int, width int32) bool {
	if columnIndex < 0 || columnIndex >= len(h.columns) || width <= 0 {
		return false
	}
	h.columns[columnIndex].Width = width
	return true
}

// Column returns the column at index.
func (h *Header) Column(columnIndex int) (Column, bool) {
	if columnIndex < 0 || columnIndex >= len(h.columns) {
		return Column{}, false
	}
	return h.columns[columnIndex], true
}

// Columns returns the columns in display order.
func (h *Header) Columns() []Column { return slices.Clone(h.columns) }

// SetColumnTitle renames the column at index.
func (h *Header) SetColumnTitle(columnIndex int, title string) bool {
	if columnIndex < 0 || columnIndex >= len(h.columns) {
		return false
	}
	h.columns[columnIndex].Title = title
	return true
}

// SetCheckbox shows or hides the check box of the column at index.
func (h *Header) SetCheckbox(columnIndex int, visible bool) bool {
	if columnIndex < 0 || columnIndex >= len(h.columns) {
		return false
	}
	h.columns[columnIndex].Checkbox = visible
	return true
}

// TotalWidth returns the sum of all column widths.
func (h *Header) TotalWidth() int32 {
	var w int32
	for _, c := range h.columns {
		w += c.Width
	}
	return w
}

// Sort returns the sort indicator.
func (h *Header) Sort() SortState { return h.sort }

// SetSort sets the sort indicator. Only sortable columns can be marked.
func (h *Header) SetSort(id store.ColumnID, ascending bool) bool {
	i := h.ColumnIndex(id)
	if i < 0 || !h.columns[i].Sortable {
		return false
	}
	h.sort = SortState{Column: id, Ascending: ascending}
	return true
}

// ClearSort removes the sort indicator.
func (h *Header) ClearSort() { h.sort = SortState{} }
