// Package listctrl composes the header, the columnar store, the windowing
// controller and the selection model into a multi-column list control.
//
// The control is the DataProvider of its window controller and the Target of
// its selection model. Row selection and check state live in the store's
// metadata column, so they survive scrolling and travel with rows on sort.
package listctrl

import (
	"github.com/rs/zerolog"

	"github.com/rshade/tilegrid/internal/header"
	"github.com/rshade/tilegrid/internal/layout"
	"github.com/rshade/tilegrid/internal/selection"
	"github.com/rshade/tilegrid/internal/store"
	"github.com/rshade/tilegrid/internal/uictx"
	"github.com/rshade/tilegrid/internal/window"
)

const component = "listctrl"

// DefaultRowHeight is the row height when none is configured.
const DefaultRowHeight int32 = 1

// autoFitPadding is added to the widest text by AutoFitColumn.
const autoFitPadding = 2

type options struct {
	layout    layout.Options
	newItem   func() ItemView
	window    []window.Option
	selection []selection.Option
}

// Option configures a Control.
type Option func(*options)

// WithLayout sets the row geometry. Columns are forced to 1.
func WithLayout(o layout.Options) Option {
	return func(opts *options) { opts.layout = o }
}

// WithItemFactory sets the row view factory.
func WithItemFactory(fn func() ItemView) Option {
	return func(opts *options) {
		if fn != nil {
			opts.newItem = fn
		}
	}
}

// WithWindowOptions passes options to the window controller.
func WithWindowOptions(o ...window.Option) Option {
	return func(opts *options) { opts.window = append(opts.window, o...) }
}

// WithSelectionOptions passes options to the selection model.
func WithSelectionOptions(o ...selection.Option) Option {
	return func(opts *options) { opts.selection = append(opts.selection, o...) }
}

// Control is a virtualized multi-column list. Its selection tracks rows
// that scrolled out of view unless configured otherwise.
type Control struct {
	ctx     *uictx.Context
	logger  zerolog.Logger
	header  *header.Header
	store   *store.Store
	win     *window.Controller
	sel     *selection.Model
	newItem func() ItemView
	cmps    map[store.ColumnID]store.Comparator
	editing bool
}

var (
	_ window.DataProvider = (*Control)(nil)
	_ selection.Target    = (*Control)(nil)
)

// New creates an empty control. Call SetViewport before use.
func New(ctx *uictx.Context, opts ...Option) *Control {
	if ctx == nil {
		ctx = uictx.Default()
	}
	o := options{
		layout:  layout.ListOptions(DefaultRowHeight, 0),
		newItem: NewRowItem,
	}
	for _, opt := range opts {
		opt(&o)
	}
	o.layout.FixedColumns = 1

	c := &Control{
		ctx:     ctx,
		logger:  ctx.Logger(component),
		header:  header.New(ctx),
		store:   store.New(ctx),
		newItem: o.newItem,
		cmps:    make(map[store.ColumnID]store.Comparator),
	}
	c.store.SetColumnOwner(c.header)
	c.win = window.New(ctx, layout.New(ctx, o.layout), c, o.window...)
	c.store.AddObserver(c.win)
	selOpts := append([]selection.Option{selection.WithTrackOffscreen(true)}, o.selection...)
	c.sel = selection.New(ctx, c, selOpts...)
	c.store.AddObserver(rowSync{c})
	return c
}

// rowSync re-reads the selection from the row metadata when rows are added
// or removed through the store directly. The control's own row edits move
// the selection themselves.
type rowSync struct{ c *Control }

func (r rowSync) OnCountChanged() {
	c := r.c
	if c.editing {
		return
	}
	row := window.InvalidIndex
	if rows := c.store.SelectedRows(); len(rows) > 0 {
		row = rows[0]
	}
	if row != c.sel.Selected() {
		c.logger.Debug().Int("from", c.sel.Selected()).Int("to", row).Msg("selection resynced")
	}
	c.sel.Resync(row)
}

func (rowSync) OnDataChanged(int, int) {}

// Header returns the column header.
func (c *Control) Header() *header.Header { return c.header }

// Store returns the row store.
func (c *Control) Store() *store.Store { return c.store }

// Window returns the windowing controller.
func (c *Control) Window() *window.Controller { return c.win }

// Selection returns the selection model.
func (c *Control) Selection() *selection.Model { return c.sel }

// CreateElement implements window.DataProvider.
func (c *Control) CreateElement() window.Item { return c.newItem() }

// FillElement implements window.DataProvider.
func (c *Control) FillElement(item window.Item, row int) bool {
	view, ok := item.(ItemView)
	if !c.ctx.Assert(ok, component, "pooled item %T is not an ItemView", item) {
		return false
	}
	if row < 0 || row >= c.store.RowCount() {
		return false
	}
	view.Bind(c.Row(row))
	return true
}

// ElementCount implements window.DataProvider and selection.Target.
func (c *Control) ElementCount() int { return c.store.RowCount() }

// Row returns the display snapshot of a row.
func (c *Control) Row(row int) RowData {
	cols := c.header.Columns()
	data := RowData{
		Index:    row,
		Cells:    make([]CellData, len(cols)),
		Selected: c.store.IsRowSelected(row),
		Checked:  c.store.IsRowChecked(row),
	}
	for i, col := range cols {
		cell, ok := c.store.CellByID(row, col.ID)
		data.Cells[i] = CellData{Column: col, Cell: cell, Present: ok}
	}
	return data
}

// IsSelectable implements selection.Target.
func (c *Control) IsSelectable(row int) bool {
	return selection.ItemSelectable(c.win.ElementItem(row))
}

// IsElementDisplay implements selection.Target.
func (c *Control) IsElementDisplay(row int) bool { return c.win.IsElementDisplay(row) }

// EnsureVisible implements selection.Target.
func (c *Control) EnsureVisible(row int, toTop bool) { c.win.EnsureVisible(row, toTop) }

// SetElementSelected implements selection.Target.
func (c *Control) SetElementSelected(row int, selected bool) {
	c.store.SetRowSelected(row, selected)
}

// PageSize implements selection.Target.
func (c *Control) PageSize() int { return c.win.VisibleRows() * c.win.Columns() }

// SetViewport sizes the list area.
func (c *Control) SetViewport(r layout.Rect) {
	c.win.SetViewport(r)
	c.sel.Revalidate()
}

// SetScrollPosition scrolls the list.
func (c *Control) SetScrollPosition(y int64) {
	c.win.SetScrollPosition(y)
	c.sel.Revalidate()
}

// ScrollBy scrolls the list by delta.
func (c *Control) ScrollBy(delta int64) { c.SetScrollPosition(c.win.ScrollPosition() + delta) }

// InsertColumn adds a column at display index and returns its id.
func (c *Control) InsertColumn(index int, col header.Column) store.ColumnID {
	id := c.header.InsertColumn(index, col)
	if !c.store.AddColumn(id) {
		c.ctx.Assert(false, component, "store rejected column %d", id)
	}
	c.win.OnDataChanged(0, c.store.RowCount()-1)
	return id
}

// AppendColumn adds a column after the last one.
func (c *Control) AppendColumn(col header.Column) store.ColumnID {
	return c.InsertColumn(c.header.ColumnCount(), col)
}

// RemoveColumn removes the column at display index with its cells.
func (c *Control) RemoveColumn(index int) bool {
	id, ok := c.header.RemoveColumn(index)
	if !ok {
		return false
	}
	c.store.RemoveColumn(id)
	delete(c.cmps, id)
	c.win.OnDataChanged(0, c.store.RowCount()-1)
	return true
}

// MoveColumn changes a column's display position. Its cells follow by id.
func (c *Control) MoveColumn(from, to int) bool {
	if !c.header.MoveColumn(from, to) {
		return false
	}
	c.win.OnDataChanged(0, c.store.RowCount()-1)
	return true
}

func (c *Control) rowFromTexts(texts []string) store.Row {
	row := make(store.Row, len(texts))
	for i, text := range texts {
		id := c.header.ColumnID(i)
		if id == store.MetaColumn {
			break
		}
		row[id] = store.NewCell(text)
	}
	return row
}

// InsertRow inserts a row whose texts are given in display order and
// returns its index.
func (c *Control) InsertRow(index int, texts ...string) int {
	c.editing = true
	at := c.store.InsertRow(index, c.rowFromTexts(texts))
	c.editing = false
	c.sel.ElementInserted(at)
	return at
}

// AppendRow adds a row at the end.
func (c *Control) AppendRow(texts ...string) int {
	return c.InsertRow(c.store.RowCount(), texts...)
}

// DeleteRow removes a row. The selection follows the delete policy.
func (c *Control) DeleteRow(index int) bool {
	c.editing = true
	ok := c.store.DeleteRow(index)
	c.editing = false
	if !ok {
		return false
	}
	c.sel.ElementRemoved(index)
	return true
}

// Clear removes every row.
func (c *Control) Clear() {
	c.sel.Reset()
	c.store.Clear()
}

// SetCellText sets one cell by display column.
func (c *Control) SetCellText(row, columnIndex int, text string) bool {
	return c.store.SetCellText(row, columnIndex, text)
}

// SetCellChecked sets the check flag of one cell by display column.
func (c *Control) SetCellChecked(row, columnIndex int, checked bool) bool {
	return c.store.SetCellChecked(row, columnIndex, checked)
}

// CellText returns the text of one cell by display column.
func (c *Control) CellText(row, columnIndex int) string {
	return c.store.CellText(row, columnIndex)
}

// SetComparator sets the comparator used when sorting the column at
// display index. A nil cmp restores the default.
func (c *Control) SetComparator(columnIndex int, cmp store.Comparator) bool {
	id := c.header.ColumnID(columnIndex)
	if id == store.MetaColumn {
		return false
	}
	if cmp == nil {
		delete(c.cmps, id)
	} else {
		c.cmps[id] = cmp
	}
	return true
}

// Sort orders the rows by a sortable column. The selected row stays
// selected at its new index without listener notifications.
func (c *Control) Sort(columnIndex int, ascending bool) bool {
	col, ok := c.header.Column(columnIndex)
	if !ok || !col.Sortable {
		return false
	}
	hadSelection := c.sel.HasSelection()
	focused := c.sel.Focused()

	if !c.store.SortByColumn(col.ID, ascending, c.cmps[col.ID]) {
		return false
	}
	c.header.SetSort(col.ID, ascending)

	c.sel.Reset()
	if hadSelection {
		if rows := c.store.SelectedRows(); len(rows) > 0 && !c.sel.SelectItem(rows[0], focused, false) {
			c.store.SetRowSelected(rows[0], false)
		}
	}
	c.logger.Debug().
		Int("column", int(col.ID)).
		Bool("ascending", ascending).
		Int("selected", c.sel.Selected()).
		Msg("sorted")
	return true
}

// ToggleSort sorts by the column at display index, ascending unless it is
// already the ascending sort column.
func (c *Control) ToggleSort(columnIndex int) bool {
	id := c.header.ColumnID(columnIndex)
	s := c.header.Sort()
	ascending := s.Column != id || !s.Ascending
	return c.Sort(columnIndex, ascending)
}

// HeaderCheckState aggregates the check flags of the column at display
// index.
func (c *Control) HeaderCheckState(columnIndex int) store.CheckState {
	return c.store.CheckState(c.header.ColumnID(columnIndex))
}

// ToggleHeaderCheck unchecks every row when all are checked and checks
// every row otherwise.
func (c *Control) ToggleHeaderCheck(columnIndex int) bool {
	col, ok := c.header.Column(columnIndex)
	if !ok || !col.Checkbox {
		return false
	}
	checked := c.store.CheckState(col.ID) != store.CheckChecked
	return c.store.SetColumnCheckAll(col.ID, checked)
}

// CheckedRows returns the rows checked in the column at display index.
func (c *Control) CheckedRows(columnIndex int) []int {
	return c.store.CheckedRows(c.header.ColumnID(columnIndex))
}

// AutoFitColumn sizes the column at display index to its widest text as
// measured by the render factory.
func (c *Control) AutoFitColumn(columnIndex int) bool {
	col, ok := c.header.Column(columnIndex)
	if !ok {
		return false
	}
	measure := c.ctx.Factory()
	width := measure.TextWidth(col.Title)
	for row := range c.store.RowCount() {
		if cell, ok := c.store.CellByID(row, col.ID); ok {
			width = max(width, measure.TextWidth(cell.Text))
		}
	}
	return c.header.SetColumnWidth(columnIndex, int32(width+autoFitPadding))
}
