// Package store implements the columnar sparse data store behind the
// multi-column list control.
//
// Each column is one []*Cell array keyed by its stable ColumnID; the array
// keyed by MetaColumn holds row metadata. Every array is exactly RowCount
// long, and row mutations and sorting touch all arrays in lockstep so a row
// index addresses the same logical row in every column.
//
// Invalid column ids and row indexes are caller mistakes that fail quietly:
// mutators return false and readers return zero values.
package store

import (
	"slices"

	"github.com/rs/zerolog"

	"github.com/rshade/tilegrid/internal/uictx"
)

const component = "store"

// Store is the columnar row store. It is not safe for concurrent use.
type Store struct {
	ctx       *uictx.Context
	logger    zerolog.Logger
	owner     ColumnOwner
	columns   map[ColumnID][]*Cell
	order     []ColumnID
	count     int
	observers []Observer
}

// New creates an empty store.
func New(ctx *uictx.Context) *Store {
	if ctx == nil {
		ctx = uictx.Default()
	}
	return &Store{
		ctx:     ctx,
		logger:  ctx.Logger(component),
		columns: make(map[ColumnID][]*Cell),
	}
}

// SetColumnOwner sets the mapping used to resolve column indexes. Without an
// owner, column indexes follow AddColumn order.
func (s *Store) SetColumnOwner(owner ColumnOwner) { s.owner = owner }

// AddObserver registers o for count and data notifications.
func (s *Store) AddObserver(o Observer) {
	if o != nil {
		s.observers = append(s.observers, o)
	}
}

// RemoveObserver unregisters o.
func (s *Store) RemoveObserver(o Observer) {
	s.observers = slices.DeleteFunc(s.observers, func(x Observer) bool { return x == o })
}

func (s *Store) countChanged() {
	for _, o := range s.observers {
		o.OnCountChanged()
	}
}

func (s *Store) dataChanged(start, end int) {
	for _, o := range s.observers {
		o.OnDataChanged(start, end)
	}
}

// RowCount returns the number of rows.
func (s *Store) RowCount() int { return s.count }

// ColumnCount returns the number of real columns.
func (s *Store) ColumnCount() int { return len(s.order) }

// ColumnIDs returns the real column ids in AddColumn order.
func (s *Store) ColumnIDs() []ColumnID { return slices.Clone(s.order) }

// HasColumn reports whether id is a stored real column.
func (s *Store) HasColumn(id ColumnID) bool {
	if id == MetaColumn {
		return false
	}
	_, ok := s.columns[id]
	return ok
}

// AddColumn adds an empty column sized to the current row count. It fails
// for MetaColumn and for ids already present.
func (s *Store) AddColumn(id ColumnID) bool {
	if id == MetaColumn || s.HasColumn(id) {
		return false
	}
	if _, ok := s.columns[MetaColumn]; !ok {
		s.columns[MetaColumn] = make([]*Cell, s.count)
	}
	s.columns[id] = make([]*Cell, s.count)
	s.order = append(s.order, id)
	return true
}

// RemoveColumn drops a column and its cells. Removing the last real column
// also drops the metadata and leaves the store empty.
func (s *Store) RemoveColumn(id ColumnID) bool {
	if !s.HasColumn(id) {
		return false
	}
	delete(s.columns, id)
	s.order = slices.DeleteFunc(s.order, func(x ColumnID) bool { return x == id })
	if len(s.order) > 0 {
		return true
	}
	delete(s.columns, MetaColumn)
	if s.count == 0 {
		return true
	}
	s.count = 0
	s.countChanged()
	return true
}

// SetRowCount truncates or extends every array to n rows. New rows hold
// absent cells.
func (s *Store) SetRowCount(n int) {
	if n < 0 || n == s.count {
		return
	}
	if _, ok := s.columns[MetaColumn]; !ok {
		s.columns[MetaColumn] = nil
	}
	for id, arr := range s.columns {
		if n < len(arr) {
			clear(arr[n:])
			s.columns[id] = arr[:n]
		} else {
			s.columns[id] = append(arr, make([]*Cell, n-len(arr))...)
		}
	}
	s.count = n
	s.countChanged()
}

// InsertRow inserts row at index in every array and returns the index it
// landed at. An out-of-range index appends.
func (s *Store) InsertRow(index int, row Row) int {
	if index < 0 || index > s.count {
		index = s.count
	}
	if _, ok := s.columns[MetaColumn]; !ok {
		s.columns[MetaColumn] = make([]*Cell, s.count)
	}
	for id, arr := range s.columns {
		var cell *Cell
		if v := row[id]; v != nil {
			c := *v
			cell = &c
		}
		s.columns[id] = slices.Insert(arr, min(index, len(arr)), cell)
	}
	s.count++
	s.countChanged()
	return index
}

// AppendRow inserts row after the last row.
func (s *Store) AppendRow(row Row) int { return s.InsertRow(s.count, row) }

// DeleteRow removes one row from every array.
func (s *Store) DeleteRow(index int) bool {
	if index < 0 || index >= s.count {
		return false
	}
	for id, arr := range s.columns {
		if index < len(arr) {
			s.columns[id] = slices.Delete(arr, index, index+1)
		}
	}
	s.count--
	s.countChanged()
	return true
}

// Clear removes every row but keeps the columns.
func (s *Store) Clear() { s.SetRowCount(0) }

// ResolveColumn maps a display column index to its id, or MetaColumn when
// the index is out of range.
func (s *Store) ResolveColumn(columnIndex int) ColumnID {
	if s.owner != nil {
		if columnIndex < 0 || columnIndex >= s.owner.ColumnCount() {
			return MetaColumn
		}
		return s.owner.ColumnID(columnIndex)
	}
	if columnIndex < 0 || columnIndex >= len(s.order) {
		return MetaColumn
	}
	return s.order[columnIndex]
}

// cellRef returns the slot for (id, row), or nil for invalid addresses. A
// short array is an invariant violation and reads as absent.
func (s *Store) cellRef(id ColumnID, row int) **Cell {
	if row < 0 || row >= s.count {
		return nil
	}
	arr, ok := s.columns[id]
	if !ok {
		return nil
	}
	if !s.ctx.Assert(row < len(arr), component, "column %d has %d cells, want %d", id, len(arr), s.count) {
		return nil
	}
	return &arr[row]
}

// mutate locates or allocates the cell at (id, row), applies fn and emits a
// single-row data notification.
func (s *Store) mutate(id ColumnID, row int, fn func(c *Cell)) bool {
	if id == MetaColumn {
		return false
	}
	return s.mutateAny(id, row, fn)
}

func (s *Store) mutateAny(id ColumnID, row int, fn func(c *Cell)) bool {
	ref := s.cellRef(id, row)
	if ref == nil {
		return false
	}
	if *ref == nil {
		*ref = NewCell("")
	}
	fn(*ref)
	s.dataChanged(row, row)
	return true
}

// SetCell replaces the cell at (row, columnIndex).
func (s *Store) SetCell(row, columnIndex int, cell Cell) bool {
	return s.SetCellByID(row, s.ResolveColumn(columnIndex), cell)
}

// SetCellByID replaces the cell at (row, id).
func (s *Store) SetCellByID(row int, id ColumnID, cell Cell) bool {
	return s.mutate(id, row, func(c *Cell) { *c = cell })
}

// SetCellText sets the text of the cell at (row, columnIndex).
func (s *Store) SetCellText(row, columnIndex int, text string) bool {
	return s.mutate(s.ResolveColumn(columnIndex), row, func(c *Cell) { c.Text = text })
}

// SetCellChecked sets the check flag of the cell at (row, columnIndex).
func (s *Store) SetCellChecked(row, columnIndex int, checked bool) bool {
	return s.mutate(s.ResolveColumn(columnIndex), row, func(c *Cell) { c.Checked = checked })
}

// ClearCell makes the cell at (row, id) absent.
func (s *Store) ClearCell(row int, id ColumnID) bool {
	if id == MetaColumn {
		return false
	}
	ref := s.cellRef(id, row)
	if ref == nil {
		return false
	}
	*ref = nil
	s.dataChanged(row, row)
	return true
}

// Cell returns a copy of the cell at (row, columnIndex). The boolean is false
// for absent cells and invalid addresses.
func (s *Store) Cell(row, columnIndex int) (Cell, bool) {
	return s.CellByID(row, s.ResolveColumn(columnIndex))
}

// CellByID returns a copy of the cell at (row, id).
func (s *Store) CellByID(row int, id ColumnID) (Cell, bool) {
	if id == MetaColumn {
		return Cell{}, false
	}
	ref := s.cellRef(id, row)
	if ref == nil || *ref == nil {
		return Cell{}, false
	}
	return **ref, true
}

// CellText returns the text at (row, columnIndex), empty when absent.
func (s *Store) CellText(row, columnIndex int) string {
	c, _ := s.Cell(row, columnIndex)
	return c.Text
}

// SortByColumn orders every row by the cells of column id. One permutation
// is computed from that column and applied to every array, metadata
// included. Absent cells sort last in both directions. The sort is stable.
// A nil cmp uses TextComparator.
func (s *Store) SortByColumn(id ColumnID, ascending bool, cmp Comparator) bool {
	key, ok := s.columns[id]
	if id == MetaColumn || !ok {
		return false
	}
	if cmp == nil {
		cmp = TextComparator
	}
	if s.count < 2 {
		return true
	}

	perm := make([]int, s.count)
	for i := range perm {
		perm[i] = i
	}
	slices.SortStableFunc(perm, func(i, j int) int {
		a, b := s.at(key, i), s.at(key, j)
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return 1
		case b == nil:
			return -1
		}
		if ascending {
			return cmp(a, b)
		}
		return cmp(b, a)
	})

	for cid, arr := range s.columns {
		sorted := make([]*Cell, s.count)
		for dst, src := range perm {
			sorted[dst] = s.at(arr, src)
		}
		s.columns[cid] = sorted
	}

	s.logger.Debug().
		Int("column", int(id)).
		Bool("ascending", ascending).
		Int("rows", s.count).
		Msg("sorted")
	s.dataChanged(0, s.count-1)
	return true
}

func (s *Store) at(arr []*Cell, i int) *Cell {
	if i >= len(arr) {
		return nil
	}
	return arr[i]
}

// SetColumnCheckAll writes checked into every row of column id.
func (s *Store) SetColumnCheckAll(id ColumnID, checked bool) bool {
	if !s.HasColumn(id) {
		return false
	}
	arr := s.columns[id]
	for i := range min(len(arr), s.count) {
		if arr[i] == nil {
			arr[i] = NewCell("")
		}
		arr[i].Checked = checked
	}
	if s.count > 0 {
		s.dataChanged(0, s.count-1)
	}
	return true
}

// HasChecked reports whether any row of column id is checked.
func (s *Store) HasChecked(id ColumnID) bool {
	if !s.HasColumn(id) {
		return false
	}
	for _, c := range s.columns[id] {
		if c != nil && c.Checked {
			return true
		}
	}
	return false
}

// HasUnchecked reports whether any row of column id is unchecked. Absent
// cells count as unchecked.
func (s *Store) HasUnchecked(id ColumnID) bool {
	if !s.HasColumn(id) {
		return false
	}
	for _, c := range s.columns[id] {
		if c == nil || !c.Checked {
			return true
		}
	}
	return false
}

// CheckState aggregates the check flags of column id for a header checkbox.
func (s *Store) CheckState(id ColumnID) CheckState {
	if !s.HasColumn(id) || s.count == 0 {
		return CheckNone
	}
	checked, unchecked := s.HasChecked(id), s.HasUnchecked(id)
	switch {
	case checked && unchecked:
		return CheckMixed
	case checked:
		return CheckChecked
	default:
		return CheckUnchecked
	}
}

// CheckedRows returns the rows whose cell in column id is checked.
func (s *Store) CheckedRows(id ColumnID) []int {
	if !s.HasColumn(id) {
		return nil
	}
	var rows []int
	for i, c := range s.columns[id] {
		if c != nil && c.Checked {
			rows = append(rows, i)
		}
	}
	return rows
}
