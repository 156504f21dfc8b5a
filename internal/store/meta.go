package store

func (s *Store) meta(row int) *Cell {
	ref := s.cellRef(MetaColumn, row)
	if ref == nil {
		return nil
	}
	return *ref
}

// SetRowSelected sets the selection flag of a row.
func (s *Store) SetRowSelected(row int, selected bool) bool {
	return s.mutateAny(MetaColumn, row, func(c *Cell) { c.Selected = selected })
}

// IsRowSelected reports the selection flag of a row.
func (s *Store) IsRowSelected(row int) bool {
	m := s.meta(row)
	return m != nil && m.Selected
}

// SetRowChecked sets the row-level check flag.
func (s *Store) SetRowChecked(row int, checked bool) bool {
	return s.mutateAny(MetaColumn, row, func(c *Cell) { c.Checked = checked })
}

// IsRowChecked reports the row-level check flag.
func (s *Store) IsRowChecked(row int) bool {
	m := s.meta(row)
	return m != nil && m.Checked
}

// SetRowUserData attaches opaque data to a row. It travels with the row
// through inserts, deletes and sorts.
func (s *Store) SetRowUserData(row int, data any) bool {
	ref := s.cellRef(MetaColumn, row)
	if ref == nil {
		return false
	}
	if *ref == nil {
		*ref = NewCell("")
	}
	(*ref).UserData = data
	return true
}

// RowUserData returns the data attached to a row.
func (s *Store) RowUserData(row int) any {
	if m := s.meta(row); m != nil {
		return m.UserData
	}
	return nil
}

// SelectedRows returns the rows whose selection flag is set.
func (s *Store) SelectedRows() []int {
	var rows []int
	for i, m := range s.columns[MetaColumn] {
		if m != nil && m.Selected {
			rows = append(rows, i)
		}
	}
	return rows
}

// ClearRowSelection clears every row selection flag.
func (s *Store) ClearRowSelection() {
	for _, m := range s.columns[MetaColumn] {
		if m != nil {
			m.Selected = false
		}
	}
}
