package store_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/rshade/tilegrid/internal/store"
	"github.com/rshade/tilegrid/internal/uictx"
)

type recorder struct {
	counts int
	ranges [][2]int
}

func (r *recorder) OnCountChanged() { r.counts++ }
func (r *recorder) OnDataChanged(start, end int) { r.ranges = append(r.ranges, [2]int{start, end}) }

// reversedOwner lists columns in reverse id order.
type reversedOwner struct{ ids []store.ColumnID }

func (o reversedOwner) ColumnCount() int { return len(o.ids) }
func (o reversedOwner) ColumnID(i int) store.ColumnID {
	return o.ids[len(o.ids)-1-i]
}
func (o reversedOwner) ColumnIndex(id store.ColumnID) int {
	for i := range o.ids {
		if o.ColumnID(i) == id {
			return i
		}
	}
	return -1
}
func (o reversedOwner) ColumnWidth(int) int32 { return 10 }

func newStore(t *testing.T, columns int) *store.Store {
	t.Helper()
	s := store.New(uictx.New(uictx.WithStrict(true)))
	for id := 1; id <= columns; id++ {
		require.True(t, s.AddColumn(store.ColumnID(id)))
	}
	return s
}

// column returns the texts of column id, "<nil>" for absent cells.
func column(s *store.Store, id store.ColumnID) []string {
	out := make([]string, s.RowCount())
	for i := range out {
		c, ok := s.CellByID(i, id)
		if !ok {
			out[i] = "<nil>"
			continue
		}
		out[i] = c.Text
	}
	return out
}

func textRow(texts map[store.ColumnID]string) store.Row {
	row := store.Row{}
	for id, text := range texts {
		row[id] = store.NewCell(text)
	}
	return row
}

func TestAddColumn(t *testing.T) {
	s := newStore(t, 2)

	assert.False(t, s.AddColumn(store.MetaColumn), "metadata id is reserved")
	assert.False(t, s.AddColumn(1), "duplicate id")
	assert.True(t, s.AddColumn(7))
	assert.Equal(t, []store.ColumnID{1, 2, 7}, s.ColumnIDs())
}

func TestAddColumn_SizedToRowCount(t *testing.T) {
	s := newStore(t, 1)
	s.SetRowCount(4)

	require.True(t, s.AddColumn(2))
	assert.True(t, s.SetCellByID(3, 2, store.Cell{Text: "x"}))
	assert.Equal(t, []string{"<nil>", "<nil>", "<nil>", "x"}, column(s, 2))
}

func TestSortByColumn_DescendingKeepsNilLast(t *testing.T) {
	s := newStore(t, 5)
	for i, v := range []string{"b", "", "a"} {
		texts := map[store.ColumnID]string{1: fmt.Sprintf("row%d", i)}
		if v != "" {
			texts[2] = v
		}
		s.AppendRow(textRow(texts))
	}

	require.True(t, s.SortByColumn(2, false, nil))

	assert.Equal(t, []string{"b", "a", "<nil>"}, column(s, 2))
	assert.Equal(t, []string{"row0", "row2", "row1"}, column(s, 1))
}

func TestSortByColumn_AscendingKeepsNilLast(t *testing.T) {
	s := newStore(t, 1)
	for _, v := range []string{"", "c", "", "a"} {
		row := store.Row{}
		if v != "" {
			row[1] = store.NewCell(v)
		}
		s.AppendRow(row)
	}

	require.True(t, s.SortByColumn(1, true, nil))
	assert.Equal(t, []string{"a", "c", "<nil>", "<nil>"}, column(s, 1))
}

func TestSortByColumn_KeepsRowsAligned(t *testing.T) {
	s := newStore(t, 3)
	type tuple struct{ a, b, c string }
	var before []tuple
	for i := range 40 {
		tp := tuple{
			a: fmt.Sprintf("%02d", (i*7)%13),
			b: fmt.Sprintf("b%02d", i),
			c: fmt.Sprintf("%02d", (i*11)%5),
		}
		before = append(before, tp)
		s.AppendRow(textRow(map[store.ColumnID]string{1: tp.a, 2: tp.b, 3: tp.c}))
		s.SetRowUserData(i, tp.b)
	}

	for _, sortBy := range []store.ColumnID{1, 3, 2} {
		for _, asc := range []bool{true, false} {
			require.True(t, s.SortByColumn(sortBy, asc, nil))

			var after []tuple
			a, b, c := column(s, 1), column(s, 2), column(s, 3)
			for i := range a {
				after = append(after, tuple{a[i], b[i], c[i]})
				assert.Equal(t, b[i], s.RowUserData(i), "metadata follows its row")
			}
			assert.ElementsMatch(t, before, after)
		}
	}
}

func TestSortByColumn_Stable(t *testing.T) {
	s := newStore(t, 2)
	for i, key := range []string{"x", "y", "x", "y", "x"} {
		s.AppendRow(textRow(map[store.ColumnID]string{1: key, 2: fmt.Sprint(i)}))
	}

	require.True(t, s.SortByColumn(1, true, nil))
	assert.Equal(t, []string{"0", "2", "4", "1", "3"}, column(s, 2))

	require.True(t, s.SortByColumn(1, false, nil))
	assert.Equal(t, []string{"1", "3", "0", "2", "4"}, column(s, 2))
}

func TestSortByColumn_Invalid(t *testing.T) {
	s := newStore(t, 1)
	assert.False(t, s.SortByColumn(store.MetaColumn, true, nil))
	assert.False(t, s.SortByColumn(9, true, nil))
	assert.True(t, s.SortByColumn(1, true, nil), "empty store sorts trivially")
}

func TestSortByColumn_NotifiesWholeRange(t *testing.T) {
	s := newStore(t, 1)
	s.SetRowCount(3)
	rec := &recorder{}
	s.AddObserver(rec)

	s.SortByColumn(1, true, nil)

	assert.Equal(t, [][2]int{{0, 2}}, rec.ranges)
	assert.Zero(t, rec.counts)
}

func TestCollatorComparator(t *testing.T) {
	words := []string{"b", "C", "a", "B"}

	tests := []struct {
		name string
		cmp  store.Comparator
		want []string
	}{
		{name: "lexical", cmp: store.TextComparator, want: []string{"B", "C", "a", "b"}},
		{name: "collated", cmp: store.CollatorComparator(language.English), want: []string{"a", "b", "B", "C"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newStore(t, 1)
			for _, w := range words {
				s.AppendRow(textRow(map[store.ColumnID]string{1: w}))
			}
			require.True(t, s.SortByColumn(1, true, tc.cmp))
			assert.Equal(t, tc.want, column(s, 1))
		})
	}
}

func TestInsertDeleteRoundTrip(t *testing.T) {
	s := newStore(t, 3)
	for i := range 5 {
		s.AppendRow(textRow(map[store.ColumnID]string{1: fmt.Sprint("a", i), 3: fmt.Sprint("c", i)}))
	}
	snapshot := func() [][]string {
		return [][]string{column(s, 1), column(s, 2), column(s, 3)}
	}
	before := snapshot()

	for _, at := range []int{0, 2, 5} {
		got := s.InsertRow(at, textRow(map[store.ColumnID]string{1: "new", 2: "new"}))
		require.Equal(t, at, got)
		require.Equal(t, 6, s.RowCount())
		require.True(t, s.DeleteRow(at))
		assert.Equal(t, before, snapshot())
	}
}

func TestInsertRow_OutOfRangeAppends(t *testing.T) {
	s := newStore(t, 1)
	s.AppendRow(textRow(map[store.ColumnID]string{1: "first"}))

	got := s.InsertRow(99, textRow(map[store.ColumnID]string{1: "last"}))
	assert.Equal(t, 1, got)
	got = s.InsertRow(-3, textRow(map[store.ColumnID]string{1: "later"}))
	assert.Equal(t, 2, got)

	assert.Equal(t, []string{"first", "last", "later"}, column(s, 1))
}

func TestInsertRow_CopiesCells(t *testing.T) {
	s := newStore(t, 1)
	cell := store.NewCell("orig")
	s.AppendRow(store.Row{1: cell})

	cell.Text = "changed"
	assert.Equal(t, "orig", s.CellText(0, 0))
}

func TestRowMutationsNotify(t *testing.T) {
	s := newStore(t, 2)
	rec := &recorder{}
	s.AddObserver(rec)

	s.SetRowCount(3)
	s.InsertRow(1, nil)
	s.DeleteRow(0)
	s.SetRowCount(3)
	assert.Equal(t, 3, rec.counts, "unchanged count is not a notification")

	require.True(t, s.SetCellText(2, 1, "x"))
	assert.Equal(t, [][2]int{{2, 2}}, rec.ranges)

	s.RemoveObserver(rec)
	s.SetRowCount(5)
	assert.Equal(t, 3, rec.counts)
}

func TestSetRowCount_Truncates(t *testing.T) {
	s := newStore(t, 1)
	for i := range 4 {
		s.AppendRow(textRow(map[store.ColumnID]string{1: fmt.Sprint(i)}))
	}

	s.SetRowCount(2)
	assert.Equal(t, []string{"0", "1"}, column(s, 1))

	s.SetRowCount(3)
	assert.Equal(t, []string{"0", "1", "<nil>"}, column(s, 1), "regrown rows are empty")
}

func TestRemoveColumn(t *testing.T) {
	s := newStore(t, 2)
	s.SetRowCount(3)
	rec := &recorder{}
	s.AddObserver(rec)

	assert.False(t, s.RemoveColumn(store.MetaColumn))
	assert.False(t, s.RemoveColumn(5))

	require.True(t, s.RemoveColumn(1))
	assert.Equal(t, 3, s.RowCount())
	assert.Equal(t, []store.ColumnID{2}, s.ColumnIDs())

	require.True(t, s.RemoveColumn(2))
	assert.Zero(t, s.RowCount(), "removing the last column empties the store")
	assert.Equal(t, 1, rec.counts)
	assert.False(t, s.SetRowSelected(0, true))
}

func TestInvalidAddressesFailQuietly(t *testing.T) {
	s := newStore(t, 2)
	s.SetRowCount(2)

	assert.False(t, s.SetCellText(-1, 0, "x"))
	assert.False(t, s.SetCellText(2, 0, "x"))
	assert.False(t, s.SetCellText(0, 5, "x"))
	assert.False(t, s.SetCellByID(0, store.MetaColumn, store.Cell{}))
	assert.False(t, s.DeleteRow(2))
	assert.False(t, s.ClearCell(0, store.MetaColumn))

	_, ok := s.Cell(0, 0)
	assert.False(t, ok, "unwritten cell is absent")
	_, ok = s.CellByID(9, 1)
	assert.False(t, ok)
	assert.Empty(t, s.CellText(0, 9))
	assert.False(t, s.IsRowSelected(-1))
	assert.Nil(t, s.RowUserData(5))
}

func TestColumnOwnerResolvesIndex(t *testing.T) {
	s := newStore(t, 3)
	s.SetColumnOwner(reversedOwner{ids: []store.ColumnID{1, 2, 3}})
	s.SetRowCount(1)

	require.True(t, s.SetCellText(0, 0, "first display column"))
	c, ok := s.CellByID(0, 3)
	require.True(t, ok)
	assert.Equal(t, "first display column", c.Text)
	assert.Equal(t, store.ColumnID(3), s.ResolveColumn(0))
	assert.Equal(t, store.MetaColumn, s.ResolveColumn(3))
}

func TestCheckState(t *testing.T) {
	tests := []struct {
		name    string
		rows    int
		checked []int
		want    store.CheckState
	}{
		{name: "no rows", rows: 0, want: store.CheckNone},
		{name: "none checked", rows: 3, want: store.CheckUnchecked},
		{name: "some checked", rows: 3, checked: []int{1}, want: store.CheckMixed},
		{name: "all checked", rows: 2, checked: []int{0, 1}, want: store.CheckChecked},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newStore(t, 1)
			s.SetRowCount(tc.rows)
			for _, r := range tc.checked {
				require.True(t, s.SetCellChecked(r, 0, true))
			}
			assert.Equal(t, tc.want, s.CheckState(1))
			assert.Equal(t, tc.checked, nilIfEmpty(s.CheckedRows(1)))
		})
	}
}

func nilIfEmpty(rows []int) []int {
	if len(rows) == 0 {
		return nil
	}
	return rows
}

func TestSetColumnCheckAll(t *testing.T) {
	s := newStore(t, 2)
	s.SetRowCount(3)
	s.SetCellChecked(1, 1, true)

	require.True(t, s.SetColumnCheckAll(2, true))
	assert.True(t, s.HasChecked(2))
	assert.False(t, s.HasUnchecked(2))
	assert.Equal(t, store.CheckChecked, s.CheckState(2))

	require.True(t, s.SetColumnCheckAll(2, false))
	assert.Equal(t, store.CheckUnchecked, s.CheckState(2))
	assert.False(t, s.SetColumnCheckAll(store.MetaColumn, true))
}

func TestRowMetadata(t *testing.T) {
	s := newStore(t, 1)
	s.SetRowCount(4)

	require.True(t, s.SetRowSelected(1, true))
	require.True(t, s.SetRowSelected(3, true))
	require.True(t, s.SetRowChecked(2, true))
	require.True(t, s.SetRowUserData(0, "payload"))

	assert.Equal(t, []int{1, 3}, s.SelectedRows())
	assert.True(t, s.IsRowChecked(2))
	assert.False(t, s.IsRowChecked(1))
	assert.Equal(t, "payload", s.RowUserData(0))

	s.DeleteRow(0)
	assert.Equal(t, []int{0, 2}, s.SelectedRows(), "metadata shifts with rows")

	s.ClearRowSelection()
	assert.Empty(t, s.SelectedRows())
}

func TestCheckStateString(t *testing.T) {
	assert.Equal(t, "mixed", store.CheckMixed.String())
	assert.Equal(t, "none", store.CheckNone.String())
}

func BenchmarkSortByColumn(b *testing.B) {
	s := store.New(nil)
	for id := store.ColumnID(1); id <= 4; id++ {
		s.AddColumn(id)
	}
	for i := range 10000 {
		s.AppendRow(store.Row{1: store.NewCell(fmt.Sprintf("%05d", (i*7919)%10000))})
	}
	for i := 0; b.Loop(); i++ {
		s.SortByColumn(1, i%2 == 0, nil)
	}
}
