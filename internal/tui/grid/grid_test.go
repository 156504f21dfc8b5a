package grid_test

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/tilegrid/internal/layout"
	"github.com/rshade/tilegrid/internal/listctrl"
	"github.com/rshade/tilegrid/internal/selection"
	"github.com/rshade/tilegrid/internal/source"
	"github.com/rshade/tilegrid/internal/tui/grid"
	"github.com/rshade/tilegrid/internal/uictx"
	"github.com/rshade/tilegrid/internal/window"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newListModel(t *testing.T, rows int) *grid.ListModel {
	t.Helper()
	ctx := uictx.New(uictx.WithRenderFactory(grid.CellWidthFactory{}))
	ctrl := listctrl.New(ctx)
	for _, col := range grid.DemoColumns(3) {
		ctrl.AppendColumn(col)
	}
	for i := range rows {
		ctrl.AppendRow(fmt.Sprintf("item-%03d", i), "kind", fmt.Sprintf("%d", rows-i))
	}
	m := grid.NewListModel(ctrl, zerolog.Nop())
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	return m
}

func TestListModel_ResizeSetsViewport(t *testing.T) {
	m := newListModel(t, 50)

	vp := m.Control().Window().Viewport()
	assert.Equal(t, int32(80), vp.Width)
	assert.Positive(t, vp.Height)
	assert.Less(t, vp.Height, int32(20))
	assert.Less(t, m.Control().Window().ItemCount(), 50)
}

func TestListModel_Navigation(t *testing.T) {
	m := newListModel(t, 50)
	sel := m.Control().Selection()

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 0, sel.Selected())

	m.Update(runes("j"))
	assert.Equal(t, 1, sel.Selected())

	m.Update(runes("k"))
	assert.Equal(t, 0, sel.Selected())

	m.Update(runes("G"))
	assert.Equal(t, 49, sel.Selected())
	assert.True(t, m.Control().IsElementDisplay(49))
	assert.Contains(t, m.View(), "row 50/50")

	m.Update(runes("g"))
	assert.Equal(t, 0, sel.Selected())
	assert.Equal(t, int64(0), m.Control().Window().ScrollPosition())
}

func TestListModel_ScrollKeepsSelection(t *testing.T) {
	m := newListModel(t, 50)
	m.Update(tea.KeyMsg{Type: tea.KeyDown})

	for range 30 {
		m.Update(runes("J"))
	}
	assert.Positive(t, m.Control().Window().ScrollPosition())
	assert.Equal(t, 0, m.Control().Selection().Selected())
}

func TestListModel_ColumnFocusAndSort(t *testing.T) {
	m := newListModel(t, 5)

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 1, m.FocusedColumn())
	m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, 2, m.FocusedColumn())

	m.Update(runes("s"))
	sort := m.Control().Header().Sort()
	require.True(t, sort.Sorted())
	assert.True(t, sort.Ascending)
	assert.Equal(t, "item-004", m.Control().CellText(0, 0))
	assert.Contains(t, m.View(), "▲")

	m.Update(runes("s"))
	assert.False(t, m.Control().Header().Sort().Ascending)
	assert.Equal(t, "item-000", m.Control().CellText(0, 0))
	assert.Contains(t, m.View(), "▼")
}

func TestListModel_Checks(t *testing.T) {
	m := newListModel(t, 3)
	ctrl := m.Control()

	m.Update(tea.KeyMsg{Type: tea.KeySpace})
	assert.Equal(t, "nothing to check", m.Status())

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeySpace})
	assert.Equal(t, []int{0}, ctrl.CheckedRows(0))
	assert.Contains(t, m.View(), "[-]")

	m.Update(runes("a"))
	assert.Equal(t, []int{0, 1, 2}, ctrl.CheckedRows(0))
	m.Update(runes("a"))
	assert.Empty(t, ctrl.CheckedRows(0))

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m.Update(runes("a"))
	assert.Equal(t, "column has no check box", m.Status())
}

func TestListModel_DeleteAdvancesSelection(t *testing.T) {
	m := newListModel(t, 3)
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, 1, m.Control().Selection().Selected())

	m.Update(runes("d"))
	assert.Equal(t, 2, m.Control().ElementCount())
	assert.Equal(t, 1, m.Control().Selection().Selected())
	assert.Equal(t, "item-002", m.Control().CellText(1, 0))
}

func TestListModel_Quit(t *testing.T) {
	m := newListModel(t, 1)

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
}

func TestListModel_ViewRendersVisibleRowsOnly(t *testing.T) {
	m := newListModel(t, 200)

	out := m.View()
	assert.Contains(t, out, "item-000")
	assert.NotContains(t, out, "item-150")
	assert.Contains(t, out, "Name")
}

func newTileModel(t *testing.T, tiles ...grid.Tile) *grid.TileModel {
	t.Helper()
	return newTileModelWith(t, []selection.Option{selection.WithTrackOffscreen(true)}, tiles...)
}

func newTileModelWith(t *testing.T, selOpts []selection.Option, tiles ...grid.Tile) *grid.TileModel {
	t.Helper()
	ctx := uictx.New(uictx.WithRenderFactory(grid.CellWidthFactory{}))
	opts := layout.Options{ItemWidth: 10, ItemHeight: 4, MarginX: 1, MarginY: 0}
	m := grid.NewTileModel(ctx, opts, nil, selOpts, tiles...)
	// 32 cells fit three 10-wide tiles with margins; 12 lines fit three rows.
	m.SetViewport(layout.Rect{Width: 32, Height: 12})
	return m
}

func tiles(n int) []grid.Tile {
	out := make([]grid.Tile, n)
	for i := range out {
		out[i] = grid.Tile{Title: fmt.Sprintf("tile %d", i)}
	}
	return out
}

func TestTileModel_Layout(t *testing.T) {
	m := newTileModel(t, tiles(30)...)

	assert.Equal(t, 3, m.Window().Columns())
	assert.LessOrEqual(t, m.Window().ItemCount(), 15)

	item, ok := m.Window().ElementItem(4).(*grid.TileItem)
	require.True(t, ok)
	assert.Equal(t, layout.Rect{X: 11, Y: 4, Width: 10, Height: 4}, item.Pos())
	assert.Equal(t, "tile 4", item.Tile().Title)
}

func TestTileModel_Navigation(t *testing.T) {
	ts := tiles(30)
	ts[4].Disabled = true
	m := newTileModel(t, ts...)
	sel := m.Selection()

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 0, sel.Selected())

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 1, sel.Selected())

	// Straight down lands on the disabled tile 4, so the next one is taken.
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 5, sel.Selected())

	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 2, sel.Selected())

	m.Update(tea.KeyMsg{Type: tea.KeyEnd})
	assert.Equal(t, 29, sel.Selected())
	assert.True(t, m.Window().IsElementDisplay(29))

	item, ok := m.Window().ElementItem(29).(*grid.TileItem)
	require.True(t, ok)
	assert.Contains(t, m.View(), "tile 29")
	assert.Positive(t, item.Binds())
}

func TestTileModel_RemoveFollowsSource(t *testing.T) {
	m := newTileModel(t, tiles(5)...)
	m.Update(tea.KeyMsg{Type: tea.KeyEnd})
	require.Equal(t, 4, m.Selection().Selected())

	m.Update(runes("d"))
	assert.Equal(t, 4, m.Tiles().Len())
	assert.Equal(t, 3, m.Selection().Selected())

	m.Tiles().Insert(0, grid.Tile{Title: "new"})
	assert.Equal(t, 4, m.Selection().Selected())
	assert.Equal(t, window.InvalidIndex, m.Window().ElementIndexToItemIndex(9))
}

// shownSelected returns the elements whose pooled tile renders as selected.
func shownSelected(m *grid.TileModel) []int {
	var out []int
	m.Window().VisibleItems(func(elementIndex int, item window.Item) {
		if ti, ok := item.(*grid.TileItem); ok && ti.Selected() {
			out = append(out, elementIndex)
		}
	})
	return out
}

func TestTileModel_SelectedTileFollowsMutations(t *testing.T) {
	tests := []struct {
		name   string
		policy selection.DeletePolicy
		mutate func(ts *source.Slice[grid.Tile])
		want   int
	}{
		{
			name:   "insert before selection",
			mutate: func(ts *source.Slice[grid.Tile]) { ts.Insert(0, grid.Tile{Title: "new"}) },
			want:   4,
		},
		{
			name:   "remove before selection",
			mutate: func(ts *source.Slice[grid.Tile]) { ts.Remove(1) },
			want:   2,
		},
		{
			name:   "remove selected, advance",
			mutate: func(ts *source.Slice[grid.Tile]) { ts.Remove(3) },
			want:   3,
		},
		{
			name:   "remove selected, clear",
			policy: selection.ClearOnDelete,
			mutate: func(ts *source.Slice[grid.Tile]) { ts.Remove(3) },
			want:   window.InvalidIndex,
		},
		{
			name:   "reset past selection",
			mutate: func(ts *source.Slice[grid.Tile]) { ts.Reset(tiles(2)) },
			want:   window.InvalidIndex,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := newTileModelWith(t, []selection.Option{selection.WithDeletePolicy(tc.policy)}, tiles(9)...)
			require.True(t, m.Selection().SelectItem(3, true, true))
			require.Equal(t, []int{3}, shownSelected(m))

			tc.mutate(m.Tiles())

			sel := m.Selection()
			assert.Equal(t, tc.want, sel.Selected())
			assert.Less(t, sel.Selected(), m.Tiles().Len())
			if tc.want == window.InvalidIndex {
				assert.Empty(t, shownSelected(m))
			} else {
				assert.Equal(t, []int{tc.want}, shownSelected(m))
			}
		})
	}
}

func TestCellWidthFactory(t *testing.T) {
	f := grid.CellWidthFactory{}
	assert.Equal(t, 4, f.TextWidth("日本"))
	assert.Equal(t, 3, f.TextWidth("abc"))
}
