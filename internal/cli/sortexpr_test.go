package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/tilegrid/internal/config"
	"github.com/rshade/tilegrid/internal/store"
)

func TestParseSortExpression(t *testing.T) {
	tests := []struct {
		name      string
		expr      string
		column    string
		ascending bool
		wantErr   bool
	}{
		{name: "column only", expr: "size", column: "size", ascending: true},
		{name: "explicit asc", expr: "name:asc", column: "name", ascending: true},
		{name: "explicit desc", expr: "name:desc", column: "name"},
		{name: "order case and spaces", expr: " Owner : DESC ", column: "Owner"},
		{name: "empty", expr: "  ", wantErr: true},
		{name: "empty column", expr: ":asc", wantErr: true},
		{name: "too many colons", expr: "a:b:c", wantErr: true},
		{name: "bad order", expr: "name:up", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			column, ascending, err := ParseSortExpression(tc.expr)
			if tc.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidSort)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.column, column)
			assert.Equal(t, tc.ascending, ascending)
		})
	}
}

func TestApplySort(t *testing.T) {
	ctrl := buildDemoControl(config.New(), 30, 4)

	require.NoError(t, applySort(ctrl, ""))
	assert.False(t, ctrl.Header().Sort().Sorted())

	require.NoError(t, applySort(ctrl, "SIZE:asc"))
	sort := ctrl.Header().Sort()
	assert.True(t, sort.Sorted())
	assert.True(t, sort.Ascending)

	// numeric, not lexical, order
	prev := -1
	for row := range ctrl.ElementCount() {
		cell, ok := ctrl.Store().CellByID(row, sort.Column)
		require.True(t, ok)
		n := mustAtoi(t, cell.Text)
		assert.GreaterOrEqual(t, n, prev)
		prev = n
	}

	require.NoError(t, applySort(ctrl, "owner:asc"))
	// owners are empty on every eleventh row and sort as ordinary text
	assert.Empty(t, ctrl.CellText(0, ownerColumn))

	err := applySort(ctrl, "colour")
	assert.ErrorIs(t, err, ErrInvalidSort)
}

func mustAtoi(t *testing.T, s string) int {
	t.Helper()
	n := 0
	for _, r := range s {
		require.True(t, r >= '0' && r <= '9', s)
		n = n*10 + int(r-'0')
	}
	return n
}

func TestDemoRow(t *testing.T) {
	row := demoRow(0, 7)
	require.Len(t, row, 7)
	assert.Equal(t, "item-00000", row[nameColumn])
	assert.Empty(t, row[ownerColumn])
	assert.Equal(t, "item-00000", row[demoColumnKinds])

	row = demoRow(12, 4)
	assert.NotEmpty(t, row[ownerColumn])
}

func TestNumericComparator(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"9", "10", -1},
		{"10", "9", 1},
		{"7", "7", 0},
		{"12", "abc", -1},
		{"abc", "12", 1},
		{"abc", "abd", -1},
	}
	for _, tc := range tests {
		got := numericComparator(store.NewCell(tc.a), store.NewCell(tc.b))
		switch {
		case tc.want < 0:
			assert.Negative(t, got, "%s vs %s", tc.a, tc.b)
		case tc.want > 0:
			assert.Positive(t, got, "%s vs %s", tc.a, tc.b)
		default:
			assert.Zero(t, got)
		}
	}
}

func TestDemoTiles(t *testing.T) {
	tiles := demoTiles(18)
	require.Len(t, tiles, 18)
	assert.Equal(t, "volume 0", tiles[0].Title)
	assert.True(t, tiles[8].Disabled)
	assert.True(t, tiles[17].Disabled)
	assert.False(t, tiles[9].Disabled)
}
