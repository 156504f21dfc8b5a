package store

import (
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ColumnID is the stable identity of a column, independent of its display
// position. MetaColumn is reserved for row metadata.
type ColumnID int

// MetaColumn keys the row metadata array (selection, check state, user data).
const MetaColumn ColumnID = 0

// NoImage is the Image value of a cell without an image.
const NoImage = -1

// Cell is one stored value. Absent cells are nil, which is distinct from a
// cell holding empty text.
type Cell struct {
	Text      string
	TextColor uint32
	BgColor   uint32
	Image     int
	Checked   bool
	Selected  bool
	UserData  any
}

// NewCell returns a cell holding text and no image.
func NewCell(text string) *Cell {
	return &Cell{Text: text, Image: NoImage}
}

// Row is the per-column data of one inserted row. Missing keys and nil values
// both store an absent cell. MetaColumn may carry row metadata.
type Row map[ColumnID]*Cell

// Comparator orders two present cells. Absent cells never reach it.
type Comparator func(a, b *Cell) int

// TextComparator is the default case-sensitive lexical comparator.
func TextComparator(a, b *Cell) int {
	return strings.Compare(a.Text, b.Text)
}

// CollatorComparator compares cell text with the collation rules of tag.
// The returned comparator is not safe for concurrent use.
func CollatorComparator(tag language.Tag, opts ...collate.Option) Comparator {
	c := collate.New(tag, opts...)
	return func(a, b *Cell) int {
		return c.CompareString(a.Text, b.Text)
	}
}

// CheckState is the aggregated check state of a column.
type CheckState int

const (
	// CheckNone means the column has no rows.
	CheckNone CheckState = iota
	// CheckUnchecked means no row is checked.
	CheckUnchecked
	// CheckChecked means every row is checked.
	CheckChecked
	// CheckMixed means some rows are checked.
	CheckMixed
)

func (s CheckState) String() string {
	switch s {
	case CheckUnchecked:
		return "unchecked"
	case CheckChecked:
		return "checked"
	case CheckMixed:
		return "mixed"
	default:
		return "none"
	}
}

// Observer receives store notifications. Both callbacks run synchronously
// before the mutating call returns.
type Observer interface {
	OnCountChanged()
	OnDataChanged(start, end int)
}

// ColumnOwner maps display positions to column identities. It is usually
// the list header.
type ColumnOwner interface {
	ColumnCount() int
	ColumnID(columnIndex int) ColumnID
	ColumnIndex(id ColumnID) int
	ColumnWidth(columnIndex int) int32
}
