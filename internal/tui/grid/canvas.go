package grid

import (
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/rshade/tilegrid/internal/layout"
)

// CellWidthFactory measures text in terminal cells. It is the render
// factory of the terminal front end.
type CellWidthFactory struct{}

// TextWidth implements uictx.RenderFactory.
func (CellWidthFactory) TextWidth(s string) int { return lipgloss.Width(s) }

// block is a rendered item placed at its viewport-relative rectangle.
type block struct {
	rect  layout.Rect
	lines []string
}

func newBlock(r layout.Rect, rendered string) block {
	return block{rect: r, lines: strings.Split(rendered, "\n")}
}

type segment struct {
	x    int
	text string
}

// compose lays blocks out on a height-line canvas. Lines of a block that fall
// outside [0, height) are clipped, which is how partially scrolled rows are
// cut at the viewport edges.
func compose(height int, blocks []block) string {
	rows := make([][]segment, height)
	for _, b := range blocks {
		for i, line := range b.lines {
			y := int(b.rect.Y) + i
			if y < 0 || y >= height {
				continue
			}
			rows[y] = append(rows[y], segment{x: int(b.rect.X), text: line})
		}
	}

	var sb strings.Builder
	for y, segs := range rows {
		slices.SortFunc(segs, func(a, b segment) int { return a.x - b.x })
		cur := 0
		for _, s := range segs {
			if s.x > cur {
				sb.WriteString(strings.Repeat(" ", s.x-cur))
				cur = s.x
			}
			sb.WriteString(s.text)
			cur += lipgloss.Width(s.text)
		}
		if y < height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// fit pads or truncates s to exactly width cells.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.FillRight(runewidth.Truncate(s, width, "…"), width)
}
