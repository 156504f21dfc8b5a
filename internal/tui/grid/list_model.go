package grid

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/tilegrid/internal/header"
	"github.com/rshade/tilegrid/internal/layout"
	"github.com/rshade/tilegrid/internal/listctrl"
	"github.com/rshade/tilegrid/internal/store"
	"github.com/rshade/tilegrid/internal/window"
)

// headerLines is the number of lines above the list body.
const headerLines = 1

// statusLines is the number of status lines below the list body.
const statusLines = 1

// dataView is the optional capability of a row item that kept its bound
// data.
type dataView interface {
	Data() listctrl.RowData
}

// ListModel is the bubbletea front end of a list control.
type ListModel struct {
	ctrl     *listctrl.Control
	keys     KeyMap
	help     help.Model
	printer  *message.Printer
	logger   zerolog.Logger
	width    int
	height   int
	focusCol int
	status   string
}

// NewListModel wraps ctrl. The control's viewport is sized on the first
// tea.WindowSizeMsg.
func NewListModel(ctrl *listctrl.Control, logger zerolog.Logger) *ListModel {
	return &ListModel{
		ctrl:    ctrl,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		printer: message.NewPrinter(language.English),
		logger:  logger,
	}
}

// Control returns the wrapped list control.
func (m *ListModel) Control() *listctrl.Control { return m.ctrl }

// FocusedColumn returns the display index of the focused column.
func (m *ListModel) FocusedColumn() int { return m.focusCol }

// Status returns the last status message.
func (m *ListModel) Status() string { return m.status }

// Init initializes the model (required for tea.Model interface).
func (m *ListModel) Init() tea.Cmd {
	return nil
}

// Update handles keyboard and resize messages.
func (m *ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil
	}
	return m, nil
}

func (m *ListModel) resize() {
	helpHeight := lipgloss.Height(m.help.View(m.keys))
	body := max(m.height-headerLines-statusLines-helpHeight, 1)
	m.ctrl.SetViewport(layout.Rect{Width: int32(m.width), Height: int32(body)})
}

// handleKeyMsg processes keyboard input for navigation and list commands.
//
//nolint:gocognit,cyclop // Key handling inherently requires multiple branches.
func (m *ListModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	sel := m.ctrl.Selection()
	cols := m.ctrl.Header().ColumnCount()
	rowHeight := m.ctrl.Window().Layout().RowHeight()
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		sel.SelectPrevious()
	case key.Matches(msg, m.keys.Down):
		sel.SelectNext()
	case key.Matches(msg, m.keys.PageUp):
		sel.SelectPage(-1)
	case key.Matches(msg, m.keys.PageDown):
		sel.SelectPage(1)
	case key.Matches(msg, m.keys.Home):
		sel.SelectFirst()
	case key.Matches(msg, m.keys.End):
		sel.SelectLast()
	case key.Matches(msg, m.keys.ScrollUp):
		m.ctrl.ScrollBy(-rowHeight)
	case key.Matches(msg, m.keys.ScrollDown):
		m.ctrl.ScrollBy(rowHeight)
	case key.Matches(msg, m.keys.NextColumn, m.keys.Right):
		if cols > 0 {
			m.focusCol = (m.focusCol + 1) % cols
		}
	case key.Matches(msg, m.keys.PrevColumn, m.keys.Left):
		if cols > 0 {
			m.focusCol = (m.focusCol + cols - 1) % cols
		}
	case key.Matches(msg, m.keys.Sort):
		if !m.ctrl.ToggleSort(m.focusCol) {
			m.status = "column is not sortable"
		}
	case key.Matches(msg, m.keys.Check):
		m.toggleCheck()
	case key.Matches(msg, m.keys.CheckAll):
		if !m.ctrl.ToggleHeaderCheck(m.focusCol) {
			m.status = "column has no check box"
		}
	case key.Matches(msg, m.keys.AutoFit):
		m.ctrl.AutoFitColumn(m.focusCol)
	case key.Matches(msg, m.keys.Delete):
		if sel.HasSelection() {
			m.ctrl.DeleteRow(sel.Selected())
		}
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
	}
	return m, nil
}

func (m *ListModel) toggleCheck() {
	row := m.ctrl.Selection().Selected()
	col, ok := m.ctrl.Header().Column(m.focusCol)
	if row == window.InvalidIndex || !ok || !col.Checkbox {
		m.status = "nothing to check"
		return
	}
	cell, _ := m.ctrl.Store().CellByID(row, col.ID)
	m.ctrl.SetCellChecked(row, m.focusCol, !cell.Checked)
}

// View renders the header, the materialized rows, the status line and help.
func (m *ListModel) View() string {
	win := m.ctrl.Window()
	var blocks []block
	win.VisibleItems(func(row int, item window.Item) {
		var data listctrl.RowData
		if v, ok := item.(dataView); ok {
			data = v.Data()
		} else {
			data = m.ctrl.Row(row)
		}
		blocks = append(blocks, newBlock(item.Pos(), m.renderRow(data)))
	})

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		compose(int(win.Viewport().Height), blocks),
		m.renderStatus(),
		m.help.View(m.keys),
	)
}

func (m *ListModel) renderHeader() string {
	h := m.ctrl.Header()
	sort := h.Sort()
	parts := make([]string, 0, h.ColumnCount())
	for i, col := range h.Columns() {
		title := col.Title
		if col.Checkbox {
			title = checkBox(m.ctrl.HeaderCheckState(i)) + " " + title
		}
		if sort.Column == col.ID {
			arrow := arrowDown
			if sort.Ascending {
				arrow = arrowUp
			}
			title += " " + SortStyle.Render(arrow)
		}
		style := HeaderStyle
		if i == m.focusCol {
			style = FocusedHeader
		}
		parts = append(parts, style.Render(fitStyled(title, int(col.Width))))
	}
	return strings.Join(parts, " ")
}

func (m *ListModel) renderRow(data listctrl.RowData) string {
	parts := make([]string, 0, len(data.Cells))
	for _, c := range data.Cells {
		parts = append(parts, renderCell(c))
	}
	line := strings.Join(parts, " ")
	if data.Selected {
		return SelectedStyle.Render(line)
	}
	return RowStyle.Render(line)
}

func renderCell(c listctrl.CellData) string {
	text := c.Cell.Text
	if !c.Present {
		text = ""
	}
	if c.Column.Checkbox {
		box := boxUnchecked
		if c.Cell.Checked {
			box = boxChecked
		}
		text = box + " " + text
	}
	return fit(text, int(c.Column.Width))
}

func checkBox(s store.CheckState) string {
	switch s {
	case store.CheckChecked:
		return boxChecked
	case store.CheckMixed:
		return boxMixed
	default:
		return boxUnchecked
	}
}

// fitStyled pads s, which may hold styled fragments, to width cells.
func fitStyled(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func (m *ListModel) renderStatus() string {
	win := m.ctrl.Window()
	stats := win.Stats()
	row := "-"
	if sel := m.ctrl.Selection(); sel.HasSelection() {
		row = m.printer.Sprintf("%d", sel.Selected()+1)
	}
	line := m.printer.Sprintf("row %s/%d  top %d  pool %d  fills %d",
		row, m.ctrl.ElementCount(), win.TopElementIndex(), win.ItemCount(), stats.Fills)
	if m.status != "" {
		line += "  " + m.status
	}
	return StatusStyle.Render(line)
}

// DemoColumns returns the columns of the generated demo table.
func DemoColumns(n int) []header.Column {
	titles := []string{"Name", "Kind", "Size", "Owner", "Region", "Tier"}
	cols := make([]header.Column, 0, n)
	for i := range n {
		title := titles[i%len(titles)]
		if i >= len(titles) {
			title = message.NewPrinter(language.English).Sprintf("%s %d", title, i/len(titles)+1)
		}
		cols = append(cols, header.Column{
			Title:    title,
			Width:    14,
			Sortable: true,
			Checkbox: i == 0,
		})
	}
	return cols
}
