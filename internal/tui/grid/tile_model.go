package grid

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/tilegrid/internal/layout"
	"github.com/rshade/tilegrid/internal/selection"
	"github.com/rshade/tilegrid/internal/source"
	"github.com/rshade/tilegrid/internal/uictx"
	"github.com/rshade/tilegrid/internal/window"
)

// Tile is one element of the tile box.
type Tile struct {
	Title    string
	Detail   string
	Disabled bool
}

// TileItem is the pooled view of a tile.
type TileItem struct {
	rect     layout.Rect
	visible  bool
	tile     Tile
	selected bool
	binds    int
}

// Pos implements window.Item.
func (t *TileItem) Pos() layout.Rect { return t.rect }

// SetPos implements window.Item.
func (t *TileItem) SetPos(r layout.Rect) { t.rect = r }

// IsVisible implements window.Item.
func (t *TileItem) IsVisible() bool { return t.visible }

// SetVisible implements window.Item.
func (t *TileItem) SetVisible(v bool) { t.visible = v }

// IsEnabled implements selection.Enabler.
func (t *TileItem) IsEnabled() bool { return !t.tile.Disabled }

// Tile returns the bound tile.
func (t *TileItem) Tile() Tile { return t.tile }

// Selected reports whether the item was bound as the selected tile.
func (t *TileItem) Selected() bool { return t.selected }

// Binds returns how many times the item was filled.
func (t *TileItem) Binds() int { return t.binds }

// TileModel is a bubbletea tile box over a slice of tiles.
type TileModel struct {
	tiles   *source.Slice[Tile]
	win     *window.Controller
	sel     *selection.Model
	keys    KeyMap
	help    help.Model
	printer *message.Printer
	width   int
	height  int
}

// tileTarget adapts the tile box to selection.Target.
type tileTarget struct{ m *TileModel }

func (t tileTarget) ElementCount() int { return t.m.tiles.Len() }

func (t tileTarget) IsSelectable(i int) bool {
	if item := t.m.win.ElementItem(i); item != nil {
		return selection.ItemSelectable(item)
	}
	tile, ok := t.m.tiles.At(i)
	return ok && !tile.Disabled
}

func (t tileTarget) IsElementDisplay(i int) bool { return t.m.win.IsElementDisplay(i) }

func (t tileTarget) EnsureVisible(i int, toTop bool) { t.m.win.EnsureVisible(i, toTop) }

func (t tileTarget) SetElementSelected(i int, _ bool) { t.m.win.OnDataChanged(i, i) }

func (t tileTarget) PageSize() int { return t.m.win.VisibleRows() * t.m.win.Columns() }

// NewTileModel creates a tile box with the given layout.
func NewTileModel(ctx *uictx.Context, opts layout.Options, winOpts []window.Option,
	selOpts []selection.Option, tiles ...Tile,
) *TileModel {
	m := &TileModel{
		keys:    DefaultKeyMap(),
		help:    help.New(),
		printer: message.NewPrinter(language.English),
	}
	m.tiles = source.NewSlice(
		func() window.Item { return &TileItem{} },
		m.fillTile,
		tiles...,
	)
	m.win = window.New(ctx, layout.New(ctx, opts), m.tiles, winOpts...)
	m.sel = selection.New(ctx, tileTarget{m}, selOpts...)
	m.tiles.AddObserver(m.win)
	m.tiles.AddIndexObserver(m.sel)
	return m
}

func (m *TileModel) fillTile(item window.Item, index int, v Tile) bool {
	ti, ok := item.(*TileItem)
	if !ok {
		return false
	}
	ti.tile = v
	ti.selected = m.sel != nil && m.sel.Selected() == index
	ti.binds++
	return true
}

// Tiles returns the tile source.
func (m *TileModel) Tiles() *source.Slice[Tile] { return m.tiles }

// Window returns the window controller.
func (m *TileModel) Window() *window.Controller { return m.win }

// Selection returns the selection model.
func (m *TileModel) Selection() *selection.Model { return m.sel }

// SetViewport sizes the tile area.
func (m *TileModel) SetViewport(r layout.Rect) {
	m.win.SetViewport(r)
	m.sel.Revalidate()
}

// Init initializes the model (required for tea.Model interface).
func (m *TileModel) Init() tea.Cmd {
	return nil
}

// Update handles keyboard and resize messages.
func (m *TileModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()
	}
	return m, nil
}

func (m *TileModel) resize() {
	helpHeight := lipgloss.Height(m.help.View(m.keys))
	body := max(m.height-statusLines-helpHeight, 1)
	m.SetViewport(layout.Rect{Width: int32(m.width), Height: int32(body)})
}

// moveRow selects the nearest selectable tile one row up or down.
func (m *TileModel) moveRow(down bool) {
	if !m.sel.HasSelection() {
		m.sel.SelectFirst()
		return
	}
	step := m.win.Columns()
	if !down {
		step = -step
	}
	target := m.sel.Selected() + step
	if target < 0 || target >= m.tiles.Len() {
		return
	}
	if idx := m.sel.FindSelectable(target, down); idx != window.InvalidIndex {
		m.sel.SelectItem(idx, true, true)
	}
}

//nolint:cyclop // Key handling inherently requires multiple branches.
func (m *TileModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rowHeight := m.win.Layout().RowHeight()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.moveRow(false)
	case key.Matches(msg, m.keys.Down):
		m.moveRow(true)
	case key.Matches(msg, m.keys.Left):
		m.sel.SelectPrevious()
	case key.Matches(msg, m.keys.Right):
		m.sel.SelectNext()
	case key.Matches(msg, m.keys.PageUp):
		m.sel.SelectPage(-1)
	case key.Matches(msg, m.keys.PageDown):
		m.sel.SelectPage(1)
	case key.Matches(msg, m.keys.Home):
		m.sel.SelectFirst()
	case key.Matches(msg, m.keys.End):
		m.sel.SelectLast()
	case key.Matches(msg, m.keys.ScrollUp):
		m.win.ScrollBy(-rowHeight)
		m.sel.Revalidate()
	case key.Matches(msg, m.keys.ScrollDown):
		m.win.ScrollBy(rowHeight)
		m.sel.Revalidate()
	case key.Matches(msg, m.keys.Delete):
		if m.sel.HasSelection() {
			m.tiles.Remove(m.sel.Selected())
		}
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
	}
	return m, nil
}

// View renders the materialized tiles, a status line and help.
func (m *TileModel) View() string {
	var blocks []block
	m.win.VisibleItems(func(_ int, item window.Item) {
		ti, ok := item.(*TileItem)
		if !ok {
			return
		}
		blocks = append(blocks, newBlock(ti.Pos(), renderTile(ti)))
	})

	selected := "-"
	if m.sel.HasSelection() {
		selected = m.printer.Sprintf("%d", m.sel.Selected()+1)
	}
	status := m.printer.Sprintf("tile %s/%d  columns %d  pool %d  fills %d",
		selected, m.tiles.Len(), m.win.Columns(), m.win.ItemCount(), m.win.Stats().Fills)

	return lipgloss.JoinVertical(lipgloss.Left,
		compose(int(m.win.Viewport().Height), blocks),
		StatusStyle.Render(status),
		m.help.View(m.keys),
	)
}

func renderTile(ti *TileItem) string {
	r := ti.Pos()
	style := TileStyle
	switch {
	case ti.tile.Disabled:
		style = DisabledTileStyle
	case ti.selected:
		style = SelectedTileStyle
	}
	inner := max(int(r.Width)-2, 0)
	body := fit(ti.tile.Title, inner)
	if r.Height > 3 && ti.tile.Detail != "" {
		body += "\n" + fit(ti.tile.Detail, inner)
	}
	return style.Width(inner).Height(max(int(r.Height)-2, 0)).Render(body)
}
