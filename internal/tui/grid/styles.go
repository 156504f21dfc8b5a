package grid

import "github.com/charmbracelet/lipgloss"

// Color palette shared by the list and tile views.
const (
	ColorHeader    = lipgloss.Color("39")
	ColorSelected  = lipgloss.Color("212")
	ColorMuted     = lipgloss.Color("241")
	ColorLabel     = lipgloss.Color("252")
	ColorChecked   = lipgloss.Color("42")
	ColorSortArrow = lipgloss.Color("214")
)

// Styles used by the views.
//
//nolint:gochecknoglobals // Immutable style definitions.
var (
	HeaderStyle   = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	FocusedHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true).Underline(true)
	RowStyle      = lipgloss.NewStyle().Foreground(ColorLabel)
	SelectedStyle = lipgloss.NewStyle().Foreground(ColorSelected).Bold(true).Reverse(true)
	DisabledStyle = lipgloss.NewStyle().Foreground(ColorMuted).Italic(true)
	CheckedStyle  = lipgloss.NewStyle().Foreground(ColorChecked)
	SortStyle     = lipgloss.NewStyle().Foreground(ColorSortArrow)
	StatusStyle   = lipgloss.NewStyle().Foreground(ColorMuted)

	TileStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted)
	SelectedTileStyle = TileStyle.BorderForeground(ColorSelected).Bold(true)
	DisabledTileStyle = TileStyle.Foreground(ColorMuted).Italic(true)
)

// Check box glyphs for cells and the header tri-state.
const (
	boxChecked   = "[x]"
	boxUnchecked = "[ ]"
	boxMixed     = "[-]"
	arrowUp      = "▲"
	arrowDown    = "▼"
)
