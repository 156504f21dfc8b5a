package window

import "github.com/rshade/tilegrid/internal/layout"

// InvalidIndex is the sentinel for "no element" / "no item" in every index
// space of the engine.
const InvalidIndex = -1

// Item is the capability a pooled view exposes to the controller.
type Item interface {
	Pos() layout.Rect
	SetPos(r layout.Rect)
	IsVisible() bool
	SetVisible(visible bool)
}

// DataProvider supplies elements to the controller. FillElement binds an
// element's data onto a pooled item; it must not call back into Refresh or
// ReArrangeChild.
type DataProvider interface {
	CreateElement() Item
	FillElement(item Item, elementIndex int) bool
	ElementCount() int
}

// ScrollBar is the range/position contract of the owning container's
// vertical scroll bar.
type ScrollBar interface {
	ScrollRange() int64
	SetScrollRange(r int64)
	ScrollPos() int64
	SetScrollPos(pos int64)
}

// ScrollState is an in-memory ScrollBar.
type ScrollState struct {
	rng int64
	pos int64
}

// ScrollRange implements ScrollBar.
func (s *ScrollState) ScrollRange() int64 { return s.rng }

// SetScrollRange implements ScrollBar; the position is clamped to the new range.
func (s *ScrollState) SetScrollRange(r int64) {
	s.rng = max(r, 0)
	s.pos = min(s.pos, s.rng)
}

// ScrollPos implements ScrollBar.
func (s *ScrollState) ScrollPos() int64 { return s.pos }

// SetScrollPos implements ScrollBar.
func (s *ScrollState) SetScrollPos(pos int64) { s.pos = min(max(pos, 0), s.rng) }

// TrimPolicy selects which end of the pool shrinks when fewer items are
// needed. New items are always appended; the forced rebind that follows a
// resize renumbers every slot anyway.
type TrimPolicy int

const (
	// TrimAwayFromScroll drops items from the end farther from the last
	// scroll direction: the front when scrolling down or idle, the back when
	// scrolling up.
	TrimAwayFromScroll TrimPolicy = iota
	// TrimFront always trims the pool at slot 0.
	TrimFront
)

// String returns the config name of the policy.
func (p TrimPolicy) String() string {
	switch p {
	case TrimFront:
		return "front"
	default:
		return "away_from_scroll"
	}
}

// ParseTrimPolicy maps a config name to a TrimPolicy.
func ParseTrimPolicy(s string) (TrimPolicy, bool) {
	switch s {
	case "", "away_from_scroll":
		return TrimAwayFromScroll, true
	case "front":
		return TrimFront, true
	default:
		return TrimAwayFromScroll, false
	}
}

// Stats counts controller work since creation or the last ResetStats.
type Stats struct {
	Refreshes  int
	Rearranges int
	Rebinds    int
	Fills      int
	Creates    int
	Releases   int
}
