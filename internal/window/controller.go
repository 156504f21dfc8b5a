// Package window implements the virtualized windowing controller: it keeps a
// bounded pool of view items bound to the elements under a 64-bit scroll
// offset, recycles items when the viewport moves and asks a DataProvider to
// fill only the items whose element changed.
//
// The controller is single-threaded. Rebinding runs synchronously and must
// not be re-entered from a FillElement callback.
package window

import (
	"github.com/rs/zerolog"

	"github.com/rshade/tilegrid/internal/layout"
	"github.com/rshade/tilegrid/internal/pool"
	"github.com/rshade/tilegrid/internal/uictx"
)

const component = "window"

// Scroll directions; zero means no scroll yet.
const (
	scrollDown = 1
	scrollUp   = -1
)

// slot binds a pooled item to an element. element is InvalidIndex while the
// slot maps past the end of the data.
type slot struct {
	handle  pool.Handle
	element int
}

// Option configures a Controller.
type Option func(*Controller)

// WithTrimPolicy sets the pool trim policy.
func WithTrimPolicy(p TrimPolicy) Option {
	return func(c *Controller) { c.trim = p }
}

// WithScrollBar attaches the owning container's scroll bar.
func WithScrollBar(sb ScrollBar) Option {
	return func(c *Controller) {
		if sb != nil {
			c.scroll = sb
		}
	}
}

// Controller reconciles element count and viewport size against a bounded
// item pool.
type Controller struct {
	ctx      *uictx.Context
	layout   *layout.TileLayout
	provider DataProvider
	scroll   ScrollBar
	logger   zerolog.Logger

	items   *pool.Arena[Item]
	slots   []slot
	scratch []slot
	spare   []slot

	viewport  layout.Rect
	columns   int
	top       int
	scrollY   int64
	direction int
	bound     bool
	trim      TrimPolicy

	stats Stats
}

// New creates a controller. Call SetViewport to size the pool.
func New(ctx *uictx.Context, l *layout.TileLayout, provider DataProvider, opts ...Option) *Controller {
	if ctx == nil {
		ctx = uictx.Default()
	}
	c := &Controller{
		ctx:      ctx,
		layout:   l,
		provider: provider,
		scroll:   &ScrollState{},
		logger:   ctx.Logger(component),
		items:    pool.NewArena[Item](0),
		columns:  1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Layout returns the tile layout in use.
func (c *Controller) Layout() *layout.TileLayout { return c.layout }

// ScrollBar returns the attached scroll bar.
func (c *Controller) ScrollBar() ScrollBar { return c.scroll }

// Viewport returns the current viewport rectangle.
func (c *Controller) Viewport() layout.Rect { return c.viewport }

// Columns returns the current column count.
func (c *Controller) Columns() int { return c.columns }

// ScrollPosition returns the virtual scroll offset.
func (c *Controller) ScrollPosition() int64 { return c.scrollY }

// TopElementIndex returns the element bound to slot 0.
func (c *Controller) TopElementIndex() int { return c.top }

// ItemCount returns the pool size.
func (c *Controller) ItemCount() int { return len(c.slots) }

// Stats returns the work counters.
func (c *Controller) Stats() Stats { return c.stats }

// ResetStats zeroes the work counters.
func (c *Controller) ResetStats() { c.stats = Stats{} }

// ContentHeight returns the virtual height of all elements.
func (c *Controller) ContentHeight() int64 {
	return c.layout.ContentHeight(c.provider.ElementCount(), c.columns)
}

// VisibleRows returns how many full rows fit in the viewport (at least 1).
func (c *Controller) VisibleRows() int {
	return int(max(int64(c.viewport.Height)/c.layout.RowHeight(), 1))
}

// SetViewport resizes the viewport, recomputes the column count and
// refreshes the pool.
func (c *Controller) SetViewport(r layout.Rect) {
	c.viewport = r
	c.columns = c.layout.CalcColumns(r.Width)
	c.Refresh()
}

// Refresh recomputes the pool size for the current viewport and element
// count, grows or trims the pool, then places and fills every item.
func (c *Controller) Refresh() {
	c.stats.Refreshes++
	count := c.provider.ElementCount()
	maxItems := c.layout.MaxMaterializableItems(c.viewport.Height, c.columns)
	want := min(count, maxItems)

	c.updateScrollRange(count)
	c.resizePool(want)
	c.top = c.layout.TopElementIndex(c.scrollY, c.columns, count)
	c.bind(true)
	c.bound = true

	c.logger.Debug().
		Int("elements", count).
		Int("max_items", maxItems).
		Int("pool", len(c.slots)).
		Int("columns", c.columns).
		Int64("scroll_y", c.scrollY).
		Msg("refresh")
}

func (c *Controller) updateScrollRange(count int) {
	content := c.layout.ContentHeight(count, c.columns)
	c.scroll.SetScrollRange(max(content-int64(c.viewport.Height), 0))
	if clamped := c.clampScroll(c.scrollY); clamped != c.scrollY {
		c.scrollY = clamped
	}
	c.scroll.SetScrollPos(c.scrollY)
}

func (c *Controller) clampScroll(y int64) int64 {
	return min(max(y, 0), c.scroll.ScrollRange())
}

func (c *Controller) trimFront() bool {
	return c.trim == TrimFront || c.direction != scrollUp
}

func (c *Controller) resizePool(want int) {
	cur := len(c.slots)
	switch {
	case cur > want:
		excess := cur - want
		lo, hi := want, cur
		if c.trimFront() {
			lo, hi = 0, excess
		}
		handles := make([]pool.Handle, 0, excess)
		for _, s := range c.slots[lo:hi] {
			handles = append(handles, s.handle)
		}
		if c.trimFront() {
			c.slots = append(c.slots[:0], c.slots[excess:]...)
		} else {
			c.slots = c.slots[:want]
		}
		for _, h := range handles {
			if item, ok := c.items.Release(h); ok {
				item.SetVisible(false)
				c.stats.Releases++
			}
		}
	case cur < want:
		for i := cur; i < want; i++ {
			item := c.provider.CreateElement()
			if !c.ctx.Assert(item != nil, component, "CreateElement returned nil") {
				break
			}
			item.SetVisible(false)
			c.slots = append(c.slots, slot{handle: c.items.Alloc(item), element: InvalidIndex})
			c.stats.Creates++
		}
	}
}

// SetScrollPosition moves the virtual scroll offset, clamped to the scroll
// range. An unchanged offset is a no-op.
func (c *Controller) SetScrollPosition(y int64) {
	y = c.clampScroll(y)
	if y == c.scrollY {
		return
	}
	if y > c.scrollY {
		c.direction = scrollDown
	} else {
		c.direction = scrollUp
	}
	c.scrollY = y
	c.scroll.SetScrollPos(y)
	c.ReArrangeChild(false)
}

// ScrollBy moves the scroll offset by delta.
func (c *Controller) ScrollBy(delta int64) {
	c.SetScrollPosition(c.scrollY + delta)
}

// NeedReArrange reports whether the current item-to-element binding no
// longer covers the viewport: the first bound row starts below the viewport
// top, or the last bound row ends at or above the viewport bottom while
// more elements follow.
func (c *Controller) NeedReArrange() bool {
	if !c.bound {
		return len(c.slots) > 0
	}
	count := c.provider.ElementCount()
	if count == 0 || len(c.slots) == 0 {
		return false
	}
	first := c.top
	last := min(c.top+len(c.slots), count) - 1

	if c.layout.ElementTop(first, c.columns) > c.scrollY {
		return true
	}
	viewportBottom := c.scrollY + int64(c.viewport.Height)
	return last < count-1 && c.layout.ElementBottom(last, c.columns) <= viewportBottom
}

// ReArrangeChild rebinds the pool to the elements under the current scroll
// offset when forced or when NeedReArrange says so; otherwise it only
// re-places the items for the new offset.
func (c *Controller) ReArrangeChild(force bool) {
	c.stats.Rearranges++
	if !force && !c.NeedReArrange() {
		c.place()
		return
	}
	count := c.provider.ElementCount()
	c.top = c.layout.TopElementIndex(c.scrollY, c.columns, count)
	c.bind(force)
	c.bound = true
}

// bind maps slot i to element top+i. Unless forced, items already bound to
// an element that stays in the window keep it without a fill.
func (c *Controller) bind(force bool) {
	c.stats.Rebinds++
	count := c.provider.ElementCount()
	n := len(c.slots)

	if cap(c.scratch) < n {
		c.scratch = make([]slot, n)
	}
	next := c.scratch[:n]
	clear(next)
	spare := c.spare[:0]

	for _, s := range c.slots {
		i := s.element - c.top
		if !force && s.element != InvalidIndex && s.element < count && i >= 0 && i < n && next[i].handle.IsZero() {
			next[i] = s
			continue
		}
		spare = append(spare, s)
	}

	// spares are handed out in slot order so a forced bind keeps the pool order
	taken := 0
	for i := range next {
		if !next[i].handle.IsZero() {
			continue
		}
		s := spare[taken]
		taken++
		elem := c.top + i
		if elem < count {
			s.element = elem
			c.fill(s)
		} else {
			s.element = InvalidIndex
		}
		next[i] = s
	}

	c.spare = spare
	c.scratch = c.slots
	c.slots = next
	c.place()
}

func (c *Controller) fill(s slot) {
	item, ok := c.items.Get(s.handle)
	if !ok {
		return
	}
	c.stats.Fills++
	c.provider.FillElement(item, s.element)
}

type poolView struct{ c *Controller }

func (v poolView) Len() int { return len(v.c.slots) }

func (v poolView) At(i int) layout.Placeable {
	item, ok := v.c.items.Get(v.c.slots[i].handle)
	if !ok {
		return nil
	}
	return item
}

func (c *Controller) place() {
	c.layout.PlaceItems(poolView{c}, layout.Placement{
		Top:      c.top,
		Count:    c.provider.ElementCount(),
		Columns:  c.columns,
		ScrollY:  c.scrollY,
		Viewport: c.viewport,
	})
}

// OnCountChanged refreshes the pool after the element count changed.
func (c *Controller) OnCountChanged() {
	c.Refresh()
}

// OnDataChanged refills the materialized items bound to elements in
// [start, end].
func (c *Controller) OnDataChanged(start, end int) {
	if start > end {
		start, end = end, start
	}
	for _, s := range c.slots {
		if s.element != InvalidIndex && s.element >= start && s.element <= end {
			c.fill(s)
		}
	}
}

// EnsureVisible scrolls the element into view. With toTop the element's row
// is aligned to the viewport top; otherwise the offset moves by the minimal
// amount, and not at all if the row is already fully visible.
func (c *Controller) EnsureVisible(elementIndex int, toTop bool) {
	count := c.provider.ElementCount()
	if elementIndex < 0 || elementIndex >= count {
		return
	}
	rowTop := c.layout.ElementTop(elementIndex, c.columns)
	rowBottom := c.layout.ElementBottom(elementIndex, c.columns)
	viewportHeight := int64(c.viewport.Height)

	var target int64
	switch {
	case toTop:
		target = rowTop
	case rowTop >= c.scrollY && rowBottom <= c.scrollY+viewportHeight:
		return
	case rowTop < c.scrollY:
		target = rowTop
	default:
		target = rowBottom - viewportHeight
	}
	c.SetScrollPosition(min(max(target, 0), c.scroll.ScrollRange()))
}

// IsElementDisplay reports whether the element is materialized, visible and
// intersects the viewport.
func (c *Controller) IsElementDisplay(elementIndex int) bool {
	item := c.Item(c.ElementIndexToItemIndex(elementIndex))
	if item == nil || !item.IsVisible() {
		return false
	}
	return item.Pos().Intersects(c.viewport)
}

// ElementIndexToItemIndex returns the pool slot bound to the element, or
// InvalidIndex when it is not materialized.
func (c *Controller) ElementIndexToItemIndex(elementIndex int) int {
	if elementIndex < 0 || elementIndex >= c.provider.ElementCount() {
		return InvalidIndex
	}
	i := elementIndex - c.top
	if i < 0 || i >= len(c.slots) {
		return InvalidIndex
	}
	return i
}

// ItemIndexToElementIndex returns the element bound to a pool slot, or
// InvalidIndex.
func (c *Controller) ItemIndexToElementIndex(itemIndex int) int {
	if itemIndex < 0 || itemIndex >= len(c.slots) {
		return InvalidIndex
	}
	elem := c.top + itemIndex
	if elem >= c.provider.ElementCount() {
		return InvalidIndex
	}
	return elem
}

// Item returns the pooled item in slot itemIndex, or nil.
func (c *Controller) Item(itemIndex int) Item {
	if itemIndex < 0 || itemIndex >= len(c.slots) {
		return nil
	}
	item, ok := c.items.Get(c.slots[itemIndex].handle)
	if !ok {
		return nil
	}
	return item
}

// ItemHandle returns the arena handle of slot itemIndex.
func (c *Controller) ItemHandle(itemIndex int) (pool.Handle, bool) {
	if itemIndex < 0 || itemIndex >= len(c.slots) {
		return pool.Handle{}, false
	}
	return c.slots[itemIndex].handle, true
}

// ElementItem returns the item bound to elementIndex, or nil.
func (c *Controller) ElementItem(elementIndex int) Item {
	return c.Item(c.ElementIndexToItemIndex(elementIndex))
}

// VisibleItems calls fn for each visible item in slot order.
func (c *Controller) VisibleItems(fn func(elementIndex int, item Item)) {
	for i, s := range c.slots {
		if s.element == InvalidIndex {
			continue
		}
		item := c.Item(i)
		if item != nil && item.IsVisible() {
			fn(s.element, item)
		}
	}
}
