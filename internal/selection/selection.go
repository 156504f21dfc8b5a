// Package selection implements single selection and keyboard navigation
// over the elements of a virtualized list.
//
// The model keeps only the selected element index. Whatever the selection
// means visually is delegated to a Target, which also decides whether an
// element can be selected at all.
package selection

import (
	"github.com/rs/zerolog"

	"github.com/rshade/tilegrid/internal/uictx"
	"github.com/rshade/tilegrid/internal/window"
)

const component = "selection"

// Target is the list the model selects in.
type Target interface {
	ElementCount() int
	// IsSelectable reports whether the element may be selected: when its
	// item is materialized it must be visible and enabled.
	IsSelectable(elementIndex int) bool
	IsElementDisplay(elementIndex int) bool
	EnsureVisible(elementIndex int, toTop bool)
	// SetElementSelected reflects the selection on the element.
	SetElementSelected(elementIndex int, selected bool)
	// PageSize is the number of elements a page step moves.
	PageSize() int
}

// Listener is notified of selection changes made with triggerEvent set.
type Listener interface {
	OnSelect(elementIndex int)
	OnUnselect(elementIndex int)
}

// Enabler is the optional capability of an item that can be disabled.
// Items without it are always enabled.
type Enabler interface {
	IsEnabled() bool
}

// ItemSelectable reports whether a materialized item accepts selection. A nil
// item (not materialized) is selectable.
func ItemSelectable(item window.Item) bool {
	if item == nil {
		return true
	}
	if !item.IsVisible() {
		return false
	}
	if e, ok := item.(Enabler); ok {
		return e.IsEnabled()
	}
	return true
}

// DeletePolicy decides what happens when the selected element is removed.
type DeletePolicy int

const (
	// AdvanceOnDelete moves the selection to the next selectable element, or
	// the previous one at the end of the list.
	AdvanceOnDelete DeletePolicy = iota
	// ClearOnDelete drops the selection.
	ClearOnDelete
)

// String returns the config name of the policy.
func (p DeletePolicy) String() string {
	if p == ClearOnDelete {
		return "clear"
	}
	return "advance"
}

// ParseDeletePolicy maps a config name to a DeletePolicy.
func ParseDeletePolicy(s string) (DeletePolicy, bool) {
	switch s {
	case "", "advance":
		return AdvanceOnDelete, true
	case "clear":
		return ClearOnDelete, true
	default:
		return AdvanceOnDelete, false
	}
}

// Option configures a Model.
type Option func(*Model)

// WithDeletePolicy sets the delete policy.
func WithDeletePolicy(p DeletePolicy) Option {
	return func(m *Model) { m.policy = p }
}

// WithTrackOffscreen keeps the selection when its element scrolls out of
// the materialized window.
func WithTrackOffscreen(track bool) Option {
	return func(m *Model) { m.trackOffscreen = track }
}

// WithListener registers a listener.
func WithListener(l Listener) Option {
	return func(m *Model) { m.AddListener(l) }
}

// Model is the single-selection state.
type Model struct {
	target         Target
	logger         zerolog.Logger
	selected       int
	focused        bool
	policy         DeletePolicy
	trackOffscreen bool
	listeners      []Listener
}

// New creates a model with no selection.
func New(ctx *uictx.Context, target Target, opts ...Option) *Model {
	if ctx == nil {
		ctx = uictx.Default()
	}
	m := &Model{
		target:   target,
		logger:   ctx.Logger(component),
		selected: window.InvalidIndex,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AddListener registers l.
func (m *Model) AddListener(l Listener) {
	if l != nil {
		m.listeners = append(m.listeners, l)
	}
}

// Selected returns the selected element, or window.InvalidIndex.
func (m *Model) Selected() int { return m.selected }

// HasSelection reports whether an element is selected.
func (m *Model) HasSelection() bool { return m.selected != window.InvalidIndex }

// Focused reports whether the last selection took focus.
func (m *Model) Focused() bool { return m.focused }

// DeletePolicy returns the configured delete policy.
func (m *Model) DeletePolicy() DeletePolicy { return m.policy }

// SelectItem selects the element at index. Selecting the current element
// only scrolls it into view; window.InvalidIndex clears the selection. An
// element that is out of range or not selectable leaves the selection
// unchanged and returns false. triggerEvent gates listener calls.
func (m *Model) SelectItem(index int, takeFocus, triggerEvent bool) bool {
	if index != window.InvalidIndex && index == m.selected {
		m.target.EnsureVisible(index, false)
		m.focused = m.focused || takeFocus
		return true
	}
	if index == window.InvalidIndex {
		m.clear(triggerEvent)
		return true
	}
	if index < 0 || index >= m.target.ElementCount() || !m.target.IsSelectable(index) {
		return false
	}

	m.clear(triggerEvent)
	m.selected = index
	m.focused = takeFocus
	m.target.SetElementSelected(index, true)
	m.target.EnsureVisible(index, false)
	m.logger.Debug().Int("element", index).Bool("event", triggerEvent).Msg("selected")
	if triggerEvent {
		for _, l := range m.listeners {
			l.OnSelect(index)
		}
	}
	return true
}

func (m *Model) clear(triggerEvent bool) {
	old := m.selected
	if old == window.InvalidIndex {
		return
	}
	m.selected = window.InvalidIndex
	m.target.SetElementSelected(old, false)
	if triggerEvent {
		for _, l := range m.listeners {
			l.OnUnselect(old)
		}
	}
}

// Reset forgets the selection without touching the target or listeners.
// It is used after the elements were reordered underneath the model.
func (m *Model) Reset() { m.selected = window.InvalidIndex }

// FindSelectable scans from start in the given direction and returns the
// first selectable element, or window.InvalidIndex.
func (m *Model) FindSelectable(start int, forward bool) int {
	count := m.target.ElementCount()
	step := 1
	if !forward {
		step = -1
	}
	for i := start; i >= 0 && i < count; i += step {
		if m.target.IsSelectable(i) {
			return i
		}
	}
	return window.InvalidIndex
}

func (m *Model) selectFound(index int) bool {
	if index == window.InvalidIndex {
		return false
	}
	return m.SelectItem(index, true, true)
}

// SelectNext selects the next selectable element after the selection, or
// the first one when nothing is selected.
func (m *Model) SelectNext() bool {
	start := 0
	if m.HasSelection() {
		start = m.selected + 1
	}
	return m.selectFound(m.FindSelectable(start, true))
}

// SelectPrevious selects the previous selectable element, or the last one
// when nothing is selected.
func (m *Model) SelectPrevious() bool {
	start := m.target.ElementCount() - 1
	if m.HasSelection() {
		start = m.selected - 1
	}
	return m.selectFound(m.FindSelectable(start, false))
}

// SelectFirst selects the first selectable element.
func (m *Model) SelectFirst() bool {
	return m.selectFound(m.FindSelectable(0, true))
}

// SelectLast selects the last selectable element.
func (m *Model) SelectLast() bool {
	return m.selectFound(m.FindSelectable(m.target.ElementCount()-1, false))
}

// SelectPage moves the selection by pages (negative moves up). The landing
// element is the nearest selectable one in the direction of travel, or
// behind it when none is left.
func (m *Model) SelectPage(pages int) bool {
	count := m.target.ElementCount()
	if count == 0 || pages == 0 {
		return false
	}
	from := max(m.selected, 0)
	to := min(max(from+pages*max(m.target.PageSize(), 1), 0), count-1)
	forward := pages > 0
	idx := m.FindSelectable(to, forward)
	if idx == window.InvalidIndex {
		idx = m.FindSelectable(to, !forward)
	}
	return m.selectFound(idx)
}

// ElementRemoved updates the selection after the element at index was
// removed from the data.
func (m *Model) ElementRemoved(index int) {
	switch {
	case !m.HasSelection() || index > m.selected:
		return
	case index < m.selected:
		m.move(m.selected - 1)
		return
	}

	m.selected = window.InvalidIndex
	if index < m.target.ElementCount() {
		// the element that took the removed one's place
		m.target.SetElementSelected(index, false)
	}
	for _, l := range m.listeners {
		l.OnUnselect(index)
	}
	if m.policy == ClearOnDelete {
		return
	}
	next := m.FindSelectable(index, true)
	if next == window.InvalidIndex {
		next = m.FindSelectable(index-1, false)
	}
	if next != window.InvalidIndex {
		m.SelectItem(next, m.focused, true)
	}
}

// ElementInserted updates the selection after an element was inserted at
// index.
func (m *Model) ElementInserted(index int) {
	if m.HasSelection() && index <= m.selected {
		m.move(m.selected + 1)
	}
}

// move shifts the selection to the new index of the same element. Both
// indexes are pushed to the target since their elements changed.
func (m *Model) move(index int) {
	old := m.selected
	m.selected = index
	m.target.SetElementSelected(old, false)
	m.target.SetElementSelected(index, true)
}

// CountChanged drops a selection that no longer refers to an element.
// Listeners get OnUnselect; the target is not told since the element is
// gone.
func (m *Model) CountChanged(count int) {
	if m.HasSelection() && m.selected >= count {
		m.drop()
	}
}

// Resync adopts index as the selection after the elements changed
// underneath the model without per-element notifications. It neither
// scrolls nor touches the target. An out-of-range index drops the
// selection and notifies listeners.
func (m *Model) Resync(index int) {
	if index < 0 || index >= m.target.ElementCount() {
		if m.HasSelection() {
			m.drop()
		}
		return
	}
	m.selected = index
}

func (m *Model) drop() {
	old := m.selected
	m.selected = window.InvalidIndex
	m.logger.Debug().Int("element", old).Msg("selection dropped")
	for _, l := range m.listeners {
		l.OnUnselect(old)
	}
}

// Revalidate drops the selection once its element is no longer displayed,
// unless off-screen tracking is enabled.
func (m *Model) Revalidate() {
	if m.trackOffscreen || !m.HasSelection() {
		return
	}
	if !m.target.IsElementDisplay(m.selected) {
		m.clear(true)
	}
}
