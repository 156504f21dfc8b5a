// Package pool provides a generational arena for pooled view items.
//
// Items are addressed by Handle (slot index plus generation) rather than by
// pointer identity. Releasing a slot bumps its generation, so a handle kept
// across a release no longer resolves; recycling an item for a different
// element is a handle reassignment, not a lifetime operation.
package pool

// Handle addresses one arena slot at one generation. The zero Handle is
// never valid.
type Handle struct {
	slot uint32
	gen  uint32
}

// Slot returns the slot index of the handle.
func (h Handle) Slot() int { return int(h.slot) }

// IsZero reports whether h is the zero handle.
func (h Handle) IsZero() bool { return h.gen == 0 }

type entry[T any] struct {
	value T
	gen   uint32
	live  bool
}

// Arena stores values of T in reusable slots.
type Arena[T any] struct {
	entries []entry[T]
	free    []uint32
	live    int
}

// NewArena creates an arena with room for capacity values.
func NewArena[T any](capacity int) *Arena[T] {
	return &Arena[T]{entries: make([]entry[T], 0, max(capacity, 0))}
}

// Alloc stores v and returns its handle, reusing a released slot if any.
func (a *Arena[T]) Alloc(v T) Handle {
	var slot uint32
	if n := len(a.free); n > 0 {
		slot = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		slot = uint32(len(a.entries))
		a.entries = append(a.entries, entry[T]{})
	}
	e := &a.entries[slot]
	e.gen++
	if e.gen == 0 {
		e.gen = 1
	}
	e.value = v
	e.live = true
	a.live++
	return Handle{slot: slot, gen: e.gen}
}

// Get resolves h. The boolean is false for stale or zero handles.
func (a *Arena[T]) Get(h Handle) (T, bool) {
	var zero T
	if !a.Valid(h) {
		return zero, false
	}
	return a.entries[h.slot].value, true
}

// Valid reports whether h still addresses a live value.
func (a *Arena[T]) Valid(h Handle) bool {
	if h.IsZero() || int(h.slot) >= len(a.entries) {
		return false
	}
	e := a.entries[h.slot]
	return e.live && e.gen == h.gen
}

// Release frees the slot addressed by h and returns the value it held.
func (a *Arena[T]) Release(h Handle) (T, bool) {
	var zero T
	if !a.Valid(h) {
		return zero, false
	}
	e := &a.entries[h.slot]
	v := e.value
	e.value = zero
	e.live = false
	a.free = append(a.free, h.slot)
	a.live--
	return v, true
}

// Len returns the number of live values.
func (a *Arena[T]) Len() int { return a.live }

// Each calls fn for every live value in slot order.
func (a *Arena[T]) Each(fn func(h Handle, v T)) {
	for i := range a.entries {
		e := a.entries[i]
		if e.live {
			fn(Handle{slot: uint32(i), gen: e.gen}, e.value)
		}
	}
}
