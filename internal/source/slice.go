// Package source provides element sources for the simple list box and tile
// box: a generic slice-backed DataProvider that notifies observers on every
// mutation.
package source

import (
	"slices"

	"github.com/rshade/tilegrid/internal/store"
	"github.com/rshade/tilegrid/internal/window"
)

// IndexObserver is told which element moved. Count observers run first, so
// the controller has already refreshed when these are called.
// CountChanged follows a Reset, where no single element moved.
type IndexObserver interface {
	ElementInserted(index int)
	ElementRemoved(index int)
	CountChanged(count int)
}

// FillFunc binds element value v at index onto a pooled item.
type FillFunc[T any] func(item window.Item, index int, v T) bool

// Slice is a window.DataProvider over a []T.
type Slice[T any] struct {
	items     []T
	create    func() window.Item
	fill      FillFunc[T]
	observers []store.Observer
	indexObs  []IndexObserver
}

var _ window.DataProvider = (*Slice[int])(nil)

// NewSlice creates a source. create builds pooled items and fill binds a
// value to one.
func NewSlice[T any](create func() window.Item, fill FillFunc[T], items ...T) *Slice[T] {
	return &Slice[T]{items: items, create: create, fill: fill}
}

// AddObserver registers o for count and data notifications.
func (s *Slice[T]) AddObserver(o store.Observer) {
	if o != nil {
		s.observers = append(s.observers, o)
	}
}

// AddIndexObserver registers o for insert and remove notifications.
func (s *Slice[T]) AddIndexObserver(o IndexObserver) {
	if o != nil {
		s.indexObs = append(s.indexObs, o)
	}
}

// CreateElement implements window.DataProvider.
func (s *Slice[T]) CreateElement() window.Item { return s.create() }

// FillElement implements window.DataProvider.
func (s *Slice[T]) FillElement(item window.Item, index int) bool {
	if index < 0 || index >= len(s.items) {
		return false
	}
	return s.fill(item, index, s.items[index])
}

// ElementCount implements window.DataProvider.
func (s *Slice[T]) ElementCount() int { return len(s.items) }

// Len returns the number of elements.
func (s *Slice[T]) Len() int { return len(s.items) }

// At returns the element at index.
func (s *Slice[T]) At(index int) (T, bool) {
	var zero T
	if index < 0 || index >= len(s.items) {
		return zero, false
	}
	return s.items[index], true
}

// All returns a copy of the elements.
func (s *Slice[T]) All() []T { return slices.Clone(s.items) }

func (s *Slice[T]) countChanged() {
	for _, o := range s.observers {
		o.OnCountChanged()
	}
}

// Append adds values at the end.
func (s *Slice[T]) Append(values ...T) {
	if len(values) == 0 {
		return
	}
	start := len(s.items)
	s.items = append(s.items, values...)
	s.countChanged()
	for i := range values {
		for _, o := range s.indexObs {
			o.ElementInserted(start + i)
		}
	}
}

// Insert adds v at index and returns where it landed; an out-of-range index
// appends.
func (s *Slice[T]) Insert(index int, v T) int {
	if index < 0 || index > len(s.items) {
		index = len(s.items)
	}
	s.items = slices.Insert(s.items, index, v)
	s.countChanged()
	for _, o := range s.indexObs {
		o.ElementInserted(index)
	}
	return index
}

// Remove deletes the element at index.
func (s *Slice[T]) Remove(index int) bool {
	if index < 0 || index >= len(s.items) {
		return false
	}
	s.items = slices.Delete(s.items, index, index+1)
	s.countChanged()
	for _, o := range s.indexObs {
		o.ElementRemoved(index)
	}
	return true
}

// Set replaces the element at index.
func (s *Slice[T]) Set(index int, v T) bool {
	if index < 0 || index >= len(s.items) {
		return false
	}
	s.items[index] = v
	for _, o := range s.observers {
		o.OnDataChanged(index, index)
	}
	return true
}

// Reset replaces every element.
func (s *Slice[T]) Reset(values []T) {
	s.items = slices.Clone(values)
	s.countChanged()
	for _, o := range s.indexObs {
		o.CountChanged(len(s.items))
	}
}
