package layout

// Rect is an on-screen pixel (or cell) rectangle. Item rectangles are 32-bit
// and always relative to the current virtual scroll offset.
type Rect struct {
	X      int32
	Y      int32
	Width  int32
	Height int32
}

// Right returns the exclusive right edge.
func (r Rect) Right() int32 { return r.X + r.Width }

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() int32 { return r.Y + r.Height }

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool { return r.Width <= 0 || r.Height <= 0 }

// Intersects reports whether r and o overlap.
func (r Rect) Intersects(o Rect) bool {
	if r.IsEmpty() || o.IsEmpty() {
		return false
	}
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Contains reports whether o lies fully inside r.
func (r Rect) Contains(o Rect) bool {
	return o.X >= r.X && o.Y >= r.Y && o.Right() <= r.Right() && o.Bottom() <= r.Bottom()
}
