// Package physics provides bounding boxes, collision masks and broad-phase lookup.
package physics

import "math"

// Rect is an axis-aligned bounding box. X and Y are the top-left corner.
type Rect struct {
	X, Y float64
	W, H float64
}

// RectFromCenter builds a box of size w×h centered on (cx, cy).
func RectFromCenter(cx, cy, w, h float64) Rect {
	return Rect{X: cx - w/2, Y: cy - h/2, W: w, H: h}
}

// Left returns the x coordinate of the left edge.
func (r Rect) Left() float64 { return r.X }

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Top returns the y coordinate of the top edge.
func (r Rect) Top() float64 { return r.Y }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Center returns the center point of the box.
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Overlaps reports whether two boxes share interior area.
// Boxes that only touch along an edge do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W &&
		r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// Outside reports whether the box lies entirely outside a w×h area anchored at the origin.
func (r Rect) Outside(w, h float64) bool {
	return r.Bottom() < 0 || r.Top() > h || r.Right() < 0 || r.Left() > w
}

// Mask is a per-pixel collision mask. Bit (x, y) is set when that pixel is solid.
type Mask struct {
	w, h int
	bits []uint64
}

// NewMask creates an empty mask of w×h pixels.
func NewMask(w, h int) *Mask {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Mask{
		w:    w,
		h:    h,
		bits: make([]uint64, (w*h+63)/64),
	}
}

// NewFilledMask creates a w×h mask with every pixel set (a solid rectangle).
func NewFilledMask(w, h int) *Mask {
	m := NewMask(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m.Set(x, y)
		}
	}
	return m
}

// Size returns the mask dimensions.
func (m *Mask) Size() (int, int) {
	return m.w, m.h
}

// Set marks the pixel at (x, y) as solid. Out-of-range coordinates are ignored.
func (m *Mask) Set(x, y int) {
	if x < 0 || y < 0 || x >= m.w || y >= m.h {
		return
	}
	i := y*m.w + x
	m.bits[i/64] |= 1 << (i % 64)
}

// Get reports whether the pixel at (x, y) is solid.
func (m *Mask) Get(x, y int) bool {
	if x < 0 || y < 0 || x >= m.w || y >= m.h {
		return false
	}
	i := y*m.w + x
	return m.bits[i/64]&(1<<(i%64)) != 0
}

// Overlap reports whether o, placed at offset (dx, dy) relative to m's top-left
// corner, shares at least one solid pixel with m.
func (m *Mask) Overlap(o *Mask, dx, dy int) bool {
	x0 := max(0, dx)
	y0 := max(0, dy)
	x1 := min(m.w, dx+o.w)
	y1 := min(m.h, dy+o.h)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if m.Get(x, y) && o.Get(x-dx, y-dy) {
				return true
			}
		}
	}
	return false
}

// Collider is anything with a bounding box and a collision mask.
type Collider interface {
	Rect() Rect
	Mask() *Mask
}

// Collide is the precise test: a bounding-box pre-filter followed by a mask
// overlap at the boxes' pixel offset.
func Collide(a, b Collider) bool {
	ra, rb := a.Rect(), b.Rect()
	if !ra.Overlaps(rb) {
		return false
	}
	ma, mb := a.Mask(), b.Mask()
	if ma == nil || mb == nil {
		return true
	}
	dx := int(math.Floor(rb.X)) - int(math.Floor(ra.X))
	dy := int(math.Floor(rb.Y)) - int(math.Floor(ra.Y))
	return ma.Overlap(mb, dx, dy)
}
