package entity

import "math"

// AABB is an axis-aligned rectangle with X, Y at the top-left corner
type AABB struct {
	X, Y          float64
	Width, Height float64
}

// NewAABB creates a rectangle
func NewAABB(x, y, w, h float64) AABB {
	return AABB{X: x, Y: y, Width: w, Height: h}
}

// Right returns the right edge
func (a AABB) Right() float64 { return a.X + a.Width }

// Bottom returns the bottom edge
func (a AABB) Bottom() float64 { return a.Y + a.Height }

// Intersects reports whether the two rectangles overlap.
// Rectangles that only share an edge do not intersect.
func (a AABB) Intersects(b AABB) bool {
	return a.X < b.Right() && a.Right() > b.X &&
		a.Y < b.Bottom() && a.Bottom() > b.Y
}

// Translate returns the rectangle moved by (dx, dy)
func (a AABB) Translate(dx, dy float64) AABB {
	a.X += dx
	a.Y += dy
	return a
}

// Union returns the smallest rectangle containing both
func (a AABB) Union(b AABB) AABB {
	x := math.Min(a.X, b.X)
	y := math.Min(a.Y, b.Y)
	return AABB{
		X:      x,
		Y:      y,
		Width:  math.Max(a.Right(), b.Right()) - x,
		Height: math.Max(a.Bottom(), b.Bottom()) - y,
	}
}

// Expand grows the rectangle by margin on every side
func (a AABB) Expand(margin float64) AABB {
	return AABB{
		X:      a.X - margin,
		Y:      a.Y - margin,
		Width:  a.Width + 2*margin,
		Height: a.Height + 2*margin,
	}
}

// Center returns the centre point
func (a AABB) Center() (float64, float64) {
	return a.X + a.Width/2, a.Y + a.Height/2
}
