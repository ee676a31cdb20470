package domain

import (
	"fmt"
	"math"
)

// Point is a floor-plan position in storage convention: origin at the top-left
// corner, Y increasing downward.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 { return math.Hypot(q.X-p.X, q.Y-p.Y) }

func (p Point) String() string { return fmt.Sprintf("(%g,%g)", p.X, p.Y) }

// Bounds is the walkable extent of a shop, [0,Width] x [0,Height].
type Bounds struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// InsideBounds reports whether p lies within b. Bounds are closed.
func InsideBounds(p Point, b Bounds) bool {
	return p.X >= 0 && p.Y >= 0 && p.X <= b.Width && p.Y <= b.Height
}

// Clamp moves p onto the nearest position inside b.
func (b Bounds) Clamp(p Point) Point {
	return Point{
		X: math.Min(math.Max(p.X, 0), b.Width),
		Y: math.Min(math.Max(p.Y, 0), b.Height),
	}
}

// ToRender converts a storage-space point into render space
// (origin bottom-left, Y increasing upward).
func (b Bounds) ToRender(p Point) Point { return Point{X: p.X, Y: b.Height - p.Y} }

// FromRender is the inverse of ToRender.
func (b Bounds) FromRender(p Point) Point { return Point{X: p.X, Y: b.Height - p.Y} }

// Rect is an axis-aligned closed rectangle.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Contains reports whether p lies in r, boundary included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}

// Interior reports whether p lies strictly inside r.
func (r Rect) Interior(p Point) bool {
	return p.X > r.MinX && p.X < r.MaxX && p.Y > r.MinY && p.Y < r.MaxY
}

// Inflate grows r by m on every side.
func (r Rect) Inflate(m float64) Rect {
	return Rect{MinX: r.MinX - m, MinY: r.MinY - m, MaxX: r.MaxX + m, MaxY: r.MaxY + m}
}

// Corners returns the corners in the order top-left, top-right, bottom-right,
// bottom-left.
func (r Rect) Corners() [4]Point {
	return [4]Point{
		{X: r.MinX, Y: r.MinY},
		{X: r.MaxX, Y: r.MinY},
		{X: r.MaxX, Y: r.MaxY},
		{X: r.MinX, Y: r.MaxY},
	}
}

// SegmentIntersectsRect reports whether any point of the segment p1-p2 lies in
// the closed rectangle r. Touching an edge or a corner counts as intersecting.
//
// Liang-Barsky clipping against the four half-planes of r.
func SegmentIntersectsRect(p1, p2 Point, r Rect) bool {
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y

	t0, t1 := 0.0, 1.0
	clip := func(p, q float64) bool {
		if p == 0 {
			return q >= 0
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return false
			}
			if t > t0 {
				t0 = t
			}
		} else {
			if t < t0 {
				return false
			}
			if t < t1 {
				t1 = t
			}
		}
		return true
	}

	return clip(-dx, p1.X-r.MinX) &&
		clip(dx, r.MaxX-p1.X) &&
		clip(-dy, p1.Y-r.MinY) &&
		clip(dy, r.MaxY-p1.Y) &&
		t0 <= t1
}

// SideProjections returns p projected onto each side of r and pushed outward
// by eps, in the order left, right, top, bottom. Used to move a point that sits
// inside an obstacle to the closest free position.
func (r Rect) SideProjections(p Point, eps float64) [4]Point {
	return [4]Point{
		{X: r.MinX - eps, Y: p.Y},
		{X: r.MaxX + eps, Y: p.Y},
		{X: p.X, Y: r.MinY - eps},
		{X: p.X, Y: r.MaxY + eps},
	}
}
