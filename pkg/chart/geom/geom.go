// Package geom holds the value types shared by the chart geometry builders:
// points, rectangles, drawable paths, and the arc and label descriptors.
//
// Angles follow the chart convention used throughout stackchart: radians
// measured from the 12 o'clock direction, increasing clockwise. Pixel
// coordinates follow SVG, with y growing downward, so a point at angle θ and
// radius r around center c is (c.X + r·sin θ, c.Y − r·cos θ).
package geom

import "math"

// Tau is a full turn in radians.
const Tau = 2 * math.Pi

// Point is a pixel coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// IsFinite reports whether both coordinates are finite numbers.
func (p Point) IsFinite() bool { return IsFinite(p.X) && IsFinite(p.Y) }

// Polar returns the point at radius r and chart angle theta around c.
func Polar(c Point, r, theta float64) Point {
	return Point{X: c.X + r*math.Sin(theta), Y: c.Y - r*math.Cos(theta)}
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"width"`
	H float64 `json:"height"`
}

// Right returns the horizontal end of the rectangle.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the vertical end of the rectangle.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Contains reports whether p lies inside r (edges inclusive).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}

// OverlapsY reports whether the vertical extents of r and o intersect.
// Touching edges do not count as an overlap.
func (r Rect) OverlapsY(o Rect) bool {
	const eps = 1e-9
	return r.Y < o.Bottom()-eps && o.Y < r.Bottom()-eps
}

// IsFinite reports whether f is neither NaN nor infinite.
func IsFinite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
