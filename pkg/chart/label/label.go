// Package label places labels around the slices of an arc chart.
//
// Each label is anchored on its slice's bisector just beyond the outer
// radius, on the side of the chart the bisector points to. Dense charts
// either drop colliding labels or, with DisplayAll, push them apart
// vertically while keeping their order.
//
// MinAngle only drops slivers. Evenly split charts stay above it even with
// many slices (32 equal slices span about 0.196 rad each), so their labels
// are thinned by the collision pass alone.
package label

import (
	"math"
	"sort"

	"github.com/matzehuels/stackchart/pkg/chart/geom"
)

// Default label settings.
const (
	DefaultWidth       = 60
	DefaultHeight      = 16
	DefaultMinAngle    = 0.05
	DefaultRadiusRatio = 1.15
	DefaultTail        = 8
)

// Options controls label placement.
type Options struct {
	// Width and Height size the label box.
	Width  float64 `json:"width,omitempty" toml:"width"`
	Height float64 `json:"height,omitempty" toml:"height"`
	// DisplayAll keeps every label, displacing them to avoid overlap.
	// When false, thin slices and colliding labels are dropped.
	DisplayAll bool `json:"displayAll,omitempty" toml:"display_all"`
	// MinAngle is the smallest rendered slice span, in radians, that gets
	// a label when DisplayAll is false.
	MinAngle float64 `json:"minAngle,omitempty" toml:"min_angle"`
	// RadiusRatio places the leader line elbow at OuterRadius*RadiusRatio.
	RadiusRatio float64 `json:"radiusRatio,omitempty" toml:"radius_ratio"`
	// Tail is the horizontal run from the elbow to the label anchor.
	Tail float64 `json:"tail,omitempty" toml:"tail"`
	// Center is used for arcs that carry no center of their own.
	Center geom.Point `json:"-" toml:"-"`
	// Bounds, when set, limits how far displaced labels may run downward.
	Bounds *geom.Rect `json:"-" toml:"-"`
}

// WithDefaults fills unset fields.
func (o Options) WithDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.MinAngle <= 0 {
		o.MinAngle = DefaultMinAngle
	}
	if o.RadiusRatio <= 0 {
		o.RadiusRatio = DefaultRadiusRatio
	}
	if o.Tail < 0 {
		o.Tail = 0
	} else if o.Tail == 0 {
		o.Tail = DefaultTail
	}
	return o
}

// Func computes labels for a set of arcs. [Resolve] is the default.
type Func func(arcs []geom.Arc, opts Options) []geom.Label

// SideOf returns the anchor side for a bisector angle: start on the left
// half of the chart, end on the right.
func SideOf(theta float64) geom.Side {
	if math.Sin(theta) < 0 {
		return geom.SideStart
	}
	return geom.SideEnd
}

// Resolve computes positioned labels for arcs, ordered by arc index.
// Zero-span arcs never get a label.
func Resolve(arcs []geom.Arc, opts Options) []geom.Label {
	opts = opts.WithDefaults()

	var start, end []geom.Label
	for _, a := range arcs {
		if a.IsEmpty() {
			continue
		}
		if !opts.DisplayAll && a.RenderedSpan() < opts.MinAngle {
			continue
		}
		l := place(a, opts)
		if l.Side == geom.SideStart {
			start = append(start, l)
		} else {
			end = append(end, l)
		}
	}

	var out []geom.Label
	for _, side := range [][]geom.Label{start, end} {
		sortByY(side)
		if opts.DisplayAll {
			out = append(out, spread(side, opts)...)
		} else {
			out = append(out, dropColliding(side)...)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

func place(a geom.Arc, opts Options) geom.Label {
	theta := a.Bisector()
	origin := a.Origin()
	if a.Center == (geom.Point{}) {
		origin = opts.Center.Add(a.Explode)
	}
	side := SideOf(theta)
	edge := geom.Polar(origin, a.OuterRadius, theta)
	elbow := geom.Polar(origin, a.OuterRadius*opts.RadiusRatio, theta)
	dx := opts.Tail
	if side == geom.SideStart {
		dx = -dx
	}
	pos := geom.Pt(elbow.X+dx, elbow.Y)
	return geom.Label{
		Key:      a.Key,
		Index:    a.Index,
		Side:     side,
		Position: pos,
		Angle:    theta,
		Box:      geom.BoxAt(pos, side, opts.Width, opts.Height),
		Line:     []geom.Point{edge, elbow, pos},
	}
}

// sortByY orders labels top-down; equal heights keep arc order.
func sortByY(ls []geom.Label) {
	sort.SliceStable(ls, func(i, j int) bool {
		if ls[i].Position.Y != ls[j].Position.Y {
			return ls[i].Position.Y < ls[j].Position.Y
		}
		return ls[i].Index < ls[j].Index
	})
}

func dropColliding(ls []geom.Label) []geom.Label {
	var kept []geom.Label
	for _, l := range ls {
		if n := len(kept); n > 0 && l.Box.OverlapsY(kept[n-1].Box) {
			continue
		}
		kept = append(kept, l)
	}
	return kept
}

// spread pushes each label below its predecessor, then, if the column
// overflows Bounds, pushes labels back up from the bottom.
func spread(ls []geom.Label, opts Options) []geom.Label {
	for i := 1; i < len(ls); i++ {
		if prev := ls[i-1].Box; ls[i].Box.Y < prev.Bottom() {
			moveTo(&ls[i], prev.Bottom())
		}
	}
	if opts.Bounds == nil || len(ls) == 0 {
		return ls
	}
	last := len(ls) - 1
	if ls[last].Box.Bottom() <= opts.Bounds.Bottom() {
		return ls
	}
	moveTo(&ls[last], opts.Bounds.Bottom()-ls[last].Box.H)
	for i := last - 1; i >= 0; i-- {
		if next := ls[i+1].Box; ls[i].Box.Bottom() > next.Y {
			moveTo(&ls[i], next.Y-ls[i].Box.H)
		}
	}
	return ls
}

// moveTo shifts a label vertically so its box top is at y. The leader
// line follows the anchor.
func moveTo(l *geom.Label, y float64) {
	dy := y - l.Box.Y
	l.Box.Y = y
	l.Position.Y += dy
	if n := len(l.Line); n > 0 {
		line := append([]geom.Point(nil), l.Line...)
		line[n-1] = l.Position
		l.Line = line
	}
}
