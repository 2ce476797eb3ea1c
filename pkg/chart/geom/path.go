package geom

import (
	"math"
	"strconv"
	"strings"
)

// Op is a path drawing operation.
type Op uint8

const (
	OpMove Op = iota
	OpLine
	OpQuad
	OpCubic
	OpClose
)

// Segment is one path operation. Pts holds the operation's points in
// drawing order: one for move/line, control + end for quad, two controls +
// end for cubic, none for close.
type Segment struct {
	Op  Op
	Pts []Point
}

// Path is a sequence of drawing operations. The zero value is an empty
// path ready to use. Arcs are stored as cubic Béziers so that every sink
// (SVG, raster) consumes the same four primitives.
type Path struct {
	Segments []Segment
	cur      Point
	first    Point
	started  bool
}

// MoveTo starts a new subpath at (x, y).
func (p *Path) MoveTo(x, y float64) {
	p.Segments = append(p.Segments, Segment{Op: OpMove, Pts: []Point{{x, y}}})
	p.cur, p.first, p.started = Point{x, y}, Point{x, y}, true
}

// LineTo draws a straight line to (x, y).
func (p *Path) LineTo(x, y float64) {
	if !p.started {
		p.MoveTo(x, y)
		return
	}
	p.Segments = append(p.Segments, Segment{Op: OpLine, Pts: []Point{{x, y}}})
	p.cur = Point{x, y}
}

// QuadTo draws a quadratic Bézier with control (cx, cy) ending at (x, y).
func (p *Path) QuadTo(cx, cy, x, y float64) {
	p.Segments = append(p.Segments, Segment{Op: OpQuad, Pts: []Point{{cx, cy}, {x, y}}})
	p.cur = Point{x, y}
}

// CubicTo draws a cubic Bézier ending at (x, y).
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	p.Segments = append(p.Segments, Segment{Op: OpCubic, Pts: []Point{{c1x, c1y}, {c2x, c2y}, {x, y}}})
	p.cur = Point{x, y}
}

// Close closes the current subpath. The current point returns to the
// subpath's start.
func (p *Path) Close() {
	p.Segments = append(p.Segments, Segment{Op: OpClose})
	p.cur = p.first
}

// Arc appends a circular arc around c with radius r from chart angle a0 to
// a1. The arc runs clockwise when a1 > a0 and counter-clockwise otherwise.
// Like the canvas arc operation, a line joins the current point to the arc
// start; an empty path starts with a move.
func (p *Path) Arc(c Point, r, a0, a1 float64) {
	start := Polar(c, r, a0)
	if !p.started {
		p.MoveTo(start.X, start.Y)
	} else if !near(p.cur, start) {
		p.LineTo(start.X, start.Y)
	}
	delta := a1 - a0
	if r <= 0 || delta == 0 {
		return
	}
	n := max(1, int(math.Ceil(math.Abs(delta)/(math.Pi/2)-1e-9)))
	step := delta / float64(n)
	k := 4.0 / 3.0 * math.Tan(step/4)
	for i := 0; i < n; i++ {
		t0 := a0 + float64(i)*step
		t1 := t0 + step
		p0, p3 := Polar(c, r, t0), Polar(c, r, t1)
		c1 := Point{p0.X + k*r*math.Cos(t0), p0.Y + k*r*math.Sin(t0)}
		c2 := Point{p3.X - k*r*math.Cos(t1), p3.Y - k*r*math.Sin(t1)}
		p.CubicTo(c1.X, c1.Y, c2.X, c2.Y, p3.X, p3.Y)
	}
}

// Empty reports whether the path draws nothing.
func (p *Path) Empty() bool { return p == nil || len(p.Segments) == 0 }

// Translate returns a copy of p moved by d.
func (p Path) Translate(d Point) Path {
	out := Path{Segments: make([]Segment, len(p.Segments)), cur: p.cur.Add(d), first: p.first.Add(d), started: p.started}
	for i, s := range p.Segments {
		pts := make([]Point, len(s.Pts))
		for j, pt := range s.Pts {
			pts[j] = pt.Add(d)
		}
		out.Segments[i] = Segment{Op: s.Op, Pts: pts}
	}
	return out
}

// IsFinite reports whether every coordinate of the path is finite.
func (p Path) IsFinite() bool {
	for _, s := range p.Segments {
		for _, pt := range s.Pts {
			if !pt.IsFinite() {
				return false
			}
		}
	}
	return true
}

// SVG returns the path in SVG path-data syntax.
func (p Path) SVG() string {
	if p.Empty() {
		return ""
	}
	var b strings.Builder
	for _, s := range p.Segments {
		switch s.Op {
		case OpMove:
			b.WriteByte('M')
		case OpLine:
			b.WriteByte('L')
		case OpQuad:
			b.WriteByte('Q')
		case OpCubic:
			b.WriteByte('C')
		case OpClose:
			b.WriteByte('Z')
			continue
		}
		for i, pt := range s.Pts {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(fmtNum(pt.X))
			b.WriteByte(',')
			b.WriteString(fmtNum(pt.Y))
		}
	}
	return b.String()
}

// MarshalText encodes the path as SVG path data so descriptors serialize
// to JSON compactly.
func (p Path) MarshalText() ([]byte, error) { return []byte(p.SVG()), nil }

func fmtNum(f float64) string {
	v := math.Round(f*100) / 100
	if v == 0 {
		v = 0 // drop negative zero
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func near(a, b Point) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}
