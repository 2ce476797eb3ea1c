package active

import (
	"math"

	"github.com/matzehuels/stackchart/pkg/chart/data"
	"github.com/matzehuels/stackchart/pkg/chart/geom"
	"github.com/matzehuels/stackchart/pkg/chart/scale"
)

// Surface is the hover-capture region over an area chart's plot area.
// Pointer positions are resolved to the nearest key through the x scale's
// Invert capability.
type Surface struct {
	Handler Handler
	XScale  scale.Invertible
	Shape   data.Shape
	Width   float64
	Height  float64

	entered bool
}

// Pointer handles a pointer at (x, y) in plot coordinates. Positions
// outside the plot area raise Leave.
func (s *Surface) Pointer(x, y float64) {
	if x < 0 || x > s.Width || y < 0 || y > s.Height {
		s.PointerLeave()
		return
	}
	h, ok := s.resolve(x)
	if !ok {
		s.PointerLeave()
		return
	}
	if s.entered {
		s.Handler.Move(h)
		return
	}
	s.entered = true
	s.Handler.Enter(h)
}

// PointerLeave raises Leave unconditionally.
func (s *Surface) PointerLeave() {
	s.entered = false
	s.Handler.Leave()
}

func (s *Surface) resolve(x float64) (Hover, bool) {
	target := s.XScale.Scale(s.XScale.Invert(x))
	if !geom.IsFinite(target) {
		target = x
	}
	var (
		best   any
		bestPx float64
		found  bool
	)
	for _, k := range s.Shape.AllKeys() {
		px := s.XScale.Scale(k)
		if !geom.IsFinite(px) {
			continue
		}
		if !found || math.Abs(px-target) < math.Abs(bestPx-target) {
			best, bestPx, found = k, px, true
		}
	}
	if !found {
		return Hover{}, false
	}

	h := Hover{Keys: []any{best}, Coordinate: bestPx}
	if s.Shape.Kind == data.Shallow {
		if i := data.Find(s.Shape.Points, best); i >= 0 {
			h.Values = []data.Point{s.Shape.Points[i]}
		}
		return h, true
	}
	for _, ser := range s.Shape.Series {
		if i := data.Find(ser.Data, best); i >= 0 {
			h.Series = append(h.Series, ser.Key)
			h.Values = append(h.Values, ser.Data[i])
		}
	}
	return h, true
}

// PieSurface is the hover-capture region of an arc chart. The pointer is
// hit-tested against each slice by radius and angle.
type PieSurface struct {
	Handler Handler
	Arcs    []geom.Arc

	entered bool
}

// Pointer handles a pointer at (x, y) in chart coordinates.
func (s *PieSurface) Pointer(x, y float64) {
	a, ok := HitArc(s.Arcs, geom.Pt(x, y))
	if !ok {
		s.PointerLeave()
		return
	}
	h := Hover{
		Keys:       []any{a.Key},
		Values:     []data.Point{{Key: a.Key, Data: a.Value}},
		Coordinate: a.Bisector(),
	}
	if s.entered {
		s.Handler.Move(h)
		return
	}
	s.entered = true
	s.Handler.Enter(h)
}

// PointerLeave raises Leave unconditionally.
func (s *PieSurface) PointerLeave() {
	s.entered = false
	s.Handler.Leave()
}

// HitArc returns the slice drawn under p, if any.
func HitArc(arcs []geom.Arc, p geom.Point) (geom.Arc, bool) {
	for _, a := range arcs {
		if a.IsEmpty() {
			continue
		}
		o := a.Origin()
		dx, dy := p.X-o.X, p.Y-o.Y
		r := math.Hypot(dx, dy)
		if r < a.InnerRadius || r > a.OuterRadius {
			continue
		}
		theta := math.Atan2(dx, -dy)
		if theta < 0 {
			theta += geom.Tau
		}
		half := a.PadAngle / 2
		if theta >= a.StartAngle+half && theta <= a.EndAngle-half {
			return a, true
		}
	}
	return geom.Arc{}, false
}
