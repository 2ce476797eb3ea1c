// Package curve provides the interpolation strategies that turn a
// sequence of points into a path.
package curve

import (
	"math"
	"strings"

	"github.com/matzehuels/stackchart/pkg/chart/geom"
	"github.com/matzehuels/stackchart/pkg/errors"
)

// Curve traces a path through points.
type Curve interface {
	// Trace appends a curve through pts to p. With join set, the first
	// point is reached by a line from the current point; otherwise a new
	// subpath starts there.
	Trace(p *geom.Path, pts []geom.Point, join bool)
}

// Interpolation names a curve.
type Interpolation string

const (
	Linear     Interpolation = "linear"
	Step       Interpolation = "step"
	StepBefore Interpolation = "stepBefore"
	StepAfter  Interpolation = "stepAfter"
	MonotoneX  Interpolation = "monotoneX"
	// Smooth is an alias for MonotoneX.
	Smooth Interpolation = "smooth"
)

// Parse returns the curve for an interpolation name. The empty name is
// linear.
func Parse(name string) (Curve, error) {
	switch Interpolation(strings.TrimSpace(name)) {
	case "", Linear:
		return LinearCurve{}, nil
	case Step:
		return StepCurve{T: 0.5}, nil
	case StepBefore:
		return StepCurve{T: 0}, nil
	case StepAfter:
		return StepCurve{T: 1}, nil
	case MonotoneX, Smooth:
		return MonotoneXCurve{}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown interpolation %q (valid: linear, step, stepBefore, stepAfter, monotoneX, smooth)", name)
}

// For returns the named curve, falling back to linear for unknown names.
func For(i Interpolation) Curve {
	c, err := Parse(string(i))
	if err != nil {
		return LinearCurve{}
	}
	return c
}

func start(p *geom.Path, pt geom.Point, join bool) {
	if join {
		p.LineTo(pt.X, pt.Y)
		return
	}
	p.MoveTo(pt.X, pt.Y)
}

// LinearCurve connects points with straight segments.
type LinearCurve struct{}

// Trace implements [Curve].
func (LinearCurve) Trace(p *geom.Path, pts []geom.Point, join bool) {
	if len(pts) == 0 {
		return
	}
	start(p, pts[0], join)
	for _, pt := range pts[1:] {
		p.LineTo(pt.X, pt.Y)
	}
}

// StepCurve draws horizontal-then-vertical steps. T places the vertical
// riser between consecutive points: 0 at the previous point, 1 at the
// next, 0.5 halfway.
type StepCurve struct {
	T float64
}

// Trace implements [Curve].
func (c StepCurve) Trace(p *geom.Path, pts []geom.Point, join bool) {
	if len(pts) == 0 {
		return
	}
	start(p, pts[0], join)
	for i := 1; i < len(pts); i++ {
		prev, cur := pts[i-1], pts[i]
		x := prev.X*(1-c.T) + cur.X*c.T
		if c.T > 0 {
			p.LineTo(x, prev.Y)
		}
		p.LineTo(x, cur.Y)
		if c.T < 1 {
			p.LineTo(cur.X, cur.Y)
		}
	}
}

// MonotoneXCurve is a cubic spline that preserves monotonicity in y,
// assuming x is monotonic. Tangents follow Fritsch and Carlson.
type MonotoneXCurve struct{}

// Trace implements [Curve].
func (MonotoneXCurve) Trace(p *geom.Path, pts []geom.Point, join bool) {
	n := len(pts)
	if n < 3 {
		LinearCurve{}.Trace(p, pts, join)
		return
	}
	h := make([]float64, n-1)
	s := make([]float64, n-1)
	for i := 0; i < n-1; i++ {
		h[i] = pts[i+1].X - pts[i].X
		if h[i] != 0 {
			s[i] = (pts[i+1].Y - pts[i].Y) / h[i]
		}
	}
	t := make([]float64, n)
	for i := 1; i < n-1; i++ {
		var m float64
		if d := h[i-1] + h[i]; d != 0 {
			m = (s[i-1]*h[i] + s[i]*h[i-1]) / d
		}
		v := (sign(s[i-1]) + sign(s[i])) * math.Min(math.Min(math.Abs(s[i-1]), math.Abs(s[i])), 0.5*math.Abs(m))
		if geom.IsFinite(v) {
			t[i] = v
		}
	}
	t[0] = endTangent(h[0], s[0], t[1])
	t[n-1] = endTangent(h[n-2], s[n-2], t[n-2])

	start(p, pts[0], join)
	for i := 0; i < n-1; i++ {
		a, b := pts[i], pts[i+1]
		dx := h[i] / 3
		p.CubicTo(a.X+dx, a.Y+dx*t[i], b.X-dx, b.Y-dx*t[i+1], b.X, b.Y)
	}
}

func endTangent(h, s, t float64) float64 {
	if h == 0 {
		return t
	}
	return (3*s - t) / 2
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
