package pie

import (
	"math"

	"github.com/matzehuels/stackchart/pkg/chart/geom"
)

const epsilon = 1e-12

// ArcPath returns the outline of a slice, placed at the slice's center
// plus its explode offset. Zero-span slices yield an empty path.
func ArcPath(a geom.Arc, padRadius float64) geom.Path {
	var p geom.Path
	if a.IsEmpty() {
		return p
	}
	c := a.Origin()
	r0, r1 := a.InnerRadius, a.OuterRadius
	half := a.PadAngle / 2

	if a.RenderedSpan() >= geom.Tau-1e-9 {
		p.Arc(c, r1, 0, geom.Tau)
		p.Close()
		if r0 > 0 {
			in := geom.Polar(c, r0, geom.Tau)
			p.MoveTo(in.X, in.Y)
			p.Arc(c, r0, geom.Tau, 0)
			p.Close()
		}
		return p
	}

	// A pad of padRadius*padAngle stays the same width at every radius,
	// so the angular inset shrinks as the radius grows.
	rp := padRadius
	if rp <= 0 {
		rp = math.Hypot(r0, r1)
	}
	o0, o1 := inset(a.StartAngle, a.EndAngle, r1, rp, half)
	i0, i1 := a.StartAngle+half, a.EndAngle-half
	if r0 > 0 {
		i0, i1 = inset(a.StartAngle, a.EndAngle, r0, rp, half)
	}

	cr := math.Min(a.CornerRadius, r1*(o1-o0)/2)
	if cr > epsilon {
		ca := cr / r1
		start := geom.Polar(c, r1-cr, o0)
		corner := geom.Polar(c, r1, o0)
		arcStart := geom.Polar(c, r1, o0+ca)
		p.MoveTo(start.X, start.Y)
		p.QuadTo(corner.X, corner.Y, arcStart.X, arcStart.Y)
		p.Arc(c, r1, o0+ca, o1-ca)
		corner = geom.Polar(c, r1, o1)
		end := geom.Polar(c, r1-cr, o1)
		p.QuadTo(corner.X, corner.Y, end.X, end.Y)
	} else {
		p.Arc(c, r1, o0, o1)
	}

	if r0 > 0 {
		p.Arc(c, r0, i1, i0)
	} else {
		p.LineTo(c.X, c.Y)
	}
	p.Close()
	return p
}

// inset narrows [a0, a1] by the pad at radius r. Slices too thin for the
// pad collapse onto their bisector.
func inset(a0, a1, r, rp, half float64) (float64, float64) {
	if half <= 0 || r <= 0 {
		return a0, a1
	}
	s := math.Min(1, rp/r*math.Sin(half))
	d := math.Asin(s)
	if a1-a0 > 2*d {
		return a0 + d, a1 - d
	}
	mid := (a0 + a1) / 2
	return mid, mid
}
