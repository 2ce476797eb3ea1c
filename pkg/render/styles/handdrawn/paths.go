package handdrawn

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/matzehuels/stackchart/pkg/chart/geom"
)

const (
	greyMin = 0xe0
	greyMax = 0xf4
)

// hash mixes an element id with the style seed.
func hash(s string, seed uint64) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64() ^ (seed * 0x9e3779b97f4a7c15)
}

// rng is a splitmix64 generator.
type rng struct{ state uint64 }

func newRNG(seed uint64) *rng { return &rng{state: seed} }

// next returns a value in [0, 1).
func (r *rng) next() float64 {
	r.state += 0x9e3779b97f4a7c15
	z := r.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	z ^= z >> 31
	return float64(z>>11) / (1 << 53)
}

// jitter returns a value in [-amp, amp).
func (r *rng) jitter(amp float64) float64 {
	return (r.next()*2 - 1) * amp
}

// wobble displaces every path point by up to amp in each direction.
func wobble(p geom.Path, amp float64, seed uint64, id string) geom.Path {
	r := newRNG(hash(id, seed))
	j := func(pt geom.Point) geom.Point {
		return geom.Pt(pt.X+r.jitter(amp), pt.Y+r.jitter(amp))
	}
	var out geom.Path
	for _, s := range p.Segments {
		switch s.Op {
		case geom.OpMove:
			a := j(s.Pts[0])
			out.MoveTo(a.X, a.Y)
		case geom.OpLine:
			a := j(s.Pts[0])
			out.LineTo(a.X, a.Y)
		case geom.OpQuad:
			c, a := j(s.Pts[0]), j(s.Pts[1])
			out.QuadTo(c.X, c.Y, a.X, a.Y)
		case geom.OpCubic:
			c1, c2, a := j(s.Pts[0]), j(s.Pts[1]), j(s.Pts[2])
			out.CubicTo(c1.X, c1.Y, c2.X, c2.Y, a.X, a.Y)
		case geom.OpClose:
			out.Close()
		}
	}
	return out
}

// wobbledRect draws a rectangle whose sides bow slightly outwards or
// inwards, as SVG path data.
func wobbledRect(x, y, w, h float64, seed uint64, id string) string {
	r := newRNG(hash(id, seed))
	amp := min(2.0, min(w, h)*0.1)
	corners := [4][2]float64{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}

	var b strings.Builder
	fmt.Fprintf(&b, "M%.2f,%.2f", corners[0][0]+r.jitter(amp/2), corners[0][1]+r.jitter(amp/2))
	for i := 1; i <= 4; i++ {
		from, to := corners[i-1], corners[i%4]
		mx, my := (from[0]+to[0])/2+r.jitter(amp), (from[1]+to[1])/2+r.jitter(amp)
		fmt.Fprintf(&b, "Q%.2f,%.2f %.2f,%.2f", mx, my, to[0]+r.jitter(amp/2), to[1]+r.jitter(amp/2))
	}
	b.WriteString("Z")
	return b.String()
}

// rotationFor returns a small rotation in degrees; larger boxes tilt less.
func rotationFor(id string, w, h float64) float64 {
	r := newRNG(hash(id, 0))
	limit := 3.0
	if size := max(w, h); size > 40 {
		limit = 3.0 * 40 / size
	}
	return r.jitter(limit)
}

// greyForID returns a light grey hex color derived from id.
func greyForID(id string) string {
	v := greyMin + int(hash(id, 0)%uint64(greyMax-greyMin+1))
	return fmt.Sprintf("#%02x%02x%02x", v, v, v)
}
