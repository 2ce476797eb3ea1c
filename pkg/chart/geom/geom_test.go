package geom

import (
	"math"
	"strings"
	"testing"
)

func TestPolar(t *testing.T) {
	c := Pt(100, 100)
	tests := []struct {
		name  string
		theta float64
		want  Point
	}{
		{"top", 0, Pt(100, 50)},
		{"right", math.Pi / 2, Pt(150, 100)},
		{"bottom", math.Pi, Pt(100, 150)},
		{"left", 3 * math.Pi / 2, Pt(50, 100)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Polar(c, 50, tt.theta)
			if math.Abs(got.X-tt.want.X) > 1e-9 || math.Abs(got.Y-tt.want.Y) > 1e-9 {
				t.Errorf("Polar(%v) = %v, want %v", tt.theta, got, tt.want)
			}
		})
	}
}

func TestPathArcEndsOnCircle(t *testing.T) {
	var p Path
	c := Pt(0, 0)
	p.Arc(c, 10, 0, 3*math.Pi/2)
	last := p.Segments[len(p.Segments)-1]
	if last.Op != OpCubic {
		t.Fatalf("last op = %v, want cubic", last.Op)
	}
	end := last.Pts[2]
	want := Polar(c, 10, 3*math.Pi/2)
	if math.Abs(end.X-want.X) > 1e-9 || math.Abs(end.Y-want.Y) > 1e-9 {
		t.Errorf("arc end = %v, want %v", end, want)
	}
	// move + 3 quarter segments
	if len(p.Segments) != 4 {
		t.Errorf("segments = %d, want 4", len(p.Segments))
	}
}

func TestPathArcMidpointAccuracy(t *testing.T) {
	var p Path
	p.Arc(Pt(0, 0), 100, 0, math.Pi/2)
	seg := p.Segments[1]
	p0 := p.Segments[0].Pts[0]
	// Evaluate the cubic at t=0.5.
	mid := Point{
		X: 0.125*p0.X + 0.375*seg.Pts[0].X + 0.375*seg.Pts[1].X + 0.125*seg.Pts[2].X,
		Y: 0.125*p0.Y + 0.375*seg.Pts[0].Y + 0.375*seg.Pts[1].Y + 0.125*seg.Pts[2].Y,
	}
	if r := math.Hypot(mid.X, mid.Y); math.Abs(r-100) > 0.05 {
		t.Errorf("midpoint radius = %v, want ~100", r)
	}
}

func TestPathArcCounterClockwise(t *testing.T) {
	var p Path
	p.MoveTo(0, -10)
	p.Arc(Pt(0, 0), 5, math.Pi/2, 0)
	if p.Segments[1].Op != OpLine {
		t.Fatalf("expected joining line, got %v", p.Segments[1].Op)
	}
	end := p.Segments[len(p.Segments)-1].Pts[2]
	if math.Abs(end.X) > 1e-9 || math.Abs(end.Y+5) > 1e-9 {
		t.Errorf("end = %v, want (0,-5)", end)
	}
}

func TestPathSVG(t *testing.T) {
	var p Path
	p.MoveTo(0, 0)
	p.LineTo(10.456, 20)
	p.QuadTo(1, 2, 3, 4)
	p.Close()
	if got, want := p.SVG(), "M0,0L10.46,20Q1,2 3,4Z"; got != want {
		t.Errorf("SVG() = %q, want %q", got, want)
	}
	var empty Path
	if empty.SVG() != "" || !empty.Empty() {
		t.Error("empty path should serialize to empty string")
	}
}

func TestPathTranslate(t *testing.T) {
	var p Path
	p.MoveTo(1, 1)
	p.LineTo(2, 2)
	q := p.Translate(Pt(10, -1))
	if !strings.HasPrefix(q.SVG(), "M11,0L12,1") {
		t.Errorf("translated = %q", q.SVG())
	}
	if p.SVG() != "M1,1L2,2" {
		t.Errorf("original mutated: %q", p.SVG())
	}
	if got := p.Translate(Pt(0, 1)).SVG(); got != "M1,2L2,3" {
		t.Errorf("SVG on a returned path = %q", got)
	}
}

func TestPathIsFinite(t *testing.T) {
	var p Path
	p.MoveTo(0, 0)
	p.LineTo(math.NaN(), 1)
	if p.IsFinite() {
		t.Error("path with NaN reported finite")
	}
}

func TestArcSpans(t *testing.T) {
	a := Arc{StartAngle: 1, EndAngle: 2, PadAngle: 0.2, OuterRadius: 10}
	if got := a.RenderedSpan(); math.Abs(got-0.8) > 1e-12 {
		t.Errorf("RenderedSpan = %v", got)
	}
	if a.Bisector() != 1.5 {
		t.Errorf("Bisector = %v", a.Bisector())
	}
	if a.IsEmpty() {
		t.Error("non-empty arc reported empty")
	}
	z := Arc{StartAngle: 1, EndAngle: 1.01, PadAngle: 0.01, OuterRadius: 10}
	if !z.IsEmpty() || z.RenderedSpan() != 0 {
		t.Errorf("pad-only arc should be empty, rendered span %v", z.RenderedSpan())
	}
}

func TestBoxAt(t *testing.T) {
	p := Pt(100, 50)
	if got := BoxAt(p, SideEnd, 60, 16); got != (Rect{X: 100, Y: 42, W: 60, H: 16}) {
		t.Errorf("end box = %+v", got)
	}
	if got := BoxAt(p, SideStart, 60, 16); got != (Rect{X: 40, Y: 42, W: 60, H: 16}) {
		t.Errorf("start box = %+v", got)
	}
}

func TestRectOverlapsY(t *testing.T) {
	a := Rect{Y: 0, H: 10}
	if !a.OverlapsY(Rect{Y: 5, H: 10}) {
		t.Error("expected overlap")
	}
	if a.OverlapsY(Rect{Y: 10, H: 10}) {
		t.Error("touching rects should not overlap")
	}
}
