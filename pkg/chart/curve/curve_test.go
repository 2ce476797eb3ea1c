package curve

import (
	"testing"

	"github.com/matzehuels/stackchart/pkg/chart/geom"
	"github.com/matzehuels/stackchart/pkg/errors"
)

var pts = []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 10}, {X: 20, Y: 5}}

func trace(c Curve, join bool) string {
	var p geom.Path
	if join {
		p.MoveTo(-5, -5)
	}
	c.Trace(&p, pts, join)
	return p.SVG()
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		want    Curve
		wantErr bool
	}{
		{"", LinearCurve{}, false},
		{"linear", LinearCurve{}, false},
		{"step", StepCurve{T: 0.5}, false},
		{"stepBefore", StepCurve{T: 0}, false},
		{"stepAfter", StepCurve{T: 1}, false},
		{"smooth", MonotoneXCurve{}, false},
		{"monotoneX", MonotoneXCurve{}, false},
		{"cardinal", nil, true},
	}
	for _, tt := range tests {
		got, err := Parse(tt.name)
		if tt.wantErr {
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Parse(%q) error = %v, want INVALID_CONFIG", tt.name, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("Parse(%q) = %v, %v; want %v", tt.name, got, err, tt.want)
		}
	}
	if _, ok := For("bogus").(LinearCurve); !ok {
		t.Error("For should fall back to linear")
	}
}

func TestLinear(t *testing.T) {
	if got, want := trace(LinearCurve{}, false), "M0,0L10,10L20,5"; got != want {
		t.Errorf("linear = %q, want %q", got, want)
	}
	if got, want := trace(LinearCurve{}, true), "M-5,-5L0,0L10,10L20,5"; got != want {
		t.Errorf("joined linear = %q, want %q", got, want)
	}
}

func TestStep(t *testing.T) {
	tests := []struct {
		c    StepCurve
		want string
	}{
		{StepCurve{T: 0.5}, "M0,0L5,0L5,10L10,10L15,10L15,5L20,5"},
		{StepCurve{T: 0}, "M0,0L0,10L10,10L10,5L20,5"},
		{StepCurve{T: 1}, "M0,0L10,0L10,10L20,10L20,5"},
	}
	for _, tt := range tests {
		if got := trace(tt.c, false); got != tt.want {
			t.Errorf("step(%v) = %q, want %q", tt.c.T, got, tt.want)
		}
	}
}

func TestMonotoneXPassesThroughPoints(t *testing.T) {
	var p geom.Path
	MonotoneXCurve{}.Trace(&p, pts, false)
	if len(p.Segments) != 3 {
		t.Fatalf("segments = %d, want move + 2 cubics", len(p.Segments))
	}
	for i, seg := range p.Segments[1:] {
		if seg.Op != geom.OpCubic {
			t.Fatalf("segment %d op = %v", i, seg.Op)
		}
		if end := seg.Pts[2]; end != pts[i+1] {
			t.Errorf("segment %d ends at %v, want %v", i, end, pts[i+1])
		}
	}
	// Local extremum at pts[1] gets a flat tangent.
	if c2 := p.Segments[1].Pts[1]; c2.Y != 10 {
		t.Errorf("tangent at peak not flat: control %v", c2)
	}
}

func TestMonotoneXShortInputIsLinear(t *testing.T) {
	var p geom.Path
	MonotoneXCurve{}.Trace(&p, pts[:2], false)
	if p.SVG() != "M0,0L10,10" {
		t.Errorf("two points = %q", p.SVG())
	}
}
