package handdrawn

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/matzehuels/stackchart/pkg/chart/geom"
	"github.com/matzehuels/stackchart/pkg/render/styles"
)

func TestWobbledRect(t *testing.T) {
	path := wobbledRect(10, 20, 100, 50, 42, "label-a")

	if !strings.HasPrefix(path, "M") || !strings.HasSuffix(path, "Z") {
		t.Errorf("wobbledRect() should be a closed path, got: %s", path)
	}
	if strings.Count(path, "Q") != 4 {
		t.Errorf("wobbledRect() should bow all four sides, got: %s", path)
	}
	if path != wobbledRect(10, 20, 100, 50, 42, "label-a") {
		t.Error("wobbledRect() should be deterministic")
	}
	if path == wobbledRect(10, 20, 100, 50, 42, "label-b") {
		t.Error("wobbledRect() should differ between ids")
	}
}

func TestWobble(t *testing.T) {
	var p geom.Path
	p.MoveTo(0, 0)
	p.LineTo(100, 0)
	p.QuadTo(120, 20, 100, 40)
	p.CubicTo(80, 60, 20, 60, 0, 40)
	p.Close()

	w := wobble(p, 1, 7, "series-0")
	if len(w.Segments) != len(p.Segments) {
		t.Fatalf("wobble changed segment count: %d != %d", len(w.Segments), len(p.Segments))
	}
	for i, s := range w.Segments {
		if s.Op != p.Segments[i].Op {
			t.Errorf("segment %d op = %v, want %v", i, s.Op, p.Segments[i].Op)
		}
		for j, pt := range s.Pts {
			orig := p.Segments[i].Pts[j]
			if d := pt.X - orig.X; d < -1 || d > 1 {
				t.Errorf("segment %d point %d moved %v in x", i, j, d)
			}
			if d := pt.Y - orig.Y; d < -1 || d > 1 {
				t.Errorf("segment %d point %d moved %v in y", i, j, d)
			}
		}
	}
	if w.SVG() != wobble(p, 1, 7, "series-0").SVG() {
		t.Error("wobble should be deterministic")
	}
}

func TestRotationFor(t *testing.T) {
	if rotationFor("a", 60, 16) != rotationFor("a", 60, 16) {
		t.Error("rotationFor() should be deterministic")
	}
	if rotationFor("a", 60, 16) == rotationFor("b", 60, 16) {
		t.Error("rotationFor() should differ between ids")
	}
	for _, id := range []string{"a", "b", "c", "slice-3"} {
		if rot := rotationFor(id, 120, 24); rot < -1 || rot > 1 {
			t.Errorf("rotationFor(%q) = %f, large boxes should tilt at most 1 degree", id, rot)
		}
	}
}

func TestRNG(t *testing.T) {
	r := newRNG(42)
	for i := 0; i < 100; i++ {
		if v := r.next(); v < 0 || v >= 1 {
			t.Errorf("rng.next() = %f, should be in [0, 1)", v)
		}
	}
	r1, r2 := newRNG(42), newRNG(42)
	for i := 0; i < 10; i++ {
		if r1.next() != r2.next() {
			t.Fatal("rng should be deterministic")
		}
	}
	if newRNG(42).next() == newRNG(43).next() {
		t.Error("different seeds should produce different sequences")
	}
}

func TestGreyForID(t *testing.T) {
	hexColor := regexp.MustCompile(`^#[0-9a-f]{6}$`)
	for i := 0; i < 50; i++ {
		id := fmt.Sprintf("label-%d", i)
		grey := greyForID(id)
		if !hexColor.MatchString(grey) {
			t.Fatalf("greyForID(%q) = %q is not a hex color", id, grey)
		}
		var r, g, b int
		if _, err := fmt.Sscanf(grey, "#%02x%02x%02x", &r, &g, &b); err != nil {
			t.Fatal(err)
		}
		if r != g || g != b || r < greyMin || r > greyMax {
			t.Errorf("greyForID(%q) = %q outside the grey range", id, grey)
		}
	}
}

func TestStyleOutput(t *testing.T) {
	s := New(42)
	var buf bytes.Buffer
	s.RenderDefs(&buf)

	var p geom.Path
	p.MoveTo(0, 0)
	p.LineTo(10, 10)
	s.RenderStroke(&buf, styles.Stroke{ID: "line-0", Path: p, Color: "#ff0000", Width: 2, Dashed: true})
	s.RenderSymbol(&buf, styles.Symbol{ID: "sym-0", Center: geom.Pt(5, 5), Radius: 4, Color: "#00ff00"})
	s.RenderLabel(&buf, styles.Label{
		ID: "label-0", Text: "a & b", Box: geom.Rect{X: 10, Y: 10, W: 60, H: 16},
		Side: geom.SideEnd, Line: []geom.Point{{X: 0, Y: 0}, {X: 5, Y: 5}, {X: 10, Y: 18}},
	})
	out := buf.String()

	for _, want := range []string{
		`<filter id="handdrawn-rough">`,
		`filter="url(#handdrawn-rough)"`,
		`stroke-dasharray="6 4"`,
		`id="sym-0"`,
		`a &amp; b`,
		`transform="rotate(`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
