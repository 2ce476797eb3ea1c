package pie

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/stackchart/pkg/chart/active"
	"github.com/matzehuels/stackchart/pkg/chart/data"
	"github.com/matzehuels/stackchart/pkg/chart/geom"
	"github.com/matzehuels/stackchart/pkg/chart/label"
	"github.com/matzehuels/stackchart/pkg/errors"
)

func points(values ...float64) []data.Point {
	pts := make([]data.Point, len(values))
	for i, v := range values {
		pts[i] = data.Point{Key: fmt.Sprintf("k%d", i), Data: v}
	}
	return pts
}

func TestLayoutConservesCircle(t *testing.T) {
	inputs := [][]float64{
		{1},
		{1, 2, 3},
		{5, 0, 0},
		{0.001, 1000, 3, 7},
		{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	}
	for _, values := range inputs {
		for _, pad := range []float64{0, 0.02, 0.3, 10} {
			cfg := Config{PadAngle: pad}.WithDefaults()
			arcs := Layout(points(values...), cfg, 400, 400, active.Selection{})
			var total float64
			for i, a := range arcs {
				total += a.RenderedSpan() + a.PadAngle
				if i > 0 {
					assert.Equal(t, arcs[i-1].EndAngle, a.StartAngle, "slices are contiguous")
				}
			}
			assert.InDelta(t, geom.Tau, total, 1e-9, "values=%v pad=%v", values, pad)
			assert.Equal(t, 0.0, arcs[0].StartAngle)
		}
	}
}

func TestLayoutProportions(t *testing.T) {
	arcs := Layout(points(1, 3), Config{}.WithDefaults(), 200, 200, active.Selection{})
	require.Len(t, arcs, 2)
	assert.InDelta(t, math.Pi/2, arcs[0].Span(), 1e-12)
	assert.InDelta(t, 3*math.Pi/2, arcs[1].Span(), 1e-12)
	assert.Equal(t, 100.0, arcs[0].OuterRadius)
	assert.Equal(t, 0.0, arcs[0].InnerRadius)
	assert.Equal(t, geom.Pt(100, 100), arcs[0].Center)
}

func TestBuildSingleSliceFullCircle(t *testing.T) {
	g, err := Build([]data.Point{{Key: "x", Data: 1}}, Config{Label: &label.Options{}}, 300, 300, active.Selection{})
	require.NoError(t, err)
	require.Len(t, g.Slices, 1)

	a := g.Slices[0].Arc
	assert.Equal(t, 0.0, a.StartAngle)
	assert.InDelta(t, geom.Tau, a.EndAngle, 1e-12)
	assert.False(t, g.Slices[0].Path.Empty())
	require.Len(t, g.Labels, 1, "full circle is above every angle threshold")
	assert.Equal(t, "x", g.Labels[0].Key)
}

func TestBuildDegenerateSlices(t *testing.T) {
	g, err := Build(points(5, 0, 0), Config{Doughnut: true}, 200, 200, active.Selection{})
	require.NoError(t, err)
	require.Len(t, g.Slices, 3)
	assert.InDelta(t, geom.Tau, g.Slices[0].Arc.Span(), 1e-12)
	for _, s := range g.Slices[1:] {
		assert.True(t, s.Arc.IsEmpty())
		assert.True(t, s.Path.Empty(), "zero slices draw nothing")
	}
}

func TestBuildZeroTotal(t *testing.T) {
	g, err := Build(points(0, 0), Config{}, 200, 200, active.Selection{})
	require.NoError(t, err)
	for _, s := range g.Slices {
		assert.Equal(t, 0.0, s.Arc.RenderedSpan())
		assert.True(t, s.Path.Empty())
	}
}

func TestBuildPaddedZeroSlices(t *testing.T) {
	pts := []data.Point{
		{Key: "a", Data: 3},
		{Key: "b", Data: 0},
		{Key: "c", Data: 7},
		{Key: "d", Data: 0},
		{Key: "e", Data: 0},
	}
	cfg := Config{PadAngle: 0.02, Label: &label.Options{DisplayAll: true}}
	g, err := Build(pts, cfg, 400, 400, active.Selection{})
	require.NoError(t, err)
	require.Len(t, g.Slices, 5)

	for _, s := range g.Slices {
		zero := s.Arc.Value == 0
		assert.Equal(t, zero, s.Arc.IsEmpty(), "slice %v", s.Arc.Key)
		assert.Equal(t, zero, s.Path.Empty(), "slice %v", s.Arc.Key)
		if zero {
			assert.Equal(t, 0.0, s.Arc.RenderedSpan(), "slice %v", s.Arc.Key)
		}
	}

	var keys []any
	for _, l := range g.Labels {
		keys = append(keys, l.Key)
	}
	assert.ElementsMatch(t, []any{"a", "c"}, keys)

	b := g.Slices[1].Arc
	_, ok := active.HitArc(g.Arcs(), geom.Polar(b.Origin(), b.OuterRadius/2, b.Bisector()))
	assert.False(t, ok, "zero slices are not hit targets")
}

func TestBuildRadii(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		wantOuter float64
		wantInner float64
	}{
		{"pie", Config{}, 100, 0},
		{"doughnut", Config{Doughnut: true}, 100, 75},
		{"doughnut ratio", Config{Doughnut: true, InnerRadiusRatio: 0.5}, 100, 50},
		{"labels shrink", Config{Label: &label.Options{}}, 200.0 / 3, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Build(points(1, 2), tt.cfg, 300, 200, active.Selection{})
			require.NoError(t, err)
			assert.InDelta(t, tt.wantOuter, g.OuterRadius, 1e-12)
			assert.InDelta(t, tt.wantInner, g.InnerRadius, 1e-12)
		})
	}
}

func TestLayoutCornerRadiusClamp(t *testing.T) {
	cfg := Config{CornerRadius: 50, Doughnut: true}.WithDefaults()
	arcs := Layout(points(1, 1, 1, 1, 1, 1, 1, 1, 1, 100), cfg, 200, 200, active.Selection{})
	for _, a := range arcs {
		assert.LessOrEqual(t, a.CornerRadius, (a.OuterRadius-a.InnerRadius)/2+1e-12)
		assert.LessOrEqual(t, a.CornerRadius, a.OuterRadius*a.RenderedSpan()/2+1e-12)
	}
	assert.InDelta(t, 12.5, arcs[9].CornerRadius, 1e-12, "wide slice limited by ring thickness")
}

func TestBuildExplodeOnlyActive(t *testing.T) {
	sel := active.Selection{Active: true, Keys: []any{"k1"}}
	g, err := Build(points(1, 1, 1, 1), Config{Explode: true}, 200, 200, sel)
	require.NoError(t, err)
	for i, s := range g.Slices {
		if i == 1 {
			assert.InDelta(t, 10, math.Hypot(s.Arc.Explode.X, s.Arc.Explode.Y), 1e-9)
			assert.True(t, s.Active)
			continue
		}
		assert.Equal(t, geom.Point{}, s.Arc.Explode, "slice %d", i)
		assert.False(t, s.Active)
	}

	idle, err := Build(points(1, 1, 1, 1), Config{Explode: true}, 200, 200, active.Selection{})
	require.NoError(t, err)
	for _, s := range idle.Slices {
		assert.Equal(t, geom.Point{}, s.Arc.Explode)
	}
}

func TestBuildColorsFollowSelection(t *testing.T) {
	idle, err := Build(points(1, 1), Config{}, 200, 200, active.Selection{})
	require.NoError(t, err)
	sel := active.Selection{Active: true, Keys: []any{"k0"}}
	hovered, err := Build(points(1, 1), Config{}, 200, 200, sel)
	require.NoError(t, err)

	assert.Equal(t, idle.Slices[0].Color, hovered.Slices[0].Color)
	assert.NotEqual(t, idle.Slices[1].Color, hovered.Slices[1].Color)
}

func TestBuildDenseLabels(t *testing.T) {
	values := make([]float64, 32)
	for i := range values {
		values[i] = 1
	}
	cfg := Config{PadAngle: 0.02, CornerRadius: 4, Doughnut: true, Label: &label.Options{}}
	g, err := Build(points(values...), cfg, 400, 400, active.Selection{})
	require.NoError(t, err)
	assert.Less(t, len(g.Labels), 32)

	cfg.Label = &label.Options{DisplayAll: true}
	g, err = Build(points(values...), cfg, 400, 400, active.Selection{})
	require.NoError(t, err)
	assert.Len(t, g.Labels, 32)
}

func TestBuildCustomLabeler(t *testing.T) {
	calls := 0
	cfg := Config{
		Label: &label.Options{},
		Labeler: func(arcs []geom.Arc, opts label.Options) []geom.Label {
			calls++
			assert.Equal(t, geom.Pt(50, 50), opts.Center)
			return nil
		},
	}
	_, err := Build(points(1, 2), cfg, 100, 100, active.Selection{})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name   string
		pts    []data.Point
		cfg    Config
		w, h   float64
		wantCo errors.Code
	}{
		{"zero width", points(1), Config{}, 0, 100, errors.ErrCodeInvalidConfig},
		{"bad ratio", points(1), Config{InnerRadiusRatio: 1.5}, 100, 100, errors.ErrCodeInvalidConfig},
		{"negative pad", points(1), Config{PadAngle: -1}, 100, 100, errors.ErrCodeInvalidConfig},
		{"nan value", []data.Point{{Key: "a", Data: math.NaN()}}, Config{}, 100, 100, errors.ErrCodeGeometry},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.pts, tt.cfg, tt.w, tt.h, active.Selection{})
			assert.True(t, errors.Is(err, tt.wantCo), "got %v", err)
		})
	}
}

func TestArcPath(t *testing.T) {
	a := geom.Arc{StartAngle: 0, EndAngle: math.Pi / 2, OuterRadius: 10, Center: geom.Pt(0, 0)}
	p := ArcPath(a, 0)
	require.False(t, p.Empty())
	assert.Equal(t, geom.OpMove, p.Segments[0].Op)
	assert.Equal(t, geom.OpClose, p.Segments[len(p.Segments)-1].Op)
	assert.Equal(t, "M0,-10C5.52,-10 10,-5.52 10,0L0,0Z", p.SVG())

	rounded := ArcPath(geom.Arc{StartAngle: 0, EndAngle: math.Pi / 2, OuterRadius: 10, CornerRadius: 2}, 0)
	var quads int
	for _, s := range rounded.Segments {
		if s.Op == geom.OpQuad {
			quads++
		}
	}
	assert.Equal(t, 2, quads, "outer corners are rounded")
}

func ExampleBuild() {
	pts := []data.Point{{Key: "a", Data: 1}, {Key: "b", Data: 1}}
	g, _ := Build(pts, Config{Doughnut: true}, 200, 200, active.Selection{})
	for _, s := range g.Slices {
		fmt.Printf("%v %.4f-%.4f r=%g..%g\n", s.Arc.Key, s.Arc.StartAngle, s.Arc.EndAngle, s.Arc.InnerRadius, s.Arc.OuterRadius)
	}
	// Output:
	// a 0.0000-3.1416 r=75..100
	// b 3.1416-6.2832 r=75..100
}
