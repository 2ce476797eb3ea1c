// Package pie builds the geometry of pie and doughnut charts.
//
// [Layout] turns a shallow point sequence into arc descriptors: slices
// start at 12 o'clock and run clockwise in data order, each spanning its
// share of the circle plus a pad angle, so spans and pads together cover
// exactly one turn. [Build] adds paths, colors and labels.
package pie

import (
	"math"

	"github.com/matzehuels/stackchart/pkg/chart/active"
	"github.com/matzehuels/stackchart/pkg/chart/color"
	"github.com/matzehuels/stackchart/pkg/chart/data"
	"github.com/matzehuels/stackchart/pkg/chart/geom"
	"github.com/matzehuels/stackchart/pkg/chart/label"
	"github.com/matzehuels/stackchart/pkg/errors"
)

// Default ratios.
const (
	DefaultInnerRadiusRatio = 0.75
	DefaultExplodeRatio     = 0.1
)

// Config controls arc layout and decoration.
type Config struct {
	// Doughnut cuts a hole of OuterRadius*InnerRadiusRatio.
	Doughnut         bool    `json:"doughnut,omitempty" toml:"doughnut"`
	InnerRadiusRatio float64 `json:"innerRadiusRatio,omitempty" toml:"inner_radius_ratio"`
	// PadAngle is the angular gap between slices, in radians.
	PadAngle float64 `json:"padAngle,omitempty" toml:"pad_angle"`
	// PadRadius turns the pad angle into a constant linear gap of
	// PadRadius*PadAngle. Zero uses sqrt(inner²+outer²).
	PadRadius float64 `json:"padRadius,omitempty" toml:"pad_radius"`
	// CornerRadius rounds each slice's outer corners.
	CornerRadius float64 `json:"cornerRadius,omitempty" toml:"corner_radius"`
	// Explode moves the hovered slice outward by OuterRadius*ExplodeRatio.
	Explode      bool    `json:"explode,omitempty" toml:"explode"`
	ExplodeRatio float64 `json:"explodeRatio,omitempty" toml:"explode_ratio"`
	Animated     bool    `json:"animated,omitempty" toml:"animated"`
	Scheme       string  `json:"scheme,omitempty" toml:"scheme"`

	// Color picks slice colors. Nil uses [color.Default].
	Color color.Picker `json:"-" toml:"-"`
	// Label enables labels. Nil renders none.
	Label *label.Options `json:"label,omitempty" toml:"label"`
	// Labeler places labels. Nil uses [label.Resolve].
	Labeler label.Func `json:"-" toml:"-"`
}

// WithDefaults fills unset fields.
func (c Config) WithDefaults() Config {
	if c.InnerRadiusRatio == 0 {
		c.InnerRadiusRatio = DefaultInnerRadiusRatio
	}
	if c.ExplodeRatio == 0 {
		c.ExplodeRatio = DefaultExplodeRatio
	}
	if c.Color == nil {
		c.Color = color.Default()
	}
	if c.Labeler == nil {
		c.Labeler = label.Resolve
	}
	return c
}

// Validate reports configuration errors.
func (c Config) Validate() error {
	if err := errors.ValidateRatio("innerRadiusRatio", c.InnerRadiusRatio); err != nil {
		return err
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"padAngle", c.PadAngle},
		{"padRadius", c.PadRadius},
		{"cornerRadius", c.CornerRadius},
		{"explodeRatio", c.ExplodeRatio},
	} {
		if err := errors.ValidateNonNegative(f.name, f.v); err != nil {
			return err
		}
	}
	return nil
}

// Slice is one drawable arc.
type Slice struct {
	Arc      geom.Arc  `json:"arc"`
	Path     geom.Path `json:"path"`
	Color    string    `json:"color"`
	Active   bool      `json:"active"`
	Animated bool      `json:"animated"`
}

// Geometry is the output of [Build].
type Geometry struct {
	Width       float64      `json:"width"`
	Height      float64      `json:"height"`
	Center      geom.Point   `json:"center"`
	OuterRadius float64      `json:"outerRadius"`
	InnerRadius float64      `json:"innerRadius"`
	Slices      []Slice      `json:"slices"`
	Labels      []geom.Label `json:"labels,omitempty"`
}

// Arcs returns the slice descriptors in data order.
func (g *Geometry) Arcs() []geom.Arc {
	arcs := make([]geom.Arc, len(g.Slices))
	for i, s := range g.Slices {
		arcs[i] = s.Arc
	}
	return arcs
}

// Radii returns the outer and inner radius for a width×height frame.
// Labels need room outside the pie, so labeled charts shrink to a third
// of the shorter side instead of half.
func Radii(cfg Config, width, height float64) (outer, inner float64) {
	outer = math.Min(width, height) / 2
	if cfg.Label != nil {
		outer = math.Min(width, height) / 3
	}
	if cfg.Doughnut {
		inner = outer * cfg.InnerRadiusRatio
	}
	return outer, inner
}

// Layout computes arc descriptors for points. cfg must already carry its
// defaults. Only the active slice is exploded.
func Layout(points []data.Point, cfg Config, width, height float64, sel active.Selection) []geom.Arc {
	n := len(points)
	if n == 0 {
		return nil
	}
	outer, inner := Radii(cfg, width, height)
	center := geom.Pt(width/2, height/2)

	pa := math.Min(cfg.PadAngle, geom.Tau/float64(n))
	var sum float64
	for _, p := range points {
		if p.Data > 0 {
			sum += p.Data
		}
	}
	var k float64
	if sum > 0 {
		k = (geom.Tau - float64(n)*pa) / sum
	}

	cr := cfg.CornerRadius
	arcs := make([]geom.Arc, n)
	a0 := 0.0
	for i, p := range points {
		span := 0.0
		if p.Data > 0 {
			span = p.Data * k
		}
		a1 := a0 + span + pa
		if i == n-1 && sum > 0 {
			a1 = geom.Tau
		}
		a := geom.Arc{
			Key:         p.Key,
			Index:       i,
			Value:       p.Data,
			StartAngle:  a0,
			EndAngle:    a1,
			PadAngle:    pa,
			InnerRadius: inner,
			OuterRadius: outer,
			Center:      center,
		}
		a.CornerRadius = math.Max(0, math.Min(cr, math.Min((outer-inner)/2, outer*a.RenderedSpan()/2)))
		if cfg.Explode && sel.Active && sel.Matches(p.Key) {
			a.Explode = geom.Polar(geom.Point{}, outer*cfg.ExplodeRatio, a.Bisector())
		}
		arcs[i] = a
		a0 = a1
	}
	return arcs
}

// Build lays out points and resolves paths, colors and labels against the
// current selection.
func Build(points []data.Point, cfg Config, width, height float64, sel active.Selection) (*Geometry, error) {
	if err := errors.ValidateDimensions(width, height); err != nil {
		return nil, err
	}
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	for _, p := range points {
		if !geom.IsFinite(p.Data) {
			return nil, errors.Geometry("slice %q has non-finite value", data.KeyString(p.Key))
		}
	}

	outer, inner := Radii(cfg, width, height)
	g := &Geometry{
		Width:       width,
		Height:      height,
		Center:      geom.Pt(width/2, height/2),
		OuterRadius: outer,
		InnerRadius: inner,
	}
	arcs := Layout(points, cfg, width, height, sel)
	for i, a := range arcs {
		g.Slices = append(g.Slices, Slice{
			Arc:  a,
			Path: ArcPath(a, cfg.PadRadius),
			Color: cfg.Color.ColorFor(color.Request{
				Data:   points,
				Scheme: cfg.Scheme,
				Active: sel,
				Point:  points[i],
				Index:  i,
				Key:    a.Key,
			}),
			Active:   sel.Active && sel.Matches(a.Key),
			Animated: cfg.Animated,
		})
	}
	if cfg.Label != nil {
		opts := *cfg.Label
		opts.Center = g.Center
		if opts.Bounds == nil && opts.DisplayAll {
			opts.Bounds = &geom.Rect{W: width, H: height}
		}
		g.Labels = cfg.Labeler(arcs, opts)
	}
	return g, nil
}
