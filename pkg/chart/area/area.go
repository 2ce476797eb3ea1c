// Package area builds the geometry of area and line charts.
//
// [Build] lays out a normalized shape according to the chart type
// (standard, grouped, stacked or stackedNormalized), projects it through
// the x and y scales and emits one layer per series with its line and
// area paths, the point symbols, the hover mark line and the clip region.
// Multi-series layers come out in reverse input order so that the first
// series is drawn last and sits on top.
package area

import (
	"slices"

	"github.com/matzehuels/stackchart/pkg/chart/active"
	"github.com/matzehuels/stackchart/pkg/chart/color"
	"github.com/matzehuels/stackchart/pkg/chart/curve"
	"github.com/matzehuels/stackchart/pkg/chart/data"
	"github.com/matzehuels/stackchart/pkg/chart/geom"
	"github.com/matzehuels/stackchart/pkg/chart/scale"
	"github.com/matzehuels/stackchart/pkg/errors"
)

// Padding is added around the plot area before clipping so that symbols
// on the data bounds are not cut off.
const (
	Padding     = 25.0
	HalfPadding = Padding / 2
)

// Config controls an area chart build.
type Config struct {
	// ID prefixes element ids such as the clip path.
	ID            string
	Type          data.ChartType
	Interpolation curve.Interpolation
	// XScale and YScale default to [scale.ForX] and [scale.ForY].
	XScale   scale.Scale
	YScale   scale.Scale
	Width    float64
	Height   float64
	IsZoomed bool
	Animated bool
	Scheme   string
	// Color picks series colors. Nil uses [color.Default].
	Color    color.Picker
	Elements Elements
}

// Point is a projected data point.
type Point struct {
	Key   any     `json:"key"`
	Value float64 `json:"value"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Y0    float64 `json:"y0"`
}

// Layer is the drawable line and area of one series.
type Layer struct {
	Key      any        `json:"key,omitempty"`
	Index    int        `json:"index"`
	Color    string     `json:"color"`
	Points   []Point    `json:"points"`
	Line     *geom.Path `json:"line,omitempty"`
	Area     *geom.Path `json:"area,omitempty"`
	Width    float64    `json:"strokeWidth,omitempty"`
	Opacity  float64    `json:"opacity,omitempty"`
	Animated bool       `json:"animated"`
}

// Symbol is one point marker.
type Symbol struct {
	Key    any        `json:"key"`
	Center geom.Point `json:"center"`
	Radius float64    `json:"radius"`
	Active bool       `json:"active"`
}

// SymbolLayer holds the markers of one series.
type SymbolLayer struct {
	Key      any      `json:"key,omitempty"`
	Index    int      `json:"index"`
	Color    string   `json:"color"`
	Symbols  []Symbol `json:"symbols"`
	Animated bool     `json:"animated"`
}

// MarkLine is the vertical guide at the hovered key.
type MarkLine struct {
	X           float64 `json:"x"`
	Y0          float64 `json:"y0"`
	Y1          float64 `json:"y1"`
	StrokeWidth float64 `json:"strokeWidth"`
}

// Geometry is the output of [Build]. Layers, MarkLine and Symbols are
// listed in draw order.
type Geometry struct {
	ID       string         `json:"id"`
	Type     data.ChartType `json:"type"`
	Width    float64        `json:"width"`
	Height   float64        `json:"height"`
	ClipID   string         `json:"clipId"`
	Clip     geom.Rect      `json:"clip"`
	Layers   []Layer        `json:"layers"`
	MarkLine *MarkLine      `json:"markLine,omitempty"`
	Symbols  []SymbolLayer  `json:"symbols,omitempty"`
}

// ClipRect returns the clip region for a width×height plot. Zoomed charts
// clip exactly at the horizontal data bounds; vertical padding is always
// kept.
func ClipRect(width, height float64, zoomed bool) geom.Rect {
	if zoomed {
		return geom.Rect{X: 0, Y: -HalfPadding, W: width, H: height + Padding}
	}
	return geom.Rect{X: -HalfPadding, Y: -HalfPadding, W: width + Padding, H: height + Padding}
}

// Build computes the geometry of shape under cfg for the selection sel.
func Build(shape data.Shape, cfg Config, sel active.Selection) (*Geometry, error) {
	if err := errors.ValidateDimensions(cfg.Width, cfg.Height); err != nil {
		return nil, err
	}
	t, err := data.ParseChartType(string(cfg.Type))
	if err != nil {
		return nil, err
	}
	if t == data.Pie {
		return nil, errors.New(errors.ErrCodeInvalidType, "area charts cannot render type %q", t)
	}
	if shape.Kind != t.Kind() {
		return nil, errors.ShapeMismatch("chart type %q requires %s data, got %s", t, t.Kind(), shape.Kind)
	}
	baseCurve, err := curve.Parse(string(cfg.Interpolation))
	if err != nil {
		return nil, err
	}
	bands, err := Stack(shape, t)
	if err != nil {
		return nil, err
	}

	xs, ys := cfg.XScale, cfg.YScale
	if xs == nil {
		xs = scale.ForX(shape, cfg.Width)
	}
	if ys == nil {
		ys = scale.ForY(shape, t, cfg.Height)
	}
	picker := cfg.Color
	if picker == nil {
		picker = color.Default()
	}
	id := cfg.ID
	if id == "" {
		id = "area"
	}

	g := &Geometry{
		ID:     id,
		Type:   t,
		Width:  cfg.Width,
		Height: cfg.Height,
		ClipID: id + "-path",
		Clip:   ClipRect(cfg.Width, cfg.Height, cfg.IsZoomed),
	}
	el := cfg.Elements
	for i, series := range bands {
		pts, err := project(series, xs, ys)
		if err != nil {
			return nil, err
		}
		var key, datum any
		if shape.Kind == data.Nested {
			key, datum = shape.Series[i].Key, shape.Series[i].Data
		} else {
			datum = shape.Points
		}
		c := picker.ColorFor(color.Request{
			Data:   shape,
			Scheme: cfg.Scheme,
			Active: sel,
			Point:  datum,
			Index:  i,
			Key:    key,
		})

		layer := Layer{Key: key, Index: i, Color: c, Points: pts, Animated: cfg.Animated}
		if el.Line != nil {
			layer.Line = linePath(pts, pick(el.Line.Curve, baseCurve))
			layer.Width = el.Line.StrokeWidth
		}
		if el.Area != nil {
			layer.Area = areaPath(pts, pick(el.Area.Curve, baseCurve))
			layer.Opacity = el.Area.Opacity
		}
		g.Layers = append(g.Layers, layer)

		if el.Symbols != nil {
			g.Symbols = append(g.Symbols, SymbolLayer{
				Key:      key,
				Index:    i,
				Color:    c,
				Symbols:  symbols(pts, el.Symbols.withDefaults(), sel),
				Animated: cfg.Animated && !sel.Active,
			})
		}
	}
	slices.Reverse(g.Layers)
	slices.Reverse(g.Symbols)

	if el.MarkLine != nil && sel.Active {
		if !geom.IsFinite(sel.Coordinate) {
			return nil, errors.Geometry("mark line coordinate is not finite")
		}
		g.MarkLine = &MarkLine{X: sel.Coordinate, Y0: 0, Y1: cfg.Height, StrokeWidth: el.MarkLine.StrokeWidth}
	}
	return g, nil
}

func project(bands []Band, xs, ys scale.Scale) ([]Point, error) {
	pts := make([]Point, len(bands))
	for j, b := range bands {
		p := Point{Key: b.Key, Value: b.Value, X: xs.Scale(b.Key), Y: ys.Scale(b.Y1), Y0: ys.Scale(b.Y0)}
		if !geom.IsFinite(p.X) || !geom.IsFinite(p.Y) || !geom.IsFinite(p.Y0) {
			return nil, errors.Geometry("key %q maps to a non-finite position (%g, %g)", data.KeyString(b.Key), p.X, p.Y)
		}
		pts[j] = p
	}
	return pts, nil
}

func pick(c, fallback curve.Curve) curve.Curve {
	if c != nil {
		return c
	}
	return fallback
}

func linePath(pts []Point, c curve.Curve) *geom.Path {
	top := make([]geom.Point, len(pts))
	for i, p := range pts {
		top[i] = geom.Pt(p.X, p.Y)
	}
	var path geom.Path
	c.Trace(&path, top, false)
	return &path
}

func areaPath(pts []Point, c curve.Curve) *geom.Path {
	n := len(pts)
	top := make([]geom.Point, n)
	base := make([]geom.Point, n)
	for i, p := range pts {
		top[i] = geom.Pt(p.X, p.Y)
		base[n-1-i] = geom.Pt(p.X, p.Y0)
	}
	var path geom.Path
	c.Trace(&path, top, false)
	c.Trace(&path, base, true)
	if n > 0 {
		path.Close()
	}
	return &path
}

func symbols(pts []Point, cfg Symbols, sel active.Selection) []Symbol {
	var out []Symbol
	for i, p := range pts {
		hovered := sel.Active && slices.ContainsFunc(sel.Keys, func(k any) bool { return data.KeyEqual(k, p.Key) })
		show := hovered
		switch cfg.Show {
		case ShowAlways:
			show = true
		case ShowFirst:
			show = show || i == 0
		case ShowLast:
			show = show || i == len(pts)-1
		}
		if !show {
			continue
		}
		r := cfg.Radius
		if hovered {
			r = cfg.ActiveRadius
		}
		out = append(out, Symbol{Key: p.Key, Center: geom.Pt(p.X, p.Y), Radius: r, Active: hovered})
	}
	return out
}
