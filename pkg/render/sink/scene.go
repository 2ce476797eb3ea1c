package sink

import (
	"fmt"

	"github.com/matzehuels/stackchart/pkg/chart/area"
	"github.com/matzehuels/stackchart/pkg/chart/data"
	"github.com/matzehuels/stackchart/pkg/chart/geom"
	"github.com/matzehuels/stackchart/pkg/chart/pie"
	"github.com/matzehuels/stackchart/pkg/render/styles"
)

const (
	markLineColor = "#999999"
	labelColor    = "#333333"
	pieID         = "pie"
)

// Clip is a named rectangular clip region.
type Clip struct {
	ID   string
	Rect geom.Rect
}

// Item is one drawable primitive. Exactly one field is set.
type Item struct {
	Fill   *styles.Fill
	Stroke *styles.Stroke
	Symbol *styles.Symbol
	Label  *styles.Label
}

// Scene is a chart reduced to primitives in draw order.
type Scene struct {
	ID     string
	Width  float64
	Height float64
	Clips  []Clip
	Items  []Item
}

func (s *Scene) add(it Item) { s.Items = append(s.Items, it) }

// AreaScene reduces area geometry. Each layer draws its band under its
// line; the mark line and symbols follow all layers.
func AreaScene(g *area.Geometry) Scene {
	s := Scene{
		ID:     g.ID,
		Width:  g.Width,
		Height: g.Height,
		Clips:  []Clip{{ID: g.ClipID, Rect: g.Clip}},
	}
	for _, l := range g.Layers {
		if !l.Area.Empty() {
			s.add(Item{Fill: &styles.Fill{
				ID:       fmt.Sprintf("%s-area-%d", g.ID, l.Index),
				Path:     *l.Area,
				Color:    l.Color,
				Opacity:  l.Opacity,
				ClipID:   g.ClipID,
				Animated: l.Animated,
			}})
		}
		if !l.Line.Empty() {
			s.add(Item{Stroke: &styles.Stroke{
				ID:       fmt.Sprintf("%s-line-%d", g.ID, l.Index),
				Path:     *l.Line,
				Color:    l.Color,
				Width:    l.Width,
				ClipID:   g.ClipID,
				Animated: l.Animated,
			}})
		}
	}
	if m := g.MarkLine; m != nil {
		var p geom.Path
		p.MoveTo(m.X, m.Y0)
		p.LineTo(m.X, m.Y1)
		s.add(Item{Stroke: &styles.Stroke{
			ID:     g.ID + "-markline",
			Path:   p,
			Color:  markLineColor,
			Width:  m.StrokeWidth,
			Dashed: true,
		}})
	}
	for _, sl := range g.Symbols {
		for i, sym := range sl.Symbols {
			s.add(Item{Symbol: &styles.Symbol{
				ID:       fmt.Sprintf("%s-symbol-%d-%d", g.ID, sl.Index, i),
				Center:   sym.Center,
				Radius:   sym.Radius,
				Color:    sl.Color,
				Active:   sym.Active,
				ClipID:   g.ClipID,
				Animated: sl.Animated,
			}})
		}
	}
	return s
}

// PieScene reduces pie geometry. Labels are drawn above every slice.
func PieScene(g *pie.Geometry) Scene {
	s := Scene{ID: pieID, Width: g.Width, Height: g.Height}
	for _, sl := range g.Slices {
		s.add(Item{Fill: &styles.Fill{
			ID:       fmt.Sprintf("%s-slice-%d", pieID, sl.Arc.Index),
			Path:     sl.Path,
			Color:    sl.Color,
			Active:   sl.Active,
			Animated: sl.Animated,
		}})
	}
	for _, l := range g.Labels {
		s.add(Item{Label: &styles.Label{
			ID:    fmt.Sprintf("%s-label-%d", pieID, l.Index),
			Text:  data.KeyString(l.Key),
			Box:   l.Box,
			Side:  l.Side,
			Line:  l.Line,
			Color: labelColor,
		}})
	}
	return s
}

func (s Scene) clip(id string) (geom.Rect, bool) {
	for _, c := range s.Clips {
		if c.ID == id {
			return c.Rect, true
		}
	}
	return geom.Rect{}, false
}
