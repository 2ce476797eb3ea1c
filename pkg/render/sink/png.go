package sink

import (
	"bytes"
	"fmt"
	"math"

	"github.com/gogpu/gg"

	"github.com/matzehuels/stackchart/pkg/chart/geom"
	"github.com/matzehuels/stackchart/pkg/render/styles"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale      float64
	background string
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithPNGBackground sets the background color (default white).
func WithPNGBackground(c string) PNGOption {
	return func(r *pngRenderer) { r.background = c }
}

// RenderPNG rasterizes a scene. Fills, strokes, symbols and label leader
// lines are drawn; label text is left to vector output since no font is
// bundled.
func RenderPNG(s Scene, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0, background: "#ffffff"}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 || math.IsNaN(r.scale) {
		return nil, fmt.Errorf("invalid png scale %v", r.scale)
	}

	w := int(math.Ceil(s.Width * r.scale))
	h := int(math.Ceil(s.Height * r.scale))
	dc := gg.NewContext(w, h)
	defer dc.Close()
	dc.ClearWithColor(gg.Hex(r.background))
	dc.Scale(r.scale, r.scale)
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)

	for _, it := range s.Items {
		var err error
		switch {
		case it.Fill != nil:
			err = r.fill(dc, s, *it.Fill)
		case it.Stroke != nil:
			err = r.stroke(dc, s, *it.Stroke)
		case it.Symbol != nil:
			err = r.symbol(dc, s, *it.Symbol)
		case it.Label != nil:
			err = r.label(dc, *it.Label)
		}
		if err != nil {
			return nil, fmt.Errorf("rasterize: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *pngRenderer) fill(dc *gg.Context, s Scene, f styles.Fill) error {
	if f.Path.Empty() {
		return nil
	}
	dc.Push()
	defer dc.Pop()
	applyClip(dc, s, f.ClipID)
	setColor(dc, f.Color, f.Opacity)
	trace(dc, f.Path)
	return dc.Fill()
}

func (r *pngRenderer) stroke(dc *gg.Context, s Scene, st styles.Stroke) error {
	if st.Path.Empty() {
		return nil
	}
	dc.Push()
	defer dc.Pop()
	applyClip(dc, s, st.ClipID)
	setColor(dc, st.Color, 1)
	dc.SetLineWidth(st.Width)
	if st.Dashed {
		dc.SetDash(4, 4)
	} else {
		dc.SetDash()
	}
	trace(dc, st.Path)
	return dc.Stroke()
}

func (r *pngRenderer) symbol(dc *gg.Context, s Scene, sym styles.Symbol) error {
	dc.Push()
	defer dc.Pop()
	applyClip(dc, s, sym.ClipID)
	setColor(dc, sym.Color, 1)
	dc.DrawCircle(sym.Center.X, sym.Center.Y, sym.Radius)
	if err := dc.Fill(); err != nil {
		return err
	}
	dc.SetHexColor("#ffffff")
	dc.SetLineWidth(1.5)
	dc.SetDash()
	dc.DrawCircle(sym.Center.X, sym.Center.Y, sym.Radius)
	return dc.Stroke()
}

func (r *pngRenderer) label(dc *gg.Context, l styles.Label) error {
	if len(l.Line) < 2 {
		return nil
	}
	setColor(dc, l.Color, 1)
	dc.SetLineWidth(1)
	dc.SetDash()
	dc.MoveTo(l.Line[0].X, l.Line[0].Y)
	for _, p := range l.Line[1:] {
		dc.LineTo(p.X, p.Y)
	}
	return dc.Stroke()
}

func applyClip(dc *gg.Context, s Scene, id string) {
	if id == "" {
		return
	}
	if c, ok := s.clip(id); ok {
		dc.ClipRect(c.X, c.Y, c.W, c.H)
	}
}

func setColor(dc *gg.Context, hex string, opacity float64) {
	c := gg.Hex(hex)
	if opacity > 0 && opacity < 1 {
		c.A *= opacity
	}
	dc.SetRGBA(c.R, c.G, c.B, c.A)
}

// trace replays a path on the context.
func trace(dc *gg.Context, p geom.Path) {
	for _, seg := range p.Segments {
		switch seg.Op {
		case geom.OpMove:
			dc.MoveTo(seg.Pts[0].X, seg.Pts[0].Y)
		case geom.OpLine:
			dc.LineTo(seg.Pts[0].X, seg.Pts[0].Y)
		case geom.OpQuad:
			dc.QuadraticTo(seg.Pts[0].X, seg.Pts[0].Y, seg.Pts[1].X, seg.Pts[1].Y)
		case geom.OpCubic:
			dc.CubicTo(seg.Pts[0].X, seg.Pts[0].Y, seg.Pts[1].X, seg.Pts[1].Y, seg.Pts[2].X, seg.Pts[2].Y)
		case geom.OpClose:
			dc.ClosePath()
		}
	}
}
