// Package handdrawn provides a sketchy chart style: outlines wobble, label
// boxes are slightly rotated and a turbulence filter roughens edges. All
// randomness is derived from a seed and the element id, so the same chart
// always renders identically.
package handdrawn

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/stackchart/pkg/chart/geom"
	"github.com/matzehuels/stackchart/pkg/render/styles"
)

const (
	filterID   = "handdrawn-rough"
	fontFamily = `xkcd Script, Comic Sans MS, cursive`
	strokeInk  = "#333333"
	wobbleAmp  = 1.2
)

// Style is the handdrawn style.
type Style struct {
	seed uint64
}

// New returns a handdrawn style. Different seeds give different wobble.
func New(seed uint64) *Style {
	return &Style{seed: seed}
}

func (s *Style) RenderDefs(buf *bytes.Buffer) {
	fmt.Fprintf(buf, `  <filter id="%s"><feTurbulence type="fractalNoise" baseFrequency="0.03" numOctaves="2" seed="%d"/><feDisplacementMap in="SourceGraphic" scale="2"/></filter>`+"\n",
		filterID, s.seed%1000)
}

func (s *Style) RenderFill(buf *bytes.Buffer, f styles.Fill) {
	if f.Path.Empty() {
		return
	}
	p := wobble(f.Path, wobbleAmp, s.seed, f.ID)
	fmt.Fprintf(buf, `  <path id="%s" class="%s" d="%s" fill="%s" stroke="%s" stroke-width="1" filter="url(#%s)"`,
		styles.EscapeXML(f.ID), styles.Classes("fill", f.Active, f.Animated), p.SVG(),
		styles.EscapeXML(f.Color), strokeInk, filterID)
	if f.Opacity > 0 && f.Opacity < 1 {
		fmt.Fprintf(buf, ` fill-opacity="%s"`, styles.Num(f.Opacity))
	}
	buf.WriteString(styles.ClipAttr(f.ClipID))
	buf.WriteString("/>\n")
}

func (s *Style) RenderStroke(buf *bytes.Buffer, st styles.Stroke) {
	if st.Path.Empty() {
		return
	}
	p := wobble(st.Path, wobbleAmp, s.seed, st.ID)
	fmt.Fprintf(buf, `  <path id="%s" class="%s" d="%s" fill="none" stroke="%s" stroke-width="%s" stroke-linecap="round" filter="url(#%s)"`,
		styles.EscapeXML(st.ID), styles.Classes("stroke", false, st.Animated), p.SVG(),
		styles.EscapeXML(st.Color), styles.Num(st.Width), filterID)
	if st.Dashed {
		buf.WriteString(` stroke-dasharray="6 4"`)
	}
	buf.WriteString(styles.ClipAttr(st.ClipID))
	buf.WriteString("/>\n")
}

func (s *Style) RenderSymbol(buf *bytes.Buffer, sym styles.Symbol) {
	var p geom.Path
	p.Arc(sym.Center, sym.Radius, 0, geom.Tau)
	p.Close()
	p = wobble(p, sym.Radius*0.15, s.seed, sym.ID)
	fmt.Fprintf(buf, `  <path id="%s" class="%s" d="%s" fill="%s" stroke="%s" stroke-width="1.5"%s/>`+"\n",
		styles.EscapeXML(sym.ID), styles.Classes("symbol", sym.Active, sym.Animated), p.SVG(),
		styles.EscapeXML(sym.Color), strokeInk, styles.ClipAttr(sym.ClipID))
}

func (s *Style) RenderLabel(buf *bytes.Buffer, l styles.Label) {
	if len(l.Line) > 1 {
		var p geom.Path
		p.MoveTo(l.Line[0].X, l.Line[0].Y)
		for _, pt := range l.Line[1:] {
			p.LineTo(pt.X, pt.Y)
		}
		p = wobble(p, wobbleAmp/2, s.seed, l.ID+"-leader")
		fmt.Fprintf(buf, `  <path class="leader" d="%s" fill="none" stroke="%s" stroke-width="1"/>`+"\n", p.SVG(), strokeInk)
	}
	b := l.Box
	rot := rotationFor(l.ID, b.W, b.H)
	fmt.Fprintf(buf, `  <g class="label" transform="rotate(%.2f %s %s)">`+"\n", rot, styles.Num(b.X+b.W/2), styles.Num(b.Y+b.H/2))
	fmt.Fprintf(buf, `    <path d="%s" fill="%s" stroke="%s" stroke-width="1"/>`+"\n",
		wobbledRect(b.X, b.Y, b.W, b.H, s.seed, l.ID), greyForID(l.ID), strokeInk)
	x, y, anchor := styles.TextAnchor(l)
	fmt.Fprintf(buf, `    <text id="%s" x="%s" y="%s" text-anchor="%s" dominant-baseline="central" font-family="%s" font-size="%s" fill="%s">%s</text>`+"\n",
		styles.EscapeXML(l.ID), styles.Num(x), styles.Num(y), anchor, fontFamily,
		styles.Num(styles.FontSize(b)), strokeInk, styles.EscapeXML(styles.TruncateLabel(l.Text, b)))
	buf.WriteString("  </g>\n")
}

var _ styles.Style = (*Style)(nil)
