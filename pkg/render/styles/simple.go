package styles

import (
	"bytes"
	"fmt"
)

// Simple draws flat shapes with the chart colors.
type Simple struct{}

// RenderDefs writes nothing; Simple needs no filters.
func (Simple) RenderDefs(*bytes.Buffer) {}

func (Simple) RenderFill(buf *bytes.Buffer, f Fill) {
	if f.Path.Empty() {
		return
	}
	fmt.Fprintf(buf, `  <path id="%s" class="%s" d="%s" fill="%s"`,
		EscapeXML(f.ID), Classes("fill", f.Active, f.Animated), f.Path.SVG(), EscapeXML(f.Color))
	if f.Opacity > 0 && f.Opacity < 1 {
		fmt.Fprintf(buf, ` fill-opacity="%s"`, Num(f.Opacity))
	}
	buf.WriteString(ClipAttr(f.ClipID))
	buf.WriteString("/>\n")
}

func (Simple) RenderStroke(buf *bytes.Buffer, s Stroke) {
	if s.Path.Empty() {
		return
	}
	fmt.Fprintf(buf, `  <path id="%s" class="%s" d="%s" fill="none" stroke="%s" stroke-width="%s" stroke-linejoin="round" stroke-linecap="round"`,
		EscapeXML(s.ID), Classes("stroke", false, s.Animated), s.Path.SVG(), EscapeXML(s.Color), Num(s.Width))
	if s.Dashed {
		buf.WriteString(` stroke-dasharray="4 4"`)
	}
	buf.WriteString(ClipAttr(s.ClipID))
	buf.WriteString("/>\n")
}

func (Simple) RenderSymbol(buf *bytes.Buffer, s Symbol) {
	fmt.Fprintf(buf, `  <circle id="%s" class="%s" cx="%s" cy="%s" r="%s" fill="%s" stroke="#ffffff" stroke-width="1.5"%s/>`+"\n",
		EscapeXML(s.ID), Classes("symbol", s.Active, s.Animated), Num(s.Center.X), Num(s.Center.Y), Num(s.Radius),
		EscapeXML(s.Color), ClipAttr(s.ClipID))
}

func (Simple) RenderLabel(buf *bytes.Buffer, l Label) {
	if len(l.Line) > 1 {
		fmt.Fprintf(buf, `  <polyline class="leader" points="%s" fill="none" stroke="%s" stroke-width="1"/>`+"\n",
			Points(l.Line), EscapeXML(l.Color))
	}
	x, y, anchor := TextAnchor(l)
	fmt.Fprintf(buf, `  <text id="%s" class="label" x="%s" y="%s" text-anchor="%s" dominant-baseline="central" font-family="sans-serif" font-size="%s">%s</text>`+"\n",
		EscapeXML(l.ID), Num(x), Num(y), anchor, Num(FontSize(l.Box)), EscapeXML(TruncateLabel(l.Text, l.Box)))
}

var _ Style = Simple{}
