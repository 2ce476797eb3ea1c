package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/stackchart/pkg/render/styles"
)

// Transitions for elements flagged as animated. Dimmed (inactive) fills
// fade; the active slice grows out along its explode offset.
const chartCSS = `
    .animated { transition: fill 0.2s ease, d 0.3s ease, transform 0.3s ease; }
    .fill.active { filter: brightness(1.05); }
    .symbol.active { stroke-width: 2.5; }
    .label { pointer-events: none; }`

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style      styles.Style
	title      string
	background string
}

// WithStyle sets the drawing style (default [styles.Simple]).
func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// WithTitle adds an accessible <title>.
func WithTitle(t string) SVGOption { return func(r *svgRenderer) { r.title = t } }

// WithBackground fills the frame with a color before drawing.
func WithBackground(c string) SVGOption { return func(r *svgRenderer) { r.background = c } }

// RenderSVG writes a scene as a standalone SVG document.
func RenderSVG(s Scene, opts ...SVGOption) []byte {
	r := svgRenderer{style: styles.Simple{}}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%.0f" height="%.0f">`+"\n",
		styles.Num(s.Width), styles.Num(s.Height), s.Width, s.Height)
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", styles.EscapeXML(r.title))
	}

	buf.WriteString("  <defs>\n")
	r.style.RenderDefs(&buf)
	for _, c := range s.Clips {
		fmt.Fprintf(&buf, `  <clipPath id="%s"><rect x="%s" y="%s" width="%s" height="%s"/></clipPath>`+"\n",
			styles.EscapeXML(c.ID), styles.Num(c.Rect.X), styles.Num(c.Rect.Y), styles.Num(c.Rect.W), styles.Num(c.Rect.H))
	}
	buf.WriteString("  </defs>\n")

	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", styles.EscapeXML(r.background))
	}
	fmt.Fprintf(&buf, "  <g id=\"%s\">\n", styles.EscapeXML(s.ID))
	for _, it := range s.Items {
		switch {
		case it.Fill != nil:
			r.style.RenderFill(&buf, *it.Fill)
		case it.Stroke != nil:
			r.style.RenderStroke(&buf, *it.Stroke)
		case it.Symbol != nil:
			r.style.RenderSymbol(&buf, *it.Symbol)
		case it.Label != nil:
			r.style.RenderLabel(&buf, *it.Label)
		}
	}
	buf.WriteString("  </g>\n")
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", chartCSS)
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}
