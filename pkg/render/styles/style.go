// Package styles draws chart primitives as SVG.
//
// The sinks reduce area and pie geometry to four primitives: filled paths,
// stroked paths, point symbols and arc labels. A [Style] decides how each
// is written. [Simple] draws flat shapes; the handdrawn subpackage draws a
// sketchy, seeded variant.
package styles

import (
	"bytes"

	"github.com/matzehuels/stackchart/pkg/chart/geom"
)

// Style defines the visual appearance of rendered charts.
type Style interface {
	// RenderDefs writes SVG <defs> content (filters, patterns).
	RenderDefs(buf *bytes.Buffer)
	// RenderFill writes a filled shape: an area band or a pie slice.
	RenderFill(buf *bytes.Buffer, f Fill)
	// RenderStroke writes an unfilled path: a series line or the mark line.
	RenderStroke(buf *bytes.Buffer, s Stroke)
	// RenderSymbol writes a point marker.
	RenderSymbol(buf *bytes.Buffer, s Symbol)
	// RenderLabel writes an arc label and its leader line.
	RenderLabel(buf *bytes.Buffer, l Label)
}

// Fill is a filled path.
type Fill struct {
	ID       string
	Path     geom.Path
	Color    string
	Opacity  float64 // 0 means opaque
	ClipID   string
	Active   bool
	Animated bool
}

// Stroke is a stroked path.
type Stroke struct {
	ID       string
	Path     geom.Path
	Color    string
	Width    float64
	Dashed   bool
	ClipID   string
	Animated bool
}

// Symbol is a circular point marker.
type Symbol struct {
	ID       string
	Center   geom.Point
	Radius   float64
	Color    string
	Active   bool
	ClipID   string
	Animated bool
}

// Label is an arc label. Box is the text box; Line is the leader from the
// arc edge to the label position.
type Label struct {
	ID    string
	Text  string
	Box   geom.Rect
	Side  geom.Side
	Line  []geom.Point
	Color string
}

// Classes returns the CSS class list for a primitive.
func Classes(base string, active, animated bool) string {
	c := base
	if active {
		c += " active"
	}
	if animated {
		c += " animated"
	}
	return c
}

// ClipAttr returns a clip-path attribute, or nothing for an empty id.
func ClipAttr(id string) string {
	if id == "" {
		return ""
	}
	return ` clip-path="url(#` + EscapeXML(id) + `)"`
}
