package styles

import (
	"bytes"
	"encoding/xml"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/stackchart/pkg/chart/geom"
)

const (
	fontHeightRatio = 0.75
	fontCharWidth   = 0.55
	fontSizeMin     = 8.0
	fontSizeMax     = 24.0
)

// FontSize returns the font size that fits a label box vertically.
func FontSize(box geom.Rect) float64 {
	return max(fontSizeMin, min(fontSizeMax, box.H*fontHeightRatio))
}

// TruncateLabel shortens text so it fits the box width at [FontSize],
// marking the cut with "..". At least three characters are kept.
func TruncateLabel(text string, box geom.Rect) string {
	charWidth := FontSize(box) * fontCharWidth
	maxChars := max(3, int(box.W/charWidth))
	r := []rune(text)
	if len(r) <= maxChars {
		return text
	}
	return string(r[:maxChars-2]) + ".."
}

// TextAnchor positions text inside a label box: labels on the end side
// read away from the pie from the box's left edge, start-side labels end
// at the box's right edge.
func TextAnchor(l Label) (x, y float64, anchor string) {
	y = l.Box.Y + l.Box.H/2
	if l.Side == geom.SideStart {
		return l.Box.Right(), y, "end"
	}
	return l.Box.X, y, "start"
}

// Points formats a polyline point list.
func Points(pts []geom.Point) string {
	var b strings.Builder
	for i, p := range pts {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(Num(p.X))
		b.WriteByte(',')
		b.WriteString(Num(p.Y))
	}
	return b.String()
}

// Num formats a coordinate with at most two decimals.
func Num(f float64) string {
	v := math.Round(f*100) / 100
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// EscapeXML escapes text for use in SVG content and attributes.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
