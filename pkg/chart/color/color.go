// Package color resolves fill and stroke colors for chart elements.
//
// Every lookup goes through a [Picker] and carries the chart's current
// active selection, so pickers can mute elements that are not hovered.
package color

import (
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/stackchart/pkg/chart/active"
)

// Request describes the element a color is needed for.
type Request struct {
	// Data is the full chart input.
	Data any
	// Scheme names the color scheme, or is a single color.
	Scheme string
	// Active is the chart's current selection.
	Active active.Selection
	// Point is the element's datum: a point, or a series' points.
	Point any
	// Index is the element's position in the input.
	Index int
	// Key identifies the element. Nil means the element belongs to the
	// whole chart.
	Key any
}

// Picker returns a CSS hex color for an element.
type Picker interface {
	ColorFor(Request) string
}

// PickerFunc adapts a function to [Picker].
type PickerFunc func(Request) string

// ColorFor implements [Picker].
func (f PickerFunc) ColorFor(r Request) string { return f(r) }

// DefaultScheme is used when a request names no scheme.
const DefaultScheme = "cybertron"

// Schemes maps scheme names to ordered palettes.
var Schemes = map[string][]string{
	"cybertron": {"#00ECB1", "#ACB7C9", "#418AD7", "#9E15BF", "#FDE74C", "#F38FB8", "#E84045", "#4FB8C9"},
	"category10": {"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
		"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf"},
	"ocean":  {"#0B3C5D", "#328CC1", "#6FB1E0", "#A3D5F7", "#1D2731"},
	"sunset": {"#F9C80E", "#F86624", "#EA3546", "#662E9B", "#43BCCD"},
	"greys":  {"#252525", "#525252", "#737373", "#969696", "#bdbdbd"},
}

// SchemeNames returns the registered scheme names, sorted.
func SchemeNames() []string {
	names := make([]string, 0, len(Schemes))
	for n := range Schemes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Palette returns the colors of a scheme. A scheme that parses as a hex
// color yields that single color, a comma-separated list of hex colors
// yields the list, and anything else yields the default scheme.
func Palette(scheme string) []string {
	if p, ok := Schemes[scheme]; ok {
		return p
	}
	var out []string
	for _, part := range strings.Split(scheme, ",") {
		c, err := colorful.Hex(strings.TrimSpace(part))
		if err != nil {
			return Schemes[DefaultScheme]
		}
		out = append(out, c.Hex())
	}
	return out
}

// SchemePicker is the default [Picker]. It cycles the scheme palette by
// element index and blends elements outside an active selection toward
// Background.
type SchemePicker struct {
	// Dim is the blend factor for unselected elements, in [0, 1].
	Dim float64
	// Background is the color unselected elements fade toward.
	Background string
}

// Default returns the picker used when a chart sets none.
func Default() *SchemePicker {
	return &SchemePicker{Dim: 0.6, Background: "#ffffff"}
}

// ColorFor implements [Picker].
func (p *SchemePicker) ColorFor(r Request) string {
	pal := Palette(r.Scheme)
	idx := r.Index % len(pal)
	if idx < 0 {
		idx += len(pal)
	}
	base := pal[idx]
	if r.Active.Matches(r.Key) {
		return base
	}
	return Blend(base, p.Background, p.Dim)
}

// Blend mixes a toward b by t in L*a*b* space. Unparseable inputs return a
// unchanged.
func Blend(a, b string, t float64) string {
	ca, err := colorful.Hex(a)
	if err != nil {
		return a
	}
	cb, err := colorful.Hex(b)
	if err != nil {
		return a
	}
	return ca.BlendLab(cb, t).Clamped().Hex()
}
