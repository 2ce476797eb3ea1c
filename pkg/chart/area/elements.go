package area

import "github.com/matzehuels/stackchart/pkg/chart/curve"

// ShowMode selects which points get a symbol.
type ShowMode string

const (
	// ShowHover draws symbols only at the hovered key.
	ShowHover ShowMode = "hover"
	// ShowAlways draws a symbol at every point.
	ShowAlways ShowMode = "always"
	// ShowFirst and ShowLast draw a symbol at one end of each series,
	// plus the hovered key.
	ShowFirst ShowMode = "first"
	ShowLast  ShowMode = "last"
)

// Line configures the series stroke.
type Line struct {
	StrokeWidth float64 `json:"strokeWidth,omitempty" toml:"stroke_width"`
	// Curve overrides the chart interpolation for this element.
	Curve curve.Curve `json:"-" toml:"-"`
}

// Area configures the series fill.
type Area struct {
	Opacity float64     `json:"opacity,omitempty" toml:"opacity"`
	Curve   curve.Curve `json:"-" toml:"-"`
}

// Symbols configures the point markers.
type Symbols struct {
	Radius       float64  `json:"radius,omitempty" toml:"radius"`
	ActiveRadius float64  `json:"activeRadius,omitempty" toml:"active_radius"`
	Show         ShowMode `json:"show,omitempty" toml:"show"`
}

// MarkLineStyle configures the vertical hover guide.
type MarkLineStyle struct {
	StrokeWidth float64 `json:"strokeWidth,omitempty" toml:"stroke_width"`
}

// Elements are the independently replaceable pieces of an area chart. A
// nil element is not drawn.
type Elements struct {
	Line     *Line          `json:"line,omitempty" toml:"line"`
	Area     *Area          `json:"area,omitempty" toml:"area"`
	Symbols  *Symbols       `json:"symbols,omitempty" toml:"symbols"`
	MarkLine *MarkLineStyle `json:"markLine,omitempty" toml:"mark_line"`
}

// DefaultElements enables every element with its default settings.
func DefaultElements() Elements {
	return Elements{
		Line:     &Line{StrokeWidth: 3},
		Area:     &Area{Opacity: 0.35},
		Symbols:  &Symbols{Radius: 4, ActiveRadius: 6, Show: ShowHover},
		MarkLine: &MarkLineStyle{StrokeWidth: 1},
	}
}

func (s *Symbols) withDefaults() Symbols {
	out := *s
	if out.Radius <= 0 {
		out.Radius = 4
	}
	if out.ActiveRadius <= 0 {
		out.ActiveRadius = out.Radius * 1.5
	}
	if out.Show == "" {
		out.Show = ShowHover
	}
	return out
}
