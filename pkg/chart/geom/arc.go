package geom

// Arc describes one pie or doughnut slice. StartAngle and EndAngle bound
// the slice including its padding; the drawn span is EndAngle-StartAngle-
// PadAngle, centered between them.
type Arc struct {
	Key          any     `json:"key"`
	Index        int     `json:"index"`
	Value        float64 `json:"value"`
	StartAngle   float64 `json:"startAngle"`
	EndAngle     float64 `json:"endAngle"`
	PadAngle     float64 `json:"padAngle"`
	InnerRadius  float64 `json:"innerRadius"`
	OuterRadius  float64 `json:"outerRadius"`
	CornerRadius float64 `json:"cornerRadius"`
	Center       Point   `json:"center"`
	Explode      Point   `json:"explode"`
}

// Span returns the angular extent allotted to the slice, padding included.
func (a Arc) Span() float64 { return a.EndAngle - a.StartAngle }

// SpanEpsilon is the smallest rendered span treated as visible. Smaller
// spans are rounding residue from padded zero-value slices.
const SpanEpsilon = 1e-9

// RenderedSpan returns the visible angular extent, padding excluded. Spans
// below [SpanEpsilon] are reported as exactly zero.
func (a Arc) RenderedSpan() float64 {
	s := a.Span() - a.PadAngle
	if s < SpanEpsilon {
		return 0
	}
	return s
}

// Bisector returns the angle halfway between StartAngle and EndAngle.
func (a Arc) Bisector() float64 { return (a.StartAngle + a.EndAngle) / 2 }

// IsEmpty reports whether the slice has nothing to draw.
func (a Arc) IsEmpty() bool { return a.RenderedSpan() <= 0 || a.OuterRadius <= 0 }

// Origin returns the slice center after the explode offset.
func (a Arc) Origin() Point { return a.Center.Add(a.Explode) }

// Side is the horizontal anchor of an arc label relative to its text.
type Side string

const (
	// SideStart anchors labels on the left half of the chart; text runs
	// toward the center.
	SideStart Side = "start"
	// SideEnd anchors labels on the right half; text runs away from it.
	SideEnd Side = "end"
)

// Label is a positioned arc label. Position is the anchor point where the
// leader line ends; Box is the label rectangle derived from it and Side.
type Label struct {
	Key      any     `json:"key"`
	Index    int     `json:"index"`
	Side     Side    `json:"side"`
	Position Point   `json:"position"`
	Angle    float64 `json:"angle"`
	Box      Rect    `json:"box"`
	Line     []Point `json:"line"`
}

// BoxAt returns a label box of size w×h anchored at p for the given side.
// End-side boxes extend rightward from p, start-side boxes leftward; both
// are vertically centered on p.
func BoxAt(p Point, side Side, w, h float64) Rect {
	x := p.X
	if side == SideStart {
		x -= w
	}
	return Rect{X: x, Y: p.Y - h/2, W: w, H: h}
}
