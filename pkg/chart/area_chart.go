package chart

import (
	"github.com/matzehuels/stackchart/pkg/chart/active"
	"github.com/matzehuels/stackchart/pkg/chart/area"
	"github.com/matzehuels/stackchart/pkg/chart/color"
	"github.com/matzehuels/stackchart/pkg/chart/data"
	"github.com/matzehuels/stackchart/pkg/chart/scale"
	"github.com/matzehuels/stackchart/pkg/errors"
)

// AreaChart is the root of an area or line chart. It is not safe for
// concurrent use.
type AreaChart struct {
	id       string
	cfg      Config
	scheme   string
	picker   color.Picker
	elements area.Elements
	xScale   scale.Invertible
	yScale   scale.Scale

	store *active.Store
	shape data.Shape
	ready bool
	last  *area.Geometry
}

// AreaOption configures an [AreaChart].
type AreaOption func(*AreaChart)

// WithAreaID sets the element id prefix. By default a random one is used.
func WithAreaID(id string) AreaOption {
	return func(c *AreaChart) { c.id = id }
}

// WithAreaScheme sets the color scheme.
func WithAreaScheme(scheme string) AreaOption {
	return func(c *AreaChart) { c.scheme = scheme }
}

// WithAreaColor replaces the color picker.
func WithAreaColor(p color.Picker) AreaOption {
	return func(c *AreaChart) { c.picker = p }
}

// WithElements replaces the drawn sub-elements.
func WithElements(el area.Elements) AreaOption {
	return func(c *AreaChart) { c.elements = el }
}

// WithScales replaces the default x and y scales. Either may be nil.
func WithScales(x scale.Invertible, y scale.Scale) AreaOption {
	return func(c *AreaChart) { c.xScale, c.yScale = x, y }
}

// NewAreaChart returns an idle chart with every element enabled.
func NewAreaChart(cfg Config, opts ...AreaOption) *AreaChart {
	if t, err := data.ParseChartType(string(cfg.Type)); err == nil {
		cfg.Type = t
	}
	c := &AreaChart{
		id:       NewID(),
		cfg:      cfg,
		elements: area.DefaultElements(),
		store:    active.NewStore(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ID returns the element id prefix.
func (c *AreaChart) ID() string { return c.id }

// Config returns the chart configuration.
func (c *AreaChart) Config() Config { return c.cfg }

// SetConfig replaces the configuration. The selection is kept.
func (c *AreaChart) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	cfg.Type, _ = data.ParseChartType(string(cfg.Type))
	if cfg.Type == data.Pie {
		return errors.New(errors.ErrCodeInvalidType, "area charts cannot render type %q", cfg.Type)
	}
	c.cfg = cfg
	return nil
}

// SetData normalizes raw for the chart type and replaces the data. On
// error the previous data is kept. Replacing data resets the selection,
// since the hovered key may no longer exist.
func (c *AreaChart) SetData(raw any) error {
	shape, err := data.Normalize(raw, c.cfg.Type)
	if err != nil {
		return err
	}
	c.shape, c.ready = shape, true
	c.store.Leave()
	return nil
}

// Shape returns the normalized data.
func (c *AreaChart) Shape() data.Shape { return c.shape }

// Store returns the chart's hover state.
func (c *AreaChart) Store() *active.Store { return c.store }

// XScale returns the x scale the next render uses.
func (c *AreaChart) XScale() scale.Invertible {
	if c.xScale != nil {
		return c.xScale
	}
	return scale.ForX(c.shape, c.cfg.Width)
}

// Surface returns an interaction surface over the current data that feeds
// the chart's store.
func (c *AreaChart) Surface() *active.Surface {
	return &active.Surface{
		Handler: c.store,
		XScale:  c.XScale(),
		Shape:   c.shape,
		Width:   c.cfg.Width,
		Height:  c.cfg.Height,
	}
}

// Render builds the geometry for the current data and selection. On
// failure it returns the last valid geometry, which may be nil, together
// with the error.
func (c *AreaChart) Render() (*area.Geometry, error) {
	if !c.ready {
		return c.last, errors.New(errors.ErrCodeInvalidInput, "chart has no data")
	}
	g, err := area.Build(c.shape, area.Config{
		ID:            c.id,
		Type:          c.cfg.Type,
		Interpolation: c.cfg.Interpolation,
		XScale:        c.XScale(),
		YScale:        c.yScale,
		Width:         c.cfg.Width,
		Height:        c.cfg.Height,
		IsZoomed:      c.cfg.IsZoomed,
		Animated:      c.cfg.Animated,
		Scheme:        c.scheme,
		Color:         c.picker,
		Elements:      c.elements,
	}, c.store.Current())
	if err != nil {
		return c.last, err
	}
	c.last = g
	return g, nil
}

// HoverKey moves the pointer onto key k, as if the user rested on it. It
// reports false, leaving the selection unchanged, when k is not in the
// data.
func (c *AreaChart) HoverKey(k any) bool {
	for _, key := range c.shape.AllKeys() {
		if data.KeyEqual(key, k) {
			c.Surface().Pointer(c.XScale().Scale(key), c.cfg.Height/2)
			return true
		}
	}
	return false
}
