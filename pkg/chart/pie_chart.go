package chart

import (
	"github.com/matzehuels/stackchart/pkg/chart/active"
	"github.com/matzehuels/stackchart/pkg/chart/data"
	"github.com/matzehuels/stackchart/pkg/chart/geom"
	"github.com/matzehuels/stackchart/pkg/chart/pie"
	"github.com/matzehuels/stackchart/pkg/errors"
)

// PieChart is the root of a pie or doughnut chart. It is not safe for
// concurrent use.
type PieChart struct {
	cfg    Config
	pieCfg pie.Config

	store  *active.Store
	points []data.Point
	ready  bool
	last   *pie.Geometry
	// stale marks last as built from replaced data or configuration.
	stale bool
}

// NewPieChart returns an idle pie chart. cfg.Type is forced to pie.
func NewPieChart(cfg Config, pc pie.Config) *PieChart {
	cfg.Type = data.Pie
	pc.Animated = pc.Animated || cfg.Animated
	return &PieChart{cfg: cfg, pieCfg: pc, store: active.NewStore()}
}

// Config returns the chart configuration.
func (c *PieChart) Config() Config { return c.cfg }

// PieConfig returns the arc configuration.
func (c *PieChart) PieConfig() pie.Config { return c.pieCfg }

// SetPieConfig replaces the arc configuration.
func (c *PieChart) SetPieConfig(pc pie.Config) error {
	if err := pc.WithDefaults().Validate(); err != nil {
		return err
	}
	c.pieCfg = pc
	c.stale = true
	return nil
}

// SetData normalizes raw as shallow pie data. On error the previous data
// is kept; on success the selection is reset.
func (c *PieChart) SetData(raw any) error {
	shape, err := data.Normalize(raw, data.Pie)
	if err != nil {
		return err
	}
	c.points, c.ready, c.stale = shape.Points, true, true
	c.store.Leave()
	return nil
}

// Points returns the normalized data.
func (c *PieChart) Points() []data.Point { return c.points }

// Store returns the chart's hover state.
func (c *PieChart) Store() *active.Store { return c.store }

// Surface returns an interaction surface hit-testing the arcs of the
// current data. The chart is rendered first when the last render is
// missing or predates SetData or SetPieConfig.
func (c *PieChart) Surface() *active.PieSurface {
	if c.last == nil || c.stale {
		_, _ = c.Render()
	}
	s := &active.PieSurface{Handler: c.store}
	if c.last != nil && !c.stale {
		s.Arcs = c.last.Arcs()
	}
	return s
}

// Render builds the geometry for the current data and selection. On
// failure it returns the last valid geometry with the error.
func (c *PieChart) Render() (*pie.Geometry, error) {
	if !c.ready {
		return c.last, errors.New(errors.ErrCodeInvalidInput, "chart has no data")
	}
	g, err := pie.Build(c.points, c.pieCfg, c.cfg.Width, c.cfg.Height, c.store.Current())
	if err != nil {
		return c.last, err
	}
	c.last, c.stale = g, false
	return g, nil
}

// HoverKey moves the pointer onto the middle of the slice keyed k. It
// reports false when no drawn slice has that key.
func (c *PieChart) HoverKey(k any) bool {
	s := c.Surface()
	for _, a := range s.Arcs {
		if !data.KeyEqual(a.Key, k) || a.IsEmpty() {
			continue
		}
		p := geom.Polar(a.Origin(), (a.InnerRadius+a.OuterRadius)/2, a.Bisector())
		s.Pointer(p.X, p.Y)
		return true
	}
	return false
}
