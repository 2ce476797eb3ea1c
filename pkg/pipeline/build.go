package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/stackchart/pkg/chart"
	"github.com/matzehuels/stackchart/pkg/chart/area"
	"github.com/matzehuels/stackchart/pkg/chart/data"
	"github.com/matzehuels/stackchart/pkg/chart/pie"
	"github.com/matzehuels/stackchart/pkg/errors"
	"github.com/matzehuels/stackchart/pkg/observability"
	"github.com/matzehuels/stackchart/pkg/render/sink"
)

// Geometry holds the output of the build stage. Exactly one field is set.
type Geometry struct {
	Area *area.Geometry
	Pie  *pie.Geometry
}

// Scene reduces the geometry to drawable primitives.
func (g *Geometry) Scene() sink.Scene {
	if g.Pie != nil {
		return sink.PieScene(g.Pie)
	}
	return sink.AreaScene(g.Area)
}

// Value returns the concrete geometry.
func (g *Geometry) Value() any {
	if g.Pie != nil {
		return g.Pie
	}
	return g.Area
}

// Build normalizes the definition's data and computes its geometry under
// the interaction described by opts.
func Build(ctx context.Context, opts Options) (*Geometry, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	g, _, err := build(ctx, opts)
	return g, err
}

// build returns the geometry and the number of data points.
func build(ctx context.Context, opts Options) (*Geometry, int, error) {
	def := opts.Definition
	hooks := observability.Pipeline()
	chartType := string(def.Chart.Type)

	if def.IsPie() {
		c := chart.NewPieChart(def.Chart, def.PieConfig())
		size, err := normalize(ctx, chartType, func() (int, error) {
			err := c.SetData(def.Data)
			return len(c.Points()), err
		})
		if err != nil {
			return nil, 0, err
		}

		start := time.Now()
		hooks.OnBuildStart(ctx, chartType)
		g, err := buildPie(c, opts)
		hooks.OnBuildComplete(ctx, chartType, time.Since(start), err)
		if err != nil {
			return nil, size, err
		}
		opts.Logger.Debug("built pie geometry", "slices", len(g.Slices), "labels", len(g.Labels))
		return &Geometry{Pie: g}, size, nil
	}

	c := chart.NewAreaChart(def.Chart,
		chart.WithAreaID(chartID(opts)),
		chart.WithAreaScheme(def.Scheme),
		chart.WithElements(def.AreaElements()),
	)
	size, err := normalize(ctx, chartType, func() (int, error) {
		err := c.SetData(def.Data)
		return c.Shape().Len(), err
	})
	if err != nil {
		return nil, 0, err
	}

	start := time.Now()
	hooks.OnBuildStart(ctx, chartType)
	g, err := buildArea(c, opts)
	hooks.OnBuildComplete(ctx, chartType, time.Since(start), err)
	if err != nil {
		return nil, size, err
	}
	opts.Logger.Debug("built area geometry", "layers", len(g.Layers), "hovering", g.MarkLine != nil)
	return &Geometry{Area: g}, size, nil
}

func normalize(ctx context.Context, chartType string, fn func() (int, error)) (int, error) {
	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnNormalizeStart(ctx, chartType)
	size, err := fn()
	hooks.OnNormalizeComplete(ctx, chartType, size, time.Since(start), err)
	return size, err
}

func buildArea(c *chart.AreaChart, opts Options) (*area.Geometry, error) {
	switch {
	case opts.Hover != "":
		key, ok := findKey(c.Shape().AllKeys(), opts.Hover)
		if !ok || !c.HoverKey(key) {
			return nil, errors.New(errors.ErrCodeInvalidInput, "hover key %q not in data", opts.Hover)
		}
	case opts.PointerX != nil:
		c.Surface().Pointer(*opts.PointerX, c.Config().Height/2)
	}
	return c.Render()
}

func buildPie(c *chart.PieChart, opts Options) (*pie.Geometry, error) {
	g, err := c.Render()
	if err != nil || opts.Hover == "" {
		return g, err
	}
	keys := make([]any, len(c.Points()))
	for i, p := range c.Points() {
		keys[i] = p.Key
	}
	key, ok := findKey(keys, opts.Hover)
	if !ok || !c.HoverKey(key) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "hover key %q not in data", opts.Hover)
	}
	return c.Render()
}

func findKey(keys []any, s string) (any, bool) {
	for _, k := range keys {
		if data.KeyString(k) == s {
			return k, true
		}
	}
	return nil, false
}

// chartID derives a stable element id from the data, so identical input
// renders byte-identical SVG.
func chartID(opts Options) string {
	h := opts.DataHash()
	if len(h) < 8 {
		return chart.NewID()
	}
	return "chart-" + h[:8]
}
