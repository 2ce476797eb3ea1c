// Package chart provides the chart roots that tie the geometry core
// together.
//
// A root owns the normalized data, the [active.Store] holding the hover
// selection, and the configuration. Every call to Render recomputes the
// geometry from scratch against the current selection; nothing is cached
// between renders. When a render fails, the root returns the last valid
// geometry alongside the error so callers never draw a broken frame.
//
//	c := chart.NewAreaChart(chart.Config{Width: 600, Height: 300, Type: data.Stacked})
//	if err := c.SetData(raw); err != nil { ... }
//	c.Surface().Pointer(120, 40) // hover
//	g, err := c.Render()
package chart

import (
	"github.com/google/uuid"

	"github.com/matzehuels/stackchart/pkg/chart/curve"
	"github.com/matzehuels/stackchart/pkg/chart/data"
	"github.com/matzehuels/stackchart/pkg/errors"
)

// Config is the host-level configuration shared by every chart kind.
type Config struct {
	Width         float64             `json:"width" toml:"width"`
	Height        float64             `json:"height" toml:"height"`
	IsZoomed      bool                `json:"isZoomed,omitempty" toml:"zoomed"`
	Animated      bool                `json:"animated,omitempty" toml:"animated"`
	Interpolation curve.Interpolation `json:"interpolation,omitempty" toml:"interpolation"`
	Type          data.ChartType      `json:"type" toml:"type"`
}

// Validate checks dimensions, chart type and interpolation.
func (c Config) Validate() error {
	if err := errors.ValidateDimensions(c.Width, c.Height); err != nil {
		return err
	}
	if _, err := data.ParseChartType(string(c.Type)); err != nil {
		return err
	}
	if _, err := curve.Parse(string(c.Interpolation)); err != nil {
		return err
	}
	return nil
}

// NewID returns a fresh element id prefix, safe for SVG ids.
func NewID() string {
	return "chart-" + uuid.NewString()[:8]
}
