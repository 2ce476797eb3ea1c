// Package pipeline provides the chart rendering pipeline shared by the
// CLI and the HTTP service.
//
// The pipeline consists of three stages:
//
//  1. Normalize: classify the definition's data for its chart type
//  2. Build: compute area or pie geometry, optionally under a simulated
//     hover (a hovered key or a pointer x coordinate)
//  3. Render: write the geometry as SVG, PNG or JSON
//
// Geometry is a pure function of the definition and the interaction, so
// rendered artifacts are cached by a content hash of both.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Definition: def,
//	    Formats:    []string{"svg"},
//	    Hover:      "2024-03-01T00:00:00Z",
//	})
//	svg := result.Artifacts["svg"]
//
// Run the stages individually:
//
//	g, err := pipeline.Build(ctx, opts)
//	artifacts, err := pipeline.Render(ctx, g, opts)
package pipeline

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stackchart/pkg/cache"
	"github.com/matzehuels/stackchart/pkg/config"
	"github.com/matzehuels/stackchart/pkg/errors"
)

const (
	// DefaultSeed drives the handdrawn style's wobble.
	DefaultSeed = uint64(42)

	// DefaultScale is the PNG pixel density.
	DefaultScale = 2.0

	// MaxScale bounds the PNG pixel density.
	MaxScale = 4.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// Visual styles.
const (
	StyleSimple    = "simple"
	StyleHanddrawn = "handdrawn"
)

// DefaultStyle is the default visual style.
const DefaultStyle = StyleSimple

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
}

// ValidStyles is the set of supported visual styles.
var ValidStyles = map[string]bool{
	StyleSimple:    true,
	StyleHanddrawn: true,
}

// Options contains all configuration for one pipeline run.
type Options struct {
	Definition *config.Definition `json:"definition"`

	// Interaction. Hover names a data key to hover; PointerX places the
	// pointer at an x pixel coordinate (area charts only). Hover wins
	// when both are set.
	Hover    string   `json:"hover,omitempty"`
	PointerX *float64 `json:"pointer_x,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Style   string   `json:"style,omitempty"`
	Seed    uint64   `json:"seed,omitempty"`
	Scale   float64  `json:"scale,omitempty"`

	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Geometry is nil when every artifact came from the cache.
	Geometry *Geometry

	// DataHash is the content hash of the definition's data.
	DataHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Points     int
	Series     int
	BuildTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if !ValidStyles[style] {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid style: %q (must be one of: simple, handdrawn)", style)
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Definition == nil {
		return errors.New(errors.ErrCodeInvalidInput, "definition is required")
	}
	if err := o.Definition.Validate(); err != nil {
		return err
	}
	if o.PointerX != nil {
		if math.IsNaN(*o.PointerX) || math.IsInf(*o.PointerX, 0) {
			return errors.New(errors.ErrCodeInvalidInput, "pointer x must be finite")
		}
		if o.Definition.IsPie() && o.Hover == "" {
			return errors.New(errors.ErrCodeInvalidInput, "pointer x applies to area charts; hover a slice by key instead")
		}
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if err := ValidateStyle(o.Style); err != nil {
		return err
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Scale < 0 || o.Scale > MaxScale {
		return errors.New(errors.ErrCodeInvalidConfig, "scale must be within (0, %g], got %g", MaxScale, o.Scale)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// DataHash returns the content hash of the definition's data.
func (o *Options) DataHash() string {
	return cache.HashValue(o.Definition.Data)
}

// GeometryKeyOpts returns cache key options for the geometry.
func (o *Options) GeometryKeyOpts() cache.GeometryKeyOpts {
	d := o.Definition
	k := cache.GeometryKeyOpts{
		Type:          string(d.Chart.Type),
		Width:         d.Chart.Width,
		Height:        d.Chart.Height,
		Zoomed:        d.Chart.IsZoomed,
		Animated:      d.Chart.Animated,
		Interpolation: string(d.Chart.Interpolation),
		Config: cache.HashValue(struct {
			Name     string `json:"name"`
			Scheme   string `json:"scheme"`
			Pie      any    `json:"pie"`
			Elements any    `json:"elements"`
		}{d.Name, d.Scheme, d.Pie, d.Elements}),
		Hover: o.Hover,
	}
	if o.PointerX != nil {
		k.PointerX, k.HasX = *o.PointerX, true
	}
	return k
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatSVG:
		k.Style = fmt.Sprintf("%s:%d", o.Style, o.Seed)
	case FormatPNG:
		k.Style = fmt.Sprintf("scale:%g", o.Scale)
	}
	return k
}
