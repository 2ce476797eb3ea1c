package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/stackchart/pkg/observability"
	"github.com/matzehuels/stackchart/pkg/render/sink"
	"github.com/matzehuels/stackchart/pkg/render/styles"
	"github.com/matzehuels/stackchart/pkg/render/styles/handdrawn"
)

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, g *Geometry, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	scene := g.Scene()
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		start := time.Now()
		hooks.OnRenderStart(ctx, format)

		var (
			out []byte
			err error
		)
		switch format {
		case FormatSVG:
			out = sink.RenderSVG(scene, buildSVGOptions(opts)...)
		case FormatPNG:
			out, err = sink.RenderPNG(scene, sink.WithScale(opts.Scale))
		case FormatJSON:
			out, err = sink.RenderJSON(g.Value())
		default:
			err = fmt.Errorf("unsupported format: %s", format)
		}

		hooks.OnRenderComplete(ctx, format, len(out), time.Since(start), err)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = out
	}
	return artifacts, nil
}

func buildSVGOptions(opts Options) []sink.SVGOption {
	var svgOpts []sink.SVGOption
	switch opts.Style {
	case StyleHanddrawn:
		svgOpts = append(svgOpts, sink.WithStyle(handdrawn.New(opts.Seed)))
	default:
		svgOpts = append(svgOpts, sink.WithStyle(styles.Simple{}))
	}
	if name := opts.Definition.Name; name != "" {
		svgOpts = append(svgOpts, sink.WithTitle(name))
	}
	return svgOpts
}
