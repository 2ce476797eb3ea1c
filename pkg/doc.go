// Package pkg provides the libraries behind stackchart.
//
// # Overview
//
// Stackchart computes positioned draw instructions for area/line charts
// (standard, grouped, stacked, stacked-normalized) and pie/doughnut charts,
// including their hovered states. The pkg directory is organized as:
//
//  1. [chart] - the geometry core: data normalization, hover state,
//     area and arc builders, label placement
//  2. [render] - SVG, PNG and JSON sinks over the core's descriptors
//  3. [pipeline] - orchestration (normalize → build → render) with caching
//  4. [config], [cache], [store], [server] - definition files, artifact
//     caches, stored charts and the HTTP service
//
// # Architecture
//
//	chart definition (TOML/JSON)
//	         ↓
//	    [config] (decode, validate)
//	         ↓
//	    [chart/data] (normalize to a shallow or nested shape)
//	         ↓
//	    [chart/area] or [chart/pie] (geometry under the current selection)
//	         ↓
//	    [render/sink] (SVG/PNG/JSON)
//
// Pointer input reaches the geometry through [chart/active]: a surface
// resolves the pointer to a key, the chart's store records the selection,
// and the next render reads it.
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/stackchart/pkg/chart"
//	    "github.com/matzehuels/stackchart/pkg/chart/data"
//	    "github.com/matzehuels/stackchart/pkg/render/sink"
//	)
//
//	c := chart.NewAreaChart(chart.Config{Width: 600, Height: 300, Type: data.Standard})
//	if err := c.SetData([]data.Point{{Key: "jan", Data: 1}, {Key: "feb", Data: 3}}); err != nil {
//	    return err
//	}
//	c.HoverKey("feb")
//	g, err := c.Render()
//	if err != nil {
//	    return err
//	}
//	svg := sink.RenderSVG(sink.AreaScene(g))
//
// [chart]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/chart
// [chart/data]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/chart/data
// [chart/active]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/chart/active
// [chart/area]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/chart/area
// [chart/pie]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/chart/pie
// [render]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/render/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/pipeline
// [config]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/config
// [cache]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/store
// [server]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/server
package pkg
