// Package sink turns chart geometry into output formats.
//
// Geometry from the area and pie builders is first reduced to a [Scene]:
// an ordered list of styled primitives (fills, strokes, symbols, labels)
// plus the clip regions they reference. Every raster and vector sink walks
// the same scene, so z-order and clipping agree across formats.
//
//   - SVG: [RenderSVG], drawn through a [styles.Style]
//   - PNG: [RenderPNG], rasterized in-process with gogpu/gg
//   - JSON: [RenderJSON], the geometry descriptors themselves
//
// Basic usage:
//
//	g, _ := c.Render()
//	svg := sink.RenderSVG(sink.AreaScene(g), sink.WithStyle(handdrawn.New(42)))
//	png, err := sink.RenderPNG(sink.AreaScene(g), sink.WithScale(2))
//
// [styles.Style]: github.com/matzehuels/stackchart/pkg/render/styles.Style
package sink
