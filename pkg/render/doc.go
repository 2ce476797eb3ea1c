// Package render groups the output side of stackchart.
//
//   - [sink] reduces area and pie geometry to a [sink.Scene] and writes it
//     as SVG, PNG (software rasterized) or JSON
//   - [styles] draws scene primitives as SVG elements; [handdrawn] is a
//     sketch-like alternative to the plain style
//
// Rendering never changes geometry: the same scene drawn by different
// styles has the same paths, clips and label boxes.
//
// [sink]: github.com/matzehuels/stackchart/pkg/render/sink
// [sink.Scene]: github.com/matzehuels/stackchart/pkg/render/sink#Scene
// [styles]: github.com/matzehuels/stackchart/pkg/render/styles
// [handdrawn]: github.com/matzehuels/stackchart/pkg/render/styles/handdrawn
package render
