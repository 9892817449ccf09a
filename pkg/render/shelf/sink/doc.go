// Package sink writes a render plan in an output format.
//
// # Overview
//
// A "sink" replays the operations of a [plan.Plan] against a backend:
//
//   - SVG: vector output via github.com/ajstarks/svgo
//   - PNG: raster output via github.com/fogleman/gg
//   - PDF: the SVG converted by rsvg-convert
//   - JSON: the plan itself, for inspection and round-trip checks
//
// Sinks never reorder operations. A rotated operation is drawn in its own
// rotated frame and the frame is restored before the next operation.
//
// # Usage
//
//	svg, err := sink.RenderSVG(p, sink.WithEmbeddedFont())
//	png, err := sink.RenderPNG(p, sink.WithScale(2))
//
// PDF output requires librsvg:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
//
// [plan.Plan]: github.com/matzehuels/shelfview/pkg/render/shelf/plan.Plan
package sink
