// Package render holds what the shelf renderers share.
//
// # Overview
//
// The bookshelf renderer lives in subpackages:
//
//   - [shelf/layout]: geometry (sizing, packing, placement)
//   - [shelf/styles]: colour variants and label fitting
//   - [shelf/plan]: ordered drawing operations
//   - [shelf/sink]: output formats (SVG, PNG, PDF, JSON)
//
// # Format Conversion
//
// [ToPDF] converts an SVG document with the external rsvg-convert tool
// (from librsvg):
//
//	svg, _ := sink.RenderSVG(p)
//	pdf, err := render.ToPDF(svg)
//
// [shelf/layout]: github.com/matzehuels/shelfview/pkg/render/shelf/layout
// [shelf/styles]: github.com/matzehuels/shelfview/pkg/render/shelf/styles
// [shelf/plan]: github.com/matzehuels/shelfview/pkg/render/shelf/plan
// [shelf/sink]: github.com/matzehuels/shelfview/pkg/render/shelf/sink
package render
