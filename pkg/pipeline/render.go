package pipeline

import (
	"fmt"

	"github.com/matzehuels/shelfview/pkg/render/shelf/plan"
	"github.com/matzehuels/shelfview/pkg/render/shelf/sink"
)

// Render generates output artifacts in the requested formats.
func Render(p plan.Plan, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := RenderFormat(p, format, opts)
		if err != nil {
			return nil, err
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderFormat renders p in a single format.
func RenderFormat(p plan.Plan, format string, opts Options) ([]byte, error) {
	svgOpts := buildSVGOptions(opts)

	var data []byte
	var err error
	switch format {
	case FormatSVG:
		data, err = sink.RenderSVG(p, svgOpts...)
	case FormatPNG:
		data, err = sink.RenderPNG(p, sink.WithScale(opts.Scale))
	case FormatPDF:
		data, err = sink.RenderPDF(p, sink.WithPDFSVGOptions(svgOpts...))
	case FormatJSON:
		data, err = sink.RenderJSON(p)
	default:
		return nil, ValidateFormat(format)
	}
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return data, nil
}

// buildSVGOptions builds SVG rendering options.
func buildSVGOptions(opts Options) []sink.SVGOption {
	var svgOpts []sink.SVGOption
	if opts.Title != "" {
		svgOpts = append(svgOpts, sink.WithTitle(opts.Title))
	}
	if opts.EmbedFont {
		svgOpts = append(svgOpts, sink.WithEmbeddedFont())
	}
	return svgOpts
}
