// Package pipeline provides the core rendering pipeline for Shelfview.
//
// This package implements the complete load → layout → plan → render pipeline
// used by the CLI and the HTTP server. By centralizing this logic, both entry
// points produce byte-identical artifacts for the same library and options.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Decode a library file (JSON, YAML or TOML)
//  2. Layout: Size, pack and place books, then assemble the drawing plan
//  3. Render: Replay the plan in various formats (SVG, PNG, PDF, JSON)
//
// One random generator, seeded from Options.Seed, is threaded through the
// layout and plan stages, so a seed reproduces the whole rendering.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	lib, err := runner.Load(ctx, "library.yaml")
//	opts := pipeline.Options{
//	    Seed:    7,
//	    Leaning: true,
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, lib, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Layout and plan only
//	l, p, err := pipeline.ComputeLayout(lib, opts, nil)
//
//	// Render an existing plan
//	artifacts, err := pipeline.Render(p, opts)
package pipeline

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/shelfview/pkg/cache"
	"github.com/matzehuels/shelfview/pkg/errors"
	"github.com/matzehuels/shelfview/pkg/library"
	"github.com/matzehuels/shelfview/pkg/render/shelf/layout"
	"github.com/matzehuels/shelfview/pkg/render/shelf/plan"
	"github.com/matzehuels/shelfview/pkg/render/shelf/styles"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultSeed is the seed the CLI and server use when none is given.
	// Every seed, zero included, is honoured as-is by the pipeline.
	DefaultSeed = uint64(42)

	// DefaultScale is the default PNG scale factor.
	DefaultScale = 2.0

	// MaxScale bounds the PNG scale factor. A 1500px tall canvas at this
	// scale is already 12000px tall.
	MaxScale = 8.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ContentTypes maps each output format to its MIME type.
var ContentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
	FormatPDF:  "application/pdf",
	FormatJSON: "application/json",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the rendering pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	Seed    uint64 `json:"seed"`
	Leaning bool   `json:"leaning,omitempty"`
	Sort    string `json:"sort,omitempty"`

	// Style options: "default", "light" or "dark"
	Background string `json:"background,omitempty"`
	Shelf      string `json:"shelf,omitempty"`
	Book       string `json:"book,omitempty"`

	// Render options
	Formats   []string `json:"formats,omitempty"`
	Scale     float64  `json:"scale,omitempty"`
	EmbedFont bool     `json:"embed_font,omitempty"`
	Title     string   `json:"title,omitempty"`

	// Runtime options (not serialized)
	NoCache bool        `json:"-"`
	Logger  *log.Logger `json:"-"` // overrides the runner's logger

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// LibraryHash is the content hash of the input library.
	LibraryHash string

	// Layout is the computed geometry.
	Layout layout.Layout

	// Plan is the ordered list of drawing operations.
	Plan plan.Plan

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Diagnostics returns the layout and labelling diagnostics of the run.
func (r *Result) Diagnostics() []layout.Diagnostic {
	return r.Plan.Diagnostics
}

// Stats contains pipeline execution statistics.
type Stats struct {
	BookCount   int
	PlacedCount int
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for the render stage.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf, json)", format)
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

// ValidateStyle checks that a style variant name is valid.
func ValidateStyle(style string) error {
	_, err := styles.ParseVariant(style)
	return err
}

// ValidateScale checks that a PNG scale factor is usable.
func ValidateScale(scale float64) error {
	if scale <= 0 || scale > MaxScale {
		return errors.New(errors.ErrCodeInvalidInput,
			"invalid scale: %v (must be in (0, %v])", scale, MaxScale)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks all fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()
	if err := o.Validate(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetDefaults sets default values for unset fields. Seed is left alone
// because zero is a valid seed.
func (o *Options) SetDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
}

// Validate checks option values without applying defaults.
func (o *Options) Validate() error {
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	for _, s := range []string{o.Background, o.Shelf, o.Book} {
		if err := ValidateStyle(s); err != nil {
			return err
		}
	}
	if _, err := library.ParseSortBy(o.Sort); err != nil {
		return err
	}
	if o.hasFormat(FormatPNG) {
		if err := ValidateScale(o.Scale); err != nil {
			return err
		}
	}
	return nil
}

// Theme resolves the three style names into a theme. Invalid names resolve
// to the default variant; call Validate first to reject them.
func (o *Options) Theme() styles.Theme {
	bg, _ := styles.ParseVariant(o.Background)
	sh, _ := styles.ParseVariant(o.Shelf)
	bk, _ := styles.ParseVariant(o.Book)
	return styles.Theme{Background: bg, Shelf: sh, Book: bk}
}

// SortBy returns the parsed sort order.
func (o *Options) SortBy() library.SortBy {
	by, _ := library.ParseSortBy(o.Sort)
	return by
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:     format,
		Seed:       o.Seed,
		Leaning:    o.Leaning,
		Background: o.Theme().Background.String(),
		Shelf:      o.Theme().Shelf.String(),
		Book:       o.Theme().Book.String(),
		Sort:       string(o.SortBy()),
	}
	switch format {
	case FormatPNG:
		k.Scale = o.Scale
	case FormatSVG, FormatPDF:
		k.EmbedFont = o.EmbedFont
		k.Title = o.Title
	}
	return k
}

func (o *Options) hasFormat(format string) bool {
	for _, f := range o.Formats {
		if f == format {
			return true
		}
	}
	return false
}

// String summarises the options for log lines.
func (o *Options) String() string {
	return fmt.Sprintf("seed=%d leaning=%t theme=%s/%s/%s formats=%v",
		o.Seed, o.Leaning, o.Theme().Background, o.Theme().Shelf, o.Theme().Book, o.Formats)
}
