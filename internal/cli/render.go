package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/shelfview/pkg/errors"
	"github.com/matzehuels/shelfview/pkg/library"
	"github.com/matzehuels/shelfview/pkg/pipeline"
	"github.com/matzehuels/shelfview/pkg/render/shelf/layout"
)

// renderFlags holds the flags of the render command that are not pipeline
// options.
type renderFlags struct {
	output   string // output file (single format) or base path
	formats  string // comma-separated output formats
	redisURL string // redis cache url, overrides SHELFVIEW_REDIS_URL
	dump     string // write the decoded library here (format from extension)
}

// renderCommand creates the render command.
//
// Default settings:
//   - seed: 42
//   - leaning: true
//   - format: svg
//   - scale: 2 (PNG only)
func (c *CLI) renderCommand() *cobra.Command {
	var flags renderFlags
	opts := pipeline.Options{Leaning: true, Scale: pipeline.DefaultScale, Seed: pipeline.DefaultSeed}

	cmd := &cobra.Command{
		Use:   "render [library.{json,yaml,toml}]",
		Short: "Render a library as a bookshelf",
		Long: `Render a library file as an illustrated bookshelf.

The library lists shelves of books; each book has a title, an author and a
year, and may carry width/height hints. Output is written next to the input
file unless --output is given. Books that do not fit the shelves are dropped
and reported as warnings.

Results are cached locally for faster subsequent runs.`,
		Example: `  # Render to library.svg
  shelfview render library.yaml

  # Dark books on a light background, as SVG and PNG
  shelfview render library.yaml --book dark --background light -f svg,png

  # Sorted by author, no leaning books
  shelfview render library.toml --sort author --leaning=false`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(flags.formats)
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, flags)
		},
	}

	addRenderFlags(cmd, &opts)
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().BoolVar(&opts.NoCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&flags.redisURL, "redis", "", "redis cache url (default $"+envRedisURL+")")
	cmd.Flags().StringVar(&flags.dump, "dump", "", "also write the (sorted) library to this .json, .yaml or .toml file")

	return cmd
}

// addRenderFlags binds the layout and style flags shared by render and serve.
func addRenderFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().Uint64Var(&opts.Seed, "seed", opts.Seed, "random seed; the same seed reproduces the same picture")
	cmd.Flags().BoolVar(&opts.Leaning, "leaning", opts.Leaning, "lean the last book of each row when there is room")
	cmd.Flags().StringVar(&opts.Background, "background", "", "background style: default, light, dark")
	cmd.Flags().StringVar(&opts.Shelf, "shelf", "", "shelf style: default, light, dark")
	cmd.Flags().StringVar(&opts.Book, "book", "", "book style: default, light, dark")
	cmd.Flags().StringVar(&opts.Sort, "sort", "", "sort books within each shelf: title, author, year")
	cmd.Flags().Float64Var(&opts.Scale, "scale", opts.Scale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.EmbedFont, "embed-font", false, "embed the label font in SVG and PDF output")
}

// runRender loads the library, runs the pipeline and writes the artifacts.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, flags renderFlags) error {
	logger := loggerFromContext(ctx)
	opts.Logger = logger
	if opts.Title == "" {
		opts.Title = strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	}

	runner, err := c.newRunner(ctx, opts.NoCache, flags.redisURL)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	sw := startStopwatch(logger)
	lib, err := runner.Load(ctx, input)
	if err != nil {
		return err
	}

	if flags.dump != "" {
		if err := library.Save(flags.dump, lib.Sorted(opts.SortBy())); err != nil {
			return err
		}
		printFile(flags.dump)
	}

	result, err := runner.Execute(ctx, lib, opts)
	if err != nil {
		return err
	}
	sw.stop("rendered library", "placed", result.Stats.PlacedCount, "books", result.Stats.BookCount)

	if err := writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    flags.output,
	}); err != nil {
		return err
	}

	printStats(result.Stats.BookCount, result.Stats.PlacedCount, result.CacheInfo.RenderHit)
	printDiagnostics(result.Diagnostics())
	return nil
}

// artifactWriteParams describes where rendered artifacts go.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
}

// writeArtifacts writes each artifact to disk. A single format goes to
// output (or input with the format's extension); several formats share a
// base path.
func writeArtifacts(p artifactWriteParams) error {
	if len(p.formats) == 1 && p.output != "" {
		return writeArtifact(p.output, p.formats[0], p.artifacts[p.formats[0]])
	}
	base := basePath(p.output, p.input)
	for _, format := range p.formats {
		if err := writeArtifact(base+"."+format, format, p.artifacts[format]); err != nil {
			return err
		}
	}
	return nil
}

func writeArtifact(path, format string, data []byte) error {
	if err := errors.ValidateOutputPath(path, format); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	printFile(path)
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// printDiagnostics reports capacity and labelling problems.
func printDiagnostics(ds []layout.Diagnostic) {
	if n := layout.Count(ds, layout.CapacityOverflow); n > 0 {
		for _, d := range ds {
			if d.Kind == layout.CapacityOverflow {
				printWarning("%s", d.Message)
			}
		}
		printDetail("Use a wider frame or fewer books per shelf")
	}
	if n := layout.Count(ds, layout.LabelDiverged); n > 0 {
		printWarning("%d label(s) did not fit their spines and were drawn at the minimum size", n)
	}
}
