package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/shelfview/pkg/cache"
	"github.com/matzehuels/shelfview/pkg/library"
	"github.com/matzehuels/shelfview/pkg/observability"
	"github.com/matzehuels/shelfview/pkg/render/shelf/layout"
	"github.com/matzehuels/shelfview/pkg/render/shelf/plan"
	"github.com/matzehuels/shelfview/pkg/render/shelf/styles"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache, the logger and the text
// measurer - it doesn't store pipeline results. Multiple goroutines can
// safely use the same Runner with different options.
type Runner struct {
	Cache    cache.Cache
	Keyer    cache.Keyer
	Logger   *log.Logger
	Measurer styles.Measurer
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
// Labels are measured with the embedded Go Regular font when it loads, and
// with a width estimate otherwise.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	var m styles.Measurer = styles.EstimateMeasurer{}
	if fm, err := styles.NewFaceMeasurer(); err == nil {
		m = fm
	} else {
		logger.Warn("font measurer unavailable, estimating label widths", "error", err)
	}
	return &Runner{
		Cache:    c,
		Keyer:    keyer,
		Logger:   logger,
		Measurer: m,
	}
}

// Execute runs the complete layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, lib library.Library, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Layout
	layoutStart := time.Now()
	l, p, err := r.GenerateLayout(ctx, lib, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.Plan = p
	result.Stats.BookCount = l.Total
	result.Stats.PlacedCount = len(l.Books)
	result.Stats.LayoutTime = time.Since(layoutStart)

	// Stage 2: Render
	libHash, err := HashLibrary(lib)
	if err != nil {
		return nil, err
	}
	result.LibraryHash = libHash

	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, libHash, p, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.logger(opts).Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// GenerateLayout computes the layout and plan for lib, reporting progress
// through the pipeline hooks and logging diagnostics.
func (r *Runner) GenerateLayout(ctx context.Context, lib library.Library, opts Options) (layout.Layout, plan.Plan, error) {
	opts.SetDefaults()

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, lib.BookCount())
	start := time.Now()

	l, p, err := ComputeLayout(lib, opts, r.Measurer)
	duration := time.Since(start)
	hooks.OnLayoutComplete(ctx, len(l.Books), len(p.Diagnostics), duration, err)
	if err != nil {
		return layout.Layout{}, plan.Plan{}, err
	}

	logger := r.logger(opts)
	logger.Info("computed layout",
		"books", len(l.Books),
		"rows", l.Frame.Rows,
		"ops", len(p.Ops),
		"duration", duration)

	for _, d := range p.Diagnostics {
		logger.Warn(string(d.Kind), "shelf", d.Shelf, "book", d.Slot, "detail", d.Message)
	}
	for _, b := range leanFallbacks(l) {
		logger.Debug("lean skipped, not enough room",
			"title", b.Book.Title,
			"remaining", b.RemainingBefore,
			"needed", b.Clearance)
	}
	return l, p, nil
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
// libHash identifies the input library; see [HashLibrary].
func (r *Runner) RenderWithCacheInfo(ctx context.Context, libHash string, p plan.Plan, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	allCached := true
	artifacts := make(map[string][]byte, len(opts.Formats))
	hooks := observability.Pipeline()

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(libHash, opts.ArtifactKeyOpts(format))
		if !opts.NoCache {
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, format)
				artifacts[format] = data
				continue
			} else if err != nil {
				r.logger(opts).Warn("cache read failed", "format", format, "error", err)
			}
			observability.Cache().OnCacheMiss(ctx, format)
		}
		allCached = false

		hooks.OnRenderStart(ctx, format)
		start := time.Now()
		data, err := RenderFormat(p, format, opts)
		hooks.OnRenderComplete(ctx, format, len(data), time.Since(start), err)
		if err != nil {
			return nil, false, err
		}
		artifacts[format] = data

		if !opts.NoCache {
			if err := r.Cache.Set(ctx, cacheKey, data, cache.DefaultTTL); err != nil {
				r.logger(opts).Warn("cache write failed", "format", format, "error", err)
			} else {
				observability.Cache().OnCacheSet(ctx, format, len(data))
			}
		}
	}

	return artifacts, allCached, nil
}

// logger returns the options' logger if set, else the runner's.
func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}

// HashLibrary returns the content hash used to key a library's artifacts.
func HashLibrary(lib library.Library) (string, error) {
	data, err := json.Marshal(lib)
	if err != nil {
		return "", fmt.Errorf("hash library: %w", err)
	}
	return cache.Hash(data), nil
}

// Close releases resources held by the runner.
func (r *Runner) Close() error {
	if c, ok := r.Measurer.(interface{ Close() error }); ok {
		_ = c.Close()
	}
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
