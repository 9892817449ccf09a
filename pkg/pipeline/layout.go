package pipeline

import (
	"github.com/matzehuels/shelfview/pkg/library"
	"github.com/matzehuels/shelfview/pkg/render/shelf/layout"
	"github.com/matzehuels/shelfview/pkg/render/shelf/plan"
	"github.com/matzehuels/shelfview/pkg/render/shelf/styles"
)

// =============================================================================
// Layout Generation
// =============================================================================

// ComputeLayout sorts lib, computes its geometry and assembles the drawing
// plan. A single generator seeded with opts.Seed feeds both steps, so the
// same library and options always give the same plan.
//
// A nil measurer falls back to the plan package's default.
func ComputeLayout(lib library.Library, opts Options, m styles.Measurer) (layout.Layout, plan.Plan, error) {
	opts.SetDefaults()

	rng := layout.NewRand(opts.Seed)
	l, err := layout.Build(lib.Sorted(opts.SortBy()),
		layout.WithRand(rng),
		layout.WithLeaning(opts.Leaning),
	)
	if err != nil {
		return layout.Layout{}, plan.Plan{}, err
	}

	planOpts := []plan.Option{plan.WithRand(rng)}
	if m != nil {
		planOpts = append(planOpts, plan.WithMeasurer(m))
	}
	return l, plan.Assemble(l, opts.Theme(), planOpts...), nil
}

// leanFallbacks returns the books that were eligible to lean but lacked the
// clearance.
func leanFallbacks(l layout.Layout) []layout.PlacedBook {
	var out []layout.PlacedBook
	for _, b := range l.Books {
		if b.LeanEvaluated && !b.Leaning() {
			out = append(out, b)
		}
	}
	return out
}
