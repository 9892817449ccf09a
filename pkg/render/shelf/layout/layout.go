package layout

import "github.com/matzehuels/shelfview/pkg/library"

// Layout is the complete geometry of one rendering.
type Layout struct {
	Frame      Frame        `json:"frame"`
	Background Rect         `json:"background"`
	Edges      [4]Rect      `json:"edges"` // top, bottom, right, left
	Shelves    []Rect       `json:"shelves"`
	Books      []PlacedBook `json:"books"`

	// Total is the number of books in the input library; Total-len(Books)
	// books were dropped.
	Total       int          `json:"total"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// Option configures [Build].
type Option func(*builder)

type builder struct {
	rng     Rand
	leaning bool
}

// WithSeed seeds a fresh generator. Ignored if [WithRand] is also given.
func WithSeed(seed uint64) Option {
	return func(b *builder) {
		if b.rng == nil {
			b.rng = NewRand(seed)
		}
	}
}

// WithRand uses rng for all random draws. Callers that continue drawing from
// rng after Build (for colours, say) get a reproducible sequence as a whole.
func WithRand(rng Rand) Option { return func(b *builder) { b.rng = rng } }

// WithLeaning enables the leaning last book per row.
func WithLeaning(on bool) Option { return func(b *builder) { b.leaning = on } }

// Build validates lib and computes its layout.
//
// The only error is a validation failure from [Validate]; capacity problems
// are reported in Layout.Diagnostics. Without [WithSeed] or [WithRand] the
// generator is seeded with 0.
func Build(lib library.Library, opts ...Option) (Layout, error) {
	var b builder
	for _, opt := range opts {
		opt(&b)
	}
	if b.rng == nil {
		b.rng = NewRand(0)
	}

	if err := Validate(lib); err != nil {
		return Layout{}, err
	}

	f := NewFrame(lib.FrameWidth, len(lib.Shelves))
	packed := Pack(f, lib, b.rng)

	return Layout{
		Frame:       f,
		Background:  f.Background(),
		Edges:       f.Edges(),
		Shelves:     f.ShelfBars(),
		Books:       Place(f, packed, b.leaning, b.rng),
		Total:       lib.BookCount(),
		Diagnostics: packed.Diagnostics,
	}, nil
}
