package styles

// NoPrevious is the previous-colour index before the first book.
const NoPrevious = -1

// Rand is the random source for colour draws.
type Rand interface {
	IntN(n int) int
}

// ColorPicker assigns book colours so that no two consecutive books share one.
type ColorPicker struct {
	palette []string
	rng     Rand
	prev    int
}

// NewColorPicker returns a picker over palette. The palette needs at least
// two colours for the no-repeat rule to be satisfiable.
func NewColorPicker(palette []string, rng Rand) *ColorPicker {
	return &ColorPicker{palette: palette, rng: rng, prev: NoPrevious}
}

// Next draws uniformly until the index differs from the previous book's,
// then returns the index and colour.
func (p *ColorPicker) Next() (int, string) {
	i := p.rng.IntN(len(p.palette))
	for len(p.palette) > 1 && i == p.prev {
		i = p.rng.IntN(len(p.palette))
	}
	p.prev = i
	return i, p.palette[i]
}
