package layout

import "github.com/matzehuels/shelfview/pkg/library"

// Jitter ranges for the envelope's upper bounds.
const (
	widthJitter  = 30
	heightJitter = 50
)

// Envelope is the permitted size range for one book.
type Envelope struct {
	IdealWidth  float64 `json:"ideal_width"`
	IdealHeight float64 `json:"ideal_height"`
	WidthSup    float64 `json:"width_sup"`
	HeightSup   float64 `json:"height_sup"`
}

// NewEnvelope derives a book's envelope. refCount is the number of books on
// the first shelf, which sets the ideal width for every book. Two values are
// drawn from rng: the width jitter, then the height jitter.
func NewEnvelope(f Frame, refCount int, rng Rand) Envelope {
	idealW := 0.6 * (f.ShelfWidth / float64(refCount))
	idealH := 0.8 * f.RowSpacing
	j1 := float64(rng.IntN(widthJitter))
	j2 := float64(rng.IntN(heightJitter))
	return Envelope{
		IdealWidth:  idealW,
		IdealHeight: idealH,
		WidthSup:    idealW + j1,
		HeightSup:   min(idealH+j2, f.RowSpacing),
	}
}

// Fit clamps a size hint into the envelope. Width and height outside their
// ranges snap to the upper bound. The aspect rule is applied last and wins:
// a width outside [h/10, h/8] becomes h/9.
func (e Envelope) Fit(w, h float64) (float64, float64) {
	if !(w >= e.IdealWidth && w <= e.WidthSup) {
		w = e.WidthSup
	}
	if !(h >= e.IdealHeight && h <= e.HeightSup) {
		h = e.HeightSup
	}
	if !(w >= h/10 && w <= h/8) {
		w = h / 9
	}
	return w, h
}

// SizedBook is a book with its final dimensions for one rendering.
// The source [library.Book] is never modified.
type SizedBook struct {
	Book     library.Book `json:"book"`
	Width    float64      `json:"width"`
	Height   float64      `json:"height"`
	Envelope Envelope     `json:"envelope"`
}

// Size fits b's size hints into the envelope.
func (e Envelope) Size(b library.Book) SizedBook {
	w, h := e.Fit(b.Width, b.Height)
	return SizedBook{Book: b, Width: w, Height: h, Envelope: e}
}
