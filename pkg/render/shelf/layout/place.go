package layout

import "math"

// Lean angle range: θ = -(leanBase + IntN(leanJitter)) degrees.
const (
	leanBase   = 15
	leanJitter = 10
)

// PlacedBook is a packed book with absolute coordinates.
type PlacedBook struct {
	PackedBook

	// Rect is the unrotated rectangle. Its top-left corner is also the
	// rotation origin.
	Rect Rect `json:"rect"`

	// Rotation is the lean in degrees; 0 for upright books, negative when
	// the book leans.
	Rotation float64 `json:"rotation"`

	// LeanEvaluated reports whether a lean was attempted for this book.
	// Clearance is the horizontal room the lean would need.
	LeanEvaluated bool    `json:"lean_evaluated,omitempty"`
	Clearance     float64 `json:"clearance,omitempty"`
}

// Leaning reports whether the book is drawn rotated.
func (b PlacedBook) Leaning() bool { return b.Rotation != 0 }

// Place converts packed books into absolute rectangles.
//
// Every book stands on the bar below its row. With leaning enabled, the
// last book of each row draws an angle θ in [-24, -15] degrees and leans
// if the row has more than
//
//	R = |sin(90°-θ)|·width + |sin θ|·height
//
// units free before it. A leaning book is lowered so its rotated corner
// meets the bar. Books without the room stay upright.
func Place(f Frame, packed PackedLayout, leaning bool, rng Rand) []PlacedBook {
	placed := make([]PlacedBook, len(packed.Books))
	for i, b := range packed.Books {
		barY := f.BarY(b.Row)
		p := PlacedBook{
			PackedBook: b,
			Rect: Rect{
				X: f.CanvasWidth - f.Edge - b.RemainingBefore,
				Y: barY - b.Height,
				W: b.Width,
				H: b.Height,
			},
		}

		if leaning && b.LastInRow {
			theta := -float64(leanBase + rng.IntN(leanJitter))
			p.LeanEvaluated = true
			p.Clearance = Clearance(b.Width, b.Height, theta)
			if b.RemainingBefore > p.Clearance {
				p.Rotation = theta
				p.Rect.Y = barY - b.Height*math.Cos(radians(theta))
			}
		}
		placed[i] = p
	}
	return placed
}

// Clearance returns the horizontal room a w×h book needs to lean by theta degrees.
func Clearance(w, h, theta float64) float64 {
	return math.Abs(math.Sin(radians(90-theta)))*w + math.Abs(math.Sin(radians(theta)))*h
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
