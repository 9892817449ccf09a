package styles

import (
	"fmt"
	"math"

	"github.com/matzehuels/shelfview/pkg/library"
)

// Font size search: start at maxFontSize and step down by fontSizeStep.
const (
	maxFontSize  = 70.0
	fontSizeStep = 3.0

	// MinFontSize is the last positive size of the search sequence, used
	// when no size fits.
	MinFontSize = 1.0

	// labelHeightRatio is the share of the spine a label may span.
	labelHeightRatio = 0.6
)

// Label composes "<title> - <first> <last> - <year>".
func Label(b library.Book) string {
	return fmt.Sprintf("%s - %s %s - %d", b.Title, b.Author.FirstName, b.Author.LastName, b.Year)
}

// FitFontSize returns the largest size in 70, 67, 64, … at which label
// measures at most 0.6·height. If no positive size fits it returns
// MinFontSize and false.
func FitFontSize(m Measurer, label string, height float64) (float64, bool) {
	limit := labelHeightRatio * height
	for size := maxFontSize; size > 0; size -= fontSizeStep {
		if m.MeasureString(label, size) <= limit {
			return size, true
		}
	}
	return MinFontSize, false
}

// Spine is a placed book as seen by the title fitter. X and Y are the book's
// placement anchor and Rotation its lean in degrees.
type Spine struct {
	X, Y, W, H float64
	Rotation   float64
}

// Title is a fitted, positioned label.
//
// The text is drawn at (X, Y) in a frame rotated by Rotation degrees about
// (OriginX, OriginY), so it runs along the spine.
type Title struct {
	Text     string  `json:"text"`
	FontSize float64 `json:"font_size"`
	Width    float64 `json:"width"` // measured at FontSize
	Color    string  `json:"color"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation"`
	OriginX  float64 `json:"origin_x"`
	OriginY  float64 `json:"origin_y"`
	Fitted   bool    `json:"fitted"`
}

// FitTitle sizes label for s and positions it. The text is rotated by
// 90°+s.Rotation about the spine's anchor, centred along the book's height,
// and offset by a quarter of the book's width from the anchor.
func FitTitle(m Measurer, label string, s Spine, color string) Title {
	size, ok := FitFontSize(m, label, s.H)
	w := m.MeasureString(label, size)
	return Title{
		Text:     label,
		FontSize: size,
		Width:    w,
		Color:    color,
		X:        s.X + (s.H-w)/2,
		Y:        s.Y - s.W/4,
		Rotation: 90 + s.Rotation,
		OriginX:  s.X,
		OriginY:  s.Y,
		Fitted:   ok,
	}
}

// Measurer reports the rendered width of text at a font size.
type Measurer interface {
	MeasureString(text string, size float64) float64
}

// fontCharWidth is the average glyph advance as a share of the font size.
const fontCharWidth = 0.55

// EstimateMeasurer approximates widths from the character count. It is used
// when no font face is available.
type EstimateMeasurer struct{}

// MeasureString implements [Measurer].
func (EstimateMeasurer) MeasureString(text string, size float64) float64 {
	n := 0
	for range text {
		n++
	}
	return math.Round(float64(n)*size*fontCharWidth*100) / 100
}
