package layout

import (
	"math"

	"github.com/matzehuels/shelfview/pkg/errors"
	"github.com/matzehuels/shelfview/pkg/library"
)

// Validate rejects libraries the layout cannot size. The first shelf's book
// count is the reference divisor for every book's ideal width, so it must
// not be empty.
func Validate(lib library.Library) error {
	if len(lib.Shelves) == 0 {
		return errors.New(errors.ErrCodeInvalidLibrary, "library has no shelves")
	}
	if len(lib.Shelves[0].Books) == 0 {
		return errors.New(errors.ErrCodeInvalidLibrary, "first shelf has no books")
	}
	if math.IsNaN(lib.FrameWidth) || math.IsInf(lib.FrameWidth, 0) || lib.FrameWidth <= 0 {
		return errors.New(errors.ErrCodeInvalidLibrary, "frame width must be positive, got %v", lib.FrameWidth)
	}
	if lib.FrameWidth > MaxFrameWidth {
		return errors.New(errors.ErrCodeInvalidLibrary,
			"frame width %v exceeds the maximum of %v", lib.FrameWidth, MaxFrameWidth)
	}

	f := NewFrame(lib.FrameWidth, len(lib.Shelves))
	if f.ShelfWidth <= 0 {
		return errors.New(errors.ErrCodeInvalidLibrary,
			"frame width %v leaves no room for books between the edges", lib.FrameWidth)
	}
	if f.RowSpacing <= 0 {
		return errors.New(errors.ErrCodeInvalidLibrary,
			"%d shelves do not fit in a canvas of height %v", len(lib.Shelves), CanvasHeight)
	}
	return nil
}
