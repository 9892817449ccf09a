package layout

import (
	"fmt"

	"github.com/matzehuels/shelfview/pkg/library"
)

// PackedBook is a sized book assigned to a row.
type PackedBook struct {
	SizedBook

	Shelf int `json:"shelf"` // input shelf index
	Slot  int `json:"slot"`  // index within the input shelf
	Row   int `json:"row"`   // 0-based row the book stands in

	// Offset is the distance from the row's left end to the book.
	Offset float64 `json:"offset"`

	// RemainingBefore is the free row width before this book was placed,
	// including the space the book itself takes.
	RemainingBefore float64 `json:"remaining_before"`

	// LastInRow marks the right-most book of its row.
	LastInRow bool `json:"last_in_row"`
}

// PackedLayout is the result of [Pack].
type PackedLayout struct {
	Frame       Frame
	Books       []PackedBook
	Dropped     int // books not packed because the rows ran out
	Diagnostics []Diagnostic
}

// Rows groups the packed books by row. The result always has Frame.Rows
// entries; rows without books are empty.
func (p PackedLayout) Rows() [][]PackedBook {
	rows := make([][]PackedBook, p.Frame.Rows)
	for _, b := range p.Books {
		rows[b.Row] = append(rows[b.Row], b)
	}
	return rows
}

// Pack sizes every book and assigns it to a row, left to right.
//
// Books are visited in shelf-major order. A new row starts when the book
// does not fit in the space left (remaining <= width), and after the last
// book of each input shelf, so a shelf that spills over never shares its
// last row with the next shelf. Empty input shelves leave an empty row.
//
// When a book needs a row past the last one, packing stops: the books
// already packed are kept and a [CapacityOverflow] diagnostic is recorded.
// lib must have passed [Validate].
func Pack(f Frame, lib library.Library, rng Rand) PackedLayout {
	out := PackedLayout{Frame: f}
	entries := lib.Flatten()
	refCount := len(lib.Shelves[0].Books)

	row := 0
	inRow := 0
	remaining := f.ShelfWidth
	advance := 0 // rows to skip before the next book

	for i, e := range entries {
		sized := NewEnvelope(f, refCount, rng).Size(e.Book)

		if advance > 0 {
			row += advance
			advance = 0
			inRow = 0
			remaining = f.ShelfWidth
		}
		if remaining <= sized.Width && inRow > 0 {
			row++
			inRow = 0
			remaining = f.ShelfWidth
		}
		if row >= f.Rows || remaining <= sized.Width {
			out.overflow(e, len(entries)-i)
			break
		}

		out.Books = append(out.Books, PackedBook{
			SizedBook:       sized,
			Shelf:           e.Shelf,
			Slot:            e.Slot,
			Row:             row,
			Offset:          f.ShelfWidth - remaining,
			RemainingBefore: remaining,
		})
		remaining -= sized.Width
		inRow++

		if e.Slot == len(lib.Shelves[e.Shelf].Books)-1 {
			advance = 1
			for s := e.Shelf + 1; s < len(lib.Shelves) && len(lib.Shelves[s].Books) == 0; s++ {
				advance++
			}
		}
	}

	markLastInRow(out.Books)
	return out
}

func (p *PackedLayout) overflow(e library.Entry, dropped int) {
	p.Dropped = dropped
	p.Diagnostics = append(p.Diagnostics, Diagnostic{
		Kind:  CapacityOverflow,
		Shelf: e.Shelf,
		Slot:  e.Slot,
		Message: fmt.Sprintf("%q does not fit in %d rows; %d books left unplaced",
			e.Book.Title, p.Frame.Rows, dropped),
	})
}

func markLastInRow(books []PackedBook) {
	for i := range books {
		if i == len(books)-1 || books[i+1].Row != books[i].Row {
			books[i].LastInRow = true
		}
	}
}
