// Package library defines the records a rendering starts from: a library is
// an ordered list of shelves, a shelf an ordered list of books.
//
// The records are plain values. Rendering never mutates them: the layout
// engine reads a book's Width and Height as sizing hints and produces its own
// sized copies.
//
// Libraries are usually read from a file:
//
//	lib, err := library.Load("library.yaml")
//
// JSON, YAML and TOML are supported; see [Decode] for the field names.
package library

// Author is the person a book is credited to.
type Author struct {
	FirstName string `json:"firstName" yaml:"firstName" toml:"firstName"`
	LastName  string `json:"lastName" yaml:"lastName" toml:"lastName"`
}

// FullName returns "First Last", trimming a missing half.
func (a Author) FullName() string {
	switch {
	case a.FirstName == "":
		return a.LastName
	case a.LastName == "":
		return a.FirstName
	}
	return a.FirstName + " " + a.LastName
}

// Book is a single volume on a shelf.
//
// Width and Height are hints in canvas units. A zero value, or any value
// outside the size envelope computed at render time, is replaced by a
// randomised size during layout.
type Book struct {
	Title  string  `json:"title" yaml:"title" toml:"title"`
	Author Author  `json:"author" yaml:"author" toml:"author"`
	Year   int     `json:"year" yaml:"year" toml:"year"`
	Width  float64 `json:"width,omitempty" yaml:"width,omitempty" toml:"width,omitempty"`
	Height float64 `json:"height,omitempty" yaml:"height,omitempty" toml:"height,omitempty"`
}

// Shelf holds books in left-to-right rendering order.
type Shelf struct {
	Books []Book `json:"books" yaml:"books" toml:"books"`
}

// Library is the full input of a rendering.
type Library struct {
	Shelves []Shelf `json:"shelves" yaml:"shelves" toml:"shelves"`

	// FrameWidth is the width of the target frame. The canvas is slightly
	// narrower than the frame.
	FrameWidth float64 `json:"frameWidth" yaml:"frameWidth" toml:"frameWidth"`
}

// Entry is a book together with its position in the library.
type Entry struct {
	Shelf int // index of the shelf in Library.Shelves
	Slot  int // index of the book within its shelf
	Book  Book
}

// BookCount returns the number of books over all shelves.
func (l Library) BookCount() int {
	n := 0
	for _, s := range l.Shelves {
		n += len(s.Books)
	}
	return n
}

// Flatten returns every book in shelf-major order.
func (l Library) Flatten() []Entry {
	entries := make([]Entry, 0, l.BookCount())
	for si, s := range l.Shelves {
		for bi, b := range s.Books {
			entries = append(entries, Entry{Shelf: si, Slot: bi, Book: b})
		}
	}
	return entries
}

// Clone returns a deep copy of l.
func (l Library) Clone() Library {
	out := Library{FrameWidth: l.FrameWidth, Shelves: make([]Shelf, len(l.Shelves))}
	for i, s := range l.Shelves {
		out.Shelves[i] = Shelf{Books: append([]Book(nil), s.Books...)}
	}
	return out
}
