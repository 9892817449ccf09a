package library

import (
	"cmp"
	"slices"
	"strings"

	"github.com/matzehuels/shelfview/pkg/errors"
)

// SortBy selects how books are ordered within each shelf.
type SortBy string

// Sort orders. SortNone keeps the input order.
const (
	SortNone   SortBy = ""
	SortTitle  SortBy = "title"
	SortAuthor SortBy = "author"
	SortYear   SortBy = "year"
)

// ParseSortBy parses a sort order name. "none" and "" both mean [SortNone].
func ParseSortBy(s string) (SortBy, error) {
	switch by := SortBy(strings.ToLower(strings.TrimSpace(s))); by {
	case SortNone, SortTitle, SortAuthor, SortYear:
		return by, nil
	case "none":
		return SortNone, nil
	default:
		return SortNone, errors.New(errors.ErrCodeInvalidInput,
			"invalid sort order: %q (must be one of: title, author, year, none)", s)
	}
}

// Sorted returns a copy of l whose shelves are each stably sorted by by.
// Books never move between shelves.
func (l Library) Sorted(by SortBy) Library {
	out := l.Clone()
	if by == SortNone {
		return out
	}
	for _, s := range out.Shelves {
		slices.SortStableFunc(s.Books, compareBooks(by))
	}
	return out
}

func compareBooks(by SortBy) func(a, b Book) int {
	byTitle := func(a, b Book) int {
		return cmp.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
	}
	byAuthor := func(a, b Book) int {
		return cmp.Or(
			cmp.Compare(strings.ToLower(a.Author.LastName), strings.ToLower(b.Author.LastName)),
			cmp.Compare(strings.ToLower(a.Author.FirstName), strings.ToLower(b.Author.FirstName)),
		)
	}

	switch by {
	case SortAuthor:
		return func(a, b Book) int { return cmp.Or(byAuthor(a, b), byTitle(a, b)) }
	case SortYear:
		return func(a, b Book) int { return cmp.Or(cmp.Compare(a.Year, b.Year), byTitle(a, b)) }
	default:
		return byTitle
	}
}
