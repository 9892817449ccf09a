package library

import (
	"testing"
)

func titles(s Shelf) []string {
	out := make([]string, len(s.Books))
	for i, b := range s.Books {
		out[i] = b.Title
	}
	return out
}

func TestSorted(t *testing.T) {
	lib := Library{
		FrameWidth: 1000,
		Shelves: []Shelf{
			{Books: []Book{
				{Title: "Foundation", Author: Author{"Isaac", "Asimov"}, Year: 1951},
				{Title: "dune", Author: Author{"Frank", "Herbert"}, Year: 1965},
				{Title: "I, Robot", Author: Author{"Isaac", "Asimov"}, Year: 1950},
				{Title: "Children of Dune", Author: Author{"Frank", "Herbert"}, Year: 1976},
				{Title: "Contact", Author: Author{"Carl", "Sagan"}, Year: 1985},
			}},
			{Books: []Book{
				{Title: "Zeta", Year: 2000},
				{Title: "Alpha", Year: 2000},
			}},
		},
	}

	tests := []struct {
		by   SortBy
		want [][]string
	}{
		{SortNone, [][]string{
			{"Foundation", "dune", "I, Robot", "Children of Dune", "Contact"},
			{"Zeta", "Alpha"},
		}},
		{SortTitle, [][]string{
			{"Children of Dune", "Contact", "dune", "Foundation", "I, Robot"},
			{"Alpha", "Zeta"},
		}},
		{SortAuthor, [][]string{
			{"Foundation", "I, Robot", "Children of Dune", "dune", "Contact"},
			{"Alpha", "Zeta"},
		}},
		{SortYear, [][]string{
			{"I, Robot", "Foundation", "dune", "Children of Dune", "Contact"},
			{"Alpha", "Zeta"},
		}},
	}

	for _, tt := range tests {
		t.Run(string(tt.by)+"_order", func(t *testing.T) {
			got := lib.Sorted(tt.by)
			for i, shelf := range got.Shelves {
				gotTitles := titles(shelf)
				for j := range tt.want[i] {
					if gotTitles[j] != tt.want[i][j] {
						t.Fatalf("shelf %d = %v, want %v", i, gotTitles, tt.want[i])
					}
				}
			}
		})
	}

	if lib.Shelves[0].Books[0].Title != "Foundation" {
		t.Error("Sorted mutated the receiver")
	}
}

func TestParseSortBy(t *testing.T) {
	tests := []struct {
		in      string
		want    SortBy
		wantErr bool
	}{
		{"", SortNone, false},
		{"none", SortNone, false},
		{"Title", SortTitle, false},
		{" author ", SortAuthor, false},
		{"year", SortYear, false},
		{"colour", SortNone, true},
	}
	for _, tt := range tests {
		got, err := ParseSortBy(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseSortBy(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseSortBy(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
