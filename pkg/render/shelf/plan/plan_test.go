package plan

import (
	"encoding/json"
	"testing"

	"github.com/matzehuels/shelfview/pkg/library"
	"github.com/matzehuels/shelfview/pkg/render/shelf/layout"
	"github.com/matzehuels/shelfview/pkg/render/shelf/styles"
)

func exampleLibrary() library.Library {
	return library.Library{
		FrameWidth: 1000,
		Shelves: []library.Shelf{{Books: []library.Book{
			{Title: "Dune", Author: library.Author{FirstName: "Frank", LastName: "Herbert"}, Year: 1965},
			{Title: "1984", Author: library.Author{FirstName: "George", LastName: "Orwell"}, Year: 1949},
		}}},
	}
}

func render(t *testing.T, lib library.Library, seed uint64, theme styles.Theme, m styles.Measurer) Plan {
	t.Helper()
	rng := layout.NewRand(seed)
	l, err := layout.Build(lib, layout.WithRand(rng), layout.WithLeaning(true))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return Assemble(l, theme, WithRand(rng), WithMeasurer(m))
}

func TestEndToEndExample(t *testing.T) {
	p := render(t, exampleLibrary(), 1, styles.Theme{}, styles.EstimateMeasurer{})

	counts := map[Role]int{
		RoleBackground: 1,
		RoleEdge:       4,
		RoleShelf:      1,
		RoleBook:       2,
		RoleTitle:      2,
	}
	for role, want := range counts {
		if got := p.Count(role); got != want {
			t.Errorf("Count(%s) = %d, want %d", role, got, want)
		}
	}
	if len(p.Ops) != 10 {
		t.Errorf("%d ops, want 10", len(p.Ops))
	}
	if n := layout.Count(p.Diagnostics, layout.CapacityOverflow); n != 0 {
		t.Errorf("%d overflow diagnostics, want 0", n)
	}
	if p.Width != 945 || p.Height != 1500 {
		t.Errorf("canvas %vx%v, want 945x1500", p.Width, p.Height)
	}

	var books []Op
	for _, op := range p.Ops {
		if op.Role == RoleBook {
			books = append(books, op)
		}
	}
	if books[0].Rotation != 0 {
		t.Errorf("first book rotation = %v, want 0", books[0].Rotation)
	}
}

func TestOpOrder(t *testing.T) {
	lib := library.Library{FrameWidth: 1200, Shelves: []library.Shelf{
		{Books: []library.Book{{Title: "A"}, {Title: "B"}, {Title: "C"}}},
		{Books: []library.Book{{Title: "D"}}},
	}}
	p := render(t, lib, 3, styles.Theme{Background: styles.Light, Shelf: styles.Dark, Book: styles.Light}, styles.EstimateMeasurer{})

	want := []Role{RoleBackground, RoleEdge, RoleEdge, RoleEdge, RoleEdge, RoleShelf, RoleShelf}
	for range 4 {
		want = append(want, RoleBook, RoleTitle)
	}
	if len(p.Ops) != len(want) {
		t.Fatalf("%d ops, want %d", len(p.Ops), len(want))
	}
	for i, r := range want {
		if p.Ops[i].Role != r {
			t.Errorf("op %d role = %s, want %s", i, p.Ops[i].Role, r)
		}
	}

	if p.Ops[0].Fill != "#FFF8DC" {
		t.Errorf("background fill = %s, want #FFF8DC", p.Ops[0].Fill)
	}
	for _, op := range p.Ops[1:7] {
		if op.Fill != "#660000" {
			t.Errorf("%s fill = %s, want #660000", op.Role, op.Fill)
		}
	}
	// Edges: top, bottom, right, left.
	if p.Ops[1].Y != 0 || p.Ops[2].Y != 1480 || p.Ops[3].X != p.Width-20 || p.Ops[4].X != 0 || p.Ops[4].H != 1500 {
		t.Errorf("edges out of order: %+v", p.Ops[1:5])
	}
	for i := 8; i < len(p.Ops); i += 2 {
		if p.Ops[i].Kind != KindText || p.Ops[i].Fill != "#000000" {
			t.Errorf("op %d should be black title text", i)
		}
		if p.Ops[i].Shelf != p.Ops[i-1].Shelf || p.Ops[i].Slot != p.Ops[i-1].Slot {
			t.Errorf("title %d does not follow its book", i)
		}
	}
}

func TestAdjacentBookColorsDiffer(t *testing.T) {
	lib := library.Library{FrameWidth: 1500, Shelves: []library.Shelf{{}, {}, {}}}
	for s := range lib.Shelves {
		for i := range 15 {
			lib.Shelves[s].Books = append(lib.Shelves[s].Books, library.Book{Title: string(rune('a' + i))})
		}
	}
	for seed := range uint64(10) {
		p := render(t, lib, seed, styles.Theme{Book: styles.Dark}, styles.EstimateMeasurer{})
		prev := ""
		for _, op := range p.Ops {
			if op.Role != RoleBook {
				continue
			}
			if op.Fill == prev {
				t.Fatalf("seed %d: adjacent books share colour %s", seed, op.Fill)
			}
			prev = op.Fill
		}
	}
}

func TestDarkBooksGetWhiteTitles(t *testing.T) {
	p := render(t, exampleLibrary(), 2, styles.Theme{Book: styles.Dark}, styles.EstimateMeasurer{})
	for _, op := range p.Ops {
		if op.Role == RoleTitle && op.Fill != "#FFFFFF" {
			t.Errorf("title fill = %s, want #FFFFFF", op.Fill)
		}
	}
}

func TestTitleFollowsLean(t *testing.T) {
	p := render(t, exampleLibrary(), 1, styles.Theme{}, styles.EstimateMeasurer{})
	for i, op := range p.Ops {
		if op.Role != RoleTitle {
			continue
		}
		book := p.Ops[i-1]
		if op.Rotation != 90+book.Rotation {
			t.Errorf("title rotation %v, want 90 + %v", op.Rotation, book.Rotation)
		}
		if op.OriginX != book.X || op.OriginY != book.Y {
			t.Errorf("title rotates about (%v, %v), want book anchor (%v, %v)", op.OriginX, op.OriginY, book.X, book.Y)
		}
	}
}

// wideMeasurer makes every label too wide to fit.
type wideMeasurer struct{}

func (wideMeasurer) MeasureString(string, float64) float64 { return 1e9 }

func TestLabelDivergedDiagnostic(t *testing.T) {
	p := render(t, exampleLibrary(), 1, styles.Theme{}, wideMeasurer{})
	if n := layout.Count(p.Diagnostics, layout.LabelDiverged); n != 2 {
		t.Fatalf("%d label diagnostics, want 2", n)
	}
	for _, op := range p.Ops {
		if op.Role == RoleTitle && op.FontSize != styles.MinFontSize {
			t.Errorf("diverged title drawn at %v, want %v", op.FontSize, styles.MinFontSize)
		}
	}
}

func TestSameSeedSamePlan(t *testing.T) {
	lib := exampleLibrary()
	lib.Shelves = append(lib.Shelves, library.Shelf{Books: []library.Book{{Title: "Emma", Year: 1815}}})

	encode := func(seed uint64) string {
		data, err := json.Marshal(render(t, lib, seed, styles.Theme{}, styles.EstimateMeasurer{}))
		if err != nil {
			t.Fatal(err)
		}
		return string(data)
	}
	if encode(7) != encode(7) {
		t.Error("same seed produced different plans")
	}
	if encode(7) == encode(8) {
		t.Error("different seeds produced identical plans")
	}
}

func TestAssembleDefaults(t *testing.T) {
	l, err := layout.Build(exampleLibrary())
	if err != nil {
		t.Fatal(err)
	}
	p := Assemble(l, styles.Theme{})
	if p.Count(RoleTitle) != 2 {
		t.Errorf("Count(title) = %d, want 2", p.Count(RoleTitle))
	}
	for _, op := range p.Ops {
		if op.Role == RoleTitle && op.FontSize <= 0 {
			t.Errorf("title font size %v, want positive", op.FontSize)
		}
	}
}

func TestDefaultMeasurerIsShared(t *testing.T) {
	if defaultMeasurer() != defaultMeasurer() {
		t.Fatal("default measurer should be built once and reused")
	}

	l, err := layout.Build(exampleLibrary(), layout.WithSeed(4))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	implicit := Assemble(l, styles.Theme{}, WithSeed(4))
	explicit := Assemble(l, styles.Theme{}, WithSeed(4), WithMeasurer(defaultMeasurer()))
	for i := range implicit.Ops {
		if implicit.Ops[i] != explicit.Ops[i] {
			t.Fatalf("op %d = %+v, want %+v", i, implicit.Ops[i], explicit.Ops[i])
		}
	}
}
