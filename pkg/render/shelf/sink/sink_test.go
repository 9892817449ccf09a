package sink

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"image/png"
	"io"
	"os/exec"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/shelfview/pkg/errors"
	"github.com/matzehuels/shelfview/pkg/library"
	"github.com/matzehuels/shelfview/pkg/render/shelf/layout"
	"github.com/matzehuels/shelfview/pkg/render/shelf/plan"
	"github.com/matzehuels/shelfview/pkg/render/shelf/styles"
)

func testPlan(t *testing.T) plan.Plan {
	t.Helper()
	lib := library.Library{
		FrameWidth: 1000,
		Shelves: []library.Shelf{{Books: []library.Book{
			{Title: "Dune", Author: library.Author{FirstName: "Frank", LastName: "Herbert"}, Year: 1965},
			{Title: "1984", Author: library.Author{FirstName: "George", LastName: "Orwell"}, Year: 1949},
			{Title: "Emma", Author: library.Author{FirstName: "Jane", LastName: "Austen"}, Year: 1815},
		}}},
	}
	rng := layout.NewRand(7)
	l, err := layout.Build(lib, layout.WithRand(rng), layout.WithLeaning(true))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return plan.Assemble(l, styles.Theme{Book: styles.Dark}, plan.WithRand(rng), plan.WithMeasurer(styles.EstimateMeasurer{}))
}

func TestRenderSVG(t *testing.T) {
	p := testPlan(t)
	out, err := RenderSVG(p, WithTitle("My Shelf"))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	s := string(out)

	fills := 0
	texts := 0
	for _, op := range p.Ops {
		switch op.Kind {
		case plan.KindFill:
			fills++
		case plan.KindText:
			texts++
		}
	}
	if got := strings.Count(s, "<rect"); got != fills {
		t.Errorf("%d <rect> elements, want %d", got, fills)
	}
	if got := strings.Count(s, "<text"); got != texts {
		t.Errorf("%d <text> elements, want %d", got, texts)
	}
	if !strings.Contains(s, "<title>My Shelf</title>") {
		t.Error("missing document title")
	}
	if !strings.Contains(s, "#FFFFFF") {
		t.Error("dark book variant should draw white titles")
	}
	if strings.Contains(s, "@font-face") {
		t.Error("font embedded without WithEmbeddedFont")
	}

	dec := xml.NewDecoder(bytes.NewReader(out))
	for {
		_, err := dec.Token()
		if err != nil {
			if err != io.EOF {
				t.Fatalf("SVG is not well-formed XML: %v", err)
			}
			break
		}
	}
}

func TestRenderSVGRotationIsScoped(t *testing.T) {
	p := plan.Plan{
		Width:  100,
		Height: 100,
		Ops: []plan.Op{
			{Kind: plan.KindFill, Role: plan.RoleBook, Fill: "#000000", X: 10, Y: 10, W: 20, H: 50, Rotation: -5, OriginX: 10, OriginY: 10},
			{Kind: plan.KindFill, Role: plan.RoleBook, Fill: "#111111", X: 40, Y: 10, W: 20, H: 50},
		},
	}
	out, err := RenderSVG(p)
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	s := string(out)
	if strings.Count(s, "rotate(") != 1 {
		t.Fatalf("want exactly one rotation:\n%s", s)
	}
	if !strings.Contains(s, "rotate(-5 10 10)") {
		t.Errorf("rotation transform missing:\n%s", s)
	}
	if strings.Index(s, "</g>") > strings.Index(s, "#111111") {
		t.Error("rotation group should close before the next operation")
	}
}

func TestRenderSVGEmbeddedFont(t *testing.T) {
	out, err := RenderSVG(testPlan(t), WithEmbeddedFont())
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !bytes.Contains(out, []byte("@font-face")) || !bytes.Contains(out, []byte("data:font/ttf;base64,")) {
		t.Error("embedded font face missing")
	}
}

func TestRenderSVGUnknownKind(t *testing.T) {
	p := plan.Plan{Width: 10, Height: 10, Ops: []plan.Op{{Kind: "circle"}}}
	if _, err := RenderSVG(p); err == nil {
		t.Error("expected error for unknown operation kind")
	}
}

func TestRenderPNG(t *testing.T) {
	p := testPlan(t)
	tests := []struct {
		scale float64
	}{
		{1},
		{0.5},
	}
	for _, tt := range tests {
		out, err := RenderPNG(p, WithScale(tt.scale))
		if err != nil {
			t.Fatalf("RenderPNG(scale %v): %v", tt.scale, err)
		}
		img, err := png.Decode(bytes.NewReader(out))
		if err != nil {
			t.Fatalf("decode png: %v", err)
		}
		b := img.Bounds()
		wantW := int(p.Width * tt.scale)
		wantH := int(p.Height * tt.scale)
		if b.Dx() < wantW || b.Dx() > wantW+1 || b.Dy() < wantH || b.Dy() > wantH+1 {
			t.Errorf("scale %v: image %dx%d, want about %dx%d", tt.scale, b.Dx(), b.Dy(), wantW, wantH)
		}
	}
}

func TestRenderPNGBadColor(t *testing.T) {
	p := plan.Plan{Width: 10, Height: 10, Ops: []plan.Op{{Kind: plan.KindFill, Fill: "blue", W: 5, H: 5}}}
	if _, err := RenderPNG(p); err == nil {
		t.Error("expected error for a non-hex colour")
	}
}

func TestRenderPNGPixelLimit(t *testing.T) {
	tests := []struct {
		name    string
		width   float64
		scale   float64
		wantErr bool
	}{
		{"huge canvas", 4.725e8, 1, true},
		{"widest frame at max scale", 18900, 8, true},
		{"small canvas at max scale", 10, 8, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := plan.Plan{Width: tt.width, Height: layout.CanvasHeight}
			_, err := RenderPNG(p, WithScale(tt.scale))
			if (err != nil) != tt.wantErr {
				t.Fatalf("RenderPNG error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("RenderPNG code = %s, want %s", errors.GetCode(err), errors.ErrCodeInvalidInput)
			}
		})
	}
}

func TestRenderJSON(t *testing.T) {
	p := testPlan(t)
	a, err := RenderJSON(p)
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}
	b, err := RenderJSON(testPlan(t))
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("same seed should produce identical JSON")
	}

	var back plan.Plan
	if err := json.Unmarshal(a, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(back.Ops, p.Ops) {
		t.Error("operations changed through JSON")
	}
	if back.Theme != p.Theme {
		t.Errorf("theme = %+v, want %+v", back.Theme, p.Theme)
	}
}

func TestRenderPDF(t *testing.T) {
	p := testPlan(t)
	out, err := RenderPDF(p, WithPDFSVGOptions(WithEmbeddedFont()))
	if _, lookErr := exec.LookPath("rsvg-convert"); lookErr != nil {
		if !errors.Is(err, errors.ErrCodeUnsupported) {
			t.Fatalf("without rsvg-convert, error = %v, want %s", err, errors.ErrCodeUnsupported)
		}
		t.Skip("rsvg-convert not installed")
	}
	if err != nil {
		t.Fatalf("RenderPDF: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Error("output is not a PDF")
	}
}
