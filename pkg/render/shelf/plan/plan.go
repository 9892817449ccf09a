// Package plan turns a computed layout into an ordered list of drawing
// operations that any sink can replay.
//
// Operations are ordered back to front: the background, the four frame
// edges (top, bottom, right, left), one bar per shelf row, then each book's
// fill followed by its title. Later operations cover earlier ones.
package plan

import (
	"fmt"
	"sync"

	"github.com/matzehuels/shelfview/pkg/render/shelf/layout"
	"github.com/matzehuels/shelfview/pkg/render/shelf/styles"
)

// Kind is the drawing primitive of an operation.
type Kind string

const (
	KindFill Kind = "fill"
	KindText Kind = "text"
)

// Role says what an operation draws.
type Role string

const (
	RoleBackground Role = "background"
	RoleEdge       Role = "edge"
	RoleShelf      Role = "shelf"
	RoleBook       Role = "book"
	RoleTitle      Role = "title"
)

// Op is one drawing operation.
//
// A fill covers the rectangle (X, Y, W, H). Text is drawn with its baseline
// starting at (X, Y). When Rotation is non-zero the operation is drawn in a
// frame rotated by Rotation degrees about (OriginX, OriginY); the rotation
// applies to this operation only.
type Op struct {
	Kind Kind   `json:"kind"`
	Role Role   `json:"role"`
	Fill string `json:"fill"`

	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"width,omitempty"`
	H float64 `json:"height,omitempty"`

	Rotation float64 `json:"rotation,omitempty"`
	OriginX  float64 `json:"origin_x,omitempty"`
	OriginY  float64 `json:"origin_y,omitempty"`

	Text     string  `json:"text,omitempty"`
	FontSize float64 `json:"font_size,omitempty"`

	// Book and title operations carry the book's input position.
	Shelf int `json:"shelf,omitempty"`
	Slot  int `json:"slot,omitempty"`
}

// Plan is a complete, backend-agnostic rendering.
type Plan struct {
	Width       float64             `json:"width"`
	Height      float64             `json:"height"`
	Theme       styles.Theme        `json:"theme"`
	Ops         []Op                `json:"ops"`
	Diagnostics []layout.Diagnostic `json:"diagnostics,omitempty"`
}

// Count returns the number of operations with role r.
func (p Plan) Count(r Role) int {
	n := 0
	for _, op := range p.Ops {
		if op.Role == r {
			n++
		}
	}
	return n
}

// Option configures [Assemble].
type Option func(*assembler)

type assembler struct {
	rng      layout.Rand
	measurer styles.Measurer
}

// WithRand draws book colours from rng. Pass the generator used for the
// layout to make a single seed reproduce the whole rendering.
func WithRand(rng layout.Rand) Option { return func(a *assembler) { a.rng = rng } }

// WithSeed seeds a fresh generator for colours. Ignored if [WithRand] is given.
func WithSeed(seed uint64) Option {
	return func(a *assembler) {
		if a.rng == nil {
			a.rng = layout.NewRand(seed)
		}
	}
}

// WithMeasurer sets how label widths are measured. The default measures with
// the embedded Go Regular font.
func WithMeasurer(m styles.Measurer) Option { return func(a *assembler) { a.measurer = m } }

// Assemble builds the drawing operations for l in theme.
//
// Layout diagnostics are carried over. A label that fits at no font size is
// drawn at [styles.MinFontSize] and reported as a [layout.LabelDiverged]
// diagnostic.
func Assemble(l layout.Layout, theme styles.Theme, opts ...Option) Plan {
	a := assembler{}
	for _, opt := range opts {
		opt(&a)
	}
	if a.rng == nil {
		a.rng = layout.NewRand(0)
	}
	if a.measurer == nil {
		a.measurer = defaultMeasurer()
	}

	p := Plan{
		Width:       l.Frame.CanvasWidth,
		Height:      l.Frame.CanvasHeight,
		Theme:       theme,
		Ops:         make([]Op, 0, 1+len(l.Edges)+len(l.Shelves)+2*len(l.Books)),
		Diagnostics: append([]layout.Diagnostic(nil), l.Diagnostics...),
	}

	p.Ops = append(p.Ops, fill(RoleBackground, l.Background, theme.BackgroundColor()))
	for _, e := range l.Edges {
		p.Ops = append(p.Ops, fill(RoleEdge, e, theme.ShelfColor()))
	}
	for _, s := range l.Shelves {
		p.Ops = append(p.Ops, fill(RoleShelf, s, theme.ShelfColor()))
	}

	colors := styles.NewColorPicker(theme.Palette(), a.rng)
	for _, b := range l.Books {
		_, c := colors.Next()
		op := fill(RoleBook, b.Rect, c)
		op.Shelf, op.Slot = b.Shelf, b.Slot
		if b.Leaning() {
			op.Rotation = b.Rotation
			op.OriginX, op.OriginY = b.Rect.X, b.Rect.Y
		}
		p.Ops = append(p.Ops, op)

		title := styles.FitTitle(a.measurer, styles.Label(b.Book), styles.Spine{
			X: b.Rect.X, Y: b.Rect.Y, W: b.Rect.W, H: b.Rect.H, Rotation: b.Rotation,
		}, theme.TextColor())
		if !title.Fitted {
			p.Diagnostics = append(p.Diagnostics, layout.Diagnostic{
				Kind:  layout.LabelDiverged,
				Shelf: b.Shelf,
				Slot:  b.Slot,
				Message: fmt.Sprintf("label %q does not fit a spine of height %.1f; drawn at size %v",
					title.Text, b.Rect.H, title.FontSize),
			})
		}
		p.Ops = append(p.Ops, Op{
			Kind:     KindText,
			Role:     RoleTitle,
			Fill:     title.Color,
			X:        title.X,
			Y:        title.Y,
			W:        title.Width,
			Rotation: title.Rotation,
			OriginX:  title.OriginX,
			OriginY:  title.OriginY,
			Text:     title.Text,
			FontSize: title.FontSize,
			Shelf:    b.Shelf,
			Slot:     b.Slot,
		})
	}
	return p
}

func fill(role Role, r layout.Rect, color string) Op {
	return Op{Kind: KindFill, Role: role, Fill: color, X: r.X, Y: r.Y, W: r.W, H: r.H}
}

// defaultMeasurer is shared by every Assemble call without WithMeasurer, so
// its face cache lives for the process.
var defaultMeasurer = sync.OnceValue(func() styles.Measurer {
	m, err := styles.NewFaceMeasurer()
	if err != nil {
		return styles.EstimateMeasurer{}
	}
	return m
})
