package sink

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"

	"github.com/matzehuels/shelfview/pkg/errors"
	"github.com/matzehuels/shelfview/pkg/fonts"
	"github.com/matzehuels/shelfview/pkg/render/shelf/plan"
)

const (
	// DefaultScale is the PNG scale factor used when none is given.
	DefaultScale = 1.0

	// MaxPixels caps the raster size. At 4 bytes per pixel this is 400MB.
	MaxPixels = 100_000_000
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale float64
	faces map[float64]font.Face
	font  *opentype.Font
}

// WithScale sets the PNG scale factor (1 draws one pixel per canvas unit).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// RenderPNG rasterises p.
func RenderPNG(p plan.Plan, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: DefaultScale, faces: make(map[float64]font.Face)}
	for _, opt := range opts {
		opt(&r)
	}
	w, h := math.Ceil(p.Width*r.scale), math.Ceil(p.Height*r.scale)
	if w*h > MaxPixels {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"png of %vx%v pixels exceeds the limit of %d; lower the scale or frame width", w, h, MaxPixels)
	}
	f, err := fonts.GoRegular()
	if err != nil {
		return nil, err
	}
	r.font = f
	defer r.closeFaces()

	dc := gg.NewContext(int(w), int(h))
	dc.Scale(r.scale, r.scale)

	for i, op := range p.Ops {
		c, err := parseColor(op.Fill)
		if err != nil {
			return nil, fmt.Errorf("png: op %d: %w", i, err)
		}

		dc.Push()
		if op.Rotation != 0 {
			dc.RotateAbout(gg.Radians(op.Rotation), op.OriginX, op.OriginY)
		}
		dc.SetColor(c)
		switch op.Kind {
		case plan.KindFill:
			dc.DrawRectangle(op.X, op.Y, op.W, op.H)
			dc.Fill()
		case plan.KindText:
			face, err := r.face(op.FontSize)
			if err != nil {
				dc.Pop()
				return nil, fmt.Errorf("png: op %d: %w", i, err)
			}
			dc.SetFontFace(face)
			dc.DrawString(op.Text, op.X, op.Y)
		default:
			dc.Pop()
			return nil, fmt.Errorf("png: unknown operation kind %q", op.Kind)
		}
		dc.Pop()
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *pngRenderer) face(size float64) (font.Face, error) {
	if f, ok := r.faces[size]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(r.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("font face at size %v: %w", size, err)
	}
	r.faces[size] = f
	return f, nil
}

func (r *pngRenderer) closeFaces() {
	for _, f := range r.faces {
		_ = f.Close()
	}
}

func parseColor(hex string) (color.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return nil, fmt.Errorf("parse colour %q: %w", hex, err)
	}
	return c, nil
}
