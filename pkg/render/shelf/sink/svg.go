package sink

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/shelfview/pkg/fonts"
	"github.com/matzehuels/shelfview/pkg/render/shelf/plan"
)

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	title     string
	embedFont bool
}

// WithTitle sets the document's <title>.
func WithTitle(t string) SVGOption { return func(r *svgRenderer) { r.title = t } }

// WithEmbeddedFont embeds the Go Regular font as a data URI so labels render
// with the font they were measured with.
func WithEmbeddedFont() SVGOption { return func(r *svgRenderer) { r.embedFont = true } }

// RenderSVG draws p as an SVG document. Coordinates are rounded to whole
// units; rotations keep full precision.
func RenderSVG(p plan.Plan, opts ...SVGOption) ([]byte, error) {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(px(p.Width), px(p.Height))
	if r.title != "" {
		canvas.Title(r.title)
	}
	if r.embedFont {
		canvas.Style("text/css", fontFaceCSS())
	}

	for _, op := range p.Ops {
		rotated := op.Rotation != 0
		if rotated {
			canvas.Gtransform(fmt.Sprintf("rotate(%s %s %s)", num(op.Rotation), num(op.OriginX), num(op.OriginY)))
		}
		switch op.Kind {
		case plan.KindFill:
			canvas.Rect(px(op.X), px(op.Y), px(op.W), px(op.H), "fill:"+op.Fill)
		case plan.KindText:
			canvas.Text(px(op.X), px(op.Y), op.Text, textStyle(op))
		default:
			return nil, fmt.Errorf("svg: unknown operation kind %q", op.Kind)
		}
		if rotated {
			canvas.Gend()
		}
	}

	canvas.End()
	return buf.Bytes(), nil
}

func textStyle(op plan.Op) string {
	return fmt.Sprintf("fill:%s;font-family:%s;font-size:%spx", op.Fill, fonts.FallbackFontFamily, num(op.FontSize))
}

func fontFaceCSS() string {
	return fmt.Sprintf("@font-face { font-family: '%s'; src: url(data:font/ttf;base64,%s) format('truetype'); }",
		fonts.FontFamily, fonts.GoRegularTTFBase64())
}

func px(v float64) int { return int(math.Round(v)) }

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
