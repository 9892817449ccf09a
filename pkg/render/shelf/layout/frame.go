package layout

import "math"

// Fixed canvas geometry, in canvas units.
const (
	CanvasHeight  = 1500.0
	EdgeThickness = 20.0

	// FrameMargin is the share of the frame width not used by the canvas.
	FrameMargin = 0.055

	// MaxFrameWidth bounds the frame width so canvases stay renderable.
	MaxFrameWidth = 20000.0
)

// Rect is an axis-aligned rectangle. X and Y locate the top-left corner.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"width"`
	H float64 `json:"height"`
}

// Frame holds the geometry derived from the frame width and shelf count.
type Frame struct {
	FrameWidth   float64 `json:"frame_width"`
	CanvasWidth  float64 `json:"canvas_width"`
	CanvasHeight float64 `json:"canvas_height"`
	Edge         float64 `json:"edge"`
	Rows         int     `json:"rows"`
	RowSpacing   float64 `json:"row_spacing"`
	ShelfWidth   float64 `json:"shelf_width"`
}

// NewFrame derives the canvas for a frame width and number of shelf rows.
// The canvas width is truncated to whole units. rows must be positive; see
// [Validate].
func NewFrame(frameWidth float64, rows int) Frame {
	canvasW := math.Floor(math.Floor(frameWidth) - FrameMargin*frameWidth)
	return Frame{
		FrameWidth:   frameWidth,
		CanvasWidth:  canvasW,
		CanvasHeight: CanvasHeight,
		Edge:         EdgeThickness,
		Rows:         rows,
		RowSpacing:   (CanvasHeight - EdgeThickness*float64(rows+1)) / float64(rows),
		ShelfWidth:   canvasW - 2*EdgeThickness,
	}
}

// BarY returns the top of the shelf bar that row (0-based) rests on.
func (f Frame) BarY(row int) float64 {
	i := float64(row + 1)
	return i*f.Edge + i*f.RowSpacing
}

// Background covers the whole canvas.
func (f Frame) Background() Rect {
	return Rect{W: f.CanvasWidth, H: f.CanvasHeight}
}

// Edges returns the four frame edges in drawing order: top, bottom, right, left.
func (f Frame) Edges() [4]Rect {
	w, h, e := f.CanvasWidth, f.CanvasHeight, f.Edge
	return [4]Rect{
		{X: 0, Y: 0, W: w, H: e},
		{X: 0, Y: h - e, W: w, H: e},
		{X: w - e, Y: 0, W: e, H: h},
		{X: 0, Y: 0, W: e, H: h},
	}
}

// ShelfBars returns one full-width bar per row, top to bottom.
func (f Frame) ShelfBars() []Rect {
	bars := make([]Rect, f.Rows)
	for r := range bars {
		bars[r] = Rect{X: 0, Y: f.BarY(r), W: f.CanvasWidth, H: f.Edge}
	}
	return bars
}
