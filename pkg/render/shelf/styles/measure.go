package styles

import (
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"

	"github.com/matzehuels/shelfview/pkg/fonts"
)

// FaceMeasurer measures text with the embedded Go Regular font. Faces are
// created lazily and cached per size. It is safe for concurrent use.
type FaceMeasurer struct {
	font *opentype.Font

	mu    sync.Mutex
	faces map[float64]font.Face
}

// NewFaceMeasurer parses the embedded font.
func NewFaceMeasurer() (*FaceMeasurer, error) {
	f, err := fonts.GoRegular()
	if err != nil {
		return nil, err
	}
	return &FaceMeasurer{font: f, faces: make(map[float64]font.Face)}, nil
}

// MeasureString implements [Measurer]. Sizes the font cannot produce a
// face for fall back to [EstimateMeasurer].
func (m *FaceMeasurer) MeasureString(text string, size float64) float64 {
	face, err := m.face(size)
	if err != nil {
		return EstimateMeasurer{}.MeasureString(text, size)
	}
	return float64(font.MeasureString(face, text)) / 64
}

// Close releases the cached faces.
func (m *FaceMeasurer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for size, f := range m.faces {
		_ = f.Close()
		delete(m.faces, size)
	}
	return nil
}

func (m *FaceMeasurer) face(size float64) (font.Face, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if f, ok := m.faces[size]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(m.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}
	m.faces[size] = f
	return f, nil
}
