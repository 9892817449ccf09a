// Package fonts provides the font used to measure and draw book labels.
//
// The Go Regular typeface ships with golang.org/x/image, so it is compiled
// into the binary without external files. The same face is used for
// measuring text during layout and, optionally, embedded into SVG output so
// the measured widths hold in every viewer.
package fonts

import (
	"encoding/base64"
	"fmt"
	"sync"

	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// GoRegularTTF returns the TTF font data.
func GoRegularTTF() []byte {
	return goregular.TTF
}

// Cache for derived font data (computed once on first access).
var (
	ttfBase64     string
	ttfBase64Once sync.Once

	parsed     *opentype.Font
	parsedErr  error
	parsedOnce sync.Once
)

// GoRegularTTFBase64 returns the TTF font data as a base64 string.
// The result is cached after first computation.
func GoRegularTTFBase64() string {
	ttfBase64Once.Do(func() {
		ttfBase64 = base64.StdEncoding.EncodeToString(goregular.TTF)
	})
	return ttfBase64
}

// GoRegular returns the parsed font. The result is cached after first
// computation and is safe to share between goroutines.
func GoRegular() (*opentype.Font, error) {
	parsedOnce.Do(func() {
		parsed, parsedErr = opentype.Parse(goregular.TTF)
		if parsedErr != nil {
			parsedErr = fmt.Errorf("parse go regular: %w", parsedErr)
		}
	})
	return parsed, parsedErr
}

// FontFamily is the CSS font-family name for the embedded font.
const FontFamily = "Go"

// FallbackFontFamily provides fallback fonts for viewers without the embedded font.
const FallbackFontFamily = `'Go', 'Helvetica Neue', Helvetica, Arial, sans-serif`
