// Package styles maps style variants to colours and fits book labels to
// their spines.
package styles

import (
	"strings"

	"github.com/matzehuels/shelfview/pkg/errors"
)

// Variant is one of the three named colour schemes.
type Variant int

const (
	Default Variant = iota
	Light
	Dark
)

var variantNames = [...]string{Default: "default", Light: "light", Dark: "dark"}

// VariantNames lists the accepted variant names.
var VariantNames = variantNames[:]

func (v Variant) String() string {
	if v < 0 || int(v) >= len(variantNames) {
		return "default"
	}
	return variantNames[v]
}

// ParseVariant parses a variant name, ignoring case. An empty name is [Default].
func ParseVariant(s string) (Variant, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return Default, nil
	}
	for i, n := range variantNames {
		if n == name {
			return Variant(i), nil
		}
	}
	return Default, errors.New(errors.ErrCodeInvalidStyle,
		"invalid style: %q (must be one of: %s)", s, strings.Join(VariantNames, ", "))
}

// MarshalText implements encoding.TextMarshaler.
func (v Variant) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Variant) UnmarshalText(b []byte) error {
	parsed, err := ParseVariant(string(b))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

var (
	backgroundColors = [...]string{Default: "#BC8F8F", Light: "#FFF8DC", Dark: "#330000"}
	shelfColors      = [...]string{Default: "#8B4513", Light: "#CD853F", Dark: "#660000"}
	bookPalettes     = [...][]string{
		Default: {"#FFAFAF", "#9933FF", "#0000FF", "#FFFF00", "#FFC800"},
		Light:   {"#FF66FF", "#CC99FF", "#33CCFF", "#FFFF66", "#FFCC66"},
		Dark:    {"#990033", "#330033", "#000033", "#CC9900", "#993300"},
	}
)

// Theme selects a variant independently for the background, the frame and
// shelves, and the book fills.
type Theme struct {
	Background Variant `json:"background"`
	Shelf      Variant `json:"shelf"`
	Book       Variant `json:"book"`
}

// BackgroundColor is the canvas fill.
func (t Theme) BackgroundColor() string { return backgroundColors[t.Background.valid()] }

// ShelfColor fills the frame edges and shelf bars.
func (t Theme) ShelfColor() string { return shelfColors[t.Shelf.valid()] }

// Palette returns the book fill colours. The slice is shared; do not modify.
func (t Theme) Palette() []string { return bookPalettes[t.Book.valid()] }

// TextColor is white on the dark book palette and black otherwise.
func (t Theme) TextColor() string {
	if t.Book == Dark {
		return "#FFFFFF"
	}
	return "#000000"
}

func (v Variant) valid() Variant {
	if v < 0 || int(v) >= len(variantNames) {
		return Default
	}
	return v
}
