// Package layout computes the geometry of a bookshelf rendering.
//
// # Overview
//
// Layout turns a [library.Library] into absolute rectangles on a fixed-height
// canvas. It runs as three explicit stages, each producing a typed value:
//
//  1. Sizing: [NewEnvelope] derives a randomised size envelope per book and
//     [Envelope.Size] produces an immutable [SizedBook].
//  2. Packing: [Pack] walks the books in shelf-major order and assigns each to
//     a shelf row, producing a [PackedLayout].
//  3. Placement: [Place] converts packed books into [PlacedBook] rectangles
//     and applies the optional lean to the last book of each row.
//
// [Build] runs all three and adds the static frame (background, edges and
// shelf bars) to produce a [Layout].
//
// # Frame Geometry
//
// The canvas is [CanvasHeight] units tall and slightly narrower than the
// library's frame width. Four edges of [EdgeThickness] surround it. The
// vertical space between the edges is split into one row per input shelf,
// each row resting on a horizontal shelf bar:
//
//	┌──────────────────────────┐  top edge
//	│ ▮▮▮ ▮▮ ▮▮▮▮  ╱            │  row 0
//	├──────────────────────────┤  bar 1
//	│ ▮▮ ▮▮▮▮▮ ▮▮               │  row 1
//	└──────────────────────────┘  bar 2 / bottom edge
//
// # Randomness
//
// Size jitter and lean angles are drawn from an injected [Rand]. Passing the
// same seed through [WithSeed] reproduces the same geometry exactly.
//
// # Diagnostics
//
// Layout never fails once [Validate] has accepted the library. Books that do
// not fit in the available rows are dropped and reported as a
// [CapacityOverflow] diagnostic on the result.
//
// [library.Library]: github.com/matzehuels/shelfview/pkg/library.Library
package layout
