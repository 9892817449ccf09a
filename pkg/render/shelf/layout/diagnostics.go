package layout

import "fmt"

// DiagnosticKind classifies a recoverable layout or labelling problem.
type DiagnosticKind string

const (
	// CapacityOverflow means some books did not fit in the available rows.
	// The books placed before the overflow are kept.
	CapacityOverflow DiagnosticKind = "capacity_overflow"

	// LabelDiverged means no font size in the search sequence made a label
	// fit its spine; the label was drawn at the minimum size.
	LabelDiverged DiagnosticKind = "label_diverged"
)

// Diagnostic reports a problem that did not stop the rendering.
// Shelf and Slot locate the book involved.
type Diagnostic struct {
	Kind    DiagnosticKind `json:"kind"`
	Shelf   int            `json:"shelf"`
	Slot    int            `json:"slot"`
	Message string         `json:"message"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s (shelf %d, book %d): %s", d.Kind, d.Shelf, d.Slot, d.Message)
}

// Count returns how many diagnostics of kind ds contains.
func Count(ds []Diagnostic, kind DiagnosticKind) int {
	n := 0
	for _, d := range ds {
		if d.Kind == kind {
			n++
		}
	}
	return n
}
