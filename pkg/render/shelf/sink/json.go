package sink

import (
	"encoding/json"

	"github.com/matzehuels/shelfview/pkg/render/shelf/plan"
)

// RenderJSON exports the plan as a pretty-printed JSON document. Two runs
// with the same seed and input produce identical bytes.
func RenderJSON(p plan.Plan) ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}
