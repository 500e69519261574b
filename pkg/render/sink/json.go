package sink

import (
	"encoding/json"

	"github.com/matzehuels/bracketgen/pkg/render/layout"
)

// RenderJSON exports the layout geometry as indented JSON.
func RenderJSON(l layout.Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}
