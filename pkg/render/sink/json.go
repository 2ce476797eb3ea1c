package sink

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/stackchart/pkg/chart/area"
	"github.com/matzehuels/stackchart/pkg/chart/pie"
)

// Kinds recorded in JSON output.
const (
	KindArea = "area"
	KindPie  = "pie"
)

type jsonOutput struct {
	Kind     string `json:"kind"`
	Geometry any    `json:"geometry"`
}

// RenderJSON exports geometry descriptors. g must be an *area.Geometry or
// a *pie.Geometry. Paths are encoded as SVG path data.
func RenderJSON(g any) ([]byte, error) {
	out := jsonOutput{Geometry: g}
	switch g.(type) {
	case *area.Geometry:
		out.Kind = KindArea
	case *pie.Geometry:
		out.Kind = KindPie
	default:
		return nil, fmt.Errorf("unsupported geometry %T", g)
	}
	return json.MarshalIndent(out, "", "  ")
}
