package docload

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/leapstack-labs/leapstep/pkg/xcaf"
	"gopkg.in/yaml.v3"
)

// ColorSpec is a colour written as a name ("red"), a hex triplet
// ("#ff8000") or an [r, g, b] sequence with components in [0, 1].
type ColorSpec xcaf.Color

var namedColors = map[string]xcaf.Color{
	"black":   xcaf.Black,
	"white":   xcaf.White,
	"red":     xcaf.Red,
	"green":   xcaf.Green,
	"blue":    xcaf.Blue,
	"yellow":  {R: 1, G: 1},
	"magenta": {R: 1, B: 1},
	"cyan":    {G: 1, B: 1},
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *ColorSpec) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		col, err := parseColor(node.Value)
		if err != nil {
			return &ParseError{Line: node.Line, Message: err.Error()}
		}
		*c = ColorSpec(col)
		return nil
	case yaml.SequenceNode:
		var rgb []float64
		if err := node.Decode(&rgb); err != nil {
			return err
		}
		if len(rgb) != 3 {
			return &ParseError{Line: node.Line, Message: fmt.Sprintf("colour needs 3 components, got %d", len(rgb))}
		}
		for _, v := range rgb {
			if v < 0 || v > 1 {
				return &ParseError{Line: node.Line, Message: fmt.Sprintf("colour component %g outside [0, 1]", v)}
			}
		}
		*c = ColorSpec{R: rgb[0], G: rgb[1], B: rgb[2]}
		return nil
	default:
		return &ParseError{Line: node.Line, Message: "colour must be a name, hex triplet or [r, g, b]"}
	}
}

func parseColor(s string) (xcaf.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if col, ok := namedColors[s]; ok {
		return col, nil
	}
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || len(hex) != 6 {
		return xcaf.Color{}, fmt.Errorf("unknown colour %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return xcaf.Color{}, fmt.Errorf("invalid hex colour %q", s)
	}
	return xcaf.Color{
		R: float64(v>>16&0xff) / 255,
		G: float64(v>>8&0xff) / 255,
		B: float64(v&0xff) / 255,
	}, nil
}
