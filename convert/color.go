package convert

import (
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var namedColors = map[string]string{
	"black":   "#000000",
	"white":   "#ffffff",
	"red":     "#ff0000",
	"green":   "#008000",
	"blue":    "#0000ff",
	"yellow":  "#ffff00",
	"gray":    "#808080",
	"grey":    "#808080",
	"orange":  "#ffa500",
	"purple":  "#800080",
	"silver":  "#c0c0c0",
	"navy":    "#000080",
	"teal":    "#008080",
	"maroon":  "#800000",
	"olive":   "#808000",
	"lime":    "#00ff00",
	"aqua":    "#00ffff",
	"fuchsia": "#ff00ff",
}

// Color parses hex colors (#rgb, #rrggbb), rgb(r, g, b) with 0-255 channels
// and a small set of basic color names. Values format as #rrggbb.
func Color() Func[colorful.Color] {
	return New(parseColor, func(c colorful.Color) string {
		return c.Hex()
	})
}

func parseColor(text string) (colorful.Color, error) {
	lower := strings.ToLower(text)
	if hex, ok := namedColors[lower]; ok {
		lower = hex
	}
	switch {
	case strings.HasPrefix(lower, "#"):
		c, err := colorful.Hex(lower)
		if err != nil {
			return colorful.Color{}, syntaxError("color", text, err)
		}
		return c, nil
	case strings.HasPrefix(lower, "rgb(") && strings.HasSuffix(lower, ")"):
		parts := strings.Split(lower[len("rgb("):len(lower)-1], ",")
		if len(parts) != 3 {
			return colorful.Color{}, syntaxError("color", text, nil)
		}
		var channels [3]float64
		for i, part := range parts {
			v, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil || v < 0 || v > 255 {
				return colorful.Color{}, syntaxError("color", text, err)
			}
			channels[i] = float64(v) / 255
		}
		return colorful.Color{R: channels[0], G: channels[1], B: channels[2]}, nil
	default:
		return colorful.Color{}, syntaxError("color", text, nil)
	}
}
