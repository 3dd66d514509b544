package cli

import (
	"github.com/lucasb-eyer/go-colorful"

	styleable "github.com/goliatone/go-styleable"
	"github.com/goliatone/go-styleable/convert"
)

// Figure keys understood by the CLI.
var (
	keyFill        = styleable.NewKey("fill", colorful.Color{R: 1, G: 1, B: 1}, styleable.WithConverter[colorful.Color](convert.Color()))
	keyStroke      = styleable.NewKey("stroke", colorful.Color{}, styleable.WithConverter[colorful.Color](convert.Color()))
	keyStrokeWidth = styleable.NewKey("stroke-width", 1.0, styleable.WithConverter[float64](convert.Calc()))
	keyStrokeType  = styleable.NewKey("stroke-type", "solid", styleable.WithConverter[string](convert.Enum("solid", "dashed", "dotted")))
	keyOpacity     = styleable.NewKey("opacity", 1.0, styleable.WithConverter[float64](convert.Float()))
	keyVisible     = styleable.NewKey("visible", true, styleable.WithConverter[bool](convert.Bool()))
	keyFontFamily  = styleable.NewKey("font-family", "sans-serif", styleable.WithConverter[string](convert.String()))
)

func figureKeys() []styleable.Key {
	return []styleable.Key{
		keyFill,
		keyStroke,
		keyStrokeWidth,
		keyStrokeType,
		keyOpacity,
		keyVisible,
		keyFontFamily,
	}
}

// figureType declares the figure keys for a bean kind such as "rect".
func figureType(kind string) *styleable.BeanType {
	if kind == "" {
		kind = "figure"
	}
	return styleable.NewBeanType(kind, figureKeys()...)
}
