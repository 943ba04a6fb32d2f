package charts

import (
	"image/color"
	"log"

	"github.com/icza/gox/imagex/colorx"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// paletteHex is a colorblind-safe categorical palette; levels beyond its
// length wrap around.
var paletteHex = []string{
	"#4C72B0", "#DD8452", "#55A868", "#C44E52", "#8172B3",
	"#937860", "#DA8BC3", "#8C8C8C", "#CCB974", "#64B5CD",
}

var palette = func() []color.RGBA {
	out := make([]color.RGBA, 0, len(paletteHex))
	for _, hex := range paletteHex {
		c, err := colorx.ParseHexColor(hex)
		if err != nil {
			log.Fatalln("invalid palette entry", hex, err)
		}
		out = append(out, c)
	}

	return out
}()

// PaletteColor returns the i-th categorical color.
func PaletteColor(i int) color.RGBA {
	return palette[i%len(palette)]
}

// LevelColors assigns a stable color to each level in the given order.
func LevelColors(levels []string) map[string]color.RGBA {
	out := make(map[string]color.RGBA, len(levels))
	for i, level := range levels {
		out[level] = PaletteColor(i)
	}

	return out
}

func toDrawing(c color.RGBA) drawing.Color {
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}
