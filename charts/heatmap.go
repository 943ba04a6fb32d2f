package charts

import (
	"fmt"
	"math"

	"github.com/fogleman/gg"
)

// HeatmapCell is the long-form export row for a heatmap figure.
type HeatmapCell struct {
	Row   string  `csv:"row"`
	Col   string  `csv:"col"`
	Value float64 `csv:"value"`
}

const heatmapCellSize = 36

// Heatmap draws a labeled matrix with a white-to-blue ramp scaled to the
// observed range. values is indexed [row][col] and must be rectangular.
func Heatmap(name, title string, rowLabels, colLabels []string, values [][]float64) *Bundle {
	cells := make([]HeatmapCell, 0, len(rowLabels)*len(colLabels))
	lo, hi := math.Inf(1), math.Inf(-1)
	for i, rl := range rowLabels {
		for j, cl := range colLabels {
			v := values[i][j]
			cells = append(cells, HeatmapCell{Row: rl, Col: cl, Value: v})
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}

	bundle := &Bundle{Name: name, Rows: cells}
	if len(cells) == 0 {
		return bundle
	}
	if hi == lo {
		hi = lo + 1
	}

	const marginLeft, marginTop = 140.0, 80.0
	width := int(marginLeft) + heatmapCellSize*len(colLabels) + 40
	height := int(marginTop) + heatmapCellSize*len(rowLabels) + 40

	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	dc.SetRGB(0, 0, 0)
	dc.DrawStringAnchored(title, float64(width)/2, marginTop/3, 0.5, 0.5)

	for i, rl := range rowLabels {
		y := marginTop + heatmapCellSize*float64(i)
		dc.SetRGB(0, 0, 0)
		dc.DrawStringAnchored(rl, marginLeft-8, y+heatmapCellSize/2, 1, 0.5)

		for j := range colLabels {
			x := marginLeft + heatmapCellSize*float64(j)
			frac := (values[i][j] - lo) / (hi - lo)
			dc.SetRGB(1-frac, 1-frac, 1)
			dc.DrawRectangle(x, y, heatmapCellSize, heatmapCellSize)
			dc.Fill()
		}
	}

	// Column labels, rotated to fit
	for j, cl := range colLabels {
		x := marginLeft + heatmapCellSize*(float64(j)+0.5)
		dc.Push()
		dc.RotateAbout(-math.Pi/4, x, marginTop-8)
		dc.SetRGB(0, 0, 0)
		dc.DrawStringAnchored(cl, x, marginTop-8, 0, 0.5)
		dc.Pop()
	}

	bundle.Renderable = imageRenderer{dc}

	return bundle
}

func formatTick(v float64) string {
	return fmt.Sprintf("%.3g", v)
}
