package charts

import (
	"math"
	"sort"

	"github.com/fogleman/gg"
	"gonum.org/v1/gonum/stat"
)

// BoxGroup is one feature level's frequency distribution.
type BoxGroup struct {
	Label  string
	Values []float64
}

// BoxStatRow is the five-number summary exported alongside the figure.
type BoxStatRow struct {
	Level  string  `csv:"level"`
	N      int     `csv:"n"`
	Min    float64 `csv:"min"`
	Q1     float64 `csv:"q1"`
	Median float64 `csv:"median"`
	Q3     float64 `csv:"q3"`
	Max    float64 `csv:"max"`
}

const (
	boxPlotHeight  = 480
	boxGroupWidth  = 130
	boxPlotMarginX = 70.0
	boxPlotMarginY = 50.0
)

// Box draws side-by-side box-and-whisker plots with gg; the chart library
// has no box primitive. Whiskers span the full observed range.
func Box(name, title string, groups []BoxGroup) *Bundle {
	rows := make([]BoxStatRow, 0, len(groups))
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, g := range groups {
		if len(g.Values) == 0 {
			continue
		}
		sorted := make([]float64, len(g.Values))
		copy(sorted, g.Values)
		sort.Float64s(sorted)

		row := BoxStatRow{
			Level:  g.Label,
			N:      len(sorted),
			Min:    sorted[0],
			Q1:     stat.Quantile(0.25, stat.Empirical, sorted, nil),
			Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
			Q3:     stat.Quantile(0.75, stat.Empirical, sorted, nil),
			Max:    sorted[len(sorted)-1],
		}
		rows = append(rows, row)
		lo = math.Min(lo, row.Min)
		hi = math.Max(hi, row.Max)
	}

	bundle := &Bundle{Name: name, Rows: rows}
	if len(rows) == 0 {
		return bundle
	}
	if hi == lo {
		hi = lo + 1
	}

	width := boxGroupWidth*len(rows) + int(2*boxPlotMarginX)
	dc := gg.NewContext(width, boxPlotHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	plotH := float64(boxPlotHeight) - 2*boxPlotMarginY
	yFor := func(v float64) float64 {
		return boxPlotMarginY + plotH*(1-(v-lo)/(hi-lo))
	}

	dc.SetRGB(0, 0, 0)
	dc.DrawStringAnchored(title, float64(width)/2, boxPlotMarginY/2, 0.5, 0.5)

	for i, row := range rows {
		cx := boxPlotMarginX + boxGroupWidth*(float64(i)+0.5)
		boxW := boxGroupWidth * 0.5

		fill := PaletteColor(i)
		dc.SetColor(fill)
		dc.DrawRectangle(cx-boxW/2, yFor(row.Q3), boxW, yFor(row.Q1)-yFor(row.Q3))
		dc.FillPreserve()
		dc.SetRGB(0, 0, 0)
		dc.SetLineWidth(1.5)
		dc.Stroke()

		// Median line
		dc.DrawLine(cx-boxW/2, yFor(row.Median), cx+boxW/2, yFor(row.Median))
		dc.SetLineWidth(2)
		dc.Stroke()

		// Whiskers and caps
		dc.SetLineWidth(1)
		dc.DrawLine(cx, yFor(row.Q3), cx, yFor(row.Max))
		dc.DrawLine(cx, yFor(row.Q1), cx, yFor(row.Min))
		dc.DrawLine(cx-boxW/4, yFor(row.Max), cx+boxW/4, yFor(row.Max))
		dc.DrawLine(cx-boxW/4, yFor(row.Min), cx+boxW/4, yFor(row.Min))
		dc.Stroke()

		dc.DrawStringAnchored(row.Level, cx, float64(boxPlotHeight)-boxPlotMarginY/2, 0.5, 0.5)
	}

	// y axis with min/max labels
	dc.DrawLine(boxPlotMarginX*0.8, yFor(hi), boxPlotMarginX*0.8, yFor(lo))
	dc.Stroke()
	dc.DrawStringAnchored(formatTick(hi), boxPlotMarginX*0.4, yFor(hi), 0.5, 0.5)
	dc.DrawStringAnchored(formatTick(lo), boxPlotMarginX*0.4, yFor(lo), 0.5, 0.5)

	bundle.Renderable = imageRenderer{dc}

	return bundle
}
