package charts

import (
	"github.com/wcharczuk/go-chart/v2"
)

// LineSeries is one grouped trace: Values[i] is the y value at xLabels[i],
// with NaN-free inputs expected (callers drop empty cells).
type LineSeries struct {
	Name   string
	Values []float64
}

// Lines builds a grouped line chart over a shared categorical x axis. The
// rows argument carries the pivoted summary table for export, since the long
// form that drew the lines is rarely what a reader wants in a spreadsheet.
func Lines(name, title string, xLabels []string, series []LineSeries, rows interface{}) *Bundle {
	ticks := make([]chart.Tick, 0, len(xLabels))
	xValues := make([]float64, len(xLabels))
	for i, label := range xLabels {
		xValues[i] = float64(i)
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: label})
	}

	chartSeries := make([]chart.Series, 0, len(series))
	for i, s := range series {
		if len(s.Values) != len(xLabels) {
			continue
		}
		chartSeries = append(chartSeries, chart.ContinuousSeries{
			Name:    s.Name,
			XValues: xValues,
			YValues: s.Values,
			Style: chart.Style{
				StrokeWidth: 2,
				StrokeColor: toDrawing(PaletteColor(i)),
				DotWidth:    4,
				DotColor:    toDrawing(PaletteColor(i)),
			},
		})
	}

	bundle := &Bundle{Name: name, Rows: rows}
	if len(chartSeries) > 0 {
		bundle.Renderable = chartRenderer{chart.Chart{
			Title:  title,
			Width:  800,
			Height: 480,
			XAxis:  chart.XAxis{Ticks: ticks},
			YAxis:  chart.YAxis{Name: "median frequency"},
			Series: chartSeries,
		}}
	}

	return bundle
}
