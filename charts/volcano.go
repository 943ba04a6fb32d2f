package charts

import (
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// VolcanoPoint is one cell subset positioned by effect size and adjusted
// significance.
type VolcanoPoint struct {
	SubsetID    string  `csv:"subset_id"`
	SubsetName  string  `csv:"subset_name"`
	LogFC       float64 `csv:"logFC"`
	NegLog10FDR float64 `csv:"neg_log10_fdr"`
	Significant bool    `csv:"significant"`
}

// Volcano builds the effect-size vs. -log10(FDR) scatter. Significant points
// are emphasized and labeled with the subset name.
func Volcano(name, title string, points []VolcanoPoint) *Bundle {
	var plainX, plainY, sigX, sigY []float64
	var labels []chart.Value2
	for _, p := range points {
		if p.Significant {
			sigX = append(sigX, p.LogFC)
			sigY = append(sigY, p.NegLog10FDR)
			labels = append(labels, chart.Value2{XValue: p.LogFC, YValue: p.NegLog10FDR, Label: p.SubsetName})
		} else {
			plainX = append(plainX, p.LogFC)
			plainY = append(plainY, p.NegLog10FDR)
		}
	}

	var series []chart.Series
	if len(plainX) > 0 {
		series = append(series, chart.ContinuousSeries{
			Name:    "not significant",
			XValues: plainX,
			YValues: plainY,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    4,
				DotColor:    drawing.Color{R: 140, G: 140, B: 140, A: 255},
			},
		})
	}
	if len(sigX) > 0 {
		series = append(series, chart.ContinuousSeries{
			Name:    "significant",
			XValues: sigX,
			YValues: sigY,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    6,
				DotColor:    toDrawing(PaletteColor(3)),
			},
		})
		series = append(series, chart.AnnotationSeries{Annotations: labels})
	}

	bundle := &Bundle{Name: name, Rows: points}
	if len(series) > 0 {
		bundle.Renderable = chartRenderer{chart.Chart{
			Title:  title,
			Width:  800,
			Height: 600,
			XAxis:  chart.XAxis{Name: "log fold change"},
			YAxis:  chart.YAxis{Name: "-log10 FDR"},
			Series: series,
		}}
	}

	return bundle
}
