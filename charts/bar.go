package charts

import (
	"sort"

	"github.com/wcharczuk/go-chart/v2"
)

// BarValue is one sample's relative frequency for the subset under display,
// tagged with its feature level for coloring.
type BarValue struct {
	SampleID  string  `csv:"sample_id"`
	Level     string  `csv:"level"`
	Frequency float64 `csv:"frequency"`
}

// Bar builds the per-sample frequency bar chart, ordered ascending by
// frequency and colored by feature level. Levels fixes the color assignment
// order so every subset's chart in a report shares a palette.
func Bar(name, title string, values []BarValue, levels []string) *Bundle {
	sorted := make([]BarValue, len(values))
	copy(sorted, values)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Frequency < sorted[j].Frequency
	})

	colors := LevelColors(levels)

	bars := make([]chart.Value, 0, len(sorted))
	for _, v := range sorted {
		bars = append(bars, chart.Value{
			Label: v.SampleID,
			Value: v.Frequency,
			Style: chart.Style{FillColor: toDrawing(colors[v.Level])},
		})
	}

	bundle := &Bundle{Name: name, Rows: sorted}
	if len(bars) > 0 {
		bundle.Renderable = barChartRenderer{chart.BarChart{
			Title:    title,
			Width:    60*len(bars) + 200,
			Height:   480,
			BarWidth: 40,
			Bars:     bars,
		}}
	}

	return bundle
}
