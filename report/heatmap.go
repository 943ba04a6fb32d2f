package report

import (
	"fmt"

	"github.com/carbocation/pfx"
	"github.com/montanaflynn/stats"

	"github.com/broadcyto/cytodiff/charts"
	"github.com/broadcyto/cytodiff/cyto"
)

// ExpressionHeatmap summarizes preprocessed samples as a sample-by-channel
// matrix of median marker expression, a QC companion to the abundance
// report. Channels are taken from the first sample and must be present in
// all of them.
func ExpressionHeatmap(samples []*cyto.Sample) (*charts.Bundle, error) {
	if len(samples) == 0 {
		return nil, pfx.Err(fmt.Errorf("no samples to summarize"))
	}

	channels := make([]string, 0, len(samples[0].Channels))
	for _, c := range samples[0].Channels {
		channels = append(channels, c.Display)
	}

	rowLabels := make([]string, 0, len(samples))
	values := make([][]float64, 0, len(samples))
	for _, s := range samples {
		row := make([]float64, len(channels))
		for j, display := range channels {
			idx := s.ChannelIndex(display)
			if idx < 0 {
				return nil, pfx.Err(fmt.Errorf("sample %s lacks channel %s", s.ID, display))
			}
			median, err := stats.Median(s.Column(idx))
			if err != nil {
				return nil, pfx.Err(fmt.Errorf("sample %s channel %s: %s", s.ID, display, err))
			}
			row[j] = median
		}
		rowLabels = append(rowLabels, s.ID)
		values = append(values, row)
	}

	return charts.Heatmap("median_expression", "median marker expression", rowLabels, channels, values), nil
}
