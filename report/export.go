package report

import (
	"path/filepath"

	"github.com/broadcyto/cytodiff/charts"
)

// Bundles groups every output by its plot category, mirroring the on-disk
// layout produced by Export.
func (fr *FeatureReport) Bundles() map[string][]*charts.Bundle {
	out := map[string][]*charts.Bundle{
		"analysis_results": {fr.AnalysisResults},
		"volcano":          {fr.Volcano},
		"box_plots":        {},
		"bar_plots":        {},
	}
	for _, b := range fr.BoxPlots {
		out["box_plots"] = append(out["box_plots"], b)
	}
	for _, b := range fr.BarPlots {
		out["bar_plots"] = append(out["bar_plots"], b)
	}
	if fr.LinePlots != nil {
		out["line_plots"] = []*charts.Bundle{}
		for _, b := range fr.LinePlots {
			out["line_plots"] = append(out["line_plots"], b)
		}
	}

	return out
}

// Export writes the whole report under
// <outDir>/<level>/<feature>/<category>/.
func (fr *FeatureReport) Export(outDir string) error {
	base := filepath.Join(outDir, fr.Level, fr.Feature)

	for category, bundles := range fr.Bundles() {
		for _, b := range bundles {
			if b == nil {
				continue
			}
			if err := b.Export(filepath.Join(base, category)); err != nil {
				return err
			}
		}
	}

	return nil
}
