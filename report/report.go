package report

import (
	"fmt"
	"math"
	"sort"

	"cloud.google.com/go/storage"
	"github.com/montanaflynn/stats"
	"gopkg.in/guregu/null.v3"

	"github.com/broadcyto/cytodiff/analysis"
	"github.com/broadcyto/cytodiff/charts"
	"github.com/broadcyto/cytodiff/experiment"
)

// SignificanceFDR is the adjusted-significance cutoff used to emphasize and
// label volcano points.
const SignificanceFDR = 0.05

// Reporter holds the loaded inputs shared by every feature report in one
// invocation.
type Reporter struct {
	Experiment *experiment.Experiment
	Counts     []analysis.CountRow

	// Secondary names the grouping feature driving the line plots; empty
	// disables them.
	Secondary string

	// Fisher toggles the exploratory Fisher exact column.
	Fisher bool

	// StorageClient enables gs:// artifact paths; nil restricts the reporter
	// to local files.
	StorageClient *storage.Client
}

// ResultTableRow is one subset's line in the exported results table: the
// external model's statistics plus the derived -log10(FDR) and the optional
// exploratory Fisher p-value.
type ResultTableRow struct {
	SubsetID    string     `csv:"subset_id"`
	SubsetName  string     `csv:"subset_name"`
	LogFC       null.Float `csv:"logFC"`
	PValue      null.Float `csv:"p_val"`
	FDR         null.Float `csv:"p_adj"`
	NegLog10FDR null.Float `csv:"neg_log10_fdr"`
	FisherP     null.Float `csv:"fisher_p"`
}

// FeatureReport is the full output for one (analysis level, sample feature)
// pair. LinePlots is nil when the secondary-feature predicate excludes them;
// the whole report is nil when no result table exists for the feature.
type FeatureReport struct {
	Level   string
	Feature string

	AnalysisResults *charts.Bundle
	Volcano         *charts.Bundle
	BoxPlots        map[string]*charts.Bundle
	BarPlots        map[string]*charts.Bundle
	LinePlots       map[string]*charts.Bundle
}

// Feature builds the report for one (level, feature) pair. A missing result
// table for the feature is not an error: the model was never fit, and the
// feature is skipped by returning (nil, nil).
func (r *Reporter) Feature(level, feature string) (*FeatureReport, error) {
	results, err := analysis.LoadResults(r.Experiment.AnalysisPath, level, feature, r.StorageClient)
	if err != nil {
		return nil, err
	}
	if results == nil {
		return nil, nil
	}

	freqs, err := BuildFrequencies(r.Counts, level, r.Experiment, feature, r.Secondary)
	if err != nil {
		return nil, err
	}

	levels := featureLevelOrder(freqs)

	var fisher map[string]float64
	if r.Fisher && len(levels) > 1 {
		fisher = fisherBySubset(freqs, levels[0])
	}

	tableRows, volcanoPoints := r.resultTable(results, fisher)

	out := &FeatureReport{
		Level:           level,
		Feature:         feature,
		AnalysisResults: &charts.Bundle{Name: "analysis_results", Rows: tableRows},
		Volcano:         charts.Volcano("volcano", fmt.Sprintf("%s at %s level", feature, level), volcanoPoints),
		BoxPlots:        make(map[string]*charts.Bundle),
		BarPlots:        make(map[string]*charts.Bundle),
	}

	withLines := includeLinePlots(freqs)
	if withLines {
		out.LinePlots = make(map[string]*charts.Bundle)
	}

	for _, row := range tableRows {
		subsetFreqs := subsetRows(freqs, row.SubsetID)
		if len(subsetFreqs) == 0 {
			continue
		}

		out.BoxPlots[row.SubsetID] = charts.Box(
			"box_"+row.SubsetID,
			row.SubsetName,
			boxGroups(subsetFreqs, levels),
		)
		out.BarPlots[row.SubsetID] = charts.Bar(
			"bar_"+row.SubsetID,
			row.SubsetName,
			barValues(subsetFreqs),
			levels,
		)
		if withLines {
			out.LinePlots[row.SubsetID] = lineBundle(row.SubsetID, row.SubsetName, subsetFreqs, levels)
		}
	}

	return out, nil
}

// resultTable merges the external model output with subset names and derived
// columns, and positions every testable subset on the volcano.
func (r *Reporter) resultTable(results []analysis.ResultRow, fisher map[string]float64) ([]ResultTableRow, []charts.VolcanoPoint) {
	rows := make([]ResultTableRow, 0, len(results))
	points := make([]charts.VolcanoPoint, 0, len(results))

	for _, res := range results {
		row := ResultTableRow{
			SubsetID:   res.SubsetID,
			SubsetName: r.Experiment.SubsetName(res.SubsetID),
			LogFC:      res.LogFC,
			PValue:     res.PValue,
			FDR:        res.FDR,
		}
		if res.FDR.Valid && res.FDR.Float64 > 0 {
			row.NegLog10FDR = null.FloatFrom(-math.Log10(res.FDR.Float64))
		}
		if p, exists := fisher[res.SubsetID]; exists {
			row.FisherP = null.FloatFrom(p)
		}
		rows = append(rows, row)

		if res.LogFC.Valid && row.NegLog10FDR.Valid {
			points = append(points, charts.VolcanoPoint{
				SubsetID:    row.SubsetID,
				SubsetName:  row.SubsetName,
				LogFC:       res.LogFC.Float64,
				NegLog10FDR: row.NegLog10FDR.Float64,
				Significant: res.FDR.Float64 < SignificanceFDR,
			})
		}
	}

	return rows, points
}

func subsetRows(freqs []FrequencyRow, subsetID string) []FrequencyRow {
	out := make([]FrequencyRow, 0)
	for _, row := range freqs {
		if row.SubsetID == subsetID {
			out = append(out, row)
		}
	}

	return out
}

func boxGroups(subsetFreqs []FrequencyRow, levels []string) []charts.BoxGroup {
	byLevel := make(map[string][]float64)
	for _, row := range subsetFreqs {
		byLevel[row.FeatureLevel] = append(byLevel[row.FeatureLevel], row.Frequency)
	}

	out := make([]charts.BoxGroup, 0, len(levels))
	for _, level := range levels {
		out = append(out, charts.BoxGroup{Label: level, Values: byLevel[level]})
	}

	return out
}

func barValues(subsetFreqs []FrequencyRow) []charts.BarValue {
	out := make([]charts.BarValue, 0, len(subsetFreqs))
	for _, row := range subsetFreqs {
		out = append(out, charts.BarValue{
			SampleID:  row.SampleID,
			Level:     row.FeatureLevel,
			Frequency: row.Frequency,
		})
	}

	return out
}

// lineBundle draws median frequency per (primary level, secondary level)
// cell, one trace per secondary level, and pivots the medians into the
// export table (secondary levels as rows, primary levels as columns).
func lineBundle(subsetID, subsetName string, subsetFreqs []FrequencyRow, levels []string) *charts.Bundle {
	cells := make(map[string]map[string][]float64)
	for _, row := range subsetFreqs {
		if row.SecondaryLevel == "" {
			continue
		}
		byLevel, exists := cells[row.SecondaryLevel]
		if !exists {
			byLevel = make(map[string][]float64)
			cells[row.SecondaryLevel] = byLevel
		}
		byLevel[row.FeatureLevel] = append(byLevel[row.FeatureLevel], row.Frequency)
	}

	secondaries := make([]string, 0, len(cells))
	for s := range cells {
		secondaries = append(secondaries, s)
	}
	sort.Strings(secondaries)

	series := make([]charts.LineSeries, 0, len(secondaries))
	pivot := [][]string{append([]string{"secondary_level"}, levels...)}
	for _, secondary := range secondaries {
		values := make([]float64, 0, len(levels))
		pivotRow := []string{secondary}
		complete := true
		for _, level := range levels {
			obs := cells[secondary][level]
			if len(obs) == 0 {
				complete = false
				pivotRow = append(pivotRow, "")
				continue
			}
			median, err := stats.Median(obs)
			if err != nil {
				complete = false
				pivotRow = append(pivotRow, "")
				continue
			}
			values = append(values, median)
			pivotRow = append(pivotRow, fmt.Sprintf("%g", median))
		}
		pivot = append(pivot, pivotRow)
		if complete {
			series = append(series, charts.LineSeries{Name: secondary, Values: values})
		}
	}

	bundle := charts.Lines("line_"+subsetID, subsetName, levels, series, nil)
	bundle.Table = pivot

	return bundle
}
