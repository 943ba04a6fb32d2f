// Package report joins aggregate cell-subset statistics with the
// experimental design and produces the per-feature differential-abundance
// report: a results table, a volcano plot, and per-subset box, bar, and line
// plots, each as a figure-plus-table bundle.
package report

import (
	"fmt"

	"github.com/carbocation/pfx"

	"github.com/broadcyto/cytodiff/analysis"
	"github.com/broadcyto/cytodiff/experiment"
)

// FrequencyRow is one (sample, subset) observation after joining counts with
// the design: the relative frequency of the subset within its sample,
// annotated with the primary and secondary feature levels.
type FrequencyRow struct {
	Level          string  `csv:"level"`
	SampleID       string  `csv:"sample_id"`
	SubsetID       string  `csv:"subset_id"`
	SubsetName     string  `csv:"subset_name"`
	Count          float64 `csv:"count"`
	Total          float64 `csv:"total"`
	Frequency      float64 `csv:"frequency"`
	FeatureLevel   string  `csv:"feature_level"`
	SecondaryLevel string  `csv:"secondary_level"`
}

// BuildFrequencies filters counts to one analysis level, joins them with the
// design assignment for feature (and optionally a secondary grouping
// feature), and computes count/total per sample. Samples without a design
// assignment for the feature drop out of the join. Within every surviving
// sample the frequencies sum to 1.
func BuildFrequencies(counts []analysis.CountRow, level string, exp *experiment.Experiment, feature, secondary string) ([]FrequencyRow, error) {
	featureLevels := exp.Levels(feature)
	if len(featureLevels) == 0 {
		return nil, pfx.Err(fmt.Errorf("no design rows for feature %q", feature))
	}

	var secondaryLevels map[string]string
	if secondary != "" {
		secondaryLevels = exp.Levels(secondary)
	}

	totals := make(map[string]float64)
	for _, row := range counts {
		if row.Level != level {
			continue
		}
		totals[row.SampleID] += row.Count
	}

	out := make([]FrequencyRow, 0)
	for _, row := range counts {
		if row.Level != level {
			continue
		}
		featureLevel, assigned := featureLevels[row.SampleID]
		if !assigned {
			continue
		}
		total := totals[row.SampleID]
		if total == 0 {
			return nil, pfx.Err(fmt.Errorf("sample %s has zero total count at level %s", row.SampleID, level))
		}

		out = append(out, FrequencyRow{
			Level:          level,
			SampleID:       row.SampleID,
			SubsetID:       row.SubsetID,
			SubsetName:     exp.SubsetName(row.SubsetID),
			Count:          row.Count,
			Total:          total,
			Frequency:      row.Count / total,
			FeatureLevel:   featureLevel,
			SecondaryLevel: secondaryLevels[row.SampleID],
		})
	}

	return out, nil
}

// featureLevelOrder returns the distinct primary feature levels in
// first-appearance order over the joined rows.
func featureLevelOrder(rows []FrequencyRow) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, row := range rows {
		if _, exists := seen[row.FeatureLevel]; exists {
			continue
		}
		seen[row.FeatureLevel] = struct{}{}
		out = append(out, row.FeatureLevel)
	}

	return out
}

// includeLinePlots is the inclusion predicate for the grouped line plots: the
// secondary feature must actually vary within the primary one, which is the
// case exactly when there are more distinct (primary, secondary) pairings
// than distinct secondary values.
func includeLinePlots(rows []FrequencyRow) bool {
	pairs := make(map[[2]string]struct{})
	secondaries := make(map[string]struct{})
	for _, row := range rows {
		if row.SecondaryLevel == "" {
			continue
		}
		pairs[[2]string{row.FeatureLevel, row.SecondaryLevel}] = struct{}{}
		secondaries[row.SecondaryLevel] = struct{}{}
	}

	return len(pairs) > len(secondaries)
}
