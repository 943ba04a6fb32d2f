package report

import (
	"math"
	"testing"

	"github.com/broadcyto/cytodiff/analysis"
	"github.com/broadcyto/cytodiff/experiment"
)

func testExperiment() *experiment.Experiment {
	return &experiment.Experiment{
		Design: []experiment.DesignRow{
			{SampleID: "s1", Feature: "condition", Level: "basal"},
			{SampleID: "s2", Feature: "condition", Level: "basal"},
			{SampleID: "s3", Feature: "condition", Level: "stim"},
			{SampleID: "s4", Feature: "condition", Level: "stim"},
			{SampleID: "s1", Feature: "batch", Level: "b1"},
			{SampleID: "s2", Feature: "batch", Level: "b2"},
			{SampleID: "s3", Feature: "batch", Level: "b1"},
			{SampleID: "s4", Feature: "batch", Level: "b2"},
		},
		SubsetFeatures: []experiment.SubsetFeature{
			{FeatureID: "c1", FeatureName: "B cells"},
			{FeatureID: "c2", FeatureName: "T cells"},
		},
	}
}

func testCounts() []analysis.CountRow {
	return []analysis.CountRow{
		{Level: "cluster", SampleID: "s1", SubsetID: "c1", Count: 60},
		{Level: "cluster", SampleID: "s1", SubsetID: "c2", Count: 40},
		{Level: "cluster", SampleID: "s2", SubsetID: "c1", Count: 30},
		{Level: "cluster", SampleID: "s2", SubsetID: "c2", Count: 70},
		{Level: "cluster", SampleID: "s3", SubsetID: "c1", Count: 10},
		{Level: "cluster", SampleID: "s3", SubsetID: "c2", Count: 90},
		{Level: "cluster", SampleID: "s4", SubsetID: "c1", Count: 20},
		{Level: "cluster", SampleID: "s4", SubsetID: "c2", Count: 80},
		{Level: "metacluster", SampleID: "s1", SubsetID: "m1", Count: 100},
	}
}

func TestFrequenciesSumToOnePerSample(t *testing.T) {
	rows, err := BuildFrequencies(testCounts(), "cluster", testExperiment(), "condition", "batch")
	if err != nil {
		t.Fatal(err)
	}

	sums := make(map[string]float64)
	for _, row := range rows {
		sums[row.SampleID] += row.Frequency
	}
	if len(sums) != 4 {
		t.Fatal("expected 4 samples in the join, got", len(sums))
	}
	for sample, sum := range sums {
		if math.Abs(sum-1) > 1e-12 {
			t.Errorf("sample %s frequencies sum to %v", sample, sum)
		}
	}
}

func TestFrequenciesJoinAnnotations(t *testing.T) {
	rows, err := BuildFrequencies(testCounts(), "cluster", testExperiment(), "condition", "batch")
	if err != nil {
		t.Fatal(err)
	}

	for _, row := range rows {
		if row.SampleID == "s3" && row.SubsetID == "c1" {
			if row.Frequency != 0.1 || row.FeatureLevel != "stim" || row.SecondaryLevel != "b1" {
				t.Errorf("Mismatch: %+v", row)
			}
			if row.SubsetName != "B cells" {
				t.Error("Mismatch:", row.SubsetName)
			}
		}
	}
}

func TestFrequenciesDropUnassignedSamples(t *testing.T) {
	exp := testExperiment()
	exp.Design = exp.Design[:3] // s4 loses its condition assignment

	rows, err := BuildFrequencies(testCounts(), "cluster", exp, "condition", "")
	if err != nil {
		t.Fatal(err)
	}

	for _, row := range rows {
		if row.SampleID == "s4" {
			t.Error("sample without a design assignment survived the join")
		}
	}
}

func TestLinePredicate(t *testing.T) {
	// Secondary varies within the primary feature: 4 distinct pairs vs 2
	// distinct secondary values.
	rows, err := BuildFrequencies(testCounts(), "cluster", testExperiment(), "condition", "batch")
	if err != nil {
		t.Fatal(err)
	}
	if !includeLinePlots(rows) {
		t.Error("expected line plots to be included")
	}

	// A secondary that is confounded with the primary (one pairing per
	// secondary value) must exclude the line plots.
	confounded := testExperiment()
	for i, d := range confounded.Design {
		if d.Feature == "batch" {
			if d.SampleID == "s1" || d.SampleID == "s2" {
				confounded.Design[i].Level = "b1"
			} else {
				confounded.Design[i].Level = "b2"
			}
		}
	}
	rows, err = BuildFrequencies(testCounts(), "cluster", confounded, "condition", "batch")
	if err != nil {
		t.Fatal(err)
	}
	if includeLinePlots(rows) {
		t.Error("expected line plots to be excluded for a confounded secondary")
	}
}

func TestNoDesignRowsFails(t *testing.T) {
	if _, err := BuildFrequencies(testCounts(), "cluster", testExperiment(), "missing_feature", ""); err == nil {
		t.Error("expected an error for an unknown feature")
	}
}
