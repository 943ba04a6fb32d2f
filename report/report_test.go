package report

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func testReporter(t *testing.T) *Reporter {
	t.Helper()

	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "results"), 0o755); err != nil {
		t.Fatal(err)
	}
	results := "subset_id,logFC,p_val,p_adj\n" +
		"c1,1.8,0.0001,0.001\n" +
		"c2,-0.3,0.4,0.6\n"
	if err := os.WriteFile(filepath.Join(root, "results", "cluster_condition.csv"), []byte(results), 0o644); err != nil {
		t.Fatal(err)
	}

	exp := testExperiment()
	exp.AnalysisPath = root

	return &Reporter{
		Experiment: exp,
		Counts:     testCounts(),
		Secondary:  "batch",
		Fisher:     true,
	}
}

func TestFeatureReport(t *testing.T) {
	r := testReporter(t)

	fr, err := r.Feature("cluster", "condition")
	if err != nil {
		t.Fatal(err)
	}
	if fr == nil {
		t.Fatal("expected a report")
	}

	rows := fr.AnalysisResults.Rows.([]ResultTableRow)
	if len(rows) != 2 {
		t.Fatal("expected 2 result rows, got", len(rows))
	}
	if rows[0].SubsetName != "B cells" {
		t.Error("Mismatch:", rows[0].SubsetName)
	}
	if !rows[0].NegLog10FDR.Valid || math.Abs(rows[0].NegLog10FDR.Float64-3) > 1e-9 {
		t.Errorf("Mismatch: %+v", rows[0].NegLog10FDR)
	}
	if !rows[0].FisherP.Valid || rows[0].FisherP.Float64 <= 0 || rows[0].FisherP.Float64 > 1 {
		t.Errorf("Fisher p out of range: %+v", rows[0].FisherP)
	}

	if fr.Volcano == nil || fr.Volcano.Renderable == nil {
		t.Error("expected a volcano figure")
	}
	if len(fr.BoxPlots) != 2 || len(fr.BarPlots) != 2 {
		t.Errorf("expected per-subset box and bar plots: %d %d", len(fr.BoxPlots), len(fr.BarPlots))
	}
	if fr.LinePlots == nil || len(fr.LinePlots) != 2 {
		t.Error("expected line plots for a crossed secondary feature")
	}

	line := fr.LinePlots["c1"]
	if len(line.Table) != 3 {
		t.Error("pivot table should have a header and one row per batch:", line.Table)
	}
	if line.Table[0][0] != "secondary_level" || line.Table[0][1] != "basal" {
		t.Error("Mismatch:", line.Table[0])
	}
}

func TestFeatureSkipsWhenNoResults(t *testing.T) {
	r := testReporter(t)

	fr, err := r.Feature("cluster", "batch")
	if err != nil {
		t.Fatal(err)
	}
	if fr != nil {
		t.Error("expected a nil report for a feature without results")
	}
}

func TestFeatureExport(t *testing.T) {
	r := testReporter(t)

	fr, err := r.Feature("cluster", "condition")
	if err != nil {
		t.Fatal(err)
	}

	out := t.TempDir()
	if err := fr.Export(out); err != nil {
		t.Fatal(err)
	}

	wantFiles := []string{
		filepath.Join("cluster", "condition", "analysis_results", "analysis_results.csv"),
		filepath.Join("cluster", "condition", "volcano", "volcano.png"),
		filepath.Join("cluster", "condition", "box_plots", "box_c1.png"),
		filepath.Join("cluster", "condition", "bar_plots", "bar_c2.csv"),
		filepath.Join("cluster", "condition", "line_plots", "line_c1.csv"),
	}
	for _, f := range wantFiles {
		if _, err := os.Stat(filepath.Join(out, f)); err != nil {
			t.Error("missing export:", f, err)
		}
	}
}

func TestBundlesCategories(t *testing.T) {
	r := testReporter(t)

	fr, err := r.Feature("cluster", "condition")
	if err != nil {
		t.Fatal(err)
	}

	categories := fr.Bundles()
	for _, want := range []string{"analysis_results", "volcano", "box_plots", "bar_plots", "line_plots"} {
		if _, exists := categories[want]; !exists {
			t.Error("missing category:", want)
		}
	}

	// Without a secondary feature the line_plots category is absent.
	r.Secondary = ""
	fr, err = r.Feature("cluster", "condition")
	if err != nil {
		t.Fatal(err)
	}
	if _, exists := fr.Bundles()["line_plots"]; exists {
		t.Error("line_plots category should be absent without a secondary feature")
	}
}
