package analysis

import (
	"os"
	"path/filepath"
	"testing"
)

func writeArtifacts(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	counts := "level,sample_id,subset_id,count\n" +
		"cluster,patient1,c1,60\n" +
		"cluster,patient1,c2,40\n" +
		"cluster,patient2,c1,25\n" +
		"cluster,patient2,c2,75\n" +
		"metacluster,patient1,m1,100\n"
	if err := os.WriteFile(filepath.Join(root, "counts.csv"), []byte(counts), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := os.MkdirAll(filepath.Join(root, "results"), 0o755); err != nil {
		t.Fatal(err)
	}
	results := "subset_id,logFC,p_val,p_adj\n" +
		"c1,1.5,0.001,0.004\n" +
		"c2,-0.2,,\n"
	if err := os.WriteFile(filepath.Join(root, "results", "cluster_condition.csv"), []byte(results), 0o644); err != nil {
		t.Fatal(err)
	}

	noEffect := "subset_id,p_adj\nc1,0.5\n"
	if err := os.WriteFile(filepath.Join(root, "results", "cluster_broken.csv"), []byte(noEffect), 0o644); err != nil {
		t.Fatal(err)
	}

	return root
}

func TestLoadCounts(t *testing.T) {
	root := writeArtifacts(t)

	rows, err := LoadCounts(root, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 5 {
		t.Fatal("expected 5 rows, got", len(rows))
	}
	if rows[3].SampleID != "patient2" || rows[3].Count != 75 {
		t.Errorf("Mismatch: %+v", rows[3])
	}

	levels := Levels(rows)
	if len(levels) != 2 || levels[0] != "cluster" || levels[1] != "metacluster" {
		t.Error("Mismatch:", levels)
	}
}

func TestLoadCountsMissingFails(t *testing.T) {
	if _, err := LoadCounts(filepath.Join(t.TempDir(), "nope"), nil); err == nil {
		t.Error("expected an error for a missing counts table")
	}
}

func TestLoadResults(t *testing.T) {
	root := writeArtifacts(t)

	rows, err := LoadResults(root, "cluster", "condition", nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatal("expected 2 rows, got", len(rows))
	}
	if !rows[0].LogFC.Valid || rows[0].LogFC.Float64 != 1.5 {
		t.Errorf("Mismatch: %+v", rows[0])
	}
	// Empty statistic cells stay null instead of becoming zero.
	if rows[1].FDR.Valid {
		t.Errorf("Mismatch: %+v", rows[1])
	}
}

func TestLoadResultsAbsentIsSkip(t *testing.T) {
	root := writeArtifacts(t)

	rows, err := LoadResults(root, "cluster", "never_fit", nil)
	if err != nil {
		t.Fatal(err)
	}
	if rows != nil {
		t.Error("expected a nil table for an absent result file")
	}
}

func TestLoadResultsMissingEffectSizeFails(t *testing.T) {
	root := writeArtifacts(t)

	if _, err := LoadResults(root, "cluster", "broken", nil); err == nil {
		t.Error("expected an error for a result table without logFC")
	}
}
