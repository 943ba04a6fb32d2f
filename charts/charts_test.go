package charts

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func renderToBytes(t *testing.T, b *Bundle) []byte {
	t.Helper()
	if b.Renderable == nil {
		t.Fatal("bundle has no renderable")
	}
	buffer := &bytes.Buffer{}
	if err := b.Renderable.Render(buffer); err != nil {
		t.Fatal(err)
	}

	return buffer.Bytes()
}

func assertPNG(t *testing.T, raw []byte) {
	t.Helper()
	if len(raw) < 8 || !bytes.HasPrefix(raw, []byte("\x89PNG")) {
		t.Error("output is not a PNG stream")
	}
}

func TestVolcanoRenders(t *testing.T) {
	b := Volcano("volcano", "condition", []VolcanoPoint{
		{SubsetID: "c1", SubsetName: "B cells", LogFC: 1.4, NegLog10FDR: 3.2, Significant: true},
		{SubsetID: "c2", SubsetName: "T cells", LogFC: -0.2, NegLog10FDR: 0.3},
		{SubsetID: "c3", SubsetName: "NK", LogFC: 0.5, NegLog10FDR: 1.1},
	})
	assertPNG(t, renderToBytes(t, b))
}

func TestBarOrdersAscending(t *testing.T) {
	b := Bar("bar", "B cells", []BarValue{
		{SampleID: "s1", Level: "basal", Frequency: 0.4},
		{SampleID: "s2", Level: "stim", Frequency: 0.1},
		{SampleID: "s3", Level: "basal", Frequency: 0.25},
	}, []string{"basal", "stim"})

	rows := b.Rows.([]BarValue)
	if rows[0].SampleID != "s2" || rows[2].SampleID != "s1" {
		t.Errorf("Mismatch: %+v", rows)
	}
	assertPNG(t, renderToBytes(t, b))
}

func TestLinesRenders(t *testing.T) {
	b := Lines("line", "B cells", []string{"basal", "stim"}, []LineSeries{
		{Name: "batch1", Values: []float64{0.2, 0.3}},
		{Name: "batch2", Values: []float64{0.25, 0.28}},
	}, nil)
	assertPNG(t, renderToBytes(t, b))
}

func TestBoxSummaries(t *testing.T) {
	b := Box("box", "B cells", []BoxGroup{
		{Label: "basal", Values: []float64{0.1, 0.2, 0.3, 0.4}},
		{Label: "stim", Values: []float64{0.5, 0.6, 0.7}},
	})

	rows := b.Rows.([]BoxStatRow)
	if len(rows) != 2 {
		t.Fatal("expected 2 summary rows, got", len(rows))
	}
	if rows[0].Min != 0.1 || rows[0].Max != 0.4 {
		t.Errorf("Mismatch: %+v", rows[0])
	}
	if rows[1].Median != 0.6 {
		t.Errorf("Mismatch: %+v", rows[1])
	}
	assertPNG(t, renderToBytes(t, b))
}

func TestHeatmapRenders(t *testing.T) {
	b := Heatmap("heatmap", "median expression",
		[]string{"s1", "s2"}, []string{"CD3", "CD19"},
		[][]float64{{0.5, 2.5}, {1.0, 0.0}})

	cells := b.Rows.([]HeatmapCell)
	if len(cells) != 4 || cells[1].Col != "CD19" || cells[1].Value != 2.5 {
		t.Errorf("Mismatch: %+v", cells)
	}
	assertPNG(t, renderToBytes(t, b))
}

func TestExportWritesPNGAndCSV(t *testing.T) {
	dir := t.TempDir()
	b := Bar("bar", "B cells", []BarValue{
		{SampleID: "s1", Level: "basal", Frequency: 0.4},
		{SampleID: "s2", Level: "stim", Frequency: 0.6},
	}, []string{"basal", "stim"})

	if err := b.Export(dir); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"bar.png", "bar_thumb.png", "bar.csv"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Error("missing export:", name, err)
		}
	}
}

func TestLevelColorsStable(t *testing.T) {
	a := LevelColors([]string{"x", "y"})
	b := LevelColors([]string{"x", "y"})
	if a["x"] != b["x"] || a["y"] != b["y"] {
		t.Error("palette assignment is not stable")
	}
	if a["x"] == a["y"] {
		t.Error("distinct levels share a color")
	}
}
