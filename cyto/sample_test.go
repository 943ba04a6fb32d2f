package cyto

import (
	"math"
	"testing"

	"github.com/broadcyto/cytodiff/fcs"
)

func testFile() *fcs.File {
	return &fcs.File{
		Version:  "FCS3.0",
		Keywords: map[string]string{"$DATE": "02-JAN-2021"},
		Params: []fcs.Param{
			{Name: "Ir191Di", Desc: "DNA1", Bits: 32},
			{Name: "Y89Di", Desc: "CD45_89Y", Bits: 32},
			{Name: "In115Di", Desc: "CD3_115In", Bits: 32},
		},
		Data: [][]float64{
			{10, 5, 0},
			{12, 0, 25},
		},
	}
}

func TestNewSample(t *testing.T) {
	s, err := NewSample("patient1_basal", testFile())
	if err != nil {
		t.Fatal(err)
	}

	if s.Source != MassCytometry {
		t.Error("Mismatch:", s.Source)
	}
	if s.Channels[1].Display != "CD45" || s.Channels[2].Display != "CD3" {
		t.Errorf("Mismatch: %+v", s.Channels)
	}
	if s.AcquiredAt.Year() != 2021 {
		t.Error("Mismatch:", s.AcquiredAt)
	}
	if idx := s.ChannelIndex("CD3"); idx != 2 {
		t.Error("Mismatch:", idx)
	}
}

func TestPreprocessMass(t *testing.T) {
	s, err := NewSample("s", testFile())
	if err != nil {
		t.Fatal(err)
	}

	s.Preprocess(PreprocessOptions{})

	want := math.Asinh(10.0 / 5)
	if math.Abs(s.X[0][0]-want) > 1e-12 {
		t.Error("Mismatch:", s.X[0][0], want)
	}
}

func TestPreprocessCustomCofactor(t *testing.T) {
	s, err := NewSample("s", testFile())
	if err != nil {
		t.Fatal(err)
	}

	s.Preprocess(PreprocessOptions{MassCofactor: 10})

	want := math.Asinh(1)
	if math.Abs(s.X[0][0]-want) > 1e-12 {
		t.Error("Mismatch:", s.X[0][0], want)
	}
}

func TestColumn(t *testing.T) {
	s, err := NewSample("s", testFile())
	if err != nil {
		t.Fatal(err)
	}

	col := s.Column(2)
	if len(col) != 2 || col[1] != 25 {
		t.Error("Mismatch:", col)
	}
}
