package experiment

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/extrame/xls"
	"github.com/gocarina/gocsv"

	cytodiff "github.com/broadcyto/cytodiff"
)

// Load assembles an Experiment from its on-disk pieces. The design table may
// be CSV, TSV (sniffed), or a legacy Excel .xls sheet.
func Load(samplesPath, designPath, subsetsPath, analysisPath string) (*Experiment, error) {
	out := &Experiment{AnalysisPath: analysisPath}

	if err := unmarshalDelimited(samplesPath, &out.Samples); err != nil {
		return nil, err
	}

	var err error
	if out.Design, err = LoadDesign(designPath); err != nil {
		return nil, err
	}

	if subsetsPath != "" {
		if err := unmarshalDelimited(subsetsPath, &out.SubsetFeatures); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// LoadDesign reads the long-format sample feature table.
func LoadDesign(path string) ([]DesignRow, error) {
	if strings.HasSuffix(strings.ToLower(path), ".xls") {
		return loadDesignXLS(path)
	}

	var out []DesignRow
	if err := unmarshalDelimited(path, &out); err != nil {
		return nil, err
	}

	return out, nil
}

// unmarshalDelimited sniffs the delimiter and parses into the given slice of
// csv-tagged structs.
func unmarshalDelimited(path string, out interface{}) error {
	fileBytes, err := os.ReadFile(cytodiff.ExpandHome(path))
	if err != nil {
		return pfx.Err(err)
	}

	delim := cytodiff.DetermineDelimiter(bytes.NewReader(fileBytes))

	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.Comma = delim
		r.LazyQuotes = true
		return r
	})

	if err := gocsv.UnmarshalBytes(fileBytes, out); err != nil {
		return pfx.Err(fmt.Errorf("%s: %s", path, err))
	}

	return nil
}

// loadDesignXLS reads a design table out of the first sheet of a legacy
// Excel workbook. The header row must name sample_id, feature, and level
// columns (in any order).
func loadDesignXLS(path string) ([]DesignRow, error) {
	spreadsheet, err := xls.Open(cytodiff.ExpandHome(path), "utf-8")
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: %s", path, err))
	}

	sheet := spreadsheet.GetSheet(0)
	if sheet == nil {
		return nil, pfx.Err(fmt.Errorf("%s has no sheets", path))
	}

	colFor := map[string]int{}
	headerRow := sheet.Row(0)
	if headerRow == nil {
		return nil, pfx.Err(fmt.Errorf("%s: empty design sheet", path))
	}
	for colID := 0; colID <= headerRow.LastCol(); colID++ {
		colFor[strings.ToLower(strings.TrimSpace(headerRow.Col(colID)))] = colID
	}
	for _, required := range []string{"sample_id", "feature", "level"} {
		if _, exists := colFor[required]; !exists {
			return nil, pfx.Err(fmt.Errorf("%s: design sheet lacks a %q column", path, required))
		}
	}

	out := make([]DesignRow, 0, sheet.MaxRow)
	for rowID := 1; rowID <= int(sheet.MaxRow); rowID++ {
		row := sheet.Row(rowID)
		if row == nil {
			continue
		}

		rec := DesignRow{
			SampleID: strings.TrimSpace(row.Col(colFor["sample_id"])),
			Feature:  strings.TrimSpace(row.Col(colFor["feature"])),
			Level:    strings.TrimSpace(row.Col(colFor["level"])),
		}
		if rec.SampleID == "" {
			continue
		}
		out = append(out, rec)
	}

	return out, nil
}
