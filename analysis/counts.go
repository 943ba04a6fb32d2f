// Package analysis loads the precomputed artifacts that upstream clustering
// and model fitting leave behind: the aggregate cell-count table, and one
// differential-abundance result table per (analysis level, sample feature)
// pair.
package analysis

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"sort"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"

	cytodiff "github.com/broadcyto/cytodiff"
)

// CountRow is one cell count for a (level, sample, subset) triple. Level is
// the analysis granularity the upstream clustering was cut at (e.g.
// "cluster", "metacluster").
type CountRow struct {
	Level    string  `csv:"level"`
	SampleID string  `csv:"sample_id"`
	SubsetID string  `csv:"subset_id"`
	Count    float64 `csv:"count"`
}

// LoadCounts reads the aggregate statistics table from <root>/counts.csv. A
// missing table is an error: without counts there is nothing to report on.
func LoadCounts(root string, client *storage.Client) ([]CountRow, error) {
	path := root + "/counts.csv"

	r, _, err := cytodiff.MaybeOpenFromGoogleStorage(cytodiff.ExpandHome(path), client)
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("aggregate statistics not found at %s: %s", path, err))
	}
	defer r.Close()

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, pfx.Err(err)
	}

	delim := cytodiff.DetermineDelimiter(bytes.NewReader(raw))
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		cr := csv.NewReader(in)
		cr.Comma = delim
		cr.LazyQuotes = true
		return cr
	})

	var out []CountRow
	if err := gocsv.UnmarshalBytes(raw, &out); err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: %s", path, err))
	}

	return out, nil
}

// Levels returns the distinct analysis levels present in the counts, sorted.
func Levels(rows []CountRow) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, row := range rows {
		if _, exists := seen[row.Level]; exists {
			continue
		}
		seen[row.Level] = struct{}{}
		out = append(out, row.Level)
	}
	sort.Strings(out)

	return out
}
