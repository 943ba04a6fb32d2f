package analysis

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
	"gopkg.in/guregu/null.v3"

	cytodiff "github.com/broadcyto/cytodiff"
)

// ResultRow is one cell subset's differential-abundance test result as
// emitted by the external model fit. The statistic columns are nullable:
// model fits drop subsets with too few cells, and an empty cell in the table
// must survive the round trip rather than masquerade as zero.
type ResultRow struct {
	SubsetID string     `csv:"subset_id"`
	LogFC    null.Float `csv:"logFC"`
	PValue   null.Float `csv:"p_val"`
	FDR      null.Float `csv:"p_adj"`
}

// LoadResults reads the result table for one (level, feature) pair from
// <root>/results/<level>_<feature>.csv. An absent table means the model was
// never fit for that feature and returns (nil, nil) so the caller can skip
// it. A present table without a logFC column is malformed and fails.
func LoadResults(root, level, feature string, client *storage.Client) ([]ResultRow, error) {
	path := fmt.Sprintf("%s/results/%s_%s.csv", root, level, feature)

	r, _, err := cytodiff.MaybeOpenFromGoogleStorage(cytodiff.ExpandHome(path), client)
	if errors.Is(err, os.ErrNotExist) || errors.Is(err, storage.ErrObjectNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, pfx.Err(err)
	}
	defer r.Close()

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, pfx.Err(err)
	}

	delim := cytodiff.DetermineDelimiter(bytes.NewReader(raw))

	if err := requireEffectSizeColumn(raw, delim, path); err != nil {
		return nil, err
	}

	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		cr := csv.NewReader(in)
		cr.Comma = delim
		cr.LazyQuotes = true
		return cr
	})

	var out []ResultRow
	if err := gocsv.UnmarshalBytes(raw, &out); err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: %s", path, err))
	}

	return out, nil
}

func requireEffectSizeColumn(raw []byte, delim rune, path string) error {
	cr := csv.NewReader(bytes.NewReader(raw))
	cr.Comma = delim
	header, err := cr.Read()
	if err != nil {
		return pfx.Err(fmt.Errorf("%s: %s", path, err))
	}

	for _, col := range header {
		if strings.EqualFold(strings.TrimSpace(col), "logFC") {
			return nil
		}
	}

	return pfx.Err(fmt.Errorf("%s lacks the expected effect size column logFC", path))
}
