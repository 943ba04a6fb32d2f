package report

import (
	"math"

	fet "github.com/glycerine/golang-fisher-exact"
)

// fisherBySubset computes a quick exploratory two-sided Fisher exact p-value
// per subset, comparing the reference (first) feature level against all
// others on pooled counts:
//
//	subset, reference     other subsets, reference
//	subset, non-reference other subsets, non-reference
//
// This is a sanity check alongside the model-based FDR, not a substitute
// for it.
func fisherBySubset(rows []FrequencyRow, reference string) map[string]float64 {
	type cell struct{ inRef, inOther float64 }
	bySubset := make(map[string]*cell)
	var totalRef, totalOther float64

	for _, row := range rows {
		c, exists := bySubset[row.SubsetID]
		if !exists {
			c = &cell{}
			bySubset[row.SubsetID] = c
		}
		if row.FeatureLevel == reference {
			c.inRef += row.Count
			totalRef += row.Count
		} else {
			c.inOther += row.Count
			totalOther += row.Count
		}
	}

	out := make(map[string]float64, len(bySubset))
	for subset, c := range bySubset {
		n11 := int(math.Round(c.inRef))
		n12 := int(math.Round(totalRef - c.inRef))
		n21 := int(math.Round(c.inOther))
		n22 := int(math.Round(totalOther - c.inOther))

		_, _, _, twop := fet.FisherExactTest(n11, n12, n21, n22)
		out[subset] = twop
	}

	return out
}
