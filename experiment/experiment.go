// Package experiment models the experimental design around a set of
// cytometry samples: which FCS file belongs to which sample, the design
// features attached to each sample, and the named cell-subset features that
// the reporting layer summarizes.
package experiment

// SampleInfo ties a sample identifier to its FCS file.
type SampleInfo struct {
	SampleID string `csv:"sample_id"`
	Path     string `csv:"path"`
}

// DesignRow is one (sample, feature, level) assignment in long format. Typed
// fields keep the downstream joins explicit; there is no string-keyed column
// dispatch anywhere in the pipeline.
type DesignRow struct {
	SampleID string `csv:"sample_id"`
	Feature  string `csv:"feature"`
	Level    string `csv:"level"`
}

// SubsetFeature names one cell-subset definition from the upstream
// clustering/gating step.
type SubsetFeature struct {
	FeatureID   string `csv:"feature_id"`
	FeatureName string `csv:"feature_name"`
}

// Experiment aggregates samples, design rows, subset definitions, and the
// path to the precomputed analysis artifacts. It is a read-only snapshot
// loaded once per report invocation.
type Experiment struct {
	Samples        []SampleInfo
	Design         []DesignRow
	SubsetFeatures []SubsetFeature
	AnalysisPath   string
}

// Features returns the distinct design feature names in first-appearance
// order.
func (e *Experiment) Features() []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, row := range e.Design {
		if _, exists := seen[row.Feature]; exists {
			continue
		}
		seen[row.Feature] = struct{}{}
		out = append(out, row.Feature)
	}

	return out
}

// Levels returns the sample-to-level assignment for one feature.
func (e *Experiment) Levels(feature string) map[string]string {
	out := make(map[string]string)
	for _, row := range e.Design {
		if row.Feature == feature {
			out[row.SampleID] = row.Level
		}
	}

	return out
}

// SubsetName resolves a subset feature ID to its display name, falling back
// to the ID itself for subsets the definition table does not cover.
func (e *Experiment) SubsetName(featureID string) string {
	for _, sf := range e.SubsetFeatures {
		if sf.FeatureID == featureID {
			return sf.FeatureName
		}
	}

	return featureID
}
