package cyto

// PreprocessOptions carries the per-platform arcsinh cofactors. Zero values
// fall back to the platform defaults.
type PreprocessOptions struct {
	FlowCofactor float64
	MassCofactor float64
}

func (o PreprocessOptions) cofactor(s Source) float64 {
	switch s {
	case FlowCytometry:
		if o.FlowCofactor > 0 {
			return o.FlowCofactor
		}
	case MassCytometry:
		if o.MassCofactor > 0 {
			return o.MassCofactor
		}
	}

	return s.DefaultCofactor()
}

// Preprocess applies the source-specific variance-stabilizing transform to
// the expression matrix in place.
func (s *Sample) Preprocess(opt PreprocessOptions) {
	cofactor := opt.cofactor(s.Source)

	for _, row := range s.X {
		for j, c := range s.Channels {
			row[j] = s.Source.Transform(c.Name, row[j], cofactor)
		}
	}
}
