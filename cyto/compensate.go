package cyto

import (
	"fmt"

	"github.com/carbocation/pfx"
	"gonum.org/v1/gonum/mat"

	"github.com/broadcyto/cytodiff/fcs"
)

// Compensate removes inter-channel signal bleed in place. The observed matrix
// over the spilled channels B satisfies B = T*S for true signal T and
// spillover S, so T is recovered by solving the linear system rather than
// explicitly inverting S. Channels absent from the spillover matrix are left
// untouched; a spillover channel with no matching parameter name is an error.
func Compensate(x [][]float64, paramNames []string, sp *fcs.Spillover) error {
	if sp == nil || len(sp.Channels) == 0 {
		return nil
	}

	byName := make(map[string]int, len(paramNames))
	for i, name := range paramNames {
		byName[name] = i
	}

	cols := make([]int, len(sp.Channels))
	for i, ch := range sp.Channels {
		idx, exists := byName[ch]
		if !exists {
			return pfx.Err(fmt.Errorf("spillover channel %q has no matching parameter", ch))
		}
		cols[i] = idx
	}

	n := len(sp.Channels)
	flat := make([]float64, 0, n*n)
	for _, row := range sp.Matrix {
		flat = append(flat, row...)
	}
	s := mat.NewDense(n, n, flat)

	observed := mat.NewDense(len(x), n, nil)
	for ev, row := range x {
		for i, c := range cols {
			observed.Set(ev, i, row[c])
		}
	}

	// T*S = B, so S'T' = B'
	var trueT mat.Dense
	if err := trueT.Solve(s.T(), observed.T()); err != nil {
		return pfx.Err(fmt.Errorf("spillover matrix is singular: %s", err))
	}

	for ev, row := range x {
		for i, c := range cols {
			row[c] = trueT.At(i, ev)
		}
	}

	return nil
}
