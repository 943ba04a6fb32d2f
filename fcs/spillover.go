package fcs

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/carbocation/pfx"
)

// Spillover is the instrument-supplied signal crosstalk matrix. Matrix[i][j]
// is the fraction of channel i's true signal that bleeds into channel j.
type Spillover struct {
	Channels []string
	Matrix   [][]float64
}

// ParseSpillover extracts the spillover matrix from the TEXT keywords,
// checking the FCS 3.1 $SPILLOVER keyword and then the legacy names older
// instruments write. Returns nil without error when no matrix is present.
//
// The keyword value is "n,ch1,...,chn,v11,v12,...,vnn" with values in
// row-major order.
func ParseSpillover(keywords map[string]string) (*Spillover, error) {
	var value string
	for _, key := range []string{"$SPILLOVER", "SPILL", "$COMP"} {
		if v, exists := keywords[key]; exists && v != "" {
			value = v
			break
		}
	}
	if value == "" {
		return nil, nil
	}

	fields := strings.Split(value, ",")
	n, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("spillover channel count %q: %s", fields[0], err))
	}
	if n <= 0 {
		return nil, pfx.Err(fmt.Errorf("nonsensical spillover channel count %d", n))
	}
	if want := 1 + n + n*n; len(fields) != want {
		return nil, pfx.Err(fmt.Errorf("spillover keyword has %d fields; %d channels require %d", len(fields), n, want))
	}

	out := &Spillover{Channels: make([]string, n), Matrix: make([][]float64, n)}
	for i := 0; i < n; i++ {
		out.Channels[i] = strings.TrimSpace(fields[1+i])
	}
	for i := 0; i < n; i++ {
		out.Matrix[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			v, err := strconv.ParseFloat(strings.TrimSpace(fields[1+n+i*n+j]), 64)
			if err != nil {
				return nil, pfx.Err(fmt.Errorf("spillover value [%d][%d]: %s", i, j, err))
			}
			out.Matrix[i][j] = v
		}
	}

	return out, nil
}
