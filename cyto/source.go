package cyto

import (
	"fmt"
	"math"
	"strings"

	"github.com/carbocation/pfx"
)

// Source identifies the instrument family that produced a sample. It is a
// closed set: every sample is exactly one of these, and preprocessing
// behavior hangs off the variant.
type Source int

const (
	FlowCytometry Source = iota + 1
	MassCytometry
)

func (s Source) String() string {
	switch s {
	case FlowCytometry:
		return "flow_cytometry"
	case MassCytometry:
		return "mass_cytometry"
	}

	return fmt.Sprintf("unknown_source_%d", int(s))
}

// DefaultCofactor is the conventional arcsinh cofactor for the instrument
// family: 5 for mass cytometry, 150 for fluorescence-based flow.
func (s Source) DefaultCofactor() float64 {
	if s == MassCytometry {
		return 5
	}

	return 150
}

// Transform applies the per-source arcsinh variance stabilization to a single
// value. Flow scatter channels and the time channel on either platform pass
// through untransformed.
func (s Source) Transform(channelName string, value, cofactor float64) float64 {
	upper := strings.ToUpper(channelName)
	if upper == "TIME" || strings.HasPrefix(upper, "EVENT_LENGTH") {
		return value
	}
	if s == FlowCytometry && isScatterName(channelName) {
		return value
	}

	return math.Asinh(value / cofactor)
}

// ClassifySource inspects channel names and decides the instrument family:
// forward/side scatter means flow, the iridium DNA intercalator channels
// (Ir191/Ir193) mean mass. Exactly one family must match.
func ClassifySource(names []string) (Source, error) {
	flow, mass := false, false
	for _, name := range names {
		if isScatterName(name) {
			flow = true
		}
		if isIridiumName(name) {
			mass = true
		}
	}

	switch {
	case flow && mass:
		return 0, pfx.Err(fmt.Errorf("channels carry both scatter and iridium names; cannot identify the instrument"))
	case flow:
		return FlowCytometry, nil
	case mass:
		return MassCytometry, nil
	}

	return 0, pfx.Err(fmt.Errorf("channels carry neither scatter nor iridium names; cannot identify the instrument"))
}

func isScatterName(name string) bool {
	upper := strings.ToUpper(name)

	return strings.HasPrefix(upper, "FSC") || strings.HasPrefix(upper, "SSC")
}

func isIridiumName(name string) bool {
	return strings.Contains(name, "Ir191") || strings.Contains(name, "Ir193")
}
