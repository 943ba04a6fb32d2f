package cyto

import (
	"fmt"
	"strings"

	"github.com/carbocation/pfx"
)

// Channel is one resolved instrument parameter. Name is the raw $PnN value,
// Desc the cleaned $PnS description, and Display the deduplicated name used
// as the expression-matrix column header.
type Channel struct {
	Name    string
	Desc    string
	Display string
}

// ResolveChannels turns raw parameter names and descriptions into a
// deduplicated channel table:
//
//   - descriptions are normalized (runs of non-alphanumerics collapse to "_"),
//   - embedded metal-isotope mass labels are stripped when at least two
//     channels carry one (a single match is left alone: one hit on the mass
//     table is as likely to be a marker name as a metal tag),
//   - trailing "_EQ" calibration-bead suffixes are dropped,
//   - the display name prefers the description, falling back to the raw name,
//     and any collision is resolved by prefixing with the raw name.
func ResolveChannels(names, descs []string) ([]Channel, error) {
	if len(names) != len(descs) {
		return nil, pfx.Err(fmt.Errorf("%d names but %d descriptions", len(names), len(descs)))
	}

	cleaned := make([]string, len(descs))
	for i, d := range descs {
		cleaned[i] = normalizeDesc(d)
	}

	var err error
	if cleaned, err = stripMassTokens(cleaned); err != nil {
		return nil, err
	}

	out := make([]Channel, len(names))
	for i := range names {
		desc := strings.TrimSuffix(cleaned[i], "_EQ")

		display := desc
		if display == "" {
			display = names[i]
		}

		out[i] = Channel{Name: names[i], Desc: desc, Display: display}
	}

	// Any display name claimed by more than one channel gets re-derived with
	// the raw parameter name as a prefix, for every claimant.
	seen := make(map[string]int)
	for _, c := range out {
		seen[c.Display]++
	}
	for i, c := range out {
		if seen[c.Display] < 2 {
			continue
		}
		if c.Desc != "" {
			out[i].Display = c.Name + "_" + c.Desc
		} else {
			out[i].Display = c.Name
		}
	}

	unique := make(map[string]struct{})
	for _, c := range out {
		if _, exists := unique[c.Display]; exists {
			return nil, pfx.Err(fmt.Errorf("channel name %q is not unique even after raw-name prefixing", c.Display))
		}
		unique[c.Display] = struct{}{}
	}

	return out, nil
}

// normalizeDesc collapses every run of non-alphanumeric characters to a
// single underscore and trims the ends.
func normalizeDesc(desc string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range desc {
		alnum := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if alnum {
			b.WriteRune(r)
			lastUnderscore = false
		} else if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}

	return strings.Trim(b.String(), "_")
}

// stripMassTokens removes metal-isotope components from the descriptions when
// two or more descriptions carry one. Removal is a single pass; if two or
// more descriptions still match afterward the panel is ambiguous and the
// import fails rather than guessing.
func stripMassTokens(descs []string) ([]string, error) {
	if countMassMatches(descs) < 2 {
		return descs, nil
	}

	out := make([]string, len(descs))
	for i, d := range descs {
		parts := strings.Split(d, "_")
		kept := parts[:0]
		for _, p := range parts {
			if _, isMass := massTokenSet[p]; isMass {
				continue
			}
			kept = append(kept, p)
		}
		out[i] = strings.Join(kept, "_")
	}

	if n := countMassMatches(out); n >= 2 {
		return nil, pfx.Err(fmt.Errorf("mass-label removal did not converge: %d channel descriptions still carry a mass label", n))
	}

	return out, nil
}

func countMassMatches(descs []string) int {
	n := 0
	for _, d := range descs {
		for _, p := range strings.Split(d, "_") {
			if _, isMass := massTokenSet[p]; isMass {
				n++
				break
			}
		}
	}

	return n
}
