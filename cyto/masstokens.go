package cyto

// massTokens are the metal-isotope labels that Mass cytometry ("CyTOF")
// reagent kits embed in channel descriptions, written as mass-then-symbol
// (e.g. "CD3_89Y_Dead"). The table is process-wide and immutable.
var massTokens = []string{
	"89Y",
	"102Pd", "104Pd", "105Pd", "106Pd", "108Pd", "110Pd",
	"103Rh",
	"106Cd", "108Cd", "110Cd", "111Cd", "112Cd", "113Cd", "114Cd", "116Cd",
	"113In", "115In",
	"117Sn", "118Sn", "120Sn",
	"121Sb", "123Sb",
	"127I",
	"131Xe",
	"133Cs",
	"138Ba",
	"139La",
	"140Ce", "142Ce",
	"141Pr",
	"142Nd", "143Nd", "144Nd", "145Nd", "146Nd", "148Nd", "150Nd",
	"147Sm", "149Sm", "152Sm", "154Sm",
	"151Eu", "153Eu",
	"155Gd", "156Gd", "157Gd", "158Gd", "160Gd",
	"159Tb",
	"161Dy", "162Dy", "163Dy", "164Dy",
	"165Ho",
	"166Er", "167Er", "168Er", "170Er",
	"169Tm",
	"171Yb", "172Yb", "173Yb", "174Yb", "176Yb",
	"175Lu", "176Lu",
	"181Ta",
	"186W",
	"189Os",
	"191Ir", "193Ir",
	"194Pt", "195Pt", "196Pt", "198Pt",
	"197Au",
	"208Pb",
	"209Bi",
}

var massTokenSet = func() map[string]struct{} {
	out := make(map[string]struct{}, len(massTokens))
	for _, t := range massTokens {
		out[t] = struct{}{}
	}

	return out
}()
