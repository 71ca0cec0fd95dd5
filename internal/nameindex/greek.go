package nameindex

import "strings"

// greekLetters and greekAbbrevs are parallel tables mapping a spelled-out
// Greek letter name to its canonical three-letter abbreviation, in the
// conventional Bayer-designation order.
var greekLetters = []string{
	"Alpha", "Beta", "Gamma", "Delta", "Epsilon", "Zeta", "Eta", "Theta",
	"Iota", "Kappa", "Lambda", "Mu", "Nu", "Xi", "Omicron", "Pi",
	"Rho", "Sigma", "Tau", "Upsilon", "Phi", "Chi", "Psi", "Omega",
}

var greekAbbrevs = []string{
	"ALF", "BET", "GAM", "DEL", "EPS", "ZET", "ETA", "TET",
	"IOT", "KAP", "LAM", "MU", "NU", "XI", "OMI", "PI",
	"RHO", "SIG", "TAU", "UPS", "PHI", "CHI", "PSI", "OME",
}

// NormalizeGreek rewrites the leading word of name from a spelled-out
// Greek letter to its canonical abbreviation (e.g. "Alpha Centauri" ->
// "ALF Centauri"), leaving the remainder of the string untouched. If
// the leading word is already an abbreviation, or is not a recognized
// Greek letter at all, name is returned unchanged.
func NormalizeGreek(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return name
	}

	lead := strings.ToUpper(fields[0])
	for i, letter := range greekLetters {
		if strings.ToUpper(letter) == lead {
			rest := strings.Join(fields[1:], " ")
			if rest == "" {
				return greekAbbrevs[i]
			}
			return greekAbbrevs[i] + " " + rest
		}
	}

	return name
}

// CanonicalAbbreviation returns the three-letter canonical abbreviation
// for a spelled-out Greek letter (case-insensitive), and false if letter
// is not one of the 24 recognized names.
func CanonicalAbbreviation(letter string) (string, bool) {
	upper := strings.ToUpper(letter)
	for i, name := range greekLetters {
		if strings.ToUpper(name) == upper {
			return greekAbbrevs[i], true
		}
	}
	return "", false
}

// SpelledOut is CanonicalAbbreviation's inverse: given a three-letter
// Greek-letter abbreviation (case-insensitive), it returns the canonical
// spelled-out name, and false if abbrev isn't one of the 24 recognized
// abbreviations.
func SpelledOut(abbrev string) (string, bool) {
	upper := strings.ToUpper(abbrev)
	for i, abbr := range greekAbbrevs {
		if abbr == upper {
			return greekLetters[i], true
		}
	}
	return "", false
}
