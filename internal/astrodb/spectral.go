package astrodb

import (
	"strconv"
	"strings"

	"github.com/draco-astrodb/astrodb/internal/stellar"
)

// classPrefixes lists the recognized spectral-class letter prefixes in
// longest-first order so multi-letter classes (the Wolf-Rayet WC/WN/WO
// trio) are matched before their single-letter neighbors.
var classPrefixes = []struct {
	prefix string
	class  stellar.SpectralClass
}{
	{"WC", stellar.SpectralWC},
	{"WN", stellar.SpectralWN},
	{"WO", stellar.SpectralWO},
	{"O", stellar.SpectralO},
	{"B", stellar.SpectralB},
	{"A", stellar.SpectralA},
	{"F", stellar.SpectralF},
	{"G", stellar.SpectralG},
	{"K", stellar.SpectralK},
	{"M", stellar.SpectralM},
	{"R", stellar.SpectralR},
	{"S", stellar.SpectralS},
	{"N", stellar.SpectralN},
	{"L", stellar.SpectralL},
	{"T", stellar.SpectralT},
	{"Y", stellar.SpectralY},
	{"C", stellar.SpectralC},
}

// luminosityTokens lists the recognized luminosity-class roman numerals
// in longest-first order, since "Ia0" must be tried before "Ia" and "I".
var luminosityTokens = []struct {
	token string
	lum   stellar.LuminosityClass
}{
	{"Ia0", stellar.LumIa0},
	{"Iab", stellar.LumIb},
	{"Ia", stellar.LumIa},
	{"Ib", stellar.LumIb},
	{"II", stellar.LumII},
	{"III", stellar.LumIII},
	{"IV", stellar.LumIV},
	{"VI", stellar.LumVI},
	{"V", stellar.LumV},
	{"I", stellar.LumIa},
}

// ParseSpectralType decodes an stc SpectralType string such as "G2V",
// "M5III", "WC8", or "DA3" into its class, subclass, and luminosity
// components. A leading "D" marks a white dwarf, reported via
// isWhiteDwarf; white dwarfs carry no luminosity class of their own.
// ok is false if no recognized class prefix is found at all.
func ParseSpectralType(spectralType string) (class stellar.SpectralClass, subclass int, lum stellar.LuminosityClass, isWhiteDwarf bool, ok bool) {
	s := strings.TrimSpace(spectralType)
	if s == "" {
		return stellar.SpectralUnknown, -1, stellar.LumUnknown, false, false
	}

	upper := strings.ToUpper(s)
	if strings.HasPrefix(upper, "D") && len(upper) > 1 {
		isWhiteDwarf = true
		upper = upper[1:]
	}

	class = stellar.SpectralUnknown
	rest := upper
	for _, cp := range classPrefixes {
		if strings.HasPrefix(upper, cp.prefix) {
			class = cp.class
			rest = upper[len(cp.prefix):]
			break
		}
	}
	if class == stellar.SpectralUnknown {
		return stellar.SpectralUnknown, -1, stellar.LumUnknown, isWhiteDwarf, false
	}

	subclass = -1
	digitEnd := 0
	for digitEnd < len(rest) && rest[digitEnd] >= '0' && rest[digitEnd] <= '9' {
		digitEnd++
	}
	if digitEnd > 0 {
		if n, err := strconv.Atoi(rest[:digitEnd]); err == nil && n >= 0 && n <= 9 {
			subclass = n
		}
		rest = rest[digitEnd:]
	}

	lum = stellar.LumUnknown
	if !isWhiteDwarf {
		rest = strings.TrimSpace(rest)
		for _, lt := range luminosityTokens {
			if strings.HasPrefix(rest, lt.token) {
				lum = lt.lum
				break
			}
		}
	}

	return class, subclass, lum, isWhiteDwarf, true
}
