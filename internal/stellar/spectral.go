package stellar

import "math"

// SpectralClass enumerates the main spectral classes recognized by the
// decoder, in the conventional temperature-descending order plus the
// carbon, Wolf-Rayet, and substellar branches.
type SpectralClass int

const (
	SpectralO SpectralClass = iota
	SpectralB
	SpectralA
	SpectralF
	SpectralG
	SpectralK
	SpectralM
	SpectralR
	SpectralS
	SpectralN
	SpectralWC
	SpectralWN
	SpectralWO
	SpectralUnknown
	SpectralL
	SpectralT
	SpectralY
	SpectralC
)

// LuminosityClass enumerates the Yerkes/MK luminosity classes.
type LuminosityClass int

const (
	LumIa0 LuminosityClass = iota
	LumIa
	LumIb
	LumII
	LumIII
	LumIV
	LumV
	LumVI
	LumUnknown
)

// luminosityIndex collapses the nine luminosity classes to the three
// rows tabulated per spectral class: supergiants, giants, dwarfs.
func luminosityIndex(lum LuminosityClass) int {
	switch lum {
	case LumIa0, LumIa, LumIb, LumII:
		return 2
	case LumIII, LumIV:
		return 1
	default:
		return 0
	}
}

// defaultSubclass supplies a subclass when the catalog record omits
// one: early O and Wolf-Rayet stars are rare enough that the late
// subclass is the more representative default, Y dwarfs default to
// their earliest (hottest) subclass, and everything else defaults to
// the middle of its range.
func defaultSubclass(class SpectralClass) int {
	switch class {
	case SpectralO, SpectralWN, SpectralWC, SpectralWO:
		return 9
	case SpectralY:
		return 0
	default:
		return 5
	}
}

// tempTable holds per-luminosity-row, per-subclass (0-9) temperatures
// in kelvin for one spectral class. Rows narrower than three entries
// are broadcast from row 0 (dwarfs), matching the source data's
// practice of reusing the dwarf sequence for types with no tabulated
// giant/supergiant distinction (L, T, Y, WC, WN, WO).
type tempTable [][10]float64

var mainSequenceTemps = map[SpectralClass]tempTable{
	SpectralO: {{52500, 52500, 52500, 44900, 42900, 41400, 39500, 37100, 35100, 33300}},
	SpectralB: {{31400, 26000, 20600, 17000, 16400, 15700, 14500, 14000, 12300, 10700}},
	SpectralA: {{9700, 9300, 8800, 8600, 8250, 8100, 7910, 7760, 7590, 7400}},
	SpectralF: {{7150, 7000, 6870, 6720, 6570, 6470, 6350, 6250, 6150, 6080}},
	SpectralG: {{5930, 5860, 5770, 5720, 5680, 5660, 5600, 5550, 5480, 5380}},
	SpectralK: {{5150, 4950, 4750, 4600, 4350, 4150, 3950, 3800, 3700, 3600}},
	SpectralM: {{3850, 3660, 3560, 3430, 3210, 3060, 2810, 2680, 2570, 2380}},
	SpectralL: {{2200, 2100, 2000, 1900, 1800, 1700, 1600, 1500, 1400, 1300}},
	SpectralT: {{1400, 1300, 1200, 1100, 1000, 900, 850, 800, 750, 700}},
	SpectralY: {{500, 475, 450, 425, 400, 375, 350, 325, 300, 275}},
	SpectralWC: {{82000, 78000, 74000, 70000, 66000, 62000, 58000, 54000, 50000, 46000}},
	SpectralWN: {{100000, 95000, 90000, 85000, 80000, 75000, 70000, 65000, 60000, 55000}},
	SpectralWO: {{150000, 145000, 140000, 135000, 130000, 125000, 120000, 115000, 110000, 105000}},
}

// bolometricCorrections mirrors mainSequenceTemps' shape with nominal
// bolometric corrections in magnitudes, becoming more negative (bluer,
// more UV-heavy output) toward the hot end of each class.
var bolometricCorrections = map[SpectralClass][10]float64{
	SpectralO:  {-4.5, -4.4, -4.3, -4.0, -3.8, -3.6, -3.4, -3.2, -3.0, -2.8},
	SpectralB:  {-2.7, -2.3, -1.7, -1.3, -1.2, -1.0, -0.8, -0.7, -0.5, -0.4},
	SpectralA:  {-0.3, -0.24, -0.2, -0.15, -0.09, -0.06, -0.03, -0.02, -0.01, 0.0},
	SpectralF:  {0.0, 0.0, -0.01, -0.02, -0.03, -0.07, -0.10, -0.13, -0.15, -0.18},
	SpectralG:  {-0.18, -0.2, -0.22, -0.25, -0.27, -0.30, -0.32, -0.35, -0.38, -0.40},
	SpectralK:  {-0.42, -0.48, -0.55, -0.65, -0.78, -0.94, -1.13, -1.35, -1.57, -1.85},
	SpectralM:  {-2.0, -2.1, -2.3, -2.5, -2.8, -3.2, -3.5, -3.8, -4.0, -4.4},
	SpectralL:  {-4.6, -4.8, -5.0, -5.2, -5.4, -5.6, -5.8, -6.0, -6.2, -6.4},
	SpectralT:  {-6.5, -6.7, -6.9, -7.1, -7.3, -7.5, -7.7, -7.9, -8.1, -8.3},
	SpectralY:  {-9.0, -9.2, -9.4, -9.6, -9.8, -10.0, -10.2, -10.4, -10.6, -10.8},
	SpectralWC: {-3.0, -3.0, -3.0, -3.0, -3.0, -3.0, -3.0, -3.0, -3.0, -3.0},
	SpectralWN: {-3.5, -3.5, -3.5, -3.5, -3.5, -3.5, -3.5, -3.5, -3.5, -3.5},
	SpectralWO: {-3.8, -3.8, -3.8, -3.8, -3.8, -3.8, -3.8, -3.8, -3.8, -3.8},
}

// nominalRotationPeriods mirrors the same shape in days. Substellar
// classes (L, T, Y) are fast rotators regardless of subclass.
var nominalRotationPeriods = map[SpectralClass][10]float64{
	SpectralO: {1.0, 1.1, 1.2, 1.4, 1.6, 1.8, 2.0, 2.4, 2.8, 3.2},
	SpectralB: {0.8, 1.0, 1.3, 1.6, 2.0, 2.5, 3.0, 3.6, 4.2, 5.0},
	SpectralA: {0.5, 0.6, 0.7, 0.8, 0.9, 1.0, 1.1, 1.2, 1.3, 1.4},
	SpectralF: {1.0, 1.3, 1.6, 2.0, 3.0, 5.0, 8.0, 12.0, 16.0, 20.0},
	SpectralG: {25.0, 25.4, 25.9, 26.5, 27.0, 27.5, 28.0, 28.5, 29.0, 30.0},
	SpectralK: {30.0, 32.0, 34.0, 36.0, 38.0, 40.0, 42.0, 44.0, 46.0, 48.0},
	SpectralM: {40.0, 42.0, 45.0, 48.0, 52.0, 58.0, 65.0, 75.0, 90.0, 110.0},
}

// brownDwarfRotationPeriod is the nominal period, in days, applied to
// L/T/Y subtypes regardless of subclass.
const brownDwarfRotationPeriod = 0.2

// SpectralParams is the decoded physical descriptor for one
// (class, subclass, luminosity) triple.
type SpectralParams struct {
	Temperature          float64 // kelvin
	BolometricCorrection float64 // magnitudes
	RotationPeriod       float64 // days
}

// Decode resolves the tabulated temperature, bolometric correction,
// and nominal rotation period for a spectral class, subclass in
// [0,9] (any other value, including -1, selects the class's default
// subclass), and luminosity class.
func Decode(class SpectralClass, subclass int, lum LuminosityClass) SpectralParams {
	if subclass < 0 || subclass > 9 {
		subclass = defaultSubclass(class)
	}
	row := luminosityIndex(lum)

	temps, ok := mainSequenceTemps[class]
	if !ok {
		return SpectralParams{}
	}
	if row >= len(temps) {
		row = 0
	}
	temp := temps[row][subclass]

	bc := bolometricCorrections[class][subclass]

	var period float64
	switch class {
	case SpectralL, SpectralT, SpectralY:
		period = brownDwarfRotationPeriod
	default:
		periods, ok := nominalRotationPeriods[class]
		if !ok {
			period = brownDwarfRotationPeriod
		} else {
			period = periods[subclass]
		}
	}

	return SpectralParams{Temperature: temp, BolometricCorrection: bc, RotationPeriod: period}
}

// BolometricCorrectionForTemperature computes a bolometric correction
// from an explicit custom temperature using the main-sequence fit of
// B. Cameron Reed (1998), "The Composite Observational-Theoretical HR
// Diagram", JRASC vol 92 p36, applied when a custom temperature is
// supplied without an explicit correction of its own.
func BolometricCorrectionForTemperature(temperatureKelvin float64) float64 {
	logT := math.Log10(temperatureKelvin) - 4
	logT2 := logT * logT
	logT3 := logT2 * logT
	logT4 := logT3 * logT
	return -8.499*logT4 + 13.421*logT3 - 8.131*logT2 - 3.901*logT - 0.438
}
