package stellar

import (
	"math"

	"github.com/draco-astrodb/astrodb/internal/catnum"
	"github.com/draco-astrodb/astrodb/internal/geom"
)

// Star is one entry in the star catalog: a catalog number, a position
// in light-years, an absolute magnitude, interstellar extinction, and
// a (possibly shared) details record.
type Star struct {
	Number     catnum.Number
	Position   geom.Vec3f
	AbsMag     float32
	Extinction float32
	Details    *StarDetails
}

// ApparentMagnitude returns the magnitude this star would present to
// an observer at distanceLy light-years, folding in extinction.
func (s Star) ApparentMagnitude(distanceLy float32) float32 {
	return AbsToAppMag(s.AbsMag, distanceLy) + s.Extinction
}

// Luminosity returns the star's luminosity relative to the sun,
// derived from its absolute magnitude.
func (s Star) Luminosity() float32 {
	return absMagToLum(s.AbsMag)
}

// sunAbsMag is the Sun's absolute visual magnitude, the zero point of
// the luminosity/magnitude conversion used throughout.
const sunAbsMag = 4.83

// absMagToLum converts an absolute magnitude to luminosity in solar units.
func absMagToLum(absMag float32) float32 {
	return float32(math.Pow(10, float64(sunAbsMag-absMag)*0.4))
}

// lumToAbsMag is the inverse of absMagToLum, used by the octree's
// decay function when halving a node's side length dims its
// brightness floor.
func lumToAbsMag(lum float32) float32 {
	return sunAbsMag - float32(math.Log10(float64(lum)))*2.5
}

// AbsToAppMag converts an absolute magnitude to the apparent magnitude
// seen from distanceLy light-years away.
func AbsToAppMag(absMag, distanceLy float32) float32 {
	if distanceLy <= 0 {
		return absMag
	}
	return absMag - 5 + float32(5*math.Log10(float64(distanceLy)*parsecsPerLightYear))
}

// AppToAbsMag converts an apparent magnitude at distanceLy light-years
// to an absolute magnitude.
func AppToAbsMag(appMag, distanceLy float32) float32 {
	if distanceLy <= 0 {
		return appMag
	}
	return appMag + 5 - float32(5*math.Log10(float64(distanceLy)*parsecsPerLightYear))
}

// parsecsPerLightYear converts light-years to parsecs (1 pc ~= 3.2616 ly).
const parsecsPerLightYear = 1.0 / 3.26156

// StarDecay implements the octree Body decay hook for stars: halving a
// node's side length doubles the apparent-magnitude reach, equivalent
// to quartering the luminosity threshold.
func StarDecay(absMag float32) float32 {
	return lumToAbsMag(absMagToLum(absMag) / 4.0)
}
