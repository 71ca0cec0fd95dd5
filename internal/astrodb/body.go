package astrodb

import (
	"github.com/draco-astrodb/astrodb/internal/octree"
	"github.com/draco-astrodb/astrodb/internal/stellar"
)

// starBody adapts *stellar.Star to octree.Body. A star's bounding
// radius for the straddle test is the larger of its distance to its own
// orbit barycenter (if any) and its distance to the farthest star
// orbiting it, plus a small margin -- close binary/
// barycenter systems must never be sliced across octants -- rather
// than the star's own physical radius, which is negligible at
// light-year scale.
type starBody struct {
	star          *stellar.Star
	orbitalExtent float64
}

func (b starBody) Position() [3]float64 {
	p := b.star.Position
	return [3]float64{float64(p.X), float64(p.Y), float64(p.Z)}
}

func (b starBody) BoundingRadius() float64 { return b.orbitalExtent }

func (b starBody) Magnitude() float32 { return b.star.AbsMag }

// dsoBody adapts *stellar.DeepSkyObject to octree.Body.
type dsoBody struct {
	dso *stellar.DeepSkyObject
}

func (b dsoBody) Position() [3]float64 {
	p := b.dso.Position
	return [3]float64{p.X, p.Y, p.Z}
}

func (b dsoBody) BoundingRadius() float64 { return float64(b.dso.Radius) }

func (b dsoBody) Magnitude() float32 {
	if !b.dso.HasMagnitude() {
		return stellar.UnknownAbsMag
	}
	return b.dso.AbsMag
}

// starTree and dsoTree name the generic instantiations used throughout
// the package so callers don't need to repeat the type parameter.
type starTree = octree.StaticOctree[starBody]
type dsoTree = octree.StaticOctree[dsoBody]
