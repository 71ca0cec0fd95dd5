package stellar

import (
	"github.com/draco-astrodb/astrodb/internal/catnum"
	"github.com/draco-astrodb/astrodb/internal/geom"
)

// ObjectType distinguishes the kinds of deep-sky object the database
// stores. Every type uses the same octree decay, DSODecay.
type ObjectType int

const (
	Galaxy ObjectType = iota
	Globular
	OpenCluster
	Nebula
)

// UnknownAbsMag is the sentinel absolute magnitude used when a
// deep-sky object's catalog entry gives no magnitude at all. It is
// numerically brighter than any real object, so the octree keeps such
// objects at the root and magnitude-limited queries do not cull them on
// brightness; HasMagnitude reports false for it, which keeps it out of
// the average DSO magnitude.
const UnknownAbsMag = -1000

// DeepSkyObject is one entry in the deep-sky catalog: a catalog
// number, position in light-years (double precision, since some
// catalog distances are poorly constrained and can be very large),
// orientation, radius in light-years, and an optional
// magnitude.
type DeepSkyObject struct {
	Number      catnum.Number
	Position    geom.Vec3d
	Orientation geom.Quatf
	Radius      float32
	AbsMag      float32
	Type        ObjectType
}

// HasMagnitude reports whether this object carries a real tabulated
// magnitude rather than the UnknownAbsMag sentinel.
func (d DeepSkyObject) HasMagnitude() bool {
	return d.AbsMag != UnknownAbsMag
}

// dsoMagPerLevel is the per-octree-level magnitude-threshold step for
// deep-sky objects: unlike stars (whose threshold doubles per level by
// luminosity), DSOs decay by a flat additive amount because their
// tabulated magnitudes are integrated rather than point-source, so a
// luminosity-ratio decay would over-prune large, diffuse objects.
const dsoMagPerLevel = 0.5

// DSODecay implements the octree Body decay hook for deep-sky objects.
func DSODecay(absMag float32) float32 {
	return absMag + dsoMagPerLevel
}
