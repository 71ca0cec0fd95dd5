package octree

import "math"

// Plane is a half-space boundary in the same coordinate space as the
// tree, stored in point-normal form: SignedDistance is positive on the
// side Normal points toward.
type Plane struct {
	Normal [3]float64
	D      float64
}

// NewPlane builds a Plane through point with the given outward normal.
func NewPlane(normal, point [3]float64) Plane {
	return Plane{Normal: normal, D: -dot(normal, point)}
}

// SignedDistance returns the signed distance from p to the plane.
func (p Plane) SignedDistance(pt [3]float64) float64 {
	return dot(p.Normal, pt) + p.D
}

func dot(a, b [3]float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func sub(a, b [3]float64) [3]float64 {
	return [3]float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func norm(v [3]float64) float64 {
	return math.Sqrt(dot(v, v))
}

// inFrustum reports whether a cube node (center, scale) is not
// entirely outside any of the five frustum planes. Each plane's
// rejection margin is the node cube's extent along the plane normal,
// inflated by 10% (scale * sum(|normal components|) * 1.1), to avoid false
// negatives at the corners of the cube.
func inFrustum(center [3]float64, scale float64, planes [5]Plane) bool {
	for _, p := range planes {
		r := scale * (math.Abs(p.Normal[0]) + math.Abs(p.Normal[1]) + math.Abs(p.Normal[2])) * 1.1
		if p.SignedDistance(center) < -r {
			return false
		}
	}
	return true
}

// maxNearOrbitRadius is the distance, in light-years, within which an
// object with an orbit is always reported regardless of apparent
// magnitude -- close binary components can be individually dimmer than
// the limiting magnitude yet still need to be drawn relative to their
// primary.
const maxNearOrbitRadius = 1.0

// VisibleQuery configures a visible-objects traversal of a StaticOctree.
type VisibleQuery[O Body] struct {
	ObserverPosition  [3]float64
	FrustumPlanes     [5]Plane
	LimitingMagnitude float32

	// AppToAbsMag and AbsToAppMag convert between apparent and absolute
	// magnitude at a given light-year distance; passed in rather than
	// hardcoded so star and deep-sky-object queries can supply their
	// own distance-modulus conventions.
	AppToAbsMag func(appMag float32, distanceLy float64) float32
	AbsToAppMag func(absMag float32, distanceLy float64) float32

	// NearOverride, if non-nil, is consulted for objects that fail the
	// magnitude cut; returning true still reports the object. Used for
	// stars close enough to the observer that their orbit must be
	// drawn even if the star itself is individually too dim.
	NearOverride func(obj O, distanceLy float64) bool
}

// Visit is called once per visible object with its distance from the
// observer and its apparent magnitude at that distance.
type Visit[O Body] func(obj O, distanceLy float64, appMag float32)

// FindVisible traverses tree depth-first, culling subtrees that fall
// outside the frustum or whose brightest possible member is dimmer
// than the limiting magnitude at the node's nearest possible distance,
// and reports every object that passes both the frustum and magnitude
// tests.
func (q VisibleQuery[O]) FindVisible(tree *StaticOctree[O], visit Visit[O]) {
	nodeIdx := uint32(0)
	end := uint32(tree.NodeCount())

	for nodeIdx < end {
		node := tree.Nodes[nodeIdx]

		if !inFrustum(node.Center, node.Scale, q.FrustumPlanes) {
			nodeIdx = node.Right
			continue
		}

		minDistance := norm(sub(q.ObserverPosition, node.Center)) - node.Scale*sqrt3

		var dimmest float32 = 1000
		if minDistance > 0 {
			dimmest = q.AppToAbsMag(q.LimitingMagnitude, minDistance)
		}

		for i := node.First; i < node.Last; i++ {
			obj := tree.Objects[i]
			if obj.Magnitude() >= dimmest {
				continue
			}

			pos := obj.Position()
			distance := norm(sub(q.ObserverPosition, pos))
			appMag := q.AbsToAppMag(obj.Magnitude(), distance)

			if appMag < q.LimitingMagnitude ||
				(q.NearOverride != nil && distance < maxNearOrbitRadius && q.NearOverride(obj, distance)) {
				visit(obj, distance, appMag)
			}
		}

		if minDistance <= 0 || q.AbsToAppMag(node.BrightFactor, minDistance) <= q.LimitingMagnitude {
			nodeIdx++
		} else {
			nodeIdx = node.Right
		}
	}
}

// CloseQuery configures a radius-bounded proximity traversal.
type CloseQuery[O Body] struct {
	ObserverPosition [3]float64
	BoundingRadius   float64
	AbsToAppMag      func(absMag float32, distanceLy float64) float32
}

// FindClose traverses tree depth-first, skipping any subtree whose
// node is farther than BoundingRadius from the observer, and reports
// every object strictly within BoundingRadius.
func (q CloseQuery[O]) FindClose(tree *StaticOctree[O], visit Visit[O]) {
	radiusSquared := q.BoundingRadius * q.BoundingRadius

	nodeIdx := uint32(0)
	end := uint32(tree.NodeCount())

	for nodeIdx < end {
		node := tree.Nodes[nodeIdx]

		nodeDistance := norm(sub(q.ObserverPosition, node.Center)) - node.Scale*sqrt3
		if nodeDistance > q.BoundingRadius {
			nodeIdx = node.Right
			continue
		}

		for i := node.First; i < node.Last; i++ {
			obj := tree.Objects[i]
			pos := obj.Position()
			delta := sub(q.ObserverPosition, pos)
			if dot(delta, delta) < radiusSquared {
				distance := norm(delta)
				appMag := q.AbsToAppMag(obj.Magnitude(), distance)
				visit(obj, distance, appMag)
			}
		}

		nodeIdx++
	}
}
