package octree

// octant bit flags selecting a child index from the sign of each axis
// of (position - center).
const (
	octantXPos = 1
	octantYPos = 2
	octantZPos = 4
)

// DynamicNode is one node of the build-time octree: a mutable cell
// that accumulates objects as they are inserted and lazily splits into
// eight children once it exceeds its split threshold.
type DynamicNode[O Body] struct {
	center          [3]float64
	exclusionFactor float32
	children        *[8]*DynamicNode[O]
	objects         []O
}

// Builder holds the per-tree configuration that the trait functions in
// spec.md §4.E leave as hooks: how many objects a node may hold before
// it splits, and how the brightness threshold decays for each
// additional level of depth.
type Builder[O Body] struct {
	SplitThreshold int
	Decay          func(float32) float32
}

// NewRoot creates the root node of a dynamic octree centered at center
// with the given initial exclusion (brightness-threshold) factor.
func (b *Builder[O]) NewRoot(center [3]float64, exclusionFactor float32) *DynamicNode[O] {
	return &DynamicNode[O]{center: center, exclusionFactor: exclusionFactor}
}

// Insert places obj into the subtree rooted at n, whose half-extent is
// scale. It implements the four-step policy from spec.md §4.E: keep
// here if brighter than the node's threshold, keep here if it straddles
// the node's octant boundary, keep here if the node hasn't split and is
// still under the split threshold, otherwise split (if needed) and
// recurse into the appropriate child.
func (b *Builder[O]) Insert(n *DynamicNode[O], obj O, scale float64) {
	if exceedsBrightnessThreshold(obj, n.exclusionFactor) || isStraddling(n.center, obj) {
		n.objects = append(n.objects, obj)
		return
	}

	if n.children == nil {
		if len(n.objects) < b.SplitThreshold {
			n.objects = append(n.objects, obj)
			return
		}
		b.split(n, scale*0.5)
	}

	child := childFor(n, obj)
	b.Insert(child, obj, scale*0.5)
}

func (b *Builder[O]) split(n *DynamicNode[O], childScale float64) {
	var children [8]*DynamicNode[O]
	for i := 0; i < 8; i++ {
		offset := [3]float64{-childScale, -childScale, -childScale}
		if i&octantXPos != 0 {
			offset[0] = childScale
		}
		if i&octantYPos != 0 {
			offset[1] = childScale
		}
		if i&octantZPos != 0 {
			offset[2] = childScale
		}
		center := [3]float64{n.center[0] + offset[0], n.center[1] + offset[1], n.center[2] + offset[2]}
		children[i] = &DynamicNode[O]{center: center, exclusionFactor: b.Decay(n.exclusionFactor)}
	}
	n.children = &children
	b.sortIntoChildren(n)
}

// sortIntoChildren re-examines a just-split node's directly held
// objects: anything that still fails the keep-here test migrates into
// the appropriate freshly created child.
func (b *Builder[O]) sortIntoChildren(n *DynamicNode[O]) {
	kept := n.objects[:0]
	for _, obj := range n.objects {
		if exceedsBrightnessThreshold(obj, n.exclusionFactor) || isStraddling(n.center, obj) {
			kept = append(kept, obj)
		} else {
			child := childFor(n, obj)
			child.objects = append(child.objects, obj)
		}
	}
	n.objects = kept
}

func childFor[O Body](n *DynamicNode[O], obj O) *DynamicNode[O] {
	pos := obj.Position()
	idx := 0
	if pos[0] >= n.center[0] {
		idx |= octantXPos
	}
	if pos[1] >= n.center[1] {
		idx |= octantYPos
	}
	if pos[2] >= n.center[2] {
		idx |= octantZPos
	}
	return n.children[idx]
}

// exceedsBrightnessThreshold reports whether obj is brighter than (or
// equal to) a node's exclusion factor -- brighter meaning a lower
// magnitude number -- and so must be kept at this level regardless of
// octant.
func exceedsBrightnessThreshold[O Body](obj O, exclusionFactor float32) bool {
	return obj.Magnitude() <= exclusionFactor
}

// isStraddling reports whether obj's bounding sphere intersects more
// than one of the node's child cells: equivalently, whether any axis
// of (position - center) falls within the bounding radius of the
// dividing plane.
func isStraddling[O Body](center [3]float64, obj O) bool {
	pos := obj.Position()
	r := obj.BoundingRadius()
	for i := 0; i < 3; i++ {
		d := pos[i] - center[i]
		if d < 0 {
			d = -d
		}
		if d < r {
			return true
		}
	}
	return false
}
