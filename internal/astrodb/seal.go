package astrodb

import (
	"context"
	"log"
	"sort"

	"github.com/draco-astrodb/astrodb/internal/catnum"
	"github.com/draco-astrodb/astrodb/internal/octree"
	"github.com/draco-astrodb/astrodb/internal/stellar"
)

// sqrt3 mirrors octree's unexported constant of the same name, needed
// here to seed each tree's root brightness-exclusion factor the same
// way the octree package itself computes a node's worst-case distance.
const sqrt3 = 1.7320508075688772

// Root cell sizes, in light-years, for the two catalog-appropriate
// octrees -- deep-sky objects are sparser and individually much larger
// than stars, so their tree spans two orders of magnitude further.
const (
	starOctreeRootSize = 1e9
	dsoOctreeRootSize  = 1e11
)

// Seed apparent-magnitude thresholds used to compute each root's
// initial brightness-exclusion factor (converted to an absolute
// magnitude at the root's worst-case distance, root_size*sqrt3).
const (
	starOctreeMagnitude = 6.0
	dsoOctreeMagnitude  = 8.0
)

// Per-node object counts above which a node splits into eight octants.
// Stars vastly outnumber DSOs in any real catalog, so they tolerate a
// larger per-leaf count before the extra tree depth pays for itself.
const (
	starSplitThreshold = 75
	dsoSplitThreshold  = 10
)

// orbitalExtentMargin pads a star's computed distance to its orbit
// barycenter so floating-point roundoff at the octant boundary can
// never cause a straddling pair to be sorted into different octants.
const orbitalExtentMargin = 1e-6

// indexEntry is one row of the sealed database's catalog-number index:
// a sorted-by-number association used for FindByNumber binary search.
type indexEntry struct {
	number catnum.Number
	ref    ObjectRef
}

// Seal resolves deferred orbit references, spatially sorts every
// accumulated object into its catalog-appropriate octree, and returns
// an immutable Database. The builder itself becomes unusable after
// Seal succeeds or fails -- a Builder is single-use.
func (b *Builder) Seal(ctx context.Context) (*Database, error) {
	if b.sealed {
		return nil, ErrAlreadySealed
	}
	b.sealed = true

	orbiting := b.resolveBarycenters()

	starTree := b.buildStarTree(orbiting)
	dsoTree := b.buildDSOTree()

	index := make([]indexEntry, 0, len(b.stars)+len(b.dsos))
	for n, s := range b.stars {
		index = append(index, indexEntry{number: n, ref: ObjectRef{Kind: KindStar, Star: s}})
	}
	for n, d := range b.dsos {
		index = append(index, indexEntry{number: n, ref: ObjectRef{Kind: KindDSO, DSO: d}})
	}
	sort.Slice(index, func(i, j int) bool { return index[i].number < index[j].number })

	var magSum float32
	var magCount int
	for _, d := range b.dsos {
		if d.HasMagnitude() {
			magSum += d.AbsMag
			magCount++
		}
	}
	var avgDSOAbsMag float32
	if magCount > 0 {
		avgDSOAbsMag = magSum / float32(magCount)
	}

	db := &Database{
		stars:        starTree,
		dsos:         dsoTree,
		names:        b.names,
		xindexes:     b.xindexes,
		index:        index,
		orbiting:     orbiting,
		avgDSOAbsMag: avgDSOAbsMag,
	}

	if b.bus != nil {
		payload := map[string]int{"stars": len(b.stars), "dsos": len(b.dsos)}
		if err := b.bus.Publish(ctx, "catalog.sealed", payload); err != nil {
			log.Printf("astrodb: failed to publish catalog.sealed: %v", err)
		}
	}

	return db, nil
}

// resolveBarycenters walks the deferred orbit edges recorded during
// accumulate, dropping any edge whose endpoints are missing or whose
// parent chain cycles back to the child, and returns the surviving
// parent -> children adjacency.
func (b *Builder) resolveBarycenters() map[catnum.Number][]catnum.Number {
	parentOf := make(map[catnum.Number]catnum.Number, len(b.edges))
	for _, e := range b.edges {
		parentOf[e.child] = e.parent
	}

	orbiting := make(map[catnum.Number][]catnum.Number)
	for _, e := range b.edges {
		if _, ok := b.stars[e.child]; !ok {
			log.Printf("astrodb: dropping orbit edge: child %v not found", e.child)
			continue
		}
		if _, ok := b.stars[e.parent]; !ok {
			log.Printf("astrodb: dropping orbit edge: parent %v not found", e.parent)
			continue
		}

		visited := map[catnum.Number]bool{e.child: true}
		cur := e.parent
		cycle := false
		for {
			if visited[cur] {
				cycle = true
				break
			}
			visited[cur] = true
			next, ok := parentOf[cur]
			if !ok {
				break
			}
			cur = next
		}
		if cycle {
			log.Printf("astrodb: dropping orbit edge: cycle detected at %v", e.child)
			continue
		}

		orbiting[e.parent] = append(orbiting[e.parent], e.child)
	}
	return orbiting
}

func (b *Builder) buildStarTree(orbiting map[catnum.Number][]catnum.Number) *starTree {
	bld := &octree.Builder[starBody]{
		SplitThreshold: starSplitThreshold,
		Decay:          stellar.StarDecay,
	}
	initial := stellar.AppToAbsMag(starOctreeMagnitude, starOctreeRootSize*sqrt3)
	root := bld.NewRoot([3]float64{0, 0, 0}, initial)

	for n, s := range b.stars {
		extent := 0.0
		if ref := s.Details.OrbitBarycenter; ref.Set {
			if parent, ok := b.stars[catnum.Number(ref.Number)]; ok {
				extent = float64(s.Position.Sub(parent.Position).Length()) + orbitalExtentMargin
			}
		}
		for _, child := range orbiting[n] {
			if cs, ok := b.stars[child]; ok {
				d := float64(s.Position.Sub(cs.Position).Length()) + orbitalExtentMargin
				if d > extent {
					extent = d
				}
			}
		}
		bld.Insert(root, starBody{star: s, orbitalExtent: extent}, starOctreeRootSize)
	}

	return octree.Flatten(root, starOctreeRootSize)
}

func (b *Builder) buildDSOTree() *dsoTree {
	bld := &octree.Builder[dsoBody]{
		SplitThreshold: dsoSplitThreshold,
		Decay:          stellar.DSODecay,
	}
	initial := stellar.AppToAbsMag(dsoOctreeMagnitude, dsoOctreeRootSize*sqrt3)
	root := bld.NewRoot([3]float64{0, 0, 0}, initial)

	for _, d := range b.dsos {
		bld.Insert(root, dsoBody{dso: d}, dsoOctreeRootSize)
	}

	return octree.Flatten(root, dsoOctreeRootSize)
}
