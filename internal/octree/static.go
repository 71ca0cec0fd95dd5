package octree

// StaticNode is one entry in a flattened, depth-first octree: its
// directly kept objects occupy Objects[First:Last], its children
// occupy the node-index range (selfIndex+1)..(Right-1), and Right is
// the index one past the end of the entire subtree -- the single skip
// pointer that lets traversal bypass a culled subtree in one step.
type StaticNode struct {
	Center       [3]float64
	Scale        float64
	Right        uint32
	First        uint32
	Last         uint32
	BrightFactor float32
}

// StaticOctree is the query-time, flattened form of a DynamicNode tree,
// produced by Flatten.
type StaticOctree[O Body] struct {
	Nodes   []StaticNode
	Objects []O
}

// Flatten walks the dynamic tree rooted at root (whose half-extent is
// rootScale) in depth-first pre-order, producing a StaticOctree whose
// Objects slice is physically reordered so that every subtree's kept
// objects form one contiguous run -- the layout that makes traversal a
// flat loop with a single skip pointer instead of a recursive walk.
func Flatten[O Body](root *DynamicNode[O], rootScale float64) *StaticOctree[O] {
	tree := &StaticOctree[O]{}
	flattenNode(root, rootScale, tree)
	return tree
}

func flattenNode[O Body](n *DynamicNode[O], scale float64, tree *StaticOctree[O]) {
	idx := len(tree.Nodes)
	tree.Nodes = append(tree.Nodes, StaticNode{
		Center:       n.center,
		Scale:        scale,
		BrightFactor: n.exclusionFactor,
	})

	first := uint32(len(tree.Objects))
	tree.Objects = append(tree.Objects, n.objects...)
	last := uint32(len(tree.Objects))
	tree.Nodes[idx].First = first
	tree.Nodes[idx].Last = last

	if n.children != nil {
		for _, child := range n.children {
			if subtreeEmpty(child) {
				continue
			}
			flattenNode(child, scale*0.5, tree)
		}
	}

	tree.Nodes[idx].Right = uint32(len(tree.Nodes))
}

// subtreeEmpty reports whether n holds no objects itself and, if split,
// none of its descendants do either -- the condition under which
// flattenNode omits it from the flattened output entirely, per spec.md
// §4.F ("only those [children] that receive an object need exist in
// the flattened output").
func subtreeEmpty[O Body](n *DynamicNode[O]) bool {
	if len(n.objects) != 0 {
		return false
	}
	if n.children == nil {
		return true
	}
	for _, child := range n.children {
		if !subtreeEmpty(child) {
			return false
		}
	}
	return true
}

// Size returns the total number of objects held across the tree.
func (t *StaticOctree[O]) Size() int {
	return len(t.Objects)
}

// NodeCount returns the total number of nodes in the flattened tree.
func (t *StaticOctree[O]) NodeCount() int {
	return len(t.Nodes)
}
