package layout

// ParentIndex maps a child node ID to its parent's ID. The tree stores no
// back-pointers, so parent lookups either walk the tree or consult an index
// built once per tree. Operations rebuild the index after cloning; callers
// that hold a State across renders can build one and reuse it until the next
// mutation.
type ParentIndex map[string]string

// IndexParents builds a ParentIndex for the subtree rooted at root. The root
// itself has no entry.
func IndexParents(root *Node) ParentIndex {
	ix := make(ParentIndex)
	indexInto(root, ix)
	return ix
}

func indexInto(n *Node, ix ParentIndex) {
	if n == nil {
		return
	}
	for _, child := range n.Children {
		ix[child.ID] = n.ID
		indexInto(child, ix)
	}
}

// Parent returns the parent ID of the given node, or false for the root and
// for IDs not in the tree.
func (ix ParentIndex) Parent(id string) (string, bool) {
	p, ok := ix[id]
	return p, ok
}
