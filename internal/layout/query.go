package layout

import "sort"

// FindNode returns the node with the given ID, searching depth first in child
// order so repeated calls are stable, or nil if no such node exists.
func FindNode(root *Node, id string) *Node {
	if root == nil {
		return nil
	}
	if root.ID == id {
		return root
	}
	for _, child := range root.Children {
		if found := FindNode(child, id); found != nil {
			return found
		}
	}
	return nil
}

// ParentOf returns the parent of the node with the given ID, or nil for the
// root and for unknown IDs.
func ParentOf(root *Node, id string) *Node {
	ix := IndexParents(root)
	parentID, ok := ix.Parent(id)
	if !ok {
		return nil
	}
	return FindNode(root, parentID)
}

// Leaves returns every pane in depth-first child order.
func Leaves(root *Node) []*Node {
	var out []*Node
	walk(root, func(n *Node) {
		if n.IsLeaf() {
			out = append(out, n)
		}
	})
	return out
}

// CountPanes returns the number of panes in the state.
func CountPanes(s State) int {
	return len(Leaves(s.Root))
}

// CountEditors returns the total number of editor instances across all panes.
func CountEditors(s State) int {
	total := 0
	walk(s.Root, func(n *Node) {
		total += len(n.Editors)
	})
	return total
}

// ActiveLeaf returns the pane the selection points at, or nil if the selection
// is broken (which CheckInvariants would reject).
func ActiveLeaf(s State) *Node {
	n := FindNode(s.Root, s.ActiveNodeID)
	if n.IsLeaf() {
		return n
	}
	return nil
}

// ActiveEditor returns the active editor instance, or false when the tree
// holds no editors.
func ActiveEditor(s State) (EditorInstance, bool) {
	if s.ActiveEditorID == "" {
		return EditorInstance{}, false
	}
	leaf := ActiveLeaf(s)
	if leaf == nil {
		return EditorInstance{}, false
	}
	for _, ed := range leaf.Editors {
		if ed.ID == s.ActiveEditorID {
			return ed, true
		}
	}
	return EditorInstance{}, false
}

// Paths returns the distinct file paths open anywhere in the tree, sorted.
// The registry diffs this across operations to learn when a path has fully
// left the layout.
func Paths(s State) []string {
	seen := make(map[string]bool)
	walk(s.Root, func(n *Node) {
		for _, ed := range n.Editors {
			seen[ed.Path] = true
		}
	})
	out := make([]string, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// walk visits every node depth first in child order.
func walk(n *Node, fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, child := range n.Children {
		walk(child, fn)
	}
}

// firstLeafWithEditors returns the first pane in depth-first order holding at
// least one editor, or nil.
func firstLeafWithEditors(root *Node) *Node {
	for _, leaf := range Leaves(root) {
		if len(leaf.Editors) > 0 {
			return leaf
		}
	}
	return nil
}

// findEditor returns the pane containing the editor with the given ID along
// with its position in that pane, or (nil, -1).
func findEditor(root *Node, editorID string) (*Node, int) {
	var leaf *Node
	idx := -1
	walk(root, func(n *Node) {
		if leaf != nil {
			return
		}
		for i, ed := range n.Editors {
			if ed.ID == editorID {
				leaf, idx = n, i
				return
			}
		}
	})
	return leaf, idx
}
