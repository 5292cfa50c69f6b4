package layout

import "math"

// CheckInvariants validates the whole state:
//
//   - every node is exactly one of split or leaf, with the fields of its kind
//   - every split has at least two children and one size per child, each at
//     least MinSize, summing to 100 within a rounding epsilon
//   - node and editor IDs are unique across the tree
//   - the active node is a pane in the tree, and the active editor lives in
//     it, or is empty exactly when the tree holds no editors at all
//
// A valid operation on a valid state always produces a valid state; this is
// run by tests after every step and by Decode on untrusted input.
func CheckInvariants(s State) error {
	if s.Root == nil {
		return &StructuralError{Invariant: "tree has no root"}
	}
	nodeIDs := make(map[string]bool)
	editorIDs := make(map[string]bool)
	if err := checkNode(s.Root, nodeIDs, editorIDs); err != nil {
		return err
	}

	active := FindNode(s.Root, s.ActiveNodeID)
	if active == nil {
		return &StructuralError{Invariant: "active node not in tree", NodeID: s.ActiveNodeID}
	}
	if !active.IsLeaf() {
		return &StructuralError{Invariant: "active node is not a pane", NodeID: s.ActiveNodeID}
	}
	if s.ActiveEditorID == "" {
		if CountEditors(s) != 0 {
			return &StructuralError{Invariant: "no active editor but tree holds editors"}
		}
		return nil
	}
	for _, ed := range active.Editors {
		if ed.ID == s.ActiveEditorID {
			return nil
		}
	}
	return &StructuralError{Invariant: "active editor not in active pane", NodeID: s.ActiveNodeID}
}

func checkNode(n *Node, nodeIDs, editorIDs map[string]bool) error {
	if n.ID == "" {
		return &StructuralError{Invariant: "node has no ID"}
	}
	if nodeIDs[n.ID] {
		return &StructuralError{Invariant: "duplicate node ID", NodeID: n.ID}
	}
	nodeIDs[n.ID] = true

	switch n.Kind {
	case KindLeaf:
		if len(n.Children) > 0 || len(n.Sizes) > 0 || n.Orientation != "" {
			return &StructuralError{Invariant: "pane carries split fields", NodeID: n.ID}
		}
		for _, ed := range n.Editors {
			if ed.ID == "" {
				return &StructuralError{Invariant: "editor has no ID", NodeID: n.ID}
			}
			if editorIDs[ed.ID] {
				return &StructuralError{Invariant: "duplicate editor ID", NodeID: n.ID}
			}
			editorIDs[ed.ID] = true
		}
		return nil
	case KindSplit:
		if len(n.Editors) > 0 {
			return &StructuralError{Invariant: "split carries editors", NodeID: n.ID}
		}
		if n.Orientation != Horizontal && n.Orientation != Vertical {
			return &StructuralError{Invariant: "split has unknown orientation", NodeID: n.ID}
		}
		if len(n.Children) < 2 {
			return &StructuralError{Invariant: "split has fewer than 2 children", NodeID: n.ID}
		}
		if len(n.Sizes) != len(n.Children) {
			return &StructuralError{Invariant: "sizes do not match children", NodeID: n.ID}
		}
		total := 0.0
		for _, v := range n.Sizes {
			if v < MinSize-sizeEpsilon {
				return &StructuralError{Invariant: "child size below the minimum floor", NodeID: n.ID}
			}
			total += v
		}
		if math.Abs(total-100) > sizeEpsilon {
			return &StructuralError{Invariant: "sizes do not sum to 100", NodeID: n.ID}
		}
		for _, child := range n.Children {
			if err := checkNode(child, nodeIDs, editorIDs); err != nil {
				return err
			}
		}
		return nil
	default:
		return &StructuralError{Invariant: "node is neither split nor pane", NodeID: n.ID}
	}
}
