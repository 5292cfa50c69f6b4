package layout

// Tree operations. Each takes the current state and returns a new one; the
// input is cloned up front and never mutated, so a failed precondition hands
// the caller back the original state unchanged. Selection repair is folded
// into every operation rather than living in a separate service, keeping the
// returned state consistent in one step.

// AddEditor appends a fresh editor instance for src to the given pane and
// focuses it. The source must already be resolved by the registry; the engine
// does no file I/O.
func AddEditor(s State, paneID string, src Source) (State, error) {
	const op = "add editor"
	st := s.Clone()
	leaf := FindNode(st.Root, paneID)
	if leaf == nil {
		return s, notFound(op, "pane", paneID)
	}
	if !leaf.IsLeaf() {
		return s, precondition(op, "node %q is a split, not a pane", paneID)
	}
	if src.Path == "" {
		return s, precondition(op, "source has no path")
	}
	inst := EditorInstance{
		ID:       newID(),
		Path:     src.Path,
		Title:    src.Title,
		Language: src.Language,
		Modified: src.Modified,
	}
	if inst.Title == "" {
		inst.Title = inst.Path
	}
	leaf.Editors = append(leaf.Editors, inst)
	st.ActiveNodeID = leaf.ID
	st.ActiveEditorID = inst.ID
	return st, nil
}

// RemoveEditor deletes one editor instance from a pane. A pane left empty is
// pruned from its parent split unless it is the only pane in the tree, which
// stays as an empty drop target; a split left with a single child is collapsed
// into that child. If the removed editor was active, focus moves to the first
// remaining editor in the same pane, then to the first populated pane in
// depth-first order, and finally to no editor at all.
func RemoveEditor(s State, paneID, editorID string) (State, error) {
	const op = "remove editor"
	st := s.Clone()
	leaf := FindNode(st.Root, paneID)
	if leaf == nil {
		return s, notFound(op, "pane", paneID)
	}
	if !leaf.IsLeaf() {
		return s, precondition(op, "node %q is a split, not a pane", paneID)
	}
	idx := -1
	for i, ed := range leaf.Editors {
		if ed.ID == editorID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return s, notFound(op, "editor", editorID)
	}
	wasActive := st.ActiveEditorID == editorID
	leaf.Editors = append(leaf.Editors[:idx], leaf.Editors[idx+1:]...)

	if len(leaf.Editors) == 0 && CountPanes(st) > 1 {
		detachLeaf(&st, leaf.ID)
	}

	prefPane, prefEditor := st.ActiveNodeID, st.ActiveEditorID
	if wasActive {
		prefPane, prefEditor = paneID, ""
	}
	repairSelection(&st, prefPane, prefEditor)
	return st, nil
}

// Split replaces a pane with a split holding two new panes. The pane's
// editors are partitioned in order, the first ceil(n/2) into the first child
// and the rest into the second, so the total editor count is conserved; an
// empty pane splits into two empty panes. The two children start at 50/50 and
// the first one takes focus.
func Split(s State, paneID string, orientation Orientation) (State, error) {
	const op = "split"
	if orientation != Horizontal && orientation != Vertical {
		return s, precondition(op, "unknown orientation %q", orientation)
	}
	st := s.Clone()
	leaf := FindNode(st.Root, paneID)
	if leaf == nil {
		return s, notFound(op, "pane", paneID)
	}
	if !leaf.IsLeaf() {
		return s, precondition(op, "node %q is a split, not a pane", paneID)
	}

	half := (len(leaf.Editors) + 1) / 2
	first := NewLeaf()
	second := NewLeaf()
	if half > 0 {
		first.Editors = append([]EditorInstance(nil), leaf.Editors[:half]...)
	}
	if half < len(leaf.Editors) {
		second.Editors = append([]EditorInstance(nil), leaf.Editors[half:]...)
	}
	split := NewSplit(orientation, []*Node{first, second}, []float64{50, 50})

	if parent := ParentOf(st.Root, leaf.ID); parent != nil {
		for i, child := range parent.Children {
			if child.ID == leaf.ID {
				parent.Children[i] = split
				break
			}
		}
	} else {
		st.Root = split
	}

	repairSelection(&st, first.ID, st.ActiveEditorID)
	return st, nil
}

// Merge appends pane B's editors to pane A, in order after A's own, and
// removes B from the tree with the same compaction rule as RemoveEditor.
// Only panes can be merged; a split must be decomposed first.
func Merge(s State, paneA, paneB string) (State, error) {
	const op = "merge"
	if paneA == paneB {
		return s, precondition(op, "cannot merge pane %q with itself", paneA)
	}
	st := s.Clone()
	a := FindNode(st.Root, paneA)
	if a == nil {
		return s, notFound(op, "pane", paneA)
	}
	b := FindNode(st.Root, paneB)
	if b == nil {
		return s, notFound(op, "pane", paneB)
	}
	if !a.IsLeaf() || !b.IsLeaf() {
		return s, precondition(op, "both nodes must be panes")
	}

	a.Editors = append(a.Editors, b.Editors...)
	b.Editors = nil
	detachLeaf(&st, b.ID)

	repairSelection(&st, a.ID, st.ActiveEditorID)
	return st, nil
}

// Resize sets a split's child sizes. The caller's values are scaled
// proportionally so they sum to exactly 100, guarding against drag-delta
// drift; after scaling every child must still hold at least MinSize percent.
func Resize(s State, splitID string, sizes []float64) (State, error) {
	const op = "resize"
	st := s.Clone()
	split := FindNode(st.Root, splitID)
	if split == nil {
		return s, notFound(op, "split", splitID)
	}
	if !split.IsSplit() {
		return s, precondition(op, "node %q is a pane, not a split", splitID)
	}
	if len(sizes) != len(split.Children) {
		return s, precondition(op, "got %d sizes for %d children", len(sizes), len(split.Children))
	}
	total := 0.0
	for _, v := range sizes {
		if v <= 0 {
			return s, precondition(op, "size %v is not positive", v)
		}
		total += v
	}
	scaled := make([]float64, len(sizes))
	for i, v := range sizes {
		scaled[i] = v / total * 100
		if scaled[i] < MinSize-sizeEpsilon {
			return s, precondition(op, "size %.2f%% is below the %.0f%% floor", scaled[i], MinSize)
		}
	}
	split.Sizes = scaled
	return st, nil
}

// detachLeaf removes an empty pane from its parent split and compacts the
// tree: the parent's sizes are renormalized to 100, and a parent left with a
// single child is replaced by that child (in its own parent, or as the new
// root). The root pane is never detached; the tree cannot become empty.
func detachLeaf(st *State, leafID string) {
	ix := IndexParents(st.Root)
	parentID, ok := ix.Parent(leafID)
	if !ok {
		return
	}
	parent := FindNode(st.Root, parentID)
	for i, child := range parent.Children {
		if child.ID == leafID {
			parent.Children = append(parent.Children[:i], parent.Children[i+1:]...)
			parent.Sizes = append(parent.Sizes[:i], parent.Sizes[i+1:]...)
			break
		}
	}

	if len(parent.Children) == 1 {
		only := parent.Children[0]
		if grandID, ok := ix.Parent(parentID); ok {
			grand := FindNode(st.Root, grandID)
			for i, child := range grand.Children {
				if child.ID == parentID {
					grand.Children[i] = only
					break
				}
			}
		} else {
			st.Root = only
		}
		return
	}
	normalizeSizes(parent.Sizes)
}

// normalizeSizes scales sizes in place so they sum to 100.
func normalizeSizes(sizes []float64) {
	total := 0.0
	for _, v := range sizes {
		total += v
	}
	if total == 0 {
		even := 100 / float64(len(sizes))
		for i := range sizes {
			sizes[i] = even
		}
		return
	}
	for i := range sizes {
		sizes[i] = sizes[i] / total * 100
	}
}

// repairSelection re-derives the active pane and editor after a structural
// change. The preferred pane wins if it still exists; an empty active pane is
// only allowed when the whole tree holds no editors, otherwise focus moves to
// the first populated pane in depth-first order. The preferred editor is kept
// when it lives in the chosen pane.
func repairSelection(st *State, prefPane, prefEditor string) {
	leaf := FindNode(st.Root, prefPane)
	if leaf != nil && !leaf.IsLeaf() {
		leaf = nil
	}
	if leaf == nil || len(leaf.Editors) == 0 {
		if populated := firstLeafWithEditors(st.Root); populated != nil {
			leaf = populated
		} else if leaf == nil {
			leaf = Leaves(st.Root)[0]
		}
	}
	st.ActiveNodeID = leaf.ID
	if len(leaf.Editors) == 0 {
		st.ActiveEditorID = ""
		return
	}
	if prefEditor != "" {
		for _, ed := range leaf.Editors {
			if ed.ID == prefEditor {
				st.ActiveEditorID = prefEditor
				return
			}
		}
	}
	st.ActiveEditorID = leaf.Editors[0].ID
}
