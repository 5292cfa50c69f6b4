package layout

// Selection-only mutations. These move focus without touching the tree shape,
// under the same rules the structural operations repair by: the active pane
// always exists, and the active editor lives inside it unless the whole tree
// is empty.

// FocusPane moves the selection to the given pane. The previously active
// editor keeps focus if it lives there; otherwise the pane's first editor
// takes it. Focusing an empty pane is rejected while editors exist elsewhere,
// since that would leave no valid active editor.
func FocusPane(s State, paneID string) (State, error) {
	const op = "focus pane"
	st := s.Clone()
	leaf := FindNode(st.Root, paneID)
	if leaf == nil {
		return s, notFound(op, "pane", paneID)
	}
	if !leaf.IsLeaf() {
		return s, precondition(op, "node %q is a split, not a pane", paneID)
	}
	if len(leaf.Editors) == 0 && CountEditors(st) > 0 {
		return s, precondition(op, "pane %q is empty", paneID)
	}
	st.ActiveNodeID = leaf.ID
	if len(leaf.Editors) == 0 {
		st.ActiveEditorID = ""
		return st, nil
	}
	for _, ed := range leaf.Editors {
		if ed.ID == st.ActiveEditorID {
			return st, nil
		}
	}
	st.ActiveEditorID = leaf.Editors[0].ID
	return st, nil
}

// FocusEditor makes one editor of one pane the active selection.
func FocusEditor(s State, paneID, editorID string) (State, error) {
	const op = "focus editor"
	st := s.Clone()
	leaf := FindNode(st.Root, paneID)
	if leaf == nil {
		return s, notFound(op, "pane", paneID)
	}
	if !leaf.IsLeaf() {
		return s, precondition(op, "node %q is a split, not a pane", paneID)
	}
	for _, ed := range leaf.Editors {
		if ed.ID == editorID {
			st.ActiveNodeID = leaf.ID
			st.ActiveEditorID = editorID
			return st, nil
		}
	}
	return s, notFound(op, "editor", editorID)
}
