package layout

// State is the whole layout at one instant: the tree plus the active
// selection. Operations never mutate a State in place; each returns a new one,
// so a State held by the caller stays valid even while the next mutation is
// computed.
type State struct {
	Root           *Node  `json:"root"`
	ActiveNodeID   string `json:"activeNodeId"`
	ActiveEditorID string `json:"activeEditorId,omitempty"`
}

// NewState creates the startup layout: a single empty pane, focused, with no
// active editor. The tree never becomes empty after this point; removing the
// last editor keeps the lone pane as a drop target.
func NewState() State {
	leaf := NewLeaf()
	return State{
		Root:         leaf,
		ActiveNodeID: leaf.ID,
	}
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	return State{
		Root:           s.Root.Clone(),
		ActiveNodeID:   s.ActiveNodeID,
		ActiveEditorID: s.ActiveEditorID,
	}
}
