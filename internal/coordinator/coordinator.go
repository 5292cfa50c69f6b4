// Package coordinator translates user gestures (tab drags and pane context
// menus) into layout operations. It owns no tree state; every call takes the
// caller's state and hands back the state the operation produced.
package coordinator

import (
	"errors"
	"fmt"

	"edshell/internal/layout"
)

// ErrNoDrag means Drop or Hover was called without a drag in progress.
var ErrNoDrag = errors.New("no drag in progress")

// ErrNoActiveEditor means an action needing an active editor ran on a layout
// without one.
var ErrNoActiveEditor = errors.New("no active editor")

// DropMode selects what a completed drag does with the dragged editor.
// Duplicating leaves the origin placement alone, so the same file shows in
// both panes; moving removes it from the origin pane. The default comes from
// the shell config.
type DropMode string

const (
	DropDuplicate DropMode = "duplicate"
	DropMove      DropMode = "move"
)

// ParseDropMode validates a config or flag value.
func ParseDropMode(v string) (DropMode, error) {
	switch DropMode(v) {
	case DropDuplicate, DropMove:
		return DropMode(v), nil
	default:
		return "", fmt.Errorf("unknown drop mode %q", v)
	}
}

// Drag tracks one in-flight tab drag: the editor being dragged, the pane it
// came from, and the pane currently hovered as the drop candidate.
type Drag struct {
	sourcePane  string
	editorID    string
	source      layout.Source
	hoveredPane string
	active      bool
}

// Begin starts a drag for an editor instance. The source payload is captured
// at drag start so the drop never needs to resolve the path again.
func (d *Drag) Begin(paneID, editorID string, src layout.Source) {
	d.sourcePane = paneID
	d.editorID = editorID
	d.source = src
	d.hoveredPane = ""
	d.active = true
}

// Hover records the pane under the cursor as the drop candidate.
func (d *Drag) Hover(paneID string) {
	if d.active {
		d.hoveredPane = paneID
	}
}

// Active reports whether a drag is in progress.
func (d *Drag) Active() bool {
	return d.active
}

// Hovered returns the current drop candidate pane, if any.
func (d *Drag) Hovered() (string, bool) {
	return d.hoveredPane, d.active && d.hoveredPane != ""
}

// Origin returns the pane the drag started from.
func (d *Drag) Origin() string {
	return d.sourcePane
}

// Cancel abandons the drag without touching the layout.
func (d *Drag) Cancel() {
	*d = Drag{}
}

// Drop completes the drag onto the hovered pane. Duplicate mode adds a fresh
// instance there; move mode additionally removes the dragged instance from
// its origin pane. Dropping onto the origin pane in move mode changes
// nothing. The drag is consumed either way.
func (d *Drag) Drop(s layout.State, mode DropMode) (layout.State, error) {
	if !d.active {
		return s, ErrNoDrag
	}
	target, ok := d.Hovered()
	if !ok {
		d.Cancel()
		return s, ErrNoDrag
	}
	origin, editorID := d.sourcePane, d.editorID
	src := d.source
	d.Cancel()

	if mode == DropMove && target == origin {
		return s, nil
	}
	out, err := layout.AddEditor(s, target, src)
	if err != nil {
		return s, err
	}
	if mode == DropMove {
		out, err = layout.RemoveEditor(out, origin, editorID)
		if err != nil {
			return s, err
		}
	}
	return out, nil
}

// Action is one entry of the pane context menu.
type Action string

const (
	ActionSplitHorizontal Action = "split-horizontal"
	ActionSplitVertical   Action = "split-vertical"
	ActionDuplicateEditor Action = "duplicate-editor"
	ActionCloseEditor     Action = "close-editor"
)

// Actions returns the menu entries in display order.
func Actions() []Action {
	return []Action{ActionSplitHorizontal, ActionSplitVertical, ActionDuplicateEditor, ActionCloseEditor}
}

// Label returns the human-readable menu text for an action.
func Label(a Action) string {
	switch a {
	case ActionSplitHorizontal:
		return "Split horizontal"
	case ActionSplitVertical:
		return "Split vertical"
	case ActionDuplicateEditor:
		return "Duplicate editor here"
	case ActionCloseEditor:
		return "Close editor"
	default:
		return string(a)
	}
}

// Apply runs a context-menu action against the pane it was opened on. Each
// action maps onto exactly one layout operation.
func Apply(s layout.State, paneID string, action Action) (layout.State, error) {
	switch action {
	case ActionSplitHorizontal:
		return layout.Split(s, paneID, layout.Horizontal)
	case ActionSplitVertical:
		return layout.Split(s, paneID, layout.Vertical)
	case ActionDuplicateEditor:
		ed, ok := layout.ActiveEditor(s)
		if !ok {
			return s, ErrNoActiveEditor
		}
		src := layout.Source{
			Path:     ed.Path,
			Title:    ed.Title,
			Language: ed.Language,
			Modified: ed.Modified,
		}
		return layout.AddEditor(s, paneID, src)
	case ActionCloseEditor:
		if s.ActiveEditorID == "" {
			return s, ErrNoActiveEditor
		}
		return layout.RemoveEditor(s, s.ActiveNodeID, s.ActiveEditorID)
	default:
		return s, fmt.Errorf("unknown action %q", action)
	}
}
