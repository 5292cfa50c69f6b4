// Package layout implements the split-editor pane tree: a recursive
// arrangement of Split and Leaf nodes that tracks which open editors live in
// which pane, how panes divide the available space, and which pane/editor is
// active. The tree only manages shape and placement; reading file contents and
// painting editors belong to collaborators (see internal/registry and
// internal/ui).
package layout

import "github.com/google/uuid"

// Orientation is the direction a Split divides its region.
type Orientation string

const (
	Horizontal Orientation = "horizontal" // children side by side
	Vertical   Orientation = "vertical"   // children stacked
)

// NodeKind tags a Node as a Split or a Leaf. A node is exactly one of the two.
type NodeKind string

const (
	KindSplit NodeKind = "split"
	KindLeaf  NodeKind = "leaf"
)

// MinSize is the smallest share, in percent, a Split child may occupy.
const MinSize = 10.0

// sizeEpsilon absorbs float drift when checking that sizes sum to 100.
const sizeEpsilon = 1e-6

// EditorInstance is one placement of an open file inside one pane. The same
// path may appear as several instances across panes; each placement has its
// own ID, unique across the whole tree.
type EditorInstance struct {
	ID       string `json:"id"`
	Path     string `json:"path"`
	Title    string `json:"title"`
	Language string `json:"language,omitempty"`
	Modified bool   `json:"modified,omitempty"`
}

// Source carries the resolved identity of an open file, supplied by the
// editor registry before AddEditor is called. The engine never reads files
// itself.
type Source struct {
	Path     string
	Title    string
	Language string
	Modified bool
}

// Node is one vertex of the layout tree.
//
// A Split has an Orientation, two or more Children, and a parallel Sizes list
// of percentages summing to 100. A Leaf has an ordered Editors list, possibly
// empty (an empty leaf is a drop target, not an error).
type Node struct {
	ID          string           `json:"id"`
	Kind        NodeKind         `json:"kind"`
	Orientation Orientation      `json:"orientation,omitempty"`
	Children    []*Node          `json:"children,omitempty"`
	Sizes       []float64        `json:"sizes,omitempty"`
	Editors     []EditorInstance `json:"editors,omitempty"`
}

// IsLeaf reports whether the node is a pane.
func (n *Node) IsLeaf() bool {
	return n != nil && n.Kind == KindLeaf
}

// IsSplit reports whether the node is a split.
func (n *Node) IsSplit() bool {
	return n != nil && n.Kind == KindSplit
}

// NewLeaf creates an empty pane with a fresh ID.
func NewLeaf() *Node {
	return &Node{ID: newID(), Kind: KindLeaf}
}

// NewSplit creates a split over the given children with a fresh ID. Sizes must
// be supplied by the caller, one per child.
func NewSplit(orientation Orientation, children []*Node, sizes []float64) *Node {
	return &Node{
		ID:          newID(),
		Kind:        KindSplit,
		Orientation: orientation,
		Children:    children,
		Sizes:       sizes,
	}
}

// Clone returns a deep copy of the subtree rooted at n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := &Node{
		ID:          n.ID,
		Kind:        n.Kind,
		Orientation: n.Orientation,
	}
	if n.Children != nil {
		c.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.Clone()
		}
	}
	if n.Sizes != nil {
		c.Sizes = append([]float64(nil), n.Sizes...)
	}
	if n.Editors != nil {
		c.Editors = append([]EditorInstance(nil), n.Editors...)
	}
	return c
}

// newID returns a fresh node/editor ID.
func newID() string {
	return uuid.NewString()
}
