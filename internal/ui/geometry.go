package ui

import (
	"math"

	"edshell/internal/layout"
)

// Rect is a screen region in terminal cells.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) lies inside the rect.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Divider is the draggable boundary between two adjacent children of a split:
// the border cells between child Index and child Index+1.
type Divider struct {
	SplitID string
	Index   int
	Rect    Rect
}

// Geometry maps the layout tree onto a terminal rect: one rect per pane, in
// depth-first order, plus the divider hit areas used for mouse resizing.
// Rebuilt whenever the tree or the window changes.
type Geometry struct {
	Panes    map[string]Rect
	Order    []string
	Dividers []Divider
}

// ComputeGeometry carves rect among the tree's panes according to each
// split's size percentages. Cell counts are rounded cumulatively so the
// children of a split always tile its region exactly.
func ComputeGeometry(root *layout.Node, rect Rect) *Geometry {
	g := &Geometry{Panes: make(map[string]Rect)}
	g.place(root, rect)
	return g
}

func (g *Geometry) place(n *layout.Node, r Rect) {
	if n.IsLeaf() {
		g.Panes[n.ID] = r
		g.Order = append(g.Order, n.ID)
		return
	}

	total := r.W
	if n.Orientation == layout.Vertical {
		total = r.H
	}
	start, cum := 0, 0.0
	for i, child := range n.Children {
		cum += n.Sizes[i]
		end := total
		if i < len(n.Children)-1 {
			end = int(math.Round(cum * float64(total) / 100))
		}
		span := end - start

		var childRect Rect
		if n.Orientation == layout.Horizontal {
			childRect = Rect{X: r.X + start, Y: r.Y, W: span, H: r.H}
		} else {
			childRect = Rect{X: r.X, Y: r.Y + start, W: r.W, H: span}
		}
		g.place(child, childRect)

		// The boundary between this child and the next is draggable: the two
		// adjacent border columns (or rows) of the neighboring panes.
		if i < len(n.Children)-1 {
			var hit Rect
			if n.Orientation == layout.Horizontal {
				hit = Rect{X: r.X + end - 1, Y: r.Y, W: 2, H: r.H}
			} else {
				hit = Rect{X: r.X, Y: r.Y + end - 1, W: r.W, H: 2}
			}
			g.Dividers = append(g.Dividers, Divider{SplitID: n.ID, Index: i, Rect: hit})
		}
		start = end
	}
}

// PaneAt returns the pane under the cell (x, y).
func (g *Geometry) PaneAt(x, y int) (string, bool) {
	for _, id := range g.Order {
		if g.Panes[id].Contains(x, y) {
			return id, true
		}
	}
	return "", false
}

// DividerAt returns the divider under the cell (x, y). Dividers win over
// panes, so callers must check this first.
func (g *Geometry) DividerAt(x, y int) (Divider, bool) {
	for _, d := range g.Dividers {
		if d.Rect.Contains(x, y) {
			return d, true
		}
	}
	return Divider{}, false
}

// dividerSizes translates a pointer position on a divider into new size
// percentages for the split: the boundary between the two adjacent children
// moves to the pointer, every other child keeps its share. Returns false when
// the pointer leaves the split's region.
func dividerSizes(split *layout.Node, splitRect Rect, d Divider, x, y int) ([]float64, bool) {
	pos, origin, total := x, splitRect.X, splitRect.W
	if split.Orientation == layout.Vertical {
		pos, origin, total = y, splitRect.Y, splitRect.H
	}
	if total <= 0 || pos < origin || pos >= origin+total {
		return nil, false
	}

	cumBefore := 0.0
	for i := 0; i < d.Index; i++ {
		cumBefore += split.Sizes[i]
	}
	pair := split.Sizes[d.Index] + split.Sizes[d.Index+1]

	boundary := float64(pos-origin) / float64(total) * 100
	left := boundary - cumBefore
	// Clamp so both children keep the minimum share.
	if left < layout.MinSize {
		left = layout.MinSize
	}
	if left > pair-layout.MinSize {
		left = pair - layout.MinSize
	}
	if left < layout.MinSize {
		return nil, false // pair too small to hold two children
	}

	sizes := append([]float64(nil), split.Sizes...)
	sizes[d.Index] = left
	sizes[d.Index+1] = pair - left
	return sizes, true
}

// splitRect returns the region a split occupies: the union of its panes.
func (g *Geometry) splitRect(root *layout.Node, splitID string) (Rect, bool) {
	node := layout.FindNode(root, splitID)
	if node == nil || !node.IsSplit() {
		return Rect{}, false
	}
	leaves := layout.Leaves(node)
	if len(leaves) == 0 {
		return Rect{}, false
	}
	r, ok := g.Panes[leaves[0].ID]
	if !ok {
		return Rect{}, false
	}
	minX, minY, maxX, maxY := r.X, r.Y, r.X+r.W, r.Y+r.H
	for _, leaf := range leaves[1:] {
		lr, ok := g.Panes[leaf.ID]
		if !ok {
			return Rect{}, false
		}
		if lr.X < minX {
			minX = lr.X
		}
		if lr.Y < minY {
			minY = lr.Y
		}
		if lr.X+lr.W > maxX {
			maxX = lr.X + lr.W
		}
		if lr.Y+lr.H > maxY {
			maxY = lr.Y + lr.H
		}
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}, true
}
