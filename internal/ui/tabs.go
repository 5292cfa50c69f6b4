package ui

import (
	"strings"

	"edshell/internal/layout"
)

// modifiedMarker flags unsaved changes on a tab.
const modifiedMarker = "*"

// tabLabel is the visible text of one editor tab.
func tabLabel(ed layout.EditorInstance) string {
	if ed.Modified {
		return ed.Title + " " + modifiedMarker
	}
	return ed.Title
}

// visibleEditor returns the editor a pane shows: the active editor on the
// focused pane, the first one elsewhere.
func visibleEditor(leaf *layout.Node, active bool, activeEditorID string) (layout.EditorInstance, bool) {
	if len(leaf.Editors) == 0 {
		return layout.EditorInstance{}, false
	}
	if active {
		for _, ed := range leaf.Editors {
			if ed.ID == activeEditorID {
				return ed, true
			}
		}
	}
	return leaf.Editors[0], true
}

// tabAt maps a cell to the editor tab under it. Tabs live on the first inner
// row of the pane, laid out exactly as renderTabs draws them.
func tabAt(leaf *layout.Node, r Rect, x, y int) (string, bool) {
	if y != r.Y+1 || x < r.X+1 || x >= r.X+r.W-1 {
		return "", false
	}
	col := r.X + 1
	for _, ed := range leaf.Editors {
		w := len([]rune(tabLabel(ed)))
		if x >= col && x < col+w {
			return ed.ID, true
		}
		col += w + 1 // one space between tabs
	}
	return "", false
}

// renderTabs draws the pane's tab bar, highlighting the visible editor.
func renderTabs(leaf *layout.Node, visibleID string, width int) string {
	parts := make([]string, 0, len(leaf.Editors))
	used := 0
	for _, ed := range leaf.Editors {
		label := tabLabel(ed)
		used += len([]rune(label)) + 1
		style := Styles.Tab
		if ed.ID == visibleID {
			style = Styles.TabActive
		}
		if ed.Modified {
			// Keep the marker warning-colored inside either tab style.
			base := strings.TrimSuffix(label, " "+modifiedMarker)
			parts = append(parts, style.Render(base)+" "+Styles.Modified.Render(modifiedMarker))
			continue
		}
		parts = append(parts, style.Render(label))
	}
	bar := strings.Join(parts, " ")
	if used-1 > width {
		// The bar is clipped by the pane frame; nothing smarter needed here.
		return bar
	}
	return bar
}

// renderPane draws one pane into its rect: tab bar, then a preview of the
// visible editor's content. The border highlights the focused pane.
func renderPane(leaf *layout.Node, r Rect, active bool, activeEditorID, content string) string {
	frame := Styles.PaneInactive
	if active {
		frame = Styles.PaneActive
	}
	innerW, innerH := r.W-2, r.H-2
	if innerW < 1 || innerH < 1 {
		return frame.Width(max(innerW, 0)).Height(max(innerH, 0)).Render("")
	}

	var lines []string
	if ed, ok := visibleEditor(leaf, active, activeEditorID); ok {
		lines = append(lines, renderTabs(leaf, ed.ID, innerW))
		if ed.Language != "" && innerH > 1 {
			lines = append(lines, Styles.StatusBar.Render(ed.Language))
		}
		for _, l := range strings.Split(content, "\n") {
			if len(lines) >= innerH {
				break
			}
			lines = append(lines, Styles.Content.Render(clip(l, innerW)))
		}
	} else {
		lines = append(lines, Styles.Empty.Render("no editors - drop a file here"))
	}
	if len(lines) > innerH {
		lines = lines[:innerH]
	}
	body := strings.Join(lines, "\n")
	return frame.Width(innerW).Height(innerH).MaxWidth(r.W).MaxHeight(r.H).Render(body)
}

// clip truncates a line to the given cell width.
func clip(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width])
}
