package ui

import "github.com/charmbracelet/lipgloss"

// Theme colors used throughout the shell
const (
	ColorAccent    = "86"  // Cyan/green - active pane border, titles
	ColorHighlight = "205" // Magenta - active tab
	ColorMuted     = "241" // Gray - inactive borders, hints
	ColorText      = "252" // Light gray - normal text
	ColorDanger    = "196" // Red - rejected operations on the status line
	ColorWarning   = "208" // Orange - modified-file marker
)

// Styles contains shared style definitions used across the shell and menus.
var Styles = struct {
	PaneActive   lipgloss.Style // border of the focused pane
	PaneInactive lipgloss.Style // border of every other pane
	TabActive    lipgloss.Style // the focused editor's tab
	Tab          lipgloss.Style // other tabs
	Modified     lipgloss.Style // unsaved-change marker inside a tab
	Content      lipgloss.Style // editor preview text
	Empty        lipgloss.Style // empty-pane drop hint
	StatusBar    lipgloss.Style // bottom line
	StatusError  lipgloss.Style // rejected request on the bottom line
	MenuBox      lipgloss.Style // context menu frame
	MenuItem     lipgloss.Style // context menu entry
	MenuSelected lipgloss.Style // highlighted context menu entry
	Prompt       lipgloss.Style // open-file prompt line
}{
	PaneActive: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccent)),
	PaneInactive: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorMuted)),
	TabActive: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorHighlight)),
	Tab: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Modified: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorWarning)),
	Content: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)),
	Empty: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)).
		Italic(true),
	StatusBar: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	StatusError: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorDanger)),
	MenuBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Padding(0, 1),
	MenuItem: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)),
	MenuSelected: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorHighlight)),
	Prompt: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccent)),
}
