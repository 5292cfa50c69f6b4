package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"edshell/internal/coordinator"
)

// menuChosenMsg is sent when the user picks a context-menu action.
type menuChosenMsg struct {
	paneID string
	action coordinator.Action
}

// menuDismissMsg closes the menu without acting.
type menuDismissMsg struct{}

// MenuModal is the right-click context menu for a pane. Up/down or j/k move,
// enter picks, esc dismisses.
type MenuModal struct {
	PaneID   string
	actions  []coordinator.Action
	selected int
}

// NewMenuModal creates the menu for a pane.
func NewMenuModal(paneID string) *MenuModal {
	return &MenuModal{
		PaneID:  paneID,
		actions: coordinator.Actions(),
	}
}

// Update handles menu navigation.
func (m *MenuModal) Update(msg tea.Msg) (*MenuModal, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "esc":
		return m, func() tea.Msg { return menuDismissMsg{} }
	case "up", "k":
		m.selected--
		if m.selected < 0 {
			m.selected = len(m.actions) - 1
		}
	case "down", "j":
		m.selected = (m.selected + 1) % len(m.actions)
	case "enter":
		action := m.actions[m.selected]
		paneID := m.PaneID
		return m, func() tea.Msg { return menuChosenMsg{paneID: paneID, action: action} }
	}
	return m, nil
}

// View renders the menu box.
func (m *MenuModal) View() string {
	var b strings.Builder
	for i, a := range m.actions {
		if i > 0 {
			b.WriteString("\n")
		}
		label := coordinator.Label(a)
		if i == m.selected {
			b.WriteString(Styles.MenuSelected.Render("> " + label))
		} else {
			b.WriteString(Styles.MenuItem.Render("  " + label))
		}
	}
	return Styles.MenuBox.Render(b.String())
}
