package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the shell's key bindings. Help text is assembled from the
// bindings so the status line never drifts from the actual keys.
type KeyMap struct {
	OpenFile    key.Binding
	SplitH      key.Binding
	SplitV      key.Binding
	MergeNext   key.Binding
	CloseEditor key.Binding
	NextPane    key.Binding
	PrevPane    key.Binding
	NextTab     key.Binding
	PrevTab     key.Binding
	Grow        key.Binding
	Shrink      key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		OpenFile:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open file")),
		SplitH:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "split horizontal")),
		SplitV:      key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "split vertical")),
		MergeNext:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "merge next pane")),
		CloseEditor: key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "close editor")),
		NextPane:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next pane")),
		PrevPane:    key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev pane")),
		NextTab:     key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next tab")),
		PrevTab:     key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev tab")),
		Grow:        key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "grow pane")),
		Shrink:      key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "shrink pane")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// helpLine renders a one-line hint for the status bar.
func (k KeyMap) helpLine() string {
	bindings := []key.Binding{
		k.OpenFile, k.SplitH, k.SplitV, k.MergeNext, k.CloseEditor,
		k.NextPane, k.NextTab, k.Grow, k.Quit,
	}
	out := ""
	for i, b := range bindings {
		if i > 0 {
			out += "  "
		}
		out += b.Help().Key + ":" + b.Help().Desc
	}
	return out
}
