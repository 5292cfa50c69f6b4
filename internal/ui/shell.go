// Package ui renders the layout tree in the terminal and turns key and mouse
// input into layout operations. The Shell owns the single live LayoutState;
// every mutation goes through the engine and replaces it atomically, so the
// renderer never sees a half-applied tree.
package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"edshell/internal/config"
	"edshell/internal/coordinator"
	"edshell/internal/layout"
	"edshell/internal/registry"
	"edshell/internal/trace"
)

// Shell is the root bubbletea model.
type Shell struct {
	state   layout.State
	cfg     config.Config
	reg     *registry.Registry
	tracker *registry.Tracker
	tracer  *trace.Tracer
	keys    KeyMap

	width, height int
	geo           *Geometry

	drag      coordinator.Drag
	resizing  *Divider
	menu      *MenuModal
	prompt    textinput.Model
	prompting bool

	contents  map[string]string // path -> content for pane previews
	status    string
	statusErr bool
}

// Ensure Shell implements tea.Model.
var _ tea.Model = (*Shell)(nil)

// NewShell creates the shell around an initial layout. The registry may be
// nil in tests; opening files is then disabled but every tree operation still
// works.
func NewShell(cfg config.Config, reg *registry.Registry, tracer *trace.Tracer, initial layout.State) *Shell {
	prompt := textinput.New()
	prompt.Prompt = "open: "
	prompt.Placeholder = "path/to/file"

	var notifier registry.CloseNotifier
	if reg != nil {
		notifier = reg
	}
	m := &Shell{
		state:    initial,
		cfg:      cfg,
		reg:      reg,
		tracker:  registry.NewTracker(notifier),
		tracer:   tracer,
		keys:     DefaultKeyMap(),
		prompt:   prompt,
		contents: make(map[string]string),
	}
	m.tracker.Sync(layout.Paths(initial))
	// Restore previews for files coming back from a saved layout.
	if reg != nil {
		for _, p := range layout.Paths(initial) {
			if src, err := reg.Resolve(p); err == nil {
				m.contents[p] = previewOf(src.Content, cfg.PreviewLines)
			}
		}
	}
	return m
}

// previewOf caps cached file content at the configured number of lines. Panes
// render a read-only preview, so there is no reason to hold whole files.
func previewOf(content string, lines int) string {
	if lines <= 0 {
		return content
	}
	n := 0
	for i := range content {
		if content[i] == '\n' {
			n++
			if n == lines {
				return content[:i+1]
			}
		}
	}
	return content
}

// State returns the current layout, for tests and for saving on exit.
func (m *Shell) State() layout.State {
	return m.state
}

// Init implements tea.Model.
func (m *Shell) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Shell) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.geo = nil
		return m, nil
	case menuChosenMsg:
		m.menu = nil
		out, err := coordinator.Apply(m.state, msg.paneID, msg.action)
		m.apply("layout."+string(msg.action), out, err)
		return m, nil
	case menuDismissMsg:
		m.menu = nil
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	if m.prompting {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Shell) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.menu != nil {
		var cmd tea.Cmd
		m.menu, cmd = m.menu.Update(msg)
		return m, cmd
	}
	if m.prompting {
		switch msg.String() {
		case "esc":
			m.prompting = false
			m.prompt.Blur()
			return m, nil
		case "enter":
			path := m.prompt.Value()
			m.prompting = false
			m.prompt.Blur()
			m.openFile(path)
			return m, nil
		}
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.saveLayout()
		return m, tea.Quit
	case key.Matches(msg, m.keys.OpenFile):
		m.prompting = true
		m.prompt.SetValue("")
		return m, m.prompt.Focus()
	case key.Matches(msg, m.keys.SplitH):
		out, err := layout.Split(m.state, m.state.ActiveNodeID, layout.Horizontal)
		m.apply("layout.split", out, err)
	case key.Matches(msg, m.keys.SplitV):
		out, err := layout.Split(m.state, m.state.ActiveNodeID, layout.Vertical)
		m.apply("layout.split", out, err)
	case key.Matches(msg, m.keys.MergeNext):
		if next, ok := m.nextPane(1, false); ok {
			out, err := layout.Merge(m.state, m.state.ActiveNodeID, next)
			m.apply("layout.merge", out, err)
		} else {
			m.setStatus("nothing to merge: only one pane")
		}
	case key.Matches(msg, m.keys.CloseEditor):
		if m.state.ActiveEditorID == "" {
			m.setStatus("no editor to close")
			break
		}
		out, err := layout.RemoveEditor(m.state, m.state.ActiveNodeID, m.state.ActiveEditorID)
		m.apply("layout.remove_editor", out, err)
	case key.Matches(msg, m.keys.NextPane):
		m.focusNeighbor(1)
	case key.Matches(msg, m.keys.PrevPane):
		m.focusNeighbor(-1)
	case key.Matches(msg, m.keys.NextTab):
		m.cycleTab(1)
	case key.Matches(msg, m.keys.PrevTab):
		m.cycleTab(-1)
	case key.Matches(msg, m.keys.Grow):
		m.resizeActive(5)
	case key.Matches(msg, m.keys.Shrink):
		m.resizeActive(-5)
	}
	return m, nil
}

func (m *Shell) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.menu != nil {
		// Any click outside the menu dismisses it.
		if msg.Action == tea.MouseActionPress {
			m.menu = nil
		}
		return m, nil
	}
	geo := m.geometry()

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			if d, ok := geo.DividerAt(msg.X, msg.Y); ok {
				m.resizing = &d
				return m, nil
			}
			m.pressPane(geo, msg.X, msg.Y)
		case tea.MouseButtonRight:
			if paneID, ok := geo.PaneAt(msg.X, msg.Y); ok {
				m.menu = NewMenuModal(paneID)
			}
		}
	case tea.MouseActionMotion:
		if m.resizing != nil {
			m.dragResize(msg.X, msg.Y)
			return m, nil
		}
		if m.drag.Active() {
			if paneID, ok := geo.PaneAt(msg.X, msg.Y); ok {
				m.drag.Hover(paneID)
			}
		}
	case tea.MouseActionRelease:
		if m.resizing != nil {
			m.resizing = nil
			return m, nil
		}
		if m.drag.Active() {
			hovered, ok := m.drag.Hovered()
			if ok && hovered != m.drag.Origin() {
				out, err := m.drag.Drop(m.state, coordinator.DropMode(m.cfg.DropMode))
				m.apply("layout.drop", out, err)
			} else {
				// Press and release on the same pane is a click, already
				// handled as focus at press time.
				m.drag.Cancel()
			}
		}
	}
	return m, nil
}

// pressPane focuses whatever sits under a left click: an editor tab starts a
// drag as well, a pane body just takes focus.
func (m *Shell) pressPane(geo *Geometry, x, y int) {
	paneID, ok := geo.PaneAt(x, y)
	if !ok {
		return
	}
	leaf := layout.FindNode(m.state.Root, paneID)
	if leaf == nil {
		return
	}
	if edID, ok := tabAt(leaf, geo.Panes[paneID], x, y); ok {
		out, err := layout.FocusEditor(m.state, paneID, edID)
		m.apply("layout.focus_editor", out, err)
		for _, ed := range leaf.Editors {
			if ed.ID == edID {
				m.drag.Begin(paneID, edID, layout.Source{
					Path:     ed.Path,
					Title:    ed.Title,
					Language: ed.Language,
					Modified: ed.Modified,
				})
				break
			}
		}
		return
	}
	// Focusing an empty pane is rejected while editors exist elsewhere;
	// absorb that quietly, a click on a drop target is not an error.
	if out, err := layout.FocusPane(m.state, paneID); err == nil {
		m.apply("layout.focus_pane", out, nil)
	}
}

// focusNeighbor cycles focus across panes that can take it.
func (m *Shell) focusNeighbor(delta int) {
	next, ok := m.nextPane(delta, true)
	if !ok {
		return
	}
	out, err := layout.FocusPane(m.state, next)
	m.apply("layout.focus_pane", out, err)
}

// nextPane returns the pane delta steps from the active one in depth-first
// order. With focusable set, panes that cannot take focus (empty ones while
// editors exist elsewhere) are skipped.
func (m *Shell) nextPane(delta int, focusable bool) (string, bool) {
	leaves := layout.Leaves(m.state.Root)
	if len(leaves) < 2 {
		return "", false
	}
	cur := 0
	for i, l := range leaves {
		if l.ID == m.state.ActiveNodeID {
			cur = i
			break
		}
	}
	hasEditors := layout.CountEditors(m.state) > 0
	for step := 1; step < len(leaves); step++ {
		idx := ((cur+delta*step)%len(leaves) + len(leaves)) % len(leaves)
		leaf := leaves[idx]
		if leaf.ID == m.state.ActiveNodeID {
			continue
		}
		if focusable && hasEditors && len(leaf.Editors) == 0 {
			continue
		}
		return leaf.ID, true
	}
	return "", false
}

// cycleTab moves the active editor within the active pane.
func (m *Shell) cycleTab(delta int) {
	leaf := layout.ActiveLeaf(m.state)
	if leaf == nil || len(leaf.Editors) < 2 {
		return
	}
	cur := 0
	for i, ed := range leaf.Editors {
		if ed.ID == m.state.ActiveEditorID {
			cur = i
			break
		}
	}
	next := (cur + delta + len(leaf.Editors)) % len(leaf.Editors)
	out, err := layout.FocusEditor(m.state, leaf.ID, leaf.Editors[next].ID)
	m.apply("layout.focus_editor", out, err)
}

// resizeActive grows or shrinks the active pane inside its parent split by
// taking share from (or giving it to) the adjacent sibling.
func (m *Shell) resizeActive(delta float64) {
	parent := layout.ParentOf(m.state.Root, m.state.ActiveNodeID)
	if parent == nil {
		m.setStatus("nothing to resize: single pane")
		return
	}
	idx := -1
	for i, child := range parent.Children {
		if child.ID == m.state.ActiveNodeID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	neighbor := idx + 1
	if neighbor >= len(parent.Children) {
		neighbor = idx - 1
	}
	sizes := append([]float64(nil), parent.Sizes...)
	sizes[idx] += delta
	sizes[neighbor] -= delta
	out, err := layout.Resize(m.state, parent.ID, sizes)
	m.apply("layout.resize", out, err)
}

// dragResize follows the pointer while a divider is held.
func (m *Shell) dragResize(x, y int) {
	d := *m.resizing
	split := layout.FindNode(m.state.Root, d.SplitID)
	if split == nil {
		m.resizing = nil
		return
	}
	geo := m.geometry()
	rect, ok := geo.splitRect(m.state.Root, d.SplitID)
	if !ok {
		return
	}
	sizes, ok := dividerSizes(split, rect, d, x, y)
	if !ok {
		return
	}
	out, err := layout.Resize(m.state, d.SplitID, sizes)
	if err == nil {
		m.apply("layout.resize", out, nil)
	}
}

// openFile resolves a path through the registry and opens it in the active
// pane.
func (m *Shell) openFile(path string) {
	if path == "" {
		return
	}
	if m.reg == nil {
		m.setStatus("no file registry available")
		return
	}
	src, err := m.reg.Resolve(path)
	if err != nil {
		m.setError(err)
		return
	}
	m.contents[src.Path] = previewOf(src.Content, m.cfg.PreviewLines)
	out, err := layout.AddEditor(m.state, m.state.ActiveNodeID, layout.Source{
		Path:     src.Path,
		Title:    src.Title,
		Language: src.Language,
		Modified: src.Modified,
	})
	m.apply("layout.add_editor", out, err)
}

// apply commits the state an operation produced, records a span for it, and
// reflects rejected requests on the status line. The tracker diff fires the
// registry's close notifications for paths that left the tree.
func (m *Shell) apply(op string, out layout.State, err error) {
	m.tracer.RecordOp(context.Background(), op, layout.CountPanes(out), layout.CountEditors(out), err)
	if err != nil {
		m.setError(err)
		return
	}
	m.state = out
	m.geo = nil
	m.status, m.statusErr = "", false
	for _, closed := range m.tracker.Sync(layout.Paths(out)) {
		delete(m.contents, closed)
	}
}

// saveLayout autosaves the layout on quit when configured.
func (m *Shell) saveLayout() {
	if m.cfg.LayoutPath == "" {
		return
	}
	data, err := layout.Encode(m.state)
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(m.cfg.LayoutPath), 0o755); err != nil {
		return
	}
	_ = os.WriteFile(m.cfg.LayoutPath, data, 0o644)
}

func (m *Shell) setStatus(s string) {
	m.status, m.statusErr = s, false
}

func (m *Shell) setError(err error) {
	m.status, m.statusErr = err.Error(), true
}

// geometry returns the pane geometry for the current tree and window,
// computing it lazily after mutations.
func (m *Shell) geometry() *Geometry {
	if m.geo == nil {
		m.geo = ComputeGeometry(m.state.Root, m.treeRect())
	}
	return m.geo
}

// treeRect is the window minus the status line.
func (m *Shell) treeRect() Rect {
	return Rect{X: 0, Y: 0, W: max(m.width, 1), H: max(m.height-1, 1)}
}

// View implements tea.Model.
func (m *Shell) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	geo := m.geometry()
	body := m.renderNode(m.state.Root, geo)
	if m.menu != nil {
		r := m.treeRect()
		body = lipgloss.Place(r.W, r.H, lipgloss.Center, lipgloss.Center, m.menu.View())
	}
	return body + "\n" + m.statusLine()
}

func (m *Shell) renderNode(n *layout.Node, geo *Geometry) string {
	if n.IsLeaf() {
		r := geo.Panes[n.ID]
		active := n.ID == m.state.ActiveNodeID
		content := ""
		if ed, ok := visibleEditor(n, active, m.state.ActiveEditorID); ok {
			content = m.contents[ed.Path]
		}
		return renderPane(n, r, active, m.state.ActiveEditorID, content)
	}
	parts := make([]string, len(n.Children))
	for i, child := range n.Children {
		parts[i] = m.renderNode(child, geo)
	}
	if n.Orientation == layout.Horizontal {
		return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Shell) statusLine() string {
	if m.prompting {
		return Styles.Prompt.Render(m.prompt.View())
	}
	counts := fmt.Sprintf("%d panes  %d editors", layout.CountPanes(m.state), layout.CountEditors(m.state))
	if m.status != "" {
		style := Styles.StatusBar
		if m.statusErr {
			style = Styles.StatusError
		}
		return style.Render(m.status + "  |  " + counts)
	}
	return Styles.StatusBar.Render(counts + "  |  " + m.keys.helpLine())
}
