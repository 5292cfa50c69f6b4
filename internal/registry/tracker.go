package registry

import (
	"sort"
	"sync"
)

// CloseNotifier is told when a path no longer appears in any pane, so the
// owning collaborator can evict its content cache.
type CloseNotifier interface {
	NotifyClosed(path string)
}

// Tracker mirrors the set of file paths currently open anywhere in the
// layout. After every tree mutation the shell hands it the layout's path set;
// paths that vanished are reported to the CloseNotifier exactly once. Safe
// for concurrent use.
type Tracker struct {
	mu       sync.Mutex
	open     map[string]bool
	notifier CloseNotifier
}

// NewTracker creates a Tracker. A nil notifier is allowed; closes are then
// only reflected in the tracked set.
func NewTracker(notifier CloseNotifier) *Tracker {
	return &Tracker{
		open:     make(map[string]bool),
		notifier: notifier,
	}
}

// Sync replaces the tracked set with paths and returns, sorted, every path
// that was open before and is not anymore. Each closed path is also sent to
// the notifier.
func (t *Tracker) Sync(paths []string) []string {
	t.mu.Lock()
	next := make(map[string]bool, len(paths))
	for _, p := range paths {
		next[p] = true
	}
	var closed []string
	for p := range t.open {
		if !next[p] {
			closed = append(closed, p)
		}
	}
	t.open = next
	notifier := t.notifier
	t.mu.Unlock()

	sort.Strings(closed)
	if notifier != nil {
		for _, p := range closed {
			notifier.NotifyClosed(p)
		}
	}
	return closed
}

// Open returns the tracked paths, sorted.
func (t *Tracker) Open() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, 0, len(t.open))
	for p := range t.open {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// IsOpen reports whether a path is currently open in some pane.
func (t *Tracker) IsOpen(path string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.open[path]
}
