// Package registry resolves file paths into editor sources for the layout
// engine and tracks which paths are still open in any pane. The engine itself
// never touches the filesystem; every AddEditor call is fed from a Resolve
// done here first.
package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/fsnotify/fsnotify"
)

// Source is the resolved payload for a new editor instance: the file's
// content, detected language, and display title.
type Source struct {
	Path     string
	Title    string
	Language string
	Content  string
	Modified bool
}

type entry struct {
	source Source
	stale  bool
}

// Registry reads and caches file contents. Cached entries are invalidated by
// a filesystem watcher, so a file edited outside the shell is reread on the
// next Resolve instead of served stale. Safe for concurrent use.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*entry
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// New creates a Registry with a running filesystem watcher. Call Close when
// done.
func New() (*Registry, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("registry: start watcher: %w", err)
	}
	r := &Registry{
		entries: make(map[string]*entry),
		watcher: w,
		done:    make(chan struct{}),
	}
	go r.watch()
	return r, nil
}

// Resolve returns the source for path, reading the file on first use or after
// an outside edit and serving the cache otherwise. Unknown paths return an
// error; the layout engine is never handed an unresolved path.
func (r *Registry) Resolve(path string) (Source, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.entries[path]; ok && !e.stale {
		return e.source, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Source{}, fmt.Errorf("resolve %s: %w", path, err)
	}
	src := Source{
		Path:     path,
		Title:    filepath.Base(path),
		Language: DetectLanguage(path),
		Content:  string(data),
	}
	r.entries[path] = &entry{source: src}
	// Watch errors are non-fatal; the entry just never goes stale.
	_ = r.watcher.Add(path)
	return src, nil
}

// NotifyClosed evicts the cache entry for a path that no longer appears in
// any pane. Implements the Tracker's CloseNotifier.
func (r *Registry) NotifyClosed(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[path]; !ok {
		return
	}
	delete(r.entries, path)
	_ = r.watcher.Remove(path)
}

// Cached reports whether path currently has a cache entry. Intended for
// tests and diagnostics.
func (r *Registry) Cached(path string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.entries[path]
	return ok
}

// Close stops the watcher.
func (r *Registry) Close() error {
	close(r.done)
	return r.watcher.Close()
}

// watch marks cache entries stale when the file changes on disk.
func (r *Registry) watch() {
	for {
		select {
		case <-r.done:
			return
		case ev, ok := <-r.watcher.Events:
			if !ok {
				return
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) || ev.Has(fsnotify.Remove) {
				r.markStale(ev.Name)
			}
		case _, ok := <-r.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

func (r *Registry) markStale(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[path]; ok {
		e.stale = true
	}
}

// DetectLanguage returns the display name of the language chroma matches for
// the file name, or "" when no lexer claims it.
func DetectLanguage(path string) string {
	lexer := lexers.Match(filepath.Base(path))
	if lexer == nil {
		return ""
	}
	return lexer.Config().Name
}
