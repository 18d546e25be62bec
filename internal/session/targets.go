package session

import (
	"sort"
	"sync"

	"github.com/1broseidon/dragshell/internal/dnd"
)

// Targets maps drag keys back to the drop targets registered with the toolkit.
type Targets struct {
	mu    sync.RWMutex
	byKey map[dnd.DragKey]dnd.DropTarget
}

// NewTargets creates an empty registry.
func NewTargets() *Targets {
	return &Targets{byKey: make(map[dnd.DragKey]dnd.DropTarget)}
}

// Replace swaps the registered set. When several targets encode to the same
// key (a workspace listed on more than one output) the first one is kept.
// Nil entries are skipped. It returns the number of distinct keys.
func (t *Targets) Replace(targets []dnd.DropTarget) int {
	next := make(map[dnd.DragKey]dnd.DropTarget, len(targets))
	for _, target := range targets {
		if target == nil {
			continue
		}
		key := dnd.KeyOf(target)
		if _, ok := next[key]; ok {
			continue
		}
		next[key] = target
	}

	t.mu.Lock()
	t.byKey = next
	t.mu.Unlock()
	return len(next)
}

// Lookup returns the target registered for key.
func (t *Targets) Lookup(key dnd.DragKey) (dnd.DropTarget, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	target, ok := t.byKey[key]
	return target, ok
}

// Len returns the number of registered keys.
func (t *Targets) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.byKey)
}

// Entry pairs a target with its key.
type Entry struct {
	Key    dnd.DragKey
	Target dnd.DropTarget
}

// List returns the registered targets sorted by key.
func (t *Targets) List() []Entry {
	t.mu.RLock()
	entries := make([]Entry, 0, len(t.byKey))
	for key, target := range t.byKey {
		entries = append(entries, Entry{Key: key, Target: target})
	}
	t.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Key < entries[j].Key
	})
	return entries
}
