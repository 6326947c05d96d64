// Package document keeps the screen-wide listeners a mounted field registers
// while its menu can be dismissed from outside. Every field owns its own
// scope, so several fields on one screen never share listener state.
package document

import (
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Rect is a screen region in terminal cells. Width and Height are exclusive.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Empty reports whether r covers no cells.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Click is a mouse press at a screen cell.
type Click struct {
	X, Y int
}

// ClickHandler receives clicks. inside tells whether the click landed within
// the bounds the listener was registered with.
type ClickHandler func(c Click, inside bool)

// KeyHandler receives key names. Returning true stops propagation to the
// remaining listeners.
type KeyHandler func(key string) bool

// Listener is one scope's registration. Bounds may return several regions
// when a scope's content is not contiguous on screen.
type Listener struct {
	Bounds func() []Rect
	Click  ClickHandler
	Key    KeyHandler
}

type entry struct {
	id    string
	order int
	l     Listener
}

// Document is the registry of active listeners.
type Document struct {
	mu      sync.Mutex
	entries map[string]entry
	seq     int
}

// New returns an empty registry.
func New() *Document {
	return &Document{entries: make(map[string]entry)}
}

// Subscribe registers l under a fresh scope and returns its id and an
// unsubscribe function. Unsubscribing twice is a no-op.
func (d *Document) Subscribe(l Listener) (string, func()) {
	id := uuid.NewString()
	d.mu.Lock()
	d.seq++
	d.entries[id] = entry{id: id, order: d.seq, l: l}
	d.mu.Unlock()

	var once sync.Once
	return id, func() {
		once.Do(func() {
			d.mu.Lock()
			delete(d.entries, id)
			d.mu.Unlock()
		})
	}
}

// Active reports whether the scope id is still registered.
func (d *Document) Active(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.entries[id]
	return ok
}

// Len returns the number of registered scopes.
func (d *Document) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.entries)
}

// DispatchClick delivers c to every listener, in subscription order, and
// returns how many of them saw the click outside their bounds.
func (d *Document) DispatchClick(c Click) int {
	outside := 0
	for _, e := range d.snapshot() {
		inside := false
		if e.l.Bounds != nil {
			inside = containsAny(e.l.Bounds(), c)
		}
		if !inside {
			outside++
		}
		if e.l.Click != nil {
			e.l.Click(c, inside)
		}
	}
	return outside
}

// DispatchKey delivers key to listeners until one consumes it.
func (d *Document) DispatchKey(key string) bool {
	for _, e := range d.snapshot() {
		if e.l.Key != nil && e.l.Key(key) {
			return true
		}
	}
	return false
}

// snapshot copies the listeners so handlers may unsubscribe while being
// dispatched.
func (d *Document) snapshot() []entry {
	d.mu.Lock()
	out := make([]entry, 0, len(d.entries))
	for _, e := range d.entries {
		out = append(out, e)
	}
	d.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].order < out[j].order })
	return out
}

func containsAny(rects []Rect, c Click) bool {
	for _, r := range rects {
		if r.Contains(c.X, c.Y) {
			return true
		}
	}
	return false
}
