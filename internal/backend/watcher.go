package backend

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/atomicstack/tmux-popup-select/internal/logging"
	"github.com/atomicstack/tmux-popup-select/internal/logging/events"
	"github.com/atomicstack/tmux-popup-select/internal/source"
	"github.com/fsnotify/fsnotify"
)

// Kind tells which mechanism produced an event.
type Kind int

const (
	KindFile Kind = iota
	KindPoll
	// KindLoad marks the first load of a field, issued by the UI.
	KindLoad
)

// fileDebounce coalesces the burst of events editors emit for one save.
const fileDebounce = 100 * time.Millisecond

// Event carries a reloaded option list, or the error of a failed reload, for
// one field.
type Event struct {
	Field string
	Kind  Kind
	Data  interface{}
	Err   error
}

// Target binds a field to the loader that refreshes it.
type Target struct {
	Field  string
	Loader source.Loader
}

// Watcher follows option sources and publishes reloads. File sources are
// watched with fsnotify; tmux sources are polled every interval.
type Watcher struct {
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup

	fs      *fsnotify.Watcher
	files   map[string][]Target
	mu      sync.Mutex
	pending map[string]bool
}

// NewWatcher starts following every target whose source can be watched.
// Targets with static or stdin sources are ignored.
func NewWatcher(interval time.Duration, targets ...Target) (*Watcher, error) {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
		files:    make(map[string][]Target),
		pending:  make(map[string]bool),
	}

	for _, t := range targets {
		if t.Loader == nil {
			continue
		}
		switch t.Loader.Spec().Watch() {
		case source.WatchFile:
			if err := w.addFile(t); err != nil {
				w.shutdown()
				return nil, err
			}
		case source.WatchPoll:
			w.startPoller(t)
		}
	}
	if w.fs != nil {
		w.wg.Add(1)
		go w.watchFiles()
	}

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w, nil
}

// Events returns the channel of reload events. It is closed once the
// watcher has stopped.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher.
func (w *Watcher) Stop() {
	w.shutdown()
}

// Wait blocks until every goroutine has exited and the events channel is
// closed.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) shutdown() {
	w.cancel()
	if w.fs != nil {
		if err := w.fs.Close(); err != nil {
			logging.Error(fmt.Errorf("close file watcher: %w", err))
		}
	}
}

// addFile watches the directory holding the target's file so replacements
// by rename are seen as well as in-place writes.
func (w *Watcher) addFile(t Target) error {
	path, err := filepath.Abs(t.Loader.Spec().Path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", t.Loader.Spec().Path, err)
	}
	if w.fs == nil {
		fs, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("create file watcher: %w", err)
		}
		w.fs = fs
	}
	if len(w.files[path]) == 0 {
		if err := w.fs.Add(filepath.Dir(path)); err != nil {
			return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
		}
	}
	w.files[path] = append(w.files[path], t)
	return nil
}

func (w *Watcher) watchFiles() {
	defer w.wg.Done()
	for {
		select {
		case <-w.ctx.Done():
			return
		case evt, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !evt.Has(fsnotify.Write) && !evt.Has(fsnotify.Create) && !evt.Has(fsnotify.Rename) {
				continue
			}
			path := filepath.Clean(evt.Name)
			targets, watched := w.files[path]
			if !watched {
				continue
			}
			w.schedule(path, targets)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			logging.Error(fmt.Errorf("file watcher: %w", err))
		}
	}
}

// schedule reloads targets once the event burst for path has settled.
func (w *Watcher) schedule(path string, targets []Target) {
	w.mu.Lock()
	if w.pending[path] {
		w.mu.Unlock()
		return
	}
	w.pending[path] = true
	w.mu.Unlock()

	w.wg.Add(1)
	time.AfterFunc(fileDebounce, func() {
		defer w.wg.Done()
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()
		for _, t := range targets {
			if !w.reload(KindFile, t) {
				return
			}
		}
	})
}

func (w *Watcher) startPoller(t Target) {
	throttle := newThrottle(250 * time.Millisecond)
	w.wg.Add(1)
	go w.poll(t, throttle)
}

// poll reloads t every interval. The initial load is the caller's job.
func (w *Watcher) poll(t Target, throttle *throttle) {
	defer w.wg.Done()
	if w.interval <= 0 {
		return
	}
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			throttle.wait()
			if !w.reload(KindPoll, t) {
				return
			}
		}
	}
}

func (w *Watcher) reload(kind Kind, t Target) bool {
	spec := t.Loader.Spec().String()
	events.Source.Reload(t.Field, spec)
	data, err := t.Loader.Load(w.ctx)
	if w.ctx.Err() != nil {
		return false
	}
	if err != nil {
		events.Source.Error(t.Field, spec, err)
	}
	evt := Event{Field: t.Field, Kind: kind, Data: data, Err: err}
	select {
	case <-w.ctx.Done():
		return false
	case w.events <- evt:
		return true
	}
}
