package dispatcher

import (
	"fmt"

	"github.com/atomicstack/tmux-popup-select/internal/backend"
	"github.com/atomicstack/tmux-popup-select/internal/logging"
	"github.com/atomicstack/tmux-popup-select/internal/logging/events"
	"github.com/atomicstack/tmux-popup-select/internal/option"
)

// Target is the part of a field the dispatcher writes to.
type Target interface {
	SetOptions([]option.Option)
	SetLoading(bool)
}

// Result reports what an event changed.
type Result struct {
	Field   string
	Updated bool
	Count   int
	Err     error
}

// Dispatcher routes backend events to the field they belong to.
type Dispatcher struct {
	targets map[string]Target
}

func New() *Dispatcher {
	return &Dispatcher{targets: make(map[string]Target)}
}

// Register binds field to target, replacing any previous binding.
func (d *Dispatcher) Register(field string, target Target) {
	d.targets[field] = target
}

// Unregister drops the binding for field.
func (d *Dispatcher) Unregister(field string) {
	delete(d.targets, field)
}

// Handle applies evt. Failed reloads keep the previous options.
func (d *Dispatcher) Handle(evt backend.Event) Result {
	res := Result{Field: evt.Field}
	target, ok := d.targets[evt.Field]
	if !ok {
		return res
	}
	target.SetLoading(false)
	if evt.Err != nil {
		res.Err = evt.Err
		logging.Error(fmt.Errorf("reload %s: %w", evt.Field, evt.Err))
		return res
	}
	opts, ok := evt.Data.([]option.Option)
	if !ok {
		return res
	}
	target.SetOptions(opts)
	events.Source.Load(evt.Field, kindName(evt.Kind), len(opts))
	res.Updated = true
	res.Count = len(opts)
	return res
}

func kindName(k backend.Kind) string {
	switch k {
	case backend.KindFile:
		return "file"
	case backend.KindLoad:
		return "load"
	default:
		return "poll"
	}
}
