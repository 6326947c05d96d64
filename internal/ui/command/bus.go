package command

import (
	"context"
	"time"

	"github.com/atomicstack/tmux-popup-select/internal/logging"
	"github.com/atomicstack/tmux-popup-select/internal/logging/events"
	"github.com/atomicstack/tmux-popup-select/internal/option"
	"github.com/atomicstack/tmux-popup-select/internal/source"
	tea "github.com/charmbracelet/bubbletea"
)

// Request asks for the options of one field.
type Request struct {
	Field  string
	Loader source.Loader
}

// LoadedMsg delivers the outcome of a Request.
type LoadedMsg struct {
	Field    string
	Options  []option.Option
	Err      error
	Duration time.Duration
}

// Bus runs option loads off the UI goroutine.
type Bus struct {
	ctx context.Context
}

// New initialises a bus whose loads are cancelled with ctx.
func New(ctx context.Context) *Bus {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Bus{ctx: ctx}
}

// Load wraps the request into a Bubble Tea command.
func (b *Bus) Load(req Request) tea.Cmd {
	if req.Loader == nil {
		return nil
	}
	spec := req.Loader.Spec().String()
	return func() tea.Msg {
		start := time.Now()
		opts, err := req.Loader.Load(b.ctx)
		if err != nil {
			logging.Error(err)
			events.Source.Error(req.Field, spec, err)
		} else {
			events.Source.Load(req.Field, spec, len(opts))
		}
		return LoadedMsg{Field: req.Field, Options: opts, Err: err, Duration: time.Since(start)}
	}
}
