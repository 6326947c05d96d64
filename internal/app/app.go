package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/atomicstack/tmux-popup-select/internal/backend"
	"github.com/atomicstack/tmux-popup-select/internal/logging/events"
	"github.com/atomicstack/tmux-popup-select/internal/option"
	"github.com/atomicstack/tmux-popup-select/internal/source"
	"github.com/atomicstack/tmux-popup-select/internal/tmux"
	"github.com/atomicstack/tmux-popup-select/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// ErrCancelled is returned by Run when the form was dismissed without
// submitting.
var ErrCancelled = errors.New("selection cancelled")

// DefaultPollInterval is how often tmux sources are re-listed while watching.
const DefaultPollInterval = 1500 * time.Millisecond

// FieldConfig describes one select field.
type FieldConfig struct {
	Name          string
	Title         string
	Source        string
	Options       []option.Option
	Values        []string
	Placeholder   string
	Multi         bool
	Grouped       bool
	Searchable    bool
	Clearable     bool
	Disabled      bool
	Autofocus     bool
	CloseOnSelect bool
	AppendToBody  bool
	Match         string
	LabelFormat   string
	TagFormat     string
}

// Config describes user-provided application options.
type Config struct {
	SocketPath   string
	Width        int
	Height       int
	ShowFooter   bool
	Print        string
	Watch        bool
	PollInterval time.Duration
	Fields       []FieldConfig
}

// Run bootstraps and executes the Bubble Tea program, then prints the
// committed selection to stdout.
func Run(cfg Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	socketPath := ""
	if usesTmux(cfg.Fields) {
		resolved, err := tmux.ResolveSocketPath(cfg.SocketPath)
		if err != nil {
			return fmt.Errorf("resolve socket path: %w", err)
		}
		socketPath = resolved
	}
	specs, targets, err := BuildFields(cfg, source.Options{Socket: socketPath, Stdin: os.Stdin})
	if err != nil {
		return err
	}

	var watcher *backend.Watcher
	if cfg.Watch && len(targets) > 0 {
		interval := cfg.PollInterval
		if interval <= 0 {
			interval = DefaultPollInterval
		}
		watcher, err = backend.NewWatcher(interval, targets...)
		if err != nil {
			return fmt.Errorf("watch sources: %w", err)
		}
		defer watcher.Stop()
	}

	model := ui.NewModel(specs, ui.Options{
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: cfg.ShowFooter,
		Watcher:    watcher,
		Context:    ctx,
	})
	program := tea.NewProgram(model, programOptions(cfg.Fields)...)
	final, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return ErrCancelled
	}
	if err != nil {
		return err
	}
	done, ok := final.(*ui.Model)
	if !ok {
		return fmt.Errorf("unexpected model type %T", final)
	}
	return finish(os.Stdout, cfg.Print, done.Outcome())
}

func finish(w io.Writer, mode string, out ui.Outcome) error {
	selected := 0
	for _, f := range out.Fields {
		selected += len(f.Selected)
	}
	events.App.Exit(!out.Submitted, selected)
	if !out.Submitted {
		return ErrCancelled
	}
	return Print(w, mode, out.Fields)
}

// programOptions renders the form on the terminal even when stdout or stdin
// carry data.
func programOptions(fields []FieldConfig) []tea.ProgramOption {
	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		opts = append(opts, tea.WithOutput(os.Stderr))
	}
	for _, f := range fields {
		if f.Source == "-" {
			opts = append(opts, tea.WithInputTTY())
			break
		}
	}
	return opts
}

func usesTmux(fields []FieldConfig) bool {
	for _, f := range fields {
		spec, err := source.ParseSpec(f.Source)
		if err != nil {
			continue
		}
		if spec.Kind == source.KindSessions || spec.Kind == source.KindWindows {
			return true
		}
	}
	return false
}
