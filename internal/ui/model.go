package ui

import (
	"context"
	"reflect"

	"github.com/atomicstack/tmux-popup-select/internal/backend"
	"github.com/atomicstack/tmux-popup-select/internal/data/dispatcher"
	"github.com/atomicstack/tmux-popup-select/internal/option"
	"github.com/atomicstack/tmux-popup-select/internal/source"
	"github.com/atomicstack/tmux-popup-select/internal/theme"
	"github.com/atomicstack/tmux-popup-select/internal/ui/command"
	"github.com/atomicstack/tmux-popup-select/internal/ui/document"
	"github.com/atomicstack/tmux-popup-select/internal/ui/state"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// FieldSpec describes one select field of the form.
type FieldSpec struct {
	Name    string
	Title   string
	Config  state.Config
	Initial []option.Value
	Options []option.Option
	Loader  source.Loader
	Hooks   state.Hooks
}

// Options configures a Model.
type Options struct {
	Width      int
	Height     int
	ShowFooter bool
	Watcher    *backend.Watcher
	Context    context.Context
}

// FieldResult is the committed selection of one field. Labels holds the
// rendered label of each selected option.
type FieldResult struct {
	Name     string
	Multi    bool
	Selected []option.Option
	Labels   []string
}

// Outcome reports how the form ended.
type Outcome struct {
	Submitted bool
	Cancelled bool
	Fields    []FieldResult
}

type field struct {
	name        string
	title       string
	ctrl        *state.Control
	loader      source.Loader
	scope       string
	unsubscribe func()
	regions     []document.Rect
	valueCol    int
	originWarn  bool
}

// Model implements the Bubble Tea model for the select form.
type Model struct {
	fields      []*field
	active      int
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	errMsg      string
	animate     bool
	outcome     Outcome

	filterCursor      cursor.Model
	filterCursorDirty bool
	spinner           spinner.Model
	spinning          bool

	handlers map[reflect.Type]msgHandler

	backend    *backend.Watcher
	dispatcher *dispatcher.Dispatcher
	document   *document.Document
	bus        *command.Bus
	ctx        context.Context
}

// NewModel builds the form. Fields whose loader is not static start in the
// loading state; their options arrive once Init's commands complete.
func NewModel(specs []FieldSpec, opts Options) *Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	m := &Model{
		showFooter: opts.ShowFooter,
		animate:    true,
		backend:    opts.Watcher,
		dispatcher: dispatcher.New(),
		document:   document.New(),
		bus:        command.New(ctx),
		ctx:        ctx,
	}
	for _, spec := range specs {
		m.fields = append(m.fields, m.newField(spec))
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		c.TextStyle = styles.Filter.Copy()
	}
	c.SetChar(" ")
	m.filterCursor = c
	s := spinner.New()
	s.Spinner = spinner.Dot
	if styles.Spinner != nil {
		s.Style = styles.Spinner.Copy()
	}
	m.spinner = s
	m.registerHandlers()
	return m
}

func (m *Model) newField(spec FieldSpec) *field {
	store := option.NewStore(spec.Options)
	f := &field{
		name:   spec.Name,
		title:  spec.Title,
		loader: spec.Loader,
	}
	if spec.Loader != nil {
		if spec.Loader.Spec().Kind == source.KindStatic {
			if loaded, err := spec.Loader.Load(m.ctx); err == nil && loaded != nil {
				store.SetOptions(loaded)
			}
			f.loader = nil
		} else {
			store.SetLoading(true)
		}
	}
	f.ctrl = state.NewControl(spec.Name, spec.Config, store, spec.Initial, spec.Hooks)
	m.dispatcher.Register(spec.Name, f.ctrl)
	return f
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	for _, f := range m.fields {
		if f.loader == nil {
			continue
		}
		if cmd := m.bus.Load(command.Request{Field: f.name, Loader: f.loader}); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	if m.animate {
		if cmd := m.filterCursor.Focus(); cmd != nil {
			cmds = append(cmds, cmd)
		}
		if m.anyLoading() {
			m.spinning = true
			cmds = append(cmds, m.spinner.Tick)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateFilterCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

// Outcome returns the result of the form. It is complete once the program
// has quit.
func (m *Model) Outcome() Outcome {
	out := m.outcome
	out.Fields = make([]FieldResult, 0, len(m.fields))
	for _, f := range m.fields {
		cfg := f.ctrl.Config()
		selected := f.ctrl.SelectedOptions()
		labels := make([]string, len(selected))
		for i, opt := range selected {
			labels[i] = cfg.Label(opt)
		}
		out.Fields = append(out.Fields, FieldResult{
			Name:     f.name,
			Multi:    cfg.Multi,
			Selected: selected,
			Labels:   labels,
		})
	}
	return out
}

// Control exposes the controller of the named field.
func (m *Model) Control(name string) *state.Control {
	for _, f := range m.fields {
		if f.name == name {
			return f.ctrl
		}
	}
	return nil
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(spinner.TickMsg{}):   m.handleSpinnerTickMsg,
		reflect.TypeOf(command.LoadedMsg{}): m.handleLoadedMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	m.syncSubscriptions()
	if m.filterCursorDirty {
		m.filterCursorDirty = false
		if m.animate {
			m.filterCursor.Blink = false
			if cmd := m.filterCursor.BlinkCmd(); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}
	if m.animate && !m.spinning && m.anyLoading() {
		m.spinning = true
		cmds = append(cmds, m.spinner.Tick)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) anyLoading() bool {
	for _, f := range m.fields {
		if f.ctrl.Store().Loading() {
			return true
		}
	}
	return false
}

func (m *Model) handleSpinnerTickMsg(msg tea.Msg) tea.Cmd {
	if !m.anyLoading() {
		m.spinning = false
		return nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return cmd
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	for i, f := range m.fields {
		f.ctrl.SetPageSize(m.maxMenuRows(i))
	}
	return nil
}
