package state

import (
	"github.com/atomicstack/tmux-popup-select/internal/logging/events"
	"github.com/atomicstack/tmux-popup-select/internal/option"
)

// Config carries the host-controlled options of one field.
type Config struct {
	Placeholder    string
	Clearable      bool
	Disabled       bool
	Grouped        bool
	Searchable     bool
	Multi          bool
	AutofocusFirst bool
	CloseOnSelect  bool
	Match          MatchFunc
	Label          LabelFunc
	TagLabel       LabelFunc
	AppendToBody   bool
}

// DefaultConfig returns the stock field configuration.
func DefaultConfig() Config {
	return Config{
		Clearable:     true,
		Searchable:    true,
		CloseOnSelect: true,
	}
}

// Hooks are the notifications a Control sends to its host. A nil payload for
// OptionDeselected means every value was cleared at once.
type Hooks struct {
	OptionSelected   func(option.Option)
	OptionDeselected func(*option.Option)
	Search           func(string)
}

// Control is the selection/interaction controller of one select field. All
// methods run synchronously on the caller's goroutine.
type Control struct {
	id           string
	cfg          Config
	store        option.Store
	selection    Selection
	menu         Menu
	hooks        Hooks
	focus        int
	focusValue   option.Value
	inputFocused bool
	pageSize     int
	visible      Visible
	revision     int
	viewport     Viewport
}

// NewControl wires a controller over store with the initial committed values.
func NewControl(id string, cfg Config, store option.Store, initial []option.Value, hooks Hooks) *Control {
	if store == nil {
		store = option.NewStore(nil)
	}
	if cfg.Match == nil {
		cfg.Match = SubstringMatch
	}
	if cfg.Label == nil {
		cfg.Label = DefaultLabel
	}
	if cfg.TagLabel == nil {
		cfg.TagLabel = cfg.Label
	}
	c := &Control{
		id:        id,
		cfg:       cfg,
		store:     store,
		selection: NewSelection(cfg.Multi, initial),
		hooks:     hooks,
		focus:     NoFocus,
	}
	c.refresh()
	return c
}

// ID returns the field identifier.
func (c *Control) ID() string {
	return c.id
}

// Config returns the field configuration.
func (c *Control) Config() Config {
	return c.cfg
}

// Store exposes the option store backing the field.
func (c *Control) Store() option.Store {
	return c.store
}

// Selection returns the committed selection.
func (c *Control) Selection() Selection {
	return c.selection
}

// Menu returns a copy of the menu state.
func (c *Control) Menu() Menu {
	return c.menu
}

// IsOpen reports whether the menu is open.
func (c *Control) IsOpen() bool {
	return c.menu.IsOpen()
}

// InputFocused reports whether the search input holds input focus.
func (c *Control) InputFocused() bool {
	return c.inputFocused
}

// FocusedIndex returns the keyboard-highlighted flat index or NoFocus.
func (c *Control) FocusedIndex() int {
	c.sync()
	return c.focus
}

// FocusedOption returns the highlighted option.
func (c *Control) FocusedOption() (option.Option, bool) {
	c.sync()
	return c.visible.At(c.focus)
}

// Visible returns the current visible option set.
func (c *Control) Visible() Visible {
	c.sync()
	return c.visible
}

// Viewport exposes the scroll state of the rendered option list.
func (c *Control) Viewport() *Viewport {
	return &c.viewport
}

// SetPageSize sets how many options PgUp/PgDn move across.
func (c *Control) SetPageSize(n int) {
	c.pageSize = n
}

// SelectedOptions resolves the committed values against the store. Values the
// store does not know are reported with their value as label.
func (c *Control) SelectedOptions() []option.Option {
	values := c.selection.Values()
	out := make([]option.Option, 0, len(values))
	for _, v := range values {
		if opt, ok := c.store.Lookup(v); ok {
			out = append(out, opt)
			continue
		}
		out = append(out, option.Option{Value: v, Label: string(v)})
	}
	return out
}

// Open transitions the menu to open. focusInput also moves input focus to the
// search field.
func (c *Control) Open(focusInput bool) bool {
	if c.cfg.Disabled {
		return false
	}
	if focusInput {
		c.inputFocused = true
	}
	if !c.menu.setOpen(true) {
		return false
	}
	events.Menu.Open(c.id)
	c.refresh()
	if c.cfg.AutofocusFirst {
		c.setFocus(c.autofocusIndex())
	}
	return true
}

// autofocusIndex locates the store's first enabled option in the visible set,
// falling back to the first enabled visible option when it is hidden.
func (c *Control) autofocusIndex() int {
	all := c.store.Options()
	if first := FirstEnabled(all); first != NoFocus {
		if idx := c.visible.IndexOf(all[first].Value); idx >= 0 && !c.visible.Flat[idx].Disabled {
			return idx
		}
	}
	return FirstEnabled(c.visible.Flat)
}

// Close transitions the menu to closed, clears the search text and drops
// keyboard focus.
func (c *Control) Close() bool {
	closed := c.menu.setOpen(false)
	if closed {
		events.Menu.Close(c.id)
	}
	c.updateSearch("", 0)
	c.focus = NoFocus
	c.viewport.Offset = 0
	c.refresh()
	return closed
}

// Toggle opens a closed menu and closes an open one.
func (c *Control) Toggle() bool {
	if c.menu.IsOpen() {
		return c.Close()
	}
	return c.Open(true)
}

// Blur handles the field losing external focus.
func (c *Control) Blur() {
	c.Close()
	c.inputFocused = false
}

// SetDisabled toggles the disabled state; disabling closes the menu.
func (c *Control) SetDisabled(disabled bool) {
	c.cfg.Disabled = disabled
	if disabled {
		c.Blur()
	}
}

// SetOptions replaces the option list wholesale.
func (c *Control) SetOptions(opts []option.Option) {
	c.store.SetOptions(opts)
	c.refresh()
}

// SetLoading updates the host loading flag. It does not gate any operation.
func (c *Control) SetLoading(loading bool) {
	c.store.SetLoading(loading)
}

// Select commits opt. Disabled options and disabled controls are ignored.
func (c *Control) Select(opt option.Option) bool {
	if c.cfg.Disabled || opt.Disabled {
		return false
	}
	c.selection.add(opt.Value)
	events.Selection.Select(c.id, string(opt.Value), c.selection.Len())
	if c.hooks.OptionSelected != nil {
		c.hooks.OptionSelected(opt)
	}
	if c.cfg.CloseOnSelect {
		c.Close()
	}
	c.updateSearch("", 0)
	c.inputFocused = false
	c.refresh()
	return true
}

// SelectFocused commits the highlighted option.
func (c *Control) SelectFocused() bool {
	opt, ok := c.FocusedOption()
	if !ok {
		return false
	}
	return c.Select(opt)
}

// Deselect removes the first occurrence of opt from a multi selection.
func (c *Control) Deselect(opt option.Option) bool {
	if c.cfg.Disabled || !c.cfg.Multi {
		return false
	}
	if !c.selection.remove(opt.Value) {
		return false
	}
	events.Selection.Deselect(c.id, string(opt.Value), c.selection.Len())
	if c.hooks.OptionDeselected != nil {
		removed := opt
		c.hooks.OptionDeselected(&removed)
	}
	c.refresh()
	return true
}

// Clear empties the selection and closes the menu. The deselection
// notification carries the previous single option, or nil in multi mode.
func (c *Control) Clear() bool {
	if c.cfg.Disabled {
		return false
	}
	var previous *option.Option
	if !c.cfg.Multi {
		if selected := c.SelectedOptions(); len(selected) > 0 {
			previous = &selected[0]
		}
	}
	c.selection.reset()
	events.Selection.Clear(c.id)
	c.Close()
	if c.hooks.OptionDeselected != nil {
		c.hooks.OptionDeselected(previous)
	}
	return true
}

// RemoveLast drops the last committed value without notifying the host.
func (c *Control) RemoveLast() bool {
	if c.cfg.Disabled {
		return false
	}
	if !c.selection.dropLast() {
		return false
	}
	events.Selection.RemoveLast(c.id, c.selection.Len())
	c.refresh()
	return true
}

// SetSearch replaces the search text as if the user typed it.
func (c *Control) SetSearch(text string) bool {
	return c.applySearch(text, len([]rune(text)))
}

// FocusNext moves focus to the next enabled option.
func (c *Control) FocusNext() bool {
	c.sync()
	return c.setFocus(NextFocus(c.visible.Flat, c.focus))
}

// FocusPrev moves focus to the previous enabled option.
func (c *Control) FocusPrev() bool {
	c.sync()
	return c.setFocus(PrevFocus(c.visible.Flat, c.focus))
}

// FocusFirst moves focus to the first enabled option.
func (c *Control) FocusFirst() bool {
	c.sync()
	return c.setFocus(FirstEnabled(c.visible.Flat))
}

// FocusLast moves focus to the last enabled option.
func (c *Control) FocusLast() bool {
	c.sync()
	return c.setFocus(LastEnabled(c.visible.Flat))
}

// FocusPageDown moves focus one page forward.
func (c *Control) FocusPageDown() bool {
	c.sync()
	return c.setFocus(PageDownFocus(c.visible.Flat, c.focus, c.pageSize))
}

// FocusPageUp moves focus one page backward.
func (c *Control) FocusPageUp() bool {
	c.sync()
	return c.setFocus(PageUpFocus(c.visible.Flat, c.focus, c.pageSize))
}

// FocusIndex highlights the option at idx, ignoring disabled options.
func (c *Control) FocusIndex(idx int) bool {
	c.sync()
	opt, ok := c.visible.At(idx)
	if !ok || opt.Disabled {
		return false
	}
	return c.setFocus(idx)
}

func (c *Control) applySearch(text string, cursor int) bool {
	if c.cfg.Disabled || !c.cfg.Searchable {
		return false
	}
	c.inputFocused = true
	changed := c.updateSearch(text, cursor)
	if !c.menu.IsOpen() && (changed || text != "") {
		c.Open(true)
	}
	c.refresh()
	if changed && c.cfg.AutofocusFirst {
		c.setFocus(FirstEnabled(c.visible.Flat))
	}
	return changed
}

// updateSearch sets the search text and notifies the host when it changed.
func (c *Control) updateSearch(text string, cursor int) bool {
	if !c.menu.setSearch(text, cursor) {
		return false
	}
	events.Search.Change(c.id, text)
	if c.hooks.Search != nil {
		c.hooks.Search(text)
	}
	return true
}

func (c *Control) setFocus(idx int) bool {
	idx = ResolveFocus(c.visible.Flat, idx)
	old := c.focus
	c.focus = idx
	if idx != NoFocus {
		c.focusValue = c.visible.Flat[idx].Value
	}
	if old != idx {
		events.Focus.Move(c.id, idx)
	}
	return old != idx
}

// sync recomputes the visible set when the store was replaced behind the
// controller's back.
func (c *Control) sync() {
	if c.revision != c.store.Revision() {
		c.refresh()
	}
}

// refresh recomputes the visible set and re-resolves focus against it.
func (c *Control) refresh() {
	c.visible = ComputeVisible(VisibleInput{
		Options:  c.store.Options(),
		Search:   c.menu.Search(),
		Selected: c.selection.Values(),
		Multi:    c.cfg.Multi,
		Grouped:  c.cfg.Grouped,
		Match:    c.cfg.Match,
		Label:    c.cfg.Label,
		TagLabel: c.cfg.TagLabel,
	})
	c.revision = c.store.Revision()
	if c.focus == NoFocus {
		return
	}
	if opt, ok := c.visible.At(c.focus); ok && opt.Value == c.focusValue {
		return
	}
	if idx := c.visible.IndexOf(c.focusValue); idx >= 0 {
		c.focus = idx
		return
	}
	c.focus = NoFocus
}
