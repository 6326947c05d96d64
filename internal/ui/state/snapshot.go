package state

import "github.com/atomicstack/tmux-popup-select/internal/option"

// Snapshot is the read-only view a renderer consumes after each event.
type Snapshot struct {
	ID           string
	MenuOpen     bool
	Search       string
	SearchCursor int
	FocusedIndex int
	Visible      Visible
	Selected     []option.Option
	Loading      bool
	Disabled     bool
	InputFocused bool
	Placeholder  string
	Multi        bool
	Clearable    bool
}

// Snapshot captures the controller state for rendering.
func (c *Control) Snapshot() Snapshot {
	c.sync()
	return Snapshot{
		ID:           c.id,
		MenuOpen:     c.menu.IsOpen(),
		Search:       c.menu.Search(),
		SearchCursor: c.menu.SearchCursor(),
		FocusedIndex: c.focus,
		Visible:      c.visible,
		Selected:     c.SelectedOptions(),
		Loading:      c.store.Loading(),
		Disabled:     c.cfg.Disabled,
		InputFocused: c.inputFocused,
		Placeholder:  c.cfg.Placeholder,
		Multi:        c.cfg.Multi,
		Clearable:    c.cfg.Clearable,
	}
}

// ShowClear reports whether a clear affordance applies to the snapshot.
func (s Snapshot) ShowClear() bool {
	return s.Clearable && !s.Disabled && len(s.Selected) > 0
}
