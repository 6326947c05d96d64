package ui

import (
	"github.com/atomicstack/tmux-popup-select/internal/logging/events"
	"github.com/atomicstack/tmux-popup-select/internal/ui/document"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) activeField() *field {
	if m.active < 0 || m.active >= len(m.fields) {
		return nil
	}
	return m.fields[m.active]
}

// focusField makes idx the active field. The previously active field loses
// focus and closes its menu. With wrap set, idx wraps around the form.
func (m *Model) focusField(idx int, wrap bool) {
	n := len(m.fields)
	if n == 0 {
		return
	}
	if wrap {
		idx = ((idx % n) + n) % n
	}
	if idx < 0 || idx >= n || idx == m.active {
		return
	}
	if prev := m.activeField(); prev != nil {
		prev.ctrl.Blur()
	}
	m.active = idx
	m.filterCursorDirty = true
	events.Form.FieldFocus(m.fields[idx].name)
}

func (m *Model) submit() tea.Cmd {
	for _, f := range m.fields {
		f.ctrl.Close()
	}
	m.outcome.Submitted = true
	events.Form.Submit(len(m.fields))
	return tea.Quit
}

func (m *Model) cancel() tea.Cmd {
	for _, f := range m.fields {
		f.ctrl.Close()
	}
	m.outcome.Cancelled = true
	events.Form.Cancel()
	return tea.Quit
}

// syncSubscriptions keeps one document listener per open menu: opening
// subscribes, closing releases the subscription.
func (m *Model) syncSubscriptions() {
	for _, f := range m.fields {
		open := f.ctrl.IsOpen()
		switch {
		case open && f.unsubscribe == nil:
			m.subscribe(f)
		case !open && f.unsubscribe != nil:
			f.unsubscribe()
			f.unsubscribe = nil
			f.scope = ""
		}
	}
}

func (m *Model) subscribe(f *field) {
	f.scope, f.unsubscribe = m.document.Subscribe(document.Listener{
		Bounds: func() []document.Rect { return f.regions },
		Click: func(c document.Click, inside bool) {
			if inside || !f.ctrl.IsOpen() {
				return
			}
			events.Menu.OutsideClick(f.name, c.X, c.Y)
			f.ctrl.Blur()
		},
		Key: func(key string) bool {
			if key != "esc" || !f.ctrl.IsOpen() {
				return false
			}
			f.ctrl.Close()
			return true
		},
	})
}

func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	mouse, ok := msg.(tea.MouseMsg)
	if !ok {
		return nil
	}
	f := m.activeField()
	switch {
	case mouse.Button == tea.MouseButtonWheelUp:
		if f != nil && f.ctrl.IsOpen() {
			f.ctrl.FocusPrev()
		}
	case mouse.Button == tea.MouseButtonWheelDown:
		if f != nil && f.ctrl.IsOpen() {
			f.ctrl.FocusNext()
		}
	case mouse.Action == tea.MouseActionPress && mouse.Button == tea.MouseButtonLeft:
		m.handleClick(mouse.X, mouse.Y)
	}
	return nil
}

func (m *Model) handleClick(x, y int) {
	rows := m.layout()
	m.document.DispatchClick(document.Click{X: x, Y: y})
	m.syncSubscriptions()
	if y < 0 || y >= len(rows) || rows[y].field < 0 {
		return
	}
	z, ok := rows[y].zoneAt(x)
	if !ok {
		return
	}
	m.focusField(rows[y].field, false)
	f := m.fields[rows[y].field]
	switch z.kind {
	case zoneControl:
		f.ctrl.Toggle()
	case zonePrompt:
		f.ctrl.Open(true)
	case zoneOption:
		f.ctrl.Select(z.option)
	case zoneTagRemove:
		f.ctrl.Deselect(z.option)
	case zoneClear:
		f.ctrl.Clear()
	}
}
