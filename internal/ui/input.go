package ui

import (
	"github.com/atomicstack/tmux-popup-select/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (m *Model) updateFilterCursorModel(msg tea.Msg) tea.Cmd {
	if !m.animate {
		return nil
	}
	var cmd tea.Cmd
	m.filterCursor, cmd = m.filterCursor.Update(msg)
	return cmd
}

// toKey translates a Bubble Tea key press into the controller's key model.
// Plain typed text becomes a KeyRunes press; everything else keeps the name
// Bubble Tea gives it.
func toKey(msg tea.KeyMsg) state.Key {
	k := state.Key{Name: msg.String(), Runes: msg.Runes, Alt: msg.Alt}
	if msg.Type == tea.KeyRunes && !msg.Alt {
		k.Name = state.KeyRunes
	}
	return k
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if keyMsg.Type == tea.KeyCtrlC {
		return m.cancel()
	}
	f := m.activeField()
	if f != nil {
		before := f.ctrl.Menu()
		res := f.ctrl.HandleKey(toKey(keyMsg))
		after := f.ctrl.Menu()
		if before.SearchCursor() != after.SearchCursor() || before.Search() != after.Search() {
			m.filterCursorDirty = true
		}
		if res.Handled {
			m.errMsg = ""
		}
		if res.PreventDefault {
			return nil
		}
	}
	name := keyMsg.String()
	if m.document.DispatchKey(name) {
		return nil
	}
	switch name {
	case "tab":
		m.focusField(m.active+1, true)
	case "shift+tab":
		m.focusField(m.active-1, true)
	case "enter":
		if f != nil && f.ctrl.IsOpen() {
			return nil
		}
		return m.submit()
	case "esc":
		return m.cancel()
	}
	return nil
}

func (m *Model) filterPrompt(f *field) string {
	render := func(style *lipgloss.Style, value string) string {
		if style == nil || value == "" {
			return value
		}
		return style.Render(value)
	}
	if styles.Filter != nil {
		m.filterCursor.TextStyle = styles.Filter.Copy()
	} else {
		m.filterCursor.TextStyle = lipgloss.Style{}
	}
	prompt := "» "
	if styles.FilterPrompt != nil {
		prompt = styles.FilterPrompt.Render(prompt)
	}
	menu := f.ctrl.Menu()
	text := menu.Search()
	if text == "" {
		runes := []rune("(type to search)")
		if styles.FilterPlaceholder != nil {
			m.filterCursor.TextStyle = styles.FilterPlaceholder.Copy()
		}
		caret := m.renderFilterCursor(string(runes[0]))
		return prompt + caret + render(styles.FilterPlaceholder, string(runes[1:]))
	}
	runes := []rune(text)
	pos := menu.SearchCursor()
	before := render(styles.Filter, string(runes[:pos]))
	caretRune := " "
	after := ""
	if pos < len(runes) {
		caretRune = string(runes[pos])
		after = render(styles.Filter, string(runes[pos+1:]))
	}
	return prompt + before + m.renderFilterCursor(caretRune) + after
}

func (m *Model) renderFilterCursor(char string) string {
	if char == "" {
		char = " "
	}
	m.filterCursor.SetChar(char)

	base := m.filterCursor.TextStyle.Copy()
	base = base.Inline(true)

	if m.filterCursor.Blink {
		return base.Render(char)
	}

	if styles.Cursor != nil {
		cursorStyle := styles.Cursor.Copy().Inline(true)
		base = base.Inherit(cursorStyle).Blink(false)
		return base.Render(char)
	}

	return base.Reverse(true).Render(char)
}
