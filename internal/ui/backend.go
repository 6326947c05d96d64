package ui

import (
	"fmt"

	"github.com/atomicstack/tmux-popup-select/internal/backend"
	"github.com/atomicstack/tmux-popup-select/internal/ui/command"
	tea "github.com/charmbracelet/bubbletea"
)

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

func (m *Model) handleBackendDoneMsg(tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

func (m *Model) handleLoadedMsg(msg tea.Msg) tea.Cmd {
	loaded, ok := msg.(command.LoadedMsg)
	if !ok {
		return nil
	}
	m.applyBackendEvent(backend.Event{
		Field: loaded.Field,
		Kind:  backend.KindLoad,
		Data:  loaded.Options,
		Err:   loaded.Err,
	})
	return nil
}

// applyBackendEvent writes an event into its field. Failed loads keep the
// current options and surface the error in the status line.
func (m *Model) applyBackendEvent(evt backend.Event) {
	res := m.dispatcher.Handle(evt)
	if res.Err != nil {
		m.errMsg = fmt.Sprintf("%s: %v", evt.Field, res.Err)
		return
	}
	if res.Updated {
		m.errMsg = ""
	}
}
