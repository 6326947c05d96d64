package ui

import tea "github.com/charmbracelet/bubbletea"

// Harness drives the UI model programmatically for integration tests. It
// turns off cursor blinking and spinner ticks so commands settle.
type Harness struct {
	model *Model
	quit  bool
}

// NewHarness creates a harness for the provided model.
func NewHarness(model *Model) *Harness {
	if model != nil {
		model.animate = false
	}
	return &Harness{model: model}
}

// Init runs the model's Init commands.
func (h *Harness) Init() {
	if h.model == nil {
		return
	}
	h.processCmd(h.model.Init())
}

// Send routes a message through the model and executes any returned commands.
func (h *Harness) Send(msg tea.Msg) {
	if h.model == nil {
		return
	}
	mdl, cmd := h.model.Update(msg)
	if updated, ok := mdl.(*Model); ok {
		h.model = updated
	}
	h.processCmd(cmd)
}

func (h *Harness) processCmd(cmd tea.Cmd) {
	for cmd != nil {
		msg := cmd()
		switch msg := msg.(type) {
		case nil:
			return
		case tea.QuitMsg:
			h.quit = true
			return
		case tea.BatchMsg:
			for _, c := range msg {
				h.processCmd(c)
			}
			return
		}
		mdl, next := h.model.Update(msg)
		if updated, ok := mdl.(*Model); ok {
			h.model = updated
		}
		cmd = next
	}
}

// Quit reports whether the model asked the program to exit.
func (h *Harness) Quit() bool {
	return h.quit
}

// View returns the current view string.
func (h *Harness) View() string {
	if h.model == nil {
		return ""
	}
	return h.model.View()
}

// Model exposes the underlying model.
func (h *Harness) Model() *Model {
	return h.model
}
