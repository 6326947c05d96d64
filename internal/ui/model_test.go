package ui

import (
	"errors"
	"strings"
	"testing"

	"github.com/atomicstack/tmux-popup-select/internal/backend"
	"github.com/atomicstack/tmux-popup-select/internal/option"
	"github.com/atomicstack/tmux-popup-select/internal/source"
	"github.com/atomicstack/tmux-popup-select/internal/ui/command"
	"github.com/atomicstack/tmux-popup-select/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

func TestNewModelStaticLoaderFillsStoreImmediately(t *testing.T) {
	spec := fruitField(nil)
	spec.Options = nil
	spec.Loader = fakeLoader{spec: source.Spec{Kind: source.KindStatic}, opts: fruits()}
	m := NewModel([]FieldSpec{spec}, Options{})
	ctrl := m.Control("fruit")
	if ctrl == nil {
		t.Fatalf("expected control for fruit")
	}
	if ctrl.Store().Loading() {
		t.Fatalf("static loader must not leave the field loading")
	}
	if got := len(ctrl.Store().Options()); got != 3 {
		t.Fatalf("expected 3 options, got %d", got)
	}
	m.animate = false
	if m.Init() != nil {
		t.Fatalf("expected no init command for a static form without animation")
	}
}

func TestInitLoadsFileSourcesThroughBus(t *testing.T) {
	spec := fruitField(nil)
	spec.Options = nil
	spec.Loader = fakeLoader{spec: source.Spec{Kind: source.KindFile, Path: "fruits.txt"}, opts: fruits()}
	m := NewModel([]FieldSpec{spec}, Options{Width: 60, Height: 20})
	if !m.Control("fruit").Store().Loading() {
		t.Fatalf("expected field to start loading")
	}
	h := NewHarness(m)
	h.Init()
	ctrl := h.Model().Control("fruit")
	if ctrl.Store().Loading() {
		t.Fatalf("expected loading to finish")
	}
	if got := len(ctrl.Store().Options()); got != 3 {
		t.Fatalf("expected 3 options after load, got %d", got)
	}
}

func TestLoadErrorKeepsOptionsAndShowsStatus(t *testing.T) {
	h := newForm(t, fruitField(nil))
	h.Send(command.LoadedMsg{Field: "fruit", Err: errors.New("boom")})
	if got := len(h.Model().Control("fruit").Store().Options()); got != 3 {
		t.Fatalf("expected options to survive a failed load, got %d", got)
	}
	view := h.View()
	if !strings.Contains(view, "Error: fruit: boom") {
		t.Fatalf("expected error in view, got:\n%s", view)
	}

	h.Send(command.LoadedMsg{Field: "fruit", Options: fruits()[:1]})
	if h.Model().errMsg != "" {
		t.Fatalf("expected successful load to clear error, got %q", h.Model().errMsg)
	}
}

func TestBackendEventReplacesOptionsAndWaitsAgain(t *testing.T) {
	h := newForm(t, fruitField(nil))
	replacement := []option.Option{{Value: "kiwi", Label: "Kiwi"}}
	h.Send(backendEventMsg{event: backend.Event{Field: "fruit", Kind: backend.KindFile, Data: replacement}})
	opts := h.Model().Control("fruit").Store().Options()
	if len(opts) != 1 || opts[0].Value != "kiwi" {
		t.Fatalf("expected kiwi only, got %#v", opts)
	}

	h.Send(backendDoneMsg{})
	if h.Model().backend != nil {
		t.Fatalf("expected backend to be dropped after done")
	}
}

func TestOutcomeReportsEveryField(t *testing.T) {
	single := fruitField(nil)
	single.Initial = []option.Value{"banana"}
	multi := fruitField(func(c *state.Config) { c.Multi = true })
	multi.Name = "basket"
	multi.Initial = []option.Value{"cherry", "apple"}

	h := newForm(t, single, multi)
	h.Send(key(tea.KeyEnter))
	if !h.Quit() {
		t.Fatalf("expected enter on a closed field to submit")
	}
	out := h.Model().Outcome()
	if !out.Submitted || out.Cancelled {
		t.Fatalf("unexpected outcome flags %#v", out)
	}
	if len(out.Fields) != 2 {
		t.Fatalf("expected two field results, got %d", len(out.Fields))
	}
	if got := option.Values(out.Fields[0].Selected); len(got) != 1 || got[0] != "banana" {
		t.Fatalf("unexpected single selection %v", got)
	}
	if !out.Fields[1].Multi {
		t.Fatalf("expected basket to be reported as multi")
	}
	if got := option.Values(out.Fields[1].Selected); len(got) != 2 || got[0] != "cherry" || got[1] != "apple" {
		t.Fatalf("expected selection order to be kept, got %v", got)
	}
}

func TestHandlerForUnknownMessage(t *testing.T) {
	m := NewModel(nil, Options{})
	if m.handlerFor(struct{}{}) != nil {
		t.Fatalf("expected no handler for unknown message")
	}
	if m.handlerFor(&tea.KeyMsg{}) == nil {
		t.Fatalf("expected pointer messages to resolve to their element handler")
	}
}

func TestWindowSizeRespectsFixedDimensions(t *testing.T) {
	m := NewModel([]FieldSpec{fruitField(nil)}, Options{Width: 40})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 12})
	if m.width != 40 {
		t.Fatalf("expected fixed width to win, got %d", m.width)
	}
	if m.height != 12 {
		t.Fatalf("expected height from terminal, got %d", m.height)
	}
}
