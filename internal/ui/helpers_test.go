package ui

import (
	"context"
	"strings"
	"testing"

	"github.com/atomicstack/tmux-popup-select/internal/option"
	"github.com/atomicstack/tmux-popup-select/internal/source"
	"github.com/atomicstack/tmux-popup-select/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

type fakeLoader struct {
	spec source.Spec
	opts []option.Option
	err  error
}

func (l fakeLoader) Spec() source.Spec { return l.spec }

func (l fakeLoader) Load(context.Context) ([]option.Option, error) {
	return l.opts, l.err
}

func fruits() []option.Option {
	return []option.Option{
		{Value: "apple", Label: "Apple", Group: "tree"},
		{Value: "banana", Label: "Banana", Group: "plant"},
		{Value: "cherry", Label: "Cherry", Group: "tree"},
	}
}

func fruitField(mutate func(*state.Config)) FieldSpec {
	cfg := state.DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	return FieldSpec{Name: "fruit", Title: "Fruit", Config: cfg, Options: fruits()}
}

func newForm(t *testing.T, specs ...FieldSpec) *Harness {
	t.Helper()
	h := NewHarness(NewModel(specs, Options{Width: 60, Height: 20}))
	h.Init()
	return h
}

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func click(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func viewLines(h *Harness) []string {
	return strings.Split(ansi.Strip(h.View()), "\n")
}

func selectedValues(c *state.Control) []option.Value {
	return option.Values(c.SelectedOptions())
}

func fakeFileSpec() source.Spec {
	return source.Spec{Kind: source.KindFile, Path: "fruits.txt"}
}

func zoneOf(t *testing.T, r row, kind zoneKind) zone {
	t.Helper()
	for _, z := range r.zones {
		if z.kind == kind {
			return z
		}
	}
	t.Fatalf("no zone of kind %d in row", kind)
	return zone{}
}
