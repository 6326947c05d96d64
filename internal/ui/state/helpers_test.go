package state

import "github.com/atomicstack/tmux-popup-select/internal/option"

func opts(values ...string) []option.Option {
	out := make([]option.Option, len(values))
	for i, v := range values {
		out[i] = option.Option{Value: option.Value(v), Label: v}
	}
	return out
}

func valuesOf(options []option.Option) []string {
	out := make([]string, len(options))
	for i, o := range options {
		out[i] = string(o.Value)
	}
	return out
}

type recorder struct {
	selected   []option.Option
	deselected []*option.Option
	searches   []string
}

func (r *recorder) hooks() Hooks {
	return Hooks{
		OptionSelected:   func(o option.Option) { r.selected = append(r.selected, o) },
		OptionDeselected: func(o *option.Option) { r.deselected = append(r.deselected, o) },
		Search:           func(s string) { r.searches = append(r.searches, s) },
	}
}

func newTestControl(cfg Config, options []option.Option, initial ...option.Value) (*Control, *recorder) {
	rec := &recorder{}
	c := NewControl("test", cfg, option.NewStore(options), initial, rec.hooks())
	return c, rec
}
