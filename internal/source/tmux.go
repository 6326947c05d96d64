package source

import (
	"github.com/atomicstack/tmux-popup-select/internal/option"
	"github.com/atomicstack/tmux-popup-select/internal/tmux"
)

const (
	groupAttached = "attached"
	groupDetached = "detached"
)

// SessionOptions offers sessions by name, grouped by attachment.
func SessionOptions(sessions []tmux.Session) []option.Option {
	out := make([]option.Option, 0, len(sessions))
	for _, s := range sessions {
		group := groupDetached
		if s.Attached {
			group = groupAttached
		}
		out = append(out, option.Option{
			Value: option.Value(s.Name),
			Label: s.Label,
			Group: group,
		})
	}
	return out
}

// WindowOptions offers windows by target, grouped by session. The window the
// popup was opened from is disabled.
func WindowOptions(windows []tmux.Window) []option.Option {
	out := make([]option.Option, 0, len(windows))
	for _, w := range windows {
		out = append(out, option.Option{
			Value:    option.Value(w.ID),
			Label:    w.Label,
			Group:    w.Session,
			Disabled: w.Current,
		})
	}
	return out
}
