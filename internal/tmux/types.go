package tmux

import (
	gotmux "github.com/atomicstack/gotmuxcc/gotmuxcc"
)

// Session is one tmux session as offered for selection.
type Session struct {
	Name     string
	Label    string
	Windows  int
	Attached bool
	Current  bool
}

// Window is one tmux window as offered for selection. ID is the
// session:index target tmux accepts.
type Window struct {
	ID         string
	Session    string
	Index      int
	Name       string
	Label      string
	Active     bool
	Current    bool
	InternalID string
}

var newTmux = func(socketPath string) (tmuxClient, error) {
	if socketPath != "" {
		return gotmux.NewTmux(socketPath)
	}
	return gotmux.DefaultTmux()
}

type tmuxClient interface {
	ListSessions() ([]*gotmux.Session, error)
	ListAllWindows() ([]*gotmux.Window, error)
	ListClients() ([]*gotmux.Client, error)
	ListWindowsFormat(target, filter, format string) ([]string, error)
	DisplayMessage(target, format string) (string, error)
	Close() error
}
