package tmux

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	gotmux "github.com/atomicstack/gotmuxcc/gotmuxcc"
)

// FetchSessions lists the sessions of the server at socketPath.
func FetchSessions(socketPath string) ([]Session, error) {
	client, err := newTmux(socketPath)
	if err != nil {
		return nil, fmt.Errorf("connect to tmux: %w", err)
	}
	defer client.Close()

	sessions, err := client.ListSessions()
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	attached := attachedSessions(client)
	current := currentSessionName(client)
	out := make([]Session, 0, len(sessions))
	for _, s := range sessions {
		if s == nil || s.Name == "" {
			continue
		}
		_, isAttached := attached[s.Name]
		out = append(out, Session{
			Name:     s.Name,
			Label:    sessionLabel(s.Name, s.Windows, isAttached),
			Windows:  s.Windows,
			Attached: isAttached,
			Current:  s.Name == current,
		})
	}
	return out, nil
}

// ResolveSocketPath picks the tmux socket: the flag value, then
// TMUX_POPUP_SELECT_SOCKET, then $TMUX, then the default per-user socket.
func ResolveSocketPath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if envSocket := os.Getenv("TMUX_POPUP_SELECT_SOCKET"); envSocket != "" {
		return envSocket, nil
	}
	if tmuxEnv := os.Getenv("TMUX"); tmuxEnv != "" {
		parts := strings.Split(tmuxEnv, ",")
		if len(parts) > 0 && parts[0] != "" {
			return parts[0], nil
		}
	}
	baseDir := os.Getenv("TMUX_TMPDIR")
	if baseDir == "" {
		baseDir = "/tmp"
	}
	u, err := user.Current()
	if err != nil {
		return "", err
	}
	return filepath.Join(baseDir, fmt.Sprintf("tmux-%s", u.Uid), "default"), nil
}

func sessionLabel(name string, windows int, attached bool) string {
	label := fmt.Sprintf("%s: %d window", name, windows)
	if windows != 1 {
		label += "s"
	}
	if attached {
		label += " (attached)"
	}
	return label
}

// attachedSessions collects sessions with a real client attached. The
// control-mode connection used for listing is not counted.
func attachedSessions(client tmuxClient) map[string]struct{} {
	clients, err := client.ListClients()
	if err != nil {
		return nil
	}
	result := make(map[string]struct{})
	for _, c := range clients {
		if c == nil || c.ControlMode || c.Session == "" {
			continue
		}
		result[c.Session] = struct{}{}
	}
	return result
}

func currentSessionName(client tmuxClient) string {
	if pane := strings.TrimSpace(os.Getenv("TMUX_PANE")); pane != "" {
		if name, err := client.DisplayMessage(pane, "#{session_name}"); err == nil {
			if name = strings.TrimSpace(name); name != "" {
				return name
			}
		}
	}
	return ""
}

func firstSession(w *gotmux.Window) string {
	if len(w.ActiveSessionsList) > 0 {
		return w.ActiveSessionsList[0]
	}
	if len(w.LinkedSessionsList) > 0 {
		return w.LinkedSessionsList[0]
	}
	return strings.TrimSpace(w.Session)
}
