package tmux

import (
	"fmt"
	"os"
	"strings"

	gotmux "github.com/atomicstack/gotmuxcc/gotmuxcc"
)

type windowLine struct {
	windowID  string
	displayID string
	label     string
}

// FetchWindows lists every window of the server at socketPath. Labels follow
// TMUX_POPUP_SELECT_WINDOW_FORMAT when set.
func FetchWindows(socketPath string) ([]Window, error) {
	client, err := newTmux(socketPath)
	if err != nil {
		return nil, fmt.Errorf("connect to tmux: %w", err)
	}
	defer client.Close()

	all, err := client.ListAllWindows()
	if err != nil {
		return nil, fmt.Errorf("list windows: %w", err)
	}
	lines, err := fetchWindowLines(client)
	if err != nil {
		lines = fallbackWindowLines(all)
	}
	byID := make(map[string]*gotmux.Window, len(all))
	for _, w := range all {
		if w != nil {
			byID[w.Id] = w
		}
	}
	current := currentSessionName(client)
	out := make([]Window, 0, len(lines))
	for _, line := range lines {
		w := byID[line.windowID]
		if w == nil {
			continue
		}
		session := firstSession(w)
		id := line.displayID
		if id == "" {
			id = fmt.Sprintf("%s:%d", session, w.Index)
		}
		out = append(out, Window{
			ID:         id,
			Session:    session,
			Index:      w.Index,
			Name:       w.Name,
			Label:      line.label,
			Active:     w.Active,
			Current:    session == current && w.Active,
			InternalID: w.Id,
		})
	}
	return out, nil
}

func fetchWindowLines(client tmuxClient) ([]windowLine, error) {
	filter := strings.TrimSpace(os.Getenv("TMUX_POPUP_SELECT_WINDOW_FILTER"))
	formatExpr := strings.TrimSpace(os.Getenv("TMUX_POPUP_SELECT_WINDOW_FORMAT"))
	if formatExpr == "" {
		formatExpr = "#{window_name}"
	}
	format := fmt.Sprintf("#{window_id}\t#{session_name}:#{window_index}\t#S:#{window_index}: %s", formatExpr)
	raw, err := client.ListWindowsFormat("", filter, format)
	if err != nil {
		return nil, err
	}
	result := make([]windowLine, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "\t", 3)
		if len(parts) < 2 {
			continue
		}
		display := strings.TrimSpace(parts[1])
		label := display
		if len(parts) > 2 {
			if trimmed := strings.TrimSpace(parts[2]); trimmed != "" {
				label = trimmed
			}
		}
		result = append(result, windowLine{windowID: strings.TrimSpace(parts[0]), displayID: display, label: label})
	}
	return result, nil
}

func fallbackWindowLines(windows []*gotmux.Window) []windowLine {
	lines := make([]windowLine, 0, len(windows))
	for _, w := range windows {
		if w == nil {
			continue
		}
		session := firstSession(w)
		id := fmt.Sprintf("%s:%d", session, w.Index)
		lines = append(lines, windowLine{windowID: w.Id, displayID: id, label: fmt.Sprintf("%s: %s", id, w.Name)})
	}
	return lines
}
