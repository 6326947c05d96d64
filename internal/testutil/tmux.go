// Package testutil boots throwaway tmux servers for tests that exercise the
// tmux option sources end to end.
package testutil

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gotmux "github.com/atomicstack/gotmuxcc/gotmuxcc"
)

// RequireTmux skips the calling test when tmux is not present on PATH.
func RequireTmux(t *testing.T) string {
	t.Helper()
	path, err := exec.LookPath("tmux")
	if err != nil {
		t.Skip("skipping: tmux binary not available")
	}
	return path
}

// StartTmuxServer boots a temporary tmux server bound to a unique socket with
// one detached session named session. The returned cleanup function
// terminates the server.
func StartTmuxServer(t *testing.T, session string) (string, func()) {
	t.Helper()
	RequireTmux(t)
	baseDir, err := os.MkdirTemp("/tmp", "tmux-popup-select-*")
	if err != nil {
		t.Fatalf("failed to create tmux temp dir: %v", err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(baseDir) })
	socketPath := filepath.Join(baseDir, "tmux-test.sock")
	cmd := Command(socketPath, "-f", "/dev/null", "new-session", "-d", "-s", session, "sleep", "600")
	if err := cmd.Run(); err != nil {
		t.Skipf("skipping: failed to start tmux server: %v", err)
	}
	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := killServer(ctx, socketPath); err != nil {
			t.Logf("control-mode kill failed for socket %s: %v; falling back to tmux kill-server", socketPath, err)
			_ = Command(socketPath, "kill-server").Run()
		}
	}
	return socketPath, cleanup
}

// Run executes a tmux command against socket and fails the test on error.
func Run(t *testing.T, socket string, args ...string) {
	t.Helper()
	if out, err := Command(socket, args...).CombinedOutput(); err != nil {
		t.Fatalf("tmux %s: %v: %s", strings.Join(args, " "), err, out)
	}
}

// Command builds a tmux invocation isolated from any surrounding tmux
// session.
func Command(socket string, extra ...string) *exec.Cmd {
	trimmed := strings.TrimSpace(socket)
	args := make([]string, 0, len(extra)+2)
	if trimmed != "" {
		args = append(args, "-S", trimmed)
	}
	args = append(args, extra...)
	cmd := exec.Command("tmux", args...)
	env := make([]string, 0, len(os.Environ())+2)
	for _, entry := range os.Environ() {
		if strings.HasPrefix(entry, "TMUX=") || strings.HasPrefix(entry, "TMUX_PANE=") {
			continue
		}
		env = append(env, entry)
	}
	env = append(env, "TMUX=")
	if trimmed != "" {
		env = append(env, "TMUX_TMPDIR="+filepath.Dir(trimmed))
	}
	cmd.Env = env
	return cmd
}

func killServer(ctx context.Context, socket string) error {
	if strings.TrimSpace(socket) == "" {
		return errors.New("empty tmux socket path")
	}
	client, err := gotmux.NewTmuxWithOptions(socket, gotmux.WithContext(ctx))
	if err != nil {
		return err
	}
	defer client.Close()
	return client.KillServer()
}
