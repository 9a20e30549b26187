// Package tmux wraps the tmux server behind a single control-mode
// connection and exposes the session and window operations pman needs.
package tmux

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"sync"

	gotmux "github.com/atomicstack/gotmuxcc/gotmuxcc"

	"github.com/atomicstack/pman/internal/apperr"
)

type tmuxClient interface {
	ListClients() ([]*gotmux.Client, error)
	SwitchClient(*gotmux.SwitchClientOptions) error
	SelectWindow(target string) error
	SelectPane(target string) error
	DisplayMessage(target, format string) (string, error)
	ListSessionsFormat(format string) ([]string, error)
	ListWindowsFormat(target, filter, format string) ([]string, error)
	Command(parts ...string) (string, error)
	Close() error
}

var newTmux = func(socketPath string) (tmuxClient, error) {
	if socketPath != "" {
		return gotmux.NewTmux(socketPath)
	}
	return gotmux.DefaultTmux()
}

var (
	clientMu     sync.Mutex
	cachedClient tmuxClient
	cachedSocket string
)

// connect returns the shared control-mode client for socketPath, dialing a
// new one when the socket changes.
func connect(socketPath string) (tmuxClient, error) {
	clientMu.Lock()
	defer clientMu.Unlock()
	if cachedClient != nil && cachedSocket == socketPath {
		return cachedClient, nil
	}
	if cachedClient != nil {
		_ = cachedClient.Close()
		cachedClient = nil
	}
	client, err := newTmux(socketPath)
	if err != nil {
		return nil, &apperr.Error{Kind: apperr.KindSessionManager, Msg: fmt.Sprintf("connect: %v", err), Err: err}
	}
	cachedClient = client
	cachedSocket = socketPath
	return client, nil
}

// Shutdown closes the shared connection, if any.
func Shutdown() error {
	clientMu.Lock()
	defer clientMu.Unlock()
	if cachedClient == nil {
		return nil
	}
	err := cachedClient.Close()
	cachedClient = nil
	cachedSocket = ""
	return err
}

// ResolveSocketPath picks the tmux socket: the flag value, then PMAN_SOCKET,
// then the socket named in $TMUX, then tmux's default location.
func ResolveSocketPath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if envSocket := os.Getenv("PMAN_SOCKET"); envSocket != "" {
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

func displayCurrent(client tmuxClient, format string) string {
	target := strings.TrimSpace(os.Getenv("TMUX_PANE"))
	out, err := client.DisplayMessage(target, format)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

func isNoServer(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, needle := range []string{"no server running", "no sessions", "error connecting", "no such file or directory"} {
		if strings.Contains(msg, needle) {
			return true
		}
	}
	return false
}

func sessionManagerError(op string, err error) error {
	if err == nil {
		return nil
	}
	if apperr.KindOf(err) == apperr.KindSessionManager {
		return err
	}
	return &apperr.Error{Kind: apperr.KindSessionManager, Msg: fmt.Sprintf("%s: %v", op, err), Err: err}
}
