package tmux

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	gotmux "github.com/atomicstack/gotmuxcc/gotmuxcc"

	"github.com/atomicstack/pman/internal/model"
)

const sessionFormat = "#{session_name}\t#{session_attached}\t#{session_path}\t#{session_windows}\t#{session_created}"

// ListSessions returns every session on the server in tmux's order. A server
// that is not running has no sessions.
func ListSessions(socketPath string) ([]model.Session, error) {
	client, err := connect(socketPath)
	if err != nil {
		if isNoServer(err) {
			return nil, nil
		}
		return nil, err
	}
	lines, err := client.ListSessionsFormat(sessionFormat)
	if err != nil {
		if isNoServer(err) {
			return nil, nil
		}
		return nil, sessionManagerError("list-sessions", err)
	}
	attached := realAttachedClients(client)
	out := make([]model.Session, 0, len(lines))
	for _, line := range lines {
		s, ok := parseSessionLine(line)
		if !ok {
			continue
		}
		if attached != nil {
			s.Attached = len(attached[s.Name]) > 0
		}
		out = append(out, s)
	}
	return out, nil
}

func parseSessionLine(line string) (model.Session, bool) {
	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" {
		return model.Session{}, false
	}
	parts := strings.Split(line, "\t")
	name := strings.TrimSpace(parts[0])
	if name == "" {
		return model.Session{}, false
	}
	s := model.Session{Name: name}
	if len(parts) > 1 {
		n, _ := strconv.Atoi(strings.TrimSpace(parts[1]))
		s.Attached = n > 0
	}
	if len(parts) > 2 {
		s.Path = strings.TrimSpace(parts[2])
	}
	if len(parts) > 3 {
		s.Windows, _ = strconv.Atoi(strings.TrimSpace(parts[3]))
	}
	if len(parts) > 4 {
		if secs, err := strconv.ParseInt(strings.TrimSpace(parts[4]), 10, 64); err == nil && secs > 0 {
			s.Created = time.Unix(secs, 0)
		}
	}
	return s, true
}

// realAttachedClients returns a map from session name to the names of
// non-control-mode clients attached to it. This excludes gotmuxcc's own
// control-mode connection, which would otherwise inflate session_attached counts.
func realAttachedClients(client tmuxClient) map[string][]string {
	clients, err := client.ListClients()
	if err != nil {
		return nil
	}
	result := make(map[string][]string)
	for _, c := range clients {
		if c == nil || c.ControlMode || c.Session == "" {
			continue
		}
		result[c.Session] = append(result[c.Session], c.Name)
	}
	return result
}

// CreateSession starts a detached session rooted at dir.
func CreateSession(socketPath, name, dir string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return sessionManagerError("new-session", fmt.Errorf("session name required"))
	}
	client, err := connect(socketPath)
	if err != nil {
		return err
	}
	args := []string{"new-session", "-d", "-s", name}
	if dir = strings.TrimSpace(dir); dir != "" {
		args = append(args, "-c", dir)
	}
	_, err = client.Command(args...)
	return sessionManagerError("new-session", err)
}

// KillSession destroys the named session.
func KillSession(socketPath, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return sessionManagerError("kill-session", fmt.Errorf("session name required"))
	}
	client, err := connect(socketPath)
	if err != nil {
		return err
	}
	_, err = client.Command("kill-session", "-t", "="+name)
	return sessionManagerError("kill-session", err)
}

// SwitchSession points the launching client at the named session.
func SwitchSession(socketPath, name string) error {
	client, err := connect(socketPath)
	if err != nil {
		return err
	}
	opts := &gotmux.SwitchClientOptions{TargetSession: name}
	if id := displayCurrent(client, "#{client_name}"); id != "" {
		opts.TargetClient = id
	}
	return sessionManagerError("switch-client", client.SwitchClient(opts))
}

// CurrentSession returns the session of the pane that launched pman.
func CurrentSession(socketPath string) string {
	client, err := connect(socketPath)
	if err != nil {
		return ""
	}
	return displayCurrent(client, "#{session_name}")
}

// CurrentPath returns the working directory of the launching pane, falling
// back to the process directory outside tmux.
func CurrentPath(socketPath string) string {
	if client, err := connect(socketPath); err == nil {
		if path := displayCurrent(client, "#{pane_current_path}"); path != "" {
			return path
		}
	}
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return wd
}
