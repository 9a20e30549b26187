package tmux

import (
	"fmt"
	"strings"
)

// EnsureWindow returns the id of the window called name in the current
// session, creating it when missing.
func EnsureWindow(socketPath, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", sessionManagerError("new-window", fmt.Errorf("window name required"))
	}
	client, err := connect(socketPath)
	if err != nil {
		return "", err
	}
	session := displayCurrent(client, "#{session_name}")
	filter := ""
	if session != "" {
		filter = fmt.Sprintf("#{==:#{session_name},%s}", session)
	}
	lines, err := client.ListWindowsFormat("", filter, "#{window_id}\t#{window_name}")
	if err != nil {
		return "", sessionManagerError("list-windows", err)
	}
	if id := findWindowID(lines, name); id != "" {
		return id, nil
	}
	args := []string{"new-window", "-d", "-P", "-F", "#{window_id}", "-n", name}
	if session != "" {
		args = append(args, "-t", session+":")
	}
	out, err := client.Command(args...)
	if err != nil {
		return "", sessionManagerError("new-window", err)
	}
	return strings.TrimSpace(out), nil
}

func findWindowID(lines []string, name string) string {
	for _, line := range lines {
		parts := strings.SplitN(strings.TrimSpace(line), "\t", 2)
		if len(parts) == 2 && strings.TrimSpace(parts[1]) == name {
			return strings.TrimSpace(parts[0])
		}
	}
	return ""
}

// SendKeys types keys into target followed by Enter.
func SendKeys(socketPath, target, keys string) error {
	client, err := connect(socketPath)
	if err != nil {
		return err
	}
	_, err = client.Command("send-keys", "-t", target, keys, "Enter")
	return sessionManagerError("send-keys", err)
}

// SelectWindow focuses the window identified by target.
func SelectWindow(socketPath, target string) error {
	client, err := connect(socketPath)
	if err != nil {
		return err
	}
	return sessionManagerError("select-window", client.SelectWindow(target))
}

// FocusPane selects the pane and the window that holds it.
func FocusPane(socketPath, pane string) error {
	pane = strings.TrimSpace(pane)
	if pane == "" {
		return sessionManagerError("select-pane", fmt.Errorf("pane target required"))
	}
	client, err := connect(socketPath)
	if err != nil {
		return err
	}
	if err := client.SelectWindow(pane); err != nil {
		return sessionManagerError("select-window", err)
	}
	return sessionManagerError("select-pane", client.SelectPane(pane))
}
