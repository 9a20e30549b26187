package tmux

import "github.com/atomicstack/pman/internal/model"

// Manager binds the package operations to one socket.
type Manager struct {
	socket string
}

// NewManager returns a manager for the server at socketPath.
func NewManager(socketPath string) *Manager {
	return &Manager{socket: socketPath}
}

func (m *Manager) ListSessions() ([]model.Session, error) {
	return ListSessions(m.socket)
}

func (m *Manager) CreateSession(name, dir string) error {
	return CreateSession(m.socket, name, dir)
}

func (m *Manager) KillSession(name string) error {
	return KillSession(m.socket, name)
}

func (m *Manager) SwitchSession(name string) error {
	return SwitchSession(m.socket, name)
}

func (m *Manager) CurrentSession() string {
	return CurrentSession(m.socket)
}

func (m *Manager) CurrentPath() string {
	return CurrentPath(m.socket)
}

func (m *Manager) EnsureWindow(name string) (string, error) {
	return EnsureWindow(m.socket, name)
}

func (m *Manager) SendKeys(target, keys string) error {
	return SendKeys(m.socket, target, keys)
}

func (m *Manager) SelectWindow(target string) error {
	return SelectWindow(m.socket, target)
}

func (m *Manager) FocusPane(pane string) error {
	return FocusPane(m.socket, pane)
}
