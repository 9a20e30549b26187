package ui

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/pman/internal/action"
	"github.com/atomicstack/pman/internal/apperr"
	"github.com/atomicstack/pman/internal/logging"
	"github.com/atomicstack/pman/internal/logging/events"
	"github.com/atomicstack/pman/internal/model"
	"github.com/atomicstack/pman/internal/passthrough"
	"github.com/atomicstack/pman/internal/pathutil"
)

var execProcess = tea.ExecProcess

type fileChosenMsg struct {
	path string
	err  error
}

type pagerClosedMsg struct {
	err error
}

var sessionNameCleaner = strings.NewReplacer(".", "_", ":", "_")

// perform runs a domain action against the collaborators. Failures land on
// the status line and leave the loop running.
func (m *Model) perform(a action.Action) tea.Cmd {
	switch v := a.(type) {
	case action.SwitchView:
		m.switchView(v.View)
	case action.SwitchSession:
		if err := m.sessions.SwitchSession(v.Name); err != nil {
			m.fail(err)
			return nil
		}
		events.Session.Switch(v.Name)
		return m.quit()
	case action.CreateSession:
		m.createSession(v)
	case action.KillSession:
		if err := m.sessions.KillSession(v.Name); err != nil {
			m.fail(err)
			return nil
		}
		events.Session.Kill(v.Name)
		m.reload()
		m.succeed(fmt.Sprintf("Killed session %s", v.Name))
	case action.CreateWorktree:
		m.createWorktree(v)
	case action.DeleteWorktree:
		m.deleteWorktree(v)
	case action.MergeWorktree:
		m.mergeWorktree(v)
	case action.OpenWorktree:
		return m.openWorktree(v)
	case action.OpenBuffer:
		if err := m.editor.OpenBuffer(v.Address, v.BufferID); err != nil {
			m.fail(err)
			return nil
		}
		return m.quit()
	case action.OpenFile:
		if err := m.editor.OpenFile(v.Path); err != nil {
			m.fail(err)
			return nil
		}
		return m.quit()
	case action.FindFiles:
		return m.findFiles()
	case action.ShowDiff:
		return m.showDiff()
	}
	return nil
}

func (m *Model) createSession(v action.CreateSession) {
	path := v.Path
	if strings.TrimSpace(path) == "" {
		path = m.sessions.CurrentPath()
	}
	if err := m.sessions.CreateSession(v.Name, path); err != nil {
		m.fail(err)
		return
	}
	events.Session.Create(v.Name, path)
	m.switchView(action.ViewSessions)
	m.succeed(fmt.Sprintf("Created session %s", v.Name))
}

func (m *Model) createWorktree(v action.CreateWorktree) {
	if m.vcs == nil {
		m.fail(apperr.ErrNotARepository)
		return
	}
	path, err := m.vcs.CreateWorktree(v.Branch)
	if err != nil {
		m.fail(err)
		return
	}
	events.Worktree.Create(v.Branch, path)
	m.switchView(action.ViewWorktrees)
	m.succeed(fmt.Sprintf("Created worktree %s", pathutil.ShortenUser(path)))
}

func (m *Model) deleteWorktree(v action.DeleteWorktree) {
	if m.vcs == nil {
		m.fail(apperr.ErrNotARepository)
		return
	}
	if err := m.vcs.DeleteWorktree(v.Path); err != nil {
		m.fail(err)
		return
	}
	events.Worktree.Delete(v.Path)
	m.reload()
	m.succeed(fmt.Sprintf("Deleted worktree %s", filepath.Base(v.Path)))
}

func (m *Model) mergeWorktree(v action.MergeWorktree) {
	if m.vcs == nil {
		m.fail(apperr.ErrNotARepository)
		return
	}
	err := m.vcs.MergeToMain(v.Path, v.Branch)
	// Steps that completed before a failure are not rolled back, so the
	// list is refreshed either way.
	m.reload()
	if err != nil {
		m.fail(err)
		return
	}
	m.succeed(fmt.Sprintf("Merged %s into main", v.Branch))
}

// openWorktree switches to the session named after the worktree directory,
// creating it at the worktree path first when needed.
func (m *Model) openWorktree(v action.OpenWorktree) tea.Cmd {
	name := worktreeSessionName(v.Path)
	if name == "" {
		m.fail(apperr.SessionManager("no session name for %q", v.Path))
		return nil
	}
	sessions, err := m.sessions.ListSessions()
	if err != nil {
		m.fail(err)
		return nil
	}
	if !hasSession(sessions, name) {
		if err := m.sessions.CreateSession(name, v.Path); err != nil {
			m.fail(err)
			return nil
		}
		events.Session.Create(name, v.Path)
	}
	if err := m.sessions.SwitchSession(name); err != nil {
		m.fail(err)
		return nil
	}
	events.Worktree.Open(v.Path, name)
	return m.quit()
}

func worktreeSessionName(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	base := filepath.Base(filepath.Clean(path))
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	return sessionNameCleaner.Replace(base)
}

func hasSession(sessions []model.Session, name string) bool {
	for _, s := range sessions {
		if s.Name == name {
			return true
		}
	}
	return false
}

// workingDir is where file searches start: the repository root when there
// is one, else the launching pane's directory.
func (m *Model) workingDir() string {
	if m.vcs != nil {
		if root := m.vcs.Root(); root != "" {
			return root
		}
	}
	return m.sessions.CurrentPath()
}

func (m *Model) findFiles() tea.Cmd {
	dir := m.workingDir()
	var out bytes.Buffer
	cmd := passthrough.FindFilesCommand(dir)
	cmd.Stdout = &out
	return execProcess(cmd, func(err error) tea.Msg {
		if err != nil {
			if passthrough.Cancelled(err) {
				return fileChosenMsg{}
			}
			return fileChosenMsg{err: apperr.IO(err)}
		}
		path := passthrough.Selection(out.String())
		if path != "" && !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		return fileChosenMsg{path: path}
	})
}

func (m *Model) handleFileChosenMsg(msg tea.Msg) tea.Cmd {
	chosen, ok := msg.(fileChosenMsg)
	if !ok {
		return nil
	}
	if chosen.err != nil {
		m.fail(chosen.err)
		return nil
	}
	if chosen.path == "" {
		return nil
	}
	return m.perform(action.OpenFile{Path: chosen.path})
}

func (m *Model) showDiff() tea.Cmd {
	if m.vcs == nil {
		m.fail(apperr.ErrNotARepository)
		return nil
	}
	diff, err := m.vcs.Diff(m.vcs.Root())
	if err != nil {
		m.fail(err)
		return nil
	}
	if strings.TrimSpace(diff) == "" {
		m.setInfo("No changes")
		return nil
	}
	return execProcess(passthrough.DiffPager(diff), func(err error) tea.Msg {
		return pagerClosedMsg{err: err}
	})
}

func (m *Model) handlePagerClosedMsg(msg tea.Msg) tea.Cmd {
	closed, ok := msg.(pagerClosedMsg)
	if !ok {
		return nil
	}
	if closed.err != nil {
		m.fail(apperr.IO(closed.err))
	}
	return nil
}

func (m *Model) fail(err error) {
	if err == nil {
		return
	}
	logging.Error(err)
	events.Action.Error(err)
	m.errMsg = err.Error()
}

func (m *Model) succeed(info string) {
	events.Action.Success(info)
	m.setInfo(info)
}
