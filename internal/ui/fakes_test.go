package ui

import (
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/pman/internal/action"
	"github.com/atomicstack/pman/internal/logging"
	"github.com/atomicstack/pman/internal/model"
)

type fakeSessions struct {
	sessions  []model.Session
	current   string
	path      string
	listErr   error
	createErr error
	killErr   error
	switchErr error
	calls     []string
}

func (f *fakeSessions) ListSessions() ([]model.Session, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]model.Session(nil), f.sessions...), nil
}

func (f *fakeSessions) CreateSession(name, path string) error {
	f.calls = append(f.calls, fmt.Sprintf("create %s %s", name, path))
	if f.createErr != nil {
		return f.createErr
	}
	f.sessions = append(f.sessions, model.Session{Name: name, Path: path, Windows: 1})
	return nil
}

func (f *fakeSessions) KillSession(name string) error {
	f.calls = append(f.calls, "kill "+name)
	if f.killErr != nil {
		return f.killErr
	}
	kept := f.sessions[:0]
	for _, s := range f.sessions {
		if s.Name != name {
			kept = append(kept, s)
		}
	}
	f.sessions = kept
	return nil
}

func (f *fakeSessions) SwitchSession(name string) error {
	f.calls = append(f.calls, "switch "+name)
	return f.switchErr
}

func (f *fakeSessions) CurrentSession() string { return f.current }

func (f *fakeSessions) CurrentPath() string { return f.path }

type fakeVCS struct {
	root      string
	worktrees []model.Worktree
	diff      string
	createErr error
	deleteErr error
	mergeErr  error
	diffErr   error
	calls     []string
}

func (f *fakeVCS) Root() string { return f.root }

func (f *fakeVCS) ListWorktrees() ([]model.Worktree, error) {
	return append([]model.Worktree(nil), f.worktrees...), nil
}

func (f *fakeVCS) CreateWorktree(branch string) (string, error) {
	f.calls = append(f.calls, "create "+branch)
	if f.createErr != nil {
		return "", f.createErr
	}
	path := filepath.Join(filepath.Dir(f.root), branch)
	f.worktrees = append(f.worktrees, model.Worktree{Path: path, Branch: branch})
	return path, nil
}

func (f *fakeVCS) DeleteWorktree(path string) error {
	f.calls = append(f.calls, "delete "+path)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.remove(path)
	return nil
}

func (f *fakeVCS) MergeToMain(path, branch string) error {
	f.calls = append(f.calls, fmt.Sprintf("merge %s %s", path, branch))
	if f.mergeErr != nil {
		return f.mergeErr
	}
	f.remove(path)
	return nil
}

func (f *fakeVCS) Diff(path string) (string, error) {
	f.calls = append(f.calls, "diff "+path)
	return f.diff, f.diffErr
}

func (f *fakeVCS) remove(path string) {
	kept := f.worktrees[:0]
	for _, w := range f.worktrees {
		if w.Path != path {
			kept = append(kept, w)
		}
	}
	f.worktrees = kept
}

type fakeEditor struct {
	buffers []model.Buffer
	listErr error
	openErr error
	calls   []string
}

func (f *fakeEditor) OpenFile(path string) error {
	f.calls = append(f.calls, "open "+path)
	return f.openErr
}

func (f *fakeEditor) ListBuffers() ([]model.Buffer, error) {
	return f.buffers, f.listErr
}

func (f *fakeEditor) OpenBuffer(address string, id int) error {
	f.calls = append(f.calls, fmt.Sprintf("buffer %s %d", address, id))
	return f.openErr
}

type fixture struct {
	h        *Harness
	sessions *fakeSessions
	vcs      *fakeVCS
	editor   *fakeEditor
}

var fixedNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

// newFixture builds a model over fakes holding three sessions, three
// worktrees and two buffers. inRepo=false leaves VCS unset.
func newFixture(t *testing.T, view action.View, inRepo bool) *fixture {
	t.Helper()
	logging.Configure(filepath.Join(t.TempDir(), "pman.log"))
	t.Cleanup(func() { logging.Configure("") })
	prevNow := now
	now = func() time.Time { return fixedNow }
	t.Cleanup(func() { now = prevNow })

	f := &fixture{
		sessions: &fakeSessions{
			sessions: []model.Session{
				{Name: "work", Attached: true, Path: "/src/pman", Windows: 3, Created: fixedNow.Add(-2 * time.Hour)},
				{Name: "worship", Path: "/home/me/church", Windows: 1},
				{Name: "play", Path: "/home/me/games", Windows: 2},
			},
			current: "work",
			path:    "/home/me/src",
		},
		vcs: &fakeVCS{
			root: "/src/pman",
			worktrees: []model.Worktree{
				{Path: "/src/pman", Branch: "main", IsMain: true, Commit: "0123456789"},
				{Path: "/src/pman.feature", Branch: "feature", Commit: "abcdef0123", Dirty: true},
				{Path: "/src/spike", Branch: "(detached)", Commit: "fedcba9876"},
			},
			diff: "diff --git a/main.go b/main.go\n",
		},
		editor: &fakeEditor{
			buffers: []model.Buffer{
				{Address: "/tmp/nvim.1.0", ID: 1, Path: "/src/pman/main.go"},
				{Address: "/tmp/nvim.2.0", ID: 4, Path: "/src/pman/go.mod", Modified: true},
			},
		},
	}
	opts := Options{Sessions: f.sessions, Editor: f.editor, View: view, Width: 60, Height: 20, ShowFooter: true}
	if inRepo {
		opts.VCS = f.vcs
	}
	f.h = NewHarness(NewModel(opts))
	return f
}

func (f *fixture) model() *Model {
	return f.h.Model()
}

func stubExec(t *testing.T, output string, runErr error) *[]*exec.Cmd {
	t.Helper()
	var seen []*exec.Cmd
	prev := execProcess
	execProcess = func(c *exec.Cmd, fn tea.ExecCallback) tea.Cmd {
		seen = append(seen, c)
		return func() tea.Msg {
			if output != "" && c.Stdout != nil {
				_, _ = io.WriteString(c.Stdout, output)
			}
			return fn(runErr)
		}
	}
	t.Cleanup(func() { execProcess = prev })
	return &seen
}

func exitError(t *testing.T, code int) error {
	t.Helper()
	err := exec.Command("sh", "-c", fmt.Sprintf("exit %d", code)).Run()
	if err == nil {
		t.Fatalf("expected exit error for %d", code)
	}
	return err
}

func hasCall(calls []string, want string) bool {
	for _, c := range calls {
		if c == want {
			return true
		}
	}
	return false
}
