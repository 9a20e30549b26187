package nvim

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/atomicstack/pman/internal/apperr"
	"github.com/atomicstack/pman/internal/model"
)

type fakeWindows struct {
	window   string
	sent     [][2]string
	selected []string
	focused  []string
	sendErr  error
}

func (f *fakeWindows) EnsureWindow(name string) (string, error) {
	if f.window == "" {
		f.window = "@" + name
	}
	return f.window, nil
}

func (f *fakeWindows) SendKeys(target, keys string) error {
	f.sent = append(f.sent, [2]string{target, keys})
	return f.sendErr
}

func (f *fakeWindows) SelectWindow(target string) error {
	f.selected = append(f.selected, target)
	return nil
}

func (f *fakeWindows) FocusPane(pane string) error {
	f.focused = append(f.focused, pane)
	return nil
}

func stubNvim(t *testing.T, fn func(args ...string) (string, error)) *[][]string {
	t.Helper()
	var calls [][]string
	prev := runNvim
	runNvim = func(args ...string) (string, error) {
		calls = append(calls, append([]string(nil), args...))
		return fn(args...)
	}
	t.Cleanup(func() { runNvim = prev })
	return &calls
}

func stubSockets(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	prev := isSocket
	isSocket = func(path string) bool { return strings.HasSuffix(path, ".0") }
	t.Cleanup(func() { isSocket = prev })
	return dir
}

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatalf("touch: %v", err)
	}
}

func TestOpenFileQuotesPath(t *testing.T) {
	w := &fakeWindows{}
	b := NewBridge(w, "", nil)
	if err := b.OpenFile("/src/my file.go"); err != nil {
		t.Fatalf("open: %v", err)
	}
	if len(w.sent) != 1 || w.sent[0] != [2]string{"@editor", "nvim '/src/my file.go'"} {
		t.Fatalf("unexpected send-keys %v", w.sent)
	}
	if !reflect.DeepEqual(w.selected, []string{"@editor"}) {
		t.Fatalf("expected editor window selected, got %v", w.selected)
	}
}

func TestOpenFileStopsOnSendError(t *testing.T) {
	w := &fakeWindows{sendErr: errors.New("boom")}
	b := NewBridge(w, "code", nil)
	if err := b.OpenFile("main.go"); err == nil {
		t.Fatalf("expected error")
	}
	if len(w.selected) != 0 {
		t.Fatalf("expected no window selection after failure")
	}
	if err := b.OpenFile(" "); apperr.KindOf(err) != apperr.KindBridge {
		t.Fatalf("expected bridge error for empty path, got %v", err)
	}
}

func TestSocketsDiscoversGlobsOnce(t *testing.T) {
	dir := stubSockets(t)
	a := filepath.Join(dir, "a", "nvim.100.0")
	b := filepath.Join(dir, "b", "nvim.200.0")
	touch(t, a)
	touch(t, b)
	touch(t, filepath.Join(dir, "a", "notes.txt"))
	bridge := &Bridge{socketGlobs: []string{
		filepath.Join(dir, "*", "nvim.*.0"),
		filepath.Join(dir, "a", "*"),
	}}
	got := bridge.Sockets()
	if !reflect.DeepEqual(got, []string{a, b}) {
		t.Fatalf("unexpected sockets %v", got)
	}
}

func TestListBuffersSkipsUnreachableInstances(t *testing.T) {
	dir := stubSockets(t)
	good := filepath.Join(dir, "1", "nvim.1.0")
	dead := filepath.Join(dir, "2", "nvim.2.0")
	junk := filepath.Join(dir, "3", "nvim.3.0")
	touch(t, good)
	touch(t, dead)
	touch(t, junk)
	stubNvim(t, func(args ...string) (string, error) {
		switch args[1] {
		case good:
			return `[{"bufnr":1,"name":"/src/main.go","changed":0},{"bufnr":4,"name":"","changed":1}]`, nil
		case dead:
			return "", errors.New("connection refused")
		default:
			return "not json", nil
		}
	})
	bridge := &Bridge{socketGlobs: []string{filepath.Join(dir, "*", "nvim.*.0")}}
	got, err := bridge.ListBuffers()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []model.Buffer{
		{Address: good, ID: 1, Path: "/src/main.go"},
		{Address: good, ID: 4, Modified: true},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected buffers:\n got %#v\nwant %#v", got, want)
	}
}

func TestOpenBufferFocusesPane(t *testing.T) {
	calls := stubNvim(t, func(args ...string) (string, error) {
		if args[2] == "--remote-expr" {
			return "%12\n", nil
		}
		return "", nil
	})
	w := &fakeWindows{}
	b := NewBridge(w, "", nil)
	if err := b.OpenBuffer("/run/nvim.1.0", 4); err != nil {
		t.Fatalf("open buffer: %v", err)
	}
	if len(*calls) != 2 || (*calls)[0][3] != `<C-\><C-n>:buffer 4<CR>` {
		t.Fatalf("unexpected nvim calls %v", *calls)
	}
	if !reflect.DeepEqual(w.focused, []string{"%12"}) {
		t.Fatalf("expected pane focus, got %v", w.focused)
	}
}

func TestOpenBufferErrors(t *testing.T) {
	stubNvim(t, func(args ...string) (string, error) { return "", errors.New("refused") })
	b := NewBridge(&fakeWindows{}, "", nil)
	if err := b.OpenBuffer("/run/nvim.1.0", 4); apperr.KindOf(err) != apperr.KindBridge {
		t.Fatalf("expected bridge error, got %v", err)
	}
	if err := b.OpenBuffer("", 1); apperr.KindOf(err) != apperr.KindBridge {
		t.Fatalf("expected bridge error for empty address, got %v", err)
	}
}
