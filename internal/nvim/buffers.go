package nvim

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/user"
	"path/filepath"
	"sort"
	"strings"

	"github.com/atomicstack/pman/internal/apperr"
	"github.com/atomicstack/pman/internal/logging/events"
	"github.com/atomicstack/pman/internal/model"
	"github.com/atomicstack/pman/internal/pathutil"
)

const bufferListExpr = `json_encode(map(getbufinfo({'buflisted':1}),{_,b->{'bufnr':b.bufnr,'name':b.name,'changed':b.changed}}))`

const paneExpr = `$TMUX_PANE`

var (
	isSocket = func(path string) bool {
		info, err := os.Stat(path)
		return err == nil && info.Mode()&os.ModeSocket != 0
	}

	runNvim = func(args ...string) (string, error) {
		out, err := exec.Command("nvim", args...).Output()
		if err != nil {
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				return "", fmt.Errorf("nvim %s: %s", args[len(args)-2], strings.TrimSpace(string(exitErr.Stderr)))
			}
			return "", err
		}
		return string(out), nil
	}
)

type bufferInfo struct {
	BufNr   int    `json:"bufnr"`
	Name    string `json:"name"`
	Changed int    `json:"changed"`
}

func defaultSocketGlobs() []string {
	name := os.Getenv("USER")
	if name == "" {
		if u, err := user.Current(); err == nil {
			name = u.Username
		}
	}
	var globs []string
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		globs = append(globs, filepath.Join(dir, "nvim.*.0"))
	}
	globs = append(globs,
		filepath.Join(os.TempDir(), "nvim."+name, "*", "nvim.*.0"),
		filepath.Join("/tmp", "nvim."+name, "*", "nvim.*.0"),
	)
	return globs
}

// Sockets returns the live nvim server sockets, sorted and de-duplicated.
func (b *Bridge) Sockets() []string {
	seen := make(map[string]bool)
	var out []string
	for _, pattern := range b.socketGlobs {
		matches, err := filepath.Glob(pathutil.ExpandUser(pattern))
		if err != nil {
			continue
		}
		for _, m := range matches {
			if seen[m] || !isSocket(m) {
				continue
			}
			seen[m] = true
			out = append(out, m)
		}
	}
	sort.Strings(out)
	return out
}

// ListBuffers collects the listed buffers of every reachable nvim instance.
// Instances that do not answer are skipped.
func (b *Bridge) ListBuffers() ([]model.Buffer, error) {
	sockets := b.Sockets()
	events.Buffer.Discover(sockets)
	var out []model.Buffer
	for _, addr := range sockets {
		raw, err := runNvim("--server", addr, "--remote-expr", bufferListExpr)
		if err != nil {
			events.Buffer.Skip(addr, err)
			continue
		}
		buffers, err := decodeBuffers(addr, raw)
		if err != nil {
			events.Buffer.Skip(addr, err)
			continue
		}
		out = append(out, buffers...)
	}
	return out, nil
}

func decodeBuffers(addr, raw string) ([]model.Buffer, error) {
	var infos []bufferInfo
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &infos); err != nil {
		return nil, fmt.Errorf("decode buffer list: %w", err)
	}
	out := make([]model.Buffer, 0, len(infos))
	for _, info := range infos {
		out = append(out, model.Buffer{
			Address:  addr,
			ID:       info.BufNr,
			Path:     info.Name,
			Modified: info.Changed != 0,
		})
	}
	return out, nil
}

// OpenBuffer makes the instance at address show buffer id and focuses the
// tmux pane that instance runs in.
func (b *Bridge) OpenBuffer(address string, id int) error {
	if strings.TrimSpace(address) == "" || id <= 0 {
		return apperr.Bridge("invalid buffer %d at %q", id, address)
	}
	keys := fmt.Sprintf(`<C-\><C-n>:buffer %d<CR>`, id)
	if _, err := runNvim("--server", address, "--remote-send", keys); err != nil {
		return &apperr.Error{Kind: apperr.KindBridge, Msg: err.Error(), Err: err}
	}
	events.Buffer.Open(address, id)
	pane, err := runNvim("--server", address, "--remote-expr", paneExpr)
	if err != nil {
		return &apperr.Error{Kind: apperr.KindBridge, Msg: err.Error(), Err: err}
	}
	pane = strings.TrimSpace(pane)
	if pane == "" {
		// nvim is running outside tmux; the buffer switch already happened.
		return nil
	}
	return b.tmux.FocusPane(pane)
}
