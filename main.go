package main

import (
	"os"
	"os/exec"

	"golang.org/x/term"

	"github.com/atomicstack/pman/internal/app"
	"github.com/atomicstack/pman/internal/cli"
	"github.com/atomicstack/pman/internal/config"
	"github.com/atomicstack/pman/internal/logging"
	"github.com/atomicstack/pman/internal/logging/events"
)

var (
	lookPath = exec.LookPath
	getenv   = os.Getenv
	repoRoot = func(worktreeDir string) (string, error) {
		repo, err := app.OpenRepository(worktreeDir)
		if err != nil || repo == nil {
			return "", err
		}
		return repo.Root(), nil
	}
)

func main() {
	os.Exit(cli.Execute(os.Args[1:], os.Environ(), os.Stdout, os.Stderr, traceStartup))
}

func traceStartup(cfg config.Config) {
	if !logging.TraceEnabled() {
		return
	}
	events.App.Start(startupTracePayload(cfg))
}

// startupTracePayload records what pman is about to open and the
// environment it found: tmux, repository, tools and terminal.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	payload := map[string]interface{}{
		"argv":  cfg.Args,
		"flags": cfg.Flags,
		"view":  cfg.App.View.String(),
		"tmux": map[string]string{
			"socket": cfg.App.SocketPath,
			"env":    getenv("TMUX"),
			"pane":   getenv("TMUX_PANE"),
		},
		"editorWindow": cfg.App.EditorWindow,
		"logFile":      cfg.Logging.FilePath,
		"tools":        toolPaths(cfg.App.Prerequisites),
		"terminal":     probeTerminal(),
	}
	if cfg.File != "" {
		payload["configFile"] = cfg.File
	}
	if root, err := repoRoot(cfg.App.WorktreeDir); err != nil {
		payload["repoError"] = err.Error()
	} else if root != "" {
		payload["repo"] = root
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	}
	return payload
}

// toolPaths resolves each prerequisite on PATH; missing tools map to "".
func toolPaths(tools []string) map[string]string {
	if len(tools) == 0 {
		tools = app.DefaultPrerequisites
	}
	out := make(map[string]string, len(tools))
	for _, tool := range tools {
		path, err := lookPath(tool)
		if err != nil {
			path = ""
		}
		out[tool] = path
	}
	return out
}

type terminalInfo struct {
	Stdin  bool `json:"stdin"`
	Stdout bool `json:"stdout"`
	Width  int  `json:"width,omitempty"`
	Height int  `json:"height,omitempty"`
}

// probeTerminal reports whether the popup has a tty on both ends and, when
// stdout is one, its size.
func probeTerminal() terminalInfo {
	info := terminalInfo{
		Stdin:  term.IsTerminal(int(os.Stdin.Fd())),
		Stdout: term.IsTerminal(int(os.Stdout.Fd())),
	}
	if info.Stdout {
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			info.Width, info.Height = w, h
		}
	}
	return info
}
