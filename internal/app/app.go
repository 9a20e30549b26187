// Package app wires pman's collaborators to the UI and runs the program.
package app

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/pman/internal/action"
	"github.com/atomicstack/pman/internal/apperr"
	"github.com/atomicstack/pman/internal/git"
	"github.com/atomicstack/pman/internal/logging/events"
	"github.com/atomicstack/pman/internal/nvim"
	"github.com/atomicstack/pman/internal/terminal"
	"github.com/atomicstack/pman/internal/theme"
	"github.com/atomicstack/pman/internal/tmux"
	"github.com/atomicstack/pman/internal/ui"
)

// Config describes user-provided application options.
type Config struct {
	SocketPath    string
	Width         int
	Height        int
	ShowFooter    bool
	View          action.View
	EditorWindow  string
	WorktreeDir   string
	NvimSockets   []string
	Prerequisites []string
}

var runProgram = func(model tea.Model) (tea.Model, error) {
	return tea.NewProgram(model, tea.WithAltScreen()).Run()
}

// Run checks prerequisites and executes the Bubble Tea program on the
// configured view.
func Run(cfg Config) error {
	if err := CheckPrerequisites(cfg.Prerequisites); err != nil {
		return err
	}
	guard, err := terminal.Acquire(int(os.Stdin.Fd()))
	if err != nil {
		return err
	}
	defer guard.Release()
	defer guard.Recover()

	socketPath, err := tmux.ResolveSocketPath(cfg.SocketPath)
	if err != nil {
		return fmt.Errorf("resolve socket path: %w", err)
	}
	defer tmux.Shutdown()

	opts, err := buildOptions(cfg, socketPath)
	if err != nil {
		return err
	}
	theme.ApplyEnvironment()
	_, err = runProgram(ui.NewModel(opts))
	events.App.Exit(cfg.View.String(), err)
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

func buildOptions(cfg Config, socketPath string) (ui.Options, error) {
	sessions := tmux.NewManager(socketPath)
	opts := ui.Options{
		Sessions:   sessions,
		Editor:     nvim.NewBridge(sessions, cfg.EditorWindow, cfg.NvimSockets),
		View:       cfg.View,
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: cfg.ShowFooter,
	}
	repo, err := OpenRepository(cfg.WorktreeDir)
	if err != nil {
		return ui.Options{}, err
	}
	if repo != nil {
		opts.VCS = repo
	}
	return opts, nil
}

// OpenRepository discovers the repository around the working directory. It
// returns nil without error outside a repository.
func OpenRepository(worktreeDir string) (*git.Client, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("working directory: %w", err)
	}
	repo, err := git.Discover(nil, cwd)
	if errors.Is(err, apperr.ErrNotARepository) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	repo.SetWorktreeDir(worktreeDir)
	return repo, nil
}
