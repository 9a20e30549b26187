// Package cli wires pman's subcommands onto the views, the keybinding
// installer and the pass-through tools.
package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/atomicstack/pman/internal/action"
	"github.com/atomicstack/pman/internal/app"
	"github.com/atomicstack/pman/internal/config"
	"github.com/atomicstack/pman/internal/logging"
)

var runApp = app.Run

// App carries state shared by every subcommand.
type App struct {
	flags   *config.Flags
	args    []string
	cfg     config.Config
	onStart func(config.Config)
}

// configError marks failures that happen before any command runs.
type configError struct {
	err error
}

func (e *configError) Error() string { return e.err.Error() }

func (e *configError) Unwrap() error { return e.err }

// NewRootCmd builds the pman command tree. onStart, when set, sees the
// resolved configuration before the chosen command runs.
func NewRootCmd(args, environ []string, onStart func(config.Config)) *cobra.Command {
	a := &App{args: append([]string(nil), args...), onStart: onStart}

	cmd := &cobra.Command{
		Use:           "pman",
		Short:         "tmux session, git worktree and nvim buffer picker",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Pick a tmux session (the default)
  pman

  # Open the command palette in a popup
  tmux display-popup -E -w 80% -h 80% "pman command-palette"

  # Bind the popups in ~/.tmux.conf
  pman install
`),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runView(action.ViewSessions)
		},
	}
	a.flags = config.Register(cmd.PersistentFlags(), environ)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &configError{err: err}
	})
	cmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return a.setup()
	}

	for _, v := range viewCommands {
		cmd.AddCommand(newViewCmd(a, v))
	}
	cmd.AddCommand(newFindFilesCmd())
	cmd.AddCommand(newGitDiffCmd())
	cmd.AddCommand(newInstallCmd(a))
	cmd.AddCommand(newUninstallCmd(a))
	return cmd
}

// setup resolves configuration and points logging at it.
func (a *App) setup() error {
	cfg, err := a.flags.Resolve(a.args)
	if err != nil {
		return &configError{err: err}
	}
	if err := config.Validate(cfg); err != nil {
		return &configError{err: err}
	}
	logging.Configure(cfg.Logging.FilePath)
	logging.SetRotation(cfg.Logging.Rotation)
	logging.SetTraceEnabled(cfg.Logging.Trace)
	a.cfg = cfg
	if a.onStart != nil {
		a.onStart(cfg)
	}
	return nil
}

// Execute runs the command tree and returns the process exit code:
// 2 for configuration errors, 1 for any other failure.
func Execute(args, environ []string, stdout, stderr io.Writer, onStart func(config.Config)) int {
	root := NewRootCmd(args, environ, onStart)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	err := root.Execute()
	if err == nil {
		return 0
	}
	var cfgErr *configError
	if errors.As(err, &cfgErr) {
		fmt.Fprintf(stderr, "Configuration error: %v\n", cfgErr.err)
		return 2
	}
	logging.Error(err)
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return 1
}
