package cli

import (
	"github.com/spf13/cobra"

	"github.com/atomicstack/pman/internal/action"
)

type viewCommand struct {
	use   string
	short string
	view  action.View
}

var viewCommands = []viewCommand{
	{"session-picker", "Open the session picker (default)", action.ViewSessions},
	{"command-palette", "Open the command palette", action.ViewPalette},
	{"worktrees", "Open the worktree picker", action.ViewWorktrees},
	{"buffers", "Open the nvim buffer picker", action.ViewBuffers},
}

func newViewCmd(a *App, v viewCommand) *cobra.Command {
	return &cobra.Command{
		Use:   v.use,
		Short: v.short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runView(v.view)
		},
	}
}

func (a *App) runView(v action.View) error {
	cfg := a.cfg.App
	cfg.View = v
	return runApp(cfg)
}
