package model

// CommandKind identifies a palette entry.
type CommandKind int

const (
	CommandListSessions CommandKind = iota
	CommandNewSession
	CommandKillSession
	CommandListWorktrees
	CommandCreateWorktree
	CommandFindFiles
	CommandListBuffers
	CommandGitDiff
)

// Command is a command palette entry.
type Command struct {
	Kind        CommandKind
	Name        string
	Description string
}

var allCommands = []Command{
	{CommandListSessions, "List Sessions", "Switch between tmux sessions"},
	{CommandNewSession, "New Session", "Create a new tmux session"},
	{CommandKillSession, "Kill Session", "Kill the current tmux session"},
	{CommandListWorktrees, "List Worktrees", "List and manage git worktrees"},
	{CommandCreateWorktree, "Create Worktree", "Create a new git worktree"},
	{CommandFindFiles, "Find Files", "Find and open files with fzf"},
	{CommandListBuffers, "List Buffers", "List open buffers in nvim"},
	{CommandGitDiff, "Git Diff", "Show git diff in popup"},
}

// Commands returns the palette entries; entries that need a repository are
// left out when inRepo is false.
func Commands(inRepo bool) []Command {
	out := make([]Command, 0, len(allCommands))
	for _, c := range allCommands {
		if !inRepo && c.NeedsRepo() {
			continue
		}
		out = append(out, c)
	}
	return out
}

// NeedsRepo reports whether the command only makes sense inside a git repository.
func (c Command) NeedsRepo() bool {
	switch c.Kind {
	case CommandListWorktrees, CommandCreateWorktree, CommandGitDiff:
		return true
	}
	return false
}

func (c Command) DisplayText() string {
	return c.Name
}

func (c Command) SearchText() string {
	return c.Name + " " + c.Description
}
