package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/atomicstack/pman/internal/apperr"
	"github.com/atomicstack/pman/internal/git"
	"github.com/atomicstack/pman/internal/passthrough"
)

var (
	getwd    = os.Getwd
	pickFile = passthrough.PickFile
	editFile = passthrough.EditFile
	pageDiff = passthrough.PageDiff
	openRepo = func(dir string) (diffSource, error) {
		return git.Discover(nil, dir)
	}
)

type diffSource interface {
	Root() string
	Diff(path string) (string, error)
}

func newFindFilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "find-files",
		Short: "Find a file with fzf and open it in nvim",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := getwd()
			if err != nil {
				return fmt.Errorf("working directory: %w", err)
			}
			path, err := pickFile(dir, cmd.InOrStdin(), cmd.ErrOrStderr())
			if errors.Is(err, apperr.ErrCancelled) {
				return nil
			}
			if err != nil {
				return err
			}
			return editFile(path)
		},
	}
}

func newGitDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "git-diff",
		Short: "Show the working tree diff through delta",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := getwd()
			if err != nil {
				return fmt.Errorf("working directory: %w", err)
			}
			repo, err := openRepo(dir)
			if err != nil {
				return err
			}
			diff, err := repo.Diff(repo.Root())
			if err != nil {
				return err
			}
			return pageDiff(diff, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
}
