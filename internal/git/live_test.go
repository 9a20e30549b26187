package git_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atomicstack/pman/internal/apperr"
	"github.com/atomicstack/pman/internal/git"
	"github.com/atomicstack/pman/internal/testutil"
)

func TestWorktreeLifecycleAgainstGit(t *testing.T) {
	repo := testutil.InitRepo(t)
	client, err := git.Discover(nil, repo)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if client.Root() != repo {
		t.Fatalf("expected root %q, got %q", repo, client.Root())
	}
	if got := client.MainBranch(); got != "main" {
		t.Fatalf("expected main branch, got %q", got)
	}

	path, err := client.CreateWorktree("feature")
	if err != nil {
		t.Fatalf("create worktree: %v", err)
	}
	if path != filepath.Join(filepath.Dir(repo), "feature") {
		t.Fatalf("unexpected worktree path %q", path)
	}
	testutil.WriteFile(t, filepath.Join(path, "feature.txt"), "feature\n")

	worktrees, err := client.ListWorktrees()
	if err != nil {
		t.Fatalf("list worktrees: %v", err)
	}
	if len(worktrees) != 2 || !worktrees[0].IsMain || worktrees[1].Branch != "feature" || !worktrees[1].Dirty {
		t.Fatalf("unexpected worktrees %+v", worktrees)
	}
	if err := client.DeleteWorktree(path); !errors.Is(err, apperr.ErrUncommittedChanges) {
		t.Fatalf("expected uncommitted changes, got %v", err)
	}

	testutil.Git(t, path, "add", "feature.txt")
	testutil.Git(t, path, "commit", "-q", "-m", "add feature")
	if err := client.MergeToMain(path, "feature"); err != nil {
		t.Fatalf("merge: %v", err)
	}
	if _, err := os.Stat(filepath.Join(repo, "feature.txt")); err != nil {
		t.Fatalf("expected merged file in main worktree: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected worktree removed, stat err %v", err)
	}
	if branches := testutil.Git(t, repo, "branch", "--list", "feature"); branches != "" {
		t.Fatalf("expected feature branch deleted, got %q", branches)
	}

	testutil.WriteFile(t, filepath.Join(repo, "README.md"), "# repo\nchanged\n")
	diff, err := client.Diff(repo)
	if err != nil {
		t.Fatalf("diff: %v", err)
	}
	if !strings.Contains(diff, "+changed") {
		t.Fatalf("expected change in diff, got %q", diff)
	}
}

func TestMergeConflictStopsAtMergeStep(t *testing.T) {
	repo := testutil.InitRepo(t)
	client, err := git.Discover(nil, repo)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	path, err := client.CreateWorktree("clash")
	if err != nil {
		t.Fatalf("create worktree: %v", err)
	}
	testutil.WriteFile(t, filepath.Join(path, "README.md"), "# clash\n")
	testutil.Git(t, path, "commit", "-q", "-am", "clash")
	testutil.WriteFile(t, filepath.Join(repo, "README.md"), "# main\n")
	testutil.Git(t, repo, "commit", "-q", "-am", "main")

	err = client.MergeToMain(path, "clash")
	var mergeErr *git.MergeError
	if !errors.As(err, &mergeErr) || mergeErr.Step != git.StepMerge {
		t.Fatalf("expected merge step failure, got %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected worktree kept after failed merge: %v", err)
	}
	testutil.Git(t, repo, "merge", "--abort")
}
