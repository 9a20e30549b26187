package events

import "github.com/atomicstack/pman/internal/logging"

type WorktreeTracer struct{}

var Worktree = WorktreeTracer{}

func (WorktreeTracer) Open(path, session string) {
	logging.Trace("worktree.open", map[string]interface{}{"path": path, "session": session})
}

func (WorktreeTracer) Create(branch, path string) {
	logging.Trace("worktree.create", map[string]interface{}{"branch": branch, "path": path})
}

func (WorktreeTracer) Delete(path string) {
	logging.Trace("worktree.delete", map[string]interface{}{"path": path})
}

// MergeStep records the outcome of one merge stage; err is nil on success.
func (WorktreeTracer) MergeStep(branch, step string, err error) {
	payload := map[string]interface{}{"branch": branch, "step": step, "ok": err == nil}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("worktree.merge.step", payload)
}

// StatusUnknown records a worktree whose dirty state could not be read.
func (WorktreeTracer) StatusUnknown(path string, err error) {
	logging.Trace("worktree.status.unknown", map[string]interface{}{"path": path, "error": err.Error()})
}
