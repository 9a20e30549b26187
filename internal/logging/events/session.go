package events

import "github.com/atomicstack/pman/internal/logging"

type SessionTracer struct{}

var Session = SessionTracer{}

func (SessionTracer) Switch(target string) {
	logging.Trace("session.switch", map[string]interface{}{"target": target})
}

func (SessionTracer) Create(name, path string) {
	logging.Trace("session.create", map[string]interface{}{"name": name, "path": path})
}

func (SessionTracer) Kill(target string) {
	logging.Trace("session.kill", map[string]interface{}{"target": target})
}

func (SessionTracer) RenamePrompt(target string) {
	logging.Trace("session.rename.prompt", map[string]interface{}{"target": target})
}
